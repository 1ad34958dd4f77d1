package metrics

import (
	"errors"
	"testing"

	coremetrics "github.com/dkastrati/windlink/core/metrics"
	"github.com/dkastrati/windlink/core/model"
)

type recordingSink struct {
	coremetrics.NopSink
	runs     int
	rows     int
	progress int
	fail     bool
}

func (r *recordingSink) RecordAllocations(_ string, rows []model.ResultRow) error {
	if r.fail {
		return errors.New("sink down")
	}
	r.rows += len(rows)
	return nil
}

func (r *recordingSink) RecordRun(model.RunSummary) error {
	r.runs++
	return nil
}

func (r *recordingSink) RecordProgress(solved int) { r.progress = solved }

func TestMultiSinkFanout(t *testing.T) {
	a := &recordingSink{}
	b := &recordingSink{}
	m := NewMultiSink(a, b)

	rows := []model.ResultRow{{}, {}}
	if err := m.RecordAllocations("r", rows); err != nil {
		t.Fatalf("record: %v", err)
	}
	if err := m.RecordRun(model.RunSummary{}); err != nil {
		t.Fatalf("record run: %v", err)
	}
	m.RecordProgress(5)
	if a.rows != 2 || b.rows != 2 || a.runs != 1 || b.runs != 1 || a.progress != 5 {
		t.Fatalf("fanout incomplete: %+v %+v", a, b)
	}
}

func TestMultiSinkFirstError(t *testing.T) {
	a := &recordingSink{fail: true}
	b := &recordingSink{}
	m := NewMultiSink(a, b)
	if err := m.RecordAllocations("r", []model.ResultRow{{}}); err == nil {
		t.Fatalf("expected error")
	}
	if b.rows != 0 {
		t.Fatalf("second sink should not receive rows after failure")
	}
}
