package loader

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dkastrati/windlink/config"
)

func seriesFile(region, timeCol, valueCol string) config.SeriesFile {
	return config.SeriesFile{Region: region, TimeColumn: timeCol, ValueColumn: valueCol}
}

func TestReadSeries(t *testing.T) {
	data := `time,XK
2014-01-01 00:00:00,12.5
2014-01-01 01:00:00,0
2015-06-01 00:00:00,3.25
`
	s, err := readSeries(strings.NewReader(data), seriesFile("XK", "time", "XK"))
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if s.Len() != 3 {
		t.Fatalf("rows %d", s.Len())
	}
	ts, v := s.At(0)
	if ts.Year() != 2014 || v != 12.5 {
		t.Fatalf("first row %s %.2f", ts, v)
	}
	if s.Region() != "XK" {
		t.Fatalf("region %s", s.Region())
	}
}

func TestReadSeriesMissingColumn(t *testing.T) {
	data := "time,XK\n2014-01-01 00:00:00,1\n"
	if _, err := readSeries(strings.NewReader(data), seriesFile("MK", "time", "MK")); err == nil {
		t.Fatalf("expected error for missing value column")
	}
	if _, err := readSeries(strings.NewReader(data), seriesFile("XK", "ts", "XK")); err == nil {
		t.Fatalf("expected error for missing time column")
	}
}

func TestReadSeriesBadRows(t *testing.T) {
	bad := []string{
		"time,v\nnot-a-time,1\n",
		"time,v\n2014-01-01 00:00:00,abc\n",
		"time,v\n2014-01-01 00:00:00,-5\n",
	}
	for i, data := range bad {
		if _, err := readSeries(strings.NewReader(data), seriesFile("A", "time", "v")); err == nil {
			t.Fatalf("case %d: expected error", i)
		}
	}
}

func TestLoadSeriesWindow(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "wind.csv")
	data := `time,v
2013-12-31 23:00:00,1
2014-01-01 00:00:00,2
2022-12-31 23:00:00,3
2023-01-01 00:00:00,4
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	sf := seriesFile("A", "time", "v")
	sf.Path = path
	s, err := LoadSeries(sf, 2014, 2022)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if s.Len() != 2 {
		t.Fatalf("windowed rows %d", s.Len())
	}
	s, err = LoadSeries(sf, 0, 0)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if s.Len() != 4 {
		t.Fatalf("unwindowed rows %d", s.Len())
	}
}

func TestLoadSeriesMissingFile(t *testing.T) {
	sf := seriesFile("A", "time", "v")
	sf.Path = filepath.Join(t.TempDir(), "nope.csv")
	if _, err := LoadSeries(sf, 0, 0); err == nil {
		t.Fatalf("expected error for missing file")
	}
}
