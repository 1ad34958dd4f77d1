package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/dkastrati/windlink/core/model"
)

// WriteJSON writes the allocation rows to w in JSON format.
func WriteJSON(w io.Writer, rows []model.ResultRow) error {
	type jsonRow struct {
		Time     string  `json:"time"`
		ExportAB float64 `json:"export_ab"`
		ExportBA float64 `json:"export_ba"`
	}
	out := make([]jsonRow, len(rows))
	for i, r := range rows {
		out[i] = jsonRow{Time: r.Time.Format(time.RFC3339), ExportAB: r.ExportAB, ExportBA: r.ExportBA}
	}
	enc := json.NewEncoder(w)
	return enc.Encode(out)
}

// WriteCSV writes the allocation rows to w with a header line.
func WriteCSV(w io.Writer, rows []model.ResultRow) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"time", "export_ab", "export_ba"}); err != nil {
		return err
	}
	for _, r := range rows {
		rec := []string{
			r.Time.Format(time.RFC3339),
			strconv.FormatFloat(r.ExportAB, 'f', -1, 64),
			strconv.FormatFloat(r.ExportBA, 'f', -1, 64),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteFile writes the rows to path in the given format ("csv" or "json").
func WriteFile(path, format string, rows []model.ResultRow) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	switch format {
	case "csv":
		err = WriteCSV(f, rows)
	case "json":
		err = WriteJSON(f, rows)
	default:
		err = fmt.Errorf("unknown format %s", format)
	}
	if err != nil {
		return err
	}
	return f.Sync()
}
