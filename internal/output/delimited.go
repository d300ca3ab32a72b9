package output

import (
	"bufio"
	"encoding/csv"
	"io"
	"strings"

	"github.com/phyten/todomark/internal/scan"
)

type rowWriter interface {
	Write(record []string) error
}

func writeRows(rw rowWriter, items []scan.Item, sel FieldSelection) error {
	if err := rw.Write(Headers(sel.Fields)); err != nil {
		return err
	}
	for _, it := range items {
		if err := rw.Write(RowValues(it, sel.Fields)); err != nil {
			return err
		}
	}
	return nil
}

// WriteCSV renders items as RFC 4180 CSV with CRLF line endings.
func WriteCSV(w io.Writer, items []scan.Item, sel FieldSelection) error {
	cw := csv.NewWriter(w)
	cw.UseCRLF = true
	if err := writeRows(cw, items, sel); err != nil {
		return err
	}
	cw.Flush()
	return cw.Error()
}

var tsvReplacer = strings.NewReplacer("\t", " ", "\r\n", " ", "\n", " ", "\r", " ")

type tsvWriter struct{ bw *bufio.Writer }

// Write flattens tabs and line breaks so every row keeps its column count.
func (t tsvWriter) Write(record []string) error {
	for i, v := range record {
		if i > 0 {
			if err := t.bw.WriteByte('\t'); err != nil {
				return err
			}
		}
		if _, err := t.bw.WriteString(tsvReplacer.Replace(v)); err != nil {
			return err
		}
	}
	return t.bw.WriteByte('\n')
}

// WriteTSV writes one tab separated row per item.
func WriteTSV(w io.Writer, items []scan.Item, sel FieldSelection) error {
	tw := tsvWriter{bw: bufio.NewWriter(w)}
	if err := writeRows(tw, items, sel); err != nil {
		return err
	}
	return tw.bw.Flush()
}
