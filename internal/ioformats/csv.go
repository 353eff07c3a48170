
package ioformats

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"shoplist-csv/internal/models"
)

// Header is the fixed first row of every list CSV.
var Header = []string{"Image", "Description", "Price", "Quantity", "HA"}

const (
	Delimiter       = ';'
	TimestampLayout = "20060102150405"
)

// DirError is a directory that could not be created. It is fatal for a run.
type DirError struct {
	Dir string
	Err error
}

func (e *DirError) Error() string {
	return fmt.Sprintf("unable to create directory %s: %v", e.Dir, e.Err)
}

func (e *DirError) Unwrap() error { return e.Err }

// EnsureDir creates dir and its parents. An existing directory is fine.
func EnsureDir(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return &DirError{Dir: dir, Err: err}
	}
	return nil
}

var nameReplacer = strings.NewReplacer("/", "-", `\`, "-")

// SafeName makes s usable as a single path element.
func SafeName(s string) string { return nameReplacer.Replace(s) }

// FileName builds {title}_{base}_{timestamp}.csv. An empty base is left out
// and a ".csv" suffix on base is not repeated.
func FileName(title, base string, now time.Time) string {
	parts := []string{nameReplacer.Replace(title)}
	base = strings.TrimSuffix(nameReplacer.Replace(base), ".csv")
	if base != "" {
		parts = append(parts, base)
	}
	parts = append(parts, now.Format(TimestampLayout))
	return strings.Join(parts, "_") + ".csv"
}

// WriteItems writes the header and one row per item. Every field is quoted.
func WriteItems(w io.Writer, items []models.Item) error {
	bw := bufio.NewWriter(w)
	if err := writeRecord(bw, Header); err != nil {
		return err
	}
	for _, it := range items {
		if err := writeRecord(bw, []string{it.Image, it.Description, it.Price, it.Quantity, it.Flag}); err != nil {
			return err
		}
	}
	return bw.Flush()
}

func writeRecord(w *bufio.Writer, fields []string) error {
	for i, f := range fields {
		if i > 0 {
			if err := w.WriteByte(Delimiter); err != nil {
				return err
			}
		}
		if _, err := w.WriteString(`"` + strings.ReplaceAll(f, `"`, `""`) + `"`); err != nil {
			return err
		}
	}
	_, err := w.WriteString("\r\n")
	return err
}

// SaveCSV writes items to a new timestamped file under dir and returns its path.
func SaveCSV(dir, base, title string, items []models.Item, now time.Time) (string, error) {
	if err := EnsureDir(dir); err != nil {
		return "", err
	}
	path := filepath.Join(dir, FileName(title, base, now))
	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	if err := WriteItems(f, items); err != nil {
		f.Close()
		return path, err
	}
	return path, f.Close()
}

// ReadItems reads a file written by SaveCSV. Columns are found by header
// name, so column order does not matter.
func ReadItems(path string) ([]models.Item, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return DecodeItems(f)
}

// DecodeItems is ReadItems over an arbitrary reader.
func DecodeItems(r io.Reader) ([]models.Item, error) {
	cr := csv.NewReader(r)
	cr.Comma = Delimiter
	cr.FieldsPerRecord = -1
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, errors.New("empty csv")
	}
	col := map[string]int{}
	for i, h := range rows[0] {
		col[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, h := range Header {
		if _, ok := col[strings.ToLower(h)]; !ok {
			return nil, fmt.Errorf("csv must contain a %q header column", h)
		}
	}
	get := func(row []string, name string) string {
		if i := col[name]; i < len(row) {
			return row[i]
		}
		return ""
	}
	out := make([]models.Item, 0, len(rows)-1)
	for _, row := range rows[1:] {
		out = append(out, models.Item{
			Image:       get(row, "image"),
			Description: get(row, "description"),
			Price:       get(row, "price"),
			Quantity:    get(row, "quantity"),
			Flag:        get(row, "ha"),
		})
	}
	return out, nil
}
