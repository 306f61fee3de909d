package table

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/sartorproj/goeda"
)

// LoadOptions holds options for loading tables from files.
type LoadOptions struct {
	Delimiter   rune   // Field delimiter (default: ',')
	SkipRows    int    // Number of rows to skip before the header
	IndexColumn string // Temporal column promoted to the index (optional)
	DateFormat  string // Preferred date layout, tried before the built-in ones
	Sheet       string // Worksheet for spreadsheet files (default: first sheet)
}

// DefaultLoadOptions returns default options for loading.
func DefaultLoadOptions() *LoadOptions {
	return &LoadOptions{
		Delimiter:  ',',
		DateFormat: "2006-01-02",
	}
}

// Load reads a table from path, choosing the reader from the file extension.
func Load(path string, opts *LoadOptions) (*Table, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return LoadXLSX(path, opts)
	default:
		return LoadCSV(path, opts)
	}
}

// LoadCSV loads a table from a delimited text file. A missing file yields an
// empty table and a FileNotFound error.
func LoadCSV(path string, opts *LoadOptions) (*Table, error) {
	file, err := os.Open(path)
	if err != nil {
		return Empty(), openError(path, err)
	}
	defer file.Close()

	t, err := LoadCSVFromReader(file, opts)
	if err != nil {
		return Empty(), fmt.Errorf("load %s: %w", path, err)
	}
	return t, nil
}

func openError(path string, err error) error {
	if errors.Is(err, fs.ErrNotExist) {
		return &goeda.Error{Kind: goeda.KindFileNotFound, Op: "load", Detail: path, Cause: err}
	}
	return fmt.Errorf("load %s: %w", path, err)
}

// LoadCSVFromReader loads a table from an io.Reader. The first record is the
// header; a header without data rows gives a table with zero rows.
func LoadCSVFromReader(r io.Reader, opts *LoadOptions) (*Table, error) {
	if opts == nil {
		opts = DefaultLoadOptions()
	}

	reader := csv.NewReader(skipBOM(r))
	if opts.Delimiter != 0 {
		reader.Comma = opts.Delimiter
	}
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	for i := 0; i < opts.SkipRows; i++ {
		if _, err := reader.Read(); err != nil {
			return nil, err
		}
	}

	header, err := reader.Read()
	if err == io.EOF {
		return nil, goeda.Errorf(goeda.KindEmptyData, "load", "", "no header row")
	}
	if err != nil {
		return nil, err
	}

	var records [][]string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}

	return fromRecords(header, records, opts)
}

// skipBOM drops a leading UTF-8 byte order mark, as written by spreadsheet
// exports.
func skipBOM(r io.Reader) io.Reader {
	br := bufio.NewReader(r)
	if rn, _, err := br.ReadRune(); err == nil && rn != '\ufeff' {
		_ = br.UnreadRune()
	}
	return br
}

// fromRecords infers every column and assembles the table. Short records are
// padded with missing cells; extra cells are ignored.
func fromRecords(header []string, records [][]string, opts *LoadOptions) (*Table, error) {
	names := uniqueNames(header)
	cells := make([][]string, len(names))
	for j := range cells {
		cells[j] = make([]string, len(records))
	}
	for i, record := range records {
		for j := range names {
			if j < len(record) {
				cells[j][i] = record[j]
			}
		}
	}

	columns := make([]*Column, len(names))
	for j, name := range names {
		columns[j] = InferColumn(name, cells[j], opts.DateFormat)
	}

	t, err := New(columns...)
	if err != nil {
		return nil, err
	}
	if opts.IndexColumn != "" {
		return t.PromoteIndex(opts.IndexColumn)
	}
	return t, nil
}

// uniqueNames cleans header cells and suffixes repeats with ".1", ".2", ...
func uniqueNames(header []string) []string {
	seen := make(map[string]int, len(header))
	names := make([]string, len(header))
	for i, h := range header {
		name := cleanCell(h)
		if name == "" {
			name = "Unnamed: " + strconv.Itoa(i)
		}
		if n, ok := seen[name]; ok {
			seen[name] = n + 1
			name = name + "." + strconv.Itoa(n+1)
		} else {
			seen[name] = 0
		}
		names[i] = name
	}
	return names
}

// SaveCSV writes the table as comma-separated text. The index, if any, is
// written as the first column; missing values are written as empty cells.
func SaveCSV(t *Table, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	defer file.Close()

	if err := WriteCSV(t, file); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return file.Close()
}

// WriteCSV writes the table to w.
func WriteCSV(t *Table, w io.Writer) error {
	writer := csv.NewWriter(w)

	header := t.Names()
	if t.HasIndex() {
		header = append([]string{t.IndexName()}, header...)
	}
	if err := writer.Write(header); err != nil {
		return err
	}

	for i := 0; i < t.NumRows(); i++ {
		record := make([]string, 0, len(header))
		if t.HasIndex() {
			record = append(record, formatTime(t.index[i]))
		}
		for _, v := range t.Row(i) {
			record = append(record, v.String())
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}
