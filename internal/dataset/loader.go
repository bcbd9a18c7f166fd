package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/xuri/excelize/v2"
)

// ErrNotFound signals that the dataset file is absent or unreadable.
// The service treats this as fatal at startup.
var ErrNotFound = errors.New("dataset file not found")

// Load reads a natality extract from disk. CSV and XLSX are supported,
// dispatched on the file extension. The returned table is raw: headers are
// untouched and the births column is still text.
func Load(path string) (*Table, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		return loadXLSX(path)
	default:
		return loadCSV(path)
	}
}

func loadCSV(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}

	var rows [][]string
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			// Malformed rows are skipped, same as unparseable measures later.
			continue
		}
		rows = append(rows, row)
	}

	return New(header, rows), nil
}

func loadXLSX(path string) (*Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("xlsx %s has no sheets", path)
	}

	all, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}
	if len(all) == 0 {
		return nil, fmt.Errorf("xlsx %s sheet %q is empty", path, sheets[0])
	}

	return New(all[0], all[1:]), nil
}

// Store memoizes the loaded, normalized dataset for the process lifetime.
// Every handler goes through Get; only the first call touches disk.
type Store struct {
	path  string
	once  sync.Once
	table *Table
	err   error
}

// NewStore creates a store for the dataset at path. Nothing is read until
// the first Get.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Get returns the normalized dataset, loading it exactly once.
func (s *Store) Get() (*Table, error) {
	s.once.Do(func() {
		raw, err := Load(s.path)
		if err != nil {
			s.err = err
			return
		}
		s.table, s.err = Normalize(raw)
	})
	return s.table, s.err
}
