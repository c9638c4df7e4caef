/*
Copyright © 2019 the RSR authors.
This file is part of RSR.

RSR is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

RSR is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with RSR.  If not, see <http://www.gnu.org/licenses/>.
*/

package interpolation

import (
	"bufio"
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"sync"
	"unicode"

	"github.com/ctessum/requestcache"
	"github.com/tealeg/xlsx"
)

// FileOptions specify which columns of a schedule file hold the abscissa
// and the values.
type FileOptions struct {
	// TimeColumn is the index of the abscissa column.
	TimeColumn int

	// ValueColumns are the indices of the value columns. If empty, all
	// columns other than TimeColumn are used.
	ValueColumns []int

	// Sheet is the worksheet to read from Excel files. If empty, the
	// first sheet is used.
	Sheet string
}

// ReadFile reads table entries from a schedule file. Files ending in
// ".xlsx" are read as Excel workbooks, files ending in ".csv" as
// comma-separated values, and anything else as whitespace-separated
// text. Lines starting with "#" or "//" are ignored, and the first row is
// skipped if its time column is not a number. Environment variables in
// path are expanded. The resulting abscissas must be strictly increasing.
func ReadFile(path string, opts FileOptions) ([]Entry, error) {
	path = os.ExpandEnv(path)
	records, err := loadRecords(path, opts.Sheet)
	if err != nil {
		return nil, err
	}
	entries := make([]Entry, 0, len(records))
	for i, rec := range records {
		if opts.TimeColumn >= len(rec) {
			return nil, fmt.Errorf("interpolation: %s row %d: no column %d", path, i, opts.TimeColumn)
		}
		x, err := strconv.ParseFloat(strings.TrimSpace(rec[opts.TimeColumn]), 64)
		if err != nil {
			if i == 0 {
				continue // header
			}
			return nil, fmt.Errorf("interpolation: %s row %d: %v", path, i, err)
		}
		cols := opts.ValueColumns
		if len(cols) == 0 {
			for j := range rec {
				if j != opts.TimeColumn {
					cols = append(cols, j)
				}
			}
		}
		v := make([]float64, len(cols))
		for j, c := range cols {
			if c >= len(rec) {
				return nil, fmt.Errorf("interpolation: %s row %d: no column %d", path, i, c)
			}
			if v[j], err = strconv.ParseFloat(strings.TrimSpace(rec[c]), 64); err != nil {
				return nil, fmt.Errorf("interpolation: %s row %d: %v", path, i, err)
			}
		}
		entries = append(entries, Entry{X: x, V: v})
	}
	if _, err := newTable(entries, false); err != nil {
		return nil, fmt.Errorf("interpolation: %s: %w", path, err)
	}
	return entries, nil
}

type fileRequest struct {
	path, sheet string
}

var (
	recordCacheOnce sync.Once
	recordCache     *requestcache.Cache
)

// loadRecords loads the rows of a file, using a cache so that a schedule
// shared by several wells is only read once.
func loadRecords(path, sheet string) ([][]string, error) {
	recordCacheOnce.Do(func() {
		recordCache = requestcache.NewCache(func(ctx context.Context, req interface{}) (interface{}, error) {
			r := req.(fileRequest)
			return readRecords(r.path, r.sheet)
		}, runtime.GOMAXPROCS(-1), requestcache.Deduplicate(), requestcache.Memory(100))
	})
	r := recordCache.NewRequest(context.Background(), fileRequest{path: path, sheet: sheet}, path+"|"+sheet)
	result, err := r.Result()
	if err != nil {
		return nil, err
	}
	return result.([][]string), nil
}

func readRecords(path, sheet string) ([][]string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		return readExcel(path, sheet)
	case ".csv":
		return readCSV(path)
	}
	return readText(path)
}

func readExcel(path, sheet string) ([][]string, error) {
	f, err := xlsx.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("interpolation: opening xlsx file: %v", err)
	}
	var s *xlsx.Sheet
	if sheet == "" {
		if len(f.Sheets) == 0 {
			return nil, fmt.Errorf("interpolation: %s has no sheets", path)
		}
		s = f.Sheets[0]
	} else {
		var ok bool
		if s, ok = f.Sheet[sheet]; !ok {
			return nil, fmt.Errorf("interpolation: %s has no sheet %s", path, sheet)
		}
	}
	var o [][]string
	for _, row := range s.Rows {
		if row == nil || len(row.Cells) == 0 {
			continue
		}
		rec := make([]string, len(row.Cells))
		empty := true
		for i, c := range row.Cells {
			rec[i] = strings.TrimSpace(c.Value)
			if rec[i] != "" {
				empty = false
			}
		}
		if !empty {
			o = append(o, rec)
		}
	}
	return o, nil
}

func readCSV(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("interpolation: %v", err)
	}
	defer f.Close()
	r := csv.NewReader(f)
	r.Comment = '#'
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true
	recs, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("interpolation: reading %s: %v", path, err)
	}
	return recs, nil
}

func readText(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("interpolation: %v", err)
	}
	defer f.Close()
	var o [][]string
	s := bufio.NewScanner(f)
	for s.Scan() {
		line := strings.TrimSpace(s.Text())
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "//") {
			continue
		}
		o = append(o, strings.FieldsFunc(line, func(r rune) bool {
			return unicode.IsSpace(r) || r == ',' || r == ';'
		}))
	}
	if err := s.Err(); err != nil {
		return nil, fmt.Errorf("interpolation: reading %s: %v", path, err)
	}
	return o, nil
}
