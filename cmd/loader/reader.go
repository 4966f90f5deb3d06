// Streaming parquet reading with skip support for resume.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/parquet-go/parquet-go"
)

// itemRow is a raw catalog item row from an items parquet file.
type itemRow struct {
	ID          string
	SellerID    string
	Title       string
	Description string
	Price       float64
	CategoryID  int64
	BrandID     int64
	ConditionID int64
	Status      string
}

// nameRow is a raw taxonomy row (categories, brands, conditions).
type nameRow struct {
	ID       int64
	Name     string
	ParentID int64
}

// itemColumns holds leaf-level column indexes resolved by name.
type itemColumns struct {
	id, sellerID, title, description int
	price, categoryID, brandID       int
	conditionID, status              int
}

func resolveItemColumns(pf *parquet.File) itemColumns {
	cols := itemColumns{
		id: -1, sellerID: -1, title: -1, description: -1,
		price: -1, categoryID: -1, brandID: -1, conditionID: -1, status: -1,
	}
	for i, path := range pf.Schema().Columns() {
		if len(path) == 0 {
			continue
		}
		switch path[0] {
		case "id":
			cols.id = i
		case "seller_id":
			cols.sellerID = i
		case "title", "name":
			cols.title = i
		case "description":
			cols.description = i
		case "price":
			cols.price = i
		case "category_id":
			cols.categoryID = i
		case "brand_id":
			cols.brandID = i
		case "condition_id":
			cols.conditionID = i
		case "status":
			cols.status = i
		}
	}
	return cols
}

func rowToItem(row parquet.Row, cols itemColumns) itemRow {
	var it itemRow
	for _, v := range row {
		if v.IsNull() {
			continue
		}
		switch v.Column() {
		case cols.id:
			it.ID = v.String()
		case cols.sellerID:
			it.SellerID = v.String()
		case cols.title:
			it.Title = v.String()
		case cols.description:
			it.Description = v.String()
		case cols.price:
			it.Price = v.Double()
		case cols.categoryID:
			it.CategoryID = v.Int64()
		case cols.brandID:
			it.BrandID = v.Int64()
		case cols.conditionID:
			it.ConditionID = v.Int64()
		case cols.status:
			it.Status = v.String()
		}
	}
	return it
}

// itemFiles lists items*.parquet under dataDir in stable order.
func itemFiles(dataDir string) ([]string, error) {
	files, err := filepath.Glob(filepath.Join(dataDir, "items*.parquet"))
	if err != nil {
		return nil, fmt.Errorf("glob item files: %w", err)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no items*.parquet files found in %s", dataDir)
	}
	sort.Strings(files)
	return files, nil
}

// readItemsCallback is invoked per row with the global sequential row number.
// Returning false stops the read.
type readItemsCallback func(row *itemRow, seq int) bool

// readItems streams item rows across files, skipping the first skipRows rows.
// maxRows=0 means no limit. Returns the number of rows passed to cb.
func readItems(files []string, skipRows, maxRows int, cb readItemsCallback) (int, error) {
	seq := 0
	read := 0
	for _, path := range files {
		h, err := openParquet(path)
		if err != nil {
			return read, fmt.Errorf("read %s: %w", filepath.Base(path), err)
		}
		cols := resolveItemColumns(h.pf)

		stop, err := eachRow(h.pf, func(row parquet.Row) bool {
			if seq < skipRows {
				seq++
				return true
			}
			it := rowToItem(row, cols)
			if !cb(&it, seq) {
				return false
			}
			seq++
			read++
			return maxRows == 0 || read < maxRows
		})
		h.Close()
		if err != nil {
			return read, fmt.Errorf("read %s: %w", filepath.Base(path), err)
		}
		if stop {
			break
		}
	}
	return read, nil
}

// readTaxonomy reads an id/name(/parent_id) parquet file. Missing file is not
// an error: taxonomy files are optional per kind.
func readTaxonomy(path string) ([]nameRow, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	h, err := openParquet(path)
	if err != nil {
		return nil, err
	}
	defer h.Close()

	idIdx, nameIdx, parentIdx := -1, -1, -1
	for i, col := range h.pf.Schema().Columns() {
		switch col[0] {
		case "id":
			idIdx = i
		case "name":
			nameIdx = i
		case "parent_id":
			parentIdx = i
		}
	}
	if idIdx < 0 || nameIdx < 0 {
		return nil, fmt.Errorf("id/name columns not found in %s", filepath.Base(path))
	}

	var rows []nameRow
	_, err = eachRow(h.pf, func(row parquet.Row) bool {
		var r nameRow
		for _, v := range row {
			if v.IsNull() {
				continue
			}
			switch v.Column() {
			case idIdx:
				r.ID = v.Int64()
			case nameIdx:
				r.Name = v.String()
			case parentIdx:
				r.ParentID = v.Int64()
			}
		}
		if r.ID != 0 {
			rows = append(rows, r)
		}
		return true
	})
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// eachRow streams every row of the file through cb. Returns true when cb
// stopped the iteration early.
func eachRow(pf *parquet.File, cb func(parquet.Row) bool) (bool, error) {
	for _, rg := range pf.RowGroups() {
		rows := parquet.NewRowGroupReader(rg)
		buf := make([]parquet.Row, 1000)

		for {
			n, readErr := rows.ReadRows(buf)
			for i := 0; i < n; i++ {
				if !cb(buf[i]) {
					return true, nil
				}
			}
			if readErr != nil {
				if errors.Is(readErr, io.EOF) {
					break
				}
				return false, fmt.Errorf("read rows: %w", readErr)
			}
		}
	}
	return false, nil
}

// parquetHandle wraps parquet.File + underlying os.File for proper cleanup.
type parquetHandle struct {
	pf   *parquet.File
	file *os.File
}

func (h *parquetHandle) Close() {
	_ = h.file.Close()
}

func openParquet(path string) (*parquetHandle, error) {
	cleanPath := filepath.Clean(path)
	f, err := os.Open(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("open: %w", err)
	}

	stat, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("stat: %w", err)
	}

	pf, err := parquet.OpenFile(f, stat.Size())
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("open parquet: %w", err)
	}
	return &parquetHandle{pf: pf, file: f}, nil
}
