package table

import (
	"fmt"
	"os"

	"github.com/xuri/excelize/v2"

	"github.com/sartorproj/goeda"
)

// LoadXLSX loads a table from a worksheet of an Excel workbook. The sheet is
// opts.Sheet, or the first sheet when unset. Rows follow the same layout and
// inference rules as LoadCSV.
func LoadXLSX(path string, opts *LoadOptions) (*Table, error) {
	if opts == nil {
		opts = DefaultLoadOptions()
	}
	if _, err := os.Stat(path); err != nil {
		return Empty(), openError(path, err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return Empty(), fmt.Errorf("failed to open workbook %s: %w", path, err)
	}
	defer f.Close()

	sheet := opts.Sheet
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return Empty(), goeda.Errorf(goeda.KindEmptyData, "load", "", "workbook %s has no sheets", path)
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return Empty(), fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}
	if len(rows) <= opts.SkipRows {
		return Empty(), goeda.Errorf(goeda.KindEmptyData, "load", "", "sheet %q has no header row", sheet)
	}

	t, err := fromRecords(rows[opts.SkipRows], rows[opts.SkipRows+1:], opts)
	if err != nil {
		return Empty(), fmt.Errorf("load %s: %w", path, err)
	}
	return t, nil
}
