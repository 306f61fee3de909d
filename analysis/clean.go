package analysis

import "github.com/sartorproj/goeda/table"

// DropMissing returns the rows of t that hold no missing value, and the
// number of rows removed.
func DropMissing(t *table.Table) (*table.Table, int) {
	n := t.NumRows()
	keep := make([]int, 0, n)
	columns := t.Columns()

rows:
	for i := 0; i < n; i++ {
		for _, c := range columns {
			if c.Values[i].IsMissing() {
				continue rows
			}
		}
		keep = append(keep, i)
	}

	if len(keep) == n {
		return t, 0
	}
	return t.Take(keep), n - len(keep)
}
