package table

import (
	"strconv"
	"strings"
	"time"
)

var missingTokens = map[string]bool{
	"":     true,
	"NA":   true,
	"N/A":  true,
	"NaN":  true,
	"nan":  true,
	"null": true,
	"NULL": true,
}

// dateLayouts are tried in order. Year-only values stay numeric.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02T15:04:05",
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006/01/02",
	"01/02/2006",
	"02-Jan-2006",
}

func cleanCell(s string) string {
	return strings.TrimSpace(strings.Trim(strings.TrimSpace(s), "\""))
}

func parseTime(s string, preferred string) (time.Time, bool) {
	if preferred != "" {
		if ts, err := time.Parse(preferred, s); err == nil {
			return ts, true
		}
	}
	for _, layout := range dateLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts, true
		}
	}
	return time.Time{}, false
}

// InferColumn decides a column's kind from its literal cells and converts
// them once. A column is numeric if every non-missing cell parses as a
// number, temporal if every non-missing cell parses as a date, text
// otherwise. A column with no values at all is numeric.
func InferColumn(name string, cells []string, dateFormat string) *Column {
	cleaned := make([]string, len(cells))
	numeric, temporal := true, true
	for i, raw := range cells {
		s := cleanCell(raw)
		cleaned[i] = s
		if missingTokens[s] {
			continue
		}
		if numeric {
			if _, err := strconv.ParseFloat(s, 64); err != nil {
				numeric = false
			}
		}
		if temporal {
			if _, ok := parseTime(s, dateFormat); !ok {
				temporal = false
			}
		}
	}

	col := &Column{Name: name, Values: make([]Value, len(cells))}
	switch {
	case numeric:
		col.Kind = Numeric
	case temporal:
		col.Kind = Temporal
	default:
		col.Kind = Text
	}

	for i, s := range cleaned {
		if missingTokens[s] {
			col.Values[i] = NA()
			continue
		}
		switch col.Kind {
		case Numeric:
			f, _ := strconv.ParseFloat(s, 64)
			col.Values[i] = Number(f).withLiteral(s)
		case Temporal:
			ts, _ := parseTime(s, dateFormat)
			col.Values[i] = Time(ts).withLiteral(s)
		default:
			col.Values[i] = String(s)
		}
	}
	return col
}
