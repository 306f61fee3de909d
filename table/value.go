package table

import (
	"math"
	"strconv"
	"time"
)

// Kind is the inferred type of a value or column.
type Kind uint8

const (
	Missing Kind = iota
	Numeric
	Text
	Temporal
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case Missing:
		return "missing"
	case Numeric:
		return "numeric"
	case Text:
		return "text"
	case Temporal:
		return "temporal"
	}
	return "unknown"
}

// Value is a single tagged cell.
type Value struct {
	kind    Kind
	num     float64
	str     string
	t       time.Time
	literal string
}

// NA returns a missing value.
func NA() Value {
	return Value{kind: Missing}
}

// Number returns a numeric value. NaN becomes missing.
func Number(f float64) Value {
	if math.IsNaN(f) {
		return NA()
	}
	return Value{kind: Numeric, num: f}
}

// String returns a text value.
func String(s string) Value {
	return Value{kind: Text, str: s}
}

// Time returns a temporal value.
func Time(t time.Time) Value {
	return Value{kind: Temporal, t: t}
}

func (v Value) withLiteral(lit string) Value {
	v.literal = lit
	return v
}

// Kind returns the value's tag.
func (v Value) Kind() Kind { return v.kind }

// IsMissing reports whether the value is missing.
func (v Value) IsMissing() bool { return v.kind == Missing }

// Float returns the numeric payload. Non-numeric values yield NaN, false.
func (v Value) Float() (float64, bool) {
	if v.kind != Numeric {
		return math.NaN(), false
	}
	return v.num, true
}

// Timestamp returns the temporal payload.
func (v Value) Timestamp() (time.Time, bool) {
	if v.kind != Temporal {
		return time.Time{}, false
	}
	return v.t, true
}

// String renders the value. Loaded cells keep the literal they were read from.
func (v Value) String() string {
	if v.literal != "" {
		return v.literal
	}
	switch v.kind {
	case Numeric:
		return strconv.FormatFloat(v.num, 'g', -1, 64)
	case Text:
		return v.str
	case Temporal:
		return formatTime(v.t)
	}
	return ""
}

func formatTime(t time.Time) string {
	if t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0 && t.Nanosecond() == 0 {
		return t.Format("2006-01-02")
	}
	return t.Format(time.RFC3339)
}
