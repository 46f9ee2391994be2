// Package ach encodes payment instructions into NACHA CCD+ transmission
// files: 94-character fixed-width records, block padding, running totals and
// trace numbering. Everything in this package is pure; persistence and
// sequencing against prior runs live in the workflow package.
package ach

import (
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type Alignment int

const (
	AlignLeft Alignment = iota
	AlignRight
)

type DateStyle int

const (
	DateStyleYYMMDD DateStyle = iota
	DateStyleJulian
)

// PadString truncates value to width, then pads with fill. A fixed-width
// field never fails: empty input becomes an all-fill field.
func PadString(value string, width int, align Alignment, fill byte) string {
	if len(value) > width {
		value = value[:width]
	}
	if len(value) == width {
		return value
	}
	padding := strings.Repeat(string(fill), width-len(value))
	if align == AlignLeft {
		return value + padding
	}
	return padding + value
}

// PadNumber right-justifies the numeric content of value, zero-filled.
// Non-numeric input encodes as zero.
func PadNumber(value string, width int) string {
	n, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
	if err != nil || n < 0 {
		n = 0
	}
	return PadInt(n, width)
}

// PadInt zero-pads n to width. Negative values encode as zero; a value wider
// than the field keeps its low-order digits so the field width always holds.
func PadInt(n int64, width int) string {
	if n < 0 {
		n = 0
	}
	s := strconv.FormatInt(n, 10)
	if len(s) > width {
		s = s[len(s)-width:]
	}
	return PadString(s, width, AlignRight, '0')
}

// FormatAmount renders a dollar amount as zero-padded integer cents.
// Negative amounts clamp to zero cents rather than producing a sign
// character that would corrupt the fixed-width layout.
func FormatAmount(amount decimal.Decimal, width int) string {
	cents := amount.Mul(decimal.NewFromInt(100)).Round(0).IntPart()
	return PadInt(cents, width)
}

// FormatDate renders a date as YYMMDD or YYDDD (Julian). A zero date falls
// back to today: the receiving bank rejects blank date fields outright, so
// callers prefer a well-formed current date over an unparseable field.
func FormatDate(t time.Time, style DateStyle) string {
	if t.IsZero() {
		t = time.Now()
	}
	if style == DateStyleJulian {
		return t.Format("06") + PadInt(int64(t.YearDay()), 3)
	}
	return t.Format("060102")
}

// digitsOnly strips every non-digit rune.
func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// alphanumericOnly keeps letters and digits, dropping separators that banks
// reject inside account number fields.
func alphanumericOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if (r >= '0' && r <= '9') || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
			b.WriteRune(r)
		}
	}
	return b.String()
}
