package ach

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestPadString(t *testing.T) {
	if got := PadString("AB", 5, AlignLeft, ' '); got != "AB   " {
		t.Errorf("left pad: got %q", got)
	}
	if got := PadString("AB", 5, AlignRight, ' '); got != "   AB" {
		t.Errorf("right pad: got %q", got)
	}
	if got := PadString("ABCDEFG", 5, AlignLeft, ' '); got != "ABCDE" {
		t.Errorf("truncate: got %q", got)
	}
	if got := PadString("", 3, AlignLeft, '0'); got != "000" {
		t.Errorf("empty fill: got %q", got)
	}
}

func TestPadNumber(t *testing.T) {
	if got := PadNumber("42", 6); got != "000042" {
		t.Errorf("got %q", got)
	}
	// Non-numeric input encodes as zero, never corrupts the field.
	if got := PadNumber("not-a-number", 6); got != "000000" {
		t.Errorf("non-numeric: got %q", got)
	}
	if got := PadNumber("", 4); got != "0000" {
		t.Errorf("empty: got %q", got)
	}
}

func TestPadIntOverflowKeepsLowOrderDigits(t *testing.T) {
	if got := PadInt(1234567, 4); got != "4567" {
		t.Errorf("got %q", got)
	}
	if got := PadInt(-5, 4); got != "0000" {
		t.Errorf("negative: got %q", got)
	}
}

func TestFormatAmountRendersCents(t *testing.T) {
	if got := FormatAmount(decimal.NewFromFloat(450.00), 10); got != "0000045000" {
		t.Errorf("got %q", got)
	}
	if got := FormatAmount(decimal.NewFromFloat(0.01), 10); got != "0000000001" {
		t.Errorf("one cent: got %q", got)
	}
	// Half-cent inputs round instead of truncating.
	if got := FormatAmount(decimal.NewFromFloat(1.005), 10); got != "0000000101" {
		t.Errorf("rounding: got %q", got)
	}
	// Negative amounts clamp to zero; a minus sign would break the layout.
	if got := FormatAmount(decimal.NewFromFloat(-3.50), 10); got != "0000000000" {
		t.Errorf("negative: got %q", got)
	}
}

func TestFormatDate(t *testing.T) {
	d := time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)
	if got := FormatDate(d, DateStyleYYMMDD); got != "260915" {
		t.Errorf("yymmdd: got %q", got)
	}
	// 2026-09-15 is day 258 of a non-leap year.
	if got := FormatDate(d, DateStyleJulian); got != "26258" {
		t.Errorf("julian: got %q", got)
	}
}

func TestFormatDateZeroFallsBackToToday(t *testing.T) {
	got := FormatDate(time.Time{}, DateStyleYYMMDD)
	want := time.Now().Format("060102")
	if got != want {
		t.Errorf("got %q, want today %q", got, want)
	}
}

func TestCheckDigitKnownRoutingNumbers(t *testing.T) {
	// Real ABA prefixes with published check digits.
	cases := map[string]string{
		"12100024": "8", // 121000248
		"09100001": "9", // 091000019
		"02200004": "6", // 022000046
	}
	for prefix, want := range cases {
		if got := CheckDigit(prefix); got != want {
			t.Errorf("CheckDigit(%s) = %s, want %s", prefix, got, want)
		}
	}
}

func TestCheckDigitRejectsMalformedInput(t *testing.T) {
	for _, input := range []string{"", "1234567", "123456789", "1210002x"} {
		if got := CheckDigit(input); got != "0" {
			t.Errorf("CheckDigit(%q) = %s, want 0", input, got)
		}
	}
}

func TestCheckDigitDeterministic(t *testing.T) {
	first := CheckDigit("12100024")
	for i := 0; i < 100; i++ {
		if got := CheckDigit("12100024"); got != first {
			t.Fatalf("iteration %d: got %s, want %s", i, got, first)
		}
	}
}

func TestRoutingParts(t *testing.T) {
	// Full ABA number keeps its literal ninth digit.
	dfi, check := routingParts("121000248")
	if dfi != "12100024" || check != "8" {
		t.Errorf("got (%s, %s)", dfi, check)
	}
	// Truncated input gets a computed check digit.
	dfi, check = routingParts("12100024")
	if dfi != "12100024" || check != "8" {
		t.Errorf("8-digit: got (%s, %s)", dfi, check)
	}
	// Separators are stripped before splitting.
	dfi, check = routingParts("121-000-248")
	if dfi != "12100024" || check != "8" {
		t.Errorf("separators: got (%s, %s)", dfi, check)
	}
}
