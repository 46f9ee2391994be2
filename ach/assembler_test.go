package ach

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func testFileConfig() FileConfig {
	return FileConfig{
		ImmediateDestination:     "091000019",
		ImmediateOrigin:          "1234567890",
		ImmediateDestinationName: "Wells Fargo Garnishment",
		ImmediateOriginName:      "GarnishEdge Payroll",
		CompanyName:              "GarnishEdge Payroll",
		CompanyId:                "1234567890",
		StandardEntryClass:       "CCD",
		ServiceClassCode:         "200",
		OriginatingDfiId:         "12100024",
		EntryDescription:         "GARNISH",
		TransactionCode:          "22",
	}
}

func testRunParams() RunParams {
	d := time.Date(2026, 9, 15, 14, 30, 0, 0, time.UTC)
	return RunParams{
		PayDate:        d,
		FileIdModifier: "A",
		BatchNumber:    1,
		CreationTime:   d,
	}
}

func fileLines(t *testing.T, generated *GeneratedFile) []string {
	t.Helper()
	text := generated.Text
	if !strings.HasSuffix(text, "\n") {
		t.Fatal("file does not end with a newline")
	}
	lines := strings.Split(strings.TrimSuffix(text, "\n"), "\n")
	for i, line := range lines {
		if len(line) != LineWidth {
			t.Fatalf("line %d is %d characters, want %d: %q", i+1, len(line), LineWidth, line)
		}
	}
	return lines
}

func TestBuildFileSingleOrder(t *testing.T) {
	generated, err := BuildFile(testFileConfig(), testRunParams(), []Order{childSupportOrder()}, nil)
	if err != nil {
		t.Fatal(err)
	}

	lines := fileLines(t, generated)
	if len(lines) != 10 {
		t.Fatalf("line count = %d, want 10", len(lines))
	}

	// Mandated record order: 1, 5, 6, 7, 8, filler, 9.
	wantPrefixes := []string{"1", "5", "6", "7", "8", " ", " ", " ", " ", "9"}
	for i, prefix := range wantPrefixes {
		if !strings.HasPrefix(lines[i], prefix) {
			t.Errorf("line %d starts with %q, want %q", i+1, lines[i][:1], prefix)
		}
	}

	stats := generated.Stats
	if stats.EntryCount != 1 || stats.AddendaCount != 1 {
		t.Errorf("counts = %d/%d, want 1/1", stats.EntryCount, stats.AddendaCount)
	}
	if stats.BlockCount != 1 {
		t.Errorf("block count = %d, want 1", stats.BlockCount)
	}
	if !stats.TotalCredit.Equal(decimal.NewFromFloat(450.00)) {
		t.Errorf("total credit = %s, want 450", stats.TotalCredit)
	}
	if !stats.TotalDebit.IsZero() {
		t.Errorf("total debit = %s, want 0", stats.TotalDebit)
	}
	if stats.EntryHash != 12100024 {
		t.Errorf("entry hash = %d, want 12100024", stats.EntryHash)
	}

	// The addenda payload begins right after the type codes.
	if !strings.HasPrefix(lines[3][3:], "DED*CS*CASE1") {
		t.Errorf("addenda payload = %q", lines[3][3:33])
	}

	// Batch control carries entries + addenda.
	if lines[4][4:10] != "000002" {
		t.Errorf("batch control count = %q, want 000002", lines[4][4:10])
	}
	// File control: one batch, one block.
	if lines[9][1:7] != "000001" || lines[9][7:13] != "000001" {
		t.Errorf("file control counts = %q/%q", lines[9][1:7], lines[9][7:13])
	}
	// Control totals agree.
	if lines[4][32:44] != "000000045000" || lines[9][43:55] != "000000045000" {
		t.Errorf("credit totals = %q / %q", lines[4][32:44], lines[9][43:55])
	}
}

func TestBuildFileTraceNumbersIncrement(t *testing.T) {
	orders := []Order{childSupportOrder(), childSupportOrder(), childSupportOrder()}
	orders[1].CaseId = "CASE2"
	orders[2].CaseId = "CASE3"

	generated, err := BuildFile(testFileConfig(), testRunParams(), orders, nil)
	if err != nil {
		t.Fatal(err)
	}
	lines := fileLines(t, generated)

	entryAt := func(n int) string { return lines[2+2*n] }
	addendaAt := func(n int) string { return lines[3+2*n] }

	for n := 0; n < 3; n++ {
		entry := entryAt(n)
		if entry[79:87] != "12100024" {
			t.Errorf("entry %d trace prefix = %q", n+1, entry[79:87])
		}
		wantSeq := PadInt(int64(n+1), 7)
		if entry[87:94] != wantSeq {
			t.Errorf("entry %d trace sequence = %q, want %q", n+1, entry[87:94], wantSeq)
		}
		addenda := addendaAt(n)
		if addenda[83:87] != PadInt(int64(n+1), 4) {
			t.Errorf("addenda %d sequence = %q", n+1, addenda[83:87])
		}
		if addenda[87:94] != wantSeq {
			t.Errorf("addenda %d entry reference = %q, want %q", n+1, addenda[87:94], wantSeq)
		}
	}
}

func TestBuildFileEntryHashSumsReceivingDfis(t *testing.T) {
	orders := []Order{childSupportOrder(), childSupportOrder()}
	orders[1].CaseId = "CASE2"
	orders[1].RoutingNumber = "091000019"

	generated, err := BuildFile(testFileConfig(), testRunParams(), orders, nil)
	if err != nil {
		t.Fatal(err)
	}

	want := uint64(12100024 + 9100001)
	if generated.Stats.EntryHash != want {
		t.Errorf("entry hash = %d, want %d", generated.Stats.EntryHash, want)
	}

	lines := fileLines(t, generated)
	wantField := PadInt(int64(want), 10)
	if lines[6][10:20] != wantField {
		t.Errorf("batch control hash = %q, want %q", lines[6][10:20], wantField)
	}
	if lines[9][21:31] != wantField {
		t.Errorf("file control hash = %q, want %q", lines[9][21:31], wantField)
	}
}

func TestBuildFileLineCountIsBlockMultiple(t *testing.T) {
	for _, n := range []int{1, 3, 4, 7, 12, 23} {
		orders := make([]Order, n)
		for i := range orders {
			orders[i] = childSupportOrder()
		}
		generated, err := BuildFile(testFileConfig(), testRunParams(), orders, nil)
		if err != nil {
			t.Fatalf("%d orders: %v", n, err)
		}
		lines := fileLines(t, generated)
		if len(lines)%BlockingFactor != 0 {
			t.Errorf("%d orders: %d lines is not a multiple of %d", n, len(lines), BlockingFactor)
		}
		if len(lines) != generated.Stats.BlockCount*BlockingFactor {
			t.Errorf("%d orders: %d lines but block count %d", n, len(lines), generated.Stats.BlockCount)
		}
	}
}

func TestBuildFileDeterministic(t *testing.T) {
	first, err := BuildFile(testFileConfig(), testRunParams(), []Order{childSupportOrder()}, nil)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 5; i++ {
		again, err := BuildFile(testFileConfig(), testRunParams(), []Order{childSupportOrder()}, nil)
		if err != nil {
			t.Fatal(err)
		}
		if again.Text != first.Text {
			t.Fatalf("iteration %d produced different bytes", i)
		}
	}
}

func TestBuildFileDebitCodesAccumulateSeparately(t *testing.T) {
	orders := []Order{childSupportOrder(), childSupportOrder()}
	orders[1].CaseId = "CASE2"
	orders[1].TransactionCode = "27"
	orders[1].Amount = decimal.NewFromFloat(100.00)

	generated, err := BuildFile(testFileConfig(), testRunParams(), orders, nil)
	if err != nil {
		t.Fatal(err)
	}
	if !generated.Stats.TotalCredit.Equal(decimal.NewFromFloat(450.00)) {
		t.Errorf("credit = %s", generated.Stats.TotalCredit)
	}
	if !generated.Stats.TotalDebit.Equal(decimal.NewFromFloat(100.00)) {
		t.Errorf("debit = %s", generated.Stats.TotalDebit)
	}
}

func TestBuildFileSkipsUnencodableOrder(t *testing.T) {
	orders := []Order{childSupportOrder(), childSupportOrder()}
	orders[1].CaseId = "CASE2"
	orders[1].Amount = decimal.NewFromInt(2000000000) // over the 10-digit cents field

	generated, err := BuildFile(testFileConfig(), testRunParams(), orders, nil)
	if err != nil {
		t.Fatal(err)
	}
	if generated.Stats.EntryCount != 1 {
		t.Errorf("entry count = %d, want 1", generated.Stats.EntryCount)
	}
	if len(generated.Stats.SkippedCaseIds) != 1 || generated.Stats.SkippedCaseIds[0] != "CASE2" {
		t.Errorf("skipped = %v", generated.Stats.SkippedCaseIds)
	}
	// The surviving order still gets trace sequence 1.
	lines := fileLines(t, generated)
	if lines[2][87:94] != "0000001" {
		t.Errorf("trace sequence = %q", lines[2][87:94])
	}
}

func TestBuildFileAllOrdersUnencodable(t *testing.T) {
	order := childSupportOrder()
	order.Amount = decimal.NewFromInt(2000000000)
	_, err := BuildFile(testFileConfig(), testRunParams(), []Order{order}, nil)
	if err != ErrNoOrders {
		t.Errorf("got %v, want ErrNoOrders", err)
	}
}

func TestBuildFileNoOrders(t *testing.T) {
	if _, err := BuildFile(testFileConfig(), testRunParams(), nil, nil); err != ErrNoOrders {
		t.Errorf("got %v, want ErrNoOrders", err)
	}
}

func TestBuildFileNoConfiguration(t *testing.T) {
	if _, err := BuildFile(FileConfig{}, testRunParams(), []Order{childSupportOrder()}, nil); err != ErrNoConfiguration {
		t.Errorf("got %v, want ErrNoConfiguration", err)
	}
}

func TestResolvePayDate(t *testing.T) {
	d := time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)
	if got := ResolvePayDate(d); !got.Equal(d) {
		t.Errorf("got %v", got)
	}
	if got := ResolvePayDate(time.Time{}); got.IsZero() {
		t.Error("zero date not resolved")
	}
}
