package export

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func testMetadata() Metadata {
	return Metadata{
		PayDate:     time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC),
		AgencyPayee: "CA State Disbursement Unit",
		EntryCount:  3,
		TotalAmount: decimal.NewFromFloat(1350.00),
		GeneratedAt: time.Date(2026, 9, 14, 10, 30, 0, 0, time.UTC),
	}
}

const testPayload = "101 091000019 1234567890\n9000001000001\n"

func TestParseFormat(t *testing.T) {
	cases := map[string]Format{
		"":     FormatText,
		"txt":  FormatText,
		"text": FormatText,
		"TXT":  FormatText,
		"xml":  FormatXML,
		"XML":  FormatXML,
		"pdf":  FormatPDF,
		" pdf": FormatPDF,
	}
	for in, want := range cases {
		got, err := ParseFormat(in)
		if err != nil {
			t.Errorf("ParseFormat(%q): %v", in, err)
			continue
		}
		if got != want {
			t.Errorf("ParseFormat(%q) = %q, want %q", in, got, want)
		}
	}
	if _, err := ParseFormat("csv"); err == nil {
		t.Error("csv accepted")
	}
}

func TestContentTypes(t *testing.T) {
	if got := FormatText.ContentType(); got != "text/plain" {
		t.Errorf("text: %q", got)
	}
	if got := FormatXML.ContentType(); got != "application/xml" {
		t.Errorf("xml: %q", got)
	}
	if got := FormatPDF.ContentType(); got != "application/pdf" {
		t.Errorf("pdf: %q", got)
	}
}

func TestFilenamePattern(t *testing.T) {
	got := Filename(testMetadata(), "B", FormatXML)
	if got != "ACH_20260915_B_20260914_103000.xml" {
		t.Errorf("got %q", got)
	}
}

func TestRenderTextPassesPayloadThrough(t *testing.T) {
	out, err := Render(FormatText, testPayload, testMetadata(), nil)
	if err != nil {
		t.Fatal(err)
	}
	if string(out) != testPayload {
		t.Errorf("text export mutated the payload: %q", out)
	}
}

func TestRenderXMLWrapsPayloadInCDATA(t *testing.T) {
	out, err := Render(FormatXML, testPayload, testMetadata(), nil)
	if err != nil {
		t.Fatal(err)
	}
	doc := string(out)

	if !strings.HasPrefix(doc, "<?xml") {
		t.Errorf("missing xml declaration: %q", doc[:20])
	}
	if !strings.Contains(doc, "<ACHFile>") {
		t.Error("missing ACHFile element")
	}
	if !strings.Contains(doc, "<PayDate>2026-09-15</PayDate>") {
		t.Error("missing pay date")
	}
	if !strings.Contains(doc, "<AgencyPayee>CA State Disbursement Unit</AgencyPayee>") {
		t.Error("missing agency payee")
	}
	if !strings.Contains(doc, "<TotalPaymentCount>3</TotalPaymentCount>") {
		t.Error("missing payment count")
	}
	if !strings.Contains(doc, "<TotalPaymentAmount>1350.00</TotalPaymentAmount>") {
		t.Error("missing payment amount")
	}
	// The payload rides inside CDATA so its bytes survive XML parsing intact.
	if !strings.Contains(doc, "<![CDATA[") || !strings.Contains(doc, testPayload) {
		t.Error("payload not wrapped in CDATA")
	}
}

func TestRenderPDFCarriesSignature(t *testing.T) {
	out, err := Render(FormatPDF, testPayload, testMetadata(), nil)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(out, []byte("%PDF")) {
		t.Errorf("output does not start with the PDF signature: %q", out[:8])
	}
}

func TestExtensionMatchesFormat(t *testing.T) {
	for _, f := range []Format{FormatText, FormatXML, FormatPDF} {
		if got := f.Extension(); got != string(f) {
			t.Errorf("%q extension = %q", f, got)
		}
	}
}
