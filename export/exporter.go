// Package export renders an assembled NACHA payload into its delivery
// container. The canonical text bytes are never re-derived or mutated: text
// export returns them as-is, XML wraps them in CDATA, PDF typesets them
// monospaced.
package export

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

type Format string

const (
	FormatText Format = "txt"
	FormatXML  Format = "xml"
	FormatPDF  Format = "pdf"
)

// ParseFormat normalizes the requested export format, defaulting to text.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "txt", "text":
		return FormatText, nil
	case "xml":
		return FormatXML, nil
	case "pdf":
		return FormatPDF, nil
	}
	return "", fmt.Errorf("unsupported export format %q", s)
}

func (f Format) ContentType() string {
	switch f {
	case FormatXML:
		return "application/xml"
	case FormatPDF:
		return "application/pdf"
	}
	return "text/plain"
}

func (f Format) Extension() string {
	return string(f)
}

// Metadata is the envelope information carried alongside the payload for
// XML export and for the filename.
type Metadata struct {
	PayDate     time.Time
	AgencyPayee string
	EntryCount  int
	TotalAmount decimal.Decimal
	GeneratedAt time.Time
}

// Filename follows the ACH_<YYYYMMDD>_<modifier>_<timestamp>.<ext> pattern.
func Filename(meta Metadata, modifier string, format Format) string {
	return fmt.Sprintf("ACH_%s_%s_%s.%s",
		meta.PayDate.Format("20060102"),
		modifier,
		meta.GeneratedAt.Format("20060102_150405"),
		format.Extension(),
	)
}

// Render produces the export bytes for the requested format. PDF rendering
// failures degrade to the raw text payload instead of failing the request;
// all other failures surface to the caller.
func Render(format Format, payload string, meta Metadata, logger *logrus.Logger) ([]byte, error) {
	switch format {
	case FormatXML:
		return renderXML(payload, meta)
	case FormatPDF:
		pdfBytes, err := renderPDF(payload)
		if err != nil {
			if logger != nil {
				logger.WithField("module", "export").Warnf("pdf rendering unavailable, returning text payload: %v", err)
			}
			return []byte(payload), nil
		}
		// A malformed container is worse than no container: deliver only
		// byte streams that carry the PDF signature.
		if !bytes.HasPrefix(pdfBytes, []byte("%PDF")) {
			return nil, fmt.Errorf("generated pdf is missing the %%PDF signature")
		}
		return pdfBytes, nil
	default:
		return []byte(payload), nil
	}
}

type xmlEnvelope struct {
	XMLName  xml.Name    `xml:"ACHFile"`
	Metadata xmlMetadata `xml:"Metadata"`
	Content  xmlCDATA    `xml:"Content"`
}

type xmlMetadata struct {
	PayDate            string `xml:"PayDate"`
	AgencyPayee        string `xml:"AgencyPayee"`
	TotalPaymentCount  int    `xml:"TotalPaymentCount"`
	TotalPaymentAmount string `xml:"TotalPaymentAmount"`
	GeneratedAt        string `xml:"GeneratedAt"`
}

type xmlCDATA struct {
	Value string `xml:",cdata"`
}

func renderXML(payload string, meta Metadata) ([]byte, error) {
	envelope := xmlEnvelope{
		Metadata: xmlMetadata{
			PayDate:            meta.PayDate.Format("2006-01-02"),
			AgencyPayee:        meta.AgencyPayee,
			TotalPaymentCount:  meta.EntryCount,
			TotalPaymentAmount: meta.TotalAmount.StringFixed(2),
			GeneratedAt:        meta.GeneratedAt.Format(time.RFC3339),
		},
		Content: xmlCDATA{Value: payload},
	}

	body, err := xml.MarshalIndent(envelope, "", "  ")
	if err != nil {
		return nil, err
	}
	return append([]byte(xml.Header), body...), nil
}

func renderPDF(payload string) ([]byte, error) {
	pdf := fpdf.New("L", "pt", "Letter", "")
	pdf.SetTitle("ACH File Content", false)
	pdf.SetAutoPageBreak(true, 36)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(0, 18, "ACH File Content", "", 1, "L", false, 0, "")
	pdf.Ln(6)

	// Courier at 8pt keeps a 94-character line inside the landscape page;
	// fpdf handles pagination via the auto page break.
	pdf.SetFont("Courier", "", 8)
	for _, line := range strings.Split(strings.TrimRight(payload, "\n"), "\n") {
		pdf.CellFormat(0, 10, line, "", 1, "L", false, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
