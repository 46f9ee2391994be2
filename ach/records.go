package ach

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// LineWidth is the NACHA record length, excluding the newline.
const LineWidth = 94

// BlockingFactor is the number of records per transmission block. Short
// files are padded with space-filled filler lines to a block boundary.
const BlockingFactor = 10

// Record is one fixed-width NACHA record. Encode always returns exactly
// LineWidth characters plus a trailing newline.
type Record interface {
	Encode() string
}

// finish guarantees the 94-character contract even if a field layout ever
// drifts: truncate or space-pad, then terminate the line.
func finish(record string) string {
	if len(record) != LineWidth {
		record = PadString(record, LineWidth, AlignLeft, ' ')
	}
	return record + "\n"
}

// FileHeaderRecord is record type 1, the first line of every file.
type FileHeaderRecord struct {
	ImmediateDestination     string // receiving bank routing number
	ImmediateOrigin          string // originating company / bank id
	ImmediateDestinationName string
	ImmediateOriginName      string
	CreationDate             time.Time
	CreationTime             time.Time
	FileIdModifier           string
	BatchNumber              int
}

func (r FileHeaderRecord) Encode() string {
	creationTime := r.CreationTime
	if creationTime.IsZero() {
		creationTime = time.Now()
	}
	modifier := r.FileIdModifier
	if modifier == "" {
		modifier = "A"
	}

	record := "1"
	record += "01"
	record += PadString(r.ImmediateDestination, 10, AlignRight, ' ')
	record += PadString(r.ImmediateOrigin, 10, AlignLeft, ' ')
	// Zero creation date falls back to today inside FormatDate: a dated
	// header is mandatory even when the caller never resolved a pay date.
	record += FormatDate(r.CreationDate, DateStyleYYMMDD)
	record += creationTime.Format("1504")
	record += PadString(modifier, 1, AlignLeft, ' ')
	record += "094"
	record += "10"
	record += "1"
	record += PadString(strings.ToUpper(r.ImmediateDestinationName), 23, AlignLeft, ' ')
	record += PadString(strings.ToUpper(r.ImmediateOriginName), 23, AlignLeft, ' ')
	// Internal reference: creation date plus the low two digits of the batch
	// number, used to correlate the file with its metadata row.
	record += FormatDate(r.CreationDate, DateStyleYYMMDD) + PadInt(int64(r.BatchNumber%100), 2)
	return finish(record)
}

// BatchHeaderRecord is record type 5.
type BatchHeaderRecord struct {
	ServiceClassCode   string
	CompanyName        string
	CompanyId          string
	StandardEntryClass string
	EntryDescription   string
	EffectiveDate      time.Time
	OriginatingDfiId   string
	BatchNumber        int
}

func (r BatchHeaderRecord) Encode() string {
	description := r.EntryDescription
	if description == "" {
		description = "GARNISH"
	}

	record := "5"
	record += PadNumber(r.ServiceClassCode, 3)
	record += PadString(strings.ToUpper(r.CompanyName), 16, AlignLeft, ' ')
	record += PadString("", 20, AlignLeft, ' ') // company discretionary data
	record += PadString(r.CompanyId, 10, AlignLeft, ' ')
	record += PadString(strings.ToUpper(r.StandardEntryClass), 3, AlignLeft, ' ')
	record += PadString(strings.ToUpper(description), 10, AlignLeft, ' ')
	record += FormatDate(r.EffectiveDate, DateStyleYYMMDD) // descriptive date
	record += FormatDate(r.EffectiveDate, DateStyleYYMMDD) // effective entry date
	record += PadString("", 3, AlignLeft, ' ')             // settlement date, set by the ACH operator
	record += "1"                                          // originator status: live
	record += PadString(r.OriginatingDfiId, 8, AlignLeft, ' ')
	record += PadInt(int64(r.BatchNumber), 7)
	return finish(record)
}

// EntryDetailRecord is record type 6, one payment instruction.
type EntryDetailRecord struct {
	TransactionCode   string
	ReceivingDfiId    string // 8 digits
	CheckDigit        string
	AccountNumber     string
	Amount            decimal.Decimal
	IndividualId      string
	IndividualName    string
	DiscretionaryData string
	TracePart1        string // 8-digit originating DFI id, constant per file
	TracePart2        int    // per-file sequence starting at 1
}

func (r EntryDetailRecord) Encode() string {
	record := "6"
	record += PadNumber(r.TransactionCode, 2)
	record += PadNumber(r.ReceivingDfiId, 8)
	record += PadString(r.CheckDigit, 1, AlignLeft, '0')
	record += PadString(alphanumericOnly(r.AccountNumber), 17, AlignLeft, ' ')
	record += FormatAmount(r.Amount, 10)
	record += PadString(strings.ToUpper(r.IndividualId), 15, AlignLeft, ' ')
	record += PadString(strings.ToUpper(r.IndividualName), 22, AlignLeft, ' ')
	record += PadString(r.DiscretionaryData, 2, AlignLeft, ' ')
	record += "1" // addenda record indicator: CCD+ always carries one addenda
	record += PadNumber(r.TracePart1, 8)
	record += PadInt(int64(r.TracePart2), 7)
	return finish(record)
}

// AddendaRecord is record type 7, the payment-related continuation of one
// entry detail record.
type AddendaRecord struct {
	PaymentRelatedInfo string
	// SequenceNumber is file-scoped, not reset per entry: with exactly one
	// addenda per CCD+ entry it equals the entry's position in the file.
	// The receiving bank accepts this form; do not renumber without
	// confirming their expectation.
	SequenceNumber int
	// EntryDetailSequence echoes the matched entry's trace number part 2.
	EntryDetailSequence int
}

func (r AddendaRecord) Encode() string {
	record := "7"
	record += "05"
	record += PadString(r.PaymentRelatedInfo, 80, AlignLeft, ' ')
	record += PadInt(int64(r.SequenceNumber), 4)
	record += PadInt(int64(r.EntryDetailSequence), 7)
	return finish(record)
}

// BatchControlRecord is record type 8.
type BatchControlRecord struct {
	ServiceClassCode  string // must equal the batch header's
	EntryAddendaCount int
	EntryHash         uint64
	TotalDebit        decimal.Decimal
	TotalCredit       decimal.Decimal
	CompanyId         string
	OriginatingDfiId  string
	BatchNumber       int
}

func (r BatchControlRecord) Encode() string {
	record := "8"
	record += PadNumber(r.ServiceClassCode, 3)
	record += PadInt(int64(r.EntryAddendaCount), 6)
	record += PadInt(int64(r.EntryHash%10000000000), 10)
	record += FormatAmount(r.TotalDebit, 12)
	record += FormatAmount(r.TotalCredit, 12)
	record += PadString(r.CompanyId, 10, AlignLeft, ' ')
	record += PadString("", 19, AlignLeft, ' ') // message authentication code
	record += PadString("", 6, AlignLeft, ' ')  // reserved
	record += PadString(r.OriginatingDfiId, 8, AlignLeft, ' ')
	record += PadInt(int64(r.BatchNumber), 7)
	return finish(record)
}

// FileControlRecord is record type 9, the last non-filler line.
type FileControlRecord struct {
	BatchCount        int
	BlockCount        int
	EntryAddendaCount int
	EntryHash         uint64
	TotalDebit        decimal.Decimal
	TotalCredit       decimal.Decimal
}

func (r FileControlRecord) Encode() string {
	record := "9"
	record += PadInt(int64(r.BatchCount), 6)
	record += PadInt(int64(r.BlockCount), 6)
	record += PadInt(int64(r.EntryAddendaCount), 8)
	record += PadInt(int64(r.EntryHash%10000000000), 10)
	record += FormatAmount(r.TotalDebit, 12)
	record += FormatAmount(r.TotalCredit, 12)
	record += PadString("", 39, AlignLeft, ' ')
	return finish(record)
}

// FillerRecord is a space-filled padding line completing the last block.
type FillerRecord struct{}

func (FillerRecord) Encode() string {
	return finish(strings.Repeat(" ", LineWidth))
}
