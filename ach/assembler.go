package ach

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// Stats summarizes one assembled file. Reported to the caller and persisted
// as metadata alongside the file name.
type Stats struct {
	EntryCount   int             `json:"entry_count"`
	AddendaCount int             `json:"addenda_count"`
	TotalDebit   decimal.Decimal `json:"total_debit_amount"`
	TotalCredit  decimal.Decimal `json:"total_credit_amount"`
	BlockCount   int             `json:"block_count"`
	EntryHash    uint64          `json:"entry_hash"`
	// SkippedCaseIds lists orders dropped for per-order encoding failures.
	SkippedCaseIds []string `json:"skipped_case_ids,omitempty"`
}

// GeneratedFile is the canonical text payload plus its summary. Immutable
// once returned; exporters wrap the payload without touching its bytes.
type GeneratedFile struct {
	Text  string
	Stats Stats
}

// assemblyContext owns every per-run counter. A fresh one is created per
// BuildFile call so concurrent runs never share sequencing state.
type assemblyContext struct {
	tracePart1 string // 8-digit originating DFI id, constant per file
	traceSeq   int    // increments once per entry detail, starts at 1
	addendaSeq int    // file-scoped, never reset per entry

	entryCount   int
	addendaCount int
	entryHash    uint64
	totalDebit   decimal.Decimal
	totalCredit  decimal.Decimal
}

func newAssemblyContext(originatingDfiId string) *assemblyContext {
	return &assemblyContext{
		tracePart1:  PadNumber(digitsOnly(originatingDfiId), 8),
		totalDebit:  decimal.Zero,
		totalCredit: decimal.Zero,
	}
}

// debitTransactionCodes per NACHA: the second digit 6-9 marks a debit.
func isDebitCode(code string) bool {
	switch code {
	case "27", "28", "37", "38":
		return true
	}
	return false
}

// BuildFile drives the record builders in the mandated order:
//
//	FileHeader -> BatchHeader -> {EntryDetail, Addenda}* -> BatchControl
//	-> Filler* -> FileControl
//
// RunParams must already be fully resolved (pay date, modifier, batch
// number); the same values are reused across every record. A per-order
// encoding failure logs and skips that order; any other failure returns
// before anything is emitted, so the caller never sees a partial file.
func BuildFile(cfg FileConfig, params RunParams, orders []Order, logger *logrus.Logger) (*GeneratedFile, error) {
	if cfg.CompanyId == "" && cfg.OriginatingDfiId == "" {
		return nil, ErrNoConfiguration
	}
	if len(orders) == 0 {
		return nil, ErrNoOrders
	}

	actx := newAssemblyContext(cfg.OriginatingDfiId)
	var lines []string

	lines = append(lines, FileHeaderRecord{
		ImmediateDestination:     cfg.ImmediateDestination,
		ImmediateOrigin:          cfg.ImmediateOrigin,
		ImmediateDestinationName: cfg.ImmediateDestinationName,
		ImmediateOriginName:      cfg.ImmediateOriginName,
		CreationDate:             params.PayDate,
		CreationTime:             params.CreationTime,
		FileIdModifier:           params.FileIdModifier,
		BatchNumber:              params.BatchNumber,
	}.Encode())

	lines = append(lines, BatchHeaderRecord{
		ServiceClassCode:   cfg.ServiceClassCode,
		CompanyName:        cfg.CompanyName,
		CompanyId:          cfg.CompanyId,
		StandardEntryClass: cfg.StandardEntryClass,
		EntryDescription:   cfg.EntryDescription,
		EffectiveDate:      params.PayDate,
		OriginatingDfiId:   cfg.OriginatingDfiId,
		BatchNumber:        params.BatchNumber,
	}.Encode())

	var skipped []string
	for _, order := range orders {
		entry, addenda, err := buildEntryPair(cfg, params, order, actx)
		if err != nil {
			// Per-order degradation: the rest of the batch still settles.
			if logger != nil {
				logger.WithFields(logrus.Fields{
					"module":  "ach",
					"case_id": order.CaseId,
				}).Warnf("skipping order: %v", err)
			}
			skipped = append(skipped, order.CaseId)
			continue
		}
		lines = append(lines, entry, addenda)
	}

	if actx.entryCount == 0 {
		return nil, ErrNoOrders
	}

	lines = append(lines, BatchControlRecord{
		ServiceClassCode:  cfg.ServiceClassCode,
		EntryAddendaCount: actx.entryCount + actx.addendaCount,
		EntryHash:         actx.entryHash,
		TotalDebit:        actx.totalDebit,
		TotalCredit:       actx.totalCredit,
		CompanyId:         cfg.CompanyId,
		OriginatingDfiId:  cfg.OriginatingDfiId,
		BatchNumber:       params.BatchNumber,
	}.Encode())

	// Pad to a multiple of the blocking factor, reserving the last slot of
	// the final block for the file control record.
	blockCount := (len(lines) + 1 + BlockingFactor - 1) / BlockingFactor
	for len(lines) < blockCount*BlockingFactor-1 {
		lines = append(lines, FillerRecord{}.Encode())
	}

	lines = append(lines, FileControlRecord{
		BatchCount:        1,
		BlockCount:        blockCount,
		EntryAddendaCount: actx.entryCount + actx.addendaCount,
		EntryHash:         actx.entryHash,
		TotalDebit:        actx.totalDebit,
		TotalCredit:       actx.totalCredit,
	}.Encode())

	return &GeneratedFile{
		Text: strings.Join(lines, ""),
		Stats: Stats{
			EntryCount:     actx.entryCount,
			AddendaCount:   actx.addendaCount,
			TotalDebit:     actx.totalDebit,
			TotalCredit:    actx.totalCredit,
			BlockCount:     blockCount,
			EntryHash:      actx.entryHash % 10000000000,
			SkippedCaseIds: skipped,
		},
	}, nil
}

// buildEntryPair encodes one order as its entry detail and addenda lines,
// updating the run counters only on success.
func buildEntryPair(cfg FileConfig, params RunParams, order Order, actx *assemblyContext) (string, string, error) {
	if _, ok := entryAmount(order.Amount); !ok {
		return "", "", fmt.Errorf("amount %s exceeds the 10-digit cents field", order.Amount)
	}

	dfi, check := routingParts(order.RoutingNumber)
	if digitsOnly(order.RoutingNumber) == "" {
		return "", "", fmt.Errorf("routing number %q carries no digits", order.RoutingNumber)
	}

	code := order.TransactionCode
	if code == "" {
		code = cfg.TransactionCode
	}
	if code == "" {
		code = "22" // checking credit
	}

	actx.traceSeq++
	actx.addendaSeq++

	entry := EntryDetailRecord{
		TransactionCode: code,
		ReceivingDfiId:  dfi,
		CheckDigit:      check,
		AccountNumber:   order.AccountNumber,
		Amount:          order.Amount,
		IndividualId:    order.CaseId,
		IndividualName:  order.EmployeeName,
		TracePart1:      actx.tracePart1,
		TracePart2:      actx.traceSeq,
	}.Encode()

	addenda := AddendaRecord{
		PaymentRelatedInfo:  PaymentRelatedInfo(order, params.PayDate),
		SequenceNumber:      actx.addendaSeq,
		EntryDetailSequence: actx.traceSeq,
	}.Encode()

	actx.entryCount++
	actx.addendaCount++
	actx.entryHash += routingHash(dfi)
	if isDebitCode(code) {
		actx.totalDebit = actx.totalDebit.Add(order.Amount)
	} else {
		actx.totalCredit = actx.totalCredit.Add(order.Amount)
	}

	return entry, addenda, nil
}

// routingHash parses the 8-digit DFI id for the entry-hash accumulator.
func routingHash(dfi string) uint64 {
	var n uint64
	for i := 0; i < len(dfi); i++ {
		c := dfi[i]
		if c < '0' || c > '9' {
			return 0
		}
		n = n*10 + uint64(c-'0')
	}
	return n
}

// ResolvePayDate applies the documented fallback: a zero value date means
// the file settles as soon as possible, i.e. today.
func ResolvePayDate(payDate time.Time) time.Time {
	if payDate.IsZero() {
		return time.Now()
	}
	return payDate
}
