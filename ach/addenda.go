package ach

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// segmentSeparator and segmentTerminator come from the NACHA child-support
// addenda convention (DED record). The receiving state disbursement units
// parse on these characters, so they are load-bearing.
const (
	segmentSeparator  = "*"
	segmentTerminator = `\`
)

// segmentIdentifiers maps a garnishment category to the addenda segment and
// application identifiers. Child-support style deductions ride a DED
// segment; franchise-tax levies use TXP with application code 52.
func segmentIdentifiers(category string) (segment string, application string) {
	switch category {
	case CategoryFranchiseTax:
		return "TXP", "52"
	case CategoryChildSupport:
		return "DED", "CS"
	default:
		return "DED", "CS"
	}
}

// PaymentRelatedInfo renders the 80-character addenda payload for one order.
// Field widths and delimiter positions are byte-exact:
//
//	SEG(3) * APP(2) * CASE(20) * PAYDATE(6) * CENTS(10) * SSN(9) * MED(1)
//	* NAME(10) * FIPS(7) * TERM(2) \
//
// which totals exactly 80 characters including the nine separators and the
// terminator.
func PaymentRelatedInfo(order Order, payDate time.Time) string {
	segment, application := segmentIdentifiers(order.GarnishmentType)

	fields := []string{
		PadString(segment, 3, AlignLeft, ' '),
		PadString(application, 2, AlignLeft, ' '),
		PadString(strings.ToUpper(order.CaseId), 20, AlignLeft, ' '),
		// Zero pay date renders as today (FormatDate fallback); upstream
		// resolution makes that unreachable in practice.
		FormatDate(payDate, DateStyleYYMMDD),
		FormatAmount(order.Amount, 10),
		PadNumber(digitsOnly(order.EmployeeSSN), 9),
		yesNo(order.MedicalSupport),
		PadString(lastFirst(order.EmployeeName), 10, AlignLeft, ' '),
		PadString(digitsOnly(order.FipsCode), 7, AlignLeft, ' '),
		PadString(yesNo(order.EmploymentTerminated), 2, AlignLeft, ' '),
	}

	info := strings.Join(fields, segmentSeparator) + segmentTerminator
	return PadString(info, 80, AlignLeft, ' ')
}

func yesNo(b bool) string {
	if b {
		return "Y"
	}
	return "N"
}

// lastFirst reformats a display name as "Last,First" for the 10-character
// name field. A single-word name passes through unchanged.
func lastFirst(name string) string {
	name = strings.ToUpper(strings.TrimSpace(name))
	parts := strings.Fields(name)
	if len(parts) < 2 {
		return name
	}
	last := parts[len(parts)-1]
	first := strings.Join(parts[:len(parts)-1], " ")
	return last + "," + first
}

// entryAmount guards the 10-digit amount field: anything at or beyond
// $100,000,000.00 cannot be represented and must fail the order rather than
// silently truncate.
func entryAmount(amount decimal.Decimal) (decimal.Decimal, bool) {
	cents := amount.Mul(decimal.NewFromInt(100)).Round(0).IntPart()
	if cents >= 10000000000 {
		return amount, false
	}
	return amount, true
}
