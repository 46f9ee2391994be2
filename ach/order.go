package ach

import (
	"time"

	"github.com/shopspring/decimal"
)

// Garnishment categories recognized by the addenda segment mapping. Unknown
// categories fall back to child support (DED/CS).
const (
	CategoryChildSupport = "child_support"
	CategoryFranchiseTax = "franchise_tax"
)

// Order is one payment instruction handed to the assembler. Orders are owned
// by the caller and never mutated here.
type Order struct {
	CaseId               string          `json:"case_id"`
	EmployeeId           string          `json:"employee_id"`
	EmployeeName         string          `json:"employee_name"`
	EmployeeSSN          string          `json:"employee_ssn"`
	RoutingNumber        string          `json:"routing_number"`
	AccountNumber        string          `json:"account_number"`
	Amount               decimal.Decimal `json:"amount"`
	GarnishmentType      string          `json:"garnishment_type"`
	FipsCode             string          `json:"fips_code"`
	MedicalSupport       bool            `json:"medical_support"`
	EmploymentTerminated bool            `json:"employment_terminated"`
	// TransactionCode optionally overrides the configured default
	// (22 checking credit, 32 savings credit, 27/37 debits).
	TransactionCode string `json:"transaction_code,omitempty"`
}

// FileConfig describes the originating and receiving parties. Read-only
// input to the assembler, resolved from persisted configuration upstream.
type FileConfig struct {
	ImmediateDestination     string
	ImmediateOrigin          string
	ImmediateDestinationName string
	ImmediateOriginName      string
	CompanyName              string
	CompanyId                string
	StandardEntryClass       string
	ServiceClassCode         string
	OriginatingDfiId         string // 8 digits
	EntryDescription         string
	TransactionCode          string // default when an order carries none
}

// RunParams carries the per-run values resolved before assembly so every
// builder sees the same pay date, modifier and batch number.
type RunParams struct {
	PayDate        time.Time
	FileIdModifier string
	BatchNumber    int
	CreationTime   time.Time
}
