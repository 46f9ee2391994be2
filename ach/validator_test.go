package ach

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

func TestValidateOrdersAcceptsCleanBatch(t *testing.T) {
	orders := []Order{childSupportOrder(), childSupportOrder()}
	if verr := ValidateOrders(orders); verr != nil {
		t.Fatalf("unexpected failure: %v", verr.Messages())
	}
}

func TestValidateOrdersCollectsAllReasons(t *testing.T) {
	bad := Order{
		EmployeeName: "Jane Doe",
		Amount:       decimal.Zero,
	}
	verr := ValidateOrders([]Order{childSupportOrder(), bad})
	if verr == nil {
		t.Fatal("expected a validation error")
	}
	if len(verr.Failed) != 1 {
		t.Fatalf("failed records = %d, want 1", len(verr.Failed))
	}

	record := verr.Failed[0]
	if record.Index != 1 {
		t.Errorf("index = %d, want 1", record.Index)
	}
	want := []string{
		"Routing number is missing",
		"Account number is missing",
		"Payment amount must be greater than zero",
		"Order/Case number is missing",
		"Employee identifier is missing",
	}
	if len(record.Errors) != len(want) {
		t.Fatalf("errors = %v, want %v", record.Errors, want)
	}
	for i, msg := range want {
		if record.Errors[i] != msg {
			t.Errorf("error[%d] = %q, want %q", i, record.Errors[i], msg)
		}
	}
}

func TestValidateOrdersRejectsNegativeAmount(t *testing.T) {
	order := childSupportOrder()
	order.Amount = decimal.NewFromFloat(-450.00)
	verr := ValidateOrders([]Order{order})
	if verr == nil {
		t.Fatal("expected a validation error")
	}
	if len(verr.Failed[0].Errors) != 1 || verr.Failed[0].Errors[0] != "Payment amount must be greater than zero" {
		t.Errorf("got %v", verr.Failed[0].Errors)
	}
}

func TestValidationErrorMessages(t *testing.T) {
	verr := &ValidationError{Failed: []FailedRecord{
		{Index: 2, CaseId: "CASE3", Errors: []string{"Routing number is missing"}},
	}}
	msgs := verr.Messages()
	if len(msgs) != 1 {
		t.Fatalf("messages = %v", msgs)
	}
	if msgs[0] != "Record 3 (Case ID: CASE3): Routing number is missing" {
		t.Errorf("got %q", msgs[0])
	}
	if !strings.Contains(verr.Error(), "1 of the submitted orders") {
		t.Errorf("got %q", verr.Error())
	}
}
