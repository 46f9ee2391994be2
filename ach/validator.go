package ach

import "strings"

// ValidateOrders runs the pre-flight checks over the whole batch. The batch
// is all-or-nothing: a non-nil return means no file may be assembled.
func ValidateOrders(orders []Order) *ValidationError {
	var failed []FailedRecord

	for idx, order := range orders {
		var errs []string

		if strings.TrimSpace(order.RoutingNumber) == "" {
			errs = append(errs, "Routing number is missing")
		}
		if strings.TrimSpace(order.AccountNumber) == "" {
			errs = append(errs, "Account number is missing")
		}
		if !order.Amount.IsPositive() {
			errs = append(errs, "Payment amount must be greater than zero")
		}
		if strings.TrimSpace(order.CaseId) == "" {
			errs = append(errs, "Order/Case number is missing")
		}
		if strings.TrimSpace(order.EmployeeId) == "" {
			errs = append(errs, "Employee identifier is missing")
		}

		if len(errs) > 0 {
			failed = append(failed, FailedRecord{
				Index:  idx,
				CaseId: order.CaseId,
				Errors: errs,
			})
		}
	}

	if len(failed) > 0 {
		return &ValidationError{Failed: failed}
	}
	return nil
}
