package workflow

import (
	"strings"

	"github.com/garnishedge/garnishedge_backend/ach"
)

// fileIdModifierSymbols is the allocation order for the one-character file
// id modifier: A-Z first, then 0-9, 36 symbols total per pay date.
const fileIdModifierSymbols = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// NextFileIdModifier returns the first unused symbol for a pay date. When
// all 36 are claimed the run fails with ErrModifiersExhausted rather than
// reusing a symbol and producing two indistinguishable files.
func NextFileIdModifier(used []string) (string, error) {
	taken := make(map[string]bool, len(used))
	for _, m := range used {
		taken[strings.ToUpper(strings.TrimSpace(m))] = true
	}
	for _, symbol := range fileIdModifierSymbols {
		if !taken[string(symbol)] {
			return string(symbol), nil
		}
	}
	return "", ach.ErrModifiersExhausted
}

// NextBatchNumber increments past the highest batch number recorded for the
// pay date; the first file of a date gets batch 1.
func NextBatchNumber(maxExisting int) int {
	if maxExisting < 0 {
		maxExisting = 0
	}
	return maxExisting + 1
}
