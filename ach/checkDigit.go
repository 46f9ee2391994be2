package ach

var checkDigitWeights = [8]int{3, 7, 1, 3, 7, 1, 3, 7}

// CheckDigit computes the MOD-10 weighted check digit over an 8-digit
// routing prefix. Anything other than exactly 8 digits yields "0", matching
// the field's zero-fill behavior.
func CheckDigit(routing8 string) string {
	if len(routing8) != 8 {
		return "0"
	}
	sum := 0
	for i := 0; i < 8; i++ {
		c := routing8[i]
		if c < '0' || c > '9' {
			return "0"
		}
		sum += int(c-'0') * checkDigitWeights[i]
	}
	return string(rune('0' + (10-sum%10)%10))
}

// routingParts splits a routing number into its 8-digit DFI identification
// and check digit. A full 9-digit ABA number keeps its literal ninth digit;
// the computed check digit is only a fallback for truncated input.
func routingParts(routing string) (dfi string, check string) {
	digits := digitsOnly(routing)
	if len(digits) > 9 {
		digits = digits[:9]
	}
	if len(digits) >= 8 {
		dfi = digits[:8]
	} else {
		dfi = PadNumber(digits, 8)
	}
	if len(digits) == 9 {
		return dfi, digits[8:]
	}
	return dfi, CheckDigit(dfi)
}
