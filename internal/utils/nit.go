package utils

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// nitWeights are the DIAN prime weights, applied from the rightmost digit of the base.
var nitWeights = []int{3, 7, 13, 17, 19, 23, 29, 37, 41, 43, 47, 53, 59, 67, 71}

var nonDigits = regexp.MustCompile(`\D`)

// NITCheckDigit computes the DIAN verification digit for a NIT base number.
func NITCheckDigit(base string) (int, error) {
	if base == "" || len(base) > len(nitWeights) {
		return 0, fmt.Errorf("nit base must have 1 to %d digits, got %q", len(nitWeights), base)
	}

	sum := 0
	for i := 0; i < len(base); i++ {
		c := base[len(base)-1-i]
		if c < '0' || c > '9' {
			return 0, fmt.Errorf("nit base has a non-digit character: %q", base)
		}
		sum += int(c-'0') * nitWeights[i]
	}

	remainder := sum % 11
	if remainder > 1 {
		return 11 - remainder, nil
	}
	return remainder, nil
}

// FormatNIT renders a NIT as "base-dv".
func FormatNIT(base string) (string, error) {
	dv, err := NITCheckDigit(base)
	if err != nil {
		return "", err
	}
	return base + "-" + strconv.Itoa(dv), nil
}

// ValidateNIT validates a NIT written as "base-dv", with or without thousands separators.
func ValidateNIT(nit string) bool {
	parts := strings.Split(strings.TrimSpace(nit), "-")
	if len(parts) != 2 {
		return false
	}

	base := nonDigits.ReplaceAllString(parts[0], "")
	if len(parts[1]) != 1 || base == "" {
		return false
	}

	expected, err := NITCheckDigit(base)
	if err != nil {
		return false
	}
	return parts[1] == strconv.Itoa(expected)
}

// ValidateCedula checks that a cédula has between 4 and 10 digits and no leading zero.
func ValidateCedula(id string) bool {
	id = nonDigits.ReplaceAllString(id, "")
	if len(id) < 4 || len(id) > 10 {
		return false
	}
	return id[0] != '0'
}
