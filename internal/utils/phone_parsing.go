package utils

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/nyaruka/phonenumbers"
)

// ColombiaDialCode is the default country prefix for numbers written without one.
const ColombiaDialCode = "+57"

var generatedPhoneRegex = regexp.MustCompile(`^\+[0-9]{1,4} [0-9]{10}$`)

// PhoneComponents represents the parsed components of a phone number
type PhoneComponents struct {
	CountryCode string `json:"country_code"`
	National    string `json:"national"`
	Region      string `json:"region"`
	Full        string `json:"full"`
	Valid       bool   `json:"valid"`
}

// FormatPhone renders a dial code and a local number as a fixed-width string, "+57 0012345678".
func FormatPhone(dialCode string, local int64) string {
	return fmt.Sprintf("%s %010d", dialCode, local)
}

// ParsePhoneNumber parses a phone number string and returns its components.
// Numbers without a leading + are assumed to be Colombian.
func ParsePhoneNumber(phoneString string) (*PhoneComponents, error) {
	cleanPhone := strings.TrimSpace(phoneString)

	if !strings.HasPrefix(cleanPhone, "+") {
		if strings.HasPrefix(cleanPhone, "57") && len(nonDigits.ReplaceAllString(cleanPhone, "")) == 12 {
			cleanPhone = "+" + cleanPhone
		} else {
			cleanPhone = ColombiaDialCode + cleanPhone
		}
	}

	num, err := phonenumbers.Parse(cleanPhone, "")
	if err != nil {
		return nil, fmt.Errorf("failed to parse phone number: %w", err)
	}

	return &PhoneComponents{
		CountryCode: fmt.Sprintf("%d", num.GetCountryCode()),
		National:    phonenumbers.GetNationalSignificantNumber(num),
		Region:      phonenumbers.GetRegionCodeForNumber(num),
		Full:        phonenumbers.Format(num, phonenumbers.E164),
		Valid:       phonenumbers.IsValidNumber(num),
	}, nil
}

// ValidatePhoneFormat checks the "+CC NNNNNNNNNN" layout produced by FormatPhone.
func ValidatePhoneFormat(phoneString string) error {
	if !generatedPhoneRegex.MatchString(phoneString) {
		return fmt.Errorf("invalid phone number format: %s", phoneString)
	}
	return nil
}
