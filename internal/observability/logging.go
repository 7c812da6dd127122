package observability

import (
	"github.com/kyc-co/synthforms/internal/logging"
)

// Logger returns the global safe logger instance
func Logger() *logging.SafeLogger {
	return logging.Logger
}

// MaskID masks an identification number for logging, keeping the first two and last
// two characters. Short values are fully masked.
func MaskID(id string) string {
	if len(id) <= 4 {
		return "****"
	}
	masked := make([]byte, len(id))
	for i := range id {
		switch {
		case i < 2 || i >= len(id)-2 || id[i] == '-':
			masked[i] = id[i]
		default:
			masked[i] = '*'
		}
	}
	return string(masked)
}
