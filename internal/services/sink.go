package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sync"

	"github.com/kyc-co/synthforms/internal/models"
	"github.com/kyc-co/synthforms/internal/observability"
)

// Sink receives generated forms.
type Sink interface {
	Write(ctx context.Context, forms []models.Form) error
}

// Payload returns what gets serialized for form. With legacy set, counterparty forms use
// their flat projection with explicit nulls.
func Payload(form models.Form, legacy bool) any {
	if cp, ok := form.(*models.CounterpartyForm); ok && legacy {
		return cp.Legacy()
	}
	return form
}

// JSONLinesSink writes one JSON document per line.
type JSONLinesSink struct {
	mu     sync.Mutex
	enc    *json.Encoder
	legacy bool
}

// NewJSONLinesSink creates a sink writing to w.
func NewJSONLinesSink(w io.Writer, legacy bool) *JSONLinesSink {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	return &JSONLinesSink{enc: enc, legacy: legacy}
}

func (s *JSONLinesSink) Write(ctx context.Context, forms []models.Form) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, form := range forms {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := s.enc.Encode(Payload(form, s.legacy)); err != nil {
			observability.SinkOperations.WithLabelValues("stdout", "error").Inc()
			return fmt.Errorf("encode form %s: %w", form.Header().ID, err)
		}
	}
	observability.SinkOperations.WithLabelValues("stdout", "ok").Inc()
	return nil
}
