package main

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kyc-co/synthforms/internal/catalog"
	"github.com/kyc-co/synthforms/internal/forms"
	"github.com/kyc-co/synthforms/internal/generators"
	"github.com/kyc-co/synthforms/internal/models"
	"github.com/kyc-co/synthforms/internal/services"
)

type collectingSink struct {
	writes [][]models.Form
}

func (s *collectingSink) Write(_ context.Context, forms []models.Form) error {
	s.writes = append(s.writes, forms)
	return nil
}

func loadCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	cat, err := catalog.Default()
	require.NoError(t, err)
	return cat
}

func TestParseFlags(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		want    options
		wantErr error
	}{
		{
			name: "defaults",
			args: nil,
			want: options{docType: models.DocumentTypeEmployeeKnowledge, count: 1, sink: sinkStdout},
		},
		{
			name: "all flags",
			args: []string{"-type", "counterparty", "-count", "20", "-seed", "-9", "-sink", "amqp", "-legacy"},
			want: options{docType: models.DocumentTypeCounterpartyKnowledge, count: 20, seed: -9, sink: sinkAMQP, legacy: true},
		},
		{
			name:    "unknown type",
			args:    []string{"-type", "supplier"},
			wantErr: models.ErrUnknownFormType,
		},
		{
			name:    "zero count",
			args:    []string{"-count", "0"},
			wantErr: models.ErrInvalidCount,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseFlags(tt.args, io.Discard)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, *got)
		})
	}
}

func TestParseFlags_UnknownSink(t *testing.T) {
	_, err := parseFlags([]string{"-sink", "kafka"}, io.Discard)
	assert.ErrorContains(t, err, "unknown sink")
}

func TestGenerate_ChunksAreReproducible(t *testing.T) {
	now := time.Date(2024, time.June, 15, 10, 30, 0, 0, time.UTC)
	builder := forms.NewBuilder(loadCatalog(t), forms.WithClock(func() time.Time { return now }))
	svc := services.NewFormService(builder, services.WithBatchLimits(2, 1))
	opts := &options{docType: models.DocumentTypeEmployeeKnowledge, count: 5, seed: 77}

	sink := &collectingSink{}
	base, err := generate(context.Background(), svc, sink, opts)
	require.NoError(t, err)
	assert.Equal(t, int64(77), base)

	require.Len(t, sink.writes, 3)
	assert.Len(t, sink.writes[0], 2)
	assert.Len(t, sink.writes[1], 2)
	assert.Len(t, sink.writes[2], 1)

	chunkSeed := generators.DeriveSeed(77, 1)
	assert.Equal(t, generators.DeriveSeed(chunkSeed, 1), sink.writes[1][1].Header().Seed)

	again := &collectingSink{}
	_, err = generate(context.Background(), svc, again, opts)
	require.NoError(t, err)
	for i := range sink.writes {
		for j := range sink.writes[i] {
			assert.Equal(t, sink.writes[i][j].Header().ID, again.writes[i][j].Header().ID)
		}
	}
}

func TestGenerate_SingleChunkUsesBaseSeed(t *testing.T) {
	svc := services.NewFormService(forms.NewBuilder(loadCatalog(t)))
	sink := &collectingSink{}

	_, err := generate(context.Background(), svc, sink, &options{docType: models.DocumentTypeCounterpartyKnowledge, count: 3, seed: 5})
	require.NoError(t, err)
	require.Len(t, sink.writes, 1)
	assert.Equal(t, generators.DeriveSeed(5, 0), sink.writes[0][0].Header().Seed)
}

func TestRun_StdoutSink(t *testing.T) {
	var stdout bytes.Buffer
	err := run(context.Background(), []string{"-type", "counterparty", "-count", "3", "-seed", "5", "-legacy"}, &stdout, io.Discard)
	require.NoError(t, err)

	scanner := bufio.NewScanner(&stdout)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lines := 0
	for scanner.Scan() {
		var m map[string]any
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &m))
		assert.Equal(t, string(models.DocumentTypeCounterpartyKnowledge), m["sg_document_type"])
		assert.Contains(t, m, "shareholders")
		lines++
	}
	assert.Equal(t, 3, lines)
}

func TestRun_InvalidFlags(t *testing.T) {
	err := run(context.Background(), []string{"-type", "nope"}, io.Discard, io.Discard)
	assert.ErrorIs(t, err, models.ErrUnknownFormType)
}
