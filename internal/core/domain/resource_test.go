package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCandidateResource_Matches(t *testing.T) {
	resource := CandidateResource{
		ID:           "act_12345",
		DisplayLabel: "Acme Corp Ads",
		Metadata: map[string]string{
			"currency": "EUR",
			"category": "Retail",
		},
	}

	tests := []struct {
		name  string
		query string
		want  bool
	}{
		{"empty query matches", "", true},
		{"whitespace query matches", "   ", true},
		{"label substring", "acme", true},
		{"label case-insensitive", "ACME CORP", true},
		{"raw id", "12345", true},
		{"metadata value", "retail", true},
		{"metadata value case-insensitive", "eur", true},
		{"no match", "globex", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, resource.Matches(tt.query))
		})
	}
}

func TestManualResource(t *testing.T) {
	r := ManualResource("1234567890")

	assert.Equal(t, "1234567890", r.ID)
	assert.Equal(t, "1234567890", r.DisplayLabel)
	assert.Nil(t, r.Metadata)
}

func TestProjectRecord_BindingValue(t *testing.T) {
	record := ProjectRecord{
		ID:       "p1",
		Bindings: map[string]string{"ga4PropertyId": "42"},
	}

	v, ok := record.BindingValue("ga4PropertyId")
	assert.True(t, ok)
	assert.Equal(t, "42", v)

	_, ok = record.BindingValue("adsCustomerId")
	assert.False(t, ok)
}

func TestPhase_String(t *testing.T) {
	assert.Equal(t, "init", PhaseInit.String())
	assert.Equal(t, "authorizing", PhaseAuthorizing.String())
	assert.Equal(t, "selecting", PhaseSelecting.String())
	assert.Equal(t, "bound", PhaseBound.String())
	assert.Equal(t, "unknown", Phase(99).String())
}

func TestSettleKind_String(t *testing.T) {
	assert.Equal(t, "success", SettleSuccess.String())
	assert.Equal(t, "error", SettleError.String())
	assert.Equal(t, "cancelled", SettleCancelled.String())
	assert.Equal(t, "unknown", SettleKind(99).String())
}
