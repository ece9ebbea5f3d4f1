package sync

import (
	"testing"

	"booking-bridge/feature/sync/models"

	"github.com/stretchr/testify/assert"
)

func TestNeedsWrite_NoPriorRecord(t *testing.T) {
	candidate := &models.Channel{ExternalID: "CH1", Name: "Portal"}
	assert.True(t, NeedsWrite(nil, candidate))
}

func TestNeedsWrite_UnsyncedRecordAlwaysWrites(t *testing.T) {
	existing := &models.Channel{ExternalID: "CH1", Name: "Portal"}
	candidate := &models.Channel{ExternalID: "CH1", Name: "Portal"}

	// Identical fields but no sink id: the record still has to attempt
	// reconciliation.
	assert.True(t, NeedsWrite(existing, candidate))

	// A cached sink id alone is not enough. A failed ledger update leaves
	// the id in place with the synced flag down, and an identical
	// redelivery must still retry.
	id := int64(5)
	existing.SinkID = &id
	assert.True(t, NeedsWrite(existing, candidate))

	existing.Synced = true
	assert.False(t, NeedsWrite(existing, candidate))
}

func TestNeedsWrite_DetectsFieldChange(t *testing.T) {
	id := int64(5)
	existing := &models.Condominium{ExternalID: "C1", Name: "Solar das Gaivotas", SinkID: &id}
	candidate := &models.Condominium{ExternalID: "C1", Name: "Solar das Gaivotas II"}

	assert.True(t, NeedsWrite(existing, candidate))
}

func TestFieldsEqual_TextNormalization(t *testing.T) {
	a := map[string]any{"name": "  Casa Azul "}
	b := map[string]any{"name": "casa azul"}
	assert.True(t, FieldsEqual(a, b))
}

func TestFieldsEqual_NumericNull(t *testing.T) {
	// Absent amount normalizes to null; nil on both sides is not a diff.
	a := map[string]any{"total_amount": nil}
	b := map[string]any{"total_amount": nil}
	assert.True(t, FieldsEqual(a, b))

	c := map[string]any{"total_amount": 199.0}
	assert.False(t, FieldsEqual(a, c))
}

func TestFieldsEqual_NumericTypesCoerce(t *testing.T) {
	a := map[string]any{"guest_count": 2}
	b := map[string]any{"guest_count": float64(2)}
	assert.True(t, FieldsEqual(a, b))

	c := map[string]any{"guest_count": 3}
	assert.False(t, FieldsEqual(a, c))
}

func TestFieldsEqual_MissingKey(t *testing.T) {
	a := map[string]any{"name": "x", "phone": "1"}
	b := map[string]any{"name": "x"}
	assert.False(t, FieldsEqual(a, b))
}
