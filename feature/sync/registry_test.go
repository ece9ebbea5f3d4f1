package sync

import (
	"testing"

	"booking-bridge/feature/sync/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRegistry_Valid(t *testing.T) {
	r, err := NewRegistry()
	require.NoError(t, err)

	kinds := []models.Kind{
		models.KindCondominium, models.KindOwner, models.KindProperty,
		models.KindAgent, models.KindChannel, models.KindReservation,
		models.KindBlock, models.KindGuest, models.KindFee,
		models.KindSourceFault, models.KindSinkFault,
	}
	for _, kind := range kinds {
		spec := r.Spec(kind)
		assert.NotEmpty(t, spec.Table, "kind %s", kind)
		assert.NotEmpty(t, spec.IDColumn, "kind %s", kind)
	}
}

func TestValidateSpec(t *testing.T) {
	valid := TableSpec{
		Kind:       models.KindChannel,
		Table:      "canais",
		IDColumn:   "id_canal",
		Columns:    map[string]string{"external_id": "cod_externo"},
		NaturalKey: []string{"external_id"},
	}
	assert.NoError(t, validateSpec(valid))

	noTable := valid
	noTable.Table = ""
	assert.Error(t, validateSpec(noTable))

	badID := valid
	badID.IDColumn = "canal_id"
	assert.Error(t, validateSpec(badID))

	unmappedKey := valid
	unmappedKey.NaturalKey = []string{"name"}
	assert.Error(t, validateSpec(unmappedKey))
}

func TestTableSpec_SinkFields(t *testing.T) {
	r, err := NewRegistry()
	require.NoError(t, err)

	spec := r.Spec(models.KindReservation)
	rec := spec.SinkFields(map[string]any{
		"external_id": "R1",
		"status":      "Confirmada",
		"property_id": int64(9),
	})

	assert.Equal(t, "R1", rec["cod_reserva"])
	assert.Equal(t, "Confirmada", rec["status"])
	assert.Equal(t, int64(9), rec["id_imov"])
}

func TestTableSpec_SinkFilter(t *testing.T) {
	r, err := NewRegistry()
	require.NoError(t, err)

	spec := r.Spec(models.KindGuest)
	filter := spec.SinkFilter(map[string]any{"name": "Ana", "phone": "+55 11 91234"})

	assert.Equal(t, map[string]string{"nome": "Ana", "telefone": "+55 11 91234"}, filter)
}
