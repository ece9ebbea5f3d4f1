package sync

import (
	"fmt"
	"strings"

	"booking-bridge/core/sink"
	"booking-bridge/core/utils"
	"booking-bridge/feature/sync/models"
)

// TableSpec describes how one entity kind maps onto its ledger table: the
// table name, the internal id column minted by the ledger, the canonical
// field to ledger column mapping, and the canonical fields forming the
// natural key used for lookup before a sink id is known.
type TableSpec struct {
	Kind       models.Kind
	Table      string
	IDColumn   string
	Columns    map[string]string
	NaturalKey []string
}

// SinkFields translates a canonical field set into a ledger record.
func (s TableSpec) SinkFields(fields map[string]any) sink.Record {
	rec := make(sink.Record, len(fields))
	for name, value := range fields {
		rec[s.Columns[name]] = value
	}
	return rec
}

// SinkFilter translates a canonical natural key into a ledger list filter.
func (s TableSpec) SinkFilter(key map[string]any) map[string]string {
	filter := make(map[string]string, len(key))
	for name, value := range key {
		filter[s.Columns[name]] = utils.ToString(value)
	}
	return filter
}

// Registry is the typed catalog of ledger table mappings, one TableSpec per
// entity kind. It is built once at startup and validated so that a missing
// or misspelled column mapping fails fast instead of corrupting writes.
type Registry struct {
	specs map[models.Kind]TableSpec
}

// NewRegistry builds and validates the table registry.
func NewRegistry() (*Registry, error) {
	specs := []TableSpec{
		{
			Kind:     models.KindCondominium,
			Table:    "condominios",
			IDColumn: "id_cond",
			Columns: map[string]string{
				"external_id": "cod_externo",
				"name":        "nome",
				"address":     "endereco",
			},
			NaturalKey: []string{"external_id"},
		},
		{
			Kind:     models.KindOwner,
			Table:    "proprietarios",
			IDColumn: "id_prop",
			Columns: map[string]string{
				"external_id": "cod_externo",
				"name":        "nome",
				"email":       "email",
				"phone":       "telefone",
			},
			NaturalKey: []string{"external_id"},
		},
		{
			Kind:     models.KindProperty,
			Table:    "imoveis",
			IDColumn: "id_imov",
			Columns: map[string]string{
				"external_id":    "cod_externo",
				"name":           "nome",
				"code":           "codigo_interno",
				"address":        "endereco",
				"city":           "cidade",
				"status":         "status",
				"condominium_id": "id_cond",
				"owner_id":       "id_prop",
			},
			NaturalKey: []string{"external_id"},
		},
		{
			Kind:     models.KindAgent,
			Table:    "agentes",
			IDColumn: "id_agnt",
			Columns: map[string]string{
				"external_id": "cod_externo",
				"name":        "nome",
				"email":       "email",
			},
			NaturalKey: []string{"external_id"},
		},
		{
			Kind:     models.KindChannel,
			Table:    "canais",
			IDColumn: "id_canal",
			Columns: map[string]string{
				"external_id": "cod_externo",
				"name":        "nome",
			},
			NaturalKey: []string{"external_id"},
		},
		{
			Kind:     models.KindReservation,
			Table:    "reservas",
			IDColumn: "id_resv",
			Columns: map[string]string{
				"external_id":  "cod_reserva",
				"check_in":     "data_checkin",
				"check_out":    "data_checkout",
				"status":       "status",
				"guest_count":  "qtd_hospedes",
				"total_amount": "valor_total",
				"currency":     "moeda",
				"notes":        "observacoes",
				"property_id":  "id_imov",
				"channel_id":   "id_canal",
				"agent_id":     "id_agnt",
			},
			NaturalKey: []string{"external_id"},
		},
		{
			Kind:     models.KindBlock,
			Table:    "bloqueios",
			IDColumn: "id_bloq",
			Columns: map[string]string{
				"external_id": "cod_bloqueio",
				"start_date":  "data_inicio",
				"end_date":    "data_fim",
				"reason":      "motivo",
				"status":      "status",
				"property_id": "id_imov",
			},
			NaturalKey: []string{"external_id"},
		},
		{
			Kind:     models.KindGuest,
			Table:    "hospedes",
			IDColumn: "id_hosp",
			Columns: map[string]string{
				"name":           "nome",
				"email":          "email",
				"phone":          "telefone",
				"document":       "documento",
				"reservation_id": "id_resv",
			},
			// Guests have no stable external id in the ledger; name+phone
			// is the historical discriminator.
			NaturalKey: []string{"name", "phone"},
		},
		{
			Kind:     models.KindFee,
			Table:    "taxas",
			IDColumn: "id_taxa",
			Columns: map[string]string{
				"reservation_external_id": "cod_reserva",
				"sku":                     "sku",
				"description":             "descricao",
				"amount":                  "valor",
				"reservation_id":          "id_resv",
			},
			NaturalKey: []string{"reservation_external_id", "sku"},
		},
		{
			Kind:     models.KindSourceFault,
			Table:    "erros_origem",
			IDColumn: "id_erro_orig",
			Columns:  faultColumns(),
			NaturalKey: []string{
				"table_name", "record_id", "captured_date", "captured_time",
			},
		},
		{
			Kind:     models.KindSinkFault,
			Table:    "erros_destino",
			IDColumn: "id_erro_dest",
			Columns:  faultColumns(),
			NaturalKey: []string{
				"table_name", "record_id", "captured_date", "captured_time",
			},
		},
	}

	r := &Registry{specs: make(map[models.Kind]TableSpec, len(specs))}
	for _, spec := range specs {
		if err := validateSpec(spec); err != nil {
			return nil, err
		}
		if _, dup := r.specs[spec.Kind]; dup {
			return nil, fmt.Errorf("registry: duplicate spec for kind %s", spec.Kind)
		}
		r.specs[spec.Kind] = spec
	}
	return r, nil
}

// Spec returns the table spec for a kind. The registry is validated at
// construction, so a missing kind is a programming error.
func (r *Registry) Spec(kind models.Kind) TableSpec {
	spec, ok := r.specs[kind]
	if !ok {
		panic(fmt.Sprintf("registry: no table spec for kind %s", kind))
	}
	return spec
}

func validateSpec(spec TableSpec) error {
	if spec.Table == "" {
		return fmt.Errorf("registry: kind %s has no table name", spec.Kind)
	}
	if !strings.HasPrefix(spec.IDColumn, "id_") {
		return fmt.Errorf("registry: kind %s id column %q must use the id_ prefix", spec.Kind, spec.IDColumn)
	}
	if len(spec.Columns) == 0 {
		return fmt.Errorf("registry: kind %s has no column mapping", spec.Kind)
	}
	for canonical, column := range spec.Columns {
		if column == "" {
			return fmt.Errorf("registry: kind %s maps field %q to an empty column", spec.Kind, canonical)
		}
	}
	if len(spec.NaturalKey) == 0 {
		return fmt.Errorf("registry: kind %s has no natural key", spec.Kind)
	}
	for _, field := range spec.NaturalKey {
		if _, ok := spec.Columns[field]; !ok {
			return fmt.Errorf("registry: kind %s natural key field %q is not mapped", spec.Kind, field)
		}
	}
	return nil
}

func faultColumns() map[string]string {
	return map[string]string{
		"table_name":    "tabela",
		"record_id":     "registro",
		"message":       "mensagem",
		"attempts":      "tentativas",
		"captured_date": "data_captura",
		"captured_time": "hora_captura",
	}
}
