package sync

import (
	"strings"

	"booking-bridge/core/utils"
	"booking-bridge/feature/sync/models"
)

// NeedsWrite reports whether the candidate state must be written over the
// last-known local record. It is pure: no storage, no network.
//
// Rules: no prior record always needs a write; an unsynced record needs a
// write even when fields are unchanged, because it must still attempt
// reconciliation — that covers both a record with no sink id yet and one
// whose last ledger update failed after the id was cached; otherwise a
// write is needed iff the normalized field sets differ.
func NeedsWrite(existing, candidate models.Record) bool {
	if existing == nil {
		return true
	}
	if existing.SinkRef() == nil || !existing.IsSynced() {
		return true
	}
	return !FieldsEqual(existing.Fields(), candidate.Fields())
}

// FieldsEqual compares two canonical field sets after normalization.
func FieldsEqual(a, b map[string]any) bool {
	if len(a) != len(b) {
		return false
	}
	for name, av := range a {
		bv, ok := b[name]
		if !ok {
			return false
		}
		if !valueEqual(av, bv) {
			return false
		}
	}
	return true
}

// valueEqual compares one field pair. Text compares after trimming and case
// folding; numbers compare as float64 with nil/absent treated as a
// normalized null so an undefined amount never reads as a change.
func valueEqual(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}

	switch a.(type) {
	case string:
		bs, ok := b.(string)
		if !ok {
			return false
		}
		return normalizeText(a.(string)) == normalizeText(bs)
	case bool:
		bb, ok := b.(bool)
		return ok && a.(bool) == bb
	}

	af, aNum := utils.ToFloat(a)
	bf, bNum := utils.ToFloat(b)
	if aNum && bNum {
		return af == bf
	}

	return utils.ToString(a) == utils.ToString(b)
}

func normalizeText(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
