package tui

import (
	"strconv"

	"github.com/vovakirdan/cge/internal/registry"
	"github.com/vovakirdan/cge/internal/storage"
)

// RecordSource reads stored records. storage.Store satisfies it.
type RecordSource interface {
	TopRecords(gameID string, order storage.Order, limit int) ([]storage.Record, error)
	Best(gameID string, order storage.Order) (float64, bool, error)
}

// RecordOrder returns the storage order matching a record kind.
func RecordOrder(kind registry.RecordKind) storage.Order {
	if kind.LowerIsBetter {
		return storage.LowerIsBetter
	}
	return storage.HigherIsBetter
}

// FormatRecord prints a record value with the kind's unit.
// Whole values print without decimals, others with two.
func FormatRecord(kind registry.RecordKind, v float64) string {
	var s string
	if v == float64(int64(v)) {
		s = strconv.FormatInt(int64(v), 10)
	} else {
		s = strconv.FormatFloat(v, 'f', 2, 64)
	}
	return s + kind.Unit
}
