// Package catalog defines the ports through which benefit records enter the
// system. Backends only retrieve and decode; enum validity and field presence
// are enforced by the catalog service before records reach the core.
package catalog

import (
	"context"

	"yutai/internal/core"
)

// RecordSource is the inbound port for a benefit record set.
type RecordSource interface {
	// ListRecords returns the full record set. Implementations must not
	// retain ownership of the returned slice.
	ListRecords(ctx context.Context) ([]core.BenefitRecord, error)
}
