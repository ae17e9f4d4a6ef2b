package archive

import (
	"context"
	"errors"

	"apmatch/internal/model"
)

// Package archive persists resolution briefs to object storage so auditors
// can retrieve the exact report that routed an invoice to a human.

// ErrBriefNotFound is returned when no brief was archived for an invoice.
var ErrBriefNotFound = errors.New("brief not found")

// BriefArchive stores and retrieves resolution briefs keyed by invoice
// number. Implementations must use streaming I/O only; briefs are immutable
// once written.
type BriefArchive interface {
	// Save archives a brief and returns the storage key it was written to.
	Save(ctx context.Context, b model.ResolutionBrief) (string, error)
	// Load retrieves the archived brief for an invoice number.
	Load(ctx context.Context, invoiceNumber string) (model.ResolutionBrief, error)
}
