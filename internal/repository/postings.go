package repository

import (
	"context"

	"apmatch/internal/ledger"
)

// PostingRepository is the audit trail of successful ledger postings.
// SQL only — no business logic here.
type PostingRepository interface {
	// Create inserts a posting audit row and returns the stored record.
	Create(ctx context.Context, p *ledger.Posting) (*ledger.Posting, error)

	// FindByInvoice returns the posting recorded for an invoice number.
	FindByInvoice(ctx context.Context, invoiceNumber string) (*ledger.Posting, error)

	// List returns a paginated list of postings, newest first, with the
	// total row count.
	List(ctx context.Context, pq PageQuery) (*PageResult[ledger.Posting], error)
}

// PageQuery holds limit/offset pagination parameters.
type PageQuery struct {
	Limit  int
	Offset int
}

// PageResult is a generic pagination result wrapper.
type PageResult[T any] struct {
	Items []T
	Total int
}
