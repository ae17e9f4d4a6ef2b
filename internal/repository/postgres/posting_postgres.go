package postgres

import (
	"context"
	"database/sql"

	"apmatch/internal/ledger"
	"apmatch/internal/repository"
)

// PostingPostgres is a PostgreSQL implementation of
// repository.PostingRepository using database/sql with parameterized queries.
type PostingPostgres struct {
	db *sql.DB
}

// NewPostingPostgres creates a new PostingPostgres repository.
func NewPostingPostgres(db *sql.DB) *PostingPostgres {
	return &PostingPostgres{db: db}
}

var _ repository.PostingRepository = (*PostingPostgres)(nil)

// Create inserts a posting audit row and returns the stored record.
func (r *PostingPostgres) Create(ctx context.Context, p *ledger.Posting) (*ledger.Posting, error) {
	const q = `
		INSERT INTO ledger_postings (invoice_number, po_number, vendor_name, total_amount, reference, posted_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING invoice_number, po_number, vendor_name, total_amount, reference, posted_at
	`
	row := r.db.QueryRowContext(ctx, q,
		p.InvoiceNumber,
		p.PONumber,
		p.VendorName,
		p.TotalAmount,
		p.Reference,
		p.PostedAt,
	)
	var out ledger.Posting
	if err := row.Scan(
		&out.InvoiceNumber,
		&out.PONumber,
		&out.VendorName,
		&out.TotalAmount,
		&out.Reference,
		&out.PostedAt,
	); err != nil {
		return nil, err
	}
	return &out, nil
}

// FindByInvoice fetches the posting recorded for an invoice number.
func (r *PostingPostgres) FindByInvoice(ctx context.Context, invoiceNumber string) (*ledger.Posting, error) {
	const q = `
		SELECT invoice_number, po_number, vendor_name, total_amount, reference, posted_at
		FROM ledger_postings
		WHERE invoice_number = $1
	`
	row := r.db.QueryRowContext(ctx, q, invoiceNumber)
	var p ledger.Posting
	if err := row.Scan(
		&p.InvoiceNumber,
		&p.PONumber,
		&p.VendorName,
		&p.TotalAmount,
		&p.Reference,
		&p.PostedAt,
	); err != nil {
		return nil, err
	}
	return &p, nil
}

// List returns postings using LIMIT/OFFSET pagination and a total count.
func (r *PostingPostgres) List(ctx context.Context, pq repository.PageQuery) (*repository.PageResult[ledger.Posting], error) {
	const qCount = `SELECT COUNT(*) FROM ledger_postings`
	var total int
	if err := r.db.QueryRowContext(ctx, qCount).Scan(&total); err != nil {
		return nil, err
	}

	const qList = `
		SELECT invoice_number, po_number, vendor_name, total_amount, reference, posted_at
		FROM ledger_postings
		ORDER BY posted_at DESC, invoice_number DESC
		LIMIT $1 OFFSET $2
	`
	rows, err := r.db.QueryContext(ctx, qList, pq.Limit, pq.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]ledger.Posting, 0)
	for rows.Next() {
		var p ledger.Posting
		if err := rows.Scan(
			&p.InvoiceNumber,
			&p.PONumber,
			&p.VendorName,
			&p.TotalAmount,
			&p.Reference,
			&p.PostedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &repository.PageResult[ledger.Posting]{Items: items, Total: total}, nil
}
