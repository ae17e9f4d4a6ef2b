package service

import (
	"context"
	"fmt"

	"apmatch/internal/archive"
	"apmatch/internal/brief"
	"apmatch/internal/catalog"
	"apmatch/internal/config"
	"apmatch/internal/investigate"
	"apmatch/internal/ledger"
	"apmatch/internal/model"
	"apmatch/internal/repository"
	"apmatch/internal/routing"
	"apmatch/internal/validate"
)

// ProcessOutcome is the terminal result of one invoice's pipeline run.
// Exactly one of Posting and Brief is set, matching the destination.
type ProcessOutcome struct {
	InvoiceNumber string                 `json:"invoice_number"`
	Destination   routing.Destination    `json:"destination"`
	Result        model.ValidationResult `json:"validation_result"`
	Posting       *ledger.Posting        `json:"posting,omitempty"`
	Brief         *model.ResolutionBrief `json:"brief,omitempty"`
}

// InvoicePipeline runs one invoice through validate → route → {post | brief}.
type InvoicePipeline interface {
	// Process is stateless per invoice: catalogs are read-only snapshots
	// and a fatal error aborts only this invoice's run.
	Process(ctx context.Context, inv model.InvoiceRecord) (*ProcessOutcome, error)
}

type invoicePipeline struct {
	engine      *validate.Engine
	session     *catalog.Session
	poster      ledger.Poster
	postings    repository.PostingRepository
	briefs      archive.BriefArchive
	maxEvidence int
	metrics     *Metrics
}

// NewInvoicePipeline constructs the pipeline. postings and metrics may be nil
// (the batch runner records no audit rows); poster and briefs are required
// only for the destinations that use them.
func NewInvoicePipeline(
	session *catalog.Session,
	cfg config.MatchingConfig,
	poster ledger.Poster,
	postings repository.PostingRepository,
	briefs archive.BriefArchive,
	metrics *Metrics,
) InvoicePipeline {
	return &invoicePipeline{
		engine: validate.NewEngine(validate.Tolerances{
			PricePercent:         cfg.PriceTolerancePercent,
			QuantityPercent:      cfg.QuantityTolerancePercent,
			VendorMismatchBlocks: cfg.VendorMismatchBlocks,
		}),
		session:     session,
		poster:      poster,
		postings:    postings,
		briefs:      briefs,
		maxEvidence: cfg.MaxEvidenceRecords,
		metrics:     metrics,
	}
}

func (p *invoicePipeline) Process(ctx context.Context, inv model.InvoiceRecord) (*ProcessOutcome, error) {
	res, err := p.engine.Validate(inv, p.session.PurchaseOrders, p.session.Deliveries)
	if err != nil {
		return nil, err
	}

	dest := routing.Decide(res.Status)
	p.metrics.routed(dest)

	outcome := &ProcessOutcome{
		InvoiceNumber: inv.InvoiceNumber,
		Destination:   dest,
		Result:        res,
	}

	switch dest {
	case routing.AutoPost:
		posting, err := p.poster.Post(ctx, ledger.Payload{
			InvoiceNumber: inv.InvoiceNumber,
			PONumber:      inv.PONumber,
			VendorName:    inv.VendorName,
			TotalAmount:   inv.TotalAmount(),
		})
		if err != nil {
			return nil, fmt.Errorf("ledger posting: %w", err)
		}
		outcome.Posting = &posting

		// The ledger accepted the posting; an audit write failure still
		// surfaces so the caller knows the trail is incomplete.
		if p.postings != nil {
			if _, err := p.postings.Create(ctx, &posting); err != nil {
				return nil, fmt.Errorf("record posting: %w", err)
			}
		}

	case routing.Investigate:
		evidence := investigate.Search(inv, p.session.Emails, p.maxEvidence)
		b := brief.Build(inv, res, evidence)
		outcome.Brief = &b

		if p.briefs != nil {
			if _, err := p.briefs.Save(ctx, b); err != nil {
				return nil, fmt.Errorf("archive brief: %w", err)
			}
		}
	}

	return outcome, nil
}
