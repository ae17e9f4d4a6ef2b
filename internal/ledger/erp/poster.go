// Package erp posts invoices to the ERP ledger over HTTP.
package erp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"apmatch/internal/ledger"
)

// Poster implements ledger.Poster against an HTTP endpoint. The client
// transport is instrumented with otelhttp so ledger calls show up as child
// spans of the invoice pipeline.
type Poster struct {
	endpoint string
	client   *http.Client
}

// NewPoster builds a Poster for the given endpoint URL.
func NewPoster(endpoint string, timeout time.Duration) (*Poster, error) {
	if endpoint == "" {
		return nil, fmt.Errorf("ledger endpoint is required")
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Poster{
		endpoint: endpoint,
		client: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}, nil
}

var _ ledger.Poster = (*Poster)(nil)

// Post submits the payload and returns the ledger's posting reference.
// A non-2xx response is an error; the payload is never partially applied on
// our side, so the caller may retry safely.
func (p *Poster) Post(ctx context.Context, payload ledger.Payload) (ledger.Posting, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return ledger.Posting{}, fmt.Errorf("marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint, bytes.NewReader(body))
	if err != nil {
		return ledger.Posting{}, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return ledger.Posting{}, fmt.Errorf("post to ledger: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return ledger.Posting{}, fmt.Errorf("ledger rejected posting: status %d", resp.StatusCode)
	}

	var ack struct {
		Reference string `json:"reference"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&ack); err != nil {
		return ledger.Posting{}, fmt.Errorf("decode ledger response: %w", err)
	}
	if ack.Reference == "" {
		// Some ledgers acknowledge without a reference; synthesize one so
		// the audit row is still traceable.
		ack.Reference = "LEDGER-" + uuid.NewString()
	}

	return ledger.Posting{
		InvoiceNumber: payload.InvoiceNumber,
		PONumber:      payload.PONumber,
		VendorName:    payload.VendorName,
		TotalAmount:   payload.TotalAmount,
		Reference:     ack.Reference,
		PostedAt:      time.Now().UTC(),
	}, nil
}
