// Command apbatch runs a directory of extracted invoices through the
// validation pipeline offline and writes an XLSX outcome report. No ledger
// endpoint, database or object store is touched: postings are dry-run and
// briefs stay in the report.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/google/uuid"
	_ "github.com/joho/godotenv/autoload"
	"github.com/xuri/excelize/v2"

	"apmatch/internal/catalog"
	"apmatch/internal/config"
	"apmatch/internal/extract"
	"apmatch/internal/ledger"
	"apmatch/internal/service"
)

// dryRunPoster satisfies ledger.Poster without leaving the process.
type dryRunPoster struct{}

func (dryRunPoster) Post(_ context.Context, payload ledger.Payload) (ledger.Posting, error) {
	return ledger.Posting{
		InvoiceNumber: payload.InvoiceNumber,
		PONumber:      payload.PONumber,
		VendorName:    payload.VendorName,
		TotalAmount:   payload.TotalAmount,
		Reference:     "DRY-RUN-" + uuid.NewString(),
		PostedAt:      time.Now().UTC(),
	}, nil
}

func main() {
	var (
		invoicesPath = flag.String("invoices", "", "path to a JSON array of extracted invoices")
		catalogDir   = flag.String("catalog", "", "catalog directory (defaults to CATALOG_DIR)")
		outPath      = flag.String("out", "outcomes.xlsx", "path of the XLSX outcome report")
	)
	flag.Parse()

	if *invoicesPath == "" {
		log.Fatal("-invoices is required")
	}

	cfg := config.Load()
	dir := *catalogDir
	if dir == "" {
		dir = cfg.CatalogDir
	}

	session, err := catalog.LoadSession(dir)
	if err != nil {
		log.Fatalf("failed to load catalogs from %s: %v", dir, err)
	}

	raw, err := os.ReadFile(*invoicesPath)
	if err != nil {
		log.Fatalf("failed to read invoices: %v", err)
	}
	var docs []json.RawMessage
	if err := json.Unmarshal(raw, &docs); err != nil {
		log.Fatalf("invoices file must be a JSON array: %v", err)
	}

	pipeline := service.NewInvoicePipeline(session, cfg.Matching, dryRunPoster{}, nil, nil, nil)

	f := excelize.NewFile()
	defer f.Close()
	const sheet = "Outcomes"
	f.SetSheetName(f.GetSheetName(0), sheet)
	header := []any{"invoice_number", "po_number", "vendor_name", "destination", "status", "recommended_action", "reference", "detail"}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		log.Fatalf("failed to write report header: %v", err)
	}

	ctx := context.Background()
	row := 2
	for i, doc := range docs {
		cells := runOne(ctx, pipeline, doc, i)
		cell, _ := excelize.CoordinatesToCellName(1, row)
		if err := f.SetSheetRow(sheet, cell, &cells); err != nil {
			log.Fatalf("failed to write report row: %v", err)
		}
		row++
	}

	if err := f.SaveAs(*outPath); err != nil {
		log.Fatalf("failed to save report: %v", err)
	}
	fmt.Printf("processed %d invoices, report written to %s\n", len(docs), *outPath)
}

// runOne produces one report row. Per-invoice failures become ERROR rows
// instead of aborting the batch.
func runOne(ctx context.Context, pipeline service.InvoicePipeline, doc json.RawMessage, idx int) []any {
	inv, err := extract.Decode(doc)
	if err != nil {
		return []any{fmt.Sprintf("(document %d)", idx+1), "", "", "ERROR", "SCHEMA_VIOLATION", "", "", err.Error()}
	}

	outcome, err := pipeline.Process(ctx, inv)
	if err != nil {
		return []any{inv.InvoiceNumber, inv.PONumber, inv.VendorName, "ERROR", "", "", "", err.Error()}
	}

	cells := []any{
		inv.InvoiceNumber,
		inv.PONumber,
		inv.VendorName,
		string(outcome.Destination),
		string(outcome.Result.Status),
		"", "", "",
	}
	switch {
	case outcome.Posting != nil:
		cells[6] = outcome.Posting.Reference
	case outcome.Brief != nil:
		cells[5] = string(outcome.Brief.RecommendedAction)
		cells[7] = outcome.Brief.Summary
	}
	return cells
}
