package catalog

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"apmatch/internal/model"
)

// readTable reads a tabular catalog file into header-keyed rows. CSV and XLSX
// are supported, dispatched on the file extension.
func readTable(path string) ([]map[string]string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		return readCSV(f)
	case ".xlsx":
		return readXLSX(path)
	default:
		return nil, fmt.Errorf("unsupported catalog format: %s", filepath.Ext(path))
	}
}

func readCSV(r io.Reader) ([]map[string]string, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	for i := range header {
		header[i] = strings.ToLower(strings.TrimSpace(header[i]))
	}

	var rows []map[string]string
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}
		rows = append(rows, zipRow(header, rec))
	}
	return rows, nil
}

func readXLSX(path string) ([]map[string]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	raw, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %s: %w", sheet, err)
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("sheet %s is empty", sheet)
	}

	header := raw[0]
	for i := range header {
		header[i] = strings.ToLower(strings.TrimSpace(header[i]))
	}
	rows := make([]map[string]string, 0, len(raw)-1)
	for _, rec := range raw[1:] {
		rows = append(rows, zipRow(header, rec))
	}
	return rows, nil
}

func zipRow(header, rec []string) map[string]string {
	row := make(map[string]string, len(header))
	for i, h := range header {
		if i < len(rec) {
			row[h] = strings.TrimSpace(rec[i])
		} else {
			row[h] = ""
		}
	}
	return row
}

// LoadPurchaseOrders loads the PO catalog. Expected columns:
// po_number, vendor_name, item_description, quantity, unit_price, total_amount.
// Rows with unparseable numeric cells are retained as malformed so lookups can
// report a data error for that po_number.
func LoadPurchaseOrders(path string) (*PurchaseOrders, error) {
	rows, err := readTable(path)
	if err != nil {
		return nil, err
	}

	cat := &PurchaseOrders{
		byNumber:  make(map[string][]model.PurchaseOrder),
		malformed: make(map[string]error),
	}
	for i, row := range rows {
		poNumber := row["po_number"]
		if poNumber == "" {
			continue // unkeyed row, nothing can ever reference it
		}
		po := model.PurchaseOrder{
			PONumber:        poNumber,
			VendorName:      row["vendor_name"],
			ItemDescription: row["item_description"],
		}
		var convErr error
		po.Quantity, convErr = parseNumeric(row["quantity"], "quantity", convErr)
		po.UnitPrice, convErr = parseNumeric(row["unit_price"], "unit_price", convErr)
		po.TotalAmount, convErr = parseNumeric(row["total_amount"], "total_amount", convErr)
		if convErr != nil {
			cat.malformed[poNumber] = fmt.Errorf("catalog row %d: %w", i+2, convErr)
			continue
		}
		cat.byNumber[poNumber] = append(cat.byNumber[poNumber], po)
		cat.total++
	}
	return cat, nil
}

// LoadDeliveries loads the delivery receipt catalog. Expected columns:
// invoice_number, po_number, status, signed_by, delivery_date.
func LoadDeliveries(path string) (*Deliveries, error) {
	rows, err := readTable(path)
	if err != nil {
		return nil, err
	}

	cat := &Deliveries{byInvoice: make(map[string]model.DeliveryReceipt)}
	for _, row := range rows {
		invoiceNumber := row["invoice_number"]
		if invoiceNumber == "" {
			continue
		}
		cat.byInvoice[invoiceNumber] = model.DeliveryReceipt{
			InvoiceNumber: invoiceNumber,
			PONumber:      row["po_number"],
			Status:        model.ParseDeliveryStatus(row["status"]),
			SignedBy:      row["signed_by"],
			DeliveryDate:  row["delivery_date"],
		}
	}
	return cat, nil
}

// parseNumeric accumulates the first conversion error so a row reports one
// precise reason.
func parseNumeric(raw, field string, prev error) (float64, error) {
	if prev != nil {
		return 0, prev
	}
	if raw == "" {
		return 0, fmt.Errorf("missing %s", field)
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(raw, ",", ""), 64)
	if err != nil {
		return 0, fmt.Errorf("non-numeric %s %q", field, raw)
	}
	return v, nil
}
