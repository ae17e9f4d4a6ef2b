// Package extract is the boundary contract with the document extraction
// collaborator. The core never parses documents; it accepts structured
// invoice JSON and rejects anything that does not satisfy the schema before
// it can reach validation logic.
package extract

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"apmatch/internal/model"
)

// ErrContract wraps every schema violation so callers can translate the
// whole class to one response code.
var ErrContract = errors.New("invoice payload violates extraction contract")

// invoiceSchema is a draft 2020-12 schema for the extracted invoice record.
// Numeric fields are required and typed, so a missing quantity or price is
// rejected here instead of defaulting to zero downstream.
const invoiceSchema = `{
  "type": "object",
  "additionalProperties": false,
  "required": ["invoice_number", "vendor_name", "po_number", "line_items"],
  "properties": {
    "invoice_number": {"type": "string", "minLength": 1},
    "vendor_name":    {"type": "string", "minLength": 1},
    "po_number":      {"type": "string", "minLength": 1},
    "extracted_at":   {"type": "string"},
    "line_items": {
      "type": "array",
      "minItems": 1,
      "items": {
        "type": "object",
        "additionalProperties": false,
        "required": ["description", "quantity", "unit_price", "total"],
        "properties": {
          "description": {"type": "string"},
          "quantity":    {"type": "number"},
          "unit_price":  {"type": "number"},
          "total":       {"type": "number"}
        }
      }
    }
  }
}`

var compiledSchema = jsonschema.MustCompileString("invoice.json", invoiceSchema)

// Decode validates raw extraction output against the invoice schema and
// decodes it into an InvoiceRecord. ExtractedAt defaults to the current time
// when the collaborator did not stamp one.
func Decode(data []byte) (model.InvoiceRecord, error) {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return model.InvoiceRecord{}, fmt.Errorf("%w: %v", ErrContract, err)
	}
	if err := compiledSchema.Validate(v); err != nil {
		return model.InvoiceRecord{}, fmt.Errorf("%w: %v", ErrContract, err)
	}

	var inv model.InvoiceRecord
	if err := json.Unmarshal(data, &inv); err != nil {
		return model.InvoiceRecord{}, fmt.Errorf("%w: %v", ErrContract, err)
	}
	if inv.ExtractedAt.IsZero() {
		inv.ExtractedAt = time.Now().UTC()
	}
	return inv, nil
}
