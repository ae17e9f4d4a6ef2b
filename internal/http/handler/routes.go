package handler

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"apmatch/internal/archive"
	"apmatch/internal/extract"
	"apmatch/internal/repository"
	"apmatch/internal/service"
	"apmatch/internal/validate"
)

// RegisterRoutes attaches HTTP routes to the provided Fiber app.
// Handlers stay thin: decode, call the pipeline or repository, translate
// errors into the standard envelope.
func RegisterRoutes(app *fiber.App, db *sql.DB, pipeline service.InvoicePipeline, briefs archive.BriefArchive, postings repository.PostingRepository) {
	// Serve OpenAPI spec and Swagger UI
	app.Get("/openapi.yaml", func(c *fiber.Ctx) error {
		c.Type("yaml")
		return c.SendFile("openapi.yaml")
	})
	app.Get("/docs", func(c *fiber.Ctx) error {
		html := `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8" />
  <meta name="viewport" content="width=device-width, initial-scale=1" />
  <title>API Docs</title>
  <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5/swagger-ui.css" />
</head>
<body>
  <div id="swagger-ui"></div>
  <script src="https://unpkg.com/swagger-ui-dist@5/swagger-ui-bundle.js"></script>
  <script>
    window.ui = SwaggerUIBundle({
      url: '/openapi.yaml',
      dom_id: '#swagger-ui',
      presets: [SwaggerUIBundle.presets.apis],
      layout: 'BaseLayout'
    });
  </script>
</body>
</html>`
		return c.Type("html").SendString(html)
	})

	app.Get("/health", HealthCheck(db))
	app.Get("/healthz", LivenessProbe())
	app.Post("/invoices", ProcessInvoice(pipeline))
	app.Get("/briefs/:invoice_number", GetBrief(briefs))
	app.Get("/postings", ListPostings(postings))
}

// HealthCheck reports readiness: it requires DB connectivity.
func HealthCheck(db *sql.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()
		if err := db.PingContext(ctx); err != nil {
			return writeError(c, fiber.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "dependency unavailable")
		}
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "healthy"})
	}
}

// LivenessProbe is a plain liveness endpoint.
func LivenessProbe() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	}
}

// ProcessInvoice accepts an extracted invoice JSON document, runs it through
// the pipeline and returns the terminal outcome: 201 when the invoice was
// posted to the ledger, 202 when it was routed to investigation.
func ProcessInvoice(pipeline service.InvoicePipeline) fiber.Handler {
	return func(c *fiber.Ctx) error {
		inv, err := extract.Decode(c.Body())
		if err != nil {
			return writeError(c, fiber.StatusUnprocessableEntity, "SCHEMA_VIOLATION", "invoice payload violates extraction contract")
		}

		outcome, err := pipeline.Process(c.UserContext(), inv)
		if err != nil {
			var dataErr *validate.DataError
			var ambErr *validate.AmbiguousMatchError
			switch {
			case errors.As(err, &dataErr):
				return writeError(c, fiber.StatusBadRequest, "DATA_ERROR", dataErr.Error())
			case errors.As(err, &ambErr):
				return writeError(c, fiber.StatusConflict, "AMBIGUOUS_PO", ambErr.Error())
			default:
				return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
			}
		}

		status := fiber.StatusCreated
		if outcome.Brief != nil {
			status = fiber.StatusAccepted
		}
		return c.Status(status).JSON(outcome)
	}
}

// GetBrief returns the archived resolution brief for an invoice number.
func GetBrief(briefs archive.BriefArchive) fiber.Handler {
	return func(c *fiber.Ctx) error {
		invoiceNumber := c.Params("invoice_number")
		if invoiceNumber == "" {
			return writeError(c, fiber.StatusBadRequest, "INVALID_INVOICE_NUMBER", "invoice number is required")
		}
		b, err := briefs.Load(c.UserContext(), invoiceNumber)
		if err != nil {
			if errors.Is(err, archive.ErrBriefNotFound) {
				return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "brief not found")
			}
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.JSON(b)
	}
}

// ListPostings returns the posting audit trail with limit & offset.
func ListPostings(postings repository.PostingRepository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		limitStr := c.Query("limit", "10")
		offsetStr := c.Query("offset", "0")
		limit, err := strconv.Atoi(limitStr)
		if err != nil || limit <= 0 {
			return writeError(c, fiber.StatusBadRequest, "INVALID_LIMIT", "invalid limit")
		}
		offset, err := strconv.Atoi(offsetStr)
		if err != nil || offset < 0 {
			return writeError(c, fiber.StatusBadRequest, "INVALID_OFFSET", "invalid offset")
		}

		res, err := postings.List(c.UserContext(), repository.PageQuery{Limit: limit, Offset: offset})
		if err != nil {
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.JSON(fiber.Map{"data": res.Items, "total": res.Total})
	}
}
