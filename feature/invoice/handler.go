package invoice

import (
	"errors"

	"invoicely/core/logger"
	"invoicely/feature/invoice/models"
	"invoicely/feature/invoice/reconcile"
	"invoicely/feature/invoice/validate"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for invoice processing.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the invoice routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/invoices")
	group.Post("/reconcile", h.HandleReconcile)
	group.Post("/validate", h.HandleValidate)
	group.Post("/process/:document", h.HandleProcess)
	group.Get("/", h.HandleList)
	group.Get("/:id", h.HandleGet)
}

// ReconcileRequest carries both provider readings of one document.
type ReconcileRequest struct {
	Primary   *models.Record `json:"primary"`
	Secondary *models.Record `json:"secondary"`
}

// HandleReconcile merges two extracted records.
// @Summary Reconcile Two Extractions
// @Description Merges the primary and secondary provider readings of an invoice into one record with a per-field decision trail and a quality score.
// @Tags invoices
// @Accept json
// @Produce json
// @Param request body ReconcileRequest true "Both provider readings"
// @Success 200 {object} reconcile.MergeResult "Merge Result"
// @Failure 400 {object} map[string]string "Bad Request"
// @Router /invoices/reconcile [post]
func (h *Handler) HandleReconcile(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	var req ReconcileRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	result, err := h.service.Reconcile(req.Primary, req.Secondary)
	if err != nil {
		if errors.Is(err, reconcile.ErrNilRecord) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
		l.Error("Reconciliation failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	l.Info("Records reconciled",
		zap.Int("quality_score", result.QualityScore),
		zap.String("recommendation", string(result.Recommendation)),
		zap.Int("mismatches", len(result.Mismatches)))

	return c.JSON(result)
}

// HandleValidate scores one record against the validation rules.
// @Summary Validate An Invoice Record
// @Description Runs the completeness, format, business logic and anomaly rules over a record and returns the score, verdict and every violation message.
// @Tags invoices
// @Accept json
// @Produce json
// @Param record body models.Record true "Invoice record"
// @Success 200 {object} validate.Result "Validation Result"
// @Failure 400 {object} map[string]string "Bad Request"
// @Router /invoices/validate [post]
func (h *Handler) HandleValidate(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	var rec models.Record
	if err := c.BodyParser(&rec); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	result, err := h.service.Validate(&rec)
	if err != nil {
		if errors.Is(err, validate.ErrNilRecord) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
		l.Error("Validation failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(result)
}

// HandleProcess runs the full pipeline for one document.
// @Summary Process A Document
// @Description Invokes both extraction providers for the document, merges their readings, validates the merged record and persists the outcome.
// @Tags invoices
// @Accept json
// @Produce json
// @Param document path string true "Document name"
// @Success 200 {object} ProcessReport "Process Report"
// @Failure 422 {object} map[string]string "No provider produced a record"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /invoices/process/{document} [post]
func (h *Handler) HandleProcess(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	document := c.Params("document")

	report, err := h.service.ProcessDocument(c.Context(), document)
	if err != nil {
		if errors.Is(err, ErrNoExtraction) {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": err.Error()})
		}
		l.Error("Document processing failed",
			zap.String("document", document),
			zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(report)
}

// HandleList returns persisted processing outcomes.
// @Summary List Processed Invoices
// @Description Returns persisted processing outcomes, newest first. Supports filtering by recommendation and validity.
// @Tags invoices
// @Accept json
// @Produce json
// @Param recommendation query string false "Filter by recommendation (approve, review, reject)"
// @Param valid query boolean false "Only rows that passed validation"
// @Param limit query int false "Page size (default 100)"
// @Param offset query int false "Page offset"
// @Success 200 {array} models.ProcessedInvoice "Processed Invoices"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /invoices [get]
func (h *Handler) HandleList(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	filter := ListFilter{
		Recommendation: c.Query("recommendation"),
		OnlyValid:      c.Query("valid") == "true",
		Limit:          c.QueryInt("limit"),
		Offset:         c.QueryInt("offset"),
	}

	rows, err := h.service.ListProcessed(c.Context(), filter)
	if err != nil {
		l.Error("Listing processed invoices failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(rows)
}

// HandleGet returns one persisted outcome with its decoded merged record.
// @Summary Get A Processed Invoice
// @Description Returns one persisted outcome by ID, including the decoded merged record.
// @Tags invoices
// @Accept json
// @Produce json
// @Param id path string true "Processed invoice ID"
// @Success 200 {object} map[string]interface{} "Processed Invoice"
// @Failure 404 {object} map[string]string "Not Found"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /invoices/{id} [get]
func (h *Handler) HandleGet(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	id := c.Params("id")

	row, err := h.service.GetProcessed(c.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
		}
		l.Error("Loading processed invoice failed", zap.String("id", id), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	merged, err := MergedRecord(row)
	if err != nil {
		l.Error("Decoding merged record failed", zap.String("id", id), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{
		"invoice": row,
		"merged":  merged,
	})
}
