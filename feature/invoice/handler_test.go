package invoice_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"testing"

	"invoicely/core/database"
	"invoicely/core/storage/mocks"
	"invoicely/feature/invoice"
	"invoicely/feature/invoice/producer"
	"invoicely/feature/invoice/reconcile"
	"invoicely/feature/invoice/validate"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupApp(t *testing.T, client *mocks.Client) *fiber.App {
	t.Helper()

	db, err := database.Connect(database.Config{Driver: "sqlite", Name: ":memory:"})
	require.NoError(t, err)

	feature := invoice.NewFeature(client, "invoices", zap.NewNop(), db, reconcile.Config{}, producer.Config{})

	app := fiber.New()
	require.NoError(t, feature.Load(app))
	return app
}

func TestHandleReconcile(t *testing.T) {
	app := setupApp(t, new(mocks.Client))

	body := `{
		"primary":   {"invoice_number":"INV-001","vendor_name":"Acme Corp","total_amount":"1080.00","invoice_date":"2024-01-15"},
		"secondary": {"invoice_number":"INV-001","vendor_name":"Acme Corporation","total_amount":"1080.00","invoice_date":"2024-01-15"}
	}`

	req := httptest.NewRequest("POST", "/invoices/reconcile", bytes.NewReader([]byte(body)))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var result reconcile.MergeResult
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))

	require.NotNil(t, result.Merged.VendorName)
	assert.Equal(t, "Acme Corporation", *result.Merged.VendorName)
	assert.Equal(t, 95, result.QualityScore)
	assert.Equal(t, reconcile.RecommendApprove, result.Recommendation)
	assert.Len(t, result.Mismatches, 1)
}

func TestHandleReconcile_BadInput(t *testing.T) {
	app := setupApp(t, new(mocks.Client))

	t.Run("MalformedBody", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/invoices/reconcile", bytes.NewReader([]byte("not json")))
		req.Header.Set("Content-Type", "application/json")

		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	})

	t.Run("MissingRecord", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/invoices/reconcile", bytes.NewReader([]byte(`{"primary":{}}`)))
		req.Header.Set("Content-Type", "application/json")

		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	})
}

func TestHandleValidate(t *testing.T) {
	app := setupApp(t, new(mocks.Client))

	body := `{"invoice_number":"INV-001","vendor_name":"Acme Corporation","buyer_name":"Globex LLC","invoice_date":"2024-01-15","due_date":"2024-02-14","currency":"USD","subtotal":"2000.00","tax_amount":"160.00","total_amount":"2500.00"}`

	req := httptest.NewRequest("POST", "/invoices/validate", bytes.NewReader([]byte(body)))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var result validate.Result
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))

	assert.Equal(t, "INV-001", result.InvoiceNumber)
	require.NotEmpty(t, result.Errors)
	assert.Contains(t, result.Errors[0], "Amount mismatch")
}

func TestHandleProcess(t *testing.T) {
	payload := `{"invoice_number":"INV-001","vendor_name":"Acme","total_amount":"100.00","invoice_date":"2024-01-15"}`

	mockClient := new(mocks.Client)
	mockClient.On("GetObject", mock.Anything, "invoices", "extractions/textract/inv-001.json", mock.Anything).
		Return(io.NopCloser(bytes.NewReader([]byte(payload))), nil)
	mockClient.On("GetObject", mock.Anything, "invoices", "extractions/docai/inv-001.json", mock.Anything).
		Return(io.NopCloser(bytes.NewReader([]byte(payload))), nil)

	app := setupApp(t, mockClient)

	resp, err := app.Test(httptest.NewRequest("POST", "/invoices/process/inv-001", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var report invoice.ProcessReport
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&report))

	assert.Equal(t, "inv-001", report.Document)
	require.NotNil(t, report.Stored)

	// The stored row is retrievable through the read endpoints.
	listResp, err := app.Test(httptest.NewRequest("GET", "/invoices/", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, listResp.StatusCode)

	getResp, err := app.Test(httptest.NewRequest("GET", "/invoices/"+report.Stored.ID, nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, getResp.StatusCode)
}

func TestHandleProcess_NoExtraction(t *testing.T) {
	mockClient := new(mocks.Client)
	mockClient.On("GetObject", mock.Anything, "invoices", mock.Anything, mock.Anything).
		Return(nil, errors.New("unreachable"))

	app := setupApp(t, mockClient)

	resp, err := app.Test(httptest.NewRequest("POST", "/invoices/process/missing", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)
}

func TestHandleGet_NotFound(t *testing.T) {
	app := setupApp(t, new(mocks.Client))

	resp, err := app.Test(httptest.NewRequest("GET", "/invoices/nope", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}
