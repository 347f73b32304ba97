package http_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Invoicing-api/internal/application/billing"
	"github.com/jhoicas/Invoicing-api/internal/domain/entity"
	"github.com/jhoicas/Invoicing-api/internal/infrastructure/xmlexport"
	apihttp "github.com/jhoicas/Invoicing-api/internal/interfaces/http"
	"github.com/jhoicas/Invoicing-api/pkg/logger"
)

const (
	testSecret = "test-undo-secret"
	testIssuer = "invoicing-api-test"
)

type testEnv struct {
	app       *fiber.App
	customers *MockCustomerRepository
	invoices  *MockInvoiceRepository
	terms     *MockPaymentTermsRepository
	pdf       *MockPDFGenerator
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	env := &testEnv{
		customers: new(MockCustomerRepository),
		invoices:  new(MockInvoiceRepository),
		terms:     new(MockPaymentTermsRepository),
		pdf:       new(MockPDFGenerator),
	}

	customerUC := billing.NewCustomerUseCase(env.customers, nil, billing.WithGracePeriod(10*time.Second))
	invoiceUC := billing.NewInvoiceUseCase(env.invoices, env.terms, env.customers)
	documentUC := billing.NewDocumentUseCase(env.invoices, env.customers, env.pdf, xmlexport.NewInvoiceExporter(""))

	env.app = fiber.New()
	env.app.Use(apihttp.RequestLogger(logger.Nop()))
	apihttp.Router(env.app, apihttp.RouterDeps{
		CustomerUC:   customerUC,
		InvoiceUC:    invoiceUC,
		DocumentUC:   documentUC,
		UndoTickets:  apihttp.UndoTicketConfig{Secret: testSecret, Issuer: testIssuer},
		DefaultGroup: "A-E",
		Logger:       logger.Nop(),
	})

	t.Cleanup(func() {
		env.customers.AssertExpectations(t)
		env.invoices.AssertExpectations(t)
		env.terms.AssertExpectations(t)
		env.pdf.AssertExpectations(t)
	})
	return env
}

func (e *testEnv) do(t *testing.T, method, path string, body any, headers map[string]string) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func readBody(t *testing.T, resp *http.Response) []byte {
	t.Helper()
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return raw
}

func activeCustomer(id int, name string) *entity.Customer {
	return &entity.Customer{
		ID:              id,
		Name:            name,
		Address1:        "1 Main St",
		City:            "Ottawa",
		ProvinceOrState: "ON",
		ZipOrPostalCode: "K1A 0B1",
		Phone:           "613-555-0100",
		ContactEmail:    "billing@example.com",
	}
}

func pendingCustomer(id int, name string, deletedAt time.Time) *entity.Customer {
	c := activeCustomer(id, name)
	c.IsDeleted = true
	c.DeletedAt = &deletedAt
	return c
}

func validCustomerBody(name string) map[string]any {
	return map[string]any{
		"name":               name,
		"address1":           "1 Main St",
		"city":               "Ottawa",
		"province_or_state":  "ON",
		"zip_or_postal_code": "K1A 0B1",
		"phone":              "613-555-0100",
		"contact_email":      "billing@example.com",
	}
}
