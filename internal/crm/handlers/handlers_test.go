package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/velora/crm/internal/crm/auth"
	e "github.com/velora/crm/internal/crm/errors"
	"github.com/velora/crm/internal/crm/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

const testSecret = "test-secret"

// Mock controllers expose one func field per method so each test wires only
// what it expects to be called.

type mockCompanyController struct {
	createFunc func(ctx context.Context, company *models.Company) (*models.Company, error)
	getFunc    func(ctx context.Context, id uuid.UUID) (*models.Company, error)
	listFunc   func(ctx context.Context) ([]models.Company, error)
	updateFunc func(ctx context.Context, update *models.CompanyUpdate) (*models.Company, error)
	deleteFunc func(ctx context.Context, id uuid.UUID) error
}

func (m *mockCompanyController) CreateCompany(ctx context.Context, company *models.Company) (*models.Company, error) {
	return m.createFunc(ctx, company)
}
func (m *mockCompanyController) GetCompany(ctx context.Context, id uuid.UUID) (*models.Company, error) {
	return m.getFunc(ctx, id)
}
func (m *mockCompanyController) ListCompanies(ctx context.Context) ([]models.Company, error) {
	return m.listFunc(ctx)
}
func (m *mockCompanyController) UpdateCompany(ctx context.Context, update *models.CompanyUpdate) (*models.Company, error) {
	return m.updateFunc(ctx, update)
}
func (m *mockCompanyController) DeleteCompany(ctx context.Context, id uuid.UUID) error {
	return m.deleteFunc(ctx, id)
}

type mockEnquiryController struct {
	createFunc       func(ctx context.Context, enquiry *models.Enquiry) (*models.Enquiry, error)
	getFunc          func(ctx context.Context, id int) (*models.Enquiry, error)
	listFunc         func(ctx context.Context, filter *models.EnquiryFilter) ([]models.Enquiry, error)
	updateFunc       func(ctx context.Context, update *models.EnquiryUpdate) (*models.Enquiry, error)
	updateStatusFunc func(ctx context.Context, id int, status models.EnquiryStatus, fields *models.StatusFields) (*models.Enquiry, error)
	deleteFunc       func(ctx context.Context, id int) error
}

func (m *mockEnquiryController) CreateEnquiry(ctx context.Context, enquiry *models.Enquiry) (*models.Enquiry, error) {
	return m.createFunc(ctx, enquiry)
}
func (m *mockEnquiryController) GetEnquiry(ctx context.Context, id int) (*models.Enquiry, error) {
	return m.getFunc(ctx, id)
}
func (m *mockEnquiryController) ListEnquiries(ctx context.Context, filter *models.EnquiryFilter) ([]models.Enquiry, error) {
	return m.listFunc(ctx, filter)
}
func (m *mockEnquiryController) UpdateEnquiry(ctx context.Context, update *models.EnquiryUpdate) (*models.Enquiry, error) {
	return m.updateFunc(ctx, update)
}
func (m *mockEnquiryController) UpdateEnquiryStatus(ctx context.Context, id int, status models.EnquiryStatus, fields *models.StatusFields) (*models.Enquiry, error) {
	return m.updateStatusFunc(ctx, id, status, fields)
}
func (m *mockEnquiryController) DeleteEnquiry(ctx context.Context, id int) error {
	return m.deleteFunc(ctx, id)
}

type mockQuotationController struct {
	createFunc       func(ctx context.Context, quotation *models.Quotation) (*models.Quotation, error)
	getFunc          func(ctx context.Context, id uuid.UUID) (*models.Quotation, error)
	listFunc         func(ctx context.Context, filter *models.QuotationFilter) ([]models.Quotation, error)
	updateFunc       func(ctx context.Context, update *models.QuotationUpdate) (*models.Quotation, error)
	updateStatusFunc func(ctx context.Context, id uuid.UUID, status models.QuotationStatus, fields *models.StatusFields) (*models.Quotation, error)
	deleteFunc       func(ctx context.Context, id uuid.UUID) error
}

func (m *mockQuotationController) CreateQuotation(ctx context.Context, quotation *models.Quotation) (*models.Quotation, error) {
	return m.createFunc(ctx, quotation)
}
func (m *mockQuotationController) GetQuotation(ctx context.Context, id uuid.UUID) (*models.Quotation, error) {
	return m.getFunc(ctx, id)
}
func (m *mockQuotationController) ListQuotations(ctx context.Context, filter *models.QuotationFilter) ([]models.Quotation, error) {
	return m.listFunc(ctx, filter)
}
func (m *mockQuotationController) UpdateQuotation(ctx context.Context, update *models.QuotationUpdate) (*models.Quotation, error) {
	return m.updateFunc(ctx, update)
}
func (m *mockQuotationController) UpdateQuotationStatus(ctx context.Context, id uuid.UUID, status models.QuotationStatus, fields *models.StatusFields) (*models.Quotation, error) {
	return m.updateStatusFunc(ctx, id, status, fields)
}
func (m *mockQuotationController) DeleteQuotation(ctx context.Context, id uuid.UUID) error {
	return m.deleteFunc(ctx, id)
}

type mockCommunicationController struct {
	logFunc  func(ctx context.Context, comm *models.Communication) (*models.Communication, error)
	listFunc func(ctx context.Context, enquiryID int) ([]models.Communication, error)
}

func (m *mockCommunicationController) LogCommunication(ctx context.Context, comm *models.Communication) (*models.Communication, error) {
	return m.logFunc(ctx, comm)
}
func (m *mockCommunicationController) ListCommunications(ctx context.Context, enquiryID int) ([]models.Communication, error) {
	return m.listFunc(ctx, enquiryID)
}

type routerMocks struct {
	companies      *mockCompanyController
	enquiries      *mockEnquiryController
	quotations     *mockQuotationController
	communications *mockCommunicationController
}

func newTestRouter(t *testing.T) (*gin.Engine, *routerMocks) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	mocks := &routerMocks{
		companies:      &mockCompanyController{},
		enquiries:      &mockEnquiryController{},
		quotations:     &mockQuotationController{},
		communications: &mockCommunicationController{},
	}
	h := NewHandler(mocks.companies, mocks.enquiries, mocks.quotations, mocks.communications, zaptest.NewLogger(t))
	return NewRouter(h, nil, nil, testSecret), mocks
}

func authHeader(t *testing.T) string {
	t.Helper()
	token, err := auth.GenerateToken("tester", testSecret)
	require.NoError(t, err)
	return "Bearer " + token
}

func doRequest(router *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		b, _ := json.Marshal(body)
		reader = bytes.NewReader(b)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", token)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) errorResponse {
	t.Helper()
	var resp errorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestHealthz(t *testing.T) {
	router, _ := newTestRouter(t)
	rec := doRequest(router, http.MethodGet, "/healthz", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestMutatingRoutesRequireToken(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doRequest(router, http.MethodPost, "/v1/companies", "", map[string]string{"name": "x"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doRequest(router, http.MethodPost, "/v1/companies", "Bearer garbage", map[string]string{"name": "x"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestReadRoutesArePublic(t *testing.T) {
	router, mocks := newTestRouter(t)
	mocks.enquiries.listFunc = func(ctx context.Context, filter *models.EnquiryFilter) ([]models.Enquiry, error) {
		return nil, nil
	}
	rec := doRequest(router, http.MethodGet, "/v1/enquiries", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestCreateCompany(t *testing.T) {
	router, mocks := newTestRouter(t)
	mocks.companies.createFunc = func(ctx context.Context, company *models.Company) (*models.Company, error) {
		assert.Equal(t, "Acme", company.Name)
		company.ID = uuid.New()
		return company, nil
	}

	rec := doRequest(router, http.MethodPost, "/v1/companies", authHeader(t), map[string]any{
		"name":     " Acme ",
		"industry": "null",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var view companyView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
	assert.Equal(t, "Acme", view.Name, "whitespace is trimmed before the controller sees it")
	assert.Empty(t, view.Industry, `"null" normalizes to unset`)
}

func TestCreateCompanyMissingName(t *testing.T) {
	router, mocks := newTestRouter(t)
	mocks.companies.createFunc = func(ctx context.Context, company *models.Company) (*models.Company, error) {
		t.Fatal("controller must not be reached on validation failure")
		return nil, nil
	}

	rec := doRequest(router, http.MethodPost, "/v1/companies", authHeader(t), map[string]any{"name": "   "})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decodeError(t, rec)
	require.Len(t, resp.Fields, 1)
	assert.Equal(t, "name", resp.Fields[0].Field)
}

func TestGetCompanyMalformedID(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doRequest(router, http.MethodGet, "/v1/companies/not-a-uuid", "", nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decodeError(t, rec)
	require.Len(t, resp.Fields, 1)
	assert.Equal(t, "id", resp.Fields[0].Field)
}

func TestGetCompanyNotFound(t *testing.T) {
	router, mocks := newTestRouter(t)
	mocks.companies.getFunc = func(ctx context.Context, id uuid.UUID) (*models.Company, error) {
		return nil, e.ErrNotFound
	}

	rec := doRequest(router, http.MethodGet, "/v1/companies/"+uuid.NewString(), "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCreateQuotationDuplicate(t *testing.T) {
	router, mocks := newTestRouter(t)
	mocks.quotations.createFunc = func(ctx context.Context, quotation *models.Quotation) (*models.Quotation, error) {
		return nil, e.ErrDuplicate
	}

	rec := doRequest(router, http.MethodPost, "/v1/quotations", authHeader(t), map[string]any{
		"enquiryId": 7,
		"number":    "Q-1",
	})
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestCreateEnquiryCollectsAllFieldErrors(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doRequest(router, http.MethodPost, "/v1/enquiries", authHeader(t), map[string]any{
		"title":     "",
		"priority":  "urgent",
		"companyId": "nope",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decodeError(t, rec)
	fields := make([]string, 0, len(resp.Fields))
	for _, f := range resp.Fields {
		fields = append(fields, f.Field)
	}
	assert.ElementsMatch(t, []string{"title", "priority", "companyId"}, fields,
		"one response reports every failing field")
}

func TestEnquiryIDMustBePositiveInteger(t *testing.T) {
	router, _ := newTestRouter(t)

	for _, path := range []string{"/v1/enquiries/abc", "/v1/enquiries/-4", "/v1/enquiries/0"} {
		rec := doRequest(router, http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code, path)
	}
}

func TestUpdateEnquiryStatusDecodesFields(t *testing.T) {
	router, mocks := newTestRouter(t)
	mocks.enquiries.updateStatusFunc = func(ctx context.Context, id int, status models.EnquiryStatus, fields *models.StatusFields) (*models.Enquiry, error) {
		assert.Equal(t, 12, id)
		assert.Equal(t, models.EnquiryWon, status)
		po, ok := fields.PurchaseOrderNumber.Get()
		require.True(t, ok)
		assert.Equal(t, "PO-9", po)
		assert.False(t, fields.POValue.IsSet(), "NaN-free absent field stays unset")
		date, ok := fields.PODate.Get()
		require.True(t, ok)
		assert.Equal(t, "2024-04-01", date.Format("2006-01-02"))
		return &models.Enquiry{ID: id, Status: status}, nil
	}

	rec := doRequest(router, http.MethodPatch, "/v1/enquiries/12/status", authHeader(t), map[string]any{
		"status":              "WON",
		"purchaseOrderNumber": "PO-9",
		"poDate":              "2024-04-01",
	})
	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
}

func TestUpdateEnquiryStatusBadDate(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doRequest(router, http.MethodPatch, "/v1/enquiries/12/status", authHeader(t), map[string]any{
		"status": "WON",
		"poDate": "01-04-2024",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decodeError(t, rec)
	require.Len(t, resp.Fields, 1)
	assert.Equal(t, "poDate", resp.Fields[0].Field)
}

func TestUpdateQuotationStatusRoute(t *testing.T) {
	router, mocks := newTestRouter(t)
	id := uuid.New()
	mocks.quotations.updateStatusFunc = func(ctx context.Context, gotID uuid.UUID, status models.QuotationStatus, fields *models.StatusFields) (*models.Quotation, error) {
		assert.Equal(t, id, gotID)
		assert.Equal(t, models.QuotationReceived, status)
		return &models.Quotation{ID: gotID, Status: status}, nil
	}

	rec := doRequest(router, http.MethodPatch, "/v1/quotations/"+id.String()+"/status", authHeader(t), map[string]any{
		"status": "RECEIVED",
	})
	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
}

func TestListEnquiriesBadStatusFilter(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doRequest(router, http.MethodGet, "/v1/enquiries?status=open", "", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestMalformedJSONBody(t *testing.T) {
	router, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/v1/companies", bytes.NewReader([]byte("{not json")))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", authHeader(t))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDeleteEnquiryNoContent(t *testing.T) {
	router, mocks := newTestRouter(t)
	mocks.enquiries.deleteFunc = func(ctx context.Context, id int) error {
		assert.Equal(t, 3, id)
		return nil
	}

	rec := doRequest(router, http.MethodDelete, "/v1/enquiries/3", authHeader(t), nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestInternalErrorsDoNotLeak(t *testing.T) {
	router, mocks := newTestRouter(t)
	mocks.enquiries.getFunc = func(ctx context.Context, id int) (*models.Enquiry, error) {
		return nil, assert.AnError
	}

	rec := doRequest(router, http.MethodGet, "/v1/enquiries/5", "", nil)
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	resp := decodeError(t, rec)
	assert.Equal(t, "operation failed", resp.Error, "storage details never reach the caller")
}

func TestListCommunicationsRoute(t *testing.T) {
	router, mocks := newTestRouter(t)
	mocks.communications.listFunc = func(ctx context.Context, enquiryID int) ([]models.Communication, error) {
		assert.Equal(t, 9, enquiryID)
		return []models.Communication{
			{ID: uuid.New(), EnquiryID: 9, Kind: models.CommunicationNote, Summary: "called back"},
		}, nil
	}

	rec := doRequest(router, http.MethodGet, "/v1/enquiries/9/communications", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var views []communicationView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &views))
	require.Len(t, views, 1)
	assert.Equal(t, "called back", views[0].Summary)
}
