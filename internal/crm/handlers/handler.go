// Package handlers serves the CRM's HTTP JSON API, bridging the transport
// layer and the service layer: request decoding and validation on the way
// in, domain-error to status-code mapping on the way out.
package handlers

import (
	"context"

	"github.com/velora/crm/internal/crm/models"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CompanyController is the business-logic interface the company routes
// invoke.
type CompanyController interface {
	CreateCompany(ctx context.Context, company *models.Company) (*models.Company, error)
	GetCompany(ctx context.Context, id uuid.UUID) (*models.Company, error)
	ListCompanies(ctx context.Context) ([]models.Company, error)
	UpdateCompany(ctx context.Context, update *models.CompanyUpdate) (*models.Company, error)
	DeleteCompany(ctx context.Context, id uuid.UUID) error
}

// EnquiryController is the business-logic interface the enquiry routes
// invoke.
type EnquiryController interface {
	CreateEnquiry(ctx context.Context, enquiry *models.Enquiry) (*models.Enquiry, error)
	GetEnquiry(ctx context.Context, id int) (*models.Enquiry, error)
	ListEnquiries(ctx context.Context, filter *models.EnquiryFilter) ([]models.Enquiry, error)
	UpdateEnquiry(ctx context.Context, update *models.EnquiryUpdate) (*models.Enquiry, error)
	UpdateEnquiryStatus(ctx context.Context, id int, status models.EnquiryStatus, fields *models.StatusFields) (*models.Enquiry, error)
	DeleteEnquiry(ctx context.Context, id int) error
}

// QuotationController is the business-logic interface the quotation routes
// invoke.
type QuotationController interface {
	CreateQuotation(ctx context.Context, quotation *models.Quotation) (*models.Quotation, error)
	GetQuotation(ctx context.Context, id uuid.UUID) (*models.Quotation, error)
	ListQuotations(ctx context.Context, filter *models.QuotationFilter) ([]models.Quotation, error)
	UpdateQuotation(ctx context.Context, update *models.QuotationUpdate) (*models.Quotation, error)
	UpdateQuotationStatus(ctx context.Context, id uuid.UUID, status models.QuotationStatus, fields *models.StatusFields) (*models.Quotation, error)
	DeleteQuotation(ctx context.Context, id uuid.UUID) error
}

// CommunicationController is the business-logic interface the communication
// routes invoke.
type CommunicationController interface {
	LogCommunication(ctx context.Context, comm *models.Communication) (*models.Communication, error)
	ListCommunications(ctx context.Context, enquiryID int) ([]models.Communication, error)
}

// Handler bundles the controllers behind the HTTP routes.
type Handler struct {
	companies      CompanyController
	enquiries      EnquiryController
	quotations     QuotationController
	communications CommunicationController
	logger         *zap.Logger
}

func NewHandler(
	companies CompanyController,
	enquiries EnquiryController,
	quotations QuotationController,
	communications CommunicationController,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		companies:      companies,
		enquiries:      enquiries,
		quotations:     quotations,
		communications: communications,
		logger:         logger.Named("http_handler"),
	}
}
