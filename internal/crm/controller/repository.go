// Package controller implements the service layer: CRUD orchestration for
// companies, enquiries, quotations and communications, and the status engine
// that keeps enquiry and quotation statuses in sync.
package controller

import (
	"context"
	"time"

	"github.com/velora/crm/internal/crm/db"
	"github.com/velora/crm/internal/crm/events"
	"github.com/velora/crm/internal/crm/models"
	"github.com/google/uuid"
)

// EventProducer publishes domain events; delivery is asynchronous and
// best-effort.
type EventProducer interface {
	Produce(eventType events.EventType, key string, payload any)
}

// Repository defines the storage interface consumed by the services. The
// gateway is assumed to implement point lookup, partial update, bulk update
// by filter, and an all-or-nothing transactional wrapper.
type Repository interface {
	CreateCompany(ctx context.Context, company *models.Company) error
	GetCompany(ctx context.Context, id uuid.UUID) (*models.Company, error)
	ListCompanies(ctx context.Context) ([]models.Company, error)
	UpdateCompany(ctx context.Context, update *models.CompanyUpdate) error
	DeleteCompany(ctx context.Context, id uuid.UUID) error
	CompanyExistsByName(ctx context.Context, name string) (bool, error)

	CreateEnquiry(ctx context.Context, enquiry *models.Enquiry) error
	GetEnquiry(ctx context.Context, id int) (*models.Enquiry, error)
	ListEnquiries(ctx context.Context, filter *models.EnquiryFilter) ([]models.Enquiry, error)
	UpdateEnquiry(ctx context.Context, update *models.EnquiryUpdate) error
	DeleteEnquiry(ctx context.Context, id int) error

	CreateQuotation(ctx context.Context, quotation *models.Quotation) error
	GetQuotation(ctx context.Context, id uuid.UUID) (*models.Quotation, error)
	ListQuotations(ctx context.Context, filter *models.QuotationFilter) ([]models.Quotation, error)
	UpdateQuotation(ctx context.Context, update *models.QuotationUpdate) error
	DeleteQuotation(ctx context.Context, id uuid.UUID) error
	QuotationNumberExists(ctx context.Context, number string) (bool, error)

	CreateCommunication(ctx context.Context, comm *models.Communication) error
	ListCommunicationsByEnquiry(ctx context.Context, enquiryID int) ([]models.Communication, error)

	IncrementLoginAttempt(ctx context.Context, key string, window time.Duration) (int, error)
	ResetLoginAttempt(ctx context.Context, key string) error

	WithTransaction(ctx context.Context, fn func(repo *db.Repository) error) error
	Close() error
}
