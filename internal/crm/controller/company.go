package controller

import (
	"context"
	"errors"
	"fmt"

	e "github.com/velora/crm/internal/crm/errors"
	"github.com/velora/crm/internal/crm/events"
	"github.com/velora/crm/internal/crm/models"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CompanyService provides methods to manage companies and their nested
// offices, plants and contact people.
type CompanyService struct {
	repo     Repository
	producer EventProducer
	logger   *zap.Logger
}

func NewCompanyService(repo Repository, producer EventProducer, logger *zap.Logger) *CompanyService {
	return &CompanyService{
		repo:     repo,
		producer: producer,
		logger:   logger.Named("company_service"),
	}
}

// CreateCompany adds a new company after validating input data, ensures
// uniqueness by name, and triggers an event.
func (s *CompanyService) CreateCompany(ctx context.Context, company *models.Company) (*models.Company, error) {
	if company.Name == "" || len(company.Name) > 120 {
		return nil, fmt.Errorf("%w: invalid name", e.ErrInvalidInput)
	}

	exists, err := s.repo.CompanyExistsByName(ctx, company.Name)
	if err != nil {
		return nil, fmt.Errorf("failed to check name existence: %w", err)
	}
	if exists {
		return nil, e.ErrDuplicate
	}

	company.ID = uuid.New()
	for i := range company.Offices {
		company.Offices[i].ID = uuid.New()
		company.Offices[i].CompanyID = company.ID
	}
	for i := range company.Plants {
		company.Plants[i].ID = uuid.New()
		company.Plants[i].CompanyID = company.ID
	}
	for i := range company.Contacts {
		company.Contacts[i].ID = uuid.New()
		company.Contacts[i].CompanyID = company.ID
	}
	if err := s.repo.CreateCompany(ctx, company); err != nil {
		return nil, fmt.Errorf("failed to create company: %w", err)
	}
	go func() {
		s.producer.Produce(events.CompanyCreated, company.ID.String(), company)
	}()
	return company, nil
}

// GetCompany retrieves a company by ID, returning an error if not found.
func (s *CompanyService) GetCompany(ctx context.Context, id uuid.UUID) (*models.Company, error) {
	company, err := s.repo.GetCompany(ctx, id)
	if err != nil {
		if errors.Is(err, e.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get company: %w", err)
	}
	return company, nil
}

// ListCompanies returns every company ordered by name.
func (s *CompanyService) ListCompanies(ctx context.Context) ([]models.Company, error) {
	return s.repo.ListCompanies(ctx)
}

// UpdateCompany modifies the specified company fields, then fetches the
// updated version for returning and event production.
func (s *CompanyService) UpdateCompany(ctx context.Context, update *models.CompanyUpdate) (*models.Company, error) {
	if update.ID == uuid.Nil {
		return nil, fmt.Errorf("%w: invalid company ID", e.ErrInvalidInput)
	}

	if err := s.repo.UpdateCompany(ctx, update); err != nil {
		if errors.Is(err, e.ErrNotFound) || errors.Is(err, e.ErrDuplicate) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to update company: %w", err)
	}

	updated, err := s.repo.GetCompany(ctx, update.ID)
	if err != nil {
		s.logger.Error("Failed to get company for event",
			zap.Error(err),
			zap.String("company_id", update.ID.String()),
		)
		return nil, err
	}
	go func() {
		s.producer.Produce(events.CompanyUpdated, updated.ID.String(), updated)
	}()
	return updated, nil
}

// DeleteCompany removes a company by ID and fires a deletion event.
func (s *CompanyService) DeleteCompany(ctx context.Context, id uuid.UUID) error {
	company, err := s.repo.GetCompany(ctx, id)
	if err != nil {
		if errors.Is(err, e.ErrNotFound) {
			return err
		}
		return fmt.Errorf("failed to get company for deletion: %w", err)
	}

	if err := s.repo.DeleteCompany(ctx, id); err != nil {
		return fmt.Errorf("failed to delete company: %w", err)
	}

	go func() {
		s.producer.Produce(events.CompanyDeleted, company.ID.String(), company)
	}()
	return nil
}
