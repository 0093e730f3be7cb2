package controller

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/velora/crm/internal/crm/db"
	e "github.com/velora/crm/internal/crm/errors"
	"github.com/velora/crm/internal/crm/events"
	"github.com/velora/crm/internal/crm/models"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// EnquiryService manages enquiries and drives enquiry-side status
// propagation.
type EnquiryService struct {
	repo     Repository
	producer EventProducer
	logger   *zap.Logger
}

func NewEnquiryService(repo Repository, producer EventProducer, logger *zap.Logger) *EnquiryService {
	return &EnquiryService{
		repo:     repo,
		producer: producer,
		logger:   logger.Named("enquiry_service"),
	}
}

// CreateEnquiry stores a new enquiry. New enquiries always start LIVE; the
// status operation is the only way to move them.
func (s *EnquiryService) CreateEnquiry(ctx context.Context, enquiry *models.Enquiry) (*models.Enquiry, error) {
	if enquiry.Title == "" {
		return nil, fmt.Errorf("%w: title is required", e.ErrInvalidInput)
	}
	enquiry.Status = models.EnquiryLive
	for i := range enquiry.Items {
		if enquiry.Items[i].ID == uuid.Nil {
			enquiry.Items[i].ID = uuid.New()
		}
	}
	if err := s.repo.CreateEnquiry(ctx, enquiry); err != nil {
		return nil, fmt.Errorf("failed to create enquiry: %w", err)
	}
	go func() {
		s.producer.Produce(events.EnquiryCreated, strconv.Itoa(enquiry.ID), enquiry)
	}()
	return enquiry, nil
}

// GetEnquiry retrieves an enquiry by id with its items and quotations.
func (s *EnquiryService) GetEnquiry(ctx context.Context, id int) (*models.Enquiry, error) {
	enquiry, err := s.repo.GetEnquiry(ctx, id)
	if err != nil {
		if errors.Is(err, e.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get enquiry: %w", err)
	}
	return enquiry, nil
}

// ListEnquiries returns enquiries matching the filter.
func (s *EnquiryService) ListEnquiries(ctx context.Context, filter *models.EnquiryFilter) ([]models.Enquiry, error) {
	return s.repo.ListEnquiries(ctx, filter)
}

// UpdateEnquiry applies a general edit. Status and PO fields are not part of
// EnquiryUpdate and cannot move through here.
func (s *EnquiryService) UpdateEnquiry(ctx context.Context, update *models.EnquiryUpdate) (*models.Enquiry, error) {
	if update.ID == 0 {
		return nil, fmt.Errorf("%w: invalid enquiry ID", e.ErrInvalidInput)
	}

	if err := s.repo.UpdateEnquiry(ctx, update); err != nil {
		if errors.Is(err, e.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to update enquiry: %w", err)
	}

	updated, err := s.repo.GetEnquiry(ctx, update.ID)
	if err != nil {
		s.logger.Error("Failed to get enquiry for event",
			zap.Error(err),
			zap.Int("enquiry_id", update.ID),
		)
		return nil, err
	}
	go func() {
		s.producer.Produce(events.EnquiryUpdated, strconv.Itoa(updated.ID), updated)
	}()
	return updated, nil
}

// UpdateEnquiryStatus moves an enquiry to the target status, applies the
// status-dependent field policy, and propagates the mapped status to every
// quotation revision of the enquiry unconditionally. Primary and propagated
// writes share one transaction.
func (s *EnquiryService) UpdateEnquiryStatus(ctx context.Context, id int, status models.EnquiryStatus, fields *models.StatusFields) (*models.Enquiry, error) {
	if !status.Valid() {
		ve := &e.ValidationError{}
		ve.Add("status", fmt.Sprintf("%q is not a valid enquiry status", string(status)))
		return nil, ve
	}
	if status == models.EnquiryReceived {
		if fields == nil || !fields.DateOfReceipt.IsSet() || fields.DateOfReceipt.IsNull() {
			ve := &e.ValidationError{}
			ve.Add("dateOfReceipt", "required when status is RCD")
			return nil, ve
		}
	}

	// NOT_FOUND before any write.
	if _, err := s.repo.GetEnquiry(ctx, id); err != nil {
		if errors.Is(err, e.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get enquiry: %w", err)
	}

	enquiryCols := enquiryStatusColumns(status, fields)
	quotationCols := quotationStatusColumns(status.QuotationStatus(), fields)

	var propagated int64
	err := s.repo.WithTransaction(ctx, func(tx *db.Repository) error {
		if err := tx.UpdateEnquiryColumns(ctx, id, enquiryCols); err != nil {
			return err
		}
		n, err := tx.UpdateQuotationsByEnquiry(ctx, id, quotationCols)
		if err != nil {
			return err
		}
		propagated = n
		return nil
	})
	if err != nil {
		if errors.Is(err, e.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to update enquiry status: %w", err)
	}

	updated, err := s.repo.GetEnquiry(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to read back enquiry: %w", err)
	}
	s.logger.Info("enquiry status updated",
		zap.Int("enquiry_id", id),
		zap.String("status", string(status)),
		zap.Int64("quotations_propagated", propagated),
	)
	go func() {
		s.producer.Produce(events.EnquiryStatusChanged, strconv.Itoa(id), updated)
	}()
	return updated, nil
}

// DeleteEnquiry hard-deletes an enquiry and its dependent rows.
func (s *EnquiryService) DeleteEnquiry(ctx context.Context, id int) error {
	enquiry, err := s.repo.GetEnquiry(ctx, id)
	if err != nil {
		if errors.Is(err, e.ErrNotFound) {
			return err
		}
		return fmt.Errorf("failed to get enquiry for deletion: %w", err)
	}

	if err := s.repo.DeleteEnquiry(ctx, id); err != nil {
		return fmt.Errorf("failed to delete enquiry: %w", err)
	}

	go func() {
		s.producer.Produce(events.EnquiryDeleted, strconv.Itoa(id), enquiry)
	}()
	return nil
}
