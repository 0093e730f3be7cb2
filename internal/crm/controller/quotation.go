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

// QuotationService manages quotation revisions and drives quotation-side
// status propagation.
type QuotationService struct {
	repo     Repository
	producer EventProducer
	logger   *zap.Logger
}

func NewQuotationService(repo Repository, producer EventProducer, logger *zap.Logger) *QuotationService {
	return &QuotationService{
		repo:     repo,
		producer: producer,
		logger:   logger.Named("quotation_service"),
	}
}

// CreateQuotation stores a new quotation revision under an existing enquiry.
func (s *QuotationService) CreateQuotation(ctx context.Context, quotation *models.Quotation) (*models.Quotation, error) {
	if quotation.Number == "" {
		return nil, fmt.Errorf("%w: quotation number is required", e.ErrInvalidInput)
	}
	if _, err := s.repo.GetEnquiry(ctx, quotation.EnquiryID); err != nil {
		if errors.Is(err, e.ErrNotFound) {
			return nil, fmt.Errorf("%w: enquiry %d does not exist", e.ErrInvalidInput, quotation.EnquiryID)
		}
		return nil, fmt.Errorf("failed to check enquiry: %w", err)
	}

	exists, err := s.repo.QuotationNumberExists(ctx, quotation.Number)
	if err != nil {
		return nil, fmt.Errorf("failed to check quotation number: %w", err)
	}
	if exists {
		return nil, e.ErrDuplicate
	}

	quotation.ID = uuid.New()
	quotation.Status = models.QuotationLive
	for i := range quotation.Items {
		if quotation.Items[i].ID == uuid.Nil {
			quotation.Items[i].ID = uuid.New()
			quotation.Items[i].QuotationID = quotation.ID
		}
	}
	if err := s.repo.CreateQuotation(ctx, quotation); err != nil {
		return nil, fmt.Errorf("failed to create quotation: %w", err)
	}
	go func() {
		s.producer.Produce(events.QuotationCreated, quotation.ID.String(), quotation)
	}()
	return quotation, nil
}

// GetQuotation retrieves a quotation by id.
func (s *QuotationService) GetQuotation(ctx context.Context, id uuid.UUID) (*models.Quotation, error) {
	quotation, err := s.repo.GetQuotation(ctx, id)
	if err != nil {
		if errors.Is(err, e.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get quotation: %w", err)
	}
	return quotation, nil
}

// ListQuotations returns quotations matching the filter.
func (s *QuotationService) ListQuotations(ctx context.Context, filter *models.QuotationFilter) ([]models.Quotation, error) {
	return s.repo.ListQuotations(ctx, filter)
}

// UpdateQuotation applies a general edit; status and PO fields cannot move
// through here.
func (s *QuotationService) UpdateQuotation(ctx context.Context, update *models.QuotationUpdate) (*models.Quotation, error) {
	if update.ID == uuid.Nil {
		return nil, fmt.Errorf("%w: invalid quotation ID", e.ErrInvalidInput)
	}

	if err := s.repo.UpdateQuotation(ctx, update); err != nil {
		if errors.Is(err, e.ErrNotFound) || errors.Is(err, e.ErrDuplicate) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to update quotation: %w", err)
	}

	updated, err := s.repo.GetQuotation(ctx, update.ID)
	if err != nil {
		s.logger.Error("Failed to get quotation for event",
			zap.Error(err),
			zap.String("quotation_id", update.ID.String()),
		)
		return nil, err
	}
	go func() {
		s.producer.Produce(events.QuotationUpdated, updated.ID.String(), updated)
	}()
	return updated, nil
}

// UpdateQuotationStatus moves a quotation to the target status, applies the
// status-dependent field policy, and propagates the mapped status to the
// owning enquiry unless the enquiry is already RCD. An enquiry in RCD keeps
// its state; quotation-driven sync never overwrites it. Primary and
// propagated writes share one transaction; a missing owning enquiry is
// logged and skipped rather than failing the primary write.
func (s *QuotationService) UpdateQuotationStatus(ctx context.Context, id uuid.UUID, status models.QuotationStatus, fields *models.StatusFields) (*models.Quotation, error) {
	if !status.Valid() {
		ve := &e.ValidationError{}
		ve.Add("status", fmt.Sprintf("%q is not a valid quotation status", string(status)))
		return nil, ve
	}
	if status == models.QuotationReceived {
		// RECEIVED propagates the enquiry into RCD, which must carry a
		// receipt date; the same rule as the enquiry-side operation.
		if fields == nil || !fields.DateOfReceipt.IsSet() || fields.DateOfReceipt.IsNull() {
			ve := &e.ValidationError{}
			ve.Add("dateOfReceipt", "required when status is RECEIVED")
			return nil, ve
		}
	}

	// NOT_FOUND before any write.
	quotation, err := s.repo.GetQuotation(ctx, id)
	if err != nil {
		if errors.Is(err, e.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get quotation: %w", err)
	}

	quotationCols := quotationStatusColumns(status, fields)
	enquiryCols := enquiryStatusColumns(status.EnquiryStatus(), fields)

	err = s.repo.WithTransaction(ctx, func(tx *db.Repository) error {
		if err := tx.UpdateQuotationColumns(ctx, id, quotationCols); err != nil {
			return err
		}

		enquiry, err := tx.GetEnquiry(ctx, quotation.EnquiryID)
		if err != nil {
			if errors.Is(err, e.ErrNotFound) {
				// Structurally impossible with the foreign key in
				// place; a missing parent is no reason to refuse the
				// quotation update.
				s.logger.Warn("propagation target missing, skipping",
					zap.String("quotation_id", id.String()),
					zap.Int("enquiry_id", quotation.EnquiryID),
				)
				return nil
			}
			return err
		}
		if enquiry.Status == models.EnquiryReceived {
			s.logger.Info("enquiry is RCD, propagation suppressed",
				zap.String("quotation_id", id.String()),
				zap.Int("enquiry_id", enquiry.ID),
			)
			return nil
		}
		return tx.UpdateEnquiryColumns(ctx, enquiry.ID, enquiryCols)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update quotation status: %w", err)
	}

	updated, err := s.repo.GetQuotation(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to read back quotation: %w", err)
	}
	s.logger.Info("quotation status updated",
		zap.String("quotation_id", id.String()),
		zap.String("status", string(status)),
	)
	go func() {
		s.producer.Produce(events.QuotationStatusChanged, id.String(), updated)
	}()
	return updated, nil
}

// DeleteQuotation hard-deletes a quotation and its line items.
func (s *QuotationService) DeleteQuotation(ctx context.Context, id uuid.UUID) error {
	quotation, err := s.repo.GetQuotation(ctx, id)
	if err != nil {
		if errors.Is(err, e.ErrNotFound) {
			return err
		}
		return fmt.Errorf("failed to get quotation for deletion: %w", err)
	}

	if err := s.repo.DeleteQuotation(ctx, id); err != nil {
		return fmt.Errorf("failed to delete quotation: %w", err)
	}

	go func() {
		s.producer.Produce(events.QuotationDeleted, strconv.Itoa(quotation.EnquiryID), quotation)
	}()
	return nil
}
