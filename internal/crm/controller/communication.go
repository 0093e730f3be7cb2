package controller

import (
	"context"
	"errors"
	"fmt"
	"time"

	e "github.com/velora/crm/internal/crm/errors"
	"github.com/velora/crm/internal/crm/models"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CommunicationService records customer interactions against enquiries.
type CommunicationService struct {
	repo   Repository
	logger *zap.Logger
}

func NewCommunicationService(repo Repository, logger *zap.Logger) *CommunicationService {
	return &CommunicationService{
		repo:   repo,
		logger: logger.Named("communication_service"),
	}
}

// LogCommunication stores one interaction under an existing enquiry.
func (s *CommunicationService) LogCommunication(ctx context.Context, comm *models.Communication) (*models.Communication, error) {
	if !comm.Kind.Valid() {
		return nil, fmt.Errorf("%w: invalid communication kind", e.ErrInvalidInput)
	}
	if comm.Summary == "" {
		return nil, fmt.Errorf("%w: summary is required", e.ErrInvalidInput)
	}
	if _, err := s.repo.GetEnquiry(ctx, comm.EnquiryID); err != nil {
		if errors.Is(err, e.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to check enquiry: %w", err)
	}

	comm.ID = uuid.New()
	if comm.OccurredAt.IsZero() {
		comm.OccurredAt = time.Now()
	}
	if err := s.repo.CreateCommunication(ctx, comm); err != nil {
		return nil, fmt.Errorf("failed to log communication: %w", err)
	}
	return comm, nil
}

// ListCommunications returns the interaction log of one enquiry, newest
// first.
func (s *CommunicationService) ListCommunications(ctx context.Context, enquiryID int) ([]models.Communication, error) {
	if _, err := s.repo.GetEnquiry(ctx, enquiryID); err != nil {
		if errors.Is(err, e.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to check enquiry: %w", err)
	}
	return s.repo.ListCommunicationsByEnquiry(ctx, enquiryID)
}
