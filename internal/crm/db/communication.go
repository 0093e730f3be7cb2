package db

import (
	"context"

	"github.com/velora/crm/internal/crm/models"
)

func (r *Repository) CreateCommunication(ctx context.Context, comm *models.Communication) error {
	return r.db.WithContext(ctx).Create(comm).Error
}

func (r *Repository) ListCommunicationsByEnquiry(ctx context.Context, enquiryID int) ([]models.Communication, error) {
	var comms []models.Communication
	result := r.db.WithContext(ctx).
		Where("enquiry_id = ?", enquiryID).
		Order("occurred_at desc").
		Find(&comms)
	return comms, result.Error
}
