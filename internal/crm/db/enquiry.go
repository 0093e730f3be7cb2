package db

import (
	"context"
	"errors"

	e "github.com/velora/crm/internal/crm/errors"
	"github.com/velora/crm/internal/crm/models"
	"gorm.io/gorm"
)

func (r *Repository) CreateEnquiry(ctx context.Context, enquiry *models.Enquiry) error {
	return r.db.WithContext(ctx).Create(enquiry).Error
}

func (r *Repository) GetEnquiry(ctx context.Context, id int) (*models.Enquiry, error) {
	var enquiry models.Enquiry
	result := r.db.WithContext(ctx).
		Preload("Items").
		Preload("Quotations").
		First(&enquiry, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, e.ErrNotFound
		}
		return nil, result.Error
	}
	return &enquiry, nil
}

func (r *Repository) ListEnquiries(ctx context.Context, filter *models.EnquiryFilter) ([]models.Enquiry, error) {
	q := r.db.WithContext(ctx).Model(&models.Enquiry{})
	if filter != nil {
		if filter.Status != nil {
			q = q.Where("status = ?", *filter.Status)
		}
		if filter.CompanyID != nil {
			q = q.Where("company_id = ?", *filter.CompanyID)
		}
		if filter.Priority != nil {
			q = q.Where("priority = ?", *filter.Priority)
		}
	}
	var enquiries []models.Enquiry
	result := q.Order("id desc").Find(&enquiries)
	return enquiries, result.Error
}

func (r *Repository) UpdateEnquiry(ctx context.Context, update *models.EnquiryUpdate) error {
	cols := map[string]any{}
	setOpt(cols, "title", update.Title)
	setOpt(cols, "description", update.Description)
	setOpt(cols, "priority", update.Priority)
	setOpt(cols, "source", update.Source)
	setOpt(cols, "design_required", update.DesignRequired)
	setOpt(cols, "customer_type", update.CustomerType)
	setOpt(cols, "company_id", update.CompanyID)
	if len(cols) == 0 {
		return nil
	}

	result := r.db.WithContext(ctx).Model(&models.Enquiry{}).
		Where("id = ?", update.ID).
		Updates(cols)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return e.ErrNotFound
	}
	return nil
}

// UpdateEnquiryColumns applies a prepared column map to one enquiry. The
// status engine builds the map so that forced NULLs are explicit entries.
func (r *Repository) UpdateEnquiryColumns(ctx context.Context, id int, cols map[string]any) error {
	result := r.db.WithContext(ctx).Model(&models.Enquiry{}).
		Where("id = ?", id).
		Updates(cols)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return e.ErrNotFound
	}
	return nil
}

// DeleteEnquiry removes an enquiry with its items, communications and
// quotation revisions in explicit steps inside one transaction.
func (r *Repository) DeleteEnquiry(ctx context.Context, id int) error {
	return r.WithTransaction(ctx, func(tx *Repository) error {
		if err := tx.db.
			Where("quotation_id IN (?)",
				tx.db.Model(&models.Quotation{}).Select("id").Where("enquiry_id = ?", id)).
			Delete(&models.QuotationItem{}).Error; err != nil {
			return err
		}
		if err := tx.db.Delete(&models.Quotation{}, "enquiry_id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.db.Delete(&models.EnquiryItem{}, "enquiry_id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.db.Delete(&models.Communication{}, "enquiry_id = ?", id).Error; err != nil {
			return err
		}
		result := tx.db.Delete(&models.Enquiry{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return e.ErrNotFound
		}
		return nil
	})
}
