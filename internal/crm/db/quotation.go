package db

import (
	"context"
	"errors"

	e "github.com/velora/crm/internal/crm/errors"
	"github.com/velora/crm/internal/crm/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

func (r *Repository) CreateQuotation(ctx context.Context, quotation *models.Quotation) error {
	result := r.db.WithContext(ctx).Create(quotation)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return e.ErrDuplicate
		}
		return result.Error
	}
	return nil
}

func (r *Repository) GetQuotation(ctx context.Context, id uuid.UUID) (*models.Quotation, error) {
	var quotation models.Quotation
	result := r.db.WithContext(ctx).
		Preload("Items").
		First(&quotation, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, e.ErrNotFound
		}
		return nil, result.Error
	}
	return &quotation, nil
}

func (r *Repository) ListQuotations(ctx context.Context, filter *models.QuotationFilter) ([]models.Quotation, error) {
	q := r.db.WithContext(ctx).Model(&models.Quotation{})
	if filter != nil {
		if filter.Status != nil {
			q = q.Where("status = ?", *filter.Status)
		}
		if filter.EnquiryID != nil {
			q = q.Where("enquiry_id = ?", *filter.EnquiryID)
		}
	}
	var quotations []models.Quotation
	result := q.Order("number, revision desc").Find(&quotations)
	return quotations, result.Error
}

func (r *Repository) UpdateQuotation(ctx context.Context, update *models.QuotationUpdate) error {
	cols := map[string]any{}
	setOpt(cols, "number", update.Number)
	setOpt(cols, "revision", update.Revision)
	setOpt(cols, "value", update.Value)
	setOpt(cols, "currency", update.Currency)
	setOpt(cols, "valid_to", update.ValidTo)
	if len(cols) == 0 {
		return nil
	}

	result := r.db.WithContext(ctx).Model(&models.Quotation{}).
		Where("id = ?", update.ID).
		Updates(cols)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return e.ErrDuplicate
		}
		return result.Error
	}
	if result.RowsAffected == 0 {
		return e.ErrNotFound
	}
	return nil
}

// UpdateQuotationColumns applies a prepared column map to one quotation.
func (r *Repository) UpdateQuotationColumns(ctx context.Context, id uuid.UUID, cols map[string]any) error {
	result := r.db.WithContext(ctx).Model(&models.Quotation{}).
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

// UpdateQuotationsByEnquiry applies a column map to every revision of an
// enquiry at once. Zero affected rows is not an error here; an enquiry
// without quotations is a normal state.
func (r *Repository) UpdateQuotationsByEnquiry(ctx context.Context, enquiryID int, cols map[string]any) (int64, error) {
	result := r.db.WithContext(ctx).Model(&models.Quotation{}).
		Where("enquiry_id = ?", enquiryID).
		Updates(cols)
	return result.RowsAffected, result.Error
}

// DeleteQuotation removes a quotation and its line items in explicit steps
// inside one transaction.
func (r *Repository) DeleteQuotation(ctx context.Context, id uuid.UUID) error {
	return r.WithTransaction(ctx, func(tx *Repository) error {
		if err := tx.db.Delete(&models.QuotationItem{}, "quotation_id = ?", id).Error; err != nil {
			return err
		}
		result := tx.db.Delete(&models.Quotation{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return e.ErrNotFound
		}
		return nil
	})
}

func (r *Repository) QuotationNumberExists(ctx context.Context, number string) (bool, error) {
	var count int64
	result := r.db.WithContext(ctx).Model(&models.Quotation{}).
		Where("number = ?", number).
		Limit(1).
		Count(&count)
	return count > 0, result.Error
}
