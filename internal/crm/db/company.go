package db

import (
	"context"
	"errors"

	e "github.com/velora/crm/internal/crm/errors"
	"github.com/velora/crm/internal/crm/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

func (r *Repository) CreateCompany(ctx context.Context, company *models.Company) error {
	result := r.db.WithContext(ctx).Create(company)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return e.ErrDuplicate
		}
		return result.Error
	}
	return nil
}

func (r *Repository) GetCompany(ctx context.Context, id uuid.UUID) (*models.Company, error) {
	var company models.Company
	result := r.db.WithContext(ctx).
		Preload("Offices").
		Preload("Plants").
		Preload("Contacts").
		First(&company, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, e.ErrNotFound
		}
		return nil, result.Error
	}
	return &company, nil
}

func (r *Repository) ListCompanies(ctx context.Context) ([]models.Company, error) {
	var companies []models.Company
	result := r.db.WithContext(ctx).Order("name").Find(&companies)
	return companies, result.Error
}

func (r *Repository) UpdateCompany(ctx context.Context, update *models.CompanyUpdate) error {
	cols := map[string]any{}
	setOpt(cols, "name", update.Name)
	setOpt(cols, "industry", update.Industry)
	setOpt(cols, "website", update.Website)
	if len(cols) == 0 {
		return nil
	}

	result := r.db.WithContext(ctx).Model(&models.Company{}).
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

// DeleteCompany removes a company and its dependent rows in explicit steps
// inside one transaction rather than relying on database-level cascade.
func (r *Repository) DeleteCompany(ctx context.Context, id uuid.UUID) error {
	return r.WithTransaction(ctx, func(tx *Repository) error {
		if err := tx.db.Delete(&models.ContactPerson{}, "company_id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.db.Delete(&models.Plant{}, "company_id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.db.Delete(&models.Office{}, "company_id = ?", id).Error; err != nil {
			return err
		}
		result := tx.db.Delete(&models.Company{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return e.ErrNotFound
		}
		return nil
	})
}

func (r *Repository) CompanyExistsByName(ctx context.Context, name string) (bool, error) {
	var count int64
	result := r.db.WithContext(ctx).Model(&models.Company{}).
		Where("name = ?", name).
		Limit(1).
		Count(&count)
	return count > 0, result.Error
}
