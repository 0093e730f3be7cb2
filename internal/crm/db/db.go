// Package db is the persistence gateway: a gorm-backed repository exposing
// point lookups, partial updates, bulk updates by filter, and a transactional
// wrapper. It never carries business rules; the service layer sequences its
// calls.
package db

import (
	"context"
	"fmt"

	"github.com/velora/crm/internal/crm/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type Repository struct {
	db *gorm.DB
}

type Config struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

func NewRepository(cfg *Config) (*Repository, error) {
	dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName, cfg.SSLMode)
	return Open(postgres.Open(dsn))
}

// Open connects through an arbitrary gorm dialector and migrates the schema.
// Production uses postgres; tests pass a sqlite dialector.
// TranslateError maps driver unique-violation errors to gorm.ErrDuplicatedKey
// so conflicts are reported as conflicts even when a pre-check races.
func Open(dialector gorm.Dialector) (*Repository, error) {
	db, err := gorm.Open(dialector, &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := Migrate(db); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return &Repository{db: db}, nil
}

// Migrate creates or updates the schema for every aggregate.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Company{},
		&models.Office{},
		&models.Plant{},
		&models.ContactPerson{},
		&models.Enquiry{},
		&models.EnquiryItem{},
		&models.Quotation{},
		&models.QuotationItem{},
		&models.Communication{},
		&models.LoginAttempt{},
	)
}

// WithTransaction runs fn inside a single database transaction; every
// repository call made through the passed repo commits or rolls back as one.
func (r *Repository) WithTransaction(ctx context.Context, fn func(repo *Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&Repository{db: tx})
	})
}

func (r *Repository) Exec(ctx context.Context, query string, params ...interface{}) error {
	result := r.db.WithContext(ctx).Exec(query, params...)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

func (r *Repository) Close() error {
	db, err := r.db.DB()
	if err != nil {
		return err
	}
	return db.Close()
}

// setOpt folds a three-state field into a column map: unset fields are
// omitted (leave unchanged), null fields map to NULL, values map to values.
func setOpt[T any](cols map[string]any, name string, o models.Optional[T]) {
	if !o.IsSet() {
		return
	}
	if o.IsNull() {
		cols[name] = nil
		return
	}
	v, _ := o.Get()
	cols[name] = v
}
