// Package models defines the core domain types for the CRM: companies with
// their offices, plants and contact people, enquiries, quotation revisions,
// communications, and the status enumerations that tie enquiries and
// quotations together.
package models

import (
	"time"

	"github.com/google/uuid"
)

// Company is an address-book entry; it is not involved in the status engine
// except as a filter on enquiry listings.
type Company struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name      string    `gorm:"uniqueIndex;not null"`
	Industry  string
	Website   string
	Offices   []Office        `gorm:"foreignKey:CompanyID"`
	Plants    []Plant         `gorm:"foreignKey:CompanyID"`
	Contacts  []ContactPerson `gorm:"foreignKey:CompanyID"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Office is a registered company address.
type Office struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	CompanyID uuid.UUID `gorm:"type:uuid;index;not null"`
	Address   string
	City      string
	State     string
	Pincode   string
	IsHead    bool
}

// Plant is a manufacturing/site address of a company.
type Plant struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	CompanyID uuid.UUID `gorm:"type:uuid;index;not null"`
	Name      string
	Address   string
	City      string
	State     string
}

// ContactPerson is a person reachable at a company.
type ContactPerson struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	CompanyID   uuid.UUID `gorm:"type:uuid;index;not null"`
	Name        string    `gorm:"not null"`
	Designation string
	Email       string
	Phone       string
}

// CompanyUpdate carries the fields that can change on a company. Optional
// fields distinguish "leave unchanged" from "clear".
type CompanyUpdate struct {
	ID       uuid.UUID
	Name     Optional[string]
	Industry Optional[string]
	Website  Optional[string]
}
