package models

import (
	"time"

	"github.com/google/uuid"
)

// Enquiry is a customer's initial request record, parent of zero or more
// quotation revisions. Purchase-order fields are only meaningful while the
// enquiry is WON or RCD; every other transition clears them.
type Enquiry struct {
	// ID is a plain integer key; enquiries are referenced by number on
	// paperwork.
	ID          int `gorm:"primaryKey;autoIncrement"`
	Title       string
	Description string
	Status      EnquiryStatus `gorm:"type:varchar(16);not null;default:LIVE;index"`
	Priority    Priority      `gorm:"type:varchar(8)"`
	Source      Source        `gorm:"type:varchar(16)"`
	// DesignRequired and CustomerType come straight off the intake form.
	DesignRequired DesignRequired `gorm:"type:varchar(4)"`
	CustomerType   CustomerType   `gorm:"type:varchar(16)"`

	CompanyID       *uuid.UUID `gorm:"type:uuid;index"`
	Company         *Company   `gorm:"foreignKey:CompanyID"`
	ContactPersonID *uuid.UUID `gorm:"type:uuid"`

	// Purchase-order fields, set together on a WON/RCD transition and
	// nulled together on any other.
	PurchaseOrderNumber *string
	POValue             *float64
	PODate              *time.Time
	DateOfReceipt       *time.Time
	ReceiptNumber       *string
	LostReason          *LostReason `gorm:"type:varchar(16)"`

	Items          []EnquiryItem   `gorm:"foreignKey:EnquiryID"`
	Quotations     []Quotation     `gorm:"foreignKey:EnquiryID"`
	Communications []Communication `gorm:"foreignKey:EnquiryID"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// EnquiryItem is a requested line item on an enquiry.
type EnquiryItem struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	EnquiryID   int       `gorm:"index;not null"`
	Description string    `gorm:"not null"`
	Quantity    int
	Unit        string
}

// EnquiryUpdate carries the general-edit fields of an enquiry. Status and
// the PO fields are deliberately absent: status moves only through the
// dedicated status operation.
type EnquiryUpdate struct {
	ID             int
	Title          Optional[string]
	Description    Optional[string]
	Priority       Optional[Priority]
	Source         Optional[Source]
	DesignRequired Optional[DesignRequired]
	CustomerType   Optional[CustomerType]
	CompanyID      Optional[uuid.UUID]
}

// StatusFields is the bag of status-dependent values accepted by the status
// operations of both entities. Supplied values are persisted as-is; for a
// WON/RCD/RECEIVED target anything unsupplied is written as null rather than
// left unchanged, so stale PO data cannot survive a transition.
type StatusFields struct {
	PurchaseOrderNumber Optional[string]
	POValue             Optional[float64]
	PODate              Optional[time.Time]
	DateOfReceipt       Optional[time.Time]
	ReceiptNumber       Optional[string]
	LostReason          Optional[LostReason]
}

// EnquiryFilter narrows enquiry listings.
type EnquiryFilter struct {
	Status    *EnquiryStatus
	CompanyID *uuid.UUID
	Priority  *Priority
}
