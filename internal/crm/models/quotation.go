package models

import (
	"time"

	"github.com/google/uuid"
)

// Quotation is a priced proposal tied to exactly one enquiry. An enquiry can
// carry several revisions; all of them follow the enquiry's status when the
// enquiry side changes.
type Quotation struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	EnquiryID int       `gorm:"index;not null"`
	Enquiry   *Enquiry  `gorm:"foreignKey:EnquiryID"`

	Number   string `gorm:"uniqueIndex;not null"`
	Revision int    `gorm:"not null;default:0"`
	Status   QuotationStatus `gorm:"type:varchar(16);not null;default:LIVE;index"`

	Value    float64
	Currency string `gorm:"type:varchar(8);default:INR"`
	ValidTo  *time.Time

	PurchaseOrderNumber *string
	POValue             *float64
	PODate              *time.Time
	LostReason          *LostReason `gorm:"type:varchar(16)"`

	Items []QuotationItem `gorm:"foreignKey:QuotationID"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// QuotationItem is a priced line on a quotation.
type QuotationItem struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	QuotationID uuid.UUID `gorm:"type:uuid;index;not null"`
	Description string    `gorm:"not null"`
	Quantity    int
	Unit        string
	UnitPrice   float64
}

// QuotationUpdate carries the general-edit fields of a quotation; status and
// PO fields move only through the status operation.
type QuotationUpdate struct {
	ID       uuid.UUID
	Number   Optional[string]
	Revision Optional[int]
	Value    Optional[float64]
	Currency Optional[string]
	ValidTo  Optional[time.Time]
}

// QuotationFilter narrows quotation listings.
type QuotationFilter struct {
	Status    *QuotationStatus
	EnquiryID *int
}
