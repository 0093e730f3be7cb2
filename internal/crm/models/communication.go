package models

import (
	"time"

	"github.com/google/uuid"
)

// Communication is a logged interaction (call, email, meeting, note) against
// an enquiry and optionally a specific contact person.
type Communication struct {
	ID              uuid.UUID         `gorm:"type:uuid;primaryKey"`
	EnquiryID       int               `gorm:"index;not null"`
	ContactPersonID *uuid.UUID        `gorm:"type:uuid"`
	Kind            CommunicationKind `gorm:"type:varchar(8);not null"`
	Summary         string            `gorm:"not null"`
	OccurredAt      time.Time
	CreatedAt       time.Time
}
