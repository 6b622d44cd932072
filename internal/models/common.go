// internal/models/common.go
package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Base model with common fields
type BaseModel struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primary_key"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BeforeCreate assigns a UUID so the same models work on Postgres and the
// sqlite test database without a server-side default.
func (b *BaseModel) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

// Enums
type Priority string

const (
	PriorityLow    Priority = "LOW"
	PriorityNormal Priority = "NORMAL"
	PriorityHigh   Priority = "HIGH"
	PriorityUrgent Priority = "URGENT"
)

type StatusLabel string

const (
	// Initial phase
	StatusEnquiry       StatusLabel = "ENQUIRY"
	StatusQuoteSent     StatusLabel = "QUOTE_SENT"
	StatusQuoteApproved StatusLabel = "QUOTE_APPROVED"

	// Design phase
	StatusDesignBrief    StatusLabel = "DESIGN_BRIEF"
	StatusInDesign       StatusLabel = "IN_DESIGN"
	StatusDesignProofing StatusLabel = "DESIGN_PROOFING"
	StatusDesignApproved StatusLabel = "DESIGN_APPROVED"

	// Materials & payment
	StatusMaterialsOrdered StatusLabel = "MATERIALS_ORDERED"
	StatusMaterialsInStock StatusLabel = "MATERIALS_IN_STOCK"
	StatusPaymentPending   StatusLabel = "PAYMENT_PENDING"
	StatusPaymentReceived  StatusLabel = "PAYMENT_RECEIVED"

	// Production phase
	StatusInProduction StatusLabel = "IN_PRODUCTION"
	StatusQualityCheck StatusLabel = "QUALITY_CHECK"

	// Delivery phase
	StatusReadyForDelivery StatusLabel = "READY_FOR_DELIVERY"
	StatusOutForDelivery   StatusLabel = "OUT_FOR_DELIVERY"
	StatusDelivered        StatusLabel = "DELIVERED"

	// Special states
	StatusOnHold    StatusLabel = "ON_HOLD"
	StatusCancelled StatusLabel = "CANCELLED"
)

type LogAction string

const (
	LogActionAdded   LogAction = "ADDED"
	LogActionRemoved LogAction = "REMOVED"
)
