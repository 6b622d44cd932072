// internal/models/order.go
package models

import (
	"time"

	"github.com/google/uuid"
)

// Order is the central aggregate: one print job tied to a customer, a set of
// line items and a set of concurrently-active statuses. Quantity, unit price
// and total price are derived from the line items and always written together.
type Order struct {
	BaseModel
	OrderNumber string     `json:"orderNumber" gorm:"size:20;uniqueIndex;not null"`
	Title       string     `json:"title" gorm:"size:255;not null"`
	Description string     `json:"description" gorm:"type:text"`
	Priority    Priority   `json:"priority" gorm:"type:varchar(10);default:'NORMAL';index"`
	DueDate     *time.Time `json:"dueDate"`
	Quantity    int        `json:"quantity" gorm:"default:1"`
	UnitPrice   float64    `json:"unitPrice" gorm:"type:decimal(10,2);default:0"`
	TotalPrice  float64    `json:"totalPrice" gorm:"type:decimal(10,2);default:0"`
	CustomerID  uuid.UUID  `json:"customerId" gorm:"type:uuid;not null;index"`
	UserID      uuid.UUID  `json:"userId" gorm:"type:uuid;not null"`

	// Relationships. Clients iterate orderItems and statuses unguarded, so
	// both keys must always be present as arrays; User is only serialized
	// when actually loaded.
	Customer   Customer         `json:"customer" gorm:"foreignKey:CustomerID"`
	User       *User            `json:"user,omitempty" gorm:"foreignKey:UserID"`
	OrderItems []OrderItem      `json:"orderItems" gorm:"foreignKey:OrderID"`
	Statuses   []OrderStatus    `json:"statuses" gorm:"foreignKey:OrderID"`
	StatusLogs []OrderStatusLog `json:"statusLogs,omitempty" gorm:"foreignKey:OrderID"`
}

// EnsureCollections replaces nil relation slices with empty ones so JSON
// responses carry arrays even when nothing was loaded.
func (o *Order) EnsureCollections() {
	if o.OrderItems == nil {
		o.OrderItems = []OrderItem{}
	}
	if o.Statuses == nil {
		o.Statuses = []OrderStatus{}
	}
}

// OrderItem is one priced line belonging to exactly one order. Items are
// replaced wholesale whenever an update supplies a new product list.
type OrderItem struct {
	BaseModel
	OrderID     uuid.UUID `json:"orderId" gorm:"type:uuid;not null;index"`
	Name        string    `json:"name" gorm:"size:255;not null"`
	Description string    `json:"description" gorm:"type:text"`
	Quantity    int       `json:"quantity" gorm:"default:1"`
	UnitPrice   float64   `json:"unitPrice" gorm:"type:decimal(10,2);default:0"`
	TotalPrice  float64   `json:"totalPrice" gorm:"type:decimal(10,2);default:0"`
}

// OrderStatus is one (order, label) pair with an activity flag. At most one
// row exists per pair; re-adding a removed label reactivates the same row.
// The isActive flag is the source of truth for current state, not the log.
type OrderStatus struct {
	BaseModel
	OrderID  uuid.UUID   `json:"orderId" gorm:"type:uuid;not null;uniqueIndex:idx_order_status,priority:1"`
	Status   StatusLabel `json:"status" gorm:"type:varchar(30);not null;uniqueIndex:idx_order_status,priority:2"`
	IsActive bool        `json:"isActive" gorm:"default:true;index"`
	Notes    string      `json:"notes" gorm:"type:text"`
}

// OrderStatusLog is the append-only audit trail of every status assertion and
// retraction. Entries are never mutated or deleted.
type OrderStatusLog struct {
	BaseModel
	OrderID uuid.UUID   `json:"orderId" gorm:"type:uuid;not null;index"`
	Status  StatusLabel `json:"status" gorm:"type:varchar(30);not null"`
	Action  LogAction   `json:"action" gorm:"type:varchar(10);not null"`
	Notes   string      `json:"notes" gorm:"type:text"`
}
