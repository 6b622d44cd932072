// internal/models/customer.go
package models

// Customer is the billing/contact party for an order. Customers are created
// on first sight of an email address and updated in place afterwards; they
// are never deleted by the order lifecycle.
type Customer struct {
	BaseModel
	Name    string `json:"name" gorm:"size:255;not null"`
	Email   string `json:"email" gorm:"size:255;uniqueIndex;not null"`
	Phone   string `json:"phone" gorm:"size:50"`
	Company string `json:"company" gorm:"size:255"`

	Orders []Order `json:"orders,omitempty" gorm:"foreignKey:CustomerID"`
}

// Sentinel identity used when an order arrives without contact details.
// Orders with no email all collapse onto this record.
const (
	UnknownCustomerEmail = "unknown@example.com"
	UnknownCustomerName  = "Unknown Customer"
)
