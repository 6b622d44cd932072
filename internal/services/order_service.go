// internal/services/order_service.go
package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/rahulbala1799/TT/internal/models"
)

var (
	ErrOrderNotFound = errors.New("order not found")
	ErrInvalidInput  = errors.New("invalid input")
)

// OrderService owns all mutating operations on the order aggregate. Every
// mutation runs as one all-or-nothing transaction covering order fields,
// line items, status rows and the status log.
type OrderService struct {
	db            *gorm.DB
	statusService *StatusService
}

func NewOrderService(db *gorm.DB, statusService *StatusService) *OrderService {
	return &OrderService{
		db:            db,
		statusService: statusService,
	}
}

type ProductInput struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Quantity    int     `json:"quantity" validate:"omitempty,min=0"`
	Price       float64 `json:"price" validate:"omitempty,min=0"`
}

type CreateOrderRequest struct {
	ClientName      string         `json:"clientName"`
	ClientEmail     string         `json:"clientEmail" validate:"omitempty,email"`
	ClientPhone     string         `json:"clientPhone"`
	ClientCompany   string         `json:"clientCompany"`
	Title           string         `json:"title"`
	Description     string         `json:"description"`
	Priority        string         `json:"priority" validate:"omitempty,oneof=LOW NORMAL HIGH URGENT"`
	DueDate         string         `json:"dueDate"`
	Products        []ProductInput `json:"products"`
	InitialStatuses []string       `json:"initialStatuses"`
}

// OptionalString distinguishes a field that was absent from the request body
// from one sent as null or "". Absent leaves the target untouched; null and
// "" both clear it.
type OptionalString struct {
	Present bool
	Value   string
}

func (o *OptionalString) UnmarshalJSON(data []byte) error {
	o.Present = true
	if string(data) == "null" {
		o.Value = ""
		return nil
	}
	return json.Unmarshal(data, &o.Value)
}

// UpdateOrderRequest uses pointers (and OptionalString for the due date)
// where "absent" and "sent" mean different things: an omitted field leaves
// the current value alone.
type UpdateOrderRequest struct {
	Title            *string        `json:"title"`
	Description      *string        `json:"description"`
	Priority         *string        `json:"priority" validate:"omitempty,oneof=LOW NORMAL HIGH URGENT"`
	DueDate          OptionalString `json:"dueDate"`
	ClientName       *string        `json:"clientName"`
	ClientEmail      *string        `json:"clientEmail" validate:"omitempty,email"`
	ClientPhone      *string        `json:"clientPhone"`
	ClientCompany    *string        `json:"clientCompany"`
	Products         []ProductInput `json:"products"`
	StatusesToAdd    []string       `json:"statusesToAdd"`
	StatusesToRemove []string       `json:"statusesToRemove"`
}

// Create resolves or creates the customer, allocates the next order number,
// computes the totals from the products and persists the order together with
// its items, initial statuses and log entries in one transaction.
func (s *OrderService) Create(req *CreateOrderRequest) (*models.Order, error) {
	dueDate, err := parseDueDate(req.DueDate)
	if err != nil {
		return nil, err
	}

	initialStatuses := toLabels(req.InitialStatuses)
	if len(initialStatuses) == 0 {
		initialStatuses = []models.StatusLabel{models.StatusEnquiry}
	}

	items, quantity, unitPrice, totalPrice := buildOrderItems(req.Products)

	var orderID uuid.UUID
	err = s.db.Transaction(func(tx *gorm.DB) error {
		customer, err := s.findOrCreateCustomer(tx, req)
		if err != nil {
			return err
		}

		user, err := s.findOrCreateUser(tx)
		if err != nil {
			return err
		}

		orderNumber, err := models.NextOrderNumber(tx)
		if err != nil {
			return err
		}

		order := &models.Order{
			OrderNumber: orderNumber,
			Title:       defaultString(req.Title, "New Print Job"),
			Description: req.Description,
			Priority:    models.Priority(defaultString(req.Priority, string(models.PriorityNormal))),
			DueDate:     dueDate,
			Quantity:    quantity,
			UnitPrice:   unitPrice,
			TotalPrice:  totalPrice,
			CustomerID:  customer.ID,
			UserID:      user.ID,
		}
		if err := tx.Create(order).Error; err != nil {
			return fmt.Errorf("failed to create order: %w", err)
		}
		orderID = order.ID

		for i := range items {
			items[i].OrderID = order.ID
		}
		if len(items) > 0 {
			if err := tx.Create(&items).Error; err != nil {
				return fmt.Errorf("failed to create order items: %w", err)
			}
		}

		for _, label := range initialStatuses {
			notes := StatusNotes{
				Added: fmt.Sprintf("Initial status: %s", label),
				Log:   fmt.Sprintf("Order created with status: %s", label),
			}
			if err := s.statusService.AddStatuses(tx, order.ID, []models.StatusLabel{label}, notes); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		logrus.WithError(err).Error("Failed to create order")
		return nil, err
	}

	return s.loadOrder(orderID, false)
}

// Update applies partial field updates, optional customer updates, a full
// line-item replacement with totals recompute, and status removals then
// additions — all in one transaction. The response re-reads the aggregate.
func (s *OrderService) Update(id uuid.UUID, req *UpdateOrderRequest) (*models.Order, error) {
	var existing models.Order
	if err := s.db.First(&existing, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to fetch order: %w", err)
	}

	updates, err := buildOrderUpdates(req)
	if err != nil {
		return nil, err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.updateCustomer(tx, existing.CustomerID, req); err != nil {
			return err
		}

		if len(updates) > 0 {
			if err := tx.Model(&models.Order{}).Where("id = ?", id).Updates(updates).Error; err != nil {
				return fmt.Errorf("failed to update order: %w", err)
			}
		}

		if err := s.statusService.RemoveStatuses(tx, id, toLabels(req.StatusesToRemove),
			"Status removed during order update"); err != nil {
			return err
		}
		if err := s.statusService.AddStatuses(tx, id, toLabels(req.StatusesToAdd), StatusNotes{
			Added:       "Status added during order update",
			Reactivated: "Status reactivated during order update",
			Log:         "Status added during order update",
		}); err != nil {
			return err
		}

		if len(req.Products) > 0 {
			if err := s.replaceOrderItems(tx, id, req.Products); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		logrus.WithError(err).WithField("order_id", id).Error("Failed to update order")
		return nil, err
	}

	return s.loadOrder(id, false)
}

// Cancel deactivates every active status and asserts a single active
// CANCELLED status. Data is kept; cancelling again grows the log but leaves
// exactly one active CANCELLED row.
func (s *OrderService) Cancel(id uuid.UUID) (*models.Order, error) {
	if err := s.ensureExists(id); err != nil {
		return nil, err
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.OrderStatus{}).
			Where("order_id = ? AND is_active = ?", id, true).
			Update("is_active", false).Error; err != nil {
			return fmt.Errorf("failed to deactivate statuses: %w", err)
		}

		return s.statusService.AddStatuses(tx, id, []models.StatusLabel{models.StatusCancelled},
			StatusNotes{Added: "Order cancelled by user", Log: "Order cancelled by user"})
	})
	if err != nil {
		logrus.WithError(err).WithField("order_id", id).Error("Failed to cancel order")
		return nil, err
	}

	return s.loadOrder(id, false)
}

// HardDelete physically removes the order and everything it owns. This is
// the irrecoverable path; Cancel is the normal one.
func (s *OrderService) HardDelete(id uuid.UUID) error {
	if err := s.ensureExists(id); err != nil {
		return err
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		for _, m := range []interface{}{
			&models.OrderStatusLog{},
			&models.OrderStatus{},
			&models.OrderItem{},
		} {
			if err := tx.Where("order_id = ?", id).Delete(m).Error; err != nil {
				return fmt.Errorf("failed to delete order children: %w", err)
			}
		}
		if err := tx.Delete(&models.Order{}, "id = ?", id).Error; err != nil {
			return fmt.Errorf("failed to delete order: %w", err)
		}
		return nil
	})
	if err != nil {
		logrus.WithError(err).WithField("order_id", id).Error("Failed to delete order")
	}
	return err
}

// Get returns the order with customer, items, active statuses (newest first)
// and the full status log (newest first).
func (s *OrderService) Get(id uuid.UUID) (*models.Order, error) {
	return s.loadOrder(id, true)
}

// List returns all orders, newest first, with customer, items and active
// statuses.
func (s *OrderService) List() ([]models.Order, error) {
	orders := make([]models.Order, 0)
	err := s.db.
		Preload("Customer").
		Preload("OrderItems").
		Preload("Statuses", activeStatusesNewestFirst).
		Order("created_at DESC").
		Find(&orders).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch orders: %w", err)
	}
	for i := range orders {
		orders[i].EnsureCollections()
	}
	return orders, nil
}

// ReplaceStatuses is the standalone status endpoint: the active set becomes
// exactly the given labels. Returns the resulting active rows.
func (s *OrderService) ReplaceStatuses(id uuid.UUID, labels []string) ([]models.OrderStatus, error) {
	if err := s.ensureExists(id); err != nil {
		return nil, err
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		return s.statusService.ReplaceStatuses(tx, id, toLabels(labels))
	})
	if err != nil {
		logrus.WithError(err).WithField("order_id", id).Error("Failed to replace order statuses")
		return nil, err
	}

	return s.statusService.ActiveStatuses(id)
}

// Helper methods

func (s *OrderService) ensureExists(id uuid.UUID) error {
	var count int64
	if err := s.db.Model(&models.Order{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to check order: %w", err)
	}
	if count == 0 {
		return ErrOrderNotFound
	}
	return nil
}

func (s *OrderService) loadOrder(id uuid.UUID, withLogs bool) (*models.Order, error) {
	query := s.db.
		Preload("Customer").
		Preload("OrderItems").
		Preload("Statuses", activeStatusesNewestFirst)
	if withLogs {
		query = query.Preload("StatusLogs", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at DESC")
		})
	}

	var order models.Order
	if err := query.First(&order, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to fetch order: %w", err)
	}
	order.EnsureCollections()
	return &order, nil
}

func activeStatusesNewestFirst(db *gorm.DB) *gorm.DB {
	return db.Where("is_active = ?", true).Order("created_at DESC")
}

func (s *OrderService) findOrCreateCustomer(tx *gorm.DB, req *CreateOrderRequest) (*models.Customer, error) {
	email := defaultString(req.ClientEmail, models.UnknownCustomerEmail)

	var customer models.Customer
	err := tx.Where("email = ?", email).First(&customer).Error
	if err == nil {
		return &customer, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to look up customer: %w", err)
	}

	customer = models.Customer{
		Name:    defaultString(req.ClientName, models.UnknownCustomerName),
		Email:   email,
		Phone:   req.ClientPhone,
		Company: req.ClientCompany,
	}
	if err := tx.Create(&customer).Error; err != nil {
		return nil, fmt.Errorf("failed to create customer: %w", err)
	}
	return &customer, nil
}

func (s *OrderService) findOrCreateUser(tx *gorm.DB) (*models.User, error) {
	var user models.User
	err := tx.First(&user).Error
	if err == nil {
		return &user, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	user = models.User{
		Email: models.SystemUserEmail,
		Name:  models.SystemUserName,
	}
	if err := tx.Create(&user).Error; err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return &user, nil
}

func (s *OrderService) updateCustomer(tx *gorm.DB, customerID uuid.UUID, req *UpdateOrderRequest) error {
	updates := make(map[string]interface{})
	if req.ClientName != nil && *req.ClientName != "" {
		updates["name"] = *req.ClientName
	}
	if req.ClientEmail != nil && *req.ClientEmail != "" {
		updates["email"] = *req.ClientEmail
	}
	if req.ClientPhone != nil && *req.ClientPhone != "" {
		updates["phone"] = *req.ClientPhone
	}
	if req.ClientCompany != nil && *req.ClientCompany != "" {
		updates["company"] = *req.ClientCompany
	}
	if len(updates) == 0 {
		return nil
	}

	if err := tx.Model(&models.Customer{}).Where("id = ?", customerID).Updates(updates).Error; err != nil {
		return fmt.Errorf("failed to update customer: %w", err)
	}
	return nil
}

func (s *OrderService) replaceOrderItems(tx *gorm.DB, orderID uuid.UUID, products []ProductInput) error {
	if err := tx.Where("order_id = ?", orderID).Delete(&models.OrderItem{}).Error; err != nil {
		return fmt.Errorf("failed to delete order items: %w", err)
	}

	items, quantity, unitPrice, totalPrice := buildOrderItems(products)
	for i := range items {
		items[i].OrderID = orderID
	}
	if err := tx.Create(&items).Error; err != nil {
		return fmt.Errorf("failed to create order items: %w", err)
	}

	// The three derived fields always move together.
	totals := map[string]interface{}{
		"quantity":    quantity,
		"unit_price":  unitPrice,
		"total_price": totalPrice,
	}
	if err := tx.Model(&models.Order{}).Where("id = ?", orderID).Updates(totals).Error; err != nil {
		return fmt.Errorf("failed to update order totals: %w", err)
	}
	return nil
}

// buildOrderItems normalizes the product inputs and derives the order-level
// quantity, unit price and total price from them.
func buildOrderItems(products []ProductInput) ([]models.OrderItem, int, float64, float64) {
	items := make([]models.OrderItem, 0, len(products))
	totalQuantity := 0
	totalPrice := 0.0

	for _, p := range products {
		quantity := p.Quantity
		if quantity < 1 {
			quantity = 1
		}
		price := p.Price
		if price < 0 {
			price = 0
		}

		item := models.OrderItem{
			Name:        defaultString(p.Name, "Custom Print Job"),
			Description: p.Description,
			Quantity:    quantity,
			UnitPrice:   price,
			TotalPrice:  float64(quantity) * price,
		}
		items = append(items, item)
		totalQuantity += quantity
		totalPrice += item.TotalPrice
	}

	if totalQuantity == 0 {
		totalQuantity = 1
	}
	unitPrice := 0.0
	if totalQuantity > 0 {
		unitPrice = totalPrice / float64(totalQuantity)
	}

	return items, totalQuantity, unitPrice, totalPrice
}

func buildOrderUpdates(req *UpdateOrderRequest) (map[string]interface{}, error) {
	updates := make(map[string]interface{})
	if req.Title != nil && *req.Title != "" {
		updates["title"] = *req.Title
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Priority != nil && *req.Priority != "" {
		updates["priority"] = *req.Priority
	}
	if req.DueDate.Present {
		due, err := parseDueDate(req.DueDate.Value)
		if err != nil {
			return nil, err
		}
		updates["due_date"] = due
	}
	return updates, nil
}

func parseDueDate(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, value); err == nil {
			return &t, nil
		}
	}
	return nil, fmt.Errorf("%w: unrecognized due date %q", ErrInvalidInput, value)
}

func toLabels(values []string) []models.StatusLabel {
	labels := make([]models.StatusLabel, 0, len(values))
	for _, v := range values {
		if v == "" {
			continue
		}
		labels = append(labels, models.StatusLabel(v))
	}
	return labels
}

func defaultString(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
