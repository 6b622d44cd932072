// internal/services/status_service.go
package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rahulbala1799/TT/internal/models"
)

// StatusService maintains the set of active status labels on an order plus
// the append-only transition log. Mutating methods take the caller's
// transaction so status changes commit or roll back together with whatever
// order update they accompany.
type StatusService struct {
	db *gorm.DB
}

func NewStatusService(db *gorm.DB) *StatusService {
	return &StatusService{db: db}
}

// StatusNotes carries the note texts written alongside a status assertion.
// Reactivated is used when an existing row is flipped back on; when empty it
// falls back to Added.
type StatusNotes struct {
	Added       string
	Reactivated string
	Log         string
}

func (n StatusNotes) reactivated() string {
	if n.Reactivated != "" {
		return n.Reactivated
	}
	return n.Added
}

// AddStatuses asserts each label active. An existing (order, label) row is
// reactivated rather than duplicated; a fresh label gets a new row. Every
// label is logged ADDED, including ones that were already active — the log
// records requested actions, not state changes.
func (s *StatusService) AddStatuses(tx *gorm.DB, orderID uuid.UUID, labels []models.StatusLabel, notes StatusNotes) error {
	for _, label := range labels {
		if err := s.addStatus(tx, orderID, label, notes); err != nil {
			return err
		}
	}
	return nil
}

func (s *StatusService) addStatus(tx *gorm.DB, orderID uuid.UUID, label models.StatusLabel, notes StatusNotes) error {
	var existing models.OrderStatus
	err := tx.Where("order_id = ? AND status = ?", orderID, label).First(&existing).Error
	switch {
	case err == nil:
		updates := map[string]interface{}{"is_active": true, "notes": notes.reactivated()}
		if err := tx.Model(&existing).Updates(updates).Error; err != nil {
			return fmt.Errorf("failed to reactivate status %s: %w", label, err)
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		row := &models.OrderStatus{
			OrderID:  orderID,
			Status:   label,
			IsActive: true,
			Notes:    notes.Added,
		}
		if err := tx.Create(row).Error; err != nil {
			return fmt.Errorf("failed to create status %s: %w", label, err)
		}
	default:
		return fmt.Errorf("failed to look up status %s: %w", label, err)
	}

	return s.log(tx, orderID, label, models.LogActionAdded, notes.Log)
}

// RemoveStatuses deactivates the matching rows. Each requested label is
// logged REMOVED even if it was never present; the row flags stay the
// source of truth for current state.
func (s *StatusService) RemoveStatuses(tx *gorm.DB, orderID uuid.UUID, labels []models.StatusLabel, logNotes string) error {
	if len(labels) == 0 {
		return nil
	}

	if err := tx.Model(&models.OrderStatus{}).
		Where("order_id = ? AND status IN ?", orderID, labels).
		Update("is_active", false).Error; err != nil {
		return fmt.Errorf("failed to deactivate statuses: %w", err)
	}

	for _, label := range labels {
		if err := s.log(tx, orderID, label, models.LogActionRemoved, logNotes); err != nil {
			return err
		}
	}
	return nil
}

// ReplaceStatuses deactivates every row for the order and then asserts
// exactly the given labels. This is a full replace, not a diff: labels that
// were already active are re-confirmed and logged ADDED again.
func (s *StatusService) ReplaceStatuses(tx *gorm.DB, orderID uuid.UUID, labels []models.StatusLabel) error {
	if err := tx.Model(&models.OrderStatus{}).
		Where("order_id = ?", orderID).
		Update("is_active", false).Error; err != nil {
		return fmt.Errorf("failed to deactivate statuses: %w", err)
	}

	for _, label := range labels {
		notes := fmt.Sprintf("Status updated to %s", label)
		if err := s.addStatus(tx, orderID, label, StatusNotes{Added: notes, Log: notes}); err != nil {
			return err
		}
	}
	return nil
}

// ActiveStatuses returns the currently active rows, newest first. The result
// is never nil; an emptied set serializes as an empty array.
func (s *StatusService) ActiveStatuses(orderID uuid.UUID) ([]models.OrderStatus, error) {
	statuses := make([]models.OrderStatus, 0)
	if err := s.db.Where("order_id = ? AND is_active = ?", orderID, true).
		Order("created_at DESC").
		Find(&statuses).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch active statuses: %w", err)
	}
	return statuses, nil
}

func (s *StatusService) log(tx *gorm.DB, orderID uuid.UUID, label models.StatusLabel, action models.LogAction, notes string) error {
	entry := &models.OrderStatusLog{
		OrderID: orderID,
		Status:  label,
		Action:  action,
		Notes:   notes,
	}
	if err := tx.Create(entry).Error; err != nil {
		return fmt.Errorf("failed to write status log: %w", err)
	}
	return nil
}
