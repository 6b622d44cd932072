// internal/models/sequence.go
package models

import (
	"fmt"

	"gorm.io/gorm"
)

// OrderSequence is a one-row-per-name counter table backing order number
// allocation. Incrementing the row inside the create transaction makes the
// numbers unique under concurrent creates, unlike the old count-then-format
// scheme.
type OrderSequence struct {
	Name   string `gorm:"primaryKey;size:30"`
	LastNo int64  `gorm:"not null;default:0"`
}

const (
	orderSequenceName  = "order_number"
	orderNumberPrefix  = "PO"
	orderNumberPadding = 6
)

// NextOrderNumber atomically advances the counter within tx and returns the
// formatted number, e.g. PO000123.
func NextOrderNumber(tx *gorm.DB) (string, error) {
	res := tx.Model(&OrderSequence{}).
		Where("name = ?", orderSequenceName).
		Update("last_no", gorm.Expr("last_no + 1"))
	if res.Error != nil {
		return "", fmt.Errorf("failed to advance order sequence: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		if err := tx.Create(&OrderSequence{Name: orderSequenceName, LastNo: 1}).Error; err != nil {
			return "", fmt.Errorf("failed to initialize order sequence: %w", err)
		}
	}

	var seq OrderSequence
	if err := tx.Where("name = ?", orderSequenceName).First(&seq).Error; err != nil {
		return "", fmt.Errorf("failed to read order sequence: %w", err)
	}

	return FormatOrderNumber(seq.LastNo), nil
}

// FormatOrderNumber renders a sequence value as a human-readable order
// number with the PO prefix and zero padding.
func FormatOrderNumber(n int64) string {
	return fmt.Sprintf("%s%0*d", orderNumberPrefix, orderNumberPadding, n)
}
