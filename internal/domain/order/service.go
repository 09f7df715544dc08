// internal/domain/order/service.go
package order

import (
	"fmt"

	"gorm.io/gorm"
)

// Service handles the order submission journal
type Service struct {
	db *gorm.DB
}

// NewService creates a new order service
func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// Record persists a submission after the upstream platform accepted it.
// A duplicate upstream order id is treated as already recorded, not an error.
func (s *Service) Record(sub *Submission) error {
	if err := s.db.Create(sub).Error; err != nil {
		var existing Submission
		lookupErr := s.db.Where("upstream_order_id = ?", sub.UpstreamOrderID).
			First(&existing).Error
		if lookupErr == nil {
			*sub = existing
			return nil
		}
		return fmt.Errorf("failed to record order submission: %w", err)
	}
	return nil
}

// Recent returns the user's latest submissions, newest first
func (s *Service) Recent(userID uint, limit int) ([]Submission, error) {
	if limit < 1 || limit > 100 {
		limit = 20
	}

	var submissions []Submission
	err := s.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&submissions).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list order submissions: %w", err)
	}

	return submissions, nil
}
