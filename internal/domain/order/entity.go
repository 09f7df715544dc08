// internal/domain/order/entity.go
package order

import (
	"time"

	"github.com/shopspring/decimal"
)

// Submission is the local journal row written after the upstream platform
// accepts an order. It exists so the recent-orders view does not need an
// upstream round trip; the platform remains the source of truth.
type Submission struct {
	ID              uint            `gorm:"primaryKey" json:"id"`
	UserID          uint            `gorm:"index;not null" json:"user_id"`
	UpstreamOrderID int64           `gorm:"uniqueIndex;not null" json:"upstream_order_id"`
	PaymentMethodID string          `gorm:"size:64;not null" json:"payment_method_id"`
	ItemCount       int             `gorm:"not null" json:"item_count"`
	ListTotal       decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"list_total"`
	BenefitDiscount decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"benefit_discount"`
	PointsRedeemed  decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"points_redeemed"`
	PayableTotal    decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"payable_total"`
	CreatedAt       time.Time       `json:"created_at"`
}

// TableName returns the table name for the Submission model
func (Submission) TableName() string {
	return "order_submissions"
}
