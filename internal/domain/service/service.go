package service

import (
	"time"

	"github.com/shopspring/decimal"
)

// Service is one offering a provider sells through the catalog.
// Price is a fixed-precision decimal so values like 19.99 survive the
// round trip through the remote table without float drift.
type Service struct {
	ID        string          `json:"serviceId"`
	Name      string          `json:"name"`
	Category  string          `json:"category"`
	Price     decimal.Decimal `json:"price"`
	Provider  string          `json:"provider"`
	CreatedAt time.Time       `json:"createdAt"`
}
