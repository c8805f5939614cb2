package models

import (
	"math"
	"strconv"
	"time"
)

// Product represents a product in the catalog. Price is stored as a number
// but presented as a string: whole prices drop the fractional part entirely
// (10.0 renders as "10").
type Product struct {
	ID            uint      `json:"id" gorm:"primaryKey"`
	ImageURL      string    `json:"image_url" gorm:"column:image_url;type:varchar(255)"`
	Name          string    `json:"name" gorm:"type:varchar(100)"`
	Brand         string    `json:"brand" gorm:"type:varchar(100)"`
	Description   string    `json:"description"`
	Specification string    `json:"specification"`
	Price         float64   `json:"-"`
	PriceDisplay  string    `json:"price" gorm:"-"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// NormalizePrice fills PriceDisplay from the stored price.
func (p *Product) NormalizePrice() {
	p.PriceDisplay = FormatPrice(p.Price)
}

// FormatPrice renders a price without a fractional part when it is exactly
// whole, and as a plain decimal otherwise.
func FormatPrice(v float64) string {
	if v == math.Trunc(v) {
		return strconv.FormatInt(int64(v), 10)
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
