package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product представляет товар каталога (бутилированная вода)
type Product struct {
	ID          int64           `json:"id"`
	UUID        string          `json:"uuid"` // внешний идентификатор, используется в URL
	Slug        string          `json:"slug"`
	Name        string          `json:"product_name"`
	Brand       string          `json:"brand"`
	Category    string          `json:"category"`
	Price       decimal.Decimal `json:"price"` // NUMERIC(10,2)
	Stock       int             `json:"stock"`
	Description string          `json:"description"`
	ImageURL    string          `json:"image_url"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}
