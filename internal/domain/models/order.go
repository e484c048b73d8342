package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus — статус жизненного цикла заказа
type OrderStatus string

const (
	StatusPending    OrderStatus = "pending"
	StatusProcessing OrderStatus = "processing"
	StatusCompleted  OrderStatus = "completed"
	StatusCancelled  OrderStatus = "cancelled"
)

// Valid проверяет принадлежность значения к перечислению.
// Таблица переходов намеренно не ограничена: любой статус достижим из любого.
func (s OrderStatus) Valid() bool {
	switch s {
	case StatusPending, StatusProcessing, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// Order представляет заказ с денормализованными данными доставки
type Order struct {
	ID           int64           `json:"id"`
	UUID         string          `json:"uuid"`
	OrderNumber  string          `json:"order_number"`
	UserID       int64           `json:"user_id"`
	CustomerName string          `json:"customer_name"`
	Phone        string          `json:"phone"`
	Address      string          `json:"address"`
	TotalAmount  decimal.Decimal `json:"total_amount"`
	Status       OrderStatus     `json:"status"`
	Items        []*OrderItem    `json:"order_items,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// OrderItem — позиция заказа. Price — снимок цены товара на момент
// оформления, после создания не изменяется
type OrderItem struct {
	ID          int64           `json:"id"`
	OrderID     int64           `json:"order_id"`
	ProductID   int64           `json:"product_id"`
	ProductName string          `json:"product_name"` // заполняется через JOIN с таблицей products
	Quantity    int             `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}
