package service

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrOrderAccessDenied — заказ принадлежит другому пользователю
	ErrOrderAccessDenied = errors.New("you do not have access to this order")
)

// InsufficientStockError — бизнес-ошибка нехватки остатка.
// Несёт данные для человекочитаемого сообщения клиенту.
type InsufficientStockError struct {
	ProductName string
	Available   int
	Requested   int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for '%s': available %d, requested %d",
		e.ProductName, e.Available, e.Requested)
}
