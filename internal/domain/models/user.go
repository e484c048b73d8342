package models

import "time"

// User представляет зарегистрированного покупателя
type User struct {
	ID        int64
	Name      string
	Email     string
	PassHash  []byte
	CreatedAt time.Time
}
