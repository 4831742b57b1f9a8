package domain

import "time"

// Role is a named permission group a principal may hold one or more of.
type Role struct {
	ID   int64  `json:"id,omitempty"`
	Name string `json:"name"`
}

// User models an account on the backend. Password is write-only from this
// service's perspective: it is forwarded on create/update, never read back.
type User struct {
	ID        int64     `json:"id,omitempty"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Password  string    `json:"password,omitempty"`
	Roles     []Role    `json:"roles,omitempty"`
	CreatedAt time.Time `json:"createdAt,omitempty"`
}

// Customer is the backend's customer record.
type Customer struct {
	ID           int64  `json:"id,omitempty"`
	CustomerName string `json:"customerName"`
	Phone        string `json:"phone"`
}
