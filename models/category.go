package models

import "time"

type Category struct {
	ID           int       `json:"id"`
	Name         string    `json:"name"`
	Slug         string    `json:"slug"`
	Description  *string   `json:"description,omitempty"`
	Image        *string   `json:"image,omitempty"`
	IsActive     bool      `json:"is_active"`
	ProductCount int       `json:"product_count,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
