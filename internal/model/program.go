package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Program is a purchasable curriculum track containing courses
type Program struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       int64     `json:"price"` // In minor currency units
	Duration    string    `json:"duration"`
	Features    []string  `json:"features"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
}

// DisplayPrice formats the price for pages and messages, dropping zero cents
func (p Program) DisplayPrice() string {
	if p.Price%100 == 0 {
		return fmt.Sprintf("$%d", p.Price/100)
	}
	return fmt.Sprintf("$%d.%02d", p.Price/100, p.Price%100)
}

type CreateProgramRequest struct {
	Name        string   `json:"name" binding:"required"`
	Description string   `json:"description"`
	Price       int64    `json:"price" binding:"gte=0"`
	Duration    string   `json:"duration"`
	Features    []string `json:"features"`
	IsActive    *bool    `json:"is_active"`
}

type UpdateProgramRequest struct {
	Name        *string  `json:"name,omitempty"`
	Description *string  `json:"description,omitempty"`
	Price       *int64   `json:"price,omitempty" binding:"omitempty,gte=0"`
	Duration    *string  `json:"duration,omitempty"`
	Features    []string `json:"features,omitempty"`
	IsActive    *bool    `json:"is_active,omitempty"`
}
