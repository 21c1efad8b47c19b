package models

import (
	"time"

	"github.com/google/uuid"
)

// Company holds the issuer details printed on invoices
type Company struct {
	ID                 uuid.UUID `json:"id"`
	Name               string    `json:"name"`
	Address            string    `json:"address"`
	RegistrationNumber string    `json:"registration_number"`
	CreatedAt          time.Time `json:"created_at"`
}

// CreateCompanyRequest represents the company creation payload
type CreateCompanyRequest struct {
	Name               string `json:"name"`
	Address            string `json:"address"`
	RegistrationNumber string `json:"registration_number"`
}

// UpdateCompanyRequest represents a partial company update
type UpdateCompanyRequest struct {
	Name               *string `json:"name"`
	Address            *string `json:"address"`
	RegistrationNumber *string `json:"registration_number"`
}
