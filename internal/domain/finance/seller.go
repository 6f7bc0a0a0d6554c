package finance

import (
	"strings"

	"github.com/financetracking/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Seller is a group-scoped merchant that receipts can reference
type Seller struct {
	shared.BaseEntity
	GroupID  uuid.UUID
	Name     string
	Location string
}

// NewSeller creates a new seller
func NewSeller(groupID uuid.UUID, name, location string) (*Seller, error) {
	if groupID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_SELLER", "Seller requires a group")
	}
	if err := validateSellerName(name); err != nil {
		return nil, err
	}
	if len(location) > 200 {
		return nil, shared.NewDomainError("INVALID_SELLER", "Seller location cannot exceed 200 characters")
	}

	return &Seller{
		BaseEntity: shared.NewBaseEntity(),
		GroupID:    groupID,
		Name:       strings.TrimSpace(name),
		Location:   strings.TrimSpace(location),
	}, nil
}

// Update changes the seller's name and location
func (s *Seller) Update(name, location string) error {
	if err := validateSellerName(name); err != nil {
		return err
	}
	if len(location) > 200 {
		return shared.NewDomainError("INVALID_SELLER", "Seller location cannot exceed 200 characters")
	}

	s.Name = strings.TrimSpace(name)
	s.Location = strings.TrimSpace(location)
	s.Touch()
	return nil
}

func validateSellerName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_SELLER_NAME", "Seller name cannot be empty")
	}
	if len(name) > 100 {
		return shared.NewDomainError("INVALID_SELLER_NAME", "Seller name cannot exceed 100 characters")
	}
	return nil
}
