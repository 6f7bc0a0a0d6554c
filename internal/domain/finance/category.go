package finance

import (
	"regexp"
	"strings"

	"github.com/financetracking/backend/internal/domain/shared"
	"github.com/google/uuid"
)

var colorHexRegex = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// Category is a group-scoped spending category. System categories are
// seeded by the service and cannot be modified or deleted.
type Category struct {
	shared.BaseEntity
	GroupID  uuid.UUID
	Name     string
	ColorHex string
	IsSystem bool
}

// NewCategory creates a new user-defined category
func NewCategory(groupID uuid.UUID, name, colorHex string) (*Category, error) {
	if groupID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CATEGORY", "Category requires a group")
	}
	if err := validateCategoryName(name); err != nil {
		return nil, err
	}
	if err := validateColorHex(colorHex); err != nil {
		return nil, err
	}

	return &Category{
		BaseEntity: shared.NewBaseEntity(),
		GroupID:    groupID,
		Name:       strings.TrimSpace(name),
		ColorHex:   strings.ToUpper(colorHex),
	}, nil
}

// NewSystemCategory creates a seeded category that cannot be changed
func NewSystemCategory(groupID uuid.UUID, name, colorHex string) (*Category, error) {
	c, err := NewCategory(groupID, name, colorHex)
	if err != nil {
		return nil, err
	}
	c.IsSystem = true
	return c, nil
}

// Update changes the category's name and color
func (c *Category) Update(name, colorHex string) error {
	if c.IsSystem {
		return shared.NewDomainError("FORBIDDEN", "System categories cannot be modified")
	}
	if err := validateCategoryName(name); err != nil {
		return err
	}
	if err := validateColorHex(colorHex); err != nil {
		return err
	}

	c.Name = strings.TrimSpace(name)
	c.ColorHex = strings.ToUpper(colorHex)
	c.Touch()
	return nil
}

// CanDelete returns true if the category may be deleted
func (c *Category) CanDelete() bool {
	return !c.IsSystem
}

func validateCategoryName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_CATEGORY_NAME", "Category name cannot be empty")
	}
	if len(name) > 100 {
		return shared.NewDomainError("INVALID_CATEGORY_NAME", "Category name cannot exceed 100 characters")
	}
	return nil
}

func validateColorHex(colorHex string) error {
	if !colorHexRegex.MatchString(colorHex) {
		return shared.NewDomainError("INVALID_COLOR", "Color must be in #RRGGBB format")
	}
	return nil
}
