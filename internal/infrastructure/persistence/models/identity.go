package models

import (
	"github.com/financetracking/backend/internal/domain/identity"
)

// UserModel is the persistence model for the local user projection.
type UserModel struct {
	BaseModel
	Username string `gorm:"type:varchar(100);not null;index"`
	Email    string `gorm:"type:varchar(200);not null;index"`
}

// TableName returns the table name for GORM
func (UserModel) TableName() string {
	return "users"
}

// ToDomain converts the persistence model to a domain User entity.
func (m *UserModel) ToDomain() *identity.User {
	return &identity.User{
		BaseEntity: m.entity(),
		Username:   m.Username,
		Email:      m.Email,
	}
}

// FromDomain populates the persistence model from a domain User entity.
func (m *UserModel) FromDomain(u *identity.User) {
	m.BaseModel = newBaseModel(u.BaseEntity)
	m.Username = u.Username
	m.Email = u.Email
}
