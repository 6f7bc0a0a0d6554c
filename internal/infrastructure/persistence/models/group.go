package models

import (
	"time"

	"github.com/financetracking/backend/internal/domain/group"
	"github.com/google/uuid"
)

// GroupModel is the persistence model for the Group domain entity.
type GroupModel struct {
	BaseModel
	OwnerID    *uuid.UUID `gorm:"type:uuid;index"`
	Name       string     `gorm:"type:varchar(100);not null"`
	IsPersonal bool       `gorm:"not null;default:false"`
}

// TableName returns the table name for GORM
func (GroupModel) TableName() string {
	return "groups"
}

// ToDomain converts the persistence model to a domain Group entity.
func (m *GroupModel) ToDomain() *group.Group {
	return &group.Group{
		BaseEntity: m.entity(),
		OwnerID:    m.OwnerID,
		Name:       m.Name,
		IsPersonal: m.IsPersonal,
	}
}

// FromDomain populates the persistence model from a domain Group entity.
func (m *GroupModel) FromDomain(g *group.Group) {
	m.BaseModel = newBaseModel(g.BaseEntity)
	m.OwnerID = g.OwnerID
	m.Name = g.Name
	m.IsPersonal = g.IsPersonal
}

// GroupModelFromDomain creates a new persistence model from a domain Group entity.
func GroupModelFromDomain(g *group.Group) *GroupModel {
	m := &GroupModel{}
	m.FromDomain(g)
	return m
}

// MembershipModel is the persistence model for the Membership domain
// entity. The (user, group) pair is the primary key, so there is at most
// one row per pair regardless of how often the user leaves and rejoins.
type MembershipModel struct {
	UserID    uuid.UUID  `gorm:"type:uuid;primaryKey"`
	GroupID   uuid.UUID  `gorm:"type:uuid;primaryKey;index"`
	Role      group.Role `gorm:"type:int;not null"`
	Active    bool       `gorm:"not null;default:true"`
	JoinedAt  time.Time  `gorm:"not null"`
	UpdatedAt time.Time  `gorm:"not null"`
}

// TableName returns the table name for GORM
func (MembershipModel) TableName() string {
	return "group_members"
}

// ToDomain converts the persistence model to a domain Membership.
func (m *MembershipModel) ToDomain() *group.Membership {
	return &group.Membership{
		UserID:    m.UserID,
		GroupID:   m.GroupID,
		Role:      m.Role,
		Active:    m.Active,
		JoinedAt:  m.JoinedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// FromDomain populates the persistence model from a domain Membership.
func (m *MembershipModel) FromDomain(mem *group.Membership) {
	m.UserID = mem.UserID
	m.GroupID = mem.GroupID
	m.Role = mem.Role
	m.Active = mem.Active
	m.JoinedAt = mem.JoinedAt
	m.UpdatedAt = mem.UpdatedAt
}

// InvitationModel is the persistence model for the Invitation domain
// entity. The partial unique index allows any number of settled
// invitations per (group, target) pair but only one pending.
type InvitationModel struct {
	BaseModel
	GroupID         uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:ux_invitations_pending,where:status = 'pending'"`
	InvitedByUserID uuid.UUID `gorm:"type:uuid;not null"`
	TargetUserID    uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:ux_invitations_pending,where:status = 'pending'"`
	Note            string    `gorm:"type:varchar(500)"`
	Status          string    `gorm:"type:varchar(20);not null;index"`
}

// TableName returns the table name for GORM
func (InvitationModel) TableName() string {
	return "group_invitations"
}

// ToDomain converts the persistence model to a domain Invitation.
func (m *InvitationModel) ToDomain() *group.Invitation {
	return &group.Invitation{
		BaseEntity:      m.entity(),
		GroupID:         m.GroupID,
		InvitedByUserID: m.InvitedByUserID,
		TargetUserID:    m.TargetUserID,
		Note:            m.Note,
		Status:          group.InvitationStatus(m.Status),
	}
}

// FromDomain populates the persistence model from a domain Invitation.
func (m *InvitationModel) FromDomain(i *group.Invitation) {
	m.BaseModel = newBaseModel(i.BaseEntity)
	m.GroupID = i.GroupID
	m.InvitedByUserID = i.InvitedByUserID
	m.TargetUserID = i.TargetUserID
	m.Note = i.Note
	m.Status = string(i.Status)
}

// HistoryEntryModel is the persistence model for the membership ledger.
// Rows are inserted, never updated.
type HistoryEntryModel struct {
	ID              uuid.UUID   `gorm:"type:uuid;primary_key"`
	GroupID         uuid.UUID   `gorm:"type:uuid;not null;index:ix_history_group_changed"`
	UserID          *uuid.UUID  `gorm:"type:uuid"`
	ChangedByUserID *uuid.UUID  `gorm:"type:uuid"`
	RoleBefore      *group.Role `gorm:"type:int"`
	RoleAfter       *group.Role `gorm:"type:int"`
	ActiveBefore    *bool
	ActiveAfter     *bool
	Note            string    `gorm:"type:varchar(200);not null"`
	ChangedAt       time.Time `gorm:"not null;index:ix_history_group_changed"`
}

// TableName returns the table name for GORM
func (HistoryEntryModel) TableName() string {
	return "group_member_history"
}

// ToDomain converts the persistence model to a domain HistoryEntry.
func (m *HistoryEntryModel) ToDomain() *group.HistoryEntry {
	return &group.HistoryEntry{
		ID:              m.ID,
		GroupID:         m.GroupID,
		UserID:          m.UserID,
		ChangedByUserID: m.ChangedByUserID,
		RoleBefore:      m.RoleBefore,
		RoleAfter:       m.RoleAfter,
		ActiveBefore:    m.ActiveBefore,
		ActiveAfter:     m.ActiveAfter,
		Note:            m.Note,
		ChangedAt:       m.ChangedAt,
	}
}

// FromDomain populates the persistence model from a domain HistoryEntry.
func (m *HistoryEntryModel) FromDomain(e *group.HistoryEntry) {
	m.ID = e.ID
	m.GroupID = e.GroupID
	m.UserID = e.UserID
	m.ChangedByUserID = e.ChangedByUserID
	m.RoleBefore = e.RoleBefore
	m.RoleAfter = e.RoleAfter
	m.ActiveBefore = e.ActiveBefore
	m.ActiveAfter = e.ActiveAfter
	m.Note = e.Note
	m.ChangedAt = e.ChangedAt
}
