package models

import "time"

type MemberRole string

const (
	RoleOwner  MemberRole = "owner"
	RoleAdmin  MemberRole = "admin"
	RoleMember MemberRole = "member"
)

// ValidRole reports whether r is one of the roles a member may hold.
func ValidRole(r MemberRole) bool {
	switch r {
	case RoleOwner, RoleAdmin, RoleMember:
		return true
	}
	return false
}

// Member links a user to an organization with a role. The composite primary
// key guarantees at most one row per (organization, user) pair.
type Member struct {
	OrganizationID uint64     `gorm:"primarykey" json:"organization_id"`
	UserID         uint64     `gorm:"primarykey" json:"user_id"`
	Role           MemberRole `gorm:"type:varchar(20);not null" json:"role"`
	JoinedAt       time.Time  `json:"joined_at"`

	// Relations
	Organization Organization `gorm:"foreignKey:OrganizationID" json:"organization,omitempty"`
	User         User         `gorm:"foreignKey:UserID" json:"user,omitempty"`
}
