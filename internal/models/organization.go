package models

import (
	"time"
)

// Organization is the top-level tenant. The slug doubles as an identifier in
// URLs and as the admin-area sentinel (constants.AdminOrgSlug).
type Organization struct {
	ID        uint64    `gorm:"primarykey" json:"id"`
	Name      string    `gorm:"type:varchar(255);not null" json:"name"`
	Slug      string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"slug"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Members   []Member  `gorm:"foreignKey:OrganizationID" json:"members,omitempty"`
	Companies []Company `gorm:"foreignKey:OrganizationID" json:"companies,omitempty"`
}
