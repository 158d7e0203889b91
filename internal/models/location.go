package models

import "time"

// Location is a physical site under a company. An active location with
// coordinates is the signal the external weather-ingestion pipeline consumes;
// nothing here calls that pipeline, persisting the row is the whole contract.
type Location struct {
	ID        uint64    `gorm:"primarykey" json:"id"`
	Name      string    `gorm:"type:varchar(255);not null" json:"name"`
	CompanyID uint64    `gorm:"not null;index" json:"company_id"`
	Address   string    `gorm:"type:varchar(255)" json:"address,omitempty"`
	City      string    `gorm:"type:varchar(255)" json:"city,omitempty"`
	State     string    `gorm:"type:varchar(100)" json:"state,omitempty"`
	Zip       string    `gorm:"type:varchar(20)" json:"zip,omitempty"`
	Latitude  *float64  `json:"latitude"`
	Longitude *float64  `json:"longitude"`
	IsActive  bool      `gorm:"not null;default:false;index" json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Company Company `gorm:"foreignKey:CompanyID" json:"company,omitempty"`
}
