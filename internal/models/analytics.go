package models

import "time"

// Analytics rows are written by the out-of-process ingestion pipeline and are
// read-only from this system's perspective. Table and column names follow the
// pipeline's schema (client_id is the organization id).

type WeatherSample struct {
	ID             uint64    `gorm:"primarykey" json:"id"`
	OrganizationID uint64    `gorm:"column:client_id;not null;index" json:"organization_id"`
	MeasuredAt     time.Time `json:"measured_at"`
	TemperatureF   float64   `gorm:"column:temperature_f" json:"temperature_f"`
	Description    string    `gorm:"type:varchar(255)" json:"description"`
}

func (WeatherSample) TableName() string { return "dashboard_weather" }

type Review struct {
	ID             uint64    `gorm:"primarykey" json:"id"`
	OrganizationID uint64    `gorm:"column:client_id;not null;index" json:"organization_id"`
	ReviewDate     time.Time `json:"review_date"`
	Rating         float64   `json:"rating"`
	Author         string    `gorm:"type:varchar(255)" json:"author"`
	Source         string    `gorm:"type:varchar(100)" json:"source"`
	Content        string    `gorm:"type:text" json:"content"`
}

func (Review) TableName() string { return "dashboard_reviews" }

type Competitor struct {
	ID             uint64  `gorm:"primarykey" json:"id"`
	OrganizationID uint64  `gorm:"column:client_id;not null;index" json:"organization_id"`
	Name           string  `gorm:"type:varchar(255);not null" json:"name"`
	ReviewCount    int     `json:"review_count"`
	AvgRating      float64 `json:"avg_rating"`
}

func (Competitor) TableName() string { return "dashboard_competitors" }
