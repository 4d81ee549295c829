package models

import "time"

type Service struct {
	ID         uint `gorm:"primaryKey" json:"id"`
	BusinessID uint `gorm:"uniqueIndex:idx_service_business_name;not null" json:"business_id"`

	Name        string `gorm:"size:100;uniqueIndex:idx_service_business_name;not null" json:"name"`
	DurationMin int    `gorm:"not null" json:"duration_min"`

	ParentID    *uint     `gorm:"index" json:"parent_id"`
	Subservices []Service `gorm:"foreignKey:ParentID;constraint:OnDelete:SET NULL;" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
