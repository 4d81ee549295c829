package models

import "time"

type BusinessType struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"size:100;uniqueIndex;not null" json:"name"`
}

type Business struct {
	ID uint `gorm:"primaryKey" json:"id"`

	BusinessTypeID uint         `gorm:"index;not null" json:"business_type_id"`
	BusinessType   BusinessType `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"business_type"`

	// CreatorID is the authenticated user that registered the business.
	CreatorID uint `gorm:"index;not null" json:"creator_id"`

	Name        string  `gorm:"size:100;not null" json:"name"`
	Description string  `gorm:"type:text" json:"description"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	Timezone    string  `gorm:"size:64" json:"timezone"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
