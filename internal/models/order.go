package models

import "time"

type Order struct {
	ID uint `gorm:"primaryKey" json:"id"`

	UserID     uint `gorm:"index;not null" json:"user_id"`
	BusinessID uint `gorm:"index;not null" json:"business_id"`

	EmployeeID uint     `gorm:"index;not null" json:"employee_id"`
	Employee   Employee `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	ServiceID uint    `gorm:"not null" json:"service_id"`
	Service   Service `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	StartTime time.Time `gorm:"not null" json:"start_time"`
	EndTime   time.Time `gorm:"not null" json:"end_time"`

	CreatedAt time.Time `json:"created_at"`
}
