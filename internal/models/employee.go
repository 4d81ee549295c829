package models

import "time"

type EmployeeRole struct {
	ID             uint   `gorm:"primaryKey" json:"id"`
	Name           string `gorm:"size:100;not null" json:"name"`
	BusinessTypeID *uint  `gorm:"index" json:"business_type_id"`
}

type Employee struct {
	ID         uint `gorm:"primaryKey" json:"id"`
	BusinessID uint `gorm:"index;not null" json:"business_id"`

	RoleID uint         `json:"role_id"`
	Role   EmployeeRole `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"role"`

	FirstName  string `gorm:"size:100;not null" json:"first_name"`
	LastName   string `gorm:"size:100;not null" json:"last_name"`
	Patronymic string `gorm:"size:100" json:"patronymic"`
	Phone      string `gorm:"size:17;uniqueIndex;not null" json:"phone"`

	// DurationMin overrides the service duration when set.
	DurationMin *int `json:"duration_min"`

	Services      []Service              `gorm:"many2many:employee_services;" json:"services"`
	WorkSchedules []EmployeeWorkSchedule `gorm:"constraint:OnDelete:CASCADE;" json:"work_schedules"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type EmployeeWorkSchedule struct {
	ID         uint `gorm:"primaryKey" json:"id"`
	EmployeeID uint `gorm:"index:idx_schedule_employee_day;not null" json:"employee_id"`

	Workday   string `gorm:"size:3;index:idx_schedule_employee_day;not null" json:"workday"`
	StartTime string `gorm:"size:8;not null" json:"start_time"`
	EndTime   string `gorm:"size:8;not null" json:"end_time"`
}
