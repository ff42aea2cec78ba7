package ds

// ServicePlan and ServiceOffering are reference tables feeding the pricing
// and services pages. They are seeded by cmd/seed and never written by the
// request workflow.

type ServicePlan struct {
	ID           uint    `gorm:"primaryKey"`
	Code         Plan    `gorm:"type:varchar(20);unique;not null"`
	Name         string  `gorm:"type:varchar(50);not null"`
	MonthlyPrice float64 `gorm:"type:decimal(10,2);not null"`
	Description  string  `gorm:"type:text"`
	// Feature lines separated by newlines, split at render time.
	Features string `gorm:"type:text"`
	Popular  bool   `gorm:"type:boolean;default:false;not null"`
}

type ServiceOffering struct {
	ID          uint        `gorm:"primaryKey"`
	Code        ServiceType `gorm:"type:varchar(30);unique;not null"`
	Name        string      `gorm:"type:varchar(100);not null"`
	Description string      `gorm:"type:text"`
	Icon        string      `gorm:"type:varchar(10)"`
}
