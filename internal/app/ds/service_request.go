package ds

import "time"

// ServiceRequest is the record written once by the request form and mutated
// only by admin status updates. TotalAmount is computed from Plan at
// submission time and never recomputed afterwards.
type ServiceRequest struct {
	ID        uint      `gorm:"primaryKey"`
	CreatedAt time.Time `gorm:"not null"`
	CreatorID uint      `gorm:"not null"`

	FullName string `gorm:"type:varchar(100);not null"`
	Email    string `gorm:"type:varchar(100);not null"`
	Phone    string `gorm:"type:varchar(30);not null"`
	Company  string `gorm:"type:varchar(100)"`

	ServiceType ServiceType `gorm:"type:varchar(30)"`
	Plan        Plan        `gorm:"type:varchar(20)"`
	Description string      `gorm:"type:text"`

	// Storage key and original filename of the optional attachment.
	FileKey  *string `gorm:"type:varchar(255);default:null"`
	FileName *string `gorm:"type:varchar(255);default:null"`

	Status        Status        `gorm:"type:varchar(20);not null;default:'pending'"`
	PaymentStatus PaymentStatus `gorm:"type:varchar(20);not null;default:'unpaid'"`
	TotalAmount   float64       `gorm:"type:decimal(12,2);not null;default:0"`

	Creator User `gorm:"foreignKey:CreatorID"`
}
