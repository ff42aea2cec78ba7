package ds

type User struct {
	ID       uint   `gorm:"primaryKey"`
	Email    string `gorm:"type:varchar(100);unique;not null"`
	Password string `gorm:"type:varchar(255);not null"`
	FullName string `gorm:"type:varchar(100)"`
	IsAdmin  bool   `gorm:"type:boolean;default:false;not null"`
}
