package model

import "time"

type Member struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"uniqueIndex;not null" json:"name"`
	Role      *string   `json:"role"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	Tasks     []Task    `gorm:"foreignKey:MemberID;constraint:OnDelete:RESTRICT" json:"tasks"`
}
