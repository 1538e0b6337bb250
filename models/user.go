package models

import "time"

type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:100;not null" json:"name"`
	Number    string    `gorm:"size:20;uniqueIndex;not null" json:"number"`
	Password  string    `gorm:"size:255;not null" json:"-"`
	Address   *string   `gorm:"type:varchar(255);null" json:"address,omitempty"`
	Profile   *string   `gorm:"type:varchar(255);null" json:"profile,omitempty"`
	Status    string    `gorm:"type:enum('Active','Inactive','Suspend');default:'Active'" json:"status"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

func (User) TableName() string {
	return "users"
}
