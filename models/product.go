package models

import "time"

type Product struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	CategoryID  uint      `gorm:"column:category_id;not null;index" json:"category_id"`
	Name        string    `gorm:"column:name;size:100;not null" json:"name"`
	Price       float64   `gorm:"column:price;type:decimal(15,2);not null" json:"price"`
	Stock       int       `gorm:"column:stock;default:0" json:"stock"`
	Description string    `gorm:"column:description;type:text" json:"description"`
	Image       *string   `gorm:"column:image;type:varchar(255);null" json:"image,omitempty"`
	Status      string    `gorm:"column:status;type:enum('Active','Inactive');default:'Active'" json:"status"`
	CreatedAt   time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at" json:"updated_at"`

	// Relations
	Category *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
}

func (Product) TableName() string {
	return "products"
}
