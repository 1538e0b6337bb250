package models

type Setting struct {
	ID             int    `gorm:"primaryKey" json:"id"`
	Name           string `gorm:"size:100" json:"name"`
	Company        string `gorm:"size:100" json:"company"`
	Logo           string `gorm:"size:255" json:"logo"`
	Maintenance    bool   `gorm:"default:false" json:"maintenance"`
	ClosedRegister bool   `gorm:"default:false" json:"closed_register"`
	LinkCS         string `gorm:"size:255" json:"link_cs"`
	LinkGroup      string `gorm:"size:255" json:"link_group"`
	LinkApp        string `gorm:"size:255" json:"link_app"`
}

func (Setting) TableName() string {
	return "settings"
}
