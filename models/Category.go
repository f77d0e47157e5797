package models

// Category groups recipes on an outlet's menu. SortOrder drives display order.
type Category struct {
	Base
	OutletID  string  `gorm:"type:uuid;not null;index" json:"outlet_id"`
	Outlet    *Outlet `gorm:"foreignKey:OutletID" json:"outlet,omitempty"`
	Name      string  `gorm:"not null" json:"name"`
	SortOrder int     `gorm:"not null;default:0" json:"sort_order"`
}
