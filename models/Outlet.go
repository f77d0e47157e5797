package models

import "fmt"

// OutletStatus is the operating state of an outlet.
type OutletStatus string

const (
	OutletActive      OutletStatus = "active"
	OutletInactive    OutletStatus = "inactive"
	OutletMaintenance OutletStatus = "maintenance"
	OutletClosed      OutletStatus = "closed"
)

// OutletStatuses lists every outlet status in display order.
var OutletStatuses = []OutletStatus{OutletActive, OutletInactive, OutletMaintenance, OutletClosed}

// ParseOutletStatus converts raw input into an OutletStatus. Blank input maps to active.
func ParseOutletStatus(value string) (OutletStatus, error) {
	if value == "" {
		return OutletActive, nil
	}
	for _, status := range OutletStatuses {
		if string(status) == value {
			return status, nil
		}
	}
	return "", fmt.Errorf("unknown outlet status %q", value)
}

// Outlet is a restaurant location owning categories and recipes.
type Outlet struct {
	Base
	Name       string       `gorm:"not null" json:"name"`
	Type       string       `json:"type"`
	Location   string       `json:"location"`
	Status     OutletStatus `gorm:"type:varchar(16);not null;default:active" json:"status"`
	Categories []Category   `gorm:"foreignKey:OutletID" json:"categories,omitempty"`
	Recipes    []Recipe     `gorm:"foreignKey:OutletID" json:"recipes,omitempty"`
}
