package models

// Unit is an entry of the advisory measurement vocabulary offered to forms.
type Unit struct {
	Base
	Name         string `gorm:"not null" json:"name"`
	Abbreviation string `gorm:"not null" json:"abbreviation"`
}
