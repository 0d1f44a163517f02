package model

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Cafe is a café record with its menus and operating hours.
type Cafe struct {
	gorm.Model
	Name      string         `gorm:"column:name;not null;index"`
	Address   string         `gorm:"column:address;not null"`
	Latitude  float64        `gorm:"column:latitude"`
	Longitude float64        `gorm:"column:longitude"`
	Phone     string         `gorm:"column:phone_number"`
	Images    datatypes.JSON `gorm:"column:images"`
	Views     int64          `gorm:"column:views;default:0;not null"`

	Menus          []Menu          `gorm:"foreignKey:CafeID"`
	OperatingHours []OperatingHour `gorm:"foreignKey:CafeID"`
	Reviews        []Review        `gorm:"foreignKey:CafeID"`
	Likes          []Like          `gorm:"foreignKey:CafeID"`
}

// Menu is one item on a café's menu.
type Menu struct {
	gorm.Model
	CafeID uint   `gorm:"column:cafe_id;index;not null"`
	Name   string `gorm:"column:name;not null"`
	Price  int64  `gorm:"column:price;not null"`
}

// OperatingHour is the opening window for one day of the week (0=Sunday).
type OperatingHour struct {
	gorm.Model
	CafeID    uint   `gorm:"column:cafe_id;index;not null"`
	DayOfWeek int    `gorm:"column:day_of_week;not null"`
	OpenTime  string `gorm:"column:open_time"`  // "HH:MM"
	CloseTime string `gorm:"column:close_time"` // "HH:MM"
	Closed    bool   `gorm:"column:is_closed;default:false;not null"`
}
