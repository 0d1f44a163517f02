package dto

import "time"

type MenuRequest struct {
	Name  string `json:"name" validate:"required"`
	Price int64  `json:"price" validate:"required,gte=0"`
}

type OperatingHourRequest struct {
	DayOfWeek int    `json:"day_of_week" validate:"gte=0,lte=6"`
	OpenTime  string `json:"open_time" validate:"omitempty,len=5"`
	CloseTime string `json:"close_time" validate:"omitempty,len=5"`
	Closed    bool   `json:"is_closed"`
}

type CreateCafeRequest struct {
	Name           string                 `json:"name" validate:"required,max=100"`
	Address        string                 `json:"address" validate:"required"`
	Latitude       float64                `json:"latitude" validate:"omitempty,gte=-90,lte=90"`
	Longitude      float64                `json:"longitude" validate:"omitempty,gte=-180,lte=180"`
	PhoneNumber    string                 `json:"phone_number" validate:"omitempty"`
	Images         []string               `json:"images" validate:"omitempty,dive,max=2048"`
	Menus          []MenuRequest          `json:"menus" validate:"omitempty,dive"`
	OperatingHours []OperatingHourRequest `json:"operating_hours" validate:"omitempty,max=7,dive"`
}

type UpdateCafeRequest struct {
	Name           string                 `json:"name" validate:"omitempty,max=100"`
	Address        string                 `json:"address" validate:"omitempty"`
	Latitude       *float64               `json:"latitude" validate:"omitempty,gte=-90,lte=90"`
	Longitude      *float64               `json:"longitude" validate:"omitempty,gte=-180,lte=180"`
	PhoneNumber    string                 `json:"phone_number" validate:"omitempty"`
	Images         []string               `json:"images" validate:"omitempty,dive,max=2048"`
	Menus          []MenuRequest          `json:"menus" validate:"omitempty,dive"`
	OperatingHours []OperatingHourRequest `json:"operating_hours" validate:"omitempty,max=7,dive"`
}

type MenuResponse struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Price int64  `json:"price"`
}

type OperatingHourResponse struct {
	DayOfWeek int    `json:"day_of_week"`
	OpenTime  string `json:"open_time,omitempty"`
	CloseTime string `json:"close_time,omitempty"`
	Closed    bool   `json:"is_closed"`
}

type CafeSummaryResponse struct {
	ID        uint     `json:"id"`
	Name      string   `json:"name"`
	Address   string   `json:"address"`
	Latitude  float64  `json:"latitude,omitempty"`
	Longitude float64  `json:"longitude,omitempty"`
	Images    []string `json:"images,omitempty"`
	Views     int64    `json:"views"`
}

type CafeDetailResponse struct {
	ID             uint                    `json:"id"`
	Name           string                  `json:"name"`
	Address        string                  `json:"address"`
	Latitude       float64                 `json:"latitude,omitempty"`
	Longitude      float64                 `json:"longitude,omitempty"`
	PhoneNumber    string                  `json:"phone_number,omitempty"`
	Images         []string                `json:"images,omitempty"`
	Views          int64                   `json:"views"`
	LikeCount      int64                   `json:"like_count"`
	Menus          []MenuResponse          `json:"menus"`
	OperatingHours []OperatingHourResponse `json:"operating_hours"`
	CreatedAt      time.Time               `json:"created_at"`
}
