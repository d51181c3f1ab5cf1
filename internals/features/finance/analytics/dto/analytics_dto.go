package dto

import "time"

type ClassFill struct {
	ClassID  string  `json:"class_id"`
	Name     string  `json:"name"`
	Enrolled int     `json:"enrolled"`
	Capacity int     `json:"capacity"`
	FillRate float64 `json:"fill_rate"`
	Revenue  float64 `json:"revenue"`
}

type SummaryResponse struct {
	From              *time.Time  `json:"from,omitempty"`
	To                *time.Time  `json:"to,omitempty"`
	Revenue           float64     `json:"revenue"`
	RevenueFormatted  string      `json:"revenue_formatted"`
	PaymentCount      int64       `json:"payment_count"`
	ActiveEnrollments int64       `json:"active_enrollments"`
	ClassCount        int64       `json:"class_count"`
	AverageFillRate   float64     `json:"average_fill_rate"`
	Classes           []ClassFill `json:"classes"`
}
