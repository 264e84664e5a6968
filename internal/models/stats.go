package models

// Aggregates served to the admin dashboard.

type DayCount struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

type TableTypeCount struct {
	Type  string `json:"type"`
	Count int    `json:"count"`
}

type ReservationStats struct {
	TotalReservations       int              `json:"totalReservations"`
	ConfirmedCount          int              `json:"confirmedCount"`
	PendingCount            int              `json:"pendingCount"`
	CancelledCount          int              `json:"cancelledCount"`
	CompletedCount          int              `json:"completedCount"`
	TotalGuests             int              `json:"totalGuests"`
	ReservationsByDay       []DayCount       `json:"reservationsByDay"`
	ReservationsByTableType []TableTypeCount `json:"reservationsByTableType"`
	PendingReservations     []Reservation    `json:"pendingReservations"`
}
