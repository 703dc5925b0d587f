package booking

type CreateBookingRequest struct {
	UserName         string `json:"user_name" binding:"required"`
	UserEmail        string `json:"user_email" binding:"required"`
	VenueID          int64  `json:"venue_id" binding:"required"`
	EventDate        string `json:"event_date" binding:"required"` // 2006-01-02
	StartTime        string `json:"start_time" binding:"required"` // 15:04
	EndTime          string `json:"end_time" binding:"required"`
	EventTitle       string `json:"event_title" binding:"required"`
	EventDescription string `json:"event_description"`
}

type BookingStatusResponse struct {
	ReferenceNumber string `json:"reference_number"`
	Status          string `json:"status"`
	EventTitle      string `json:"event_title"`
	EventDate       string `json:"event_date"`
	StartTime       string `json:"start_time"`
	EndTime         string `json:"end_time"`
	AdminResponse   string `json:"admin_response,omitempty"`
}
