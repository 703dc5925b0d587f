package domain

// Venue is a static bookable resource. Created at seed time, rarely mutated,
// never deleted while bookings reference it.
type Venue struct {
	ID          int64  `json:"id"`
	Name        string `json:"name" validate:"required"`
	Description string `json:"description,omitempty" gorm:"type:text"`
	Capacity    int    `json:"capacity"`
	Location    string `json:"location,omitempty"`
	Amenities   string `json:"amenities,omitempty" gorm:"type:text"`
}
