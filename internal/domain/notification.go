package domain

type Notification struct {
	ID         int32             `json:"id"`
	HotelID    int32             `json:"hotel_id"`
	StaffID    int32             `json:"staff_id"`
	Title      string            `json:"title"`
	Message    string            `json:"message"`
	IsRead     bool              `json:"is_read"`
	Attributes map[string]string `json:"attributes"`
	CreatedOn  string            `json:"created_on"`
}
