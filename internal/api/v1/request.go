package v1

type CreateBookingRequest struct {
	ResourceCode    string   `json:"resource_code"`
	StartTime       string   `json:"start_time"`
	EndTime         string   `json:"end_time"`
	NumParticipants *int     `json:"num_participants,omitempty"`
	Amenities       []string `json:"amenities,omitempty"`
}
