package booking

// Booking is a client-held view of a booking row. Status is always
// canonical; wire translation happens at the API boundary.
type Booking struct {
	ID           string `json:"id"`
	ServiceID    string `json:"service_id"`
	ClientID     string `json:"client_id"`
	ProviderID   string `json:"provider_id"`
	ServiceTitle string `json:"service_title,omitempty"`
	BookingDate  string `json:"booking_date"`
	BookingTime  string `json:"booking_time"`
	Notes        string `json:"notes,omitempty"`
	Status       Status `json:"status"`
}

// wireBooking is the row as the server sends it, before normalization.
type wireBooking struct {
	ID           string `json:"id"`
	ServiceID    string `json:"service_id"`
	ClientID     string `json:"client_id"`
	ProviderID   string `json:"provider_id"`
	ServiceTitle string `json:"service_title,omitempty"`
	BookingDate  string `json:"booking_date"`
	BookingTime  string `json:"booking_time"`
	Notes        string `json:"notes,omitempty"`
	Status       string `json:"status"`
}

func (w wireBooking) toBooking() Booking {
	return Booking{
		ID:           w.ID,
		ServiceID:    w.ServiceID,
		ClientID:     w.ClientID,
		ProviderID:   w.ProviderID,
		ServiceTitle: w.ServiceTitle,
		BookingDate:  w.BookingDate,
		BookingTime:  w.BookingTime,
		Notes:        w.Notes,
		Status:       FromWire(w.Status),
	}
}
