package api

import (
	"context"
	"net/url"

	"github.com/mamasalanang-gerald/Servify-sub000/internal/booking"
	"github.com/mamasalanang-gerald/Servify-sub000/internal/gateway"
)

// CreateBookingRequest is the payload for booking a service.
type CreateBookingRequest struct {
	ServiceID   string `json:"service_id"`
	BookingDate string `json:"booking_date"`
	BookingTime string `json:"booking_time"`
	Notes       string `json:"notes,omitempty"`
}

// bookingRow mirrors the server's booking shape before status
// normalization.
type bookingRow struct {
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

func (r bookingRow) toBooking() booking.Booking {
	return booking.Booking{
		ID:           r.ID,
		ServiceID:    r.ServiceID,
		ClientID:     r.ClientID,
		ProviderID:   r.ProviderID,
		ServiceTitle: r.ServiceTitle,
		BookingDate:  r.BookingDate,
		BookingTime:  r.BookingTime,
		Notes:        r.Notes,
		Status:       booking.FromWire(r.Status),
	}
}

// CreateBooking books a service for the authenticated client.
func (c *Client) CreateBooking(ctx context.Context, req CreateBookingRequest) (booking.Booking, error) {
	resp, err := c.gw.Post(ctx, "/bookings/createBooking", req)
	if err != nil {
		return booking.Booking{}, err
	}
	var row bookingRow
	if err := gateway.DecodeResponse(resp, &row); err != nil {
		return booking.Booking{}, err
	}
	return row.toBooking(), nil
}

// DeleteBooking removes a booking outright. Status changes go through
// the booking tracker instead.
func (c *Client) DeleteBooking(ctx context.Context, id string) error {
	resp, err := c.gw.Delete(ctx, "/bookings/"+url.PathEscape(id))
	if err != nil {
		return err
	}
	return gateway.DecodeResponse(resp, nil)
}

// ClientBookings lists the bookings made by a client.
func (c *Client) ClientBookings(ctx context.Context, clientID string) ([]booking.Booking, error) {
	return c.listBookings(ctx, "/bookings/client/"+url.PathEscape(clientID))
}

// ProviderBookings lists the bookings received by a provider.
func (c *Client) ProviderBookings(ctx context.Context, providerID string) ([]booking.Booking, error) {
	return c.listBookings(ctx, "/bookings/provider/"+url.PathEscape(providerID))
}

func (c *Client) listBookings(ctx context.Context, path string) ([]booking.Booking, error) {
	resp, err := c.gw.Get(ctx, path)
	if err != nil {
		return nil, err
	}
	var rows []bookingRow
	if err := gateway.DecodeResponse(resp, &rows); err != nil {
		return nil, err
	}
	out := make([]booking.Booking, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toBooking())
	}
	return out, nil
}
