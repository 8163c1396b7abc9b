package api

import (
	"context"
	"net/url"

	"github.com/mamasalanang-gerald/Servify-sub000/internal/booking"
	"github.com/mamasalanang-gerald/Servify-sub000/internal/gateway"
)

// Admin wraps the /admin endpoints. The server enforces the admin role
// on every one of these; an outranked caller gets ErrAuthorization back
// through the gateway.
type Admin struct {
	gw *gateway.Client
}

// DashboardStats is the admin landing-page summary.
type DashboardStats struct {
	TotalUsers       int     `json:"total_users"`
	TotalProviders   int     `json:"total_providers"`
	TotalServices    int     `json:"total_services"`
	TotalBookings    int     `json:"total_bookings"`
	PendingServices  int     `json:"pending_services"`
	PendingApps      int     `json:"pending_applications"`
	CompletedRevenue float64 `json:"completed_revenue"`
}

// AdminUser is a user row as the admin surface reports it.
type AdminUser struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	FullName  string `json:"full_name"`
	UserType  string `json:"user_type"`
	Active    bool   `json:"is_active"`
	Verified  bool   `json:"is_verified"`
	CreatedAt string `json:"created_at"`
}

// AdminService is a service row with moderation state.
type AdminService struct {
	ID         string  `json:"id"`
	ProviderID string  `json:"provider_id"`
	Title      string  `json:"title"`
	Category   string  `json:"category"`
	Price      float64 `json:"price"`
	Active     bool    `json:"is_active"`
	Approved   bool    `json:"is_approved"`
}

// Review is a service review with its moderation flag.
type Review struct {
	ID        string `json:"id"`
	ServiceID string `json:"service_id"`
	ClientID  string `json:"client_id"`
	Rating    int    `json:"rating"`
	Comment   string `json:"comment,omitempty"`
	Hidden    bool   `json:"is_hidden"`
}

// Category is a service category.
type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Icon string `json:"icon,omitempty"`
}

// ProviderApplication is a pending client-to-provider request.
type ProviderApplication struct {
	ID        string `json:"id"`
	UserID    string `json:"user_id"`
	Email     string `json:"email"`
	FullName  string `json:"full_name"`
	Status    string `json:"status"`
	CreatedAt string `json:"created_at"`
}

func (a *Admin) get(ctx context.Context, path string, out any) error {
	resp, err := a.gw.Get(ctx, path)
	if err != nil {
		return err
	}
	return gateway.DecodeResponse(resp, out)
}

func (a *Admin) patch(ctx context.Context, path string, body, out any) error {
	resp, err := a.gw.Patch(ctx, path, body)
	if err != nil {
		return err
	}
	return gateway.DecodeResponse(resp, out)
}

// Dashboard returns the aggregate platform counters.
func (a *Admin) Dashboard(ctx context.Context) (DashboardStats, error) {
	var out DashboardStats
	return out, a.get(ctx, "/admin/dashboard", &out)
}

// Users lists every account.
func (a *Admin) Users(ctx context.Context) ([]AdminUser, error) {
	var out []AdminUser
	return out, a.get(ctx, "/admin/users", &out)
}

// ActivateUser re-enables a deactivated account.
func (a *Admin) ActivateUser(ctx context.Context, id string) error {
	return a.patch(ctx, "/admin/users/"+url.PathEscape(id)+"/activate", nil, nil)
}

// DeactivateUser suspends an account.
func (a *Admin) DeactivateUser(ctx context.Context, id string) error {
	return a.patch(ctx, "/admin/users/"+url.PathEscape(id)+"/deactivate", nil, nil)
}

// VerifyUser marks an account as identity-verified.
func (a *Admin) VerifyUser(ctx context.Context, id string) error {
	return a.patch(ctx, "/admin/users/"+url.PathEscape(id)+"/verify", nil, nil)
}

// Services lists every service, approved or not.
func (a *Admin) Services(ctx context.Context) ([]AdminService, error) {
	var out []AdminService
	return out, a.get(ctx, "/admin/services", &out)
}

// PendingServices lists services awaiting approval.
func (a *Admin) PendingServices(ctx context.Context) ([]AdminService, error) {
	var out []AdminService
	return out, a.get(ctx, "/admin/services/pending", &out)
}

// ApproveService publishes a pending service.
func (a *Admin) ApproveService(ctx context.Context, id string) error {
	return a.patch(ctx, "/admin/services/"+url.PathEscape(id)+"/approve", nil, nil)
}

// RejectService declines a pending service with a reason.
func (a *Admin) RejectService(ctx context.Context, id, reason string) error {
	return a.patch(ctx, "/admin/services/"+url.PathEscape(id)+"/reject",
		map[string]string{"reason": reason}, nil)
}

// ToggleService flips a service's active flag.
func (a *Admin) ToggleService(ctx context.Context, id string) error {
	return a.patch(ctx, "/admin/services/"+url.PathEscape(id)+"/toggle", nil, nil)
}

// Bookings lists every booking on the platform with canonical statuses.
func (a *Admin) Bookings(ctx context.Context) ([]booking.Booking, error) {
	resp, err := a.gw.Get(ctx, "/admin/bookings")
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

// Reviews lists every review, including hidden ones.
func (a *Admin) Reviews(ctx context.Context) ([]Review, error) {
	var out []Review
	return out, a.get(ctx, "/admin/reviews", &out)
}

// ModerateReview hides or unhides a review.
func (a *Admin) ModerateReview(ctx context.Context, id string, hidden bool) error {
	return a.patch(ctx, "/admin/reviews/"+url.PathEscape(id)+"/moderate",
		map[string]bool{"is_hidden": hidden}, nil)
}

// DeleteReview removes a review permanently.
func (a *Admin) DeleteReview(ctx context.Context, id string) error {
	resp, err := a.gw.Delete(ctx, "/admin/reviews/"+url.PathEscape(id))
	if err != nil {
		return err
	}
	return gateway.DecodeResponse(resp, nil)
}

// Categories lists the service categories.
func (a *Admin) Categories(ctx context.Context) ([]Category, error) {
	var out []Category
	return out, a.get(ctx, "/admin/categories", &out)
}

// CreateCategory adds a category.
func (a *Admin) CreateCategory(ctx context.Context, c Category) (Category, error) {
	var out Category
	resp, err := a.gw.Post(ctx, "/admin/categories", c)
	if err != nil {
		return out, err
	}
	return out, gateway.DecodeResponse(resp, &out)
}

// UpdateCategory renames or re-icons a category.
func (a *Admin) UpdateCategory(ctx context.Context, c Category) error {
	resp, err := a.gw.Put(ctx, "/admin/categories/"+url.PathEscape(c.ID), c)
	if err != nil {
		return err
	}
	return gateway.DecodeResponse(resp, nil)
}

// DeleteCategory removes a category.
func (a *Admin) DeleteCategory(ctx context.Context, id string) error {
	resp, err := a.gw.Delete(ctx, "/admin/categories/"+url.PathEscape(id))
	if err != nil {
		return err
	}
	return gateway.DecodeResponse(resp, nil)
}

// Applications lists pending provider applications.
func (a *Admin) Applications(ctx context.Context) ([]ProviderApplication, error) {
	var out []ProviderApplication
	return out, a.get(ctx, "/admin/applications", &out)
}

// ApproveApplication grants provider status to an applicant.
func (a *Admin) ApproveApplication(ctx context.Context, id string) error {
	return a.patch(ctx, "/admin/applications/"+url.PathEscape(id)+"/approve", nil, nil)
}

// RejectApplication declines an application with a reason.
func (a *Admin) RejectApplication(ctx context.Context, id, reason string) error {
	return a.patch(ctx, "/admin/applications/"+url.PathEscape(id)+"/reject",
		map[string]string{"reason": reason}, nil)
}
