// servify-web is a local web front end over the Servify API. It renders
// the role-gated pages (dashboard, provider, admin) behind the same
// authorization gate the other clients use, with the session shared
// through the file-backed credential store.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"html/template"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mamasalanang-gerald/Servify-sub000/internal/api"
	"github.com/mamasalanang-gerald/Servify-sub000/internal/authz"
	"github.com/mamasalanang-gerald/Servify-sub000/internal/config"
	"github.com/mamasalanang-gerald/Servify-sub000/internal/credstore"
	"github.com/mamasalanang-gerald/Servify-sub000/internal/gateway"
	"github.com/mamasalanang-gerald/Servify-sub000/internal/saved"
	"github.com/mamasalanang-gerald/Servify-sub000/internal/session"
	"github.com/mamasalanang-gerald/Servify-sub000/pkg/logger"
)

var pageTemplate = template.Must(template.New("page").Parse(`<!doctype html>
<html><head><title>{{.Title}} - Servify</title></head>
<body>
<h1>{{.Title}}</h1>
{{if .Session}}<p>Signed in as {{.Session.Email}} ({{.Session.Role}})</p>
<p><a href="/logout">Sign out</a></p>{{end}}
{{if .Error}}<p style="color:red">{{.Error}}</p>{{end}}
{{range .Lines}}<p>{{.}}</p>{{end}}
{{if .ShowLogin}}
<form method="post" action="/login">
  <input name="email" type="email" placeholder="email" required>
  <input name="password" type="password" placeholder="password" required>
  <button type="submit">Sign in</button>
</form>
{{end}}
</body></html>`))

type pageData struct {
	Title     string
	Session   *session.Session
	Error     string
	Lines     []string
	ShowLogin bool
}

type server struct {
	log      *logger.Logger
	session  *session.Accessor
	api      *api.Client
	savedSet *saved.Set
}

func (s *server) render(w http.ResponseWriter, data pageData) {
	data.Session = s.session.GetUser()
	if err := pageTemplate.Execute(w, data); err != nil {
		s.log.WithError(err).Error("render failed")
	}
}

func (s *server) handleLoginPage(w http.ResponseWriter, r *http.Request) {
	if s.session.IsAuthenticated() {
		http.Redirect(w, r, session.HomeRoute(s.session.GetUser().Role), http.StatusSeeOther)
		return
	}
	s.render(w, pageData{Title: "Sign in", ShowLogin: true})
}

func (s *server) handleLoginSubmit(w http.ResponseWriter, r *http.Request) {
	sess, err := s.api.Login(r.Context(), r.FormValue("email"), r.FormValue("password"))
	if err != nil {
		msg := "Login failed."
		if errors.Is(err, gateway.ErrAuthentication) {
			msg = "Invalid email or password."
		}
		s.log.WithError(err).Warn("login failed")
		w.WriteHeader(http.StatusUnauthorized)
		s.render(w, pageData{Title: "Sign in", ShowLogin: true, Error: msg})
		return
	}
	http.Redirect(w, r, session.HomeRoute(sess.Role), http.StatusSeeOther)
}

func (s *server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if err := s.api.Logout(r.Context()); err != nil {
		s.log.WithError(err).Warn("logout failed")
	}
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

func (s *server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	lines := []string{"Your saved services:"}
	if err := s.savedSet.Refresh(r.Context()); err != nil {
		s.log.WithError(err).Warn("saved refresh failed")
		lines = append(lines, "(saved services unavailable)")
	} else if ids := s.savedSet.IDs(); len(ids) == 0 {
		lines = append(lines, "(none)")
	} else {
		lines = append(lines, ids...)
	}
	s.render(w, pageData{Title: "Dashboard", Lines: lines})
}

func (s *server) handleProvider(w http.ResponseWriter, r *http.Request) {
	sess := s.session.GetUser()
	lines := []string{"Incoming bookings:"}
	rows, err := s.api.ProviderBookings(r.Context(), sess.ID)
	if err != nil {
		s.log.WithError(err).Warn("provider bookings failed")
		lines = append(lines, "(bookings unavailable)")
	} else if len(rows) == 0 {
		lines = append(lines, "(none)")
	} else {
		for _, b := range rows {
			lines = append(lines, fmt.Sprintf("%s %s %s [%s]", b.ID, b.BookingDate, b.BookingTime, b.Status))
		}
	}
	s.render(w, pageData{Title: "Provider", Lines: lines})
}

func (s *server) handleAdmin(w http.ResponseWriter, r *http.Request) {
	lines := []string{}
	stats, err := s.api.Admin().Dashboard(r.Context())
	if err != nil {
		s.log.WithError(err).Warn("admin dashboard failed")
		lines = append(lines, "(stats unavailable)")
	} else {
		lines = append(lines,
			fmt.Sprintf("Users: %d", stats.TotalUsers),
			fmt.Sprintf("Providers: %d", stats.TotalProviders),
			fmt.Sprintf("Services: %d (%d pending)", stats.TotalServices, stats.PendingServices),
			fmt.Sprintf("Bookings: %d", stats.TotalBookings),
		)
	}
	s.render(w, pageData{Title: "Admin", Lines: lines})
}

func (s *server) routes(registry *prometheus.Registry) *mux.Router {
	r := mux.NewRouter()

	r.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	r.HandleFunc("/login", s.handleLoginPage).Methods(http.MethodGet)
	r.HandleFunc("/login", s.handleLoginSubmit).Methods(http.MethodPost)
	r.HandleFunc("/logout", s.handleLogout)
	r.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
	})

	dashboard := r.PathPrefix("/dashboard").Subrouter()
	dashboard.Use(authz.RequireRole(session.RoleUser, s.session))
	dashboard.HandleFunc("", s.handleDashboard)

	provider := r.PathPrefix("/provider").Subrouter()
	provider.Use(authz.RequireRole(session.RoleProvider, s.session))
	provider.HandleFunc("", s.handleProvider)

	admin := r.PathPrefix("/admin").Subrouter()
	admin.Use(authz.RequireRole(session.RoleAdmin, s.session))
	admin.HandleFunc("", s.handleAdmin)

	return r
}

func run() error {
	cfgPath := flag.String("config", "", "config file path")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		return err
	}

	log := logger.NewWithConfig(logger.Config{
		Component: "web",
		Level:     cfg.LogLevel,
		JSON:      cfg.LogJSON,
	})

	store, err := credstore.NewFile(cfg.CredentialsPath)
	if err != nil {
		return fmt.Errorf("open credential store: %w", err)
	}
	accessor := session.NewAccessor(store)

	registry := prometheus.NewRegistry()
	gw, err := gateway.New(gateway.Config{
		BaseURL:           cfg.BaseURL,
		HTTPClient:        &http.Client{Timeout: cfg.Timeout},
		Store:             store,
		Logger:            log.WithField("component", "gateway"),
		Metrics:           gateway.NewMetrics(registry),
		RequestsPerSecond: cfg.RequestsPerSecond,
		Burst:             cfg.Burst,
	})
	if err != nil {
		return err
	}

	s := &server{
		log:      log,
		session:  accessor,
		api:      api.New(gw, accessor, log.WithField("component", "api")),
		savedSet: saved.NewSet(gw, accessor),
	}

	srv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           s.routes(registry),
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()
	log.WithField("addr", cfg.ListenAddr).Info("listening")

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func main() {
	if err := run(); err != nil && err != http.ErrServerClosed {
		fmt.Fprintf(os.Stderr, "servify-web: %v\n", err)
		os.Exit(1)
	}
}
