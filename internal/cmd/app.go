package cmd

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"github.com/mamasalanang-gerald/Servify-sub000/internal/api"
	"github.com/mamasalanang-gerald/Servify-sub000/internal/config"
	"github.com/mamasalanang-gerald/Servify-sub000/internal/credstore"
	"github.com/mamasalanang-gerald/Servify-sub000/internal/gateway"
	"github.com/mamasalanang-gerald/Servify-sub000/internal/session"
	"github.com/mamasalanang-gerald/Servify-sub000/pkg/logger"
)

// app wires the client stack for one command invocation.
type app struct {
	cfg     *config.Config
	log     *logger.Logger
	session *session.Accessor
	gw      *gateway.Client
	api     *api.Client
}

func defaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".servify", "config.yaml")
}

func newApp() (*app, error) {
	path := cfgFile
	if path == "" {
		path = defaultConfigPath()
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	log := logger.NewWithConfig(logger.Config{
		Component: "cli",
		Level:     cfg.LogLevel,
		JSON:      cfg.LogJSON,
	})

	store, err := credstore.NewFile(cfg.CredentialsPath)
	if err != nil {
		return nil, fmt.Errorf("open credential store: %w", err)
	}

	gw, err := gateway.New(gateway.Config{
		BaseURL:           cfg.BaseURL,
		HTTPClient:        &http.Client{Timeout: cfg.Timeout},
		Store:             store,
		Logger:            log.WithField("component", "gateway"),
		RequestsPerSecond: cfg.RequestsPerSecond,
		Burst:             cfg.Burst,
		OnAuthFailure: func() {
			fmt.Fprintln(os.Stderr, "Session expired. Run `servify login` to sign in again.")
		},
	})
	if err != nil {
		return nil, err
	}

	accessor := session.NewAccessor(store)
	return &app{
		cfg:     cfg,
		log:     log,
		session: accessor,
		gw:      gw,
		api:     api.New(gw, accessor, log.WithField("component", "api")),
	}, nil
}

// requireSession fails fast for commands that need an authenticated user.
func (a *app) requireSession() (*session.Session, error) {
	sess := a.session.GetUser()
	if sess == nil || !a.session.IsAuthenticated() {
		return nil, fmt.Errorf("not logged in; run `servify login` first")
	}
	return sess, nil
}
