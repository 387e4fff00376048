// Package web serves the catalog pages and the interactive dependency graph.
package web

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"

	"github.com/moneysupermarket/component-catalog/internal/catalog"
	"github.com/moneysupermarket/component-catalog/internal/config"
	"github.com/moneysupermarket/component-catalog/internal/depgraph"
	"github.com/moneysupermarket/component-catalog/internal/markdown"
)

// CatalogSource is the data the pages are built from. *catalog.Client
// satisfies it.
type CatalogSource interface {
	ListComponents(ctx context.Context) ([]catalog.Component, error)
	GetComponent(ctx context.Context, id string) (*catalog.Component, error)
	ComponentDependencies(ctx context.Context) (*catalog.Dependencies, error)
	SubComponentDependencies(ctx context.Context) (*catalog.Dependencies, error)
}

// Options configures the web app.
type Options struct {
	Selection depgraph.SelectionMode
	Message   config.MessageConfig
	// ServiceURL is the catalog service address as seen by browsers.
	ServiceURL string
	// SessionLifetime bounds how long graph preferences are remembered.
	SessionLifetime time.Duration
	Logger          *slog.Logger
}

// Web holds the page handlers.
type Web struct {
	source    CatalogSource
	opts      Options
	logger    *slog.Logger
	sessions  *scs.SessionManager
	templates *template.Template
	banner    template.HTML
}

// New creates the web app. The site banner is rendered once here.
func New(source CatalogSource, opts Options) (*Web, error) {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.SessionLifetime <= 0 {
		opts.SessionLifetime = 24 * time.Hour
	}

	tmpl, err := parseTemplates()
	if err != nil {
		return nil, fmt.Errorf("parsing templates: %w", err)
	}
	banner, err := markdown.Render(opts.Message.Markdown)
	if err != nil {
		return nil, fmt.Errorf("rendering site banner: %w", err)
	}

	sessions := scs.New()
	sessions.Lifetime = opts.SessionLifetime
	sessions.Cookie.Name = "catalog_session"
	sessions.Cookie.SameSite = http.SameSiteLaxMode

	return &Web{
		source:    source,
		opts:      opts,
		logger:    opts.Logger,
		sessions:  sessions,
		templates: tmpl,
		banner:    banner,
	}, nil
}

// RegisterRoutes mounts all page routes onto the given router.
func (wb *Web) RegisterRoutes(r chi.Router) {
	r.Get("/", redirectTo("/all-components"))
	r.Get("/components", redirectTo("/all-components"))
	r.Get("/all-components", wb.handleAllComponents)
	r.Get("/components/{id}", wb.handleComponent)
	r.With(wb.sessions.LoadAndSave).Get("/all-components/dependencies", wb.handleDependencies)

	// Outside the session middleware: its buffered writer cannot be hijacked.
	r.Get("/ws/dependencies", wb.handleLive)
}

func redirectTo(path string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, path, http.StatusFound)
	}
}

// pageData is handed to every page template.
type pageData struct {
	Title         string
	Banner        template.HTML
	BannerVariant config.MessageVariant
	ServiceURL    string
	Content       any
}

type errorPage struct {
	Status  int
	Message string
}

func (wb *Web) render(w http.ResponseWriter, r *http.Request, status int, name, title string, content any) {
	data := pageData{
		Title:         title,
		Banner:        wb.banner,
		BannerVariant: wb.opts.Message.Variant,
		ServiceURL:    wb.opts.ServiceURL,
		Content:       content,
	}

	var buf bytes.Buffer
	if err := wb.templates.ExecuteTemplate(&buf, name, data); err != nil {
		wb.logger.ErrorContext(r.Context(), "rendering page",
			"template", name, "error", err, "request_id", middleware.GetReqID(r.Context()))
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	w.Write(buf.Bytes())
}

func (wb *Web) renderError(w http.ResponseWriter, r *http.Request, status int, message string) {
	title := fmt.Sprintf("Component Catalog - %d %s", status, http.StatusText(status))
	wb.render(w, r, status, "error", title, errorPage{Status: status, Message: message})
}

// fetchFailed turns a catalog service error into a 404 or a 502 page.
func (wb *Web) fetchFailed(w http.ResponseWriter, r *http.Request, what string, err error) {
	if errors.Is(err, catalog.ErrNotFound) {
		wb.renderError(w, r, http.StatusNotFound, what+" not found")
		return
	}
	wb.logger.ErrorContext(r.Context(), "fetching from catalog service",
		"what", what, "error", err, "request_id", middleware.GetReqID(r.Context()))
	wb.renderError(w, r, http.StatusBadGateway, "The catalog service could not be reached. Try again shortly.")
}

// LoadGraphData fetches everything the dependency graph view needs, in
// parallel.
func LoadGraphData(ctx context.Context, source CatalogSource) (depgraph.Data, error) {
	var (
		data     depgraph.Data
		coarse   *catalog.Dependencies
		detailed *catalog.Dependencies
	)
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		data.Components, err = source.ListComponents(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		coarse, err = source.ComponentDependencies(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		detailed, err = source.SubComponentDependencies(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return depgraph.Data{}, err
	}

	if coarse != nil {
		data.ComponentDependencies = *coarse
	}
	if detailed != nil {
		data.SubComponentDependencies = *detailed
	}
	return data, nil
}
