package web

import (
	"html/template"
	"net/http"
	"slices"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/moneysupermarket/component-catalog/internal/catalog"
	"github.com/moneysupermarket/component-catalog/internal/markdown"
)

func (wb *Web) handleAllComponents(w http.ResponseWriter, r *http.Request) {
	components, err := wb.source.ListComponents(r.Context())
	if err != nil {
		wb.fetchFailed(w, r, "components", err)
		return
	}

	sorted := slices.Clone(components)
	slices.SortStableFunc(sorted, func(a, b catalog.Component) int {
		return strings.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name))
	})
	wb.render(w, r, http.StatusOK, "all-components", "Component Catalog - All Components", sorted)
}

type componentPage struct {
	Component   *catalog.Component
	Description template.HTML
	Notes       template.HTML
}

func (wb *Web) handleComponent(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	component, err := wb.source.GetComponent(r.Context(), id)
	if err != nil {
		wb.fetchFailed(w, r, "component "+id, err)
		return
	}

	page := componentPage{Component: component}
	if page.Description, err = markdown.Render(component.Description); err != nil {
		wb.logger.WarnContext(r.Context(), "rendering description", "component", id, "error", err)
		page.Description = template.HTML(template.HTMLEscapeString(component.Description))
	}
	if page.Notes, err = markdown.Render(component.Notes); err != nil {
		wb.logger.WarnContext(r.Context(), "rendering notes", "component", id, "error", err)
		page.Notes = template.HTML(template.HTMLEscapeString(component.Notes))
	}

	title := "Component Catalog - " + component.Name
	if component.Name == "" {
		title = "Component Catalog - " + component.ID
	}
	wb.render(w, r, http.StatusOK, "component", title, page)
}
