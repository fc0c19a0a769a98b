package api

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jared-cannon/app-registry/internal/models"
	"github.com/jared-cannon/app-registry/internal/services"
)

// AppsHandler serves the registration forms, the listing page and the apps API
type AppsHandler struct {
	store   *services.RecordStore
	persist *services.Pathway
	quick   *services.Pathway
	pages   *Pages
}

// NewAppsHandler creates a new apps handler
func NewAppsHandler(store *services.RecordStore, persist, quick *services.Pathway, pages *Pages) *AppsHandler {
	return &AppsHandler{
		store:   store,
		persist: persist,
		quick:   quick,
		pages:   pages,
	}
}

// collectAppForm reads the registration form. Selections are used as-is.
func collectAppForm(c *fiber.Ctx) models.AppRecord {
	return trimAppRecord(models.AppRecord{
		Name:    c.FormValue("name"),
		Company: c.FormValue("company"),
		Website: c.FormValue("website"),
		Free:    c.FormValue("free"),
		Domain:  c.FormValue("domain"),
		Summary: c.FormValue("summary"),
		Logo:    c.FormValue("logo"),
		Media:   c.FormValue("media"),
	})
}

func trimAppRecord(r models.AppRecord) models.AppRecord {
	r.Name = strings.TrimSpace(r.Name)
	r.Company = strings.TrimSpace(r.Company)
	r.Website = strings.TrimSpace(r.Website)
	r.Summary = strings.TrimSpace(r.Summary)
	r.Logo = strings.TrimSpace(r.Logo)
	r.Media = strings.TrimSpace(r.Media)
	return r
}

// collectQuickForm reads the quick form inputs by their element ids
func collectQuickForm(c *fiber.Ctx) models.AppRecord {
	return models.AppRecord{
		Name:    strings.TrimSpace(c.FormValue("appName")),
		Company: strings.TrimSpace(c.FormValue("companyName")),
		Website: strings.TrimSpace(c.FormValue("website")),
		Free:    c.FormValue("free"),
		Domain:  c.FormValue("field"),
		Summary: strings.TrimSpace(c.FormValue("desc")),
	}
}

// ListPage handles GET /apps
func (h *AppsHandler) ListPage(c *fiber.Ctx) error {
	open := services.ParseDisclosure(c.Query("open"))
	return h.pages.Render(c, fiber.StatusOK, "listing", PageData{
		Title:       TitleListing,
		Table:       services.ListingTable(h.store, open),
		ToggleTitle: services.ToggleTitle,
	})
}

// NewPage handles GET /apps/new
func (h *AppsHandler) NewPage(c *fiber.Ctx) error {
	return h.pages.Render(c, fiber.StatusOK, "form", PageData{
		Title:   TitleForm,
		Domains: models.Domains,
	})
}

// Submit handles POST /apps
func (h *AppsHandler) Submit(c *fiber.Ctx) error {
	candidate := collectAppForm(c)

	outcome, err := h.persist.Submit(candidate)
	if err != nil {
		return HandlePageError(c, fiber.StatusInternalServerError, err, "Failed to save application")
	}

	if !outcome.Accepted {
		return h.pages.Render(c, fiber.StatusUnprocessableEntity, "form", PageData{
			Title:   TitleForm,
			Domains: models.Domains,
			Values:  candidate,
			Errors:  outcome.FieldErrors,
		})
	}

	return c.Redirect(outcome.Redirect, fiber.StatusSeeOther)
}

// QuickPage handles GET /apps/quick
func (h *AppsHandler) QuickPage(c *fiber.Ctx) error {
	return h.pages.Render(c, fiber.StatusOK, "quick", PageData{
		Title:   TitleQuick,
		Domains: models.Domains,
	})
}

// QuickSubmit handles POST /apps/quick
func (h *AppsHandler) QuickSubmit(c *fiber.Ctx) error {
	candidate := collectQuickForm(c)

	outcome, err := h.quick.Submit(candidate)
	if err != nil {
		return HandlePageError(c, fiber.StatusInternalServerError, err, "Failed to submit application")
	}

	data := PageData{
		Title:    TitleQuick,
		Domains:  models.Domains,
		Values:   candidate,
		Status:   outcome.Status,
		Accepted: outcome.Accepted,
	}
	if !outcome.Accepted {
		return h.pages.Render(c, fiber.StatusUnprocessableEntity, "quick", data)
	}

	data.Refresh = refreshContent(outcome.RedirectDelay, outcome.Redirect)
	return h.pages.Render(c, fiber.StatusOK, "quick", data)
}

// ListApps handles GET /api/v1/apps
func (h *AppsHandler) ListApps(c *fiber.Ctx) error {
	return c.JSON(h.store.LoadAll())
}

// GetTable handles GET /api/v1/apps/table
func (h *AppsHandler) GetTable(c *fiber.Ctx) error {
	open := services.ParseDisclosure(c.Query("open"))
	return c.JSON(services.ListingTable(h.store, open))
}

// CreateApp handles POST /api/v1/apps
func (h *AppsHandler) CreateApp(c *fiber.Ctx) error {
	var req models.AppRecord
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	candidate := trimAppRecord(req)

	outcome, err := h.persist.Submit(candidate)
	if err != nil {
		return HandleError(c, fiber.StatusInternalServerError, err, "Failed to save application")
	}
	if !outcome.Accepted {
		return HandleError(c, fiber.StatusUnprocessableEntity,
			models.NewValidationError("Invalid application", outcome.FieldErrors), "Invalid application")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"app":      candidate,
		"redirect": outcome.Redirect,
	})
}

// ValidateApp handles POST /api/v1/apps/validate
func (h *AppsHandler) ValidateApp(c *fiber.Ctx) error {
	var req models.AppRecord
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	errs := services.ValidateApp(trimAppRecord(req))
	return c.JSON(fiber.Map{
		"valid":  len(errs) == 0,
		"errors": errs,
	})
}

// RegisterRoutes registers the HTML pages
func (h *AppsHandler) RegisterRoutes(app fiber.Router) {
	app.Get("/", func(c *fiber.Ctx) error {
		return c.Redirect("/apps", fiber.StatusFound)
	})

	apps := app.Group("/apps")
	apps.Get("/", h.ListPage)
	apps.Post("/", h.Submit)
	apps.Get("/new", h.NewPage)
	apps.Get("/quick", h.QuickPage)
	apps.Post("/quick", h.QuickSubmit)
}

// RegisterAPIRoutes registers the JSON API under api
func (h *AppsHandler) RegisterAPIRoutes(api fiber.Router) {
	apps := api.Group("/apps")
	apps.Get("/", h.ListApps)
	apps.Post("/", h.CreateApp)
	apps.Get("/table", h.GetTable)
	apps.Post("/validate", h.ValidateApp)
}
