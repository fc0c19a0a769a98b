package api

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jared-cannon/app-registry/internal/models"
	"github.com/jared-cannon/app-registry/internal/services"
)

//go:embed templates/*.html
var templateFS embed.FS

// Page titles
const (
	TitleListing = "التطبيقات"
	TitleForm    = "إضافة تطبيق"
	TitleQuick   = "إضافة تطبيق (نموذج سريع)"
)

// PageData is the view model shared by every page template
type PageData struct {
	Title       string
	Refresh     string
	Table       services.TableModel
	ToggleTitle string
	Values      models.AppRecord
	Errors      services.FieldErrors
	Domains     []models.Domain
	Status      string
	Accepted    bool
}

// Pages renders the HTML templates
type Pages struct {
	templates map[string]*template.Template
}

// NewPages parses the embedded templates
func NewPages() (*Pages, error) {
	p := &Pages{templates: make(map[string]*template.Template)}
	for _, name := range []string{"listing", "form", "quick"} {
		tmpl, err := template.ParseFS(templateFS, "templates/layout.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s template: %w", name, err)
		}
		p.templates[name] = tmpl
	}
	return p, nil
}

// MustNewPages is NewPages for callers that cannot recover from a broken build
func MustNewPages() *Pages {
	p, err := NewPages()
	if err != nil {
		panic(err)
	}
	return p
}

// Execute renders the named page into a byte slice
func (p *Pages) Execute(name string, data PageData) ([]byte, error) {
	tmpl, ok := p.templates[name]
	if !ok {
		return nil, fmt.Errorf("unknown page %q", name)
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, name+".html", data); err != nil {
		return nil, fmt.Errorf("failed to render %s: %w", name, err)
	}
	return buf.Bytes(), nil
}

// Render writes the named page as the response
func (p *Pages) Render(c *fiber.Ctx, status int, name string, data PageData) error {
	body, err := p.Execute(name, data)
	if err != nil {
		return HandlePageError(c, fiber.StatusInternalServerError, err, "Failed to render page")
	}
	c.Type("html", "utf-8")
	return c.Status(status).Send(body)
}

// refreshContent builds a meta refresh value such as "2;url=/apps"
func refreshContent(delay time.Duration, target string) string {
	return strconv.FormatFloat(delay.Seconds(), 'f', -1, 64) + ";url=" + target
}
