package httpapi

import (
	"embed"
	"fmt"
	"io/fs"
	"net/http"

	"github.com/gofiber/template/html/v2"

	"github.com/i474232898/astrodash/internal/forecast"
)

//go:embed templates/*.gohtml
var templatesFS embed.FS

// NewViews returns the template engine for fiber.Config.Views. Templates are
// addressed by file name without the .gohtml extension.
func NewViews() *html.Engine {
	sub, err := fs.Sub(templatesFS, "templates")
	if err != nil {
		panic(err)
	}

	engine := html.NewFileSystem(http.FS(sub), ".gohtml")
	engine.AddFunc("fixed1", func(f float64) string { return fmt.Sprintf("%.1f", f) })
	engine.AddFunc("maxPhase", func() int { return forecast.MaxPhase })
	return engine
}
