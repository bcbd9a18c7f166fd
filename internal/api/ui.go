package api

import (
	"embed"
	"html/template"
	"net/http"

	logx "github.com/vitalstats/natalityd/pkg/logger"
)

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

type indexData struct {
	Title    string
	Subtitle string
}

// handleIndex serves the embedded single-page dashboard.
func (s *Server) handleIndex(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	err := templates.ExecuteTemplate(w, "index.html", indexData{
		Title:    "Provisional Natality Data Dashboard",
		Subtitle: "Birth Analysis by State and Gender",
	})
	if err != nil {
		logx.Error().Err(err).Msg("failed to render dashboard page")
	}
}
