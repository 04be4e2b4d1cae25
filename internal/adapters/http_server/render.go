package httpserver

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"

	"github.com/rs/zerolog/log"
)

//go:embed templates/*.html
var templateFS embed.FS

// Pages holds the parsed HTML templates.
type Pages struct{ t *template.Template }

func LoadPages() (*Pages, error) {
	t, err := template.New("").Funcs(template.FuncMap{
		"stars": func(n int) []struct{} { return make([]struct{}, max(n, 0)) },
	}).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}
	return &Pages{t: t}, nil
}

// render executes into a buffer first so a template error never leaves a
// half-written page behind.
func (p *Pages) render(w http.ResponseWriter, name string, status int, data any) {
	var buf bytes.Buffer
	if err := p.t.ExecuteTemplate(&buf, name, data); err != nil {
		log.Error().Err(err).Str("template", name).Msg("render failed")
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		log.Error().Err(err).Str("template", name).Msg("write page failed")
	}
}
