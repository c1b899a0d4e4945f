package handlers

import (
	"embed"
	"html/template"
	"log/slog"
	"net/http"
)

//go:embed templates
var templatesFS embed.FS

var indexTmpl = template.Must(template.ParseFS(templatesFS, "templates/index.html"))

// Index renders the landing page with the signup and exercise forms.
func Index(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := indexTmpl.Execute(w, struct{ Title string }{Title: "Exercise Tracker"}); err != nil {
		slog.Error("render index", "error", err)
	}
}
