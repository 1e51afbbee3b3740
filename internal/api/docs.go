package api

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/swaggo/swag/v2"

	// registers the OpenAPI document
	_ "cicd-demo/statusboard/internal/docs"
)

const scalarHTML = `<!doctype html>
<html>
  <head>
    <title>AWS CI/CD Pipeline API Reference</title>
    <meta charset="utf-8" />
    <meta name="viewport" content="width=device-width, initial-scale=1" />
  </head>
  <body>
    <script id="api-reference" type="application/json">
    %s
    </script>
    <script src="https://cdn.jsdelivr.net/npm/@scalar/api-reference"></script>
  </body>
</html>`

// DocsRouter serves the interactive API reference and the raw OpenAPI document.
func DocsRouter() http.Handler {
	r := chi.NewRouter()
	r.Get("/", ServeScalar)
	r.Get("/openapi.json", ServeOpenAPI)
	return r
}

// ServeOpenAPI writes the registered OpenAPI document.
func ServeOpenAPI(w http.ResponseWriter, _ *http.Request) {
	doc, err := swag.ReadDoc()
	if err != nil {
		http.Error(w, "Failed to read OpenAPI specification", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(doc))
}

// ServeScalar serves the Scalar API reference page
func ServeScalar(w http.ResponseWriter, _ *http.Request) {
	doc, err := swag.ReadDoc()
	if err != nil {
		http.Error(w, "Failed to read OpenAPI specification", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if _, err := fmt.Fprintf(w, scalarHTML, doc); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
