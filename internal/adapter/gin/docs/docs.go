// Package docs serves the OpenAPI document and Swagger UI for the REST API.
package docs

import (
	_ "embed"
	"net/http"
	"strings"

	httpSwagger "github.com/swaggo/http-swagger/v2"
)

// SpecPath is where the OpenAPI document is served.
const SpecPath = "/swagger/users.swagger.json"

//go:embed users.swagger.json
var spec []byte

// Handler serves the OpenAPI document at SpecPath and Swagger UI for every
// other path under /swagger/.
func Handler() http.Handler {
	ui := httpSwagger.Handler(httpSwagger.URL(SpecPath))

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, SpecPath) {
			w.Header().Set("Content-Type", "application/json; charset=utf-8")
			_, _ = w.Write(spec)
			return
		}
		ui.ServeHTTP(w, r)
	})
}
