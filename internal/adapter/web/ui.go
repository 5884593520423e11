// Package web serves the browser table page for the users API.
package web

import (
	_ "embed"
	"fmt"
	"html"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/valyala/fasttemplate"
)

//go:embed templates/index.html
var indexTemplate string

// Template placeholders in templates/index.html
const (
	TmplTitle   = "title"
	TmplAPIBase = "apiBase"
)

// UI renders the table page once and serves the cached bytes.
type UI struct {
	page []byte
}

// NewUI renders the page with the given title, talking to the API mounted at apiBase.
func NewUI(title, apiBase string) (*UI, error) {
	t, err := fasttemplate.NewTemplate(indexTemplate, "{{", "}}")
	if err != nil {
		return nil, fmt.Errorf("failed to parse index template: %w", err)
	}

	page := t.ExecuteString(map[string]interface{}{
		TmplTitle:   html.EscapeString(title),
		TmplAPIBase: apiBase,
	})

	return &UI{page: []byte(page)}, nil
}

// Index handles GET /
func (u *UI) Index(c *gin.Context) {
	c.Header("Cache-Control", "no-cache")
	c.Data(http.StatusOK, "text/html; charset=utf-8", u.page)
}
