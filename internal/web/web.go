// Package web serves the single-page journaling frontend embedded in the
// binary. The page talks to the JSON API under the configured base path.
package web

import (
	"bytes"
	_ "embed"
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"
)

//go:embed index.html
var indexHTML string

var page = template.Must(template.New("index").Parse(indexHTML))

// Render executes the page template for the given API base path.
func Render(apiBase string) ([]byte, error) {
	var buf bytes.Buffer
	if err := page.Execute(&buf, struct{ APIBase string }{apiBase}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Handler serves the rendered page. The page is rendered once; a template
// failure panics at construction.
func Handler(apiBase string) gin.HandlerFunc {
	body, err := Render(apiBase)
	if err != nil {
		panic(err)
	}
	return func(c *gin.Context) {
		c.Data(http.StatusOK, "text/html; charset=utf-8", body)
	}
}
