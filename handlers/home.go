package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"forensic-audio/presets"
)

type presetView struct {
	Key         string
	Name        string
	Description string
}

// HomeGet serves the upload page.
func HomeGet(c echo.Context) error {
	var views []presetView
	for _, key := range presets.Keys() {
		p, err := presets.Lookup(key)
		if err != nil {
			continue
		}
		views = append(views, presetView{Key: p.Key, Name: p.Name, Description: p.Description})
	}
	return c.Render(http.StatusOK, "home.html", map[string]interface{}{
		"Presets": views,
	})
}
