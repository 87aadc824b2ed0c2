package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"forensic-audio/presets"
)

// HealthGet reports the registered presets and the temp directory. No side
// effects.
func HealthGet(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":  "healthy",
		"presets": presets.Keys(),
		"tempDir": tempDir,
	})
}
