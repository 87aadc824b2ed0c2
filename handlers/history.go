package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"forensic-audio/history"
)

// HistoryGet returns the most recent processing outcomes, newest first.
func HistoryGet(c echo.Context) error {
	records, err := history.Recent(50)
	if err != nil {
		log.Errorln(err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "could not load history"})
	}
	return c.JSON(http.StatusOK, records)
}
