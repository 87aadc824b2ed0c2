package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"forensic-audio/history"
	"forensic-audio/presets"
	"forensic-audio/processing"
)

// ProcessPost accepts a multipart upload and returns the processed audio as
// a WAV body. Unknown presets are a client error; everything else that goes
// wrong during processing is a server error with a JSON body.
func ProcessPost(c echo.Context) error {

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "missing file field"})
	}

	presetKey := c.FormValue("preset")
	if presetKey == "" {
		presetKey = "whisper"
	}

	overrides, err := parseOverrides(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	src, err := fileHeader.Open()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "could not open upload"})
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "could not read upload"})
	}

	result, err := proc.Handle(c.Request().Context(), data, fileHeader.Filename, presetKey, overrides)
	if err != nil {
		record := history.Record{Preset: presetKey, Filename: fileHeader.Filename, Status: "failed", Error: err.Error()}
		status := http.StatusInternalServerError
		var perr *processing.Error
		if errors.As(err, &perr) {
			record.ErrorKind = string(perr.Kind)
			if perr.Kind == processing.KindUnknownPreset {
				status = http.StatusBadRequest
			}
		}
		history.Append(record)
		log.Errorf("processing failed: %v", err)
		return c.JSON(status, map[string]string{"error": err.Error()})
	}

	history.Append(history.Record{
		Preset:        result.PresetKey,
		Filename:      fileHeader.Filename,
		Status:        "completed",
		InputDuration: result.InputDuration,
		OutputSize:    result.OutputSize,
		ProcessingMS:  result.ProcessingTime.Milliseconds(),
	})

	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename="processed_%s.wav"`, fileHeader.Filename))
	return c.Blob(http.StatusOK, "audio/wav", result.Audio)
}

// optional per-field overrides arrive as extra form fields
var overrideFields = []string{"highpass", "lowpass", "noise_reduction", "dynamic_boost", "voice_emphasis"}

func parseOverrides(c echo.Context) (*presets.Overrides, error) {
	ov := &presets.Overrides{}
	any := false
	for _, field := range overrideFields {
		value := c.FormValue(field)
		if value == "" {
			continue
		}
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid %s value %q", field, value)
		}
		any = true
		switch field {
		case "highpass":
			ov.HighpassHz = &f
		case "lowpass":
			ov.LowpassHz = &f
		case "noise_reduction":
			ov.NoiseReduction = &f
		case "dynamic_boost":
			ov.DynamicBoost = &f
		case "voice_emphasis":
			ov.VoiceEmphasisDb = &f
		}
	}
	if !any {
		return nil, nil
	}
	return ov, nil
}
