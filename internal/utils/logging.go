// Package utils holds small logging helpers shared by the pipeline.
package utils

import (
	"context"
	"log/slog"

	"github.com/spboyer/e2esite/internal/models"
)

// RecordToSlog logs the fields extracted from one report at debug level.
func RecordToSlog(source string, rec *models.Record) {
	if !slog.Default().Enabled(context.Background(), slog.LevelDebug) {
		return
	}

	attrs := []any{
		"source", source,
		"status", rec.Status,
		"bytes", rec.SourceBytes,
		"steps", len(rec.Steps),
		"totalDuration", rec.TotalDuration,
	}

	attrs = addIf(attrs, "name", rec.Name)
	attrs = addIf(attrs, "model", rec.Model)
	attrs = addIf(attrs, "userRequest", rec.UserRequest)
	if rec.Details != nil {
		attrs = addIf(attrs, "activityType", rec.Details.ActivityType)
		attrs = addIf(attrs, "ageGroup", rec.Details.AgeGroup)
	}
	attrs = append(attrs, "hasFinalOutput", rec.FinalOutput != "")

	slog.Debug("Report extracted", attrs...)
}

func addIf(attrs []any, name string, v string) []any {
	if v != "" {
		attrs = append(attrs, name, v)
	}

	return attrs
}
