package extension

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"gradescope_proxy/internal/apperr"
	"gradescope_proxy/internal/model"
	"gradescope_proxy/internal/upstream"
	"gradescope_proxy/pkg/scrape"
)

type overrideSettings struct {
	Visible     bool         `json:"visible"`
	ReleaseDate *dateSetting `json:"release_date,omitempty"`
	DueDate     *dateSetting `json:"due_date,omitempty"`
	HardDueDate *dateSetting `json:"hard_due_date,omitempty"`
}

type overridePayload struct {
	Override struct {
		UserID   json.Number      `json:"user_id"`
		Settings overrideSettings `json:"settings"`
	} `json:"override"`
}

// Update задаёт продление студенту. Даты проверяются до запроса к upstream.
func (s *serv) Update(ctx context.Context, sess *upstream.Session, courseID, assignmentID, userID string, dates model.AssignmentDates) error {
	userID = strings.TrimSpace(userID)
	if _, err := json.Number(userID).Int64(); err != nil {
		return apperr.New(apperr.KindInvalidRequest, "user_id must be numeric")
	}
	if dates.ReleaseDate == nil && dates.DueDate == nil && dates.LateDueDate == nil {
		return apperr.New(apperr.KindInvalidRequest, "at least one date is required")
	}
	if err := dates.Validate(); err != nil {
		return err
	}

	var payload overridePayload
	payload.Override.UserID = json.Number(userID)
	payload.Override.Settings = overrideSettings{
		Visible:     true,
		ReleaseDate: absolute(dates.ReleaseDate),
		DueDate:     absolute(dates.DueDate),
		HardDueDate: absolute(dates.LateDueDate),
	}

	_, err := sess.PostJSON(ctx, extensionsPath(courseID, assignmentID), payload)
	return err
}

func absolute(t *time.Time) *dateSetting {
	if t == nil {
		return nil
	}
	return &dateSetting{Type: "absolute", Value: t.Format(time.RFC3339)}
}

func settingTime(d *dateSetting) *time.Time {
	if d == nil {
		return nil
	}
	return scrape.ParseTime(d.Value)
}
