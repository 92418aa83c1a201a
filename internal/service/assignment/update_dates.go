package assignment

import (
	"context"
	"net/url"
	"time"

	"gradescope_proxy/internal/apperr"
	"gradescope_proxy/internal/model"
	"gradescope_proxy/internal/upstream"
	"gradescope_proxy/pkg/scrape"
)

// Формат полей *_date_string формы редактирования задания
const formDateLayout = "2006-01-02T15:04"

// UpdateDates меняет даты задания через форму редактирования.
// Без поздней даты поздние сдачи выключаются.
func (s *serv) UpdateDates(ctx context.Context, sess *upstream.Session, courseID, assignmentID string, dates model.AssignmentDates) error {
	if dates.ReleaseDate == nil || dates.DueDate == nil {
		return apperr.New(apperr.KindInvalidRequest, "release_date and due_date are required")
	}
	if err := dates.Validate(); err != nil {
		return err
	}

	path := assignmentPath(courseID, assignmentID)
	page, err := sess.Get(ctx, path+"/edit", nil)
	if err != nil {
		return err
	}
	tok, err := scrape.FormInput(page.Body, path, "authenticity_token")
	if err != nil {
		tok, err = scrape.Input(page.Body, "authenticity_token")
		if err != nil {
			return apperr.Wrap(apperr.KindProtocol, err, "assignment edit form token not found")
		}
	}

	form := url.Values{}
	form.Set("utf8", "✓")
	form.Set("_method", "patch")
	form.Set("authenticity_token", tok)
	form.Set("assignment[release_date_string]", formatDate(dates.ReleaseDate))
	form.Set("assignment[due_date_string]", formatDate(dates.DueDate))
	if dates.LateDueDate != nil {
		form.Set("assignment[allow_late_submissions]", "1")
		form.Set("assignment[hard_due_date_string]", formatDate(dates.LateDueDate))
	} else {
		form.Set("assignment[allow_late_submissions]", "0")
	}

	res, err := sess.PostForm(ctx, path, form)
	if err != nil {
		return err
	}
	// Ошибки валидации upstream рендерит на той же форме
	if banner, ok := scrape.Text(res.Body, ".alert-error, .form--errors"); ok && banner != "" {
		return apperr.New(apperr.KindInvalidRequest, banner)
	}
	return nil
}

func formatDate(t *time.Time) string {
	return t.Format(formDateLayout)
}
