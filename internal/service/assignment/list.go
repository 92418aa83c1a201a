package assignment

import (
	"context"
	"fmt"
	"net/url"

	"gradescope_proxy/internal/model"
	"gradescope_proxy/internal/upstream"
)

// List читает таблицу заданий со страницы курса. Для преподавателя
// этой таблицы нет, тогда данные берутся из props страницы заданий.
func (s *serv) List(ctx context.Context, sess *upstream.Session, courseID string) ([]model.Assignment, error) {
	coursePath := fmt.Sprintf("/courses/%s", url.PathEscape(courseID))

	res, err := sess.Get(ctx, coursePath, nil)
	if err != nil {
		return nil, err
	}
	assignments, found, err := parseStudentAssignments(res.Body)
	if err != nil || found {
		return assignments, err
	}

	res, err = sess.Get(ctx, coursePath+"/assignments", nil)
	if err != nil {
		return nil, err
	}
	return parseInstructorAssignments(res.Body)
}
