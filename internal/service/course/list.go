package course

import (
	"context"

	"gradescope_proxy/internal/model"
	"gradescope_proxy/internal/upstream"
)

// List returns the courses of the session owner grouped by role.
func (s *serv) List(ctx context.Context, sess *upstream.Session) (*model.Courses, error) {
	res, err := sess.Get(ctx, "/account", nil)
	if err != nil {
		return nil, err
	}
	return parseCourses(res.Body)
}
