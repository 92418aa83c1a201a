package course

import (
	"context"
	"fmt"
	"net/url"

	"gradescope_proxy/internal/model"
	"gradescope_proxy/internal/upstream"
)

// Members возвращает список участников курса. Доступно только преподавателю.
func (s *serv) Members(ctx context.Context, sess *upstream.Session, courseID string) ([]model.Member, error) {
	res, err := sess.Get(ctx, fmt.Sprintf("/courses/%s/memberships", url.PathEscape(courseID)), nil)
	if err != nil {
		return nil, err
	}
	return parseMembers(res.Body, courseID)
}
