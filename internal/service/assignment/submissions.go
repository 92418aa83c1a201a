package assignment

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"gradescope_proxy/internal/apperr"
	"gradescope_proxy/internal/model"
	"gradescope_proxy/internal/upstream"

	"github.com/sourcegraph/conc/pool"
)

type submissionFiles struct {
	submissionID string
	urls         []string
}

// Submissions возвращает ссылки на файлы всех сабмишнов задания,
// ключ - ID сабмишна. Доступно только преподавателю.
func (s *serv) Submissions(ctx context.Context, sess *upstream.Session, courseID, assignmentID string) (map[string][]string, error) {
	rows, err := s.reviewGrades(ctx, sess, courseID, assignmentID)
	if err != nil {
		return nil, err
	}

	p := pool.NewWithResults[submissionFiles]().
		WithContext(ctx).
		WithMaxGoroutines(s.maxConcurrent).
		WithCancelOnError()
	for _, row := range rows {
		row := row
		p.Go(func(ctx context.Context) (submissionFiles, error) {
			urls, err := s.submissionFiles(ctx, sess, courseID, assignmentID, row.SubmissionID)
			if err != nil {
				return submissionFiles{}, err
			}
			return submissionFiles{submissionID: row.SubmissionID, urls: urls}, nil
		})
	}
	results, err := p.Wait()
	if err != nil {
		return nil, err
	}

	out := make(map[string][]string, len(results))
	for _, r := range results {
		out[r.submissionID] = r.urls
	}
	return out, nil
}

// StudentSubmission returns the file links of one student's submission.
func (s *serv) StudentSubmission(ctx context.Context, sess *upstream.Session, email, courseID, assignmentID string) ([]string, error) {
	rows, err := s.reviewGrades(ctx, sess, courseID, assignmentID)
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		if strings.EqualFold(row.Email, strings.TrimSpace(email)) {
			return s.submissionFiles(ctx, sess, courseID, assignmentID, row.SubmissionID)
		}
	}
	return nil, apperr.New(apperr.KindInvalidRequest, fmt.Sprintf("no submission found for %s", email))
}

func (s *serv) reviewGrades(ctx context.Context, sess *upstream.Session, courseID, assignmentID string) ([]model.SubmissionRow, error) {
	res, err := sess.Get(ctx, assignmentPath(courseID, assignmentID)+"/review_grades", nil)
	if err != nil {
		return nil, err
	}
	return parseReviewGrades(res.Body)
}

func (s *serv) submissionFiles(ctx context.Context, sess *upstream.Session, courseID, assignmentID, submissionID string) ([]string, error) {
	path := fmt.Sprintf("%s/submissions/%s.json", assignmentPath(courseID, assignmentID), url.PathEscape(submissionID))
	query := url.Values{
		"content":     {"react"},
		"only_keys[]": {"text_files", "file_comments"},
	}
	res, err := sess.Get(ctx, path, query)
	if err != nil {
		return nil, err
	}
	return parseSubmissionFiles(res.Body)
}
