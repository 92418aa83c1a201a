package upload

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"path/filepath"
	"strings"

	"gradescope_proxy/internal/apperr"
	"gradescope_proxy/internal/model"
	"gradescope_proxy/internal/upstream"
	"gradescope_proxy/pkg/scrape"

	"github.com/gabriel-vasile/mimetype"
)

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

// Upload отправляет файлы как сабмишн задания и возвращает ссылку на него.
func (s *serv) Upload(ctx context.Context, sess *upstream.Session, up model.Upload) (string, error) {
	if len(up.Files) == 0 {
		return "", apperr.New(apperr.KindInvalidRequest, "at least one file is required")
	}

	coursePath := fmt.Sprintf("/courses/%s", url.PathEscape(up.CourseID))

	// 1. Токен со страницы курса
	page, err := sess.Get(ctx, coursePath, nil)
	if err != nil {
		return "", err
	}
	tok, err := scrape.Meta(page.Body, "csrf-token")
	if err != nil {
		return "", apperr.Wrap(apperr.KindProtocol, err, "csrf token not found on course page")
	}

	// 2. Multipart тело
	body, contentType, err := buildMultipart(tok, up)
	if err != nil {
		return "", err
	}

	// 3. Отправка
	target := fmt.Sprintf("%s/assignments/%s/submissions", coursePath, url.PathEscape(up.AssignmentID))
	res, err := sess.Do(ctx, http.MethodPost, target, nil, contentType, body)
	if err != nil {
		return "", err
	}
	if res.StatusCode >= http.StatusInternalServerError {
		return "", res.OK()
	}

	link := res.URL.String()
	if res.StatusCode >= http.StatusBadRequest || !strings.Contains(res.URL.Path, "submissions") {
		log.Printf("[upload] course %s assignment %s: rejected, landed on %s (%d)", up.CourseID, up.AssignmentID, link, res.StatusCode)
		return "", apperr.New(apperr.KindUploadRejected, "upload was not accepted")
	}
	return link, nil
}

func buildMultipart(tok string, up model.Upload) (*bytes.Buffer, string, error) {
	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)

	fields := [][2]string{
		{"utf8", "✓"},
		{"authenticity_token", tok},
		{"submission[method]", "upload"},
		{"submission[leaderboard_name]", up.LeaderboardName},
	}
	for _, f := range fields {
		if err := w.WriteField(f[0], f[1]); err != nil {
			return nil, "", fmt.Errorf("write field %s: %w", f[0], err)
		}
	}

	for _, file := range up.Files {
		name := filepath.Base(strings.TrimSpace(file.Name))
		if name == "." || name == "/" || name == "" {
			return nil, "", apperr.New(apperr.KindInvalidRequest, "file name is required")
		}

		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="submission[files][]"; filename="%s"`, quoteEscaper.Replace(name)))
		h.Set("Content-Type", mimetype.Detect(file.Content).String())
		part, err := w.CreatePart(h)
		if err != nil {
			return nil, "", fmt.Errorf("create part %s: %w", name, err)
		}
		if _, err := part.Write(file.Content); err != nil {
			return nil, "", fmt.Errorf("write part %s: %w", name, err)
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("close multipart: %w", err)
	}
	return buf, w.FormDataContentType(), nil
}
