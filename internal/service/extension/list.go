package extension

import (
	"context"
	"encoding/json"
	"strings"

	"gradescope_proxy/internal/apperr"
	"gradescope_proxy/internal/model"
	"gradescope_proxy/internal/upstream"
	"gradescope_proxy/pkg/scrape"

	"github.com/PuerkitoBio/goquery"
)

type dateSetting struct {
	Type  string `json:"type,omitempty"`
	Value string `json:"value"`
}

type extensionProps struct {
	Override struct {
		UserID   json.Number `json:"user_id"`
		Settings struct {
			ReleaseDate *dateSetting `json:"release_date"`
			DueDate     *dateSetting `json:"due_date"`
			HardDueDate *dateSetting `json:"hard_due_date"`
		} `json:"settings"`
	} `json:"override"`
	DeletePath string `json:"deletePath"`
}

// List возвращает продления задания, ключ - ID пользователя.
func (s *serv) List(ctx context.Context, sess *upstream.Session, courseID, assignmentID string) (map[string]model.Extension, error) {
	res, err := sess.Get(ctx, extensionsPath(courseID, assignmentID), nil)
	if err != nil {
		return nil, err
	}
	return parseExtensions(res.Body)
}

func parseExtensions(html []byte) (map[string]model.Extension, error) {
	doc, err := scrape.Document(html)
	if err != nil {
		return nil, err
	}

	table := doc.Find("table.js-overridesTable")
	if table.Length() == 0 {
		return nil, apperr.New(apperr.KindParse, "extensions table not found")
	}

	extensions := make(map[string]model.Extension)
	var parseErr error
	table.Find("tbody tr").EachWithBreak(func(_ int, row *goquery.Selection) bool {
		raw, ok := row.Find(`div[data-react-class="EditExtension"]`).Attr("data-react-props")
		if !ok {
			return true
		}
		var props extensionProps
		if err := json.Unmarshal([]byte(raw), &props); err != nil {
			parseErr = apperr.Wrap(apperr.KindParse, err, "decode extension props")
			return false
		}

		userID := props.Override.UserID.String()
		settings := props.Override.Settings
		extensions[userID] = model.Extension{
			UserID:      userID,
			Name:        strings.TrimSpace(row.Find("td").First().Text()),
			ReleaseDate: settingTime(settings.ReleaseDate),
			DueDate:     settingTime(settings.DueDate),
			LateDueDate: settingTime(settings.HardDueDate),
			DeletePath:  props.DeletePath,
		}
		return true
	})
	if parseErr != nil {
		return nil, parseErr
	}

	return extensions, nil
}
