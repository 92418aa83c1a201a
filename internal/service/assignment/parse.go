package assignment

import (
	"encoding/json"
	"regexp"
	"strconv"
	"strings"

	"gradescope_proxy/internal/apperr"
	"gradescope_proxy/internal/model"
	"gradescope_proxy/pkg/scrape"

	"github.com/PuerkitoBio/goquery"
)

var (
	assignmentIDPattern = regexp.MustCompile(`/assignments/(\d+)`)
	submissionIDPattern = regexp.MustCompile(`/submissions/(\d+)`)
)

// parseStudentAssignments разбирает таблицу студента. found=false,
// если таблицы на странице нет.
func parseStudentAssignments(html []byte) ([]model.Assignment, bool, error) {
	doc, err := scrape.Document(html)
	if err != nil {
		return nil, false, err
	}

	table := doc.Find("table#assignments-student-table")
	if table.Length() == 0 {
		return nil, false, nil
	}

	assignments := make([]model.Assignment, 0)
	table.Find("tbody tr").Each(func(_ int, row *goquery.Selection) {
		header := row.Find("th").First()
		a := model.Assignment{
			Name: strings.TrimSpace(header.Text()),
		}

		if href, ok := header.Find("a").Attr("href"); ok {
			if m := assignmentIDPattern.FindStringSubmatch(href); m != nil {
				a.AssignmentID = m[1]
			}
		}
		if a.AssignmentID == "" {
			a.AssignmentID, _ = header.Find("[data-assignment-id]").Attr("data-assignment-id")
		}

		if score := strings.TrimSpace(row.Find(".submissionStatus--score").Text()); score != "" {
			a.SubmissionsStatus = "Submitted"
			a.Grade, a.MaxGrade = parseScore(score)
		} else {
			a.SubmissionsStatus = strings.TrimSpace(row.Find(".submissionStatus--text").Text())
		}

		if v, ok := row.Find("time.submissionTimeChart--releaseDate").Attr("datetime"); ok {
			a.ReleaseDate = scrape.ParseTime(v)
		}
		dueDates := row.Find("time.submissionTimeChart--dueDate")
		if v, ok := dueDates.Eq(0).Attr("datetime"); ok {
			a.DueDate = scrape.ParseTime(v)
		}
		if v, ok := dueDates.Eq(1).Attr("datetime"); ok {
			a.LateDueDate = scrape.ParseTime(v)
		}

		assignments = append(assignments, a)
	})

	return assignments, true, nil
}

// parseScore разбирает "8.0 / 10.0"
func parseScore(score string) (*float64, *float64) {
	parts := strings.SplitN(score, "/", 2)
	if len(parts) != 2 {
		return nil, nil
	}
	grade, err1 := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	maxGrade, err2 := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err1 != nil || err2 != nil {
		return nil, nil
	}
	return &grade, &maxGrade
}

type assignmentsTableProps struct {
	TableData []struct {
		Type             string `json:"type"`
		URL              string `json:"url"`
		Title            string `json:"title"`
		TotalPoints      any    `json:"total_points"`
		SubmissionWindow struct {
			ReleaseDate string `json:"release_date"`
			DueDate     string `json:"due_date"`
			HardDueDate string `json:"hard_due_date"`
		} `json:"submission_window"`
	} `json:"table_data"`
}

func parseInstructorAssignments(html []byte) ([]model.Assignment, error) {
	raw, err := scrape.Attr(html, `div[data-react-class="AssignmentsTable"]`, "data-react-props")
	if err != nil {
		return nil, apperr.Wrap(apperr.KindParse, err, "assignments table not found")
	}

	var props assignmentsTableProps
	if err := json.Unmarshal([]byte(raw), &props); err != nil {
		return nil, apperr.Wrap(apperr.KindParse, err, "decode assignments table")
	}

	assignments := make([]model.Assignment, 0, len(props.TableData))
	for _, row := range props.TableData {
		// группы заданий пропускаются
		if row.Type != "" && row.Type != "assignment" {
			continue
		}
		id := ""
		if m := assignmentIDPattern.FindStringSubmatch(row.URL); m != nil {
			id = m[1]
		}
		assignments = append(assignments, model.Assignment{
			AssignmentID: id,
			Name:         row.Title,
			ReleaseDate:  scrape.ParseTime(row.SubmissionWindow.ReleaseDate),
			DueDate:      scrape.ParseTime(row.SubmissionWindow.DueDate),
			LateDueDate:  scrape.ParseTime(row.SubmissionWindow.HardDueDate),
			MaxGrade:     points(row.TotalPoints),
		})
	}
	return assignments, nil
}

// total_points приходит то числом, то строкой
func points(v any) *float64 {
	switch p := v.(type) {
	case float64:
		return &p
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil
		}
		return &f
	default:
		return nil
	}
}

// parseReviewGrades читает строки review_grades со ссылкой на сабмишн
func parseReviewGrades(html []byte) ([]model.SubmissionRow, error) {
	doc, err := scrape.Document(html)
	if err != nil {
		return nil, err
	}

	table := doc.Find("table").First()
	if table.Length() == 0 {
		return nil, apperr.New(apperr.KindParse, "review grades table not found")
	}

	rows := make([]model.SubmissionRow, 0)
	table.Find("tbody tr").Each(func(_ int, row *goquery.Selection) {
		cells := row.Find("td")
		link := cells.Eq(0).Find("a")
		href, ok := link.Attr("href")
		if !ok {
			return
		}
		m := submissionIDPattern.FindStringSubmatch(href)
		if m == nil {
			return
		}
		rows = append(rows, model.SubmissionRow{
			SubmissionID: m[1],
			StudentName:  strings.TrimSpace(link.Text()),
			Email:        strings.TrimSpace(cells.Eq(1).Text()),
		})
	})
	return rows, nil
}

type submissionFilesJSON struct {
	TextFiles []struct {
		File struct {
			URL string `json:"url"`
		} `json:"file"`
	} `json:"text_files"`
}

func parseSubmissionFiles(body []byte) ([]string, error) {
	var data submissionFilesJSON
	if err := json.Unmarshal(body, &data); err != nil {
		return nil, apperr.Wrap(apperr.KindParse, err, "decode submission files")
	}
	urls := make([]string, 0, len(data.TextFiles))
	for _, f := range data.TextFiles {
		if f.File.URL != "" {
			urls = append(urls, f.File.URL)
		}
	}
	return urls, nil
}
