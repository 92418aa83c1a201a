package course

import (
	"encoding/json"
	"strconv"
	"strings"

	"gradescope_proxy/internal/apperr"
	"gradescope_proxy/internal/model"
	"gradescope_proxy/pkg/scrape"

	"github.com/PuerkitoBio/goquery"
)

const (
	instructorHeading = "Instructor Courses"
	studentHeading    = "Student Courses"
)

// Роли в data-cm на странице участников
var memberRoles = map[int]string{
	0: "Student",
	1: "Instructor",
	2: "TA",
	3: "Reader",
}

func parseCourses(html []byte) (*model.Courses, error) {
	doc, err := scrape.Document(html)
	if err != nil {
		return nil, err
	}

	courses := &model.Courses{
		Instructor: map[string]model.Course{},
		Student:    map[string]model.Course{},
	}

	headings := doc.Find("h1.pageHeading")
	found := false
	headings.Each(func(_ int, h *goquery.Selection) {
		var target map[string]model.Course
		switch strings.TrimSpace(h.Text()) {
		case instructorHeading:
			target = courses.Instructor
		case studentHeading:
			target = courses.Student
		default:
			return
		}
		found = true
		collectCourses(h.NextAllFiltered("div.courseList").First(), target)
	})

	// Аккаунт с одной ролью: заголовка по ролям нет, только один список
	if !found {
		list := doc.Find("div.courseList").First()
		if list.Length() == 0 {
			return nil, apperr.New(apperr.KindParse, "course list not found on account page")
		}
		target := courses.Student
		if doc.Find(".js-createNewCourse").Length() > 0 {
			target = courses.Instructor
		}
		collectCourses(list, target)
	}

	return courses, nil
}

func collectCourses(list *goquery.Selection, target map[string]model.Course) {
	list.Find(".courseList--term").Each(func(_ int, term *goquery.Selection) {
		semester, year := splitTerm(strings.TrimSpace(term.Text()))
		container := term.NextAllFiltered(".courseList--coursesForTerm").First()

		container.Find("a.courseBox").Each(func(_ int, box *goquery.Selection) {
			href, _ := box.Attr("href")
			id := lastPathSegment(href)
			if id == "" {
				return
			}
			course := model.Course{
				ID:             id,
				Name:           strings.TrimSpace(box.Find(".courseBox--shortname").Text()),
				FullName:       strings.TrimSpace(box.Find(".courseBox--name").Text()),
				Semester:       semester,
				Year:           year,
				NumAssignments: strings.TrimSpace(box.Find(".courseBox--assignments").Text()),
			}
			if n, ok := leadingInt(box.Find(".courseBox--gradesPublished").Text()); ok {
				course.NumGradesPublished = &n
			}
			target[id] = course
		})
	})
}

// splitTerm разбивает "Spring 2024" на семестр и год
func splitTerm(term string) (string, string) {
	fields := strings.Fields(term)
	if len(fields) < 2 {
		return term, ""
	}
	return strings.Join(fields[:len(fields)-1], " "), fields[len(fields)-1]
}

func lastPathSegment(href string) string {
	href = strings.TrimRight(href, "/")
	if i := strings.LastIndexByte(href, '/'); i >= 0 {
		return href[i+1:]
	}
	return href
}

func leadingInt(s string) (int, bool) {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return 0, false
	}
	n, err := strconv.Atoi(fields[0])
	return n, err == nil
}

type memberData struct {
	ID        json.Number `json:"id"`
	UserID    json.Number `json:"user_id"`
	FullName  string      `json:"full_name"`
	FirstName string      `json:"first_name"`
	LastName  string      `json:"last_name"`
	SID       string      `json:"sid"`
	Email     string      `json:"email"`
	Role      int         `json:"role"`
}

func parseMembers(html []byte, courseID string) ([]model.Member, error) {
	doc, err := scrape.Document(html)
	if err != nil {
		return nil, err
	}

	rows := doc.Find("table.js-rosterTable tbody tr, table.rosterTable tbody tr")
	if rows.Length() == 0 && doc.Find("table.js-rosterTable, table.rosterTable").Length() == 0 {
		return nil, apperr.New(apperr.KindParse, "roster table not found")
	}

	members := make([]model.Member, 0, rows.Length())
	var parseErr error
	rows.EachWithBreak(func(_ int, row *goquery.Selection) bool {
		raw, ok := row.Find("button.rosterCell--editIcon").Attr("data-cm")
		if !ok {
			return true
		}
		var data memberData
		if err := json.Unmarshal([]byte(raw), &data); err != nil {
			parseErr = apperr.Wrap(apperr.KindParse, err, "decode roster entry")
			return false
		}

		userID := data.UserID.String()
		if userID == "" {
			userID = data.ID.String()
		}
		role, ok := memberRoles[data.Role]
		if !ok {
			role = strconv.Itoa(data.Role)
		}
		submissions, _ := leadingInt(row.Find("td.rosterCell--submissions").Text())

		members = append(members, model.Member{
			UserID:         userID,
			FullName:       data.FullName,
			FirstName:      data.FirstName,
			LastName:       data.LastName,
			SID:            data.SID,
			Email:          data.Email,
			Role:           role,
			NumSubmissions: submissions,
			CourseID:       courseID,
		})
		return true
	})
	if parseErr != nil {
		return nil, parseErr
	}

	return members, nil
}
