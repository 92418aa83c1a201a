package extension

import "time"

type ExtensionResponse struct {
	Name        string     `json:"name"`
	ReleaseDate *time.Time `json:"release_date"`
	DueDate     *time.Time `json:"due_date"`
	LateDueDate *time.Time `json:"late_due_date"`
	DeletePath  string     `json:"delete_path"`
}
