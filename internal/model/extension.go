package model

import "time"

type Extension struct {
	UserID      string
	Name        string
	ReleaseDate *time.Time
	DueDate     *time.Time
	LateDueDate *time.Time
	DeletePath  string
}
