package model

import "time"

type Course struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

type CourseEvent struct {
	Type       string    `json:"type"`
	Course     Course    `json:"course"`
	OccurredAt time.Time `json:"occurred_at"`
}
