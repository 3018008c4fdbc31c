package domain

import "time"

type Task struct {
	ID        string
	UserID    string
	Title     string
	CreatedAt time.Time
}
