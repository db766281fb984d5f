package entity

import (
	"database/sql"
	"time"
)

type Todo struct {
	ID          uint64
	Title       string
	Description sql.NullString
	Completed   bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
