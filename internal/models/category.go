package models

import (
	"time"
)

// Category groups articles; deleting one removes its articles
type Category struct {
	ID        int64     `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	NewsCount int       `json:"news_count" db:"-"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
