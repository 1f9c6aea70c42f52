package entity

import (
	"time"
)

// Interaction is one dispatcher turn: what was heard and what was answered.
// Rows are append-only; id and timestamp are assigned by the store.
type Interaction struct {
	ID        int64     `json:"id"`
	Command   string    `json:"command"`
	Response  string    `json:"response"`
	Timestamp time.Time `json:"timestamp"`
}
