package model

import "time"

// Priority values accepted for a task. Anything else is coerced to medium.
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

func ValidPriority(p string) bool {
	return p == PriorityLow || p == PriorityMedium || p == PriorityHigh
}

type User struct {
	ID       int64  `json:"user_id"`
	Username string `json:"username"`
}

// Task ids go over the wire as strings, the way the web client expects them.
type Task struct {
	ID          int64      `json:"id,string"`
	Text        string     `json:"text"`
	Priority    string     `json:"priority"`
	Completed   bool       `json:"completed"`
	CreatedAt   time.Time  `json:"created_at"`
	CompletedAt *time.Time `json:"completed_at"`
	SortOrder   int        `json:"sort_order"`
}

// TaskPatch описывает частичное обновление. Nil означает, что поле не
// прислали (или прислали непригодное значение и оно было отброшено).
type TaskPatch struct {
	Text      *string
	Priority  *string
	Completed *bool
	SortOrder *int
}

func (p TaskPatch) Empty() bool {
	return p.Text == nil && p.Priority == nil && p.Completed == nil && p.SortOrder == nil
}
