package history

import (
	"fmt"
	"time"
)

// Record is one harvested lecture.
type Record struct {
	Course      string    `json:"course"`
	Lesson      string    `json:"lesson"`
	LessonID    string    `json:"lesson_id"`
	Path        string    `json:"path"`
	Plan        string    `json:"plan"`
	HarvestedAt time.Time `json:"harvested_at"`
}

func (r *Record) encode() string {
	return fmt.Sprintf("%s/%s", r.Course, r.LessonID)
}

func (r *Record) String() string {
	return fmt.Sprintf("%s : %s", r.Course, r.Lesson)
}
