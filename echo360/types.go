package echo360

import "github.com/echodl/echodl/media"

// Enrollment is one entry of the enrollment list.
type Enrollment struct {
	UserSections []Section `json:"userSections"`
}

// Section is an enrolled course offering.
type Section struct {
	CourseCode string `json:"courseCode" jsonschema:"description=Unit code, e.g. CITS1001"`
	CourseName string `json:"courseName" jsonschema:"description=Unit name as shown on the platform"`
	SectionID  string `json:"sectionId" jsonschema:"description=Identifier of the section on the platform"`
}

// LessonRef names a lesson.
type LessonRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// SyllabusEntry is one row of a course syllabus. Rows grouping several
// lessons carry GroupInfo instead of a lesson.
type SyllabusEntry struct {
	Lesson *struct {
		Lesson LessonRef `json:"lesson"`
	} `json:"lesson"`
	GroupInfo *struct {
		Name string `json:"name"`
	} `json:"groupInfo"`
}

// Grouped reports whether the row is a lesson group.
func (e SyllabusEntry) Grouped() bool {
	return e.GroupInfo != nil
}

// Lesson is the player data of a lesson.
type Lesson struct {
	Lesson      LessonRef `json:"lesson"`
	SectionInfo struct {
		Course struct {
			CourseCode string `json:"courseCode"`
			CourseName string `json:"courseName"`
		} `json:"course"`
	} `json:"sectionInfo"`
	// Video is nil for lessons without a recording.
	Video *Video `json:"video"`
}

// Video describes the recording of a lesson.
type Video struct {
	MediaID        string                `json:"mediaId"`
	PlayableMedias []media.PlayableMedia `json:"playableMedias"`
}
