package domain

// Event topics published by the ingest pipeline. The pipeline only ever
// produces events; it never subscribes to anything.
const (
	// TopicCourseIngested fires once per successfully assembled course.
	TopicCourseIngested = "course.ingested"

	// TopicIngestCompleted fires once per ingest invocation with the
	// aggregate outcome, including partial failures.
	TopicIngestCompleted = "ingest.completed"
)

// CourseIngestedEvent is the payload for TopicCourseIngested.
type CourseIngestedEvent struct {
	CourseID  string   `json:"course_id"`
	Name      string   `json:"name"`
	SourceURL string   `json:"source_url"`
	Warnings  []string `json:"warnings,omitempty"`
}

// IngestCompletedEvent is the payload for TopicIngestCompleted.
type IngestCompletedEvent struct {
	InstitutionID string `json:"institution_id"`
	DepartmentID  string `json:"department_id"`
	AcademicYear  int    `json:"academic_year"`
	SuccessCount  int    `json:"success_count"`
	FailureCount  int    `json:"failure_count"`
}
