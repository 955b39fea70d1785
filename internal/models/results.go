package models

import "time"

type StudentLookupRequest struct {
	CycleID   string `json:"cycle_id" form:"cycle_id" validate:"required"`
	ClassID   string `json:"class_id" form:"class_id" validate:"required"`
	StudentID string `json:"student_id" form:"student_id" validate:"required"`
}

// GradeDetail is one subject's composite grade for a period.
type GradeDetail struct {
	Raw            string   `json:"raw"`
	ClassMark      *float64 `json:"class_mark,omitempty"`
	DepartmentMark *float64 `json:"department_mark,omitempty"`
	Average        *float64 `json:"average,omitempty"`
}

type PeriodResult struct {
	Period     string                 `json:"period"`
	FileID     string                 `json:"file_id"`
	UploadDate time.Time              `json:"upload_date"`
	Grades     map[string]GradeDetail `json:"grades"`
}

type StudentResults struct {
	CycleID   string         `json:"cycle_id"`
	ClassID   string         `json:"class_id"`
	ClassName string         `json:"class_name"`
	StudentID string         `json:"student_id"`
	Student   Row            `json:"student"`
	Subjects  []string       `json:"subjects"`
	Periods   []PeriodResult `json:"periods"`
}
