package service

import (
	"context"
	"errors"
	"strings"

	"edumanager/internal/models"
	"edumanager/internal/repository"
	"edumanager/internal/tabular"
	"edumanager/internal/utils"

	"github.com/sirupsen/logrus"
)

// ResultsService answers student lookups against imported files.
type ResultsService struct {
	classes ClassStore
	files   FileStore
	log     *logrus.Logger
}

func NewResultsService(classes ClassStore, files FileStore) *ResultsService {
	return &ResultsService{classes: classes, files: files, log: utils.GetLogger()}
}

// Lookup checks that a student appears in the latest upload of an enabled class.
func (s *ResultsService) Lookup(ctx context.Context, req models.StudentLookupRequest) (models.Row, error) {
	class, err := s.publicClass(ctx, req.CycleID, req.ClassID)
	if err != nil {
		return nil, err
	}

	latest, err := s.files.LatestByClass(ctx, class.ID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNoResults
		}
		return nil, persistence("get latest import", err)
	}

	row, ok := findStudent(latest.Content, req.StudentID)
	if !ok {
		s.log.WithFields(logrus.Fields{"class_id": class.ID, "file_id": latest.ID}).Info("Student lookup found no match")
		return nil, ErrStudentNotFound
	}
	return row, nil
}

// Results collects the student's grades for every period, newest first.
func (s *ResultsService) Results(ctx context.Context, cycleID, classID, studentID string) (*models.StudentResults, error) {
	class, err := s.publicClass(ctx, cycleID, classID)
	if err != nil {
		return nil, err
	}

	files, err := s.files.ListWithContentByClass(ctx, class.ID)
	if err != nil {
		return nil, persistence("list imports", err)
	}

	subjects := make([]string, 0)
	for _, field := range tabular.SortFields(class.DataStructure) {
		if field.Type == models.FieldTypeNumber {
			subjects = append(subjects, field.Name)
		}
	}

	results := &models.StudentResults{
		CycleID:   cycleID,
		ClassID:   class.ID,
		ClassName: class.Name,
		StudentID: strings.TrimSpace(studentID),
		Subjects:  subjects,
		Periods:   []models.PeriodResult{},
	}

	for _, file := range files {
		row, ok := findStudent(file.Content, studentID)
		if !ok {
			continue
		}
		if results.Student == nil {
			results.Student = row
		}

		grades := make(map[string]models.GradeDetail, len(subjects))
		for _, subject := range subjects {
			if value, ok := row[subject]; ok && tabular.CellString(value) != "" {
				grades[subject] = ParseGrade(tabular.CellString(value))
			}
		}

		results.Periods = append(results.Periods, models.PeriodResult{
			Period:     file.Period,
			FileID:     file.ID,
			UploadDate: file.UploadDate,
			Grades:     grades,
		})
	}

	if len(results.Periods) == 0 {
		return nil, ErrStudentNotFound
	}
	return results, nil
}

func (s *ResultsService) publicClass(ctx context.Context, cycleID, classID string) (*models.Class, error) {
	cycle, err := s.classes.GetCycle(ctx, cycleID)
	if err != nil {
		return nil, lookup("get cycle", err, ErrCycleNotFound)
	}
	if !cycle.Enabled {
		return nil, ErrCycleNotFound
	}

	class, err := s.classes.GetClass(ctx, classID)
	if err != nil {
		return nil, lookup("get class", err, ErrClassNotFound)
	}
	if class.CycleID != cycle.ID || !class.Enabled {
		return nil, ErrClassNotFound
	}
	return class, nil
}

func findStudent(rows []models.Row, studentID string) (models.Row, bool) {
	want := strings.TrimSpace(studentID)
	if want == "" {
		return nil, false
	}
	for _, row := range rows {
		if strings.TrimSpace(tabular.CellString(row[models.StudentIDField])) == want {
			return row, true
		}
	}
	return nil, false
}

// ParseGrade splits a stored grade into its marks. A single score is its own
// average; a grade without an average uses the mean of the two marks.
func ParseGrade(raw string) models.GradeDetail {
	detail := models.GradeDetail{Raw: raw}
	parts := tabular.SplitGrade(raw)

	switch len(parts) {
	case 0:
	case 1:
		detail.Average = &parts[0]
	case 2:
		mean := (parts[0] + parts[1]) / 2
		detail.ClassMark, detail.DepartmentMark, detail.Average = &parts[0], &parts[1], &mean
	default:
		detail.ClassMark, detail.DepartmentMark, detail.Average = &parts[0], &parts[1], &parts[2]
	}
	return detail
}
