package service

import (
	"context"
	"strings"

	"edumanager/internal/models"
	"edumanager/internal/utils"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// ClassService manages cycles and their classes.
type ClassService struct {
	classes ClassStore
	log     *logrus.Logger
}

func NewClassService(classes ClassStore) *ClassService {
	return &ClassService{classes: classes, log: utils.GetLogger()}
}

// ListCycles returns all cycles, or only enabled cycles with their enabled
// classes for public pages.
func (s *ClassService) ListCycles(ctx context.Context, enabledOnly bool) ([]models.Cycle, error) {
	cycles, err := s.classes.ListCycles(ctx)
	if err != nil {
		return nil, persistence("list cycles", err)
	}
	if !enabledOnly {
		return cycles, nil
	}

	visible := make([]models.Cycle, 0, len(cycles))
	for _, cycle := range cycles {
		if !cycle.Enabled {
			continue
		}
		classes := make([]models.Class, 0, len(cycle.Classes))
		for _, class := range cycle.Classes {
			if class.Enabled {
				classes = append(classes, class)
			}
		}
		cycle.Classes = classes
		visible = append(visible, cycle)
	}
	return visible, nil
}

func (s *ClassService) CreateCycle(ctx context.Context, req models.CycleRequest) (*models.Cycle, error) {
	cycle := &models.Cycle{
		ID:      uuid.New().String(),
		Name:    strings.TrimSpace(req.Name),
		Enabled: true,
		Classes: []models.Class{},
	}
	if req.Enabled != nil {
		cycle.Enabled = *req.Enabled
	}

	if err := s.classes.CreateCycle(ctx, cycle); err != nil {
		return nil, persistence("create cycle", err)
	}

	s.log.WithFields(logrus.Fields{"cycle_id": cycle.ID, "name": cycle.Name}).Info("Cycle created")
	return cycle, nil
}

func (s *ClassService) UpdateCycle(ctx context.Context, id string, req models.CycleRequest) (*models.Cycle, error) {
	cycle, err := s.classes.GetCycle(ctx, id)
	if err != nil {
		return nil, lookup("get cycle", err, ErrCycleNotFound)
	}

	cycle.Name = strings.TrimSpace(req.Name)
	if req.Enabled != nil {
		cycle.Enabled = *req.Enabled
	}

	if err := s.classes.UpdateCycle(ctx, cycle); err != nil {
		return nil, lookup("update cycle", err, ErrCycleNotFound)
	}
	return cycle, nil
}

func (s *ClassService) DeleteCycle(ctx context.Context, id string) error {
	if err := s.classes.DeleteCycle(ctx, id); err != nil {
		return lookup("delete cycle", err, ErrCycleNotFound)
	}
	s.log.WithField("cycle_id", id).Info("Cycle deleted")
	return nil
}

// GetClass returns a class of the given cycle; an empty cycleID skips the
// ownership check.
func (s *ClassService) GetClass(ctx context.Context, cycleID, classID string) (*models.Class, error) {
	class, err := s.classes.GetClass(ctx, classID)
	if err != nil {
		return nil, lookup("get class", err, ErrClassNotFound)
	}
	if cycleID != "" && class.CycleID != cycleID {
		return nil, ErrClassNotFound
	}
	return class, nil
}

func (s *ClassService) CreateClass(ctx context.Context, cycleID string, req models.ClassRequest) (*models.Class, error) {
	if _, err := s.classes.GetCycle(ctx, cycleID); err != nil {
		return nil, lookup("get cycle", err, ErrCycleNotFound)
	}

	class := &models.Class{
		ID:            uuid.New().String(),
		CycleID:       cycleID,
		Name:          strings.TrimSpace(req.Name),
		Enabled:       true,
		DataStructure: []models.DataField{},
	}
	if req.Enabled != nil {
		class.Enabled = *req.Enabled
	}

	if err := s.classes.CreateClass(ctx, class); err != nil {
		return nil, persistence("create class", err)
	}

	s.log.WithFields(logrus.Fields{"cycle_id": cycleID, "class_id": class.ID, "name": class.Name}).Info("Class created")
	return class, nil
}

func (s *ClassService) UpdateClass(ctx context.Context, cycleID, classID string, req models.ClassRequest) (*models.Class, error) {
	class, err := s.GetClass(ctx, cycleID, classID)
	if err != nil {
		return nil, err
	}

	class.Name = strings.TrimSpace(req.Name)
	if req.Enabled != nil {
		class.Enabled = *req.Enabled
	}

	if err := s.classes.UpdateClass(ctx, class); err != nil {
		return nil, lookup("update class", err, ErrClassNotFound)
	}
	return class, nil
}

func (s *ClassService) DeleteClass(ctx context.Context, cycleID, classID string) error {
	if _, err := s.GetClass(ctx, cycleID, classID); err != nil {
		return err
	}
	if err := s.classes.DeleteClass(ctx, classID); err != nil {
		return lookup("delete class", err, ErrClassNotFound)
	}
	s.log.WithFields(logrus.Fields{"cycle_id": cycleID, "class_id": classID}).Info("Class deleted")
	return nil
}
