package service

import (
	"context"
	"strings"

	"edumanager/internal/models"
	"edumanager/internal/tabular"
	"edumanager/internal/utils"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// SchemaView is a class data structure as shown in the editor.
type SchemaView struct {
	ClassID string             `json:"class_id"`
	Fields  []models.DataField `json:"fields"`
	Default bool               `json:"default"`
}

// SchemaService edits the data structure of a class.
type SchemaService struct {
	classes ClassStore
	log     *logrus.Logger
}

func NewSchemaService(classes ClassStore) *SchemaService {
	return &SchemaService{classes: classes, log: utils.GetLogger()}
}

// Get returns the configured fields, or the editor starting point when the
// class has none yet.
func (s *SchemaService) Get(ctx context.Context, classID string) (*SchemaView, error) {
	class, err := s.classes.GetClass(ctx, classID)
	if err != nil {
		return nil, lookup("get class", err, ErrClassNotFound)
	}

	if len(class.DataStructure) == 0 {
		return &SchemaView{ClassID: classID, Fields: tabular.DefaultEditorSchema(), Default: true}, nil
	}
	return &SchemaView{ClassID: classID, Fields: tabular.SortFields(class.DataStructure)}, nil
}

// Save replaces the data structure. List position becomes the field order.
func (s *SchemaService) Save(ctx context.Context, classID string, req models.SchemaRequest) (*SchemaView, error) {
	if _, err := s.classes.GetClass(ctx, classID); err != nil {
		return nil, lookup("get class", err, ErrClassNotFound)
	}

	fields := make([]models.DataField, len(req.Fields))
	for i, f := range req.Fields {
		id := strings.TrimSpace(f.ID)
		if id == "" {
			id = uuid.New().String()
		}
		fieldType := models.FieldType(f.Type)
		fields[i] = models.DataField{
			ID:       id,
			ClassID:  classID,
			Name:     strings.TrimSpace(f.Name),
			Type:     fieldType,
			Required: f.Required,
			HasPhoto: f.HasPhoto || fieldType == models.FieldTypePhoto,
		}
	}
	tabular.Renumber(fields)

	if err := tabular.CheckSchema(fields); err != nil {
		return nil, err
	}
	if err := checkUniqueIDs(fields); err != nil {
		return nil, err
	}

	if err := s.classes.ReplaceFields(ctx, classID, fields); err != nil {
		return nil, persistence("save schema", err)
	}

	s.log.WithFields(logrus.Fields{"class_id": classID, "fields": len(fields)}).Info("Class schema saved")
	return &SchemaView{ClassID: classID, Fields: fields}, nil
}

// Reorder moves one field and persists the new dense order.
func (s *SchemaService) Reorder(ctx context.Context, classID string, req models.ReorderRequest) (*SchemaView, error) {
	class, err := s.classes.GetClass(ctx, classID)
	if err != nil {
		return nil, lookup("get class", err, ErrClassNotFound)
	}

	fields, err := tabular.Reorder(class.DataStructure, req.From, req.To)
	if err != nil {
		return nil, err
	}

	if err := s.classes.ReplaceFields(ctx, classID, fields); err != nil {
		return nil, persistence("reorder schema", err)
	}
	return &SchemaView{ClassID: classID, Fields: fields}, nil
}

func checkUniqueIDs(fields []models.DataField) error {
	seen := make(map[string]bool, len(fields))
	for _, f := range fields {
		if seen[f.ID] {
			return &tabular.ValidationError{Field: f.Name, Reason: "Duplicate field id: " + f.ID}
		}
		seen[f.ID] = true
	}
	return nil
}
