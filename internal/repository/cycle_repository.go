package repository

import (
	"context"
	"time"

	"edumanager/internal/models"

	"github.com/jmoiron/sqlx"
)

// CycleRepository stores cycles and the classes they contain.
type CycleRepository struct {
	db *sqlx.DB
}

func NewCycleRepository(db *sqlx.DB) *CycleRepository {
	return &CycleRepository{db: db}
}

// ListCycles returns every cycle with its classes and their data structures.
func (r *CycleRepository) ListCycles(ctx context.Context) ([]models.Cycle, error) {
	var cycles []models.Cycle
	if err := r.db.SelectContext(ctx, &cycles,
		"SELECT id, name, enabled, created_at, updated_at FROM cycles ORDER BY created_at, name"); err != nil {
		return nil, err
	}

	var classes []models.Class
	if err := r.db.SelectContext(ctx, &classes,
		"SELECT id, cycle_id, name, enabled, created_at, updated_at FROM classes ORDER BY created_at, name"); err != nil {
		return nil, err
	}

	var fields []models.DataField
	if err := r.db.SelectContext(ctx, &fields,
		"SELECT id, class_id, name, type, required, sort_order, has_photo FROM class_fields ORDER BY class_id, sort_order"); err != nil {
		return nil, err
	}

	fieldsByClass := make(map[string][]models.DataField)
	for _, f := range fields {
		fieldsByClass[f.ClassID] = append(fieldsByClass[f.ClassID], f)
	}

	classesByCycle := make(map[string][]models.Class)
	for _, c := range classes {
		c.DataStructure = fieldsByClass[c.ID]
		if c.DataStructure == nil {
			c.DataStructure = []models.DataField{}
		}
		classesByCycle[c.CycleID] = append(classesByCycle[c.CycleID], c)
	}

	for i := range cycles {
		cycles[i].Classes = classesByCycle[cycles[i].ID]
		if cycles[i].Classes == nil {
			cycles[i].Classes = []models.Class{}
		}
	}

	if cycles == nil {
		cycles = []models.Cycle{}
	}
	return cycles, nil
}

func (r *CycleRepository) GetCycle(ctx context.Context, id string) (*models.Cycle, error) {
	var cycle models.Cycle
	err := r.db.GetContext(ctx, &cycle,
		"SELECT id, name, enabled, created_at, updated_at FROM cycles WHERE id = ? LIMIT 1", id)
	if err != nil {
		return nil, notFound(err)
	}
	return &cycle, nil
}

func (r *CycleRepository) CreateCycle(ctx context.Context, cycle *models.Cycle) error {
	now := time.Now().UTC()
	cycle.CreatedAt = now
	cycle.UpdatedAt = now

	query := `INSERT INTO cycles (id, name, enabled, created_at, updated_at)
	          VALUES (:id, :name, :enabled, :created_at, :updated_at)`
	_, err := r.db.NamedExecContext(ctx, query, cycle)
	return err
}

func (r *CycleRepository) UpdateCycle(ctx context.Context, cycle *models.Cycle) error {
	cycle.UpdatedAt = time.Now().UTC()

	query := `UPDATE cycles SET name = :name, enabled = :enabled, updated_at = :updated_at WHERE id = :id`
	result, err := r.db.NamedExecContext(ctx, query, cycle)
	if err != nil {
		return err
	}
	return requireAffected(result)
}

// DeleteCycle removes the cycle; classes, fields and files cascade.
func (r *CycleRepository) DeleteCycle(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM cycles WHERE id = ?", id)
	if err != nil {
		return err
	}
	return requireAffected(result)
}

// GetClass loads a class with its data structure sorted by order.
func (r *CycleRepository) GetClass(ctx context.Context, id string) (*models.Class, error) {
	var class models.Class
	err := r.db.GetContext(ctx, &class,
		"SELECT id, cycle_id, name, enabled, created_at, updated_at FROM classes WHERE id = ? LIMIT 1", id)
	if err != nil {
		return nil, notFound(err)
	}

	class.DataStructure = []models.DataField{}
	if err := r.db.SelectContext(ctx, &class.DataStructure,
		"SELECT id, class_id, name, type, required, sort_order, has_photo FROM class_fields WHERE class_id = ? ORDER BY sort_order",
		id); err != nil {
		return nil, err
	}

	return &class, nil
}

func (r *CycleRepository) CreateClass(ctx context.Context, class *models.Class) error {
	now := time.Now().UTC()
	class.CreatedAt = now
	class.UpdatedAt = now

	query := `INSERT INTO classes (id, cycle_id, name, enabled, created_at, updated_at)
	          VALUES (:id, :cycle_id, :name, :enabled, :created_at, :updated_at)`
	_, err := r.db.NamedExecContext(ctx, query, class)
	return err
}

func (r *CycleRepository) UpdateClass(ctx context.Context, class *models.Class) error {
	class.UpdatedAt = time.Now().UTC()

	query := `UPDATE classes SET name = :name, enabled = :enabled, updated_at = :updated_at WHERE id = :id`
	result, err := r.db.NamedExecContext(ctx, query, class)
	if err != nil {
		return err
	}
	return requireAffected(result)
}

func (r *CycleRepository) DeleteClass(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM classes WHERE id = ?", id)
	if err != nil {
		return err
	}
	return requireAffected(result)
}

// ReplaceFields swaps a class's data structure in one transaction.
func (r *CycleRepository) ReplaceFields(ctx context.Context, classID string, fields []models.DataField) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM class_fields WHERE class_id = ?", classID); err != nil {
		return err
	}

	if len(fields) > 0 {
		rows := make([]models.DataField, len(fields))
		for i, f := range fields {
			f.ClassID = classID
			rows[i] = f
		}
		query := `INSERT INTO class_fields (id, class_id, name, type, required, sort_order, has_photo)
		          VALUES (:id, :class_id, :name, :type, :required, :sort_order, :has_photo)`
		if _, err := tx.NamedExecContext(ctx, query, rows); err != nil {
			return err
		}
	}

	if _, err := tx.ExecContext(ctx, "UPDATE classes SET updated_at = ? WHERE id = ?", time.Now().UTC(), classID); err != nil {
		return err
	}

	return tx.Commit()
}
