package service

import (
	"context"
	"errors"
	"sort"
	"sync"

	"edumanager/internal/models"
	"edumanager/internal/repository"
	"edumanager/internal/utils"
)

type fakeClassStore struct {
	mu      sync.Mutex
	cycles  map[string]*models.Cycle
	classes   map[string]*models.Class
	err       error
	fieldsErr error
}

func newFakeClassStore() *fakeClassStore {
	return &fakeClassStore{cycles: map[string]*models.Cycle{}, classes: map[string]*models.Class{}}
}

func (f *fakeClassStore) addClass(cycleID, classID string, fields []models.DataField) *models.Class {
	if _, ok := f.cycles[cycleID]; !ok {
		f.cycles[cycleID] = &models.Cycle{ID: cycleID, Name: cycleID, Enabled: true}
	}
	class := &models.Class{
		ID:            classID,
		CycleID:       cycleID,
		Name:          classID,
		Enabled:       true,
		DataStructure: append([]models.DataField(nil), fields...),
	}
	f.classes[classID] = class
	return class
}

func (f *fakeClassStore) ListCycles(context.Context) ([]models.Cycle, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	var out []models.Cycle
	for _, c := range f.cycles {
		cycle := *c
		cycle.Classes = []models.Class{}
		for _, cl := range f.classes {
			if cl.CycleID == c.ID {
				cycle.Classes = append(cycle.Classes, *cl)
			}
		}
		sort.Slice(cycle.Classes, func(i, j int) bool { return cycle.Classes[i].ID < cycle.Classes[j].ID })
		out = append(out, cycle)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeClassStore) GetCycle(_ context.Context, id string) (*models.Cycle, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.cycles[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (f *fakeClassStore) CreateCycle(_ context.Context, c *models.Cycle) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	cp := *c
	f.cycles[c.ID] = &cp
	return nil
}

func (f *fakeClassStore) UpdateCycle(_ context.Context, c *models.Cycle) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.cycles[c.ID]; !ok {
		return repository.ErrNotFound
	}
	cp := *c
	f.cycles[c.ID] = &cp
	return nil
}

func (f *fakeClassStore) DeleteCycle(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.cycles[id]; !ok {
		return repository.ErrNotFound
	}
	delete(f.cycles, id)
	for cid, cl := range f.classes {
		if cl.CycleID == id {
			delete(f.classes, cid)
		}
	}
	return nil
}

func (f *fakeClassStore) GetClass(_ context.Context, id string) (*models.Class, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	c, ok := f.classes[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *c
	cp.DataStructure = append([]models.DataField(nil), c.DataStructure...)
	return &cp, nil
}

func (f *fakeClassStore) CreateClass(_ context.Context, c *models.Class) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *c
	f.classes[c.ID] = &cp
	return nil
}

func (f *fakeClassStore) UpdateClass(_ context.Context, c *models.Class) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.classes[c.ID]; !ok {
		return repository.ErrNotFound
	}
	cp := *c
	f.classes[c.ID] = &cp
	return nil
}

func (f *fakeClassStore) DeleteClass(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.classes[id]; !ok {
		return repository.ErrNotFound
	}
	delete(f.classes, id)
	return nil
}

func (f *fakeClassStore) ReplaceFields(_ context.Context, classID string, fields []models.DataField) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fieldsErr != nil {
		return f.fieldsErr
	}
	c, ok := f.classes[classID]
	if !ok {
		return repository.ErrNotFound
	}
	c.DataStructure = append([]models.DataField(nil), fields...)
	return nil
}

type fakeFileStore struct {
	mu         sync.Mutex
	files      map[string]*models.ImportedFile
	createErr  error
	replaceErr error
}

func newFakeFileStore() *fakeFileStore {
	return &fakeFileStore{files: map[string]*models.ImportedFile{}}
}

func (f *fakeFileStore) put(file models.ImportedFile) {
	file.Content = models.CloneRows(file.Content)
	f.files[file.ID] = &file
}

func (f *fakeFileStore) Create(_ context.Context, file *models.ImportedFile) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return f.createErr
	}
	f.put(*file)
	return nil
}

func (f *fakeFileStore) FindByID(_ context.Context, id string) (*models.ImportedFile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	file, ok := f.files[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *file
	cp.Content = models.CloneRows(file.Content)
	return &cp, nil
}

func (f *fakeFileStore) sorted(classID string) []models.ImportedFile {
	var out []models.ImportedFile
	for _, file := range f.files {
		if file.ClassID == classID {
			cp := *file
			cp.Content = models.CloneRows(file.Content)
			out = append(out, cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UploadDate.After(out[j].UploadDate) })
	return out
}

func (f *fakeFileStore) ListByClass(_ context.Context, classID string, params utils.PaginationParams) ([]models.ImportedFileSummary, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	all := f.sorted(classID)
	out := []models.ImportedFileSummary{}
	start := utils.GetOffset(params.Page, params.Limit)
	for i := start; i < len(all) && i < start+params.Limit; i++ {
		out = append(out, all[i].Summary())
	}
	return out, int64(len(all)), nil
}

func (f *fakeFileStore) ListWithContentByClass(_ context.Context, classID string) ([]models.ImportedFile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.sorted(classID), nil
}

func (f *fakeFileStore) LatestByClass(_ context.Context, classID string) (*models.ImportedFile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	all := f.sorted(classID)
	if len(all) == 0 {
		return nil, repository.ErrNotFound
	}
	return &all[0], nil
}

func (f *fakeFileStore) ReplaceContent(_ context.Context, id string, rows []models.Row) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.replaceErr != nil {
		return f.replaceErr
	}
	file, ok := f.files[id]
	if !ok {
		return repository.ErrNotFound
	}
	file.Content = models.CloneRows(rows)
	file.RecordCount = len(rows)
	return nil
}

func (f *fakeFileStore) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.files[id]; !ok {
		return repository.ErrNotFound
	}
	delete(f.files, id)
	return nil
}

type fakeArchiver struct {
	archived []string
	purged   []string
	err      error
}

func (a *fakeArchiver) Archive(_ context.Context, file *models.ImportedFile, _ []byte, _ string) error {
	if a.err != nil {
		return a.err
	}
	a.archived = append(a.archived, file.ID)
	return nil
}

func (a *fakeArchiver) Purge(_ context.Context, file *models.ImportedFile) error {
	a.purged = append(a.purged, file.ID)
	return nil
}

var errStoreDown = errors.New("connection refused")
