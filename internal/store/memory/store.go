// Package memory implements store.Store with in-process maps. It is the
// development fallback used when no database is configured; data does not
// survive a restart.
package memory

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/wyc7758775/aglie-person-manage-sub001/internal/models"
	"github.com/wyc7758775/aglie-person-manage-sub001/internal/store"
)

type Store struct {
	mu           sync.RWMutex
	users        map[string]*models.User
	projects     map[string]*models.Project
	tasks        map[string]*models.Task
	requirements map[string]*models.Requirement
	defects      map[string]*models.Defect
	preferences  map[string]*models.Preference
}

func New() *Store {
	return &Store{
		users:        make(map[string]*models.User),
		projects:     make(map[string]*models.Project),
		tasks:        make(map[string]*models.Task),
		requirements: make(map[string]*models.Requirement),
		defects:      make(map[string]*models.Defect),
		preferences:  make(map[string]*models.Preference),
	}
}

var _ store.Store = (*Store)(nil)

// Users

func (s *Store) CreateUser(user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Nickname == user.Nickname {
			return store.ErrDuplicate
		}
	}
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now
	cp := *user
	s.users[user.ID] = &cp
	return nil
}

func (s *Store) GetUserByID(id string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (s *Store) GetUserByNickname(nickname string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if u.Nickname == nickname {
			cp := *u
			return &cp, nil
		}
	}
	return nil, store.ErrNotFound
}

func (s *Store) ListUsers() ([]models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	users := make([]models.User, 0, len(s.users))
	for _, u := range s.users {
		users = append(users, *u)
	}
	return users, nil
}

func (s *Store) AddUserPoints(id string, delta int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return store.ErrNotFound
	}
	u.TotalPoints += delta
	if u.TotalPoints < 0 {
		u.TotalPoints = 0
	}
	u.UpdatedAt = time.Now()
	return nil
}

// Projects

func (s *Store) ProjectExists(id string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.projects[id]
	return ok, nil
}

func (s *Store) CreateProject(project *models.Project) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if project.ID == "" {
		project.ID = uuid.NewString()
	}
	now := time.Now()
	project.CreatedAt = now
	project.UpdatedAt = now
	cp := *project
	s.projects[project.ID] = &cp
	return nil
}

func (s *Store) GetProject(id, ownerUserID string) (*models.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.projects[id]
	if !ok || p.OwnerUserID != ownerUserID {
		return nil, store.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (s *Store) ListProjects(filter store.ProjectFilter) ([]models.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	projects := make([]models.Project, 0)
	for _, p := range s.projects {
		if filter.Status != nil && p.Status != *filter.Status {
			continue
		}
		if filter.Type != nil && p.Type != *filter.Type {
			continue
		}
		if filter.Priority != nil && p.Priority != *filter.Priority {
			continue
		}
		projects = append(projects, *p)
	}
	return projects, nil
}

func (s *Store) UpdateProject(project *models.Project, ownerUserID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.projects[project.ID]
	if !ok || existing.OwnerUserID != ownerUserID {
		return store.ErrNotFound
	}
	project.OwnerUserID = existing.OwnerUserID
	project.CreatedAt = existing.CreatedAt
	project.UpdatedAt = time.Now()
	cp := *project
	s.projects[project.ID] = &cp
	return nil
}

func (s *Store) DeleteProject(id, ownerUserID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.projects[id]
	if !ok || existing.OwnerUserID != ownerUserID {
		return store.ErrNotFound
	}
	delete(s.projects, id)
	return nil
}

// Tasks

func (s *Store) CreateTask(task *models.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if task.ID == "" {
		task.ID = uuid.NewString()
	}
	now := time.Now()
	task.CreatedAt = now
	task.UpdatedAt = now
	cp := *task
	s.tasks[task.ID] = &cp
	return nil
}

func (s *Store) GetTask(id string) (*models.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.tasks[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	cp := *t
	return &cp, nil
}

func (s *Store) ListTasks(filter store.TaskFilter) ([]models.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tasks := make([]models.Task, 0)
	for _, t := range s.tasks {
		if filter.ProjectID != nil && t.ProjectID != *filter.ProjectID {
			continue
		}
		if filter.Status != nil && t.Status != *filter.Status {
			continue
		}
		if filter.Priority != nil && t.Priority != *filter.Priority {
			continue
		}
		tasks = append(tasks, *t)
	}
	return tasks, nil
}

func (s *Store) UpdateTask(task *models.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.tasks[task.ID]
	if !ok {
		return store.ErrNotFound
	}
	task.CreatedAt = existing.CreatedAt
	task.UpdatedAt = time.Now()
	cp := *task
	s.tasks[task.ID] = &cp
	return nil
}

func (s *Store) DeleteTask(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.tasks[id]; !ok {
		return store.ErrNotFound
	}
	delete(s.tasks, id)
	return nil
}

// Requirements

func (s *Store) CreateRequirement(req *models.Requirement) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if req.ID == "" {
		req.ID = uuid.NewString()
	}
	now := time.Now()
	req.CreatedAt = now
	req.UpdatedAt = now
	cp := *req
	s.requirements[req.ID] = &cp
	return nil
}

func (s *Store) GetRequirement(id string) (*models.Requirement, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.requirements[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	cp := *r
	return &cp, nil
}

func (s *Store) ListRequirements(filter store.RequirementFilter) ([]models.Requirement, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	reqs := make([]models.Requirement, 0)
	for _, r := range s.requirements {
		if filter.ProjectID != nil && r.ProjectID != *filter.ProjectID {
			continue
		}
		if filter.Status != nil && r.Status != *filter.Status {
			continue
		}
		if filter.Type != nil && r.Type != *filter.Type {
			continue
		}
		if filter.Priority != nil && r.Priority != *filter.Priority {
			continue
		}
		reqs = append(reqs, *r)
	}
	return reqs, nil
}

func (s *Store) UpdateRequirement(req *models.Requirement, actorUserID *string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.requirements[req.ID]
	if !ok {
		return store.ErrNotFound
	}

	completed := req.Status == models.RequirementStatusCompleted &&
		existing.Status != models.RequirementStatusCompleted

	req.CreatedAt = existing.CreatedAt
	req.UpdatedAt = time.Now()
	cp := *req
	s.requirements[req.ID] = &cp

	// Point accrual happens here and nowhere else outside creation.
	if completed && actorUserID != nil && req.Points > 0 {
		if u, ok := s.users[*actorUserID]; ok {
			u.TotalPoints += req.Points
			u.UpdatedAt = time.Now()
		}
	}
	return nil
}

func (s *Store) DeleteRequirement(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.requirements[id]; !ok {
		return store.ErrNotFound
	}
	delete(s.requirements, id)
	return nil
}

// Defects

func (s *Store) CreateDefect(defect *models.Defect) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if defect.ID == "" {
		defect.ID = uuid.NewString()
	}
	now := time.Now()
	defect.CreatedAt = now
	defect.UpdatedAt = now
	cp := *defect
	s.defects[defect.ID] = &cp
	return nil
}

func (s *Store) GetDefect(id string) (*models.Defect, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	d, ok := s.defects[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	cp := *d
	return &cp, nil
}

func (s *Store) ListDefects(filter store.DefectFilter) ([]models.Defect, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	defects := make([]models.Defect, 0)
	for _, d := range s.defects {
		if filter.ProjectID != nil && d.ProjectID != *filter.ProjectID {
			continue
		}
		if filter.Status != nil && d.Status != *filter.Status {
			continue
		}
		if filter.Severity != nil && d.Severity != *filter.Severity {
			continue
		}
		if filter.Type != nil && d.Type != *filter.Type {
			continue
		}
		defects = append(defects, *d)
	}
	return defects, nil
}

func (s *Store) UpdateDefect(defect *models.Defect) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.defects[defect.ID]
	if !ok {
		return store.ErrNotFound
	}
	defect.CreatedAt = existing.CreatedAt
	defect.UpdatedAt = time.Now()
	cp := *defect
	s.defects[defect.ID] = &cp
	return nil
}

func (s *Store) DeleteDefect(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.defects[id]; !ok {
		return store.ErrNotFound
	}
	delete(s.defects, id)
	return nil
}

// Preferences

func (s *Store) GetPreference(nickname string) (*models.Preference, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.preferences[nickname]
	if !ok {
		return nil, store.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (s *Store) SavePreference(pref *models.Preference) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	pref.UpdatedAt = time.Now()
	cp := *pref
	s.preferences[pref.Nickname] = &cp
	return nil
}

func (s *Store) InitSchema() error { return nil }

func (s *Store) Ping() error { return nil }
