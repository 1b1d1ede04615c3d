// Package store defines the persistence abstraction shared by the in-memory
// and relational backends, plus the domain errors that isolate handlers from
// the underlying engine's error types.
package store

import (
	"errors"

	"github.com/wyc7758775/aglie-person-manage-sub001/internal/models"
)

var (
	// ErrNotFound covers both a missing record and a record the caller's
	// scope does not own. Project reads deliberately do not distinguish
	// the two cases.
	ErrNotFound = errors.New("entity not found")

	// ErrDuplicate is returned on unique-key conflicts (nickname).
	ErrDuplicate = errors.New("entity already exists")

	// ErrUnavailable means the relational backend is unreachable or
	// unconfigured. Handlers map it to 503 on paths that hard-depend on it.
	ErrUnavailable = errors.New("storage backend unavailable")
)

type ProjectFilter struct {
	Status   *models.ProjectStatus
	Type     *models.ProjectType
	Priority *models.Priority
}

type TaskFilter struct {
	ProjectID *string
	Status    *models.TaskStatus
	Priority  *models.Priority
}

type RequirementFilter struct {
	ProjectID *string
	Status    *models.RequirementStatus
	Type      *models.RequirementType
	Priority  *models.Priority
}

type DefectFilter struct {
	ProjectID *string
	Status    *models.DefectStatus
	Severity  *models.Priority
	Type      *models.DefectType
}

// Store is implemented by the memory and relational backends. Project
// reads and mutations are scoped to the owning user; a scope mismatch is
// reported as ErrNotFound, never as a distinct authorization error.
type Store interface {
	// Users
	CreateUser(user *models.User) error
	GetUserByID(id string) (*models.User, error)
	GetUserByNickname(nickname string) (*models.User, error)
	ListUsers() ([]models.User, error)
	AddUserPoints(id string, delta int) error

	// Projects. ProjectExists is the unscoped referential check used when
	// attaching tasks, requirements and defects.
	ProjectExists(id string) (bool, error)
	CreateProject(project *models.Project) error
	GetProject(id, ownerUserID string) (*models.Project, error)
	ListProjects(filter ProjectFilter) ([]models.Project, error)
	UpdateProject(project *models.Project, ownerUserID string) error
	DeleteProject(id, ownerUserID string) error

	// Tasks
	CreateTask(task *models.Task) error
	GetTask(id string) (*models.Task, error)
	ListTasks(filter TaskFilter) ([]models.Task, error)
	UpdateTask(task *models.Task) error
	DeleteTask(id string) error

	// Requirements. UpdateRequirement takes the acting user's id (nil for
	// anonymous); a transition into completed credits the requirement's
	// points to that user.
	CreateRequirement(req *models.Requirement) error
	GetRequirement(id string) (*models.Requirement, error)
	ListRequirements(filter RequirementFilter) ([]models.Requirement, error)
	UpdateRequirement(req *models.Requirement, actorUserID *string) error
	DeleteRequirement(id string) error

	// Defects
	CreateDefect(defect *models.Defect) error
	GetDefect(id string) (*models.Defect, error)
	ListDefects(filter DefectFilter) ([]models.Defect, error)
	UpdateDefect(defect *models.Defect) error
	DeleteDefect(id string) error

	// Preferences
	GetPreference(nickname string) (*models.Preference, error)
	SavePreference(pref *models.Preference) error

	// InitSchema creates or migrates the backing schema. A no-op for the
	// in-memory backend.
	InitSchema() error

	// Ping reports connectivity. The in-memory backend always succeeds.
	Ping() error
}
