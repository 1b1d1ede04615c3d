// Package relational implements store.Store on GORM. Production deployments
// point it at Postgres through DATABASE_URL; tests open a SQLite file so the
// same code paths run without a server.
package relational

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/wyc7758775/aglie-person-manage-sub001/internal/models"
	"github.com/wyc7758775/aglie-person-manage-sub001/internal/store"
)

type Store struct {
	db *gorm.DB
}

var _ store.Store = (*Store)(nil)

// Open connects to Postgres and verifies connectivity. Any open or ping
// failure is reported as store.ErrUnavailable so callers can latch over to
// the in-memory backend without inspecting driver error strings.
func Open(dsn string) (store.Store, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Warn),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", store.ErrUnavailable, err)
	}
	s := &Store{db: db}
	if err := s.Ping(); err != nil {
		return nil, err
	}
	return s, nil
}

// OpenSQLite opens a file-backed SQLite database. Used by tests and local
// single-binary deployments.
func OpenSQLite(path string) (*Store, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Warn),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", store.ErrUnavailable, err)
	}
	return &Store{db: db}, nil
}

func (s *Store) InitSchema() error {
	err := s.db.AutoMigrate(
		&models.User{},
		&models.Project{},
		&models.Task{},
		&models.Requirement{},
		&models.Defect{},
		&models.Preference{},
	)
	if err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return nil
}

func (s *Store) Ping() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("%w: %v", store.ErrUnavailable, err)
	}
	if err := sqlDB.Ping(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrUnavailable, err)
	}
	return nil
}

// translate collapses gorm errors into the store package's domain errors.
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return store.ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return store.ErrDuplicate
	default:
		return err
	}
}

// Users

func (s *Store) CreateUser(user *models.User) error {
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	return translate(s.db.Create(user).Error)
}

func (s *Store) GetUserByID(id string) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (s *Store) GetUserByNickname(nickname string) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, "nickname = ?", nickname).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (s *Store) ListUsers() ([]models.User, error) {
	var users []models.User
	err := s.db.Find(&users).Error
	return users, translate(err)
}

func (s *Store) AddUserPoints(id string, delta int) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.First(&user, "id = ?", id).Error; err != nil {
			return translate(err)
		}
		user.TotalPoints += delta
		if user.TotalPoints < 0 {
			user.TotalPoints = 0
		}
		return translate(tx.Save(&user).Error)
	})
}

// Projects

func (s *Store) ProjectExists(id string) (bool, error) {
	var count int64
	err := s.db.Model(&models.Project{}).Where("id = ?", id).Count(&count).Error
	if err != nil {
		return false, translate(err)
	}
	return count > 0, nil
}

func (s *Store) CreateProject(project *models.Project) error {
	if project.ID == "" {
		project.ID = uuid.NewString()
	}
	return translate(s.db.Create(project).Error)
}

func (s *Store) GetProject(id, ownerUserID string) (*models.Project, error) {
	var project models.Project
	err := s.db.First(&project, "id = ? AND owner_user_id = ?", id, ownerUserID).Error
	if err != nil {
		return nil, translate(err)
	}
	return &project, nil
}

func (s *Store) ListProjects(filter store.ProjectFilter) ([]models.Project, error) {
	query := s.db
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.Type != nil {
		query = query.Where("type = ?", *filter.Type)
	}
	if filter.Priority != nil {
		query = query.Where("priority = ?", *filter.Priority)
	}
	var projects []models.Project
	err := query.Find(&projects).Error
	return projects, translate(err)
}

func (s *Store) UpdateProject(project *models.Project, ownerUserID string) error {
	existing, err := s.GetProject(project.ID, ownerUserID)
	if err != nil {
		return err
	}
	project.OwnerUserID = existing.OwnerUserID
	project.CreatedAt = existing.CreatedAt
	return translate(s.db.Save(project).Error)
}

func (s *Store) DeleteProject(id, ownerUserID string) error {
	res := s.db.Where("id = ? AND owner_user_id = ?", id, ownerUserID).
		Delete(&models.Project{})
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return store.ErrNotFound
	}
	return nil
}

// Tasks

func (s *Store) CreateTask(task *models.Task) error {
	if task.ID == "" {
		task.ID = uuid.NewString()
	}
	return translate(s.db.Create(task).Error)
}

func (s *Store) GetTask(id string) (*models.Task, error) {
	var task models.Task
	if err := s.db.First(&task, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &task, nil
}

func (s *Store) ListTasks(filter store.TaskFilter) ([]models.Task, error) {
	query := s.db
	if filter.ProjectID != nil {
		query = query.Where("project_id = ?", *filter.ProjectID)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.Priority != nil {
		query = query.Where("priority = ?", *filter.Priority)
	}
	var tasks []models.Task
	err := query.Find(&tasks).Error
	return tasks, translate(err)
}

func (s *Store) UpdateTask(task *models.Task) error {
	existing, err := s.GetTask(task.ID)
	if err != nil {
		return err
	}
	task.CreatedAt = existing.CreatedAt
	return translate(s.db.Save(task).Error)
}

func (s *Store) DeleteTask(id string) error {
	res := s.db.Delete(&models.Task{}, "id = ?", id)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return store.ErrNotFound
	}
	return nil
}

// Requirements

func (s *Store) CreateRequirement(req *models.Requirement) error {
	if req.ID == "" {
		req.ID = uuid.NewString()
	}
	return translate(s.db.Create(req).Error)
}

func (s *Store) GetRequirement(id string) (*models.Requirement, error) {
	var req models.Requirement
	if err := s.db.First(&req, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &req, nil
}

func (s *Store) ListRequirements(filter store.RequirementFilter) ([]models.Requirement, error) {
	query := s.db
	if filter.ProjectID != nil {
		query = query.Where("project_id = ?", *filter.ProjectID)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.Type != nil {
		query = query.Where("type = ?", *filter.Type)
	}
	if filter.Priority != nil {
		query = query.Where("priority = ?", *filter.Priority)
	}
	var reqs []models.Requirement
	err := query.Find(&reqs).Error
	return reqs, translate(err)
}

// UpdateRequirement saves the requirement and, when the update moves it into
// completed, credits its points to the acting user inside one transaction.
func (s *Store) UpdateRequirement(req *models.Requirement, actorUserID *string) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var existing models.Requirement
		if err := tx.First(&existing, "id = ?", req.ID).Error; err != nil {
			return translate(err)
		}

		completed := req.Status == models.RequirementStatusCompleted &&
			existing.Status != models.RequirementStatusCompleted

		req.CreatedAt = existing.CreatedAt
		if err := tx.Save(req).Error; err != nil {
			return translate(err)
		}

		if completed && actorUserID != nil && req.Points > 0 {
			err := tx.Model(&models.User{}).Where("id = ?", *actorUserID).
				Update("total_points", gorm.Expr("total_points + ?", req.Points)).Error
			if err != nil {
				return translate(err)
			}
		}
		return nil
	})
}

func (s *Store) DeleteRequirement(id string) error {
	res := s.db.Delete(&models.Requirement{}, "id = ?", id)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return store.ErrNotFound
	}
	return nil
}

// Defects

func (s *Store) CreateDefect(defect *models.Defect) error {
	if defect.ID == "" {
		defect.ID = uuid.NewString()
	}
	return translate(s.db.Create(defect).Error)
}

func (s *Store) GetDefect(id string) (*models.Defect, error) {
	var defect models.Defect
	if err := s.db.First(&defect, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &defect, nil
}

func (s *Store) ListDefects(filter store.DefectFilter) ([]models.Defect, error) {
	query := s.db
	if filter.ProjectID != nil {
		query = query.Where("project_id = ?", *filter.ProjectID)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.Severity != nil {
		query = query.Where("severity = ?", *filter.Severity)
	}
	if filter.Type != nil {
		query = query.Where("type = ?", *filter.Type)
	}
	var defects []models.Defect
	err := query.Find(&defects).Error
	return defects, translate(err)
}

func (s *Store) UpdateDefect(defect *models.Defect) error {
	existing, err := s.GetDefect(defect.ID)
	if err != nil {
		return err
	}
	defect.CreatedAt = existing.CreatedAt
	return translate(s.db.Save(defect).Error)
}

func (s *Store) DeleteDefect(id string) error {
	res := s.db.Delete(&models.Defect{}, "id = ?", id)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return store.ErrNotFound
	}
	return nil
}

// Preferences

func (s *Store) GetPreference(nickname string) (*models.Preference, error) {
	var pref models.Preference
	if err := s.db.First(&pref, "nickname = ?", nickname).Error; err != nil {
		return nil, translate(err)
	}
	return &pref, nil
}

func (s *Store) SavePreference(pref *models.Preference) error {
	return translate(s.db.Save(pref).Error)
}
