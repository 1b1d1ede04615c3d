package memory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wyc7758775/aglie-person-manage-sub001/internal/models"
	"github.com/wyc7758775/aglie-person-manage-sub001/internal/store"
)

func TestUserLifecycle(t *testing.T) {
	s := New()

	user := &models.User{Nickname: "admin", Password: "hashed", Role: models.UserRoleUser}
	require.NoError(t, s.CreateUser(user))
	assert.NotEmpty(t, user.ID)

	t.Run("DuplicateNickname", func(t *testing.T) {
		err := s.CreateUser(&models.User{Nickname: "admin", Password: "other"})
		assert.ErrorIs(t, err, store.ErrDuplicate)
	})

	t.Run("GetByNickname", func(t *testing.T) {
		got, err := s.GetUserByNickname("admin")
		require.NoError(t, err)
		assert.Equal(t, user.ID, got.ID)

		_, err = s.GetUserByNickname("nobody")
		assert.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("AddPoints", func(t *testing.T) {
		require.NoError(t, s.AddUserPoints(user.ID, 8))
		got, err := s.GetUserByID(user.ID)
		require.NoError(t, err)
		assert.Equal(t, 8, got.TotalPoints)

		// Totals never go below zero.
		require.NoError(t, s.AddUserPoints(user.ID, -20))
		got, err = s.GetUserByID(user.ID)
		require.NoError(t, err)
		assert.Equal(t, 0, got.TotalPoints)

		assert.ErrorIs(t, s.AddUserPoints("missing", 5), store.ErrNotFound)
	})
}

func TestProjectOwnerScoping(t *testing.T) {
	s := New()

	alice := &models.User{Nickname: "alice", Password: "x"}
	bob := &models.User{Nickname: "bob", Password: "x"}
	require.NoError(t, s.CreateUser(alice))
	require.NoError(t, s.CreateUser(bob))

	project := &models.Project{
		Name:        "健身计划",
		Type:        models.ProjectTypeLife,
		Status:      models.ProjectStatusPlanning,
		Priority:    models.PriorityHigh,
		StartDate:   "2026-01-01",
		OwnerUserID: alice.ID,
	}
	require.NoError(t, s.CreateProject(project))

	t.Run("OwnerSees", func(t *testing.T) {
		got, err := s.GetProject(project.ID, alice.ID)
		require.NoError(t, err)
		assert.Equal(t, "健身计划", got.Name)
	})

	t.Run("OthersGetNotFound", func(t *testing.T) {
		_, err := s.GetProject(project.ID, bob.ID)
		assert.ErrorIs(t, err, store.ErrNotFound)

		err = s.UpdateProject(&models.Project{ID: project.ID, Name: "hijack"}, bob.ID)
		assert.ErrorIs(t, err, store.ErrNotFound)

		err = s.DeleteProject(project.ID, bob.ID)
		assert.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("UpdateKeepsOwner", func(t *testing.T) {
		up := *project
		up.Name = "健身计划 v2"
		up.OwnerUserID = bob.ID
		require.NoError(t, s.UpdateProject(&up, alice.ID))

		got, err := s.GetProject(project.ID, alice.ID)
		require.NoError(t, err)
		assert.Equal(t, "健身计划 v2", got.Name)
		assert.Equal(t, alice.ID, got.OwnerUserID)
	})

	t.Run("OwnerDeletes", func(t *testing.T) {
		require.NoError(t, s.DeleteProject(project.ID, alice.ID))
		_, err := s.GetProject(project.ID, alice.ID)
		assert.ErrorIs(t, err, store.ErrNotFound)
	})
}

func TestListProjectsFilters(t *testing.T) {
	s := New()

	mk := func(status models.ProjectStatus, typ models.ProjectType, pri models.Priority) {
		require.NoError(t, s.CreateProject(&models.Project{
			Name: "p", Type: typ, Status: status, Priority: pri, StartDate: "2026-01-01",
		}))
	}
	mk(models.ProjectStatusNormal, models.ProjectTypeCode, models.PriorityHigh)
	mk(models.ProjectStatusNormal, models.ProjectTypeLife, models.PriorityLow)
	mk(models.ProjectStatusArchived, models.ProjectTypeCode, models.PriorityHigh)

	all, err := s.ListProjects(store.ProjectFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 3)

	status := models.ProjectStatusNormal
	got, err := s.ListProjects(store.ProjectFilter{Status: &status})
	require.NoError(t, err)
	assert.Len(t, got, 2)

	typ := models.ProjectTypeCode
	pri := models.PriorityHigh
	got, err = s.ListProjects(store.ProjectFilter{Status: &status, Type: &typ, Priority: &pri})
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestTaskCRUD(t *testing.T) {
	s := New()

	task := &models.Task{
		ProjectID: "proj-1",
		Title:     "写周报",
		Status:    models.TaskStatusTodo,
		Priority:  models.PriorityMedium,
	}
	require.NoError(t, s.CreateTask(task))
	require.NotEmpty(t, task.ID)

	got, err := s.GetTask(task.ID)
	require.NoError(t, err)
	assert.Equal(t, "写周报", got.Title)

	got.Status = models.TaskStatusDone
	got.CompletedHours = 2
	require.NoError(t, s.UpdateTask(got))

	got, err = s.GetTask(task.ID)
	require.NoError(t, err)
	assert.Equal(t, models.TaskStatusDone, got.Status)

	projectID := "proj-1"
	list, err := s.ListTasks(store.TaskFilter{ProjectID: &projectID})
	require.NoError(t, err)
	assert.Len(t, list, 1)

	other := "proj-2"
	list, err = s.ListTasks(store.TaskFilter{ProjectID: &other})
	require.NoError(t, err)
	assert.Empty(t, list)

	require.NoError(t, s.DeleteTask(task.ID))
	assert.ErrorIs(t, s.DeleteTask(task.ID), store.ErrNotFound)
}

func TestRequirementCompletionAwardsPoints(t *testing.T) {
	s := New()

	user := &models.User{Nickname: "alice", Password: "x"}
	require.NoError(t, s.CreateUser(user))

	req := &models.Requirement{
		ProjectID: "proj-1",
		Title:     "支持导出",
		Type:      models.RequirementTypeFeature,
		Status:    models.RequirementStatusDevelopment,
		Priority:  models.PriorityHigh,
		Points:    8,
	}
	require.NoError(t, s.CreateRequirement(req))

	t.Run("NonCompletingUpdateAwardsNothing", func(t *testing.T) {
		up := *req
		up.Status = models.RequirementStatusTesting
		require.NoError(t, s.UpdateRequirement(&up, &user.ID))

		got, err := s.GetUserByID(user.ID)
		require.NoError(t, err)
		assert.Equal(t, 0, got.TotalPoints)
	})

	t.Run("CompletionAwardsOnce", func(t *testing.T) {
		up := *req
		up.Status = models.RequirementStatusCompleted
		require.NoError(t, s.UpdateRequirement(&up, &user.ID))

		got, err := s.GetUserByID(user.ID)
		require.NoError(t, err)
		assert.Equal(t, 8, got.TotalPoints)

		// Saving an already completed requirement must not double-award.
		require.NoError(t, s.UpdateRequirement(&up, &user.ID))
		got, err = s.GetUserByID(user.ID)
		require.NoError(t, err)
		assert.Equal(t, 8, got.TotalPoints)
	})

	t.Run("AnonymousCompletionAwardsNothing", func(t *testing.T) {
		other := &models.Requirement{
			ProjectID: "proj-1",
			Title:     "匿名需求",
			Status:    models.RequirementStatusDraft,
			Points:    5,
		}
		require.NoError(t, s.CreateRequirement(other))

		up := *other
		up.Status = models.RequirementStatusCompleted
		require.NoError(t, s.UpdateRequirement(&up, nil))

		got, err := s.GetUserByID(user.ID)
		require.NoError(t, err)
		assert.Equal(t, 8, got.TotalPoints)
	})
}

func TestDefectCRUD(t *testing.T) {
	s := New()

	defect := &models.Defect{
		ProjectID:   "proj-1",
		Title:       "登录页偶发白屏",
		Status:      models.DefectStatusOpen,
		Severity:    models.PriorityCritical,
		Type:        models.DefectTypeBug,
		CreatedDate: "2026-02-01",
	}
	require.NoError(t, s.CreateDefect(defect))

	got, err := s.GetDefect(defect.ID)
	require.NoError(t, err)
	assert.Equal(t, models.PriorityCritical, got.Severity)

	got.Status = models.DefectStatusResolved
	require.NoError(t, s.UpdateDefect(got))

	sev := models.PriorityCritical
	list, err := s.ListDefects(store.DefectFilter{Severity: &sev})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, models.DefectStatusResolved, list[0].Status)

	require.NoError(t, s.DeleteDefect(defect.ID))
	_, err = s.GetDefect(defect.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestPreferences(t *testing.T) {
	s := New()

	_, err := s.GetPreference("alice")
	assert.ErrorIs(t, err, store.ErrNotFound)

	require.NoError(t, s.SavePreference(&models.Preference{Nickname: "alice", Language: "zh", Theme: "dark"}))

	got, err := s.GetPreference("alice")
	require.NoError(t, err)
	assert.Equal(t, "dark", got.Theme)

	// Saving again overwrites.
	require.NoError(t, s.SavePreference(&models.Preference{Nickname: "alice", Language: "en", Theme: "light"}))
	got, err = s.GetPreference("alice")
	require.NoError(t, err)
	assert.Equal(t, "en", got.Language)
}

func TestCopiesAreIsolated(t *testing.T) {
	s := New()

	project := &models.Project{Name: "原名", Type: models.ProjectTypeLife, StartDate: "2026-01-01"}
	require.NoError(t, s.CreateProject(project))

	got, err := s.GetProject(project.ID, "")
	require.NoError(t, err)
	got.Name = "改名"

	again, err := s.GetProject(project.ID, "")
	require.NoError(t, err)
	assert.Equal(t, "原名", again.Name, "mutating a returned copy must not touch the store")
}
