package store

import (
	"github.com/wyc7758775/aglie-person-manage-sub001/internal/models"
	"github.com/wyc7758775/aglie-person-manage-sub001/pkg/auth"
)

// Seed loads a demo data set: an admin account (password 123456) plus one
// project with a task, a requirement and a defect attached. Safe to call
// repeatedly; it backs off when the admin account already exists.
func Seed(s Store) error {
	if _, err := s.GetUserByNickname("admin"); err == nil {
		return nil
	}

	hashed, err := auth.HashPassword("123456")
	if err != nil {
		return err
	}
	admin := models.User{
		Nickname: "admin",
		Password: hashed,
		Role:     models.UserRoleUser,
	}
	if err := s.CreateUser(&admin); err != nil {
		return err
	}

	endDate := "2024-06-30"
	project := models.Project{
		Name:        "个人成长计划",
		Description: "年度目标与习惯养成",
		Type:        models.ProjectTypeLife,
		Status:      models.ProjectStatusNormal,
		Priority:    models.PriorityHigh,
		StartDate:   "2024-01-01",
		EndDate:     &endDate,
		Goals:       []string{"每周运动三次", "读完12本书"},
		Tags:        []string{"成长", "习惯"},
		Points:      models.PointsForPriority(models.PriorityHigh),
		OwnerUserID: admin.ID,
	}
	if err := s.CreateProject(&project); err != nil {
		return err
	}

	task := models.Task{
		ProjectID:      project.ID,
		Title:          "制定季度读书清单",
		Status:         models.TaskStatusTodo,
		Priority:       models.PriorityMedium,
		Assignee:       "admin",
		EstimatedHours: 2,
		Tags:           []string{"阅读"},
	}
	if err := s.CreateTask(&task); err != nil {
		return err
	}

	requirement := models.Requirement{
		ProjectID:   project.ID,
		Title:       "搭建周报提醒",
		Type:        models.RequirementTypeFeature,
		Status:      models.RequirementStatusDraft,
		Priority:    models.PriorityMedium,
		StoryPoints: 3,
		Points:      models.PointsForPriority(models.PriorityMedium),
	}
	if err := s.CreateRequirement(&requirement); err != nil {
		return err
	}

	defect := models.Defect{
		ProjectID:   project.ID,
		Title:       "打卡页面偶发白屏",
		Status:      models.DefectStatusOpen,
		Severity:    models.PriorityHigh,
		Type:        models.DefectTypeBug,
		Reporter:    "admin",
		CreatedDate: "2024-01-05",
		Environment: "Chrome 120 / macOS",
		Steps:       []string{"打开打卡页", "快速切换日期"},
	}
	return s.CreateDefect(&defect)
}
