package models

import (
	"time"
)

type ProjectType string

const (
	ProjectTypeLife ProjectType = "life"
	ProjectTypeCode ProjectType = "code"
)

type ProjectStatus string

const (
	ProjectStatusPlanning     ProjectStatus = "planning"
	ProjectStatusNormal       ProjectStatus = "normal"
	ProjectStatusAtRisk       ProjectStatus = "at_risk"
	ProjectStatusOutOfControl ProjectStatus = "out_of_control"
	ProjectStatusCompleted    ProjectStatus = "completed"
	ProjectStatusArchived     ProjectStatus = "archived"
)

type Priority string

const (
	PriorityCritical Priority = "critical"
	PriorityHigh     Priority = "high"
	PriorityMedium   Priority = "medium"
	PriorityLow      Priority = "low"
)

// PointsForPriority derives the default points value when the client omits one.
func PointsForPriority(p Priority) int {
	switch p {
	case PriorityCritical:
		return 10
	case PriorityHigh:
		return 8
	case PriorityMedium:
		return 5
	case PriorityLow:
		return 2
	}
	return 0
}

type TaskStatus string

const (
	TaskStatusTodo       TaskStatus = "todo"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusReview     TaskStatus = "review"
	TaskStatusDone       TaskStatus = "done"
	TaskStatusCancelled  TaskStatus = "cancelled"
)

type RequirementType string

const (
	RequirementTypeFeature     RequirementType = "feature"
	RequirementTypeEnhancement RequirementType = "enhancement"
	RequirementTypeBugfix      RequirementType = "bugfix"
	RequirementTypeResearch    RequirementType = "research"
)

type RequirementStatus string

const (
	RequirementStatusDraft       RequirementStatus = "draft"
	RequirementStatusReview      RequirementStatus = "review"
	RequirementStatusApproved    RequirementStatus = "approved"
	RequirementStatusDevelopment RequirementStatus = "development"
	RequirementStatusTesting     RequirementStatus = "testing"
	RequirementStatusCompleted   RequirementStatus = "completed"
	RequirementStatusRejected    RequirementStatus = "rejected"
)

type DefectStatus string

const (
	DefectStatusOpen       DefectStatus = "open"
	DefectStatusInProgress DefectStatus = "in_progress"
	DefectStatusResolved   DefectStatus = "resolved"
	DefectStatusClosed     DefectStatus = "closed"
	DefectStatusReopened   DefectStatus = "reopened"
)

type DefectType string

const (
	DefectTypeBug           DefectType = "bug"
	DefectTypeUI            DefectType = "ui"
	DefectTypePerformance   DefectType = "performance"
	DefectTypeSecurity      DefectType = "security"
	DefectTypeCompatibility DefectType = "compatibility"
)

// Date fields (startDate, endDate, dueDate, createdDate) carry ISO-8601 date
// strings ("2006-01-02") on the wire and at rest; validators parse and compare
// them before anything is persisted.

type Project struct {
	ID          string        `json:"id" gorm:"primaryKey"`
	Name        string        `json:"name" gorm:"not null"`
	Description string        `json:"description"`
	Type        ProjectType   `json:"type" gorm:"not null"`
	Status      ProjectStatus `json:"status" gorm:"default:'planning'"`
	Priority    Priority      `json:"priority" gorm:"default:'medium'"`
	StartDate   string        `json:"startDate"`
	EndDate     *string       `json:"endDate,omitempty"`
	Goals       []string      `json:"goals" gorm:"serializer:json"`
	Tags        []string      `json:"tags" gorm:"serializer:json"`
	Points      int           `json:"points"`
	OwnerUserID string        `json:"ownerUserId" gorm:"index"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

type Task struct {
	ID             string     `json:"id" gorm:"primaryKey"`
	ProjectID      string     `json:"projectId" gorm:"not null;index"`
	Title          string     `json:"title" gorm:"not null"`
	Description    string     `json:"description"`
	Status         TaskStatus `json:"status" gorm:"default:'todo'"`
	Priority       Priority   `json:"priority" gorm:"default:'medium'"`
	Assignee       string     `json:"assignee"`
	DueDate        *string    `json:"dueDate,omitempty"`
	EstimatedHours float64    `json:"estimatedHours"`
	CompletedHours float64    `json:"completedHours"`
	Tags           []string   `json:"tags" gorm:"serializer:json"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

type Requirement struct {
	ID          string            `json:"id" gorm:"primaryKey"`
	ProjectID   string            `json:"projectId" gorm:"not null;index"`
	Title       string            `json:"title" gorm:"not null"`
	Description string            `json:"description"`
	Type        RequirementType   `json:"type" gorm:"default:'feature'"`
	Status      RequirementStatus `json:"status" gorm:"default:'draft'"`
	Priority    Priority          `json:"priority" gorm:"default:'medium'"`
	StoryPoints int               `json:"storyPoints"`
	Points      int               `json:"points"`
	Tags        []string          `json:"tags" gorm:"serializer:json"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

type Defect struct {
	ID          string       `json:"id" gorm:"primaryKey"`
	ProjectID   string       `json:"projectId" gorm:"not null;index"`
	Title       string       `json:"title" gorm:"not null"`
	Description string       `json:"description"`
	Status      DefectStatus `json:"status" gorm:"default:'open'"`
	Severity    Priority     `json:"severity" gorm:"default:'medium'"`
	Type        DefectType   `json:"type" gorm:"default:'bug'"`
	Assignee    string       `json:"assignee"`
	Reporter    string       `json:"reporter"`
	CreatedDate string       `json:"createdDate"`
	DueDate     *string      `json:"dueDate,omitempty"`
	Environment string       `json:"environment"`
	Steps       []string     `json:"steps" gorm:"serializer:json"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}
