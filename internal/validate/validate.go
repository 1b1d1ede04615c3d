// Package validate holds the pure field validators used by the API handlers.
// Validators never touch storage; they check presence, length, enum
// membership and date ordering, and return the first failure as a localized
// message.
package validate

import (
	"regexp"
	"strings"
	"time"

	"github.com/wyc7758775/aglie-person-manage-sub001/internal/models"
)

const dateLayout = "2006-01-02"

// User-facing messages ship in Chinese, matching the dashboard locale.
const (
	MsgNicknameInvalid     = "昵称须为2-50个字符，仅支持字母、数字、下划线和中文"
	MsgPasswordInvalid     = "密码长度须为6-100个字符"
	MsgPasswordWrong       = "密码错误"
	MsgUserNotFound        = "用户不存在"
	MsgNicknameTaken       = "昵称已被注册"
	MsgNameRequired        = "名称不能为空"
	MsgNameTooLong         = "名称不能超过100个字符"
	MsgTitleRequired       = "标题不能为空"
	MsgTitleTooLong        = "标题不能超过200个字符"
	MsgTypeInvalid         = "类型不合法"
	MsgStatusInvalid       = "状态不合法"
	MsgPriorityInvalid     = "优先级不合法"
	MsgSeverityInvalid     = "严重程度不合法"
	MsgDateInvalid         = "日期格式不合法"
	MsgStartDateRequired   = "开始日期不能为空"
	MsgEndBeforeStart      = "结束日期不能早于开始日期"
	MsgDueBeforeCreated    = "截止日期不能早于创建日期"
	MsgProjectIDRequired   = "项目ID不能为空"
	MsgProjectNotFound     = "项目不存在"
	MsgHoursNegative       = "工时不能为负数"
	MsgPointsNegative      = "积分不能为负数"
	MsgStoryPointsNegative = "故事点不能为负数"
)

// Result is the outcome of a single validator. Message is only meaningful
// when OK is false.
type Result struct {
	OK      bool
	Message string
}

func ok() Result             { return Result{OK: true} }
func fail(msg string) Result { return Result{OK: false, Message: msg} }

var nicknameRe = regexp.MustCompile(`^[A-Za-z0-9_\x{4e00}-\x{9fa5}]{2,50}$`)

func Nickname(nickname string) Result {
	if !nicknameRe.MatchString(nickname) {
		return fail(MsgNicknameInvalid)
	}
	return ok()
}

func Password(password string) Result {
	// Length bounds count characters, not bytes.
	n := len([]rune(password))
	if n < 6 || n > 100 {
		return fail(MsgPasswordInvalid)
	}
	return ok()
}

// Required rejects empty and whitespace-only strings.
func Required(value, msg string) Result {
	if strings.TrimSpace(value) == "" {
		return fail(msg)
	}
	return ok()
}

func MaxLen(value string, max int, msg string) Result {
	if len([]rune(value)) > max {
		return fail(msg)
	}
	return ok()
}

// Date checks the ISO date layout. Empty strings pass; pair with Required
// when the field is mandatory.
func Date(value string) Result {
	if value == "" {
		return ok()
	}
	if _, err := time.Parse(dateLayout, value); err != nil {
		return fail(MsgDateInvalid)
	}
	return ok()
}

// DateOrder rejects end before start. Either side empty passes.
func DateOrder(start, end, msg string) Result {
	if start == "" || end == "" {
		return ok()
	}
	s, err := time.Parse(dateLayout, start)
	if err != nil {
		return fail(MsgDateInvalid)
	}
	e, err := time.Parse(dateLayout, end)
	if err != nil {
		return fail(MsgDateInvalid)
	}
	if e.Before(s) {
		return fail(msg)
	}
	return ok()
}

func NonNegative(v float64, msg string) Result {
	if v < 0 {
		return fail(msg)
	}
	return ok()
}

func ProjectType(t string) Result {
	switch models.ProjectType(t) {
	case models.ProjectTypeLife, models.ProjectTypeCode:
		return ok()
	}
	return fail(MsgTypeInvalid)
}

func ProjectStatus(s string) Result {
	switch models.ProjectStatus(s) {
	case models.ProjectStatusPlanning, models.ProjectStatusNormal,
		models.ProjectStatusAtRisk, models.ProjectStatusOutOfControl,
		models.ProjectStatusCompleted, models.ProjectStatusArchived:
		return ok()
	}
	return fail(MsgStatusInvalid)
}

func Priority(p string) Result {
	switch models.Priority(p) {
	case models.PriorityCritical, models.PriorityHigh,
		models.PriorityMedium, models.PriorityLow:
		return ok()
	}
	return fail(MsgPriorityInvalid)
}

func TaskStatus(s string) Result {
	switch models.TaskStatus(s) {
	case models.TaskStatusTodo, models.TaskStatusInProgress,
		models.TaskStatusReview, models.TaskStatusDone,
		models.TaskStatusCancelled:
		return ok()
	}
	return fail(MsgStatusInvalid)
}

func RequirementType(t string) Result {
	switch models.RequirementType(t) {
	case models.RequirementTypeFeature, models.RequirementTypeEnhancement,
		models.RequirementTypeBugfix, models.RequirementTypeResearch:
		return ok()
	}
	return fail(MsgTypeInvalid)
}

func RequirementStatus(s string) Result {
	switch models.RequirementStatus(s) {
	case models.RequirementStatusDraft, models.RequirementStatusReview,
		models.RequirementStatusApproved, models.RequirementStatusDevelopment,
		models.RequirementStatusTesting, models.RequirementStatusCompleted,
		models.RequirementStatusRejected:
		return ok()
	}
	return fail(MsgStatusInvalid)
}

func DefectStatus(s string) Result {
	switch models.DefectStatus(s) {
	case models.DefectStatusOpen, models.DefectStatusInProgress,
		models.DefectStatusResolved, models.DefectStatusClosed,
		models.DefectStatusReopened:
		return ok()
	}
	return fail(MsgStatusInvalid)
}

func DefectType(t string) Result {
	switch models.DefectType(t) {
	case models.DefectTypeBug, models.DefectTypeUI,
		models.DefectTypePerformance, models.DefectTypeSecurity,
		models.DefectTypeCompatibility:
		return ok()
	}
	return fail(MsgTypeInvalid)
}

// All runs validators in order and returns the first failure.
func All(results ...Result) Result {
	for _, r := range results {
		if !r.OK {
			return r
		}
	}
	return ok()
}
