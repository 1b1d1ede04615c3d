package validate

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNickname(t *testing.T) {
	valid := []string{"admin", "user_01", "张三", "ab", strings.Repeat("a", 50)}
	for _, n := range valid {
		assert.True(t, Nickname(n).OK, "nickname %q should be valid", n)
	}

	invalid := []string{"", "a", "has space", "bad!char", strings.Repeat("a", 51)}
	for _, n := range invalid {
		r := Nickname(n)
		assert.False(t, r.OK, "nickname %q should be rejected", n)
		assert.Equal(t, MsgNicknameInvalid, r.Message)
	}
}

func TestPassword(t *testing.T) {
	assert.True(t, Password("123456").OK)
	assert.True(t, Password(strings.Repeat("x", 100)).OK)

	assert.False(t, Password("12345").OK)
	assert.False(t, Password("").OK)
	assert.False(t, Password(strings.Repeat("x", 101)).OK)
	assert.Equal(t, MsgPasswordInvalid, Password("12345").Message)

	// Bounds count characters, not bytes.
	assert.False(t, Password("密码密码").OK, "4 characters is too short regardless of byte width")
	assert.True(t, Password("密码密码密码").OK)
	assert.True(t, Password(strings.Repeat("密", 40)).OK)
	assert.True(t, Password(strings.Repeat("密", 100)).OK)
	assert.False(t, Password(strings.Repeat("密", 101)).OK)
}

func TestRequired(t *testing.T) {
	assert.True(t, Required("项目", MsgNameRequired).OK)
	assert.False(t, Required("", MsgNameRequired).OK)

	// Whitespace-only counts as empty.
	r := Required("   ", MsgNameRequired)
	assert.False(t, r.OK)
	assert.Equal(t, MsgNameRequired, r.Message)
}

func TestMaxLen(t *testing.T) {
	assert.True(t, MaxLen(strings.Repeat("a", 100), 100, MsgNameTooLong).OK)
	assert.False(t, MaxLen(strings.Repeat("a", 101), 100, MsgNameTooLong).OK)

	// Limits count runes, not bytes.
	assert.True(t, MaxLen(strings.Repeat("汉", 100), 100, MsgNameTooLong).OK)
}

func TestDate(t *testing.T) {
	assert.True(t, Date("2026-01-15").OK)
	assert.True(t, Date("").OK, "empty dates are optional")

	for _, d := range []string{"2026-1-5", "15/01/2026", "2026-13-01", "not-a-date"} {
		r := Date(d)
		assert.False(t, r.OK, "date %q should be rejected", d)
		assert.Equal(t, MsgDateInvalid, r.Message)
	}
}

func TestDateOrder(t *testing.T) {
	assert.True(t, DateOrder("2026-01-01", "2026-06-30", MsgEndBeforeStart).OK)
	assert.True(t, DateOrder("2026-01-01", "2026-01-01", MsgEndBeforeStart).OK, "same day is allowed")
	assert.True(t, DateOrder("", "2026-06-30", MsgEndBeforeStart).OK)
	assert.True(t, DateOrder("2026-01-01", "", MsgEndBeforeStart).OK)

	r := DateOrder("2026-06-30", "2026-01-01", MsgEndBeforeStart)
	assert.False(t, r.OK)
	assert.Equal(t, MsgEndBeforeStart, r.Message)

	assert.Equal(t, MsgDateInvalid, DateOrder("bad", "2026-01-01", MsgEndBeforeStart).Message)
}

func TestNonNegative(t *testing.T) {
	assert.True(t, NonNegative(0, MsgHoursNegative).OK)
	assert.True(t, NonNegative(7.5, MsgHoursNegative).OK)
	assert.False(t, NonNegative(-1, MsgHoursNegative).OK)
}

func TestEnumValidators(t *testing.T) {
	cases := []struct {
		name    string
		fn      func(string) Result
		valid   []string
		invalid string
		msg     string
	}{
		{"ProjectType", ProjectType, []string{"life", "code"}, "work", MsgTypeInvalid},
		{"ProjectStatus", ProjectStatus, []string{"planning", "normal", "at_risk", "out_of_control", "completed", "archived"}, "paused", MsgStatusInvalid},
		{"Priority", Priority, []string{"critical", "high", "medium", "low"}, "urgent", MsgPriorityInvalid},
		{"TaskStatus", TaskStatus, []string{"todo", "in_progress", "review", "done", "cancelled"}, "blocked", MsgStatusInvalid},
		{"RequirementType", RequirementType, []string{"feature", "enhancement", "bugfix", "research"}, "chore", MsgTypeInvalid},
		{"RequirementStatus", RequirementStatus, []string{"draft", "review", "approved", "development", "testing", "completed", "rejected"}, "pending", MsgStatusInvalid},
		{"DefectStatus", DefectStatus, []string{"open", "in_progress", "resolved", "closed", "reopened"}, "wontfix", MsgStatusInvalid},
		{"DefectType", DefectType, []string{"bug", "ui", "performance", "security", "compatibility"}, "docs", MsgTypeInvalid},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			for _, v := range tc.valid {
				assert.True(t, tc.fn(v).OK, "%s %q should be valid", tc.name, v)
			}
			r := tc.fn(tc.invalid)
			assert.False(t, r.OK)
			assert.Equal(t, tc.msg, r.Message)

			assert.False(t, tc.fn("").OK, "%s rejects empty", tc.name)
		})
	}
}

func TestAll(t *testing.T) {
	r := All(
		Required("名称", MsgNameRequired),
		Date("2026-01-01"),
	)
	assert.True(t, r.OK)

	// Stops at the first failure.
	r = All(
		Required("", MsgNameRequired),
		Date("not-a-date"),
	)
	assert.False(t, r.OK)
	assert.Equal(t, MsgNameRequired, r.Message)
}
