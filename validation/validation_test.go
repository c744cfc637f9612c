package validation

import (
	"testing"
	"time"

	"taskboard/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func fieldErrors(t *testing.T, err error) Errors {
	t.Helper()
	require.Error(t, err)
	var verrs Errors
	require.ErrorAs(t, err, &verrs)
	return verrs
}

func ptr[T any](v T) *T { return &v }

func TestTeamMemberNormalizes(t *testing.T) {
	f, err := TeamMember(TeamMemberInput{Name: "  Ada ", Email: " Ada@Example.COM ", Designation: "Engineer"})
	require.NoError(t, err)
	require.Equal(t, "Ada", f.Name)
	require.Equal(t, "ada@example.com", f.Email)
}

func TestTeamMemberMessages(t *testing.T) {
	verrs := fieldErrors(t, func() error {
		_, err := TeamMember(TeamMemberInput{Name: "  ", Email: "nope", Designation: ""})
		return err
	}())
	require.Equal(t, Errors{
		{Field: "name", Message: "Name is required"},
		{Field: "email", Message: "Invalid email address"},
		{Field: "designation", Message: "Designation is required"},
	}, verrs)
}

func TestTeamMemberPatch(t *testing.T) {
	patch, err := TeamMemberPatch(TeamMemberPatchInput{Email: ptr("NEW@example.com")})
	require.NoError(t, err)
	require.Nil(t, patch.Name)
	require.Equal(t, "new@example.com", *patch.Email)

	// present but empty is still rejected
	verrs := fieldErrors(t, func() error {
		_, err := TeamMemberPatch(TeamMemberPatchInput{Name: ptr("")})
		return err
	}())
	require.Equal(t, "Name is required", verrs[0].Message)

	patch, err = TeamMemberPatch(TeamMemberPatchInput{})
	require.NoError(t, err)
	require.Empty(t, patch.Columns())
}

func TestProjectMembers(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	f, err := Project(ProjectInput{
		Name:        "Apollo",
		Description: "moon",
		TeamMembers: []string{b.String(), a.String(), b.String()},
	})
	require.NoError(t, err)
	require.Equal(t, []uuid.UUID{b, a}, f.TeamMemberIDs)

	verrs := fieldErrors(t, func() error {
		_, err := Project(ProjectInput{Name: "Apollo", Description: "moon", TeamMembers: []string{}})
		return err
	}())
	require.Equal(t, Errors{{Field: "teamMembers", Message: "At least one team member is required"}}, verrs)

	verrs = fieldErrors(t, func() error {
		_, err := Project(ProjectInput{Name: "Apollo", Description: "moon", TeamMembers: []string{a.String(), "abc"}})
		return err
	}())
	require.Equal(t, Errors{{Field: "teamMembers[1]", Message: "Invalid ID format"}}, verrs)

	verrs = fieldErrors(t, func() error {
		_, err := Project(ProjectInput{})
		return err
	}())
	require.Len(t, verrs, 3)
	require.Equal(t, "Project name is required", verrs[0].Message)
	require.Equal(t, "Project description is required", verrs[1].Message)
}

func TestProjectPatchKeepsMembersWhenAbsent(t *testing.T) {
	patch, err := ProjectPatch(ProjectPatchInput{Name: ptr("New")})
	require.NoError(t, err)
	require.Nil(t, patch.TeamMemberIDs)

	_, err = ProjectPatch(ProjectPatchInput{TeamMembers: []string{}})
	require.Error(t, err)
}

func TestTask(t *testing.T) {
	project, member := uuid.New(), uuid.New()
	in := TaskInput{
		Title:           "Ship",
		Description:     "it",
		Deadline:        "2030-05-01",
		Project:         project.String(),
		AssignedMembers: []string{member.String()},
	}

	f, err := Task(in)
	require.NoError(t, err)
	require.Equal(t, models.StatusToDo, f.Status)
	require.Equal(t, time.Date(2030, 5, 1, 0, 0, 0, 0, time.UTC), f.Deadline)
	require.Equal(t, project, f.ProjectID)

	in.Status = "blocked"
	in.Deadline = "soon"
	in.Project = "x"
	in.AssignedMembers = nil
	verrs := fieldErrors(t, func() error {
		_, err := Task(in)
		return err
	}())
	require.Equal(t, Errors{
		{Field: "deadline", Message: "Invalid date format"},
		{Field: "project", Message: "Invalid ID format"},
		{Field: "assignedMembers", Message: "At least one assigned member is required"},
		{Field: "status", Message: "Invalid status"},
	}, verrs)
}

func TestTaskPatch(t *testing.T) {
	patch, err := TaskPatch(TaskPatchInput{Status: ptr("done"), Deadline: ptr("2030-01-02T10:30:00Z")})
	require.NoError(t, err)
	require.Equal(t, models.StatusDone, *patch.Status)
	require.Equal(t, time.Date(2030, 1, 2, 10, 30, 0, 0, time.UTC), *patch.Deadline)
	require.Nil(t, patch.ProjectID)

	_, err = TaskPatch(TaskPatchInput{Title: ptr(" ")})
	require.Error(t, err)
	_, err = TaskPatch(TaskPatchInput{Status: ptr("")})
	require.Error(t, err)
}

func TestTaskQuery(t *testing.T) {
	member := uuid.New()
	filter, err := TaskQuery(TaskQueryInput{
		Page:      "2",
		Limit:     "500",
		Member:    member.String(),
		Status:    "in-progress",
		Search:    " fix ",
		StartDate: "2030-01-01",
		EndDate:   "2030-01-31",
	})
	require.NoError(t, err)
	require.Equal(t, models.Page{Number: 2, Limit: models.MaxLimit}, filter.Page)
	require.Equal(t, member, *filter.MemberID)
	require.Nil(t, filter.ProjectID)
	require.Equal(t, "fix", filter.Search)
	require.Equal(t, time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC), *filter.DeadlineFrom)
	require.Equal(t, time.Date(2030, 1, 31, 23, 59, 59, 999999999, time.UTC), *filter.DeadlineTo)

	filter, err = TaskQuery(TaskQueryInput{Page: "abc", Limit: "-3"})
	require.NoError(t, err)
	require.Equal(t, models.Page{Number: 1, Limit: models.DefaultLimit}, filter.Page)

	verrs := fieldErrors(t, func() error {
		_, err := TaskQuery(TaskQueryInput{Project: "nope", Status: "open", EndDate: "31/01/2030"})
		return err
	}())
	require.Len(t, verrs, 3)
}

func TestParseDate(t *testing.T) {
	for _, in := range []string{
		"2030-01-02",
		"2030-01-02T03:04",
		"2030-01-02T03:04:05",
		"2030-01-02T03:04:05+02:00",
		"2030-01-02T03:04:05.123Z",
	} {
		got, _, err := ParseDate(in)
		require.NoError(t, err, in)
		require.Equal(t, time.UTC, got.Location(), in)
	}

	_, dayOnly, err := ParseDate("2030-01-02")
	require.NoError(t, err)
	require.True(t, dayOnly)

	_, _, err = ParseDate("tomorrow")
	require.Error(t, err)
}

func TestSignupAndLogin(t *testing.T) {
	in, err := Signup(SignupInput{Name: "Ada", Email: "ADA@example.com", Password: " secret "})
	require.NoError(t, err)
	require.Equal(t, "ada@example.com", in.Email)
	require.Equal(t, " secret ", in.Password)

	verrs := fieldErrors(t, func() error {
		_, err := Signup(SignupInput{Name: "Ada", Email: "ada@example.com", Password: "123"})
		return err
	}())
	require.Equal(t, "Password must be at least 6 characters", verrs[0].Message)

	verrs = fieldErrors(t, func() error {
		_, err := Login(LoginInput{Email: "ada@example.com"})
		return err
	}())
	require.Equal(t, Errors{{Field: "password", Message: "Password is required"}}, verrs)
}

func TestID(t *testing.T) {
	id := uuid.New()
	got, err := ID(id.String())
	require.NoError(t, err)
	require.Equal(t, id, got)

	verrs := fieldErrors(t, func() error {
		_, err := ID("42")
		return err
	}())
	require.Equal(t, "Invalid ID format", verrs.Message())
}
