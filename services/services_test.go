package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"taskboard/config"
	"taskboard/database"
	"taskboard/logger"
	"taskboard/models"
	"taskboard/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type fixture struct {
	members  *TeamMemberService
	projects *ProjectService
	tasks    *TaskService
	auth     *AuthService
	tokens   *TokenManager
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	cfg := config.DatabaseConfig{
		Driver: config.DriverSQLite,
		Path:   "file:" + uuid.NewString() + "?mode=memory&cache=shared",
	}
	db, err := database.Open(cfg, "error", logger.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })
	require.NoError(t, database.Migrate(db, logger.Nop()))

	store := repository.New(db, logger.Nop())
	tokens := NewTokenManager("0123456789abcdef0123456789abcdef", time.Hour)
	auth := NewAuthService(store, tokens, logger.Nop())
	auth.cost = bcrypt.MinCost
	return &fixture{
		members:  NewTeamMemberService(store, logger.Nop()),
		projects: NewProjectService(store, store, logger.Nop()),
		tasks:    NewTaskService(store, store, store, logger.Nop()),
		auth:     auth,
		tokens:   tokens,
	}
}

func requireKind(t *testing.T, err error, kind Kind, msg string) {
	t.Helper()
	require.Error(t, err)
	var se *Error
	require.ErrorAs(t, err, &se)
	require.Equal(t, kind, se.Kind, se.Error())
	if msg != "" {
		require.Equal(t, msg, se.Message)
	}
}

func (f *fixture) member(t *testing.T, name string) *models.TeamMember {
	t.Helper()
	m, err := f.members.Create(context.Background(), models.TeamMemberFields{
		Name: name, Email: name + "@example.com", Designation: "dev",
	})
	require.NoError(t, err)
	return m
}

func TestTeamMemberEmailConflicts(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a := f.member(t, "a")
	b := f.member(t, "b")

	_, err := f.members.Create(ctx, models.TeamMemberFields{Name: "x", Email: "a@example.com", Designation: "y"})
	requireKind(t, err, KindConflict, "Email already in use")

	taken := "a@example.com"
	_, err = f.members.Update(ctx, b.ID, models.TeamMemberPatch{Email: &taken})
	requireKind(t, err, KindConflict, "Email already in use")

	// keeping your own email is fine
	updated, err := f.members.Update(ctx, a.ID, models.TeamMemberPatch{Email: &taken})
	require.NoError(t, err)
	require.Equal(t, taken, updated.Email)

	_, err = f.members.Update(ctx, uuid.New(), models.TeamMemberPatch{Email: &taken})
	requireKind(t, err, KindNotFound, "Team member not found")
}

func TestProjectIntegrity(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a := f.member(t, "a")

	_, err := f.projects.Create(ctx, models.ProjectFields{Name: "P", Description: "d", TeamMemberIDs: []uuid.UUID{a.ID, uuid.New()}})
	requireKind(t, err, KindReference, "One or more team members do not exist")

	p, err := f.projects.Create(ctx, models.ProjectFields{Name: "P", Description: "d", TeamMemberIDs: []uuid.UUID{a.ID}})
	require.NoError(t, err)

	_, err = f.projects.Create(ctx, models.ProjectFields{Name: "p", Description: "d", TeamMemberIDs: []uuid.UUID{a.ID}})
	requireKind(t, err, KindConflict, "Project with this name already exists")

	other, err := f.projects.Create(ctx, models.ProjectFields{Name: "Q", Description: "d", TeamMemberIDs: []uuid.UUID{a.ID}})
	require.NoError(t, err)

	name := "P"
	_, err = f.projects.Update(ctx, other.ID, models.ProjectPatch{Name: &name})
	requireKind(t, err, KindConflict, "Another project with this name already exists")

	// renaming to its own name in another case is allowed
	lower := "p"
	renamed, err := f.projects.Update(ctx, p.ID, models.ProjectPatch{Name: &lower})
	require.NoError(t, err)
	require.Equal(t, "p", renamed.Name)

	_, err = f.projects.Update(ctx, uuid.New(), models.ProjectPatch{TeamMemberIDs: []uuid.UUID{uuid.New()}})
	requireKind(t, err, KindNotFound, "Project not found")

	_, err = f.projects.Get(ctx, uuid.New())
	requireKind(t, err, KindNotFound, "Project not found")

	page, err := f.projects.List(ctx, models.NewPage(1, 1))
	require.NoError(t, err)
	require.EqualValues(t, 2, page.TotalCount)
	require.Equal(t, 2, page.TotalPages)
	require.Len(t, page.Data, 1)
}

func TestTaskIntegrity(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a := f.member(t, "a")
	p, err := f.projects.Create(ctx, models.ProjectFields{Name: "P", Description: "d", TeamMemberIDs: []uuid.UUID{a.ID}})
	require.NoError(t, err)

	fields := models.TaskFields{
		Title:             "T",
		Description:       "d",
		Deadline:          time.Now().UTC(),
		ProjectID:         uuid.New(),
		AssignedMemberIDs: []uuid.UUID{a.ID},
		Status:            models.StatusToDo,
	}
	_, err = f.tasks.Create(ctx, fields)
	requireKind(t, err, KindReference, "Project does not exist")

	fields.ProjectID = p.ID
	fields.AssignedMemberIDs = []uuid.UUID{uuid.New()}
	_, err = f.tasks.Create(ctx, fields)
	requireKind(t, err, KindReference, "One or more assigned members do not exist")

	fields.AssignedMemberIDs = []uuid.UUID{a.ID}
	task, err := f.tasks.Create(ctx, fields)
	require.NoError(t, err)

	_, err = f.tasks.Create(ctx, fields)
	requireKind(t, err, KindConflict, "Task with this title already exists")

	fields.Title = "U"
	other, err := f.tasks.Create(ctx, fields)
	require.NoError(t, err)

	title := "t"
	_, err = f.tasks.Update(ctx, other.ID, models.TaskPatch{Title: &title})
	requireKind(t, err, KindConflict, "Another task with this title already exists")

	missing := uuid.New()
	_, err = f.tasks.Update(ctx, task.ID, models.TaskPatch{ProjectID: &missing})
	requireKind(t, err, KindReference, "Project does not exist")

	requireKind(t, f.members.Delete(ctx, a.ID), KindConflict, "Team member is still assigned to projects or tasks")
	requireKind(t, f.projects.Delete(ctx, p.ID), KindConflict, "Project still has tasks")

	require.NoError(t, f.tasks.Delete(ctx, task.ID))
	requireKind(t, f.tasks.Delete(ctx, task.ID), KindNotFound, "Task not found")
}

func TestNonASCIINamesAndSearch(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a := f.member(t, "a")

	p, err := f.projects.Create(ctx, models.ProjectFields{Name: "école", Description: "d", TeamMemberIDs: []uuid.UUID{a.ID}})
	require.NoError(t, err)
	_, err = f.projects.Create(ctx, models.ProjectFields{Name: "École", Description: "d", TeamMemberIDs: []uuid.UUID{a.ID}})
	requireKind(t, err, KindConflict, "Project with this name already exists")

	_, err = f.tasks.Create(ctx, models.TaskFields{
		Title: "ÉTUDE", Description: "lire", Deadline: time.Now().Add(time.Hour),
		ProjectID: p.ID, AssignedMemberIDs: []uuid.UUID{a.ID},
	})
	require.NoError(t, err)

	res, err := f.tasks.List(ctx, models.TaskFilter{Page: models.NewPage(1, 10), Search: "étude"})
	require.NoError(t, err)
	require.EqualValues(t, 1, res.TotalCount)
	require.Equal(t, "ÉTUDE", res.Data[0].Title)
}

func TestLoginUnknownEmailStillComparesHash(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	require.Nil(t, f.auth.dummyHash)

	_, err := f.auth.Login(ctx, "nobody@example.com", "secret1")
	requireKind(t, err, KindUnauthorized, "Invalid email or password")

	cost, err := bcrypt.Cost(f.auth.dummyHash)
	require.NoError(t, err)
	require.Equal(t, f.auth.cost, cost)
}

func TestAuthSignupLogin(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	res, err := f.auth.Signup(ctx, "Ada", "ada@example.com", "secret1")
	require.NoError(t, err)
	require.NotEmpty(t, res.Token)
	require.NotEqual(t, "secret1", res.User.Password)

	id, err := f.tokens.Parse(res.Token)
	require.NoError(t, err)
	require.Equal(t, res.User.ID, id)

	_, err = f.auth.Signup(ctx, "Ada", "ada@example.com", "other12")
	requireKind(t, err, KindConflict, "Email already registered")

	_, err = f.auth.Login(ctx, "ada@example.com", "wrong")
	requireKind(t, err, KindUnauthorized, "Invalid email or password")
	_, err = f.auth.Login(ctx, "nobody@example.com", "secret1")
	requireKind(t, err, KindUnauthorized, "Invalid email or password")

	res, err = f.auth.Login(ctx, "ada@example.com", "secret1")
	require.NoError(t, err)

	me, err := f.auth.Me(ctx, res.User.ID)
	require.NoError(t, err)
	require.Equal(t, "Ada", me.Name)

	_, err = f.auth.Me(ctx, uuid.New())
	requireKind(t, err, KindNotFound, "User not found")
}

type membersMock struct {
	mock.Mock
	repository.TeamMembers
}

func (m *membersMock) ListTeamMembers(ctx context.Context, page models.Page) ([]models.TeamMember, int64, error) {
	args := m.Called(ctx, page)
	return args.Get(0).([]models.TeamMember), args.Get(1).(int64), args.Error(2)
}

func (m *membersMock) DeleteTeamMember(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func TestStoreFailuresBecomeInternal(t *testing.T) {
	repo := new(membersMock)
	boom := errors.New("connection reset")
	page := models.NewPage(1, 10)
	repo.On("ListTeamMembers", mock.Anything, page).Return([]models.TeamMember(nil), int64(0), boom)
	repo.On("DeleteTeamMember", mock.Anything, mock.Anything).Return(boom)

	svc := NewTeamMemberService(repo, logger.Nop())

	_, err := svc.List(context.Background(), page)
	requireKind(t, err, KindInternal, "Error fetching team members")
	require.ErrorIs(t, err, boom)

	err = svc.Delete(context.Background(), uuid.New())
	requireKind(t, err, KindInternal, "Error deleting team member")
	repo.AssertExpectations(t)
}
