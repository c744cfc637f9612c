package validation

import (
	"strconv"
	"strings"

	"taskboard/models"
	"taskboard/utils"

	"github.com/google/uuid"
)

type TeamMemberInput struct {
	Name        string `json:"name" validate:"notblank"`
	Email       string `json:"email" validate:"notblank,email"`
	Designation string `json:"designation" validate:"notblank"`
}

type TeamMemberPatchInput struct {
	Name        *string `json:"name" validate:"omitnil,notblank"`
	Email       *string `json:"email" validate:"omitnil,notblank,email"`
	Designation *string `json:"designation" validate:"omitnil,notblank"`
}

// TeamMember validates a create payload.
func TeamMember(in TeamMemberInput) (models.TeamMemberFields, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	in.Designation = strings.TrimSpace(in.Designation)
	if err := check(in); err != nil {
		return models.TeamMemberFields{}, err
	}
	return models.TeamMemberFields{
		Name:        in.Name,
		Email:       utils.NormalizeEmail(in.Email),
		Designation: in.Designation,
	}, nil
}

// TeamMemberPatch validates a partial update. Absent fields stay untouched.
func TeamMemberPatch(in TeamMemberPatchInput) (models.TeamMemberPatch, error) {
	in.Name, in.Email, in.Designation = trim(in.Name), trim(in.Email), trim(in.Designation)
	if err := check(in); err != nil {
		return models.TeamMemberPatch{}, err
	}
	if in.Email != nil {
		email := utils.NormalizeEmail(*in.Email)
		in.Email = &email
	}
	return models.TeamMemberPatch{Name: in.Name, Email: in.Email, Designation: in.Designation}, nil
}

type ProjectInput struct {
	Name        string   `json:"name" validate:"notblank"`
	Description string   `json:"description" validate:"notblank"`
	TeamMembers []string `json:"teamMembers" validate:"required,min=1,dive,id"`
}

type ProjectPatchInput struct {
	Name        *string  `json:"name" validate:"omitnil,notblank"`
	Description *string  `json:"description" validate:"omitnil,notblank"`
	TeamMembers []string `json:"teamMembers" validate:"omitnil,min=1,dive,id"`
}

func Project(in ProjectInput) (models.ProjectFields, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Description = strings.TrimSpace(in.Description)
	in.TeamMembers = trimAll(in.TeamMembers)
	if err := check(in); err != nil {
		return models.ProjectFields{}, err
	}
	return models.ProjectFields{
		Name:          in.Name,
		Description:   in.Description,
		TeamMemberIDs: parseIDs(in.TeamMembers),
	}, nil
}

func ProjectPatch(in ProjectPatchInput) (models.ProjectPatch, error) {
	in.Name, in.Description = trim(in.Name), trim(in.Description)
	in.TeamMembers = trimAll(in.TeamMembers)
	if err := check(in); err != nil {
		return models.ProjectPatch{}, err
	}
	patch := models.ProjectPatch{Name: in.Name, Description: in.Description}
	if in.TeamMembers != nil {
		patch.TeamMemberIDs = parseIDs(in.TeamMembers)
	}
	return patch, nil
}

type TaskInput struct {
	Title           string   `json:"title" validate:"notblank"`
	Description     string   `json:"description" validate:"notblank"`
	Deadline        string   `json:"deadline" validate:"notblank,date"`
	Project         string   `json:"project" validate:"notblank,id"`
	AssignedMembers []string `json:"assignedMembers" validate:"required,min=1,dive,id"`
	Status          string   `json:"status" validate:"omitempty,status"`
}

type TaskPatchInput struct {
	Title           *string  `json:"title" validate:"omitnil,notblank"`
	Description     *string  `json:"description" validate:"omitnil,notblank"`
	Deadline        *string  `json:"deadline" validate:"omitnil,notblank,date"`
	Project         *string  `json:"project" validate:"omitnil,notblank,id"`
	AssignedMembers []string `json:"assignedMembers" validate:"omitnil,min=1,dive,id"`
	Status          *string  `json:"status" validate:"omitnil,status"`
}

func Task(in TaskInput) (models.TaskFields, error) {
	in.Title = strings.TrimSpace(in.Title)
	in.Description = strings.TrimSpace(in.Description)
	in.Deadline = strings.TrimSpace(in.Deadline)
	in.Project = strings.TrimSpace(in.Project)
	in.AssignedMembers = trimAll(in.AssignedMembers)
	in.Status = strings.TrimSpace(in.Status)
	if err := check(in); err != nil {
		return models.TaskFields{}, err
	}

	deadline, _, _ := ParseDate(in.Deadline)
	status := models.TaskStatus(in.Status)
	if status == "" {
		status = models.StatusToDo
	}
	return models.TaskFields{
		Title:             in.Title,
		Description:       in.Description,
		Deadline:          deadline,
		ProjectID:         uuid.MustParse(in.Project),
		AssignedMemberIDs: parseIDs(in.AssignedMembers),
		Status:            status,
	}, nil
}

func TaskPatch(in TaskPatchInput) (models.TaskPatch, error) {
	in.Title, in.Description = trim(in.Title), trim(in.Description)
	in.Deadline, in.Project, in.Status = trim(in.Deadline), trim(in.Project), trim(in.Status)
	in.AssignedMembers = trimAll(in.AssignedMembers)
	if err := check(in); err != nil {
		return models.TaskPatch{}, err
	}

	patch := models.TaskPatch{Title: in.Title, Description: in.Description}
	if in.Deadline != nil {
		deadline, _, _ := ParseDate(*in.Deadline)
		patch.Deadline = &deadline
	}
	if in.Project != nil {
		id := uuid.MustParse(*in.Project)
		patch.ProjectID = &id
	}
	if in.AssignedMembers != nil {
		patch.AssignedMemberIDs = parseIDs(in.AssignedMembers)
	}
	if in.Status != nil {
		status := models.TaskStatus(*in.Status)
		patch.Status = &status
	}
	return patch, nil
}

// TaskQueryInput is the raw query string of a task listing.
type TaskQueryInput struct {
	Page      string `json:"page" query:"page"`
	Limit     string `json:"limit" query:"limit"`
	Project   string `json:"project" query:"project" validate:"omitempty,id"`
	Member    string `json:"member" query:"member" validate:"omitempty,id"`
	Status    string `json:"status" query:"status" validate:"omitempty,status"`
	Search    string `json:"search" query:"search"`
	StartDate string `json:"startDate" query:"startDate" validate:"omitempty,date"`
	EndDate   string `json:"endDate" query:"endDate" validate:"omitempty,date"`
}

// TaskQuery validates listing filters. Bad paging values fall back to the
// defaults, anything else that does not parse is rejected.
func TaskQuery(in TaskQueryInput) (models.TaskFilter, error) {
	in.Project = strings.TrimSpace(in.Project)
	in.Member = strings.TrimSpace(in.Member)
	in.Status = strings.TrimSpace(in.Status)
	in.StartDate = strings.TrimSpace(in.StartDate)
	in.EndDate = strings.TrimSpace(in.EndDate)
	if err := check(in); err != nil {
		return models.TaskFilter{}, err
	}

	filter := models.TaskFilter{
		Page:   Page(in.Page, in.Limit),
		Search: strings.TrimSpace(in.Search),
	}
	if in.Project != "" {
		id := uuid.MustParse(in.Project)
		filter.ProjectID = &id
	}
	if in.Member != "" {
		id := uuid.MustParse(in.Member)
		filter.MemberID = &id
	}
	if in.Status != "" {
		status := models.TaskStatus(in.Status)
		filter.Status = &status
	}
	if in.StartDate != "" {
		from, _, _ := ParseDate(in.StartDate)
		filter.DeadlineFrom = &from
	}
	if in.EndDate != "" {
		to, dayOnly, _ := ParseDate(in.EndDate)
		if dayOnly {
			to = endOfDay(to)
		}
		filter.DeadlineTo = &to
	}
	return filter, nil
}

// Page reads page and limit query values. Anything non-numeric means the default.
func Page(page, limit string) models.Page {
	n, err := strconv.Atoi(strings.TrimSpace(page))
	if err != nil {
		n = models.DefaultPage
	}
	l, err := strconv.Atoi(strings.TrimSpace(limit))
	if err != nil {
		l = models.DefaultLimit
	}
	return models.NewPage(n, l)
}

type SignupInput struct {
	Name     string `json:"name" validate:"notblank"`
	Email    string `json:"email" validate:"notblank,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type LoginInput struct {
	Email    string `json:"email" validate:"notblank,email"`
	Password string `json:"password" validate:"required"`
}

// Signup validates a registration request. The password is left as typed.
func Signup(in SignupInput) (SignupInput, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	if err := check(in); err != nil {
		return SignupInput{}, err
	}
	in.Email = utils.NormalizeEmail(in.Email)
	return in, nil
}

func Login(in LoginInput) (LoginInput, error) {
	in.Email = strings.TrimSpace(in.Email)
	if err := check(in); err != nil {
		return LoginInput{}, err
	}
	in.Email = utils.NormalizeEmail(in.Email)
	return in, nil
}
