package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"taskboard/utils"
	"taskboard/validation"

	"github.com/google/uuid"
)

// Fixture is the seed file format. Projects and tasks point at members by
// email and tasks point at projects by name.
type Fixture struct {
	TeamMembers []validation.TeamMemberInput `json:"teamMembers"`
	Projects    []FixtureProject             `json:"projects"`
	Tasks       []FixtureTask                `json:"tasks"`
}

type FixtureProject struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	TeamMembers []string `json:"teamMembers"`
}

type FixtureTask struct {
	Title           string   `json:"title"`
	Description     string   `json:"description"`
	Deadline        string   `json:"deadline"`
	Project         string   `json:"project"`
	AssignedMembers []string `json:"assignedMembers"`
	Status          string   `json:"status"`
}

func readFixture(path string) (*Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixture: %w", err)
	}
	var f Fixture
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse fixture %s: %w", path, err)
	}
	return &f, nil
}

// Problem is one lint finding.
type Problem struct {
	Path    string
	Message string
}

func (p Problem) String() string {
	return p.Path + ": " + p.Message
}

// lintFixture checks every record with the API's validation rules. References
// are resolved inside the file, so the file must be self-contained.
func lintFixture(f *Fixture) []Problem {
	var problems []Problem
	add := func(prefix string, err error) {
		if verrs, ok := err.(validation.Errors); ok {
			for _, fe := range verrs {
				problems = append(problems, Problem{Path: prefix + "." + fe.Field, Message: fe.Message})
			}
			return
		}
		problems = append(problems, Problem{Path: prefix, Message: err.Error()})
	}

	emails := make(map[string]uuid.UUID, len(f.TeamMembers))
	for i, m := range f.TeamMembers {
		prefix := fmt.Sprintf("teamMembers[%d]", i)
		fields, err := validation.TeamMember(m)
		if err != nil {
			add(prefix, err)
			continue
		}
		if _, dup := emails[fields.Email]; dup {
			problems = append(problems, Problem{Path: prefix + ".email", Message: "Email already in use"})
			continue
		}
		emails[fields.Email] = uuid.New()
	}

	resolve := func(prefix string, refs []string) []string {
		ids := make([]string, 0, len(refs))
		for j, email := range refs {
			id, ok := emails[utils.NormalizeEmail(email)]
			if !ok {
				problems = append(problems, Problem{
					Path:    fmt.Sprintf("%s[%d]", prefix, j),
					Message: fmt.Sprintf("unknown team member %q", email),
				})
				continue
			}
			ids = append(ids, id.String())
		}
		return ids
	}

	projects := make(map[string]uuid.UUID, len(f.Projects))
	for i, p := range f.Projects {
		prefix := fmt.Sprintf("projects[%d]", i)
		in := validation.ProjectInput{
			Name:        p.Name,
			Description: p.Description,
			TeamMembers: resolve(prefix+".teamMembers", p.TeamMembers),
		}
		if len(p.TeamMembers) > 0 && len(in.TeamMembers) == 0 {
			continue
		}
		fields, err := validation.Project(in)
		if err != nil {
			add(prefix, err)
			continue
		}
		key := strings.ToLower(fields.Name)
		if _, dup := projects[key]; dup {
			problems = append(problems, Problem{Path: prefix + ".name", Message: "Project with this name already exists"})
			continue
		}
		projects[key] = uuid.New()
	}

	titles := make(map[string]struct{}, len(f.Tasks))
	for i, task := range f.Tasks {
		prefix := fmt.Sprintf("tasks[%d]", i)
		projectID, ok := projects[strings.ToLower(strings.TrimSpace(task.Project))]
		if !ok {
			problems = append(problems, Problem{Path: prefix + ".project", Message: fmt.Sprintf("unknown project %q", task.Project)})
			continue
		}
		in := validation.TaskInput{
			Title:           task.Title,
			Description:     task.Description,
			Deadline:        task.Deadline,
			Project:         projectID.String(),
			AssignedMembers: resolve(prefix+".assignedMembers", task.AssignedMembers),
			Status:          task.Status,
		}
		if len(task.AssignedMembers) > 0 && len(in.AssignedMembers) == 0 {
			continue
		}
		fields, err := validation.Task(in)
		if err != nil {
			add(prefix, err)
			continue
		}
		key := strings.ToLower(fields.Title)
		if _, dup := titles[key]; dup {
			problems = append(problems, Problem{Path: prefix + ".title", Message: "Task with this title already exists"})
			continue
		}
		titles[key] = struct{}{}
	}
	return problems
}
