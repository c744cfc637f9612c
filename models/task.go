// models/task.go
package models

import (
	"time"

	"taskboard/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Task is a unit of work inside one project, assigned to one or more team members.
type Task struct {
	ID              uuid.UUID        `json:"id" gorm:"type:uuid;primaryKey"`
	Title           string           `json:"title" gorm:"not null;size:300"`
	Description     string           `json:"description" gorm:"type:text;not null"`
	TitleKey        string           `json:"-" gorm:"type:text;not null;uniqueIndex:idx_tasks_title_key"`
	DescriptionKey  string           `json:"-" gorm:"type:text;not null"`
	Deadline        time.Time        `json:"deadline" gorm:"not null;index"`
	ProjectID       uuid.UUID        `json:"projectId" gorm:"type:uuid;not null;index"`
	Project         *Project         `json:"project,omitempty" gorm:"foreignKey:ProjectID;constraint:OnDelete:RESTRICT"`
	Assignments     []TaskAssignment `json:"-" gorm:"foreignKey:TaskID;constraint:OnDelete:CASCADE"`
	AssignedMembers []TeamMember     `json:"assignedMembers" gorm:"-"`
	Status          TaskStatus       `json:"status" gorm:"type:varchar(20);not null;default:'to-do';index;check:chk_tasks_status,status IN ('to-do','in-progress','done','cancelled')"`
	CreatedAt       time.Time        `json:"createdAt" gorm:"index"`
	UpdatedAt       time.Time        `json:"updatedAt"`
}

// TaskAssignment is the join row between a task and an assigned team member.
type TaskAssignment struct {
	TaskID       uuid.UUID  `gorm:"type:uuid;primaryKey"`
	TeamMemberID uuid.UUID  `gorm:"type:uuid;primaryKey;index"`
	Position     int        `gorm:"not null"`
	TeamMember   TeamMember `gorm:"foreignKey:TeamMemberID;constraint:OnDelete:RESTRICT"`
}

func (Task) TableName() string {
	return "tasks"
}

func (TaskAssignment) TableName() string {
	return "task_assignments"
}

func (t *Task) BeforeCreate(tx *gorm.DB) error {
	t.TitleKey = utils.FoldKey(t.Title)
	t.DescriptionKey = utils.FoldKey(t.Description)
	if t.Status == "" {
		t.Status = StatusToDo
	}
	return assignID(&t.ID)
}

// AfterFind exposes the preloaded assignments as the assignedMembers list.
func (t *Task) AfterFind(tx *gorm.DB) error {
	t.AssignedMembers = make([]TeamMember, 0, len(t.Assignments))
	for _, a := range t.Assignments {
		t.AssignedMembers = append(t.AssignedMembers, a.TeamMember)
	}
	return nil
}

// TaskFields is a validated, normalized create payload.
type TaskFields struct {
	Title             string
	Description       string
	Deadline          time.Time
	ProjectID         uuid.UUID
	AssignedMemberIDs []uuid.UUID
	Status            TaskStatus
}

// TaskPatch carries the fields of a partial update. Nil means unchanged.
type TaskPatch struct {
	Title             *string
	Description       *string
	Deadline          *time.Time
	ProjectID         *uuid.UUID
	AssignedMemberIDs []uuid.UUID
	Status            *TaskStatus
}

// Columns returns the scalar column updates described by the patch.
func (p TaskPatch) Columns() map[string]any {
	cols := make(map[string]any)
	if p.Title != nil {
		cols["title"] = *p.Title
		cols["title_key"] = utils.FoldKey(*p.Title)
	}
	if p.Description != nil {
		cols["description"] = *p.Description
		cols["description_key"] = utils.FoldKey(*p.Description)
	}
	if p.Deadline != nil {
		cols["deadline"] = *p.Deadline
	}
	if p.ProjectID != nil {
		cols["project_id"] = *p.ProjectID
	}
	if p.Status != nil {
		cols["status"] = *p.Status
	}
	return cols
}

// NewTaskAssignments builds ordered join rows for the given member ids.
func NewTaskAssignments(taskID uuid.UUID, memberIDs []uuid.UUID) []TaskAssignment {
	rows := make([]TaskAssignment, 0, len(memberIDs))
	for i, id := range memberIDs {
		rows = append(rows, TaskAssignment{TaskID: taskID, TeamMemberID: id, Position: i})
	}
	return rows
}
