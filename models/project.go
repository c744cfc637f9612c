// models/project.go
package models

import (
	"time"

	"taskboard/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Project is a named unit of work with an ordered list of assigned team members.
type Project struct {
	ID          uuid.UUID       `json:"id" gorm:"type:uuid;primaryKey"`
	Name        string          `json:"name" gorm:"not null;size:200"`
	NameKey     string          `json:"-" gorm:"type:text;not null;uniqueIndex:idx_projects_name_key"`
	Description string          `json:"description" gorm:"type:text;not null"`
	Members     []ProjectMember `json:"-" gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE"`
	TeamMembers []TeamMember    `json:"teamMembers,omitempty" gorm:"-"`
	CreatedAt   time.Time       `json:"createdAt" gorm:"index"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// ProjectMember is the join row between a project and a team member.
// Position keeps the order in which members were submitted.
type ProjectMember struct {
	ProjectID    uuid.UUID  `gorm:"type:uuid;primaryKey"`
	TeamMemberID uuid.UUID  `gorm:"type:uuid;primaryKey;index"`
	Position     int        `gorm:"not null"`
	TeamMember   TeamMember `gorm:"foreignKey:TeamMemberID;constraint:OnDelete:RESTRICT"`
}

func (Project) TableName() string {
	return "projects"
}

func (ProjectMember) TableName() string {
	return "project_members"
}

func (p *Project) BeforeCreate(tx *gorm.DB) error {
	p.NameKey = utils.FoldKey(p.Name)
	return assignID(&p.ID)
}

// AfterFind exposes the preloaded join rows as the teamMembers list.
func (p *Project) AfterFind(tx *gorm.DB) error {
	if len(p.Members) == 0 {
		return nil
	}
	p.TeamMembers = make([]TeamMember, 0, len(p.Members))
	for _, m := range p.Members {
		p.TeamMembers = append(p.TeamMembers, m.TeamMember)
	}
	return nil
}

// MemberIDs returns the ids of the project's members in order.
func (p *Project) MemberIDs() []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(p.Members))
	for _, m := range p.Members {
		ids = append(ids, m.TeamMemberID)
	}
	return ids
}

// ProjectFields is a validated, normalized create payload.
type ProjectFields struct {
	Name          string
	Description   string
	TeamMemberIDs []uuid.UUID
}

// ProjectPatch carries the fields of a partial update. Nil means unchanged.
type ProjectPatch struct {
	Name          *string
	Description   *string
	TeamMemberIDs []uuid.UUID
}

// Columns returns the scalar column updates described by the patch.
func (p ProjectPatch) Columns() map[string]any {
	cols := make(map[string]any)
	if p.Name != nil {
		cols["name"] = *p.Name
		cols["name_key"] = utils.FoldKey(*p.Name)
	}
	if p.Description != nil {
		cols["description"] = *p.Description
	}
	return cols
}

// NewProjectMembers builds ordered join rows for the given member ids.
func NewProjectMembers(projectID uuid.UUID, memberIDs []uuid.UUID) []ProjectMember {
	rows := make([]ProjectMember, 0, len(memberIDs))
	for i, id := range memberIDs {
		rows = append(rows, ProjectMember{ProjectID: projectID, TeamMemberID: id, Position: i})
	}
	return rows
}
