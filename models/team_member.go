// models/team_member.go
package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TeamMember is a person that can be assigned to projects and tasks.
type TeamMember struct {
	ID          uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	Name        string    `json:"name" gorm:"not null;size:200"`
	Email       string    `json:"email" gorm:"not null;size:320;uniqueIndex"`
	Designation string    `json:"designation" gorm:"not null;size:200"`
	CreatedAt   time.Time `json:"createdAt" gorm:"index"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (TeamMember) TableName() string {
	return "team_members"
}

func (m *TeamMember) BeforeCreate(tx *gorm.DB) error {
	return assignID(&m.ID)
}

// TeamMemberFields is a validated, normalized create payload.
type TeamMemberFields struct {
	Name        string
	Email       string
	Designation string
}

// TeamMemberPatch carries the fields of a partial update. Nil means unchanged.
type TeamMemberPatch struct {
	Name        *string
	Email       *string
	Designation *string
}

// Columns returns the column updates described by the patch.
func (p TeamMemberPatch) Columns() map[string]any {
	cols := make(map[string]any)
	if p.Name != nil {
		cols["name"] = *p.Name
	}
	if p.Email != nil {
		cols["email"] = *p.Email
	}
	if p.Designation != nil {
		cols["designation"] = *p.Designation
	}
	return cols
}
