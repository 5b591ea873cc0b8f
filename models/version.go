package models

import (
	"github.com/google/uuid"
)

type Version struct {
	ID         uuid.UUID     `json:"id" gorm:"type:uuid;primaryKey"`
	ProjectID  uuid.UUID     `json:"project_id" gorm:"type:uuid;not null;uniqueIndex:idx_version_project_number,priority:1"`
	Number     VersionNumber `json:"number" gorm:"embedded"`
	CreatedAt  Date          `json:"created_at" gorm:"not null"`
	ReleasedAt *Date         `json:"released_at"`
	Changes    []Change      `json:"-" gorm:"foreignKey:VersionID;constraint:OnDelete:CASCADE"`
}

func (v *Version) IsReleased() bool {
	return v.ReleasedAt != nil
}

// VersionsPage is one page of a project's versions, newest first.
type VersionsPage struct {
	Versions      []Version `json:"versions"`
	PreviousToken *string   `json:"previous_token"`
	NextToken     *string   `json:"next_token"`
}
