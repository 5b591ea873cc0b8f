package models

import (
	"github.com/google/uuid"
)

type ChangeKind string

const (
	ChangeAdded      ChangeKind = "added"
	ChangeChanged    ChangeKind = "changed"
	ChangeDeprecated ChangeKind = "deprecated"
	ChangeRemoved    ChangeKind = "removed"
	ChangeFixed      ChangeKind = "fixed"
	ChangeSecurity   ChangeKind = "security"
)

const (
	ChangeBodyMaxLength   = 1000
	ChangeAuthorMaxLength = 30
)

func (k ChangeKind) Valid() bool {
	switch k {
	case ChangeAdded, ChangeChanged, ChangeDeprecated, ChangeRemoved, ChangeFixed, ChangeSecurity:
		return true
	}
	return false
}

type Change struct {
	ID        uuid.UUID  `json:"id" gorm:"type:uuid;primaryKey"`
	VersionID uuid.UUID  `json:"version_id" gorm:"type:uuid;not null;index:idx_change_version_kind,priority:1"`
	Kind      ChangeKind `json:"kind" gorm:"size:10;not null;index:idx_change_version_kind,priority:2"`
	Body      string     `json:"body" gorm:"type:text;not null"`
	Author    string     `json:"author" gorm:"size:30;not null"`
}
