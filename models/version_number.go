package models

import (
	"cmp"
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
)

var versionNumberPattern = regexp.MustCompile(`^(\d+)\.(\d+)\.(\d+)$`)

// VersionNumber is a major.minor.patch triple. It is embedded into Version so
// the three components are separate columns usable by keyset queries.
type VersionNumber struct {
	Major int `gorm:"not null;uniqueIndex:idx_version_project_number,priority:2"`
	Minor int `gorm:"not null;uniqueIndex:idx_version_project_number,priority:3"`
	Patch int `gorm:"not null;uniqueIndex:idx_version_project_number,priority:4"`
}

// ParseVersionNumber accepts exactly three dot separated non-negative integers.
func ParseVersionNumber(s string) (VersionNumber, error) {
	m := versionNumberPattern.FindStringSubmatch(s)
	if m == nil {
		return VersionNumber{}, ErrVersionNumberInvalid
	}

	var parts [3]int
	for i := range parts {
		n, err := strconv.Atoi(m[i+1])
		if err != nil {
			return VersionNumber{}, ErrVersionNumberInvalid
		}
		parts[i] = n
	}

	return VersionNumber{Major: parts[0], Minor: parts[1], Patch: parts[2]}, nil
}

func (n VersionNumber) String() string {
	return fmt.Sprintf("%d.%d.%d", n.Major, n.Minor, n.Patch)
}

// Compare returns -1, 0 or 1 when n is older than, equal to or newer than o.
func (n VersionNumber) Compare(o VersionNumber) int {
	switch {
	case n.Major != o.Major:
		return cmp.Compare(n.Major, o.Major)
	case n.Minor != o.Minor:
		return cmp.Compare(n.Minor, o.Minor)
	default:
		return cmp.Compare(n.Patch, o.Patch)
	}
}

func (n VersionNumber) NewerThan(o VersionNumber) bool {
	return n.Compare(o) > 0
}

func (n VersionNumber) MarshalJSON() ([]byte, error) {
	return json.Marshal(n.String())
}

func (n *VersionNumber) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseVersionNumber(s)
	if err != nil {
		return err
	}
	*n = parsed
	return nil
}
