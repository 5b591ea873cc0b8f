package services

import (
	"slices"

	"changelog-api/models"
	"changelog-api/pagination"
	"changelog-api/repositories"

	"github.com/google/uuid"
)

type VersionService interface {
	CreateVersion(projectID uuid.UUID, number string) (*models.Version, error)
	DeleteVersion(projectID uuid.UUID, number string) (*models.Version, error)
	ReleaseVersion(projectID uuid.UUID, number string, releasedAt string) (*models.Version, error)
	ReadVersions(projectID uuid.UUID, pageSize int, token *string) (*models.VersionsPage, error)
}

// Observer receives events worth counting. *metrics.Metrics implements it.
type Observer interface {
	RecordPage(direction string, items int)
	RecordRelease()
}

type nopObserver struct{}

func (nopObserver) RecordPage(string, int) {}
func (nopObserver) RecordRelease()         {}

type versionService struct {
	versionRepo repositories.VersionRepository
	observer    Observer
}

func NewVersionService(versionRepo repositories.VersionRepository, observer Observer) VersionService {
	if observer == nil {
		observer = nopObserver{}
	}
	return &versionService{
		versionRepo: versionRepo,
		observer:    observer,
	}
}

func (s *versionService) CreateVersion(projectID uuid.UUID, number string) (*models.Version, error) {
	n, err := models.ParseVersionNumber(number)
	if err != nil {
		return nil, err
	}

	return s.versionRepo.Create(projectID, n)
}

func (s *versionService) DeleteVersion(projectID uuid.UUID, number string) (*models.Version, error) {
	n, err := models.ParseVersionNumber(number)
	if err != nil {
		return nil, err
	}

	return s.versionRepo.Delete(projectID, n)
}

func (s *versionService) ReleaseVersion(projectID uuid.UUID, number string, releasedAt string) (*models.Version, error) {
	n, err := models.ParseVersionNumber(number)
	if err != nil {
		return nil, err
	}

	date, err := models.ParseDate(releasedAt)
	if err != nil {
		return nil, models.ErrVersionReleasedAtInvalid
	}

	version, err := s.versionRepo.Release(projectID, n, date)
	if err != nil {
		return nil, err
	}

	s.observer.RecordRelease()
	return version, nil
}

// ReadVersions returns one page of versions, newest first.
//
// The direction of travel fetches one lookahead row beyond pageSize; a
// returned extra row proves another page exists that way. The opposite
// direction is confirmed with a single row probe next to the page edge. A
// token is only emitted when following it yields a non-empty page.
func (s *versionService) ReadVersions(projectID uuid.UUID, pageSize int, token *string) (*models.VersionsPage, error) {
	if pageSize < 1 {
		return nil, models.ErrPageSizeInvalid
	}

	direction := pagination.DirectionNext
	var rows []models.Version
	var err error

	if token == nil {
		rows, err = s.versionRepo.ListLatest(projectID, pageSize+1)
	} else {
		var anchor models.VersionNumber
		direction, anchor, err = decodeVersionsToken(*token)
		if err != nil {
			return nil, err
		}

		if direction == pagination.DirectionPrevious {
			rows, err = s.versionRepo.ListBefore(projectID, pageSize+1, anchor)
		} else {
			rows, err = s.versionRepo.ListAfter(projectID, pageSize+1, anchor)
		}
	}
	if err != nil {
		return nil, err
	}

	// rows are nearest to the anchor first, so the lookahead row is always last
	hasMore := len(rows) > pageSize
	if hasMore {
		rows = rows[:pageSize]
	}
	if direction == pagination.DirectionPrevious {
		slices.Reverse(rows)
	}

	page := &models.VersionsPage{Versions: rows}
	if len(rows) == 0 {
		page.Versions = []models.Version{}
		s.observer.RecordPage(string(direction), 0)
		return page, nil
	}

	first := rows[0].Number
	last := rows[len(rows)-1].Number

	hasPrevious, hasNext := hasMore, hasMore
	if direction == pagination.DirectionPrevious {
		hasNext, err = s.hasVersionAfter(projectID, last)
	} else {
		hasPrevious, err = s.hasVersionBefore(projectID, first)
	}
	if err != nil {
		return nil, err
	}

	if hasPrevious {
		page.PreviousToken = pagination.Encode(&pagination.Cursor{
			VersionNumber: first.String(),
			Direction:     pagination.DirectionPrevious,
		})
	}
	if hasNext {
		page.NextToken = pagination.Encode(&pagination.Cursor{
			VersionNumber: last.String(),
			Direction:     pagination.DirectionNext,
		})
	}

	s.observer.RecordPage(string(direction), len(rows))
	return page, nil
}

func (s *versionService) hasVersionBefore(projectID uuid.UUID, number models.VersionNumber) (bool, error) {
	newer, err := s.versionRepo.ListBefore(projectID, 1, number)
	return len(newer) > 0, err
}

func (s *versionService) hasVersionAfter(projectID uuid.UUID, number models.VersionNumber) (bool, error) {
	older, err := s.versionRepo.ListAfter(projectID, 1, number)
	return len(older) > 0, err
}

func decodeVersionsToken(token string) (pagination.Direction, models.VersionNumber, error) {
	cursor, err := pagination.Decode(token)
	if err != nil {
		return "", models.VersionNumber{}, models.ErrVersionsReadingTokenInvalid
	}

	anchor, err := models.ParseVersionNumber(cursor.VersionNumber)
	if err != nil {
		return "", models.VersionNumber{}, models.ErrVersionsReadingTokenInvalid
	}

	return cursor.Direction, anchor, nil
}
