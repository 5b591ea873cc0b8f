package services

import (
	"unicode/utf8"

	"changelog-api/models"
	"changelog-api/repositories"

	"github.com/google/uuid"
)

type ChangeService interface {
	CreateChange(projectID uuid.UUID, number string, kind string, body string, author string) (*models.Change, error)
	DeleteChange(projectID uuid.UUID, number string, changeID uuid.UUID) (*models.Change, error)
	ReadChangesForVersion(projectID uuid.UUID, number string) ([]models.Change, error)
	MoveChangeToOtherVersion(projectID uuid.UUID, from string, to string, changeID uuid.UUID) (*models.Change, error)
}

type changeService struct {
	changeRepo repositories.ChangeRepository
}

func NewChangeService(changeRepo repositories.ChangeRepository) ChangeService {
	return &changeService{changeRepo: changeRepo}
}

func (s *changeService) CreateChange(projectID uuid.UUID, number string, kind string, body string, author string) (*models.Change, error) {
	n, err := models.ParseVersionNumber(number)
	if err != nil {
		return nil, err
	}

	change := &models.Change{
		Kind:   models.ChangeKind(kind),
		Body:   body,
		Author: author,
	}
	if err := validateChange(change); err != nil {
		return nil, err
	}

	if err := s.changeRepo.Create(projectID, n, change); err != nil {
		return nil, err
	}

	return change, nil
}

func (s *changeService) DeleteChange(projectID uuid.UUID, number string, changeID uuid.UUID) (*models.Change, error) {
	n, err := models.ParseVersionNumber(number)
	if err != nil {
		return nil, err
	}

	return s.changeRepo.Delete(projectID, n, changeID)
}

func (s *changeService) ReadChangesForVersion(projectID uuid.UUID, number string) ([]models.Change, error) {
	n, err := models.ParseVersionNumber(number)
	if err != nil {
		return nil, err
	}

	changes, err := s.changeRepo.ListForVersion(projectID, n)
	if err != nil {
		return nil, err
	}
	if changes == nil {
		changes = []models.Change{}
	}
	return changes, nil
}

func (s *changeService) MoveChangeToOtherVersion(projectID uuid.UUID, from string, to string, changeID uuid.UUID) (*models.Change, error) {
	source, err := models.ParseVersionNumber(from)
	if err != nil {
		return nil, err
	}
	target, err := models.ParseVersionNumber(to)
	if err != nil {
		return nil, err
	}

	return s.changeRepo.Move(projectID, source, target, changeID)
}

func validateChange(change *models.Change) error {
	if !change.Kind.Valid() {
		return models.ErrChangeKindInvalid
	}
	if n := utf8.RuneCountInString(change.Body); n < 1 || n > models.ChangeBodyMaxLength {
		return models.ErrChangeBodyInvalid
	}
	if n := utf8.RuneCountInString(change.Author); n < 1 || n > models.ChangeAuthorMaxLength {
		return models.ErrChangeAuthorInvalid
	}
	return nil
}
