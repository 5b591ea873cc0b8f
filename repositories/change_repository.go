package repositories

import (
	"errors"

	"changelog-api/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ChangeRepository interface {
	Create(projectID uuid.UUID, number models.VersionNumber, change *models.Change) error
	Delete(projectID uuid.UUID, number models.VersionNumber, changeID uuid.UUID) (*models.Change, error)
	ListForVersion(projectID uuid.UUID, number models.VersionNumber) ([]models.Change, error)
	Move(projectID uuid.UUID, from, to models.VersionNumber, changeID uuid.UUID) (*models.Change, error)
}

type changeRepository struct {
	db *gorm.DB
}

func NewChangeRepository(db *gorm.DB) ChangeRepository {
	return &changeRepository{db: db}
}

func (r *changeRepository) Create(projectID uuid.UUID, number models.VersionNumber, change *models.Change) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		version, err := lockVersion(tx, projectID, number)
		if err != nil {
			return err
		}

		change.ID = uuid.New()
		change.VersionID = version.ID
		return tx.Create(change).Error
	})
}

func (r *changeRepository) Delete(projectID uuid.UUID, number models.VersionNumber, changeID uuid.UUID) (*models.Change, error) {
	var change models.Change

	err := r.db.Transaction(func(tx *gorm.DB) error {
		version, err := lockVersion(tx, projectID, number)
		if err != nil {
			return err
		}
		if version.IsReleased() {
			return models.ErrVersionReleased
		}

		if err := findChange(tx, version.ID, changeID, &change); err != nil {
			return err
		}
		return tx.Delete(&change).Error
	})
	if err != nil {
		return nil, err
	}

	return &change, nil
}

func (r *changeRepository) ListForVersion(projectID uuid.UUID, number models.VersionNumber) ([]models.Change, error) {
	version, err := findVersion(r.db, projectID, number)
	if err != nil {
		return nil, err
	}

	var changes []models.Change
	err = r.db.Where("version_id = ?", version.ID).
		Order("kind ASC").
		Order("id ASC").
		Find(&changes).Error
	return changes, err
}

// Move reassigns a change between two unreleased versions of the same project.
// Both version rows stay locked until the change is written so a concurrent
// release cannot slip in between the check and the update.
func (r *changeRepository) Move(projectID uuid.UUID, from, to models.VersionNumber, changeID uuid.UUID) (*models.Change, error) {
	var change models.Change

	err := r.db.Transaction(func(tx *gorm.DB) error {
		source, err := lockVersion(tx, projectID, from)
		if err != nil {
			return err
		}
		target, err := lockVersion(tx, projectID, to)
		if err != nil {
			return err
		}
		if source.IsReleased() || target.IsReleased() {
			return models.ErrVersionReleased
		}

		if err := findChange(tx, source.ID, changeID, &change); err != nil {
			return err
		}
		if source.ID == target.ID {
			return nil
		}

		if err := tx.Model(&change).Update("version_id", target.ID).Error; err != nil {
			return err
		}
		change.VersionID = target.ID
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &change, nil
}

func findChange(tx *gorm.DB, versionID, changeID uuid.UUID, change *models.Change) error {
	err := tx.Where("id = ? AND version_id = ?", changeID, versionID).First(change).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.ErrChangeNotFound
	}
	return err
}
