package repositories

import (
	"errors"
	"fmt"

	"changelog-api/models"
	"changelog-api/pagination"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type VersionRepository interface {
	Create(projectID uuid.UUID, number models.VersionNumber) (*models.Version, error)
	GetByNumber(projectID uuid.UUID, number models.VersionNumber) (*models.Version, error)
	Delete(projectID uuid.UUID, number models.VersionNumber) (*models.Version, error)
	Release(projectID uuid.UUID, number models.VersionNumber, releasedAt models.Date) (*models.Version, error)

	// ListLatest returns the newest versions first.
	ListLatest(projectID uuid.UUID, limit int) ([]models.Version, error)
	// ListBefore returns versions newer than anchor, oldest first.
	ListBefore(projectID uuid.UUID, limit int, anchor models.VersionNumber) ([]models.Version, error)
	// ListAfter returns versions older than anchor, newest first.
	ListAfter(projectID uuid.UUID, limit int, anchor models.VersionNumber) ([]models.Version, error)
}

type versionRepository struct {
	db *gorm.DB
}

func NewVersionRepository(db *gorm.DB) VersionRepository {
	return &versionRepository{db: db}
}

// keyset is the comparison and sort order used to walk away from an anchor.
// Both directions return the rows nearest to the anchor first.
type keyset struct {
	operator string
	order    string
}

var keysets = map[pagination.Direction]keyset{
	pagination.DirectionPrevious: {operator: ">", order: "ASC"},
	pagination.DirectionNext:     {operator: "<", order: "DESC"},
}

func orderByNumber(order string) string {
	return fmt.Sprintf("major %[1]s, minor %[1]s, patch %[1]s", order)
}

func numberScope(projectID uuid.UUID, number models.VersionNumber) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("project_id = ? AND major = ? AND minor = ? AND patch = ?",
			projectID, number.Major, number.Minor, number.Patch)
	}
}

func (r *versionRepository) Create(projectID uuid.UUID, number models.VersionNumber) (*models.Version, error) {
	version := &models.Version{
		ID:        uuid.New(),
		ProjectID: projectID,
		Number:    number,
		CreatedAt: models.Today(),
	}

	err := r.db.Transaction(func(tx *gorm.DB) error {
		var projects int64
		if err := tx.Model(&models.Project{}).Where("id = ?", projectID).Count(&projects).Error; err != nil {
			return err
		}
		if projects == 0 {
			return models.ErrProjectNotFound
		}

		var existing int64
		if err := tx.Model(&models.Version{}).Scopes(numberScope(projectID, number)).Count(&existing).Error; err != nil {
			return err
		}
		if existing > 0 {
			return models.ErrVersionDuplicate
		}

		err := tx.Create(version).Error
		switch {
		case errors.Is(err, gorm.ErrDuplicatedKey):
			return models.ErrVersionDuplicate
		case errors.Is(err, gorm.ErrForeignKeyViolated):
			return models.ErrProjectNotFound
		}
		return err
	})
	if err != nil {
		return nil, err
	}

	return version, nil
}

func (r *versionRepository) GetByNumber(projectID uuid.UUID, number models.VersionNumber) (*models.Version, error) {
	return findVersion(r.db, projectID, number)
}

func (r *versionRepository) Delete(projectID uuid.UUID, number models.VersionNumber) (*models.Version, error) {
	var version *models.Version

	err := r.db.Transaction(func(tx *gorm.DB) error {
		var err error
		version, err = lockVersion(tx, projectID, number)
		if err != nil {
			return err
		}
		if version.IsReleased() {
			return models.ErrVersionCannotBeDeleted
		}

		res := tx.Where("id = ? AND released_at IS NULL", version.ID).Delete(&models.Version{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return models.ErrVersionCannotBeDeleted
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return version, nil
}

func (r *versionRepository) Release(projectID uuid.UUID, number models.VersionNumber, releasedAt models.Date) (*models.Version, error) {
	var version *models.Version

	err := r.db.Transaction(func(tx *gorm.DB) error {
		var err error
		version, err = lockVersion(tx, projectID, number)
		if err != nil {
			return err
		}
		if version.IsReleased() {
			return models.ErrVersionCannotBeReleased
		}

		res := tx.Model(&models.Version{}).
			Where("id = ? AND released_at IS NULL", version.ID).
			Update("released_at", releasedAt)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return models.ErrVersionCannotBeReleased
		}

		version.ReleasedAt = &releasedAt
		return nil
	})
	if err != nil {
		return nil, err
	}

	return version, nil
}

func (r *versionRepository) ListLatest(projectID uuid.UUID, limit int) ([]models.Version, error) {
	var versions []models.Version
	err := r.db.Where("project_id = ?", projectID).
		Order(orderByNumber("DESC")).
		Limit(limit).
		Find(&versions).Error
	return versions, err
}

func (r *versionRepository) ListBefore(projectID uuid.UUID, limit int, anchor models.VersionNumber) ([]models.Version, error) {
	return r.listAdjacent(projectID, limit, anchor, pagination.DirectionPrevious)
}

func (r *versionRepository) ListAfter(projectID uuid.UUID, limit int, anchor models.VersionNumber) ([]models.Version, error) {
	return r.listAdjacent(projectID, limit, anchor, pagination.DirectionNext)
}

// listAdjacent compares the whole (major, minor, patch) row, so 2.0.0 is newer than 1.9.9.
func (r *versionRepository) listAdjacent(projectID uuid.UUID, limit int, anchor models.VersionNumber, direction pagination.Direction) ([]models.Version, error) {
	k, ok := keysets[direction]
	if !ok {
		return nil, fmt.Errorf("unknown keyset direction %q", direction)
	}

	var versions []models.Version
	err := r.db.Where("project_id = ?", projectID).
		Where(fmt.Sprintf("(major, minor, patch) %s (?, ?, ?)", k.operator), anchor.Major, anchor.Minor, anchor.Patch).
		Order(orderByNumber(k.order)).
		Limit(limit).
		Find(&versions).Error
	return versions, err
}

func findVersion(db *gorm.DB, projectID uuid.UUID, number models.VersionNumber) (*models.Version, error) {
	var version models.Version
	err := db.Scopes(numberScope(projectID, number)).First(&version).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, models.ErrVersionNotFound
	}
	if err != nil {
		return nil, err
	}
	return &version, nil
}

// lockVersion reads a version with FOR UPDATE. SQLite has no row locks; its
// single connection already serializes the transaction.
func lockVersion(tx *gorm.DB, projectID uuid.UUID, number models.VersionNumber) (*models.Version, error) {
	if tx.Dialector.Name() != "sqlite" {
		tx = tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return findVersion(tx, projectID, number)
}
