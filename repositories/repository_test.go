package repositories

import (
	"path/filepath"
	"testing"

	"changelog-api/config"
	"changelog-api/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

type RepositoryTestSuite struct {
	suite.Suite
	db       *gorm.DB
	projects ProjectRepository
	versions VersionRepository
	changes  ChangeRepository
	project  *models.Project
}

func (s *RepositoryTestSuite) SetupTest() {
	db, err := config.InitDB(config.DatabaseConfig{
		Driver:   config.DriverSQLite,
		Path:     filepath.Join(s.T().TempDir(), "changelog.sqlite"),
		LogLevel: "silent",
	})
	s.Require().NoError(err)
	s.Require().NoError(config.Migrate(db))

	s.db = db
	s.projects = NewProjectRepository(db)
	s.versions = NewVersionRepository(db)
	s.changes = NewChangeRepository(db)

	s.project = &models.Project{Name: "acme", Password: "hash"}
	s.Require().NoError(s.projects.Create(s.project))
}

func (s *RepositoryTestSuite) TearDownTest() {
	sqlDB, err := s.db.DB()
	s.Require().NoError(err)
	s.Require().NoError(sqlDB.Close())
}

func (s *RepositoryTestSuite) createVersions(numbers ...string) {
	for _, n := range numbers {
		number, err := models.ParseVersionNumber(n)
		s.Require().NoError(err)
		_, err = s.versions.Create(s.project.ID, number)
		s.Require().NoError(err)
	}
}

func (s *RepositoryTestSuite) number(n string) models.VersionNumber {
	number, err := models.ParseVersionNumber(n)
	s.Require().NoError(err)
	return number
}

func numbers(versions []models.Version) []string {
	out := make([]string, 0, len(versions))
	for _, v := range versions {
		out = append(out, v.Number.String())
	}
	return out
}

func (s *RepositoryTestSuite) TestCreateVersion() {
	version, err := s.versions.Create(s.project.ID, s.number("1.2.3"))
	s.Require().NoError(err)

	s.NotEqual(uuid.Nil, version.ID)
	s.Equal(s.project.ID, version.ProjectID)
	s.Equal("1.2.3", version.Number.String())
	s.Equal(models.Today(), version.CreatedAt)
	s.Nil(version.ReleasedAt)

	stored, err := s.versions.GetByNumber(s.project.ID, s.number("1.2.3"))
	s.Require().NoError(err)
	s.Equal(version.ID, stored.ID)
	s.Equal(version.CreatedAt.String(), stored.CreatedAt.String())
}

func (s *RepositoryTestSuite) TestCreateVersionDuplicate() {
	s.createVersions("1.0.0")

	_, err := s.versions.Create(s.project.ID, s.number("1.0.0"))
	s.ErrorIs(err, models.ErrVersionDuplicate)
}

func (s *RepositoryTestSuite) TestCreateVersionSameNumberOtherProject() {
	s.createVersions("1.0.0")

	other := &models.Project{Name: "globex", Password: "hash"}
	s.Require().NoError(s.projects.Create(other))

	_, err := s.versions.Create(other.ID, s.number("1.0.0"))
	s.NoError(err)
}

func (s *RepositoryTestSuite) TestCreateVersionProjectMissing() {
	_, err := s.versions.Create(uuid.New(), s.number("1.0.0"))
	s.ErrorIs(err, models.ErrProjectNotFound)
}

func (s *RepositoryTestSuite) TestGetByNumberMissing() {
	_, err := s.versions.GetByNumber(s.project.ID, s.number("9.9.9"))
	s.ErrorIs(err, models.ErrVersionNotFound)
}

func (s *RepositoryTestSuite) TestListLatestOrdersByNumericComponents() {
	s.createVersions("1.9.9", "1.10.0", "2.0.0", "1.2.10", "1.2.9", "0.0.1")

	versions, err := s.versions.ListLatest(s.project.ID, 10)
	s.Require().NoError(err)
	s.Equal([]string{"2.0.0", "1.10.0", "1.9.9", "1.2.10", "1.2.9", "0.0.1"}, numbers(versions))

	versions, err = s.versions.ListLatest(s.project.ID, 2)
	s.Require().NoError(err)
	s.Equal([]string{"2.0.0", "1.10.0"}, numbers(versions))
}

func (s *RepositoryTestSuite) TestListLatestScopedToProject() {
	s.createVersions("1.0.0")

	other := &models.Project{Name: "globex", Password: "hash"}
	s.Require().NoError(s.projects.Create(other))
	_, err := s.versions.Create(other.ID, s.number("2.0.0"))
	s.Require().NoError(err)

	versions, err := s.versions.ListLatest(s.project.ID, 10)
	s.Require().NoError(err)
	s.Equal([]string{"1.0.0"}, numbers(versions))
}

func (s *RepositoryTestSuite) TestListAfter() {
	s.createVersions("1.0.0", "1.0.1", "1.1.0", "2.0.0", "2.1.0")

	versions, err := s.versions.ListAfter(s.project.ID, 2, s.number("2.0.0"))
	s.Require().NoError(err)
	s.Equal([]string{"1.1.0", "1.0.1"}, numbers(versions))

	versions, err = s.versions.ListAfter(s.project.ID, 10, s.number("1.0.0"))
	s.Require().NoError(err)
	s.Empty(versions)
}

func (s *RepositoryTestSuite) TestListBefore() {
	s.createVersions("1.0.0", "1.0.1", "1.1.0", "2.0.0", "2.1.0")

	versions, err := s.versions.ListBefore(s.project.ID, 2, s.number("1.0.1"))
	s.Require().NoError(err)
	s.Equal([]string{"1.1.0", "2.0.0"}, numbers(versions))

	versions, err = s.versions.ListBefore(s.project.ID, 10, s.number("2.1.0"))
	s.Require().NoError(err)
	s.Empty(versions)
}

func (s *RepositoryTestSuite) TestListAdjacentToMissingAnchor() {
	s.createVersions("1.0.0", "3.0.0")

	older, err := s.versions.ListAfter(s.project.ID, 10, s.number("2.0.0"))
	s.Require().NoError(err)
	s.Equal([]string{"1.0.0"}, numbers(older))

	newer, err := s.versions.ListBefore(s.project.ID, 10, s.number("2.0.0"))
	s.Require().NoError(err)
	s.Equal([]string{"3.0.0"}, numbers(newer))
}

func (s *RepositoryTestSuite) TestReleaseVersion() {
	s.createVersions("1.0.0")
	releasedAt, err := models.ParseDate("2024-03-01")
	s.Require().NoError(err)

	version, err := s.versions.Release(s.project.ID, s.number("1.0.0"), releasedAt)
	s.Require().NoError(err)
	s.Require().NotNil(version.ReleasedAt)
	s.Equal("2024-03-01", version.ReleasedAt.String())

	stored, err := s.versions.GetByNumber(s.project.ID, s.number("1.0.0"))
	s.Require().NoError(err)
	s.Require().NotNil(stored.ReleasedAt)
	s.Equal("2024-03-01", stored.ReleasedAt.String())

	_, err = s.versions.Release(s.project.ID, s.number("1.0.0"), releasedAt)
	s.ErrorIs(err, models.ErrVersionCannotBeReleased)

	_, err = s.versions.Delete(s.project.ID, s.number("1.0.0"))
	s.ErrorIs(err, models.ErrVersionCannotBeDeleted)
}

func (s *RepositoryTestSuite) TestReleaseVersionMissing() {
	_, err := s.versions.Release(s.project.ID, s.number("1.0.0"), models.Today())
	s.ErrorIs(err, models.ErrVersionNotFound)
}

func (s *RepositoryTestSuite) TestDeleteVersionCascadesChanges() {
	s.createVersions("1.0.0")
	change := &models.Change{Kind: models.ChangeAdded, Body: "login", Author: "ann"}
	s.Require().NoError(s.changes.Create(s.project.ID, s.number("1.0.0"), change))

	deleted, err := s.versions.Delete(s.project.ID, s.number("1.0.0"))
	s.Require().NoError(err)
	s.Equal("1.0.0", deleted.Number.String())

	_, err = s.versions.GetByNumber(s.project.ID, s.number("1.0.0"))
	s.ErrorIs(err, models.ErrVersionNotFound)

	var remaining int64
	s.Require().NoError(s.db.Model(&models.Change{}).Where("id = ?", change.ID).Count(&remaining).Error)
	s.Zero(remaining)

	_, err = s.versions.Delete(s.project.ID, s.number("1.0.0"))
	s.ErrorIs(err, models.ErrVersionNotFound)
}

func (s *RepositoryTestSuite) TestDeleteProjectCascadesVersions() {
	s.createVersions("1.0.0", "2.0.0")

	s.Require().NoError(s.projects.Delete(s.project.ID))

	var remaining int64
	s.Require().NoError(s.db.Model(&models.Version{}).Where("project_id = ?", s.project.ID).Count(&remaining).Error)
	s.Zero(remaining)

	s.ErrorIs(s.projects.Delete(s.project.ID), gorm.ErrRecordNotFound)
}

func (s *RepositoryTestSuite) TestProjectLookup() {
	byName, err := s.projects.GetByName("acme")
	s.Require().NoError(err)
	s.Equal(s.project.ID, byName.ID)

	byID, err := s.projects.GetByID(s.project.ID)
	s.Require().NoError(err)
	s.Equal("acme", byID.Name)

	_, err = s.projects.GetByName("missing")
	s.ErrorIs(err, gorm.ErrRecordNotFound)
}

func (s *RepositoryTestSuite) TestDuplicateProjectName() {
	err := s.projects.Create(&models.Project{Name: "acme", Password: "hash"})
	s.ErrorIs(err, gorm.ErrDuplicatedKey)
}

func (s *RepositoryTestSuite) TestChangesListedByKind() {
	s.createVersions("1.0.0")
	for _, c := range []models.Change{
		{Kind: models.ChangeSecurity, Body: "patched", Author: "ann"},
		{Kind: models.ChangeAdded, Body: "login", Author: "bob"},
		{Kind: models.ChangeFixed, Body: "crash", Author: "cy"},
	} {
		change := c
		s.Require().NoError(s.changes.Create(s.project.ID, s.number("1.0.0"), &change))
	}

	changes, err := s.changes.ListForVersion(s.project.ID, s.number("1.0.0"))
	s.Require().NoError(err)
	s.Require().Len(changes, 3)
	s.Equal(models.ChangeAdded, changes[0].Kind)
	s.Equal(models.ChangeFixed, changes[1].Kind)
	s.Equal(models.ChangeSecurity, changes[2].Kind)

	_, err = s.changes.ListForVersion(s.project.ID, s.number("2.0.0"))
	s.ErrorIs(err, models.ErrVersionNotFound)
}

func (s *RepositoryTestSuite) TestCreateChangeVersionMissing() {
	change := &models.Change{Kind: models.ChangeAdded, Body: "login", Author: "ann"}
	err := s.changes.Create(s.project.ID, s.number("1.0.0"), change)
	s.ErrorIs(err, models.ErrVersionNotFound)
}

func (s *RepositoryTestSuite) TestDeleteChange() {
	s.createVersions("1.0.0", "2.0.0")
	change := &models.Change{Kind: models.ChangeAdded, Body: "login", Author: "ann"}
	s.Require().NoError(s.changes.Create(s.project.ID, s.number("1.0.0"), change))

	_, err := s.changes.Delete(s.project.ID, s.number("2.0.0"), change.ID)
	s.ErrorIs(err, models.ErrChangeNotFound)

	deleted, err := s.changes.Delete(s.project.ID, s.number("1.0.0"), change.ID)
	s.Require().NoError(err)
	s.Equal(change.ID, deleted.ID)

	_, err = s.changes.Delete(s.project.ID, s.number("1.0.0"), change.ID)
	s.ErrorIs(err, models.ErrChangeNotFound)
}

func (s *RepositoryTestSuite) TestDeleteChangeOfReleasedVersion() {
	s.createVersions("1.0.0")
	change := &models.Change{Kind: models.ChangeAdded, Body: "login", Author: "ann"}
	s.Require().NoError(s.changes.Create(s.project.ID, s.number("1.0.0"), change))
	_, err := s.versions.Release(s.project.ID, s.number("1.0.0"), models.Today())
	s.Require().NoError(err)

	_, err = s.changes.Delete(s.project.ID, s.number("1.0.0"), change.ID)
	s.ErrorIs(err, models.ErrVersionReleased)
}

func (s *RepositoryTestSuite) TestMoveChange() {
	s.createVersions("1.0.0", "1.1.0")
	change := &models.Change{Kind: models.ChangeFixed, Body: "crash", Author: "ann"}
	s.Require().NoError(s.changes.Create(s.project.ID, s.number("1.0.0"), change))

	moved, err := s.changes.Move(s.project.ID, s.number("1.0.0"), s.number("1.1.0"), change.ID)
	s.Require().NoError(err)

	target, err := s.versions.GetByNumber(s.project.ID, s.number("1.1.0"))
	s.Require().NoError(err)
	s.Equal(target.ID, moved.VersionID)

	source, err := s.changes.ListForVersion(s.project.ID, s.number("1.0.0"))
	s.Require().NoError(err)
	s.Empty(source)

	moved2, err := s.changes.ListForVersion(s.project.ID, s.number("1.1.0"))
	s.Require().NoError(err)
	s.Require().Len(moved2, 1)
	s.Equal(change.ID, moved2[0].ID)
}

func (s *RepositoryTestSuite) TestMoveChangeRejected() {
	s.createVersions("1.0.0", "1.1.0", "1.2.0")
	change := &models.Change{Kind: models.ChangeFixed, Body: "crash", Author: "ann"}
	s.Require().NoError(s.changes.Create(s.project.ID, s.number("1.0.0"), change))
	_, err := s.versions.Release(s.project.ID, s.number("1.2.0"), models.Today())
	s.Require().NoError(err)

	_, err = s.changes.Move(s.project.ID, s.number("1.0.0"), s.number("1.2.0"), change.ID)
	s.ErrorIs(err, models.ErrVersionReleased)

	_, err = s.changes.Move(s.project.ID, s.number("1.0.0"), s.number("9.0.0"), change.ID)
	s.ErrorIs(err, models.ErrVersionNotFound)

	_, err = s.changes.Move(s.project.ID, s.number("1.1.0"), s.number("1.0.0"), change.ID)
	s.ErrorIs(err, models.ErrChangeNotFound)
}

func TestRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(RepositoryTestSuite))
}
