package services

import (
	"errors"
	"time"

	"changelog-api/config"
	"changelog-api/models"
	"changelog-api/repositories"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type ProjectService interface {
	Register(req models.RegisterProjectRequest) (*models.AuthResponse, error)
	Login(req models.LoginProjectRequest) (*models.AuthResponse, error)
	GetProject(id uuid.UUID) (*models.Project, error)
	DeleteProject(id uuid.UUID) error
}

type projectService struct {
	projectRepo repositories.ProjectRepository
	jwtConfig   config.JWTConfig
}

func NewProjectService(projectRepo repositories.ProjectRepository, jwtConfig config.JWTConfig) ProjectService {
	return &projectService{
		projectRepo: projectRepo,
		jwtConfig:   jwtConfig,
	}
}

func (s *projectService) Register(req models.RegisterProjectRequest) (*models.AuthResponse, error) {
	// Check if project already exists
	_, err := s.projectRepo.GetByName(req.Name)
	if err == nil {
		return nil, models.ErrProjectNameDuplicate
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	project := &models.Project{
		Name:     req.Name,
		Password: string(hashedPassword),
	}

	if err := s.projectRepo.Create(project); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, models.ErrProjectNameDuplicate
		}
		return nil, err
	}

	return s.authResponse(project)
}

func (s *projectService) Login(req models.LoginProjectRequest) (*models.AuthResponse, error) {
	project, err := s.projectRepo.GetByName(req.Name)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(project.Password), []byte(req.Password)); err != nil {
		return nil, models.ErrInvalidCredentials
	}

	return s.authResponse(project)
}

func (s *projectService) GetProject(id uuid.UUID) (*models.Project, error) {
	project, err := s.projectRepo.GetByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, models.ErrProjectNotFound
	}
	if err != nil {
		return nil, err
	}
	return project, nil
}

func (s *projectService) DeleteProject(id uuid.UUID) error {
	err := s.projectRepo.Delete(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.ErrProjectNotFound
	}
	return err
}

func (s *projectService) authResponse(project *models.Project) (*models.AuthResponse, error) {
	token, err := s.generateToken(project)
	if err != nil {
		return nil, err
	}

	return &models.AuthResponse{
		Token:   token,
		Project: *project,
	}, nil
}

func (s *projectService) generateToken(project *models.Project) (string, error) {
	now := time.Now()

	claims := jwt.MapClaims{
		"project_id": project.ID.String(),
		"name":       project.Name,
		"exp":        now.Add(s.jwtConfig.Expiration).Unix(),
		"iat":        now.Unix(),
		"nbf":        now.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	return token.SignedString(s.jwtConfig.Key())
}
