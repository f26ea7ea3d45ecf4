package services

import (
	"context"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/wbonfim/DeliveryApp/internal/models"
	"github.com/wbonfim/DeliveryApp/internal/repositories"
	"github.com/wbonfim/DeliveryApp/pkg/auth"
)

type AuthService struct {
	userRepo   repositories.UserRepository
	jwtManager *auth.JWTManager
}

func NewAuthService(userRepo repositories.UserRepository, jwtManager *auth.JWTManager) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		jwtManager: jwtManager,
	}
}

// HashPassword is exported for seeding fixture accounts.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func (s *AuthService) Register(ctx context.Context, req *models.RegisterRequest) (*models.User, error) {
	username := strings.TrimSpace(req.Username)
	email := strings.TrimSpace(req.Email)
	if username == "" || email == "" || req.Password == "" {
		return nil, ErrMissingRegistrationFields
	}

	if _, err := s.userRepo.GetByUsername(ctx, username); err == nil {
		return nil, ErrUsernameTaken
	}
	if _, err := s.userRepo.GetByEmail(ctx, email); err == nil {
		return nil, ErrEmailTaken
	}

	hash, err := HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	userType := req.UserType
	if userType == "" {
		userType = "customer"
	}

	user := &models.User{
		Username:     username,
		Email:        email,
		FullName:     req.FullName,
		Phone:        req.Phone,
		UserType:     userType,
		IsActive:     true,
		PasswordHash: hash,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login accepts a username or an email as login.
func (s *AuthService) Login(ctx context.Context, login, password string) (string, *models.User, error) {
	login = strings.TrimSpace(login)
	if login == "" || password == "" {
		return "", nil, ErrMissingCredentials
	}

	user, err := s.userRepo.GetByUsername(ctx, login)
	if errors.Is(err, repositories.ErrNotFound) {
		user, err = s.userRepo.GetByEmail(ctx, login)
	}
	if err != nil {
		return "", nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}
	if !user.IsActive {
		return "", nil, ErrAccountDeactivated
	}

	token, err := s.jwtManager.GenerateToken(user.ID, user.Username)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

func (s *AuthService) GetUser(ctx context.Context, userID int64) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// RefreshToken issues a fresh token for an authenticated user.
func (s *AuthService) RefreshToken(ctx context.Context, userID int64) (string, error) {
	user, err := s.GetUser(ctx, userID)
	if err != nil {
		return "", err
	}
	return s.jwtManager.GenerateToken(user.ID, user.Username)
}
