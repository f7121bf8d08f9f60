package service

import (
	"errors"

	"go-storefront-api/internal/model"
	"go-storefront-api/internal/repository"
	"go-storefront-api/pkg/jwt"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type AuthService interface {
	Register(name, email, password, role string) (*AuthResponse, error)
	Login(email, password string) (*AuthResponse, error)
	ResolveOAuthAccount(name, email string) (*AuthResponse, error)
}

type AuthResponse struct {
	Token string             `json:"token"`
	User  model.UserResponse `json:"user"`
}

type authService struct {
	userRepo repository.UserRepository
	log      *zap.Logger
}

func NewAuthService(userRepo repository.UserRepository, log *zap.Logger) AuthService {
	return &authService{userRepo: userRepo, log: log}
}

func (s *authService) Register(name, email, password, role string) (*AuthResponse, error) {
	if role == "" {
		role = model.RoleCustomer
	}

	user := &model.User{
		Name:  name,
		Email: email,
		Role:  role,
	}
	if err := user.SetPassword(password); err != nil {
		return nil, err
	}
	if err := validateStruct(user); err != nil {
		return nil, err
	}

	if existing, err := s.userRepo.FindByEmail(email); err == nil && existing != nil {
		return nil, ErrEmailTaken
	}

	user.CreatedBy = email
	user.UpdatedBy = email
	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}

	s.log.Info("account registered",
		zap.String("email", user.Email),
		zap.String("role", user.Role))

	return s.issueToken(user)
}

func (s *authService) Login(email, password string) (*AuthResponse, error) {
	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		// Same error for unknown email and wrong password
		return nil, ErrInvalidCredentials
	}
	if !user.CheckPassword(password) {
		return nil, ErrInvalidCredentials
	}
	return s.issueToken(user)
}

// ResolveOAuthAccount is the boundary with the external identity provider:
// it receives an already-verified (name, email) profile and upserts a
// customer account for it. Raw provider tokens never reach this core.
func (s *authService) ResolveOAuthAccount(name, email string) (*AuthResponse, error) {
	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			return nil, err
		}
		user = &model.User{
			Name:  name,
			Email: email,
			Role:  model.RoleCustomer,
		}
		// Local password login stays closed for provider-created accounts.
		if err := user.SetPassword(uuid.New().String()); err != nil {
			return nil, err
		}
		user.CreatedBy = "oauth"
		user.UpdatedBy = "oauth"
		if err := s.userRepo.Create(user); err != nil {
			return nil, err
		}
		s.log.Info("oauth account created", zap.String("email", email))
	}
	return s.issueToken(user)
}

func (s *authService) issueToken(user *model.User) (*AuthResponse, error) {
	token, err := jwt.GenerateToken(user.ID, user.Email, user.Name, user.Role)
	if err != nil {
		return nil, errors.New("failed to generate token")
	}
	return &AuthResponse{
		Token: token,
		User:  user.ToResponse(),
	}, nil
}
