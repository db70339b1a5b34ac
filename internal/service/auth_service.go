package service

import (
	"strings"
	"time"

	"barber-pos-api/internal/model"
	"barber-pos-api/internal/repository"
	"barber-pos-api/pkg/jwt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	Token string             `json:"token"`
	User  model.UserResponse `json:"user"`
}

type AuthService interface {
	Login(req *LoginRequest) (*LoginResponse, error)
	Me(userID uuid.UUID) (*model.UserResponse, error)
}

type authService struct {
	userRepo repository.UserRepository
	log      zerolog.Logger
}

func NewAuthService(userRepo repository.UserRepository, log zerolog.Logger) AuthService {
	return &authService{userRepo: userRepo, log: log}
}

func (s *authService) Login(req *LoginRequest) (*LoginResponse, error) {
	req.Username = strings.TrimSpace(req.Username)
	if err := validate(req); err != nil {
		return nil, err
	}

	// 1. Find user by username
	user, err := s.userRepo.FindByUsername(req.Username)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	// 2. Verify password before revealing account state
	if !user.CheckPassword(req.Password) {
		return nil, ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, ErrUserInactive
	}

	token, err := jwt.GenerateToken(user.ID, user.Username, user.Role)
	if err != nil {
		return nil, internalErr("Failed to generate token", err)
	}

	now := time.Now()
	if err := s.userRepo.UpdateLastLogin(user.ID, now); err != nil {
		s.log.Warn().Err(err).Str("user", user.Username).Msg("update last login")
	} else {
		user.LastLoginAt = &now
	}

	return &LoginResponse{Token: token, User: user.ToResponse()}, nil
}

func (s *authService) Me(userID uuid.UUID) (*model.UserResponse, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return nil, mapNotFound(err, ErrUserNotFound)
	}
	resp := user.ToResponse()
	return &resp, nil
}
