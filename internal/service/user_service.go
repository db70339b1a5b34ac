package service

import (
	"strings"

	"barber-pos-api/internal/model"
	"barber-pos-api/internal/repository"

	"github.com/google/uuid"
)

type CreateUserRequest struct {
	Username string `json:"username" validate:"required,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	FullName string `json:"full_name" validate:"max=255"`
	Role     string `json:"role" validate:"required,oneof=admin manager employee"`
}

type UpdateUserRequest struct {
	Username *string `json:"username" validate:"omitnil,min=1,max=100"`
	Email    *string `json:"email" validate:"omitempty,email"`
	Password *string `json:"password,omitempty" validate:"omitempty,min=6"` // Optional
	FullName *string `json:"full_name" validate:"omitempty,max=255"`
	Role     *string `json:"role" validate:"omitempty,oneof=admin manager employee"`
	IsActive *bool   `json:"is_active"`
}

func (r *UpdateUserRequest) Patch() (model.Patch, error) {
	p := model.Patch{}
	model.Set(p, "username", r.Username)
	model.Set(p, "email", r.Email)
	model.Set(p, "full_name", r.FullName)
	model.Set(p, "role", r.Role)
	model.Set(p, "is_active", r.IsActive)
	if r.Password != nil && *r.Password != "" {
		var u model.User
		if err := u.SetPassword(*r.Password); err != nil {
			return nil, err
		}
		p["password"] = u.Password
	}
	return p, nil
}

type UserService interface {
	CreateUser(req *CreateUserRequest, actor Actor) (*model.User, error)
	UpdateUser(userID uuid.UUID, req *UpdateUserRequest, actor Actor) (*model.User, error)
	DeleteUser(userID uuid.UUID) error
	GetAllUsers() ([]model.UserResponse, error)
	GetUserByID(id uuid.UUID) (*model.UserResponse, error)
	Setup(req *CreateUserRequest) (*model.User, error)
}

type userService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

func (s *userService) CreateUser(req *CreateUserRequest, actor Actor) (*model.User, error) {
	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.TrimSpace(req.Email)
	if err := validate(req); err != nil {
		return nil, err
	}

	user := &model.User{
		Username: req.Username,
		Email:    req.Email,
		FullName: req.FullName,
		Role:     req.Role,
		IsActive: true,
	}
	user.CreatedBy = actor.Username
	user.UpdatedBy = actor.Username

	if err := user.SetPassword(req.Password); err != nil {
		return nil, internalErr("Failed to hash password", err)
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, mapDuplicate(err, ErrUserExists)
	}
	return user, nil
}

func (s *userService) UpdateUser(userID uuid.UUID, req *UpdateUserRequest, actor Actor) (*model.User, error) {
	req.Username = trimmed(req.Username)
	req.Email = trimmed(req.Email)
	if err := validate(req); err != nil {
		return nil, err
	}
	patch, err := req.Patch()
	if err != nil {
		return nil, internalErr("Failed to hash password", err)
	}
	patch["updated_by"] = actor.Username

	if err := s.userRepo.Update(userID, patch); err != nil {
		return nil, mapDuplicate(mapNotFound(err, ErrUserNotFound), ErrUserExists)
	}
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return nil, mapNotFound(err, ErrUserNotFound)
	}
	return user, nil
}

func (s *userService) DeleteUser(userID uuid.UUID) error {
	return mapNotFound(s.userRepo.Delete(userID), ErrUserNotFound)
}

func (s *userService) GetAllUsers() ([]model.UserResponse, error) {
	users, err := s.userRepo.FindAll()
	if err != nil {
		return nil, err
	}

	responses := make([]model.UserResponse, len(users))
	for i, user := range users {
		responses[i] = user.ToResponse()
	}
	return responses, nil
}

func (s *userService) GetUserByID(id uuid.UUID) (*model.UserResponse, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		return nil, mapNotFound(err, ErrUserNotFound)
	}
	response := user.ToResponse()
	return &response, nil
}

// Setup creates the first administrator. It is refused once any user exists.
func (s *userService) Setup(req *CreateUserRequest) (*model.User, error) {
	n, err := s.userRepo.Count()
	if err != nil {
		return nil, err
	}
	if n > 0 {
		return nil, ErrSetupDone
	}
	req.Role = model.RoleAdmin
	return s.CreateUser(req, Actor{Username: "setup"})
}
