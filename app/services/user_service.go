package services

import (
	"errors"

	"rps-backend/app/crypto"
	"rps-backend/app/models"
	"rps-backend/app/repo"

	"gorm.io/gorm"
)

type UserService struct{ users *repo.UserRepository }

func NewUserService(users *repo.UserRepository) *UserService { return &UserService{users: users} }

// SignUp creates the account with role=user and an unverified email. There is
// deliberately no pre-check for the username: the unique index decides the
// winner of a race, and the duplicate-key error maps to ErrUsernameTaken.
func (s *UserService) SignUp(username, password, email string) (*models.User, error) {
	hash, err := crypto.HashPassword(password)
	if err != nil {
		return nil, err
	}
	u := &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		Role:         string(models.RoleUser),
	}
	if err := s.users.Create(u); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrUsernameTaken
		}
		return nil, err
	}
	return u, nil
}

// ValidateCredentials never reveals whether the username exists; both the
// missing-user and wrong-password paths return ErrInvalidCredentials.
func (s *UserService) ValidateCredentials(username, password string) (*models.User, error) {
	u, err := s.users.FindByUsername(username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !crypto.VerifyPassword(password, u.PasswordHash) {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}

func (s *UserService) GetByUsername(username string) (*models.User, error) {
	u, err := s.users.FindByUsername(username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return u, nil
}

// ChangeRole is the only path that mutates a role; the route in front of it
// is owner-gated. The target is looked up first so a no-op change is not
// mistaken for a missing user by drivers that report changed rows.
func (s *UserService) ChangeRole(username, role string) error {
	if _, ok := models.ParseRole(role); !ok {
		return ErrInvalidRole
	}
	u, err := s.GetByUsername(username)
	if err != nil {
		return err
	}
	if u.Role == role {
		return nil
	}
	_, err = s.users.UpdateRole(username, role)
	return err
}

// EnsureOwner seeds the bootstrap owner account if it does not exist yet.
// The seeded account is created verified so the owner can sign in at once.
func (s *UserService) EnsureOwner(username, password, email string) error {
	_, err := s.users.FindByUsername(username)
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	hash, err := crypto.HashPassword(password)
	if err != nil {
		return err
	}
	return s.users.Create(&models.User{
		Username:      username,
		Email:         email,
		EmailVerified: true,
		PasswordHash:  hash,
		Role:          string(models.RoleOwner),
	})
}
