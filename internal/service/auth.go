package service

import (
	"context"
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/taskhive/task-service/internal/models"
	"github.com/taskhive/task-service/internal/repository"
	"github.com/taskhive/task-service/internal/validation"
	"golang.org/x/crypto/bcrypt"
)

// RegisterInput carries a registration request
type RegisterInput struct {
	FirstName      string  `json:"firstName"`
	LastName       string  `json:"lastName"`
	Email          string  `json:"email"`
	Password       string  `json:"password"`
	ProfilePicture *string `json:"profilePicture"`
}

func (in *RegisterInput) validate() error {
	v := validation.New()
	v.Check(in.FirstName != "", "firstName", "is required")
	v.Check(in.FirstName == "" || utf8.RuneCountInString(in.FirstName) >= 2, "firstName", "must be at least 2 characters")
	v.Check(utf8.RuneCountInString(in.FirstName) <= 50, "firstName", "cannot exceed 50 characters")
	v.Check(in.LastName != "", "lastName", "is required")
	v.Check(in.LastName == "" || utf8.RuneCountInString(in.LastName) >= 2, "lastName", "must be at least 2 characters")
	v.Check(utf8.RuneCountInString(in.LastName) <= 50, "lastName", "cannot exceed 50 characters")
	v.CheckEmail(in.Email)
	v.Check(in.Password != "", "password", "is required")
	v.Check(in.Password == "" || len(in.Password) >= 6, "password", "must be at least 6 characters")
	if !v.Valid() {
		return NewError(ErrInvalidInput, v.Message())
	}
	return nil
}

// LoginInput carries a login request
type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (in *LoginInput) validate() error {
	v := validation.New()
	v.CheckEmail(in.Email)
	v.Check(in.Password != "", "password", "is required")
	if !v.Valid() {
		return NewError(ErrInvalidInput, v.Message())
	}
	return nil
}

// UpdateProfileInput carries a profile update; nil fields are left untouched
type UpdateProfileInput struct {
	FirstName      *string `json:"firstName"`
	LastName       *string `json:"lastName"`
	ProfilePicture *string `json:"profilePicture"`
}

func (in *UpdateProfileInput) validate() error {
	v := validation.New()
	if in.FirstName != nil {
		v.Check(utf8.RuneCountInString(*in.FirstName) >= 2, "firstName", "must be at least 2 characters")
		v.Check(utf8.RuneCountInString(*in.FirstName) <= 50, "firstName", "cannot exceed 50 characters")
	}
	if in.LastName != nil {
		v.Check(utf8.RuneCountInString(*in.LastName) >= 2, "lastName", "must be at least 2 characters")
		v.Check(utf8.RuneCountInString(*in.LastName) <= 50, "lastName", "cannot exceed 50 characters")
	}
	if !v.Valid() {
		return NewError(ErrInvalidInput, v.Message())
	}
	return nil
}

// Register creates a new user with hashed password and issues a token
func (s *Service) Register(ctx context.Context, in RegisterInput) (*models.User, string, error) {
	if err := in.validate(); err != nil {
		return nil, "", err
	}

	existing, err := s.users.FindUserByEmail(ctx, in.Email)
	if err != nil {
		return nil, "", err
	}
	if existing != nil {
		return nil, "", NewError(ErrConflict, "User already exists with this email")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		FirstName:      in.FirstName,
		LastName:       in.LastName,
		Email:          in.Email,
		PasswordHash:   string(hashedPassword),
		ProfilePicture: in.ProfilePicture,
		Role:           models.RoleUser,
	}

	if err := s.users.CreateUser(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, "", NewError(ErrConflict, "User already exists with this email")
		}
		return nil, "", err
	}

	token, err := s.IssueToken(user.ID)
	if err != nil {
		return nil, "", err
	}

	if s.mailer != nil {
		go func(to, name string) {
			if err := s.mailer.SendWelcome(to, name); err != nil {
				s.log.Errorf("Failed to send welcome email to %s: %v", to, err)
			}
		}(user.Email, user.FirstName)
	}

	s.log.Infof("User registered: %s", user.Email)
	return user, token, nil
}

// Login authenticates a user and returns a JWT token
func (s *Service) Login(ctx context.Context, in LoginInput) (*models.User, string, error) {
	if err := in.validate(); err != nil {
		return nil, "", err
	}

	user, err := s.users.FindUserByEmail(ctx, in.Email)
	if err != nil {
		return nil, "", err
	}
	if user == nil {
		return nil, "", NewError(ErrUnauthenticated, "Invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, "", NewError(ErrUnauthenticated, "Invalid credentials")
	}

	token, err := s.IssueToken(user.ID)
	if err != nil {
		return nil, "", err
	}

	s.log.Infof("User logged in: %s", user.Email)
	return user, token, nil
}

// UpdateProfile applies the provided profile fields to user
func (s *Service) UpdateProfile(ctx context.Context, user *models.User, in UpdateProfileInput) (*models.User, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	if in.FirstName != nil {
		user.FirstName = *in.FirstName
	}
	if in.LastName != nil {
		user.LastName = *in.LastName
	}
	if in.ProfilePicture != nil {
		user.ProfilePicture = in.ProfilePicture
	}

	if err := s.users.UpdateUserProfile(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// SetProfilePicture records the stored picture URL on user
func (s *Service) SetProfilePicture(ctx context.Context, user *models.User, url string) (*models.User, error) {
	user.ProfilePicture = &url
	if err := s.users.UpdateUserProfile(ctx, user); err != nil {
		return nil, err
	}
	s.log.Infof("Profile picture updated for user %d", user.ID)
	return user, nil
}
