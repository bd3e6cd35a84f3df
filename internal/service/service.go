package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
	"github.com/taskhive/task-service/internal/config"
	"github.com/taskhive/task-service/internal/models"
	"github.com/taskhive/task-service/internal/repository"
)

// UserStore persists user records. Find methods return nil without error
// when no record matches.
type UserStore interface {
	CreateUser(ctx context.Context, user *models.User) error
	FindUserByEmail(ctx context.Context, email string) (*models.User, error)
	FindUserByID(ctx context.Context, id int64) (*models.User, error)
	UpdateUserProfile(ctx context.Context, user *models.User) error
	ListUsers(ctx context.Context) ([]*models.User, error)
}

// TaskStore persists task records. FindTaskByID returns nil without error
// when no record matches.
type TaskStore interface {
	CreateTask(ctx context.Context, task *models.Task) error
	FindTaskByID(ctx context.Context, id int64) (*models.Task, error)
	ListTasks(ctx context.Context, filter repository.TaskFilter) ([]*models.Task, error)
	UpdateTask(ctx context.Context, task *models.Task) error
	DeleteTask(ctx context.Context, id int64) error
	Statistics(ctx context.Context) (*models.Statistics, error)
}

// Mailer sends account lifecycle mail
type Mailer interface {
	SendWelcome(to, firstName string) error
}

// Service handles business logic
type Service struct {
	users  UserStore
	tasks  TaskStore
	mailer Mailer
	log    *logrus.Logger
	config *config.Config
}

// NewService initializes a new service. mailer may be nil to disable
// outgoing mail.
func NewService(users UserStore, tasks TaskStore, mailer Mailer, log *logrus.Logger, cfg *config.Config) *Service {
	return &Service{users: users, tasks: tasks, mailer: mailer, log: log, config: cfg}
}

// IssueToken generates a signed JWT whose subject is the user id
func (s *Service) IssueToken(userID int64) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   strconv.FormatInt(userID, 10),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.config.JWTExpiry)),
	})
	tokenString, err := token.SignedString([]byte(s.config.JWTSecret))
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return tokenString, nil
}
