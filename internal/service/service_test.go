package service

import (
	"context"
	"io"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/taskhive/task-service/internal/config"
	"github.com/taskhive/task-service/internal/models"
	"github.com/taskhive/task-service/internal/repository"
)

type fakeUserStore struct {
	users  map[int64]*models.User
	nextID int64
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[int64]*models.User)}
}

func (f *fakeUserStore) CreateUser(ctx context.Context, user *models.User) error {
	for _, u := range f.users {
		if u.Email == user.Email {
			return repository.ErrDuplicateEmail
		}
	}
	f.nextID++
	user.ID = f.nextID
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	clone := *user
	f.users[user.ID] = &clone
	return nil
}

func (f *fakeUserStore) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, nil
}

func (f *fakeUserStore) FindUserByID(ctx context.Context, id int64) (*models.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, nil
	}
	clone := *u
	return &clone, nil
}

func (f *fakeUserStore) UpdateUserProfile(ctx context.Context, user *models.User) error {
	user.UpdatedAt = time.Now()
	clone := *user
	f.users[user.ID] = &clone
	return nil
}

func (f *fakeUserStore) ListUsers(ctx context.Context) ([]*models.User, error) {
	users := []*models.User{}
	for _, u := range f.users {
		clone := *u
		users = append(users, &clone)
	}
	return users, nil
}

type fakeTaskStore struct {
	tasks      map[int64]*models.Task
	nextID     int64
	lastFilter repository.TaskFilter
}

func newFakeTaskStore() *fakeTaskStore {
	return &fakeTaskStore{tasks: make(map[int64]*models.Task)}
}

func (f *fakeTaskStore) CreateTask(ctx context.Context, task *models.Task) error {
	f.nextID++
	task.ID = f.nextID
	task.CreatedAt = time.Now()
	task.UpdatedAt = task.CreatedAt
	clone := *task
	f.tasks[task.ID] = &clone
	return nil
}

func (f *fakeTaskStore) FindTaskByID(ctx context.Context, id int64) (*models.Task, error) {
	t, ok := f.tasks[id]
	if !ok {
		return nil, nil
	}
	clone := *t
	return &clone, nil
}

func (f *fakeTaskStore) ListTasks(ctx context.Context, filter repository.TaskFilter) ([]*models.Task, error) {
	f.lastFilter = filter
	tasks := []*models.Task{}
	for _, t := range f.tasks {
		if filter.ViewerID != nil {
			viewer := *filter.ViewerID
			assigned := t.AssignedTo != nil && *t.AssignedTo == viewer
			if t.CreatedBy != viewer && !assigned {
				continue
			}
		}
		if filter.CreatedBy != nil && t.CreatedBy != *filter.CreatedBy {
			continue
		}
		if filter.Status != "" && t.Status != filter.Status {
			continue
		}
		if filter.Priority != "" && t.Priority != filter.Priority {
			continue
		}
		clone := *t
		tasks = append(tasks, &clone)
	}
	return tasks, nil
}

func (f *fakeTaskStore) UpdateTask(ctx context.Context, task *models.Task) error {
	task.UpdatedAt = time.Now()
	clone := *task
	f.tasks[task.ID] = &clone
	return nil
}

func (f *fakeTaskStore) DeleteTask(ctx context.Context, id int64) error {
	delete(f.tasks, id)
	return nil
}

func (f *fakeTaskStore) Statistics(ctx context.Context) (*models.Statistics, error) {
	stats := &models.Statistics{
		TasksByStatus:   map[string]int64{},
		TasksByPriority: map[string]int64{},
	}
	for _, s := range models.Statuses() {
		stats.TasksByStatus[s] = 0
	}
	for _, p := range models.Priorities() {
		stats.TasksByPriority[p] = 0
	}
	for _, t := range f.tasks {
		stats.TotalTasks++
		stats.TasksByStatus[t.Status]++
		stats.TasksByPriority[t.Priority]++
	}
	return stats, nil
}

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret: "test-secret",
		JWTExpiry: time.Hour,
	}
}

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func newTestService() (*Service, *fakeUserStore, *fakeTaskStore) {
	users := newFakeUserStore()
	tasks := newFakeTaskStore()
	svc := NewService(users, tasks, nil, testLogger(), testConfig())
	return svc, users, tasks
}

func seedUser(users *fakeUserStore, email, role string) *models.User {
	user := &models.User{
		FirstName:    "Test",
		LastName:     "User",
		Email:        email,
		PasswordHash: "x",
		Role:         role,
	}
	users.CreateUser(context.Background(), user)
	return user
}
