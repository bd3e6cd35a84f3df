package handler

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/taskhive/task-service/internal/middleware"
)

// chain composes middleware left to right: the first one sees the
// request first
func chain(h http.Handler, mws ...func(http.Handler) http.Handler) http.Handler {
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}
	return h
}

// NewRouter assembles the full HTTP surface. authenticate is the bearer
// token gate applied to every protected route.
func NewRouter(h *Handler, authenticate func(http.Handler) http.Handler, uploadDir string) *mux.Router {
	r := mux.NewRouter()
	r.NotFoundHandler = http.HandlerFunc(h.NotFound)

	r.HandleFunc("/health", h.Health).Methods(http.MethodGet)

	// Auth routes
	r.HandleFunc("/api/auth/register", h.Register).Methods(http.MethodPost)
	r.HandleFunc("/api/auth/login", h.Login).Methods(http.MethodPost)
	r.Handle("/api/auth/me",
		chain(http.HandlerFunc(h.Me), authenticate)).Methods(http.MethodGet)
	r.Handle("/api/auth/update-profile",
		chain(http.HandlerFunc(h.UpdateProfile), authenticate)).Methods(http.MethodPut)
	r.Handle("/api/auth/upload-profile-picture",
		chain(http.HandlerFunc(h.UploadProfilePicture), authenticate)).Methods(http.MethodPost)

	// Task routes; mutations are barred to admins
	r.Handle("/api/tasks",
		chain(http.HandlerFunc(h.CreateTask), authenticate, middleware.RequireNonAdmin)).Methods(http.MethodPost)
	r.Handle("/api/tasks",
		chain(http.HandlerFunc(h.ListTasks), authenticate)).Methods(http.MethodGet)
	r.Handle("/api/tasks/{taskId}",
		chain(http.HandlerFunc(h.GetTask), authenticate)).Methods(http.MethodGet)
	r.Handle("/api/tasks/{taskId}",
		chain(http.HandlerFunc(h.UpdateTask), authenticate, middleware.RequireNonAdmin)).Methods(http.MethodPut)
	r.Handle("/api/tasks/{taskId}",
		chain(http.HandlerFunc(h.DeleteTask), authenticate, middleware.RequireNonAdmin)).Methods(http.MethodDelete)
	r.Handle("/api/tasks/{taskId}/complete",
		chain(http.HandlerFunc(h.CompleteTask), authenticate, middleware.RequireNonAdmin)).Methods(http.MethodPatch)

	// Admin routes, read-only
	admin := r.PathPrefix("/api/admin").Subrouter()
	admin.Use(authenticate, middleware.RequireAdmin)
	admin.HandleFunc("/tasks", h.AdminListTasks).Methods(http.MethodGet)
	admin.HandleFunc("/tasks/user/{userId}", h.AdminListTasksByUser).Methods(http.MethodGet)
	admin.HandleFunc("/tasks/{taskId}", h.AdminGetTask).Methods(http.MethodGet)
	admin.HandleFunc("/users", h.AdminListUsers).Methods(http.MethodGet)
	admin.HandleFunc("/users/{userId}", h.AdminGetUser).Methods(http.MethodGet)
	admin.HandleFunc("/statistics", h.AdminStatistics).Methods(http.MethodGet)

	// Stored profile pictures
	r.PathPrefix("/uploads/").Handler(
		http.StripPrefix("/uploads/", http.FileServer(http.Dir(uploadDir))))

	return r
}
