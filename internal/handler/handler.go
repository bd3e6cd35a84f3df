package handler

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"github.com/taskhive/task-service/internal/service"
	"github.com/taskhive/task-service/internal/uploads"
)

type Handler struct {
	svc     *service.Service
	uploads *uploads.Store
	log     *logrus.Logger
}

func NewHandler(svc *service.Service, uploadStore *uploads.Store, log *logrus.Logger) *Handler {
	return &Handler{svc: svc, uploads: uploadStore, log: log}
}

// Health handles the liveness probe
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, envelope{
		"success": true,
		"message": "API is running",
	})
}

// NotFound handles unmatched routes
func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusNotFound, envelope{
		"success": false,
		"message": "Route not found",
	})
}

// pathID extracts an integer path variable. The zero return pairs with
// ok=false for unparseable values, which handlers report as not-found
// since no record can match.
func pathID(r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)[name], 10, 64)
	if err != nil || id < 1 {
		return 0, false
	}
	return id, true
}
