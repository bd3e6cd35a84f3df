package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/taskhive/task-service/internal/middleware"
	"github.com/taskhive/task-service/internal/service"
	"github.com/taskhive/task-service/internal/uploads"
)

// Register handles user registration
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var input service.RegisterInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeFailure(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	user, token, err := h.svc.Register(r.Context(), input)
	if err != nil {
		h.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, envelope{
		"success": true,
		"message": "User registered successfully",
		"token":   token,
		"user":    user,
	})
}

// Login handles user authentication
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var input service.LoginInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeFailure(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	user, token, err := h.svc.Login(r.Context(), input)
	if err != nil {
		h.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, envelope{
		"success": true,
		"message": "Login successful",
		"token":   token,
		"user":    user,
	})
}

// Me returns the authenticated user's profile
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, envelope{
		"success": true,
		"user":    middleware.UserFromRequest(r),
	})
}

// UpdateProfile handles profile updates
func (h *Handler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var input service.UpdateProfileInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeFailure(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	user, err := h.svc.UpdateProfile(r.Context(), middleware.UserFromRequest(r), input)
	if err != nil {
		h.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, envelope{
		"success": true,
		"message": "Profile updated successfully",
		"user":    user,
	})
}

// UploadProfilePicture handles multipart profile picture uploads
func (h *Handler) UploadProfilePicture(w http.ResponseWriter, r *http.Request) {
	file, header, err := r.FormFile("profilePicture")
	if err != nil {
		writeFailure(w, http.StatusBadRequest, "No file uploaded. Please upload an image file.")
		return
	}
	defer file.Close()

	url, err := h.uploads.Save(file, header)
	switch {
	case errors.Is(err, uploads.ErrUnsupportedType):
		writeFailure(w, http.StatusBadRequest, "Only jpg, jpeg, png and gif files are allowed")
		return
	case errors.Is(err, uploads.ErrTooLarge):
		writeFailure(w, http.StatusBadRequest, "File exceeds the maximum allowed size")
		return
	case err != nil:
		h.writeError(w, err)
		return
	}

	current := middleware.UserFromRequest(r)
	previous := current.ProfilePicture

	user, err := h.svc.SetProfilePicture(r.Context(), current, url)
	if err != nil {
		// The janitor reclaims the stored file once it is old enough
		h.writeError(w, err)
		return
	}

	if previous != nil && *previous != url {
		if err := h.uploads.Remove(*previous); err != nil {
			h.log.Errorf("Failed to remove replaced profile picture %s: %v", *previous, err)
		}
	}

	writeJSON(w, http.StatusOK, envelope{
		"success":           true,
		"message":           "Profile picture uploaded successfully",
		"profilePictureUrl": url,
		"user":              user,
	})
}
