package api

import (
	"encoding/json"
	"net/http"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/jbassil/agence/internal/models"
	"github.com/jbassil/agence/internal/pb"
	"github.com/jbassil/agence/internal/pocketbase"
)

type Handler struct {
	client *pb.Client
}

func NewHandler(client *pb.Client) *Handler {
	return &Handler{
		client: client,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.WithError(err).Warn("could not encode response")
	}
}

// BackendHealth reports whether the PocketBase backend answers its health check.
func (h *Handler) BackendHealth(w http.ResponseWriter, r *http.Request) {
	hc, err := h.client.Health(r.Context())
	if err != nil {
		log.WithError(err).WithField("backend", h.client.BaseURL()).Warn("backend health check failed")
		http.Error(w, "Backend unavailable", http.StatusBadGateway)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"backend": h.client.BaseURL(),
		"message": hc.Message,
	})
}

// User dispatches /users/{id} by method.
func (h *Handler) User(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.GetUser(w, r)
	case http.MethodPatch:
		h.UpdateUser(w, r)
	default:
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
	}
}

func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		http.Error(w, "Missing ID", http.StatusBadRequest)
		return
	}

	user, err := h.client.Users().GetOne(r.Context(), id, nil)
	if pocketbase.IsNotFound(err) {
		http.Error(w, "Not found", http.StatusNotFound)
		return
	}
	if err != nil {
		log.WithError(err).WithField("id", id).Error("could not fetch user")
		http.Error(w, "Backend error", http.StatusBadGateway)
		return
	}

	writeJSON(w, http.StatusOK, user)
}

func (h *Handler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		http.Error(w, "Missing ID", http.StatusBadRequest)
		return
	}

	var req models.UsersUpdate
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	user, err := h.client.Users().Update(r.Context(), id, req)
	if err != nil {
		var re *pocketbase.ResponseError
		switch {
		case pocketbase.IsNotFound(err):
			http.Error(w, "Not found", http.StatusNotFound)
		case errors.As(err, &re) && re.Status == http.StatusBadRequest:
			writeJSON(w, http.StatusBadRequest, map[string]any{
				"message": re.Message,
				"data":    re.Data,
			})
		default:
			log.WithError(err).WithField("id", id).Error("could not update user")
			http.Error(w, "Backend error", http.StatusBadGateway)
		}
		return
	}

	writeJSON(w, http.StatusOK, user)
}
