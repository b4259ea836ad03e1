package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/Shad0wcrushers/IDGuides/internal/imaging"
	"github.com/Shad0wcrushers/IDGuides/internal/models"
	"github.com/Shad0wcrushers/IDGuides/internal/storage"
	"github.com/Shad0wcrushers/IDGuides/internal/userdb"
)

// maxUploadBytes bounds image uploads at 10 MB.
const maxUploadBytes = 10 << 20

// UserAPI groups the JSON provisioning endpoints. These manage the
// PostgreSQL-backed directory of provisioned accounts, which is separate
// from the portal's demo accounts, plus guide image uploads to object
// storage.
type UserAPI struct {
	users         *userdb.Store
	storageClient *storage.Client // nil when uploads are disabled
}

// NewUserAPI creates a new UserAPI handler group. storageClient may be nil.
func NewUserAPI(users *userdb.Store, storageClient *storage.Client) *UserAPI {
	return &UserAPI{users: users, storageClient: storageClient}
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func respondError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, map[string]string{"error": msg})
}

// ListUsers returns every provisioned account.
func (u *UserAPI) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := u.users.List(r.Context())
	if err != nil {
		slog.Error("list provisioned users failed", "error", err)
		respondError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if users == nil {
		users = []userdb.ProvisionedUser{}
	}
	respondJSON(w, http.StatusOK, users)
}

// GetUser returns a single provisioned account.
func (u *UserAPI) GetUser(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid user id")
		return
	}

	user, err := u.users.FindByID(r.Context(), id)
	if err != nil {
		slog.Error("provisioned user lookup failed", "error", err, "id", id)
		respondError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if user == nil {
		respondError(w, http.StatusNotFound, "user not found")
		return
	}
	respondJSON(w, http.StatusOK, user)
}

type createUserRequest struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

// CreateUser provisions a new account.
func (u *UserAPI) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.Role == "" {
		req.Role = string(models.RoleUser)
	}
	if msg := validateUser(req.Name, req.Email, models.Role(req.Role)); msg != "" {
		respondError(w, http.StatusUnprocessableEntity, msg)
		return
	}

	existing, err := u.users.FindByEmail(r.Context(), req.Email)
	if err != nil {
		slog.Error("provisioned user lookup failed", "error", err)
		respondError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if existing != nil {
		respondError(w, http.StatusConflict, "email already provisioned")
		return
	}

	created, err := u.users.Create(r.Context(), req.Email, req.Name, models.Role(req.Role))
	if err != nil {
		slog.Error("provision user failed", "error", err)
		respondError(w, http.StatusInternalServerError, "internal error")
		return
	}
	respondJSON(w, http.StatusCreated, created)
}

type updateRoleRequest struct {
	Role string `json:"role"`
}

// UpdateUserRole changes a provisioned account's role.
func (u *UserAPI) UpdateUserRole(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid user id")
		return
	}

	var req updateRoleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if !models.ValidRole(req.Role) {
		respondError(w, http.StatusUnprocessableEntity, "unknown role")
		return
	}

	updated, err := u.users.UpdateRole(r.Context(), id, models.Role(req.Role))
	if err != nil {
		slog.Error("update provisioned role failed", "error", err, "id", id)
		respondError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if updated == nil {
		respondError(w, http.StatusNotFound, "user not found")
		return
	}
	respondJSON(w, http.StatusOK, updated)
}

// DeleteUser removes a provisioned account.
func (u *UserAPI) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid user id")
		return
	}

	deleted, err := u.users.Delete(r.Context(), id)
	if err != nil {
		slog.Error("delete provisioned user failed", "error", err, "id", id)
		respondError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if !deleted {
		respondError(w, http.StatusNotFound, "user not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type uploadResponse struct {
	// URL points at the widest variant, the drop-in value for a markdown
	// image reference.
	URL      string            `json:"url"`
	Variants []uploadedVariant `json:"variants"`
}

type uploadedVariant struct {
	Name   string `json:"name"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
	URL    string `json:"url"`
}

// UploadImage accepts a multipart image, generates responsive variants,
// and stores them in the public bucket.
func (u *UserAPI) UploadImage(w http.ResponseWriter, r *http.Request) {
	if u.storageClient == nil {
		respondError(w, http.StatusServiceUnavailable, "object storage not configured")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	file, header, err := r.FormFile("image")
	if err != nil {
		respondError(w, http.StatusBadRequest, "missing image field")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		respondError(w, http.StatusBadRequest, "unreadable upload")
		return
	}

	variants, err := imaging.GenerateVariants(data, nil)
	if err != nil {
		respondError(w, http.StatusUnprocessableEntity, "unsupported image format")
		return
	}

	base := uuid.NewString()
	resp := uploadResponse{}
	var stored []string
	for _, v := range variants {
		key := fmt.Sprintf("uploads/%s-%s.jpg", base, v.Name)
		if err := u.storageClient.Upload(r.Context(), key, v.ContentType, bytes.NewReader(v.Data), int64(len(v.Data))); err != nil {
			slog.Error("image upload failed", "error", err, "key", key, "file", header.Filename)
			// Remove the variants already stored so a half-uploaded set
			// never leaks into the bucket.
			for _, k := range stored {
				if derr := u.storageClient.Delete(r.Context(), k); derr != nil {
					slog.Warn("orphaned variant cleanup failed", "key", k, "error", derr)
				}
			}
			respondError(w, http.StatusBadGateway, "storage upload failed")
			return
		}
		stored = append(stored, key)
		resp.Variants = append(resp.Variants, uploadedVariant{
			Name:   v.Name,
			Width:  v.Width,
			Height: v.Height,
			URL:    u.storageClient.FileURL(key),
		})
	}
	// Variants come back narrowest first; the last is the widest.
	resp.URL = resp.Variants[len(resp.Variants)-1].URL

	respondJSON(w, http.StatusCreated, resp)
}
