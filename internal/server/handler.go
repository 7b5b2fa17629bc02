package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/sitenotes/sitenotes/internal/domain"
	"github.com/sitenotes/sitenotes/internal/logging"
	"github.com/sitenotes/sitenotes/internal/ports"
	"github.com/sitenotes/sitenotes/internal/services"
)

// Messages returned to clients
const (
	msgAuthRequired  = "Authentication required."
	msgForbidden     = "You do not have permission to perform this action."
	msgInternal      = "Something went wrong. Please try again."
	msgSecurityCheck = "Security check failed."
	msgUnknownAction = "Unknown action."
)

// ActionPrefix starts every action name
const ActionPrefix = "agwp_sn_"

type contextKey struct{}

// actionFunc runs one action for an authenticated user. A nil error with a
// nil result writes {"success":true,"data":null}.
type actionFunc func(ctx context.Context, w http.ResponseWriter, user domain.User, p params) (any, error)

// Handler serves the action endpoint, nonces and stored screenshots
type Handler struct {
	actions  map[string]actionFunc
	comments *services.CommentService
	mux      *http.ServeMux
	nonces   *NonceStore
	users    ports.UserDirectory
}

// NewHandler creates the HTTP handler. screenshotsDir may be empty to disable
// screenshot serving.
func NewHandler(
	comments *services.CommentService,
	users ports.UserDirectory,
	nonces *NonceStore,
	screenshotsDir string,
) *Handler {
	h := &Handler{
		comments: comments,
		mux:      http.NewServeMux(),
		nonces:   nonces,
		users:    users,
	}
	h.actions = h.actionTable()

	h.mux.HandleFunc("GET /api/nonce", h.authenticate(h.handleNonce))
	h.mux.HandleFunc("POST /api/ajax", h.authenticate(h.handleAjax))
	if screenshotsDir != "" {
		h.mux.Handle("GET /screenshots/", http.StripPrefix("/screenshots/", http.FileServer(filesOnly{http.Dir(screenshotsDir)})))
	}
	return h
}

// filesOnly hides directories so stored screenshots cannot be listed
type filesOnly struct {
	fs http.FileSystem
}

func (f filesOnly) Open(name string) (http.File, error) {
	file, err := f.fs.Open(name)
	if err != nil {
		return nil, err
	}
	info, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, err
	}
	if info.IsDir() {
		file.Close()
		return nil, os.ErrNotExist
	}
	return file, nil
}

// ServeHTTP implements http.Handler
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r)
}

// authenticate resolves the bearer token to a configured user
func (h *Handler) authenticate(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
		if !ok {
			writeFailure(w, http.StatusUnauthorized, msgAuthRequired)
			return
		}
		user, found := h.users.ByToken(strings.TrimSpace(token))
		if !found {
			logging.Logger.Warn("Unknown API token", "remote_addr", r.RemoteAddr)
			writeFailure(w, http.StatusUnauthorized, msgAuthRequired)
			return
		}
		next(w, r.WithContext(context.WithValue(r.Context(), contextKey{}, user)))
	}
}

func userFrom(ctx context.Context) domain.User {
	user, _ := ctx.Value(contextKey{}).(domain.User)
	return user
}

func (h *Handler) handleNonce(w http.ResponseWriter, r *http.Request) {
	user := userFrom(r.Context())
	writeSuccess(w, map[string]string{"nonce": h.nonces.Issue(user.ID)})
}

func (h *Handler) handleAjax(w http.ResponseWriter, r *http.Request) {
	user := userFrom(r.Context())
	start := time.Now()

	p, err := parseParams(r)
	if err != nil {
		writeError(w, err)
		return
	}

	action := p.str("action")
	if !h.nonces.Verify(user.ID, p.str("nonce")) {
		logging.Logger.Warn("Nonce check failed", "action", action, "user", user.ID)
		writeFailure(w, http.StatusForbidden, msgSecurityCheck)
		return
	}

	run, ok := h.actions[action]
	if !ok {
		writeFailure(w, http.StatusBadRequest, msgUnknownAction)
		return
	}

	result, err := run(r.Context(), w, user, p)
	logging.Logger.Debug("Action handled",
		"action", action,
		"user", user.ID,
		"duration", time.Since(start),
		"error", err)
	if err != nil {
		writeError(w, err)
		return
	}
	if _, ok := result.(rawResponse); ok {
		return
	}
	writeSuccess(w, result)
}

// rawResponse is returned by actions that wrote their own response body
type rawResponse struct{}

type envelope struct {
	Data    any  `json:"data"`
	Success bool `json:"success"`
}

type failure struct {
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, body envelope) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logging.Logger.Error("Failed to write response", "error", err)
	}
}

func writeSuccess(w http.ResponseWriter, data any) {
	writeJSON(w, http.StatusOK, envelope{Data: data, Success: true})
}

func writeFailure(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, envelope{Data: failure{Message: message}})
}

// writeError maps an error kind onto a status code. Storage failures are
// logged and reported generically.
func writeError(w http.ResponseWriter, err error) {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		writeFailure(w, http.StatusBadRequest, verr.Error())
	case errors.Is(err, domain.ErrValidation):
		writeFailure(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrForbidden):
		writeFailure(w, http.StatusForbidden, msgForbidden)
	case errors.Is(err, domain.ErrNotFound):
		writeFailure(w, http.StatusNotFound, capitalize(err.Error()))
	default:
		logging.Logger.Error("Request failed", "error", err)
		writeFailure(w, http.StatusInternalServerError, msgInternal)
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
