package server

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sitenotes/sitenotes/internal/access"
	"github.com/sitenotes/sitenotes/internal/adapters/screenshots"
	"github.com/sitenotes/sitenotes/internal/adapters/storage"
	"github.com/sitenotes/sitenotes/internal/domain"
	"github.com/sitenotes/sitenotes/internal/export"
	"github.com/sitenotes/sitenotes/internal/services"
)

const (
	adminToken      = "admin-token"
	editorToken     = "editor-token"
	subscriberToken = "subscriber-token"
)

type testEnv struct {
	handler        *Handler
	screenshotsDir string
}

func newTestEnv(t *testing.T) testEnv {
	t.Helper()
	dir := t.TempDir()
	repo, err := storage.NewSQLiteRepository(storage.Options{
		Path:        filepath.Join(dir, "sitenotes.db"),
		TablePrefix: "wp_",
	})
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })

	users := access.NewStaticDirectory([]access.Account{
		{Token: adminToken, User: domain.User{ID: 1, Name: "Ada", Roles: []string{domain.RoleAdministrator}}},
		{Token: editorToken, User: domain.User{ID: 2, Name: "Eddie", Roles: []string{"editor"}}},
		{Token: subscriberToken, User: domain.User{ID: 3, Name: "Sam", Roles: []string{"subscriber"}}},
	})

	screenshotsDir := filepath.Join(dir, "agwp-sn-screenshots")
	cache := services.NewCache()
	settings := services.NewSettingsService(repo, cache)
	comments := services.NewCommentService(
		repo,
		services.NewTaxonomyService(repo, cache),
		settings,
		access.NewRolePolicy(settings),
		screenshots.NewFileStore(screenshotsDir, "/screenshots"),
		export.NewCSVExporter(users),
	)

	return testEnv{
		handler:        NewHandler(comments, users, NewNonceStore(time.Hour), screenshotsDir),
		screenshotsDir: screenshotsDir,
	}
}

type response struct {
	Data    json.RawMessage `json:"data"`
	Success bool            `json:"success"`
}

func (e testEnv) nonce(t *testing.T, token string) string {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/api/nonce", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	e.handler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Data struct {
			Nonce string `json:"nonce"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.NotEmpty(t, body.Data.Nonce)
	return body.Data.Nonce
}

// post sends a form-encoded action with a valid nonce for token
func (e testEnv) post(t *testing.T, token, action string, values url.Values) *httptest.ResponseRecorder {
	t.Helper()
	if values == nil {
		values = url.Values{}
	}
	values.Set("action", ActionPrefix+action)
	values.Set("nonce", e.nonce(t, token))

	req := httptest.NewRequest(http.MethodPost, "/api/ajax", strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	e.handler.ServeHTTP(rec, req)
	return rec
}

func (e testEnv) postJSON(t *testing.T, token string, body map[string]any) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/ajax", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	e.handler.ServeHTTP(rec, req)
	return rec
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder, dest any) response {
	t.Helper()
	var resp response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp), rec.Body.String())
	if dest != nil {
		require.NoError(t, json.Unmarshal(resp.Data, dest))
	}
	return resp
}

func failureMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var f failure
	resp := decodeResponse(t, rec, &f)
	assert.False(t, resp.Success)
	return f.Message
}

func TestHandler_Authentication(t *testing.T) {
	env := newTestEnv(t)

	tests := []struct {
		name   string
		header string
	}{
		{name: "missing header", header: ""},
		{name: "unknown token", header: "Bearer nope"},
		{name: "wrong scheme", header: "Basic " + adminToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/nonce", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			env.handler.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.Equal(t, msgAuthRequired, failureMessage(t, rec))
		})
	}
}

func TestHandler_NonceChecks(t *testing.T) {
	env := newTestEnv(t)
	editorNonce := env.nonce(t, editorToken)

	tests := []struct {
		name  string
		nonce string
	}{
		{name: "missing nonce", nonce: ""},
		{name: "unknown nonce", nonce: "forged"},
		{name: "nonce issued to another user", nonce: editorNonce},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := env.postJSON(t, adminToken, map[string]any{
				"action": ActionPrefix + "get_comments",
				"nonce":  tt.nonce,
			})
			assert.Equal(t, http.StatusForbidden, rec.Code)
			assert.Equal(t, msgSecurityCheck, failureMessage(t, rec))
		})
	}
}

func TestHandler_UnknownAction(t *testing.T) {
	env := newTestEnv(t)

	rec := env.post(t, adminToken, "launch_rockets", nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, msgUnknownAction, failureMessage(t, rec))
}

func TestHandler_CommentFlow(t *testing.T) {
	env := newTestEnv(t)

	rec := env.post(t, editorToken, "save_comment", url.Values{
		"comment_text":     {"Fix button"},
		"page_url":         {"https://x.test/a"},
		"element_selector": {"main#content > button.cta:nth-of-type(1)"},
		"x_position":       {"120.6"},
		"y_position":       {"340"},
		"status":           {"resolved"},
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var created domain.Comment
	resp := decodeResponse(t, rec, &created)
	assert.True(t, resp.Success)
	assert.NotZero(t, created.ID)
	assert.Equal(t, domain.StatusOpen, created.Status, "the widget always creates open comments")
	assert.Equal(t, domain.PriorityMedium, created.Priority)
	assert.Equal(t, 120, created.XPosition)
	id := fmt.Sprint(created.ID)

	rec = env.post(t, adminToken, "add_reply", url.Values{"comment_id": {id}, "reply_text": {"On it"}})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = env.post(t, editorToken, "get_comments", url.Values{"page_url": {"https://x.test/a"}, "status": {"all"}})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var listed []domain.Comment
	decodeResponse(t, rec, &listed)
	require.Len(t, listed, 1)
	assert.Equal(t, 1, listed[0].ReplyCount)

	rec = env.post(t, adminToken, "update_status", url.Values{"comment_id": {id}, "status": {"in_progress"}})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var moved domain.Comment
	decodeResponse(t, rec, &moved)
	assert.Equal(t, domain.StatusInProgress, moved.Status)

	rec = env.post(t, adminToken, "update_comment", url.Values{"comment_id": {id}, "priority": {"High"}, "due_date": {"2025-04-01"}})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var updated domain.Comment
	decodeResponse(t, rec, &updated)
	assert.Equal(t, "high", updated.Priority)
	assert.Equal(t, "2025-04-01", updated.DueDate)
	assert.Equal(t, "Fix button", updated.CommentText)

	rec = env.post(t, adminToken, "add_time_entry", url.Values{"comment_id": {id}, "hours": {"1"}, "minutes": {"30"}, "entry_id": {"e1"}})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var timed domain.Comment
	decodeResponse(t, rec, &timed)
	assert.Equal(t, 90*time.Minute, timed.Timesheet.Total())

	rec = env.post(t, adminToken, "delete_time_entry", url.Values{"comment_id": {id}, "entry_id": {"e1"}})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = env.post(t, adminToken, "delete_comment", url.Values{"comment_id": {id}})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var deleted map[string]any
	decodeResponse(t, rec, &deleted)
	assert.Equal(t, true, deleted["deleted"])

	rec = env.post(t, adminToken, "get_comment", url.Values{"comment_id": {id}})
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, failureMessage(t, rec), "not found")
}

func TestHandler_ErrorMapping(t *testing.T) {
	env := newTestEnv(t)

	tests := []struct {
		name        string
		token       string
		action      string
		values      url.Values
		wantCode    int
		wantMessage string
	}{
		{
			name:        "missing comment text",
			token:       editorToken,
			action:      "save_comment",
			values:      url.Values{"page_url": {"https://x.test/a"}},
			wantCode:    http.StatusBadRequest,
			wantMessage: "comment_text: is required",
		},
		{
			name:        "missing comment id",
			token:       adminToken,
			action:      "get_comment",
			wantCode:    http.StatusBadRequest,
			wantMessage: "comment_id: is required",
		},
		{
			name:        "malformed position",
			token:       adminToken,
			action:      "add_task",
			values:      url.Values{"page_url": {"https://x.test/a"}, "comment_text": {"x"}, "x_position": {"left"}},
			wantCode:    http.StatusBadRequest,
			wantMessage: "x_position: must be an integer",
		},
		{
			name:        "overflowing position",
			token:       adminToken,
			action:      "add_task",
			values:      url.Values{"page_url": {"https://x.test/a"}, "comment_text": {"x"}, "y_position": {"1e30"}},
			wantCode:    http.StatusBadRequest,
			wantMessage: "y_position: must be an integer",
		},
		{
			name:        "fractional minutes",
			token:       adminToken,
			action:      "add_time_entry",
			values:      url.Values{"comment_id": {"1"}, "hours": {"1"}, "minutes": {"12.9"}},
			wantCode:    http.StatusBadRequest,
			wantMessage: "minutes: must be an integer",
		},
		{
			name:        "invalid sort",
			token:       adminToken,
			action:      "get_comments",
			values:      url.Values{"orderby": {"author"}},
			wantCode:    http.StatusBadRequest,
			wantMessage: "sort: must be one of created_at, updated_at, priority",
		},
		{
			name:        "role not allowed",
			token:       subscriberToken,
			action:      "get_comments",
			wantCode:    http.StatusForbidden,
			wantMessage: msgForbidden,
		},
		{
			name:     "missing comment",
			token:    adminToken,
			action:   "update_status",
			values:   url.Values{"comment_id": {"999"}, "status": {"resolved"}},
			wantCode: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := env.post(t, tt.token, tt.action, tt.values)

			assert.Equal(t, tt.wantCode, rec.Code, rec.Body.String())
			msg := failureMessage(t, rec)
			if tt.wantMessage != "" {
				assert.Equal(t, tt.wantMessage, msg)
			}
		})
	}
}

func TestParams_IntParam(t *testing.T) {
	tests := []struct {
		name    string
		raw     any
		want    int
		wantErr bool
	}{
		{name: "absent", raw: nil, want: 0},
		{name: "form value", raw: " 42 ", want: 42},
		{name: "negative", raw: "-7", want: -7},
		{name: "json number", raw: json.Number("120"), want: 120},
		{name: "fraction", raw: "12.9", wantErr: true},
		{name: "json fraction", raw: json.Number("12.5"), wantErr: true},
		{name: "exponent", raw: "1e30", wantErr: true},
		{name: "not a number", raw: "NaN", wantErr: true},
		{name: "infinity", raw: "Inf", wantErr: true},
		{name: "overflow", raw: "9223372036854775808", wantErr: true},
		{name: "word", raw: "left", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := params{}
			if tt.raw != nil {
				p["x"] = tt.raw
			}

			got, err := p.intParam("x")
			if tt.wantErr {
				assert.ErrorIs(t, err, domain.ErrValidation)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestHandler_JSONBodies(t *testing.T) {
	env := newTestEnv(t)

	rec := env.postJSON(t, adminToken, map[string]any{
		"action": ActionPrefix + "save_priorities",
		"nonce":  env.nonce(t, adminToken),
		"priorities": []map[string]any{
			{"name": "Blocker", "color": "#000000"},
			{"name": "High", "color": "#ff0000"},
		},
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = env.postJSON(t, adminToken, map[string]any{
		"action":       ActionPrefix + "add_task",
		"nonce":        env.nonce(t, adminToken),
		"comment_text": "Launch checklist",
		"page_url":     "https://x.test/launch",
		"priority":     "blocker",
		"x_position":   10,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var created domain.Comment
	decodeResponse(t, rec, &created)
	assert.Equal(t, "blocker", created.Priority)
	assert.Equal(t, 10, created.XPosition)

	// Categories sent by a form client arrive as a JSON string
	rec = env.post(t, adminToken, "save_categories", url.Values{
		"categories": {`[{"name":"Design"},{"name":"Copy"}]`},
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var categories []domain.Category
	decodeResponse(t, rec, &categories)
	require.Len(t, categories, 2)
	assert.Equal(t, "Design", categories[0].Name)
}

func TestHandler_SaveSettingsKeepsUnsuppliedFields(t *testing.T) {
	env := newTestEnv(t)

	rec := env.post(t, adminToken, "save_settings", url.Values{"allowed_roles": {"subscriber, editor"}})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var saved domain.Settings
	decodeResponse(t, rec, &saved)
	assert.ElementsMatch(t, []string{"subscriber", "editor", domain.RoleAdministrator}, saved.AllowedRoles)
	assert.True(t, saved.EnableFrontendComments)
	assert.InDelta(t, 0.8, saved.ScreenshotQuality, 0.0001)

	rec = env.post(t, subscriberToken, "get_comments", nil)
	assert.Equal(t, http.StatusOK, rec.Code, "subscribers were just allowed")

	rec = env.post(t, adminToken, "save_settings", url.Values{"enable_frontend_comments": {"0"}})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = env.post(t, editorToken, "save_comment", url.Values{"comment_text": {"x"}, "page_url": {"https://x.test/a"}})
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestHandler_ExportComments(t *testing.T) {
	env := newTestEnv(t)

	for _, text := range []string{"First", "Second"} {
		rec := env.post(t, adminToken, "add_task", url.Values{"comment_text": {text}, "page_url": {"https://x.test/a"}})
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	}

	rec := env.post(t, adminToken, "export_comments", url.Values{"orderby": {"created_at"}, "order": {"asc"}})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "text/csv; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), `filename="site-notes-`)

	rows, err := csv.NewReader(rec.Body).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, export.Header, rows[0])
	assert.Equal(t, "First", rows[1][2])
	assert.Equal(t, "Second", rows[2][2])
	assert.Equal(t, "Ada", rows[1][9])

	rec = env.post(t, subscriberToken, "export_comments", nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, msgForbidden, failureMessage(t, rec))
}

func TestHandler_ServesScreenshots(t *testing.T) {
	env := newTestEnv(t)
	require.NoError(t, os.MkdirAll(env.screenshotsDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(env.screenshotsDir, "shot.png"), []byte("png"), 0o644))

	rec := httptest.NewRecorder()
	env.handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/screenshots/shot.png", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "png", rec.Body.String())

	require.NoError(t, os.MkdirAll(filepath.Join(env.screenshotsDir, "nested"), 0o755))
	for _, target := range []string{"/screenshots/", "/screenshots/nested/", "/screenshots/missing.png"} {
		rec = httptest.NewRecorder()
		env.handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))

		assert.Equal(t, http.StatusNotFound, rec.Code, target)
		assert.NotContains(t, rec.Body.String(), "shot.png", target)
	}
}

func TestHTTPServer_CORS(t *testing.T) {
	env := newTestEnv(t)

	tests := []struct {
		name      string
		origins   []string
		origin    string
		wantAllow string
	}{
		{name: "allowed origin", origins: []string{"https://x.test"}, origin: "https://x.test", wantAllow: "https://x.test"},
		{name: "other origin", origins: []string{"https://x.test"}, origin: "https://evil.test", wantAllow: ""},
		{name: "cors disabled", origins: nil, origin: "https://x.test", wantAllow: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := NewHTTPServer("127.0.0.1:0", env.handler, tt.origins)

			req := httptest.NewRequest(http.MethodOptions, "/api/ajax", nil)
			req.Header.Set("Origin", tt.origin)
			req.Header.Set("Access-Control-Request-Method", http.MethodPost)
			rec := httptest.NewRecorder()
			srv.httpServer.Handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantAllow, rec.Header().Get("Access-Control-Allow-Origin"))
		})
	}
}

func TestHTTPServer_StopsWithContext(t *testing.T) {
	env := newTestEnv(t)
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	srv := NewHTTPServer(listener.Addr().String(), env.handler, nil)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.ServeListener(ctx, listener) }()

	resp, err := http.Get("http://" + listener.Addr().String() + "/api/nonce")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}
