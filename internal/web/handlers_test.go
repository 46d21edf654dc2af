package web

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mood-tracker/internal/config"
	apperrors "mood-tracker/internal/errors"
	"mood-tracker/internal/quotes"
	"mood-tracker/internal/services"
	"mood-tracker/internal/validation"
)

var fixedNow = time.Date(2024, 1, 10, 12, 0, 0, 0, time.UTC)

type stubQuotes struct{}

func (stubQuotes) Random(context.Context) (*quotes.Quote, error) {
	return &quotes.Quote{Content: "Start where you are.", Author: "Arthur Ashe"}, nil
}

// MockBoard implements services.BoardService for failure paths
type MockBoard struct {
	AddTaskFunc    func(ctx context.Context, name, deadline string) (*services.Snapshot, error)
	DeleteTaskFunc func(ctx context.Context, index int) (*services.Snapshot, error)
	SnapshotFunc   func(ctx context.Context) (*services.Snapshot, error)
}

func (m *MockBoard) AddTask(ctx context.Context, name, deadline string) (*services.Snapshot, error) {
	return m.AddTaskFunc(ctx, name, deadline)
}

func (m *MockBoard) DeleteTask(ctx context.Context, index int) (*services.Snapshot, error) {
	return m.DeleteTaskFunc(ctx, index)
}

func (m *MockBoard) Snapshot(ctx context.Context) (*services.Snapshot, error) {
	return m.SnapshotFunc(ctx)
}

func (m *MockBoard) RefreshQuote(context.Context) string { return "" }

func (m *MockBoard) Close() error { return nil }

func testConfig() *config.Config {
	cfg := config.NewConfig()
	cfg.Server.Mode = gin.TestMode
	cfg.Time.Location = "UTC"
	return cfg
}

func newTestServer(t *testing.T) *Server {
	cfg := testConfig()
	board := services.NewBoardService(
		services.NewMemoryTaskStore(validation.NewTaskValidatorWithConfig(cfg)),
		nil,
		stubQuotes{},
		services.WithClock(func() time.Time { return fixedNow }),
		services.WithFallbackQuote("fallback quote"),
	)
	return NewServer(board, cfg, WithClock(func() time.Time { return fixedNow }))
}

func do(t *testing.T, s *Server, method, target string, body string, contentType string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	return w
}

type apiResponse struct {
	Success bool      `json:"success"`
	Error   string    `json:"error"`
	Code    string    `json:"code"`
	Field   string    `json:"field"`
	Data    stateView `json:"data"`
}

func decode(t *testing.T, w *httptest.ResponseRecorder) apiResponse {
	var resp apiResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), w.Body.String())
	return resp
}

func addViaAPI(t *testing.T, s *Server, name, deadline string) *httptest.ResponseRecorder {
	body, err := json.Marshal(map[string]string{"name": name, "deadline": deadline})
	require.NoError(t, err)
	return do(t, s, http.MethodPost, "/api/tasks", string(body), "application/json")
}

func TestIndex_EmptyBoard(t *testing.T) {
	s := newTestServer(t)

	w := do(t, s, http.MethodGet, "/", "", "")

	assert.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "Add a task to set the mood")
	assert.Contains(t, body, "😌")
	assert.Contains(t, body, "#2e7d32")
	assert.Contains(t, body, "https://open.spotify.com/embed/playlist/37i9dQZF1DX4sWSpwq3LiO?utm_source=generator")
	assert.Contains(t, body, "fallback quote")
}

func TestAddTask_Form(t *testing.T) {
	s := newTestServer(t)
	form := url.Values{"name": {"Exam"}, "deadline": {"2024-01-10T20:00"}}

	w := do(t, s, http.MethodPost, "/tasks", form.Encode(), "application/x-www-form-urlencoded")

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))

	page := do(t, s, http.MethodGet, "/", "", "").Body.String()
	assert.Contains(t, page, "Exam")
	assert.Contains(t, page, "Due: 2024-01-10 20:00")
	assert.Contains(t, page, "Deadline Panic!")
	assert.Contains(t, page, "37i9dQZF1DWZBCPUIus2iR")
	assert.Contains(t, page, "Start where you are.")
}

func TestAddTask_FormInvalid(t *testing.T) {
	s := newTestServer(t)
	form := url.Values{"name": {"   "}, "deadline": {"2024-01-10T20:00"}}

	w := do(t, s, http.MethodPost, "/tasks", form.Encode(), "application/x-www-form-urlencoded")

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "name is required")
	assert.Contains(t, w.Body.String(), `value="2024-01-10T20:00"`, "form input is preserved")
}

func TestDeleteTask_Form(t *testing.T) {
	s := newTestServer(t)
	require.Equal(t, http.StatusCreated, addViaAPI(t, s, "Essay", "2024-01-13T00:00").Code)

	for _, target := range []string{"/tasks/7/delete", "/tasks/abc/delete", "/tasks/0/delete"} {
		w := do(t, s, http.MethodPost, target, "", "")
		assert.Equal(t, http.StatusSeeOther, w.Code, target)
	}

	page := do(t, s, http.MethodGet, "/", "", "").Body.String()
	assert.NotContains(t, page, "Essay")
}

func TestAPI_AddAndState(t *testing.T) {
	s := newTestServer(t)

	require.Equal(t, http.StatusCreated, addViaAPI(t, s, "Essay", "2024-01-13T00:00").Code)
	w := addViaAPI(t, s, "Exam", "2024-01-11T18:00")
	require.Equal(t, http.StatusCreated, w.Code)

	resp := decode(t, w)
	assert.True(t, resp.Success)
	require.Len(t, resp.Data.Tasks, 2)
	assert.Equal(t, "Exam", resp.Data.Tasks[0].Name)
	assert.Equal(t, 0, resp.Data.Tasks[0].Index)
	assert.Equal(t, "focused", resp.Data.Mood.Category)
	assert.Equal(t, "amber", resp.Data.Mood.Color)
	assert.Equal(t, "paced", resp.Data.PlaylistKey)

	state := decode(t, do(t, s, http.MethodGet, "/api/state", "", ""))
	assert.Equal(t, resp.Data.Tasks, state.Data.Tasks)
	assert.Equal(t, `"Start where you are." — Arthur Ashe`, state.Data.Quote)
}

func TestAPI_AddInvalid(t *testing.T) {
	s := newTestServer(t)

	w := addViaAPI(t, s, "Essay", "")
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	resp := decode(t, w)
	assert.False(t, resp.Success)
	assert.Equal(t, "INVALID_INPUT", resp.Code)
	assert.Contains(t, resp.Error, "deadline")

	w = do(t, s, http.MethodPost, "/api/tasks", "{broken", "application/json")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAPI_AddInvalidReportsField(t *testing.T) {
	tests := []struct {
		name     string
		task     string
		deadline string
		field    string
	}{
		{"missing deadline", "Essay", "", "deadline"},
		{"bad deadline", "Essay", "someday", "deadline"},
		{"missing name", "", "2024-01-15T09:00", "name"},
		{"both missing reports name first", "", "", "name"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(t)

			resp := decode(t, addViaAPI(t, s, tt.task, tt.deadline))
			assert.Equal(t, "INVALID_INPUT", resp.Code)
			assert.Equal(t, tt.field, resp.Field)
		})
	}

	resp := decode(t, do(t, newTestServer(t), http.MethodDelete, "/api/tasks/0", "", ""))
	assert.Empty(t, resp.Field, "successful responses carry no field")
}

func TestAPI_Delete(t *testing.T) {
	s := newTestServer(t)
	addViaAPI(t, s, "A", "2024-01-11T00:00")
	addViaAPI(t, s, "B", "2024-01-12T00:00")
	addViaAPI(t, s, "C", "2024-01-13T00:00")

	w := do(t, s, http.MethodDelete, "/api/tasks/1", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	resp := decode(t, w)
	require.Len(t, resp.Data.Tasks, 2)
	assert.Equal(t, "A", resp.Data.Tasks[0].Name)
	assert.Equal(t, "C", resp.Data.Tasks[1].Name)

	w = do(t, s, http.MethodDelete, "/api/tasks/10", "", "")
	assert.Equal(t, http.StatusOK, w.Code, "out of range is a silent no-op")
	assert.Len(t, decode(t, w).Data.Tasks, 2)

	w = do(t, s, http.MethodDelete, "/api/tasks/x", "", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAPI_Mood(t *testing.T) {
	s := newTestServer(t)

	tests := []struct {
		name     string
		query    string
		status   int
		category string
		key      string
	}{
		{"no deadline", "", http.StatusOK, "calm", "chill"},
		{"exactly 48h", "?deadline=2024-01-12T12:00:00Z", http.StatusOK, "focused", "paced"},
		{"exactly 24h", "?deadline=2024-01-11T12:00", http.StatusOK, "urgent", "panic"},
		{"far", "?deadline=2024-02-01", http.StatusOK, "calm", "chill"},
		{"garbage", "?deadline=whenever", http.StatusUnprocessableEntity, "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, s, http.MethodGet, "/api/mood"+tt.query, "", "")
			assert.Equal(t, tt.status, w.Code)
			if tt.status != http.StatusOK {
				return
			}

			var resp struct {
				Mood struct {
					Category string `json:"category"`
				} `json:"mood"`
				PlaylistKey string `json:"playlist_key"`
				PlaylistURL string `json:"playlist_url"`
			}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, tt.category, resp.Mood.Category)
			assert.Equal(t, tt.key, resp.PlaylistKey)
			assert.Contains(t, resp.PlaylistURL, "open.spotify.com/embed/playlist/")
		})
	}
}

func TestAPI_Playlist(t *testing.T) {
	s := newTestServer(t)

	tests := []struct {
		mood string
		key  string
		id   string
	}{
		{"calm", "chill", "37i9dQZF1DX4sWSpwq3LiO"},
		{"focused", "paced", "37i9dQZF1DXcBWIGoYBM5M"},
		{"urgent", "panic", "37i9dQZF1DWZBCPUIus2iR"},
		{"bogus", "chill", "37i9dQZF1DX4sWSpwq3LiO"},
	}

	for _, tt := range tests {
		w := do(t, s, http.MethodGet, "/api/playlist?mood="+tt.mood, "", "")
		require.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			Data struct {
				Key        string `json:"key"`
				PlaylistID string `json:"playlist_id"`
			} `json:"data"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, tt.key, resp.Data.Key, tt.mood)
		assert.Equal(t, tt.id, resp.Data.PlaylistID, tt.mood)
	}
}

func TestAPI_StoreFailure(t *testing.T) {
	storeErr := apperrors.NewDatabaseError("list tasks", errors.New("closed"))
	mock := &MockBoard{
		SnapshotFunc: func(context.Context) (*services.Snapshot, error) { return nil, storeErr },
		DeleteTaskFunc: func(context.Context, int) (*services.Snapshot, error) {
			return nil, storeErr
		},
	}
	s := NewServer(mock, testConfig())

	w := do(t, s, http.MethodGet, "/api/state", "", "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	resp := decode(t, w)
	assert.Equal(t, "DATABASE_ERROR", resp.Code)
	assert.Equal(t, "A storage error occurred. Please try again.", resp.Error)

	w = do(t, s, http.MethodDelete, "/api/tasks/0", "", "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)

	w = do(t, s, http.MethodGet, "/", "", "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestAPI_MoodIgnoresBoardState(t *testing.T) {
	mock := &MockBoard{
		SnapshotFunc: func(context.Context) (*services.Snapshot, error) {
			t.Error("mood endpoint should not read the board")
			return nil, apperrors.NewDatabaseError("list tasks", errors.New("closed"))
		},
	}
	s := NewServer(mock, testConfig(), WithClock(func() time.Time { return fixedNow }))

	tests := []struct {
		query    string
		category string
	}{
		{"", "calm"},
		{"?deadline=2024-01-11T18:00", "focused"},
		{"?deadline=2024-01-10T18:00", "urgent"},
	}

	for _, tt := range tests {
		t.Run("deadline"+tt.query, func(t *testing.T) {
			w := do(t, s, http.MethodGet, "/api/mood"+tt.query, "", "")
			require.Equal(t, http.StatusOK, w.Code, w.Body.String())

			var resp struct {
				Mood struct {
					Category string `json:"category"`
				} `json:"mood"`
			}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, tt.category, resp.Mood.Category)
		})
	}
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{apperrors.NewInvalidInputError("name", "", "required"), http.StatusUnprocessableEntity},
		{apperrors.NewIndexOutOfRangeError(3, 1), http.StatusNotFound},
		{apperrors.NewUpstreamError("quotes", nil), http.StatusBadGateway},
		{apperrors.NewTimeoutError("snapshot", "5s"), http.StatusGatewayTimeout},
		{apperrors.NewDatabaseError("insert", nil), http.StatusInternalServerError},
		{errors.New("plain"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, statusFor(tt.err), tt.err.Error())
	}
}

func TestServer_Run_ShutsDownOnCancel(t *testing.T) {
	s := newTestServer(t)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- s.Run(ctx, "127.0.0.1:0") }()

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
