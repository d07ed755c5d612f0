// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Thripura Sri

package adapter

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/THRIPURASRI/voicenudge-cli/internal/config"
	"github.com/THRIPURASRI/voicenudge-cli/internal/logger"
	"github.com/THRIPURASRI/voicenudge-cli/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAdapter(t *testing.T, serverURL string) *httpServerAdapter {
	t.Helper()
	log := logger.NewClientLogger("test")
	adapterCfg := config.ClientAdapter{ServerAddress: serverURL}

	a, err := NewHTTPServerAdapter(adapterCfg, log)
	require.NoError(t, err)
	return a.(*httpServerAdapter)
}

func sampleVoice() *models.VoiceSample {
	return &models.VoiceSample{
		Payload:   []byte("RIFFfakewav"),
		MediaType: "audio/wav",
		FileName:  "voice_sample.wav",
	}
}

// ── Login ────────────────────────────────────────────────────────────────────

func TestLogin_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/auth/login", r.URL.Path)

		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "alice@example.com", r.FormValue("email"))
		assert.Equal(t, "secret", r.FormValue("password"))

		file, header, err := r.FormFile("voice")
		require.NoError(t, err)
		defer func() { _ = file.Close() }()
		assert.Equal(t, "voice_sample.wav", header.Filename)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(models.LoginResponse{Message: "Login successful"})
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	got, err := a.Login(context.Background(), models.Credentials{Email: "alice@example.com", Password: "secret"}, sampleVoice())

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, got.StatusCode)
	assert.Equal(t, "Login successful", got.Body.Message)
}

func TestLogin_PartialContent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusPartialContent)
		_ = json.NewEncoder(w).Encode(models.LoginResponse{
			Message:          "Voice mismatch",
			SecurityQuestion: "What was your first pet's name?",
		})
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	got, err := a.Login(context.Background(), models.Credentials{Email: "alice@example.com", Password: "secret"}, sampleVoice())

	require.NoError(t, err)
	assert.Equal(t, http.StatusPartialContent, got.StatusCode)
	assert.Equal(t, "What was your first pet's name?", got.Body.SecurityQuestion)
}

func TestLogin_Unauthorized_IsReplyNotError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(models.LoginResponse{Error: "Invalid credentials"})
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	got, err := a.Login(context.Background(), models.Credentials{Email: "alice@example.com", Password: "wrong"}, nil)

	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, got.StatusCode)
	assert.Equal(t, "Invalid credentials", got.Body.Error)
}

func TestLogin_Forbidden_IsReplyNotError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusForbidden)
		_ = json.NewEncoder(w).Encode(models.LoginResponse{Error: "Account locked"})
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	got, err := a.Login(context.Background(), models.Credentials{Email: "alice@example.com", Password: "secret"}, sampleVoice())

	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, got.StatusCode)
	assert.Equal(t, "Account locked", got.Body.Error)
}

func TestLogin_WithoutVoiceOmitsFilePart(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		_, _, err := r.FormFile("voice")
		assert.Error(t, err)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(models.LoginResponse{Message: "Login successful"})
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	_, err := a.Login(context.Background(), models.Credentials{Email: "alice@example.com", Password: "secret"}, nil)
	require.NoError(t, err)
}

func TestLogin_InternalServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("internal server error"))
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	_, err := a.Login(context.Background(), models.Credentials{Email: "alice@example.com", Password: "secret"}, nil)

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInternalServerError)
}

// ── SecurityQuestion ─────────────────────────────────────────────────────────

func TestSecurityQuestion_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/auth/security_question", r.URL.Path)
		assert.Equal(t, "alice@example.com", r.URL.Query().Get("email"))

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(models.QuestionResponse{SecurityQuestion: "First school?"})
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	got, err := a.SecurityQuestion(context.Background(), "alice@example.com")

	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", got.Email)
	assert.Equal(t, "First school?", got.Question)
}

func TestSecurityQuestion_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte("user not found"))
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	_, err := a.SecurityQuestion(context.Background(), "nobody@example.com")

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSecurityQuestion_JSONErrorDetail(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error": "User not found"}`))
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	_, err := a.SecurityQuestion(context.Background(), "nobody@example.com")

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Contains(t, err.Error(), "User not found")
	assert.NotContains(t, err.Error(), `{"error"`)
}

func TestSecurityQuestion_UnmappedStatusIsPlainError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	_, err := a.SecurityQuestion(context.Background(), "alice@example.com")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "http 502")
	assert.Contains(t, err.Error(), "Bad Gateway")
}

// ── VerifySecurity ───────────────────────────────────────────────────────────

func TestVerifySecurity_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/auth/verify_security", r.URL.Path)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "alice@example.com", body["email"])
		assert.Equal(t, "rex", body["answer"])

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(models.VerifyResponse{Message: "Verification successful"})
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	got, err := a.VerifySecurity(context.Background(), "alice@example.com", "rex")

	require.NoError(t, err)
	assert.Equal(t, "Verification successful", got.Message)
}

func TestVerifySecurity_WrongAnswer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte("incorrect answer"))
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	_, err := a.VerifySecurity(context.Background(), "alice@example.com", "wrong")

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnauthorized)
}

// ── Me / Logout ──────────────────────────────────────────────────────────────

func TestMe_Success(t *testing.T) {
	want := models.User{ID: 7, Name: "Alice", Email: "alice@example.com"}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/auth/me", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(want)
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	got, err := a.Me(context.Background())

	require.NoError(t, err)
	assert.Equal(t, want.ID, got.ID)
	assert.Equal(t, want.Email, got.Email)
}

func TestMe_Unauthorized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte("not logged in"))
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	_, err := a.Me(context.Background())

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestLogout_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/auth/logout", r.URL.Path)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	require.NoError(t, a.Logout(context.Background()))
}

// ── Register ─────────────────────────────────────────────────────────────────

func TestRegister_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/auth/register", r.URL.Path)

		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "Alice", r.FormValue("name"))
		assert.Equal(t, "alice@example.com", r.FormValue("email"))
		assert.Equal(t, "First pet?", r.FormValue("security_question"))

		_, header, err := r.FormFile("voice")
		require.NoError(t, err)
		assert.Equal(t, "voice_sample.wav", header.Filename)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(models.MessageResponse{Message: "User registered successfully"})
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	got, err := a.Register(context.Background(), models.Registration{
		Name:             "Alice",
		Email:            "alice@example.com",
		Password:         "secret",
		SecurityQuestion: "First pet?",
		SecurityAnswer:   "rex",
		Voice:            sampleVoice(),
	})

	require.NoError(t, err)
	assert.Equal(t, "User registered successfully", got.Message)
}

func TestRegister_Conflict(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte("email already registered"))
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	_, err := a.Register(context.Background(), models.Registration{Email: "alice@example.com", Voice: sampleVoice()})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrConflict)
}

// ── Tasks / History ──────────────────────────────────────────────────────────

func TestTasks_Success(t *testing.T) {
	want := []models.Task{{ID: 1, Title: "buy milk", Status: "pending"}}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/tasks/", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(want)
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	got, err := a.Tasks(context.Background())

	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, want[0].Title, got[0].Title)
}

func TestCreateTask_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/tasks/ingest_text", r.URL.Path)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "remind me to call mom tomorrow", body["text"])

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(models.Task{ID: 3, Title: "call mom"})
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	got, err := a.CreateTask(context.Background(), "remind me to call mom tomorrow")

	require.NoError(t, err)
	assert.Equal(t, int64(3), got.ID)
}

func TestVoiceIngest_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/tasks/voice_ingest", r.URL.Path)

		require.NoError(t, r.ParseMultipartForm(1<<20))
		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer func() { _ = file.Close() }()
		assert.Equal(t, "voice_sample.wav", header.Filename)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(models.Task{
			ID:              9,
			Title:           "buy groceries",
			TranscribedText: "buy groceries tonight",
			Note:            "No due date detected. Please set one.",
		})
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	got, err := a.VoiceIngest(context.Background(), sampleVoice())

	require.NoError(t, err)
	assert.Equal(t, int64(9), got.ID)
	assert.Equal(t, "buy groceries tonight", got.TranscribedText)
	assert.NotEmpty(t, got.Note)
}

func TestSetDue_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "/api/tasks/4/set_due", r.URL.Path)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "2026-09-01T10:30:00", body["due_at"])

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(models.TaskSchedule{
			Message:  "Task 4 due date updated",
			DueAtUTC: "2026-09-01T05:00:00+00:00",
		})
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	got, err := a.SetDue(context.Background(), 4, "2026-09-01T10:30:00")

	require.NoError(t, err)
	assert.Equal(t, "Task 4 due date updated", got.Message)
	assert.NotEmpty(t, got.DueAtUTC)
}

func TestSetDue_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error": "Not found"}`))
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	_, err := a.SetDue(context.Background(), 99, "2026-09-01T10:30:00")

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCompleteTask_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "/api/tasks/42/complete", r.URL.Path)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	require.NoError(t, a.CompleteTask(context.Background(), 42))
}

func TestHistory_Success(t *testing.T) {
	want := []models.HistoryEntry{{ID: 5, Title: "buy milk", Status: "completed"}}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/history/", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(want)
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	got, err := a.History(context.Background())

	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, want[0].Status, got[0].Status)
}

func TestClearHistory_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/api/history/clear", r.URL.Path)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	require.NoError(t, a.ClearHistory(context.Background()))
}

// ── auth-failure hook ────────────────────────────────────────────────────────

func TestAuthFailureHook_FiresOnSessionEndpoint(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	fired := 0
	a.SetOnAuthFailure(func() { fired++ })

	_, err := a.Me(context.Background())
	require.Error(t, err)
	assert.Equal(t, 1, fired)
}

func TestAuthFailureHook_ExemptOnHandshakeEndpoints(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(models.LoginResponse{Error: "Invalid credentials"})
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	fired := 0
	a.SetOnAuthFailure(func() { fired++ })

	_, err := a.Login(context.Background(), models.Credentials{Email: "a@b", Password: "x"}, nil)
	require.NoError(t, err)

	_, err = a.VerifySecurity(context.Background(), "a@b", "wrong")
	require.Error(t, err)

	assert.Zero(t, fired)
}

func TestAuthFailureHook_IgnoresForbiddenOnSuccessStatuses(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode([]models.Task{})
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	fired := 0
	a.SetOnAuthFailure(func() { fired++ })

	_, err := a.Tasks(context.Background())
	require.NoError(t, err)
	assert.Zero(t, fired)
}

// ── normalizeBaseURL ─────────────────────────────────────────────────────────

func TestNormalizeBaseURL(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{"valid http", "http://localhost:8888", "http://localhost:8888", false},
		{"no scheme", "localhost:8888", "http://localhost:8888", false},
		{"trailing slash", "http://localhost:8888/", "http://localhost:8888", false},
		{"empty", "", "", true},
		{"no host", "http://", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := normalizeBaseURL(tt.input)
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
			}
		})
	}
}
