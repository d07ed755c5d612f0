package adapter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"sync"

	"github.com/THRIPURASRI/voicenudge-cli/internal/config"
	"github.com/THRIPURASRI/voicenudge-cli/internal/logger"
	"github.com/THRIPURASRI/voicenudge-cli/models"
	"github.com/go-resty/resty/v2"
)

// handshakePaths are the endpoints whose 401/403 statuses are part of the
// graded login ladder rather than a session failure. The auth-failure hook
// must not fire for them.
var handshakePaths = map[string]struct{}{
	"/api/auth/login":             {},
	"/api/auth/register":          {},
	"/api/auth/verify_security":   {},
	"/api/auth/security_question": {},
}

type httpServerAdapter struct {
	client *resty.Client

	mu            sync.RWMutex
	onAuthFailure func()

	logger *logger.Logger
}

// NewHTTPServerAdapter constructs the HTTP/JSON+multipart implementation of
// [ServerAdapter]. It normalises and validates the base URL from
// adapterCfg.ServerAddress, installs an in-memory cookie jar for the ambient
// session cookie, configures the request timeout, and registers the response
// middleware that feeds the cross-cutting auth-failure hook.
//
// Returns an error if adapterCfg.ServerAddress is empty or cannot be parsed
// as a valid URL.
func NewHTTPServerAdapter(adapterCfg config.ClientAdapter, logger *logger.Logger) (ServerAdapter, error) {
	baseURL, err := normalizeBaseURL(adapterCfg.ServerAddress)
	if err != nil {
		return nil, fmt.Errorf("invalid adapter server address: %w", err)
	}

	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("create cookie jar: %w", err)
	}

	h := &httpServerAdapter{logger: logger}

	h.client = resty.New().
		SetBaseURL(baseURL).
		SetTimeout(adapterCfg.RequestTimeout).
		SetCookieJar(jar).
		OnAfterResponse(h.watchAuthFailure)

	return h, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// SetOnAuthFailure implements [ServerAdapter].
func (h *httpServerAdapter) SetOnAuthFailure(hook func()) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onAuthFailure = hook
}

// watchAuthFailure is the resty middleware implementing the cross-cutting
// session-invalidation rule: a 401 or 403 observed on any endpoint outside
// the handshake set fires the registered hook exactly once per response.
func (h *httpServerAdapter) watchAuthFailure(_ *resty.Client, resp *resty.Response) error {
	status := resp.StatusCode()
	if status != http.StatusUnauthorized && status != http.StatusForbidden {
		return nil
	}
	if _, exempt := handshakePaths[resp.Request.RawRequest.URL.Path]; exempt {
		return nil
	}

	h.mu.RLock()
	hook := h.onAuthFailure
	h.mu.RUnlock()

	if hook != nil {
		h.logger.Warn().Int("status", status).Str("path", resp.Request.RawRequest.URL.Path).
			Msg("auth failure observed, invalidating session")
		hook()
	}
	return nil
}

// Login implements [ServerAdapter]. It POSTs one multipart request with the
// email, password and (when present) the voice payload to
// POST /api/auth/login, and returns the raw graded reply for the handshake
// controller to classify. Statuses outside {200, 206, 401, 403} are mapped
// to transport errors.
func (h *httpServerAdapter) Login(ctx context.Context, creds models.Credentials, sample *models.VoiceSample) (LoginReply, error) {
	req := h.client.R().
		SetContext(ctx).
		SetMultipartFormData(map[string]string{
			"email":    creds.Email,
			"password": creds.Password,
		})
	if !sample.Empty() {
		req.SetMultipartField("voice", sample.FileName, sample.MediaType, bytes.NewReader(sample.Payload))
	}

	resp, err := req.Post("/api/auth/login")
	if err != nil {
		return LoginReply{}, fmt.Errorf("login request: %w", err)
	}

	switch resp.StatusCode() {
	case http.StatusOK, http.StatusPartialContent, http.StatusUnauthorized, http.StatusForbidden:
	default:
		return LoginReply{}, mapHTTPError(resp)
	}

	reply := LoginReply{StatusCode: resp.StatusCode()}
	if err = json.Unmarshal(resp.Body(), &reply.Body); err != nil {
		return LoginReply{}, fmt.Errorf("decode login response: %w", err)
	}

	return reply, nil
}

// SecurityQuestion implements [ServerAdapter]. It GETs
// /api/auth/security_question?email= and returns the configured challenge.
func (h *httpServerAdapter) SecurityQuestion(ctx context.Context, email string) (models.SecurityChallenge, error) {
	resp, err := h.client.R().
		SetContext(ctx).
		SetQueryParam("email", email).
		Get("/api/auth/security_question")
	if err != nil {
		return models.SecurityChallenge{}, fmt.Errorf("security question request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.SecurityChallenge{}, err
	}

	var body models.QuestionResponse
	if err = json.Unmarshal(resp.Body(), &body); err != nil {
		return models.SecurityChallenge{}, fmt.Errorf("decode security question response: %w", err)
	}

	return models.SecurityChallenge{Email: email, Question: body.SecurityQuestion}, nil
}

// VerifySecurity implements [ServerAdapter]. It POSTs {email, answer} to
// /api/auth/verify_security. A wrong answer surfaces as [ErrUnauthorized].
func (h *httpServerAdapter) VerifySecurity(ctx context.Context, email, answer string) (models.VerifyResponse, error) {
	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]string{"email": email, "answer": answer}).
		Post("/api/auth/verify_security")
	if err != nil {
		return models.VerifyResponse{}, fmt.Errorf("verify security request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.VerifyResponse{}, err
	}

	var body models.VerifyResponse
	if err = json.Unmarshal(resp.Body(), &body); err != nil {
		return models.VerifyResponse{}, fmt.Errorf("decode verify response: %w", err)
	}

	return body, nil
}

// Me implements [ServerAdapter].
func (h *httpServerAdapter) Me(ctx context.Context) (models.User, error) {
	resp, err := h.client.R().SetContext(ctx).Get("/api/auth/me")
	if err != nil {
		return models.User{}, fmt.Errorf("me request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.User{}, err
	}

	var user models.User
	if err = json.Unmarshal(resp.Body(), &user); err != nil {
		return models.User{}, fmt.Errorf("decode me response: %w", err)
	}

	return user, nil
}

// Logout implements [ServerAdapter]. Best-effort by contract: callers clear
// local state no matter what this returns.
func (h *httpServerAdapter) Logout(ctx context.Context) error {
	resp, err := h.client.R().SetContext(ctx).Post("/api/auth/logout")
	if err != nil {
		return fmt.Errorf("logout request: %w", err)
	}

	return mapHTTPError(resp)
}

// Register implements [ServerAdapter]. It POSTs one multipart request with
// the account fields, the voice sample, and (when set) the profile image to
// POST /api/auth/register.
func (h *httpServerAdapter) Register(ctx context.Context, reg models.Registration) (models.MessageResponse, error) {
	req := h.client.R().
		SetContext(ctx).
		SetMultipartFormData(map[string]string{
			"name":              reg.Name,
			"email":             reg.Email,
			"password":          reg.Password,
			"security_question": reg.SecurityQuestion,
			"security_answer":   reg.SecurityAnswer,
		})
	if !reg.Voice.Empty() {
		req.SetMultipartField("voice", reg.Voice.FileName, reg.Voice.MediaType, bytes.NewReader(reg.Voice.Payload))
	}
	if reg.ProfileImagePath != "" {
		req.SetFile("profile_image", reg.ProfileImagePath)
	}

	resp, err := req.Post("/api/auth/register")
	if err != nil {
		return models.MessageResponse{}, fmt.Errorf("register request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.MessageResponse{}, err
	}

	var body models.MessageResponse
	if err = json.Unmarshal(resp.Body(), &body); err != nil {
		return models.MessageResponse{}, fmt.Errorf("decode register response: %w", err)
	}

	return body, nil
}

// Tasks implements [ServerAdapter].
func (h *httpServerAdapter) Tasks(ctx context.Context) ([]models.Task, error) {
	resp, err := h.client.R().SetContext(ctx).Get("/api/tasks/")
	if err != nil {
		return nil, fmt.Errorf("tasks request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	var tasks []models.Task
	if err = json.Unmarshal(resp.Body(), &tasks); err != nil {
		return nil, fmt.Errorf("decode tasks response: %w", err)
	}

	return tasks, nil
}

// CreateTask implements [ServerAdapter].
func (h *httpServerAdapter) CreateTask(ctx context.Context, text string) (models.Task, error) {
	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]string{"text": text}).
		Post("/api/tasks/ingest_text")
	if err != nil {
		return models.Task{}, fmt.Errorf("create task request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Task{}, err
	}

	var task models.Task
	if err = json.Unmarshal(resp.Body(), &task); err != nil {
		return models.Task{}, fmt.Errorf("decode create task response: %w", err)
	}

	return task, nil
}

// VoiceIngest implements [ServerAdapter]. It POSTs the voice note as the
// "file" part of one multipart request to POST /api/tasks/voice_ingest.
func (h *httpServerAdapter) VoiceIngest(ctx context.Context, sample *models.VoiceSample) (models.Task, error) {
	resp, err := h.client.R().
		SetContext(ctx).
		SetMultipartField("file", sample.FileName, sample.MediaType, bytes.NewReader(sample.Payload)).
		Post("/api/tasks/voice_ingest")
	if err != nil {
		return models.Task{}, fmt.Errorf("voice ingest request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Task{}, err
	}

	var task models.Task
	if err = json.Unmarshal(resp.Body(), &task); err != nil {
		return models.Task{}, fmt.Errorf("decode voice ingest response: %w", err)
	}

	return task, nil
}

// SetDue implements [ServerAdapter].
func (h *httpServerAdapter) SetDue(ctx context.Context, id int64, dueAt string) (models.TaskSchedule, error) {
	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]string{"due_at": dueAt}).
		Patch(fmt.Sprintf("/api/tasks/%d/set_due", id))
	if err != nil {
		return models.TaskSchedule{}, fmt.Errorf("set due request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.TaskSchedule{}, err
	}

	var schedule models.TaskSchedule
	if err = json.Unmarshal(resp.Body(), &schedule); err != nil {
		return models.TaskSchedule{}, fmt.Errorf("decode set due response: %w", err)
	}

	return schedule, nil
}

// CompleteTask implements [ServerAdapter].
func (h *httpServerAdapter) CompleteTask(ctx context.Context, id int64) error {
	resp, err := h.client.R().
		SetContext(ctx).
		Patch(fmt.Sprintf("/api/tasks/%d/complete", id))
	if err != nil {
		return fmt.Errorf("complete task request: %w", err)
	}

	return mapHTTPError(resp)
}

// History implements [ServerAdapter].
func (h *httpServerAdapter) History(ctx context.Context) ([]models.HistoryEntry, error) {
	resp, err := h.client.R().SetContext(ctx).Get("/api/history/")
	if err != nil {
		return nil, fmt.Errorf("history request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	var entries []models.HistoryEntry
	if err = json.Unmarshal(resp.Body(), &entries); err != nil {
		return nil, fmt.Errorf("decode history response: %w", err)
	}

	return entries, nil
}

// ClearHistory implements [ServerAdapter].
func (h *httpServerAdapter) ClearHistory(ctx context.Context) error {
	resp, err := h.client.R().SetContext(ctx).Delete("/api/history/clear")
	if err != nil {
		return fmt.Errorf("clear history request: %w", err)
	}

	return mapHTTPError(resp)
}
