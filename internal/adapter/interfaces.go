// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Thripura Sri

// Package adapter provides the transport layer for communicating with the
// VoiceNudge server.
//
// The primary abstraction is [ServerAdapter], which decouples the service
// layer from the underlying protocol. The package ships an HTTP/JSON+multipart
// implementation ([NewHTTPServerAdapter]) built on resty with a cookie jar:
// the server issues an ambient session cookie, the client never holds a token.
//
// Error values defined in errors.go are mapped from HTTP status codes by
// mapHTTPError so that callers can use [errors.Is] for transport-agnostic
// error handling (e.g. [ErrNotFound] for 404, [ErrUnauthorized] for 401).
// The login endpoint is the exception: its 206/401/403 statuses are flow
// outcomes, not errors, and are surfaced through [LoginReply] untouched.
package adapter

import (
	"context"

	"github.com/THRIPURASRI/voicenudge-cli/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/server_adapter_mock.go -package=mock

// LoginReply is the raw graded result of a login handshake request. The
// handshake controller classifies StatusCode into an outcome; the adapter
// does not interpret it.
type LoginReply struct {
	// StatusCode is the HTTP status of the response: 200, 206, 401 or 403.
	StatusCode int

	// Body is the decoded JSON body. SecurityQuestion is populated on 206,
	// Message on 200, Error on 4xx.
	Body models.LoginResponse
}

// ServerAdapter defines transport-agnostic communication with the VoiceNudge
// server. Implementations are responsible for serialisation, session-cookie
// management, and mapping transport-level errors to the sentinel values
// defined in this package.
type ServerAdapter interface {
	// SetOnAuthFailure registers the single hook invoked whenever any
	// response outside the login/registration handshake carries a 401 or
	// 403 status. The session store uses it to clear the session no matter
	// which call observed the failure.
	SetOnAuthFailure(hook func())

	// Login submits one multipart handshake request with the credentials
	// and, when non-nil, the voice sample. Returns the raw graded reply for
	// 200/206/401/403; any other status or a transport failure is returned
	// as an error.
	Login(ctx context.Context, creds models.Credentials, sample *models.VoiceSample) (LoginReply, error)

	// SecurityQuestion fetches the fallback question configured for email.
	// Returns [ErrNotFound] (wrapped) when no challenge is configured.
	SecurityQuestion(ctx context.Context, email string) (models.SecurityChallenge, error)

	// VerifySecurity submits the fallback answer for email. Returns
	// [ErrUnauthorized] (wrapped) when the answer is incorrect.
	VerifySecurity(ctx context.Context, email, answer string) (models.VerifyResponse, error)

	// Me returns the profile of the identity behind the current session
	// cookie. Any non-2xx status is an error and means "not authenticated".
	Me(ctx context.Context) (models.User, error)

	// Logout asks the server to drop the session. Best-effort: callers must
	// clear local session state regardless of the returned error.
	Logout(ctx context.Context) error

	// Register submits one multipart registration request. The voice sample
	// is required by the flow; the profile image is optional.
	Register(ctx context.Context, reg models.Registration) (models.MessageResponse, error)

	// Tasks lists the authenticated user's tasks.
	Tasks(ctx context.Context) ([]models.Task, error)

	// CreateTask creates a task from free text; the server parses out the
	// title, due date, category and priority.
	CreateTask(ctx context.Context, text string) (models.Task, error)

	// VoiceIngest creates a task from a voice note. The server transcribes
	// the audio and parses the transcription the same way CreateTask
	// parses free text.
	VoiceIngest(ctx context.Context, sample *models.VoiceSample) (models.Task, error)

	// SetDue schedules the task: the server stores the due time and adds
	// a reminder five minutes before it. dueAt is local wall time in
	// ISO 8601 without a zone designator.
	SetDue(ctx context.Context, id int64, dueAt string) (models.TaskSchedule, error)

	// CompleteTask marks the task as done and moves it to history.
	CompleteTask(ctx context.Context, id int64) error

	// History lists the user's activity history.
	History(ctx context.Context) ([]models.HistoryEntry, error)

	// ClearHistory wipes the user's activity history.
	ClearHistory(ctx context.Context) error
}
