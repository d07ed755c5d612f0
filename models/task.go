// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Thripura Sri

package models

// Task is a to-do item owned by the authenticated user, as returned by
// GET /api/tasks/. Creation goes through POST /api/tasks/ingest_text: the
// server parses the free text into title, due date, category and priority.
type Task struct {
	ID           int64  `json:"id"`
	Title        string `json:"title"`
	Text         string `json:"text,omitempty"`
	DueAt        string `json:"due_at,omitempty"`
	Category     string `json:"category,omitempty"`
	Priority     string `json:"priority,omitempty"`
	Status       string `json:"status,omitempty"`
	OriginalText string `json:"original_text,omitempty"`

	// TranscribedText is only present in the voice_ingest response: the
	// English transcription the task was parsed from.
	TranscribedText string `json:"transcribed_text,omitempty"`

	// Note is only present in the ingest responses, when the server could
	// not detect a due date.
	Note string `json:"note,omitempty"`
}

// TaskSchedule is the reply of PATCH /api/tasks/{id}/set_due. The server
// stores the due time in UTC and schedules a reminder five minutes before
// it; the IST fields are display-formatted copies.
type TaskSchedule struct {
	Message     string `json:"message"`
	DueAtUTC    string `json:"due_at_utc"`
	RemindAtUTC string `json:"remind_at_utc"`
	DueAtIST    string `json:"due_at_ist"`
	RemindAtIST string `json:"remind_at_ist"`
}

// HistoryEntry is one row of GET /api/history/: either a completed task still
// in the tasks table (source "tasks") or an archived record (source
// "history").
type HistoryEntry struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	DueAt       string `json:"due_at,omitempty"`
	Category    string `json:"category,omitempty"`
	Priority    string `json:"priority,omitempty"`
	Status      string `json:"status"`
	Source      string `json:"source"`
	CompletedAt string `json:"completed_at,omitempty"`
}
