package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/THRIPURASRI/voicenudge-cli/internal/adapter"
	"github.com/THRIPURASRI/voicenudge-cli/internal/logger"
	"github.com/THRIPURASRI/voicenudge-cli/models"
)

type taskService struct {
	adapter adapter.ServerAdapter
	logger  *logger.Logger
}

// NewTaskService builds the task and history surface over the adapter.
func NewTaskService(serverAdapter adapter.ServerAdapter, logger *logger.Logger) ClientTaskService {
	return &taskService{adapter: serverAdapter, logger: logger}
}

// Tasks implements [ClientTaskService].
func (s *taskService) Tasks(ctx context.Context) ([]models.Task, error) {
	tasks, err := s.adapter.Tasks(ctx)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return tasks, nil
}

// CreateTask implements [ClientTaskService].
func (s *taskService) CreateTask(ctx context.Context, text string) (models.Task, error) {
	if strings.TrimSpace(text) == "" {
		return models.Task{}, models.ErrEmptyTaskText
	}

	task, err := s.adapter.CreateTask(ctx, text)
	if err != nil {
		return models.Task{}, fmt.Errorf("create task: %w", err)
	}

	s.logger.Info().Int64("task_id", task.ID).Str("title", task.Title).Msg("task created")
	return task, nil
}

// CreateVoiceTask implements [ClientTaskService].
func (s *taskService) CreateVoiceTask(ctx context.Context, sample *models.VoiceSample) (models.Task, error) {
	if sample.Empty() {
		return models.Task{}, models.ErrEmptyVoiceTask
	}

	task, err := s.adapter.VoiceIngest(ctx, sample)
	if err != nil {
		return models.Task{}, fmt.Errorf("voice ingest: %w", err)
	}

	s.logger.Info().Int64("task_id", task.ID).Str("title", task.Title).
		Msg("task created from voice note")
	return task, nil
}

// ScheduleTask implements [ClientTaskService].
func (s *taskService) ScheduleTask(ctx context.Context, id int64, dueAt string) (models.TaskSchedule, error) {
	normalized, err := normalizeDueAt(dueAt)
	if err != nil {
		return models.TaskSchedule{}, err
	}

	schedule, err := s.adapter.SetDue(ctx, id, normalized)
	if err != nil {
		return models.TaskSchedule{}, fmt.Errorf("schedule task %d: %w", id, err)
	}

	s.logger.Info().Int64("task_id", id).Str("due_at", normalized).Msg("task scheduled")
	return schedule, nil
}

// normalizeDueAt validates the wall-time input and pads it to the
// second-resolution ISO form the server parses.
func normalizeDueAt(dueAt string) (string, error) {
	dueAt = strings.TrimSpace(dueAt)
	if _, err := time.Parse("2006-01-02T15:04:05", dueAt); err == nil {
		return dueAt, nil
	}
	if _, err := time.Parse("2006-01-02T15:04", dueAt); err == nil {
		return dueAt + ":00", nil
	}
	return "", fmt.Errorf("%w: got %q", models.ErrInvalidDueDate, dueAt)
}

// CompleteTask implements [ClientTaskService].
func (s *taskService) CompleteTask(ctx context.Context, id int64) error {
	if err := s.adapter.CompleteTask(ctx, id); err != nil {
		return fmt.Errorf("complete task %d: %w", id, err)
	}
	return nil
}

// History implements [ClientTaskService].
func (s *taskService) History(ctx context.Context) ([]models.HistoryEntry, error) {
	entries, err := s.adapter.History(ctx)
	if err != nil {
		return nil, fmt.Errorf("list history: %w", err)
	}
	return entries, nil
}

// ClearHistory implements [ClientTaskService].
func (s *taskService) ClearHistory(ctx context.Context) error {
	if err := s.adapter.ClearHistory(ctx); err != nil {
		return fmt.Errorf("clear history: %w", err)
	}
	s.logger.Info().Msg("history cleared")
	return nil
}
