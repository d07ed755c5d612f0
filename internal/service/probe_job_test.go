// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Thripura Sri

package service

import (
	"context"
	"testing"
	"time"

	"github.com/THRIPURASRI/voicenudge-cli/models"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestProbeJob_PingsWhileAuthenticated(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svcs, mockAdapter, _ := newTestServices(t, ctrl)
	svcs.Session.Set(models.User{ID: 1, Email: "alice@example.com"})

	probed := make(chan struct{}, 1)
	mockAdapter.EXPECT().Me(gomock.Any()).DoAndReturn(func(context.Context) (models.User, error) {
		select {
		case probed <- struct{}{}:
		default:
		}
		return models.User{ID: 1}, nil
	}).MinTimes(1)

	svcs.ProbeJob.Start(context.Background(), 10*time.Millisecond)
	defer svcs.ProbeJob.Stop()

	select {
	case <-probed:
	case <-time.After(time.Second):
		t.Fatal("probe never ran")
	}
}

func TestProbeJob_SkipsWhenAnonymous(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svcs, _, _ := newTestServices(t, ctrl)
	svcs.Session.ResolveAnonymous()

	// No Me expectation: a probe while anonymous would fail the mock.
	svcs.ProbeJob.Start(context.Background(), 10*time.Millisecond)
	time.Sleep(50 * time.Millisecond)
	svcs.ProbeJob.Stop()
}

func TestProbeJob_StopIsSafeWhenNotRunning(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svcs, _, _ := newTestServices(t, ctrl)

	require.NotPanics(t, func() {
		svcs.ProbeJob.Stop()
		svcs.ProbeJob.Stop()
	})
}

func TestProbeJob_RestartReplacesPrevious(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svcs, _, _ := newTestServices(t, ctrl)
	svcs.Session.ResolveAnonymous()

	ctx := context.Background()
	svcs.ProbeJob.Start(ctx, time.Hour)
	svcs.ProbeJob.Start(ctx, time.Hour)
	svcs.ProbeJob.Stop()
}
