package services

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"charity-transparency/internal/services/service_mocks"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
)

func TestRunTokenPurge(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	auth := service_mocks.NewMockAuthServiceInterface(ctrl)
	ctx, cancel := context.WithCancel(context.Background())

	var calls int32
	auth.EXPECT().PurgeRevokedTokens(gomock.Any()).DoAndReturn(func(context.Context) (int64, error) {
		if atomic.AddInt32(&calls, 1) == 1 {
			return 0, errors.New("db down")
		}
		cancel()
		return 3, nil
	}).MinTimes(2)

	done := make(chan struct{})
	go func() {
		RunTokenPurge(ctx, auth, 5*time.Millisecond, slog.New(slog.NewTextHandler(io.Discard, nil)))
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("purge loop did not stop after cancel")
	}

	assert.GreaterOrEqual(t, atomic.LoadInt32(&calls), int32(2))
}

func TestRunTokenPurge_StopsWithoutTicking(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	RunTokenPurge(ctx, service_mocks.NewMockAuthServiceInterface(ctrl), 0, slog.New(slog.NewTextHandler(io.Discard, nil)))
}
