package job

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSchedulerDisabledWithoutSpec(t *testing.T) {
	s := NewScheduler("  ", func(context.Context) error { return nil }, nil)
	assert.Nil(t, s)
	stop := s.Start(context.Background())
	stop()
}

func TestSchedulerRunOnceSkipsWhileRunning(t *testing.T) {
	release := make(chan struct{})
	entered := make(chan struct{})
	var calls atomic.Int32
	s := NewScheduler("@every 1h", func(ctx context.Context) error {
		calls.Add(1)
		close(entered)
		<-release
		return nil
	}, nil)
	require.NotNil(t, s)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		s.runOnce()
	}()
	<-entered
	s.runOnce()
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), calls.Load())
}

func TestSchedulerRunOnceResetsAfterError(t *testing.T) {
	var calls atomic.Int32
	s := NewScheduler("@every 1h", func(context.Context) error {
		calls.Add(1)
		return errors.New("boom")
	}, nil)
	s.runOnce()
	s.runOnce()
	assert.Equal(t, int32(2), calls.Load())
}

func TestSchedulerSkipsAfterParentCancelled(t *testing.T) {
	var calls atomic.Int32
	s := NewScheduler("@every 1h", func(context.Context) error {
		calls.Add(1)
		return nil
	}, nil)
	ctx, cancel := context.WithCancel(context.Background())
	stop := s.Start(ctx)
	defer stop()
	cancel()
	time.Sleep(10 * time.Millisecond)
	s.runOnce()
	assert.Equal(t, int32(0), calls.Load())
}

func TestSchedulerInvalidSpec(t *testing.T) {
	s := NewScheduler("not a cron", func(context.Context) error { return nil }, nil)
	stop := s.Start(context.Background())
	stop()
	assert.Nil(t, s.cron)
}
