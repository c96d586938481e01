package scheduler

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mwillard/gameroom/internal/dependencies/mocks"
	"github.com/mwillard/gameroom/internal/model"
	"github.com/mwillard/gameroom/internal/storage/memory"
	"github.com/mwillard/gameroom/internal/testutil"
)

func TestRunPurgeNow(t *testing.T) {
	clk := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	store := memory.New(clk)

	_, err := store.CreateRoom(context.Background(), model.Room{Code: "OLD001"}, nil)
	require.NoError(t, err)

	clk.Advance(48 * time.Hour)

	_, err = store.CreateRoom(context.Background(), model.Room{Code: "NEW001"}, nil)
	require.NoError(t, err)

	sched := New(store, 24*time.Hour, testutil.NopLogger())

	count, err := sched.RunPurgeNow(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	_, err = store.GetRoom(context.Background(), "OLD001")
	assert.ErrorIs(t, err, model.ErrRoomNotFound)
}

func TestStartRejectsInvalidSchedule(t *testing.T) {
	clk := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	sched := New(memory.New(clk), 24*time.Hour, testutil.NopLogger())

	err := sched.Start("not a cron expression")
	assert.Error(t, err)
}

func TestStartAndStop(t *testing.T) {
	clk := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	sched := New(memory.New(clk), 24*time.Hour, testutil.NopLogger())

	require.NoError(t, sched.Start("@hourly"))
	sched.Stop()
}
