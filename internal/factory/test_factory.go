package factory

import (
	"time"

	"github.com/mwillard/gameroom/internal/dependencies/mocks"
	"github.com/mwillard/gameroom/internal/game/guess"
	"github.com/mwillard/gameroom/internal/storage/memory"
	"github.com/mwillard/gameroom/internal/testutil"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock  *mocks.MockClock
	MockRandom *mocks.MockRandom
}

// NewTestApp creates an App configured for testing with mocked dependencies
func NewTestApp() *TestApp {
	mockClock := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	mockRandom := mocks.NewMockRandom()
	store := memory.New(mockClock)

	app := newWithDependencies(store, mockClock, mockRandom, guess.GameID, testutil.NopLogger())

	return &TestApp{
		App:        app,
		MockClock:  mockClock,
		MockRandom: mockRandom,
	}
}
