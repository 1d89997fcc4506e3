package factory

import (
	"context"
	"strings"
	"time"

	"github.com/jerrk000/teamify/internal/dependencies/mocks"
	"github.com/jerrk000/teamify/internal/model"
	"github.com/jerrk000/teamify/internal/storage/memory"
	"github.com/jerrk000/teamify/internal/testutil"
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
	store := memory.New()
	mockClock := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	mockRandom := mocks.NewMockRandom()

	app := newWithDependencies(store, mockClock, mockRandom, model.DefaultGridConfig(), testutil.NopLogger())

	return &TestApp{
		App:        app,
		MockClock:  mockClock,
		MockRandom: mockRandom,
	}
}

// CreateRoster creates a roster under code with players named after names.
// Player ids are the lower-cased names prefixed with "p-".
func (t *TestApp) CreateRoster(code model.RosterCode, names ...string) (*model.Roster, error) {
	players := make([]model.Player, len(names))
	for i, name := range names {
		players[i] = model.Player{ID: TestPlayerID(name), Name: name}
	}
	t.MockRandom.QueueString(string(code))
	return t.RosterService.Create(context.Background(), players)
}

// TestPlayerID is the id CreateRoster gives the player called name
func TestPlayerID(name string) model.PlayerID {
	return model.PlayerID("p-" + strings.ToLower(name))
}
