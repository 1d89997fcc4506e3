package cli

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jerrk000/teamify/internal/api"
	"github.com/jerrk000/teamify/internal/api/request"
	"github.com/jerrk000/teamify/internal/api/response"
	"github.com/jerrk000/teamify/internal/factory"
	"github.com/jerrk000/teamify/internal/testutil"
)

func TestParseTeam(t *testing.T) {
	for in, want := range map[string]string{"a": "team_a", "B": "team_b", "team_a": "team_a", "TEAM_B": "team_b"} {
		got, err := parseTeam(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := parseTeam("c")
	assert.Error(t, err)
}

func TestParsePointer(t *testing.T) {
	ptr, err := parsePointer("b:3")
	require.NoError(t, err)
	assert.Equal(t, request.Pointer{Team: "team_b", Index: 3}, ptr)

	for _, bad := range []string{"b", "b:x", "z:1", ""} {
		_, err := parsePointer(bad)
		assert.Error(t, err, bad)
	}
}

func TestParsePlayers(t *testing.T) {
	players := parsePlayers([]string{"Ann", "p2=Bob", "=Cat"})
	assert.Equal(t, []request.Player{
		{Name: "Ann"},
		{ID: "p2", Name: "Bob"},
		{Name: "=Cat"},
	}, players)
}

func TestTextOutput(t *testing.T) {
	var out bytes.Buffer
	o := NewOutput("text", &out, &out)

	o.Print(response.TeamsChange{
		Changed: true,
		Outcome: "swap",
		Teams: response.Teams{
			Code:     "TEAM01",
			Revision: 3,
			TeamA:    []response.Player{{ID: "ann", Name: "Ann"}},
			TeamB:    []response.Player{{ID: "bob", Name: "Bob"}},
		},
	})

	assert.Equal(t, "Changed (swap)\n"+
		"Roster: TEAM01 (revision 3)\n"+
		"Team A (1):\n"+
		"  0. Ann (ann)\n"+
		"Team B (1):\n"+
		"  0. Bob (bob)\n", out.String())
}

func TestOutputErrorJSON(t *testing.T) {
	var stdout, stderr bytes.Buffer
	o := NewOutput("json", &stdout, &stderr)

	o.PrintError(assert.AnError)
	assert.Empty(t, stdout.String())
	assert.JSONEq(t, `{"error":{"message":"`+assert.AnError.Error()+`"}}`, stderr.String())
}

// runCLI executes the root command against handler and returns stdout
func runCLI(t *testing.T, handler http.Handler, args ...string) (string, error) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	var stdout, stderr bytes.Buffer
	root := NewRootCmd()
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(append([]string{"--server", server.URL}, args...))

	err := root.Execute()
	return stdout.String(), err
}

func newAPI(t *testing.T) (*factory.TestApp, http.Handler) {
	t.Helper()
	app := factory.NewTestApp()
	t.Cleanup(func() { _ = app.Close() })

	return app, api.NewRouter(api.RouterConfig{
		Logger:         testutil.NopLogger(),
		RosterService:  app.RosterService,
		ResultsService: app.ResultsService,
		GridManager:    app.GridManager,
		Broadcaster:    app.Broadcaster,
	})
}

func TestTeamsShowCommand(t *testing.T) {
	app, handler := newAPI(t)
	_, err := app.CreateRoster("TEAM01", "Ann", "Bob", "Cat")
	require.NoError(t, err)

	out, err := runCLI(t, handler, "teams", "show", "TEAM01")
	require.NoError(t, err)
	assert.Contains(t, out, "Team A (2):\n  0. Ann (p-ann)\n  1. Bob (p-bob)\n")
	assert.Contains(t, out, "Team B (1):\n  0. Cat (p-cat)\n")
}

func TestMoveCommandReportsNoChange(t *testing.T) {
	app, handler := newAPI(t)
	_, err := app.CreateRoster("TEAM01", "Ann", "Bob")
	require.NoError(t, err)

	out, err := runCLI(t, handler, "teams", "move", "TEAM01", "a:0", "a")
	require.NoError(t, err)
	assert.Contains(t, out, "No change\n")
}

func TestResultsTallyCommand(t *testing.T) {
	app, handler := newAPI(t)
	_, err := app.CreateRoster("TEAM01", "Ann", "Bob")
	require.NoError(t, err)

	out, err := runCLI(t, handler, "results", "tally", "TEAM01")
	require.NoError(t, err)
	assert.Equal(t, "No results recorded\n", out)

	_, err = runCLI(t, handler, "results", "record", "TEAM01", "b")
	require.NoError(t, err)

	out, err = runCLI(t, handler, "results", "tally", "TEAM01")
	require.NoError(t, err)
	assert.Equal(t, "p-bob  played: 1  won: 1  lost: 0\n"+
		"p-ann  played: 1  won: 0  lost: 1\n", out)
}

func TestCommandSurfacesAPIError(t *testing.T) {
	_, handler := newAPI(t)

	_, err := runCLI(t, handler, "roster", "get", "NOPE00")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ROSTER_NOT_FOUND")
}

func TestUnknownOutputFormat(t *testing.T) {
	_, handler := newAPI(t)

	_, err := runCLI(t, handler, "--output", "yaml", "health")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown output format")
}
