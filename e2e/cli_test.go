package e2e_test

import (
	"bufio"
	"context"
	"encoding/json"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jerrk000/teamify/internal/api"
	"github.com/jerrk000/teamify/internal/api/response"
	"github.com/jerrk000/teamify/internal/factory"
	"github.com/jerrk000/teamify/internal/testutil"
	"github.com/jerrk000/teamify/internal/web"
)

// cliRunner manages CLI binary execution
type cliRunner struct {
	binaryPath string
	serverURL  string
}

func newCLIRunner(t *testing.T, serverURL string) *cliRunner {
	t.Helper()

	projectRoot := findProjectRoot(t)

	binaryPath := filepath.Join(t.TempDir(), "teamify")
	cmd := exec.Command("go", "build", "-o", binaryPath, "./cmd/teamify")
	cmd.Dir = projectRoot
	output, err := cmd.CombinedOutput()
	require.NoError(t, err, "failed to build CLI: %s", string(output))

	return &cliRunner{binaryPath: binaryPath, serverURL: serverURL}
}

func (r *cliRunner) args(args []string) []string {
	return append([]string{"--server", r.serverURL, "--output", "json"}, args...)
}

func (r *cliRunner) run(args ...string) (string, error) {
	cmd := exec.Command(r.binaryPath, r.args(args)...)
	output, err := cmd.CombinedOutput()
	return string(output), err
}

// runJSON runs a command that must succeed and decodes its output into v
func (r *cliRunner) runJSON(t *testing.T, v any, args ...string) {
	t.Helper()
	output, err := r.run(args...)
	require.NoError(t, err, "output: %s", output)
	require.NoError(t, json.Unmarshal([]byte(output), v), "output: %s", output)
}

func findProjectRoot(t *testing.T) string {
	t.Helper()

	dir, err := os.Getwd()
	require.NoError(t, err)

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			t.Fatal("could not find project root (go.mod)")
		}
		dir = parent
	}
}

// startTestServer runs the full application on a free port
func startTestServer(t *testing.T) string {
	t.Helper()

	logger := testutil.NopLogger()
	app, err := factory.New(factory.Config{Logger: logger})
	require.NoError(t, err)

	apiRouter := api.NewRouter(api.RouterConfig{
		Logger:         logger,
		RosterService:  app.RosterService,
		ResultsService: app.ResultsService,
		GridManager:    app.GridManager,
		Broadcaster:    app.Broadcaster,
	})
	webRouter := web.NewRouter(web.RouterConfig{
		Logger:         logger,
		RosterService:  app.RosterService,
		ResultsService: app.ResultsService,
		GridManager:    app.GridManager,
		HubManager:     app.HubManager,
		Broadcaster:    app.Broadcaster,
	})

	mux := http.NewServeMux()
	mux.Handle("/api/", apiRouter)
	mux.Handle("/", webRouter)

	serverCfg := api.DefaultServerConfig()
	serverCfg.Host = "127.0.0.1"
	serverCfg.Port = 0
	serverCfg.ShutdownTimeout = 5 * time.Second
	server := api.NewServer(mux, serverCfg, logger)

	go func() {
		if err := server.Start(); err != nil {
			t.Logf("server error: %v", err)
		}
	}()

	t.Cleanup(func() {
		app.HubManager.Close()
		_ = server.Shutdown(context.Background())
		_ = app.Close()
	})

	// Addr reports the bound port once the listener is up
	var serverURL string
	require.Eventually(t, func() bool {
		addr := server.Addr()
		if addr == "127.0.0.1:0" {
			return false
		}
		resp, err := http.Get("http://" + addr + "/api/v1/health")
		if err != nil {
			return false
		}
		_ = resp.Body.Close()
		serverURL = "http://" + addr
		return resp.StatusCode == http.StatusOK
	}, 5*time.Second, 50*time.Millisecond)

	return serverURL
}

func playerIDs(players []response.Player) []string {
	ids := make([]string, len(players))
	for i, p := range players {
		ids[i] = p.ID
	}
	return ids
}

// createRoster creates a four player roster and returns its code
func createRoster(t *testing.T, cli *cliRunner) string {
	t.Helper()
	var roster response.Roster
	cli.runJSON(t, &roster, "roster", "create", "ann=Ann", "bob=Bob", "cat=Cat", "dan=Dan")
	require.NotEmpty(t, roster.Code)
	return roster.Code
}

// Tests

func TestCLI_HealthCheck(t *testing.T) {
	cli := newCLIRunner(t, startTestServer(t))

	var resp struct {
		Status string `json:"status"`
	}
	cli.runJSON(t, &resp, "health")
	assert.Equal(t, "ok", resp.Status)
}

func TestCLI_RosterCommands(t *testing.T) {
	cli := newCLIRunner(t, startTestServer(t))
	code := createRoster(t, cli)

	var roster response.Roster
	cli.runJSON(t, &roster, "roster", "get", code)
	assert.Equal(t, []string{"ann", "bob", "cat", "dan"}, playerIDs(roster.Players))
	assert.Equal(t, uint64(1), roster.Revision)

	cli.runJSON(t, &roster, "roster", "set", code, "ann=Ann", "eve=Eve")
	assert.Equal(t, []string{"ann", "eve"}, playerIDs(roster.Players))
	assert.Equal(t, uint64(2), roster.Revision)

	var msg struct {
		Message string `json:"message"`
	}
	cli.runJSON(t, &msg, "roster", "delete", code)
	assert.Contains(t, msg.Message, code)

	output, err := cli.run("roster", "get", code)
	require.Error(t, err)
	assert.Contains(t, output, "ROSTER_NOT_FOUND")
}

func TestCLI_TeamCommands(t *testing.T) {
	cli := newCLIRunner(t, startTestServer(t))
	code := createRoster(t, cli)

	var teams response.Teams
	cli.runJSON(t, &teams, "teams", "show", code, "--width", "500", "--height", "400")
	assert.Equal(t, []string{"ann", "bob"}, playerIDs(teams.TeamA))
	assert.Equal(t, []string{"cat", "dan"}, playerIDs(teams.TeamB))
	require.Len(t, teams.Cards, 4)
	require.Len(t, teams.Zones, 2)

	var change response.TeamsChange
	cli.runJSON(t, &change, "teams", "swap", code, "a:0", "b:1")
	assert.True(t, change.Changed)
	assert.Equal(t, []string{"dan", "bob"}, playerIDs(change.Teams.TeamA))
	assert.Equal(t, []string{"cat", "ann"}, playerIDs(change.Teams.TeamB))

	cli.runJSON(t, &change, "teams", "move", code, "a:1", "b")
	assert.True(t, change.Changed)
	assert.Equal(t, []string{"dan"}, playerIDs(change.Teams.TeamA))
	assert.Equal(t, []string{"cat", "ann", "bob"}, playerIDs(change.Teams.TeamB))

	// cat sits at (0, 206); dragging it to (0, 0) lands on dan
	cli.runJSON(t, &change, "teams", "drop", code, "cat", "--dx", "0", "--dy", "-206", "--width", "500", "--height", "400")
	assert.Equal(t, "swap", change.Outcome)
	assert.Equal(t, []string{"cat"}, playerIDs(change.Teams.TeamA))

	cli.runJSON(t, &change, "teams", "randomize", code)
	assert.Len(t, append(change.Teams.TeamA, change.Teams.TeamB...), 4)

	output, err := cli.run("teams", "swap", code, "c:0", "a:0")
	require.Error(t, err)
	assert.Contains(t, output, "unknown team")
}

func TestCLI_ResultCommands(t *testing.T) {
	cli := newCLIRunner(t, startTestServer(t))
	code := createRoster(t, cli)

	var result response.MatchResult
	cli.runJSON(t, &result, "results", "record", code, "b")
	assert.Equal(t, "team_b", result.Winner)
	assert.Equal(t, []string{"ann", "bob"}, result.TeamA)

	var results []response.MatchResult
	cli.runJSON(t, &results, "results", "list", code)
	require.Len(t, results, 1)
	assert.Equal(t, []string{"cat", "dan"}, results[0].TeamB)
}

func TestCLI_EventsStream(t *testing.T) {
	serverURL := startTestServer(t)
	cli := newCLIRunner(t, serverURL)
	code := createRoster(t, cli)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cmd := exec.CommandContext(ctx, cli.binaryPath, cli.args([]string{"events", code, "--json"})...)
	stdout, err := cmd.StdoutPipe()
	require.NoError(t, err)
	require.NoError(t, cmd.Start())
	defer func() {
		cancel()
		_ = cmd.Wait()
	}()

	lines := bufio.NewScanner(stdout)
	next := func() map[string]any {
		t.Helper()
		require.True(t, lines.Scan(), "event stream ended early")
		var ev map[string]any
		require.NoError(t, json.Unmarshal(lines.Bytes(), &ev))
		return ev
	}

	assert.Equal(t, "connected", next()["event"])

	output, err := cli.run("teams", "swap", code, "a:0", "b:0")
	require.NoError(t, err, "output: %s", output)

	ev := next()
	assert.Equal(t, "roster-update", ev["event"])
	assert.Contains(t, ev["data"], `"revision":2`)
}
