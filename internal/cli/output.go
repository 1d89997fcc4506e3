package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jerrk000/teamify/internal/api/response"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
	w      io.Writer
	errW   io.Writer
}

// NewOutput creates a new Output formatter writing to w and errW
func NewOutput(format string, w, errW io.Writer) *Output {
	return &Output{format: format, w: w, errW: errW}
}

func newOutput(cmd *cobra.Command) *Output {
	return NewOutput(cfg.Output, cmd.OutOrStdout(), cmd.ErrOrStderr())
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]any{
			"error": map[string]string{"message": err.Error()},
		})
		fmt.Fprintln(o.errW, string(data))
	} else {
		fmt.Fprintf(o.errW, "Error: %s\n", err)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Fprintln(o.w, string(data))
	} else {
		fmt.Fprintln(o.w, msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(o.w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case response.Roster:
		o.printRoster(v)
	case response.Teams:
		o.printTeams(v)
	case response.TeamsChange:
		o.printTeamsChange(v)
	case response.MatchResult:
		o.printResult(v)
	case []response.MatchResult:
		o.printResults(v)
	case []response.PlayerTally:
		o.printTally(v)
	case HealthResult:
		fmt.Fprintf(o.w, "Status: %s\n", v.Status)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// HealthResult response type
type HealthResult struct {
	Status string `json:"status"`
}

func (o *Output) printRoster(r response.Roster) {
	fmt.Fprintf(o.w, "Roster: %s\n", r.Code)
	fmt.Fprintf(o.w, "Revision: %d\n", r.Revision)
	fmt.Fprintf(o.w, "Players (%d):\n", len(r.Players))
	for _, p := range r.Players {
		fmt.Fprintf(o.w, "  - %s (%s)\n", p.Name, p.ID)
	}
}

func (o *Output) printTeams(t response.Teams) {
	fmt.Fprintf(o.w, "Roster: %s (revision %d)\n", t.Code, t.Revision)
	o.printTeam("Team A", t.TeamA)
	o.printTeam("Team B", t.TeamB)

	if len(t.Cards) > 0 {
		fmt.Fprintln(o.w, "Cards:")
		for _, c := range t.Cards {
			fmt.Fprintf(o.w, "  %-12s %s[%d] at (%g, %g) size %gx%g\n",
				c.PlayerID, c.Team, c.Index, c.Rect.X, c.Rect.Y, c.Rect.Width, c.Rect.Height)
		}
	}
	if len(t.Zones) > 0 {
		fmt.Fprintln(o.w, "Join zones:")
		for _, z := range t.Zones {
			fmt.Fprintf(o.w, "  %-12s at (%g, %g) size %gx%g\n",
				z.Team, z.Rect.X, z.Rect.Y, z.Rect.Width, z.Rect.Height)
		}
	}
}

func (o *Output) printTeam(label string, players []response.Player) {
	fmt.Fprintf(o.w, "%s (%d):\n", label, len(players))
	for i, p := range players {
		fmt.Fprintf(o.w, "  %d. %s (%s)\n", i, p.Name, p.ID)
	}
}

func (o *Output) printTeamsChange(c response.TeamsChange) {
	switch {
	case !c.Changed:
		fmt.Fprintln(o.w, "No change")
	case c.Outcome != "":
		fmt.Fprintf(o.w, "Changed (%s)\n", c.Outcome)
	default:
		fmt.Fprintln(o.w, "Changed")
	}
	o.printTeams(c.Teams)
}

func (o *Output) printResult(r response.MatchResult) {
	fmt.Fprintf(o.w, "%s  winner: %s  team_a: %s  team_b: %s\n",
		r.RecordedAt.Format("2006-01-02 15:04:05"), r.Winner,
		strings.Join(r.TeamA, ","), strings.Join(r.TeamB, ","))
}

func (o *Output) printTally(tally []response.PlayerTally) {
	if len(tally) == 0 {
		fmt.Fprintln(o.w, "No results recorded")
		return
	}
	for _, t := range tally {
		fmt.Fprintf(o.w, "%s  played: %d  won: %d  lost: %d\n", t.PlayerID, t.Played, t.Won, t.Lost)
	}
}

func (o *Output) printResults(results []response.MatchResult) {
	if len(results) == 0 {
		fmt.Fprintln(o.w, "No results recorded")
		return
	}
	for _, r := range results {
		o.printResult(r)
	}
}
