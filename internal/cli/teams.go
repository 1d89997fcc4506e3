package cli

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jerrk000/teamify/internal/api/request"
	"github.com/jerrk000/teamify/internal/api/response"
)

func newTeamsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "teams",
		Short: "Team split commands",
		Long: `Inspect and rearrange the two teams of a roster.

Slots are written team:index, where team is a, b, team_a or team_b and index
counts from 0 within the team.`,
	}

	cmd.AddCommand(newTeamsShowCmd())
	cmd.AddCommand(newTeamsSwapCmd())
	cmd.AddCommand(newTeamsMoveCmd())
	cmd.AddCommand(newTeamsRandomizeCmd())
	cmd.AddCommand(newTeamsDropCmd())

	return cmd
}

// parseTeam accepts a, b, team_a or team_b in any case
func parseTeam(s string) (string, error) {
	switch strings.ToLower(s) {
	case "a", "team_a":
		return "team_a", nil
	case "b", "team_b":
		return "team_b", nil
	default:
		return "", fmt.Errorf("unknown team %q, use a or b", s)
	}
}

// parsePointer parses a team:index slot reference
func parsePointer(s string) (request.Pointer, error) {
	teamPart, indexPart, ok := strings.Cut(s, ":")
	if !ok {
		return request.Pointer{}, fmt.Errorf("slot %q must be team:index", s)
	}
	team, err := parseTeam(teamPart)
	if err != nil {
		return request.Pointer{}, err
	}
	index, err := strconv.Atoi(indexPart)
	if err != nil {
		return request.Pointer{}, fmt.Errorf("slot %q: index must be a number", s)
	}
	return request.Pointer{Team: team, Index: index}, nil
}

func newTeamsShowCmd() *cobra.Command {
	var width, height float64

	cmd := &cobra.Command{
		Use:   "show <code>",
		Short: "Show the current teams",
		Long: `Show the current teams. With --width and --height the output also lists
where each card and join zone sits in a container of that size.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := rosterPath(args[0]) + "/teams"
			if width > 0 || height > 0 {
				q := url.Values{}
				q.Set("width", strconv.FormatFloat(width, 'f', -1, 64))
				q.Set("height", strconv.FormatFloat(height, 'f', -1, 64))
				path += "?" + q.Encode()
			}

			var result response.Teams
			if err := client.Get(path, &result); err != nil {
				return err
			}

			newOutput(cmd).Print(result)
			return nil
		},
	}

	cmd.Flags().Float64Var(&width, "width", 0, "Container width for card geometry")
	cmd.Flags().Float64Var(&height, "height", 0, "Container height for card geometry")

	return cmd
}

func newTeamsSwapCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "swap <code> <slot> <slot>",
		Short: "Swap the players in two slots",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			from, err := parsePointer(args[1])
			if err != nil {
				return err
			}
			to, err := parsePointer(args[2])
			if err != nil {
				return err
			}

			var result response.TeamsChange
			req := request.SwapRequest{From: from, To: to}
			if err := client.Post(rosterPath(args[0])+"/teams/swap", req, &result); err != nil {
				return err
			}

			newOutput(cmd).Print(result)
			return nil
		},
	}
}

func newTeamsMoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "move <code> <slot> <team>",
		Short: "Move a player to the end of a team",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			from, err := parsePointer(args[1])
			if err != nil {
				return err
			}
			toTeam, err := parseTeam(args[2])
			if err != nil {
				return err
			}

			var result response.TeamsChange
			req := request.MoveRequest{From: from, ToTeam: toTeam}
			if err := client.Post(rosterPath(args[0])+"/teams/move", req, &result); err != nil {
				return err
			}

			newOutput(cmd).Print(result)
			return nil
		},
	}
}

func newTeamsRandomizeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "randomize <code>",
		Short: "Shuffle the roster into new teams",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result response.TeamsChange
			if err := client.Post(rosterPath(args[0])+"/teams/randomize", nil, &result); err != nil {
				return err
			}

			newOutput(cmd).Print(result)
			return nil
		},
	}
}

func newTeamsDropCmd() *cobra.Command {
	var req request.DropRequest

	cmd := &cobra.Command{
		Use:   "drop <code> <player-id>",
		Short: "Replay a drag of one card",
		Long: `Replay a complete drag of a player's card: the card is picked up, moved by
--dx/--dy and released in a container of --width by --height. The drop
resolves exactly as it would in the browser grid.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			req.PlayerID = args[1]

			var result response.TeamsChange
			if err := client.Post(rosterPath(args[0])+"/teams/drop", req, &result); err != nil {
				return err
			}

			newOutput(cmd).Print(result)
			return nil
		},
	}

	cmd.Flags().Float64Var(&req.DX, "dx", 0, "Horizontal drag distance")
	cmd.Flags().Float64Var(&req.DY, "dy", 0, "Vertical drag distance")
	cmd.Flags().Float64Var(&req.Width, "width", 0, "Container width")
	cmd.Flags().Float64Var(&req.Height, "height", 0, "Container height")
	_ = cmd.MarkFlagRequired("width")
	_ = cmd.MarkFlagRequired("height")

	return cmd
}
