package cli

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jerrk000/teamify/internal/api/request"
	"github.com/jerrk000/teamify/internal/api/response"
)

func newRosterCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "roster",
		Short: "Roster management commands",
	}

	cmd.AddCommand(newRosterCreateCmd())
	cmd.AddCommand(newRosterGetCmd())
	cmd.AddCommand(newRosterSetCmd())
	cmd.AddCommand(newRosterDeleteCmd())

	return cmd
}

// parsePlayers turns "name" or "id=name" arguments into request players
func parsePlayers(args []string) []request.Player {
	players := make([]request.Player, len(args))
	for i, arg := range args {
		if id, name, ok := strings.Cut(arg, "="); ok && id != "" {
			players[i] = request.Player{ID: id, Name: name}
		} else {
			players[i] = request.Player{Name: arg}
		}
	}
	return players
}

func rosterPath(code string) string {
	return "/api/v1/rosters/" + url.PathEscape(code)
}

func newRosterCreateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "create <player>...",
		Short: "Create a roster",
		Long: `Create a roster from player names. A player may be given as id=name to
choose its id; otherwise the server assigns one.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result response.Roster

			if err := client.Post("/api/v1/rosters", request.RosterRequest{Players: parsePlayers(args)}, &result); err != nil {
				return err
			}

			newOutput(cmd).Print(result)
			return nil
		},
	}
}

func newRosterGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <code>",
		Short: "Get roster details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result response.Roster

			if err := client.Get(rosterPath(args[0]), &result); err != nil {
				return err
			}

			newOutput(cmd).Print(result)
			return nil
		},
	}
}

func newRosterSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <code> [player]...",
		Short: "Replace a roster's players",
		Long: `Replace the player list of a roster. Teams are re-seeded from the new
list, so any manual arrangement is lost.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result response.Roster

			req := request.RosterRequest{Players: parsePlayers(args[1:])}
			if err := client.Put(rosterPath(args[0]), req, &result); err != nil {
				return err
			}

			newOutput(cmd).Print(result)
			return nil
		},
	}
}

func newRosterDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <code>",
		Short: "Delete a roster and its results",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := client.Delete(rosterPath(args[0])); err != nil {
				return err
			}

			newOutput(cmd).PrintMessage(fmt.Sprintf("Deleted roster %s", args[0]))
			return nil
		},
	}
}
