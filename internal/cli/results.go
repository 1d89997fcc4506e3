package cli

import (
	"github.com/spf13/cobra"

	"github.com/jerrk000/teamify/internal/api/request"
	"github.com/jerrk000/teamify/internal/api/response"
)

func newResultsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "results",
		Short: "Match result commands",
	}

	cmd.AddCommand(newResultsRecordCmd())
	cmd.AddCommand(newResultsListCmd())
	cmd.AddCommand(newResultsTallyCmd())

	return cmd
}

func newResultsRecordCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "record <code> <winner>",
		Short: "Record the winner of a game played with the current teams",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			winner, err := parseTeam(args[1])
			if err != nil {
				return err
			}

			var result response.MatchResult
			if err := client.Post(rosterPath(args[0])+"/results", request.RecordResultRequest{Winner: winner}, &result); err != nil {
				return err
			}

			newOutput(cmd).Print(result)
			return nil
		},
	}
}

func newResultsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list <code>",
		Short: "List recorded results, oldest first",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var results []response.MatchResult
			if err := client.Get(rosterPath(args[0])+"/results", &results); err != nil {
				return err
			}

			newOutput(cmd).Print(results)
			return nil
		},
	}
}

func newResultsTallyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tally <code>",
		Short: "Show games played, won and lost per player",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var tally []response.PlayerTally
			if err := client.Get(rosterPath(args[0])+"/results/tally", &tally); err != nil {
				return err
			}

			newOutput(cmd).Print(tally)
			return nil
		},
	}
}
