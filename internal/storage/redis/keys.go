package redis

import (
	"fmt"

	"github.com/jerrk000/teamify/internal/model"
)

// Key prefix for all teamify data
const keyPrefix = "teamify"

// rosterKey returns the Redis key for a Roster
func rosterKey(code model.RosterCode) string {
	return fmt.Sprintf("%s:roster:%s", keyPrefix, code)
}

// resultsKey returns the Redis key for the LIST of match results of a roster
func resultsKey(code model.RosterCode) string {
	return fmt.Sprintf("%s:results:%s", keyPrefix, code)
}
