package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jerrk000/teamify/internal/model"
	"github.com/jerrk000/teamify/internal/storage"
)

// Storage is a Redis-backed implementation of the storage interface
type Storage struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Storage{
		client: client,
		cfg:    cfg,
	}, nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	return &Storage{
		client: client,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Roster operations

func (s *Storage) SaveRoster(ctx context.Context, roster *model.Roster) error {
	data, err := json.Marshal(roster)
	if err != nil {
		return err
	}

	// Results live as long as the roster they belong to
	pipe := s.client.Pipeline()
	pipe.Set(ctx, rosterKey(roster.Code), data, s.cfg.RosterTTL)
	if s.cfg.ResultTTL > 0 {
		pipe.Expire(ctx, resultsKey(roster.Code), s.cfg.ResultTTL)
	}
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetRoster(ctx context.Context, code model.RosterCode) (*model.Roster, error) {
	data, err := s.client.Get(ctx, rosterKey(code)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrRosterNotFound
		}
		return nil, err
	}

	var roster model.Roster
	if err := json.Unmarshal(data, &roster); err != nil {
		return nil, err
	}
	return &roster, nil
}

func (s *Storage) DeleteRoster(ctx context.Context, code model.RosterCode) error {
	return s.client.Del(ctx, rosterKey(code), resultsKey(code)).Err()
}

func (s *Storage) RosterExists(ctx context.Context, code model.RosterCode) (bool, error) {
	exists, err := s.client.Exists(ctx, rosterKey(code)).Result()
	if err != nil {
		return false, err
	}
	return exists > 0, nil
}

// Match result operations

func (s *Storage) AppendMatchResult(ctx context.Context, code model.RosterCode, result *model.MatchResult) error {
	exists, err := s.RosterExists(ctx, code)
	if err != nil {
		return err
	}
	if !exists {
		return model.ErrRosterNotFound
	}

	data, err := json.Marshal(result)
	if err != nil {
		return err
	}

	key := resultsKey(code)
	pipe := s.client.Pipeline()
	pipe.RPush(ctx, key, data)
	if s.cfg.ResultTTL > 0 {
		pipe.Expire(ctx, key, s.cfg.ResultTTL)
	}
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetMatchResults(ctx context.Context, code model.RosterCode) ([]model.MatchResult, error) {
	exists, err := s.RosterExists(ctx, code)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, model.ErrRosterNotFound
	}

	values, err := s.client.LRange(ctx, resultsKey(code), 0, -1).Result()
	if err != nil {
		return nil, err
	}

	results := make([]model.MatchResult, 0, len(values))
	for _, val := range values {
		var result model.MatchResult
		if err := json.Unmarshal([]byte(val), &result); err != nil {
			continue // Skip invalid data
		}
		results = append(results, result)
	}
	return results, nil
}
