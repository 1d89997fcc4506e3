package roster

import (
	"context"

	"github.com/jerrk000/teamify/internal/model"
)

// Store is a handle on one roster, shaped for a team engine
type Store struct {
	service *Service
	code    model.RosterCode
}

// Store returns the player store handle for a roster
func (s *Service) Store(code model.RosterCode) *Store {
	return &Store{service: s, code: code}
}

// Code returns the roster code the handle is bound to
func (st *Store) Code() model.RosterCode {
	return st.code
}

func (st *Store) Items(ctx context.Context) ([]model.Player, uint64, error) {
	return st.service.Items(ctx, st.code)
}

func (st *Store) SetItems(ctx context.Context, players []model.Player, origin string, expected uint64) (uint64, error) {
	return st.service.SetItemsAt(ctx, st.code, players, origin, expected)
}

func (st *Store) Subscribe(fn func(model.RosterChange)) func() {
	return st.service.Subscribe(st.code, fn)
}
