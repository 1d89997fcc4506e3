package roster

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/jerrk000/teamify/internal/dependencies/mocks"
	"github.com/jerrk000/teamify/internal/model"
	"github.com/jerrk000/teamify/internal/storage/memory"
	"github.com/jerrk000/teamify/internal/testutil"
)

type ServiceSuite struct {
	suite.Suite
	storage *memory.Storage
	clock   *mocks.MockClock
	random  *mocks.MockRandom
	service *Service
	ctx     context.Context
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.storage = memory.New()
	s.clock = mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	s.random = mocks.NewMockRandom()
	s.service = New(s.storage, s.clock, s.random, testutil.NopLogger())
	s.ctx = context.Background()
}

func (s *ServiceSuite) players(names ...string) []model.Player {
	out := make([]model.Player, len(names))
	for i, n := range names {
		out[i] = model.Player{ID: model.PlayerID("id-" + n), Name: n}
	}
	return out
}

func (s *ServiceSuite) create(names ...string) *model.Roster {
	s.random.QueueString("ABC123")
	r, err := s.service.Create(s.ctx, s.players(names...))
	s.Require().NoError(err)
	return r
}

// Create tests

func (s *ServiceSuite) TestCreateSucceeds() {
	r := s.create("ann", "bob")

	s.Equal(model.RosterCode("ABC123"), r.Code)
	s.Len(r.Players, 2)
	s.Equal(uint64(1), r.Revision)
	s.Equal(model.OriginExternal, r.Origin)
	s.Equal(s.clock.Now(), r.CreatedAt)
}

func (s *ServiceSuite) TestCreateIsPersisted() {
	s.create("ann")

	r, err := s.service.Get(s.ctx, "ABC123")
	s.Require().NoError(err)
	s.Equal("ann", r.Players[0].Name)
}

func (s *ServiceSuite) TestCreateAssignsMissingIDs() {
	s.random.QueueString("ABC123")
	r, err := s.service.Create(s.ctx, []model.Player{{Name: "ann"}, {ID: "fixed", Name: "bob"}})
	s.Require().NoError(err)

	s.NotEmpty(r.Players[0].ID)
	s.Equal(model.PlayerID("fixed"), r.Players[1].ID)
}

func (s *ServiceSuite) TestCreateTrimsNames() {
	s.random.QueueString("ABC123")
	r, err := s.service.Create(s.ctx, []model.Player{{ID: "a", Name: "  ann "}})
	s.Require().NoError(err)
	s.Equal("ann", r.Players[0].Name)
}

func (s *ServiceSuite) TestCreateRejectsEmptyName() {
	s.random.QueueString("ABC123")
	_, err := s.service.Create(s.ctx, []model.Player{{ID: "a", Name: "   "}})
	s.ErrorIs(err, model.ErrEmptyPlayerName)
}

func (s *ServiceSuite) TestCreateRejectsDuplicateIDs() {
	s.random.QueueString("ABC123")
	_, err := s.service.Create(s.ctx, []model.Player{{ID: "a", Name: "ann"}, {ID: "a", Name: "bob"}})
	s.ErrorIs(err, model.ErrDuplicatePlayer)
}

func (s *ServiceSuite) TestCreateSkipsTakenCode() {
	s.create("ann")

	s.random.QueueString("ABC123", "XYZ789")
	r, err := s.service.Create(s.ctx, s.players("bob"))
	s.Require().NoError(err)
	s.Equal(model.RosterCode("XYZ789"), r.Code)
}

func (s *ServiceSuite) TestCreateGivesUpWithoutFreeCode() {
	_, err := s.service.Create(s.ctx, s.players("ann"))
	s.ErrorIs(err, model.ErrCodeExhausted)
}

// SetItems tests

func (s *ServiceSuite) TestSetItemsBumpsRevision() {
	s.create("ann", "bob")
	s.clock.Advance(time.Minute)

	rev, err := s.service.SetItems(s.ctx, "ABC123", s.players("bob", "ann"), "engine-1")
	s.Require().NoError(err)
	s.Equal(uint64(2), rev)

	r, _ := s.service.Get(s.ctx, "ABC123")
	s.Equal("engine-1", r.Origin)
	s.Equal(s.clock.Now(), r.UpdatedAt)
	s.Equal("bob", r.Players[0].Name)
}

func (s *ServiceSuite) TestSetItemsUnknownRoster() {
	_, err := s.service.SetItems(s.ctx, "NOPE00", s.players("ann"), "engine-1")
	s.ErrorIs(err, model.ErrRosterNotFound)
}

func (s *ServiceSuite) TestSetItemsNotifiesOncePerWrite() {
	s.create("ann", "bob")

	var changes []model.RosterChange
	unsubscribe := s.service.Subscribe("ABC123", func(c model.RosterChange) {
		changes = append(changes, c)
	})
	defer unsubscribe()

	_, _ = s.service.SetItems(s.ctx, "ABC123", s.players("bob", "ann"), "engine-1")
	_, _ = s.service.SetItems(s.ctx, "ABC123", s.players("bob", "ann"), "engine-1")

	s.Require().Len(changes, 2)
	s.Equal(uint64(2), changes[0].Revision)
	s.Equal(uint64(3), changes[1].Revision)
	s.Equal("engine-1", changes[0].Origin)
	s.Equal(model.RosterCode("ABC123"), changes[0].Code)
}

func (s *ServiceSuite) TestListenerMayReadStore() {
	s.create("ann")

	var seen uint64
	unsubscribe := s.service.Subscribe("ABC123", func(c model.RosterChange) {
		_, rev, err := s.service.Items(s.ctx, c.Code)
		s.NoError(err)
		seen = rev
	})
	defer unsubscribe()

	_, err := s.service.SetItems(s.ctx, "ABC123", s.players("bob"), "engine-1")
	s.Require().NoError(err)
	s.Equal(uint64(2), seen)
}

func (s *ServiceSuite) TestUnsubscribeStopsNotifications() {
	s.create("ann")

	calls := 0
	unsubscribe := s.service.Subscribe("ABC123", func(model.RosterChange) { calls++ })
	_, _ = s.service.SetItems(s.ctx, "ABC123", s.players("bob"), "x")
	unsubscribe()
	unsubscribe()
	_, _ = s.service.SetItems(s.ctx, "ABC123", s.players("cat"), "x")

	s.Equal(1, calls)
}

func (s *ServiceSuite) TestSubscribersAreScopedToRoster() {
	s.create("ann")
	s.random.QueueString("XYZ789")
	_, err := s.service.Create(s.ctx, s.players("bob"))
	s.Require().NoError(err)

	calls := 0
	unsubscribe := s.service.Subscribe("XYZ789", func(model.RosterChange) { calls++ })
	defer unsubscribe()

	_, _ = s.service.SetItems(s.ctx, "ABC123", s.players("cat"), "x")
	s.Equal(0, calls)
}

func (s *ServiceSuite) TestSubscribeAllHearsEveryRoster() {
	s.create("ann")
	s.random.QueueString("XYZ789")
	_, err := s.service.Create(s.ctx, s.players("bob"))
	s.Require().NoError(err)

	var codes []model.RosterCode
	unsubscribe := s.service.SubscribeAll(func(c model.RosterChange) { codes = append(codes, c.Code) })
	defer unsubscribe()

	_, err = s.service.SetItems(s.ctx, "ABC123", s.players("cat"), "x")
	s.Require().NoError(err)
	_, err = s.service.SetItems(s.ctx, "XYZ789", s.players("dan"), "x")
	s.Require().NoError(err)

	s.Equal([]model.RosterCode{"ABC123", "XYZ789"}, codes)
}

func (s *ServiceSuite) TestDeleteNotifiesOnlyGlobalListeners() {
	s.create("ann")

	scoped := 0
	unsubscribeScoped := s.service.Subscribe("ABC123", func(model.RosterChange) { scoped++ })
	defer unsubscribeScoped()

	var got []model.RosterChange
	unsubscribeAll := s.service.SubscribeAll(func(c model.RosterChange) { got = append(got, c) })
	defer unsubscribeAll()

	s.Require().NoError(s.service.Delete(s.ctx, "ABC123"))

	s.Equal(0, scoped)
	s.Require().Len(got, 1)
	s.True(got[0].Deleted)
	s.Equal(model.RosterCode("ABC123"), got[0].Code)
}

// Replace tests

func (s *ServiceSuite) TestReplaceIsExternal() {
	s.create("ann")

	r, err := s.service.Replace(s.ctx, "ABC123", s.players("bob", "cat"))
	s.Require().NoError(err)
	s.Equal(model.OriginExternal, r.Origin)
	s.Equal(uint64(2), r.Revision)
	s.Len(r.Players, 2)
}

// Delete tests

func (s *ServiceSuite) TestDelete() {
	s.create("ann")

	s.Require().NoError(s.service.Delete(s.ctx, "ABC123"))
	_, err := s.service.Get(s.ctx, "ABC123")
	s.ErrorIs(err, model.ErrRosterNotFound)
}

func (s *ServiceSuite) TestDeleteUnknownRoster() {
	s.ErrorIs(s.service.Delete(s.ctx, "NOPE00"), model.ErrRosterNotFound)
}

// Guarded write tests

func (s *ServiceSuite) TestSetItemsAtCurrentRevision() {
	s.create("ann", "bob")

	rev, err := s.service.SetItemsAt(s.ctx, "ABC123", s.players("bob", "ann"), "engine-1", 1)
	s.Require().NoError(err)
	s.Equal(uint64(2), rev)
}

func (s *ServiceSuite) TestSetItemsAtStaleRevisionWritesNothing() {
	s.create("ann", "bob")
	_, err := s.service.Replace(s.ctx, "ABC123", s.players("cat"))
	s.Require().NoError(err)

	notified := 0
	unsubscribe := s.service.Subscribe("ABC123", func(model.RosterChange) { notified++ })
	defer unsubscribe()

	_, err = s.service.SetItemsAt(s.ctx, "ABC123", s.players("bob", "ann"), "engine-1", 1)
	s.ErrorIs(err, model.ErrStaleRevision)
	s.Zero(notified)

	r, err := s.service.Get(s.ctx, "ABC123")
	s.Require().NoError(err)
	s.Equal(uint64(2), r.Revision)
	s.Require().Len(r.Players, 1)
	s.Equal("cat", r.Players[0].Name)
}

func (s *ServiceSuite) TestSetItemsAtNeedsARevision() {
	s.create("ann")
	_, err := s.service.SetItemsAt(s.ctx, "ABC123", s.players("bob"), "engine-1", 0)
	s.ErrorIs(err, model.ErrStaleRevision)
}

func (s *ServiceSuite) TestSetItemsAtDeletedRoster() {
	s.create("ann")
	s.Require().NoError(s.service.Delete(s.ctx, "ABC123"))

	_, err := s.service.SetItemsAt(s.ctx, "ABC123", s.players("bob"), "engine-1", 1)
	s.ErrorIs(err, model.ErrRosterNotFound)

	exists, err := s.storage.RosterExists(s.ctx, "ABC123")
	s.Require().NoError(err)
	s.False(exists)
}

// Store handle tests

func (s *ServiceSuite) TestStoreHandle() {
	s.create("ann", "bob")
	store := s.service.Store("ABC123")
	s.Equal(model.RosterCode("ABC123"), store.Code())

	var got model.RosterChange
	unsubscribe := store.Subscribe(func(c model.RosterChange) { got = c })
	defer unsubscribe()

	rev, err := store.SetItems(s.ctx, s.players("bob", "ann"), "engine-1", 1)
	s.Require().NoError(err)
	s.Equal(rev, got.Revision)

	players, itemsRev, err := store.Items(s.ctx)
	s.Require().NoError(err)
	s.Equal(rev, itemsRev)
	s.Equal("bob", players[0].Name)
}
