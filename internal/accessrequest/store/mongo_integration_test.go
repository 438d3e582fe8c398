//go:build integration

package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"devportal/internal/accessrequest/models"
	"devportal/internal/accessrequest/store"
	appmodels "devportal/internal/application/models"
	id "devportal/pkg/domain"
	"devportal/pkg/platform/sentinel"
	"devportal/pkg/testutil/containers"
)

type MongoStoreSuite struct {
	suite.Suite
	store *store.Mongo
}

func TestMongoStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(MongoStoreSuite))
}

func (s *MongoStoreSuite) SetupSuite() {
	mc := containers.GetManager().GetMongo(s.T())
	s.store = store.NewMongo(mc.FreshDatabase("access_requests"))
	s.Require().NoError(s.store.EnsureIndexes(context.Background()))
}

func (s *MongoStoreSuite) pending(appID id.ApplicationID, at time.Time) models.AccessRequest {
	return models.AccessRequest{
		ID:            id.NewAccessRequestID(),
		ApplicationID: appID,
		ApiID:         id.ApiID(uuid.New()),
		ApiName:       "orders",
		EnvironmentID: "production",
		Status:        models.StatusPending,
		Endpoints:     []appmodels.Endpoint{{Method: "GET", Path: "/orders", Scopes: []string{"read:orders"}}},
		RequestedBy:   "dev@x.com",
		RequestedAt:   at.UTC().Truncate(time.Millisecond),
	}
}

func (s *MongoStoreSuite) TestInsertFindUpdate() {
	ctx := context.Background()
	appID := id.NewApplicationID()
	now := time.Now()
	first, second := s.pending(appID, now), s.pending(appID, now.Add(time.Second))
	s.Require().NoError(s.store.Insert(ctx, []models.AccessRequest{second, first}))

	found, err := s.store.Find(ctx, models.Filter{ApplicationID: &appID})
	s.Require().NoError(err)
	s.Require().Len(found, 2)
	s.Equal(first.ID, found[0].ID, "sorted by requestedAt")

	rejected, err := first.Reject("approver@x.com", "no business case", now.UTC().Truncate(time.Millisecond))
	s.Require().NoError(err)
	s.Require().NoError(s.store.Update(ctx, rejected))

	got, err := s.store.FindByID(ctx, first.ID)
	s.Require().NoError(err)
	s.Equal(rejected, got)

	cancelled, err := first.Cancel("dev@x.com", now.UTC().Truncate(time.Millisecond))
	s.Require().NoError(err)
	s.ErrorIs(s.store.Update(ctx, cancelled), sentinel.ErrConflict)

	status := models.StatusPending
	stillPending, err := s.store.Find(ctx, models.Filter{ApplicationID: &appID, Status: &status})
	s.Require().NoError(err)
	s.Require().Len(stillPending, 1)
	s.Equal(second.ID, stillPending[0].ID)
}

func (s *MongoStoreSuite) TestNotFoundAndDuplicate() {
	ctx := context.Background()
	_, err := s.store.FindByID(ctx, id.NewAccessRequestID())
	s.ErrorIs(err, sentinel.ErrNotFound)

	ar := s.pending(id.NewApplicationID(), time.Now())
	s.ErrorIs(s.store.Update(ctx, ar), sentinel.ErrNotFound)
	s.Require().NoError(s.store.Insert(ctx, []models.AccessRequest{ar}))
	s.ErrorIs(s.store.Insert(ctx, []models.AccessRequest{ar}), sentinel.ErrConflict)
}
