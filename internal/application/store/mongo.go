package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"devportal/internal/application/models"
	id "devportal/pkg/domain"
	"devportal/pkg/platform/sentinel"
)

const (
	applicationsCollection = "applications"
	teamsCollection        = "teams"
)

// Mongo persists applications as whole documents with a version field for
// optimistic concurrency.
type Mongo struct {
	col *mongo.Collection
}

func NewMongo(db *mongo.Database) *Mongo {
	return &Mongo{col: db.Collection(applicationsCollection)}
}

type applicationDoc struct {
	ID          string          `bson:"_id"`
	Name        string          `bson:"name"`
	TeamID      *string         `bson:"teamId,omitempty"`
	CreatedAt   time.Time       `bson:"createdAt"`
	LastUpdated time.Time       `bson:"lastUpdated"`
	Deleted     *deletionDoc    `bson:"deleted,omitempty"`
	Credentials []credentialDoc `bson:"credentials"`
	Apis        []apiDoc        `bson:"apis"`
	Version     int64           `bson:"version"`
}

type deletionDoc struct {
	At time.Time `bson:"at"`
	By string    `bson:"by"`
}

type credentialDoc struct {
	ClientID       string    `bson:"clientId"`
	EnvironmentID  string    `bson:"environment"`
	CreatedAt      time.Time `bson:"createdAt"`
	Secret         string    `bson:"secret,omitempty"`
	SecretFragment string    `bson:"secretFragment,omitempty"`
	Hidden         bool      `bson:"hidden"`
}

type apiDoc struct {
	ID        string        `bson:"id"`
	Name      string        `bson:"name"`
	Endpoints []endpointDoc `bson:"endpoints"`
}

type endpointDoc struct {
	Method string   `bson:"method"`
	Path   string   `bson:"path"`
	Scopes []string `bson:"scopes"`
}

func toDoc(app models.Application) applicationDoc {
	doc := applicationDoc{
		ID:          app.ID.String(),
		Name:        app.Name,
		CreatedAt:   app.CreatedAt,
		LastUpdated: app.LastUpdated,
		Credentials: make([]credentialDoc, 0, len(app.Credentials)),
		Apis:        make([]apiDoc, 0, len(app.Apis)),
		Version:     app.Version,
	}
	if app.TeamID != nil {
		team := app.TeamID.String()
		doc.TeamID = &team
	}
	if app.Deleted != nil {
		doc.Deleted = &deletionDoc{At: app.Deleted.At, By: app.Deleted.By}
	}
	for _, c := range app.Credentials {
		doc.Credentials = append(doc.Credentials, credentialDoc{
			ClientID:       c.ClientID.String(),
			EnvironmentID:  c.EnvironmentID.String(),
			CreatedAt:      c.CreatedAt,
			Secret:         c.Secret,
			SecretFragment: c.SecretFragment,
			Hidden:         c.Hidden,
		})
	}
	for _, api := range app.Apis {
		ad := apiDoc{ID: api.ID.String(), Name: api.Name, Endpoints: make([]endpointDoc, 0, len(api.Endpoints))}
		for _, ep := range api.Endpoints {
			ad.Endpoints = append(ad.Endpoints, endpointDoc{Method: ep.Method, Path: ep.Path, Scopes: ep.Scopes})
		}
		doc.Apis = append(doc.Apis, ad)
	}
	return doc
}

func fromDoc(doc applicationDoc) (models.Application, error) {
	appID, err := uuid.Parse(doc.ID)
	if err != nil {
		return models.Application{}, fmt.Errorf("decode application id %q: %w", doc.ID, err)
	}
	app := models.Application{
		ID:          id.ApplicationID(appID),
		Name:        doc.Name,
		CreatedAt:   doc.CreatedAt,
		LastUpdated: doc.LastUpdated,
		Version:     doc.Version,
	}
	if doc.TeamID != nil {
		teamID, err := uuid.Parse(*doc.TeamID)
		if err != nil {
			return models.Application{}, fmt.Errorf("decode team id %q: %w", *doc.TeamID, err)
		}
		t := id.TeamID(teamID)
		app.TeamID = &t
	}
	if doc.Deleted != nil {
		app.Deleted = &models.Deletion{At: doc.Deleted.At, By: doc.Deleted.By}
	}
	for _, c := range doc.Credentials {
		app.Credentials = append(app.Credentials, models.Credential{
			ClientID:       id.ClientID(c.ClientID),
			EnvironmentID:  id.EnvironmentID(c.EnvironmentID),
			CreatedAt:      c.CreatedAt,
			Secret:         c.Secret,
			SecretFragment: c.SecretFragment,
			Hidden:         c.Hidden,
		})
	}
	for _, a := range doc.Apis {
		apiID, err := uuid.Parse(a.ID)
		if err != nil {
			return models.Application{}, fmt.Errorf("decode api id %q: %w", a.ID, err)
		}
		api := models.Api{ID: id.ApiID(apiID), Name: a.Name}
		for _, ep := range a.Endpoints {
			api.Endpoints = append(api.Endpoints, models.Endpoint{Method: ep.Method, Path: ep.Path, Scopes: ep.Scopes})
		}
		app.Apis = append(app.Apis, api)
	}
	return app, nil
}

func (s *Mongo) FindByID(ctx context.Context, appID id.ApplicationID) (models.Application, error) {
	var doc applicationDoc
	err := s.col.FindOne(ctx, bson.M{"_id": appID.String()}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Application{}, sentinel.ErrNotFound
	}
	if err != nil {
		return models.Application{}, fmt.Errorf("find application: %w", err)
	}
	return fromDoc(doc)
}

func (s *Mongo) Insert(ctx context.Context, app models.Application) (models.Application, error) {
	app.Version = 1
	if _, err := s.col.InsertOne(ctx, toDoc(app)); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return models.Application{}, sentinel.ErrConflict
		}
		return models.Application{}, fmt.Errorf("insert application: %w", err)
	}
	return app, nil
}

// Update replaces the document only if the stored version still equals app.Version.
func (s *Mongo) Update(ctx context.Context, app models.Application) (models.Application, error) {
	expected := app.Version
	app.Version++

	res, err := s.col.ReplaceOne(ctx, bson.M{"_id": app.ID.String(), "version": expected}, toDoc(app))
	if err != nil {
		return models.Application{}, fmt.Errorf("update application: %w", err)
	}
	if res.MatchedCount == 0 {
		n, err := s.col.CountDocuments(ctx, bson.M{"_id": app.ID.String()})
		if err != nil {
			return models.Application{}, fmt.Errorf("update application: %w", err)
		}
		if n == 0 {
			return models.Application{}, sentinel.ErrNotFound
		}
		return models.Application{}, sentinel.ErrConflict
	}
	return app, nil
}

func (s *Mongo) Delete(ctx context.Context, appID id.ApplicationID) error {
	res, err := s.col.DeleteOne(ctx, bson.M{"_id": appID.String()})
	if err != nil {
		return fmt.Errorf("delete application: %w", err)
	}
	if res.DeletedCount == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

// MongoTeams reads the team directory collection maintained by the portal's team service.
type MongoTeams struct {
	col *mongo.Collection
}

func NewMongoTeams(db *mongo.Database) *MongoTeams {
	return &MongoTeams{col: db.Collection(teamsCollection)}
}

type teamDoc struct {
	ID   string `bson:"_id"`
	Name string `bson:"name"`
}

func (s *MongoTeams) FindByID(ctx context.Context, teamID id.TeamID) (models.Team, error) {
	var doc teamDoc
	err := s.col.FindOne(ctx, bson.M{"_id": teamID.String()}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Team{}, sentinel.ErrNotFound
	}
	if err != nil {
		return models.Team{}, fmt.Errorf("find team: %w", err)
	}
	return models.Team{ID: teamID, Name: doc.Name}, nil
}
