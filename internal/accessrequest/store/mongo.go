package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"devportal/internal/accessrequest/models"
	appmodels "devportal/internal/application/models"
	id "devportal/pkg/domain"
	"devportal/pkg/platform/sentinel"
)

const accessRequestsCollection = "accessRequests"

type Mongo struct {
	col *mongo.Collection
}

func NewMongo(db *mongo.Database) *Mongo {
	return &Mongo{col: db.Collection(accessRequestsCollection)}
}

// EnsureIndexes creates the lookup indexes used by Find.
func (s *Mongo) EnsureIndexes(ctx context.Context) error {
	_, err := s.col.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "applicationId", Value: 1}, {Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "apiId", Value: 1}, {Key: "status", Value: 1}}},
	})
	if err != nil {
		return fmt.Errorf("create access request indexes: %w", err)
	}
	return nil
}

type accessRequestDoc struct {
	ID                    string           `bson:"_id"`
	ApplicationID         string           `bson:"applicationId"`
	ApiID                 string           `bson:"apiId"`
	ApiName               string           `bson:"apiName"`
	EnvironmentID         string           `bson:"environment"`
	Status                string           `bson:"status"`
	Endpoints             []endpointDoc    `bson:"endpoints"`
	SupportingInformation string           `bson:"supportingInformation,omitempty"`
	RequestedBy           string           `bson:"requestedBy"`
	RequestedAt           time.Time        `bson:"requestedAt"`
	Decision              *decisionDoc     `bson:"decision,omitempty"`
	Cancellation          *cancellationDoc `bson:"cancelled,omitempty"`
}

type endpointDoc struct {
	Method string   `bson:"method"`
	Path   string   `bson:"path"`
	Scopes []string `bson:"scopes"`
}

type decisionDoc struct {
	At     time.Time `bson:"decidedAt"`
	By     string    `bson:"decidedBy"`
	Reason string    `bson:"rejectedReason,omitempty"`
}

type cancellationDoc struct {
	At time.Time `bson:"cancelledAt"`
	By string    `bson:"cancelledBy"`
}

func toDoc(ar models.AccessRequest) accessRequestDoc {
	doc := accessRequestDoc{
		ID:                    ar.ID.String(),
		ApplicationID:         ar.ApplicationID.String(),
		ApiID:                 ar.ApiID.String(),
		ApiName:               ar.ApiName,
		EnvironmentID:         ar.EnvironmentID.String(),
		Status:                string(ar.Status),
		Endpoints:             make([]endpointDoc, 0, len(ar.Endpoints)),
		SupportingInformation: ar.SupportingInformation,
		RequestedBy:           ar.RequestedBy,
		RequestedAt:           ar.RequestedAt,
	}
	for _, ep := range ar.Endpoints {
		doc.Endpoints = append(doc.Endpoints, endpointDoc{Method: ep.Method, Path: ep.Path, Scopes: ep.Scopes})
	}
	if ar.Decision != nil {
		doc.Decision = &decisionDoc{At: ar.Decision.At, By: ar.Decision.By, Reason: ar.Decision.Reason}
	}
	if ar.Cancellation != nil {
		doc.Cancellation = &cancellationDoc{At: ar.Cancellation.At, By: ar.Cancellation.By}
	}
	return doc
}

func fromDoc(doc accessRequestDoc) (models.AccessRequest, error) {
	arID, err := uuid.Parse(doc.ID)
	if err != nil {
		return models.AccessRequest{}, fmt.Errorf("decode access request id %q: %w", doc.ID, err)
	}
	appID, err := uuid.Parse(doc.ApplicationID)
	if err != nil {
		return models.AccessRequest{}, fmt.Errorf("decode application id %q: %w", doc.ApplicationID, err)
	}
	apiID, err := uuid.Parse(doc.ApiID)
	if err != nil {
		return models.AccessRequest{}, fmt.Errorf("decode api id %q: %w", doc.ApiID, err)
	}
	ar := models.AccessRequest{
		ID:                    id.AccessRequestID(arID),
		ApplicationID:         id.ApplicationID(appID),
		ApiID:                 id.ApiID(apiID),
		ApiName:               doc.ApiName,
		EnvironmentID:         id.EnvironmentID(doc.EnvironmentID),
		Status:                models.Status(doc.Status),
		SupportingInformation: doc.SupportingInformation,
		RequestedBy:           doc.RequestedBy,
		RequestedAt:           doc.RequestedAt,
	}
	for _, ep := range doc.Endpoints {
		ar.Endpoints = append(ar.Endpoints, appmodels.Endpoint{Method: ep.Method, Path: ep.Path, Scopes: ep.Scopes})
	}
	if doc.Decision != nil {
		ar.Decision = &models.Decision{At: doc.Decision.At, By: doc.Decision.By, Reason: doc.Decision.Reason}
	}
	if doc.Cancellation != nil {
		ar.Cancellation = &models.Cancellation{At: doc.Cancellation.At, By: doc.Cancellation.By}
	}
	return ar, nil
}

func filterDoc(f models.Filter) bson.M {
	q := bson.M{}
	if f.ApplicationID != nil {
		q["applicationId"] = f.ApplicationID.String()
	}
	if f.ApiID != nil {
		q["apiId"] = f.ApiID.String()
	}
	if f.EnvironmentID != nil {
		q["environment"] = f.EnvironmentID.String()
	}
	if f.Status != nil {
		q["status"] = string(*f.Status)
	}
	return q
}

func (s *Mongo) Find(ctx context.Context, filter models.Filter) ([]models.AccessRequest, error) {
	cursor, err := s.col.Find(ctx, filterDoc(filter), options.Find().SetSort(bson.D{{Key: "requestedAt", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("find access requests: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []accessRequestDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode access requests: %w", err)
	}
	out := make([]models.AccessRequest, 0, len(docs))
	for _, doc := range docs {
		ar, err := fromDoc(doc)
		if err != nil {
			return nil, err
		}
		out = append(out, ar)
	}
	return out, nil
}

func (s *Mongo) FindByID(ctx context.Context, arID id.AccessRequestID) (models.AccessRequest, error) {
	var doc accessRequestDoc
	err := s.col.FindOne(ctx, bson.M{"_id": arID.String()}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.AccessRequest{}, sentinel.ErrNotFound
	}
	if err != nil {
		return models.AccessRequest{}, fmt.Errorf("find access request: %w", err)
	}
	return fromDoc(doc)
}

// Insert writes the batch with one ordered InsertMany. A duplicate key stops the
// batch at that document and is reported as sentinel.ErrConflict.
func (s *Mongo) Insert(ctx context.Context, batch []models.AccessRequest) error {
	if len(batch) == 0 {
		return nil
	}
	docs := make([]any, 0, len(batch))
	for _, ar := range batch {
		docs = append(docs, toDoc(ar))
	}
	if _, err := s.col.InsertMany(ctx, docs, options.InsertMany().SetOrdered(true)); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return sentinel.ErrConflict
		}
		return fmt.Errorf("insert access requests: %w", err)
	}
	return nil
}

// Update replaces the request only while the stored copy is still Pending.
func (s *Mongo) Update(ctx context.Context, ar models.AccessRequest) error {
	filter := bson.M{"_id": ar.ID.String(), "status": string(models.StatusPending)}
	res, err := s.col.ReplaceOne(ctx, filter, toDoc(ar))
	if err != nil {
		return fmt.Errorf("update access request: %w", err)
	}
	if res.MatchedCount > 0 {
		return nil
	}
	n, err := s.col.CountDocuments(ctx, bson.M{"_id": ar.ID.String()})
	if err != nil {
		return fmt.Errorf("update access request: %w", err)
	}
	if n == 0 {
		return sentinel.ErrNotFound
	}
	return sentinel.ErrConflict
}
