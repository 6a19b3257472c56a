package database

import (
	"context"
	"fmt"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/brandscapers/dropbydrop/model"
)

const (
	// CollectionName holds every survey response; records are insert-only.
	CollectionName = "survey_responses"

	DefaultPageSize = 50

	summaryCacheKey = "summary"
)

// SurveyStore wraps the survey_responses collection. The summary aggregation
// is cached briefly since the dashboard re-requests it on every refresh.
type SurveyStore struct {
	responses *mongo.Collection
	summaries *gocache.Cache
}

func NewSurveyStore(db *mongo.Database, summaryTTL time.Duration) *SurveyStore {
	if summaryTTL <= 0 {
		summaryTTL = 30 * time.Second
	}
	return &SurveyStore{
		responses: db.Collection(CollectionName),
		summaries: gocache.New(summaryTTL, 2*summaryTTL),
	}
}

// Insert appends one response document as-is and returns the assigned id.
func (s *SurveyStore) Insert(ctx context.Context, doc bson.M) (string, error) {
	result, err := s.responses.InsertOne(ctx, doc)
	if err != nil {
		return "", fmt.Errorf("db: insert response: %w", err)
	}

	id, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return fmt.Sprint(result.InsertedID), nil
	}
	return id.Hex(), nil
}

// ListParams are the filter and pagination inputs of a list query.
// Zero times mean an unbounded side; End is an exclusive upper bound.
type ListParams struct {
	Page     int64
	Limit    int64
	Township string
	Start    time.Time
	End      time.Time
}

func (p ListParams) normalized() ListParams {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit < 1 {
		p.Limit = DefaultPageSize
	}
	return p
}

// ResponsePage is one page of matching documents, newest first.
type ResponsePage struct {
	Total int64    `json:"total"`
	Page  int64    `json:"page"`
	Limit int64    `json:"limit"`
	Docs  []bson.M `json:"docs"`
}

// List counts the documents matching the filter and returns the requested
// page sorted by submittedAt descending. A page past the end comes back with
// empty docs and an accurate total.
func (s *SurveyStore) List(ctx context.Context, params ListParams) (ResponsePage, error) {
	params = params.normalized()
	filter := responseFilter(params.Township, params.Start, params.End)

	total, err := s.responses.CountDocuments(ctx, filter)
	if err != nil {
		return ResponsePage{}, fmt.Errorf("db: count responses: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "submittedAt", Value: -1}}).
		SetSkip((params.Page - 1) * params.Limit).
		SetLimit(params.Limit)

	cursor, err := s.responses.Find(ctx, filter, opts)
	if err != nil {
		return ResponsePage{}, fmt.Errorf("db: find responses: %w", err)
	}
	defer cursor.Close(ctx)

	docs := []bson.M{}
	if err = cursor.All(ctx, &docs); err != nil {
		return ResponsePage{}, fmt.Errorf("db: decode responses: %w", err)
	}

	return ResponsePage{
		Total: total,
		Page:  params.Page,
		Limit: params.Limit,
		Docs:  docs,
	}, nil
}

// Summary reports the total response count, the per-township breakdown and
// the naive people estimate. Results may lag inserts by up to the cache TTL.
func (s *SurveyStore) Summary(ctx context.Context) (model.Summary, error) {
	if cached, ok := s.summaries.Get(summaryCacheKey); ok {
		return cached.(model.Summary), nil
	}

	total, err := s.responses.CountDocuments(ctx, bson.M{})
	if err != nil {
		return model.Summary{}, fmt.Errorf("db: count responses: %w", err)
	}

	byTownship := []model.TownshipCount{}
	pipeline := []bson.M{
		{"$group": bson.M{"_id": "$township", "count": bson.M{"$sum": 1}}},
		{"$project": bson.M{"township": "$_id", "count": 1, "_id": 0}},
	}
	if err = s.aggregate(ctx, pipeline, &byTownship); err != nil {
		return model.Summary{}, fmt.Errorf("db: count by township: %w", err)
	}

	// householdSize is a bucket label ("2–3"), so the numeric conversion is a
	// rough lower bound only: non-numeric labels sum as zero.
	estimates := []model.TownshipEstimate{}
	pipeline = []bson.M{
		{"$match": bson.M{"householdSize": bson.M{"$exists": true}}},
		{"$group": bson.M{
			"_id":        "$township",
			"households": bson.M{"$sum": 1},
			"peopleCount": bson.M{"$sum": bson.M{
				"$convert": bson.M{"input": "$householdSize", "to": "double", "onError": 0, "onNull": 0},
			}},
		}},
		{"$project": bson.M{"township": "$_id", "households": 1, "peopleCount": 1, "_id": 0}},
	}
	if err = s.aggregate(ctx, pipeline, &estimates); err != nil {
		return model.Summary{}, fmt.Errorf("db: people estimate: %w", err)
	}

	summary := model.Summary{
		TotalResponses: total,
		ByTownship:     byTownship,
		PeopleEstimate: estimates,
	}
	s.summaries.SetDefault(summaryCacheKey, summary)

	return summary, nil
}

func (s *SurveyStore) aggregate(ctx context.Context, pipeline []bson.M, results any) error {
	cursor, err := s.responses.Aggregate(ctx, pipeline)
	if err != nil {
		return err
	}
	defer cursor.Close(ctx)
	return cursor.All(ctx, results)
}

// FindAll returns every document matching the optional township filter,
// newest first, decoded into the typed model for export.
func (s *SurveyStore) FindAll(ctx context.Context, township string) ([]model.SurveyResponse, error) {
	filter := responseFilter(township, time.Time{}, time.Time{})
	opts := options.Find().SetSort(bson.D{{Key: "submittedAt", Value: -1}})

	cursor, err := s.responses.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("db: find responses: %w", err)
	}
	defer cursor.Close(ctx)

	docs := []model.SurveyResponse{}
	if err = cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("db: decode responses: %w", err)
	}
	return docs, nil
}

// responseFilter builds the match predicate for list/export queries.
// Omitted inputs match everything.
func responseFilter(township string, start, end time.Time) bson.M {
	filter := bson.M{}
	if township != "" {
		filter["township"] = township
	}

	submitted := bson.M{}
	if !start.IsZero() {
		submitted["$gte"] = start
	}
	if !end.IsZero() {
		submitted["$lt"] = end
	}
	if len(submitted) > 0 {
		filter["submittedAt"] = submitted
	}

	return filter
}
