package routes

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/brandscapers/dropbydrop/app"
	"github.com/brandscapers/dropbydrop/auth"
	"github.com/brandscapers/dropbydrop/database"
	"github.com/brandscapers/dropbydrop/model"
)

var errAny = errors.New("server selection timeout")

// fakeVerifier accepts the literal token "good", reports "down" as a
// provider-side failure, and rejects everything else.
type fakeVerifier struct{}

func (fakeVerifier) Verify(_ context.Context, token string) (auth.Identity, error) {
	switch token {
	case "good":
		return auth.Identity{Subject: "admin-1", Email: "admin@example.com"}, nil
	case "down":
		return auth.Identity{}, errors.New("auth: fetch jwks: connection refused")
	default:
		return auth.Identity{}, auth.ErrUnauthenticated
	}
}

type fakeStore struct {
	insertedDoc bson.M
	insertedID  string
	insertErr   error

	listParams database.ListParams
	listPage   database.ResponsePage
	listErr    error

	summary    model.Summary
	summaryErr error

	findTownship string
	findDocs     []model.SurveyResponse
	findErr      error
}

func (s *fakeStore) Insert(_ context.Context, doc bson.M) (string, error) {
	s.insertedDoc = doc
	return s.insertedID, s.insertErr
}

func (s *fakeStore) List(_ context.Context, params database.ListParams) (database.ResponsePage, error) {
	s.listParams = params
	return s.listPage, s.listErr
}

func (s *fakeStore) Summary(_ context.Context) (model.Summary, error) {
	return s.summary, s.summaryErr
}

func (s *fakeStore) FindAll(_ context.Context, township string) ([]model.SurveyResponse, error) {
	s.findTownship = township
	return s.findDocs, s.findErr
}

func testApp(store *fakeStore) app.App {
	return app.App{
		Store:    store,
		Verifier: fakeVerifier{},
	}
}
