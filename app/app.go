package app

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/brandscapers/dropbydrop/auth"
	"github.com/brandscapers/dropbydrop/config"
	"github.com/brandscapers/dropbydrop/database"
	"github.com/brandscapers/dropbydrop/model"
)

// ResponseStore is the slice of the survey store the HTTP layer uses.
type ResponseStore interface {
	Insert(ctx context.Context, doc bson.M) (string, error)
	List(ctx context.Context, params database.ListParams) (database.ResponsePage, error)
	Summary(ctx context.Context) (model.Summary, error)
	FindAll(ctx context.Context, township string) ([]model.SurveyResponse, error)
}

type App struct {
	Store    ResponseStore
	Verifier auth.TokenVerifier
	Config   config.Config
}
