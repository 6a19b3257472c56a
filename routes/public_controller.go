package routes

import (
	"net/http"
	"time"

	"github.com/go-chi/render"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/brandscapers/dropbydrop/app"
	"github.com/brandscapers/dropbydrop/httpx"
	"github.com/brandscapers/dropbydrop/log"
)

// SubmitResponse stores one filled-in survey. The payload is kept exactly as
// sent, no field or enum validation, except that id and submittedAt are
// always server-assigned. Duplicate submits produce duplicate records.
func SubmitResponse(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		doc := bson.M{}
		err := render.DecodeJSON(r.Body, &doc)
		if err != nil {
			httpx.LogStatus(w, http.StatusBadRequest, log.DebugLevel, "request.parse_body")
			return
		}

		delete(doc, "_id")
		doc["submittedAt"] = time.Now().UTC()

		id, err := app.Store.Insert(r.Context(), doc)
		if err != nil {
			httpx.LogInternalError(w, "db.insert_response", err)
			return
		}

		w.WriteHeader(http.StatusCreated)
		render.JSON(w, r, map[string]any{
			"insertedId": id,
		})
	}
}
