package routes

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/go-chi/render"

	"github.com/brandscapers/dropbydrop/app"
	"github.com/brandscapers/dropbydrop/database"
	"github.com/brandscapers/dropbydrop/httpx"
	"github.com/brandscapers/dropbydrop/log"
	"github.com/brandscapers/dropbydrop/model"
)

// ListResponses returns one page of responses, newest first, optionally
// filtered by township and an inclusive submittedAt date range.
func ListResponses(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		params, err := parseListParams(r.URL.Query())
		if err != nil {
			httpx.LogStatusMsg(w, http.StatusBadRequest, log.DebugLevel, "request.parse_query", "%s", err)
			return
		}

		page, err := app.Store.List(r.Context(), params)
		if err != nil {
			httpx.LogInternalError(w, "db.list_responses", err)
			return
		}

		render.JSON(w, r, page)
	}
}

func parseListParams(query url.Values) (params database.ListParams, err error) {
	params.Page = 1
	params.Limit = database.DefaultPageSize
	params.Township = query.Get("township")

	if raw := query.Get("page"); raw != "" {
		params.Page, err = strconv.ParseInt(raw, 10, 64)
		if err != nil || params.Page < 1 {
			return params, fmt.Errorf("invalid page %q", raw)
		}
	}
	if raw := query.Get("limit"); raw != "" {
		params.Limit, err = strconv.ParseInt(raw, 10, 64)
		if err != nil || params.Limit < 1 {
			return params, fmt.Errorf("invalid limit %q", raw)
		}
	}
	if raw := query.Get("startDate"); raw != "" {
		params.Start, err = parseDate(raw)
		if err != nil {
			return params, fmt.Errorf("invalid startDate %q", raw)
		}
	}
	if raw := query.Get("endDate"); raw != "" {
		end, err := parseDate(raw)
		if err != nil {
			return params, fmt.Errorf("invalid endDate %q", raw)
		}
		// inclusive through the end of that day
		params.End = end.AddDate(0, 0, 1)
	}

	return params, nil
}

func parseDate(raw string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", raw)
	if err == nil {
		return t.UTC(), nil
	}
	t, err = time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}

// SummarizeResponses reports the total count, the per-township breakdown and
// the people estimate, in no guaranteed group order.
func SummarizeResponses(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		summary, err := app.Store.Summary(r.Context())
		if err != nil {
			httpx.LogInternalError(w, "db.summarize_responses", err)
			return
		}

		render.JSON(w, r, summary)
	}
}

// ExportResponses streams every matching response as a CSV attachment,
// unpaginated, newest first.
func ExportResponses(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		township := r.URL.Query().Get("township")

		docs, err := app.Store.FindAll(r.Context(), township)
		if err != nil {
			httpx.LogInternalError(w, "db.export_responses", err)
			return
		}

		name := township
		if name == "" {
			name = "all"
		}
		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition",
			fmt.Sprintf(`attachment; filename="survey_export_%s_%d.csv"`, name, time.Now().Unix()))

		cw := csv.NewWriter(w)
		if err := cw.Write(model.CSVHeader); err != nil {
			log.Error("export.write_header:", err)
			return
		}
		for _, doc := range docs {
			if err := cw.Write(doc.CSVRow()); err != nil {
				log.Error("export.write_row:", err)
				return
			}
		}
		cw.Flush()
		if err := cw.Error(); err != nil {
			log.Error("export.flush:", err)
		}
	}
}
