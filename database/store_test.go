package database

import (
	"reflect"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"
)

func TestResponseFilter(t *testing.T) {
	start := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		township string
		start    time.Time
		end      time.Time
		want     bson.M
	}{
		{
			name: "no filters matches everything",
			want: bson.M{},
		},
		{
			name:     "township only",
			township: "Tembisa",
			want:     bson.M{"township": "Tembisa"},
		},
		{
			name:  "start only",
			start: start,
			want:  bson.M{"submittedAt": bson.M{"$gte": start}},
		},
		{
			name: "end only",
			end:  end,
			want: bson.M{"submittedAt": bson.M{"$lt": end}},
		},
		{
			name:     "all bounds",
			township: "Soweto",
			start:    start,
			end:      end,
			want: bson.M{
				"township":    "Soweto",
				"submittedAt": bson.M{"$gte": start, "$lt": end},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := responseFilter(tt.township, tt.start, tt.end)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("responseFilter() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestListParamsNormalized(t *testing.T) {
	tests := []struct {
		name      string
		params    ListParams
		wantPage  int64
		wantLimit int64
	}{
		{"defaults", ListParams{}, 1, DefaultPageSize},
		{"zero page", ListParams{Page: 0, Limit: 10}, 1, 10},
		{"negative page", ListParams{Page: -3, Limit: 10}, 1, 10},
		{"zero limit", ListParams{Page: 4}, 4, DefaultPageSize},
		{"passthrough", ListParams{Page: 2, Limit: 25}, 2, 25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.params.normalized()
			if got.Page != tt.wantPage {
				t.Errorf("Page = %d, want %d", got.Page, tt.wantPage)
			}
			if got.Limit != tt.wantLimit {
				t.Errorf("Limit = %d, want %d", got.Limit, tt.wantLimit)
			}
		})
	}
}
