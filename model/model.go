package model

import (
	"encoding/json"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Townships covered by the field campaign. Used by the dashboard filter and
// the summary charts; the store itself never checks membership.
var Townships = []string{"Soweto", "Alexandra", "Tembisa"}

// SurveyResponse is one household visit as stored in the survey_responses
// collection. ID and SubmittedAt are assigned server-side on insert and never
// change afterwards; everything else is stored exactly as the form sent it.
type SurveyResponse struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Township    string             `bson:"township" json:"township"`
	SubmittedAt time.Time          `bson:"submittedAt" json:"submittedAt"`

	// Section A: household information
	HouseholdSize     string `bson:"householdSize,omitempty" json:"householdSize,omitempty"`
	DwellingType      string `bson:"dwellingType,omitempty" json:"dwellingType,omitempty"`
	DwellingTypeOther string `bson:"dwellingTypeOther,omitempty" json:"dwellingTypeOther,omitempty"`
	OwnOrRent         string `bson:"ownOrRent,omitempty" json:"ownOrRent,omitempty"`
	OwnOrRentOther    string `bson:"ownOrRentOther,omitempty" json:"ownOrRentOther,omitempty"`
	HasMeter          string `bson:"hasMeter,omitempty" json:"hasMeter,omitempty"`

	// Section B: water usage practices
	WaterSources      []string `bson:"waterSources,omitempty" json:"waterSources,omitempty"`
	WaterSourcesOther string   `bson:"waterSourcesOther,omitempty" json:"waterSourcesOther,omitempty"`
	ShortagesFreq     string   `bson:"shortagesFreq,omitempty" json:"shortagesFreq,omitempty"`
	HomeDevices       []string `bson:"homeDevices,omitempty" json:"homeDevices,omitempty"`
	GardenWatering    string   `bson:"gardenWatering,omitempty" json:"gardenWatering,omitempty"`

	// Section C: awareness and attitudes
	ReceivedEducation string `bson:"receivedEducation,omitempty" json:"receivedEducation,omitempty"`
	ConcernLevel      string `bson:"concernLevel,omitempty" json:"concernLevel,omitempty"`
	KnowHowToReport   string `bson:"knowHowToReport,omitempty" json:"knowHowToReport,omitempty"`
	ReportedIssue     string `bson:"reportedIssue,omitempty" json:"reportedIssue,omitempty"`

	// Section D: infrastructure and challenges
	AreaNotices          []string `bson:"areaNotices,omitempty" json:"areaNotices,omitempty"`
	InfrastructureRating string   `bson:"infrastructureRating,omitempty" json:"infrastructureRating,omitempty"`

	// Section E: willingness to engage
	InterestWorkshop string `bson:"interestWorkshop,omitempty" json:"interestWorkshop,omitempty"`
	WillingAdopt     string `bson:"willingAdopt,omitempty" json:"willingAdopt,omitempty"`
	CommunityRole    string `bson:"communityRole,omitempty" json:"communityRole,omitempty"`
	BiggestChallenge string `bson:"biggestChallenge,omitempty" json:"biggestChallenge,omitempty"`
	Suggestions      string `bson:"suggestions,omitempty" json:"suggestions,omitempty"`
}

// TownshipCount is one group of the per-township response aggregation.
type TownshipCount struct {
	Township string `bson:"township" json:"township"`
	Count    int64  `bson:"count" json:"count"`
}

// TownshipEstimate is the naive household/people aggregation: householdSize
// strings that look numeric are summed, anything else counts as zero.
type TownshipEstimate struct {
	Township    string  `bson:"township" json:"township"`
	Households  int64   `bson:"households" json:"households"`
	PeopleCount float64 `bson:"peopleCount" json:"peopleCount"`
}

type Summary struct {
	TotalResponses int64              `json:"totalResponses"`
	ByTownship     []TownshipCount    `json:"byTownship"`
	PeopleEstimate []TownshipEstimate `json:"peopleEstimate"`
}

// CSVHeader is the canonical column order for exports.
var CSVHeader = []string{
	"id", "township", "submittedAt",
	"householdSize", "dwellingType", "dwellingTypeOther",
	"ownOrRent", "ownOrRentOther", "hasMeter",
	"waterSources", "waterSourcesOther", "shortagesFreq",
	"homeDevices", "gardenWatering",
	"receivedEducation", "concernLevel", "knowHowToReport", "reportedIssue",
	"areaNotices", "infrastructureRating",
	"interestWorkshop", "willingAdopt", "communityRole",
	"biggestChallenge", "suggestions",
}

// CSVRow renders the response in CSVHeader order. Multi-select answers become
// a single JSON-array cell, same as the dashboard's client-side export.
func (r SurveyResponse) CSVRow() []string {
	submitted := ""
	if !r.SubmittedAt.IsZero() {
		submitted = r.SubmittedAt.UTC().Format(time.RFC3339)
	}
	return []string{
		r.ID.Hex(), r.Township, submitted,
		r.HouseholdSize, r.DwellingType, r.DwellingTypeOther,
		r.OwnOrRent, r.OwnOrRentOther, r.HasMeter,
		joinMulti(r.WaterSources), r.WaterSourcesOther, r.ShortagesFreq,
		joinMulti(r.HomeDevices), r.GardenWatering,
		r.ReceivedEducation, r.ConcernLevel, r.KnowHowToReport, r.ReportedIssue,
		joinMulti(r.AreaNotices), r.InfrastructureRating,
		r.InterestWorkshop, r.WillingAdopt, r.CommunityRole,
		r.BiggestChallenge, r.Suggestions,
	}
}

func joinMulti(values []string) string {
	if len(values) == 0 {
		return ""
	}
	encoded, err := json.Marshal(values)
	if err != nil {
		return strings.Join(values, "; ")
	}
	return string(encoded)
}
