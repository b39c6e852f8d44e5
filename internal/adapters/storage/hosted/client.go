// Package hosted implementa los repos contra un backend hosted que expone las
// tablas como colecciones REST (dialecto PostgREST / Supabase).
package hosted

import (
	"errors"
	"net/url"
	"strings"
	"time"

	"sheep-management/internal/domain/activities"
	"sheep-management/internal/domain/animals"
	"sheep-management/internal/platform/httpclient"
)

var ErrNotConfigured = errors.New("hosted backend not configured")

const (
	animalsPath    = "/rest/v1/animals"
	activitiesPath = "/rest/v1/activities"
)

// Config del backend hosted. BaseURL y APIKey vienen de la configuración del deploy.
type Config struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

type Client struct {
	http *httpclient.Client
}

func NewClient(cfg Config) (*Client, error) {
	if strings.TrimSpace(cfg.BaseURL) == "" || strings.TrimSpace(cfg.APIKey) == "" {
		return nil, ErrNotConfigured
	}
	hc, err := httpclient.NewWithBaseURL(strings.TrimSpace(cfg.BaseURL), cfg.Timeout)
	if err != nil {
		return nil, err
	}
	key := strings.TrimSpace(cfg.APIKey)
	return &Client{
		http: hc.WithHeaders(map[string]string{
			"apikey":        key,
			"Authorization": "Bearer " + key,
		}),
	}, nil
}

// animalRow es la fila de animals tal como la serializa el backend.
type animalRow struct {
	TagID       string        `json:"tag_id"`
	DOBPurchase *string       `json:"dob_purchase"`
	Sex         string        `json:"sex"`
	ApproxAge   int           `json:"approx_age"`
	Weight      float64       `json:"weight"`
	BodyScore   int           `json:"body_score"`
	FeedType    string        `json:"feed_type"`
	Notes       string        `json:"notes"`
	Pregnant    bool          `json:"pregnant"`
	UpdatedAt   time.Time     `json:"updated_at"`
	Activities  []activityRow `json:"activities,omitempty"`
}

type activityRow struct {
	ID         int64     `json:"id,omitempty"`
	TagID      string    `json:"tag_id"`
	Activity   string    `json:"activity"`
	Details    string    `json:"details"`
	Ref        string    `json:"ref"`
	RecordedAt time.Time `json:"recorded_at"`
}

func toAnimalRow(a animals.Animal) animalRow {
	row := animalRow{
		TagID:     a.TagID,
		Sex:       string(a.Sex),
		ApproxAge: a.ApproxAgeMonths,
		Weight:    a.WeightKg,
		BodyScore: a.BodyScore,
		FeedType:  string(a.FeedType),
		Notes:     a.Notes,
		Pregnant:  a.Pregnant,
		UpdatedAt: a.UpdatedAt.UTC(),
	}
	if a.AcquiredOn != nil {
		d := animals.FormatDate(a.AcquiredOn)
		row.DOBPurchase = &d
	}
	return row
}

func (r animalRow) toAnimal() (animals.Animal, error) {
	a := animals.Animal{
		TagID:           r.TagID,
		Sex:             animals.Sex(r.Sex),
		ApproxAgeMonths: r.ApproxAge,
		WeightKg:        r.Weight,
		BodyScore:       r.BodyScore,
		FeedType:        animals.FeedType(r.FeedType),
		Notes:           r.Notes,
		Pregnant:        r.Pregnant,
		UpdatedAt:       r.UpdatedAt.UTC(),
	}
	if r.DOBPurchase != nil {
		d, err := animals.ParseDate(*r.DOBPurchase)
		if err != nil {
			return animals.Animal{}, err
		}
		a.AcquiredOn = d
	}
	return a, nil
}

func toActivityRow(a activities.Activity) (activityRow, error) {
	d, err := activities.EncodeDetails(a.Details)
	if err != nil {
		return activityRow{}, err
	}
	return activityRow{
		TagID:      a.TagID,
		Activity:   string(a.Kind),
		Details:    d,
		Ref:        a.Ref,
		RecordedAt: a.RecordedAt.UTC(),
	}, nil
}

func (r activityRow) toActivity() (activities.Activity, error) {
	kind := activities.Kind(r.Activity)
	p, err := activities.DecodeDetails(kind, []byte(r.Details))
	if err != nil {
		return activities.Activity{}, err
	}
	return activities.Activity{
		ID:         r.ID,
		TagID:      r.TagID,
		Kind:       kind,
		Details:    p,
		Ref:        r.Ref,
		RecordedAt: r.RecordedAt.UTC(),
	}, nil
}

func query(path string, v url.Values) string {
	return path + "?" + v.Encode()
}
