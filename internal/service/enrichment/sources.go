package enrichment

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	json "github.com/goccy/go-json"
	"github.com/kapu/tastejourney-go/internal/domain"
	"github.com/kapu/tastejourney-go/internal/util"
	gobreaker "github.com/sony/gobreaker/v2"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"
)

// Field names one slot of domain.Enrichment.
type Field string

const (
	FieldMaps           Field = "maps"
	FieldYouTube        Field = "youtube"
	FieldKnowledgeGraph Field = "knowledgeGraph"
	FieldCostOfLiving   Field = "costOfLiving"
	FieldFlights        Field = "flights"
	FieldHotels         Field = "hotels"
	FieldCreators       Field = "creators"
)

// Source fetches one enrichment field for one recommendation.
// A nil payload with a nil error means the source does not apply to that destination.
type Source interface {
	Field() Field
	Fetch(ctx context.Context, rec domain.Recommendation) (json.RawMessage, error)
}

func assign(e *domain.Enrichment, field Field, raw json.RawMessage) {
	switch field {
	case FieldMaps:
		e.Maps = raw
	case FieldYouTube:
		e.YouTube = raw
	case FieldKnowledgeGraph:
		e.KnowledgeGraph = raw
	case FieldCostOfLiving:
		e.CostOfLiving = raw
	case FieldFlights:
		e.Flights = raw
	case FieldHotels:
		e.Hotels = raw
	case FieldCreators:
		e.Creators = raw
	}
}

func validJSON(body []byte) (json.RawMessage, error) {
	if !json.Valid(body) {
		return nil, fmt.Errorf("response is not valid JSON")
	}
	return json.RawMessage(body), nil
}

// serpSource queries one SerpApi engine.
type serpSource struct {
	field    Field
	client   Requester
	endpoint string
	apiKey   string
	params   func(rec domain.Recommendation) url.Values
	// extract picks a top-level key out of the response when set.
	extract string
}

func (s *serpSource) Field() Field { return s.field }

func (s *serpSource) Fetch(ctx context.Context, rec domain.Recommendation) (json.RawMessage, error) {
	params := s.params(rec)
	params.Set("api_key", s.apiKey)

	body, err := s.client.Get(ctx, s.endpoint, params)
	if err != nil {
		return nil, err
	}
	if s.extract == "" {
		return validJSON(body)
	}

	var top map[string]json.RawMessage
	if err := json.Unmarshal(body, &top); err != nil {
		return nil, fmt.Errorf("decode serpapi response: %w", err)
	}
	return top[s.extract], nil
}

// NewSerpSources returns the maps, youtube and knowledge graph sources. Each has its own breaker.
func NewSerpSources(endpoint, apiKey string, httpClient *http.Client, logger *zap.Logger) []Source {
	client := func(engine string) Requester {
		return newAPIClient("serpapi-"+engine, httpClient, logger)
	}
	return []Source{
		&serpSource{
			field: FieldMaps, client: client("maps"), endpoint: endpoint, apiKey: apiKey,
			params: func(rec domain.Recommendation) url.Values {
				return url.Values{"engine": {"google_maps"}, "q": {rec.Destination}}
			},
		},
		&serpSource{
			field: FieldYouTube, client: client("youtube"), endpoint: endpoint, apiKey: apiKey,
			params: func(rec domain.Recommendation) url.Values {
				return url.Values{"engine": {"youtube"}, "search_query": {rec.DestinationName + " travel vlog"}}
			},
		},
		&serpSource{
			field: FieldKnowledgeGraph, client: client("knowledge-graph"), endpoint: endpoint, apiKey: apiKey,
			extract: "knowledge_graph",
			params: func(rec domain.Recommendation) url.Values {
				return url.Values{
					"engine":        {"google"},
					"q":             {rec.DestinationName},
					"google_domain": {"google.com"},
					"gl":            {"us"},
					"hl":            {"en"},
				}
			},
		},
	}
}

type numbeoSource struct {
	client   Requester
	endpoint string
	apiKey   string
}

func NewNumbeoSource(endpoint, apiKey string, httpClient *http.Client, logger *zap.Logger) Source {
	return &numbeoSource{
		client:   newAPIClient("numbeo", httpClient, logger),
		endpoint: endpoint,
		apiKey:   apiKey,
	}
}

func (s *numbeoSource) Field() Field { return FieldCostOfLiving }

func (s *numbeoSource) Fetch(ctx context.Context, rec domain.Recommendation) (json.RawMessage, error) {
	body, err := s.client.Get(ctx, s.endpoint, url.Values{
		"api_key": {s.apiKey},
		"query":   {rec.DestinationName},
	})
	if err != nil {
		return nil, err
	}
	return validJSON(body)
}

// AmadeusOptions configures the flight and hotel sources.
type AmadeusOptions struct {
	BaseURL    string
	ClientID   string
	Secret     string
	Origin     string
	LeadDays   int
	StayNights int
	// HTTPClient is used for both token and API requests when set.
	HTTPClient *http.Client
}

type amadeusFlights struct {
	client     Requester
	baseURL    string
	origin     string
	leadDays   int
	stayNights int
	now        func() time.Time
}

type amadeusHotels struct {
	client  Requester
	baseURL string
}

// NewAmadeusSources authenticates with the OAuth2 client-credentials grant and returns flight and hotel sources.
// Both share the token source but trip their breakers independently.
func NewAmadeusSources(opts AmadeusOptions, logger *zap.Logger) []Source {
	base := strings.TrimRight(opts.BaseURL, "/")
	cc := clientcredentials.Config{
		ClientID:     opts.ClientID,
		ClientSecret: opts.Secret,
		TokenURL:     base + "/v1/security/oauth2/token",
		AuthStyle:    oauth2.AuthStyleInParams,
	}

	tokenCtx := context.Background()
	if opts.HTTPClient != nil {
		tokenCtx = context.WithValue(tokenCtx, oauth2.HTTPClient, opts.HTTPClient)
	}
	authed := cc.Client(tokenCtx)

	return []Source{
		&amadeusFlights{
			client:     newAPIClient("amadeus-flights", authed, logger),
			baseURL:    base,
			origin:     opts.Origin,
			leadDays:   opts.LeadDays,
			stayNights: opts.StayNights,
			now:        time.Now,
		},
		&amadeusHotels{client: newAPIClient("amadeus-hotels", authed, logger), baseURL: base},
	}
}

func (s *amadeusFlights) Field() Field { return FieldFlights }

func (s *amadeusFlights) Fetch(ctx context.Context, rec domain.Recommendation) (json.RawMessage, error) {
	if rec.CityCode == "" {
		return nil, nil
	}
	depart, ret := util.TravelWindow(s.now(), s.leadDays, s.stayNights)
	body, err := s.client.Get(ctx, s.baseURL+"/v2/shopping/flight-offers", url.Values{
		"originLocationCode":      {s.origin},
		"destinationLocationCode": {rec.CityCode},
		"departureDate":           {depart},
		"returnDate":              {ret},
		"adults":                  {"1"},
		"max":                     {"3"},
	})
	if err != nil {
		return nil, err
	}
	return validJSON(body)
}

func (s *amadeusHotels) Field() Field { return FieldHotels }

func (s *amadeusHotels) Fetch(ctx context.Context, rec domain.Recommendation) (json.RawMessage, error) {
	if rec.CityCode == "" {
		return nil, nil
	}
	body, err := s.client.Get(ctx, s.baseURL+"/v1/reference-data/locations/hotels/by-city", url.Values{
		"cityCode": {rec.CityCode},
	})
	if err != nil {
		return nil, err
	}
	return validJSON(body)
}

// creatorSource finds travel channels for a destination through the YouTube Data API.
type creatorSource struct {
	service    *youtube.Service
	breaker    *gobreaker.CircuitBreaker[json.RawMessage]
	maxResults int64
}

func NewCreatorSource(ctx context.Context, apiKey string, maxResults int64, logger *zap.Logger, extra ...option.ClientOption) (Source, error) {
	opts := append([]option.ClientOption{option.WithAPIKey(apiKey)}, extra...)
	service, err := youtube.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create YouTube service: %w", err)
	}
	return &creatorSource{
		service:    service,
		breaker:    util.NewCircuitBreaker[json.RawMessage]("youtube-creators", logger),
		maxResults: maxResults,
	}, nil
}

func (s *creatorSource) Field() Field { return FieldCreators }

func (s *creatorSource) Fetch(ctx context.Context, rec domain.Recommendation) (json.RawMessage, error) {
	return s.breaker.Execute(func() (json.RawMessage, error) {
		resp, err := s.service.Search.List([]string{"snippet"}).
			Type("channel").
			MaxResults(s.maxResults).
			Q("travel vlog " + rec.DestinationName).
			Context(ctx).
			Do()
		if err != nil {
			return nil, err
		}
		return json.Marshal(resp.Items)
	})
}
