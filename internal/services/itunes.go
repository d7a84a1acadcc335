// iTunes Search API implementation of [Catalog]
//
// Response shape based on https://performance-partners.apple.com/search-api
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/woodshed/internal/models"
	"github.com/desertthunder/woodshed/internal/shared"
	"golang.org/x/time/rate"
)

const (
	defaultITunesBaseURL = "https://itunes.apple.com"
	defaultITunesLimit   = 25
	defaultITunesTimeout = 10 * time.Second
)

// ITunesResult is a single entry of an iTunes search response.
type ITunesResult struct {
	WrapperType      string `json:"wrapperType"`
	Kind             string `json:"kind"`
	TrackID          int64  `json:"trackId"`
	TrackName        string `json:"trackName"`
	ArtistName       string `json:"artistName"`
	CollectionName   string `json:"collectionName"`
	PrimaryGenreName string `json:"primaryGenreName"`
	ArtworkURL100    string `json:"artworkUrl100"`
	TrackViewURL     string `json:"trackViewUrl"`
	ReleaseDate      string `json:"releaseDate"`
}

// ITunesResponse is the envelope returned by the search endpoint.
type ITunesResponse struct {
	ResultCount int            `json:"resultCount"`
	Results     []ITunesResult `json:"results"`
}

// Candidate maps the result to a catalog record.
func (r ITunesResult) Candidate() models.Candidate {
	return models.Candidate{
		Title:   r.TrackName,
		Artist:  r.ArtistName,
		Album:   r.CollectionName,
		Genre:   r.PrimaryGenreName,
		Artwork: r.ArtworkURL100,
	}
}

// ITunesOpts configures [NewITunesService]. Zero values fall back to defaults.
type ITunesOpts struct {
	BaseURL    string
	Country    string
	Limit      int
	Timeout    time.Duration
	RateLimit  float64 // requests per second; 0 disables limiting
	HTTPClient *http.Client
	Logger     *log.Logger
}

// ITunesService implements [Catalog] against the iTunes Search API.
type ITunesService struct {
	baseURL    string
	country    string
	limit      int
	timeout    time.Duration
	limiter    *rate.Limiter
	httpClient *http.Client
	logger     *log.Logger
}

// NewITunesService creates an iTunes catalog client.
func NewITunesService(opts ITunesOpts) *ITunesService {
	if opts.BaseURL == "" {
		opts.BaseURL = defaultITunesBaseURL
	}
	if opts.Limit <= 0 {
		opts.Limit = defaultITunesLimit
	}
	if opts.Timeout <= 0 {
		opts.Timeout = defaultITunesTimeout
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = http.DefaultClient
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}

	limiter := rate.NewLimiter(rate.Inf, 1)
	if opts.RateLimit > 0 {
		limiter = rate.NewLimiter(rate.Limit(opts.RateLimit), 1)
	}

	return &ITunesService{
		baseURL:    strings.TrimRight(opts.BaseURL, "/"),
		country:    opts.Country,
		limit:      opts.Limit,
		timeout:    opts.Timeout,
		limiter:    limiter,
		httpClient: opts.HTTPClient,
		logger:     opts.Logger,
	}
}

// NewITunesServiceFromConfig builds the service from the [catalog] config section.
func NewITunesServiceFromConfig(cfg shared.CatalogConfig, logger *log.Logger) *ITunesService {
	return NewITunesService(ITunesOpts{
		BaseURL:   cfg.BaseURL,
		Country:   cfg.Country,
		Limit:     cfg.Limit,
		Timeout:   cfg.Timeout(),
		RateLimit: cfg.RateLimit,
		Logger:    logger,
	})
}

// Name returns the service name.
func (s *ITunesService) Name() string {
	return "iTunes"
}

// SearchURL builds the request URL for term.
func (s *ITunesService) SearchURL(term string) string {
	q := url.Values{}
	q.Set("term", term)
	q.Set("media", "music")
	q.Set("entity", "song")
	q.Set("limit", strconv.Itoa(s.limit))
	if s.country != "" {
		q.Set("country", s.country)
	}
	return s.baseURL + "/search?" + q.Encode()
}

// Search queries the catalog for songs matching term.
//
// Calls GET /search on the configured base URL.
func (s *ITunesService) Search(ctx context.Context, term string) ([]models.Candidate, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return []models.Candidate{}, nil
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	if err := s.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%w: rate limiter: %v", shared.ErrSearchUnavailable, err)
	}

	var resp ITunesResponse
	if err := s.doRequest(ctx, s.SearchURL(term), &resp); err != nil {
		s.logger.Warn("catalog search failed", "term", term, "error", err)
		return nil, fmt.Errorf("%w: %v", shared.ErrSearchUnavailable, err)
	}

	candidates := make([]models.Candidate, 0, len(resp.Results))
	for _, r := range resp.Results {
		if strings.TrimSpace(r.TrackName) == "" {
			continue
		}
		candidates = append(candidates, r.Candidate())
	}

	s.logger.Debug("catalog search", "term", term, "results", len(candidates))
	return candidates, nil
}

func (s *ITunesService) doRequest(ctx context.Context, apiURL string, result any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var errResp struct {
			ErrorMessage string `json:"errorMessage"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&errResp); err == nil && errResp.ErrorMessage != "" {
			return fmt.Errorf("itunes API error (status %d): %s", resp.StatusCode, errResp.ErrorMessage)
		}
		return fmt.Errorf("itunes API error: status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
