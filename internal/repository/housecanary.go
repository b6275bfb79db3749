package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"septic-canary/internal/models"

	"github.com/rotisserie/eris"
	"github.com/rs/zerolog/log"
)

const (
	propertyDetailsPath  = "/v2/property/details"
	rateLimitResetHeader = "X-RateLimit-Reset"
)

// UpstreamError is returned when HouseCanary answers with anything other than 200.
type UpstreamError struct {
	StatusCode int
	Body       []byte

	// RateLimitReset is the UTC epoch second at which a rate-limited caller may retry.
	RateLimitReset int64
	HasReset       bool
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("housecanary: unexpected status %d", e.StatusCode)
}

// Repository fetches property details from the HouseCanary API.
type Repository struct {
	baseURL    string
	apiKey     string
	apiSecret  string
	httpClient *http.Client
}

// Option configures the repository.
type Option func(*Repository)

// WithHTTPClient overrides the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(r *Repository) {
		r.httpClient = hc
	}
}

// NewRepository creates a new HouseCanary repository
func NewRepository(baseURL, apiKey, apiSecret string, opts ...Option) *Repository {
	r := &Repository{
		baseURL:   strings.TrimRight(baseURL, "/"),
		apiKey:    apiKey,
		apiSecret: apiSecret,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
	for _, o := range opts {
		o(r)
	}
	return r
}

// FetchPropertyDetails queries /v2/property/details with the given parameters.
func (r *Repository) FetchPropertyDetails(ctx context.Context, params url.Values) (*models.PropertyRecord, error) {
	endpoint := r.baseURL + propertyDetailsPath
	if len(params) > 0 {
		endpoint += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, eris.Wrap(err, "housecanary: create request")
	}
	req.SetBasicAuth(r.apiKey, r.apiSecret)
	req.Header.Set("Accept", "application/json")

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return nil, eris.Wrap(err, "housecanary: send request")
	}
	defer resp.Body.Close() //nolint:errcheck

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, eris.Wrap(err, "housecanary: read response")
	}

	if resp.StatusCode != http.StatusOK {
		upErr := &UpstreamError{StatusCode: resp.StatusCode, Body: body}
		if raw := strings.TrimSpace(resp.Header.Get(rateLimitResetHeader)); raw != "" {
			if reset, perr := strconv.ParseInt(raw, 10, 64); perr == nil {
				upErr.RateLimitReset = reset
				upErr.HasReset = true
			}
		}

		event := log.Error().
			Int("status", resp.StatusCode).
			Str("body", string(body))
		if upErr.HasReset {
			event = event.Int64("rate_limit_reset", upErr.RateLimitReset)
		}
		event.Msg("request to HouseCanary failed")

		return nil, upErr
	}

	record, err := decodePropertyDetails(body)
	if err != nil {
		return nil, eris.Wrap(err, "housecanary: decode response")
	}

	return record, nil
}

// detailsResponse mirrors the parts of the property details payload we read.
//
// Depending on the API version the property block is either nested under
// "result" or sits directly inside "property/details".
type detailsResponse struct {
	AddressInfo struct {
		Status struct {
			Match *bool `json:"match"`
		} `json:"status"`
	} `json:"address_info"`
	PropertyDetails *detailsBlock `json:"property/details"`
}

type detailsBlock struct {
	APICode            *int   `json:"api_code"`
	APICodeDescription string `json:"api_code_description"`
	Result             *struct {
		Property *propertyFields `json:"property"`
	} `json:"result"`
	Property *propertyFields `json:"property"`
}

type propertyFields struct {
	Sewer *string `json:"sewer"`
}

// property returns the property block, preferring result.property over the flat layout.
func (b *detailsBlock) property() *propertyFields {
	if b == nil {
		return nil
	}
	if b.Result != nil && b.Result.Property != nil {
		return b.Result.Property
	}
	return b.Property
}

func decodePropertyDetails(body []byte) (*models.PropertyRecord, error) {
	var parsed detailsResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, err
	}

	record := &models.PropertyRecord{}
	if m := parsed.AddressInfo.Status.Match; m != nil {
		record.AddressMatched = *m
	}

	if block := parsed.PropertyDetails; block != nil {
		if block.APICode != nil {
			record.APICode = *block.APICode
		}
		record.APICodeDescription = block.APICodeDescription

		if prop := block.property(); prop != nil && prop.Sewer != nil {
			record.Sewer = *prop.Sewer
			record.HasSewer = true
		}
	}

	return record, nil
}
