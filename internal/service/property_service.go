package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"septic-canary/internal/apperrors"
	"septic-canary/internal/metrics"
	"septic-canary/internal/models"
	"septic-canary/internal/repository"

	"github.com/rs/zerolog/log"
)

const septicSewer = "septic"

// PropertyService contains the business logic for property detail lookups
type PropertyService struct {
	repo  PropertyRepository
	clock Clock
}

// PropertyRepository interface for dependency injection
type PropertyRepository interface {
	FetchPropertyDetails(ctx context.Context, params url.Values) (*models.PropertyRecord, error)
}

// Clock is the time source used to translate rate-limit reset timestamps.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock.
type SystemClock struct{}

// Now returns the current time.
func (SystemClock) Now() time.Time { return time.Now() }

// NewPropertyService creates a new property service. A nil clock uses the wall clock.
func NewPropertyService(repo PropertyRepository, clock Clock) *PropertyService {
	if clock == nil {
		clock = SystemClock{}
	}
	return &PropertyService{repo: repo, clock: clock}
}

// LookupPropertyDetails resolves req with HouseCanary and reports whether the property is on septic.
// Every failure is an *apperrors.AppError.
func (s *PropertyService) LookupPropertyDetails(ctx context.Context, req models.LookupRequest) (*models.PropertyDetails, error) {
	if strings.TrimSpace(req.Street) == "" {
		return nil, apperrors.InvalidRequest("'street' must be specified")
	}
	if !req.HasLocality() {
		return nil, apperrors.InvalidRequest(apperrors.MsgMissingLocality)
	}

	record, err := s.repo.FetchPropertyDetails(ctx, BuildLookupParams(req))
	if err != nil {
		return nil, s.translateUpstreamError(err)
	}

	if !record.AddressMatched {
		metrics.RecordUpstreamOutcome(metrics.OutcomeNotFound)
		return nil, apperrors.NotFound()
	}

	// HouseCanary reports query-level failures inside a 200 response.
	if record.APICode != 0 {
		metrics.RecordUpstreamOutcome(metrics.OutcomeAPIError)
		log.Error().
			Int("api_code", record.APICode).
			Str("api_code_description", record.APICodeDescription).
			Msg("HouseCanary reported a failed property details query")
		return nil, apperrors.Internal(fmt.Errorf("service: upstream api_code %d: %s", record.APICode, record.APICodeDescription))
	}

	metrics.RecordUpstreamOutcome(metrics.OutcomeSuccess)
	return &models.PropertyDetails{
		HasSepticSystem: record.HasSewer && strings.EqualFold(record.Sewer, septicSewer),
	}, nil
}

// BuildLookupParams maps the request onto HouseCanary query parameters, omitting empty fields.
func BuildLookupParams(req models.LookupRequest) url.Values {
	params := url.Values{}
	for _, p := range []struct{ key, value string }{
		{"address", req.Street},
		{"unit", req.Unit},
		{"city", req.City},
		{"state", req.State},
		{"zipcode", req.Zip},
	} {
		if p.value != "" {
			params.Set(p.key, p.value)
		}
	}
	return params
}

func (s *PropertyService) translateUpstreamError(err error) error {
	var upErr *repository.UpstreamError
	if !errors.As(err, &upErr) {
		metrics.RecordUpstreamOutcome(metrics.OutcomeTransportError)
		log.Error().Err(err).Msg("HouseCanary request could not be completed")
		return apperrors.Internal(fmt.Errorf("service: failed to fetch property details: %w", err))
	}

	if upErr.StatusCode == http.StatusTooManyRequests {
		metrics.RecordUpstreamOutcome(metrics.OutcomeRateLimited)
		// HouseCanary sends the absolute reset time; callers expect a relative Retry-After.
		if !upErr.HasReset {
			return apperrors.RateLimitedUnknown(upErr)
		}
		return apperrors.RateLimited(upErr.RateLimitReset-s.clock.Now().Unix(), upErr)
	}

	// Any other status means we sent a malformed or mis-authenticated request.
	metrics.RecordUpstreamOutcome(metrics.OutcomeUpstreamError)
	return apperrors.Internal(upErr)
}
