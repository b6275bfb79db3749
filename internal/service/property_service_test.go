package service

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"testing"
	"time"

	"septic-canary/internal/apperrors"
	"septic-canary/internal/models"
	"septic-canary/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockPropertyRepository is a mock implementation of the PropertyRepository interface
type MockPropertyRepository struct {
	mock.Mock
}

func (m *MockPropertyRepository) FetchPropertyDetails(ctx context.Context, params url.Values) (*models.PropertyRecord, error) {
	args := m.Called(ctx, params)
	record, _ := args.Get(0).(*models.PropertyRecord)
	return record, args.Error(1)
}

type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time { return c.now }

func TestPropertyService_LookupPropertyDetails(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)

	tests := []struct {
		name           string
		request        models.LookupRequest
		expectCall     bool
		expectedParams url.Values
		mockRecord     *models.PropertyRecord
		mockError      error
		expected       *models.PropertyDetails
		expectedCode   string
		expectedRetry  int64
		expectRetry    bool
	}{
		{
			name:         "missing street",
			request:      models.LookupRequest{Zip: "98765"},
			expectedCode: apperrors.CodeInvalidRequest,
		},
		{
			name:         "missing zip and state",
			request:      models.LookupRequest{Street: "123 Street", City: "Big"},
			expectedCode: apperrors.CodeInvalidRequest,
		},
		{
			name:         "missing zip and city",
			request:      models.LookupRequest{Street: "123 Street", State: "MA"},
			expectedCode: apperrors.CodeInvalidRequest,
		},
		{
			name:           "septic by zip",
			request:        models.LookupRequest{Street: "123 Street", Zip: "98765"},
			expectCall:     true,
			expectedParams: url.Values{"address": {"123 Street"}, "zipcode": {"98765"}},
			mockRecord:     &models.PropertyRecord{AddressMatched: true, Sewer: "Septic", HasSewer: true},
			expected:       &models.PropertyDetails{HasSepticSystem: true},
		},
		{
			name:           "septic by unit, city and state",
			request:        models.LookupRequest{Street: "123 Street", Unit: "10f", City: "Big", State: "MA"},
			expectCall:     true,
			expectedParams: url.Values{"address": {"123 Street"}, "unit": {"10f"}, "city": {"Big"}, "state": {"MA"}},
			mockRecord:     &models.PropertyRecord{AddressMatched: true, Sewer: "SEPTIC", HasSewer: true},
			expected:       &models.PropertyDetails{HasSepticSystem: true},
		},
		{
			name:           "municipal sewer",
			request:        models.LookupRequest{Street: "123 Street", Zip: "98765"},
			expectCall:     true,
			expectedParams: url.Values{"address": {"123 Street"}, "zipcode": {"98765"}},
			mockRecord:     &models.PropertyRecord{AddressMatched: true, Sewer: "Yes", HasSewer: true},
			expected:       &models.PropertyDetails{HasSepticSystem: false},
		},
		{
			name:           "septic-adjacent value is not septic",
			request:        models.LookupRequest{Street: "123 Street", Zip: "98765"},
			expectCall:     true,
			expectedParams: url.Values{"address": {"123 Street"}, "zipcode": {"98765"}},
			mockRecord:     &models.PropertyRecord{AddressMatched: true, Sewer: "Septic Tank", HasSewer: true},
			expected:       &models.PropertyDetails{HasSepticSystem: false},
		},
		{
			name:           "sewer field absent",
			request:        models.LookupRequest{Street: "123 Street", Zip: "98765"},
			expectCall:     true,
			expectedParams: url.Values{"address": {"123 Street"}, "zipcode": {"98765"}},
			mockRecord:     &models.PropertyRecord{AddressMatched: true},
			expected:       &models.PropertyDetails{HasSepticSystem: false},
		},
		{
			name:           "address not matched",
			request:        models.LookupRequest{Street: "123 Street", Zip: "98765"},
			expectCall:     true,
			expectedParams: url.Values{"address": {"123 Street"}, "zipcode": {"98765"}},
			mockRecord:     &models.PropertyRecord{AddressMatched: false, Sewer: "Septic", HasSewer: true},
			expectedCode:   apperrors.CodeNotFound,
		},
		{
			name:           "api_code reported inside 200",
			request:        models.LookupRequest{Street: "123 Street", Zip: "98765"},
			expectCall:     true,
			expectedParams: url.Values{"address": {"123 Street"}, "zipcode": {"98765"}},
			mockRecord:     &models.PropertyRecord{AddressMatched: true, APICode: 204, Sewer: "Septic", HasSewer: true},
			expectedCode:   apperrors.CodeInternal,
		},
		{
			name:           "upstream rate limited",
			request:        models.LookupRequest{Street: "123 Street", Zip: "98765"},
			expectCall:     true,
			expectedParams: url.Values{"address": {"123 Street"}, "zipcode": {"98765"}},
			mockError:      &repository.UpstreamError{StatusCode: http.StatusTooManyRequests, RateLimitReset: now.Unix() + 1000, HasReset: true},
			expectedCode:   apperrors.CodeRateLimited,
			expectedRetry:  1000,
			expectRetry:    true,
		},
		{
			name:           "upstream rate limited without reset header",
			request:        models.LookupRequest{Street: "123 Street", Zip: "98765"},
			expectCall:     true,
			expectedParams: url.Values{"address": {"123 Street"}, "zipcode": {"98765"}},
			mockError:      &repository.UpstreamError{StatusCode: http.StatusTooManyRequests},
			expectedCode:   apperrors.CodeRateLimited,
		},
		{
			name:           "upstream rejected our credentials",
			request:        models.LookupRequest{Street: "123 Street", Zip: "98765"},
			expectCall:     true,
			expectedParams: url.Values{"address": {"123 Street"}, "zipcode": {"98765"}},
			mockError:      &repository.UpstreamError{StatusCode: http.StatusUnauthorized, Body: []byte(`{"message":"Authentication Failed"}`)},
			expectedCode:   apperrors.CodeInternal,
		},
		{
			name:           "upstream rejected malformed request",
			request:        models.LookupRequest{Street: "123 Street", Zip: "98765"},
			expectCall:     true,
			expectedParams: url.Values{"address": {"123 Street"}, "zipcode": {"98765"}},
			mockError:      &repository.UpstreamError{StatusCode: http.StatusBadRequest},
			expectedCode:   apperrors.CodeInternal,
		},
		{
			name:           "transport error",
			request:        models.LookupRequest{Street: "123 Street", Zip: "98765"},
			expectCall:     true,
			expectedParams: url.Values{"address": {"123 Street"}, "zipcode": {"98765"}},
			mockError:      assert.AnError,
			expectedCode:   apperrors.CodeInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Setup
			mockRepo := new(MockPropertyRepository)
			service := NewPropertyService(mockRepo, fixedClock{now: now})

			if tt.expectCall {
				mockRepo.On("FetchPropertyDetails", mock.Anything, tt.expectedParams).Return(tt.mockRecord, tt.mockError)
			}

			// Execute
			result, err := service.LookupPropertyDetails(context.Background(), tt.request)

			// Assert
			if tt.expectedCode != "" {
				require.Error(t, err)
				assert.Nil(t, result)

				var appErr *apperrors.AppError
				require.True(t, errors.As(err, &appErr))
				assert.Equal(t, tt.expectedCode, appErr.Code)
				assert.Equal(t, tt.expectRetry, appErr.HasRetryAfter)
				assert.Equal(t, tt.expectedRetry, appErr.RetryAfter)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.expected, result)
			}

			if tt.expectCall {
				mockRepo.AssertExpectations(t)
			} else {
				mockRepo.AssertNotCalled(t, "FetchPropertyDetails", mock.Anything, mock.Anything)
			}
		})
	}
}

func TestPropertyService_InternalErrorHidesUpstreamDetail(t *testing.T) {
	mockRepo := new(MockPropertyRepository)
	mockRepo.On("FetchPropertyDetails", mock.Anything, mock.Anything).
		Return(nil, &repository.UpstreamError{StatusCode: http.StatusUnauthorized, Body: []byte(`{"message":"Authentication Failed"}`)})

	_, err := NewPropertyService(mockRepo, nil).LookupPropertyDetails(context.Background(),
		models.LookupRequest{Street: "123 Street", Zip: "98765"})

	appErr := apperrors.From(err)
	assert.Equal(t, apperrors.MsgInternal, appErr.Message)
	assert.NotContains(t, appErr.Message, "Authentication Failed")
}

func TestPropertyService_RetryAfterInPastIsClamped(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	mockRepo := new(MockPropertyRepository)
	mockRepo.On("FetchPropertyDetails", mock.Anything, mock.Anything).
		Return(nil, &repository.UpstreamError{StatusCode: http.StatusTooManyRequests, RateLimitReset: now.Unix() - 5, HasReset: true})

	_, err := NewPropertyService(mockRepo, fixedClock{now: now}).LookupPropertyDetails(context.Background(),
		models.LookupRequest{Street: "123 Street", Zip: "98765"})

	appErr := apperrors.From(err)
	assert.Equal(t, apperrors.CodeRateLimited, appErr.Code)
	assert.Equal(t, int64(0), appErr.RetryAfter)
}

func TestBuildLookupParams(t *testing.T) {
	tests := []struct {
		name     string
		request  models.LookupRequest
		expected url.Values
	}{
		{
			name:     "street and zip",
			request:  models.LookupRequest{Street: "123 Street", Zip: "98765"},
			expected: url.Values{"address": {"123 Street"}, "zipcode": {"98765"}},
		},
		{
			name:     "all fields",
			request:  models.LookupRequest{Street: "1 Main", Unit: "2", City: "Big", State: "MA", Zip: "01234"},
			expected: url.Values{"address": {"1 Main"}, "unit": {"2"}, "city": {"Big"}, "state": {"MA"}, "zipcode": {"01234"}},
		},
		{
			name:     "empty optional fields are omitted",
			request:  models.LookupRequest{Street: "1 Main", Unit: "", City: "Big", State: "MA"},
			expected: url.Values{"address": {"1 Main"}, "city": {"Big"}, "state": {"MA"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			first := BuildLookupParams(tt.request)
			second := BuildLookupParams(tt.request)

			assert.Equal(t, tt.expected, first)
			assert.Equal(t, first.Encode(), second.Encode())
		})
	}
}
