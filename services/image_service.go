package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"
)

const imageFetchTimeout = 10 * time.Second

// errNoImage marks an attempt that completed but carried no image payload;
// it is retried like a failure.
var errNoImage = errors.New("no image in response")

// ImageService retrieves guest identity photos keyed by phone number, with
// bounded exponential-backoff retry.
type ImageService struct {
	Client *APIClient

	// MaxRetries is the number of retries after the first attempt.
	MaxRetries uint64
	// RetryInterval is the first backoff wait; each retry doubles it.
	// Tests shrink this.
	RetryInterval time.Duration

	log *zap.SugaredLogger
}

func NewImageService(client *APIClient, log *zap.SugaredLogger) *ImageService {
	return &ImageService{
		Client:        client,
		MaxRetries:    2,
		RetryInterval: time.Second,
		log:           log,
	}
}

// SplitPhone normalizes a phone pair for image lookup. Numbers longer than
// ten digits have their trailing ten digits taken as the local number and the
// leading digits override the given country code. Every image lookup goes
// through here so keying stays consistent.
func SplitPhone(countryCode, number string) (string, string) {
	if len(number) > 10 {
		prefix := number[:len(number)-10]
		if prefix != "" {
			countryCode = prefix
		}
		number = number[len(number)-10:]
	}
	if countryCode == "" {
		countryCode = "91"
	}
	return countryCode, number
}

type imageResponse struct {
	Image       string `json:"image"`
	ContentType string `json:"contentType"`
}

// Fetch performs one image lookup. A response without an image yields an
// empty data URL and no error.
func (s *ImageService) Fetch(ctx context.Context, countryCode, number string) (string, error) {
	countryCode, number = SplitPhone(countryCode, number)
	if number == "" {
		return "", nil
	}

	ctx, cancel := context.WithTimeout(ctx, imageFetchTimeout)
	defer cancel()

	query := url.Values{}
	query.Set("phoneCountryCode", countryCode)
	query.Set("phoneno", number)

	body, status, err := s.Client.Do(ctx, http.MethodGet, EndpointGuestAadhaarImage, query, nil, "")
	if err != nil {
		return "", err
	}
	if status < 200 || status >= 300 {
		return "", fmt.Errorf("image endpoint returned %d", status)
	}

	var resp imageResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("decode image response: %w", err)
	}
	if resp.Image == "" {
		return "", nil
	}

	contentType := resp.ContentType
	if contentType == "" {
		contentType = "image/jpeg"
	}
	return "data:" + contentType + ";base64," + resp.Image, nil
}

// FetchWithRetry wraps Fetch with exponential backoff (1s, 2s, ... between
// attempts). It returns the first non-empty result; after exhausting retries
// it returns "" and logs the last error — image lookups never fail a caller.
func (s *ImageService) FetchWithRetry(ctx context.Context, countryCode, number string) string {
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = s.RetryInterval
	bo.Multiplier = 2
	bo.RandomizationFactor = 0
	bo.MaxInterval = 10 * time.Minute

	dataURL, err := backoff.RetryWithData(func() (string, error) {
		img, err := s.Fetch(ctx, countryCode, number)
		if err != nil {
			return "", err
		}
		if img == "" {
			return "", errNoImage
		}
		return img, nil
	}, backoff.WithContext(backoff.WithMaxRetries(bo, s.MaxRetries), ctx))

	if err != nil {
		s.log.Warnw("guest image fetch exhausted retries",
			"country_code", countryCode, "error", err)
		return ""
	}
	return dataURL
}
