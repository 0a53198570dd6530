package services

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"go.uber.org/zap"

	"guestdesk-backend/models"
	"guestdesk-backend/utils"
)

// guestFetchTimeout bounds the guest-list request; it is the slowest
// upstream call the panel makes.
const guestFetchTimeout = 15 * time.Second

// GuestDetailsService fetches and normalizes the booking guest list.
type GuestDetailsService struct {
	Client *APIClient

	log *zap.SugaredLogger
}

func NewGuestDetailsService(client *APIClient, log *zap.SugaredLogger) *GuestDetailsService {
	return &GuestDetailsService{Client: client, log: log}
}

// Fetch loads the full guest list for the acting session and transforms it
// to canonical records. Failures come back as *models.FetchError with the
// fixed user-facing messages.
func (s *GuestDetailsService) Fetch(ctx context.Context, sessionID string) ([]models.CanonicalGuest, error) {
	ctx, cancel := context.WithTimeout(ctx, guestFetchTimeout)
	defer cancel()

	body, status, err := s.Client.Do(ctx, http.MethodGet, EndpointBookingGuestDetails, nil, nil, sessionID)
	if err != nil {
		s.log.Warnw("guest details fetch failed", "error", err)
		if IsTimeoutError(err) {
			return nil, models.NewFetchError(models.ErrCodeTimeout, "Request timed out. Please try again.")
		}
		return nil, models.NewFetchError(models.ErrCodeNetwork, "Network error. Please check your connection.")
	}

	switch {
	case status == http.StatusNotFound:
		return nil, models.NewFetchError(models.ErrCodeNotFound, "No guest details found")
	case status == http.StatusUnauthorized:
		return nil, models.NewFetchError(models.ErrCodeUnauthorized, "Please login again to continue")
	case status == http.StatusForbidden:
		return nil, models.NewFetchError(models.ErrCodeForbidden, "You don't have permission to access guest details")
	case status < 200 || status >= 300:
		msg := UpstreamMessage(body)
		if msg == "" {
			msg = "Failed to fetch guest details. Please try again."
		}
		return nil, models.NewFetchError(models.ErrCodeUnknown, msg)
	}

	raws := decodeGuestPayload(body)
	guests := utils.TransformGuests(raws)
	s.log.Infow("guest details fetched", "raw", len(raws), "transformed", len(guests))
	return guests, nil
}

// decodeGuestPayload accepts either an array of records or a single record,
// wrapping the latter — the upstream does both. A body that is neither
// decodes to an empty list.
func decodeGuestPayload(body []byte) []*models.RawGuestRecord {
	var raws []*models.RawGuestRecord
	if err := json.Unmarshal(body, &raws); err == nil {
		return raws
	}
	var single models.RawGuestRecord
	if err := json.Unmarshal(body, &single); err == nil {
		return []*models.RawGuestRecord{&single}
	}
	return nil
}

// FetchBookings projects the same payload into booking rows for the
// bookings table.
func (s *GuestDetailsService) FetchBookings(ctx context.Context, sessionID string, filter models.BookingFilter) ([]models.BookingSummary, error) {
	ctx, cancel := context.WithTimeout(ctx, guestFetchTimeout)
	defer cancel()

	body, status, err := s.Client.Do(ctx, http.MethodGet, EndpointBookingGuestDetails, nil, nil, sessionID)
	if err != nil {
		if IsTimeoutError(err) {
			return nil, models.NewFetchError(models.ErrCodeTimeout, "Request timed out. Please try again.")
		}
		return nil, models.NewFetchError(models.ErrCodeNetwork, "Network error. Please check your connection.")
	}
	if status < 200 || status >= 300 {
		msg := UpstreamMessage(body)
		if msg == "" {
			msg = "Failed to fetch bookings. Please try again."
		}
		return nil, models.NewFetchError(models.ErrCodeUnknown, msg)
	}

	var raws []models.RawBooking
	if err := json.Unmarshal(body, &raws); err != nil {
		var single models.RawBooking
		if err := json.Unmarshal(body, &single); err != nil {
			return nil, models.NewFetchError(models.ErrCodeUnknown, "Failed to fetch bookings. Please try again.")
		}
		raws = []models.RawBooking{single}
	}

	return utils.FilterBookings(utils.NormalizeBookings(raws), filter), nil
}
