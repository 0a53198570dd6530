package services

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"guestdesk-backend/models"
	"guestdesk-backend/utils"
)

func newTestGuestService(t *testing.T, handler http.HandlerFunc) (*GuestDetailsService, *SessionStore) {
	t.Helper()
	client, store := newTestClient(t, handler)
	return NewGuestDetailsService(client, testLogger()), store
}

func fetchErr(t *testing.T, err error) *models.FetchError {
	t.Helper()
	var fe *models.FetchError
	require.True(t, errors.As(err, &fe), "expected *models.FetchError, got %v", err)
	return fe
}

func TestGuestFetchTransformsArrayPayload(t *testing.T) {
	svc, store := newTestGuestService(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[
			{"fullName":"Rahul Sharma","bookingId":"BK-1","verificationStatus":1,"createdAt":"2024-03-10T10:00:00Z"},
			{"fullName":"Priya Patel","bookingId":"BK-2","verificationStatus":"pending"}
		]`))
	})
	id := seedSession(t, store, "tok")

	guests, err := svc.Fetch(context.Background(), id)
	require.NoError(t, err)
	require.Len(t, guests, 2)
	assert.Equal(t, "Rahul", guests[0].FirstName)
	assert.Equal(t, utils.StatusVerified, guests[0].VerificationStatus)
	assert.Equal(t, utils.StatusPending, guests[1].VerificationStatus)
}

func TestGuestFetchWrapsSingleRecord(t *testing.T) {
	svc, store := newTestGuestService(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"fullName":"Solo Guest","bookingId":"BK-9"}`))
	})
	id := seedSession(t, store, "tok")

	guests, err := svc.Fetch(context.Background(), id)
	require.NoError(t, err)
	require.Len(t, guests, 1)
	assert.Equal(t, "BK-9", guests[0].BookingID)
}

func TestGuestFetchStatusTaxonomy(t *testing.T) {
	cases := []struct {
		status  int
		code    string
		message string
	}{
		{http.StatusNotFound, models.ErrCodeNotFound, "No guest details found"},
		{http.StatusUnauthorized, models.ErrCodeUnauthorized, "Please login again to continue"},
		{http.StatusForbidden, models.ErrCodeForbidden, "You don't have permission to access guest details"},
		{http.StatusInternalServerError, models.ErrCodeUnknown, "Failed to fetch guest details. Please try again."},
	}

	for _, tc := range cases {
		t.Run(http.StatusText(tc.status), func(t *testing.T) {
			svc, store := newTestGuestService(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
			})
			id := seedSession(t, store, "tok")

			_, err := svc.Fetch(context.Background(), id)
			fe := fetchErr(t, err)
			assert.Equal(t, tc.code, fe.Code)
			assert.Equal(t, tc.message, fe.Message)
		})
	}
}

func TestGuestFetchUsesUpstreamErrorMessage(t *testing.T) {
	svc, store := newTestGuestService(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"message":"Property is suspended"}`))
	})
	id := seedSession(t, store, "tok")

	_, err := svc.Fetch(context.Background(), id)
	fe := fetchErr(t, err)
	assert.Equal(t, models.ErrCodeUnknown, fe.Code)
	assert.Equal(t, "Property is suspended", fe.Message)
}

func TestGuestFetchNetworkError(t *testing.T) {
	svc, store := newTestGuestService(t, func(w http.ResponseWriter, r *http.Request) {})
	svc.Client.BaseURL = "http://127.0.0.1:1"
	id := seedSession(t, store, "tok")

	_, err := svc.Fetch(context.Background(), id)
	fe := fetchErr(t, err)
	assert.Equal(t, models.ErrCodeNetwork, fe.Code)
	assert.Equal(t, "Network error. Please check your connection.", fe.Message)
}

func TestGuestFetchTimeout(t *testing.T) {
	slow := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
	}))
	t.Cleanup(slow.Close)

	store := newTestStore()
	client := NewAPIClient(slow.URL, 50*time.Millisecond, store, testLogger())
	svc := NewGuestDetailsService(client, testLogger())
	id := seedSession(t, store, "tok")

	_, err := svc.Fetch(context.Background(), id)
	fe := fetchErr(t, err)
	assert.Equal(t, models.ErrCodeTimeout, fe.Code)
	assert.Equal(t, "Request timed out. Please try again.", fe.Message)
}

func TestGuestFetch401AlsoClearsSession(t *testing.T) {
	svc, store := newTestGuestService(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})
	id := seedSession(t, store, "tok")

	_, err := svc.Fetch(context.Background(), id)
	require.Error(t, err)

	sess, err := store.Get(id)
	require.NoError(t, err)
	assert.Nil(t, sess)
}

func TestFetchBookingsNormalizesAndFilters(t *testing.T) {
	svc, store := newTestGuestService(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[
			{"bookingId":"BK-1","primaryGuestFullName":"Rahul Sharma","phoneCountryCode":"91","phoneNumber":"9876543210","adultsCount":2,"windowStart":"2024-03-10","windowEnd":"2024-03-12"},
			{"bookingId":"BK-2","primaryGuestFullName":"Priya Patel","phoneCountryCode":"91","phoneNumber":"9000000000","adultsCount":1,"windowStart":"2024-03-11"}
		]`))
	})
	id := seedSession(t, store, "tok")

	rows, err := svc.FetchBookings(context.Background(), id, models.BookingFilter{})
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Rahul", rows[0].FirstName)

	rows, err = svc.FetchBookings(context.Background(), id, models.BookingFilter{Status: models.BookingStatusCheckedIn})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "BK-1", rows[0].BookingID)
}
