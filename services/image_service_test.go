package services

import (
	"context"
	"net/http"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestImageService(t *testing.T, handler http.HandlerFunc) *ImageService {
	t.Helper()
	client, _ := newTestClient(t, handler)
	svc := NewImageService(client, testLogger())
	svc.RetryInterval = time.Millisecond
	return svc
}

func TestSplitPhone(t *testing.T) {
	cc, num := SplitPhone("91", "9876543210")
	assert.Equal(t, "91", cc)
	assert.Equal(t, "9876543210", num)

	// Longer than ten digits: trailing ten are the local number and the
	// leading digits override the given country code.
	cc, num = SplitPhone("1", "919876543210")
	assert.Equal(t, "91", cc)
	assert.Equal(t, "9876543210", num)

	cc, num = SplitPhone("", "9876543210")
	assert.Equal(t, "91", cc)

	cc, num = SplitPhone("44", "7700900123")
	assert.Equal(t, "44", cc)
	assert.Equal(t, "7700900123", num)
}

func TestImageFetch(t *testing.T) {
	var gotCC, gotNum string
	svc := newTestImageService(t, func(w http.ResponseWriter, r *http.Request) {
		gotCC = r.URL.Query().Get("phoneCountryCode")
		gotNum = r.URL.Query().Get("phoneno")
		w.Write([]byte(`{"image":"aGVsbG8=","contentType":"image/png"}`))
	})

	img, err := svc.Fetch(context.Background(), "91", "9876543210")
	require.NoError(t, err)
	assert.Equal(t, "data:image/png;base64,aGVsbG8=", img)
	assert.Equal(t, "91", gotCC)
	assert.Equal(t, "9876543210", gotNum)
}

func TestImageFetchDefaultsContentType(t *testing.T) {
	svc := newTestImageService(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"image":"aGVsbG8="}`))
	})

	img, err := svc.Fetch(context.Background(), "91", "9876543210")
	require.NoError(t, err)
	assert.Equal(t, "data:image/jpeg;base64,aGVsbG8=", img)
}

func TestImageFetchEmptyImageNoError(t *testing.T) {
	svc := newTestImageService(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"image":""}`))
	})

	img, err := svc.Fetch(context.Background(), "91", "9876543210")
	require.NoError(t, err)
	assert.Equal(t, "", img)
}

func TestImageFetchEmptyNumberSkipsRequest(t *testing.T) {
	called := false
	svc := newTestImageService(t, func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	img, err := svc.Fetch(context.Background(), "91", "")
	require.NoError(t, err)
	assert.Equal(t, "", img)
	assert.False(t, called)
}

func TestImageFetchWithRetryRecovers(t *testing.T) {
	var attempts atomic.Int32
	svc := newTestImageService(t, func(w http.ResponseWriter, r *http.Request) {
		if attempts.Add(1) == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte(`{"image":"aGVsbG8="}`))
	})

	img := svc.FetchWithRetry(context.Background(), "91", "9876543210")
	assert.Equal(t, "data:image/jpeg;base64,aGVsbG8=", img)
	assert.Equal(t, int32(2), attempts.Load())
}

func TestImageFetchWithRetryTreatsEmptyAsFailure(t *testing.T) {
	var attempts atomic.Int32
	svc := newTestImageService(t, func(w http.ResponseWriter, r *http.Request) {
		if attempts.Add(1) < 3 {
			w.Write([]byte(`{"image":""}`))
			return
		}
		w.Write([]byte(`{"image":"aGVsbG8="}`))
	})

	img := svc.FetchWithRetry(context.Background(), "91", "9876543210")
	assert.Equal(t, "data:image/jpeg;base64,aGVsbG8=", img)
	assert.Equal(t, int32(3), attempts.Load())
}

func TestImageFetchWithRetryExhaustionReturnsEmpty(t *testing.T) {
	var attempts atomic.Int32
	svc := newTestImageService(t, func(w http.ResponseWriter, r *http.Request) {
		attempts.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	})

	img := svc.FetchWithRetry(context.Background(), "91", "9876543210")
	assert.Equal(t, "", img)
	// One initial attempt plus MaxRetries retries.
	assert.Equal(t, int32(3), attempts.Load())
}
