package nominatim_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"jobboard/pkg/geocoder/nominatim"
	"jobboard/pkg/serrors"

	"github.com/stretchr/testify/require"
)

func TestClient_GeocodeCityState(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/search", r.URL.Path)
		require.Equal(t, "Atlanta, GA, USA", r.URL.Query().Get("q"))
		require.Equal(t, "json", r.URL.Query().Get("format"))
		require.Equal(t, "1", r.URL.Query().Get("limit"))
		require.Equal(t, "jobboard-test/1.0", r.Header.Get("User-Agent"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"lat":"33.7489954","lon":"-84.3879824"}]`))
	}))
	defer srv.Close()

	client := nominatim.New(srv.Client(), srv.URL, "jobboard-test/1.0")

	// spelled-out state is normalized before the query is built
	point, err := client.GeocodeCityState(context.Background(), "Atlanta", "Georgia")
	require.NoError(t, err)
	require.NotNil(t, point)
	require.InDelta(t, 33.7489954, point.Lat, 0.001)
	require.InDelta(t, -84.3879824, point.Lng, 0.001)
}

func TestClient_GeocodeCityState_NoMatch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	client := nominatim.New(srv.Client(), srv.URL, "jobboard-test/1.0")

	point, err := client.GeocodeCityState(context.Background(), "Nowheresville", "ZZ")
	require.NoError(t, err)
	require.Nil(t, point)
}

func TestClient_GeocodeCityState_BlankInput(t *testing.T) {
	client := nominatim.New(http.DefaultClient, "http://unused.invalid", "jobboard-test/1.0")

	point, err := client.GeocodeCityState(context.Background(), "", "GA")
	require.NoError(t, err)
	require.Nil(t, point)
}

func TestClient_GeocodeCityState_RateLimited(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte("slow down"))
	}))
	defer srv.Close()

	client := nominatim.New(srv.Client(), srv.URL, "jobboard-test/1.0")

	_, err := client.GeocodeCityState(context.Background(), "Atlanta", "GA")
	require.Error(t, err)
	require.ErrorIs(t, err, serrors.ErrRateLimited)
}

func TestClient_GeocodeCityState_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := nominatim.New(srv.Client(), srv.URL, "jobboard-test/1.0")

	_, err := client.GeocodeCityState(context.Background(), "Atlanta", "GA")
	require.Error(t, err)
}
