package server

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hongminglow/bookshop-be/internal/checkout"
	"github.com/hongminglow/bookshop-be/internal/config"
	"github.com/hongminglow/bookshop-be/internal/middleware"
	"github.com/hongminglow/bookshop-be/internal/storage/file"
)

type stubCreator struct{}

func (stubCreator) CreateCheckoutSession(context.Context, checkout.SessionRequest) (string, error) {
	return "https://checkout.example.com/s/1", nil
}

func TestServerRoutes(t *testing.T) {
	store, err := file.NewUserStore(context.Background(), filepath.Join(t.TempDir(), "users.json"))
	require.NoError(t, err)

	cfg := config.Config{
		Port:               "0",
		JWTSecret:          "server-secret",
		JWTIssuer:          "server-test",
		JWTTTL:             time.Hour,
		BcryptCost:         4,
		CORSOrigins:        []string{"*"},
		CheckoutCurrency:   "usd",
		CheckoutSuccessURL: "http://localhost:3000/success",
		CheckoutCancelURL:  "http://localhost:3000/cancel",
	}
	srv := New(cfg, store, stubCreator{}, slog.New(slog.NewTextHandler(io.Discard, nil)))
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	cases := []struct {
		path   string
		body   string
		status int
	}{
		{"/register", `{"email":"s@example.com","password":"pw"}`, http.StatusOK},
		{"/login", `{"email":"s@example.com","password":"pw"}`, http.StatusOK},
		{"/create-checkout-session", `{"title":"Book","price":19.99}`, http.StatusOK},
	}
	for _, tc := range cases {
		req, err := http.NewRequest(http.MethodPost, ts.URL+tc.path, bytes.NewBufferString(tc.body))
		require.NoError(t, err)
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Origin", "https://shop.example")

		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		resp.Body.Close()

		assert.Equal(t, tc.status, resp.StatusCode, tc.path)
		assert.NotEmpty(t, resp.Header.Get(middleware.HeaderXRequestID), tc.path)
		assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"), tc.path)
	}

	resp, err := http.Get(ts.URL + "/health")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
