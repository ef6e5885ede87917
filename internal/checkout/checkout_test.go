package checkout

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"math"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v76"
)

type fakeCreator struct {
	calls []SessionRequest
	url   string
	err   error
}

func (f *fakeCreator) CreateCheckoutSession(_ context.Context, req SessionRequest) (string, error) {
	f.calls = append(f.calls, req)
	return f.url, f.err
}

func newTestService(creator SessionCreator) *Service {
	return NewService(creator, Options{
		SuccessURL: "http://localhost:3000/success",
		CancelURL:  "http://localhost:3000/cancel",
	}, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestCreateSession_BuildsSingleLineItem(t *testing.T) {
	creator := &fakeCreator{url: "https://pay.example.com/s/1"}
	svc := newTestService(creator)

	got, err := svc.CreateSession(context.Background(), "Book", 19.99)
	require.NoError(t, err)
	assert.Equal(t, "https://pay.example.com/s/1", got)

	require.Len(t, creator.calls, 1)
	req := creator.calls[0]
	assert.Equal(t, "http://localhost:3000/success", req.SuccessURL)
	assert.Equal(t, "http://localhost:3000/cancel", req.CancelURL)
	assert.Equal(t, []LineItem{{Name: "Book", Currency: "usd", UnitAmount: 1999, Quantity: 1}}, req.LineItems)
}

func TestCreateSession_RejectsBeforeRemoteCall(t *testing.T) {
	cases := map[string]struct {
		title string
		price float64
	}{
		"zero price":     {"Book", 0},
		"negative price": {"Book", -5},
		"empty title":    {"", 10},
		"blank title":    {"   ", 10},
		"rounds to zero": {"Book", 0.001},
		"not a number":   {"Book", math.NaN()},
		"infinite price": {"Book", math.Inf(1)},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			creator := &fakeCreator{url: "https://pay.example.com"}
			_, err := newTestService(creator).CreateSession(context.Background(), tc.title, tc.price)
			assert.ErrorIs(t, err, ErrInvalidInput)
			assert.Empty(t, creator.calls)
		})
	}
}

func TestCreateSession_ProcessorError(t *testing.T) {
	creator := &fakeCreator{err: errors.New("card declined")}

	_, err := newTestService(creator).CreateSession(context.Background(), "Book", 5)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "card declined")
}

func TestCreateSession_EmptyURL(t *testing.T) {
	_, err := newTestService(&fakeCreator{}).CreateSession(context.Background(), "Book", 5)
	assert.Error(t, err)
}

func TestUnitAmount(t *testing.T) {
	cases := []struct {
		price float64
		want  int64
	}{
		{19.99, 1999},
		{0.01, 1},
		{1.005, 100},
		{0.005, 1},
		{12, 1200},
	}
	for _, tc := range cases {
		got, err := UnitAmount(tc.price)
		require.NoError(t, err, "price %v", tc.price)
		assert.Equal(t, tc.want, got, "price %v", tc.price)
	}
}

func TestStripeSessionCreator_SendsLineItem(t *testing.T) {
	var form url.Values
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/checkout/sessions", r.URL.Path)
		assert.NoError(t, r.ParseForm())
		form = r.PostForm
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"id":"cs_test_1","object":"checkout.session","url":"https://checkout.stripe.com/c/pay/cs_test_1"}`)
	}))
	defer ts.Close()

	backend := stripe.GetBackendWithConfig(stripe.APIBackend, &stripe.BackendConfig{
		URL:               stripe.String(ts.URL),
		HTTPClient:        ts.Client(),
		MaxNetworkRetries: stripe.Int64(0),
	})
	creator := NewStripeSessionCreator("sk_test_123", &stripe.Backends{API: backend, Connect: backend, Uploads: backend})

	got, err := creator.CreateCheckoutSession(context.Background(), SessionRequest{
		LineItems:  []LineItem{{Name: "Book", Currency: "usd", UnitAmount: 1999, Quantity: 1}},
		SuccessURL: "http://localhost:3000/success",
		CancelURL:  "http://localhost:3000/cancel",
	})
	require.NoError(t, err)
	assert.Equal(t, "https://checkout.stripe.com/c/pay/cs_test_1", got)

	assert.Equal(t, "payment", form.Get("mode"))
	assert.Equal(t, "card", form.Get("payment_method_types[0]"))
	assert.Equal(t, "1999", form.Get("line_items[0][price_data][unit_amount]"))
	assert.Equal(t, "usd", form.Get("line_items[0][price_data][currency]"))
	assert.Equal(t, "Book", form.Get("line_items[0][price_data][product_data][name]"))
	assert.Equal(t, "1", form.Get("line_items[0][quantity]"))
	assert.Equal(t, "http://localhost:3000/success", form.Get("success_url"))
}
