package billing

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// DefaultRequestTimeout bounds one provider call.
const DefaultRequestTimeout = 30 * time.Second

// HTTPProvider implements PaymentProvider against a Stripe-style REST API
// with form-encoded requests and bearer authentication.
type HTTPProvider struct {
	baseURL string
	apiKey  string
	priceID string
	client  *http.Client
}

// NewHTTPProvider builds a provider for the given API endpoint. priceID
// selects the premium subscription plan.
func NewHTTPProvider(baseURL, apiKey, priceID string) *HTTPProvider {
	return &HTTPProvider{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		priceID: priceID,
		client:  &http.Client{Timeout: DefaultRequestTimeout},
	}
}

func (p *HTTPProvider) CreateCheckout(ctx context.Context, userID, email string) (*CheckoutSession, error) {
	form := url.Values{}
	form.Set("mode", "subscription")
	form.Set("client_reference_id", userID)
	form.Set("customer_email", email)
	form.Set("line_items[0][price]", p.priceID)
	form.Set("line_items[0][quantity]", "1")

	body, err := p.do(ctx, http.MethodPost, "/v1/checkout/sessions", form)
	if err != nil {
		return nil, err
	}

	var session CheckoutSession
	if err := json.Unmarshal(body, &session); err != nil {
		return nil, fmt.Errorf("failed to decode checkout session: %w", err)
	}
	if session.SessionID == "" {
		return nil, fmt.Errorf("checkout session response missing id")
	}
	return &session, nil
}

func (p *HTTPProvider) Cancel(ctx context.Context, subscriptionID string) error {
	_, err := p.do(ctx, http.MethodDelete, "/v1/subscriptions/"+url.PathEscape(subscriptionID), nil)
	return err
}

func (p *HTTPProvider) do(ctx context.Context, method, path string, form url.Values) ([]byte, error) {
	var reqBody io.Reader
	if form != nil {
		reqBody = strings.NewReader(form.Encode())
	}

	req, err := http.NewRequestWithContext(ctx, method, p.baseURL+path, reqBody)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+p.apiKey)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("provider request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read provider response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("provider returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	return body, nil
}
