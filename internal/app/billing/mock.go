package billing

import (
	"context"
	"fmt"
	"sync"

	"github.com/pocketlegal/pocketlegal/internal/common"
)

// MockProvider is an in-process PaymentProvider for development and tests.
// Checkouts always succeed and cancellations only accept subscriptions the
// mock created.
type MockProvider struct {
	mu     sync.Mutex
	serial int
	active map[string]bool

	// FailCheckout and FailCancel force the next call of that kind to fail.
	FailCheckout bool
	FailCancel   bool
}

func NewMockProvider() *MockProvider {
	return &MockProvider{active: make(map[string]bool)}
}

func (m *MockProvider) CreateCheckout(ctx context.Context, userID, email string) (*CheckoutSession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.FailCheckout {
		return nil, fmt.Errorf("mock checkout failure: %w", common.ErrSubscriptionOperation)
	}

	m.serial++
	subID := fmt.Sprintf("sub_mock_%d", m.serial)
	m.active[subID] = true

	return &CheckoutSession{
		SessionID:      fmt.Sprintf("cs_mock_%d", m.serial),
		URL:            fmt.Sprintf("https://checkout.example.com/pay/cs_mock_%d", m.serial),
		CustomerID:     "cus_mock_" + userID,
		SubscriptionID: subID,
	}, nil
}

func (m *MockProvider) Cancel(ctx context.Context, subscriptionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.FailCancel {
		return fmt.Errorf("mock cancel failure: %w", common.ErrSubscriptionOperation)
	}
	if !m.active[subscriptionID] {
		return fmt.Errorf("unknown subscription %s: %w", subscriptionID, common.ErrNotFound)
	}
	delete(m.active, subscriptionID)
	return nil
}
