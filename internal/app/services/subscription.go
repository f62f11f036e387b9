package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/pocketlegal/pocketlegal/internal/app/billing"
	"github.com/pocketlegal/pocketlegal/internal/app/entitlement"
	"github.com/pocketlegal/pocketlegal/internal/app/models"
	"github.com/pocketlegal/pocketlegal/internal/app/repositories/users"
	"github.com/pocketlegal/pocketlegal/internal/common"
)

// SubscriptionService owns the subscription status. The payment provider is
// called first and the local status changes only after the provider call
// succeeds, so a provider failure leaves the account exactly as it was.
type SubscriptionService struct {
	userRepo   users.Repository
	provider   billing.PaymentProvider
	reconciler *Reconciler
	now        func() time.Time
}

func NewSubscriptionService(userRepo users.Repository, provider billing.PaymentProvider, reconciler *Reconciler, clock func() time.Time) *SubscriptionService {
	if reconciler == nil {
		reconciler = NewReconciler(ReconcilerOptions{})
	}
	if clock == nil {
		clock = time.Now
	}
	return &SubscriptionService{
		userRepo:   userRepo,
		provider:   provider,
		reconciler: reconciler,
		now:        clock,
	}
}

// CurrentUser loads the account, creating the default identity on first run.
func (s *SubscriptionService) CurrentUser(ctx context.Context, userID string) (*models.UserAccount, error) {
	u, err := s.userRepo.Get(ctx, userID)
	if err == nil {
		return u, nil
	}
	if !errors.Is(err, common.ErrNotFound) {
		return nil, err
	}

	u = models.DemoUser(s.now())
	u.UserID = userID
	if err := s.userRepo.Save(ctx, u); err != nil {
		return nil, fmt.Errorf("saving error: %w", err)
	}
	s.reconciler.Enqueue(Job{Kind: JobUpsertUser, User: cloneUser(u)})
	return u, nil
}

// Upgrade starts a premium subscription. Already-premium accounts are
// rejected without touching the provider.
func (s *SubscriptionService) Upgrade(ctx context.Context, userID string) (*billing.CheckoutSession, error) {
	u, err := s.userRepo.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if entitlement.HasPremiumAccess(u.Status) {
		return nil, fmt.Errorf("%w: subscription already active", common.ErrSubscriptionOperation)
	}

	session, err := s.provider.CreateCheckout(ctx, u.UserID, u.Email)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrSubscriptionOperation, err)
	}

	u.Status = models.StatusActive
	u.CustomerID = session.CustomerID
	u.SubscriptionID = session.SubscriptionID
	u.UpdatedAt = s.now().UTC()

	if err := s.userRepo.Save(ctx, u); err != nil {
		return nil, fmt.Errorf("saving error: %w", err)
	}

	s.reconciler.Enqueue(Job{Kind: JobUpsertUser, User: cloneUser(u)})
	return session, nil
}

// Cancel ends the subscription. The account keeps its billing identifiers
// for history but drops to the limited tier.
func (s *SubscriptionService) Cancel(ctx context.Context, userID string) error {
	u, err := s.userRepo.Get(ctx, userID)
	if err != nil {
		return err
	}
	if !entitlement.HasPremiumAccess(u.Status) || u.SubscriptionID == "" {
		return fmt.Errorf("%w: no active subscription", common.ErrSubscriptionOperation)
	}

	if err := s.provider.Cancel(ctx, u.SubscriptionID); err != nil {
		return fmt.Errorf("%w: %v", common.ErrSubscriptionOperation, err)
	}

	u.Status = models.StatusCanceled
	u.UpdatedAt = s.now().UTC()

	if err := s.userRepo.Save(ctx, u); err != nil {
		return fmt.Errorf("saving error: %w", err)
	}

	s.reconciler.Enqueue(Job{Kind: JobUpsertUser, User: cloneUser(u)})
	return nil
}

func cloneUser(u *models.UserAccount) *models.UserAccount {
	cp := *u
	return &cp
}
