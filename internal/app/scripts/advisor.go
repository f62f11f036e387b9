package scripts

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/pocketlegal/pocketlegal/internal/app/entitlement"
	"github.com/pocketlegal/pocketlegal/internal/app/models"
	"github.com/pocketlegal/pocketlegal/internal/app/report"
	"github.com/pocketlegal/pocketlegal/internal/common"
	"github.com/pocketlegal/pocketlegal/internal/logging"
)

// Advisor gates AI generation on entitlement and guarantees a usable script
// set regardless of provider health.
type Advisor struct {
	provider Provider
	rep      report.Reporter
	log      logging.Logger
	now      func() time.Time
}

// AdvisorOptions configures an Advisor. Provider may be nil; without one the
// advisor serves the static catalog to everyone.
type AdvisorOptions struct {
	Provider Provider
	Reporter report.Reporter
	Logger   logging.Logger
	Clock    func() time.Time
}

func NewAdvisor(opts AdvisorOptions) *Advisor {
	if opts.Reporter == nil {
		opts.Reporter = report.Discard{}
	}
	if opts.Logger == nil {
		opts.Logger = logging.NewSlogLogger(slog.New(slog.DiscardHandler))
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	return &Advisor{
		provider: opts.Provider,
		rep:      opts.Reporter,
		log:      opts.Logger,
		now:      opts.Clock,
	}
}

// Advise returns scripts for the scenario. Free accounts and provider
// failures both resolve to the static catalog; Advise itself never fails.
func (a *Advisor) Advise(ctx context.Context, user *models.UserAccount, req Request) *Advice {
	if req.Language == "" && user != nil {
		req.Language = user.PreferredLanguage
	}

	if user == nil || !entitlement.HasPremiumAccess(user.Status) || a.provider == nil {
		return StaticAdvice(req.Scenario, req.Language, a.now())
	}

	advice, err := a.provider.Generate(ctx, req)
	if err != nil {
		a.rep.Report(report.Event{
			Op:  "scripts.generate",
			Err: fmt.Errorf("%w: %v", common.ErrRemoteSync, err),
		})
		a.log.Warn(ctx, "script generation failed, serving static catalog", "error", err)
		return StaticAdvice(req.Scenario, req.Language, a.now())
	}
	if len(advice.Scripts) == 0 {
		return StaticAdvice(req.Scenario, req.Language, a.now())
	}
	return advice
}
