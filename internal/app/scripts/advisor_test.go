package scripts

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pocketlegal/pocketlegal/internal/app/models"
	"github.com/pocketlegal/pocketlegal/internal/app/report"
	"github.com/pocketlegal/pocketlegal/internal/common"
)

type fakeProvider struct {
	advice *Advice
	err    error
	calls  int
}

func (f *fakeProvider) Generate(ctx context.Context, req Request) (*Advice, error) {
	f.calls++
	return f.advice, f.err
}

func premiumUser() *models.UserAccount {
	return &models.UserAccount{UserID: "u1", Status: models.StatusActive, PreferredLanguage: "en"}
}

func freeUser() *models.UserAccount {
	return &models.UserAccount{UserID: "u1", Status: models.StatusFree, PreferredLanguage: "en"}
}

func TestAdvisor_FreeUserGetsStaticWithoutProviderCall(t *testing.T) {
	p := &fakeProvider{advice: &Advice{Scripts: []Script{{Text: "generated"}}}}
	a := NewAdvisor(AdvisorOptions{Provider: p})

	advice := a.Advise(context.Background(), freeUser(), Request{Scenario: models.TypeTrafficStop})

	assert.Equal(t, 0, p.calls)
	assert.False(t, advice.Generated)
	assert.NotEmpty(t, advice.Scripts)
}

func TestAdvisor_PremiumUserGetsGenerated(t *testing.T) {
	p := &fakeProvider{advice: &Advice{
		Scripts:   []Script{{Text: "generated script", Priority: "high"}},
		Generated: true,
	}}
	a := NewAdvisor(AdvisorOptions{Provider: p})

	advice := a.Advise(context.Background(), premiumUser(), Request{Scenario: models.TypeArrest, Region: "Illinois"})

	assert.Equal(t, 1, p.calls)
	assert.True(t, advice.Generated)
	assert.Equal(t, "generated script", advice.Scripts[0].Text)
}

func TestAdvisor_ProviderFailureFallsBackToStatic(t *testing.T) {
	p := &fakeProvider{err: errors.New("rate limited")}
	mon := report.NewMonitor(4)
	a := NewAdvisor(AdvisorOptions{Provider: p, Reporter: mon})

	advice := a.Advise(context.Background(), premiumUser(), Request{Scenario: models.TypeTrafficStop})

	assert.False(t, advice.Generated)
	assert.NotEmpty(t, advice.Scripts)

	events := mon.Drain()
	require.Len(t, events, 1)
	assert.Equal(t, "scripts.generate", events[0].Op)
	assert.ErrorIs(t, events[0].Err, common.ErrRemoteSync)
}

func TestAdvisor_LanguageDefaultsToUserPreference(t *testing.T) {
	a := NewAdvisor(AdvisorOptions{})
	u := freeUser()
	u.PreferredLanguage = "es"

	advice := a.Advise(context.Background(), u, Request{Scenario: models.TypeTrafficStop})

	assert.Equal(t, "es", advice.Language)
	assert.Contains(t, advice.Scripts[0].Text, "silencio")
}

func TestStaticAdvice_UnknownScenarioFallsBack(t *testing.T) {
	now := time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)

	advice := StaticAdvice(models.EncounterType("checkpoint"), "en", now)
	require.NotEmpty(t, advice.Scripts)
	assert.Equal(t, "en", advice.Language)
	assert.Equal(t, now, advice.GeneratedAt)

	advice = StaticAdvice(models.TypeTrafficStop, "fr", now)
	assert.Equal(t, "en", advice.Language)
}

func TestOpenAIProvider_JSONResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		_, _ = w.Write([]byte(`{
			"choices": [{"message": {"role": "assistant", "content":
				"{\"scripts\": [{\"text\": \"I wish to remain silent.\", \"usage\": \"Anytime\", \"priority\": \"high\"}], \"guidance\": \"Stay calm.\", \"stateSpecific\": \"Illinois is a two-party consent state.\"}"
			}}]
		}`))
	}))
	defer srv.Close()

	p := NewOpenAIProvider(srv.URL, "test-key", "gpt-4o-mini")

	advice, err := p.Generate(context.Background(), Request{
		Scenario: models.TypeTrafficStop,
		Region:   "Illinois",
		Language: "en",
	})
	require.NoError(t, err)
	require.Len(t, advice.Scripts, 1)
	assert.Equal(t, "I wish to remain silent.", advice.Scripts[0].Text)
	assert.Equal(t, "Stay calm.", advice.Guidance)
	assert.True(t, advice.Generated)
}

func TestOpenAIProvider_PlainTextSalvage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{
			"choices": [{"message": {"role": "assistant", "content":
				"Here are some scripts:\n- I am exercising my right to remain silent.\n- I do not consent to any searches.\nshort\nGeneral advice follows."
			}}]
		}`))
	}))
	defer srv.Close()

	p := NewOpenAIProvider(srv.URL, "test-key", "gpt-4o-mini")

	advice, err := p.Generate(context.Background(), Request{Scenario: models.TypeTrafficStop, Language: "en"})
	require.NoError(t, err)
	require.Len(t, advice.Scripts, 2)
	assert.Equal(t, "I am exercising my right to remain silent.", advice.Scripts[0].Text)
	assert.Equal(t, "medium", advice.Scripts[0].Priority)
}

func TestOpenAIProvider_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error": "model overloaded"}`, http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	p := NewOpenAIProvider(srv.URL, "test-key", "gpt-4o-mini")

	_, err := p.Generate(context.Background(), Request{Scenario: models.TypeTrafficStop})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 503")
}
