package billing

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/willjrcristo/billing-actions/internal/domain"
)

var today = domain.Date{Year: 2024, Month: time.June, Day: 10}

func ts(t *testing.T, s string) *domain.Timestamp {
	t.Helper()
	parsed, err := domain.ParseTimestamp(s)
	require.NoError(t, err)
	return &parsed
}

func TestEvaluate(t *testing.T) {
	cases := []struct {
		name       string
		sub        domain.Subscription
		wantAction domain.Action
		wantOK     bool
	}{
		{
			name:       "trial termina em 3 dias - lembrete",
			sub:        domain.Subscription{Status: domain.StatusTrial, TrialEndsAt: ts(t, "2024-06-13T08:00")},
			wantAction: domain.ActionSendTrialReminder,
			wantOK:     true,
		},
		{
			name:       "trial termina hoje no fim do dia - conversão",
			sub:        domain.Subscription{Status: domain.StatusTrial, TrialEndsAt: ts(t, "2024-06-10T23:59")},
			wantAction: domain.ActionProcessTrialConversion,
			wantOK:     true,
		},
		{
			name:       "trial termina hoje no começo do dia - conversão",
			sub:        domain.Subscription{Status: domain.StatusTrial, TrialEndsAt: ts(t, "2024-06-10T00:01:00Z")},
			wantAction: domain.ActionProcessTrialConversion,
			wantOK:     true,
		},
		{
			name: "trial termina em 2 dias - nada",
			sub:  domain.Subscription{Status: domain.StatusTrial, TrialEndsAt: ts(t, "2024-06-12T08:00")},
		},
		{
			name: "trial sem data de fim - nada",
			sub:  domain.Subscription{Status: domain.StatusTrial},
		},
		{
			name:       "active com cobrança hoje - renovação",
			sub:        domain.Subscription{Status: domain.StatusActive, NextBillingAt: ts(t, "2024-06-10T00:00")},
			wantAction: domain.ActionProcessRenewalPayment,
			wantOK:     true,
		},
		{
			name: "active com cobrança amanhã - nada",
			sub:  domain.Subscription{Status: domain.StatusActive, NextBillingAt: ts(t, "2024-06-11T00:00")},
		},
		{
			name: "active sem próxima cobrança - nada",
			sub:  domain.Subscription{Status: domain.StatusActive},
		},
		{
			name: "active ignora trial_ends_at",
			sub:  domain.Subscription{Status: domain.StatusActive, TrialEndsAt: ts(t, "2024-06-10")},
		},
		{
			name:       "past_due com tentativa anterior - dunning",
			sub:        domain.Subscription{Status: domain.StatusPastDue, LastPaymentAttempt: ts(t, "2024-06-01")},
			wantAction: domain.ActionSendDunningEmail,
			wantOK:     true,
		},
		{
			name:       "past_due sem tentativa - dunning",
			sub:        domain.Subscription{Status: domain.StatusPastDue},
			wantAction: domain.ActionSendDunningEmail,
			wantOK:     true,
		},
		{
			name: "canceled - nada",
			sub:  domain.Subscription{Status: domain.StatusCanceled, NextBillingAt: ts(t, "2024-06-10")},
		},
		{
			name: "status desconhecido - nada",
			sub:  domain.Subscription{Status: "paused", NextBillingAt: ts(t, "2024-06-10")},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			action, ok := Evaluate(tc.sub, today)
			assert.Equal(t, tc.wantOK, ok)
			assert.Equal(t, tc.wantAction, action)
		})
	}
}

func TestEvaluate_LembreteAtravessaMes(t *testing.T) {
	endOfMonth := domain.Date{Year: 2024, Month: time.February, Day: 27}
	sub := domain.Subscription{Status: domain.StatusTrial, TrialEndsAt: ts(t, "2024-03-01T10:00:00-03:00")}

	action, ok := Evaluate(sub, endOfMonth)

	assert.True(t, ok)
	assert.Equal(t, domain.ActionSendTrialReminder, action)
}

func TestEvaluate_Idempotente(t *testing.T) {
	sub := domain.Subscription{Status: domain.StatusTrial, TrialEndsAt: ts(t, "2024-06-13")}

	a1, ok1 := Evaluate(sub, today)
	a2, ok2 := Evaluate(sub, today)

	assert.Equal(t, a1, a2)
	assert.Equal(t, ok1, ok2)
}

func TestEvaluate_NaoAlteraEntrada(t *testing.T) {
	sub := domain.Subscription{UserID: "u1", Status: domain.StatusTrial, TrialEndsAt: ts(t, "2024-06-13T08:00")}
	before := *sub.TrialEndsAt

	Evaluate(sub, today)

	assert.Equal(t, before, *sub.TrialEndsAt)
}

func TestEvaluateBatch(t *testing.T) {
	t.Run("mantém a ordem e omite quem não tem ação", func(t *testing.T) {
		subs := []domain.Subscription{
			{UserID: "a", Email: "a@x.com", Status: domain.StatusPastDue},
			{UserID: "b", Email: "b@x.com", Status: domain.StatusCanceled},
			{UserID: "c", Email: "c@x.com", Status: domain.StatusActive, NextBillingAt: ts(t, "2024-06-10")},
			{UserID: "d", Email: "d@x.com", Status: domain.StatusActive, NextBillingAt: ts(t, "2024-06-11")},
			{UserID: "e", Email: "e@x.com", Status: domain.StatusTrial, TrialEndsAt: ts(t, "2024-06-13")},
		}

		actions := EvaluateBatch(subs, today)

		assert.Equal(t, []domain.BillingAction{
			{Action: domain.ActionSendDunningEmail, UserID: "a", Email: "a@x.com"},
			{Action: domain.ActionProcessRenewalPayment, UserID: "c", Email: "c@x.com"},
			{Action: domain.ActionSendTrialReminder, UserID: "e", Email: "e@x.com"},
		}, actions)
	})

	t.Run("lote vazio devolve slice vazio, não nil", func(t *testing.T) {
		actions := EvaluateBatch(nil, today)
		assert.NotNil(t, actions)
		assert.Empty(t, actions)
	})

	t.Run("seguro para chamadas concorrentes", func(t *testing.T) {
		subs := []domain.Subscription{
			{UserID: "a", Email: "a@x.com", Status: domain.StatusPastDue},
			{UserID: "b", Email: "b@x.com", Status: domain.StatusTrial, TrialEndsAt: ts(t, "2024-06-10")},
		}
		want := EvaluateBatch(subs, today)

		var wg sync.WaitGroup
		for i := 0; i < 16; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				assert.Equal(t, want, EvaluateBatch(subs, today))
			}()
		}
		wg.Wait()
	})
}
