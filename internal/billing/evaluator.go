// Package billing decide qual ação de cobrança vale para cada assinatura num dado dia.
//
// As funções daqui são puras: não fazem I/O, não guardam estado e não alteram a entrada.
// Podem ser chamadas em paralelo sem nenhuma sincronização.
package billing

import "github.com/willjrcristo/billing-actions/internal/domain"

// TrialReminderLeadDays é quantos dias antes do fim do trial o lembrete sai.
const TrialReminderLeadDays = 3

// Evaluate devolve a ação que vale hoje para sub, ou false se nenhuma regra casar.
// As regras são exclusivas por status e a primeira que casa ganha.
func Evaluate(sub domain.Subscription, today domain.Date) (domain.Action, bool) {
	switch sub.Status.Kind() {
	case domain.StatusTrial:
		if dateEquals(sub.TrialEndsAt, today.AddDays(TrialReminderLeadDays)) {
			return domain.ActionSendTrialReminder, true
		}
		if dateEquals(sub.TrialEndsAt, today) {
			return domain.ActionProcessTrialConversion, true
		}

	case domain.StatusActive:
		if dateEquals(sub.NextBillingAt, today) {
			return domain.ActionProcessRenewalPayment, true
		}

	case domain.StatusPastDue:
		// Sem cooldown: LastPaymentAttempt ainda não é consultado.
		return domain.ActionSendDunningEmail, true
	}

	// canceled, unknown ou nenhuma regra casou
	return "", false
}

// EvaluateBatch avalia cada assinatura contra o mesmo today, mantendo a ordem de entrada
// e omitindo as que não geraram ação. Nunca devolve nil.
func EvaluateBatch(subs []domain.Subscription, today domain.Date) []domain.BillingAction {
	actions := make([]domain.BillingAction, 0, len(subs))
	for _, sub := range subs {
		action, ok := Evaluate(sub, today)
		if !ok {
			continue
		}
		actions = append(actions, domain.BillingAction{
			Action: action,
			UserID: sub.UserID,
			Email:  sub.Email,
		})
	}
	return actions
}

// Campo ausente nunca satisfaz a regra.
func dateEquals(ts *domain.Timestamp, want domain.Date) bool {
	return ts != nil && ts.Date() == want
}
