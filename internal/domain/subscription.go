package domain

// Status é o estado de cobrança de uma assinatura, como chega do workflow.
type Status string

const (
	StatusTrial    Status = "trial"
	StatusActive   Status = "active"
	StatusPastDue  Status = "past_due"
	StatusCanceled Status = "canceled"

	// StatusUnknown agrupa qualquer valor fora dos quatro conhecidos.
	// Nunca vem no payload; é o resultado de Kind() para valores novos.
	StatusUnknown Status = "unknown"
)

// Kind devolve o variante fechado do status. Valores não reconhecidos viram StatusUnknown,
// assim quem chama decide explicitamente o que fazer com eles.
func (s Status) Kind() Status {
	switch s {
	case StatusTrial, StatusActive, StatusPastDue, StatusCanceled:
		return s
	default:
		return StatusUnknown
	}
}

// Known informa se o status é um dos quatro valores do contrato.
func (s Status) Known() bool {
	return s.Kind() != StatusUnknown
}

// Subscription é o snapshot de uma assinatura enviado pelo workflow (n8n).
// É montado a cada requisição e nunca é persistido.
type Subscription struct {
	UserID   string `json:"user_id"`
	Email    string `json:"email"`
	PlanType string `json:"plan_type"`
	Status   Status `json:"status"`

	TrialEndsAt   *Timestamp `json:"trial_ends_at,omitempty"`
	NextBillingAt *Timestamp `json:"next_billing_at,omitempty"`

	// Reservado para a futura lógica de retentativa (dunning). Nenhuma regra lê este campo.
	LastPaymentAttempt *Timestamp `json:"last_payment_attempt,omitempty"`
}

// SubscriptionInput é a assinatura como chega no corpo da requisição.
// Os campos obrigatórios são ponteiros: nil significa chave ausente, e "" é um valor aceito.
type SubscriptionInput struct {
	UserID   *string `json:"user_id" validate:"required"`
	Email    *string `json:"email" validate:"required"`
	PlanType *string `json:"plan_type" validate:"required"`
	Status   *Status `json:"status" validate:"required"`

	TrialEndsAt        *Timestamp `json:"trial_ends_at,omitempty"`
	NextBillingAt      *Timestamp `json:"next_billing_at,omitempty"`
	LastPaymentAttempt *Timestamp `json:"last_payment_attempt,omitempty"`
}

// Subscription converte a entrada já validada. Campos ausentes viram "".
func (in SubscriptionInput) Subscription() Subscription {
	sub := Subscription{
		TrialEndsAt:        in.TrialEndsAt,
		NextBillingAt:      in.NextBillingAt,
		LastPaymentAttempt: in.LastPaymentAttempt,
	}
	if in.UserID != nil {
		sub.UserID = *in.UserID
	}
	if in.Email != nil {
		sub.Email = *in.Email
	}
	if in.PlanType != nil {
		sub.PlanType = *in.PlanType
	}
	if in.Status != nil {
		sub.Status = *in.Status
	}
	return sub
}

// Action é a ação de cobrança que o workflow deve executar hoje.
type Action string

const (
	ActionSendTrialReminder      Action = "send_trial_reminder"
	ActionProcessTrialConversion Action = "process_trial_conversion"
	ActionProcessRenewalPayment  Action = "process_renewal_payment"
	ActionSendDunningEmail       Action = "send_dunning_email"
)

// BillingAction é o que devolvemos ao workflow. O email vai junto para que a
// notificação possa ser enviada sem uma segunda consulta.
type BillingAction struct {
	Action Action `json:"action"`
	UserID string `json:"user_id"`
	Email  string `json:"email"`
}
