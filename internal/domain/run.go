package domain

import "time"

// RunSummary resume uma chamada de avaliação registrada no log de execuções.
type RunSummary struct {
	ID                string    `json:"id"`
	EvaluatedOn       Date      `json:"evaluated_on"`
	SubscriptionCount int       `json:"subscription_count"`
	ActionCount       int       `json:"action_count"`
	CreatedAt         time.Time `json:"created_at"`
}

// EvaluationRun é o registro completo: o resumo mais as ações, na ordem em que foram devolvidas.
type EvaluationRun struct {
	RunSummary
	Actions []BillingAction `json:"actions"`
}
