package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// billing_actions_total conta as ações devolvidas, por tipo.
	billingActionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "billing_actions_total",
			Help: "Número total de ações de cobrança devolvidas ao workflow.",
		},
		[]string{"action"},
	)

	billingSubscriptionsEvaluated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "billing_subscriptions_evaluated_total",
			Help: "Número total de assinaturas avaliadas.",
		},
	)

	// Status fora do contrato não geram ação, mas queremos enxergá-los.
	billingUnrecognizedStatus = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "billing_unrecognized_status_total",
			Help: "Assinaturas recebidas com status não reconhecido.",
		},
	)

	billingRunLogFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "billing_run_log_failures_total",
			Help: "Falhas ao gravar uma execução no log de execuções.",
		},
	)
)
