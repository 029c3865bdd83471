package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/willjrcristo/billing-actions/internal/billing"
	"github.com/willjrcristo/billing-actions/internal/domain"
	"github.com/willjrcristo/billing-actions/internal/repository"
)

// Erros de negócio do serviço.
var (
	ErrInvalidSubscription = errors.New("assinatura inválida")
	ErrRunNotFound         = errors.New("execução não encontrada")
	ErrRunLogDisabled      = errors.New("log de execuções desativado")
)

const (
	DefaultRunsLimit = 20
	MaxRunsLimit     = 100
)

// EvaluationResult é o resultado de uma chamada de avaliação.
// RunID fica vazio quando o log de execuções está desativado ou a gravação falhou.
type EvaluationResult struct {
	RunID       string
	EvaluatedOn domain.Date
	Actions     []domain.BillingAction
}

// BillingService encapsula a regra de cobrança para a camada HTTP.
type BillingService struct {
	runs     repository.RunRepository
	now      func() time.Time
	location *time.Location
	validate *validator.Validate
	logger   *slog.Logger
}

// Option configura o BillingService.
type Option func(*BillingService)

// WithClock troca o relógio. Nos testes fixamos o "hoje".
func WithClock(now func() time.Time) Option {
	return func(s *BillingService) { s.now = now }
}

// WithLocation define em qual fuso o "hoje" é calculado.
func WithLocation(loc *time.Location) Option {
	return func(s *BillingService) { s.location = loc }
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *BillingService) { s.logger = logger }
}

// NewBillingService cria o serviço. runs pode ser nil, e nesse caso nada é registrado.
func NewBillingService(runs repository.RunRepository, opts ...Option) *BillingService {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Mensagens de erro com o nome do campo como ele aparece no JSON.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	s := &BillingService{
		runs:     runs,
		now:      time.Now,
		location: time.UTC,
		validate: v,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Today é a data de referência segundo o relógio e o fuso do serviço.
func (s *BillingService) Today() domain.Date {
	return domain.DateOf(s.now().In(s.location))
}

// CalculateActions valida o lote, fixa o "hoje" uma única vez e avalia todas as assinaturas contra ele.
// Só chave ausente é erro de validação; status vazio ou desconhecido apenas não gera ação.
func (s *BillingService) CalculateActions(ctx context.Context, inputs []domain.SubscriptionInput) (EvaluationResult, error) {
	subs := make([]domain.Subscription, len(inputs))
	for i := range inputs {
		if err := s.validateSubscription(i, inputs[i]); err != nil {
			return EvaluationResult{}, err
		}
		subs[i] = inputs[i].Subscription()
	}

	today := s.Today()

	for _, sub := range subs {
		if !sub.Status.Known() {
			billingUnrecognizedStatus.Inc()
			s.logger.Warn("Status de assinatura não reconhecido, nenhuma ação gerada",
				"user_id", sub.UserID, "status", string(sub.Status))
		}
	}

	actions := billing.EvaluateBatch(subs, today)

	billingSubscriptionsEvaluated.Add(float64(len(subs)))
	for _, a := range actions {
		billingActionsTotal.WithLabelValues(string(a.Action)).Inc()
	}

	result := EvaluationResult{EvaluatedOn: today, Actions: actions}
	result.RunID = s.recordRun(ctx, today, len(subs), actions)

	s.logger.Info("Ações de cobrança calculadas",
		"evaluated_on", today.String(),
		"subscriptions", len(subs),
		"actions", len(actions),
		"run_id", result.RunID,
	)
	return result, nil
}

// A gravação é auditoria: se falhar, o workflow ainda recebe as ações.
func (s *BillingService) recordRun(ctx context.Context, today domain.Date, subCount int, actions []domain.BillingAction) string {
	if s.runs == nil {
		return ""
	}

	run := domain.EvaluationRun{
		RunSummary: domain.RunSummary{
			ID:                uuid.NewString(),
			EvaluatedOn:       today,
			SubscriptionCount: subCount,
			ActionCount:       len(actions),
			CreatedAt:         s.now().UTC(),
		},
		Actions: actions,
	}
	if err := s.runs.CreateRun(ctx, run); err != nil {
		billingRunLogFailures.Inc()
		s.logger.Error("Falha ao gravar execução no log", "error", err)
		return ""
	}
	return run.ID
}

func (s *BillingService) validateSubscription(index int, in domain.SubscriptionInput) error {
	err := s.validate.Struct(in)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		return fmt.Errorf("%w: item %d: campo %s falhou na regra %q", ErrInvalidSubscription, index, fe.Field(), fe.Tag())
	}
	return fmt.Errorf("%w: item %d: %v", ErrInvalidSubscription, index, err)
}

// ListRuns devolve as execuções mais recentes. limit fora de (0, MaxRunsLimit] é ajustado.
func (s *BillingService) ListRuns(ctx context.Context, limit int) ([]domain.RunSummary, error) {
	if s.runs == nil {
		return nil, ErrRunLogDisabled
	}
	if limit <= 0 {
		limit = DefaultRunsLimit
	}
	if limit > MaxRunsLimit {
		limit = MaxRunsLimit
	}
	return s.runs.ListRuns(ctx, limit)
}

func (s *BillingService) GetRun(ctx context.Context, id string) (*domain.EvaluationRun, error) {
	if s.runs == nil {
		return nil, ErrRunLogDisabled
	}
	run, err := s.runs.GetRun(ctx, id)
	if err != nil {
		return nil, err
	}
	if run == nil {
		return nil, ErrRunNotFound
	}
	return run, nil
}
