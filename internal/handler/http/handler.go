package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/willjrcristo/billing-actions/internal/domain"
	"github.com/willjrcristo/billing-actions/internal/service"
)

// Lotes vêm do workflow inteiro de uma vez; 10MB cobre dezenas de milhares de assinaturas.
const maxBatchBodyBytes = int64(10 << 20)

// BillingService é o que o handler precisa da camada de serviço.
type BillingService interface {
	CalculateActions(ctx context.Context, inputs []domain.SubscriptionInput) (service.EvaluationResult, error)
	ListRuns(ctx context.Context, limit int) ([]domain.RunSummary, error)
	GetRun(ctx context.Context, id string) (*domain.EvaluationRun, error)
}

// BillingHandler lida com as rotas de cálculo de ações e do log de execuções.
type BillingHandler struct {
	service BillingService
}

// NewBillingHandler cria uma nova instância do BillingHandler.
func NewBillingHandler(s BillingService) *BillingHandler {
	return &BillingHandler{
		service: s,
	}
}

// RegisterRoutes registra as rotas deste handler em r. A autenticação fica a cargo de quem chama.
func (h *BillingHandler) RegisterRoutes(r chi.Router) {
	r.Post("/calculate-billing-actions", h.CalculateBillingActions) // POST /calculate-billing-actions
	r.Get("/runs", h.ListRuns)                                      // GET /runs?limit=N
	r.Get("/runs/{id}", h.GetRun)                                   // GET /runs/{id}
}

// @Summary      Calcula as ações de cobrança de hoje
// @Description  Recebe todas as assinaturas e devolve, na mesma ordem, as ações a executar hoje (lembretes, conversões, renovações, dunning)
// @Tags         billing
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        subscriptions  body      []domain.SubscriptionInput  true  "Assinaturas a avaliar"
// @Success      200            {array}   domain.BillingAction
// @Header       200            {string}  X-Evaluation-Run-ID  "ID da execução no log"
// @Header       200            {string}  X-Evaluated-On       "Data de referência (YYYY-MM-DD)"
// @Failure      400            {object}  map[string]string
// @Failure      403            {object}  map[string]string
// @Router       /calculate-billing-actions [post]
func (h *BillingHandler) CalculateBillingActions(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBatchBodyBytes)

	var subs []domain.SubscriptionInput
	if err := json.NewDecoder(r.Body).Decode(&subs); err != nil {
		respondWithError(w, http.StatusBadRequest, "Corpo da requisição inválido: "+err.Error())
		return
	}
	if subs == nil {
		respondWithError(w, http.StatusBadRequest, "Corpo da requisição deve ser uma lista de assinaturas")
		return
	}

	result, err := h.service.CalculateActions(r.Context(), subs)
	if err != nil {
		if errors.Is(err, service.ErrInvalidSubscription) {
			respondWithError(w, http.StatusBadRequest, err.Error())
		} else {
			respondWithError(w, http.StatusInternalServerError, "Erro ao calcular ações de cobrança")
		}
		return
	}

	if result.RunID != "" {
		w.Header().Set("X-Evaluation-Run-ID", result.RunID)
	}
	w.Header().Set("X-Evaluated-On", result.EvaluatedOn.String())
	respondWithJSON(w, http.StatusOK, result.Actions)
}

// @Summary      Lista as execuções recentes
// @Description  Devolve as últimas avaliações registradas, mais recentes primeiro
// @Tags         runs
// @Produce      json
// @Security     BearerAuth
// @Param        limit  query     int  false  "Quantidade máxima (padrão 20, máximo 100)"
// @Success      200    {array}   domain.RunSummary
// @Failure      400    {object}  map[string]string
// @Failure      501    {object}  map[string]string
// @Router       /runs [get]
func (h *BillingHandler) ListRuns(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "limit inválido")
			return
		}
		limit = n
	}

	runs, err := h.service.ListRuns(r.Context(), limit)
	if err != nil {
		if errors.Is(err, service.ErrRunLogDisabled) {
			respondWithError(w, http.StatusNotImplemented, err.Error())
		} else {
			respondWithError(w, http.StatusInternalServerError, "Erro ao buscar execuções")
		}
		return
	}
	respondWithJSON(w, http.StatusOK, runs)
}

// @Summary      Busca uma execução por ID
// @Description  Devolve o resumo e as ações de uma avaliação registrada
// @Tags         runs
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "ID da execução"
// @Success      200  {object}  domain.EvaluationRun
// @Failure      404  {object}  map[string]string
// @Failure      501  {object}  map[string]string
// @Router       /runs/{id} [get]
func (h *BillingHandler) GetRun(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	run, err := h.service.GetRun(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrRunNotFound):
			respondWithError(w, http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrRunLogDisabled):
			respondWithError(w, http.StatusNotImplemented, err.Error())
		default:
			respondWithError(w, http.StatusInternalServerError, "Erro ao buscar execução")
		}
		return
	}
	respondWithJSON(w, http.StatusOK, run)
}

// --- FUNÇÕES AUXILIARES ---

func respondWithError(w http.ResponseWriter, code int, message string) {
	slog.Error("API Error", "code", code, "message", message)
	respondWithJSON(w, code, map[string]string{"error": message})
}

func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		slog.Error("Failed to marshal JSON response", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("Internal Server Error"))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}
