package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	_ "github.com/willjrcristo/billing-actions/docs" // Importa a pasta docs gerada

	// Nossos pacotes internos da aplicação!
	"github.com/willjrcristo/billing-actions/internal/config"
	httphandler "github.com/willjrcristo/billing-actions/internal/handler/http"
	"github.com/willjrcristo/billing-actions/internal/repository"
	"github.com/willjrcristo/billing-actions/internal/service"
)

// @title           Billing Actions API
// @version         1.0
// @description     Decide quais ações de cobrança (lembrete de trial, conversão, renovação, dunning) valem hoje para cada assinatura.
//
// @contact.name   Will Cristo
// @contact.url    https://linkedin.com/in/willjrcristo
// @contact.email  willjrcristo@gmail.com
//
// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html
//
// @BasePath  /
//
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
func main() {
	if err := run(); err != nil {
		slog.Error("Aplicação encerrada com erro", "error", err)
		os.Exit(1)
	}
}

// run sobe a API e só retorna no desligamento. Os defers rodam antes do os.Exit de main.
func run() error {
	// --- 1. CONFIGURAÇÃO ---
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("erro ao carregar configuração: %w", err)
	}

	// --- 2. CONFIGURAÇÃO DO LOGGER ---
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: parseLevel(cfg.LogLevel)}))
	slog.SetDefault(logger)
	slog.Info("🚀 Iniciando a Billing Actions API...", "env", cfg.AppEnv, "timezone", cfg.Location.String())

	if cfg.APISecretKey == "" {
		slog.Warn("API_SECRET_KEY ausente em modo dev: autenticação DESLIGADA")
	}

	// --- 3. LOG DE EXECUÇÕES (opcional) ---
	var runs repository.RunRepository
	if cfg.RunLogEnabled() {
		db, err := repository.Open(cfg.RunLogPath)
		if err != nil {
			return fmt.Errorf("erro ao inicializar o log de execuções em %s: %w", cfg.RunLogPath, err)
		}
		defer db.Close()
		runs = repository.NewSQLiteRepository(db)
		slog.Info("💾 Log de execuções habilitado", "path", cfg.RunLogPath)
	} else {
		slog.Info("Log de execuções desativado")
	}

	// --- 4. INJEÇÃO DE DEPENDÊNCIAS (WIRING) ---
	// Repository -> Service -> Handler
	billingService := service.NewBillingService(runs,
		service.WithLocation(cfg.Location),
		service.WithLogger(logger),
	)
	billingHandler := httphandler.NewBillingHandler(billingService)

	// --- 5. ROTEADOR ---
	router := httphandler.NewRouter(httphandler.RouterConfig{
		Handler:        billingHandler,
		APISecret:      cfg.APISecretKey,
		AllowedOrigins: cfg.AllowedOrigins,
		RequestTimeout: cfg.RequestTimeout,
		Metrics:        prometheusMiddleware,
	})
	slog.Info("📖 Documentação Swagger disponível em /swagger/index.html")

	// --- 6. INICIALIZAÇÃO DO SERVIDOR HTTP ---
	srv := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("✅ Servidor pronto para receber requisições", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	select {
	case sig := <-sigCh:
		slog.Info("Sinal de desligamento recebido", "signal", sig.String())
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("erro ao iniciar o servidor: %w", err)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("Falha no desligamento gracioso", "error", err)
	}
	return nil
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
