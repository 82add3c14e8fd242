package main

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/xavierca1/landing-leads/internal/config"
	"github.com/xavierca1/landing-leads/internal/infra/database"
	"github.com/xavierca1/landing-leads/internal/infra/http/handlers"
	"github.com/xavierca1/landing-leads/internal/infra/mail"
	"github.com/xavierca1/landing-leads/internal/infra/queue"
	"github.com/xavierca1/landing-leads/internal/infra/worker"
	"github.com/xavierca1/landing-leads/internal/usecase"
)

func main() {
	cfg := config.Load()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 1. Bancos
	usersDB, err := database.NewDBConnection(cfg.DBDriver, cfg.UsersDatabaseURL, cfg.Pool)
	if err != nil {
		log.Fatalf("❌ Erro de conexão com o banco de usuários: %v", err)
	}
	defer usersDB.Close()

	leadsDB, err := database.NewDBConnection(cfg.DBDriver, cfg.LeadsDatabaseURL, cfg.Pool)
	if err != nil {
		log.Fatalf("❌ Erro de conexão com o banco de leads: %v", err)
	}
	defer leadsDB.Close()

	// 2. Repositórios
	leadRepo := database.NewLeadRepository(leadsDB)
	analyticsRepo := database.NewAnalyticsRepository(leadsDB)
	userRepo := database.NewUserRepository(usersDB)
	progressRepo := database.NewProgressRepository(usersDB)

	// 3. Fila de boas-vindas (opcional)
	var (
		publisher usecase.LeadEventPublisher
		broker    handlers.BrokerConnection
	)
	if cfg.RabbitMQURL != "" {
		rabbitMQ, err := queue.NewRabbitMQ(cfg.RabbitMQURL)
		if err != nil {
			log.Fatalf("❌ %v", err)
		}
		defer rabbitMQ.Close()

		broker = rabbitMQ.Conn
		publisher = instrumentedPublisher{next: queue.NewProducer(rabbitMQ.Ch)}

		if cfg.Mail.Enabled() {
			sender := mail.NewEmailSender(cfg.Mail.Host, cfg.Mail.Port, cfg.Mail.User, cfg.Mail.Password, cfg.Mail.From)
			welcomeWorker := queue.NewWorker(rabbitMQ.Ch, instrumentedSender{next: sender})
			go func() {
				if err := welcomeWorker.Start(ctx, queue.QueueName); err != nil {
					log.Printf("❌ Worker de boas-vindas parou: %v", err)
				}
			}()
		} else {
			log.Println("⚠️ MAIL_HOST não configurado, eventos de lead ficam na fila")
		}
	} else {
		log.Println("⚠️ RABBITMQ_URL não configurado, notificações de lead desativadas")
	}

	// 4. UseCases
	leadService := usecase.NewLeadService(leadRepo, publisher)
	userService := usecase.NewUserService(userRepo)
	progressService := usecase.NewProgressService(progressRepo)
	analyticsService := usecase.NewAnalyticsService(analyticsRepo)

	go worker.NewAnalyticsRetentionWorker(analyticsService, cfg.AnalyticsRetention).Start(ctx)

	// 5. Handlers
	leadHandler := handlers.NewLeadHandler(leadService, cfg.CaptureRateLimit)
	defer leadHandler.Close()

	routes := Routes{
		Leads:     leadHandler,
		Users:     handlers.NewUserHandler(userService),
		Progress:  handlers.NewProgressHandler(progressService),
		Analytics: handlers.NewAnalyticsHandler(analyticsService),
		Health: handlers.NewHealthHandler(map[string]*sql.DB{
			"users_db": usersDB,
			"leads_db": leadsDB,
		}, broker),
	}

	// 6. Router
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           NewRouter(cfg, routes),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("🔥 Servidor de leads rodando na porta %s (%s)", cfg.Port, cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("❌ Erro no servidor HTTP: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("⚠️ Encerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("❌ Erro ao encerrar servidor: %v", err)
	}
}
