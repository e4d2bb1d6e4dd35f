package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/question-service/internal/api/http/handlers"
	"github.com/spec-kit/question-service/internal/config"
	"github.com/spec-kit/question-service/internal/events"
	"github.com/spec-kit/question-service/internal/faq"
	"github.com/spec-kit/question-service/internal/mail"
	"github.com/spec-kit/question-service/internal/notify"
	"github.com/spec-kit/question-service/internal/observability"
	"github.com/spec-kit/question-service/internal/service"
	"github.com/spec-kit/question-service/internal/store"
	"github.com/spec-kit/question-service/internal/worker"

	httptransport "github.com/spec-kit/question-service/internal/api/http"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// The matcher is useless without its corpus; refuse to start without it.
	corpus, err := faq.LoadCorpus(cfg.Matcher.CorpusPath, logger)
	if err != nil {
		logger.Fatal("failed to load FAQ corpus", zap.Error(err))
	}
	matcher := faq.NewMatcher(corpus, cfg.Matcher.Threshold)

	questionStore := store.NewQuestionStore(cfg.SLA.WindowMinutes, cfg.SLA.HighAlertMinutes)
	dispatcher := events.NewInMemoryDispatcher()
	mailer := mail.NewMailer(cfg.Email, logger)
	metrics := observability.NewMetrics()

	broadcaster := notify.NewBroadcaster(logger)
	defer broadcaster.Close()
	if cfg.Notify.RedisAddr != "" {
		broadcaster.Register(notify.NewRedisSink(cfg.Notify, logger))
	}

	var classifier service.QuestionClassifier
	if cfg.Classifier.Enabled {
		classifier = service.NewClassifierClient(cfg.Classifier, logger)
	}

	intakeService := service.NewIntakeService(service.IntakeDependencies{
		Store:      questionStore,
		Matcher:    matcher,
		Classifier: classifier,
		Mailer:     mailer,
		Dispatcher: dispatcher,
		Logger:     logger,
	})
	answerService := service.NewAnswerService(questionStore, mailer, dispatcher, logger)
	queryService := service.NewQueryService(questionStore)
	notificationService := service.NewNotificationService(dispatcher, broadcaster, mailer, logger)
	escalationService := service.NewEscalationService(questionStore, dispatcher, logger, cfg.SLA.Tick())

	worker.StartNotificationWorker(notificationService)

	go escalationService.Run(ctx)

	tcpServer := notify.NewTCPServer(cfg.Notify.TCPAddr, cfg.Notify.WriteTimeout(), broadcaster, logger)
	go func() {
		if err := tcpServer.Run(ctx); err != nil {
			logger.Error("notification listener failed", zap.Error(err))
		}
	}()

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	healthHandler := handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, corpus, broadcaster, metrics)
	questionsHandler := handlers.NewQuestionsHandler(intakeService, answerService, queryService)

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:    healthHandler,
		Questions: questionsHandler,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)
	cancel()

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
