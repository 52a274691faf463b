package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/fogafin/sief-api/internal/application/auth"
	"github.com/fogafin/sief-api/internal/application/enrollment"
	"github.com/fogafin/sief-api/internal/application/lifecycle"
	"github.com/fogafin/sief-api/internal/application/notification"
	"github.com/fogafin/sief-api/internal/application/query"
	"github.com/fogafin/sief-api/internal/infrastructure/blob"
	"github.com/fogafin/sief-api/internal/infrastructure/mail"
	infrapdf "github.com/fogafin/sief-api/internal/infrastructure/pdf"
	"github.com/fogafin/sief-api/internal/infrastructure/postgres"
	httpRouter "github.com/fogafin/sief-api/internal/interfaces/http"
	"github.com/fogafin/sief-api/pkg/config"
	"github.com/fogafin/sief-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	entityRepo := postgres.NewEntityRepository(pool)
	historyRepo := postgres.NewHistoryRepository(pool)
	attachmentRepo := postgres.NewAttachmentRepository(pool)
	paymentRepo := postgres.NewPaymentRepository(pool)
	emailLogRepo := postgres.NewEmailLogRepository(pool)
	noticeRepo := postgres.NewQuarterlyNoticeRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	mailSender := mail.NewHTTPSender(cfg.Mail)
	blobStorage := blob.NewHTTPStorage(cfg.Blob)
	pdfGenerator := infrapdf.NewMarotoSummaryGenerator()
	dispatcher := notification.NewDispatcher(mailSender, emailLogRepo, cfg.Mail, log)

	registerUC := enrollment.NewRegisterEntityUseCase(
		txRunner, entityRepo, noticeRepo,
		blobStorage, pdfGenerator, dispatcher,
		cfg.Blob, cfg.Enrollment, log,
	)
	capitalUC := enrollment.NewUpdateCapitalUseCase(entityRepo)
	uploadUC := enrollment.NewUploadUseCase(entityRepo, attachmentRepo, paymentRepo, blobStorage, cfg.Blob)
	lifecycleUC := lifecycle.NewUseCase(txRunner, dispatcher, log)
	queryUC := query.NewUseCase(entityRepo, historyRepo, attachmentRepo, paymentRepo, userRepo, blobStorage, log)
	authUC := auth.NewUseCase(userRepo, cfg.JWT, log)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(cors.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		RegisterUC:  registerUC,
		CapitalUC:   capitalUC,
		UploadUC:    uploadUC,
		LifecycleUC: lifecycleUC,
		QueryUC:     queryUC,
		AuthUC:      authUC,
		JWTSecret:   cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
