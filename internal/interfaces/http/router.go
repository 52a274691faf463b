package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/fogafin/sief-api/internal/application/auth"
	"github.com/fogafin/sief-api/internal/application/enrollment"
	"github.com/fogafin/sief-api/internal/application/lifecycle"
	"github.com/fogafin/sief-api/internal/application/query"
)

// Roles reconocidos por la tabla de autorización.
const (
	RoleConsulta  = "consulta"
	RoleAnalista  = "analista"
	RoleAprobador = "aprobador"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	RegisterUC *enrollment.RegisterEntityUseCase
	CapitalUC  *enrollment.UpdateCapitalUseCase
	UploadUC   *enrollment.UploadUseCase
	LifecycleUC *lifecycle.UseCase
	QueryUC    *query.UseCase
	AuthUC     *auth.UseCase
	JWTSecret  string
}

// Router registra las rutas de la API. Los nombres de ruta se conservan del
// contrato publicado a los consumidores del SIEF.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Consultas (cualquier rol autenticado)
	queryHandler := NewQueryHandler(deps.QueryUC)
	protected.Get("/ConsultarDetalleEntidad/:codigo", queryHandler.Detail)
	protected.Get("/ConsultarHistorialGestion/:codigo", queryHandler.History)
	protected.Get("/ConsultarEntidades", queryHandler.List)
	protected.Get("/DescargarSoporte/:id", queryHandler.Download)
	protected.Get("/ConsultarUsuarios", queryHandler.Users)
	protected.Get("/ValidarUsuario/:email", queryHandler.ValidateUser)

	// Registro y gestión documental (analista o aprobador)
	analyst := protected.Group("/", RequireRole(RoleAnalista, RoleAprobador))
	enrollmentHandler := NewEnrollmentHandler(deps.RegisterUC, deps.CapitalUC, deps.UploadUC)
	analyst.Post("/RegistrarEntidad", enrollmentHandler.Register)
	analyst.Put("/ActualizarCapital", enrollmentHandler.UpdateCapital)
	analyst.Post("/CargarSoporte", enrollmentHandler.UploadAttachment)
	analyst.Post("/RegistrarPago", enrollmentHandler.RegisterPayment)

	// Transiciones intermedias (analista o aprobador)
	lifecycleHandler := NewLifecycleHandler(deps.LifecycleUC)
	analyst.Post("/AprobarDocumentos", lifecycleHandler.ApproveDocuments)
	analyst.Post("/ConfirmarPago", lifecycleHandler.ConfirmPayment)

	// Decisiones finales (solo aprobador)
	approver := protected.Group("/", RequireRole(RoleAprobador))
	approver.Post("/AprobarInscripcion", lifecycleHandler.ApproveInscription)
	approver.Post("/RechazarInscripcion", lifecycleHandler.Reject)
}
