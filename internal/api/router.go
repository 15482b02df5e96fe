package api

import (
	"github.com/google/uuid"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	"github.com/taskdesk/taskdesk/internal/api/handler"
	"github.com/taskdesk/taskdesk/internal/api/middleware"
	"github.com/taskdesk/taskdesk/internal/api/views"
	"github.com/taskdesk/taskdesk/internal/core/domain"
	"github.com/taskdesk/taskdesk/internal/core/ports"
	"github.com/taskdesk/taskdesk/internal/infrastructure/http/handlers"
)

// Deps are the collaborators the router wires into handlers.
type Deps struct {
	Log       zerolog.Logger
	Sessions  handler.SessionManager
	Tasks     handler.TaskService
	Employees handler.EmployeeService
	Notifier  ports.Notifier
	Renderer  *views.Renderer
	Probes    []handlers.Probe

	CSRFKey        []byte
	TrustedOrigins []string
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Renderer = d.Renderer
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log, d.Sessions)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestIDWithConfig(echomiddleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(middleware.RequestLogger(d.Log))
	e.Use(echoprometheus.NewMiddleware("taskdesk"))
	e.Use(middleware.CSRF(d.Log, d.CSRFKey, d.TrustedOrigins))

	// --- Health probes and metrics (no session required) ---
	healthHandler := handlers.NewHealthHandler()
	healthDepsHandler := handlers.NewHealthDependenciesHandler(d.Probes...)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(d.Sessions, d.Notifier)
	profileHandler := handler.NewProfileHandler(d.Sessions, d.Notifier)
	dashboardHandler := handler.NewDashboardHandler(d.Tasks, d.Notifier, d.Log)
	taskHandler := handler.NewTaskHandler(d.Tasks, d.Employees, d.Notifier, d.Log)
	employeeHandler := handler.NewEmployeeHandler(d.Employees, d.Notifier, d.Log)

	// --- Unauthenticated pages ---
	// Only the forms are guarded; posting credentials while logged in
	// switches accounts.
	guest := middleware.RedirectIfAuthenticated(d.Sessions)
	e.GET("/", authHandler.Root)
	e.GET(domain.PathLogin, authHandler.LoginPage, guest)
	e.POST(domain.PathLogin, authHandler.Login)
	e.GET("/register", authHandler.RegisterPage, guest)
	e.POST("/register", authHandler.Register)

	anyRole := middleware.RequireSession(d.Sessions, domain.AnyRole)
	admin := middleware.RequireSession(d.Sessions, domain.Require(domain.RoleAdmin))
	employee := middleware.RequireSession(d.Sessions, domain.Require(domain.RoleEmployee))

	e.POST("/logout", authHandler.Logout, anyRole)

	// --- Admin pages ---
	e.GET(domain.PathAdmin, dashboardHandler.Admin, admin)
	e.GET("/admin/tasks", taskHandler.List, admin)
	e.POST("/admin/tasks", taskHandler.Create, admin)
	e.POST("/tasks/:id", taskHandler.Update, admin)
	e.POST("/tasks/:id/delete", taskHandler.Delete, admin)
	e.GET("/employees", employeeHandler.List, admin)
	e.POST("/employees", employeeHandler.Create, admin)
	e.POST("/employees/:id", employeeHandler.Update, admin)
	e.POST("/employees/:id/delete", employeeHandler.Delete, admin)

	// --- Employee pages ---
	e.GET(domain.PathEmployee, dashboardHandler.Employee, employee)

	// --- Shared pages ---
	e.GET("/tasks/:id", taskHandler.Show, anyRole)
	e.POST("/tasks/:id/status", taskHandler.ChangeStatus, anyRole)
	e.POST("/tasks/:id/comments", taskHandler.Comment, anyRole)
	e.GET("/profile", profileHandler.Show, anyRole)
	e.POST("/profile", profileHandler.Update, anyRole)

	return e
}
