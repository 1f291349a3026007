package api

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/vsuet/accounting/internal/middleware"
	"github.com/vsuet/accounting/internal/models"
)

// RouterDeps holds all dependencies needed by the router.
type RouterDeps struct {
	Log           *logrus.Logger
	DB            DBChecker
	Departments   EntityRepository[models.Department, models.DepartmentRequest]
	Employees     EntityRepository[models.Employee, models.EmployeeRequest]
	Vendors       EntityRepository[models.Vendor, models.VendorRequest]
	Expenses      EntityRepository[models.Expense, models.ExpenseRequest]
	Payrolls      EntityRepository[models.Payroll, models.PayrollRequest]
	Reports       ReportRepository
	Archive       ArchiveRepository
	Audit         AuditRepository
	CORSOrigins   []string
	Version       string
	SchemaVersion int
}

// maxBodySize caps request bodies; ledger payloads are small.
const maxBodySize = 1 << 20

// crudHandler is the route surface shared by every EntityHandler.
type crudHandler interface {
	List(c *gin.Context)
	Get(c *gin.Context)
	Create(c *gin.Context)
	Update(c *gin.Context)
	Delete(c *gin.Context)
}

// setupMiddleware configures all middleware on the Gin engine.
func setupMiddleware(r *gin.Engine, deps *RouterDeps) {
	r.SetTrustedProxies(nil) //nolint:errcheck // nil always succeeds.
	r.Use(middleware.RequestID(deps.Log))
	r.Use(ginLogger(deps.Log))
	r.Use(gin.Recovery())
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.MaxBodySize(maxBodySize))
	r.Use(cors.New(cors.Config{
		AllowOrigins:     deps.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", middleware.RequestIDHeader},
		ExposeHeaders:    []string{middleware.RequestIDHeader},
		MaxAge:           1 * time.Hour,
		AllowCredentials: false,
	}))
	r.Use(middleware.Metrics())
}

func registerEntity(api *gin.RouterGroup, path string, h crudHandler) {
	g := api.Group(path)
	g.GET("", h.List)
	g.POST("", h.Create)
	g.GET("/:id", h.Get)
	g.PUT("/:id", h.Update)
	g.DELETE("/:id", h.Delete)
}

// registerRoutes sets up all API route handlers on the given router group.
func registerRoutes(api *gin.RouterGroup, deps *RouterDeps) {
	log := deps.Log

	health := NewHealthHandler(deps.DB, log, deps.Version, deps.SchemaVersion)
	reports := NewReportHandler(deps.Reports, log)
	archive := NewArchiveHandler(deps.Archive, log)
	audit := NewAuditHandler(deps.Audit, log)

	api.GET("/health", health.Liveness)
	api.GET("/ready", health.Readiness)

	// Ledger CRUD.
	registerEntity(api, "/departments", NewDepartmentHandler(deps.Departments, log))
	registerEntity(api, "/employees", NewEmployeeHandler(deps.Employees, log))
	registerEntity(api, "/vendors", NewVendorHandler(deps.Vendors, log))
	registerEntity(api, "/expenses", NewExpenseHandler(deps.Expenses, log))
	registerEntity(api, "/payrolls", NewPayrollHandler(deps.Payrolls, log))

	// Reports.
	api.GET("/reports/expenses", reports.Expenses)
	api.GET("/reports/expenses/summary", reports.ExpenseSummary)
	api.GET("/reports/payrolls", reports.Payrolls)
	api.GET("/reports/payrolls/summary", reports.PayrollSummary)

	// Archive.
	api.POST("/archive/payrolls", archive.ArchivePayrolls)
	api.GET("/archive", archive.List)

	// Audit.
	api.GET("/audit", audit.Query)
	api.DELETE("/audit", audit.Purge)
}

// NewRouter creates and configures the Gin engine with all middleware and routes.
func NewRouter(deps *RouterDeps) http.Handler {
	r := gin.New()
	setupMiddleware(r, deps)
	registerRoutes(r.Group("/api/v1"), deps)

	return r
}
