package routes

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/virtual-queue/internal/audit"
	"github.com/BruksfildServices01/virtual-queue/internal/auth"
	"github.com/BruksfildServices01/virtual-queue/internal/config"
	"github.com/BruksfildServices01/virtual-queue/internal/domain/entrant"
	"github.com/BruksfildServices01/virtual-queue/internal/domain/project"
	"github.com/BruksfildServices01/virtual-queue/internal/domain/stats"
	"github.com/BruksfildServices01/virtual-queue/internal/handlers"
	"github.com/BruksfildServices01/virtual-queue/internal/infra/cache"
	"github.com/BruksfildServices01/virtual-queue/internal/metrics"
	"github.com/BruksfildServices01/virtual-queue/internal/middleware"
	"github.com/BruksfildServices01/virtual-queue/internal/timezone"
	ucEntrant "github.com/BruksfildServices01/virtual-queue/internal/usecase/entrant"
	ucProject "github.com/BruksfildServices01/virtual-queue/internal/usecase/project"
	ucStats "github.com/BruksfildServices01/virtual-queue/internal/usecase/stats"
)

// Dependencies are the singletons built by main.
type Dependencies struct {
	Config *config.Config

	Projects project.Repository
	Entrants entrant.Repository
	Stats    stats.Repository

	AuditStore audit.Store
	Audit      *audit.Dispatcher

	Cache       cache.PublicProjects
	Metrics     *metrics.Metrics
	Sessions    auth.SessionProvider
	JoinLimiter *middleware.RateLimiter
	Clock       timezone.Clock

	// Health reports whether the backing store is reachable. Optional.
	Health func(ctx context.Context) error
}

func RegisterRoutes(r *gin.Engine, d Dependencies) {
	if d.Metrics == nil {
		d.Metrics = metrics.New()
	}
	if d.Cache == nil {
		d.Cache = cache.Noop{}
	}
	if d.Config == nil {
		d.Config = &config.Config{}
	}

	// ======================================================
	// GLOBAL MIDDLEWARE
	// ======================================================
	r.Use(
		middleware.RequestID(),
		middleware.Logger(),
		d.Metrics.Middleware(),
		middleware.CORSMiddleware(d.Config.CORSAllowedOrigins),
	)

	// ======================================================
	// USE CASES: PROJECTS
	// ======================================================
	createProjectUC := ucProject.NewCreateProject(d.Projects, d.Audit, d.Metrics)
	listProjectsUC := ucProject.NewListProjects(d.Projects)
	listPublicUC := ucProject.NewListPublicProjects(d.Projects)
	getProjectUC := ucProject.NewGetProject(d.Projects)
	getByUsernameUC := ucProject.NewGetProjectByUsername(d.Projects, d.Cache)
	updateProjectUC := ucProject.NewUpdateProject(d.Projects, d.Cache, d.Audit)
	customFieldsUC := ucProject.NewManageCustomFields(d.Projects, updateProjectUC)
	regenerateUC := ucProject.NewRegenerateAPIKey(d.Projects, d.Audit, d.Metrics)
	deleteProjectUC := ucProject.NewDeleteProject(d.Projects, d.Cache, d.Audit, d.Metrics)
	registerBusinessUC := ucProject.NewRegisterBusiness(d.Projects)
	adminListingsUC := ucProject.NewAdminListings(d.Projects)

	// ======================================================
	// USE CASES: ENTRANTS
	// ======================================================
	joinUC := ucEntrant.NewJoinQueue(d.Projects, d.Entrants, d.Audit, d.Metrics, d.Clock)
	firstActiveUC := ucEntrant.NewFirstActive(d.Projects, d.Entrants)
	deactivateUC := ucEntrant.NewDeactivateEntrant(d.Entrants, d.Audit, d.Clock)
	serveNextUC := ucEntrant.NewServeNext(firstActiveUC, deactivateUC, d.Metrics)
	deleteEntrantUC := ucEntrant.NewDeleteEntrant(d.Entrants, d.Audit)
	listEntrantsUC := ucEntrant.NewListEntrants(d.Projects, d.Entrants)

	// ======================================================
	// USE CASES: STATS
	// ======================================================
	businessStatsUC := ucStats.NewBusinessStats(d.Stats, d.Clock)
	systemStatsUC := ucStats.NewSystemStats(d.Stats, d.Clock)

	// ======================================================
	// HANDLERS
	// ======================================================
	publicHandler := handlers.NewPublicHandler(listPublicUC, getByUsernameUC, joinUC)

	apiKeyHandler := handlers.NewAPIKeyHandler(
		listProjectsUC,
		getProjectUC,
		updateProjectUC,
		regenerateUC,
		deleteProjectUC,
	)

	projectHandler := handlers.NewProjectHandler(
		createProjectUC,
		listProjectsUC,
		getProjectUC,
		getByUsernameUC,
		updateProjectUC,
		customFieldsUC,
		regenerateUC,
		deleteProjectUC,
	)

	entrantHandler := handlers.NewEntrantHandler(
		listEntrantsUC,
		firstActiveUC,
		serveNextUC,
		deactivateUC,
		deleteEntrantUC,
	)

	meHandler := handlers.NewMeHandler(registerBusinessUC)
	statsHandler := handlers.NewStatsHandler(businessStatsUC)
	adminHandler := handlers.NewAdminHandler(systemStatsUC, adminListingsUC)
	auditLogsHandler := handlers.NewAuditLogsHandler(d.AuditStore)

	// ======================================================
	// OPS
	// ======================================================
	r.GET("/health", func(c *gin.Context) {
		if d.Health != nil {
			if err := d.Health(c.Request.Context()); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(d.Metrics.Handler()))

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// PUBLIC
		// ------------------------------
		publicAPI := api.Group("/public")
		{
			publicAPI.GET("/projects", publicHandler.ListProjects)
			publicAPI.GET("/projects/:username", publicHandler.GetProject)

			join := []gin.HandlerFunc{publicHandler.Join}
			if d.JoinLimiter != nil {
				join = append([]gin.HandlerFunc{d.JoinLimiter.Middleware()}, join...)
			}
			publicAPI.POST("/projects/:username/join", join...)
		}

		// ------------------------------
		// PROGRAMMATIC (project api key)
		// ------------------------------
		projects := api.Group("/projects")
		{
			projects.POST("/create",
				middleware.RequireIdentity(d.Sessions, auth.RoleBusiness),
				projectHandler.CreateForBusiness,
			)

			keyed := projects.Group("")
			keyed.Use(middleware.RequireAPIKey())
			{
				keyed.GET("/list", apiKeyHandler.List)
				keyed.GET("/getproject", apiKeyHandler.Get)
				keyed.DELETE("/getproject", apiKeyHandler.Delete)
				keyed.PATCH("/update", apiKeyHandler.Update)
				keyed.POST("/regenerate-api-key", apiKeyHandler.Regenerate)
				keyed.GET("/:projectId", apiKeyHandler.GetByID)
				keyed.DELETE("/:projectId", apiKeyHandler.DeleteByID)
			}
		}

		// ------------------------------
		// OWNER (session, business role)
		// ------------------------------
		me := api.Group("/me")
		me.Use(middleware.RequireIdentity(d.Sessions, auth.RoleBusiness))
		{
			me.GET("", meHandler.GetMe)
			me.POST("/business", meHandler.SyncBusiness)

			me.GET("/projects", projectHandler.List)
			me.POST("/projects", projectHandler.Create)
			me.GET("/projects/by-username/:username", projectHandler.GetByUsername)
			me.GET("/projects/:projectId", projectHandler.Get)
			me.PATCH("/projects/:projectId", projectHandler.Update)
			me.DELETE("/projects/:projectId", projectHandler.Delete)
			me.PUT("/projects/:projectId/details", projectHandler.UpdateDetails)
			me.PUT("/projects/:projectId/status", projectHandler.UpdateStatus)
			me.PUT("/projects/:projectId/custom-fields", projectHandler.UpdateCustomFields)
			me.POST("/projects/:projectId/custom-fields", projectHandler.AddField)
			me.DELETE("/projects/:projectId/custom-fields/:field", projectHandler.RemoveField)
			me.POST("/projects/:projectId/regenerate-api-key", projectHandler.RegenerateAPIKey)

			me.GET("/projects/:projectId/entrants", entrantHandler.List)
			me.GET("/projects/:projectId/columns", entrantHandler.Columns)
			me.GET("/projects/:projectId/queue/next", entrantHandler.Next)
			me.POST("/projects/:projectId/queue/serve", entrantHandler.Serve)
			me.PATCH("/entrants/:entrantId/deactivate", entrantHandler.Deactivate)
			me.DELETE("/entrants/:entrantId", entrantHandler.Delete)

			me.GET("/stats/projects", statsHandler.Projects())
			me.GET("/stats/users", statsHandler.Users())
			me.GET("/stats/user-growth", statsHandler.UserGrowth())
			me.GET("/stats/project-activity", statsHandler.ProjectActivity())

			me.GET("/audit-logs", auditLogsHandler.List)
		}

		// ------------------------------
		// ADMIN
		// ------------------------------
		admin := api.Group("/admin")
		admin.Use(middleware.RequireIdentity(d.Sessions, auth.RoleAdmin))
		{
			admin.GET("/stats", adminHandler.Overview())
			admin.GET("/stats/businesses", adminHandler.BusinessSummary())
			admin.GET("/stats/projects", adminHandler.ProjectSummary())
			admin.GET("/stats/business-growth", adminHandler.BusinessGrowth())
			admin.GET("/stats/project-growth", adminHandler.ProjectGrowth())
			admin.GET("/stats/user-growth", adminHandler.UserGrowth())
			admin.GET("/businesses", adminHandler.Businesses)
			admin.GET("/projects", adminHandler.Projects)
		}
	}
}
