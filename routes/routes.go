// Package routes wires the HTTP surface: middleware, swagger and every
// API route with its permission gate.
package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/bako110/Sonaby/controllers"
	_ "github.com/bako110/Sonaby/docs"
	"github.com/bako110/Sonaby/middleware"
	"github.com/bako110/Sonaby/services"
	"github.com/bako110/Sonaby/services/container"
)

// SetupRouter builds the configured engine over an existing container
func SetupRouter(c *container.ServiceContainer) *gin.Engine {
	r := gin.Default()

	r.Use(func(ctx *gin.Context) {
		ctx.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		ctx.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, Accept, Origin")
		ctx.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		if ctx.Request.Method == http.MethodOptions {
			ctx.AbortWithStatus(http.StatusNoContent)
			return
		}
		ctx.Next()
	})

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	registerRoutes(r, c)
	return r
}

func registerRoutes(r *gin.Engine, c *container.ServiceContainer) {
	api := r.Group("/api")
	registerPublicRoutes(api, c)
	registerAuthenticatedRoutes(api, c)
}

func registerPublicRoutes(api *gin.RouterGroup, c *container.ServiceContainer) {
	api.GET("/ping", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	api.POST("/auth/login", controllers.HandleAuthFunc(c, "login"))
	api.POST("/auth/refresh", controllers.HandleAuthFunc(c, "refresh"))
}

func registerAuthenticatedRoutes(api *gin.RouterGroup, c *container.ServiceContainer) {
	jwtService := c.GetService("jwt").(services.InterfaceJWTService)

	auth := api.Group("/")
	auth.Use(middleware.Authenticate(jwtService))

	perm := middleware.RequirePermission

	// session
	auth.POST("/auth/logout", controllers.HandleAuthFunc(c, "logout"))
	auth.GET("/auth/profile", controllers.HandleAuthFunc(c, "profile"))
	auth.PUT("/auth/password", controllers.HandleAuthFunc(c, "changePassword"))
	auth.POST("/auth/register", perm(middleware.OpUserManage), controllers.HandleAuthFunc(c, "register"))

	// visitors
	visitors := auth.Group("/visitors")
	visitors.GET("", perm(middleware.OpVisitorRead), controllers.HandleVisitorFunc(c, "getVisitors"))
	visitors.GET("/stats", perm(middleware.OpStatsRead), controllers.HandleVisitorFunc(c, "getVisitorStats"))
	visitors.GET("/:id", perm(middleware.OpVisitorRead), controllers.HandleVisitorFunc(c, "getVisitor"))
	visitors.GET("/:id/history", perm(middleware.OpVisitorRead), controllers.HandleVisitorFunc(c, "getVisitorHistory"))
	visitors.POST("", perm(middleware.OpVisitorWrite), controllers.HandleVisitorFunc(c, "createVisitor"))
	visitors.PUT("/:id", perm(middleware.OpVisitorWrite), controllers.HandleVisitorFunc(c, "updateVisitor"))
	visitors.DELETE("/:id", perm(middleware.OpVisitorWrite), controllers.HandleVisitorFunc(c, "deleteVisitor"))

	// visits
	visits := auth.Group("/visits")
	visits.POST("/checkin", perm(middleware.OpVisitWrite), controllers.HandleVisitFunc(c, "checkIn"))
	visits.PUT("/:id/checkout", perm(middleware.OpVisitWrite), controllers.HandleVisitFunc(c, "checkOut"))
	visits.GET("", perm(middleware.OpVisitRead), controllers.HandleVisitFunc(c, "getVisits"))
	visits.GET("/active", perm(middleware.OpVisitRead), controllers.HandleVisitFunc(c, "getActiveVisits"))
	visits.GET("/stats", perm(middleware.OpStatsRead), controllers.HandleVisitFunc(c, "getVisitStats"))
	visits.GET("/:id", perm(middleware.OpVisitRead), controllers.HandleVisitFunc(c, "getVisit"))
	visits.DELETE("/:id", perm(middleware.OpVisitWrite), controllers.HandleVisitFunc(c, "deleteVisit"))

	// blacklist
	blacklist := auth.Group("/nondesirables")
	blacklist.POST("", perm(middleware.OpBlacklistWrite), controllers.HandleNonDesirableFunc(c, "blacklist"))
	blacklist.GET("", perm(middleware.OpBlacklistRead), controllers.HandleNonDesirableFunc(c, "getEntries"))
	blacklist.GET("/status/:id", perm(middleware.OpBlacklistRead), controllers.HandleNonDesirableFunc(c, "getStatus"))
	blacklist.GET("/:id", perm(middleware.OpBlacklistRead), controllers.HandleNonDesirableFunc(c, "getEntry"))
	blacklist.DELETE("/:id", perm(middleware.OpBlacklistWrite), controllers.HandleNonDesirableFunc(c, "unblacklist"))

	// incidents
	incidents := auth.Group("/incidents")
	incidents.POST("", perm(middleware.OpIncidentWrite), controllers.HandleIncidentFunc(c, "reportIncident"))
	incidents.GET("", perm(middleware.OpIncidentRead), controllers.HandleIncidentFunc(c, "getIncidents"))
	incidents.GET("/visitor/:id/count", perm(middleware.OpIncidentRead), controllers.HandleIncidentFunc(c, "getVisitorIncidentCount"))
	incidents.GET("/:id", perm(middleware.OpIncidentRead), controllers.HandleIncidentFunc(c, "getIncident"))
	incidents.PUT("/:id/resolve", perm(middleware.OpIncidentWrite), controllers.HandleIncidentFunc(c, "resolveIncident"))
	incidents.DELETE("/:id", perm(middleware.OpIncidentWrite), controllers.HandleIncidentFunc(c, "deleteIncident"))

	// SOS alerts
	sos := auth.Group("/sos")
	sos.POST("", perm(middleware.OpSOSWrite), controllers.HandleSOSFunc(c, "trigger"))
	sos.GET("", perm(middleware.OpSOSRead), controllers.HandleSOSFunc(c, "getAlerts"))
	sos.GET("/active", perm(middleware.OpSOSRead), controllers.HandleSOSFunc(c, "getActiveAlerts"))
	sos.GET("/stats", perm(middleware.OpStatsRead), controllers.HandleSOSFunc(c, "getSOSStats"))
	sos.GET("/:id", perm(middleware.OpSOSRead), controllers.HandleSOSFunc(c, "getAlert"))
	sos.PUT("/:id/resolve", perm(middleware.OpSOSWrite), controllers.HandleSOSFunc(c, "resolve"))

	// sites
	sites := auth.Group("/sites")
	sites.GET("", perm(middleware.OpSiteRead), controllers.HandleSiteFunc(c, "getSites"))
	sites.GET("/:id", perm(middleware.OpSiteRead), controllers.HandleSiteFunc(c, "getSite"))
	sites.POST("", perm(middleware.OpSiteManage), controllers.HandleSiteFunc(c, "createSite"))
	sites.PUT("/:id", perm(middleware.OpSiteManage), controllers.HandleSiteFunc(c, "updateSite"))
	sites.DELETE("/:id", perm(middleware.OpSiteManage), controllers.HandleSiteFunc(c, "deleteSite"))

	// checkpoints
	checkpoints := auth.Group("/checkpoints")
	checkpoints.GET("", perm(middleware.OpCheckpointRead), controllers.HandleCheckpointFunc(c, "getCheckpoints"))
	checkpoints.GET("/:id", perm(middleware.OpCheckpointRead), controllers.HandleCheckpointFunc(c, "getCheckpoint"))
	checkpoints.POST("", perm(middleware.OpCheckpointManage), controllers.HandleCheckpointFunc(c, "createCheckpoint"))
	checkpoints.PUT("/:id", perm(middleware.OpCheckpointManage), controllers.HandleCheckpointFunc(c, "updateCheckpoint"))
	checkpoints.DELETE("/:id", perm(middleware.OpCheckpointManage), controllers.HandleCheckpointFunc(c, "deleteCheckpoint"))

	// organizational services
	orgServices := auth.Group("/services")
	orgServices.GET("", perm(middleware.OpServiceRead), controllers.HandleServiceFunc(c, "getServices"))
	orgServices.GET("/:id", perm(middleware.OpServiceRead), controllers.HandleServiceFunc(c, "getService"))
	orgServices.GET("/:id/activity", perm(middleware.OpServiceRead), controllers.HandleServiceFunc(c, "getServiceActivity"))
	orgServices.POST("", perm(middleware.OpServiceManage), controllers.HandleServiceFunc(c, "createService"))
	orgServices.PUT("/:id", perm(middleware.OpServiceManage), controllers.HandleServiceFunc(c, "updateService"))
	orgServices.DELETE("/:id", perm(middleware.OpServiceManage), controllers.HandleServiceFunc(c, "deleteService"))

	// agents
	agents := auth.Group("/agents")
	agents.GET("", perm(middleware.OpAgentRead), controllers.HandleAgentFunc(c, "getAgents"))
	agents.GET("/:id", perm(middleware.OpAgentRead), controllers.HandleAgentFunc(c, "getAgent"))
	agents.POST("", perm(middleware.OpAgentManage), controllers.HandleAgentFunc(c, "createAgent"))
	agents.PUT("/:id", perm(middleware.OpAgentManage), controllers.HandleAgentFunc(c, "updateAgent"))
	agents.DELETE("/:id", perm(middleware.OpAgentManage), controllers.HandleAgentFunc(c, "deleteAgent"))

	// appointments
	appointments := auth.Group("/appointments")
	appointments.GET("", perm(middleware.OpAppointmentRead), controllers.HandleAppointmentFunc(c, "getAppointments"))
	appointments.GET("/:id", perm(middleware.OpAppointmentRead), controllers.HandleAppointmentFunc(c, "getAppointment"))
	appointments.POST("", perm(middleware.OpAppointmentWrite), controllers.HandleAppointmentFunc(c, "createAppointment"))
	appointments.PUT("/:id", perm(middleware.OpAppointmentWrite), controllers.HandleAppointmentFunc(c, "updateAppointment"))
	appointments.PUT("/:id/validate", perm(middleware.OpAppointmentWrite), controllers.HandleAppointmentFunc(c, "validateAppointment"))
	appointments.PUT("/:id/cancel", perm(middleware.OpAppointmentWrite), controllers.HandleAppointmentFunc(c, "cancelAppointment"))
	appointments.DELETE("/:id", perm(middleware.OpAppointmentWrite), controllers.HandleAppointmentFunc(c, "deleteAppointment"))

	// files
	files := auth.Group("/files")
	files.POST("", perm(middleware.OpFileWrite), controllers.HandleFileFunc(c, "uploadFile"))
	files.GET("", perm(middleware.OpFileRead), controllers.HandleFileFunc(c, "getFiles"))
	files.GET("/:id/download", perm(middleware.OpFileRead), controllers.HandleFileFunc(c, "downloadFile"))
	files.GET("/:id", perm(middleware.OpFileRead), controllers.HandleFileFunc(c, "getFile"))
	files.DELETE("/:id", perm(middleware.OpFileWrite), controllers.HandleFileFunc(c, "deleteFile"))

	// staff accounts
	users := auth.Group("/users")
	users.GET("", perm(middleware.OpUserManage), controllers.HandleUserFunc(c, "getUsers"))
	users.GET("/:id", perm(middleware.OpUserManage), controllers.HandleUserFunc(c, "getUser"))
	users.PUT("/:id", perm(middleware.OpUserManage), controllers.HandleUserFunc(c, "updateUser"))
	users.DELETE("/:id", perm(middleware.OpUserManage), controllers.HandleUserFunc(c, "deleteUser"))

	// dashboard
	auth.GET("/stats/dashboard", perm(middleware.OpStatsRead), controllers.HandleStatsFunc(c, "getDashboard"))
}
