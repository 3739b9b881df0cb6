// Package server assembles the gin engine of the API.
package server

import (
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"github.com/noah-isme/school-admin-api/internal/handler"
	"github.com/noah-isme/school-admin-api/internal/middleware"
	"github.com/noah-isme/school-admin-api/internal/models"
	"github.com/noah-isme/school-admin-api/internal/service"
	"github.com/noah-isme/school-admin-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/school-admin-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/school-admin-api/pkg/middleware/requestid"
)

// Options toggle the optional surfaces of the router.
type Options struct {
	AllowedOrigins []string
	EnableDocs     bool
	EnableMetrics  bool
}

// Handlers groups every HTTP handler the router mounts.
type Handlers struct {
	Auth       *handler.AuthHandler
	Subjects   *handler.SubjectHandler
	Classes    *handler.ClassHandler
	Rooms      *handler.RoomHandler
	Students   *handler.StudentHandler
	Teachers   *handler.TeacherHandler
	Principals *handler.PrincipalHandler
	Marks      *handler.MarkHandler
	Health     *handler.HealthHandler
	Metrics    *handler.MetricsHandler
}

// NewRouter builds the engine. session guards every write route.
func NewRouter(h Handlers, session gin.HandlerFunc, metrics *service.MetricsService, log *zap.Logger, opts Options) *gin.Engine {
	binding.EnableDecoderDisallowUnknownFields = true

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(log))
	r.Use(corsmiddleware.New(opts.AllowedOrigins))
	if opts.EnableMetrics {
		r.Use(middleware.Metrics(metrics))
		r.GET("/metrics", h.Metrics.Prometheus)
	}

	r.GET("/health", h.Health.Health)
	r.GET("/ready", h.Health.Ready)
	if opts.EnableDocs {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	auth := r.Group("/auth")
	auth.POST("/login", h.Auth.Login)
	auth.POST("/logout", h.Auth.Logout)
	auth.GET("/me", session, h.Auth.Me)

	admin := []gin.HandlerFunc{session, middleware.RequireRoles(models.RolePrincipal)}
	mountCRUD(r.Group("/subjects"), admin, h.Subjects.List, h.Subjects.Create, h.Subjects.Update, h.Subjects.Delete)
	mountCRUD(r.Group("/classes"), admin, h.Classes.List, h.Classes.Create, h.Classes.Update, h.Classes.Delete)
	mountCRUD(r.Group("/rooms"), admin, h.Rooms.List, h.Rooms.Create, h.Rooms.Update, h.Rooms.Delete)
	mountCRUD(r.Group("/students"), admin, h.Students.List, h.Students.Create, h.Students.Update, h.Students.Delete)
	mountCRUD(r.Group("/teachers"), admin, h.Teachers.List, h.Teachers.Create, h.Teachers.Update, h.Teachers.Delete)
	mountCRUD(r.Group("/principals"), admin, h.Principals.List, h.Principals.Create, h.Principals.Update, h.Principals.Delete)

	marks := r.Group("/marks")
	marks.GET("", h.Marks.List)
	marks.GET("/export", session, h.Marks.Export)
	marks.POST("", session, middleware.RequireRoles(models.RoleTeacher, models.RolePrincipal), h.Marks.Create)

	return r
}

func mountCRUD(g *gin.RouterGroup, guard []gin.HandlerFunc, list, create, update, remove gin.HandlerFunc) {
	g.GET("", list)
	g.POST("", append(guard[:len(guard):len(guard)], create)...)
	g.PUT("/:id", append(guard[:len(guard):len(guard)], update)...)
	g.DELETE("/:id", append(guard[:len(guard):len(guard)], remove)...)
}
