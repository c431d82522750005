package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/dermaclinic/dermaclinic-api/internal/config"
	"github.com/dermaclinic/dermaclinic-api/pkg/auth"
	"github.com/dermaclinic/dermaclinic-api/pkg/metrics"
)

type RouterDeps struct {
	Config     *config.Config
	Log        *zap.Logger
	Metrics    *metrics.Collector
	JWTManager *auth.JWTManager
	Patients   *PatientHandler
	Auth       *AuthHandler
}

func NewRouter(deps RouterDeps) *gin.Engine {
	if deps.Config.App.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestID())
	r.Use(RequestLogger(deps.Log))
	r.Use(Metrics(deps.Metrics))
	r.Use(CORS(deps.Config.CORS))
	r.Use(RateLimit(deps.Config.RateLimit))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"version": deps.Config.App.Version,
		})
	})
	r.GET("/metrics", gin.WrapH(metrics.MetricsHandler()))

	api := r.Group("/api/v1")

	authGroup := api.Group("/auth")
	{
		authGroup.POST("/login", deps.Auth.Login)
		authGroup.POST("/refresh", deps.Auth.Refresh)
	}

	protected := api.Group("")
	protected.Use(Authenticate(deps.JWTManager))
	{
		protected.POST("/auth/change-password", deps.Auth.ChangePassword)

		patients := protected.Group("/patients")
		{
			patients.GET("", deps.Patients.List)
			patients.GET("/search", deps.Patients.Search)
			patients.POST("", deps.Patients.Create)
			patients.GET("/:id", deps.Patients.Get)
			patients.PATCH("/:id", deps.Patients.Update)
			patients.DELETE("/:id", deps.Patients.Delete)
		}

		// Not live yet; see stub_handler.go
		protected.GET("/consultations", ComingSoon("consultations"))
		protected.GET("/patients/:id/consultations", ComingSoon("consultations"))
		protected.GET("/photos", ComingSoon("photos"))
		protected.GET("/patients/:id/photos", ComingSoon("photos"))
	}

	return r
}
