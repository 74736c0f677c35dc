package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/jbbaek/likelion-food/internal/auth"
	"github.com/jbbaek/likelion-food/internal/food"
	"github.com/jbbaek/likelion-food/internal/metrics"
	"github.com/jbbaek/likelion-food/internal/middleware"
	"github.com/jbbaek/likelion-food/internal/recipe"
	"github.com/jbbaek/likelion-food/internal/recommend"
	"github.com/jbbaek/likelion-food/internal/record"
)

// Deps are the handlers and middleware the routes are built from.
type Deps struct {
	Log      logrus.FieldLogger
	Origins  []string
	Sessions *auth.Sessions
	Limiter  *middleware.RateLimiter

	Auth      *auth.Handler
	Foods     *food.Handler
	Records   *record.Handler
	Recipes   *recipe.Handler
	Recommend *recommend.Handler
}

func NewRouter(d Deps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLog(d.Log))

	r.Use(cors.New(cors.Config{
		AllowOrigins:     d.Origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// ───────────────────────── HEALTH ─────────────────────────
	health := func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
	r.GET("/health", health)
	r.GET("/healthz", health)
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	requireSession := middleware.RequireSession(d.Sessions, d.Log)
	loadSession := middleware.LoadSession(d.Sessions, d.Log)
	limited := d.Limiter.Handler()

	api := r.Group("/api")

	// ───────────────────────── AUTH ─────────────────────────
	api.POST("/signup", limited, d.Auth.Signup)
	api.POST("/login", limited, d.Auth.Login)
	api.POST("/logout", loadSession, d.Auth.Logout)
	api.GET("/me", requireSession, d.Auth.Me)

	// ───────────────────────── FOODS ─────────────────────────
	foods := api.Group("/foods")
	{
		foods.GET("", d.Foods.List)
		foods.GET("/autocomplete", d.Foods.Autocomplete)
		foods.GET("/by-initial", d.Foods.ByInitial)
		foods.GET("/:id", d.Foods.Get)
	}

	// ───────────────────────── RECORDS ─────────────────────────
	records := api.Group("/records", requireSession)
	{
		records.POST("", d.Records.Add)
		records.GET("", d.Records.List)
		records.DELETE("/:id", d.Records.Delete)
		records.GET("/summary", d.Records.Summary)

		// paths used by the existing frontend
		records.POST("/add", d.Records.Add)
		records.GET("/list", d.Records.List)
		records.DELETE("/delete/:id", d.Records.Delete)
	}

	api.GET("/weekly-summary", requireSession, d.Records.WeeklySummary)
	api.GET("/weekly-chart", requireSession, d.Records.WeeklyChart)
	api.GET("/weekly-chart.html", requireSession, d.Records.WeeklyChartHTML)

	// ───────────────────────── RECIPES ─────────────────────────
	api.GET("/recipes/by-seq/:seq", d.Recipes.BySeq)
	api.POST("/recommend", loadSession, limited, d.Recommend.Recommend)

	return r
}
