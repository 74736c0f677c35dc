package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/jbbaek/likelion-food/internal/auth"
	"github.com/jbbaek/likelion-food/internal/cache"
	"github.com/jbbaek/likelion-food/internal/config"
	"github.com/jbbaek/likelion-food/internal/db"
	"github.com/jbbaek/likelion-food/internal/food"
	"github.com/jbbaek/likelion-food/internal/logging"
	"github.com/jbbaek/likelion-food/internal/middleware"
	"github.com/jbbaek/likelion-food/internal/recipe"
	"github.com/jbbaek/likelion-food/internal/recommend"
	"github.com/jbbaek/likelion-food/internal/record"
	"github.com/jbbaek/likelion-food/internal/router"
	"github.com/jbbaek/likelion-food/internal/storage"
)

var rootCmd = &cobra.Command{
	Use:   "food-api",
	Short: "Food tracking API server",
	Long:  "food-api serves the food catalogue, intake records, weekly calorie charts, recipes and recommendations.",
	RunE:  runServe,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP server",
	RunE:  runServe,
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema and exit",
	RunE:  runMigrate,
}

var recipesCmd = &cobra.Command{
	Use:   "recipes",
	Short: "Manage the recipe catalogue artifact",
}

var recipesUploadCmd = &cobra.Command{
	Use:   "upload",
	Short: "Upload a local recipes.jsonl to R2 under RECIPES_R2_KEY",
	RunE:  runRecipesUpload,
}

var recipesCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Parse the configured recipe catalogue and report what was loaded",
	RunE:  runRecipesCheck,
}

func init() {
	recipesUploadCmd.Flags().String("file", "", "local JSONL file (defaults to RECIPES_PATH)")

	recipesCmd.AddCommand(recipesUploadCmd)
	recipesCmd.AddCommand(recipesCheckCmd)

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(recipesCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func setup() (*config.Config, *logrus.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	return cfg, logging.New(cfg.LogLevel, cfg.LogFormat), nil
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ───────────────────────── DB ─────────────────────────
	pool, err := db.ConnectPostgres(ctx, cfg.DatabaseURL, log)
	if err != nil {
		return err
	}
	defer pool.Close()

	if err := db.InitSchema(ctx, pool, log); err != nil {
		return err
	}

	// ───────────────────────── CACHE ─────────────────────────
	store, closeCache, err := openCache(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeCache()

	// ───────────────────────── AUTH ─────────────────────────
	sessions, err := auth.NewSessions(cfg.JWTSecret, cfg.SessionTTL, store)
	if err != nil {
		return err
	}
	authService := auth.NewService(auth.NewPostgresUserRepository(pool))

	// ───────────────────────── DOMAIN ─────────────────────────
	foodService := food.NewService(food.NewPostgresRepository(pool), store, log)
	recordService := record.NewService(record.NewPostgresRepository(pool))
	recommender := recommend.NewClient(cfg.AIServerURL, cfg.AITimeout)
	if !recommender.Configured() {
		log.Warn("AI_SERVER_URL not set, /api/recommend will answer 503")
	}

	catalogue := loadRecipes(ctx, cfg, log)

	limiter := middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst, log)
	limiter.StartCleanup(time.Minute, ctx.Done())

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := router.NewRouter(router.Deps{
		Log:       log,
		Origins:   cfg.Origins(),
		Sessions:  sessions,
		Limiter:   limiter,
		Auth:      auth.NewHandler(authService, sessions, cfg.IsProduction(), log),
		Foods:     food.NewHandler(foodService, log),
		Records:   record.NewHandler(recordService, log),
		Recipes:   recipe.NewHandler(catalogue),
		Recommend: recommend.NewHandler(recommender, log),
	})

	// ───────────────────────── START ─────────────────────────
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.WithField("port", cfg.Port).Info("API listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func runMigrate(cmd *cobra.Command, args []string) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	pool, err := db.ConnectPostgres(ctx, cfg.DatabaseURL, log)
	if err != nil {
		return err
	}
	defer pool.Close()

	return db.InitSchema(ctx, pool, log)
}

func runRecipesUpload(cmd *cobra.Command, args []string) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}
	if cfg.RecipesR2Key == "" {
		return errors.New("RECIPES_R2_KEY is not set")
	}

	path, _ := cmd.Flags().GetString("file")
	if path == "" {
		path = cfg.RecipesPath
	}

	// refuse to publish a file the server could not serve
	cat, stats, err := recipe.LoadFile(path)
	if err != nil {
		return err
	}
	if cat.Len() == 0 {
		return fmt.Errorf("%s contains no recipes", path)
	}

	r2, err := storage.NewR2Client(cmd.Context(), r2Config(cfg))
	if err != nil {
		return err
	}
	if err := r2.UploadFile(cmd.Context(), path, cfg.RecipesR2Key, "application/x-ndjson"); err != nil {
		return err
	}

	log.WithFields(logrus.Fields{
		"key":       cfg.RecipesR2Key,
		"recipes":   stats.Loaded,
		"malformed": stats.Malformed,
	}).Info("recipes uploaded")
	return nil
}

func runRecipesCheck(cmd *cobra.Command, args []string) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}
	if loadRecipes(cmd.Context(), cfg, log) == nil {
		return errors.New("recipe catalogue could not be loaded")
	}
	return nil
}

func openCache(ctx context.Context, cfg *config.Config, log logrus.FieldLogger) (cache.Client, func(), error) {
	if cfg.RedisAddr == "" {
		log.Warn("REDIS_ADDR not set, using in-process cache")
		return cache.NewMemory(), func() {}, nil
	}

	rc, err := cache.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		return nil, nil, err
	}
	log.WithField("addr", cfg.RedisAddr).Info("connected to redis")
	return rc, func() { _ = rc.Close() }, nil
}

// loadRecipes returns nil when no catalogue could be loaded; the recipe
// routes then answer 503.
func loadRecipes(ctx context.Context, cfg *config.Config, log logrus.FieldLogger) *recipe.Catalogue {
	log = logging.Component(log, "recipe")

	var (
		cat   *recipe.Catalogue
		stats recipe.LoadStats
		err   error
		from  string
	)
	if cfg.RecipesR2Key != "" {
		from = "r2://" + cfg.R2Bucket + "/" + cfg.RecipesR2Key
		var r2 *storage.R2Client
		r2, err = storage.NewR2Client(ctx, r2Config(cfg))
		if err == nil {
			cat, stats, err = recipe.LoadObject(ctx, r2, cfg.RecipesR2Key)
		}
	} else {
		from = cfg.RecipesPath
		cat, stats, err = recipe.LoadFile(cfg.RecipesPath)
	}

	if err != nil {
		log.WithError(err).WithField("source", from).Warn("recipe catalogue not loaded")
		return nil
	}

	log.WithFields(logrus.Fields{
		"source":    from,
		"recipes":   stats.Loaded,
		"malformed": stats.Malformed,
		"no_seq":    stats.NoSeq,
	}).Info("recipe catalogue loaded")
	return cat
}

func r2Config(cfg *config.Config) storage.R2Config {
	return storage.R2Config{
		Endpoint:  cfg.R2Endpoint,
		AccessKey: cfg.R2AccessKey,
		SecretKey: cfg.R2SecretKey,
		Bucket:    cfg.R2Bucket,
	}
}
