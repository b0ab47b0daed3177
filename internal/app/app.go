package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"campus_lms_backend/internal/config"
	"campus_lms_backend/internal/controller"
	"campus_lms_backend/internal/repository"
	"campus_lms_backend/internal/service"
	"campus_lms_backend/pkg/configwatcher"
	"campus_lms_backend/pkg/database"
	"campus_lms_backend/pkg/logger"
	"campus_lms_backend/pkg/monitoring"
	"campus_lms_backend/pkg/security"
	"campus_lms_backend/pkg/tracing"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config          *config.Config
	Router          *gin.Engine
	DB              *gorm.DB
	Redis           *redis.Client
	configCallbacks []func(*config.Config)
}

type repositories struct {
	user          *repository.UserRepository
	campus        *repository.CampusRepository
	ladder        *repository.LadderRepository
	course        *repository.CourseRepository
	courseGroup   *repository.CourseGroupRepository
	enrollment    *repository.EnrollmentRepository
	videoProgress *repository.VideoProgressRepository
	quizResult    *repository.QuizResultRepository
	onsite        *repository.OnsiteCompletionRepository
	exportArchive *repository.ExportArchiveRepository
	form          *repository.FormRepository
}

type services struct {
	auth        *service.AuthService
	user        *service.UserService
	course      *service.CourseService
	ladder      *service.LadderService
	courseGroup *service.CourseGroupService
	campus      *service.CampusService
	enrollment  *service.EnrollmentService
	progress    *service.ProgressService
	quiz        *service.QuizService
	report      *service.ReportService
	completion  *service.CompletionService
	export      *service.ExportService
	form        *service.FormService
}

type controllers struct {
	auth       *controller.AuthController
	user       *controller.UserController
	course     *controller.CourseController
	catalog    *controller.CatalogController
	enrollment *controller.EnrollmentController
	report     *controller.ReportController
	completion *controller.CompletionController
	export     *controller.ExportController
	form       *controller.FormController
	health     *controller.HealthController
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:          repository.NewUserRepository(db),
		campus:        repository.NewCampusRepository(db),
		ladder:        repository.NewLadderRepository(db),
		course:        repository.NewCourseRepository(db),
		courseGroup:   repository.NewCourseGroupRepository(db),
		enrollment:    repository.NewEnrollmentRepository(db),
		videoProgress: repository.NewVideoProgressRepository(db),
		quizResult:    repository.NewQuizResultRepository(db),
		onsite:        repository.NewOnsiteCompletionRepository(db),
		exportArchive: repository.NewExportArchiveRepository(db),
		form:          repository.NewFormRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, rdb *redis.Client) (*services, error) {
	s := &services{}

	storage, err := service.NewStorageProvider(cfg)
	if err != nil {
		return nil, err
	}

	s.auth = service.NewAuthService(repos.user, cfg)
	s.user = service.NewUserService(repos.user)
	s.course = service.NewCourseService(repos.course, repos.ladder)
	s.ladder = service.NewLadderService(repos.ladder)
	s.courseGroup = service.NewCourseGroupService(repos.courseGroup, repos.course)
	s.campus = service.NewCampusService(repos.campus)
	s.enrollment = service.NewEnrollmentService(repos.enrollment, repos.course, repos.videoProgress, repos.quizResult)
	s.progress = service.NewProgressService(repos.videoProgress, repos.course, s.enrollment)
	s.quiz = service.NewQuizService(repos.quizResult, repos.course, s.enrollment)

	s.report = service.NewReportService(
		repos.user,
		repos.course,
		repos.courseGroup,
		repos.ladder,
		repos.enrollment,
		repos.videoProgress,
		repos.quizResult,
		repos.onsite,
		rdb,
		cfg,
	)

	s.completion = service.NewCompletionService(repos.onsite, repos.user, repos.course, s.report)
	s.export = service.NewExportService(repos.exportArchive, storage)
	s.form = service.NewFormService(repos.form)

	return s, nil
}

func (a *App) initControllers(s *services, db *gorm.DB) *controllers {
	return &controllers{
		auth:       controller.NewAuthController(s.auth),
		user:       controller.NewUserController(s.user),
		course:     controller.NewCourseController(s.course),
		catalog:    controller.NewCatalogController(s.ladder, s.courseGroup, s.campus),
		enrollment: controller.NewEnrollmentController(s.enrollment, s.progress, s.quiz),
		report:     controller.NewReportController(s.report),
		completion: controller.NewCompletionController(s.completion),
		export:     controller.NewExportController(s.report, s.completion, s.export),
		form:       controller.NewFormController(s.form),
		health:     controller.NewHealthController(db),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())

	maxRequests := cfg.RateLimit.MaxRequests
	if maxRequests <= 0 {
		maxRequests = 10000
	}
	window := time.Duration(cfg.RateLimit.WindowMinutes) * time.Minute
	if window <= 0 {
		window = time.Minute
	}
	router.Use(security.RateLimiter(maxRequests, window))

	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)
	defer logger.Log.Sync()

	logger.Log.Info("Logger initialized successfully")

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		logger.Log.Fatal("Failed to initialize redis", zap.Error(err))
	}

	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
	}

	repos := app.initRepositories(db)
	services, err := app.initServices(repos, cfg, rdb)
	if err != nil {
		logger.Log.Fatal("Failed to initialize services", zap.Error(err))
	}
	controllers := app.initControllers(services, db)

	monitoring.Init()

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		if _, err := tracing.InitTracer("campus-lms", cfg.Tracing.CollectorEndpoint); err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
	}

	app.registerRoutes(router, controllers, repos, cfg)

	// Hot-reload the YAML config; services read through the shared pointer.
	app.RegisterConfigCallback(func(newCfg *config.Config) {
		cfg.Report = newCfg.Report
		cfg.RateLimit = newCfg.RateLimit
		cfg.CORS = newCfg.CORS
	})
	go configwatcher.WatchConfig(filepath.Join("configs", "config.yaml"), cfg, func(raw interface{}) {
		newCfg, ok := raw.(*config.Config)
		if !ok {
			return
		}
		logger.Log.Info("Config reloaded")
		for _, cb := range app.configCallbacks {
			cb(newCfg)
		}
	})

	return app
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	go func() {
		log.Printf("Server running on port %s", a.Config.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exiting")
}
