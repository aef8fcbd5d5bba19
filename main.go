package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"adminpanel/config"
	"adminpanel/cron"
	"adminpanel/database"
	adminRepoPkg "adminpanel/database/repository/admin"
	userRepoPkg "adminpanel/database/repository/user"
	versionRepoPkg "adminpanel/database/repository/version"
	wallpaperRepoPkg "adminpanel/database/repository/wallpaper"
	"adminpanel/handlers"
	"adminpanel/middleware"
	"adminpanel/routes"
	"adminpanel/services/auth"
	"adminpanel/services/otp"
	"adminpanel/services/storage"
	"adminpanel/services/user"
	"adminpanel/services/version"
	"adminpanel/services/wallpaper"
	"adminpanel/utils"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := utils.InitializeLogger(cfg.IsProduction(), cfg.LogLevel)
	defer logger.Sync()

	for _, w := range cfg.Warnings() {
		logger.Warn("config: " + w)
	}
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	mongoClient, db, err := database.InitDB(cfg)
	if err != nil {
		logger.Fatal("main: failed to connect to MongoDB", zap.Error(err))
	}
	logger.Info("MongoDB connected", zap.String("database", cfg.DatabaseName))

	otpCache, err := utils.NewOTPCacheClient(cfg)
	if err != nil {
		logger.Fatal("main: failed to connect to Redis", zap.Error(err))
	}

	// repositories.
	userRepo := userRepoPkg.NewMongoUserRepo(ctx, db)
	adminRepo := adminRepoPkg.NewMongoAdminRepo(ctx, db)
	versionRepo := versionRepoPkg.NewMongoVersionRepo(ctx, db)
	wallpaperRepo := wallpaperRepoPkg.NewMongoWallpaperRepo(ctx, db)

	// OTP gateway.
	otpExpiry := time.Duration(cfg.OTPExpirySeconds) * time.Second
	var gateway otp.Gateway
	if cfg.OTPlessEnabled() {
		gateway = otp.NewOTPlessGateway(otp.OTPlessConfig{
			BaseURL:      cfg.OTPlessBaseURL,
			ClientID:     cfg.OTPlessClientID,
			ClientSecret: cfg.OTPlessClientSecret,
			CountryCode:  cfg.OTPCountryCode,
			Expiry:       cfg.OTPExpirySeconds,
			OTPLength:    cfg.OTPLength,
		})
	} else {
		gateway = otp.NewLocalGateway(otpCache, cfg.OTPLength, otpExpiry)
	}

	// image storage.
	imageStore, err := newImageStore(cfg)
	if err != nil {
		logger.Fatal("main: failed to initialize image storage", zap.Error(err))
	}
	queueClient := asynq.NewClient(cron.RedisOpt(cfg))
	var reaper storage.Reaper = storage.NewQueueReaper(queueClient)

	worker := cron.NewImageWorker(cfg, imageStore, wallpaperRepo)
	if err := worker.Start(); err != nil {
		logger.Error("main: image worker not started; falling back to inline deletion", zap.Error(err))
		reaper = storage.SyncReaper{Store: imageStore}
	}

	// services.
	tokens := utils.NewTokenIssuer(cfg.JWTSecret, cfg.JWTExpire)
	authService := &auth.DefaultAuthService{
		Users:   userRepo,
		Admins:  adminRepo,
		Gateway: gateway,
		Orders:  auth.NewRedisOrderStore(otpCache, auth.OrderBindingTTL),
		Tokens:  tokens,
	}
	userService := &user.DefaultUserService{Repo: userRepo}
	versionService := &version.DefaultVersionService{Repo: versionRepo}
	wallpaperService := &wallpaper.DefaultWallpaperService{
		Repo:   wallpaperRepo,
		Store:  imageStore,
		Reaper: reaper,
	}

	health := utils.NewHealthMonitor(otpCache, mongoClient, 30*time.Second)
	health.Start(ctx)

	handlerBundle := &handlers.HandlerBundle{
		UserRepo:   userRepo,
		AdminRepo:  adminRepo,
		Tokens:     tokens,
		Health:     health,
		Auth:       handlers.NewAuthHandler(authService),
		Users:      handlers.NewUserHandler(userService, authService),
		Versions:   handlers.NewVersionHandler(versionService),
		Wallpapers: handlers.NewWallpaperHandler(wallpaperService),
	}

	// Create the Gin router.
	router := gin.New()
	router.MaxMultipartMemory = 32 << 20
	if err := router.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		logger.Fatal("main: invalid TRUSTED_PROXIES", zap.Error(err))
	}
	router.Use(utils.ErrorHandler())
	router.Use(middleware.RequestLogger(logger))
	router.Use(middleware.RateLimitMiddleware(cfg.MaxRequestsPerWindow, cfg.RateLimitWindow))

	uploadDir := ""
	if cfg.StorageDriver != "cloudinary" {
		uploadDir = cfg.UploadDir
	}
	routes.RegisterRoutes(router, handlerBundle, uploadDir)

	srv := &http.Server{
		Addr:    "0.0.0.0:" + cfg.AppPort,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Sugar().Info("main: server is shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("main: server forced to shutdown", zap.Error(err))
	}
	worker.Shutdown()
	if err := queueClient.Close(); err != nil {
		logger.Warn("main: failed to close queue client", zap.Error(err))
	}
	if err := otpCache.Close(); err != nil {
		logger.Warn("main: failed to close Redis client", zap.Error(err))
	}
	if err := mongoClient.Disconnect(shutdownCtx); err != nil {
		logger.Warn("main: failed to disconnect MongoDB", zap.Error(err))
	}

	logger.Sugar().Info("main: server stopped gracefully")
}

func newImageStore(cfg config.Config) (storage.ImageStore, error) {
	if cfg.StorageDriver == "cloudinary" {
		return storage.NewCloudinaryImageStore(
			cfg.CloudinaryURL,
			cfg.CloudinaryCloudName,
			cfg.CloudinaryAPIKey,
			cfg.CloudinaryAPISecret,
			cfg.CloudinaryFolder,
		)
	}
	return storage.NewLocalImageStore(cfg.UploadDir, cfg.DomainURL)
}
