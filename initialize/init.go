package initialize

import (
	"fmt"
	"net/http"

	"rps-backend/app/controllers"
	"rps-backend/app/db"
	jwtutil "rps-backend/app/jwt"
	"rps-backend/app/mail"
	"rps-backend/app/middleware"
	"rps-backend/app/models"
	"rps-backend/app/openai"
	"rps-backend/app/repo"
	"rps-backend/app/services"
	"rps-backend/app/spotify"
	"rps-backend/config"
	"rps-backend/global"
	"rps-backend/router"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type App struct {
	Cfg     config.Config
	DB      *gorm.DB
	Router  http.Handler
	HTTP    *controllers.HTTPController
	Auth    *controllers.AuthController
	Admin   *controllers.AdminController
	Spotify *controllers.SpotifyController
	Chat    *controllers.ChatController
	Users   *services.UserService
}

// disabledMailer stands in when mail is switched off in config; sends are
// logged and reported as failed so signup responses still carry the warning.
type disabledMailer struct{}

func (disabledMailer) SendVerification(recipient, verificationURL string) error {
	global.Logger.Warn().Str("recipient", recipient).Msg("mail disabled, verification link not sent")
	return fmt.Errorf("mail disabled")
}

func Build(configPath string) (*App, error) {
	// Load config
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	global.Config = *cfg

	// Connect DB
	gdb, err := db.Connect(db.Config{Host: cfg.DB.Host, Port: cfg.DB.Port, User: cfg.DB.User, Password: cfg.DB.Pass, DBName: cfg.DB.Name})
	if err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}
	global.Mdb = gdb

	// Migrate
	if err := gdb.AutoMigrate(&models.User{}, &models.EmailVerification{}); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}

	// Redis is optional; without it the Spotify token cache stays in-process.
	if cfg.Redis.Addr != "" {
		global.Rdb = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
	}

	// Services
	userRepo := repo.NewUserRepository(gdb)
	verifRepo := repo.NewVerificationRepository(gdb)
	userSvc := services.NewUserService(userRepo)
	verifSvc := services.NewVerificationService(verifRepo, userRepo, cfg.BaseURL)
	if cfg.Owner.Username != "" && cfg.Owner.Password != "" {
		if err := userSvc.EnsureOwner(cfg.Owner.Username, cfg.Owner.Password, cfg.Owner.Email); err != nil {
			global.Logger.Error().Err(err).Msg("seed owner failed")
		}
	}

	var mailer controllers.Mailer = disabledMailer{}
	if cfg.Mail.Enabled {
		mailer = mail.NewClient(cfg.Mail)
	}

	// Controllers
	httpCtrl := controllers.NewHTTPController(gdb)
	signer := &jwtutil.Signer{Secret: []byte(cfg.JWT.Secret), Issuer: cfg.JWT.Issuer, ExpMin: cfg.JWT.ExpMin}
	authCtrl := controllers.NewAuthController(userSvc, verifSvc, signer, mailer, cfg.Verify)
	adminCtrl := controllers.NewAdminController(userSvc)
	spotifyCtrl := controllers.NewSpotifyController(spotify.NewClient(cfg.Spotify.ClientID, cfg.Spotify.ClientSecret, global.Rdb))
	chatCtrl := controllers.NewChatController(openai.NewClient(cfg.OpenAI.APIKey, cfg.OpenAI.Model))
	mw := &middleware.Auth{Signer: signer, Users: userSvc}

	// Router
	h := router.NewRouter(httpCtrl, authCtrl, adminCtrl, spotifyCtrl, chatCtrl, mw, cfg.CORS.Origins)
	// Wrap with logging middleware
	h = middleware.Logging(h)

	return &App{Cfg: *cfg, DB: gdb, Router: h, HTTP: httpCtrl, Auth: authCtrl, Admin: adminCtrl, Spotify: spotifyCtrl, Chat: chatCtrl, Users: userSvc}, nil
}
