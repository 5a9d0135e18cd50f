package main

import (
	"context"
	"time"

	// Load .env BEFORE importing the function package
	_ "github.com/joho/godotenv/autoload"

	// Blank-import the function package so the init() runs
	_ "talkmap"

	emulatorAuth "talkmap/internal/auth"
	"talkmap/internal/config"
	"talkmap/internal/domain"
	"talkmap/internal/logger"
	"talkmap/internal/repository"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"github.com/GoogleCloudPlatform/functions-framework-go/funcframework"
	"github.com/sirupsen/logrus"
)

const (
	localAdminEmail    = "admin@localhost.com"
	localAdminPassword = "admin123"
)

// the main function starts the Functions Framework server - only needed when running locally
func main() {
	cfg, err := config.Load()
	log := logger.New("event-dashboard-server", cfg.LogLevel)
	if err != nil {
		log.WithError(err).Fatal("Invalid configuration")
	}

	hostname := ""
	if cfg.LocalOnly {
		hostname = "127.0.0.1"
	}

	// Seed an admin into the Auth Emulator so sign-in works out of the box
	if cfg.AuthEmulatorHost != "" && !cfg.DevMode {
		go createLocalAdminUser(cfg, log)
	}

	log.Info("Server starting on http://127.0.0.1:" + cfg.Port)
	log.Info("Swagger UI: http://127.0.0.1:" + cfg.Port + "/swagger/index.html")

	if err := funcframework.StartHostPort(hostname, cfg.Port); err != nil {
		log.WithError(err).Fatal("funcframework.StartHostPort failed")
	}
}

func createLocalAdminUser(cfg config.Config, log *logrus.Entry) {
	// Give the server/emulator a split second to settle
	time.Sleep(1 * time.Second)

	ctx := context.Background()
	adminUID := cfg.AdminUID
	if adminUID == "" {
		log.Warn("[Admin Setup] Skipping local user creation: FIRESTORE_ADMIN_UID not set")
		return
	}
	log = log.WithField(logger.FldUser, adminUID)

	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: cfg.ProjectID})
	if err != nil {
		log.WithError(err).Warn("[Admin Setup] Failed to init firebase app")
		return
	}
	client, err := app.Auth(ctx)
	if err != nil {
		log.WithError(err).Warn("[Admin Setup] Failed to get auth client")
		return
	}

	if u, err := client.GetUser(ctx, adminUID); err == nil {
		log.Infof("[Admin Setup] User '%s' already exists", u.DisplayName)
	} else {
		params := (&auth.UserToCreate{}).
			UID(adminUID).
			Email(localAdminEmail).
			EmailVerified(true).
			Password(localAdminPassword).
			DisplayName("Local Admin")
		if _, err := client.CreateUser(ctx, params); err != nil {
			log.WithError(err).Error("[Admin Setup] Failed to create user (Emulator might be down)")
			return
		}
		log.Info("[Admin Setup] Created user")
	}

	// The role lives in the users collection, not in the identity
	fs, err := firestore.NewClientWithDatabase(ctx, cfg.ProjectID, cfg.DatabaseID)
	if err != nil {
		log.WithError(err).Warn("[Admin Setup] Failed to create firestore client")
		return
	}
	defer fs.Close()

	profiles := repository.NewProfileRepository(fs)
	if err := profiles.SaveProfile(ctx, domain.UserProfile{UID: adminUID, Role: domain.RoleAdmin}); err != nil {
		log.WithError(err).Warn("[Admin Setup] Failed to save admin profile")
		return
	}

	log.WithField("email", localAdminEmail).Info("[Admin Setup] Sign in with the local admin credentials")
	token, err := emulatorAuth.GenerateEmulatorToken(cfg.ProjectID, adminUID, localAdminEmail, 24*time.Hour)
	if err != nil {
		log.WithError(err).Warn("[Admin Setup] Failed to generate emulator token")
		return
	}
	log.Debugf("[Admin Setup] Emulator ID token: Bearer %s", token)
}
