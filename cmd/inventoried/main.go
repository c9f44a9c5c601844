package main

import (
	"context"
	"errors"
	"net/http"

	"github.com/sirupsen/logrus"

	adapthttp "inventoried/internal/adapter/http"
	"inventoried/internal/adapter/memory"
	"inventoried/internal/adapter/mongo"
	"inventoried/internal/app"
	"inventoried/internal/config"
)

func main() {
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})

	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("configuration")
	}
	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		log.WithError(err).Fatal("log level")
	}
	log.SetLevel(level)

	db, err := mongo.Open(cfg.MongoURI, cfg.MongoDatabase)
	if err != nil {
		log.WithError(err).Fatal("mongodb connect")
	}
	defer func() { _ = db.Close() }()
	log.WithField("database", cfg.MongoDatabase).Info("connected to mongodb")

	itemSvc := app.NewItemService(mongo.NewItemRepo(db))
	userSvc := app.NewUserService(mongo.NewUserRepo(db))

	// Sessions are deliberately in-memory; a restart logs everyone out.
	authSvc := app.NewAuthService(memory.NewSessionStore(), cfg.SessionSecret)

	oauth := &adapthttp.OAuthConfig{}
	if cfg.AuthEnabled() {
		oauth, err = adapthttp.NewGoogleOAuth(context.Background(), cfg.GoogleClientID, cfg.GoogleClientSecret, cfg.BaseURL)
		if err != nil {
			log.WithError(err).Fatal("google oauth setup")
		}
		log.Info("google oauth enabled, API routes require login")
	}

	h := adapthttp.New(itemSvc, userSvc, authSvc, oauth, cfg, log).Handler()
	log.WithField("addr", cfg.Addr).Info("listening")
	if err := http.ListenAndServe(cfg.Addr, h); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.WithError(err).Fatal("server")
	}
}
