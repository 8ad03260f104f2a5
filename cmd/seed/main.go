package main

import (
	"context"
	"errors"
	"flag"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/pastaria/backend/config"
	"github.com/pastaria/backend/internal/domain/entity"
	repo "github.com/pastaria/backend/internal/domain/repository"
	"github.com/pastaria/backend/internal/infrastructure/mongodb"
	"github.com/pastaria/backend/pkg/helpers"
)

// seed loads a starter catalogue and an optional admin account into
// an empty database. Safe to re-run: duplicates are skipped.
func main() {
	adminAccount := flag.String("admin", "", "create an admin account with this name")
	adminEmail := flag.String("admin-email", "", "email for the admin account")
	adminPassword := flag.String("admin-password", "", "password for the admin account")
	flag.Parse()

	_ = godotenv.Load()

	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName+"-seed", cfg.Env)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client, err := mongodb.Connect(ctx, cfg.MongoURI, cfg.MongoConnectTimeout, cfg.MongoMaxPoolSize)
	if err != nil {
		logger.WithError(err).Fatal("mongodb connect failed")
	}
	defer client.Disconnect(ctx)

	db := client.Database(cfg.MongoDatabase)
	if err := mongodb.EnsureIndexes(ctx, db); err != nil {
		logger.WithError(err).Fatal("ensure indexes failed")
	}

	products := mongodb.NewProductRepository(db)
	existing, err := products.List(ctx, false)
	if err != nil {
		logger.WithError(err).Fatal("list products failed")
	}
	if len(existing) > 0 {
		logger.WithField("count", len(existing)).Info("catalogue already seeded")
	} else {
		for _, p := range catalogue() {
			p := p
			if err := products.Create(ctx, &p); err != nil {
				logger.WithError(err).WithField("name", p.Name).Error("seed product failed")
				continue
			}
			logger.WithField("name", p.Name).Info("product seeded")
		}
	}

	if *adminAccount != "" {
		seedAdmin(ctx, db, logger, *adminAccount, *adminEmail, *adminPassword)
	}
}

func catalogue() []entity.Product {
	return []entity.Product{
		{Name: "經典波隆那肉醬麵", Price: 180, Description: "慢燉三小時的牛肉波隆那醬", Category: entity.CategoryNoodle, Sell: true},
		{Name: "白酒蛤蜊麵", Price: 220, Description: "每日現撈蛤蜊與白酒清炒", Category: entity.CategoryNoodle, Sell: true},
		{Name: "松露野菇奶油麵", Price: 260, Description: "黑松露醬與三種野菇", Category: entity.CategoryNoodle, Sell: true},
		{Name: "青醬雞肉麵", Price: 200, Description: "現打羅勒青醬佐舒肥雞胸", Category: entity.CategoryNoodle, Sell: true},
		{Name: "提拉米蘇", Price: 120, Description: "經典義式甜點", Category: entity.CategoryDessert, Sell: true},
		{Name: "氣泡檸檬水", Price: 60, Description: "現榨檸檬與氣泡水", Category: entity.CategoryDrink, Sell: true},
	}
}

func seedAdmin(ctx context.Context, db *mongo.Database, logger *logrus.Logger, account, email, password string) {
	if email == "" || password == "" {
		logger.Fatal("admin account needs -admin-email and -admin-password")
	}
	hash, err := helpers.HashPassword(password)
	if err != nil {
		logger.WithError(err).Fatal("hash admin password failed")
	}

	users := mongodb.NewUserRepository(db)
	u := &entity.User{
		Account:  account,
		Email:    email,
		Password: hash,
		Role:     entity.RoleAdmin,
	}
	if err := u.Validate(); err != nil {
		logger.WithError(err).Fatal("admin account invalid")
	}
	switch err := users.Create(ctx, u); {
	case err == nil:
		logger.WithField("account", account).Info("admin account created")
	case errors.Is(err, repo.ErrDuplicate):
		logger.WithField("account", account).Info("admin account already exists")
	default:
		logger.WithError(err).Fatal("create admin failed")
	}
}
