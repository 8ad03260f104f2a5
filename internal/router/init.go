package router

import (
	"cloud.google.com/go/storage"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/pastaria/backend/config"
	"github.com/pastaria/backend/internal/application"
	"github.com/pastaria/backend/internal/container"
	repo "github.com/pastaria/backend/internal/domain/repository"
	ihttp "github.com/pastaria/backend/internal/interface/http"
	"github.com/pastaria/backend/internal/infrastructure/mongodb"
	"github.com/pastaria/backend/internal/router/modules"
	"github.com/pastaria/backend/pkg/helpers"
)

// Setup resolves the shared singletons out of the container, wires
// repositories, services and handlers, and returns a registry with
// every module added.
func Setup() *Registry {
	cfg := container.MustGet[*config.Config](container.KeyConfig)
	logger := container.MustGet[*logrus.Logger](container.KeyLogger)
	db := container.MustGet[*mongo.Database](container.KeyDatabase)
	tokens := container.MustGet[*helpers.TokenIssuer](container.KeyTokens)
	locks := container.MustGet[*application.KeyedMutex](container.KeyUserLocks)

	// Optional infrastructure: nil disables the feature, it never
	// blocks startup.
	rdb, _ := container.Get(container.KeyRedis).(*redis.Client)
	gcs, _ := container.Get(container.KeyGCS).(*storage.Client)
	es, _ := container.Get(container.KeyES).(*elasticsearch.Client)
	pub, _ := container.Get(container.KeyRabbit).(*helpers.RabbitPublisher)

	var users repo.UserRepository = mongodb.NewUserRepository(db)
	var products repo.ProductRepository = mongodb.NewProductRepository(db)
	var orders repo.OrderRepository = mongodb.NewOrderRepository(db)

	userSvc := application.NewService(users, products, tokens, logger, locks)
	productSvc := application.NewProductService(products, gcs, cfg.GCSBucket, es, cfg.ESProductsIndex, logger)
	orderSvc := application.NewOrderService(orders, users, products, pub, logger, locks)

	reg := NewRegistry(logger)
	reg.Add(modules.NewUserModule(ihttp.NewUserHandler(userSvc, logger), users, tokens, rdb))
	reg.Add(modules.NewProductModule(ihttp.NewProductHandler(productSvc, logger), users, tokens, rdb))
	reg.Add(modules.NewOrderModule(ihttp.NewOrderHandler(orderSvc, logger), users, tokens, rdb))
	return reg
}
