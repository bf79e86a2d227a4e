package router

import (
	"github.com/storecore/commerce/internal/application"
	"github.com/storecore/commerce/internal/container"
	domainsvc "github.com/storecore/commerce/internal/domain/service"
	pginfra "github.com/storecore/commerce/internal/infrastructure/postgres"
	handlers "github.com/storecore/commerce/internal/interface/http"
	"github.com/storecore/commerce/internal/router/modules"
)

// InitModules wires repositories, domain services, application
// services and handlers from the container singletons and registers
// every feature module. Called once during startup.
func InitModules(r *Registry) {
	cfg := container.GetConfig()
	logger := container.GetLogger()
	pool := container.GetPGPool()

	productRepo := pginfra.NewProductRepository(pool)
	categoryRepo := pginfra.NewCategoryRepository(pool)
	userRepo := pginfra.NewUserRepository(pool)

	productDomain := domainsvc.NewProductService(productRepo, categoryRepo, logger)
	categoryDomain := domainsvc.NewCategoryService(categoryRepo, logger)
	userDomain := domainsvc.NewUserService(userRepo, logger)

	productApp := application.NewProductService(
		productDomain,
		container.GetGCS(),
		cfg.GCSBucket,
		container.GetES(),
		cfg.ESProductsIndex,
		container.GetRedis(),
		logger,
	)
	categoryApp := application.NewCategoryService(categoryDomain, logger)
	userApp := application.NewUserService(
		userDomain,
		container.GetJWT(),
		container.GetRedis(),
		container.GetRabbitPub(),
		logger,
		cfg.VerifyEmailURL,
	)

	productHandler := handlers.NewProductHandler(productApp, logger)
	categoryHandler := handlers.NewCategoryHandler(categoryApp, logger)
	userHandler := handlers.NewUserHandler(userApp, logger)
	authHandler := handlers.NewAuthHandler(userApp, logger, cfg.CookieDomain, cfg.CookieSecure)

	r.Add(modules.NewAuthModule(authHandler, container.GetJWT()))
	r.Add(modules.NewUserModule(userHandler, container.GetJWT()))
	r.Add(modules.NewCatalogModule(productHandler, categoryHandler, container.GetJWT()))
}
