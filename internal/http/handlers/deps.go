package handlers

import (
	"github.com/Kennyy02/totomotorworx-shop/internal/config"
	"github.com/Kennyy02/totomotorworx-shop/internal/notify"
	"github.com/Kennyy02/totomotorworx-shop/internal/repos"
	"github.com/Kennyy02/totomotorworx-shop/internal/services"
	"github.com/Kennyy02/totomotorworx-shop/internal/token"

	"github.com/jmoiron/sqlx"
)

type Deps struct {
	AuthHandler      *AuthHandler
	CartHandler      *CartHandler
	ProductHandler   *ProductHandler
	CategoryHandler  *CategoryHandler
	InventoryHandler *InventoryHandler
	UserHandler      *UserHandler
	AnalyticsHandler *AnalyticsHandler
	UploadHandler    *UploadHandler
	WSHandler        *WSHandler
	Tokens           *token.Issuer
}

func NewDeps(db *sqlx.DB, cfg config.Config, hub *notify.Hub) *Deps {
	userRepo := repos.NewUserRepo(db)
	prodRepo := repos.NewProductRepo(db)
	catRepo := repos.NewCategoryRepo(db)
	svcRepo := repos.NewServiceRepo(db)
	cartRepo := repos.NewCartRepo(db)
	eventRepo := repos.NewEventRepo(db)

	tokens := token.NewIssuer(cfg.JWTSecret)

	authSvc := services.NewAuthService(userRepo, tokens)
	cartSvc := services.NewCartService(cartRepo, prodRepo, eventRepo, hub)
	catalogSvc := services.NewCatalogService(catRepo, prodRepo, svcRepo)
	invSvc := services.NewInventoryService(prodRepo)
	analyticsSvc := services.NewAnalyticsService(cartRepo, prodRepo, svcRepo)

	return &Deps{
		AuthHandler:      &AuthHandler{Auth: authSvc},
		CartHandler:      &CartHandler{Cart: cartSvc},
		ProductHandler:   &ProductHandler{Catalog: catalogSvc},
		CategoryHandler:  &CategoryHandler{Catalog: catalogSvc},
		InventoryHandler: &InventoryHandler{Inv: invSvc},
		UserHandler:      &UserHandler{Users: userRepo},
		AnalyticsHandler: &AnalyticsHandler{Analytics: analyticsSvc},
		UploadHandler:    &UploadHandler{MediaDir: cfg.MediaDir, BaseURL: "/images"},
		WSHandler:        &WSHandler{Hub: hub},
		Tokens:           tokens,
	}
}
