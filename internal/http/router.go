package http

import (
	"log/slog"
	stdhttp "net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/tastycheddar/salt-scoville-ecommerce-sub000/internal/access"
	"github.com/tastycheddar/salt-scoville-ecommerce-sub000/internal/config"
	"github.com/tastycheddar/salt-scoville-ecommerce-sub000/internal/http/handlers"
	"github.com/tastycheddar/salt-scoville-ecommerce-sub000/internal/http/handlers/admin"
	"github.com/tastycheddar/salt-scoville-ecommerce-sub000/internal/http/middleware"
	"github.com/tastycheddar/salt-scoville-ecommerce-sub000/internal/mailer"
	"github.com/tastycheddar/salt-scoville-ecommerce-sub000/internal/modules/auth"
	"github.com/tastycheddar/salt-scoville-ecommerce-sub000/internal/modules/blog"
	"github.com/tastycheddar/salt-scoville-ecommerce-sub000/internal/modules/cart"
	"github.com/tastycheddar/salt-scoville-ecommerce-sub000/internal/modules/checkout"
	"github.com/tastycheddar/salt-scoville-ecommerce-sub000/internal/modules/email"
	"github.com/tastycheddar/salt-scoville-ecommerce-sub000/internal/modules/heat"
	"github.com/tastycheddar/salt-scoville-ecommerce-sub000/internal/modules/hero"
	"github.com/tastycheddar/salt-scoville-ecommerce-sub000/internal/modules/media"
	"github.com/tastycheddar/salt-scoville-ecommerce-sub000/internal/modules/orders"
	"github.com/tastycheddar/salt-scoville-ecommerce-sub000/internal/modules/products"
	"github.com/tastycheddar/salt-scoville-ecommerce-sub000/internal/modules/seo"
	"github.com/tastycheddar/salt-scoville-ecommerce-sub000/internal/modules/users"
	"github.com/tastycheddar/salt-scoville-ecommerce-sub000/internal/storage"
)

// Deps are the process-wide resources the router wires into handlers.
type Deps struct {
	Log      *slog.Logger
	DB       *gorm.DB
	Config   *config.Config
	Storage  storage.Storage
	Mailer   mailer.Service
	Analyzer heat.Analyzer // nil: rule-based scoring only
}

func NewRouter(d Deps) *gin.Engine {
	cfg := d.Config
	analyzer := d.Analyzer
	if analyzer == nil {
		analyzer = heat.RuleAnalyzer{}
	}

	usersRepo := users.NewRepo(d.DB)
	sessions := auth.NewSessionStore(d.DB, cfg.Session.TTL)
	authSvc := auth.NewService(usersRepo, sessions)
	sender := email.NewSender(d.Mailer, cfg.Mail.From, cfg.Mail.FromName, d.Log)
	catalog := products.NewGormRepo(d.DB)
	productsRepo := products.NewRepo(d.DB, cfg.Shop.Currency)
	ordersRepo := orders.NewRepo(d.DB)
	blogRepo := blog.NewRepo(d.DB)
	heroRepo := hero.NewRepo(d.DB)
	seoRepo := seo.NewRepo(d.DB)
	guard := middleware.NewGuard(usersRepo, cfg.Guard.RoleLookupTimeout, d.Log)

	r := gin.New()
	r.MaxMultipartMemory = storage.MaxImageBytes
	r.Use(
		middleware.RequestID(),
		middleware.Logger(d.Log),
		middleware.Recovery(d.Log),
		middleware.ErrorHandler(d.Log),
		middleware.Session(middleware.SessionCfg{
			Auth:       authSvc,
			CookieName: cfg.Session.CookieName,
			Secure:     cfg.Session.Secure,
			Log:        d.Log,
		}),
	)

	if cfg.Storage.Driver == "local" {
		r.Static(cfg.Storage.LocalURLPrefix, cfg.Storage.LocalDir)
	}

	r.GET("/healthz", func(c *gin.Context) {
		sqlDB, err := d.DB.DB()
		if err == nil {
			err = sqlDB.PingContext(c.Request.Context())
		}
		if err != nil {
			c.JSON(stdhttp.StatusServiceUnavailable, gin.H{"status": "db_unavailable"})
			return
		}
		c.JSON(stdhttp.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")

	// Public
	authH := handlers.NewAuthHandlers(authSvc, usersRepo, sender, handlers.CookieCfg{
		Name:   cfg.Session.CookieName,
		Secure: cfg.Session.Secure,
	}, d.Log)
	api.POST("/auth/signup", authH.Signup)
	api.POST("/auth/login", authH.Login)
	api.POST("/auth/logout", authH.Logout)

	catalogH := handlers.NewCatalogHandlers(catalog)
	api.GET("/products", catalogH.List)
	api.GET("/products/:slug", catalogH.Detail)
	api.GET("/categories", catalogH.Categories)

	contentH := handlers.NewContentHandlers(blogRepo, heroRepo, seoRepo)
	api.GET("/blog", contentH.BlogList)
	api.GET("/blog/:slug", contentH.BlogDetail)
	api.GET("/hero-images", contentH.HeroList)
	api.GET("/seo", contentH.SEO)

	heatH := handlers.NewHeatHandlers(heat.NewService(d.DB, analyzer, catalog))
	api.GET("/ai/heat-quiz", heatH.Quiz)
	api.POST("/ai/analyze-heat-profile", heatH.Analyze)

	// Signed in
	authed := api.Group("", middleware.RequireAuth())
	authed.GET("/auth/me", authH.Me)

	accountH := handlers.NewAccountHandlers(usersRepo, ordersRepo)
	authed.GET("/account/orders", accountH.Orders)
	authed.GET("/account/orders/:id", accountH.Order)
	authed.POST("/account/wholesale", accountH.RequestWholesale)
	authed.GET("/account/heat-profile", heatH.Latest)
	authed.GET("/users/:id/role", accountH.Role)

	cartH := handlers.NewCartHandlers(cart.NewService(d.DB, cfg.Shop.Currency))
	authed.GET("/cart", cartH.Get)
	authed.POST("/cart/items", cartH.Add)
	authed.PATCH("/cart/items/:product_id", cartH.Update)
	authed.DELETE("/cart/items/:product_id", cartH.Remove)

	checkoutH := handlers.NewCheckoutHandlers(checkout.NewService(d.DB, cfg.Shop, sender, d.Log))
	authed.POST("/checkout", checkoutH.Place)

	// Staff. Every request re-reads the caller's role.
	mod := api.Group("/admin", guard.RequireRole(access.Moderator))
	adm := api.Group("/admin", guard.RequireRole(access.Admin))

	dashH := admin.NewDashboardHandler(productsRepo, ordersRepo, usersRepo)
	mod.GET("/dashboard", dashH.Get)

	prodH := admin.NewProductsHandler(productsRepo, d.Storage, d.Log)
	mod.GET("/products", prodH.List)
	mod.GET("/products/:id", prodH.Get)
	adm.POST("/products", prodH.Create)
	adm.PUT("/products/:id", prodH.Update)
	adm.DELETE("/products/:id", prodH.Delete)
	adm.POST("/products/:id/images", prodH.UploadImage)
	adm.DELETE("/products/:id/images", prodH.RemoveImage)
	mod.GET("/categories", prodH.Categories)
	adm.POST("/categories", prodH.CreateCategory)
	adm.PUT("/categories/:id", prodH.UpdateCategory)
	adm.DELETE("/categories/:id", prodH.DeleteCategory)

	ordH := admin.NewOrdersHandler(ordersRepo, orders.NewAdminService(d.DB))
	mod.GET("/orders", ordH.List)
	mod.GET("/orders/:id", ordH.Detail)
	adm.PATCH("/orders/:id", ordH.Update)
	adm.DELETE("/orders/:id", ordH.Delete)

	usersH := admin.NewUsersHandler(usersRepo, users.NewBulkService(d.DB, d.Mailer, cfg.Mail.From, cfg.Mail.FromName, d.Log))
	adm.GET("/users", usersH.List)
	adm.GET("/users/:id", usersH.Get)
	adm.PATCH("/users/:id/role", usersH.SetRole)
	adm.PATCH("/users/:id/wholesale", usersH.SetWholesale)
	adm.PATCH("/users/:id/loyalty", usersH.SetLoyalty)
	adm.DELETE("/users/:id", usersH.Delete)
	adm.POST("/users/bulk", usersH.Bulk)
	adm.POST("/users/bulk-delete", usersH.BulkDelete())
	adm.POST("/users/bulk-role", usersH.BulkRole())
	adm.POST("/users/export", usersH.Export())
	adm.POST("/users/email", usersH.Email())

	blogH := admin.NewBlogHandler(blogRepo)
	mod.GET("/blog", blogH.List)
	mod.GET("/blog/:id", blogH.Get)
	mod.POST("/blog", blogH.Create)
	mod.PUT("/blog/:id", blogH.Update)
	mod.DELETE("/blog/:id", blogH.Delete)

	heroH := admin.NewHeroHandler(heroRepo, d.Storage, d.Log)
	mod.GET("/hero-images", heroH.List)
	mod.GET("/hero-images/:id", heroH.Get)
	mod.POST("/hero-images", heroH.Create)
	mod.PUT("/hero-images/:id", heroH.Update)
	mod.DELETE("/hero-images/:id", heroH.Delete)
	mod.POST("/hero-images/upload", heroH.Upload)
	api.POST("/hero-images/upload", guard.RequireRole(access.Moderator), heroH.Upload)

	mediaH := admin.NewMediaHandler(media.NewService(d.DB, d.Storage, d.Log))
	mod.GET("/media", mediaH.List)
	mod.GET("/media/:id", mediaH.Get)
	mod.POST("/media", mediaH.Upload)
	mod.PATCH("/media/:id", mediaH.UpdateAlt)
	mod.DELETE("/media/:id", mediaH.Delete)

	seoH := admin.NewSEOHandler(seoRepo)
	mod.GET("/seo", seoH.List)
	mod.GET("/seo/:id", seoH.Get)
	mod.PUT("/seo", seoH.Upsert)
	mod.DELETE("/seo/:id", seoH.Delete)

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, gin.H{"error": "Not found.", "request_id": middleware.GetRequestID(c)})
	})

	return r
}
