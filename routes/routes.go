package routes

import (
	"net/http"

	"github.com/bennblr/food-app/configs"
	"github.com/bennblr/food-app/controllers"
	"github.com/bennblr/food-app/entity"
	"github.com/bennblr/food-app/middlewares"
	"github.com/bennblr/food-app/pkg/cache"
	"github.com/bennblr/food-app/pkg/events"
	"github.com/bennblr/food-app/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Deps is what the HTTP layer needs from main.
type Deps struct {
	DB     *gorm.DB
	Cfg    *configs.Config
	Log    *zap.Logger
	Feed   cache.Cache
	Events events.Publisher
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": true}) })

	repos := services.NewRepos(d.DB)
	authSvc := services.NewAuthService(repos.Users, d.Cfg.JWTSecret, d.Cfg.JWTTTL)
	cartSvc := services.NewCartService(d.DB, repos)
	orderSvc := services.NewOrderService(d.DB, repos, d.Events, d.Feed, d.Log, d.Cfg.OrderNumberAttempts)
	driverSvc := services.NewDriverService(d.DB, repos, d.Feed, d.Log)
	promoSvc := services.NewPromotionService(d.DB, repos)

	// Controllers
	authCtrl := controllers.NewAuthController(authSvc)
	cartCtrl := controllers.NewCartController(cartSvc)
	orderCtrl := controllers.NewOrderController(orderSvc, services.DefaultQRGenerator{})
	restCtrl := controllers.NewRestaurantOrderController(orderSvc)
	driverCtrl := controllers.NewDriverController(driverSvc, orderSvc)
	adminCtrl := controllers.NewAdminController(orderSvc, authSvc)
	promoCtrl := controllers.NewPromotionController(promoSvc)

	secret := d.Cfg.JWTSecret
	authed := middlewares.AuthMiddleware(secret, repos.Users)

	// Auth (public)
	a := r.Group("/auth")
	{
		a.POST("/register", authCtrl.Register)
		a.POST("/login", authCtrl.Login)
		a.GET("/me", authed, authCtrl.Me)
	}

	// Public
	r.GET("/promotions", promoCtrl.ListActive)

	// Cart (ตะกร้าผูกกับ user ที่ login)
	cart := r.Group("/cart", authed)
	{
		cart.GET("", cartCtrl.Get)
		cart.POST("", cartCtrl.Add)
		cart.PUT("/:lineId", cartCtrl.UpdateQty)
		cart.DELETE("/:lineId", cartCtrl.RemoveItem)
		cart.DELETE("", cartCtrl.Clear)
	}

	// Orders: สิทธิ์รายออเดอร์ตรวจใน service
	orders := r.Group("/orders", authed)
	{
		orders.POST("", orderCtrl.Create)
		orders.GET("", orderCtrl.ListMine)
		orders.GET("/:id", orderCtrl.Detail)
		orders.GET("/:id/history", orderCtrl.History)
		orders.GET("/:id/qrcode", orderCtrl.QRCode)
		orders.POST("/:id/cancel", orderCtrl.Cancel)
	}

	// Restaurant staff: สิทธิ์มาจากการเป็นเจ้าของ/พนักงานร้าน ไม่ใช่ role
	rest := r.Group("/restaurant/orders", authed)
	{
		rest.GET("", restCtrl.List)
		rest.PUT("/:id/status", restCtrl.UpdateStatus)
	}

	// Driver
	driver := r.Group("/driver", middlewares.AuthMiddleware(secret, repos.Users, entity.RoleDriver))
	{
		driver.GET("/available-orders", driverCtrl.Available)
		driver.GET("/orders", driverCtrl.Mine)
		driver.POST("/orders/:id/accept", driverCtrl.Accept)
		driver.POST("/orders/:id/deliver", driverCtrl.Deliver)
	}

	// Admin (APP_OWNER / APP_EDITOR)
	admin := r.Group("/admin", middlewares.AdminOnly(secret, repos.Users))
	{
		admin.GET("/orders", adminCtrl.ListOrders)
		admin.PUT("/orders/:id/status", adminCtrl.UpdateStatus)
		admin.POST("/orders/:id/payment", adminCtrl.ReconcilePayment)
		admin.PUT("/users/:id/role", adminCtrl.SetRole)
	}
}
