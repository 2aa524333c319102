package router

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/spokefoods/spoke-backend/controllers"
	"github.com/spokefoods/spoke-backend/middlewares"
	"github.com/spokefoods/spoke-backend/services"
)

// SetupRouter wires the full HTTP surface: public catalog, customer cart and
// checkout, chef console, admin management and the order event stream.
func SetupRouter(db *gorm.DB, checkout *services.CheckoutService, orders *services.OrderService, mailer *services.Mailer) *gin.Engine {
	r := gin.Default()

	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddlewares())
	r.Use(middlewares.LoggerMiddleware())

	authCtrl := controllers.NewAuthController(db)
	foodCtrl := controllers.NewFoodController(db)
	cartCtrl := controllers.NewCartController(db)
	orderCtrl := controllers.NewOrderController(db, checkout)
	chefCtrl := controllers.NewChefController(db, orders)
	adminCtrl := controllers.NewAdminController(db)

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	// ----------------------------------------------------------------
	//                      PUBLIC ROUTES
	// ----------------------------------------------------------------
	credentials := r.Group("/api")
	credentials.Use(middlewares.NewStrictRateLimiter())
	{
		credentials.POST("/auth/signup", authCtrl.Signup)
		credentials.POST("/auth/login", authCtrl.Login)
		credentials.POST("/chef/login", chefCtrl.Login)
	}

	r.GET("/api/food", foodCtrl.GetAllFoods)
	r.GET("/api/chef", chefCtrl.GetAllChefs)

	// ----------------------------------------------------------------
	//                      CUSTOMER ROUTES
	// ----------------------------------------------------------------
	user := r.Group("/api")
	user.Use(middlewares.AuthMiddleware())
	{
		user.GET("/auth/profile", authCtrl.GetProfile)

		user.GET("/cart", cartCtrl.GetCart)
		user.POST("/cart/add", cartCtrl.AddToCart)
		user.PUT("/cart/update", cartCtrl.UpdateCartItem)

		user.POST("/order/checkout", orderCtrl.CheckoutOrder)
		user.GET("/order/history", orderCtrl.GetOrderHistory)
	}

	// ----------------------------------------------------------------
	//                      CHEF ROUTES
	// ----------------------------------------------------------------
	chef := r.Group("/api/chef")
	chef.Use(middlewares.ChefAuthMiddleware(db))
	{
		chef.GET("/profile", chefCtrl.GetProfile)
		chef.GET("/orders", chefCtrl.GetOrders)
		chef.PUT("/orders/:order_id/complete", chefCtrl.CompleteOrder)
	}

	// ----------------------------------------------------------------
	//                      ADMIN ROUTES
	// ----------------------------------------------------------------
	admin := r.Group("/api/admin")
	admin.Use(middlewares.AdminMiddleware(db))
	{
		admin.POST("/food", foodCtrl.CreateFood)
		admin.PUT("/food/:food_id", foodCtrl.UpdateFood)
		admin.DELETE("/food/:food_id", foodCtrl.DeleteFood)

		admin.GET("/orders", adminCtrl.GetAllOrders)

		admin.POST("/chef", adminCtrl.AddChef)
		admin.DELETE("/chef/:chef_id", adminCtrl.DeleteChef)
		admin.GET("/chefs", adminCtrl.GetChefs)

		admin.POST("/emails/flush", adminCtrl.FlushEmailQueue(mailer))
	}

	// Live order events for dashboards.
	ws := r.Group("/ws")
	ws.Use(middlewares.AuthMiddleware())
	{
		ws.GET("/orders", controllers.OrderStreamHandler)
	}

	return r
}
