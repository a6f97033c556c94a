package router

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/yeremiapane/restaurant-order-engine/controllers"
	"github.com/yeremiapane/restaurant-order-engine/middlewares"
)

func SetupRouter(db *gorm.DB) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middlewares.LoggerMiddleware())
	r.Use(middlewares.CORSMiddlewares())

	userCtrl := controllers.NewUserController(db)
	catalogCtrl := controllers.NewCatalogController(db)
	orderCtrl := controllers.NewOrderController(db)

	// Endpoint publik
	r.POST("/login", userCtrl.Login)
	r.GET("/catalog", catalogCtrl.GetCatalog)

	// Endpoint staff (butuh token)
	auth := r.Group("/")
	auth.Use(middlewares.AuthMiddleware())
	{
		auth.GET("/menus", catalogCtrl.GetMenus)
		auth.GET("/bundles", catalogCtrl.GetBundles)

		auth.POST("/orders/quote", orderCtrl.QuoteOrder)
		auth.POST("/orders", orderCtrl.CreateOrder)
		auth.GET("/orders", orderCtrl.GetAllOrders)
		auth.GET("/orders/:order_id", orderCtrl.GetOrderByID)
		auth.GET("/orders/:order_id/edit", orderCtrl.EditOrder)
		auth.PUT("/orders/:order_id", orderCtrl.UpdateOrder)

		admin := auth.Group("/")
		admin.Use(middlewares.RequireRoles("admin"))
		{
			admin.POST("/register", userCtrl.Register)
			admin.DELETE("/orders/:order_id", orderCtrl.DeleteOrder)
		}
	}

	return r
}
