package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/emrekoc/schoolforum/internal/app/controllers"
	"github.com/emrekoc/schoolforum/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	userController *controllers.UserController,
	postController *controllers.PostController,
	categoryController *controllers.CategoryController,
	authMiddleware *middleware.AuthMiddleware,
) {
	// API version group
	v1 := router.Group("/api/v1")

	// --- Public Auth routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/register", authController.Register)
		auth.POST("/login", authController.Login)
	}

	// --- Public read routes ---
	v1.GET("/categories", categoryController.GetAllCategories)
	v1.GET("/categories/:id", categoryController.GetCategoryByID)
	v1.GET("/posts", postController.ListPosts)
	v1.GET("/posts/:id", postController.GetPost)

	// --- Authenticated Routes Group ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		// Profile routes
		authenticated.GET("/users/me", userController.GetMe)
		authenticated.PUT("/users/me", userController.UpdateMe)

		// User administration (policy enforced per handler/service)
		authenticated.GET("/users", userController.ListUsers)
		authenticated.GET("/users/:id", userController.GetUser)
		authenticated.PATCH("/users/:id/activate", userController.ActivateUser)
		authenticated.PATCH("/users/:id/deactivate", userController.DeactivateUser)

		// Post mutations; ownership and moderation rules live in the
		// authorization policy consulted by the service layer
		authenticated.POST("/posts", postController.CreatePost)
		authenticated.PUT("/posts/:id", postController.UpdatePost)
		authenticated.DELETE("/posts/:id", postController.DeletePost)
		authenticated.POST("/posts/:id/replies", postController.AddReply)
		authenticated.POST("/posts/:id/like", postController.ToggleLike)
		authenticated.PATCH("/posts/:id/pin", postController.TogglePin)
		authenticated.PATCH("/posts/:id/lock", postController.ToggleLock)

		// Category mutations (moderators only)
		authenticated.POST("/categories", categoryController.CreateCategory)
		authenticated.PUT("/categories/:id", categoryController.UpdateCategory)
		authenticated.DELETE("/categories/:id", categoryController.DeleteCategory)
	}
}
