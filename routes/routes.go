package routes

import (
	"time"

	"comsiconnect/handlers"
	"comsiconnect/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func SetupRouter() *gin.Engine {
	router := gin.Default()

	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "ok",
			"time":   time.Now().Unix(),
		})
	})

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:5173", "http://127.0.0.1:5173", "http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Accept", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	api := router.Group("/api")

	// Public routes
	auth := api.Group("/auth")
	auth.Use(middleware.RateLimit(20, time.Minute))
	auth.POST("/signup", handlers.Signup)
	auth.POST("/login", handlers.Login)
	auth.GET("/logout", handlers.Logout)

	api.GET("/vapid-public-key", handlers.GetVapidPublicKey)

	// Feed: posts, interactions, follows, comments
	feed := api.Group("/feed")
	feed.Use(middleware.JWTAuth())
	feed.POST("/post", handlers.CreatePost)
	feed.GET("/posts", handlers.GetFeedPosts)
	feed.GET("/users", handlers.GetAllUsers)
	feed.PUT("/post/:postId", handlers.TogglePostInteraction)
	feed.POST("/follow/:userId", handlers.FollowUser)
	feed.POST("/post/:postId/comment", handlers.AddComment)
	feed.GET("/post/:postId/comments", handlers.GetComments)
	feed.DELETE("/post/:postId/comment/:commentId", handlers.DeleteComment)

	// Profiles and owned posts
	users := api.Group("/users")
	users.Use(middleware.JWTAuth())
	users.GET("/profile", handlers.GetProfile)
	users.PUT("/profile/edit", handlers.UpdateProfile)
	users.GET("/view-profile/:id", handlers.ViewProfile)
	users.GET("/profile/:id", handlers.GetFollowList)
	users.GET("/posts", handlers.GetMyPosts)
	users.PUT("/posts/:postId", handlers.UpdatePost)
	users.DELETE("/posts/:postId", handlers.DeletePost)
	users.POST("/chat", handlers.Chatbot)
	users.POST("/subscribe", handlers.SubscribePush)

	// Anonymous confessions
	confessions := api.Group("/confessions")
	confessions.Use(middleware.JWTAuth())
	confessions.GET("/anonymous-id", handlers.GetAnonymousID)
	confessions.POST("/post", handlers.CreateConfession)
	confessions.GET("/all-posts", handlers.GetConfessions)
	confessions.PUT("/post/:confessionId", handlers.ToggleConfessionInteraction)
	confessions.GET("/my-posts", handlers.GetMyConfessions)
	confessions.PUT("/my-posts/:confessionId", handlers.UpdateConfession)
	confessions.DELETE("/my-posts/:confessionId", handlers.DeleteConfession)

	router.NoRoute(func(c *gin.Context) {
		if len(c.Request.URL.Path) >= 4 && c.Request.URL.Path[:4] == "/api" {
			c.JSON(404, gin.H{
				"error": "Endpoint not found",
				"path":  c.Request.URL.Path,
			})
		}
	})

	return router
}
