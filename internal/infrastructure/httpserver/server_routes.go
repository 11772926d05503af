package httpserver

func (s *Server) setupRoutes() {
	s.echo.GET("/health", s.healthCheck)
	s.echo.GET("/metrics", s.metricsEndpoint)

	api := s.echo.Group("/api/v1")

	protected := api.Group("")
	protected.Use(s.middleware.JWT.RequireJWT())

	users := protected.Group("/users")
	users.POST("", s.createProfile)
	users.GET("", s.listUsers)
	users.GET("/search", s.searchUsers)
	users.GET("/:id", s.getProfile)
	users.PUT("/me", s.updateProfile)
	users.PUT("/me/image", s.updateProfileImage)
	users.POST("/:id/follow", s.followUser)
	users.DELETE("/:id/follow", s.unfollowUser)
	users.GET("/:id/reviews", s.getUserReviews)
	users.GET("/:id/review-stats", s.getUserReviewStats)
	users.GET("/:id/posts", s.listUserPosts)
	users.GET("/:id/portfolio", s.getUserPortfolio)
	users.GET("/:id/statuses", s.getUserStatuses)

	posts := protected.Group("/posts")
	posts.POST("", s.createPost)
	posts.GET("", s.listPosts)
	posts.GET("/search", s.searchPosts)
	posts.GET("/:id", s.getPost)
	posts.PUT("/:id", s.updatePost)
	posts.DELETE("/:id", s.deletePost)

	reels := protected.Group("/reels")
	reels.POST("", s.createReel)
	reels.GET("", s.listReels)
	reels.GET("/trending", s.trendingReels)
	reels.GET("/:id", s.getReel)
	reels.DELETE("/:id", s.deleteReel)
	reels.POST("/:id/like", s.likeReel)
	reels.DELETE("/:id/like", s.unlikeReel)
	reels.GET("/:id/comments", s.getReelComments)
	reels.POST("/:id/comments", s.commentOnReel)
	reels.DELETE("/comments/:commentId", s.deleteReelComment)

	reviews := protected.Group("/reviews")
	reviews.POST("", s.createReview)
	reviews.PUT("/:id", s.updateReview)
	reviews.DELETE("/:id", s.deleteReview)

	messages := protected.Group("/messages")
	messages.POST("", s.sendMessage)
	messages.GET("/conversations", s.getConversations)
	messages.GET("/conversations/:id", s.getMessages)
	messages.PUT("/conversations/:id/read", s.markConversationRead)
	messages.DELETE("/:id", s.deleteMessage)

	notifications := protected.Group("/notifications")
	notifications.GET("", s.listNotifications)
	notifications.GET("/unread-count", s.unreadNotificationCount)
	notifications.PUT("/:id/read", s.markNotificationRead)
	notifications.PUT("/read-all", s.markAllNotificationsRead)

	statuses := protected.Group("/statuses")
	statuses.POST("", s.postStatus)
	statuses.GET("/following", s.getFollowingStatuses)
	statuses.PUT("/:id/view", s.viewStatus)
	statuses.DELETE("/:id", s.deleteStatus)

	portfolio := protected.Group("/portfolio")
	portfolio.POST("", s.addPortfolioCard)
	portfolio.PUT("/:id", s.updatePortfolioCard)
	portfolio.DELETE("/:id", s.deletePortfolioCard)

	saved := protected.Group("/saved")
	saved.POST("/:type/:id", s.toggleSaved)
	saved.GET("/:type", s.listSaved)
}
