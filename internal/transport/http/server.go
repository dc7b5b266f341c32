package http

import (
	"time"

	"github.com/gin-gonic/gin"

	"mellow-ai/internal/ai"
	appsvc "mellow-ai/internal/app"
	"mellow-ai/internal/bootstrap"
	"mellow-ai/internal/cache"
	rabbitmqclient "mellow-ai/internal/platform/rabbitmq"
	"mellow-ai/internal/repository"
	"mellow-ai/internal/transport/http/handler"
	"mellow-ai/internal/transport/http/middleware"
)

func NewRouter(app *bootstrap.App) *gin.Engine {
	cfg := app.Config
	gin.SetMode(cfg.App.GinMode)
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery(), middleware.CORS(cfg.App.AllowedOrigins))

	healthHandler := handler.NewHealthHandler(app)
	router.GET("/healthz", healthHandler.Check)

	userRepo := repository.NewUserRepository(app.MySQL)
	turnRepo := repository.NewConversationRepository(app.MySQL)

	authService := appsvc.NewAuthService(
		userRepo,
		cfg.Auth.JWTSecret,
		time.Duration(cfg.Auth.JWTExpireMinute)*time.Minute,
	)

	providerTimeout := time.Duration(cfg.RAG.ProviderTimeoutSeconds) * time.Second
	geminiClient := ai.NewGeminiClient(ai.GeminiConfig{
		APIKey:      cfg.Gemini.APIKey,
		Model:       cfg.Gemini.Model,
		MaxTokens:   cfg.Gemini.MaxTokens,
		Temperature: cfg.Gemini.Temperature,
	}, providerTimeout)
	chatCfg := ai.ChatConfig{
		BaseURL:     cfg.OpenAI.BaseURL,
		APIKey:      cfg.OpenAI.APIKey,
		Model:       cfg.OpenAI.Model,
		MaxTokens:   cfg.OpenAI.MaxTokens,
		Temperature: cfg.OpenAI.Temperature,
	}
	chain := appsvc.NewFallbackChain(
		providerTimeout,
		appsvc.NewGeminiGenerator(geminiClient, cfg.RAG.HistoryLimit),
		appsvc.NewRAGGenerator(app.LLMClient, chatCfg, app.Index, cfg.RAG.TopK),
	)

	publisher := rabbitmqclient.NewTurnPublisher(app.MQConn, cfg.RabbitMQ.PersistQueue)
	historyCache := cache.NewHistoryCache(
		app.Redis,
		time.Duration(cfg.Redis.HistoryTTLSeconds)*time.Second,
		time.Duration(cfg.Redis.HistoryDirtyTTLSeconds)*time.Second,
	)
	chatService := appsvc.NewChatService(turnRepo, publisher, historyCache, chain, cfg.RAG.HistoryLimit)
	analyticsService := appsvc.NewAnalyticsService(turnRepo)

	authHandler := handler.NewAuthHandler(authService)
	chatHandler := handler.NewChatHandler(chatService)
	analyticsHandler := handler.NewAnalyticsHandler(analyticsService)

	v1 := router.Group("/api/v1")
	authGroup := v1.Group("/auth")
	authGroup.POST("/register", authHandler.Register)
	authGroup.POST("/login", authHandler.Login)
	authGroup.GET("/me", middleware.AuthJWT(cfg.Auth.JWTSecret), authHandler.Me)

	chatGroup := v1.Group("/chat")
	chatGroup.Use(middleware.AuthJWT(cfg.Auth.JWTSecret))
	chatGroup.POST("/messages", chatHandler.SendMessage)
	chatGroup.GET("/conversations", chatHandler.ListConversations)
	chatGroup.GET("/conversations/:id", chatHandler.GetConversation)
	chatGroup.DELETE("/conversations/:id", chatHandler.DeleteConversation)

	analyticsGroup := v1.Group("/analytics")
	analyticsGroup.Use(middleware.AuthJWT(cfg.Auth.JWTSecret))
	analyticsGroup.GET("", analyticsHandler.Overview)
	analyticsGroup.GET("/trends", analyticsHandler.Trends)
	analyticsGroup.GET("/insights", analyticsHandler.Insights)

	return router
}
