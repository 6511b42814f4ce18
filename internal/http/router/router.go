package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/upcycle-backend/internal/config"
	"github.com/ignatzorin/upcycle-backend/internal/http/middleware"
	"github.com/ignatzorin/upcycle-backend/internal/interface/http/handler"
	"github.com/ignatzorin/upcycle-backend/internal/metrics"
	"github.com/ignatzorin/upcycle-backend/internal/service"
)

// Handlers собирает HTTP обработчики приложения.
type Handlers struct {
	Auth         *handler.AuthHandler
	Profile      *handler.ProfileHandler
	Request      *handler.RequestHandler
	Offer        *handler.OfferHandler
	Conversation *handler.ConversationHandler
	Health       *handler.HealthHandler
}

// Options - зависимости роутера, не являющиеся обработчиками.
// MediaRoot пуст, если изображения хранятся не на локальном диске.
type Options struct {
	Tokens    *service.TokenManager
	Metrics   *metrics.Metrics
	MediaRoot string
}

func SetupRouter(cfg *config.Config, h Handlers, opts Options) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.RequestLogger(opts.Metrics))
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.CORSMiddleware(cfg.AllowedOrigins))
	r.MaxMultipartMemory = cfg.MaxUploadSizeMB << 20

	r.GET("/health", h.Health.Health)
	if opts.Metrics != nil {
		r.GET("/metrics", gin.WrapH(opts.Metrics.Handler()))
	}
	if opts.MediaRoot != "" {
		r.StaticFS(cfg.Storage.PublicBaseURL, http.Dir(opts.MediaRoot))
	}

	api := r.Group("/api")

	authGroup := api.Group("/auth")
	authGroup.Use(middleware.RateLimitMiddleware("auth", 5, cfg.RateLimitPeriod))
	{
		authGroup.POST("/register", h.Auth.Register)
		authGroup.POST("/login", h.Auth.Login)
	}

	// Защищённые маршруты
	protected := api.Group("/")
	protected.Use(middleware.AuthMiddleware(opts.Tokens))
	{
		protected.GET("/profile", h.Profile.GetMyProfile)
		protected.PUT("/profile/artisan", h.Profile.UpdateArtisanProfile)

		protected.POST("/requests", h.Request.CreateRequest)
		protected.GET("/requests/my", h.Request.ListMyRequests)
		protected.GET("/requests/available", h.Request.ListAvailableRequests)
		protected.GET("/requests/:id", middleware.UUIDValidator("id"), h.Request.GetRequest)
		protected.GET("/requests/:id/offers", middleware.UUIDValidator("id"), h.Request.ListRequestOffers)
		protected.POST("/requests/:id/offers",
			middleware.UUIDValidator("id"),
			middleware.RateLimitMiddleware("offers", cfg.RateLimitLimit, cfg.RateLimitPeriod),
			h.Offer.SubmitOffer,
		)

		protected.POST("/offers/:offerId/accept", middleware.UUIDValidator("offerId"), h.Offer.AcceptOffer)
		protected.POST("/offers/:offerId/reject", middleware.UUIDValidator("offerId"), h.Offer.RejectOffer)

		protected.GET("/conversations", h.Conversation.ListMyConversations)
		protected.GET("/conversations/:conversationId", middleware.UUIDValidator("conversationId"), h.Conversation.GetConversation)
		protected.POST("/conversations/:conversationId/messages", middleware.UUIDValidator("conversationId"), h.Conversation.SendMessage)
	}

	return r
}
