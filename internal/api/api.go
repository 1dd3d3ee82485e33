package api

import (
	"net/http"

	"livekit-henryk/internal/observability"
	voiceCallHandler "livekit-henryk/internal/voicecall/handler"
	webhookHandler "livekit-henryk/internal/webhooks/handler"

	"github.com/gin-gonic/gin"
)

type API struct {
	router           *gin.RouterGroup
	voiceCallHandler *voiceCallHandler.Handler
	webhookHandler   *webhookHandler.Handler
	metricsHandler   http.Handler
	operatorAPIKey   string
	logger           *observability.Logger
}

func New(router *gin.RouterGroup, voiceCallHandler *voiceCallHandler.Handler, webhookHandler *webhookHandler.Handler, metricsHandler http.Handler, operatorAPIKey string, logger *observability.Logger) API {
	return API{
		router:           router,
		voiceCallHandler: voiceCallHandler,
		webhookHandler:   webhookHandler,
		metricsHandler:   metricsHandler,
		operatorAPIKey:   operatorAPIKey,
		logger:           logger,
	}
}

func (a *API) RegisterRoutes() {
	a.router.GET("/health", a.voiceCallHandler.HandleHealth)
	if a.metricsHandler != nil {
		a.router.GET("/metrics", gin.WrapH(a.metricsHandler))
	}

	// Browser test page
	a.router.POST("/test-call", a.voiceCallHandler.HandleTestCall)

	// Platform callbacks, authenticated by their own signatures
	a.router.POST("/livekit-henryk/webhook", a.webhookHandler.HandleLiveKitWebhook)
	a.router.POST("/twilio/inbound", a.voiceCallHandler.HandleInboundCall)

	// Operator routes
	operator := a.router.Group("/", APIKeyMiddleware(a.operatorAPIKey, a.logger))
	{
		operator.POST("/dial-lead", a.voiceCallHandler.HandleDialLead)
		operator.GET("/calls/:room/transcript", a.voiceCallHandler.HandleGetTranscript)
		operator.POST("/calls/:room/resend", a.voiceCallHandler.HandleResend)
	}
}
