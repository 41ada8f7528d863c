package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/streamops/channel-control/internal/handler"
	"github.com/streamops/channel-control/pkg/constants"
)

// New builds the HTTP router.
func New(
	channelHandler *handler.ChannelHandler,
	graphicsHandler *handler.GraphicsHandler,
	outputHandler *handler.OutputHandler,
	health *handler.HealthHandler,
	allowOrigin string,
) http.Handler {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(cors(allowOrigin))

	r.GET(constants.PathHealth, health.Health)
	r.GET(constants.PathReady, health.Ready)

	channels := r.Group("/channels")
	{
		channels.GET("", channelHandler.List)
		channels.GET("/:id", channelHandler.Get)
		channels.PUT("/:id/status/:status", channelHandler.UpdateStatus)
		channels.PUT("/:id/activeinput/:name", channelHandler.SwitchInput)
		channels.POST("/:id/prepareinput/:name", channelHandler.PrepareInput)

		channels.POST("/:id/graphics", graphicsHandler.Create)
		channels.POST("/:id/graphics/:gid", graphicsHandler.Stop) // only gid == "stop" is routed
		channels.POST("/:id/graphics/:gid/start", graphicsHandler.Start)
		channels.DELETE("/:id/graphics/:gid", graphicsHandler.Delete)

		channels.POST("/:id/outputs", outputHandler.Create)
		channels.DELETE("/:id/outputs/:oid", outputHandler.Delete)
		channels.GET("/:id/outputs/discover", outputHandler.Discover)
	}

	return r
}

// cors answers preflights and stamps the configured allow-origin on every
// response (wildcard by default).
func cors(origin string) gin.HandlerFunc {
	if origin == "" {
		origin = "*"
	}
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", origin)
		c.Header("Access-Control-Allow-Methods", "GET,POST,PUT,DELETE,OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type,Authorization")
		c.Header("Access-Control-Max-Age", "300")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
