// Package api exposes the knowledge base and the advisor over HTTP.
package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"boardgame-advisor/backend/internal/knowledge"
	"boardgame-advisor/backend/internal/recommend"
)

// Server holds the handler dependencies.
type Server struct {
	kb      knowledge.Base
	advisor *recommend.Advisor
	logger  *zap.Logger
}

// NewServer creates the HTTP layer.
func NewServer(kb knowledge.Base, advisor *recommend.Advisor, log *zap.Logger) *Server {
	return &Server{kb: kb, advisor: advisor, logger: log}
}

// Router builds the Gin engine with all routes and middleware.
func (s *Server) Router() *gin.Engine {
	router := gin.New()
	router.Use(requestID())
	router.Use(ginLogger(s.logger))
	router.Use(gin.Recovery())
	router.Use(metricsMiddleware())
	router.Use(cors())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/api")
	{
		api.GET("/games", s.list(s.kb.AllGames))
		api.GET("/games/:id", s.gameInfo)
		api.GET("/genres/:genre/games", s.gamesByGenre)
		api.GET("/mechanics/:mechanic/games", s.gamesByMechanic)
		api.GET("/complexity/:level/games", s.gamesByComplexity)

		lists := api.Group("/lists")
		lists.GET("/cooperative", s.list(s.kb.CooperativeGames))
		lists.GET("/gateway", s.list(s.kb.GatewayGames))
		lists.GET("/deep-strategy", s.list(s.kb.DeepStrategyGames))

		api.POST("/recommendations", s.recommend)
	}

	return router
}
