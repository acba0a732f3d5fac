package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"boardgame-advisor/backend/internal/knowledge"
	"boardgame-advisor/backend/internal/preferences"
	"boardgame-advisor/backend/internal/recommend"
	apperrors "boardgame-advisor/backend/pkg/errors"
)

type gamesResponse struct {
	Games []string `json:"games"`
	Count int      `json:"count"`
}

func respondGames(c *gin.Context, games []string) {
	c.JSON(http.StatusOK, gamesResponse{Games: games, Count: len(games)})
}

// respondError maps the error taxonomy onto HTTP status codes.
func (s *Server) respondError(c *gin.Context, err error) {
	switch {
	case apperrors.IsNotFound(err):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case apperrors.IsErrorType(err, apperrors.ErrorTypeInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case apperrors.IsErrorType(err, apperrors.ErrorTypeKnowledge):
		// invalid complexity and similar caller mistakes
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		s.logger.Error("Request failed",
			zap.String("path", c.FullPath()),
			zap.String("request_id", c.GetString(requestIDKey)),
			zap.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func (s *Server) gameInfo(c *gin.Context) {
	info, err := s.kb.GameInfo(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, info)
}

func (s *Server) gamesByGenre(c *gin.Context) {
	games, err := s.kb.GamesByGenre(c.Request.Context(), c.Param("genre"))
	if err != nil {
		s.respondError(c, err)
		return
	}
	respondGames(c, games)
}

func (s *Server) gamesByMechanic(c *gin.Context) {
	games, err := s.kb.GamesByMechanic(c.Request.Context(), c.Param("mechanic"))
	if err != nil {
		s.respondError(c, err)
		return
	}
	respondGames(c, games)
}

func (s *Server) gamesByComplexity(c *gin.Context) {
	level, err := knowledge.ParseComplexity(c.Param("level"))
	if err != nil {
		s.respondError(c, err)
		return
	}
	games, err := s.kb.GamesByComplexity(c.Request.Context(), level)
	if err != nil {
		s.respondError(c, err)
		return
	}
	respondGames(c, games)
}

func (s *Server) list(query func(context.Context) ([]string, error)) gin.HandlerFunc {
	return func(c *gin.Context) {
		games, err := query(c.Request.Context())
		if err != nil {
			s.respondError(c, err)
			return
		}
		respondGames(c, games)
	}
}

type recommendationRequest struct {
	Query       string `json:"query" binding:"required"`
	Complexity  string `json:"complexity"`
	Cooperative *bool  `json:"cooperative"`
	Limit       int    `json:"limit" binding:"omitempty,min=1,max=50"`
}

type recommendationItem struct {
	*knowledge.GameInfo
	Score float64 `json:"score"`
	Stars int     `json:"stars"`
}

type recommendationResponse struct {
	Language        string                  `json:"language"`
	Preferences     preferences.Preferences `json:"preferences"`
	Recommendations []recommendationItem    `json:"recommendations"`
}

func (s *Server) recommend(c *gin.Context) {
	var req recommendationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var level knowledge.Complexity
	if req.Complexity != "" {
		parsed, err := knowledge.ParseComplexity(req.Complexity)
		if err != nil {
			s.respondError(c, err)
			return
		}
		level = parsed
	}

	result, err := s.advisor.Advise(c.Request.Context(), recommend.Request{
		Query:       req.Query,
		Complexity:  level,
		Cooperative: req.Cooperative,
		Limit:       req.Limit,
	})
	if err != nil {
		s.respondError(c, err)
		return
	}

	items := make([]recommendationItem, 0, len(result.Recommendations))
	for _, r := range result.Recommendations {
		items = append(items, recommendationItem{GameInfo: r.Game, Score: r.Score, Stars: r.Stars()})
	}
	c.JSON(http.StatusOK, recommendationResponse{
		Language:        result.Language,
		Preferences:     result.Preferences,
		Recommendations: items,
	})
}
