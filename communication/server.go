package communication

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"monopoly/game"
	"monopoly/gamemaster"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// Server exposes a Session over HTTP and a snapshot stream over a websocket.
type Server struct {
	session Session
	router  *gin.Engine
}

func NewServer(session Session) *Server {
	s := &Server{session: session, router: gin.New()}
	s.router.Use(gin.Recovery(), requestLogger())
	s.router.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:    []string{"Origin", "Content-Type"},
		ExposeHeaders:   []string{"Content-Length"},
		MaxAge:          12 * time.Hour,
	}))
	s.routes()
	return s
}

func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) routes() {
	api := s.router.Group("/api")
	{
		api.GET("/board", s.handleBoard)
		api.GET("/history", s.handleHistory)

		session := api.Group("/session")
		session.GET("", s.handleSnapshot)
		session.POST("", s.handleStart)
		session.POST("/roll", s.intent(s.session.Roll))
		session.POST("/buy", s.intent(s.session.Buy))
		session.POST("/decline", s.intent(s.session.Decline))
		session.POST("/pay-jail", s.intent(s.session.PayJailFee))
		session.POST("/build/:spaceId", s.handleBuild)
		session.GET("/standings", s.handleStandings)
	}

	s.router.GET("/ws", s.handleWebSocket)
}

func (s *Server) handleBoard(c *gin.Context) {
	c.JSON(http.StatusOK, s.session.Board())
}

func (s *Server) handleSnapshot(c *gin.Context) {
	gs, err := s.session.Snapshot()
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gs)
}

func (s *Server) handleStart(c *gin.Context) {
	var profile gamemaster.Profile
	if err := c.ShouldBindJSON(&profile); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	gs, err := s.session.Start(c.Request.Context(), profile)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gs)
}

func (s *Server) handleBuild(c *gin.Context) {
	spaceID, err := strconv.Atoi(c.Param("spaceId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "space id must be a number"})
		return
	}
	gs, err := s.session.Build(c.Request.Context(), spaceID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gs)
}

func (s *Server) handleStandings(c *gin.Context) {
	standings, err := s.session.Standings()
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, standings)
}

func (s *Server) handleHistory(c *gin.Context) {
	results, err := s.session.History(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, results)
}

// intent adapts a parameterless session intent to a handler. Intents that are
// not legal right now answer with the unchanged snapshot.
func (s *Server) intent(apply func(context.Context) (game.GameState, error)) gin.HandlerFunc {
	return func(c *gin.Context) {
		gs, err := apply(c.Request.Context())
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, gs)
	}
}

func writeError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, gamemaster.ErrNoSession):
		status = http.StatusNotFound
	case errors.Is(err, gamemaster.ErrInvalidProfile):
		status = http.StatusBadRequest
	default:
		log.Error().Err(err).Str("path", c.FullPath()).Msg("request failed")
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Debug().
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("latency", time.Since(start)).
			Msg("http request")
	}
}
