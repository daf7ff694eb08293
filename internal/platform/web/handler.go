package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/vovakirdan/tui-2048/internal/games/t2048/core"
)

func (s *Server) newRouter() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), s.requestLogger())

	api := r.Group("/api/games")
	api.POST("", s.createGameHandler)
	api.GET("/:id", s.getGameHandler)
	api.DELETE("/:id", s.deleteGameHandler)
	api.POST("/:id/moves", s.moveHandler)
	api.POST("/:id/continue", s.continueHandler)
	api.POST("/:id/restart", s.restartHandler)
	api.POST("/:id/bot", s.botHandler)

	// live event stream for spectators
	r.GET("/ws/games/:id", s.watchHandler)

	return r
}

// requestLogger logs one line per request.
func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.Debug("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		)
	}
}

// abortWithError maps service errors to HTTP status codes.
func abortWithError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrGameNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "game not found"})
	case errors.Is(err, ErrTooManyGames):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "too many games"})
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	}
}

func (s *Server) createGameHandler(c *gin.Context) {
	var req NewGameRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
			return
		}
	}

	id, err := s.CreateGame(req)
	if err != nil {
		abortWithError(c, err)
		return
	}

	var view GameView
	err = s.withGame(id, func(sess *session) error {
		view = sess.view()
		return nil
	})
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"game": view})
}

func (s *Server) getGameHandler(c *gin.Context) {
	var view GameView
	err := s.withGame(c.Param("id"), func(sess *session) error {
		view = sess.view()
		return nil
	})
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"game": view})
}

func (s *Server) deleteGameHandler(c *gin.Context) {
	if err := s.DeleteGame(c.Param("id")); err != nil {
		abortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// moveHandler plays one full turn.
func (s *Server) moveHandler(c *gin.Context) {
	var req struct {
		Move string `json:"move"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "move required"})
		return
	}
	move, ok := core.ParseMove(req.Move)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown move " + req.Move})
		return
	}

	var (
		view  GameView
		moved bool
	)
	err := s.withGame(c.Param("id"), func(sess *session) error {
		moved = sess.ctrl.Play(move)
		view = sess.view()
		return nil
	})
	if err != nil {
		abortWithError(c, err)
		return
	}
	if !moved {
		c.JSON(http.StatusConflict, gin.H{"error": "move rejected", "game": view})
		return
	}
	c.JSON(http.StatusOK, gin.H{"game": view})
}

func (s *Server) continueHandler(c *gin.Context) {
	var (
		view GameView
		ok   bool
	)
	err := s.withGame(c.Param("id"), func(sess *session) error {
		if ok = sess.ctrl.ContinueAfterWin(); ok {
			// the record is filed again when the game ends for good
			sess.saved = false
		}
		view = sess.view()
		return nil
	})
	if err != nil {
		abortWithError(c, err)
		return
	}
	if !ok {
		c.JSON(http.StatusConflict, gin.H{"error": "game is not waiting after a win", "game": view})
		return
	}
	c.JSON(http.StatusOK, gin.H{"game": view})
}

func (s *Server) restartHandler(c *gin.Context) {
	var view GameView
	err := s.withGame(c.Param("id"), func(sess *session) error {
		s.saveFinal(sess)
		sess.restart()
		view = sess.view()
		return nil
	})
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"game": view})
}

// botHandler lets the configured bot play a single turn.
func (s *Server) botHandler(c *gin.Context) {
	var (
		view  GameView
		moved bool
	)
	err := s.withGame(c.Param("id"), func(sess *session) error {
		moved = sess.botStep()
		view = sess.view()
		return nil
	})
	if err != nil {
		abortWithError(c, err)
		return
	}
	if !moved {
		c.JSON(http.StatusConflict, gin.H{"error": "bot found no move", "game": view})
		return
	}
	c.JSON(http.StatusOK, gin.H{"game": view})
}

// watchHandler upgrades to a websocket that first receives a snapshot and
// then every event of the game.
func (s *Server) watchHandler(c *gin.Context) {
	id := c.Param("id")

	var hello []byte
	err := s.withGame(id, func(sess *session) error {
		var err error
		hello, err = json.Marshal(Message{GameID: id, Event: "snapshot", Data: sess.view()})
		return err
	})
	if err != nil {
		abortWithError(c, err)
		return
	}

	s.hub.ServeWS(c.Writer, c.Request, id, hello)
}
