// Package server exposes the comparison core over HTTP: slot input,
// candidate pick, clear, color, and the current view, plus a websocket
// stream of view updates.
package server

import (
	"time"

	"CoinCompare/internal/compare"
	"CoinCompare/internal/model"
	"CoinCompare/internal/search"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Server wires the comparison store and the two search controllers to
// the HTTP surface.
type Server struct {
	Store       *compare.Store
	Controllers map[model.Slot]*search.Controller
}

// New creates a Server.
func New(store *compare.Store, controllers map[model.Slot]*search.Controller) *Server {
	return &Server{Store: store, Controllers: controllers}
}

// Router builds the gin engine with CORS and all routes registered.
func (s *Server) Router(allowOrigin string) *gin.Engine {
	r := gin.Default()
	r.SetTrustedProxies(nil)

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{allowOrigin},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Upgrade", "Connection"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           24 * time.Hour,
	}))

	s.RegisterRoutes(r)
	return r
}

// RegisterRoutes attaches all handlers to the engine.
func (s *Server) RegisterRoutes(r *gin.Engine) {
	r.GET("/healthz", s.Health)

	api := r.Group("/api")
	{
		api.POST("/slots/:slot/input", s.SlotInput)
		api.GET("/slots/:slot/candidates", s.Candidates)
		api.POST("/slots/:slot/select", s.Select)
		api.DELETE("/slots/:slot/selection", s.ClearSelection)
		api.PUT("/slots/:slot/color", s.SetColor)
		api.GET("/view", s.View)
		api.GET("/ws", s.Stream)
	}
}
