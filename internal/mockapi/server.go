// Package mockapi serves a faithful stand-in for the club's backend,
// payload quirks included, for development and integration testing.
package mockapi

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Server wraps a gin engine over the seeded dataset.
type Server struct {
	engine *gin.Engine
	data   *dataset
	logger *slog.Logger
}

// New builds the mock backend. Pass a nil logger to use slog's default.
func New(logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	gin.SetMode(gin.ReleaseMode)

	s := &Server{
		engine: gin.New(),
		data:   seedDataset(),
		logger: logger,
	}

	s.engine.Use(gin.Recovery())
	s.engine.Use(s.loggingMiddleware())
	s.engine.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	s.registerRoutes()
	return s
}

// Engine exposes the underlying gin engine for tests and embedding.
func (s *Server) Engine() *gin.Engine {
	return s.engine
}

// Run starts the server on addr and blocks.
func (s *Server) Run(addr string) error {
	s.logger.Info("mock backend listening", "addr", addr)
	return s.engine.Run(addr)
}

func (s *Server) registerRoutes() {
	api := s.engine.Group("/api")
	api.POST("/login", s.handleLogin)

	secured := api.Group("")
	secured.Use(s.authMiddleware())
	secured.POST("/logoutFromApp", s.handleLogout)
	secured.POST("/logoutFromClub", s.handleLogout)
	secured.GET("/profile", s.handleProfile)

	secured.GET("/User", s.handleUserList)
	secured.POST("/User", s.handleUserCreate)
	secured.GET("/User/:id", s.handleUserGet)
	secured.PUT("/User/:id", s.handleUserUpdate)
	secured.DELETE("/User/:id", s.handleUserDelete)

	secured.GET("/Card", s.handleCardList)
	secured.POST("/Card", s.handleCardCreate)
	secured.GET("/Card/:id", s.handleCardGet)
	secured.POST("/Card/:id", s.handleCardCreateForUser)
	secured.PUT("/Card/:id", s.handleCardUpdate)
	secured.DELETE("/Card/:id", s.handleCardDelete)

	secured.GET("/attendance_records", s.handleAttendanceList)
	secured.GET("/Attendance_Records_By_UserId/:id", s.handleAttendanceByUser)
	secured.GET("/monthlyAttendance", s.handleMonthlyAttendance)

	secured.POST("/Transaction/:code", s.handleTransaction)
	secured.GET("/unknownCards", s.handleUnknownCards)
}

func (s *Server) loggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.Info("http",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		)
	}
}

func (s *Server) authMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ")
		if token == "" || !s.data.validToken(token) {
			respondError(c, http.StatusUnauthorized, "Unauthenticated.")
			c.Abort()
			return
		}
		c.Set("token", token)
		c.Next()
	}
}
