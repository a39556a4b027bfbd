package api

import (
	"context"
	"net/http"
	"time"

	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"github.com/Muhammad-Raisul-Maharub/maasathi-health/connectivity"
	"github.com/Muhammad-Raisul-Maharub/maasathi-health/external/session"
	"github.com/Muhammad-Raisul-Maharub/maasathi-health/logmodule"
	"github.com/Muhammad-Raisul-Maharub/maasathi-health/store"
	"github.com/Muhammad-Raisul-Maharub/maasathi-health/syncer"
)

var log *logrus.Entry

func init() {
	log = logrus.WithField("prefix", "gin")
}

// Server exposes the screening core to the device shell over HTTP.
type Server struct {
	// Server instance
	server *http.Server

	// Stores
	store store.MaaSathiCore

	// Session provider
	sessions session.Provider

	// Sync engine
	syncEngine *syncer.Engine

	// Connectivity monitor
	network *connectivity.Monitor
}

// NewServer new instance of server
func NewServer(
	s store.MaaSathiCore,
	sessions session.Provider,
	engine *syncer.Engine,
	network *connectivity.Monitor) *Server {
	return &Server{
		store:      s,
		sessions:   sessions,
		syncEngine: engine,
		network:    network,
	}
}

// Run to run the server
func (s *Server) Run(addr string) error {
	s.server = &http.Server{
		Addr:    addr,
		Handler: s.setupRouter(),
	}

	return s.server.ListenAndServe()
}

func (s *Server) setupRouter() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(sentrygin.New(sentrygin.Options{
		Repanic:         true,
		WaitForDelivery: false,
		Timeout:         10 * time.Second,
	}))

	apiRoute := r.Group("/api")
	apiRoute.Use(logmodule.Ginrus("API"))
	apiRoute.Use(cors.New(cors.Config{
		AllowMethods:     []string{"GET", "POST"},
		AllowHeaders:     []string{"Origin", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		AllowAllOrigins:  true,
		MaxAge:           12 * time.Hour,
	}))

	apiRoute.GET("/information", s.information)
	apiRoute.POST("/auth", s.login)
	apiRoute.POST("/auth/restore", s.restoreSession)
	apiRoute.POST("/logout", s.logout)
	apiRoute.GET("/me", s.me)

	apiRoute.GET("/symptoms", s.getSymptoms)

	assessmentRoute := apiRoute.Group("/assessments")
	{
		assessmentRoute.POST("", s.createAssessment)
		assessmentRoute.GET("", s.listAssessments)
		assessmentRoute.GET("/stats", s.assessmentStats)
		assessmentRoute.GET("/:assessmentID", s.getAssessment)
	}

	apiRoute.POST("/sync", s.triggerSync)
	apiRoute.GET("/events", s.events)

	r.GET("/healthz", s.healthz)

	return r
}

// Shutdown to shutdown the server
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

// shouldInterupt sends error message and determine if it should interupt the current flow
func shouldInterupt(err error, c *gin.Context) bool {
	if err == nil {
		return false
	}

	log.Error(err)
	abortWithEncoding(c, http.StatusInternalServerError, errorInternalServer)
	return true
}

func (s *Server) healthz(c *gin.Context) {
	// Ping db
	err := s.store.Ping()
	if shouldInterupt(err, c) {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "OK",
		"online":  s.network.IsOnline(),
		"version": viper.GetString("server.version"),
	})
}

func (s *Server) information(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"information": map[string]interface{}{
			"server": map[string]interface{}{
				"version": viper.GetString("server.version"),
			},
			"system_version": "MaaSathi 0.1",
		},
	})
}

func abortWithEncoding(c *gin.Context, code int, obj ErrorResponse, errors ...error) {
	for _, err := range errors {
		c.Error(err)
	}
	c.JSON(code, obj)
	c.Abort()
}
