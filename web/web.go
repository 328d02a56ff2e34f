// Package web provides the HTTP server of the bibliophile API: router
// assembly, session middleware and lifecycle management.
package web

import (
	"context"
	"io"
	"net"
	"net/http"
	"strconv"

	"bibliophile/config"
	"bibliophile/logger"
	"bibliophile/util/common"
	"bibliophile/util/random"
	"bibliophile/web/controller"
	"bibliophile/web/entity"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
)

const (
	sessionCookieName = "USER_SESSION"
	sessionMaxAge     = 24 * 60 * 60 // seconds; refreshed only by re-login
)

// Server is the bibliophile web server with its controllers.
type Server struct {
	httpServer *http.Server
	listener   net.Listener

	auth     *controller.AuthController
	quote    *controller.QuoteController
	review   *controller.ReviewController
	booklist *controller.BooklistController
	follower *controller.FollowerController

	ctx    context.Context
	cancel context.CancelFunc
}

// NewServer creates a new web server instance with a cancellable context.
func NewServer() *Server {
	ctx, cancel := context.WithCancel(context.Background())
	return &Server{ctx: ctx, cancel: cancel}
}

// initRouter initializes Gin, registers middleware and controllers and
// returns the configured engine.
func (s *Server) initRouter() (*gin.Engine, error) {
	if config.IsDebug() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.DefaultWriter = io.Discard
		gin.DefaultErrorWriter = io.Discard
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.Default()

	engine.Use(cors.New(s.corsConfig()))
	engine.Use(gzip.Gzip(gzip.DefaultCompression))

	secret := config.GetSessionSecret()
	if secret == "" {
		secret = random.Seq(32)
		logger.Warning("BIBLIO_SESSION_SECRET not set; sessions will not survive a restart")
	}
	store := cookie.NewStore([]byte(secret))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   sessionMaxAge,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteNoneMode,
	})
	engine.Use(sessions.Sessions(sessionCookieName, store))

	g := engine.Group("/")
	s.auth = controller.NewAuthController(g)
	s.quote = controller.NewQuoteController(g)
	s.review = controller.NewReviewController(g)
	s.booklist = controller.NewBooklistController(g)
	s.follower = controller.NewFollowerController(g)

	engine.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, entity.Msg{Message: "Not found"})
	})

	return engine, nil
}

// corsConfig allows the SPA origin to send credentialed cross-site
// requests. localhost:3000 is always allowed for local development.
func (s *Server) corsConfig() cors.Config {
	c := cors.Config{
		AllowOrigins:     []string{"http://localhost:3000"},
		AllowMethods:     []string{"GET", "PUT", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}
	if origin := config.GetAllowedOrigin(); origin != "" {
		c.AllowOrigins = append(c.AllowOrigins, origin)
	}
	return c
}

// Start initializes and starts the web server.
func (s *Server) Start() (err error) {
	defer func() {
		if err != nil {
			_ = s.Stop()
		}
	}()

	engine, err := s.initRouter()
	if err != nil {
		return err
	}

	listenAddr := net.JoinHostPort(config.GetListen(), strconv.Itoa(config.GetPort()))
	listener, err := net.Listen("tcp", listenAddr)
	if err != nil {
		return common.NewErrorf("listen on %s: %v", listenAddr, err)
	}
	logger.Info("Web server running HTTP on", listener.Addr())

	s.listener = listener
	s.httpServer = &http.Server{Handler: engine}

	go func() {
		_ = s.httpServer.Serve(listener)
	}()

	return nil
}

// Stop gracefully shuts down the web server.
func (s *Server) Stop() error {
	s.cancel()
	var err1, err2 error
	if s.httpServer != nil {
		err1 = s.httpServer.Shutdown(s.ctx)
	}
	if s.listener != nil {
		err2 = s.listener.Close()
	}
	return common.Combine(err1, err2)
}

// GetCtx returns the server's context.
func (s *Server) GetCtx() context.Context { return s.ctx }
