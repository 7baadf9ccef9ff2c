package routes

import (
	"io"
	"os"

	ginlogger "github.com/gin-contrib/logger"
	"github.com/gin-gonic/gin"

	"transport_booking/internal/controllers"
	"transport_booking/internal/middleware"
	"transport_booking/internal/session"
)

type Options struct {
	CookieName string
	// AccessLog receives one line per request. Defaults to stderr.
	AccessLog io.Writer
}

func SetupRouter(ctl *controllers.Controller, gate *session.Gate, opts Options) *gin.Engine {
	if opts.AccessLog == nil {
		opts.AccessLog = os.Stderr
	}
	if opts.CookieName == "" {
		opts.CookieName = "session"
	}

	r := gin.New()
	r.Use(
		ginlogger.SetLogger(
			ginlogger.WithWriter(opts.AccessLog),
			ginlogger.WithUTC(true),
			ginlogger.WithSkipPath([]string{"/api/health"}),
		),
		gin.Recovery(),
		middleware.LoadSession(gate, opts.CookieName),
	)

	r.GET("/", ctl.Home)

	AuthRoutes(r, ctl)
	BookingRoutes(r, ctl)
	AdminRoutes(r, ctl)
	HODRoutes(r, ctl)
	DriverRoutes(r, ctl)
	EmployeeRoutes(r, ctl)
	WebSocketRoutes(r, ctl)
	SystemRoutes(r, ctl)

	return r
}
