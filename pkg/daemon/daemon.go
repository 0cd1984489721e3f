package daemon

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"sync"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/go-kit/kit/log"
	"github.com/go-kit/kit/log/level"
	"github.com/mitchellh/cli"
	"github.com/pkg/errors"
	"github.com/shaie/browze/pkg/api"
	"github.com/shaie/browze/pkg/constants"
	"github.com/shaie/browze/pkg/version"
	"github.com/shaie/browze/pkg/zoo"
	"github.com/spf13/viper"
)

// Daemon runs the browze api server over whichever store was last connected.
type Daemon struct {
	Logger  log.Logger
	Viper   *viper.Viper
	UI      cli.Ui
	Dialer  zoo.Dialer
	Browser zoo.Browser

	mu    sync.RWMutex
	store zoo.Store
}

// NewDaemon builds a Daemon, used with dig
func NewDaemon(
	logger log.Logger,
	v *viper.Viper,
	ui cli.Ui,
	dialer zoo.Dialer,
	browser zoo.Browser,
) *Daemon {
	return &Daemon{
		Logger:  logger,
		Viper:   v,
		UI:      ui,
		Dialer:  dialer,
		Browser: browser,
	}
}

// Serve starts the server with the given context
func (d *Daemon) Serve(ctx context.Context) error {
	debug := level.Debug(log.With(d.Logger, "method", "serve"))

	if connectString := d.Viper.GetString(constants.FlagConnect); connectString != "" {
		if err := d.Connect(ctx, connectString); err != nil {
			return errors.Wrapf(err, "connect to %s", connectString)
		}
	}

	addr := fmt.Sprintf(":%d", d.Viper.GetInt(constants.FlagAPIPort))
	server := http.Server{Addr: addr, Handler: d.Handler()}
	errChan := make(chan error, 1)

	go func() {
		debug.Log("event", "server.listen", "server.addr", addr)
		errChan <- server.ListenAndServe()
	}()
	d.UI.Info(fmt.Sprintf("Serving on %s", addr))

	defer func() {
		debug.Log("event", "server.shutdown")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
		d.disconnect()
	}()

	signalChan := make(chan os.Signal, 1)
	signal.Notify(signalChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(signalChan)

	select {
	case sig := <-signalChan:
		level.Info(d.Logger).Log("event", "shutdown", "reason", "signal", "signal", sig)
		return nil
	case err := <-errChan:
		level.Error(d.Logger).Log("event", "shutdown", "reason", "errChan", "err", err)
		return err
	case <-ctx.Done():
		level.Info(d.Logger).Log("event", "shutdown", "reason", "context", "err", ctx.Err())
		return nil
	}
}

// Handler returns the gin engine serving every route
func (d *Daemon) Handler() http.Handler {
	config := cors.DefaultConfig()
	config.AllowAllOrigins = true

	g := gin.New()
	g.Use(gin.Recovery(), cors.New(config), d.timed())
	d.configureRoutes(g)
	return g
}

func (d *Daemon) configureRoutes(g *gin.Engine) {
	root := g.Group("/")
	root.GET("/healthz", d.Healthz)

	zooGroup := g.Group("/api/zoo")
	zooGroup.GET("/status", d.status)
	zooGroup.GET("/connect/*connectString", d.connect)
	zooGroup.GET("/browse/*path", d.browse)
}

// Healthz returns a 200 with the version
func (d *Daemon) Healthz(c *gin.Context) {
	c.JSON(200, map[string]string{
		"version": version.Version(),
	})
}

// Connect dials connectString and swaps the result in for the current store.
// The lock is only held for the swap, so status and browse requests keep
// being served by the old store while the dial retries. A failed dial still
// drops the old store.
func (d *Daemon) Connect(ctx context.Context, connectString string) error {
	level.Info(d.Logger).Log("event", "connect", "connectString", connectString)
	store, err := d.Dialer.Dial(ctx, connectString)

	d.mu.Lock()
	defer d.mu.Unlock()

	if d.store != nil {
		level.Info(d.Logger).Log("event", "disconnect", "connectString", d.store.ConnectString())
		if closeErr := d.store.Close(); closeErr != nil {
			level.Warn(d.Logger).Log("event", "disconnect.fail", "err", closeErr)
		}
		d.store = nil
	}

	if err != nil {
		return err
	}
	d.store = store
	level.Info(d.Logger).Log("event", "connect.done", "connectString", connectString)
	return nil
}

func (d *Daemon) disconnect() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.store != nil {
		_ = d.store.Close()
		d.store = nil
	}
}

func (d *Daemon) status(c *gin.Context) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	status := api.Status{}
	if d.store != nil {
		connectString := d.store.ConnectString()
		status.ConnectString = &connectString
	}
	c.JSON(200, status)
}

func (d *Daemon) connect(c *gin.Context) {
	connectString := trimLeadingSlash(c.Param("connectString"))
	if err := d.Connect(c.Request.Context(), connectString); err != nil {
		level.Error(d.Logger).Log("event", "connect.fail", "connectString", connectString, "err", err)
		d.abortWithError(c, err)
		return
	}
	c.JSON(200, api.ConnectResult{Msg: constants.ConnectedMessage + connectString})
}

func (d *Daemon) browse(c *gin.Context) {
	debug := level.Debug(log.With(d.Logger, "handler", "browse"))
	path := c.Param("path")
	fullHierarchy, err := strconv.ParseBool(c.DefaultQuery("full_hierarchy", "false"))
	if err != nil {
		c.String(400, "invalid full_hierarchy: "+c.Query("full_hierarchy"))
		return
	}

	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.store == nil {
		d.abortWithError(c, zoo.ErrNotConnected)
		return
	}

	debug.Log("event", "browse", "path", path, "fullHierarchy", fullHierarchy)
	node, err := d.Browser.Browse(c.Request.Context(), d.store, path, fullHierarchy)
	if zoo.IsNoNode(err) {
		c.String(404, constants.PathNotFoundMessage+"/"+trimSlashes(path))
		return
	}
	if err != nil {
		level.Error(d.Logger).Log("event", "browse.fail", "path", path, "err", err)
		d.abortWithError(c, err)
		return
	}
	c.JSON(200, node)
}

// errors are reported as plain text bodies, the way clients display them
func (d *Daemon) abortWithError(c *gin.Context, err error) {
	c.String(500, err.Error())
	c.Abort()
}

func (d *Daemon) timed() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		level.Debug(d.Logger).Log(
			"event", "request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"took", time.Since(start),
		)
	}
}
