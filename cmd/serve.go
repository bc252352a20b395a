package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/racesim/skill-ranker/sim"
)

var (
	// CLI flags for the serve command
	serveAddr     string // Listen address
	serveLogLevel string // Log verbosity level
)

// serveCmd exposes ranking runs over HTTP, streaming progress as server-sent events
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve ranking runs over HTTP with server-sent event progress",
	Run: func(cmd *cobra.Command, args []string) {
		setLogLevel(serveLogLevel)

		reg := prometheus.NewRegistry()
		e := newServer(sim.NewRecorder(reg), reg)

		logrus.Infof("Listening on %s", serveAddr)
		if err := e.Start(serveAddr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.Fatalf("Server stopped: %v", err)
		}
	},
}

// apiError is the JSON body of a rejected request.
type apiError struct {
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

// rankHandler runs one ranking per request.
type rankHandler struct {
	recorder *sim.Recorder
}

// newServer wires the ranking API and the metrics endpoint for reg.
func newServer(recorder *sim.Recorder, reg *prometheus.Registry) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	h := &rankHandler{recorder: recorder}
	e.POST("/api/rank", h.Rank)
	e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))
	e.GET("/healthz", func(c echo.Context) error {
		return c.NoContent(http.StatusNoContent)
	})
	return e
}

// Rank validates a RunConfig body and streams the run's events. A request
// rejected before any simulation starts gets a 400 with a JSON error, unless
// the client accepts text/event-stream: then the stream opens and carries a
// single error event, the same frame a failed run ends with.
func (h *rankHandler) Rank(c echo.Context) error {
	cfg := &RunConfig{}
	if err := c.Bind(cfg); err != nil {
		return h.reject(c, fmt.Errorf("invalid request body: %w", err))
	}
	if err := finalizeRunConfig(cfg); err != nil {
		return h.reject(c, err)
	}
	run, err := newRankRun(cfg, h.recorder)
	if err != nil {
		return h.reject(c, err)
	}

	w := openStream(c)
	if _, err := run.scheduler.Run(func(ev sim.Event) { writeEvent(w, ev) }); err != nil {
		logrus.Warnf("ranking request failed: %v", err)
	}
	return nil
}

// reject answers a request that failed before any work was done.
func (h *rankHandler) reject(c echo.Context, err error) error {
	if !acceptsEventStream(c.Request()) {
		return c.JSON(http.StatusBadRequest, errorBody(err))
	}
	writeEvent(openStream(c), sim.Event{Type: sim.EventError, Error: err.Error()})
	return nil
}

func acceptsEventStream(r *http.Request) bool {
	return strings.Contains(r.Header.Get(echo.HeaderAccept), mimeEventStream)
}

const mimeEventStream = "text/event-stream"

// openStream sends the SSE response headers.
func openStream(c echo.Context) *echo.Response {
	w := c.Response()
	w.Header().Set(echo.HeaderContentType, mimeEventStream)
	w.Header().Set(echo.HeaderCacheControl, "no-cache")
	w.Header().Set(echo.HeaderConnection, "keep-alive")
	w.WriteHeader(http.StatusOK)
	return w
}

// writeEvent sends ev as one SSE data frame and flushes it.
func writeEvent(w *echo.Response, ev sim.Event) {
	data, err := json.Marshal(ev)
	if err != nil {
		logrus.Errorf("encoding %s event: %v", ev.Type, err)
		return
	}
	fmt.Fprintf(w, "data: %s\n\n", data)
	w.Flush()
}

func errorBody(err error) apiError {
	var cfgErr *sim.ConfigurationError
	if errors.As(err, &cfgErr) {
		return apiError{Field: cfgErr.Field, Message: cfgErr.Reason}
	}
	return apiError{Message: err.Error()}
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", ":8080", "Listen address")
	serveCmd.Flags().StringVar(&serveLogLevel, "log", "info", "Log level (trace, debug, info, warn, error, fatal, panic)")
}
