// Package mockserver serves a small stand-in for the OpenWeatherMap 2.5 API
// so contract runs can be exercised without network access or an API key.
package mockserver

import (
	"context"
	stderrors "errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"weathercontract.app/internal/ports"
	"weathercontract.app/pkg/errors"
)

const (
	forecastSteps    = 5
	forecastInterval = 3 * time.Hour
	shutdownTimeout  = 5 * time.Second
)

// Options configures the mock server
type Options struct {
	// APIKey, when set, is the only accepted appid; otherwise any non-empty appid is accepted.
	APIKey string
	Logger ports.Logger
	// Now is used for the dt fields; defaults to time.Now.
	Now func() time.Time
}

// Server is the gin-backed mock weather API
type Server struct {
	router   *gin.Engine
	apiKey   string
	logger   ports.Logger
	now      func() time.Time
	registry *prometheus.Registry
	requests *prometheus.CounterVec
}

// New creates the mock server and registers its routes
func New(opts Options) (*Server, error) {
	if opts.Logger == nil {
		return nil, errors.NewValidationError("logger is required")
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())

	registry := prometheus.NewRegistry()
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "mock_weather_requests_total",
		Help: "Requests served by the mock weather API",
	}, []string{"path", "status"})
	registry.MustRegister(requests)

	s := &Server{
		router:   router,
		apiKey:   opts.APIKey,
		logger:   opts.Logger,
		now:      now,
		registry: registry,
		requests: requests,
	}
	s.setupRoutes()
	return s, nil
}

func (s *Server) setupRoutes() {
	s.router.Use(s.observe)

	s.router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	s.router.GET("/broken", func(c *gin.Context) {
		c.Data(http.StatusOK, "application/json; charset=utf-8", []byte(`{"cod": 200, "name": "Lon`))
	})
	s.router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{})))

	s.router.GET("/weather", s.getWeather)
	s.router.GET("/forecast", s.getForecast)

	s.router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, ErrorResponse{Cod: "404", Message: "Internal error"})
	})
}

// Handler returns the router for httptest servers
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start serves on addr until ctx is cancelled
func (s *Server) Start(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Mock weather API listening", ports.F("addr", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !stderrors.Is(err, http.ErrServerClosed) {
			return errors.NewResourceError("mock server stopped", err)
		}
		return nil
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		s.logger.Info("Shutting down mock weather API")
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) observe(c *gin.Context) {
	c.Next()
	s.requests.WithLabelValues(c.FullPath(), strconv.Itoa(c.Writer.Status())).Inc()
	s.logger.Debug("Mock request served",
		ports.F("method", c.Request.Method),
		ports.F("path", c.Request.URL.Path),
		ports.F("status", c.Writer.Status()))
}

// lookup applies the API's checks in the order the real service does: key, then query, then city.
func (s *Server) lookup(c *gin.Context) (city, bool) {
	appid := c.Query("appid")
	if appid == "" || (s.apiKey != "" && appid != s.apiKey) {
		c.JSON(http.StatusUnauthorized, ErrorResponse{
			Cod:     "401",
			Message: "Invalid API key. Please see https://openweathermap.org/faq#error401 for more info.",
		})
		return city{}, false
	}

	q := strings.TrimSpace(c.Query("q"))
	if q == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Cod: "400", Message: "Nothing to geocode"})
		return city{}, false
	}

	name := strings.ToLower(strings.SplitN(q, ",", 2)[0])
	if name == "servererror" {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Cod: "500", Message: "Internal server error"})
		return city{}, false
	}

	found, ok := cities[name]
	if !ok {
		c.JSON(http.StatusNotFound, ErrorResponse{Cod: "404", Message: "city not found"})
		return city{}, false
	}
	return found, true
}

func (s *Server) getWeather(c *gin.Context) {
	ct, ok := s.lookup(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, WeatherResponse{
		Coord:   ct.coord,
		Weather: []condition{ct.sky},
		Main:    ct.readings(0),
		Wind:    wind{Speed: 4.1, Deg: 240},
		Dt:      s.now().Unix(),
		ID:      ct.id,
		Name:    ct.name,
		Cod:     http.StatusOK,
	})
}

func (s *Server) getForecast(c *gin.Context) {
	ct, ok := s.lookup(c)
	if !ok {
		return
	}

	start := s.now().UTC().Truncate(forecastInterval)
	list := make([]forecastEntry, forecastSteps)
	for i := range list {
		at := start.Add(time.Duration(i+1) * forecastInterval)
		list[i] = forecastEntry{
			Dt:      at.Unix(),
			Main:    ct.readings(float64(i) * 0.5),
			Weather: []condition{ct.sky},
			Wind:    wind{Speed: 3.5 + float64(i)*0.2, Deg: 230},
			DtTxt:   at.Format("2006-01-02 15:04:05"),
		}
	}

	c.JSON(http.StatusOK, ForecastResponse{
		Cod:     "200",
		Message: 0,
		Cnt:     len(list),
		List:    list,
		City: forecastCity{
			ID:      ct.id,
			Name:    ct.name,
			Coord:   ct.coord,
			Country: ct.country,
		},
	})
}
