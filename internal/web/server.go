package web

import (
	"context"
	"embed"
	"html/template"
	"net/http"
	"strconv"
	"time"

	"go-linkedin-job-scraper/internal/app"
	"go-linkedin-job-scraper/internal/job"
	"go-linkedin-job-scraper/internal/logging"

	"github.com/gin-gonic/gin"
)

//go:embed templates/*.html
var templatesFS embed.FS

// Runner runs one scrape for the given input.
type Runner interface {
	Run(ctx context.Context, in app.Input) (*app.Result, error)
}

type Server struct {
	srv    *http.Server
	runner Runner
	log    *logging.Logger
}

type pageData struct {
	Input   app.Input
	Result  *app.Result
	Columns []string
}

func New(addr string, runner Runner, log *logging.Logger) *Server {
	s := &Server{runner: runner, log: log}
	s.srv = &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Router builds the gin engine. Exposed for tests.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(s.log))
	r.SetHTMLTemplate(template.Must(template.ParseFS(templatesFS, "templates/*.html")))

	r.GET("/", s.index)
	r.POST("/scrape", s.scrape)
	r.POST("/api/scrape", s.apiScrape)
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})
	return r
}

func (s *Server) ListenAndServe() error {
	s.log.Info("server listening", "addr", s.srv.Addr)
	return s.srv.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}

func (s *Server) index(c *gin.Context) {
	c.HTML(http.StatusOK, "index.html", pageData{
		Input:   app.Input{Count: strconv.Itoa(app.DefaultCount)},
		Columns: job.Columns,
	})
}

// scrape blocks until the run completes or times out, then renders the table.
func (s *Server) scrape(c *gin.Context) {
	var in app.Input
	if err := c.ShouldBind(&in); err != nil {
		c.HTML(http.StatusBadRequest, "index.html", pageData{
			Input:   in,
			Result:  &app.Result{Notices: []app.Notice{{Level: app.LevelError, Message: err.Error()}}},
			Columns: job.Columns,
		})
		return
	}

	status := http.StatusOK
	res, err := s.runner.Run(c.Request.Context(), in)
	if err != nil {
		s.log.Error("scrape failed", "err", err)
		status = http.StatusInternalServerError
		if res == nil {
			res = &app.Result{}
		}
		res.Notices = append(res.Notices, app.Notice{Level: app.LevelError, Message: "[ERROR] " + err.Error()})
	}

	c.HTML(status, "index.html", pageData{
		Input:   in,
		Result:  res,
		Columns: job.Columns,
	})
}

func (s *Server) apiScrape(c *gin.Context) {
	var in app.Input
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	res, err := s.runner.Run(c.Request.Context(), in)
	if err != nil {
		s.log.Error("scrape failed", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, res)
}

func requestLogger(log *logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Info("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency", time.Since(start).Round(time.Millisecond),
		)
	}
}
