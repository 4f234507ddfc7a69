// Package server exposes the web UI and JSON API over fiber.
package server

import (
	_ "embed"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/nguyentantai21042004/accent-lens/internal/config"
	"github.com/nguyentantai21042004/accent-lens/internal/logger"
	"github.com/nguyentantai21042004/accent-lens/internal/processor"
	"github.com/nguyentantai21042004/accent-lens/internal/report"
)

//go:embed index.html
var indexHTML []byte

type Server struct {
	cfg    *config.Config
	app    *fiber.App
	proc   processor.Processor
	logger logger.Logger
	store  *runStore
}

// New creates the HTTP server and registers its routes
func New(cfg *config.Config, proc processor.Processor, log logger.Logger) *Server {
	app := fiber.New(fiber.Config{
		BodyLimit:             cfg.Server.MaxUploadMB * 1024 * 1024,
		DisableStartupMessage: true,
	})

	s := &Server{
		cfg:    cfg,
		app:    app,
		proc:   proc,
		logger: log,
		store:  newRunStore(cfg.Server.MaxRuns),
	}

	app.Get("/", s.handleIndex)
	app.Get("/healthz", s.handleHealth)
	app.Post("/api/analyze", s.handleAnalyze)
	app.Get("/api/runs/:id/audio", s.handleAudio)
	app.Get("/api/runs/:id/report", s.handleReport)

	return s
}

// App exposes the fiber app for tests
func (s *Server) App() *fiber.App {
	return s.app
}

// Listen blocks serving HTTP until Shutdown is called
func (s *Server) Listen() error {
	return s.app.Listen(s.cfg.Server.ListenAddr())
}

func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

func (s *Server) handleIndex(c *fiber.Ctx) error {
	c.Type("html")
	return c.Send(indexHTML)
}

func (s *Server) handleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

// runView is the JSON shape of a run returned to the UI
type runView struct {
	ID         string `json:"id"`
	Status     string `json:"status"`
	Accent     string `json:"accent"`
	Confidence string `json:"confidence"`
	Summary    string `json:"summary"`
	Raw        string `json:"raw_response"`
	Error      string `json:"error,omitempty"`
	Source     string `json:"source"`
	DurationMS int64  `json:"duration_ms"`
	AudioURL   string `json:"audio_url,omitempty"`
	ReportURL  string `json:"report_url,omitempty"`
}

func viewOf(run *processor.Run) runView {
	v := runView{
		ID:         run.ID,
		Status:     string(run.Status),
		Accent:     run.Accent,
		Confidence: run.Confidence,
		Summary:    run.Summary,
		Raw:        run.Raw,
		Error:      run.Error,
		Source:     run.SourceName,
		DurationMS: run.Duration.Milliseconds(),
	}
	if len(run.AudioWAV) > 0 {
		v.AudioURL = fmt.Sprintf("/api/runs/%s/audio", run.ID)
	}
	if !run.Status.Failed() {
		v.ReportURL = fmt.Sprintf("/api/runs/%s/report", run.ID)
	}
	return v
}

// handleAnalyze accepts a multipart upload (field "file") or a form URL
// (field "url") and runs the full pipeline synchronously. Failures are
// reported in the run payload; only a missing source is a request error.
func (s *Server) handleAnalyze(c *fiber.Ctx) error {
	ctx := c.UserContext()
	src := processor.Source{
		URL: strings.TrimSpace(c.FormValue("url")),
	}

	if fh, err := c.FormFile("file"); err == nil && fh != nil {
		f, err := fh.Open()
		if err != nil {
			s.logger.Error(ctx, "Failed to open upload %q: %v", fh.Filename, err)
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "could not read uploaded file"})
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			s.logger.Error(ctx, "Failed to read upload %q: %v", fh.Filename, err)
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "could not read uploaded file"})
		}
		src.Filename = fh.Filename
		src.Data = data
	}

	if len(src.Data) == 0 && src.URL == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "upload an audio/video file or provide a URL first",
		})
	}

	run := s.proc.Process(ctx, src)
	s.store.Put(run)

	return c.JSON(viewOf(run))
}

func (s *Server) handleAudio(c *fiber.Ctx) error {
	run, ok := s.store.Get(c.Params("id"))
	if !ok || len(run.AudioWAV) == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "audio not available"})
	}

	c.Set(fiber.HeaderContentType, "audio/wav")
	return c.Send(run.AudioWAV)
}

// handleReport renders the run into a docx on the fly. The file is built in
// the scratch dir, read back, and removed before the response is sent.
func (s *Server) handleReport(c *fiber.Ctx) error {
	run, ok := s.store.Get(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "run not found"})
	}

	tmp, err := os.CreateTemp(s.cfg.Paths.Temp, "report-*.docx")
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "could not create report"})
	}
	tmpPath := tmp.Name()
	tmp.Close()
	defer os.Remove(tmpPath)

	if err := report.Write(run, tmpPath); err != nil {
		s.logger.Error(c.UserContext(), "Failed to render report for run %s: %v", run.ID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "could not render report"})
	}

	data, err := os.ReadFile(tmpPath)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "could not read report"})
	}

	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.wordprocessingml.document")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="analysis-%s.docx"`, run.ID))
	return c.Send(data)
}
