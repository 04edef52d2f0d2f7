package api

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/rs/zerolog"

	"github.com/gyeh/tanshu3/internal/efread"
	"github.com/gyeh/tanshu3/internal/ingest"
	"github.com/gyeh/tanshu3/internal/model"
	"github.com/gyeh/tanshu3/internal/report"
)

// Version is reported by /api/health.
const Version = "1.0.0"

// maxUploadBytes bounds one request; EF files for a month run to tens of MB.
const maxUploadBytes = 512 << 20

// EvaluateResponse is the JSON response from the /api/evaluate endpoint.
type EvaluateResponse struct {
	Success bool             `json:"success"`
	Error   string           `json:"error,omitempty"`
	BatchID string           `json:"batchId,omitempty"`
	Report  string           `json:"report,omitempty"`
	Cases   []CaseResult     `json:"cases"`
	Summary *SummaryResponse `json:"summary,omitempty"`
}

// CaseResult is one report row in JSON form.
type CaseResult struct {
	ID         string `json:"id"`
	Admission  string `json:"admission"`
	Discharge  string `json:"discharge"`
	Eligible   bool   `json:"eligible"`
	ReasonCode string `json:"reasonCode"`
	Reason     string `json:"reason"`
}

// SummaryResponse holds batch counters for the JSON response.
type SummaryResponse struct {
	Cases    int            `json:"cases"`
	Eligible int            `json:"eligible"`
	ByReason map[string]int `json:"byReason"`
	Files    []FileResponse `json:"files"`
	Duration string         `json:"duration"`
}

// FileResponse describes one uploaded file.
type FileResponse struct {
	Name        string `json:"name"`
	SHA256      string `json:"sha256"`
	SizeBytes   int64  `json:"sizeBytes"`
	Encoding    string `json:"encoding"`
	RowsRead    int64  `json:"rowsRead"`
	RowsSkipped int64  `json:"rowsSkipped"`
}

// Handler serves the evaluation endpoints. Defaults supplies the options a
// request does not override; its ParquetPath is ignored.
type Handler struct {
	Log      zerolog.Logger
	Defaults ingest.Options
}

// NewApp builds a fiber app with the API routes registered.
func NewApp(h *Handler) *fiber.App {
	app := fiber.New(fiber.Config{
		BodyLimit:             maxUploadBytes,
		DisableStartupMessage: true,
	})
	app.Use(recover.New())
	app.Use(h.logRequests)
	h.RegisterRoutes(app)
	return app
}

// RegisterRoutes sets up the HTTP routes.
func (h *Handler) RegisterRoutes(app *fiber.App) {
	app.Get("/api/health", h.HandleHealth)
	app.Post("/api/evaluate", h.HandleEvaluate)
}

func (h *Handler) HandleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "ok",
		"version": Version,
	})
}

// HandleEvaluate evaluates the uploaded EF files. Files are read from the
// multipart field "files" in upload order.
func (h *Handler) HandleEvaluate(c *fiber.Ctx) error {
	form, err := c.MultipartForm()
	if err != nil {
		return writeError(c, fiber.StatusBadRequest, fmt.Sprintf("Failed to parse form: %v", err))
	}
	uploads := form.File["files"]
	if len(uploads) == 0 {
		return writeError(c, fiber.StatusBadRequest, "No files uploaded. Use form field 'files'.")
	}

	opts, err := h.requestOptions(c)
	if err != nil {
		return writeError(c, fiber.StatusBadRequest, err.Error())
	}

	sources := make([]ingest.Source, 0, len(uploads))
	for _, fh := range uploads {
		f, err := fh.Open()
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, fmt.Sprintf("Failed to open %s: %v", fh.Filename, err))
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, fmt.Sprintf("Failed to read %s: %v", fh.Filename, err))
		}
		sources = append(sources, ingest.BytesSource(fh.Filename, data))
	}

	res, err := ingest.Run(h.Log, sources, opts)
	if err != nil {
		status := fiber.StatusUnprocessableEntity
		if errors.Is(err, ingest.ErrNoFiles) {
			status = fiber.StatusBadRequest
		}
		return writeError(c, status, err.Error())
	}

	return c.JSON(buildResponse(res, opts.Output))
}

func (h *Handler) requestOptions(c *fiber.Ctx) (ingest.Options, error) {
	opts := h.Defaults
	opts.ParquetPath = ""
	if v := c.FormValue("outputMode"); v != "" {
		m, err := model.ParseOutputMode(v)
		if err != nil {
			return opts, err
		}
		opts.Output.OutputMode = m
	}
	if v := c.FormValue("dateFormat"); v != "" {
		f, err := model.ParseDateFormat(v)
		if err != nil {
			return opts, err
		}
		opts.Output.DateFormat = f
	}
	if v := c.FormValue("encoding"); v != "" {
		enc, err := efread.ParseEncoding(v)
		if err != nil {
			return opts, err
		}
		opts.Encoding = enc
	}
	if v := c.FormValue("header"); v != "" {
		opts.Header = v
	}
	return opts, nil
}

func buildResponse(res *ingest.Result, settings model.OutputSettings) EvaluateResponse {
	selected := report.Filter(res.Cases, settings.OutputMode)
	cases := make([]CaseResult, 0, len(selected))
	for _, c := range selected {
		cols := report.Row(c, settings.DateFormat)
		cases = append(cases, CaseResult{
			ID:         cols[0],
			Admission:  cols[1],
			Discharge:  cols[2],
			Eligible:   c.IsEligible,
			ReasonCode: c.Reason.Code.String(),
			Reason:     cols[4],
		})
	}

	s := res.Summary
	files := make([]FileResponse, 0, len(s.Files))
	for _, f := range s.Files {
		files = append(files, FileResponse{
			Name:        f.Path,
			SHA256:      f.SHA256,
			SizeBytes:   f.SizeBytes,
			Encoding:    f.Encoding,
			RowsRead:    f.RowsRead,
			RowsSkipped: f.RowsSkipped,
		})
	}

	return EvaluateResponse{
		Success: true,
		BatchID: s.BatchID,
		Report:  res.Report,
		Cases:   cases,
		Summary: &SummaryResponse{
			Cases:    s.Cases,
			Eligible: s.Eligible,
			ByReason: s.ByReason,
			Files:    files,
			Duration: s.DurationTotal.String(),
		},
	}
}

func (h *Handler) logRequests(c *fiber.Ctx) error {
	start := time.Now()
	err := c.Next()
	h.Log.Info().
		Str("method", c.Method()).
		Str("path", c.Path()).
		Int("status", c.Response().StatusCode()).
		Dur("duration", time.Since(start)).
		Msg("request")
	return err
}

func writeError(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(EvaluateResponse{
		Success: false,
		Error:   msg,
		Cases:   []CaseResult{},
	})
}
