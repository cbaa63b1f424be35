package handlers

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"time"

	adapter "github.com/hmcts/dtsse-ardoq-adapter"
	"github.com/hmcts/dtsse-ardoq-adapter/internal/metrics"
	"github.com/hmcts/dtsse-ardoq-adapter/internal/parser"
	"github.com/hmcts/dtsse-ardoq-adapter/internal/server/events"
	"github.com/hmcts/dtsse-ardoq-adapter/internal/server/response"
	"github.com/hmcts/dtsse-ardoq-adapter/pkg/logging"
)

// HandleReport handles POST /api/v1/{format}/{repo}.
// The body is the raw output of the build tool; ?vcsHost= overrides the
// configured hosting location.
func (h *Handlers) HandleReport(w http.ResponseWriter, r *http.Request, format, repo string) {
	if r.Method != http.MethodPost {
		response.MethodNotAllowed(w, r.Method)
		return
	}

	start := time.Now()
	ctx := logging.WithOperation(r.Context(), format+"_report")
	logger := logging.FromContext(ctx)

	p, err := parser.Get(format)
	if err != nil {
		response.ErrorFromType(w, err)
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, h.maxBody))
	if err != nil {
		h.metrics.ReportProcessed(format, metrics.ResultInvalid, time.Since(start))
		response.ErrorFromType(w, err)
		return
	}

	deps, err := p.Parse(bytes.NewReader(body))
	if err != nil {
		logger.Warn().Err(err).Str("repository", repo).Msg("Rejected dependency report")
		h.metrics.ReportProcessed(format, metrics.ResultInvalid, time.Since(start))
		response.ErrorFromType(w, err)
		return
	}

	if h.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.timeout)
		defer cancel()
	}

	summary, err := h.adapter.Process(ctx, adapter.Report{
		Repository:   repo,
		VCSHost:      r.URL.Query().Get("vcsHost"),
		Parser:       format,
		Dependencies: deps,
	})
	if err != nil {
		logger.Error().Err(err).Str("repository", repo).Msg("Dependency report failed")
		h.metrics.ReportProcessed(format, metrics.ResultFailed, time.Since(start))
		response.ErrorFromType(w, err)
		return
	}

	h.metrics.ReportProcessed(format, metrics.ResultSuccess, time.Since(start))
	h.broker.Publish(events.ReportProcessed, summary)
	response.OK(w, summary)
}
