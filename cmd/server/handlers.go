package main

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/valyala/fasthttp"
	"github.com/valyala/fasthttp/fasthttpadaptor"

	"github.com/baditaflorin/go_text_normalization/internal/adapters/logger"
	"github.com/baditaflorin/go_text_normalization/internal/core/domain"
	"github.com/baditaflorin/go_text_normalization/internal/metrics"
	"github.com/baditaflorin/go_text_normalization/pkg/cardinal"
	"github.com/baditaflorin/go_text_normalization/pkg/fst"
	"github.com/baditaflorin/go_text_normalization/internal/ports"
	"github.com/baditaflorin/go_text_normalization/pkg/normalizer"
	"github.com/baditaflorin/l"
)

// Grammar names accepted by /cardinal.
const (
	grammarRestricted = "restricted"
	grammarBase       = "base"
)

// NormalizeRequest is the body of POST /normalize.
type NormalizeRequest struct {
	Text string `json:"text"`
}

// NormalizeResponse is returned by POST /normalize.
type NormalizeResponse struct {
	Normalized     string         `json:"normalized"`
	Tokens         []string       `json:"tokens,omitempty"`
	Counts         map[string]int `json:"counts"`
	ProcessingTime string         `json:"processing_time"`
}

// CardinalRequest is the body of POST /cardinal.
type CardinalRequest struct {
	Input string `json:"input"`
	// N is the number of alternatives; 0 means 1.
	N int `json:"n,omitempty"`
	// Grammar is "restricted" (default) or "base".
	Grammar string `json:"grammar,omitempty"`
}

// CardinalResponse is returned by POST /cardinal.
type CardinalResponse struct {
	Input        string     `json:"input"`
	Matched      bool       `json:"matched"`
	Alternatives []fst.Path `json:"alternatives"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// server holds the compiled grammars shared by all requests.
type server struct {
	logger          ports.Logger
	normalizer      *normalizer.TextNormalizer
	cardinals       map[string]*cardinal.Grammar
	metrics         *metrics.Metrics
	metricsHandler  fasthttp.RequestHandler
	maxAlternatives int
	requestTimeout  time.Duration
}

func newServer(log l.Logger, n *normalizer.TextNormalizer, cardinals map[string]*cardinal.Grammar, m *metrics.Metrics, maxAlternatives int) *server {
	for name, g := range cardinals {
		m.SetGrammarStates(g.Name()+"/"+name, g.Fst().NumStates())
	}
	return &server{
		logger:          logger.FromExisting(log),
		normalizer:      n,
		cardinals:       cardinals,
		metrics:         m,
		metricsHandler:  fasthttpadaptor.NewFastHTTPHandler(m.Handler()),
		maxAlternatives: maxAlternatives,
		requestTimeout:  30 * time.Second,
	}
}

// requestHandler is the main fasthttp request handler
func (s *server) requestHandler(ctx *fasthttp.RequestCtx) {
	startTime := time.Now()

	requestID := string(ctx.Request.Header.Peek("X-Request-ID"))
	if requestID == "" {
		requestID = uuid.NewString()
	}
	ctx.Response.Header.Set("X-Request-ID", requestID)
	ctx.Response.Header.Set("Server", "TextNormalizationServer")
	log := logger.With(s.logger, "request_id", requestID)

	path := string(ctx.Path())
	switch path {
	case "/health":
		s.handleHealthCheck(ctx, log)
	case "/normalize":
		s.handleNormalize(ctx, log)
	case "/cardinal":
		s.handleCardinal(ctx, log)
	case "/metrics":
		s.metricsHandler(ctx)
	default:
		ctx.SetStatusCode(fasthttp.StatusNotFound)
		writeJSONError(ctx, log, "Not found")
		path = "other"
	}

	duration := time.Since(startTime)
	s.metrics.ObserveRequest(path, ctx.Response.StatusCode(), duration)
	log.Info("Request processed",
		"method", string(ctx.Method()),
		"path", string(ctx.Path()),
		"status", ctx.Response.StatusCode(),
		"ip", ctx.RemoteIP().String(),
		"duration", duration,
	)
}

// handleHealthCheck responds to health check requests
func (s *server) handleHealthCheck(ctx *fasthttp.RequestCtx, log ports.Logger) {
	ctx.SetStatusCode(fasthttp.StatusOK)
	writeJSONResponse(ctx, log, map[string]interface{}{
		"status":     "ok",
		"tagger_set": s.normalizer.TaggerSet(),
		"time":       time.Now().Format(time.RFC3339),
	})
}

// handleNormalize rewrites a text into spoken form
func (s *server) handleNormalize(ctx *fasthttp.RequestCtx, log ports.Logger) {
	if !ctx.IsPost() {
		ctx.SetStatusCode(fasthttp.StatusMethodNotAllowed)
		writeJSONError(ctx, log, "Method not allowed")
		return
	}

	var req NormalizeRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		ctx.SetStatusCode(fasthttp.StatusBadRequest)
		writeJSONError(ctx, log, "Invalid request: "+err.Error())
		return
	}

	c, cancel := context.WithTimeout(context.Background(), s.requestTimeout)
	defer cancel()

	res, err := s.normalizer.Normalize(c, req.Text)
	if err != nil {
		log.Warn("Normalization cancelled", "error", err, "bytes", len(req.Text))
		ctx.SetStatusCode(fasthttp.StatusServiceUnavailable)
		writeJSONError(ctx, log, "Normalization cancelled: "+err.Error())
		return
	}

	ctx.SetStatusCode(fasthttp.StatusOK)
	writeJSONResponse(ctx, log, NormalizeResponse{
		Normalized:     res.Normalized,
		Tokens:         taggedTokens(res.Tokens),
		Counts:         res.Counts,
		ProcessingTime: res.Duration.String(),
	})
}

// taggedTokens serializes the non-name tokens.
func taggedTokens(tokens []domain.Token) []string {
	var out []string
	for _, tok := range tokens {
		if tok.Class != domain.ClassName {
			out = append(out, tok.String())
		}
	}
	return out
}

// handleCardinal reads a single numeral
func (s *server) handleCardinal(ctx *fasthttp.RequestCtx, log ports.Logger) {
	if !ctx.IsPost() {
		ctx.SetStatusCode(fasthttp.StatusMethodNotAllowed)
		writeJSONError(ctx, log, "Method not allowed")
		return
	}

	var req CardinalRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		ctx.SetStatusCode(fasthttp.StatusBadRequest)
		writeJSONError(ctx, log, "Invalid request: "+err.Error())
		return
	}
	if req.Input == "" {
		ctx.SetStatusCode(fasthttp.StatusBadRequest)
		writeJSONError(ctx, log, "Input is required")
		return
	}
	if req.Grammar == "" {
		req.Grammar = grammarRestricted
	}
	g, ok := s.cardinals[req.Grammar]
	if !ok {
		ctx.SetStatusCode(fasthttp.StatusBadRequest)
		writeJSONError(ctx, log, "Unknown grammar: "+req.Grammar)
		return
	}
	if req.N <= 0 {
		req.N = 1
	}
	if req.N > s.maxAlternatives {
		req.N = s.maxAlternatives
	}

	paths := g.Alternatives(req.Input, req.N)
	if paths == nil {
		paths = []fst.Path{}
	}
	ctx.SetStatusCode(fasthttp.StatusOK)
	writeJSONResponse(ctx, log, CardinalResponse{
		Input:        req.Input,
		Matched:      len(paths) > 0,
		Alternatives: paths,
	})
}

// writeJSONResponse writes a JSON response to the context
func writeJSONResponse(ctx *fasthttp.RequestCtx, log ports.Logger, data interface{}) {
	response, err := json.Marshal(data)
	if err != nil {
		ctx.SetStatusCode(fasthttp.StatusInternalServerError)
		log.Error("Error marshaling JSON response", "error", err)
		writeJSONError(ctx, log, "Internal server error")
		return
	}
	ctx.SetContentType("application/json")
	ctx.SetBody(response)
}

// writeJSONError writes a JSON error response to the context
func writeJSONError(ctx *fasthttp.RequestCtx, log ports.Logger, message string) {
	response, err := json.Marshal(ErrorResponse{Error: message})
	if err != nil {
		ctx.SetStatusCode(fasthttp.StatusInternalServerError)
		log.Error("Error marshaling JSON error response", "error", err)
		ctx.SetBodyString(`{"error":"Internal server error"}`)
		return
	}
	ctx.SetContentType("application/json")
	ctx.SetBody(response)
}
