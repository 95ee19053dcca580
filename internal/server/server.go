package server

import (
	"bufio"
	"context"
	"net"
	"time"

	"github.com/opentracing/opentracing-go"
	"github.com/opentracing/opentracing-go/ext"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/rg-golubkov/currency-converter/internal/exchange"
	"github.com/rg-golubkov/currency-converter/internal/logger"
)

type config interface {
	BindAddr() string
}

// Server accepts conversion requests over the wire protocol and
// answers each connection with exactly one response.
type Server struct {
	addr   string
	router *Router
}

func New(cfg config, router *Router) *Server {
	return &Server{
		addr:   cfg.BindAddr(),
		router: router,
	}
}

// Start listens on the configured address and serves until ctx is
// cancelled.
func (s *Server) Start(ctx context.Context) error {
	var lc net.ListenConfig
	ln, err := lc.Listen(ctx, "tcp", s.addr)
	if err != nil {
		return errors.Wrap(err, "listen")
	}

	return s.Serve(ctx, ln)
}

// Serve accepts connections from ln, one goroutine per connection.
// Connections never block each other except through the shared rate
// provider lock.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	logger.Info("server started", zap.String("addr", ln.Addr().String()))

	go func() {
		<-ctx.Done()
		_ = ln.Close()
	}()

	for {
		conn, err := ln.Accept()
		if err != nil {
			if ctx.Err() != nil {
				logger.Info("server stopped")
				return nil
			}
			return errors.Wrap(err, "accept")
		}
		go s.handleConn(ctx, conn)
	}
}

// handleConn runs one connection through parse, dispatch, convert and
// respond. Every path produces exactly one response, then the
// connection is closed: there is no keep-alive.
func (s *Server) handleConn(ctx context.Context, conn net.Conn) {
	defer conn.Close()

	span, ctx := opentracing.StartSpanFromContext(ctx, "handleConnection")
	defer span.Finish()

	start := time.Now()
	resp := s.serve(ctx, bufio.NewReader(conn))
	observeResponse(time.Since(start), resp.code)

	if resp.code != 200 {
		ext.Error.Set(span, true)
	}

	if err := resp.writeTo(conn); err != nil {
		logger.Error("failed to write response", zap.Error(err))
	}
}

func (s *Server) serve(ctx context.Context, r *bufio.Reader) (resp *response) {
	defer func() {
		if p := recover(); p != nil {
			logger.Error("panic while serving request", zap.Any("panic", p))
			resp = newResponse(500, "Internal Server Error", nil)
		}
	}()

	req, err := parseRequest(r)
	if err != nil {
		return errorResponse(err)
	}

	logger.Info("request",
		zap.String("method", req.Method), zap.String("path", req.Path))

	result, err := s.process(ctx, req)
	if err != nil {
		return errorResponse(err)
	}

	return newResponse(200, "OK", result)
}

func (s *Server) process(ctx context.Context, req Request) (*conversionResult, error) {
	provider, conv, err := s.router.resolve(req.Path)
	if err != nil {
		return nil, err
	}

	result, err := exchange.Convert(ctx, provider, conv.base, conv.target, conv.amount)
	if err != nil {
		return nil, err
	}

	return &conversionResult{
		BaseCurrency:   conv.base,
		TargetCurrency: conv.target,
		BaseAmount:     conv.amount,
		ResultAmount:   result.StringFixed(resultScale),
	}, nil
}

// errorResponse maps a failure onto the single response the client
// sees. Provider and upstream errors keep their message, anything
// unexpected is logged in full and surfaced as a bare 500.
func errorResponse(err error) *response {
	var (
		httpErr      *HTTPError
		notSupported *exchange.NotSupportedError
		upstream     *exchange.UpstreamError
	)

	switch {
	case errors.As(err, &httpErr):
		logger.Warn("http error",
			zap.Int("code", httpErr.Code), zap.String("reason", httpErr.Reason))
		return newResponse(httpErr.Code, httpErr.Reason, nil)

	case errors.As(err, &notSupported):
		logger.Warn("converter error", zap.Error(err))
		return newResponse(500, "Internal Server Error", notSupported.Error())

	case errors.As(err, &upstream):
		logger.Warn("converter error", zap.Error(err))
		return newResponse(500, "Internal Server Error", upstream.Error())

	case errors.Is(err, exchange.ErrInvalidAmount):
		logger.Warn("converter error", zap.Error(err))
		return newResponse(500, "Internal Server Error", exchange.ErrInvalidAmount.Error())

	default:
		logger.Error("internal server error", zap.Error(err))
		return newResponse(500, "Internal Server Error", nil)
	}
}
