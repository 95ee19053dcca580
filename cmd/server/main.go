package main

import (
	"context"
	"io"
	"net/http"
	"os"
	"os/signal"

	"github.com/opentracing/opentracing-go"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	jaegercfg "github.com/uber/jaeger-client-go/config"
	"go.uber.org/zap"

	"github.com/rg-golubkov/currency-converter/internal/clients/cbr"
	"github.com/rg-golubkov/currency-converter/internal/config"
	"github.com/rg-golubkov/currency-converter/internal/exchange"
	"github.com/rg-golubkov/currency-converter/internal/logger"
	"github.com/rg-golubkov/currency-converter/internal/server"
)

const serviceName = "currency-converter"

func main() {
	conf, err := config.New()
	if err != nil {
		logger.Fatal("failed to init config", zap.Error(err))
	}

	closer := initTracing()
	defer closer.Close()

	if addr := conf.Server().Metrics(); addr != "" {
		go serveMetrics(addr)
	}

	cbrClient, err := cbr.New(conf.Cbr())
	if err != nil {
		logger.Fatal("failed to init cbr client", zap.Error(err))
	}

	rates := exchange.NewService(cbrClient, conf.Cbr().CacheLifetime())

	router := server.NewRouter(map[string]exchange.Provider{
		"cbr": rates,
	})

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if err = server.New(conf.Server(), router).Start(ctx); err != nil {
		logger.Fatal("server failed", zap.Error(err))
	}
}

func initTracing() io.Closer {
	cfg := jaegercfg.Configuration{
		ServiceName: serviceName,
		Sampler: &jaegercfg.SamplerConfig{
			Type:  "const",
			Param: 1,
		},
	}

	tracer, closer, err := cfg.NewTracer()
	if err != nil {
		logger.Fatal("failed to init tracing", zap.Error(err))
	}
	opentracing.SetGlobalTracer(tracer)

	return closer
}

func serveMetrics(addr string) {
	http.Handle("/metrics", promhttp.Handler())
	if err := http.ListenAndServe(addr, nil); err != nil {
		logger.Error("metrics endpoint failed", zap.Error(err))
	}
}
