// Command rateenginebot is the process entry point: it loads
// configuration, owns the refresh loop, and serves query results over a
// small HTTP transport.
package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/amrates/rateengine/collector"
	"github.com/amrates/rateengine/config"
	"github.com/amrates/rateengine/query"
	"github.com/amrates/rateengine/ratemodel"
	"github.com/amrates/rateengine/source"
	"github.com/amrates/rateengine/store"
)

func main() {
	configPath := flag.String("config", "rateenginebot.toml", "path to the TOML config document")
	flag.Parse()

	cfg, err := config.Load(config.ConfigPath(*configPath))
	if err != nil {
		logrus.WithError(err).Fatal("rateenginebot: loading config")
	}
	if err := cfg.Validate(); err != nil {
		logrus.WithError(err).Fatal("rateenginebot: invalid config")
	}

	registry, err := config.BuildRegistry(cfg, source.Registry)
	if err != nil {
		logrus.WithError(err).Fatal("rateenginebot: building source registry")
	}

	client := &http.Client{Timeout: cfg.Bot.ReqwestTimeout()}
	st := store.New()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go runRefreshLoop(ctx, st, client, registry, cfg.Bot.UpdateInterval())

	srv := newServer(st, cfg)
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logrus.WithError(err).Warn("rateenginebot: HTTP server shutdown")
		}
	}()

	logrus.WithField("addr", srv.Addr).Info("rateenginebot: serving")
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logrus.WithError(err).Fatal("rateenginebot: HTTP server")
	}
}

// runRefreshLoop fans the collector out across every enabled source
// each tick, drains its results into a fresh map, then clears the cache
// and swaps the map in. It returns as soon as ctx is cancelled.
func runRefreshLoop(ctx context.Context, st *store.Store, client *http.Client, registry map[ratemodel.Source]source.Config, interval time.Duration) {
	for {
		refreshOnce(ctx, st, client, registry)

		select {
		case <-time.After(interval):
		case <-ctx.Done():
			return
		}
	}
}

func refreshOnce(ctx context.Context, st *store.Store, client *http.Client, registry map[ratemodel.Source]source.Config) {
	enabled := source.EnabledSources(registry)
	out := make(chan collector.Result, len(enabled))

	collector.Run(ctx, client, registry, out)

	newMap := make(ratemodel.SourceRates, len(enabled))
	for result := range out {
		newMap[result.Source] = result.Rates
	}

	st.ClearCache()
	st.ReplaceRates(newMap)
	logrus.WithField("sources", len(newMap)).Info("rateenginebot: refresh cycle complete")
}

// newServer exposes the query facade over plain HTTP GET, the simplest
// concrete transport over the surface transport.Engine sketches. A chat
// bot would implement the same four calls against its own command
// parser instead.
func newServer(st *store.Store, cfg *config.Config) *http.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("/src", func(w http.ResponseWriter, r *http.Request) {
		src, ok := ratemodel.ParseSource(r.URL.Query().Get("source"))
		if !ok {
			http.Error(w, "unknown source", http.StatusBadRequest)
			return
		}
		rt, err := ratemodel.ParseRateType(r.URL.Query().Get("rateType"))
		if err != nil {
			rt = ratemodel.NoCash
		}
		writeText(w, query.SrcQuery(st, src, rt))
	})
	mux.HandleFunc("/conv", func(w http.ResponseWriter, r *http.Request) {
		from, to, _ := query.ParsePair(r.URL.Query().Get("pair"))
		rt, err := ratemodel.ParseRateType(r.URL.Query().Get("rateType"))
		if err != nil {
			rt = ratemodel.NoCash
		}
		inverted := r.URL.Query().Get("inverted") == "true"
		writeText(w, query.ConvQuery(st, from, to, rt, inverted))
	})
	mux.HandleFunc("/list", func(w http.ResponseWriter, r *http.Request) {
		writeText(w, query.ListSources())
	})
	mux.HandleFunc("/info", func(w http.ResponseWriter, r *http.Request) {
		writeText(w, query.Info(st, cfg.Bot.UpdateInterval()))
	})

	addr := cfg.Bot.Webhook.Host
	if addr == "" {
		addr = "0.0.0.0"
	}
	port := cfg.Bot.Webhook.Port
	if port == 0 {
		port = 8080
	}

	return &http.Server{
		Addr:         addrWithPort(addr, port),
		Handler:      mux,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}
}

func addrWithPort(host string, port int) string {
	return host + ":" + strconv.Itoa(port)
}

func writeText(w http.ResponseWriter, body string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte(body))
}
