// Command reslib-demo exercises an integer-keyed table, a string-keyed
// table, and a chronological table, then serves their occupancy metrics
// over HTTP until interrupted. It is a demonstration harness, not a
// general-purpose command-line tool: it takes no flags or subcommands, by
// design (see SPEC_FULL.md's non-goals).
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/epics-go/reslib/reslib"
	"github.com/epics-go/reslib/reslib/resmetrics"
)

// widget is a sample record keyed by an integer identifier.
type widget struct {
	reslib.Link[widget]
	id    reslib.IntID
	label string
}

func (w *widget) Ident() reslib.ID { return w.id }

// tag is a sample record keyed by an owned string identifier.
type tag struct {
	reslib.Link[tag]
	id reslib.StringID
}

func (t *tag) Ident() reslib.ID { return t.id }

// event is a sample record for a ChronoTable: its identity is assigned by
// the table, not supplied by the caller.
type event struct {
	reslib.Link[event]
	id      reslib.IntID
	message string
}

func (e *event) Ident() reslib.ID            { return e.id }
func (e *event) SetChronoID(id reslib.IntID) { e.id = id }

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintln(os.Stderr, "logger init:", err)
		os.Exit(1)
	}
	defer logger.Sync() //nolint:errcheck

	widgets, err := reslib.New[widget, *widget](4, 64)
	if err != nil {
		logger.Fatal("widget table init", zap.Error(err))
	}
	for i := 0; i < 64; i++ {
		w := &widget{id: reslib.NewIntID(uint64(i)), label: fmt.Sprintf("widget-%d", i)}
		if st := widgets.Add(w); st != reslib.Inserted {
			logger.Warn("unexpected duplicate widget", zap.Int("i", i))
		}
	}
	logger.Info("widgets loaded",
		zap.Uint64("entries", widgets.NumEntriesInstalled()),
		zap.Any("stats", widgets.Stats()))

	tags, err := reslib.New[tag, *tag](4, 32)
	if err != nil {
		logger.Fatal("tag table init", zap.Error(err))
	}
	for i := 0; i < 32; i++ {
		s := uuid.NewString()
		id, err := reslib.NewOwnedStringID(s)
		if err != nil {
			logger.Fatal("owned string id", zap.Error(err))
		}
		if st := tags.Add(&tag{id: id}); st != reslib.Inserted {
			logger.Warn("unexpected duplicate tag", zap.Int("i", i))
		}
	}
	logger.Info("tags loaded",
		zap.Uint64("entries", tags.NumEntriesInstalled()),
		zap.Any("stats", tags.Stats()))

	events, err := reslib.NewChronoTable[event, *event]()
	if err != nil {
		logger.Fatal("event table init", zap.Error(err))
	}
	for i := 0; i < 16; i++ {
		events.Add(&event{message: fmt.Sprintf("startup step %d", i)})
	}
	logger.Info("events loaded", zap.Uint64("entries", events.NumEntriesInstalled()))

	if err := widgets.Verify(); err != nil {
		logger.Error("widget table failed verification", zap.Error(err))
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		resmetrics.NewCollector("widgets", widgets),
		resmetrics.NewCollector("tags", tags),
		resmetrics.NewCollector("events", events.Table()),
	)

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	srv := &http.Server{Addr: ":9116", Handler: mux}

	go func() {
		logger.Info("serving metrics", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("metrics server", zap.Error(err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("metrics server shutdown", zap.Error(err))
	}
}
