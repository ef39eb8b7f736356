package metrics

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/uber-go/tally/v4"
	promreporter "github.com/uber-go/tally/v4/prometheus"
	"zombiezen.com/go/log"
)

type MetricsRegistry struct {
	scope    tally.Scope
	closer   io.Closer
	reporter promreporter.Reporter
	ctx      context.Context
	httpPort int
}

func NewMetricRegistry(httpPort int) *MetricsRegistry {
	// Each registry gets its own prometheus registry so two instances in
	// one process don't collide on duplicate collector registration.
	promRegistry := prometheus.NewRegistry()
	r := promreporter.NewReporter(promreporter.Options{
		Registerer: promRegistry,
		Gatherer:   promRegistry,
	})

	scope, closer := tally.NewRootScope(tally.ScopeOptions{
		Prefix:         "policyminderd",
		Tags:           map[string]string{},
		CachedReporter: r,
		Separator:      promreporter.DefaultSeparator,
	}, 1*time.Second)

	return &MetricsRegistry{
		scope:    scope,
		closer:   closer,
		reporter: r,
		ctx:      context.Background(),
		httpPort: httpPort,
	}
}

func (r *MetricsRegistry) CountEntitySave(kind string) {
	r.scope.Tagged(map[string]string{"kind": kind}).Counter("entity_save_count").Inc(1)
}

func (r *MetricsRegistry) CountEntityDelete(kind string) {
	r.scope.Tagged(map[string]string{"kind": kind}).Counter("entity_delete_count").Inc(1)
}

func (r *MetricsRegistry) CountCascadeDelete(kind string) {
	r.scope.Tagged(map[string]string{"kind": kind}).Counter("cascade_delete_count").Inc(1)
}

func (r *MetricsRegistry) CountReminderSync() {
	r.scope.Tagged(map[string]string{}).Counter("reminder_sync_count").Inc(1)
}

func (r *MetricsRegistry) CountReminderDelivery(status string) {
	r.scope.Tagged(map[string]string{"status": status}).Counter("reminder_delivery_count").Inc(1)
	r.scope.Tagged(map[string]string{}).Counter("reminder_delivery_total").Inc(1)
}

func (r *MetricsRegistry) TimeReminderSweep(f func() error) error {
	r.scope.Tagged(map[string]string{}).Counter("reminder_sweep_count").Inc(1)
	tsw := r.scope.Tagged(map[string]string{}).Timer("reminder_sweep_timer").Start()
	err := f()
	tsw.Stop()
	return err
}

func (r *MetricsRegistry) TimeHTTPEndpoint(id string, f func() error) error {
	r.scope.Tagged(map[string]string{"id": id}).Counter("http_endpoint_count").Inc(1)
	tsw := r.scope.Tagged(map[string]string{"id": id}).Timer("http_endpoint_timer").Start()
	err := f()
	tsw.Stop()
	return err
}

func (r *MetricsRegistry) Serve() error {
	port := r.httpPort
	http.Handle("/metrics", r.reporter.HTTPHandler())
	log.Infof(r.ctx, "Serving 0.0.0.0:%d/metrics", port)
	if err := http.ListenAndServe(fmt.Sprintf(":%d", port), nil); err != nil {
		return fmt.Errorf("unable to serve metrics: %v", err)
	}
	return nil
}
