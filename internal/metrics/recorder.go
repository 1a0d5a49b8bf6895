// Package metrics records index build statistics with Prometheus
// collectors on a private registry. Builds are short lived, so the
// registry is dumped in the node-exporter textfile format instead of
// being scraped.
package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/goliatone/go-blog/internal/posts"
	"github.com/goliatone/go-blog/pkg/interfaces"
)

const namespace = "blog"

var dateSources = []interfaces.DateSource{
	interfaces.DateSourceGit,
	interfaces.DateSourceFilesystem,
	interfaces.DateSourceNone,
}

// Recorder observes post builds.
type Recorder struct {
	registry *prometheus.Registry

	builds        prometheus.Counter
	postsIndexed  prometheus.Gauge
	filesListed   prometheus.Gauge
	filesFailed   prometheus.Gauge
	untitled      prometheus.Gauge
	postDates     *prometheus.GaugeVec
	buildDuration prometheus.Histogram
}

var _ posts.BuildObserver = (*Recorder)(nil)

// NewRecorder registers every collector on a fresh registry.
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		builds: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "builds_total",
			Help:      "Number of completed post index builds.",
		}),
		postsIndexed: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "posts_indexed",
			Help:      "Posts in the most recent index.",
		}),
		filesListed: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "source_files",
			Help:      "Markdown files listed by the most recent build.",
		}),
		filesFailed: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "source_files_failed",
			Help:      "Files left out of the most recent build.",
		}),
		untitled: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "posts_untitled",
			Help:      "Posts without a level-1 heading in the most recent build.",
		}),
		postDates: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "post_dates",
			Help:      "Posts per date source in the most recent build.",
		}, []string{"source"}),
		buildDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "build_duration_seconds",
			Help:      "Wall time of post index builds.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 12),
		}),
	}
	r.registry.MustRegister(
		r.builds,
		r.postsIndexed,
		r.filesListed,
		r.filesFailed,
		r.untitled,
		r.postDates,
		r.buildDuration,
	)
	return r
}

// Registry exposes the registry for tests and custom exporters.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// BuildsCollector returns the completed builds counter.
func (r *Recorder) BuildsCollector() prometheus.Collector {
	return r.builds
}

// ObserveBuild records report.
func (r *Recorder) ObserveBuild(report *posts.BuildReport) {
	if r == nil || report == nil {
		return
	}
	r.builds.Inc()
	r.postsIndexed.Set(float64(report.Posts))
	r.filesListed.Set(float64(report.Files))
	r.filesFailed.Set(float64(len(report.Failures())))
	r.untitled.Set(float64(len(report.Untitled())))

	counts := report.DateSources()
	for _, source := range dateSources {
		r.postDates.WithLabelValues(string(source)).Set(float64(counts[source]))
	}
	r.buildDuration.Observe(report.Duration().Seconds())
}

// WriteTextfile writes every metric to path in the textfile collector
// format. The file is replaced atomically.
func (r *Recorder) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("metrics: write textfile: %w", err)
	}
	return nil
}
