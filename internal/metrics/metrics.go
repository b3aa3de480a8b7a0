package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "markova_http_requests_total", Help: "HTTP requests"},
		[]string{"method", "route", "status"},
	)
	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "markova_http_request_duration_seconds",
			Help:    "HTTP request duration",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)
	RemoteCallsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "markova_remote_calls_total", Help: "Calls to the generation endpoint"},
		[]string{"operation", "outcome"},
	)
	RemoteCallDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "markova_remote_call_duration_seconds",
			Help:    "Generation endpoint latency",
			Buckets: []float64{0.25, 0.5, 1, 2.5, 5, 10, 20, 40, 80},
		},
		[]string{"operation"},
	)
	VideoJobsActive = prometheus.NewGauge(
		prometheus.GaugeOpts{Name: "markova_video_jobs_active", Help: "Video jobs currently polling"},
	)
	VideoJobsFinished = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "markova_video_jobs_finished_total", Help: "Video jobs by terminal status"},
		[]string{"status"},
	)
	VideoPollTicks = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "markova_video_poll_ticks_total", Help: "Status checks issued by the poller"},
	)
	CampaignImagesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "markova_campaign_images_total", Help: "Per-post image generations in campaign flows"},
		[]string{"outcome"},
	)
)

func init() {
	prometheus.MustRegister(
		HTTPRequestsTotal, HTTPRequestDuration, RemoteCallsTotal, RemoteCallDuration,
		VideoJobsActive, VideoJobsFinished, VideoPollTicks, CampaignImagesTotal,
	)
}

// Outcome labels a finished call by whether err is nil.
func Outcome(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

func Handler() http.Handler { return promhttp.Handler() }
