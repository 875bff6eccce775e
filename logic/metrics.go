package logic

import (
	"github.com/prometheus/client_golang/prometheus"
	"ripple/shared"
	"time"
)

type IMetrics interface {
	StartApiRequest(label string) IRequestObserver
	TimelineBuilt(label string, items int)
	DropCreated()
	SlotConflict(period shared.Period)
	HeartToggled(hearted bool)
	RippleCreated()
	ServiceStarted()
}

type IRequestObserver interface {
	Finish()
}

type metrics struct {
	cfg            *shared.Config
	apiRequests    *prometheus.HistogramVec
	timelinesBuilt *prometheus.CounterVec
	timelineItems  prometheus.Histogram
	dropsCreated   prometheus.Counter
	slotConflicts  *prometheus.CounterVec
	heartsToggled  *prometheus.CounterVec
	ripplesCreated prometheus.Counter
	serviceStarted prometheus.Counter
}

// NewMetrics registers with the default registry. Repeat registrations are ignored.
func NewMetrics(cfg *shared.Config) IMetrics {

	res := metrics{}
	res.cfg = cfg

	res.apiRequests = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name: "api_requests_duration",
		Help: "Duration in seconds of API requests served.",
	}, []string{"label"})
	prometheus.Register(res.apiRequests)

	res.timelinesBuilt = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "timelines_built",
		Help: "Number of timelines composed",
	}, []string{"label"})
	prometheus.Register(res.timelinesBuilt)

	res.timelineItems = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "timeline_items",
		Help:    "Number of drops in a composed timeline",
		Buckets: prometheus.ExponentialBuckets(1, 2, 10),
	})
	prometheus.Register(res.timelineItems)

	res.dropsCreated = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "drops_created",
		Help: "Number of drops created",
	})
	prometheus.Register(res.dropsCreated)

	res.slotConflicts = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "slot_conflicts",
		Help: "Number of drops rejected because the slot was taken",
	}, []string{"period"})
	prometheus.Register(res.slotConflicts)

	res.heartsToggled = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "hearts_toggled",
		Help: "Number of heart toggles by resulting state",
	}, []string{"state"})
	prometheus.Register(res.heartsToggled)

	res.ripplesCreated = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "ripples_created",
		Help: "Number of ripples created",
	})
	prometheus.Register(res.ripplesCreated)

	res.serviceStarted = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "service_started",
		Help: "Service has started up",
	})
	prometheus.Register(res.serviceStarted)

	return &res
}

type requestObserver struct {
	label string
	start time.Time
	hgvec *prometheus.HistogramVec
}

func (ro *requestObserver) Finish() {
	elapsed := time.Since(ro.start).Seconds()
	ro.hgvec.WithLabelValues(ro.label).Observe(elapsed)
}

func (m *metrics) StartApiRequest(label string) IRequestObserver {
	return &requestObserver{label, time.Now(), m.apiRequests}
}

func (m *metrics) TimelineBuilt(label string, items int) {
	m.timelinesBuilt.WithLabelValues(label).Add(1)
	m.timelineItems.Observe(float64(items))
}

func (m *metrics) DropCreated() {
	m.dropsCreated.Add(1)
}

func (m *metrics) SlotConflict(period shared.Period) {
	m.slotConflicts.WithLabelValues(string(period)).Add(1)
}

func (m *metrics) HeartToggled(hearted bool) {
	state := "removed"
	if hearted {
		state = "added"
	}
	m.heartsToggled.WithLabelValues(state).Add(1)
}

func (m *metrics) RippleCreated() {
	m.ripplesCreated.Add(1)
}

func (m *metrics) ServiceStarted() {
	m.serviceStarted.Add(1)
}
