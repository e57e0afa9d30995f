package utils

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/yieldswap/releasegate"
	"github.com/yieldswap/releasegate/errors"
)

// Metrics is a decorator that counts every call per message path and
// outcome and observes the processing time.
type Metrics struct {
	calls    *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

var _ releasegate.Decorator = Metrics{}

// NewMetrics creates a Metrics decorator and registers its collectors
// with given registerer. Use prometheus.DefaultRegisterer to expose them
// through the default handler.
func NewMetrics(reg prometheus.Registerer) (Metrics, error) {
	m := Metrics{
		calls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "releasegate",
			Name:      "tx_total",
			Help:      "Number of processed transactions.",
		}, []string{"phase", "path", "code"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "releasegate",
			Name:      "tx_duration_seconds",
			Help:      "Time spent processing a transaction.",
			Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5},
		}, []string{"phase", "path"}),
	}
	for _, c := range []prometheus.Collector{m.calls, m.duration} {
		if err := reg.Register(c); err != nil {
			return Metrics{}, errors.Wrap(errors.ErrHuman, err.Error())
		}
	}
	return m, nil
}

// Check counts the call once it is done.
func (m Metrics) Check(ctx releasegate.Context, store releasegate.KVStore, tx releasegate.Tx, next releasegate.Checker) (*releasegate.CheckResult, error) {
	start := time.Now()
	res, err := next.Check(ctx, store, tx)
	m.observe("check", tx, start, err)
	return res, err
}

// Deliver counts the call once it is done.
func (m Metrics) Deliver(ctx releasegate.Context, store releasegate.KVStore, tx releasegate.Tx, next releasegate.Deliverer) (*releasegate.DeliverResult, error) {
	start := time.Now()
	res, err := next.Deliver(ctx, store, tx)
	m.observe("deliver", tx, start, err)
	return res, err
}

func (m Metrics) observe(phase string, tx releasegate.Tx, start time.Time, err error) {
	path := releasegate.GetPath(tx)
	code, _ := errors.ABCIInfo(err, false)
	m.calls.WithLabelValues(phase, path, codeLabel(code)).Inc()
	m.duration.WithLabelValues(phase, path).Observe(time.Since(start).Seconds())
}

func codeLabel(code uint32) string {
	if code == 0 {
		return "ok"
	}
	return strconv.FormatUint(uint64(code), 10)
}
