package observability

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Observer captures telemetry for dataset operations.
type Observer interface {
	// RecordRegistration tracks one registration attempt. result is "ok" or an error kind.
	RecordRegistration(duration time.Duration, result string, images int)
	RecordTrain()
}

// PrometheusObserver exports registration metrics to Prometheus.
type PrometheusObserver struct {
	registrationDuration *prometheus.HistogramVec
	registrations        *prometheus.CounterVec
	imagesStored         prometheus.Counter
	trainRequests        prometheus.Counter
}

// NewPrometheusObserver registers the dataset metrics on reg.
func NewPrometheusObserver(namespace string, reg prometheus.Registerer) (*PrometheusObserver, error) {
	if namespace == "" {
		namespace = "metadesigner"
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	observer := &PrometheusObserver{
		registrationDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "registration_duration_seconds",
			Help:      "Latency of dataset registrations.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"result"}),
		registrations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "registrations_total",
			Help:      "Dataset registrations by result.",
		}, []string{"result"}),
		imagesStored: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "images_stored_total",
			Help:      "Images copied into dataset folders.",
		}),
		trainRequests: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "train_requests_total",
			Help:      "Training requests received.",
		}),
	}

	var err error
	if observer.registrationDuration, err = register(reg, observer.registrationDuration); err != nil {
		return nil, err
	}
	if observer.registrations, err = register(reg, observer.registrations); err != nil {
		return nil, err
	}
	if observer.imagesStored, err = register(reg, observer.imagesStored); err != nil {
		return nil, err
	}
	if observer.trainRequests, err = register(reg, observer.trainRequests); err != nil {
		return nil, err
	}
	return observer, nil
}

// register adds c to reg, reusing the collector already registered under the same name.
func register[T prometheus.Collector](reg prometheus.Registerer, c T) (T, error) {
	if err := reg.Register(c); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(T); ok {
				return existing, nil
			}
		}
		return c, fmt.Errorf("register dataset metric: %w", err)
	}
	return c, nil
}

// RecordRegistration tracks duration and outcome; images only count on success.
func (o *PrometheusObserver) RecordRegistration(duration time.Duration, result string, images int) {
	if o == nil {
		return
	}
	o.registrationDuration.WithLabelValues(result).Observe(duration.Seconds())
	o.registrations.WithLabelValues(result).Inc()
	if result == ResultOK {
		o.imagesStored.Add(float64(images))
	}
}

func (o *PrometheusObserver) RecordTrain() {
	if o == nil {
		return
	}
	o.trainRequests.Inc()
}

// ResultOK labels a successful registration
const ResultOK = "ok"

type nopObserver struct{}

func (nopObserver) RecordRegistration(time.Duration, string, int) {}

func (nopObserver) RecordTrain() {}

// NopObserver discards all telemetry
func NopObserver() Observer {
	return nopObserver{}
}
