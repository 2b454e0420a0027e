package echoapi

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/pkg/errors"
)

// Validation outcomes
const (
	outcomeValid     = "valid"
	outcomeInvalid   = "invalid"
	outcomeMalformed = "malformed"
)

// Metrics holds the API collectors.
type Metrics struct {
	validations *prometheus.CounterVec
}

// NewMetrics registers the API collectors with registerer.
func NewMetrics(registerer prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		validations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "masomo",
			Name:      "request_validations_total",
			Help:      "Number of validated request bodies, by schema and outcome.",
		}, []string{"schema", "outcome"}),
	}
	if err := registerer.Register(m.validations); err != nil {
		return nil, errors.Wrap(err, "registering validation counter")
	}
	return m, nil
}

func (m *Metrics) observe(schema, outcome string) {
	if m == nil {
		return
	}
	m.validations.WithLabelValues(schema, outcome).Inc()
}
