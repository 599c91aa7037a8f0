package service

import (
	"errors"

	"github.com/AkshatMishra0/Derivity-ai/pkg/httpx"
	"github.com/prometheus/client_golang/prometheus"
)

const (
	outcomeSuccess = "success"
	outcomeError   = "error"
)

// Metrics counts workflow outcomes. A nil *Metrics records nothing.
type Metrics struct {
	AuthAttempts *prometheus.CounterVec
	Signups      *prometheus.CounterVec
}

// NewMetrics registers the workflow counters on reg (the default registerer when nil).
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	attempts, err := httpx.Register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "site",
		Name:      "auth_attempts_total",
		Help:      "Authentication attempts by outcome.",
	}, []string{"outcome"}))
	if err != nil {
		return nil, err
	}

	signups, err := httpx.Register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "site",
		Name:      "signups_total",
		Help:      "Registration attempts by outcome.",
	}, []string{"outcome"}))
	if err != nil {
		return nil, err
	}

	return &Metrics{AuthAttempts: attempts, Signups: signups}, nil
}

func (m *Metrics) observeAuth(err error) {
	if m == nil {
		return
	}
	m.AuthAttempts.WithLabelValues(outcome(err)).Inc()
}

func (m *Metrics) observeSignup(err error) {
	if m == nil {
		return
	}
	m.Signups.WithLabelValues(outcome(err)).Inc()
}

func outcome(err error) string {
	if err == nil {
		return outcomeSuccess
	}
	var rejected *RejectedError
	var conflict *ConflictError
	var invalid *ValidationError
	switch {
	case errors.As(err, &rejected):
		return string(rejected.Reason)
	case errors.As(err, &conflict):
		return "conflict"
	case errors.As(err, &invalid):
		return "invalid"
	}
	return outcomeError
}
