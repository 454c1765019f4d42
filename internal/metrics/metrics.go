// Package metrics registers the service's Prometheus collectors. They are
// exposed by the /metrics endpoint of the HTTP router.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	TokensIssued = promauto.NewCounter(prometheus.CounterOpts{
		Name: "workshop_tokens_issued_total",
		Help: "Session tokens issued by successful logins.",
	})

	TokensRevoked = promauto.NewCounter(prometheus.CounterOpts{
		Name: "workshop_tokens_revoked_total",
		Help: "Session tokens revoked by logout or account deletion.",
	})

	TokensSwept = promauto.NewCounter(prometheus.CounterOpts{
		Name: "workshop_tokens_swept_total",
		Help: "Expired session tokens removed by the background sweep.",
	})

	LoginFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "workshop_login_failures_total",
		Help: "Login attempts rejected for bad credentials.",
	})
)
