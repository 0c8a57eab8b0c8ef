package service

import "github.com/prometheus/client_golang/prometheus"

var mutationTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{Name: "role_membership_mutations_total", Help: "Role membership changes by outcome"},
	[]string{"action", "outcome"},
)

func init() { prometheus.MustRegister(mutationTotal) }
