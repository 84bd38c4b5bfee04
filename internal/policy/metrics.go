package policy

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var decisionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "tictactoe_engine_decisions_total",
	Help: "Moves chosen by the decision policy, by answering strategy",
}, []string{"strategy"})
