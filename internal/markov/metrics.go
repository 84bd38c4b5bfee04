package markov

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var transitionsRecorded = promauto.NewCounter(prometheus.CounterOpts{
	Name: "tictactoe_engine_transitions_recorded_total",
	Help: "Opponent transitions folded into the learned table",
})
