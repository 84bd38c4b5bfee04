package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var persistenceOperations = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "tictactoe_engine_persistence_operations_total",
	Help: "Transition table loads and saves, by outcome",
}, []string{"operation", "result"})
