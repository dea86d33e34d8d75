package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Package-level collectors for the wallet's domain events. HTTP-level
// metrics live in the router middleware; these count business outcomes.
var (
	// Settlements counts provider transaction settlements by result:
	// settled, replayed, rejected, insufficient_funds.
	Settlements = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wallet_settlements_total",
			Help: "Total provider transaction settlements by result",
		},
		[]string{"result"},
	)

	// Payments counts PIX payments by direction and status transition.
	Payments = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wallet_payments_total",
			Help: "Total PIX payments by direction and status",
		},
		[]string{"direction", "status"},
	)

	// Webhooks counts received gateway callbacks by kind.
	Webhooks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wallet_webhooks_total",
			Help: "Total received gateway webhooks by kind",
		},
		[]string{"kind"},
	)

	// ChestClaims counts claimed chests by type.
	ChestClaims = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wallet_chest_claims_total",
			Help: "Total claimed chests by type",
		},
		[]string{"type"},
	)
)
