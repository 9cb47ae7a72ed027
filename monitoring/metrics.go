package monitoring

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	checkoutRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "checkout_requests_total",
			Help: "Checkout attempts by outcome",
		},
		[]string{"outcome"},
	)

	settlements = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "payment_settlements_total",
			Help: "Payment finalizations by terminal status",
		},
		[]string{"status"},
	)

	oversellEscalations = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "oversell_escalations_total",
			Help: "Settlements that failed locally after the gateway collected money",
		},
	)

	ticketsMinted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "tickets_minted_total",
			Help: "Tickets created by successful settlements",
		},
	)
)

func RecordCheckout(outcome string) {
	checkoutRequests.WithLabelValues(outcome).Inc()
}

func RecordSettlement(status string) {
	settlements.WithLabelValues(status).Inc()
}

func RecordOversellEscalation() {
	oversellEscalations.Inc()
}

func RecordTicketsMinted(n int) {
	ticketsMinted.Add(float64(n))
}
