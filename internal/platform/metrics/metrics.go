package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	InquiriesCreated   prometheus.Counter
	InquiriesConverted prometheus.Counter
	OffersCreated      prometheus.Counter
	OffersSent         prometheus.Counter
	OffersAccepted     prometheus.Counter
	OffersConfirmed    prometheus.Counter
	ComplianceFailures *prometheus.CounterVec
}

// New creates and registers all Prometheus metrics on the default registry.
func New() *Metrics {
	return &Metrics{
		InquiriesCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "investdesk_inquiries_created_total",
			Help: "Total number of investment inquiries created",
		}),
		InquiriesConverted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "investdesk_inquiries_converted_total",
			Help: "Total number of inquiries converted into offers",
		}),
		OffersCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "investdesk_offers_created_total",
			Help: "Total number of offers created",
		}),
		OffersSent: promauto.NewCounter(prometheus.CounterOpts{
			Name: "investdesk_offers_sent_total",
			Help: "Total number of offers sent to clients",
		}),
		OffersAccepted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "investdesk_offers_accepted_total",
			Help: "Total number of offers accepted by clients",
		}),
		OffersConfirmed: promauto.NewCounter(prometheus.CounterOpts{
			Name: "investdesk_offers_confirmed_total",
			Help: "Total number of offers confirmed as orders",
		}),
		ComplianceFailures: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "investdesk_compliance_failures_total",
			Help: "Total number of operations blocked by compliance gates",
		}, []string{"operation"}),
	}
}
