package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the blood bank counters. Methods are safe on a nil receiver.
type Metrics struct {
	DonationsSubmitted     prometheus.Counter
	DonationsDecided       *prometheus.CounterVec
	BloodRequestsCreated   *prometheus.CounterVec
	RequestStatusChanges   *prometheus.CounterVec
	InventoryUnits         *prometheus.GaugeVec
	NotificationsSent      *prometheus.CounterVec
	NotificationsFailed    *prometheus.CounterVec
	UsersRegistered        prometheus.Counter
	DonorSearchDuration    prometheus.Histogram
	DashboardBuildDuration *prometheus.HistogramVec
}

var latencyBuckets = []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1}

// New registers every metric with reg. A nil reg creates unregistered collectors.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		DonationsSubmitted: factory.NewCounter(prometheus.CounterOpts{
			Name: "bloodbank_donations_submitted_total",
			Help: "Total number of donation records submitted by donors",
		}),
		DonationsDecided: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "bloodbank_donations_decided_total",
			Help: "Total number of donations approved or rejected",
		}, []string{"outcome"}),
		BloodRequestsCreated: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "bloodbank_blood_requests_created_total",
			Help: "Total number of blood requests created",
		}, []string{"urgency"}),
		RequestStatusChanges: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "bloodbank_blood_request_status_changes_total",
			Help: "Total number of blood request status transitions",
		}, []string{"status"}),
		InventoryUnits: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "bloodbank_inventory_units",
			Help: "Units available per blood bank and blood group as last written",
		}, []string{"blood_bank_id", "blood_group"}),
		NotificationsSent: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "bloodbank_notifications_sent_total",
			Help: "Total number of notification mails delivered",
		}, []string{"event"}),
		NotificationsFailed: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "bloodbank_notifications_failed_total",
			Help: "Total number of notification mails that could not be delivered",
		}, []string{"event"}),
		UsersRegistered: factory.NewCounter(prometheus.CounterOpts{
			Name: "bloodbank_users_registered_total",
			Help: "Total number of accounts created",
		}),
		DonorSearchDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "bloodbank_donor_search_duration_seconds",
			Help:    "Duration of donor search queries",
			Buckets: latencyBuckets,
		}),
		DashboardBuildDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "bloodbank_dashboard_build_duration_seconds",
			Help:    "Duration of dashboard aggregation",
			Buckets: latencyBuckets,
		}, []string{"variant"}),
	}
}

func (m *Metrics) IncDonationSubmitted() {
	if m == nil {
		return
	}
	m.DonationsSubmitted.Inc()
}

func (m *Metrics) IncDonationDecided(outcome string) {
	if m == nil {
		return
	}
	m.DonationsDecided.WithLabelValues(outcome).Inc()
}

func (m *Metrics) IncBloodRequestCreated(urgency string) {
	if m == nil {
		return
	}
	m.BloodRequestsCreated.WithLabelValues(urgency).Inc()
}

func (m *Metrics) IncRequestStatusChange(status string) {
	if m == nil {
		return
	}
	m.RequestStatusChanges.WithLabelValues(status).Inc()
}

func (m *Metrics) SetInventoryUnits(bankID, group string, units float64) {
	if m == nil {
		return
	}
	m.InventoryUnits.WithLabelValues(bankID, group).Set(units)
}

func (m *Metrics) IncNotificationSent(event string) {
	if m == nil {
		return
	}
	m.NotificationsSent.WithLabelValues(event).Inc()
}

func (m *Metrics) IncNotificationFailed(event string) {
	if m == nil {
		return
	}
	m.NotificationsFailed.WithLabelValues(event).Inc()
}

func (m *Metrics) IncUserRegistered() {
	if m == nil {
		return
	}
	m.UsersRegistered.Inc()
}

// ObserveDonorSearch records the duration of a donor search started at start.
func (m *Metrics) ObserveDonorSearch(start time.Time) {
	if m == nil {
		return
	}
	m.DonorSearchDuration.Observe(time.Since(start).Seconds())
}

// ObserveDashboard records the duration of building a dashboard variant.
func (m *Metrics) ObserveDashboard(variant string, start time.Time) {
	if m == nil {
		return
	}
	m.DashboardBuildDuration.WithLabelValues(variant).Observe(time.Since(start).Seconds())
}
