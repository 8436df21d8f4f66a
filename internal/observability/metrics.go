package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	MaintenanceCreated = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "rentdesk_maintenance_created_total",
		Help: "Maintenance requests created.",
	})

	MaintenanceRescheduled = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "rentdesk_maintenance_reschedules_total",
		Help: "Successful maintenance reschedules.",
	})

	MaintenancePaid = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "rentdesk_maintenance_payments_total",
		Help: "Maintenance requests settled through the wallet transfer path.",
	})

	PaymentLinks = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "rentdesk_payment_links_total",
		Help: "Hosted payment links generated, by gateway.",
	}, []string{"gateway"})

	PaymentsConfirmed = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "rentdesk_payments_confirmed_total",
		Help: "Gateway references confirmed as paid, by source.",
	}, []string{"source"})

	BudgetAlerts = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "rentdesk_budget_alerts_total",
		Help: "Budget alerts raised, by level.",
	}, []string{"level"})

	BudgetResets = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "rentdesk_budget_resets_total",
		Help: "Budgets reset by the scheduler, by frequency.",
	}, []string{"frequency"})
)

func init() {
	prometheus.MustRegister(
		MaintenanceCreated,
		MaintenanceRescheduled,
		MaintenancePaid,
		PaymentLinks,
		PaymentsConfirmed,
		BudgetAlerts,
		BudgetResets,
	)
}
