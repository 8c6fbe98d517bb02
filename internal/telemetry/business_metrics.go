package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// BusinessMetrics holds Prometheus metrics for storefront activity.
// Every recording method is safe to call on a nil receiver.
type BusinessMetrics struct {
	// Cart
	CartItemsAdded *prometheus.CounterVec
	CartCleared    prometheus.Counter

	// Checkout and orders
	OrdersCreated    *prometheus.CounterVec
	OrderValue       prometheus.Histogram
	OrderItemCount   prometheus.Histogram
	CheckoutFailed   *prometheus.CounterVec
	OrderTransitions *prometheus.CounterVec

	// Catalog
	ProductSearches *prometheus.CounterVec
	ReviewsCreated  prometheus.Counter

	// Auth & accounts
	Signups     prometheus.Counter
	Logins      *prometheus.CounterVec
	LoginFailed prometheus.Counter
	CartsMerged prometheus.Counter

	// Side effects
	EmailSent       *prometheus.CounterVec
	EmailFailed     *prometheus.CounterVec
	EventsPublished *prometheus.CounterVec
	EventsFailed    *prometheus.CounterVec
}

// NewBusinessMetrics creates business metrics and registers them with reg.
// A nil reg uses the default Prometheus registry.
func NewBusinessMetrics(namespace string, reg prometheus.Registerer) *BusinessMetrics {
	if namespace == "" {
		namespace = "vitrina"
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	factory := promauto.With(reg)
	subsystem := "business"

	return &BusinessMetrics{
		CartItemsAdded: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "cart_items_added_total",
				Help:      "Total units added to carts",
			},
			[]string{"owner"}, // owner: user, guest
		),
		CartCleared: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "cart_cleared_total",
				Help:      "Total explicit cart clears",
			},
		),

		OrdersCreated: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "orders_created_total",
				Help:      "Total orders created at checkout",
			},
			[]string{"owner"},
		),
		OrderValue: factory.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "order_value",
				Help:      "Order total cost in store currency",
				Buckets:   []float64{100, 500, 1000, 2500, 5000, 10000, 25000, 50000, 100000},
			},
		),
		OrderItemCount: factory.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "order_item_count",
				Help:      "Number of distinct products per order",
				Buckets:   []float64{1, 2, 3, 5, 10, 20, 50},
			},
		),
		CheckoutFailed: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "checkout_failed_total",
				Help:      "Total failed checkout attempts",
			},
			[]string{"reason"}, // reason: empty_cart, invalid, internal
		),
		OrderTransitions: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "order_transitions_total",
				Help:      "Total order status changes",
			},
			[]string{"from", "to"},
		),

		ProductSearches: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "product_searches_total",
				Help:      "Total catalog listing requests",
			},
			[]string{"filtered"}, // filtered: true, false
		),
		ReviewsCreated: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "reviews_created_total",
				Help:      "Total product reviews posted",
			},
		),

		Signups: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "signups_total",
				Help:      "Total user registrations",
			},
		),
		Logins: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "logins_total",
				Help:      "Total successful sign-ins",
			},
			[]string{"method"}, // method: password, signup
		),
		LoginFailed: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "login_failed_total",
				Help:      "Total failed sign-in attempts",
			},
		),
		CartsMerged: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "carts_merged_total",
				Help:      "Total guest carts merged into a user cart",
			},
		),

		EmailSent: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "email_sent_total",
				Help:      "Total emails sent",
			},
			[]string{"template"},
		),
		EmailFailed: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "email_failed_total",
				Help:      "Total emails that failed to send",
			},
			[]string{"template"},
		),
		EventsPublished: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "events_published_total",
				Help:      "Total domain events published",
			},
			[]string{"subject"},
		),
		EventsFailed: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "events_failed_total",
				Help:      "Total domain events that failed to publish",
			},
			[]string{"subject"},
		),
	}
}

func (m *BusinessMetrics) CartAdd(owner string, quantity int) {
	if m == nil {
		return
	}
	m.CartItemsAdded.WithLabelValues(owner).Add(float64(quantity))
}

func (m *BusinessMetrics) CartClear() {
	if m == nil {
		return
	}
	m.CartCleared.Inc()
}

// OrderCreated records a completed checkout.
func (m *BusinessMetrics) OrderCreated(owner string, total float64, items int) {
	if m == nil {
		return
	}
	m.OrdersCreated.WithLabelValues(owner).Inc()
	m.OrderValue.Observe(total)
	m.OrderItemCount.Observe(float64(items))
}

func (m *BusinessMetrics) CheckoutFailure(reason string) {
	if m == nil {
		return
	}
	m.CheckoutFailed.WithLabelValues(reason).Inc()
}

func (m *BusinessMetrics) OrderTransition(from, to string) {
	if m == nil {
		return
	}
	m.OrderTransitions.WithLabelValues(from, to).Inc()
}

func (m *BusinessMetrics) ProductSearch(filtered bool) {
	if m == nil {
		return
	}
	label := "false"
	if filtered {
		label = "true"
	}
	m.ProductSearches.WithLabelValues(label).Inc()
}

func (m *BusinessMetrics) ReviewCreated() {
	if m == nil {
		return
	}
	m.ReviewsCreated.Inc()
}

func (m *BusinessMetrics) Signup() {
	if m == nil {
		return
	}
	m.Signups.Inc()
	m.Logins.WithLabelValues("signup").Inc()
}

func (m *BusinessMetrics) Login() {
	if m == nil {
		return
	}
	m.Logins.WithLabelValues("password").Inc()
}

func (m *BusinessMetrics) LoginFailure() {
	if m == nil {
		return
	}
	m.LoginFailed.Inc()
}

func (m *BusinessMetrics) CartMerged() {
	if m == nil {
		return
	}
	m.CartsMerged.Inc()
}

// Email records the outcome of a send for template.
func (m *BusinessMetrics) Email(template string, err error) {
	if m == nil {
		return
	}
	if err != nil {
		m.EmailFailed.WithLabelValues(template).Inc()
		return
	}
	m.EmailSent.WithLabelValues(template).Inc()
}

// Event records the outcome of a publish on subject.
func (m *BusinessMetrics) Event(subject string, err error) {
	if m == nil {
		return
	}
	if err != nil {
		m.EventsFailed.WithLabelValues(subject).Inc()
		return
	}
	m.EventsPublished.WithLabelValues(subject).Inc()
}
