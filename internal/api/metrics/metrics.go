// Package metrics defines and registers all custom Prometheus metrics for
// the PoyoBook platform. It is the single source of truth for metric names,
// labels, and help strings.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "poyobook"

// RegistrationsTotal counts successful account registrations.
var RegistrationsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of accounts registered.",
	},
)

// EntriesCreatedTotal counts accepted visitor submissions.
// Label:
//   - board_type: "guestbook" or "drawbox"
var EntriesCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "entries_created_total",
		Help:      "Total number of entries accepted, by board type.",
	},
	[]string{"board_type"},
)

// EntriesRejectedTotal counts rejected submissions.
// Label:
//   - reason: "board_not_found", "captcha_failed", "field_too_long",
//     "missing_field", "invalid_image", "store_error"
var EntriesRejectedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "entries_rejected_total",
		Help:      "Total number of entries rejected, by reason.",
	},
	[]string{"reason"},
)

// CaptchaIssuedTotal counts issued challenges.
var CaptchaIssuedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "captcha_issued_total",
		Help:      "Total number of captcha challenges issued.",
	},
)

// CaptchaRedeemedTotal counts redemption attempts.
// Label:
//   - result: "ok" or "failed"
var CaptchaRedeemedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "captcha_redeemed_total",
		Help:      "Total number of captcha redemption attempts, by result.",
	},
	[]string{"result"},
)

// RecoveryMailsTotal counts outbound recovery mails.
// Label:
//   - status: "sent", "error" or "dropped" (shard buffer full)
var RecoveryMailsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "recovery_mails_total",
		Help:      "Total number of password-recovery mails, by delivery status.",
	},
	[]string{"status"},
)

// MailQueueDepth tracks pending jobs per mail dispatcher worker.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var MailQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "mail_queue_depth",
		Help:      "Current number of jobs pending in each mail dispatcher worker channel.",
	},
	[]string{"worker_id"},
)
