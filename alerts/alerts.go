// Package alerts is the outbound notification boundary: low-stock
// warnings for back office and the audible kitchen-ready signal. The
// engine only decides *when* to fire; delivery is someone else's
// problem.
package alerts

import (
	"strings"

	"github.com/sirupsen/logrus"
	"go.uber.org/atomic"

	"github.com/ray-remotestate/pos/models"
)

type Notifier interface {
	LowStock(branchID string, itemNames []string)
	OrderReady(order models.Order)
}

// LogNotifier writes alerts to the structured log. Counters let tests
// assert on emission without scraping log output.
type LogNotifier struct {
	LowStockCount   atomic.Int64
	OrderReadyCount atomic.Int64
}

func NewLogNotifier() *LogNotifier {
	return &LogNotifier{}
}

func (n *LogNotifier) LowStock(branchID string, itemNames []string) {
	if len(itemNames) == 0 {
		return
	}
	n.LowStockCount.Inc()
	logrus.WithFields(logrus.Fields{
		"branch_id": branchID,
		"items":     strings.Join(itemNames, ", "),
	}).Warnf("low stock: %s", strings.Join(itemNames, ", "))
}

func (n *LogNotifier) OrderReady(order models.Order) {
	n.OrderReadyCount.Inc()
	logrus.WithFields(logrus.Fields{
		"order_id":  order.ID,
		"branch_id": order.BranchID,
	}).Info("order ready for pickup")
}
