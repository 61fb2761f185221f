package dedup

import (
	"context"
	"strings"

	"github.com/sirupsen/logrus"

	"prep-checkin-go/internal/models"
	"prep-checkin-go/internal/sheet"
)

// Column positions of the identity-key fields in a sheet row.
const (
	colOrderNumber = 1
	colItemName    = 2
	colASIN        = 3
)

// Gate decides whether a candidate record already exists in the row store.
// The identity key is order number + item name + ASIN, compared with exact
// case-sensitive string equality.
type Gate struct {
	store sheet.RowStore
}

// NewGate creates a dedup gate over the given row store.
func NewGate(store sheet.RowStore) *Gate {
	return &Gate{store: store}
}

// Seen returns the identity keys of every existing row, from a single read
// of the store. A read failure fails open: the empty set is returned so a
// transient error never silently drops data.
func (g *Gate) Seen(ctx context.Context) map[string]struct{} {
	rows, err := g.store.ReadRows(ctx)
	if err != nil {
		logrus.Errorf("Dedup read failed, treating all records as new: %v", err)
		return map[string]struct{}{}
	}

	seen := make(map[string]struct{}, len(rows))
	for _, row := range rows {
		if key := rowKey(row); key != "" {
			seen[key] = struct{}{}
		}
	}
	return seen
}

// Key returns the identity key of a candidate record.
func Key(record models.CheckinRecord) string {
	return join(record.OrderNumber, record.ItemName, record.ASIN)
}

func rowKey(row []string) string {
	if len(row) <= colASIN {
		return ""
	}
	return join(row[colOrderNumber], row[colItemName], row[colASIN])
}

func join(order, item, asin string) string {
	return strings.Join([]string{order, item, asin}, "\x1f")
}
