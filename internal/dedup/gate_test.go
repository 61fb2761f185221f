package dedup

import (
	"context"
	"errors"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"

	"prep-checkin-go/internal/models"
)

// fakeStore implements sheet.RowStore in memory.
type fakeStore struct {
	rows    [][]string
	readErr error
	reads   int
}

func (s *fakeStore) ReadRows(ctx context.Context) ([][]string, error) {
	s.reads++
	if s.readErr != nil {
		return nil, s.readErr
	}
	return s.rows, nil
}

func (s *fakeStore) AppendRow(ctx context.Context, r models.CheckinRecord) error {
	s.rows = append(s.rows, []string{r.Timestamp, r.OrderNumber, r.ItemName, r.ASIN, strconv.Itoa(r.Quantity), r.CorrectOrderNumber})
	return nil
}

func record() models.CheckinRecord {
	return models.CheckinRecord{
		Timestamp:          "6/12/2025, 3:04:05 PM",
		OrderNumber:        "P7354920059015303168",
		ItemName:           "On Running Cloud X 3",
		ASIN:               "B0BNC66RPR",
		Quantity:           1,
		CorrectOrderNumber: "P7354920059015303168",
	}
}

func TestGateSeenMatchesExistingRows(t *testing.T) {
	store := &fakeStore{}
	gate := NewGate(store)
	ctx := context.Background()

	rec := record()
	_, dup := gate.Seen(ctx)[Key(rec)]
	assert.False(t, dup)

	store.AppendRow(ctx, rec)
	_, dup = gate.Seen(ctx)[Key(rec)]
	assert.True(t, dup)
}

func TestGateKeyIsExactMatch(t *testing.T) {
	store := &fakeStore{}
	gate := NewGate(store)
	ctx := context.Background()

	store.AppendRow(ctx, record())
	seen := gate.Seen(ctx)

	// A differing timestamp is not part of the identity key.
	same := record()
	same.Timestamp = "1/1/2026, 9:00:00 AM"
	_, dup := seen[Key(same)]
	assert.True(t, dup)

	// Any identity field differing, including by case, means a new record.
	other := record()
	other.ASIN = "B09XKVZ8TN"
	_, dup = seen[Key(other)]
	assert.False(t, dup)

	cased := record()
	cased.ItemName = "on running cloud x 3"
	_, dup = seen[Key(cased)]
	assert.False(t, dup)
}

func TestGateFailsOpenOnReadError(t *testing.T) {
	store := &fakeStore{readErr: errors.New("sheet unreachable")}
	gate := NewGate(store)

	// A transient read failure must never silently drop data.
	assert.Empty(t, gate.Seen(context.Background()))
}

func TestGateIgnoresShortRows(t *testing.T) {
	store := &fakeStore{rows: [][]string{{"6/12/2025", "P7354920059015303168"}}}
	gate := NewGate(store)

	assert.Empty(t, gate.Seen(context.Background()))
}

func TestGateSeenReadsOnce(t *testing.T) {
	store := &fakeStore{}
	gate := NewGate(store)

	seen := gate.Seen(context.Background())
	assert.Equal(t, 1, store.reads)

	// Membership checks cost no further reads.
	_, _ = seen[Key(record())]
	assert.Equal(t, 1, store.reads)
}
