package pipeline

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"prep-checkin-go/internal/classifier"
	"prep-checkin-go/internal/config"
	"prep-checkin-go/internal/dedup"
	"prep-checkin-go/internal/extract"
	"prep-checkin-go/internal/metrics"
	"prep-checkin-go/internal/models"
	"prep-checkin-go/internal/sheet"
)

// Pipeline turns one inbound message into zero or more appended check-in
// rows: classify, extract the shipment fields and line items, assemble
// records, then dedup-check and append each record.
type Pipeline struct {
	classifier *classifier.Classifier
	subjects   *extract.SubjectExtractor
	bodies     *extract.BodyExtractor
	items      *extract.ItemParser
	gate       *dedup.Gate
	store      sheet.RowStore
	metrics    *metrics.Metrics
}

// Outcome summarizes the processing of one message.
type Outcome struct {
	Status      string
	OrderNumber string
	Appended    int
	Duplicates  int
	Reason      string
	Err         error
}

// New creates a pipeline over the given row store.
func New(cfg *config.CheckinConfig, store sheet.RowStore, m *metrics.Metrics) *Pipeline {
	return &Pipeline{
		classifier: classifier.New(cfg.MonitoredSender, cfg.SenderName),
		subjects:   extract.NewSubjectExtractor(cfg.SubjectKeyword),
		bodies:     extract.NewBodyExtractor(),
		items:      extract.NewItemParser(),
		gate:       dedup.NewGate(store),
		store:      store,
		metrics:    m,
	}
}

// ProcessMessage runs one message through the pipeline. It never panics;
// a panic anywhere in the chain is caught here so one malformed message
// cannot abort the batch.
func (p *Pipeline) ProcessMessage(ctx context.Context, msg models.EmailMessage) (out Outcome) {
	defer func() {
		if r := recover(); r != nil {
			logrus.Errorf("Panic processing message %s: %v", msg.ID, r)
			out = Outcome{Status: models.StatusError, Err: fmt.Errorf("panic processing message %s: %v", msg.ID, r)}
		}
	}()

	if !p.classifier.Accept(msg) {
		p.metrics.ClassifyRejects.Inc()
		return Outcome{Status: models.StatusSkipped, Reason: "sender not monitored"}
	}

	shipmentNumber := p.subjects.Extract(msg.Subject, msg.HTMLBody, msg.Body)
	if shipmentNumber == "" {
		logrus.Warnf("Message %s: no shipment number found, dropping", msg.ID)
		p.metrics.ExtractFailures.Inc()
		return Outcome{Status: models.StatusSkipped, Reason: "no shipment number found"}
	}

	secondaryCode, dateTimeText := p.bodies.Extract(msg.HTMLBody, msg.Body)
	header := models.ShipmentHeader{
		ShipmentNumber: shipmentNumber,
		SecondaryCode:  secondaryCode,
		DateTimeText:   dateTimeText,
	}

	items := p.items.Parse(msg.HTMLBody, msg.Body)
	records := extract.AssembleRecords(header, items, msg.ReceivedAt)
	if len(records) == 0 {
		logrus.Warnf("Message %s (shipment %s): no items found, dropping", msg.ID, shipmentNumber)
		p.metrics.ExtractFailures.Inc()
		return Outcome{Status: models.StatusSkipped, OrderNumber: shipmentNumber, Reason: "no items found"}
	}

	out = Outcome{OrderNumber: shipmentNumber}

	// One read covers the whole message; appended records join the set so
	// repeated item lines within a message dedup too.
	seen := p.gate.Seen(ctx)

	var lastErr error
	for _, record := range records {
		key := dedup.Key(record)
		if _, dup := seen[key]; dup {
			logrus.Infof("Message %s: record %s / %s already recorded, skipping", msg.ID, record.OrderNumber, record.ASIN)
			p.metrics.DuplicateSkips.Inc()
			out.Duplicates++
			continue
		}

		// A failed append must not stop the remaining records.
		if err := p.store.AppendRow(ctx, record); err != nil {
			logrus.Errorf("Message %s: failed to append record %s / %s: %v", msg.ID, record.OrderNumber, record.ASIN, err)
			p.metrics.SinkFailures.Inc()
			lastErr = err
			continue
		}

		seen[key] = struct{}{}
		p.metrics.RecordsAppended.Inc()
		out.Appended++
	}

	switch {
	case lastErr != nil:
		out.Status = models.StatusError
		out.Err = lastErr
	case out.Appended == 0:
		out.Status = models.StatusDuplicate
	default:
		out.Status = models.StatusSuccess
	}

	return out
}
