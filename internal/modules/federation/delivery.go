package federation

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"anoa.com/fedipost/pkg/logger"
)

// Deliverer sends one activity to remote servers. Delivery is all or nothing
// from the caller's point of view.
type Deliverer interface {
	Deliver(ctx context.Context, activity *Activity) error
}

// HTTPDeliverer POSTs activities to a fixed list of peer inboxes, one attempt
// per inbox, in order. The first failure aborts the delivery.
type HTTPDeliverer struct {
	client  *http.Client
	inboxes []string
	log     *logger.Logger
}

func NewHTTPDeliverer(client *http.Client, inboxes []string, log *logger.Logger) *HTTPDeliverer {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &HTTPDeliverer{
		client:  client,
		inboxes: inboxes,
		log:     log,
	}
}

func (d *HTTPDeliverer) Deliver(ctx context.Context, activity *Activity) error {
	body, err := json.Marshal(activity)
	if err != nil {
		return fmt.Errorf("marshal %s activity: %w", activity.Type, err)
	}

	for _, inbox := range d.inboxes {
		start := time.Now()
		err := d.post(ctx, inbox, body)
		deliveryHist.WithLabelValues(activity.Type).Observe(time.Since(start).Seconds())
		if err != nil {
			deliveriesCounter.WithLabelValues(activity.Type, "error").Inc()
			d.log.Warn("activity delivery failed",
				"activity_id", activity.ID,
				"type", activity.Type,
				"inbox", inbox,
				"error", err,
			)
			return fmt.Errorf("deliver %s to %s: %w", activity.Type, inbox, err)
		}
		deliveriesCounter.WithLabelValues(activity.Type, "ok").Inc()
		d.log.Debug("activity delivered", "activity_id", activity.ID, "type", activity.Type, "inbox", inbox)
	}
	return nil
}

func (d *HTTPDeliverer) post(ctx context.Context, inbox string, body []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, inbox, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", ContentTypeActivity)
	req.Header.Set("Accept", ContentTypeActivity)

	resp, err := d.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return nil
}
