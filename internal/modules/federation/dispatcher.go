package federation

import (
	"context"
	"fmt"
	"net/url"

	"anoa.com/fedipost/internal/entity"
)

// Dispatcher announces committed post mutations to remote servers. Each call
// renders one activity and makes a single blocking delivery attempt.
type Dispatcher interface {
	AnnounceCreate(ctx context.Context, post *entity.Post, replyURI string, files []entity.File) error
	AnnounceDelete(ctx context.Context, uri *url.URL) error
}

type dispatcher struct {
	renderer  *Renderer
	deliverer Deliverer
}

func NewDispatcher(renderer *Renderer, deliverer Deliverer) Dispatcher {
	return &dispatcher{
		renderer:  renderer,
		deliverer: deliverer,
	}
}

func (d *dispatcher) AnnounceCreate(ctx context.Context, post *entity.Post, replyURI string, files []entity.File) error {
	activity, err := d.renderer.RenderCreate(post, replyURI, files)
	if err != nil {
		return err
	}
	return d.deliver(ctx, activity)
}

func (d *dispatcher) AnnounceDelete(ctx context.Context, uri *url.URL) error {
	activity, err := d.renderer.RenderDelete(uri)
	if err != nil {
		return err
	}
	return d.deliver(ctx, activity)
}

// deliver detaches from the request's cancellation: once the local change is
// committed the attempt runs to completion or to the client timeout.
func (d *dispatcher) deliver(ctx context.Context, activity *Activity) error {
	if err := d.deliverer.Deliver(context.WithoutCancel(ctx), activity); err != nil {
		return fmt.Errorf("dispatch %s: %w", activity.ID, err)
	}
	return nil
}
