package federation

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"

	"anoa.com/fedipost/internal/entity"
	"anoa.com/fedipost/pkg/logger"
)

func TestHTTPDelivererPostsToEveryInbox(t *testing.T) {
	var hits atomic.Int32
	inbox := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		if r.Method != http.MethodPost {
			t.Errorf("method: want=POST got=%s", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != ContentTypeActivity {
			t.Errorf("content-type: want=%s got=%s", ContentTypeActivity, ct)
		}
		var activity Activity
		if err := json.NewDecoder(r.Body).Decode(&activity); err != nil {
			t.Errorf("decode: %v", err)
		}
		if activity.Type != "Delete" {
			t.Errorf("type: want=Delete got=%s", activity.Type)
		}
		w.WriteHeader(http.StatusAccepted)
	}))
	defer inbox.Close()

	d := NewHTTPDeliverer(inbox.Client(), []string{inbox.URL + "/a", inbox.URL + "/b"}, logger.Nop())
	err := d.Deliver(context.Background(), &Activity{Context: ContextActivityStreams, ID: "x", Type: "Delete", Object: "https://social.example/ap/post/1"})
	if err != nil {
		t.Fatalf("Deliver: %v", err)
	}
	if hits.Load() != 2 {
		t.Fatalf("hits: want=2 got=%d", hits.Load())
	}
}

func TestHTTPDelivererStopsAtFirstFailure(t *testing.T) {
	var hits atomic.Int32
	inbox := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer inbox.Close()

	d := NewHTTPDeliverer(inbox.Client(), []string{inbox.URL + "/a", inbox.URL + "/b"}, logger.Nop())
	if err := d.Deliver(context.Background(), &Activity{ID: "x", Type: "Create"}); err == nil {
		t.Fatalf("Deliver: expected error on 500")
	}
	if hits.Load() != 1 {
		t.Fatalf("hits: want=1 got=%d (no retry, no further inboxes)", hits.Load())
	}
}

func TestHTTPDelivererWithoutInboxes(t *testing.T) {
	d := NewHTTPDeliverer(nil, nil, logger.Nop())
	if err := d.Deliver(context.Background(), &Activity{ID: "x", Type: "Create"}); err != nil {
		t.Fatalf("Deliver: %v", err)
	}
}

type captureDeliverer struct {
	got    *Activity
	ctxErr error
	err    error
}

func (c *captureDeliverer) Deliver(ctx context.Context, activity *Activity) error {
	c.got = activity
	c.ctxErr = ctx.Err()
	return c.err
}

func TestDispatcherIgnoresRequestCancellation(t *testing.T) {
	capture := &captureDeliverer{}
	d := NewDispatcher(NewRenderer("social.example", "https://social.example/ap/actor"), capture)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	uri, _ := url.Parse("https://social.example/ap/post/1")
	if err := d.AnnounceDelete(ctx, uri); err != nil {
		t.Fatalf("AnnounceDelete: %v", err)
	}
	if capture.ctxErr != nil {
		t.Fatalf("delivery context: want live got=%v", capture.ctxErr)
	}
	if capture.got == nil || capture.got.Type != "Delete" {
		t.Fatalf("activity: got=%+v", capture.got)
	}
}

func TestDispatcherSurfacesDeliveryFailure(t *testing.T) {
	boom := errors.New("boom")
	d := NewDispatcher(NewRenderer("social.example", "https://social.example/ap/actor"), &captureDeliverer{err: boom})

	post := testPost(entity.VisibilityPublic)
	if err := d.AnnounceCreate(context.Background(), post, "", nil); !errors.Is(err, boom) {
		t.Fatalf("AnnounceCreate: want wrapped boom got=%v", err)
	}
}
