package federation

import (
	"fmt"
	"html"
	"net/url"
	"strings"
	"time"

	"anoa.com/fedipost/internal/entity"
	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
)

// Renderer turns local state into outbound activities.
type Renderer struct {
	domain    string
	actor     string
	sanitizer *bluemonday.Policy
	now       func() time.Time
}

func NewRenderer(domain, actor string) *Renderer {
	return &Renderer{
		domain:    domain,
		actor:     actor,
		sanitizer: bluemonday.UGCPolicy(),
		now:       time.Now,
	}
}

// RenderCreate builds the Create activity for a freshly stored post.
// replyURI is the canonical URI of the reply target, empty when there is none.
// files must be in display order.
func (r *Renderer) RenderCreate(post *entity.Post, replyURI string, files []entity.File) (*Activity, error) {
	if _, err := parseAbsoluteURL(post.URI); err != nil {
		return nil, fmt.Errorf("render create: %w", err)
	}

	to, cc := r.addressing(post.Visibility)

	note := &Note{
		ID:           post.URI,
		Type:         "Note",
		AttributedTo: r.actor,
		Name:         post.Title,
		Content:      r.renderContent(post.Text),
		Source:       &Source{Content: post.Text, MediaType: "text/plain"},
		Published:    post.CreatedAt,
		Sensitive:    post.IsSensitive,
		URL:          post.URI,
		To:           to,
		Cc:           cc,
	}
	if replyURI != "" {
		note.InReplyTo = &replyURI
	}
	for _, file := range files {
		note.Attachment = append(note.Attachment, Document{
			Type:      "Document",
			MediaType: file.MediaType,
			URL:       file.URL,
			Name:      file.Alt,
		})
	}

	published := post.CreatedAt
	return &Activity{
		Context:   ContextActivityStreams,
		ID:        r.activityID(),
		Type:      "Create",
		Actor:     r.actor,
		Published: &published,
		To:        to,
		Cc:        cc,
		Object:    note,
	}, nil
}

// RenderDelete builds the Delete activity for the object at uri.
func (r *Renderer) RenderDelete(uri *url.URL) (*Activity, error) {
	if uri == nil || !uri.IsAbs() {
		return nil, fmt.Errorf("render delete: object uri must be absolute")
	}
	published := r.now()
	return &Activity{
		Context:   ContextActivityStreams,
		ID:        r.activityID(),
		Type:      "Delete",
		Actor:     r.actor,
		Published: &published,
		To:        []string{PublicCollection},
		Object:    uri.String(),
	}, nil
}

func (r *Renderer) activityID() string {
	id, err := uuid.NewV7()
	if err != nil {
		id = uuid.New()
	}
	return fmt.Sprintf("https://%s/ap/activity/%s", r.domain, id)
}

func (r *Renderer) followers() string {
	return strings.TrimSuffix(r.actor, "/") + "/followers"
}

func (r *Renderer) addressing(visibility entity.Visibility) (to, cc []string) {
	switch visibility {
	case entity.VisibilityPublic:
		return []string{PublicCollection}, []string{r.followers()}
	case entity.VisibilityHome:
		return []string{r.followers()}, []string{PublicCollection}
	case entity.VisibilityFollowers:
		return []string{r.followers()}, nil
	default:
		// direct messages are addressed to mentioned actors only
		return nil, nil
	}
}

// renderContent converts plain post text into sanitised HTML paragraphs.
func (r *Renderer) renderContent(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	var b strings.Builder
	for _, paragraph := range strings.Split(text, "\n\n") {
		if strings.TrimSpace(paragraph) == "" {
			continue
		}
		lines := strings.Split(paragraph, "\n")
		for i, line := range lines {
			lines[i] = html.EscapeString(line)
		}
		b.WriteString("<p>")
		b.WriteString(strings.Join(lines, "<br>"))
		b.WriteString("</p>")
	}
	return r.sanitizer.Sanitize(b.String())
}

func parseAbsoluteURL(raw string) (*url.URL, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, err
	}
	if !u.IsAbs() || u.Host == "" {
		return nil, fmt.Errorf("url %q is not absolute", raw)
	}
	return u, nil
}
