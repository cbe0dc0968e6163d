package federation

import "time"

const (
	ContextActivityStreams = "https://www.w3.org/ns/activitystreams"
	PublicCollection       = "https://www.w3.org/ns/activitystreams#Public"

	ContentTypeActivity = "application/activity+json"
)

// Activity is an ActivityStreams 2.0 activity announced to remote servers.
type Activity struct {
	Context   string     `json:"@context"`
	ID        string     `json:"id"`
	Type      string     `json:"type"`
	Actor     string     `json:"actor"`
	Published *time.Time `json:"published,omitempty"`
	To        []string   `json:"to,omitempty"`
	Cc        []string   `json:"cc,omitempty"`
	// Object is a *Note for Create and the object URI for Delete.
	Object any `json:"object"`
}

type Note struct {
	ID           string     `json:"id"`
	Type         string     `json:"type"`
	AttributedTo string     `json:"attributedTo"`
	Name         *string    `json:"name,omitempty"`
	Content      string     `json:"content"`
	Source       *Source    `json:"source,omitempty"`
	InReplyTo    *string    `json:"inReplyTo,omitempty"`
	Published    time.Time  `json:"published"`
	Sensitive    bool       `json:"sensitive"`
	URL          string     `json:"url"`
	To           []string   `json:"to,omitempty"`
	Cc           []string   `json:"cc,omitempty"`
	Attachment   []Document `json:"attachment,omitempty"`
}

type Source struct {
	Content   string `json:"content"`
	MediaType string `json:"mediaType"`
}

type Document struct {
	Type      string  `json:"type"`
	MediaType string  `json:"mediaType"`
	URL       string  `json:"url"`
	Name      *string `json:"name,omitempty"`
}
