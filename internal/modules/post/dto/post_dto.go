package dto

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Visibility is the wire vocabulary for post visibility.
type Visibility string

const (
	VisibilityPublic        Visibility = "public"
	VisibilityHome          Visibility = "home"
	VisibilityFollowers     Visibility = "followers"
	VisibilityDirectMessage Visibility = "directMessage"
)

func (v Visibility) Valid() bool {
	switch v {
	case VisibilityPublic, VisibilityHome, VisibilityFollowers, VisibilityDirectMessage:
		return true
	}
	return false
}

func (v *Visibility) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	candidate := Visibility(s)
	if !candidate.Valid() {
		return fmt.Errorf("unknown visibility %q", s)
	}
	*v = candidate
	return nil
}

type CreatePostRequest struct {
	ReplyID     *uuid.UUID  `json:"replyId"`
	Text        string      `json:"text"`
	Title       *string     `json:"title"`
	Visibility  Visibility  `json:"visibility" binding:"required"`
	IsSensitive bool        `json:"isSensitive"`
	Files       []uuid.UUID `json:"files" binding:"max=256"`
}

type CreatePostResponse struct {
	ID uuid.UUID `json:"id"`
}

type PostURIRequest struct {
	ID string `uri:"id" binding:"required,uuid"`
}

type UserResponse struct {
	Handle string `json:"handle"`
	Host   string `json:"host"`
}

type FileResponse struct {
	MediaType string  `json:"mediaType"`
	URL       string  `json:"url"`
	Alt       *string `json:"alt"`
}

type EmojiResponse struct {
	MediaType string `json:"mediaType"`
	ImageURL  string `json:"imageUrl"`
}

type ReactionResponse struct {
	User    *UserResponse  `json:"user"`
	Content string         `json:"content"`
	Emoji   *EmojiResponse `json:"emoji"`
}

type PostResponse struct {
	ID          uuid.UUID          `json:"id"`
	CreatedAt   time.Time          `json:"createdAt"`
	ReplyID     *uuid.UUID         `json:"replyId"`
	Text        string             `json:"text"`
	Title       *string            `json:"title"`
	User        *UserResponse      `json:"user"`
	Visibility  Visibility         `json:"visibility"`
	IsSensitive bool               `json:"isSensitive"`
	URI         string             `json:"uri"`
	Files       []FileResponse     `json:"files"`
	Reactions   []ReactionResponse `json:"reactions"`
}
