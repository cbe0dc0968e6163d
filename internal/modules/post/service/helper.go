package post

import (
	"fmt"
	"mime"
	"net/url"
	"strings"

	"anoa.com/fedipost/internal/entity"
	postDto "anoa.com/fedipost/internal/modules/post/dto"
	"github.com/google/uuid"
)

func mapUser(user *entity.User) *postDto.UserResponse {
	if user == nil {
		return nil
	}
	return &postDto.UserResponse{
		Handle: user.Handle,
		Host:   user.Host,
	}
}

// mapFiles keeps the repository's display order. Files whose stored media
// type or URL do not parse are left out of the response.
func (s *postService) mapFiles(postID uuid.UUID, attachments []entity.PostFile) []postDto.FileResponse {
	files := make([]postDto.FileResponse, 0, len(attachments))
	for _, att := range attachments {
		mediaType, err := parseMediaType(att.File.MediaType)
		if err != nil {
			s.log.Warn("skipping attachment with malformed media type", "post_id", postID, "file_id", att.FileID, "error", err)
			continue
		}
		fileURL, err := parseAbsoluteURL(att.File.URL)
		if err != nil {
			s.log.Warn("skipping attachment with malformed url", "post_id", postID, "file_id", att.FileID, "error", err)
			continue
		}
		files = append(files, postDto.FileResponse{
			MediaType: mediaType,
			URL:       fileURL.String(),
			Alt:       att.File.Alt,
		})
	}
	return files
}

func mapReactions(reactions []entity.Reaction) []postDto.ReactionResponse {
	out := make([]postDto.ReactionResponse, 0, len(reactions))
	for i := range reactions {
		reaction := &reactions[i]
		out = append(out, postDto.ReactionResponse{
			User:    mapUser(reaction.User),
			Content: reaction.Content,
			Emoji:   parseEmoji(reaction.EmojiMediaType, reaction.EmojiImageURL),
		})
	}
	return out
}

// parseEmoji returns nil unless both halves of the descriptor are present and
// valid. A broken descriptor never fails the read.
func parseEmoji(mediaType, imageURL *string) *postDto.EmojiResponse {
	if mediaType == nil || imageURL == nil {
		return nil
	}
	mt, err := parseMediaType(*mediaType)
	if err != nil {
		return nil
	}
	u, err := parseAbsoluteURL(*imageURL)
	if err != nil {
		return nil
	}
	return &postDto.EmojiResponse{
		MediaType: mt,
		ImageURL:  u.String(),
	}
}

func parseMediaType(raw string) (string, error) {
	mt, params, err := mime.ParseMediaType(raw)
	if err != nil {
		return "", err
	}
	if !strings.Contains(mt, "/") {
		return "", fmt.Errorf("media type %q has no subtype", raw)
	}
	formatted := mime.FormatMediaType(mt, params)
	if formatted == "" {
		return "", fmt.Errorf("media type %q cannot be formatted", raw)
	}
	return formatted, nil
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
