package post

import (
	"context"
	"errors"
	"fmt"
	"time"

	"anoa.com/fedipost/internal/entity"
	attachmentRepo "anoa.com/fedipost/internal/modules/attachment/repository"
	"anoa.com/fedipost/internal/modules/federation"
	postDto "anoa.com/fedipost/internal/modules/post/dto"
	postRepo "anoa.com/fedipost/internal/modules/post/repository"
	reactionRepo "anoa.com/fedipost/internal/modules/reaction/repository"
	userRepo "anoa.com/fedipost/internal/modules/user/repository"
	"anoa.com/fedipost/pkg/apperror"
	"anoa.com/fedipost/pkg/dbctx"
	"anoa.com/fedipost/pkg/logger"
	"github.com/google/uuid"
)

type PostService interface {
	CreatePost(ctx context.Context, req postDto.CreatePostRequest) (*postDto.CreatePostResponse, error)
	GetPost(ctx context.Context, postID uuid.UUID) (*postDto.PostResponse, error)
	DeletePost(ctx context.Context, postID uuid.UUID) error
}

type postService struct {
	postRepo       postRepo.PostRepository
	attachmentRepo attachmentRepo.AttachmentRepository
	reactionRepo   reactionRepo.ReactionRepository
	userRepo       userRepo.UserRepository
	dispatcher     federation.Dispatcher
	log            *logger.Logger
	domain         string
	now            func() time.Time
}

func NewPostService(postRepo postRepo.PostRepository, attachmentRepo attachmentRepo.AttachmentRepository, reactionRepo reactionRepo.ReactionRepository, userRepo userRepo.UserRepository, dispatcher federation.Dispatcher, log *logger.Logger, domain string) PostService {
	return &postService{
		postRepo:       postRepo,
		attachmentRepo: attachmentRepo,
		reactionRepo:   reactionRepo,
		userRepo:       userRepo,
		dispatcher:     dispatcher,
		log:            log.With("component", "post_service"),
		domain:         domain,
		now:            time.Now,
	}
}

// PostURI is the canonical URI of a local post.
func PostURI(domain string, id uuid.UUID) string {
	return fmt.Sprintf("https://%s/ap/post/%s", domain, id)
}

func (s *postService) CreatePost(ctx context.Context, req postDto.CreatePostRequest) (*postDto.CreatePostResponse, error) {
	if len(req.Files) > attachmentRepo.MaxAttachments {
		return nil, apperror.InvalidInput(fmt.Sprintf("a post can have at most %d files", attachmentRepo.MaxAttachments))
	}
	visibility, err := VisibilityToStorage(req.Visibility)
	if err != nil {
		return nil, apperror.InvalidInput(err.Error())
	}

	var (
		created  *entity.Post
		replyURI string
		files    = make([]entity.File, 0, len(req.Files))
	)

	err = s.postRepo.Transaction(ctx, func(dbc dbctx.Context) error {
		if req.ReplyID != nil {
			target, err := s.postRepo.FindByID(dbc, *req.ReplyID)
			if err != nil {
				return apperror.Internal("failed to query database", err)
			}
			if target == nil {
				return apperror.NotFound("reply target post not found")
			}
			replyURI = target.URI
		}

		id, err := uuid.NewV7()
		if err != nil {
			return apperror.Internal("failed to generate post id", err)
		}

		post, err := s.postRepo.Create(dbc, postRepo.NewPost{
			ID:          id,
			CreatedAt:   s.now(),
			ReplyID:     req.ReplyID,
			Text:        req.Text,
			Title:       req.Title,
			UserID:      nil,
			Visibility:  visibility,
			IsSensitive: req.IsSensitive,
			URI:         PostURI(s.domain, id),
		})
		if err != nil {
			return apperror.Internal("failed to insert to database", err)
		}

		// One at a time, in request order: the index is the display order.
		for idx, fileID := range req.Files {
			file, err := s.attachmentRepo.FindFile(dbc, fileID)
			if err != nil {
				return apperror.Internal("failed to query database", err)
			}
			if file == nil {
				return apperror.NotFound("file not found")
			}
			if err := s.attachmentRepo.Attach(dbc, attachmentRepo.NewAttachment{
				PostID: post.ID,
				FileID: file.ID,
				Order:  uint8(idx),
			}); err != nil {
				return apperror.Internal("failed to insert to database", err)
			}
			files = append(files, *file)
		}

		created = post
		return nil
	})
	if err != nil {
		return nil, transactionError(err)
	}

	s.log.Info("post created", "post_id", created.ID, "reply_id", created.ReplyID, "files", len(files))

	if err := s.dispatcher.AnnounceCreate(ctx, created, replyURI, files); err != nil {
		s.log.Error("create announcement failed, post is stored locally", "post_id", created.ID, "error", err)
		return nil, apperror.Internal("failed to deliver create activity", err)
	}

	return &postDto.CreatePostResponse{ID: created.ID}, nil
}

func (s *postService) GetPost(ctx context.Context, postID uuid.UUID) (*postDto.PostResponse, error) {
	dbc := dbctx.Context{Ctx: ctx}

	post, err := s.postRepo.FindByID(dbc, postID)
	if err != nil {
		return nil, apperror.Internal("failed to query database", err)
	}
	if post == nil {
		return nil, apperror.NotFound("post not found")
	}

	var owner *postDto.UserResponse
	if post.UserID != nil {
		user, err := s.userRepo.FindByID(dbc, *post.UserID)
		if err != nil {
			return nil, apperror.Internal("failed to query database", err)
		}
		if user == nil {
			return nil, apperror.Internal("user not found", fmt.Errorf("post %s references missing user %s", post.ID, *post.UserID))
		}
		owner = mapUser(user)
	}

	attachments, err := s.attachmentRepo.FindByPostID(dbc, post.ID)
	if err != nil {
		return nil, apperror.Internal("failed to query database", err)
	}

	reactions, err := s.reactionRepo.FindByPostID(dbc, post.ID)
	if err != nil {
		return nil, apperror.Internal("failed to query database", err)
	}

	visibility, err := VisibilityToWire(post.Visibility)
	if err != nil {
		return nil, apperror.Internal("malformed post visibility", err)
	}

	uri, err := parseAbsoluteURL(post.URI)
	if err != nil {
		return nil, apperror.Internal("malformed post URI", err)
	}

	return &postDto.PostResponse{
		ID:          post.ID,
		CreatedAt:   post.CreatedAt,
		ReplyID:     post.ReplyID,
		Text:        post.Text,
		Title:       post.Title,
		User:        owner,
		Visibility:  visibility,
		IsSensitive: post.IsSensitive,
		URI:         uri.String(),
		Files:       s.mapFiles(post.ID, attachments),
		Reactions:   mapReactions(reactions),
	}, nil
}

func (s *postService) DeletePost(ctx context.Context, postID uuid.UUID) error {
	var (
		uri     string
		deleted bool
	)

	err := s.postRepo.Transaction(ctx, func(dbc dbctx.Context) error {
		existing, err := s.postRepo.FindByID(dbc, postID)
		if err != nil {
			return apperror.Internal("failed to query database", err)
		}
		if existing == nil {
			return nil
		}

		uri = existing.URI
		if err := s.postRepo.Delete(dbc, postID); err != nil {
			return apperror.Internal("failed to delete from database", err)
		}
		deleted = true
		return nil
	})
	if err != nil {
		return transactionError(err)
	}
	if !deleted {
		return nil
	}

	s.log.Info("post deleted", "post_id", postID)

	parsed, err := parseAbsoluteURL(uri)
	if err != nil {
		s.log.Error("deleted post has malformed uri, remote servers not informed", "post_id", postID, "uri", uri)
		return apperror.Internal("malformed post URI", err)
	}

	if err := s.dispatcher.AnnounceDelete(ctx, parsed); err != nil {
		s.log.Error("delete announcement failed, post is removed locally", "post_id", postID, "error", err)
		return apperror.Internal("failed to deliver delete activity", err)
	}
	return nil
}

// transactionError passes through errors raised inside the transaction and
// wraps begin/commit failures.
func transactionError(err error) error {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return apperror.Internal("database transaction failed", err)
}
