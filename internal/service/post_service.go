package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/d60-Lab/festive-table/internal/model"
	"github.com/d60-Lab/festive-table/internal/policy"
	"github.com/d60-Lab/festive-table/internal/repository"
	"github.com/d60-Lab/festive-table/pkg/logger"
)

// ErrDeleteForbidden is returned when a viewer asks to remove a post they do
// not own and without the admin override.
var ErrDeleteForbidden = errors.New("not allowed to remove this post")

// PostService orchestrates the table: the policy decides, the repositories
// persist. Validation errors from the policy pass through unchanged so the
// API layer can map each rejection reason separately.
type PostService interface {
	// Submit validates the draft for this session and, when approved,
	// persists the post and records authorship. Nothing is persisted or
	// remembered on rejection.
	Submit(ctx context.Context, sessionID string, draft policy.Draft) (*model.Post, error)

	// List returns every post, newest first.
	List(ctx context.Context) ([]*model.Post, error)

	// Get returns the post and whether this viewer may delete it. An absent
	// id yields (nil, false, nil).
	Get(ctx context.Context, sessionID, postID string, viewerIsAdmin bool) (*model.Post, bool, error)

	// Delete removes a post if the viewer may. Deleting an absent post is a
	// success. When the deleted post was this session's tracked post, the
	// session is released so the visitor can submit again.
	Delete(ctx context.Context, sessionID, postID string, viewerIsAdmin bool) error
}

type postService struct {
	posts    repository.PostRepository
	sessions repository.SessionRepository
	cache    *repository.ListCache
	policy   *policy.Policy
}

func NewPostService(posts repository.PostRepository, sessions repository.SessionRepository, cache *repository.ListCache, pol *policy.Policy) PostService {
	return &postService{posts: posts, sessions: sessions, cache: cache, policy: pol}
}

func (s *postService) Submit(ctx context.Context, sessionID string, draft policy.Draft) (*model.Post, error) {
	state, err := s.sessions.Tokens(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	approved, err := s.policy.ValidateSubmission(draft, state)
	if err != nil {
		return nil, err
	}

	post := &model.Post{
		Name:        approved.Name,
		Icon:        approved.Icon,
		Message:     approved.Message,
		AuthorToken: approved.AuthorToken,
	}
	if err := s.posts.Create(ctx, post); err != nil {
		return nil, err
	}

	// Authorship is recorded only after the store confirmed the write. If
	// remembering fails the post still exists, the visitor just loses the
	// delete capability; ownership is advisory, so log and move on.
	if err := s.sessions.Remember(ctx, sessionID, policy.RecordAuthorship(state, approved.AuthorToken)); err != nil {
		logger.Warn("failed to record authorship", zap.String("post_id", post.ID), zap.Error(err))
	}
	s.cache.Invalidate(ctx)

	return post, nil
}

func (s *postService) List(ctx context.Context) ([]*model.Post, error) {
	if posts, ok := s.cache.Get(ctx); ok {
		return posts, nil
	}
	posts, err := s.posts.List(ctx)
	if err != nil {
		return nil, err
	}
	s.cache.Set(ctx, posts)
	return posts, nil
}

func (s *postService) Get(ctx context.Context, sessionID, postID string, viewerIsAdmin bool) (*model.Post, bool, error) {
	post, err := s.posts.GetByID(ctx, postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, nil
		}
		return nil, false, err
	}

	state, err := s.sessions.Tokens(ctx, sessionID)
	if err != nil {
		return nil, false, err
	}
	return post, policy.CanDelete(post.AuthorToken, state, viewerIsAdmin), nil
}

func (s *postService) Delete(ctx context.Context, sessionID, postID string, viewerIsAdmin bool) error {
	post, err := s.posts.GetByID(ctx, postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Already gone; the other browser won the race. Fine.
			return nil
		}
		return err
	}

	state, err := s.sessions.Tokens(ctx, sessionID)
	if err != nil {
		return err
	}
	if !policy.CanDelete(post.AuthorToken, state, viewerIsAdmin) {
		return ErrDeleteForbidden
	}

	if err := s.posts.Delete(ctx, post.ID); err != nil {
		return err
	}

	// Only the owner's session is released. An admin removing someone
	// else's dish keeps their own tracked post.
	if state.Contains(post.AuthorToken) {
		if err := s.sessions.Release(ctx, sessionID); err != nil {
			logger.Warn("failed to release session", zap.String("session_id", sessionID), zap.Error(err))
		}
	}
	s.cache.Invalidate(ctx)

	return nil
}
