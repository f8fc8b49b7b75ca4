package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/devconnect/devconnect-backend/internal/domain"
	"github.com/devconnect/devconnect-backend/internal/platform/apierr"
	"github.com/devconnect/devconnect-backend/internal/platform/logger"
	"github.com/devconnect/devconnect-backend/internal/store"
)

// saveAttempts bounds the read-modify-persist retry loop on version
// conflicts. Conflicts are re-evaluated against fresh state, so a like that
// raced with another like still fails its membership check on retry.
const saveAttempts = 3

type PostService interface {
	Create(ctx context.Context, uid, text string) (*domain.Post, error)
	ListAll(ctx context.Context) ([]*domain.Post, error)
	GetByID(ctx context.Context, id string) (*domain.Post, error)
	DeleteByID(ctx context.Context, id, uid string) error
	Like(ctx context.Context, id, uid string) ([]domain.Like, error)
	Unlike(ctx context.Context, id, uid string) ([]domain.Like, error)
	AddComment(ctx context.Context, id, uid, text string) ([]domain.Comment, error)
	DeleteComment(ctx context.Context, postID, commentID, uid string) ([]domain.Comment, error)
}

type postService struct {
	log   *logger.Logger
	posts store.PostStore
	users store.UserStore
}

func NewPostService(log *logger.Logger, posts store.PostStore, users store.UserStore) PostService {
	serviceLog := log.With("service", "PostService")
	return &postService{log: serviceLog, posts: posts, users: users}
}

func (s *postService) Create(ctx context.Context, uid, text string) (*domain.Post, error) {
	if strings.TrimSpace(text) == "" {
		return nil, apierr.Invalid("text_required", errors.New("text is required"))
	}

	author, err := s.users.Load(ctx, uid)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apierr.NotFound("user_not_found", errors.New("user not found"))
		}
		return nil, apierr.Internal("store_fault", err)
	}

	post := &domain.Post{
		ID:           uuid.NewString(),
		Text:         text,
		AuthorID:     uid,
		AuthorName:   author.Name,
		AuthorAvatar: author.Avatar,
		Likes:        []domain.Like{},
		Comments:     []domain.Comment{},
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.posts.Save(ctx, post); err != nil {
		return nil, apierr.Internal("store_fault", err)
	}
	s.log.Debug("post created", "post_id", post.ID)
	return post, nil
}

func (s *postService) ListAll(ctx context.Context) ([]*domain.Post, error) {
	posts, err := s.posts.LoadAll(ctx)
	if err != nil {
		return nil, apierr.Internal("store_fault", err)
	}
	return posts, nil
}

func (s *postService) GetByID(ctx context.Context, id string) (*domain.Post, error) {
	post, err := s.posts.Load(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apierr.NotFound("post_not_found", errors.New("post not found"))
		}
		return nil, apierr.Internal("store_fault", err)
	}
	return post, nil
}

func (s *postService) DeleteByID(ctx context.Context, id, uid string) error {
	post, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if post.AuthorID != uid {
		return apierr.Unauthorized("not_authorized", errors.New("user not authorized"))
	}
	if err := s.posts.Delete(ctx, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return apierr.NotFound("post_not_found", errors.New("post not found"))
		}
		return apierr.Internal("store_fault", err)
	}
	return nil
}

func (s *postService) Like(ctx context.Context, id, uid string) ([]domain.Like, error) {
	post, err := s.mutate(ctx, id, func(post *domain.Post) error {
		if post.Liked(uid) {
			return apierr.Conflict("already_liked", errors.New("post already liked"))
		}
		post.Likes = append([]domain.Like{{UserID: uid}}, post.Likes...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return post.Likes, nil
}

func (s *postService) Unlike(ctx context.Context, id, uid string) ([]domain.Like, error) {
	post, err := s.mutate(ctx, id, func(post *domain.Post) error {
		if !post.Liked(uid) {
			return apierr.Conflict("not_liked", errors.New("post has not been liked"))
		}
		likes := make([]domain.Like, 0, len(post.Likes)-1)
		for _, l := range post.Likes {
			if l.UserID != uid {
				likes = append(likes, l)
			}
		}
		post.Likes = likes
		return nil
	})
	if err != nil {
		return nil, err
	}
	return post.Likes, nil
}

func (s *postService) AddComment(ctx context.Context, id, uid, text string) ([]domain.Comment, error) {
	if strings.TrimSpace(text) == "" {
		return nil, apierr.Invalid("text_required", errors.New("text is required"))
	}

	author, err := s.users.Load(ctx, uid)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apierr.NotFound("user_not_found", errors.New("user not found"))
		}
		return nil, apierr.Internal("store_fault", err)
	}

	comment := domain.Comment{
		ID:           uuid.NewString(),
		Text:         text,
		AuthorID:     uid,
		AuthorName:   author.Name,
		AuthorAvatar: author.Avatar,
		CreatedAt:    time.Now().UTC(),
	}
	post, err := s.mutate(ctx, id, func(post *domain.Post) error {
		post.Comments = append([]domain.Comment{comment}, post.Comments...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return post.Comments, nil
}

func (s *postService) DeleteComment(ctx context.Context, postID, commentID, uid string) ([]domain.Comment, error) {
	post, err := s.mutate(ctx, postID, func(post *domain.Post) error {
		comment := post.FindComment(commentID)
		if comment == nil {
			return apierr.NotFound("comment_not_found", errors.New("comment does not exist"))
		}
		if comment.AuthorID != uid {
			return apierr.Unauthorized("not_authorized", errors.New("user not authorized"))
		}
		comments := make([]domain.Comment, 0, len(post.Comments)-1)
		for _, c := range post.Comments {
			if c.ID != commentID {
				comments = append(comments, c)
			}
		}
		post.Comments = comments
		return nil
	})
	if err != nil {
		return nil, err
	}
	return post.Comments, nil
}

// mutate runs a read-modify-persist cycle against one post aggregate,
// retrying on version conflicts. The mutate callback sees freshly loaded
// state on every attempt, so existence, ownership and membership checks hold
// at persist time.
func (s *postService) mutate(ctx context.Context, id string, fn func(*domain.Post) error) (*domain.Post, error) {
	for attempt := 0; attempt < saveAttempts; attempt++ {
		post, err := s.posts.Load(ctx, id)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return nil, apierr.NotFound("post_not_found", errors.New("post not found"))
			}
			return nil, apierr.Internal("store_fault", err)
		}
		if err := fn(post); err != nil {
			return nil, err
		}
		err = s.posts.Save(ctx, post)
		if errors.Is(err, store.ErrVersionConflict) {
			s.log.Debug("post save conflicted, retrying", "post_id", id, "attempt", attempt+1)
			continue
		}
		if err != nil {
			return nil, apierr.Internal("store_fault", err)
		}
		return post, nil
	}
	return nil, apierr.Internal("save_contention", store.ErrVersionConflict)
}
