package ports

import (
	"context"

	"qna-web-server/internal/model"
)

type PostRepository interface {
	Create(ctx context.Context, post *model.Post) error
	FindByUUID(ctx context.Context, uuid string) (*model.Post, error)
	Update(ctx context.Context, post *model.Post) error
	Delete(ctx context.Context, uuid string) error
	IncrementAnswerCount(ctx context.Context, uuid string, delta int) error
	Search(ctx context.Context, params model.PostSearchParams) ([]*model.Post, string, error)
}

type PostService interface {
	CreatePost(ctx context.Context, category model.PostCategory, title, content string, tags []string) (*model.Post, error)
	GetPost(ctx context.Context, uuid string) (*model.Post, error)
	UpdatePost(ctx context.Context, uuid, title, content string, tags []string) error
	DeletePost(ctx context.Context, uuid string) error
	SearchPosts(ctx context.Context, params model.PostSearchParams) ([]*model.Post, string, error)
}
