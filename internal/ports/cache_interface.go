package ports

import (
	"context"

	"qna-web-server/internal/model"
)

type PostCache interface {
	SetPost(ctx context.Context, post *model.Post) error
	GetPost(ctx context.Context, uuid string) (*model.Post, error)
	DeletePost(ctx context.Context, uuid string) error
}
