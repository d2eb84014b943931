package ports

import (
	"context"

	"qna-web-server/internal/model"
)

type AnswerRepository interface {
	Create(ctx context.Context, answer *model.Answer) error
	FindByUUID(ctx context.Context, uuid string) (*model.Answer, error)
	ListByPost(ctx context.Context, postUUID string) ([]*model.Answer, error)
	Update(ctx context.Context, answer *model.Answer) error
	Delete(ctx context.Context, uuid string) error
}

type AnswerService interface {
	CreateAnswer(ctx context.Context, postUUID, content string) (*model.Answer, error)
	ListAnswers(ctx context.Context, postUUID string) ([]*model.Answer, error)
	UpdateAnswer(ctx context.Context, uuid, content string) error
	DeleteAnswer(ctx context.Context, uuid string) error
}
