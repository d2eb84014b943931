package service_test

import (
	"context"
	"testing"

	"qna-web-server/internal/model"
	"qna-web-server/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockAnswerRepository struct {
	mock.Mock
}

func (m *MockAnswerRepository) Create(ctx context.Context, answer *model.Answer) error {
	args := m.Called(ctx, answer)
	return args.Error(0)
}

func (m *MockAnswerRepository) FindByUUID(ctx context.Context, uuid string) (*model.Answer, error) {
	args := m.Called(ctx, uuid)
	if answer, ok := args.Get(0).(*model.Answer); ok {
		return answer, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockAnswerRepository) ListByPost(ctx context.Context, postUUID string) ([]*model.Answer, error) {
	args := m.Called(ctx, postUUID)
	if answers, ok := args.Get(0).([]*model.Answer); ok {
		return answers, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockAnswerRepository) Update(ctx context.Context, answer *model.Answer) error {
	args := m.Called(ctx, answer)
	return args.Error(0)
}

func (m *MockAnswerRepository) Delete(ctx context.Context, uuid string) error {
	args := m.Called(ctx, uuid)
	return args.Error(0)
}

func TestAnswerService_CreateAnswer(t *testing.T) {
	post := &model.Post{UUID: "post-1", WriterUUID: "basic-1"}

	t.Run("black member rejected", func(t *testing.T) {
		answerService := service.NewAnswerService(new(MockAnswerRepository), new(MockPostRepository), new(MockPostCache))

		_, err := answerService.CreateAnswer(contextWithPrincipal(model.RoleBlack, "black-1"), "post-1", "ответ")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "доступ запрещён")
	})

	t.Run("success bumps counter and drops cache", func(t *testing.T) {
		answerRepo := new(MockAnswerRepository)
		postRepo := new(MockPostRepository)
		cache := new(MockPostCache)

		postRepo.On("FindByUUID", mock.Anything, "post-1").Return(post, nil)
		answerRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
		postRepo.On("IncrementAnswerCount", mock.Anything, "post-1", 1).Return(nil)
		cache.On("DeletePost", mock.Anything, "post-1").Return(nil)

		answerService := service.NewAnswerService(answerRepo, postRepo, cache)
		answer, err := answerService.CreateAnswer(contextWithPrincipal(model.RoleBasic, "basic-2"), "post-1", "ответ")

		require.NoError(t, err)
		assert.Equal(t, "post-1", answer.PostUUID)
		assert.Equal(t, "basic-2", answer.WriterUUID)

		answerRepo.AssertExpectations(t)
		postRepo.AssertExpectations(t)
		cache.AssertExpectations(t)
	})
}

func TestAnswerService_UpdateAnswer_OwnerOnly(t *testing.T) {
	stored := &model.Answer{UUID: "answer-1", PostUUID: "post-1", WriterUUID: "basic-1", Content: "old"}

	answerRepo := new(MockAnswerRepository)
	answerRepo.On("FindByUUID", mock.Anything, "answer-1").Return(stored, nil)

	answerService := service.NewAnswerService(answerRepo, new(MockPostRepository), new(MockPostCache))
	err := answerService.UpdateAnswer(contextWithPrincipal(model.RoleBasic, "basic-2"), "answer-1", "new")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "доступ запрещён")
}
