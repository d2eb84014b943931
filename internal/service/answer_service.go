package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"qna-web-server/internal/model"
	"qna-web-server/internal/ports"
	"qna-web-server/internal/repository"
	"qna-web-server/internal/security"

	"github.com/google/uuid"
)

type AnswerService struct {
	answerRepository ports.AnswerRepository
	postRepository   ports.PostRepository
	cache            ports.PostCache
}

func NewAnswerService(answerRepository ports.AnswerRepository, postRepository ports.PostRepository, cache ports.PostCache) *AnswerService {
	return &AnswerService{
		answerRepository: answerRepository,
		postRepository:   postRepository,
		cache:            cache,
	}
}

// CreateAnswer создаёт ответ на пост. BLACK не имеет права записи.
func (s *AnswerService) CreateAnswer(ctx context.Context, postUUID, content string) (*model.Answer, error) {
	principal, err := security.PrincipalFromContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("[AnswerService] пользователь не авторизован")
	}

	if !principal.Role.CanWrite() {
		return nil, fmt.Errorf("[AnswerService] доступ запрещён")
	}
	if strings.TrimSpace(content) == "" {
		return nil, fmt.Errorf("[AnswerService] содержимое обязательно")
	}

	if _, err := s.postRepository.FindByUUID(ctx, postUUID); err != nil {
		if errors.Is(err, repository.ErrPostNotFound) {
			return nil, fmt.Errorf("[AnswerService] пост не найден")
		}
		return nil, err
	}

	answer := &model.Answer{
		UUID:        uuid.New().String(),
		PostUUID:    postUUID,
		WriterUUID:  principal.MemberUUID,
		WriterEmail: principal.Email,
		Content:     content,
	}

	if err := s.answerRepository.Create(ctx, answer); err != nil {
		return nil, fmt.Errorf("[AnswerService] ошибка создания ответа: %w", err)
	}

	if err := s.postRepository.IncrementAnswerCount(ctx, postUUID, 1); err != nil {
		log.Printf("не удалось обновить счётчик ответов поста %s: %v", postUUID, err)
	}
	if err := s.cache.DeletePost(ctx, postUUID); err != nil {
		log.Printf("не удалось инвалидировать кэш поста %s: %v", postUUID, err)
	}

	return answer, nil
}

func (s *AnswerService) ListAnswers(ctx context.Context, postUUID string) ([]*model.Answer, error) {
	return s.answerRepository.ListByPost(ctx, postUUID)
}

// UpdateAnswer правит ответ. Только автор, сравнение по личности.
func (s *AnswerService) UpdateAnswer(ctx context.Context, answerUUID, content string) error {
	principal, err := security.PrincipalFromContext(ctx)
	if err != nil {
		return fmt.Errorf("[AnswerService] пользователь не авторизован")
	}
	if !principal.Role.CanWrite() {
		return fmt.Errorf("[AnswerService] доступ запрещён")
	}

	answer, err := s.answerRepository.FindByUUID(ctx, answerUUID)
	if err != nil {
		if errors.Is(err, repository.ErrAnswerNotFound) {
			return fmt.Errorf("[AnswerService] ответ не найден")
		}
		return err
	}

	if answer.WriterUUID != principal.MemberUUID {
		return fmt.Errorf("[AnswerService] доступ запрещён")
	}

	answer.Content = content
	if err := s.answerRepository.Update(ctx, answer); err != nil {
		return fmt.Errorf("[AnswerService] ошибка обновления ответа: %w", err)
	}

	if err := s.cache.DeletePost(ctx, answer.PostUUID); err != nil {
		log.Printf("не удалось инвалидировать кэш поста %s: %v", answer.PostUUID, err)
	}

	return nil
}

func (s *AnswerService) DeleteAnswer(ctx context.Context, answerUUID string) error {
	principal, err := security.PrincipalFromContext(ctx)
	if err != nil {
		return fmt.Errorf("[AnswerService] пользователь не авторизован")
	}
	if !principal.Role.CanWrite() {
		return fmt.Errorf("[AnswerService] доступ запрещён")
	}

	answer, err := s.answerRepository.FindByUUID(ctx, answerUUID)
	if err != nil {
		if errors.Is(err, repository.ErrAnswerNotFound) {
			return fmt.Errorf("[AnswerService] ответ не найден")
		}
		return err
	}

	if answer.WriterUUID != principal.MemberUUID {
		return fmt.Errorf("[AnswerService] доступ запрещён")
	}

	if err := s.answerRepository.Delete(ctx, answerUUID); err != nil {
		return fmt.Errorf("[AnswerService] ошибка удаления ответа: %w", err)
	}

	if err := s.postRepository.IncrementAnswerCount(ctx, answer.PostUUID, -1); err != nil {
		log.Printf("не удалось обновить счётчик ответов поста %s: %v", answer.PostUUID, err)
	}
	if err := s.cache.DeletePost(ctx, answer.PostUUID); err != nil {
		log.Printf("не удалось инвалидировать кэш поста %s: %v", answer.PostUUID, err)
	}

	return nil
}
