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

type PostService struct {
	postRepository ports.PostRepository
	cache          ports.PostCache
}

func NewPostService(postRepository ports.PostRepository, cache ports.PostCache) *PostService {
	return &PostService{
		postRepository: postRepository,
		cache:          cache,
	}
}

// CreatePost создаёт вопрос или объявление. BLACK не имеет права записи;
// объявления доступны только администратору.
func (s *PostService) CreatePost(ctx context.Context, category model.PostCategory, title, content string, tags []string) (*model.Post, error) {
	principal, err := security.PrincipalFromContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("[PostService] пользователь не авторизован")
	}

	if !principal.Role.CanWrite() {
		return nil, fmt.Errorf("[PostService] доступ запрещён")
	}
	if !category.Valid() {
		return nil, fmt.Errorf("[PostService] неизвестная категория: %s", category)
	}
	if category == model.PostNotice && !model.Implies(principal.Role, model.RoleAdmin) {
		return nil, fmt.Errorf("[PostService] доступ запрещён")
	}
	if strings.TrimSpace(title) == "" || strings.TrimSpace(content) == "" {
		return nil, fmt.Errorf("[PostService] заголовок и содержимое обязательны")
	}

	post := &model.Post{
		UUID:        uuid.New().String(),
		WriterUUID:  principal.MemberUUID,
		WriterEmail: principal.Email,
		Category:    category,
		Title:       title,
		Content:     content,
		Tags:        tags,
	}

	if err := s.postRepository.Create(ctx, post); err != nil {
		return nil, fmt.Errorf("[PostService] ошибка создания поста: %w", err)
	}

	return post, nil
}

// GetPost читает пост сквозь кэш. Промах кэша не фатален для чтения.
func (s *PostService) GetPost(ctx context.Context, postUUID string) (*model.Post, error) {
	cached, err := s.cache.GetPost(ctx, postUUID)
	if err == nil && cached != nil {
		return cached, nil
	}

	post, err := s.postRepository.FindByUUID(ctx, postUUID)
	if err != nil {
		if errors.Is(err, repository.ErrPostNotFound) {
			return nil, fmt.Errorf("[PostService] пост не найден")
		}
		return nil, err
	}

	if err := s.cache.SetPost(ctx, post); err != nil {
		log.Printf("не удалось закэшировать пост %s: %v", post.UUID, err)
	}

	return post, nil
}

// UpdatePost правит пост. Право на правку проверяется равенством личности
// автора, роль здесь не играет: иерархия действует только на маршрутах.
func (s *PostService) UpdatePost(ctx context.Context, postUUID, title, content string, tags []string) error {
	principal, err := security.PrincipalFromContext(ctx)
	if err != nil {
		return fmt.Errorf("[PostService] пользователь не авторизован")
	}
	if !principal.Role.CanWrite() {
		return fmt.Errorf("[PostService] доступ запрещён")
	}

	post, err := s.postRepository.FindByUUID(ctx, postUUID)
	if err != nil {
		if errors.Is(err, repository.ErrPostNotFound) {
			return fmt.Errorf("[PostService] пост не найден")
		}
		return err
	}

	if post.WriterUUID != principal.MemberUUID {
		return fmt.Errorf("[PostService] доступ запрещён")
	}

	post.Title = title
	post.Content = content
	post.Tags = tags

	if err := s.postRepository.Update(ctx, post); err != nil {
		return fmt.Errorf("[PostService] ошибка обновления поста: %w", err)
	}

	if err := s.cache.DeletePost(ctx, postUUID); err != nil {
		log.Printf("не удалось инвалидировать кэш поста %s: %v", postUUID, err)
	}

	return nil
}

func (s *PostService) DeletePost(ctx context.Context, postUUID string) error {
	principal, err := security.PrincipalFromContext(ctx)
	if err != nil {
		return fmt.Errorf("[PostService] пользователь не авторизован")
	}
	if !principal.Role.CanWrite() {
		return fmt.Errorf("[PostService] доступ запрещён")
	}

	post, err := s.postRepository.FindByUUID(ctx, postUUID)
	if err != nil {
		if errors.Is(err, repository.ErrPostNotFound) {
			return fmt.Errorf("[PostService] пост не найден")
		}
		return err
	}

	if post.WriterUUID != principal.MemberUUID {
		return fmt.Errorf("[PostService] доступ запрещён")
	}

	if err := s.postRepository.Delete(ctx, postUUID); err != nil {
		return fmt.Errorf("[PostService] ошибка удаления поста: %w", err)
	}

	if err := s.cache.DeletePost(ctx, postUUID); err != nil {
		log.Printf("не удалось инвалидировать кэш поста %s: %v", postUUID, err)
	}

	return nil
}

// SearchPosts — публичный поиск, аутентификация не требуется.
func (s *PostService) SearchPosts(ctx context.Context, params model.PostSearchParams) ([]*model.Post, string, error) {
	return s.postRepository.Search(ctx, params)
}
