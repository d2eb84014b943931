package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"qna-web-server/config"
	"qna-web-server/internal/model"
	"qna-web-server/internal/util"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

var ErrPostNotFound = errors.New("пост не найден")

type PostRepository struct {
	*config.Database
}

func NewPostRepository(database *config.Database) *PostRepository {
	return &PostRepository{database}
}

// Create : сохраняет новый пост
func (r *PostRepository) Create(ctx context.Context, post *model.Post) error {
	query := `
		INSERT INTO posts (uuid, writer_uuid, writer_email, category, title, content, tags)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.DB.ExecContext(
		ctx,
		query,
		post.UUID,
		post.WriterUUID,
		post.WriterEmail,
		post.Category,
		post.Title,
		post.Content,
		pq.Array([]string(post.Tags)),
	)
	if err != nil {
		return util.LogError("[PostRepo] ошибка вставки данных в БД", err)
	}

	return nil
}

// FindByUUID : ищет пост по UUID
func (r *PostRepository) FindByUUID(ctx context.Context, uuid string) (*model.Post, error) {
	query := `SELECT uuid, writer_uuid, writer_email, category, title, content, tags, answer_count, created_at, updated_at
				FROM posts WHERE uuid = $1`

	var post model.Post
	err := sqlx.GetContext(ctx, r.DB, &post, query, uuid)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPostNotFound
		}
		return nil, util.LogError("[PostRepo] ошибка при выполнении запроса", err)
	}
	return &post, nil
}

// Update : обновляет заголовок, содержимое и теги поста
func (r *PostRepository) Update(ctx context.Context, post *model.Post) error {
	query := `
		UPDATE posts
		SET title = $2, content = $3, tags = $4, updated_at = NOW()
		WHERE uuid = $1
	`

	result, err := r.DB.ExecContext(ctx, query, post.UUID, post.Title, post.Content, pq.Array([]string(post.Tags)))
	if err != nil {
		return util.LogError("[PostRepo] не удалось обновить пост", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return util.LogError("[PostRepo] не удалось проверить, обновлён ли пост", err)
	}
	if rowsAffected == 0 {
		return ErrPostNotFound
	}

	return nil
}

// Delete : удаляет пост по UUID
func (r *PostRepository) Delete(ctx context.Context, uuid string) error {
	query := `DELETE FROM posts WHERE uuid = $1`

	result, err := r.DB.ExecContext(ctx, query, uuid)
	if err != nil {
		return util.LogError("[PostRepo] не удалось удалить пост", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return util.LogError("[PostRepo] не удалось проверить, удалён ли пост", err)
	}
	if rowsAffected == 0 {
		return ErrPostNotFound
	}

	return nil
}

// IncrementAnswerCount : увеличивает счётчик ответов поста
func (r *PostRepository) IncrementAnswerCount(ctx context.Context, uuid string, delta int) error {
	query := `UPDATE posts SET answer_count = answer_count + $2 WHERE uuid = $1`

	_, err := r.DB.ExecContext(ctx, query, uuid, delta)
	if err != nil {
		return util.LogError("[PostRepo] не удалось обновить счётчик ответов", err)
	}
	return nil
}

// Search : поиск постов по ключевому слову и тегу с сортировкой
// и cursor-based пагинацией. Курсор работает только при сортировке
// по created_at; при сортировке по answer_count отдаётся одна страница.
func (r *PostRepository) Search(ctx context.Context, params model.PostSearchParams) ([]*model.Post, string, error) {
	conditions := `WHERE ($1 = '' OR title ILIKE '%' || $1 || '%' OR content ILIKE '%' || $1 || '%')
					AND ($2 = '' OR $2 = ANY(tags))`

	order := "DESC"
	if params.Order == "asc" {
		order = "ASC"
	}

	limit := params.Limit
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	if params.Sort == "answer_count" {
		query := fmt.Sprintf(`
			SELECT uuid, writer_uuid, writer_email, category, title, content, tags, answer_count, created_at, updated_at
			FROM posts %s
			ORDER BY answer_count %s, created_at DESC
			LIMIT $3
		`, conditions, order)

		var posts []*model.Post
		if err := sqlx.SelectContext(ctx, r.DB, &posts, query, params.Keyword, params.Tag, limit); err != nil {
			return nil, "", util.LogError("[PostRepo] не удалось выполнить поиск", err)
		}
		return posts, "", nil
	}

	cursorCondition := "created_at < $3"
	cursorDefault := "9999-01-01T00:00:00Z"
	if order == "ASC" {
		cursorCondition = "created_at > $3"
		cursorDefault = "0001-01-01T00:00:00Z"
	}

	cursorValue := params.Cursor
	if cursorValue == "" {
		cursorValue = cursorDefault
	}
	cursorTime, err := time.Parse(time.RFC3339Nano, cursorValue)
	if err != nil {
		return nil, "", fmt.Errorf("invalid cursor format: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT uuid, writer_uuid, writer_email, category, title, content, tags, answer_count, created_at, updated_at
		FROM posts %s AND %s
		ORDER BY created_at %s
		LIMIT $4
	`, conditions, cursorCondition, order)

	var posts []*model.Post
	err = sqlx.SelectContext(ctx, r.DB, &posts, query, params.Keyword, params.Tag, cursorTime, limit+1) // +1 для проверки наличия следующей страницы
	if err != nil {
		return nil, "", util.LogError("[PostRepo] не удалось выполнить поиск", err)
	}

	var nextCursor string
	if len(posts) > limit {
		posts = posts[:limit]
		nextCursor = posts[len(posts)-1].CreatedAt.Format(time.RFC3339Nano)
	}

	return posts, nextCursor, nil
}
