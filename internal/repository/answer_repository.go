package repository

import (
	"context"
	"database/sql"
	"errors"

	"qna-web-server/config"
	"qna-web-server/internal/model"
	"qna-web-server/internal/util"

	"github.com/jmoiron/sqlx"
)

var ErrAnswerNotFound = errors.New("ответ не найден")

type AnswerRepository struct {
	*config.Database
}

func NewAnswerRepository(database *config.Database) *AnswerRepository {
	return &AnswerRepository{database}
}

// Create : сохраняет новый ответ
func (r *AnswerRepository) Create(ctx context.Context, answer *model.Answer) error {
	query := `
		INSERT INTO answers (uuid, post_uuid, writer_uuid, writer_email, content)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.DB.ExecContext(ctx, query, answer.UUID, answer.PostUUID, answer.WriterUUID, answer.WriterEmail, answer.Content)
	if err != nil {
		return util.LogError("[AnswerRepo] ошибка вставки данных в БД", err)
	}

	return nil
}

// FindByUUID : ищет ответ по UUID
func (r *AnswerRepository) FindByUUID(ctx context.Context, uuid string) (*model.Answer, error) {
	query := `SELECT uuid, post_uuid, writer_uuid, writer_email, content, created_at, updated_at FROM answers WHERE uuid = $1`

	var answer model.Answer
	err := sqlx.GetContext(ctx, r.DB, &answer, query, uuid)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrAnswerNotFound
		}
		return nil, util.LogError("[AnswerRepo] ошибка при выполнении запроса", err)
	}
	return &answer, nil
}

// ListByPost : все ответы поста в порядке создания
func (r *AnswerRepository) ListByPost(ctx context.Context, postUUID string) ([]*model.Answer, error) {
	query := `SELECT uuid, post_uuid, writer_uuid, writer_email, content, created_at, updated_at
				FROM answers WHERE post_uuid = $1 ORDER BY created_at ASC`

	var answers []*model.Answer
	if err := sqlx.SelectContext(ctx, r.DB, &answers, query, postUUID); err != nil {
		return nil, util.LogError("[AnswerRepo] не удалось получить список ответов", err)
	}
	return answers, nil
}

// Update : обновляет содержимое ответа
func (r *AnswerRepository) Update(ctx context.Context, answer *model.Answer) error {
	query := `UPDATE answers SET content = $2, updated_at = NOW() WHERE uuid = $1`

	result, err := r.DB.ExecContext(ctx, query, answer.UUID, answer.Content)
	if err != nil {
		return util.LogError("[AnswerRepo] не удалось обновить ответ", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return util.LogError("[AnswerRepo] не удалось проверить, обновлён ли ответ", err)
	}
	if rowsAffected == 0 {
		return ErrAnswerNotFound
	}

	return nil
}

// Delete : удаляет ответ по UUID
func (r *AnswerRepository) Delete(ctx context.Context, uuid string) error {
	query := `DELETE FROM answers WHERE uuid = $1`

	result, err := r.DB.ExecContext(ctx, query, uuid)
	if err != nil {
		return util.LogError("[AnswerRepo] не удалось удалить ответ", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return util.LogError("[AnswerRepo] не удалось проверить, удалён ли ответ", err)
	}
	if rowsAffected == 0 {
		return ErrAnswerNotFound
	}

	return nil
}
