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
)

// ErrMemberNotFound — ожидаемый исход поиска, а не исключение.
// Вызывающий код переводит его в нужный вид ошибки сам.
var ErrMemberNotFound = errors.New("участник не найден")

type MemberRepository struct {
	*config.Database
}

func NewMemberRepository(database *config.Database) *MemberRepository {
	return &MemberRepository{database}
}

// CreateMember : сохраняет нового участника
func (r *MemberRepository) CreateMember(ctx context.Context, member *model.Member) (*model.Member, error) {
	query := `
	INSERT INTO members (uuid, email, name, password_hash, role)
	VALUES ($1, $2, $3, $4, $5)
	RETURNING uuid, email, name, role, created_at
	`

	createdMember := &model.Member{}
	err := r.DB.QueryRowxContext(ctx, query, member.UUID, member.Email, member.Name, member.PasswordHash, member.Role).
		Scan(&createdMember.UUID, &createdMember.Email, &createdMember.Name, &createdMember.Role, &createdMember.CreatedAt)

	if err != nil {
		return nil, util.LogError("[MemberRepo] ошибка вставки данных в БД", err)
	}

	return createdMember, nil
}

// FindByEmail : ищет участника по email
func (r *MemberRepository) FindByEmail(ctx context.Context, email string) (*model.Member, error) {
	query := `SELECT uuid, email, name, password_hash, role, access_token, refresh_token, created_at FROM members WHERE email = $1`

	var member model.Member
	err := sqlx.GetContext(ctx, r.DB, &member, query, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMemberNotFound
		}
		return nil, util.LogError("[MemberRepo] не удалось найти участника по email", err)
	}
	return &member, nil
}

// FindByUUID : ищет участника по UUID
func (r *MemberRepository) FindByUUID(ctx context.Context, uuid string) (*model.Member, error) {
	query := `SELECT uuid, email, name, password_hash, role, access_token, refresh_token, created_at FROM members WHERE uuid = $1`

	var member model.Member
	err := sqlx.GetContext(ctx, r.DB, &member, query, uuid)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMemberNotFound
		}
		return nil, util.LogError("[MemberRepo] не удалось найти участника в БД", err)
	}
	return &member, nil
}

// FindByTokensPair : ищет участника, за которым закреплена ровно эта пара токенов
func (r *MemberRepository) FindByTokensPair(ctx context.Context, accessToken, refreshToken string) (*model.Member, error) {
	query := `SELECT uuid, email, name, password_hash, role, access_token, refresh_token, created_at FROM members
				WHERE access_token = $1 AND refresh_token = $2`

	var member model.Member
	err := sqlx.GetContext(ctx, r.DB, &member, query, accessToken, refreshToken)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMemberNotFound
		}
		return nil, util.LogError("[MemberRepo] ошибка поиска по паре токенов", err)
	}
	return &member, nil
}

// UpdateTokensPair : безусловно перезаписывает пару токенов участника.
// У участника одновременно активна одна пара, новая запись обесценивает
// любую выданную ранее. Версионирования нет, при гонке двух перевыпусков
// выигрывает последняя запись.
func (r *MemberRepository) UpdateTokensPair(ctx context.Context, memberUUID string, pair *model.TokensPair) error {
	query := `UPDATE members SET access_token = $2, refresh_token = $3 WHERE uuid = $1`

	result, err := r.DB.ExecContext(ctx, query, memberUUID, pair.AccessToken, pair.RefreshToken)
	if err != nil {
		return util.LogError("[MemberRepo] не удалось обновить пару токенов", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return util.LogError("[MemberRepo] не удалось проверить, обновлена ли пара", err)
	}
	if rowsAffected == 0 {
		return ErrMemberNotFound
	}

	return nil
}

// UpdateRole : меняет роль участника
func (r *MemberRepository) UpdateRole(ctx context.Context, uuid string, role model.Role) error {
	query := `UPDATE members SET role = $2 WHERE uuid = $1`

	result, err := r.DB.ExecContext(ctx, query, uuid, role)
	if err != nil {
		return util.LogError("[MemberRepo] не удалось обновить роль", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return util.LogError("[MemberRepo] не удалось проверить, обновлена ли роль", err)
	}
	if rowsAffected == 0 {
		return ErrMemberNotFound
	}

	return nil
}

// ListMembers : вывод списка участников с cursor-based пагинацией
func (r *MemberRepository) ListMembers(ctx context.Context, cursor string, limit int) ([]*model.Member, string, error) {
	query := `
        SELECT uuid, email, name, password_hash, role, access_token, refresh_token, created_at
        FROM members
        WHERE created_at > $1
        ORDER BY created_at ASC, uuid ASC
        LIMIT $2
    `

	var cursorTime time.Time
	var err error

	if cursor != "" {
		cursorTime, err = time.Parse(time.RFC3339Nano, cursor)
		if err != nil {
			return nil, "", fmt.Errorf("invalid cursor format: %w", err)
		}
	}

	var members []*model.Member
	err = sqlx.SelectContext(ctx, r.DB, &members, query, cursorTime, limit+1) // +1 для проверки наличия следующей страницы
	if err != nil {
		return nil, "", util.LogError("[MemberRepo] не удалось получить список участников", err)
	}

	var nextCursor string
	if len(members) > limit {
		members = members[:limit]
		nextCursor = members[len(members)-1].CreatedAt.Format(time.RFC3339Nano)
	}

	return members, nextCursor, nil
}
