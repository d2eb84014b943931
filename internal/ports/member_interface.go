package ports

import (
	"context"

	"qna-web-server/internal/model"
)

type MemberRepository interface {
	CreateMember(ctx context.Context, member *model.Member) (*model.Member, error)
	FindByEmail(ctx context.Context, email string) (*model.Member, error)
	FindByUUID(ctx context.Context, uuid string) (*model.Member, error)
	FindByTokensPair(ctx context.Context, accessToken, refreshToken string) (*model.Member, error)
	UpdateTokensPair(ctx context.Context, memberUUID string, pair *model.TokensPair) error
	UpdateRole(ctx context.Context, uuid string, role model.Role) error
	ListMembers(ctx context.Context, cursor string, limit int) ([]*model.Member, string, error)
}

type MemberService interface {
	Signup(ctx context.Context, email, name, password string) (*model.Member, error)
	GetMember(ctx context.Context, uuid string) (*model.Member, error)
	UpdateRole(ctx context.Context, uuid string, role model.Role) error
	ListMembers(ctx context.Context, cursor string, limit int) ([]*model.Member, string, error)
}
