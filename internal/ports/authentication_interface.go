package ports

import (
	"context"

	"qna-web-server/internal/model"
)

type AuthenticationService interface {
	Login(ctx context.Context, email, password string) (*model.TokensPair, error)
}

// TokenIssuer выпускает пару токенов для участника.
type TokenIssuer interface {
	IssuePair(member *model.Member) (*model.TokensPair, error)
}
