package service

import (
	"context"
	"errors"

	"qna-web-server/internal/autherr"
	"qna-web-server/internal/model"
	"qna-web-server/internal/ports"
	"qna-web-server/internal/repository"
	"qna-web-server/internal/security"
	"qna-web-server/internal/util"
)

// AuthenticationService — провайдер аутентификации по учётным данным.
// Ожидаемые исходы (нет участника, неверный пароль) возвращаются как виды
// ошибок из таблицы, а не как необработанные исключения.
type AuthenticationService struct {
	memberRepository ports.MemberRepository
	tokenService     ports.TokenIssuer
}

func NewAuthenticationService(memberRepository ports.MemberRepository, tokenService ports.TokenIssuer) *AuthenticationService {
	return &AuthenticationService{
		memberRepository: memberRepository,
		tokenService:     tokenService,
	}
}

// Login проверяет учётные данные и выпускает новую пару токенов.
// Пара сохраняется за участником и обесценивает любую выданную ранее:
// одновременно действует не больше одной сессии.
func (s *AuthenticationService) Login(ctx context.Context, email, password string) (*model.TokensPair, error) {
	member, err := s.memberRepository.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrMemberNotFound) {
			return nil, autherr.Wrap(autherr.NotFoundMember, err)
		}
		return nil, autherr.Wrap(autherr.Uncategorized, err)
	}

	if !security.CheckPassword(password, member.PasswordHash) {
		return nil, autherr.New(autherr.BadUsernamePassword)
	}

	pair, err := s.tokenService.IssuePair(member)
	if err != nil {
		return nil, autherr.Wrap(autherr.Uncategorized, util.LogError("ошибка генерации токенов", err))
	}

	if err := s.memberRepository.UpdateTokensPair(ctx, member.UUID, pair); err != nil {
		return nil, autherr.Wrap(autherr.Uncategorized, util.LogError("не удалось сохранить пару токенов", err))
	}

	return pair, nil
}
