package security

import (
	"errors"
	"fmt"
	"time"

	"qna-web-server/config"
	"qna-web-server/internal/autherr"
	"qna-web-server/internal/model"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Тип токена определяется полем subject внутри подписанной полезной нагрузки,
// а не контекстом использования: access токен нельзя подсунуть туда, где
// ожидается refresh, и наоборот.
const (
	subjectAccess  = "access"
	subjectRefresh = "refresh"
)

// ReissueThreshold — запас валидности access токена. Если до истечения
// остаётся меньше, фильтр запускает перевыпуск пары.
const ReissueThreshold = 5 * time.Minute

type Claims struct {
	MemberUUID string     `json:"member_uuid,omitempty"`
	Email      string     `json:"email,omitempty"`
	Role       model.Role `json:"role,omitempty"`
	jwt.RegisteredClaims
}

type TokenService struct {
	secretKey  []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func NewTokenService(cfg *config.JWTConfig) (*TokenService, error) {
	accessTTL, err := time.ParseDuration(cfg.AccessTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("ошибка парсинга access_token_ttl: %w", err)
	}

	refreshTTL, err := time.ParseDuration(cfg.RefreshTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("ошибка парсинга refresh_token_ttl: %w", err)
	}

	return &TokenService{
		secretKey:  []byte(cfg.SecretKey),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}, nil
}

// IssuePair выпускает новую пару токенов для участника. Access токен несёт
// личность (uuid, email, роль), refresh — только subject и срок жизни.
func (service *TokenService) IssuePair(member *model.Member) (*model.TokensPair, error) {
	accessToken, err := service.issue(subjectAccess, &Claims{
		MemberUUID: member.UUID,
		Email:      member.Email,
		Role:       member.Role,
	}, service.accessTTL)
	if err != nil {
		return nil, fmt.Errorf("ошибка подписи access токена: %w", err)
	}

	refreshToken, err := service.issue(subjectRefresh, &Claims{}, service.refreshTTL)
	if err != nil {
		return nil, fmt.Errorf("ошибка подписи refresh токена: %w", err)
	}

	return &model.TokensPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// issue подписывает токен. Клейм jti делает каждый выпуск уникальным даже
// в пределах одной секунды: перевыпущенная пара никогда не совпадает со старой.
func (service *TokenService) issue(subject string, claims *Claims, ttl time.Duration) (string, error) {
	now := time.Now()
	claims.RegisteredClaims = jwt.RegisteredClaims{
		Subject:   subject,
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		IssuedAt:  jwt.NewNumericDate(now),
		Issuer:    "qna-web-server",
		ID:        uuid.New().String(),
	}

	jwtToken := jwt.NewWithClaims(jwt.SigningMethodHS512, claims)
	return jwtToken.SignedString(service.secretKey)
}

func (service *TokenService) parse(jwtTokenStr string) (*Claims, error) {
	claims := &Claims{}

	_, err := jwt.ParseWithClaims(jwtTokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if token.Header["alg"] != jwt.SigningMethodHS512.Alg() {
			return nil, fmt.Errorf("неверный способ подписи токена: %v", token.Header["alg"])
		}
		return service.secretKey, nil
	})

	return claims, err
}

// VerifyRefreshToken проверяет подпись, срок жизни и subject refresh токена.
// Любой дефект — просто false, не ошибка.
func (service *TokenService) VerifyRefreshToken(jwtTokenStr string) bool {
	claims, err := service.parse(jwtTokenStr)
	if err != nil {
		return false
	}
	return claims.Subject == subjectRefresh
}

// DecodeAccessClaims возвращает полезную нагрузку access токена, в том числе
// просроченного: просрочка решается отдельно, через RemainingValidity.
// Структурно битый, неподписанный или чужой по subject токен — BadToken.
func (service *TokenService) DecodeAccessClaims(jwtTokenStr string) (*Claims, error) {
	claims, err := service.parse(jwtTokenStr)
	if err != nil && !errors.Is(err, jwt.ErrTokenExpired) {
		return nil, autherr.Wrap(autherr.BadToken, err)
	}

	if claims.Subject != subjectAccess {
		return nil, autherr.New(autherr.BadToken)
	}

	return claims, nil
}

// RemainingValidity : токен валиден и до истечения остаётся больше threshold.
func (service *TokenService) RemainingValidity(jwtTokenStr string, threshold time.Duration) bool {
	claims, err := service.parse(jwtTokenStr)
	if err != nil {
		return false
	}
	if claims.ExpiresAt == nil {
		return false
	}
	return time.Until(claims.ExpiresAt.Time) > threshold
}
