package security

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"

	"qna-web-server/config"
	"qna-web-server/internal/autherr"
	"qna-web-server/internal/model"
	"qna-web-server/internal/repository"
)

type contextKey string

const principalContextKey contextKey = "principal"

// Principal — аутентифицированный участник на время одного запроса.
// Живёт только в контексте запроса и никогда не разделяется между запросами.
type Principal struct {
	MemberUUID string
	Email      string
	Role       model.Role
}

// MemberStore — операции хранилища участников, нужные фильтру аутентификации.
type MemberStore interface {
	FindByTokensPair(ctx context.Context, accessToken, refreshToken string) (*model.Member, error)
	UpdateTokensPair(ctx context.Context, memberUUID string, pair *model.TokensPair) error
}

// AuthenticationManager — фильтр аутентификации. На каждый запрос решает один
// из исходов: маршрут освобождён от проверки; access токен свеж и запрос
// пропускается дальше с заполненным принципалом; access истёк, но refresh
// валиден и хранимая пара совпадает — выпускается новая пара и запрос
// завершается ответом 200 с ней; иначе запрос завершается ошибкой из таблицы.
type AuthenticationManager struct {
	tokenService *TokenService
	memberStore  MemberStore
	exempt       []config.ExemptRule
}

func NewAuthenticationManager(tokenService *TokenService, memberStore MemberStore, exempt []config.ExemptRule) *AuthenticationManager {
	return &AuthenticationManager{
		tokenService: tokenService,
		memberStore:  memberStore,
		exempt:       exempt,
	}
}

// Middleware возвращает фильтр для chi.
func (manager *AuthenticationManager) Middleware() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			manager.handleAuthentication(writer, request, next)
		})
	}
}

func (manager *AuthenticationManager) handleAuthentication(writer http.ResponseWriter, request *http.Request, next http.Handler) {
	if manager.isExempt(request) {
		next.ServeHTTP(writer, request)
		return
	}

	pair, ok := ExtractTokensPair(request.Header)
	if !ok {
		autherr.Write(writer, autherr.EmptyToken)
		return
	}

	claims, err := manager.tokenService.DecodeAccessClaims(pair.AccessToken)
	if err != nil {
		autherr.WriteError(writer, err)
		return
	}

	// Быстрый путь: access токен ещё достаточно свеж, личность берётся
	// целиком из него, без похода в хранилище.
	if manager.tokenService.RemainingValidity(pair.AccessToken, ReissueThreshold) {
		principal := &Principal{
			MemberUUID: claims.MemberUUID,
			Email:      claims.Email,
			Role:       claims.Role,
		}
		next.ServeHTTP(writer, request.WithContext(WithPrincipal(request.Context(), principal)))
		return
	}

	if !manager.tokenService.VerifyRefreshToken(pair.RefreshToken) {
		autherr.Write(writer, autherr.AllTokenInvalid)
		return
	}

	// Пара должна совпасть с хранимой целиком: это отсекает повтор со
	// старой парой после того, как была выдана новая.
	member, err := manager.memberStore.FindByTokensPair(request.Context(), pair.AccessToken, pair.RefreshToken)
	if err != nil {
		if errors.Is(err, repository.ErrMemberNotFound) {
			autherr.Write(writer, autherr.UnmatchedMember)
			return
		}
		autherr.WriteError(writer, err)
		return
	}

	newPair, err := manager.tokenService.IssuePair(member)
	if err != nil {
		autherr.WriteError(writer, err)
		return
	}

	if err := manager.memberStore.UpdateTokensPair(request.Context(), member.UUID, newPair); err != nil {
		autherr.WriteError(writer, err)
		return
	}

	// Перевыпуск завершает запрос: клиент получает 200 с новой парой и
	// повторяет исходный запрос уже с ней.
	log.Printf("перевыпущена пара токенов для участника %s", member.UUID)
	WriteTokensPair(writer, newPair)
}

// isExempt сверяет путь с правилом по границе сегмента: /api/login освобождает
// /api/login и /api/login/..., но не /api/login-any.
func (manager *AuthenticationManager) isExempt(request *http.Request) bool {
	for _, rule := range manager.exempt {
		if rule.Method != "" && rule.Method != request.Method {
			continue
		}
		if request.URL.Path == rule.Prefix || strings.HasPrefix(request.URL.Path, rule.Prefix+"/") {
			return true
		}
	}
	return false
}

// WriteTokensPair пишет успешный ответ с парой токенов (логин или перевыпуск).
func WriteTokensPair(writer http.ResponseWriter, pair *model.TokensPair) {
	writer.Header().Set("Content-Type", "application/json; charset=utf-8")
	writer.WriteHeader(http.StatusOK)

	if err := json.NewEncoder(writer).Encode(pair); err != nil {
		log.Printf("ошибка кодирования ответа: %v", err)
	}
}

func WithPrincipal(ctx context.Context, principal *Principal) context.Context {
	return context.WithValue(ctx, principalContextKey, principal)
}

func PrincipalFromContext(ctx context.Context) (*Principal, error) {
	principal, ok := ctx.Value(principalContextKey).(*Principal)
	if !ok || principal == nil {
		return nil, fmt.Errorf("пользователь не авторизован")
	}
	return principal, nil
}

// RequireRole пропускает запрос, только если роль участника покрывает
// требуемую с учётом иерархии (ADMIN покрывает BASIC).
func RequireRole(required model.Role) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			principal, err := PrincipalFromContext(request.Context())
			if err != nil {
				autherr.Write(writer, autherr.Uncategorized)
				return
			}

			if !model.Implies(principal.Role, required) {
				autherr.Write(writer, autherr.Forbidden)
				return
			}

			next.ServeHTTP(writer, request)
		})
	}
}
