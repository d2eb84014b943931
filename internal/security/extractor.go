package security

import (
	"net/http"
	"strings"

	"qna-web-server/internal/model"
)

const (
	AccessTokenHeader  = "Authorization"
	RefreshTokenHeader = "RefreshToken"
	BearerPrefix       = "Bearer "
)

// ExtractTokensPair достаёт пару токенов из заголовков запроса.
// Access токен берётся из Authorization и только с префиксом "Bearer ",
// refresh — из RefreshToken как есть. Если нет хотя бы одного из токенов,
// пара считается отсутствующей; вид ошибки решает вызывающий фильтр.
func ExtractTokensPair(header http.Header) (*model.TokensPair, bool) {
	authorizationHeader := header.Get(AccessTokenHeader)
	if !strings.HasPrefix(authorizationHeader, BearerPrefix) {
		return nil, false
	}

	accessToken := strings.TrimPrefix(authorizationHeader, BearerPrefix)
	refreshToken := header.Get(RefreshTokenHeader)

	if accessToken == "" || refreshToken == "" {
		return nil, false
	}

	return &model.TokensPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, true
}
