package security_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"qna-web-server/config"
	"qna-web-server/internal/autherr"
	"qna-web-server/internal/model"
	"qna-web-server/internal/repository"
	"qna-web-server/internal/security"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// ===== MOCKS =====

type MockMemberStore struct {
	mock.Mock
}

func (m *MockMemberStore) FindByTokensPair(ctx context.Context, accessToken, refreshToken string) (*model.Member, error) {
	args := m.Called(ctx, accessToken, refreshToken)
	if member, ok := args.Get(0).(*model.Member); ok {
		return member, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockMemberStore) UpdateTokensPair(ctx context.Context, memberUUID string, pair *model.TokensPair) error {
	args := m.Called(ctx, memberUUID, pair)
	return args.Error(0)
}

var testExempt = []config.ExemptRule{
	{Prefix: "/api/login"},
	{Prefix: "/api/signup"},
	{Method: http.MethodGet, Prefix: "/public/posts"},
}

// downstream запоминает, дошёл ли запрос до маршрутизации и с каким принципалом.
type downstream struct {
	called    bool
	principal *security.Principal
}

func (d *downstream) handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		d.called = true
		d.principal, _ = security.PrincipalFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})
}

func decodeErrorResponse(t *testing.T, recorder *httptest.ResponseRecorder) autherr.ErrorResponse {
	t.Helper()
	var resp autherr.ErrorResponse
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&resp))
	return resp
}

func TestAuthenticationManager_Exemptions(t *testing.T) {
	tokenService := newTokenService(t, "1h", "720h")
	store := new(MockMemberStore)
	manager := security.NewAuthenticationManager(tokenService, store, testExempt)

	tests := []struct {
		name       string
		method     string
		path       string
		wantPass   bool
		wantStatus int
	}{
		{"signup without headers passes", http.MethodPost, "/api/signup", true, http.StatusOK},
		{"login without headers passes", http.MethodPost, "/api/login", true, http.StatusOK},
		{"login subpath passes", http.MethodPost, "/api/login/", true, http.StatusOK},
		{"public search GET passes", http.MethodGet, "/public/posts?keyword=go", true, http.StatusOK},
		{"public search POST is not exempt", http.MethodPost, "/public/posts", false, http.StatusUnauthorized},
		{"signup prefix does not bleed into neighbours", http.MethodPost, "/api/signupextra", false, http.StatusUnauthorized},
		{"login prefix does not bleed into neighbours", http.MethodGet, "/api/login-any", false, http.StatusUnauthorized},
		{"other path without headers fails", http.MethodGet, "/any-other-path", false, http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			down := &downstream{}
			recorder := httptest.NewRecorder()
			request := httptest.NewRequest(tt.method, tt.path, nil)

			manager.Middleware()(down.handler()).ServeHTTP(recorder, request)

			assert.Equal(t, tt.wantPass, down.called)
			assert.Equal(t, tt.wantStatus, recorder.Code)
			if !tt.wantPass {
				resp := decodeErrorResponse(t, recorder)
				assert.Equal(t, autherr.Code(autherr.EmptyToken), resp.ErrorCode)
			}
		})
	}
}

func TestAuthenticationManager_BadToken(t *testing.T) {
	tokenService := newTokenService(t, "1h", "720h")
	store := new(MockMemberStore)
	manager := security.NewAuthenticationManager(tokenService, store, testExempt)

	down := &downstream{}
	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodGet, "/api/posts/abc", nil)
	request.Header.Set("Authorization", "Bearer not-a-jwt")
	request.Header.Set("RefreshToken", "not-a-jwt-either")

	manager.Middleware()(down.handler()).ServeHTTP(recorder, request)

	assert.False(t, down.called)
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	resp := decodeErrorResponse(t, recorder)
	assert.Equal(t, autherr.Code(autherr.BadToken), resp.ErrorCode)
}

func TestAuthenticationManager_AccessValid(t *testing.T) {
	tokenService := newTokenService(t, "1h", "720h")
	store := new(MockMemberStore)
	manager := security.NewAuthenticationManager(tokenService, store, testExempt)

	pair, err := tokenService.IssuePair(testMember())
	require.NoError(t, err)

	down := &downstream{}
	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodGet, "/api/posts/abc", nil)
	request.Header.Set("Authorization", "Bearer "+pair.AccessToken)
	request.Header.Set("RefreshToken", pair.RefreshToken)

	manager.Middleware()(down.handler()).ServeHTTP(recorder, request)

	assert.True(t, down.called)
	require.NotNil(t, down.principal)
	assert.Equal(t, "member-123", down.principal.MemberUUID)
	assert.Equal(t, "user1@mail.ru", down.principal.Email)
	assert.Equal(t, model.RoleBasic, down.principal.Role)

	// Быстрый путь не трогает хранилище участников.
	store.AssertNotCalled(t, "FindByTokensPair", mock.Anything, mock.Anything, mock.Anything)
}

func TestAuthenticationManager_AllTokenInvalid(t *testing.T) {
	tokenService := newTokenService(t, "1h", "720h")
	expiredIssuer := newTokenService(t, "-1h", "-1h")
	store := new(MockMemberStore)
	manager := security.NewAuthenticationManager(tokenService, store, testExempt)

	pair, err := expiredIssuer.IssuePair(testMember())
	require.NoError(t, err)

	down := &downstream{}
	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodGet, "/api/posts/abc", nil)
	request.Header.Set("Authorization", "Bearer "+pair.AccessToken)
	request.Header.Set("RefreshToken", pair.RefreshToken)

	manager.Middleware()(down.handler()).ServeHTTP(recorder, request)

	assert.False(t, down.called)
	resp := decodeErrorResponse(t, recorder)
	assert.Equal(t, autherr.Code(autherr.AllTokenInvalid), resp.ErrorCode)
}

func TestAuthenticationManager_UnmatchedMember(t *testing.T) {
	tokenService := newTokenService(t, "1h", "720h")
	expiredAccessIssuer := newTokenService(t, "-1h", "720h")
	store := new(MockMemberStore)
	manager := security.NewAuthenticationManager(tokenService, store, testExempt)

	pair, err := expiredAccessIssuer.IssuePair(testMember())
	require.NoError(t, err)

	store.On("FindByTokensPair", mock.Anything, pair.AccessToken, pair.RefreshToken).
		Return(nil, repository.ErrMemberNotFound)

	down := &downstream{}
	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodGet, "/api/posts/abc", nil)
	request.Header.Set("Authorization", "Bearer "+pair.AccessToken)
	request.Header.Set("RefreshToken", pair.RefreshToken)

	manager.Middleware()(down.handler()).ServeHTTP(recorder, request)

	assert.False(t, down.called)
	resp := decodeErrorResponse(t, recorder)
	assert.Equal(t, autherr.Code(autherr.UnmatchedMember), resp.ErrorCode)
	store.AssertExpectations(t)
}

func TestAuthenticationManager_Reissue(t *testing.T) {
	tokenService := newTokenService(t, "1h", "720h")
	expiredAccessIssuer := newTokenService(t, "-1h", "720h")
	store := new(MockMemberStore)
	manager := security.NewAuthenticationManager(tokenService, store, testExempt)

	member := testMember()
	oldPair, err := expiredAccessIssuer.IssuePair(member)
	require.NoError(t, err)

	store.On("FindByTokensPair", mock.Anything, oldPair.AccessToken, oldPair.RefreshToken).
		Return(member, nil)
	store.On("UpdateTokensPair", mock.Anything, member.UUID, mock.Anything).Return(nil)

	down := &downstream{}
	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodGet, "/api/posts/abc", nil)
	request.Header.Set("Authorization", "Bearer "+oldPair.AccessToken)
	request.Header.Set("RefreshToken", oldPair.RefreshToken)

	manager.Middleware()(down.handler()).ServeHTTP(recorder, request)

	// Перевыпуск завершает запрос сам: вниз по цепочке никто не ходит.
	assert.False(t, down.called)
	assert.Equal(t, http.StatusOK, recorder.Code)

	var newPair model.TokensPair
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&newPair))
	assert.NotEmpty(t, newPair.AccessToken)
	assert.NotEmpty(t, newPair.RefreshToken)
	assert.NotEqual(t, oldPair.AccessToken, newPair.AccessToken)
	assert.NotEqual(t, oldPair.RefreshToken, newPair.RefreshToken)

	// Новая пара валидна и несёт ту же личность.
	claims, err := tokenService.DecodeAccessClaims(newPair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, member.Email, claims.Email)
	assert.True(t, tokenService.RemainingValidity(newPair.AccessToken, security.ReissueThreshold))

	store.AssertExpectations(t)
}
