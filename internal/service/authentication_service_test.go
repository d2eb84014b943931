package service_test

import (
	"context"
	"errors"
	"testing"

	"qna-web-server/internal/autherr"
	"qna-web-server/internal/model"
	"qna-web-server/internal/repository"
	"qna-web-server/internal/security"
	"qna-web-server/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// ===== MOCKS =====

// MockMemberRepository
type MockMemberRepository struct {
	mock.Mock
}

func (m *MockMemberRepository) CreateMember(ctx context.Context, member *model.Member) (*model.Member, error) {
	args := m.Called(ctx, member)
	if created, ok := args.Get(0).(*model.Member); ok {
		return created, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockMemberRepository) FindByEmail(ctx context.Context, email string) (*model.Member, error) {
	args := m.Called(ctx, email)
	if member, ok := args.Get(0).(*model.Member); ok {
		return member, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockMemberRepository) FindByUUID(ctx context.Context, uuid string) (*model.Member, error) {
	args := m.Called(ctx, uuid)
	if member, ok := args.Get(0).(*model.Member); ok {
		return member, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockMemberRepository) FindByTokensPair(ctx context.Context, accessToken, refreshToken string) (*model.Member, error) {
	args := m.Called(ctx, accessToken, refreshToken)
	if member, ok := args.Get(0).(*model.Member); ok {
		return member, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockMemberRepository) UpdateTokensPair(ctx context.Context, memberUUID string, pair *model.TokensPair) error {
	args := m.Called(ctx, memberUUID, pair)
	return args.Error(0)
}

func (m *MockMemberRepository) UpdateRole(ctx context.Context, uuid string, role model.Role) error {
	args := m.Called(ctx, uuid, role)
	return args.Error(0)
}

func (m *MockMemberRepository) ListMembers(ctx context.Context, cursor string, limit int) ([]*model.Member, string, error) {
	args := m.Called(ctx, cursor, limit)
	if members, ok := args.Get(0).([]*model.Member); ok {
		return members, args.String(1), args.Error(2)
	}
	return nil, "", args.Error(2)
}

// MockTokenIssuer
type MockTokenIssuer struct {
	mock.Mock
}

func (m *MockTokenIssuer) IssuePair(member *model.Member) (*model.TokensPair, error) {
	args := m.Called(member)
	if pair, ok := args.Get(0).(*model.TokensPair); ok {
		return pair, args.Error(1)
	}
	return nil, args.Error(1)
}

func TestAuthenticationService_Login(t *testing.T) {
	ctx := context.Background()

	hash, err := security.HashPassword("StrongPass123!")
	require.NoError(t, err)

	member := &model.Member{
		UUID:         "member-123",
		Email:        "user1@mail.ru",
		PasswordHash: hash,
		Role:         model.RoleBasic,
	}

	tests := []struct {
		name       string
		email      string
		password   string
		setupMocks func(r *MockMemberRepository, i *MockTokenIssuer)
		wantKind   autherr.Kind
	}{
		{
			name:     "member not found",
			email:    "ghost@mail.ru",
			password: "StrongPass123!",
			setupMocks: func(r *MockMemberRepository, i *MockTokenIssuer) {
				r.On("FindByEmail", ctx, "ghost@mail.ru").Return(nil, repository.ErrMemberNotFound)
			},
			wantKind: autherr.NotFoundMember,
		},
		{
			name:     "wrong password",
			email:    "user1@mail.ru",
			password: "WrongPass123!",
			setupMocks: func(r *MockMemberRepository, i *MockTokenIssuer) {
				r.On("FindByEmail", ctx, "user1@mail.ru").Return(member, nil)
			},
			wantKind: autherr.BadUsernamePassword,
		},
		{
			name:     "store failure is uncategorized",
			email:    "user1@mail.ru",
			password: "StrongPass123!",
			setupMocks: func(r *MockMemberRepository, i *MockTokenIssuer) {
				r.On("FindByEmail", ctx, "user1@mail.ru").Return(nil, errors.New("db down"))
			},
			wantKind: autherr.Uncategorized,
		},
		{
			name:     "success persists pair",
			email:    "user1@mail.ru",
			password: "StrongPass123!",
			setupMocks: func(r *MockMemberRepository, i *MockTokenIssuer) {
				pair := &model.TokensPair{AccessToken: "at", RefreshToken: "rt"}
				r.On("FindByEmail", ctx, "user1@mail.ru").Return(member, nil)
				i.On("IssuePair", member).Return(pair, nil)
				r.On("UpdateTokensPair", ctx, "member-123", pair).Return(nil)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockMemberRepository)
			issuer := new(MockTokenIssuer)
			if tt.setupMocks != nil {
				tt.setupMocks(repo, issuer)
			}

			authService := service.NewAuthenticationService(repo, issuer)
			pair, err := authService.Login(ctx, tt.email, tt.password)

			if tt.wantKind != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.wantKind, autherr.KindOf(err))
				assert.Nil(t, pair)
			} else {
				require.NoError(t, err)
				assert.Equal(t, "at", pair.AccessToken)
				assert.Equal(t, "rt", pair.RefreshToken)
			}

			repo.AssertExpectations(t)
			issuer.AssertExpectations(t)
		})
	}
}
