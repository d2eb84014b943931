package service_test

import (
	"context"
	"testing"

	"qna-web-server/internal/model"
	"qna-web-server/internal/repository"
	"qna-web-server/internal/security"
	"qna-web-server/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestMemberService_Signup(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name        string
		email       string
		memberName  string
		password    string
		setupMocks  func(r *MockMemberRepository)
		expectError string
	}{
		{
			name:        "invalid email",
			email:       "not-an-email",
			memberName:  "user1",
			password:    "StrongPass123!",
			expectError: "некорректный email",
		},
		{
			name:        "blank name",
			email:       "user1@mail.ru",
			memberName:  "  ",
			password:    "StrongPass123!",
			expectError: "имя обязательно",
		},
		{
			name:        "password too short",
			email:       "user1@mail.ru",
			memberName:  "user1",
			password:    "Sp1!",
			expectError: "минимум 8 символов",
		},
		{
			name:        "password single case",
			email:       "user1@mail.ru",
			memberName:  "user1",
			password:    "strongpass123!",
			expectError: "буквы в разных регистрах",
		},
		{
			name:        "password without digit",
			email:       "user1@mail.ru",
			memberName:  "user1",
			password:    "StrongPass!!!",
			expectError: "хотя бы одну цифру",
		},
		{
			name:        "password without special char",
			email:       "user1@mail.ru",
			memberName:  "user1",
			password:    "StrongPass123",
			expectError: "специальный символ",
		},
		{
			name:       "duplicate email",
			email:      "user1@mail.ru",
			memberName: "user1",
			password:   "StrongPass123!",
			setupMocks: func(r *MockMemberRepository) {
				r.On("FindByEmail", ctx, "user1@mail.ru").Return(&model.Member{UUID: "existing"}, nil)
			},
			expectError: "email уже зарегистрирован",
		},
		{
			name:       "success with basic role and hashed password",
			email:      "user1@mail.ru",
			memberName: "user1",
			password:   "StrongPass123!",
			setupMocks: func(r *MockMemberRepository) {
				r.On("FindByEmail", ctx, "user1@mail.ru").Return(nil, repository.ErrMemberNotFound)
				r.On("CreateMember", ctx, mock.Anything).Return(&model.Member{
					UUID:  "member-123",
					Email: "user1@mail.ru",
					Name:  "user1",
					Role:  model.RoleBasic,
				}, nil)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockMemberRepository)
			if tt.setupMocks != nil {
				tt.setupMocks(repo)
			}

			memberService := service.NewMemberService(repo)
			member, err := memberService.Signup(ctx, tt.email, tt.memberName, tt.password)

			if tt.expectError != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.expectError)
				assert.Nil(t, member)
			} else {
				require.NoError(t, err)
				assert.Equal(t, model.RoleBasic, member.Role)

				// В хранилище уходит bcrypt-хэш, не исходный пароль.
				stored := repo.Calls[len(repo.Calls)-1].Arguments.Get(1).(*model.Member)
				assert.NotEqual(t, tt.password, stored.PasswordHash)
				assert.True(t, security.CheckPassword(tt.password, stored.PasswordHash))
				assert.NotEmpty(t, stored.UUID)
			}

			repo.AssertExpectations(t)
		})
	}
}

func TestMemberService_UpdateRole(t *testing.T) {
	adminCtx := contextWithPrincipal(model.RoleAdmin, "admin-1")

	t.Run("basic member rejected", func(t *testing.T) {
		memberService := service.NewMemberService(new(MockMemberRepository))

		err := memberService.UpdateRole(contextWithPrincipal(model.RoleBasic, "basic-1"), "member-123", model.RoleBlack)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "доступ запрещён")
	})

	t.Run("unknown role rejected", func(t *testing.T) {
		memberService := service.NewMemberService(new(MockMemberRepository))

		err := memberService.UpdateRole(adminCtx, "member-123", model.Role("SUPERUSER"))

		require.Error(t, err)
		assert.Contains(t, err.Error(), "неизвестная роль")
	})

	t.Run("admin blacklists member", func(t *testing.T) {
		repo := new(MockMemberRepository)
		repo.On("UpdateRole", adminCtx, "member-123", model.RoleBlack).Return(nil)

		memberService := service.NewMemberService(repo)
		err := memberService.UpdateRole(adminCtx, "member-123", model.RoleBlack)

		require.NoError(t, err)
		repo.AssertExpectations(t)
	})
}
