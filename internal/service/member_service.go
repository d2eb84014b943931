package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode"

	"qna-web-server/internal/model"
	"qna-web-server/internal/ports"
	"qna-web-server/internal/repository"
	"qna-web-server/internal/security"

	"github.com/google/uuid"
)

type MemberService struct {
	memberRepository ports.MemberRepository
}

func NewMemberService(memberRepository ports.MemberRepository) *MemberService {
	return &MemberService{
		memberRepository: memberRepository,
	}
}

// Signup регистрирует нового участника с ролью BASIC.
func (s *MemberService) Signup(ctx context.Context, email, name, password string) (*model.Member, error) {
	email = strings.TrimSpace(email)
	if email == "" || !strings.Contains(email, "@") {
		return nil, fmt.Errorf("[MemberService] некорректный email")
	}
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("[MemberService] имя обязательно")
	}

	if err := validatePassword(password); err != nil {
		return nil, fmt.Errorf("[MemberService] %w", err)
	}

	_, err := s.memberRepository.FindByEmail(ctx, email)
	if err == nil {
		return nil, fmt.Errorf("[MemberService] email уже зарегистрирован")
	}
	if !errors.Is(err, repository.ErrMemberNotFound) {
		return nil, fmt.Errorf("[MemberService] ошибка проверки email: %w", err)
	}

	hash, err := security.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("[MemberService] не удалось создать хэш пароля: %w", err)
	}

	member := &model.Member{
		UUID:         uuid.New().String(),
		Email:        email,
		Name:         name,
		PasswordHash: hash,
		Role:         model.RoleBasic,
	}

	created, err := s.memberRepository.CreateMember(ctx, member)
	if err != nil {
		return nil, fmt.Errorf("[MemberService] ошибка создания участника: %w", err)
	}

	return created, nil
}

func validatePassword(password string) error {
	if len(password) < 8 {
		return fmt.Errorf("пароль должен содержать минимум 8 символов")
	}

	var upperCount, lowerCount, digitCount, specialCount int

	for _, c := range password {
		switch {
		case unicode.IsUpper(c):
			upperCount++
		case unicode.IsLower(c):
			lowerCount++
		case unicode.IsDigit(c):
			digitCount++
		case unicode.IsPunct(c) || unicode.IsSymbol(c):
			specialCount++
		}
	}

	if upperCount == 0 || lowerCount == 0 {
		return fmt.Errorf("пароль должен содержать буквы в разных регистрах")
	}
	if digitCount < 1 {
		return fmt.Errorf("пароль должен содержать хотя бы одну цифру")
	}
	if specialCount < 1 {
		return fmt.Errorf("пароль должен содержать хотя бы один специальный символ")
	}

	return nil
}

func (s *MemberService) GetMember(ctx context.Context, uuid string) (*model.Member, error) {
	member, err := s.memberRepository.FindByUUID(ctx, uuid)
	if err != nil {
		if errors.Is(err, repository.ErrMemberNotFound) {
			return nil, fmt.Errorf("[MemberService] участник не найден")
		}
		return nil, err
	}
	return member, nil
}

// UpdateRole меняет роль участника. Маршрут закрыт иерархией ролей,
// сервис дополнительно сверяет роль вызывающего.
func (s *MemberService) UpdateRole(ctx context.Context, uuid string, role model.Role) error {
	principal, err := security.PrincipalFromContext(ctx)
	if err != nil {
		return fmt.Errorf("[MemberService] пользователь не авторизован")
	}
	if !model.Implies(principal.Role, model.RoleAdmin) {
		return fmt.Errorf("[MemberService] доступ запрещён")
	}
	if !role.Valid() {
		return fmt.Errorf("[MemberService] неизвестная роль: %s", role)
	}

	if err := s.memberRepository.UpdateRole(ctx, uuid, role); err != nil {
		if errors.Is(err, repository.ErrMemberNotFound) {
			return fmt.Errorf("[MemberService] участник не найден")
		}
		return err
	}
	return nil
}

func (s *MemberService) ListMembers(ctx context.Context, cursor string, limit int) ([]*model.Member, string, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.memberRepository.ListMembers(ctx, cursor, limit)
}
