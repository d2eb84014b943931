package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"qna-web-server/internal/autherr"
	"qna-web-server/internal/model/requestresponse"
	"qna-web-server/internal/ports"
	"qna-web-server/internal/security"
)

type AuthenticationHandler struct {
	ports.AuthenticationService
}

func NewAuthenticationHandler(authenticationService ports.AuthenticationService) *AuthenticationHandler {
	return &AuthenticationHandler{authenticationService}
}

// Login godoc
// @Summary Аутентификация участника
// @Description Получение пары access и refresh токенов по email и паролю
// @Tags Authentication
// @Accept json
// @Produce json
// @Param body body requestresponse.LoginRequest true "Тело запроса" example({"username": "user1@mail.ru", "password": "P@ssw0rd123"})
// @Success 200 {object} model.TokensPair "Успешная аутентификация"
// @Failure 401 {object} autherr.ErrorResponse "Неверные учётные данные" example({"errorCode": 1003, "message": "неверный логин или пароль"})
// @Failure 405 {object} autherr.ErrorResponse "Метод не POST" example({"errorCode": 1001, "message": "логин доступен только методом POST"})
// @Failure 415 {object} autherr.ErrorResponse "Тело не application/json" example({"errorCode": 1002, "message": "тело запроса должно быть application/json"})
// @Router /api/login [post]
func (h *AuthenticationHandler) Login(w http.ResponseWriter, r *http.Request) {
	// Порядок проверок фиксирован: сначала метод и content-type, затем
	// тело. Любое нарушение гасится здесь же, до похода за участником.
	if r.Method != http.MethodPost {
		autherr.Write(w, autherr.NotAllowedLoginMethod)
		return
	}

	contentType := r.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "application/json") {
		autherr.Write(w, autherr.UnsupportedLoginMediaType)
		return
	}

	var req requestresponse.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		autherr.Write(w, autherr.BadUsernamePassword)
		return
	}

	if strings.TrimSpace(req.Username) == "" || strings.TrimSpace(req.Password) == "" {
		autherr.Write(w, autherr.BadUsernamePassword)
		return
	}

	pair, err := h.AuthenticationService.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		autherr.WriteError(w, err)
		return
	}

	security.WriteTokensPair(w, pair)
}
