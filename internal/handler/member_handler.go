package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"qna-web-server/internal/autherr"
	"qna-web-server/internal/model"
	"qna-web-server/internal/model/requestresponse"
	"qna-web-server/internal/ports"
	"qna-web-server/internal/security"

	"github.com/go-chi/chi/v5"
)

type MemberHandler struct {
	ports.MemberService
}

func NewMemberHandler(memberService ports.MemberService) *MemberHandler {
	return &MemberHandler{memberService}
}

// Signup godoc
// @Summary Регистрация нового участника
// @Description Создаёт участника с ролью BASIC. Маршрут открыт без токенов.
// @Tags Members
// @Accept json
// @Produce json
// @Param body body requestresponse.SignupRequest true "Тело запроса"
// @Success 200 {object} requestresponse.SignupResponse
// @Failure 400 {object} autherr.ErrorResponse
// @Failure 500 {object} autherr.ErrorResponse
// @Router /api/signup [post]
func (h *MemberHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req requestresponse.SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		autherr.Write(w, autherr.Validation)
		return
	}

	member, err := h.MemberService.Signup(r.Context(), req.Email, req.Name, req.Password)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	resp := requestresponse.SignupResponse{}
	resp.Response.UUID = member.UUID
	resp.Response.Email = member.Email

	writeJSON(w, http.StatusOK, resp)
}

// Me godoc
// @Summary Текущий участник
// @Description Возвращает личность из контекста запроса, заполненного фильтром аутентификации
// @Tags Members
// @Produce json
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Param RefreshToken header string true "Refresh токен"
// @Success 200 {object} requestresponse.CurrentMemberResponse
// @Failure 401 {object} autherr.ErrorResponse
// @Router /api/members/me [get]
func (h *MemberHandler) Me(w http.ResponseWriter, r *http.Request) {
	principal, err := security.PrincipalFromContext(r.Context())
	if err != nil {
		autherr.Write(w, autherr.Uncategorized)
		return
	}

	resp := requestresponse.CurrentMemberResponse{}
	resp.Response.UUID = principal.MemberUUID
	resp.Response.Email = principal.Email
	resp.Response.Role = string(principal.Role)

	writeJSON(w, http.StatusOK, resp)
}

// ListMembers godoc
// @Summary Список участников
// @Description Cursor-based пагинация. Только для администратора.
// @Tags Members
// @Produce json
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Param RefreshToken header string true "Refresh токен"
// @Param cursor query string false "Курсор предыдущей страницы"
// @Param limit query int false "Размер страницы"
// @Success 200 {object} requestresponse.MemberListResponse
// @Failure 403 {object} autherr.ErrorResponse
// @Router /api/members [get]
func (h *MemberHandler) ListMembers(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	cursor := r.URL.Query().Get("cursor")

	members, nextCursor, err := h.MemberService.ListMembers(r.Context(), cursor, limit)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, requestresponse.MemberListResponse{
		Response:   members,
		NextCursor: nextCursor,
	})
}

// UpdateRole godoc
// @Summary Изменение роли участника
// @Description Назначает роль ADMIN, BASIC или BLACK. Только для администратора.
// @Tags Members
// @Accept json
// @Produce json
// @Param uuid path string true "UUID участника"
// @Param body body requestresponse.RoleUpdateRequest true "Тело запроса"
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Param RefreshToken header string true "Refresh токен"
// @Success 200 {object} requestresponse.CurrentMemberResponse
// @Failure 400 {object} autherr.ErrorResponse
// @Failure 403 {object} autherr.ErrorResponse
// @Failure 404 {object} autherr.ErrorResponse
// @Router /api/members/{uuid}/role [put]
func (h *MemberHandler) UpdateRole(w http.ResponseWriter, r *http.Request) {
	targetUUID := chi.URLParam(r, "uuid")

	var req requestresponse.RoleUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		autherr.Write(w, autherr.Validation)
		return
	}

	if err := h.MemberService.UpdateRole(r.Context(), targetUUID, model.Role(req.Role)); err != nil {
		writeDomainError(w, err)
		return
	}

	resp := requestresponse.CurrentMemberResponse{}
	resp.Response.UUID = targetUUID
	resp.Response.Role = req.Role

	writeJSON(w, http.StatusOK, resp)
}
