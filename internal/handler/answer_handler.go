package handler

import (
	"encoding/json"
	"net/http"

	"qna-web-server/internal/autherr"
	"qna-web-server/internal/model/requestresponse"
	"qna-web-server/internal/ports"

	"github.com/go-chi/chi/v5"
)

type AnswerHandler struct {
	ports.AnswerService
}

func NewAnswerHandler(answerService ports.AnswerService) *AnswerHandler {
	return &AnswerHandler{answerService}
}

// CreateAnswer godoc
// @Summary Создание ответа на пост
// @Description BLACK не имеет права записи.
// @Tags Answers
// @Accept json
// @Produce json
// @Param uuid path string true "UUID поста"
// @Param body body requestresponse.AnswerCreateRequest true "Тело запроса"
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Param RefreshToken header string true "Refresh токен"
// @Success 200 {object} requestresponse.AnswerResponse
// @Failure 400 {object} autherr.ErrorResponse
// @Failure 403 {object} autherr.ErrorResponse
// @Failure 404 {object} autherr.ErrorResponse
// @Router /api/posts/{uuid}/answers [post]
func (h *AnswerHandler) CreateAnswer(w http.ResponseWriter, r *http.Request) {
	var req requestresponse.AnswerCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		autherr.Write(w, autherr.Validation)
		return
	}

	answer, err := h.AnswerService.CreateAnswer(r.Context(), chi.URLParam(r, "uuid"), req.Content)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, requestresponse.AnswerResponse{Response: answer})
}

// ListAnswers godoc
// @Summary Ответы поста
// @Tags Answers
// @Produce json
// @Param uuid path string true "UUID поста"
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Param RefreshToken header string true "Refresh токен"
// @Success 200 {object} requestresponse.AnswerListResponse
// @Router /api/posts/{uuid}/answers [get]
func (h *AnswerHandler) ListAnswers(w http.ResponseWriter, r *http.Request) {
	answers, err := h.AnswerService.ListAnswers(r.Context(), chi.URLParam(r, "uuid"))
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, requestresponse.AnswerListResponse{Response: answers})
}

// UpdateAnswer godoc
// @Summary Изменение ответа
// @Description Доступно только автору: сравнивается личность, не роль.
// @Tags Answers
// @Accept json
// @Produce json
// @Param uuid path string true "UUID ответа"
// @Param body body requestresponse.AnswerUpdateRequest true "Тело запроса"
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Param RefreshToken header string true "Refresh токен"
// @Success 204
// @Failure 403 {object} autherr.ErrorResponse
// @Failure 404 {object} autherr.ErrorResponse
// @Router /api/answers/{uuid} [put]
func (h *AnswerHandler) UpdateAnswer(w http.ResponseWriter, r *http.Request) {
	var req requestresponse.AnswerUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		autherr.Write(w, autherr.Validation)
		return
	}

	if err := h.AnswerService.UpdateAnswer(r.Context(), chi.URLParam(r, "uuid"), req.Content); err != nil {
		writeDomainError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// DeleteAnswer godoc
// @Summary Удаление ответа
// @Tags Answers
// @Produce json
// @Param uuid path string true "UUID ответа"
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Param RefreshToken header string true "Refresh токен"
// @Success 204
// @Failure 403 {object} autherr.ErrorResponse
// @Failure 404 {object} autherr.ErrorResponse
// @Router /api/answers/{uuid} [delete]
func (h *AnswerHandler) DeleteAnswer(w http.ResponseWriter, r *http.Request) {
	if err := h.AnswerService.DeleteAnswer(r.Context(), chi.URLParam(r, "uuid")); err != nil {
		writeDomainError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
