package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"path"
	"strconv"
	"time"

	"qna-web-server/internal/autherr"
	"qna-web-server/internal/model"
	"qna-web-server/internal/model/requestresponse"
	"qna-web-server/internal/ports"

	"github.com/go-chi/chi/v5"
)

type PostHandler struct {
	ports.PostService
	storage    ports.ObjectStorage
	presignTTL time.Duration
}

func NewPostHandler(postService ports.PostService, storage ports.ObjectStorage, presignTTL time.Duration) *PostHandler {
	return &PostHandler{
		PostService: postService,
		storage:     storage,
		presignTTL:  presignTTL,
	}
}

// CreatePost godoc
// @Summary Создание поста
// @Description Вопрос может создать любой участник с правом записи, объявление — только администратор. BLACK не имеет права записи.
// @Tags Posts
// @Accept json
// @Produce json
// @Param body body requestresponse.PostCreateRequest true "Тело запроса"
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Param RefreshToken header string true "Refresh токен"
// @Success 200 {object} requestresponse.PostResponse
// @Failure 400 {object} autherr.ErrorResponse
// @Failure 403 {object} autherr.ErrorResponse
// @Router /api/posts [post]
func (h *PostHandler) CreatePost(w http.ResponseWriter, r *http.Request) {
	var req requestresponse.PostCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		autherr.Write(w, autherr.Validation)
		return
	}

	post, err := h.PostService.CreatePost(r.Context(), model.PostCategory(req.Category), req.Title, req.Content, req.Tags)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, requestresponse.PostResponse{Response: post})
}

// GetPost godoc
// @Summary Получение поста
// @Tags Posts
// @Produce json
// @Param uuid path string true "UUID поста"
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Param RefreshToken header string true "Refresh токен"
// @Success 200 {object} requestresponse.PostResponse
// @Failure 404 {object} autherr.ErrorResponse
// @Router /api/posts/{uuid} [get]
func (h *PostHandler) GetPost(w http.ResponseWriter, r *http.Request) {
	post, err := h.PostService.GetPost(r.Context(), chi.URLParam(r, "uuid"))
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, requestresponse.PostResponse{Response: post})
}

// UpdatePost godoc
// @Summary Изменение поста
// @Description Доступно только автору: сравнивается личность, не роль.
// @Tags Posts
// @Accept json
// @Produce json
// @Param uuid path string true "UUID поста"
// @Param body body requestresponse.PostUpdateRequest true "Тело запроса"
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Param RefreshToken header string true "Refresh токен"
// @Success 200 {object} requestresponse.PostResponse
// @Failure 403 {object} autherr.ErrorResponse
// @Failure 404 {object} autherr.ErrorResponse
// @Router /api/posts/{uuid} [put]
func (h *PostHandler) UpdatePost(w http.ResponseWriter, r *http.Request) {
	postUUID := chi.URLParam(r, "uuid")

	var req requestresponse.PostUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		autherr.Write(w, autherr.Validation)
		return
	}

	if err := h.PostService.UpdatePost(r.Context(), postUUID, req.Title, req.Content, req.Tags); err != nil {
		writeDomainError(w, err)
		return
	}

	post, err := h.PostService.GetPost(r.Context(), postUUID)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, requestresponse.PostResponse{Response: post})
}

// DeletePost godoc
// @Summary Удаление поста
// @Tags Posts
// @Produce json
// @Param uuid path string true "UUID поста"
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Param RefreshToken header string true "Refresh токен"
// @Success 204
// @Failure 403 {object} autherr.ErrorResponse
// @Failure 404 {object} autherr.ErrorResponse
// @Router /api/posts/{uuid} [delete]
func (h *PostHandler) DeletePost(w http.ResponseWriter, r *http.Request) {
	if err := h.PostService.DeletePost(r.Context(), chi.URLParam(r, "uuid")); err != nil {
		writeDomainError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// SearchPosts godoc
// @Summary Публичный поиск постов
// @Description Поиск по ключевому слову и тегу, сортировка по created_at или answer_count, cursor-based пагинация. Токены не требуются.
// @Tags Posts
// @Produce json
// @Param keyword query string false "Ключевое слово"
// @Param tag query string false "Тег"
// @Param sort query string false "created_at | answer_count"
// @Param order query string false "asc | desc"
// @Param cursor query string false "Курсор предыдущей страницы"
// @Param limit query int false "Размер страницы"
// @Success 200 {object} requestresponse.PostListResponse
// @Router /public/posts [get]
func (h *PostHandler) SearchPosts(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	limit, _ := strconv.Atoi(query.Get("limit"))

	params := model.PostSearchParams{
		Keyword: query.Get("keyword"),
		Tag:     query.Get("tag"),
		Sort:    query.Get("sort"),
		Order:   query.Get("order"),
		Cursor:  query.Get("cursor"),
		Limit:   limit,
	}

	posts, nextCursor, err := h.PostService.SearchPosts(r.Context(), params)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, requestresponse.PostListResponse{
		Response:   posts,
		NextCursor: nextCursor,
	})
}

// PresignUpload godoc
// @Summary Pre-signed URL для загрузки вложения
// @Description Клиент загружает файл в хранилище напрямую по выданному URL.
// @Tags Attachments
// @Accept json
// @Produce json
// @Param uuid path string true "UUID поста"
// @Param body body requestresponse.AttachmentUploadRequest true "Тело запроса"
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Param RefreshToken header string true "Refresh токен"
// @Success 200 {object} requestresponse.AttachmentURLResponse
// @Failure 400 {object} autherr.ErrorResponse
// @Failure 404 {object} autherr.ErrorResponse
// @Router /api/posts/{uuid}/attachments [post]
func (h *PostHandler) PresignUpload(w http.ResponseWriter, r *http.Request) {
	postUUID := chi.URLParam(r, "uuid")

	var req requestresponse.AttachmentUploadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Filename == "" {
		autherr.Write(w, autherr.Validation)
		return
	}

	// Пост должен существовать, ключи неймспейсятся его UUID.
	if _, err := h.PostService.GetPost(r.Context(), postUUID); err != nil {
		writeDomainError(w, err)
		return
	}

	key := fmt.Sprintf("posts/%s/%s", postUUID, path.Base(req.Filename))
	url, err := h.storage.GeneratePresignedPutURL(r.Context(), key, h.presignTTL)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	resp := requestresponse.AttachmentURLResponse{}
	resp.Response.Key = key
	resp.Response.URL = url

	writeJSON(w, http.StatusOK, resp)
}

// PresignDownload godoc
// @Summary Pre-signed URL для скачивания вложения
// @Tags Attachments
// @Produce json
// @Param uuid path string true "UUID поста"
// @Param key query string true "Ключ вложения"
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Param RefreshToken header string true "Refresh токен"
// @Success 200 {object} requestresponse.AttachmentURLResponse
// @Failure 400 {object} autherr.ErrorResponse
// @Router /api/posts/{uuid}/attachments [get]
func (h *PostHandler) PresignDownload(w http.ResponseWriter, r *http.Request) {
	postUUID := chi.URLParam(r, "uuid")
	key := r.URL.Query().Get("key")
	if key == "" {
		autherr.Write(w, autherr.Validation)
		return
	}

	// Ключ обязан лежать в неймспейсе этого поста.
	expectedPrefix := fmt.Sprintf("posts/%s/", postUUID)
	if len(key) <= len(expectedPrefix) || key[:len(expectedPrefix)] != expectedPrefix {
		autherr.Write(w, autherr.Validation)
		return
	}

	url, err := h.storage.GeneratePresignedGetURL(r.Context(), key, h.presignTTL)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	resp := requestresponse.AttachmentURLResponse{}
	resp.Response.Key = key
	resp.Response.URL = url

	writeJSON(w, http.StatusOK, resp)
}
