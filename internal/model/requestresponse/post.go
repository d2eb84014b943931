package requestresponse

import "qna-web-server/internal/model"

// PostCreateRequest : тело запроса на создание поста
type PostCreateRequest struct {
	Category string   `json:"category" example:"QUESTION"`
	Title    string   `json:"title" example:"Как настроить pre-signed URL?"`
	Content  string   `json:"content" example:"Подробности вопроса..."`
	Tags     []string `json:"tags" example:"s3,go"`
}

// PostUpdateRequest : тело запроса на изменение поста
type PostUpdateRequest struct {
	Title   string   `json:"title"`
	Content string   `json:"content"`
	Tags    []string `json:"tags"`
}

// PostResponse : один пост
type PostResponse struct {
	Response *model.Post `json:"response"`
}

// PostListResponse : страница результатов поиска
type PostListResponse struct {
	Response   []*model.Post `json:"response"`
	NextCursor string        `json:"next_cursor,omitempty"`
}

// AttachmentUploadRequest : запрос pre-signed URL для загрузки вложения
type AttachmentUploadRequest struct {
	Filename string `json:"filename" example:"diagram.png"`
}

// AttachmentURLResponse : pre-signed URL вложения
type AttachmentURLResponse struct {
	Response struct {
		Key string `json:"key" example:"posts/b6a1e1c4/diagram.png"`
		URL string `json:"url" example:"https://s3..."`
	} `json:"response"`
}
