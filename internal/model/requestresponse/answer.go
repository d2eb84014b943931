package requestresponse

import "qna-web-server/internal/model"

// AnswerCreateRequest : тело запроса на создание ответа
type AnswerCreateRequest struct {
	Content string `json:"content" example:"Надо включить path-style..."`
}

// AnswerUpdateRequest : тело запроса на изменение ответа
type AnswerUpdateRequest struct {
	Content string `json:"content"`
}

// AnswerResponse : один ответ
type AnswerResponse struct {
	Response *model.Answer `json:"response"`
}

// AnswerListResponse : все ответы поста
type AnswerListResponse struct {
	Response []*model.Answer `json:"response"`
}

// MemberListResponse : страница списка участников
type MemberListResponse struct {
	Response   []*model.Member `json:"response"`
	NextCursor string          `json:"next_cursor,omitempty"`
}
