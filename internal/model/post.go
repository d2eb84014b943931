package model

import (
	"time"

	"github.com/lib/pq"
)

// PostCategory — тип поста: вопрос или объявление.
type PostCategory string

const (
	PostQuestion PostCategory = "QUESTION"
	PostNotice   PostCategory = "NOTICE"
)

func (c PostCategory) Valid() bool {
	return c == PostQuestion || c == PostNotice
}

type Post struct {
	UUID        string         `db:"uuid" json:"uuid"`
	WriterUUID  string         `db:"writer_uuid" json:"writer_uuid"`
	WriterEmail string         `db:"writer_email" json:"writer_email"`
	Category    PostCategory   `db:"category" json:"category"`
	Title       string         `db:"title" json:"title"`
	Content     string         `db:"content" json:"content"`
	Tags        pq.StringArray `db:"tags" json:"tags"`
	AnswerCount int            `db:"answer_count" json:"answer_count"`
	CreatedAt   time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time      `db:"updated_at" json:"updated_at"`
}

// PostSearchParams — параметры поиска по постам.
// Cursor — значение created_at последнего элемента предыдущей страницы.
type PostSearchParams struct {
	Keyword string
	Tag     string
	Sort    string // created_at | answer_count
	Order   string // asc | desc
	Cursor  string
	Limit   int
}
