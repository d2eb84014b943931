package autherr

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
)

// Kind — вид ошибки аутентификации или общей ошибки запроса.
// Каждому виду соответствует фиксированная запись (код, HTTP-статус, сообщение).
type Kind int

const (
	NotAllowedLoginMethod Kind = iota + 1
	UnsupportedLoginMediaType
	BadUsernamePassword
	NotFoundMember
	EmptyToken
	BadToken
	AllTokenInvalid
	UnmatchedMember
	Uncategorized
	Validation
	Forbidden
	NotFound
	Internal
)

type entry struct {
	code    int
	status  int
	message string
}

var table = map[Kind]entry{
	NotAllowedLoginMethod:     {1001, http.StatusMethodNotAllowed, "логин доступен только методом POST"},
	UnsupportedLoginMediaType: {1002, http.StatusUnsupportedMediaType, "тело запроса должно быть application/json"},
	BadUsernamePassword:       {1003, http.StatusUnauthorized, "неверный логин или пароль"},
	NotFoundMember:            {1004, http.StatusUnauthorized, "пользователь не найден"},
	EmptyToken:                {1005, http.StatusUnauthorized, "отсутствует access или refresh токен"},
	BadToken:                  {1006, http.StatusUnauthorized, "невалидный access токен"},
	AllTokenInvalid:           {1007, http.StatusUnauthorized, "токены просрочены, требуется повторный вход"},
	UnmatchedMember:           {1008, http.StatusUnauthorized, "пара токенов не принадлежит ни одному пользователю"},
	Uncategorized:             {1999, http.StatusUnauthorized, "не удалось аутентифицировать запрос"},
	Validation:                {2001, http.StatusBadRequest, "некорректное тело запроса"},
	Forbidden:                 {4030, http.StatusForbidden, "доступ запрещён"},
	NotFound:                  {4040, http.StatusNotFound, "ресурс не найден"},
	Internal:                  {5000, http.StatusInternalServerError, "внутренняя ошибка сервера"},
}

// Code возвращает числовой код вида ошибки.
func Code(kind Kind) int { return table[kind].code }

// Status возвращает HTTP-статус вида ошибки.
func Status(kind Kind) int { return table[kind].status }

// Message возвращает сообщение, отдаваемое клиенту.
func Message(kind Kind) string { return table[kind].message }

// Error — ошибка с видом из таблицы выше.
// Ожидаемые исходы аутентификации возвращаются значениями этого типа,
// а не пробрасываются наружу как необработанные ошибки.
type Error struct {
	Kind Kind
	Err  error
}

func New(kind Kind) *Error {
	return &Error{Kind: kind}
}

func Wrap(kind Kind, err error) *Error {
	return &Error{Kind: kind, Err: err}
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", table[e.Kind].message, e.Err)
	}
	return table[e.Kind].message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf определяет вид ошибки. Неопознанная ошибка считается Uncategorized.
func KindOf(err error) Kind {
	var authError *Error
	if errors.As(err, &authError) {
		return authError.Kind
	}
	return Uncategorized
}

// ErrorResponse — тело ответа для всех ошибок аутентификации и общих ошибок.
type ErrorResponse struct {
	ErrorCode int    `json:"errorCode" example:"1005"`
	Message   string `json:"message" example:"отсутствует access или refresh токен"`
}

// Write переводит вид ошибки в HTTP-ответ с JSON-телом {"errorCode", "message"}.
func Write(w http.ResponseWriter, kind Kind) {
	e := table[kind]

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(e.status)

	if err := json.NewEncoder(w).Encode(ErrorResponse{ErrorCode: e.code, Message: e.message}); err != nil {
		log.Printf("ошибка кодирования ответа: %v", err)
	}
}

// WriteError логирует исходную ошибку на сервере и отдаёт клиенту только
// запись из таблицы, не раскрывая внутренние детали.
func WriteError(w http.ResponseWriter, err error) {
	kind := KindOf(err)
	if kind == Uncategorized || kind == Internal {
		log.Printf("непредвиденная ошибка: %v", err)
	}
	Write(w, kind)
}
