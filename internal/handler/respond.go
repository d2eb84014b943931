package handler

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"qna-web-server/internal/autherr"
)

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Println("ошибка кодирования ответа:", err)
	}
}

// writeDomainError переводит ошибки доменных сервисов в ответ по тексту
// сообщения. Ошибки аутентификации до сюда не доходят: их гасит фильтр.
func writeDomainError(w http.ResponseWriter, err error) {
	log.Println(err)
	switch {
	case strings.Contains(err.Error(), "не авторизован"),
		strings.Contains(err.Error(), "доступ запрещён"):
		autherr.Write(w, autherr.Forbidden)
	case strings.Contains(err.Error(), "не найден"):
		autherr.Write(w, autherr.NotFound)
	case strings.Contains(err.Error(), "обязатель"),
		strings.Contains(err.Error(), "некорректн"),
		strings.Contains(err.Error(), "неизвестн"),
		strings.Contains(err.Error(), "пароль"),
		strings.Contains(err.Error(), "email"),
		strings.Contains(err.Error(), "имя"):
		autherr.Write(w, autherr.Validation)
	default:
		autherr.Write(w, autherr.Internal)
	}
}
