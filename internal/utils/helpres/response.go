package helpers

import (
	"encoding/json"
	"net/http"

	"newsadmin/internal/apperr"
)

type Response struct {
	Data  interface{} `json:"data,omitempty"`
	Error string      `json:"error,omitempty"`
}

func JSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	err := json.NewEncoder(w).Encode(Response{Data: data, Error: ""})
	if err != nil {
		return
	}
}

func Error(w http.ResponseWriter, status int, errMsg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	err := json.NewEncoder(w).Encode(Response{Data: nil, Error: errMsg})
	if err != nil {
		return
	}
}

// Fail подбирает статус по виду ошибки. Для 500 текст заменяется общим, детали остаются в логе.
func Fail(w http.ResponseWriter, err error, errMsg string) {
	status := apperr.HTTPStatus(err)
	if status == http.StatusInternalServerError {
		errMsg = "Внутренняя ошибка сервера"
	}
	Error(w, status, errMsg)
}
