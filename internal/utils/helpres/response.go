package helpers

import (
	"encoding/json"
	"net/http"

	"blogfeed/internal/models"
)

// Result пишет конверт сервиса; HTTP-статус совпадает с полем code.
func Result(w http.ResponseWriter, res models.Result) {
	status := res.Code
	if status == 0 {
		status = http.StatusInternalServerError
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(res)
}

// JSON пишет произвольное тело без конверта.
func JSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// Error: конверт ошибки уровня HTTP (невалидный JSON, нет прав и т.п.).
func Error(w http.ResponseWriter, status int, message string) {
	Result(w, models.Result{Code: status, Success: false, Message: message})
}
