package controllers

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"petconnect_server_go/middleware"
)

// respondJSON сериализует данные в JSON и отправляет клиенту.
func respondJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			log.Printf("Ошибка кодирования JSON-ответа: %v", err)
		}
	}
}

// respondError отправляет клиенту JSON с описанием ошибки.
func respondError(w http.ResponseWriter, statusCode int, message string) {
	log.Printf("HTTP Error %d: %s", statusCode, message)
	respondJSON(w, statusCode, map[string]string{"error": message})
}

// requireUserID извлекает ID пользователя из контекста запроса.
// При отсутствии отправляет 401 и возвращает false.
func requireUserID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Не удалось определить пользователя из токена.")
		return 0, false
	}
	return userID, true
}

// pathID извлекает числовой параметр из пути запроса.
func pathID(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	raw := mux.Vars(r)[name]
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		respondError(w, http.StatusBadRequest, "Неверный идентификатор в пути запроса: "+raw)
		return 0, false
	}
	return id, true
}

// decodeIDs разбирает JSON-массив идентификаторов из колонки-набора.
func decodeIDs(s string) []int64 {
	if s == "" {
		return []int64{}
	}
	var ids []int64
	if err := json.Unmarshal([]byte(s), &ids); err != nil {
		log.Printf("Ошибка разбора набора идентификаторов %q: %v", s, err)
		return []int64{}
	}
	return ids
}

func containsID(ids []int64, id int64) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
