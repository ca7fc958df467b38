package controllers

import (
	"database/sql"
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"petconnect_server_go/cache"
	"petconnect_server_go/data"
	"petconnect_server_go/models"
)

// Сообщение, с которого начинается диалог при отклике на оповещение.
const alertSeedMessage = "Regarding the lost pet alert."

// AlertController обрабатывает оповещения о пропавших питомцах.
type AlertController struct {
	Store      *data.Store
	Dismissals *cache.DismissalStore
}

// Create публикует оповещение о пропавшем питомце. Требует, чтобы в
// профиле владельца были заполнены город и регион, а питомец принадлежал ему.
// Пример URL: POST /api/alerts
func (c *AlertController) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req models.CreateAlertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Неверный формат запроса: "+err.Error())
		return
	}
	defer r.Body.Close()

	if req.PetID <= 0 || strings.TrimSpace(req.LastSeenLocation) == "" {
		respondError(w, http.StatusBadRequest, "Питомец и место, где его видели, обязательны.")
		return
	}

	user, err := c.Store.GetUserByID(userID)
	if err != nil || user == nil {
		log.Printf("Ошибка при получении пользователя %d: %v", userID, err)
		respondError(w, http.StatusInternalServerError, "Ошибка сервера при проверке профиля.")
		return
	}
	if !user.HasLocation() {
		respondError(w, http.StatusBadRequest, "Для отправки оповещения заполните город и регион в профиле.")
		return
	}

	pet, err := c.Store.GetPetByID(req.PetID)
	if err != nil {
		log.Printf("Ошибка при получении питомца %d: %v", req.PetID, err)
		respondError(w, http.StatusInternalServerError, "Ошибка сервера при проверке питомца.")
		return
	}
	if pet == nil || pet.OwnerID != userID {
		respondError(w, http.StatusNotFound, "Питомец не найден или принадлежит другому пользователю.")
		return
	}

	alert := &models.LostPetAlert{
		PetID:            pet.ID,
		OwnerID:          userID,
		PetName:          pet.Name,
		PetImageUrl:      pet.ImageUrl,
		LastSeenLocation: req.LastSeenLocation,
		Status:           models.AlertStatusActive,
	}
	alertID, err := c.Store.CreateLostPetAlert(alert)
	if err != nil {
		log.Printf("Ошибка при создании оповещения для питомца %d: %v", pet.ID, err)
		respondError(w, http.StatusInternalServerError, "Не удалось создать оповещение.")
		return
	}
	alert.ID = alertID
	respondJSON(w, http.StatusCreated, alert)
}

// Active возвращает активные оповещения без тех, которые пользователь скрыл.
// Пример URL: GET /api/alerts
func (c *AlertController) Active(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	alerts, err := c.Store.GetActiveAlerts()
	if err != nil {
		log.Printf("Ошибка при получении оповещений: %v", err)
		respondError(w, http.StatusInternalServerError, "Ошибка сервера при получении оповещений.")
		return
	}

	dismissed, err := c.Dismissals.Dismissed(r.Context(), userID)
	if err != nil {
		// Скрытые оповещения живут в Redis; при его недоступности
		// показываем все активные, а не отказываем в запросе.
		log.Printf("Ошибка при чтении скрытых оповещений пользователя %d: %v", userID, err)
		dismissed = map[int64]bool{}
	}

	result := make([]models.LostPetAlert, 0, len(alerts))
	for _, alert := range alerts {
		if !dismissed[alert.ID] {
			result = append(result, alert)
		}
	}
	respondJSON(w, http.StatusOK, result)
}

// Dismiss скрывает оповещение для текущего пользователя. Само оповещение
// остается активным для остальных.
// Пример URL: POST /api/alerts/{id}/dismiss
func (c *AlertController) Dismiss(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	alert, err := c.Store.GetAlertByID(id)
	if err != nil {
		log.Printf("Ошибка при получении оповещения %d: %v", id, err)
		respondError(w, http.StatusInternalServerError, "Ошибка сервера при получении оповещения.")
		return
	}
	if alert == nil {
		respondError(w, http.StatusNotFound, "Оповещение не найдено.")
		return
	}

	if err := c.Dismissals.Dismiss(r.Context(), userID, id); err != nil {
		log.Printf("Ошибка при скрытии оповещения %d пользователем %d: %v", id, userID, err)
		respondError(w, http.StatusInternalServerError, "Не удалось скрыть оповещение.")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "dismissed"})
}

// Resolve помечает оповещение решенным. Разрешено только автору.
// Пример URL: POST /api/alerts/{id}/resolve
func (c *AlertController) Resolve(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	if err := c.Store.ResolveAlert(id, userID); err != nil {
		if err == sql.ErrNoRows {
			respondError(w, http.StatusNotFound, "Оповещение не найдено или создано другим пользователем.")
			return
		}
		log.Printf("Ошибка при закрытии оповещения %d: %v", id, err)
		respondError(w, http.StatusInternalServerError, "Не удалось закрыть оповещение.")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": models.AlertStatusResolved})
}

// ContactOwner открывает (или находит существующий) диалог с владельцем
// пропавшего питомца.
// Пример URL: POST /api/alerts/{id}/contact
func (c *AlertController) ContactOwner(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	alert, err := c.Store.GetAlertByID(id)
	if err != nil {
		log.Printf("Ошибка при получении оповещения %d: %v", id, err)
		respondError(w, http.StatusInternalServerError, "Ошибка сервера при получении оповещения.")
		return
	}
	if alert == nil {
		respondError(w, http.StatusNotFound, "Оповещение не найдено.")
		return
	}
	if alert.OwnerID == userID {
		respondError(w, http.StatusBadRequest, "Нельзя открыть диалог с самим собой.")
		return
	}

	convo, created, err := c.Store.StartConversation(userID, alert.OwnerID, alertSeedMessage)
	if err != nil {
		log.Printf("Ошибка при создании диалога по оповещению %d: %v", id, err)
		respondError(w, http.StatusInternalServerError, "Не удалось открыть диалог с владельцем.")
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	respondJSON(w, status, convo)
}
