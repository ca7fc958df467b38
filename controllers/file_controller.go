package controllers

import (
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

const maxUploadSize = 5 * 1024 * 1024 // 5 MB

// FileController обрабатывает загрузку изображений (фото профиля, питомцев,
// записей ленты). Файлы раздаются статически через /uploads/.
type FileController struct {
	UploadsDir string
}

// Upload сохраняет загруженное изображение и возвращает его URL.
// Пример URL: POST /api/files/upload
func (c *FileController) Upload(w http.ResponseWriter, r *http.Request) {
	// Устанавливаем максимальный размер тела запроса
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		if err.Error() == "http: request body too large" {
			respondError(w, http.StatusRequestEntityTooLarge, fmt.Sprintf("Размер файла не должен превышать %dMB.", maxUploadSize/1024/1024))
		} else {
			respondError(w, http.StatusBadRequest, "Не удалось обработать multipart form: "+err.Error())
		}
		return
	}

	file, handler, err := r.FormFile("file")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Не удалось получить файл из запроса: "+err.Error())
		return
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(handler.Filename))
	allowedExtensions := map[string]bool{".jpg": true, ".jpeg": true, ".png": true, ".gif": true}
	if !allowedExtensions[ext] {
		respondError(w, http.StatusBadRequest, "Недопустимый тип файла. Разрешены: jpg, jpeg, png, gif.")
		return
	}

	imagesDir := filepath.Join(c.UploadsDir, "images")
	if err := os.MkdirAll(imagesDir, os.ModePerm); err != nil {
		log.Printf("Ошибка при создании директории %s: %v", imagesDir, err)
		respondError(w, http.StatusInternalServerError, "Не удалось создать директорию для загрузки.")
		return
	}

	// Генерируем уникальное имя файла
	uniqueFileName := uuid.New().String() + ext
	filePath := filepath.Join(imagesDir, uniqueFileName)

	dst, err := os.Create(filePath)
	if err != nil {
		log.Printf("Ошибка при создании файла %s: %v", filePath, err)
		respondError(w, http.StatusInternalServerError, "Не удалось создать файл на сервере.")
		return
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		log.Printf("Ошибка при копировании файла %s: %v", filePath, err)
		respondError(w, http.StatusInternalServerError, "Не удалось сохранить файл на сервере.")
		return
	}

	// Относительный путь, который обслуживает FileServer на /uploads/.
	fileAccessURL := "/uploads/images/" + uniqueFileName
	log.Printf("Файл успешно загружен: %s, доступен по URL: %s", filePath, fileAccessURL)

	respondJSON(w, http.StatusOK, map[string]string{"url": fileAccessURL})
}
