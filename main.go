package main

import (
	"flag"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"petconnect_server_go/ai"
	"petconnect_server_go/auth"
	"petconnect_server_go/cache"
	"petconnect_server_go/config"
	"petconnect_server_go/controllers"
	"petconnect_server_go/data"
	"petconnect_server_go/middleware"
)

func main() {
	configPath := flag.String("config", "config.yaml", "путь к файлу конфигурации")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid config: %v", err)
	}

	// Инициализация баз данных
	store, err := data.Open(cfg.Database.MainPath, cfg.Database.AuthPath)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer store.Close()

	// Redis опционален: без него оповещения нельзя скрывать, а вход не
	// ограничивается по частоте.
	redisClient := cache.NewClient(cfg.Redis.Addr)
	if redisClient != nil {
		defer redisClient.Close()
	}
	dismissals := cache.NewDismissalStore(redisClient)
	loginLimiter := cache.NewLimiter(redisClient, cfg.RateLimit.LoginLimit,
		time.Duration(cfg.RateLimit.WindowSeconds)*time.Second)

	tokens := auth.NewService(cfg.Auth.JWTSecret,
		time.Duration(cfg.Auth.TokenTTLHours)*time.Hour, cfg.Auth.Issuer)

	advisor, err := ai.NewAdvisor(cfg.DeepSeek)
	if err != nil {
		log.Fatalf("Failed to initialize AI advisor: %v", err)
	}
	if advisor == nil {
		log.Println("DEEPSEEK_API_KEY не задан, AI-помощник отключен")
	}

	authCtrl := &controllers.AuthController{Store: store, Tokens: tokens}
	petCtrl := &controllers.PetController{Store: store}
	postCtrl := &controllers.PostController{Store: store}
	adviceCtrl := &controllers.AdviceController{Store: store}
	eventCtrl := &controllers.EventController{Store: store}
	alertCtrl := &controllers.AlertController{Store: store, Dismissals: dismissals}
	convoCtrl := &controllers.ConversationController{Store: store}
	reminderCtrl := &controllers.ReminderController{Store: store}
	aiCtrl := &controllers.AIController{Advisor: advisor}
	fileCtrl := &controllers.FileController{UploadsDir: cfg.Uploads.Dir}

	router := mux.NewRouter()

	// Маршруты аутентификации (открытые, с ограничением частоты)
	authRouter := router.PathPrefix("/api/auth").Subrouter()
	authRouter.Use(middleware.RateLimit(loginLimiter))
	authRouter.HandleFunc("/register", authCtrl.Register).Methods(http.MethodPost)
	authRouter.HandleFunc("/login", authCtrl.Login).Methods(http.MethodPost)

	// Подмаршрутизатор /api, ко всем маршрутам применяется JWT
	apiRouter := router.PathPrefix("/api").Subrouter()
	apiRouter.Use(middleware.JWT(tokens))

	// Профиль и поиск владельцев
	apiRouter.HandleFunc("/users/me", authCtrl.Me).Methods(http.MethodGet)
	apiRouter.HandleFunc("/users/me", authCtrl.UpdateProfile).Methods(http.MethodPut)
	apiRouter.HandleFunc("/users/discover", authCtrl.Discover).Methods(http.MethodGet)
	apiRouter.HandleFunc("/users/{id:[0-9]+}", authCtrl.GetUser).Methods(http.MethodGet)

	// Питомцы и медицинские карты
	apiRouter.HandleFunc("/pets", petCtrl.List).Methods(http.MethodGet)
	apiRouter.HandleFunc("/pets", petCtrl.Create).Methods(http.MethodPost)
	apiRouter.HandleFunc("/pets/{id:[0-9]+}", petCtrl.Get).Methods(http.MethodGet)
	apiRouter.HandleFunc("/pets/{id:[0-9]+}", petCtrl.Update).Methods(http.MethodPut)
	apiRouter.HandleFunc("/pets/{id:[0-9]+}", petCtrl.Delete).Methods(http.MethodDelete)
	apiRouter.HandleFunc("/pets/{id:[0-9]+}/vaccinations", petCtrl.AddVaccination).Methods(http.MethodPost)
	apiRouter.HandleFunc("/pets/{id:[0-9]+}/vaccinations", petCtrl.RemoveVaccination).Methods(http.MethodDelete)
	apiRouter.HandleFunc("/pets/{id:[0-9]+}/medical-notes", petCtrl.AddMedicalNote).Methods(http.MethodPost)
	apiRouter.HandleFunc("/pets/{id:[0-9]+}/medical-notes", petCtrl.RemoveMedicalNote).Methods(http.MethodDelete)

	// Лента
	apiRouter.HandleFunc("/posts", postCtrl.Feed).Methods(http.MethodGet)
	apiRouter.HandleFunc("/posts", postCtrl.Create).Methods(http.MethodPost)
	apiRouter.HandleFunc("/posts/{id:[0-9]+}/like", postCtrl.ToggleLike).Methods(http.MethodPost)
	apiRouter.HandleFunc("/posts/{id:[0-9]+}/comments", postCtrl.Comments).Methods(http.MethodGet)
	apiRouter.HandleFunc("/posts/{id:[0-9]+}/comments", postCtrl.CreateComment).Methods(http.MethodPost)

	// Советы сообщества
	apiRouter.HandleFunc("/advice", adviceCtrl.List).Methods(http.MethodGet)
	apiRouter.HandleFunc("/advice", adviceCtrl.Create).Methods(http.MethodPost)
	apiRouter.HandleFunc("/advice/{id:[0-9]+}/upvote", adviceCtrl.Upvote).Methods(http.MethodPost)
	apiRouter.HandleFunc("/advice/{id:[0-9]+}/downvote", adviceCtrl.Downvote).Methods(http.MethodPost)
	apiRouter.HandleFunc("/advice/{id:[0-9]+}/comments", adviceCtrl.Comments).Methods(http.MethodGet)
	apiRouter.HandleFunc("/advice/{id:[0-9]+}/comments", adviceCtrl.CreateComment).Methods(http.MethodPost)

	// События
	apiRouter.HandleFunc("/events", eventCtrl.List).Methods(http.MethodGet)
	apiRouter.HandleFunc("/events", eventCtrl.Create).Methods(http.MethodPost)
	apiRouter.HandleFunc("/events/{id:[0-9]+}/attend", eventCtrl.ToggleAttendance).Methods(http.MethodPost)

	// Оповещения о пропавших питомцах
	apiRouter.HandleFunc("/alerts", alertCtrl.Active).Methods(http.MethodGet)
	apiRouter.HandleFunc("/alerts", alertCtrl.Create).Methods(http.MethodPost)
	apiRouter.HandleFunc("/alerts/{id:[0-9]+}/dismiss", alertCtrl.Dismiss).Methods(http.MethodPost)
	apiRouter.HandleFunc("/alerts/{id:[0-9]+}/resolve", alertCtrl.Resolve).Methods(http.MethodPost)
	apiRouter.HandleFunc("/alerts/{id:[0-9]+}/contact", alertCtrl.ContactOwner).Methods(http.MethodPost)

	// Личные сообщения
	apiRouter.HandleFunc("/conversations", convoCtrl.List).Methods(http.MethodGet)
	apiRouter.HandleFunc("/conversations", convoCtrl.Start).Methods(http.MethodPost)
	apiRouter.HandleFunc("/conversations/{id:[0-9]+}/messages", convoCtrl.Messages).Methods(http.MethodGet)
	apiRouter.HandleFunc("/conversations/{id:[0-9]+}/messages", convoCtrl.SendMessage).Methods(http.MethodPost)

	// Напоминания
	apiRouter.HandleFunc("/reminders", reminderCtrl.List).Methods(http.MethodGet)
	apiRouter.HandleFunc("/reminders", reminderCtrl.Create).Methods(http.MethodPost)
	apiRouter.HandleFunc("/reminders/{id:[0-9]+}/toggle", reminderCtrl.Toggle).Methods(http.MethodPost)
	apiRouter.HandleFunc("/reminders/{id:[0-9]+}", reminderCtrl.Delete).Methods(http.MethodDelete)

	// AI-помощник
	apiRouter.HandleFunc("/ai/advice", aiCtrl.Advice).Methods(http.MethodPost)
	apiRouter.HandleFunc("/ai/identify-breed", aiCtrl.IdentifyBreed).Methods(http.MethodPost)

	// Загрузка файлов (защищена JWT)
	fileRouter := apiRouter.PathPrefix("/file").Subrouter()
	fileRouter.HandleFunc("/upload", fileCtrl.Upload).Methods(http.MethodPost)

	// Маршрут для проверки состояния сервера (открытый, без JWT)
	router.HandleFunc("/api/Service/status", controllers.HealthCheck).Methods(http.MethodGet)

	// Статическая отдача загруженных файлов. Не защищена JWT, чтобы файлы
	// были доступны по прямой ссылке.
	router.PathPrefix("/uploads/").Handler(http.StripPrefix("/uploads/", http.FileServer(http.Dir(cfg.Uploads.Dir))))

	router.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, "Привет! Сервер PetConnect запущен. Используется gorilla/mux.")
	}).Methods(http.MethodGet)

	log.Printf("Запуск сервера на %s", cfg.Server.Addr)
	if err := http.ListenAndServe(cfg.Server.Addr, router); err != nil {
		log.Fatal(err)
	}
}
