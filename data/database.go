package data

import (
	"fmt"
	"log"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3" // Драйвер SQLite, импортируется для побочных эффектов (регистрации драйвера)
)

// Store держит оба пула подключений и передается явно всем контроллерам.
// Пользователи лежат в отдельном файле БД аутентификации, как и раньше;
// прямых внешних ключей между файлами нет.
type Store struct {
	Main *sqlx.DB
	Auth *sqlx.DB
}

// Open открывает обе базы и применяет схемы.
// Для тестов обе дорожки принимают ":memory:".
func Open(mainPath, authPath string) (*Store, error) {
	authDB, err := sqlx.Connect("sqlite3", authPath+"?_loc=auto")
	if err != nil {
		return nil, fmt.Errorf("failed to connect to auth database: %w", err)
	}
	if _, err = authDB.Exec(GetAuthSchema()); err != nil {
		return nil, fmt.Errorf("failed to execute auth schema: %w", err)
	}
	log.Printf("Auth database ready at %s", authPath)

	mainDB, err := sqlx.Connect("sqlite3", mainPath+"?_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("failed to connect to main database: %w", err)
	}
	if _, err = mainDB.Exec(GetMainSchema()); err != nil {
		return nil, fmt.Errorf("failed to execute main schema: %w", err)
	}
	log.Printf("Main database ready at %s", mainPath)

	return &Store{Main: mainDB, Auth: authDB}, nil
}

// Close закрывает оба подключения.
func (s *Store) Close() error {
	if err := s.Main.Close(); err != nil {
		return err
	}
	return s.Auth.Close()
}
