package data

const authSchema = `
CREATE TABLE IF NOT EXISTS Users (
    Id INTEGER PRIMARY KEY AUTOINCREMENT,
    Username TEXT NOT NULL UNIQUE,
    Email TEXT NOT NULL UNIQUE,
    DisplayName TEXT NOT NULL,
    PhotoUrl TEXT DEFAULT '',
    PasswordHash TEXT NOT NULL,
    Bio TEXT DEFAULT '',
    City TEXT DEFAULT '',
    State TEXT DEFAULT '',
    Country TEXT DEFAULT '',
    Discoverable BOOLEAN DEFAULT 0,
    CreatedAt DATETIME NOT NULL,
    UpdatedAt DATETIME NOT NULL
);
`

const mainSchema = `
CREATE TABLE IF NOT EXISTS Pets (
    Id INTEGER PRIMARY KEY AUTOINCREMENT,
    OwnerId INTEGER NOT NULL, -- Ссылается на Users.Id в БД аутентификации, FK между файлами не ставим
    Name TEXT NOT NULL,
    Breed TEXT DEFAULT '',
    Age TEXT DEFAULT '',
    Bio TEXT DEFAULT '',
    ImageUrl TEXT DEFAULT '',
    VaccinationsJson TEXT DEFAULT '[]',
    MedicalNotesJson TEXT DEFAULT '[]',
    CreatedAt DATETIME NOT NULL,
    UpdatedAt DATETIME NOT NULL
);

CREATE TABLE IF NOT EXISTS Posts (
    Id INTEGER PRIMARY KEY AUTOINCREMENT,
    AuthorId INTEGER NOT NULL,
    Content TEXT NOT NULL,
    ImageUrl TEXT DEFAULT '',
    LikesJson TEXT DEFAULT '[]',
    CommentCount INTEGER DEFAULT 0,
    CreatedAt DATETIME NOT NULL
);

CREATE TABLE IF NOT EXISTS PostComments (
    Id INTEGER PRIMARY KEY AUTOINCREMENT,
    PostId INTEGER NOT NULL,
    AuthorId INTEGER NOT NULL,
    Content TEXT NOT NULL,
    CreatedAt DATETIME NOT NULL,
    FOREIGN KEY (PostId) REFERENCES Posts(Id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS AdvicePosts (
    Id INTEGER PRIMARY KEY AUTOINCREMENT,
    AuthorId INTEGER NOT NULL,
    Title TEXT NOT NULL,
    Content TEXT NOT NULL,
    UpvotesJson TEXT DEFAULT '[]',
    DownvotesJson TEXT DEFAULT '[]',
    CommentCount INTEGER DEFAULT 0,
    CreatedAt DATETIME NOT NULL
);

CREATE TABLE IF NOT EXISTS AdviceComments (
    Id INTEGER PRIMARY KEY AUTOINCREMENT,
    AdvicePostId INTEGER NOT NULL,
    AuthorId INTEGER NOT NULL,
    Content TEXT NOT NULL,
    CreatedAt DATETIME NOT NULL,
    FOREIGN KEY (AdvicePostId) REFERENCES AdvicePosts(Id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS Events (
    Id INTEGER PRIMARY KEY AUTOINCREMENT,
    AuthorId INTEGER NOT NULL,
    Title TEXT NOT NULL,
    Description TEXT DEFAULT '',
    Location TEXT DEFAULT '',
    PetType TEXT DEFAULT '',
    Date DATETIME NOT NULL,
    AttendeesJson TEXT DEFAULT '[]',
    CreatedAt DATETIME NOT NULL
);

CREATE TABLE IF NOT EXISTS LostPetAlerts (
    Id INTEGER PRIMARY KEY AUTOINCREMENT,
    PetId INTEGER NOT NULL,
    OwnerId INTEGER NOT NULL,
    PetName TEXT NOT NULL,
    PetImageUrl TEXT DEFAULT '',
    LastSeenLocation TEXT DEFAULT '',
    Status TEXT NOT NULL DEFAULT 'active', -- "active" / "resolved"
    CreatedAt DATETIME NOT NULL,
    FOREIGN KEY (PetId) REFERENCES Pets(Id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS Conversations (
    Id INTEGER PRIMARY KEY AUTOINCREMENT,
    UserAId INTEGER NOT NULL, -- Всегда меньший из пары
    UserBId INTEGER NOT NULL,
    LastMessage TEXT DEFAULT '',
    LastMessageTimestamp DATETIME,
    CreatedAt DATETIME NOT NULL
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_conversations_pair ON Conversations(UserAId, UserBId);

CREATE TABLE IF NOT EXISTS Messages (
    Id INTEGER PRIMARY KEY AUTOINCREMENT,
    ConversationId INTEGER NOT NULL,
    SenderId INTEGER NOT NULL,
    Content TEXT NOT NULL,
    CreatedAt DATETIME NOT NULL,
    FOREIGN KEY (ConversationId) REFERENCES Conversations(Id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS Reminders (
    Id INTEGER PRIMARY KEY AUTOINCREMENT,
    OwnerId INTEGER NOT NULL,
    Title TEXT NOT NULL,
    Notes TEXT DEFAULT '',
    DueAt DATETIME NOT NULL,
    Completed BOOLEAN NOT NULL DEFAULT 0,
    Frequency TEXT NOT NULL DEFAULT 'once', -- "once" / "daily" / "weekly" / "monthly"
    WeekdaysJson TEXT DEFAULT '',
    CreatedAt DATETIME NOT NULL,
    UpdatedAt DATETIME NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_reminders_owner_due ON Reminders(OwnerId, DueAt);
`

// GetAuthSchema возвращает схему БД аутентификации (только Users).
func GetAuthSchema() string {
	return authSchema
}

// GetMainSchema возвращает схему основной БД (все, кроме Users).
func GetMainSchema() string {
	return mainSchema
}
