package storage

import "time"

// GameRecord represents a row in the games table
type GameRecord struct {
	GameID          string     `db:"game_id"`
	InitialPosition string     `db:"initial_position"`
	Result          string     `db:"result"` // core.State string, "ongoing" until the game ends
	BlackCount      int        `db:"black_count"`
	WhiteCount      int        `db:"white_count"`
	StartTimeUTC    time.Time  `db:"start_time_utc"`
	EndTimeUTC      *time.Time `db:"end_time_utc"`
}

// MoveRecord represents a row in the moves table
type MoveRecord struct {
	MoveID            int64     `db:"move_id"`
	GameID            string    `db:"game_id"`
	MoveNumber        int       `db:"move_number"`
	Square            string    `db:"square"`
	Captures          int       `db:"captures"`
	PositionAfterMove string    `db:"position_after_move"`
	PlayerColor       string    `db:"player_color"`
	MoveTimeUTC       time.Time `db:"move_time_utc"`
}

// Schema defines the SQLite archive structure
const Schema = `
CREATE TABLE IF NOT EXISTS games (
	game_id TEXT PRIMARY KEY,
	initial_position TEXT NOT NULL,
	result TEXT NOT NULL DEFAULT 'ongoing',
	black_count INTEGER NOT NULL DEFAULT 2,
	white_count INTEGER NOT NULL DEFAULT 2,
	start_time_utc DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
	end_time_utc DATETIME
);

CREATE TABLE IF NOT EXISTS moves (
	move_id INTEGER PRIMARY KEY AUTOINCREMENT,
	game_id TEXT NOT NULL,
	move_number INTEGER NOT NULL,
	square TEXT NOT NULL,
	captures INTEGER NOT NULL,
	position_after_move TEXT NOT NULL,
	player_color TEXT NOT NULL CHECK(player_color IN ('b', 'w')),
	move_time_utc DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
	FOREIGN KEY (game_id) REFERENCES games(game_id) ON DELETE CASCADE,
	UNIQUE(game_id, move_number)
);

CREATE INDEX IF NOT EXISTS idx_moves_game_id ON moves(game_id);
CREATE INDEX IF NOT EXISTS idx_games_result ON games(result);
`
