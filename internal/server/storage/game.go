package storage

import (
	"database/sql"
	"fmt"
	"time"
)

// RecordNewGame asynchronously records a new game
func (s *Store) RecordNewGame(record GameRecord) {
	s.enqueue("game record", func(tx *sql.Tx) error {
		query := `INSERT INTO games (
			game_id, initial_position, result, black_count, white_count, start_time_utc
		) VALUES (?, ?, ?, ?, ?, ?)`

		_, err := tx.Exec(query,
			record.GameID, record.InitialPosition, record.Result,
			record.BlackCount, record.WhiteCount, record.StartTimeUTC,
		)
		return err
	})
}

// RecordMove asynchronously records an accepted move and the score after it
func (s *Store) RecordMove(record MoveRecord, blackCount, whiteCount int) {
	s.enqueue("move record", func(tx *sql.Tx) error {
		query := `INSERT INTO moves (
			game_id, move_number, square, captures, position_after_move, player_color, move_time_utc
		) VALUES (?, ?, ?, ?, ?, ?, ?)`

		if _, err := tx.Exec(query,
			record.GameID, record.MoveNumber, record.Square, record.Captures,
			record.PositionAfterMove, record.PlayerColor, record.MoveTimeUTC,
		); err != nil {
			return err
		}

		_, err := tx.Exec(`UPDATE games SET black_count = ?, white_count = ? WHERE game_id = ?`,
			blackCount, whiteCount, record.GameID)
		return err
	})
}

// RecordResult asynchronously stores the final outcome of a game
func (s *Store) RecordResult(gameID, result string, blackCount, whiteCount int, endTime time.Time) {
	s.enqueue("result record", func(tx *sql.Tx) error {
		query := `UPDATE games SET result = ?, black_count = ?, white_count = ?, end_time_utc = ?
			WHERE game_id = ?`
		_, err := tx.Exec(query, result, blackCount, whiteCount, endTime, gameID)
		return err
	})
}

// RecordReset asynchronously drops the archived moves of a restarted game
func (s *Store) RecordReset(gameID, result string, blackCount, whiteCount int) {
	s.enqueue("reset", func(tx *sql.Tx) error {
		if _, err := tx.Exec(`DELETE FROM moves WHERE game_id = ?`, gameID); err != nil {
			return err
		}
		_, err := tx.Exec(`UPDATE games SET result = ?, black_count = ?, white_count = ?, end_time_utc = NULL
			WHERE game_id = ?`, result, blackCount, whiteCount, gameID)
		return err
	})
}

// QueryGames retrieves games with optional filtering, "" or "*" match all
func (s *Store) QueryGames(gameID, result string) ([]GameRecord, error) {
	query := `SELECT
		game_id, initial_position, result, black_count, white_count, start_time_utc, end_time_utc
	FROM games WHERE 1=1`

	var args []interface{}

	if gameID != "" && gameID != "*" {
		query += " AND game_id = ?"
		args = append(args, gameID)
	}

	if result != "" && result != "*" {
		query += " AND result = ?"
		args = append(args, result)
	}

	query += " ORDER BY start_time_utc DESC"

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	var games []GameRecord
	for rows.Next() {
		var g GameRecord
		var end sql.NullTime
		err := rows.Scan(
			&g.GameID, &g.InitialPosition, &g.Result,
			&g.BlackCount, &g.WhiteCount, &g.StartTimeUTC, &end,
		)
		if err != nil {
			return nil, fmt.Errorf("scan failed: %w", err)
		}
		if end.Valid {
			t := end.Time
			g.EndTimeUTC = &t
		}
		games = append(games, g)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration failed: %w", err)
	}

	return games, nil
}

// QueryMoves returns the archived moves of a game in play order
func (s *Store) QueryMoves(gameID string) ([]MoveRecord, error) {
	query := `SELECT
		move_id, game_id, move_number, square, captures, position_after_move, player_color, move_time_utc
	FROM moves WHERE game_id = ? ORDER BY move_number ASC`

	rows, err := s.db.Query(query, gameID)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	var moves []MoveRecord
	for rows.Next() {
		var m MoveRecord
		if err := rows.Scan(
			&m.MoveID, &m.GameID, &m.MoveNumber, &m.Square, &m.Captures,
			&m.PositionAfterMove, &m.PlayerColor, &m.MoveTimeUTC,
		); err != nil {
			return nil, fmt.Errorf("scan failed: %w", err)
		}
		moves = append(moves, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration failed: %w", err)
	}

	return moves, nil
}
