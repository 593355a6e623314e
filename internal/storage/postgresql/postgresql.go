package postgresql

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"github.com/PIRSON21/scissors/internal/config"
	custErr "github.com/PIRSON21/scissors/internal/lib/errors"
	"github.com/PIRSON21/scissors/internal/models"
	"github.com/jackc/pgx/v5/pgconn"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// uniqueViolation - код ошибки PostgreSQL при нарушении уникальности.
const uniqueViolation = "23505"

// Storage хранит закрытое в пакете соединение с БД.
type Storage struct {
	db *sql.DB
}

// MustConnectDB подключает к базе данных PostgresSQL по данным конфига: host, username, dbname, password.
// Остальные параметры стандартные
func MustConnectDB(cfg *config.Config) *Storage {
	connStr := fmt.Sprintf(
		"host='%s' user='%s' dbname='%s' password='%s' sslmode=disable",
		cfg.DBHost, cfg.DBUsername, cfg.DBName, cfg.DBPassword,
	)
	db, err := sql.Open("pgx", connStr)
	if err != nil {
		log.Fatal("error while connecting to DB: ", err)
	}

	err = db.Ping()
	if err != nil {
		log.Fatal("error when ping to DB server: ", err)
	}

	s := &Storage{db}
	if err = s.Migrate(); err != nil {
		log.Fatal("error while creating tables: ", err)
	}

	return s
}

// Migrate создает таблицу контуров, если ее нет.
func (s *Storage) Migrate() error {
	const op = "storage.postgresql.Migrate"

	_, err := s.db.Exec(`
	CREATE TABLE IF NOT EXISTS outlines (
		outline_id     SERIAL PRIMARY KEY,
		outline_name   VARCHAR(64) NOT NULL UNIQUE,
		image_width    INTEGER NOT NULL,
		image_height   INTEGER NOT NULL,
		start_x        INTEGER NOT NULL,
		start_y        INTEGER NOT NULL,
		segments       JSONB NOT NULL,
		created_at     TIMESTAMPTZ NOT NULL DEFAULT now()
	);`)
	if err != nil {
		return fmt.Errorf("%s: error while executing statement: %w", op, err)
	}

	return nil
}

// SaveOutline добавляет контур в БД и заполняет его ID и время создания.
func (s *Storage) SaveOutline(outline *models.Outline) error {
	const op = "storage.postgresql.SaveOutline"

	segments, err := json.Marshal(outline.Segments)
	if err != nil {
		return fmt.Errorf("%s: error while marshaling segments: %w", op, err)
	}

	stmt, err := s.db.Prepare(`
		INSERT INTO outlines (outline_name, image_width, image_height, start_x, start_y, segments)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING outline_id, created_at;
	`)
	if err != nil {
		return fmt.Errorf("%s: error while preparing statement: %w", op, err)
	}
	defer stmt.Close()

	err = stmt.QueryRow(outline.Name, outline.Width, outline.Height, outline.Start.X, outline.Start.Y, string(segments)).
		Scan(&outline.ID, &outline.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return custErr.ErrOutlineAlreadyExists
		}

		return fmt.Errorf("%s: error while executing statement: %w", op, err)
	}

	return nil
}

// GetOutlines получает из БД все контуры, имя которых содержит search.
func (s *Storage) GetOutlines(search string) ([]*models.Outline, error) {
	const op = "storage.postgresql.GetOutlines"

	stmt, err := s.db.Prepare(`
		SELECT
			outline_id, outline_name, image_width, image_height, start_x, start_y, segments, created_at
		FROM outlines
		WHERE outline_name ILIKE $1
		ORDER BY outline_id;
	`)
	if err != nil {
		return nil, fmt.Errorf("%s: error while preparing statement: %w", op, err)
	}
	defer stmt.Close()

	rows, err := stmt.Query("%" + search + "%")
	if err != nil {
		return nil, fmt.Errorf("%s: error while getting result: %w", op, err)
	}
	defer rows.Close()

	var outlines []*models.Outline

	for rows.Next() {
		outline, err := scanOutline(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: error while reading rows: %w", op, err)
		}

		outlines = append(outlines, outline)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: error while scanning rows: %w", op, err)
	}

	return outlines, nil
}

// GetOutlineByID получает контур по ID.
// Если контура нет, возвращает ErrOutlineNotFound.
func (s *Storage) GetOutlineByID(outlineID int) (*models.Outline, error) {
	const op = "storage.postgresql.GetOutlineByID"

	stmt, err := s.db.Prepare(`
		SELECT
			outline_id, outline_name, image_width, image_height, start_x, start_y, segments, created_at
		FROM outlines
		WHERE outline_id = $1;
	`)
	if err != nil {
		return nil, fmt.Errorf("%s: error while preparing statement: %w", op, err)
	}
	defer stmt.Close()

	outline, err := scanOutline(stmt.QueryRow(outlineID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, custErr.ErrOutlineNotFound
		}

		return nil, fmt.Errorf("%s: error while getting row: %w", op, err)
	}

	return outline, nil
}

// DeleteOutline удаляет контур по ID.
// Если контура нет, возвращает ErrOutlineNotFound.
func (s *Storage) DeleteOutline(outlineID int) error {
	const op = "storage.postgresql.DeleteOutline"

	stmt, err := s.db.Prepare(`DELETE FROM outlines WHERE outline_id = $1;`)
	if err != nil {
		return fmt.Errorf("%s: error while preparing statement: %w", op, err)
	}
	defer stmt.Close()

	res, err := stmt.Exec(outlineID)
	if err != nil {
		return fmt.Errorf("%s: error while executing statement: %w", op, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: error while getting affected rows: %w", op, err)
	}

	if affected == 0 {
		return custErr.ErrOutlineNotFound
	}

	return nil
}

// scanner - общее у *sql.Row и *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanOutline(row scanner) (*models.Outline, error) {
	var outline models.Outline
	var segments []byte

	err := row.Scan(
		&outline.ID, &outline.Name, &outline.Width, &outline.Height,
		&outline.Start.X, &outline.Start.Y, &segments, &outline.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err = json.Unmarshal(segments, &outline.Segments); err != nil {
		return nil, fmt.Errorf("error while unmarshaling segments: %w", err)
	}

	return &outline, nil
}
