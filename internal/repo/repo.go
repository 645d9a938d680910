package repo

import (
	"context"
	"database/sql"
	"strconv"
	"strings"
	"time"

	_ "github.com/lib/pq"
)

type Repository interface {
	GetBylogin(ctx context.Context, login string) (int, string, error)
}

type PostgresDB struct {
	db *sql.DB
}

func NewPostgresDB(db *sql.DB) *PostgresDB {
	return &PostgresDB{db: db}
}

// Open connects to Postgres and checks the connection.
func Open(ctx context.Context, connStr string) (*sql.DB, error) {
	db, err := sql.Open("postgres", withSSLMode(connStr))
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

func withSSLMode(connStr string) string {
	if connStr == "" {
		connStr = "user=postgres dbname=postgres password=password sslmode=disable"
	}
	if strings.Contains(connStr, "sslmode=") {
		return connStr
	}
	if strings.HasPrefix(connStr, "postgres://") || strings.HasPrefix(connStr, "postgresql://") {
		if strings.Contains(connStr, "?") {
			return connStr + "&sslmode=require"
		}
		return connStr + "?sslmode=require"
	}
	return connStr + " sslmode=require"
}

// GetBylogin returns id 0 and an empty hash when the login does not exist.
func (r *PostgresDB) GetBylogin(ctx context.Context, login string) (int, string, error) {
	var id int
	var hash string

	query := "SELECT id, password FROM users WHERE login=$1"

	err := r.db.QueryRowContext(ctx, query, login).Scan(&id, &hash)
	if err != nil {
		if err == sql.ErrNoRows {
			return 0, "", nil
		}
		return 0, "", err
	}
	return id, hash, nil
}

// CatalogRows reads the cable_catalog table as a header row plus one row
// per diameter, in the column order the catalog parser expects.
func (r *PostgresDB) CatalogRows(ctx context.Context) ([][]string, error) {
	query := "SELECT diameter, area_mm2, breaking_load_kn, limit_kn FROM cable_catalog ORDER BY position, diameter"
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := [][]string{{"diameter", "area_mm2", "breaking_load_kn", "limit_kn"}}
	for rows.Next() {
		var diameter, area, breaking float64
		var limit sql.NullFloat64
		if err := rows.Scan(&diameter, &area, &breaking, &limit); err != nil {
			return nil, err
		}
		row := []string{formatFloat(diameter), formatFloat(area), formatFloat(breaking), ""}
		if limit.Valid {
			row[3] = formatFloat(limit.Float64)
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
