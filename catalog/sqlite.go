package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/rushteam/filmrec/core"
	"github.com/rushteam/filmrec/pkg/logging"
)

// DefaultTable 是 SQLite 中目录表的默认名称
const DefaultTable = "movies"

var identPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// SQLiteLoader 从 SQLite 表加载目录，列名与 CSV 表头一致。
type SQLiteLoader struct {
	DSN   string
	Table string
}

// NewSQLiteLoader 创建 SQLite 加载器；table 为空时使用 DefaultTable。
func NewSQLiteLoader(dsn, table string) *SQLiteLoader {
	if table == "" {
		table = DefaultTable
	}
	return &SQLiteLoader{DSN: dsn, Table: table}
}

func (l *SQLiteLoader) Name() string { return "catalog.sqlite" }

func (l *SQLiteLoader) Load(ctx context.Context) (*Catalog, error) {
	if !identPattern.MatchString(l.Table) {
		return nil, core.NewDomainError(core.ModuleCatalog, core.ErrorCodeInvalidInput,
			fmt.Sprintf("invalid table name %q", l.Table))
	}

	db, err := sql.Open("sqlite", l.DSN)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	defer db.Close()

	c, err := ReadSQL(ctx, db, l.Table)
	if err != nil {
		return nil, err
	}
	logging.Component("catalog").Info().
		Str("source", l.DSN).
		Str("table", l.Table).
		Int("loaded", c.stats.Loaded).
		Int("dropped", c.stats.Dropped).
		Int("duplicates", c.stats.Duplicates).
		Msg("catalog loaded")
	return c, nil
}

// ReadSQL 从已打开的数据库读取目录表。NULL 视为缺失值。
func ReadSQL(ctx context.Context, db *sql.DB, table string) (*Catalog, error) {
	if !identPattern.MatchString(table) {
		return nil, core.NewDomainError(core.ModuleCatalog, core.ErrorCodeInvalidInput,
			fmt.Sprintf("invalid table name %q", table))
	}

	rows, err := db.QueryContext(ctx, "SELECT * FROM "+table)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", table, err)
	}
	defer rows.Close()

	header, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("columns: %w", err)
	}
	parser, err := newRowParser(header)
	if err != nil {
		return nil, err
	}

	values := make([]sql.NullString, len(header))
	dest := make([]any, len(header))
	for i := range values {
		dest[i] = &values[i]
	}
	record := make([]string, len(header))

	var (
		movies  []*core.Movie
		dropped int
	)
	for rows.Next() {
		if err := rows.Scan(dest...); err != nil {
			dropped++
			continue
		}
		for i, v := range values {
			record[i] = ""
			if v.Valid {
				record[i] = v.String
			}
		}
		m, ok := parser.parse(record)
		if !ok {
			dropped++
			continue
		}
		movies = append(movies, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate %s: %w", table, err)
	}

	return parser.build(movies, dropped), nil
}
