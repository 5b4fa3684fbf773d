package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/mattn/go-sqlite3"
	"github.com/sirupsen/logrus"

	"github.com/soberlog/soberlog/internal/schema"
)

// SQLiteBackend stores each collection in its own table with scalar
// columns plus TEXT columns for JSON-kind fields.
type SQLiteBackend struct {
	db  *sql.DB
	reg *schema.Registry
}

// NewSQLiteBackend opens (and creates if needed) the database file.
func NewSQLiteBackend(path string) (*SQLiteBackend, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}

	dsn := fmt.Sprintf("file:%s?_busy_timeout=5000&_journal_mode=WAL&_foreign_keys=on", path)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	logrus.WithField("path", path).Info("SQLite backend opened")
	return &SQLiteBackend{db: db}, nil
}

func (b *SQLiteBackend) Name() string { return "sqlite" }

// Init creates one table per registered collection. Idempotent.
func (b *SQLiteBackend) Init(reg *schema.Registry) error {
	b.reg = reg
	for _, name := range reg.Names() {
		c, _ := reg.Collection(name)
		if _, err := b.db.Exec(createTableSQL(c)); err != nil {
			return fmt.Errorf("create table %s: %w", name, err)
		}
	}
	return nil
}

func createTableSQL(c *schema.Collection) string {
	var cols []string
	cols = append(cols, "id TEXT PRIMARY KEY")
	for _, f := range c.Fields {
		def := fmt.Sprintf("%s %s", f.Name, sqlType(f.Kind))
		if f.Required {
			def += " NOT NULL"
		}
		cols = append(cols, def)
	}
	cols = append(cols, "createdAt TEXT", "updatedAt TEXT")
	return fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (%s)", c.Name, strings.Join(cols, ", "))
}

func sqlType(k schema.Kind) string {
	switch k {
	case schema.KindInteger, schema.KindBoolean:
		return "INTEGER"
	case schema.KindReal:
		return "REAL"
	default:
		return "TEXT"
	}
}

// columnNames returns the full physical column list for a collection.
func (b *SQLiteBackend) columnNames(c *schema.Collection) []string {
	cols := make([]string, 0, len(c.Fields)+3)
	cols = append(cols, "id")
	for _, f := range c.Fields {
		cols = append(cols, f.Name)
	}
	cols = append(cols, "createdAt", "updatedAt")
	return cols
}

func (b *SQLiteBackend) GetAll(ctx context.Context, collection string) ([]Record, error) {
	c, ok := b.reg.Collection(collection)
	if !ok {
		return []Record{}, nil
	}
	cols := b.columnNames(c)
	// rowid keeps insertion order, matching the flat backend.
	q := fmt.Sprintf("SELECT %s FROM %s ORDER BY rowid", strings.Join(cols, ", "), collection)
	rows, err := b.db.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("select all from %s: %w", collection, err)
	}
	defer rows.Close()
	return b.scanRows(c, cols, rows)
}

func (b *SQLiteBackend) GetByID(ctx context.Context, collection, id string) (Record, error) {
	c, ok := b.reg.Collection(collection)
	if !ok {
		return nil, nil
	}
	cols := b.columnNames(c)
	q := fmt.Sprintf("SELECT %s FROM %s WHERE id = ?", strings.Join(cols, ", "), collection)
	rows, err := b.db.QueryContext(ctx, q, id)
	if err != nil {
		return nil, fmt.Errorf("select %s by id: %w", collection, err)
	}
	defer rows.Close()
	recs, err := b.scanRows(c, cols, rows)
	if err != nil {
		return nil, err
	}
	if len(recs) == 0 {
		return nil, nil
	}
	return recs[0], nil
}

func (b *SQLiteBackend) Insert(ctx context.Context, collection string, rec Record) error {
	c, ok := b.reg.Collection(collection)
	if !ok {
		return fmt.Errorf("unknown collection %q", collection)
	}
	var cols []string
	var marks []string
	var args []any
	for _, col := range b.columnNames(c) {
		value, present := rec[col]
		if !present {
			continue
		}
		cols = append(cols, col)
		marks = append(marks, "?")
		args = append(args, bindValue(fieldKind(c, col), value))
	}
	q := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		collection, strings.Join(cols, ", "), strings.Join(marks, ", "))
	if _, err := b.db.ExecContext(ctx, q, args...); err != nil {
		return fmt.Errorf("insert into %s: %w", collection, err)
	}
	return nil
}

// Update replaces the whole row: columns absent from rec become NULL, the
// same way the flat backend's record replacement drops them.
func (b *SQLiteBackend) Update(ctx context.Context, collection, id string, rec Record) error {
	c, ok := b.reg.Collection(collection)
	if !ok {
		return fmt.Errorf("unknown collection %q", collection)
	}
	var sets []string
	var args []any
	for _, col := range b.columnNames(c) {
		if col == "id" {
			continue
		}
		sets = append(sets, col+" = ?")
		if value, present := rec[col]; present {
			args = append(args, bindValue(fieldKind(c, col), value))
		} else {
			args = append(args, nil)
		}
	}
	args = append(args, id)
	q := fmt.Sprintf("UPDATE %s SET %s WHERE id = ?", collection, strings.Join(sets, ", "))
	if _, err := b.db.ExecContext(ctx, q, args...); err != nil {
		return fmt.Errorf("update %s: %w", collection, err)
	}
	return nil
}

func (b *SQLiteBackend) Delete(ctx context.Context, collection, id string) (bool, error) {
	if _, ok := b.reg.Collection(collection); !ok {
		return false, nil
	}
	res, err := b.db.ExecContext(ctx, fmt.Sprintf("DELETE FROM %s WHERE id = ?", collection), id)
	if err != nil {
		return false, fmt.Errorf("delete from %s: %w", collection, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// Select pushes equality predicates, ordering and limit down to SQLite.
// Only scalar schema fields may appear; anything else is a translation
// error rather than a silent empty result.
func (b *SQLiteBackend) Select(ctx context.Context, q Query) ([]Record, error) {
	c, ok := b.reg.Collection(q.Collection)
	if !ok {
		return []Record{}, nil
	}

	for field := range q.Eq {
		if !translatable(c, field) {
			return nil, fmt.Errorf("%w: cannot filter %s.%s", ErrQueryTranslation, q.Collection, field)
		}
	}
	if q.OrderBy != "" && !translatable(c, q.OrderBy) {
		return nil, fmt.Errorf("%w: cannot order by %s.%s", ErrQueryTranslation, q.Collection, q.OrderBy)
	}

	cols := b.columnNames(c)
	sb := strings.Builder{}
	fmt.Fprintf(&sb, "SELECT %s FROM %s", strings.Join(cols, ", "), q.Collection)

	var args []any
	if len(q.Eq) > 0 {
		var clauses []string
		// Deterministic clause order keeps statements cacheable.
		for _, col := range cols {
			if want, ok := q.Eq[col]; ok {
				clauses = append(clauses, col+" = ?")
				args = append(args, bindValue(fieldKind(c, col), want))
			}
		}
		sb.WriteString(" WHERE " + strings.Join(clauses, " AND "))
	}

	if q.OrderBy != "" {
		dir := "ASC"
		if q.Desc {
			dir = "DESC"
		}
		// Secondary rowid sort makes the ordering stable, matching the
		// flat backend's sort.SliceStable.
		fmt.Fprintf(&sb, " ORDER BY %s %s, rowid ASC", q.OrderBy, dir)
	} else {
		sb.WriteString(" ORDER BY rowid ASC")
	}

	if q.Limit > 0 {
		fmt.Fprintf(&sb, " LIMIT %d", q.Limit)
	}

	rows, err := b.db.QueryContext(ctx, sb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrQueryTranslation, err)
	}
	defer rows.Close()
	return b.scanRows(c, cols, rows)
}

// translatable reports whether a field can appear in a pushed-down
// predicate: standard columns and scalar schema fields only.
func translatable(c *schema.Collection, field string) bool {
	switch field {
	case "id", "createdAt", "updatedAt":
		return true
	}
	f, ok := c.Field(field)
	return ok && f.Kind != schema.KindJSON
}

func fieldKind(c *schema.Collection, col string) schema.Kind {
	switch col {
	case "id", "createdAt", "updatedAt":
		return schema.KindText
	}
	if f, ok := c.Field(col); ok {
		return f.Kind
	}
	return schema.KindText
}

// bindValue coerces a loose record value to the driver type the column
// expects. JSON decoding hands us float64 for every number.
func bindValue(kind schema.Kind, value any) any {
	if value == nil {
		return nil
	}
	switch kind {
	case schema.KindInteger:
		if f, ok := asFloat(value); ok {
			return int64(f)
		}
	case schema.KindBoolean:
		if bv, ok := value.(bool); ok {
			return bv
		}
		if f, ok := asFloat(value); ok {
			return f != 0
		}
	}
	return value
}

func (b *SQLiteBackend) scanRows(c *schema.Collection, cols []string, rows *sql.Rows) ([]Record, error) {
	out := []Record{}
	for rows.Next() {
		dest := make([]any, len(cols))
		for i := range dest {
			var v any
			dest[i] = &v
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("scan %s row: %w", c.Name, err)
		}
		rec := make(Record, len(cols))
		for i, col := range cols {
			value := *(dest[i].(*any))
			if value == nil {
				continue
			}
			rec[col] = unbindValue(fieldKind(c, col), value)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// unbindValue converts driver types back into record values.
func unbindValue(kind schema.Kind, value any) any {
	if raw, ok := value.([]byte); ok {
		value = string(raw)
	}
	if kind == schema.KindBoolean {
		if n, ok := value.(int64); ok {
			return n != 0
		}
		if bv, ok := value.(bool); ok {
			return bv
		}
	}
	return value
}

func (b *SQLiteBackend) Close() error {
	return b.db.Close()
}
