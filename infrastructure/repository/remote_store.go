package repository

import (
	"context"
	"database/sql"
	"sort"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/pkg/errors"
	"github.com/vfg2006/c4-store-api/infrastructure/database/postgres"
	"github.com/vfg2006/c4-store-api/internal/domain"
	"github.com/vfg2006/c4-store-api/pkg/utils"
)

const remoteColumns = "id, user_id, data, created_at, updated_at"

// RemoteStore grava cada tabela no Postgres com as colunas reservadas e os demais campos em JSONB
type RemoteStore struct {
	conn  postgres.Conn
	clock func() time.Time
	newID func(prefix string) (string, error)
}

func NewRemoteStore(conn postgres.Conn) *RemoteStore {
	return &RemoteStore{
		conn:  conn,
		clock: time.Now,
		newID: utils.GenerateID,
	}
}

func (s *RemoteStore) Ping(ctx context.Context) error {
	if s == nil || s.conn == nil {
		return ErrRemoteUnavailable
	}
	if err := s.conn.Ping(ctx); err != nil {
		return errors.Wrap(ErrRemoteUnavailable, err.Error())
	}
	return nil
}

func (s *RemoteStore) Select(ctx context.Context, table string, filters domain.Filters) ([]domain.Record, error) {
	if s == nil || s.conn == nil {
		return nil, ErrRemoteUnavailable
	}

	query, args, err := buildSelect(table, filters)
	if err != nil {
		return nil, err
	}

	rows, err := s.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, wrapPQError(err, "erro ao executar a query")
	}
	defer rows.Close()

	return scanRecords(rows)
}

func (s *RemoteStore) Insert(ctx context.Context, table string, data domain.Record) (domain.Record, error) {
	if s == nil || s.conn == nil {
		return nil, ErrRemoteUnavailable
	}

	record := data.Clone()
	if record.ID() == "" {
		id, err := s.newID(domain.TablePrefix(table))
		if err != nil {
			return nil, errors.Wrap(err, "erro ao gerar id")
		}
		record[domain.FieldID] = id
	}

	now := s.clock().UTC()
	query, args, err := buildInsert(table, record, now)
	if err != nil {
		return nil, err
	}

	row := s.conn.QueryRowContext(ctx, query, args...)
	inserted, err := scanRecord(row)
	if err != nil {
		return nil, wrapPQError(err, "erro ao inserir registro")
	}
	return inserted, nil
}

func (s *RemoteStore) Update(ctx context.Context, table string, data domain.Record, filters domain.Filters) ([]domain.Record, error) {
	if s == nil || s.conn == nil {
		return nil, ErrRemoteUnavailable
	}

	if len(filters) == 0 {
		return []domain.Record{}, nil
	}

	query, args, err := buildUpdate(table, data, filters, s.clock().UTC())
	if err != nil {
		return nil, err
	}

	rows, err := s.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, wrapPQError(err, "erro ao atualizar registros")
	}
	defer rows.Close()

	return scanRecords(rows)
}

func (s *RemoteStore) Delete(ctx context.Context, table string, filters domain.Filters) error {
	if s == nil || s.conn == nil {
		return ErrRemoteUnavailable
	}

	if len(filters) == 0 {
		return nil
	}

	query, args, err := buildDelete(table, filters)
	if err != nil {
		return err
	}

	if _, err := s.conn.ExecContext(ctx, query, args...); err != nil {
		return wrapPQError(err, "erro ao remover registros")
	}
	return nil
}

// Upsert envia os registros locais, sobrescrevendo os remotos de mesmo id
func (s *RemoteStore) Upsert(ctx context.Context, table string, records []domain.Record) error {
	if s == nil || s.conn == nil {
		return ErrRemoteUnavailable
	}

	if len(records) == 0 {
		return nil
	}

	query, args, err := buildUpsert(table, records, s.clock().UTC())
	if err != nil {
		return err
	}

	return s.conn.RunInTransaction(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return wrapPQError(err, "erro ao sincronizar registros")
		}
		return nil
	})
}

func buildSelect(table string, filters domain.Filters) (string, []any, error) {
	if err := checkTable(table); err != nil {
		return "", nil, err
	}

	builder := squirrel.
		Select(remoteColumns).
		From(table).
		OrderBy("created_at ASC").
		PlaceholderFormat(squirrel.Dollar)

	where, err := whereClause(filters, true)
	if err != nil {
		return "", nil, err
	}
	if where != nil {
		builder = builder.Where(where)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return "", nil, errors.Wrap(err, "erro ao construir a query")
	}
	return query, args, nil
}

func buildInsert(table string, record domain.Record, now time.Time) (string, []any, error) {
	if err := checkTable(table); err != nil {
		return "", nil, err
	}

	payload, err := dataColumn(record)
	if err != nil {
		return "", nil, err
	}

	userID, _ := record[domain.FieldUserID].(string)

	query, args, err := squirrel.
		Insert(table).
		Columns("id", "user_id", "data", "created_at", "updated_at").
		Values(record.ID(), userID, payload, now, now).
		Suffix("RETURNING " + remoteColumns).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return "", nil, errors.Wrap(err, "erro ao construir a query")
	}
	return query, args, nil
}

func buildUpdate(table string, data domain.Record, filters domain.Filters, now time.Time) (string, []any, error) {
	if err := checkTable(table); err != nil {
		return "", nil, err
	}

	payload, err := dataColumn(data.WithoutImmutable())
	if err != nil {
		return "", nil, err
	}

	where, err := whereClause(filters, false)
	if err != nil {
		return "", nil, err
	}

	query, args, err := squirrel.
		Update(table).
		Set("data", squirrel.Expr("data || ?::jsonb", payload)).
		Set("updated_at", now).
		Where(where).
		Suffix("RETURNING " + remoteColumns).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return "", nil, errors.Wrap(err, "erro ao construir a query")
	}
	return query, args, nil
}

func buildDelete(table string, filters domain.Filters) (string, []any, error) {
	if err := checkTable(table); err != nil {
		return "", nil, err
	}

	where, err := whereClause(filters, false)
	if err != nil {
		return "", nil, err
	}

	query, args, err := squirrel.
		Delete(table).
		Where(where).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return "", nil, errors.Wrap(err, "erro ao construir a query")
	}
	return query, args, nil
}

func buildUpsert(table string, records []domain.Record, now time.Time) (string, []any, error) {
	if err := checkTable(table); err != nil {
		return "", nil, err
	}

	builder := squirrel.
		Insert(table).
		Columns("id", "user_id", "data", "created_at", "updated_at")

	for _, rec := range records {
		payload, err := dataColumn(rec)
		if err != nil {
			return "", nil, err
		}

		userID, _ := rec[domain.FieldUserID].(string)
		createdAt := timestampOr(rec[domain.FieldCreatedAt], now)
		updatedAt := timestampOr(rec[domain.FieldUpdatedAt], now)

		builder = builder.Values(rec.ID(), userID, payload, createdAt, updatedAt)
	}

	query, args, err := builder.
		Suffix(`
			ON CONFLICT (id) DO UPDATE SET
				data = EXCLUDED.data,
				updated_at = EXCLUDED.updated_at
		`).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return "", nil, errors.Wrap(err, "erro ao construir a query")
	}
	return query, args, nil
}

// whereClause traduz os filtros. No modo de leitura strings casam por substring sem diferenciar
// maiúsculas, como no armazenamento local; nas escritas todo filtro é igualdade estrita.
func whereClause(filters domain.Filters, loose bool) (squirrel.Sqlizer, error) {
	if len(filters) == 0 {
		return nil, nil
	}

	fields := make([]string, 0, len(filters))
	for field := range filters {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	and := squirrel.And{}
	contained := domain.Record{}
	for _, field := range fields {
		value := filters[field]

		if loose {
			if value == nil {
				continue
			}
			if text, ok := value.(string); ok {
				if text == "" {
					continue
				}
				pattern := "%" + likeEscaper.Replace(text) + "%"
				if domain.IsReservedField(field) {
					and = append(and, squirrel.Expr(field+"::text ILIKE ?", pattern))
				} else {
					and = append(and, squirrel.Expr("data->>? ILIKE ?", field, pattern))
				}
				continue
			}
		}

		if domain.IsReservedField(field) {
			and = append(and, squirrel.Eq{field: value})
		} else {
			contained[field] = value
		}
	}

	if len(contained) > 0 {
		payload, err := json.Marshal(contained)
		if err != nil {
			return nil, errors.Wrap(err, "erro ao serializar filtros")
		}
		and = append(and, squirrel.Expr("data @> ?::jsonb", string(payload)))
	}

	if len(and) == 0 {
		return nil, nil
	}
	return and, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`)

func dataColumn(record domain.Record) (string, error) {
	payload := domain.Record{}
	for k, v := range record {
		if !domain.IsReservedField(k) {
			payload[k] = v
		}
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return "", errors.Wrap(err, "erro ao serializar dados para JSON")
	}
	return string(raw), nil
}

func timestampOr(value any, fallback time.Time) time.Time {
	s, ok := value.(string)
	if !ok {
		return fallback
	}
	t, err := utils.ParseTimestamp(s)
	if err != nil || t.IsZero() {
		return fallback
	}
	return t
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (domain.Record, error) {
	var (
		id        string
		userID    sql.NullString
		data      []byte
		createdAt time.Time
		updatedAt time.Time
	)

	if err := row.Scan(&id, &userID, &data, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	rec := domain.Record{}
	if len(data) > 0 {
		if err := json.Unmarshal(data, &rec); err != nil {
			return nil, errors.Wrapf(err, "erro ao desserializar dados do registro %s", id)
		}
	}

	rec[domain.FieldID] = id
	if userID.Valid {
		rec[domain.FieldUserID] = userID.String
	}
	rec[domain.FieldCreatedAt] = utils.FormatTimestamp(createdAt)
	rec[domain.FieldUpdatedAt] = utils.FormatTimestamp(updatedAt)

	return rec, nil
}

func scanRecords(rows *sql.Rows) ([]domain.Record, error) {
	records := make([]domain.Record, 0)
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, errors.Wrap(err, "erro ao escanear registros")
		}
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "erro durante a iteração de linhas")
	}

	return records, nil
}

func wrapPQError(err error, message string) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return errors.Wrapf(err, "%s (código: %s)", message, pqErr.Code)
	}
	return errors.Wrap(err, message)
}
