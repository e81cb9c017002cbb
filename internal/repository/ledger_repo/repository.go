package ledger_repo

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	trmpgx "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/develophasan/SlotyPi/internal/model"
	"github.com/develophasan/SlotyPi/internal/repository"
)

const (
	table            = "ledger_entries"
	colID            = "id"
	colUserID        = "user_id"
	colType          = "type"
	colAmountCredits = "amount_credits"
	colRefType       = "ref_type"
	colRefID         = "ref_id"
	colMetadata      = "metadata"
	colCreatedAt     = "created_at"

	uniqueViolation = "23505"
)

var selectColumns = []string{colID, colUserID, colType, colAmountCredits, colRefType, colRefID, colMetadata, colCreatedAt}

type repo struct {
	dbc    *pgxpool.Pool
	getter *trmpgx.CtxGetter
}

func NewLedgerRepository(dbc *pgxpool.Pool) repository.LedgerRepository {
	return &repo{
		dbc:    dbc,
		getter: trmpgx.DefaultCtxGetter,
	}
}

// LockUser - транзакционная advisory-блокировка по id пользователя.
// Снимается при commit/rollback, поэтому вызывать нужно внутри txManager.Do
func (r *repo) LockUser(ctx context.Context, userID string) error {
	_, err := r.getter.DefaultTrOrDB(ctx, r.dbc).
		Exec(ctx, "SELECT pg_advisory_xact_lock(hashtextextended($1, 0))", userID)
	if err != nil {
		return fmt.Errorf("lock user %s: %w", userID, err)
	}
	return nil
}

// Insert - добавляет запись. Повтор (ref_type, ref_id, type) возвращает repository.ErrDuplicateEntry
func (r *repo) Insert(ctx context.Context, entry *model.LedgerEntry) error {
	metadata := entry.Metadata
	if len(metadata) == 0 {
		metadata = []byte("{}")
	}

	query := sq.Insert(table).
		Columns(colID, colUserID, colType, colAmountCredits, colRefType, colRefID, colMetadata, colCreatedAt).
		Values(entry.ID, entry.UserID, string(entry.Type), entry.AmountCredits, entry.RefType, entry.RefID, string(metadata), entry.CreatedAt).
		// DO NOTHING не переводит транзакцию в aborted, в отличие от ошибки уникальности
		Suffix("ON CONFLICT (" + colRefType + ", " + colRefID + ", " + colType + ") DO NOTHING").
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return err
	}

	tag, err := r.getter.DefaultTrOrDB(ctx, r.dbc).Exec(ctx, sqlStr, args...)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return repository.ErrDuplicateEntry
		}
		return fmt.Errorf("insert ledger entry: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrDuplicateEntry
	}
	return nil
}

// SumByUser - баланс пользователя как сумма всех его записей. Нет записей - 0
func (r *repo) SumByUser(ctx context.Context, userID string) (int64, error) {
	query := sq.Select("COALESCE(SUM(" + colAmountCredits + "), 0)::BIGINT").
		From(table).
		Where(sq.Eq{colUserID: userID}).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return 0, err
	}

	var sum int64
	err = r.getter.DefaultTrOrDB(ctx, r.dbc).QueryRow(ctx, sqlStr, args...).Scan(&sum)
	if err != nil {
		return 0, fmt.Errorf("sum ledger: %w", err)
	}
	return sum, nil
}

// FindByRef - все записи пользователя с данной ссылкой, от новых к старым
func (r *repo) FindByRef(ctx context.Context, userID, refType, refID string) ([]model.LedgerEntry, error) {
	query := sq.Select(selectColumns...).
		From(table).
		Where(sq.Eq{colUserID: userID, colRefType: refType, colRefID: refID}).
		OrderBy(colCreatedAt+" DESC", colID+" DESC").
		PlaceholderFormat(sq.Dollar)

	return r.list(ctx, query)
}

// ListByUser - история пользователя, от новых к старым
func (r *repo) ListByUser(ctx context.Context, userID string, limit, offset int) ([]model.LedgerEntry, error) {
	query := sq.Select(selectColumns...).
		From(table).
		Where(sq.Eq{colUserID: userID}).
		OrderBy(colCreatedAt+" DESC", colID+" DESC").
		Limit(uint64(limit)).
		Offset(uint64(offset)).
		PlaceholderFormat(sq.Dollar)

	return r.list(ctx, query)
}

func (r *repo) list(ctx context.Context, query sq.SelectBuilder) ([]model.LedgerEntry, error) {
	sqlStr, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.getter.DefaultTrOrDB(ctx, r.dbc).Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("query ledger: %w", err)
	}

	entries, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (model.LedgerEntry, error) {
		var (
			e       model.LedgerEntry
			entType string
		)
		err := row.Scan(&e.ID, &e.UserID, &entType, &e.AmountCredits, &e.RefType, &e.RefID, &e.Metadata, &e.CreatedAt)
		e.Type = model.EntryType(entType)
		return e, err
	})
	if err != nil {
		return nil, fmt.Errorf("scan ledger: %w", err)
	}
	return entries, nil
}
