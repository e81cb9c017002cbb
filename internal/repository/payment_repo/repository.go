package payment_repo

import (
	"context"
	"errors"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
	trmpgx "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/develophasan/SlotyPi/internal/model"
	"github.com/develophasan/SlotyPi/internal/repository"
)

const (
	table                  = "payments"
	colPiPaymentID         = "pi_payment_id"
	colUserID              = "user_id"
	colDirection           = "direction"
	colNetwork             = "network"
	colAmountPi            = "amount_pi"
	colMemo                = "memo"
	colMetadata            = "metadata"
	colTxID                = "txid"
	colDeveloperApproved   = "developer_approved"
	colTransactionVerified = "transaction_verified"
	colDeveloperCompleted  = "developer_completed"
	colCancelled           = "cancelled"
	colUserCancelled       = "user_cancelled"
	colLedgerEntryID       = "ledger_entry_id"
	colCreatedAt           = "created_at"
	colUpdatedAt           = "updated_at"
)

// Колонки, которые обновляются при повторном upsert
var mutableColumns = []string{
	colDirection, colNetwork, colAmountPi, colMemo, colMetadata, colTxID,
	colDeveloperApproved, colTransactionVerified, colDeveloperCompleted, colCancelled, colUserCancelled,
}

var returningColumns = []string{
	colPiPaymentID, colUserID, colDirection, colNetwork, colAmountPi + "::TEXT", colMemo, colMetadata, colTxID,
	colDeveloperApproved, colTransactionVerified, colDeveloperCompleted, colCancelled, colUserCancelled,
	colLedgerEntryID, colCreatedAt, colUpdatedAt,
}

type repo struct {
	dbc    *pgxpool.Pool
	getter *trmpgx.CtxGetter
}

func NewPaymentRepository(dbc *pgxpool.Pool) repository.PaymentRepository {
	return &repo{
		dbc:    dbc,
		getter: trmpgx.DefaultCtxGetter,
	}
}

// Upsert - сохраняет актуальное состояние платежа из Pi API
func (r *repo) Upsert(ctx context.Context, p *model.Payment) (*model.Payment, error) {
	metadata := p.Metadata
	if len(metadata) == 0 {
		metadata = []byte("{}")
	}

	set := make([]string, 0, len(mutableColumns)+1)
	for _, col := range mutableColumns {
		set = append(set, col+" = EXCLUDED."+col)
	}
	set = append(set, colUpdatedAt+" = now()")

	query := sq.Insert(table).
		Columns(colPiPaymentID, colUserID, colDirection, colNetwork, colAmountPi, colMemo, colMetadata, colTxID,
			colDeveloperApproved, colTransactionVerified, colDeveloperCompleted, colCancelled, colUserCancelled).
		Values(p.PiPaymentID, p.UserID, p.Direction, p.Network, p.AmountPi.String(), p.Memo, string(metadata), p.TxID,
			p.DeveloperApproved, p.TransactionVerified, p.DeveloperCompleted, p.Cancelled, p.UserCancelled).
		Suffix("ON CONFLICT (" + colPiPaymentID + ") DO UPDATE SET " + strings.Join(set, ", ") +
			" RETURNING " + strings.Join(returningColumns, ", ")).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	saved, err := scanPayment(r.getter.DefaultTrOrDB(ctx, r.dbc).QueryRow(ctx, sqlStr, args...))
	if err != nil {
		return nil, fmt.Errorf("upsert payment %s: %w", p.PiPaymentID, err)
	}
	return saved, nil
}

// GetByPiPaymentID - repository.ErrNotFound, если платежа нет
func (r *repo) GetByPiPaymentID(ctx context.Context, piPaymentID string) (*model.Payment, error) {
	query := sq.Select(returningColumns...).
		From(table).
		Where(sq.Eq{colPiPaymentID: piPaymentID}).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	p, err := scanPayment(r.getter.DefaultTrOrDB(ctx, r.dbc).QueryRow(ctx, sqlStr, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("get payment %s: %w", piPaymentID, err)
	}
	return p, nil
}

// LinkLedgerEntry - привязывает платеж к записи леджера, которая его зачислила
func (r *repo) LinkLedgerEntry(ctx context.Context, piPaymentID, entryID string) error {
	query := sq.Update(table).
		Set(colLedgerEntryID, entryID).
		Set(colUpdatedAt, sq.Expr("now()")).
		Where(sq.Eq{colPiPaymentID: piPaymentID}).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return err
	}

	tag, err := r.getter.DefaultTrOrDB(ctx, r.dbc).Exec(ctx, sqlStr, args...)
	if err != nil {
		return fmt.Errorf("link payment %s: %w", piPaymentID, err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func scanPayment(row pgx.Row) (*model.Payment, error) {
	var (
		p       model.Payment
		amount  string
		entryID *string
	)
	err := row.Scan(&p.PiPaymentID, &p.UserID, &p.Direction, &p.Network, &amount, &p.Memo, &p.Metadata, &p.TxID,
		&p.DeveloperApproved, &p.TransactionVerified, &p.DeveloperCompleted, &p.Cancelled, &p.UserCancelled,
		&entryID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}

	p.AmountPi, err = decimal.NewFromString(amount)
	if err != nil {
		return nil, fmt.Errorf("parse amount_pi %q: %w", amount, err)
	}
	if entryID != nil {
		p.LedgerEntryID = *entryID
	}
	return &p, nil
}
