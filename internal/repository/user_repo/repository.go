package user_repo

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	trmpgx "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/develophasan/SlotyPi/internal/model"
	"github.com/develophasan/SlotyPi/internal/repository"
)

const (
	table        = "users"
	colID        = "id"
	colPiUID     = "pi_uid"
	colUsername  = "username"
	colCreatedAt = "created_at"
	colUpdatedAt = "updated_at"
)

type repo struct {
	dbc    *pgxpool.Pool
	getter *trmpgx.CtxGetter
}

func NewUserRepository(dbc *pgxpool.Pool) repository.UserRepository {
	return &repo{
		dbc:    dbc,
		getter: trmpgx.DefaultCtxGetter,
	}
}

// UpsertByPiUID - создает пользователя при первом входе через Pi, иначе обновляет имя.
// Возвращает сохраненную модель
func (r *repo) UpsertByPiUID(ctx context.Context, user *model.User) (*model.User, error) {
	query := sq.Insert(table).
		Columns(colID, colPiUID, colUsername).
		Values(uuid.NewString(), user.PiUID, user.Username).
		Suffix("ON CONFLICT (" + colPiUID + ") DO UPDATE SET " +
			colUsername + " = EXCLUDED." + colUsername + ", " + colUpdatedAt + " = now() " +
			"RETURNING " + colID + ", " + colPiUID + ", " + colUsername + ", " + colCreatedAt).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	var saved model.User
	err = r.getter.DefaultTrOrDB(ctx, r.dbc).QueryRow(ctx, sqlStr, args...).
		Scan(&saved.ID, &saved.PiUID, &saved.Username, &saved.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("upsert user %s: %w", user.PiUID, err)
	}
	return &saved, nil
}

// GetByID - repository.ErrNotFound, если пользователя нет
func (r *repo) GetByID(ctx context.Context, id string) (*model.User, error) {
	query := sq.Select(colID, colPiUID, colUsername, colCreatedAt).
		From(table).
		Where(sq.Eq{colID: id}).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	var user model.User
	err = r.getter.DefaultTrOrDB(ctx, r.dbc).QueryRow(ctx, sqlStr, args...).
		Scan(&user.ID, &user.PiUID, &user.Username, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("get user %s: %w", id, err)
	}
	return &user, nil
}
