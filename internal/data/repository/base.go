package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"movies-api/internal/dto/request"
	"movies-api/pkg/database"
	"movies-api/pkg/utils"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/samber/lo"
	"go.uber.org/zap"
)

// Include loads a related collection onto already fetched items. Loaders run only when passed to a finder.
type Include[T any] func(ctx context.Context, db database.DBTX, items []*T) error

// table holds what the generic finders need to know about one entity: where it lives,
// how it is ordered and how a row becomes a value.
type table[T any] struct {
	db      database.DBTX
	log     *zap.Logger
	name    string
	columns string
	orderBy string
	scan    func(row pgx.Row) (*T, error)
}

func (t *table[T]) fail(msg string, err error, fields ...zap.Field) error {
	err = translateError(err)
	fields = append(fields, zap.Error(err), zap.String("table", t.name))
	if isSentinel(err) {
		t.log.Debug(msg, fields...)
	} else {
		t.log.Error(msg, fields...)
	}
	return fmt.Errorf("%s: %w", strings.ToLower(msg), err)
}

func lockClause(trackChanges bool) string {
	if trackChanges {
		return " FOR UPDATE"
	}
	return ""
}

func (t *table[T]) exists(ctx context.Context, id uuid.UUID) (bool, error) {
	query := fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE id = $1)`, t.name)

	var exists bool
	if err := t.db.QueryRow(ctx, query, id).Scan(&exists); err != nil {
		return false, t.fail("Failed to check existence", err, zap.String("id", id.String()))
	}
	return exists, nil
}

func (t *table[T]) findByID(ctx context.Context, id uuid.UUID, trackChanges bool, includes ...Include[T]) (*T, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE id = $1%s`, t.columns, t.name, lockClause(trackChanges))

	item, err := t.scan(t.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, t.fail("Failed to find by id", err, zap.String("id", id.String()))
	}

	if err := t.load(ctx, []*T{item}, includes); err != nil {
		return nil, err
	}
	return item, nil
}

// findWhere returns every row matching where, in the table's stable order.
func (t *table[T]) findWhere(ctx context.Context, trackChanges bool, where string, args []any, includes ...Include[T]) ([]*T, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s ORDER BY %s%s`,
		t.columns, t.name, where, t.orderBy, lockClause(trackChanges))

	items, err := t.query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	if err := t.load(ctx, items, includes); err != nil {
		return nil, err
	}
	return items, nil
}

// findPage counts the rows matching where and returns one page of them. An empty where selects all rows.
func (t *table[T]) findPage(ctx context.Context, trackChanges bool, params request.PaginatedRequest, where string, args []any, includes ...Include[T]) ([]*T, utils.PaginationMetadata, error) {
	params = params.Normalize()

	filter := ""
	if where != "" {
		filter = " WHERE " + where
	}

	var total int64
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM %s%s`, t.name, filter)
	if err := t.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, utils.PaginationMetadata{}, t.fail("Failed to count rows", err)
	}

	query := fmt.Sprintf(`SELECT %s FROM %s%s ORDER BY %s LIMIT $%d OFFSET $%d%s`,
		t.columns, t.name, filter, t.orderBy, len(args)+1, len(args)+2, lockClause(trackChanges))
	pageArgs := append(append([]any{}, args...), params.Limit(), params.Offset())

	items, err := t.query(ctx, query, pageArgs...)
	if err != nil {
		return nil, utils.PaginationMetadata{}, err
	}
	if err := t.load(ctx, items, includes); err != nil {
		return nil, utils.PaginationMetadata{}, err
	}

	return items, utils.NewPaginationMetadata(total, params.PageSize, params.Page), nil
}

func (t *table[T]) query(ctx context.Context, query string, args ...any) ([]*T, error) {
	rows, err := t.db.Query(ctx, query, args...)
	if err != nil {
		return nil, t.fail("Failed to query rows", err)
	}

	items, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*T, error) {
		return t.scan(row)
	})
	if err != nil {
		return nil, t.fail("Failed to scan rows", err)
	}
	return items, nil
}

func (t *table[T]) load(ctx context.Context, items []*T, includes []Include[T]) error {
	if len(items) == 0 {
		return nil
	}
	for _, include := range includes {
		if err := include(ctx, t.db, items); err != nil {
			return t.fail("Failed to load include", err)
		}
	}
	return nil
}

// deleteByID removes a row by id. A row that is already gone is reported as ErrEditConflict so
// callers can tell a concurrent delete apart from a missing id they never checked.
func (t *table[T]) deleteByID(ctx context.Context, id uuid.UUID) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, t.name)

	tag, err := t.db.Exec(ctx, query, id)
	if err != nil {
		return t.fail("Failed to delete row", err, zap.String("id", id.String()))
	}
	if tag.RowsAffected() == 0 {
		return t.fail("Failed to delete row", ErrEditConflict, zap.String("id", id.String()))
	}
	return nil
}

func idStrings(ids []uuid.UUID) []string {
	return lo.Map(lo.Uniq(ids), func(id uuid.UUID, _ int) string {
		return id.String()
	})
}
