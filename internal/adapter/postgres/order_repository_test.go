package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"orderdash/internal/domain"
)

// fakeDB returns canned results so the repository's error mapping and row
// scanning can be exercised without a live pool.
type fakeDB struct {
	row     fakeRow
	rows    *fakeRows
	tag     fakeTag
	execErr error
}

type fakeRow struct {
	values []any
	err    error
}

func (r fakeRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	return scanInto(dest, r.values)
}

type fakeRows struct {
	rows [][]any
	pos  int
}

func (r *fakeRows) Next() bool {
	if r.pos >= len(r.rows) {
		return false
	}
	r.pos++
	return true
}

func (r *fakeRows) Scan(dest ...any) error {
	return scanInto(dest, r.rows[r.pos-1])
}

func (r *fakeRows) Err() error { return nil }
func (r *fakeRows) Close()     {}

type fakeTag struct {
	affected int64
}

func (t fakeTag) RowsAffected() int64 { return t.affected }

func (db *fakeDB) Query(context.Context, string, ...any) (Rows, error) { return db.rows, nil }
func (db *fakeDB) QueryRow(context.Context, string, ...any) Row        { return db.row }
func (db *fakeDB) Exec(context.Context, string, ...any) (CommandTag, error) {
	return db.tag, db.execErr
}
func (db *fakeDB) Ping(context.Context) error { return nil }
func (db *fakeDB) Close()                     {}

func scanInto(dest []any, values []any) error {
	for i, v := range values {
		switch d := dest[i].(type) {
		case *int:
			d2 := v.(int)
			*d = d2
		case *string:
			*d = v.(string)
		case *domain.Status:
			*d = domain.Status(v.(string))
		case *time.Time:
			*d = v.(time.Time)
		}
	}
	return nil
}

func orderValues(id int) []any {
	return []any{id, "c1", "Alice", "2x burger", "pending", time.Now().UTC()}
}

func TestFindByIDMapsNoRowsToNotFound(t *testing.T) {
	repo := NewOrderRepository(&fakeDB{row: fakeRow{err: pgx.ErrNoRows}})

	_, err := repo.FindByID(context.Background(), 42)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestFindByIDScansRow(t *testing.T) {
	repo := NewOrderRepository(&fakeDB{row: fakeRow{values: orderValues(7)}})

	order, err := repo.FindByID(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, 7, order.ID)
	assert.Equal(t, "c1", order.CustomerID)
	assert.Equal(t, domain.StatusPending, order.Status)
}

func TestListAllScansRows(t *testing.T) {
	repo := NewOrderRepository(&fakeDB{rows: &fakeRows{rows: [][]any{orderValues(2), orderValues(1)}}})

	orders, err := repo.ListAll(context.Background())
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Equal(t, 2, orders[0].ID)
	assert.Equal(t, 1, orders[1].ID)
}

func TestUpdateStatusReturnsAffectedCount(t *testing.T) {
	repo := NewOrderRepository(&fakeDB{tag: fakeTag{affected: 0}})

	affected, err := repo.UpdateStatus(context.Background(), 5, domain.StatusReady)
	require.NoError(t, err)
	assert.Zero(t, affected, "zero affected rows is not an error at this layer")
}

func TestDeleteReturnsAffectedCount(t *testing.T) {
	repo := NewOrderRepository(&fakeDB{tag: fakeTag{affected: 1}})

	affected, err := repo.Delete(context.Background(), 5)
	require.NoError(t, err)
	assert.EqualValues(t, 1, affected)
}
