//go:build unit

package pgconv_test

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"
	"time"

	"storefront-api/internal/pkg/pgconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/assert"
)

func TestNullableConversions(t *testing.T) {
	assert.Nil(t, pgconv.StringPtrFromPgtype(pgtype.Text{}))
	assert.Equal(t, "x", *pgconv.StringPtrFromPgtype(pgconv.StringToPgtype("x")))

	assert.False(t, pgconv.StringPtrToPgtype(nil).Valid)
	s := "GIFT1234"
	assert.Equal(t, pgtype.Text{String: s, Valid: true}, pgconv.StringPtrToPgtype(&s))

	now := time.Now()
	assert.Nil(t, pgconv.TimePtrFromPgtype(pgtype.Timestamptz{}))
	assert.Equal(t, now, *pgconv.TimePtrFromPgtype(pgconv.TimeToPgtype(now)))
}

func TestIsNoRows(t *testing.T) {
	assert.True(t, pgconv.IsNoRows(pgx.ErrNoRows))
	assert.True(t, pgconv.IsNoRows(sql.ErrNoRows))
	assert.True(t, pgconv.IsNoRows(fmt.Errorf("wrapped: %w", pgx.ErrNoRows)))
	assert.False(t, pgconv.IsNoRows(errors.New("boom")))
	assert.False(t, pgconv.IsNoRows(nil))
}
