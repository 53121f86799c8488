package configsrc_test

import (
	"context"
	"regexp"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dagrs-dev/dagrs/configsrc"
)

func TestPostgresLoad(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	src := configsrc.NewPostgresWithPool(mock, "dagrs_configs", "main")

	rows := pgxmock.NewRows([]string{"body"}).AddRow([]byte("dagrs: {}"))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT body FROM dagrs_configs WHERE name = $1")).
		WithArgs("main").
		WillReturnRows(rows)

	b, err := src.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "dagrs: {}", string(b))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresLoadMissing(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	src := configsrc.NewPostgresWithPool(mock, "dagrs_configs", "absent")

	mock.ExpectQuery(regexp.QuoteMeta("SELECT body FROM dagrs_configs WHERE name = $1")).
		WithArgs("absent").
		WillReturnError(pgx.ErrNoRows)

	_, err = src.Load(context.Background())
	assert.ErrorIs(t, err, configsrc.ErrNotFound)
}
