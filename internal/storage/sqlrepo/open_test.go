package sqlrepo

import (
	"context"
	"testing"

	sq "github.com/Masterminds/squirrel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

)

func TestDialectFor(t *testing.T) {
	d, err := DialectFor("mysql")
	require.NoError(t, err)
	assert.Equal(t, sq.Question, d)

	for _, name := range []string{"pgx", "postgres"} {
		d, err = DialectFor(name)
		require.NoError(t, err)
		assert.Equal(t, sq.Dollar, d)
	}

	_, err = DialectFor("sqlite3")
	assert.ErrorContains(t, err, "unsupported DB_DRIVER")
}

func TestOpen_UnknownDriverFailsBeforeConnecting(t *testing.T) {
	db, _, err := Open(context.Background(), "oracle", "whatever")
	assert.Error(t, err)
	assert.Nil(t, db)
}
