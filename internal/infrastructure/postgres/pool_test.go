package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pricewatch-api/pkg/config"
)

func TestPoolConfig_DesdeCamposSueltos(t *testing.T) {
	pc, err := poolConfig(config.DBConfig{
		Host: "db.internal", Port: 5433, User: "reader", Password: "s3cret",
		DBName: "prices", SSLMode: "disable",
	})
	require.NoError(t, err)

	assert.Equal(t, "db.internal", pc.ConnConfig.Host)
	assert.EqualValues(t, 5433, pc.ConnConfig.Port)
	assert.Equal(t, "prices", pc.ConnConfig.Database)
	assert.Equal(t, "on", pc.ConnConfig.RuntimeParams["default_transaction_read_only"])
	assert.Equal(t, "pricewatch-api", pc.ConnConfig.RuntimeParams["application_name"])
	assert.EqualValues(t, defaultMaxConns, pc.MaxConns)
	assert.EqualValues(t, 2, pc.MinConns)
	assert.NotNil(t, pc.AfterConnect)
}

func TestPoolConfig_DatabaseURLTienePrioridad(t *testing.T) {
	pc, err := poolConfig(config.DBConfig{
		DatabaseURL: "postgres://u:p@primary:5432/prod?sslmode=disable",
		Host:        "ignorado",
		MaxConns:    1,
	})
	require.NoError(t, err)

	assert.Equal(t, "primary", pc.ConnConfig.Host)
	assert.Equal(t, "prod", pc.ConnConfig.Database)
	assert.EqualValues(t, 1, pc.MaxConns)
	assert.EqualValues(t, 1, pc.MinConns)
}

func TestPoolConfig_DSNInvalido(t *testing.T) {
	_, err := poolConfig(config.DBConfig{DatabaseURL: "postgres://%zz"})
	assert.Error(t, err)
}
