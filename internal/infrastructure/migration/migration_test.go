package migration

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRunMigrations_NoPool(t *testing.T) {
	assert.NoError(t, RunMigrations(context.Background(), nil))
}

func TestMigrations_Order(t *testing.T) {
	ms := Migrations()
	if assert.Len(t, ms, 2) {
		assert.Equal(t, "create_customization_runs", ms[0].Name)
		assert.NotNil(t, ms[1].Up)
	}
}
