package idgen_test

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"carcassonne/internal/pkg/idgen"
)

func TestUUIDGenerator(t *testing.T) {
	id := idgen.NewUUID("sub").Generate()

	require.True(t, strings.HasPrefix(id, "sub_"))
	_, err := uuid.Parse(strings.TrimPrefix(id, "sub_"))
	assert.NoError(t, err)
	assert.NotEqual(t, id, idgen.NewUUID("sub").Generate())
}

func TestSequentialGenerator(t *testing.T) {
	gen := idgen.NewSequential("conn")

	assert.Equal(t, "conn_1", gen.Generate())
	assert.Equal(t, "conn_2", gen.Generate())
	assert.Equal(t, "1", idgen.NewSequential("").Generate())
}
