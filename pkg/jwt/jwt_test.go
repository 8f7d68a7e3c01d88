package jwt_test

import (
	"testing"

	"github.com/jhoicas/apimarket/pkg/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateParse_RoundTrip(t *testing.T) {
	token, err := jwt.Generate("secreto", 42, "cajero", "apimarket", 5)
	require.NoError(t, err)

	id, role, err := jwt.Parse("secreto", token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)
	assert.Equal(t, "cajero", role)
}

func TestParse_WrongSecret(t *testing.T) {
	token, err := jwt.Generate("secreto", 1, "admin", "apimarket", 5)
	require.NoError(t, err)

	_, _, err = jwt.Parse("otro", token)
	assert.Error(t, err)
}

func TestParse_Expired(t *testing.T) {
	token, err := jwt.Generate("secreto", 1, "admin", "apimarket", -1)
	require.NoError(t, err)

	_, _, err = jwt.Parse("secreto", token)
	assert.Error(t, err)
}

func TestGenerate_EmptySecret(t *testing.T) {
	_, err := jwt.Generate("", 1, "admin", "apimarket", 5)
	assert.Error(t, err)
}
