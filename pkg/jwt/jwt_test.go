package jwt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/delivery-tax-api/pkg/jwt"
)

const secret = "secreto-de-prueba"

func TestGenerateYParse(t *testing.T) {
	token, err := jwt.Generate(secret, "admin", "delivery-tax-api", 60)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	subject, err := jwt.Parse(secret, token)
	require.NoError(t, err)
	assert.Equal(t, "admin", subject)
}

func TestParse_FirmaIncorrecta(t *testing.T) {
	token, err := jwt.Generate(secret, "admin", "delivery-tax-api", 60)
	require.NoError(t, err)

	_, err = jwt.Parse("otro-secreto", token)
	assert.Error(t, err)
}

func TestParse_TokenExpirado(t *testing.T) {
	token, err := jwt.Generate(secret, "admin", "delivery-tax-api", -1)
	require.NoError(t, err)

	_, err = jwt.Parse(secret, token)
	assert.Error(t, err)
}

func TestGenerate_SecretVacio(t *testing.T) {
	_, err := jwt.Generate("", "admin", "delivery-tax-api", 60)
	assert.Error(t, err)
}
