package validators

import (
	"testing"

	pkgerrors "github.com/angelmondragon/crmgraphql-backend/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleInput struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required,email"`
	Stock int    `json:"stock" validate:"min=0"`
}

func TestStructAcceptsValidInput(t *testing.T) {
	err := Struct(sampleInput{Name: "Widget", Email: "a@b.test"})
	assert.NoError(t, err)
}

func TestStructReportsFieldsByJSONName(t *testing.T) {
	err := Struct(sampleInput{Email: "nope", Stock: -1})
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())

	details, ok := typed.Details().(map[string]string)
	require.True(t, ok)
	assert.Equal(t, "is required", details["name"])
	assert.Equal(t, "must be a valid email", details["email"])
	assert.Equal(t, "must be at least 0", details["stock"])
}
