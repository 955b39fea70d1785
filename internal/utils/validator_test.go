package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleRequest struct {
	Name   string   `json:"name" validate:"required,notblank,max=5"`
	Kind   string   `json:"kind" validate:"oneof=a b"`
	Fields []sample `json:"fields" validate:"dive"`
}

type sample struct {
	Label string `json:"label" validate:"required"`
}

func TestValidateStruct(t *testing.T) {
	require.NoError(t, ValidateStruct(sampleRequest{Name: "ok", Kind: "a"}))

	err := ValidateStruct(sampleRequest{Name: "   ", Kind: "c", Fields: []sample{{}}})
	require.Error(t, err)

	fields, ok := err.(FieldErrors)
	require.True(t, ok)
	assert.Contains(t, fields, "name")
	assert.Contains(t, fields, "kind")
	assert.Contains(t, fields, "fields[0].label")
	assert.Equal(t, "name cannot be blank", fields["name"])
}
