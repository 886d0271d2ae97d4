package oaserrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseError(t *testing.T) {
	t.Run("Error message with all fields", func(t *testing.T) {
		err := &ParseError{
			Path:    "describe.json",
			Line:    42,
			Message: "invalid syntax",
			Cause:   errors.New("underlying error"),
		}
		assert.Equal(t, "parse error in describe.json at line 42: invalid syntax: underlying error", err.Error())
	})

	t.Run("Error message with minimal fields", func(t *testing.T) {
		assert.Equal(t, "parse error", (&ParseError{}).Error())
	})

	t.Run("Unwrap returns cause", func(t *testing.T) {
		cause := errors.New("underlying")
		err := &ParseError{Cause: cause}
		assert.Same(t, cause, err.Unwrap())
	})

	t.Run("Is matches sentinel only", func(t *testing.T) {
		err := &ParseError{}
		assert.ErrorIs(t, err, ErrParse)
		assert.NotErrorIs(t, err, ErrSchema)
	})
}

func TestSchemaError(t *testing.T) {
	err := &SchemaError{
		Endpoint:   "/3/protocols/nfs/exports",
		Definition: "NfsExport",
		Message:    "array with no type or $ref",
	}
	assert.Equal(t, "schema error in /3/protocols/nfs/exports for NfsExport: array with no type or $ref", err.Error())
	assert.ErrorIs(t, err, ErrSchema)
	assert.Nil(t, err.Unwrap())

	wrapped := fmt.Errorf("builder: %w", err)
	var target *SchemaError
	assert.ErrorAs(t, wrapped, &target)
	assert.Equal(t, "NfsExport", target.Definition)
}

func TestVersionError(t *testing.T) {
	err := &VersionError{Endpoint: "/x/cluster/config", Segment: "x"}
	assert.Equal(t, `version error in /x/cluster/config: unparseable version segment "x"`, err.Error())
	assert.ErrorIs(t, err, ErrVersion)
}

func TestDuplicateOperationError(t *testing.T) {
	err := &DuplicateOperationError{
		Identity: "Protocols:Nfs:Exports",
		First:    "/platform/1/protocols/nfs/exports",
		Second:   "/platform/3/protocols/nfs/exports",
	}
	assert.Contains(t, err.Error(), "Protocols:Nfs:Exports")
	assert.Contains(t, err.Error(), "/platform/3/protocols/nfs/exports")
	assert.ErrorIs(t, fmt.Errorf("compile: %w", err), ErrDuplicateOperation)
}

func TestValidationError(t *testing.T) {
	cause := errors.New("bad ref")
	err := &ValidationError{Path: "paths./a.get", Message: "invalid", Cause: cause}
	assert.Equal(t, "validation error at paths./a.get: invalid: bad ref", err.Error())
	assert.ErrorIs(t, err, ErrValidation)
	assert.ErrorIs(t, err, cause)
}

func TestConfigError(t *testing.T) {
	tests := []struct {
		name string
		err  *ConfigError
		want string
	}{
		{name: "empty", err: &ConfigError{}, want: "configuration error"},
		{name: "option only", err: &ConfigError{Option: "base_path"}, want: "configuration error for base_path"},
		{
			name: "all fields",
			err:  &ConfigError{Option: "min_parent_properties", Value: 0, Message: "must be at least 1", Cause: errors.New("x")},
			want: "configuration error for min_parent_properties (value: 0): must be at least 1: x",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
			assert.ErrorIs(t, tt.err, ErrConfig)
		})
	}
}

func TestSentinelsAreDistinct(t *testing.T) {
	sentinels := []error{ErrParse, ErrSchema, ErrVersion, ErrDuplicateOperation, ErrValidation, ErrConfig}
	for i, a := range sentinels {
		for j, b := range sentinels {
			if i != j {
				assert.NotErrorIs(t, a, b)
			}
		}
	}
}
