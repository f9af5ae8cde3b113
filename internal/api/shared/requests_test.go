package shared

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type decodeTarget struct {
	Description *string `json:"description" validate:"required"`
	IsDone      *bool   `json:"isDone"`
}

func TestDecodeJSON(t *testing.T) {
	tests := []struct {
		name        string
		requestBody string
		wantErr     error
		errContains string
	}{
		{name: "valid json", requestBody: `{"description": "Buy milk", "isDone": true}`},
		{name: "unknown fields are ignored", requestBody: `{"description": "Buy milk", "priority": 3}`},
		{name: "invalid json", requestBody: `{"description": "Buy milk",}`, errContains: "invalid character"},
		{name: "empty body", requestBody: "", wantErr: ErrEmptyBody},
		{name: "wrong type", requestBody: `{"isDone": "true"}`, errContains: "cannot unmarshal"},
		{name: "trailing value", requestBody: `{"description": "a"}{"description": "b"}`, errContains: "single JSON value"},
		{name: "upper-case keys", requestBody: `{"DESCRIPTION": "x", "ISDONE": true}`, wantErr: ErrFieldCase},
		{name: "mixed-case key", requestBody: `{"description": "x", "isdone": true}`, wantErr: ErrFieldCase},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/tasks", strings.NewReader(tc.requestBody))

			var target decodeTarget
			err := DecodeJSON(req, &target)

			switch {
			case tc.wantErr != nil:
				assert.ErrorIs(t, err, tc.wantErr)
			case tc.errContains != "":
				require.Error(t, err)
				assert.Contains(t, err.Error(), tc.errContains)
			default:
				assert.NoError(t, err)
			}
		})
	}
}

func TestDecodeJSON_ExactKeysOnly(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/tasks", strings.NewReader(`{"Description": "x"}`))

	var target decodeTarget
	err := DecodeJSON(req, &target)
	require.ErrorIs(t, err, ErrFieldCase)
	assert.Contains(t, err.Error(), `"Description"`)
}

func TestValidateRequest(t *testing.T) {
	desc := "Buy milk"
	assert.NoError(t, ValidateRequest(&decodeTarget{Description: &desc}))
	assert.Error(t, ValidateRequest(&decodeTarget{}))
}
