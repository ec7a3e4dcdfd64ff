package shared

import (
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type decodeTarget struct {
	Title   string  `json:"title" validate:"required,min=3,max=60"`
	Content string  `json:"content" validate:"required,min=3"`
	TagIDs  []int64 `json:"tagIds" validate:"required"`
}

func TestDecodeJSON(t *testing.T) {
	body := `{"title":"Hello","content":"First post","tagIds":[1,2]}`
	req, _ := http.NewRequest(http.MethodPost, "/test", strings.NewReader(body))

	var target decodeTarget
	err := DecodeJSON(req, &target)
	require.NoError(t, err)

	assert.Equal(t, "Hello", target.Title)
	assert.Equal(t, "First post", target.Content)
	assert.Equal(t, []int64{1, 2}, target.TagIDs)
}

func TestDecodeJSONMalformedBody(t *testing.T) {
	req, _ := http.NewRequest(http.MethodPost, "/test", strings.NewReader("{not json"))

	var target decodeTarget
	err := DecodeJSON(req, &target)
	assert.Error(t, err)
}

func TestValidateRequest(t *testing.T) {
	tests := []struct {
		name    string
		input   decodeTarget
		wantErr bool
	}{
		{
			name:    "valid input",
			input:   decodeTarget{Title: "Hello", Content: "First post", TagIDs: []int64{1}},
			wantErr: false,
		},
		{
			name:    "title too short",
			input:   decodeTarget{Title: "Hi", Content: "First post", TagIDs: []int64{1}},
			wantErr: true,
		},
		{
			name:    "missing tag ids",
			input:   decodeTarget{Title: "Hello", Content: "First post"},
			wantErr: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateRequest(tc.input)
			if tc.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

type selfValidating struct {
	ok bool
}

func (s selfValidating) Validate() error {
	if !s.ok {
		return assert.AnError
	}
	return nil
}

func TestValidateRequestPrefersOwnValidate(t *testing.T) {
	assert.NoError(t, ValidateRequest(selfValidating{ok: true}))
	assert.Error(t, ValidateRequest(selfValidating{ok: false}))
}
