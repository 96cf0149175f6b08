package site

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name       string
		cfg        *Config
		wantFields []string
	}{
		{
			name: "valid",
			cfg:  Default(),
		},
		{
			name: "empty nav is allowed",
			cfg:  &Config{Title: "t", Description: "d"},
		},
		{
			name:       "missing title and description",
			cfg:        &Config{},
			wantFields: []string{"title", "description"},
		},
		{
			name:       "whitespace title",
			cfg:        &Config{Title: "  \t", Description: "d"},
			wantFields: []string{"title"},
		},
		{
			name: "bad nav entries",
			cfg: &Config{
				Title:       "t",
				Description: "d",
				ThemeConfig: ThemeConfig{Nav: []NavEntry{
					{Text: "", Link: "/a"},
					{Text: "Relative", Link: "docs/b"},
					{Text: "Empty link", Link: ""},
					{Text: "Spaced", Link: "/docs/has space"},
				}},
			},
			wantFields: []string{
				"themeConfig.nav[0].text",
				"themeConfig.nav[1].link",
				"themeConfig.nav[2].link",
				"themeConfig.nav[3].link",
			},
		},
		{
			name: "duplicate link",
			cfg: &Config{
				Title:       "t",
				Description: "d",
				ThemeConfig: ThemeConfig{Nav: []NavEntry{
					{Text: "A", Link: "/docs/"},
					{Text: "B", Link: "/docs/"},
				}},
			},
			wantFields: []string{"themeConfig.nav[1].link"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if len(tt.wantFields) == 0 {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)

			fields := make([]string, 0, len(tt.wantFields))
			for _, fe := range FieldErrors(err) {
				fields = append(fields, fe.Field)
			}
			assert.Equal(t, tt.wantFields, fields)
		})
	}
}

func TestValidateNilConfig(t *testing.T) {
	var cfg *Config
	err := cfg.Validate()
	require.Error(t, err)

	var fe *FieldError
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, "config", fe.Field)
}

func TestFieldErrorMessage(t *testing.T) {
	err := (&Config{Description: "d"}).Validate()
	require.Error(t, err)
	assert.Equal(t, "title: must not be empty", err.Error())
}

func TestFieldErrorsSkipsForeignErrors(t *testing.T) {
	assert.Empty(t, FieldErrors(errors.New("boom")))
	assert.Empty(t, FieldErrors(nil))
}
