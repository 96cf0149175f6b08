package settings

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oakwood-commons/docsite/pkg/loader"
)

func TestNewCliParams(t *testing.T) {
	tests := []struct {
		name string
		want *Run
	}{
		{
			name: "default CLI params",
			want: &Run{
				MinLogLevel: 0,
				Site: SiteSettings{
					Path: "",
					Dir:  ".",
				},
				Timeout: loader.DefaultTimeout,
				NoColor: false,
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewCliParams()
			if *got != *tt.want {
				t.Errorf("NewCliParams() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestLoaderOptions(t *testing.T) {
	r := NewCliParams()
	r.Strict = true
	assert.Equal(t, loader.Options{Strict: true, Timeout: loader.DefaultTimeout}, r.LoaderOptions())
}

func TestSitePath(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "fumadocs.config.json"), []byte("{}"), 0o600))

	tests := []struct {
		name    string
		run     *Run
		arg     string
		want    string
		wantErr error
	}{
		{name: "argument wins", run: &Run{Site: SiteSettings{Path: "flag.yaml", Dir: dir}}, arg: "arg.yaml", want: "arg.yaml"},
		{name: "flag wins over discovery", run: &Run{Site: SiteSettings{Path: "flag.yaml", Dir: dir}}, want: "flag.yaml"},
		{name: "discovery", run: &Run{Site: SiteSettings{Dir: dir}}, want: filepath.Join(dir, "fumadocs.config.json")},
		{name: "nothing found", run: &Run{Site: SiteSettings{Dir: t.TempDir()}}, wantErr: loader.ErrNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.run.SitePath(tt.arg)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
