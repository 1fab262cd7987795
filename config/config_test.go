// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"go.astrophena.name/mplcheck/testutil"
)

func TestLoad(t *testing.T) {
	cases := map[string]struct {
		path string
		want *Config
	}{
		"txtar member": {
			path: filepath.Join("testdata", "devtools.txtar"),
			want: &Config{
				Exclude:   []string{"third_party/", "internal/unionfs/unionfs.go"},
				Languages: []string{"go", "rust"},
				Workers:   4,
			},
		},
		"txtar without member": {
			path: filepath.Join("testdata", "other.txtar"),
			want: &Config{},
		},
		"missing default": {
			path: DefaultPath,
			want: &Config{},
		},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			got, err := Load(tc.path)
			if err != nil {
				t.Fatalf("Load(%q): %v", tc.path, err)
			}
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Fatalf("config mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestLoadMissing(t *testing.T) {
	path := filepath.Join("testdata", "nonexistent.txtar")
	if _, err := Load(path); !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("Load(%q) error = %v, want %v", path, err, fs.ErrNotExist)
	}
}

func TestLoadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mplcheck.yaml")
	if err := os.WriteFile(path, []byte("workers: 2\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	testutil.AssertEqual(t, cfg.Workers, 2)
}

func TestParseErrors(t *testing.T) {
	cases := map[string]struct {
		in      string
		wantErr string
	}{
		"bad yaml": {
			in:      "exclude: [",
			wantErr: "parsing mplcheck.yaml",
		},
		"unknown language": {
			in:      "languages: [cobol]",
			wantErr: `unknown language "cobol"`,
		},
		"negative workers": {
			in:      "workers: -1",
			wantErr: "workers must not be negative",
		},
		"empty exclude": {
			in:      "exclude: ['']",
			wantErr: "empty exclude entry",
		},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(tc.in))
			if err == nil {
				t.Fatal("Parse() succeeded, want error")
			}
			if !strings.Contains(err.Error(), tc.wantErr) {
				t.Fatalf("Parse() error = %q, want it to contain %q", err, tc.wantErr)
			}
		})
	}
}

func TestIsExcluded(t *testing.T) {
	cfg := &Config{Exclude: []string{"third_party/", "txtar/txtar.go", "a.go"}}
	cases := map[string]bool{
		"a.go":                    true,
		"sub/a.go":                true,
		"beta.go":                 false,
		"sub/data.go":             false,
		"pkg/mytxtar/txtar.go":    false,
		"third_party/x/y.go":      true,
		"a/third_party/b.rs":      true,
		"not_third_party/main.go": false,
		"txtar/txtar.go":          true,
		"pkg/txtar/txtar.go":      true,
		"txtar/txtar_test.go":     false,
	}
	for path, want := range cases {
		t.Run(path, func(t *testing.T) {
			testutil.AssertEqual(t, cfg.IsExcluded(path), want)
		})
	}
}

func TestIncludes(t *testing.T) {
	testutil.AssertEqual(t, new(Config).Includes("c"), true)
	cfg := &Config{Languages: []string{"go"}}
	testutil.AssertEqual(t, cfg.Includes("go"), true)
	testutil.AssertEqual(t, cfg.Includes("rust"), false)
}
