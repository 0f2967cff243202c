package bundle_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"ctxbundle/pkg/bundle"
	"ctxbundle/pkg/ignore"
)

func TestFilter_ShouldInclude(t *testing.T) {
	m := ignore.NewMatcher(nil)
	m.CompileIgnoreLines("*.log", "dist/", "!keep.png")
	f := bundle.NewFilter(m, []string{"fixtures", "  "})

	tests := []struct {
		path string
		want bool
	}{
		{"src/main.js", true},
		{"README.md", true},
		{"src/routes/+page.svelte", true},
		{"node_modules/lodash/index.js", false},
		{"packages/app/node_modules/x.js", false},
		{".git/config", false},
		{".gitignore", false},
		{".svelte-kit/output/app.js", false},
		{"build/index.js", false},
		{"src/__pycache__/mod.pyc", false},
		{"assets/.DS_Store", false},
		{".env", false},
		{".env.local", false},
		{"package.json", false},
		{"package-lock.json", false},
		{"yarn.lock", false},
		{"server.log", false},
		{"dist/bundle.js", false},
		{"test/fixtures/data.json", false},
		{"static/logo.png", false},
		{"keep.png", false},
		{"static/photo.JPEG", false},
		{"fonts/inter.woff2", false},
		{"favicon.ico", false},
		{"static/icon.svg", true},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, f.ShouldInclude(tt.path))
		})
	}
}

func TestFilter_ShouldDescend(t *testing.T) {
	m := ignore.NewMatcher(nil)
	m.CompileIgnoreLines("coverage/", "tmp")
	f := bundle.NewFilter(m, []string{"vendor"})

	assert.True(t, f.ShouldDescend("src"))
	assert.True(t, f.ShouldDescend("src/lib"))
	assert.False(t, f.ShouldDescend("node_modules"))
	assert.False(t, f.ShouldDescend("src/node_modules"))
	assert.False(t, f.ShouldDescend(".git"))
	assert.False(t, f.ShouldDescend("build"))
	assert.False(t, f.ShouldDescend("coverage"))
	assert.False(t, f.ShouldDescend("src/tmp"))
	assert.False(t, f.ShouldDescend("third_party/vendor"))
}

func TestFilter_NilMatcher(t *testing.T) {
	f := bundle.NewFilter(nil, nil)

	assert.True(t, f.ShouldInclude("main.go"))
	assert.False(t, f.ShouldInclude("node_modules/a.js"))
}
