package content_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"ctxbundle/pkg/content"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		path string
		want content.Type
	}{
		{"src/App.svelte", content.Svelte},
		{"src/lib/api.ts", content.TypeScript},
		{"static/app.js", content.JavaScript},
		{"static/site.css", content.CSS},
		{"styles/_vars.scss", content.SCSS},
		{"tsconfig.json", content.JSON},
		{"README.md", content.Markdown},
		{"src/app.html", content.HTML},
		{"Makefile", content.Text},
		{"notes.txt", content.Text},
		{"main.go", content.Text},
		{"LOUD.JSON", content.JSON},
		{"Index.HTML", content.HTML},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, content.Classify(tt.path))
		})
	}
}

func TestTypeString(t *testing.T) {
	assert.Equal(t, "svelte", content.Svelte.String())
	assert.Equal(t, "typescript", content.TypeScript.String())
	assert.Equal(t, "javascript", content.JavaScript.String())
	assert.Equal(t, "css", content.CSS.String())
	assert.Equal(t, "scss", content.SCSS.String())
	assert.Equal(t, "json", content.JSON.String())
	assert.Equal(t, "markdown", content.Markdown.String())
	assert.Equal(t, "html", content.HTML.String())
	assert.Equal(t, "text", content.Text.String())
}

func TestTypeFamilies(t *testing.T) {
	assert.True(t, content.JavaScript.IsScript())
	assert.True(t, content.TypeScript.IsScript())
	assert.False(t, content.JSON.IsScript())

	assert.True(t, content.CSS.IsStyle())
	assert.True(t, content.SCSS.IsStyle())
	assert.False(t, content.Svelte.IsStyle())
}
