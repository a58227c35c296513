package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		name  string
		title string
		want  string
	}{
		{"simple title", "Hello World", "hello-world"},
		{"punctuation and year", "Hello, World! 2024", "hello-world-2024"},
		{"leading and trailing punctuation", "...Hello...", "hello"},
		{"whitespace collapsed", "a   lot    of   spaces", "a-lot-of-spaces"},
		{"uppercase folded", "GOLANG Web Backend", "golang-web-backend"},
		{"accents transliterated", "Été à Paris, déjà vu", "ete-a-paris-deja-vu"},
		{"ligatures expanded", "Œuvre & Cœur", "oeuvre-coeur"},
		{"only punctuation falls back", "!!!", "untitled"},
		{"empty title falls back", "", "untitled"},
		{"non latin dropped", "日本語 blog post", "blog-post"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Slugify(tt.title))
		})
	}
}

func TestSlugify_Deterministic(t *testing.T) {
	title := "Some Fairly Ordinary Title, With Punctuation!"
	assert.Equal(t, Slugify(title), Slugify(title))
}
