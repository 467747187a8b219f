package formatter_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/uramit/channel-caption-bot/internal/modules/post/domain"
	"github.com/uramit/channel-caption-bot/internal/modules/post/formatter"
)

func TestRender_NoTemplate(t *testing.T) {
	t.Run("appends decorated identity after two newlines", func(t *testing.T) {
		got := formatter.Render(formatter.Input{Body: "Hello"}, "@MyChannel", domain.DialectPlain, false)
		assert.Equal(t, "Hello\n\n> *@MyChannel*", got)
	})

	t.Run("empty body yields identity alone", func(t *testing.T) {
		got := formatter.Render(formatter.Input{}, "@MyChannel", domain.DialectPlain, false)
		assert.Equal(t, "> *@MyChannel*", got)
	})

	t.Run("identity is escaped for markdown_v2", func(t *testing.T) {
		got := formatter.Render(formatter.Input{Body: "Hello"}, "@My_Channel", domain.DialectMarkdownV2, false)
		assert.Equal(t, "Hello\n\n> *@My\\_Channel*", got)
	})

	t.Run("body is never escaped by default", func(t *testing.T) {
		got := formatter.Render(formatter.Input{Body: "a*b_c"}, "@ch", domain.DialectMarkdownV2, false)
		assert.Equal(t, "a*b_c\n\n> *@ch*", got)
	})
}

func TestRender_Template(t *testing.T) {
	t.Run("substitutes both placeholders", func(t *testing.T) {
		in := formatter.Input{
			Body:        "pic",
			Filename:    "a.jpg",
			Template:    "{caption} — via {filename}",
			HasTemplate: true,
		}
		got := formatter.Render(in, "@ch", domain.DialectPlain, false)
		assert.Equal(t, "pic — via a.jpg\n\n> *@ch*", got)
	})

	t.Run("placeholder order does not matter", func(t *testing.T) {
		in := formatter.Input{
			Body:        "cap",
			Filename:    "f.bin",
			Template:    "{filename} / {caption}",
			HasTemplate: true,
		}
		got := formatter.Render(in, "@ch", domain.DialectPlain, false)
		assert.Equal(t, "f.bin / cap\n\n> *@ch*", got)
	})

	t.Run("missing file and caption substitute empty strings", func(t *testing.T) {
		in := formatter.Input{
			Template:    "[{filename}] {caption} end",
			HasTemplate: true,
		}
		got := formatter.Render(in, "@ch", domain.DialectPlain, false)
		assert.Equal(t, "[]  end\n\n> *@ch*", got)
	})

	t.Run("template without caption slot replaces the whole body", func(t *testing.T) {
		in := formatter.Input{
			Body:        "original",
			Template:    "fixed output",
			HasTemplate: true,
		}
		got := formatter.Render(in, "@ch", domain.DialectPlain, false)
		assert.Equal(t, "fixed output", got)
	})

	t.Run("template resolving to empty falls back to the original body", func(t *testing.T) {
		in := formatter.Input{
			Body:        "kept",
			Template:    "{filename}",
			HasTemplate: true,
		}
		got := formatter.Render(in, "@ch", domain.DialectPlain, false)
		assert.Equal(t, "kept\n\n> *@ch*", got)
	})

	t.Run("escapeBody escapes the composed body too", func(t *testing.T) {
		in := formatter.Input{
			Body:        "a*b",
			Template:    "{caption}!",
			HasTemplate: true,
		}
		got := formatter.Render(in, "@ch", domain.DialectMarkdownV2, true)
		assert.Equal(t, "a\\*b!\n\n> *@ch*", got)
	})
}

func TestEscape(t *testing.T) {
	assert.Equal(t, "no-op", formatter.Escape(domain.DialectPlain, "no-op"))
	assert.Equal(t, `\_\*\[\]`, formatter.Escape(domain.DialectMarkdown, `_*[]`))
	assert.Equal(t, `\_\*\[\]\(\)`, formatter.Escape(domain.DialectMarkdownV2, `_*[]()`))
	assert.Equal(t, "plain text", formatter.Escape(domain.DialectMarkdownV2, "plain text"))
}

func TestDecorate(t *testing.T) {
	assert.Equal(t, "> *@ch*", formatter.Decorate(domain.DialectPlain, "@ch"))
	assert.Equal(t, `> *@a\_b*`, formatter.Decorate(domain.DialectMarkdownV2, "@a_b"))
	// Unknown dialect degrades to plain decoration.
	assert.Equal(t, "> *@ch*", formatter.Decorate(domain.Dialect("bogus"), "@ch"))
}
