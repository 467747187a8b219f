// Package formatter renders the final body of a processed channel post.
// It is a pure string transformation with no store or network access.
package formatter

import (
	"strings"

	"github.com/uramit/channel-caption-bot/internal/modules/post/domain"
)

// Placeholders recognized in operator templates.
const (
	PlaceholderFilename = "{filename}"
	PlaceholderCaption  = "{caption}"
)

// Input carries everything Render needs about one post.
type Input struct {
	Body        string
	Filename    string
	Template    string
	HasTemplate bool
}

// style is the per-dialect decoration strategy: which characters must be
// backslash-escaped and how the channel identity is wrapped.
type style struct {
	reserved string
	wrap     func(string) string
}

var styles = map[domain.Dialect]style{
	domain.DialectPlain:      {reserved: "", wrap: quoteBold},
	domain.DialectMarkdown:   {reserved: `_*[]`, wrap: quoteBold},
	domain.DialectMarkdownV2: {reserved: `_*[]()`, wrap: quoteBold},
}

func quoteBold(s string) string {
	return "> *" + s + "*"
}

// Render composes the final post body from the original body, the
// channel identity and an optional operator template.
//
// A template replaces every {filename} and {caption} placeholder. A
// template without a {caption} slot fully replaces the body, identity
// marker included: the operator took over the whole output. A template
// that resolves to an empty string is treated as absent.
//
// Only the identity is escaped for the dialect; escaping the body is
// opt-in via escapeBody and off by default.
func Render(in Input, identity string, dialect domain.Dialect, escapeBody bool) string {
	composed := in.Body
	appendIdentity := true

	if in.HasTemplate {
		out := strings.ReplaceAll(in.Template, PlaceholderFilename, in.Filename)
		out = strings.ReplaceAll(out, PlaceholderCaption, in.Body)
		if out != "" {
			composed = out
			appendIdentity = strings.Contains(in.Template, PlaceholderCaption)
		}
	}

	if escapeBody {
		composed = Escape(dialect, composed)
	}

	if !appendIdentity {
		return composed
	}

	marked := Decorate(dialect, identity)
	if composed == "" {
		return marked
	}
	return composed + "\n\n" + marked
}

// Decorate wraps the channel identity in the dialect's quote/bold
// decoration, escaping it exactly once beforehand.
func Decorate(dialect domain.Dialect, identity string) string {
	st, ok := styles[dialect]
	if !ok {
		st = styles[domain.DialectPlain]
	}
	return st.wrap(Escape(dialect, identity))
}

// Escape prefixes every dialect-reserved character in s with a
// backslash. Plain has no reserved characters.
func Escape(dialect domain.Dialect, s string) string {
	st, ok := styles[dialect]
	if !ok || st.reserved == "" {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if strings.ContainsRune(st.reserved, r) {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}
