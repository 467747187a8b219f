//go:generate go run github.com/abice/go-enum --file=$GOFILE --names --nocase

package domain

// Dialect represents the target markup rules used when rendering the
// decorated channel identity
// ENUM(plain,markdown,markdown_v2)
type Dialect string

// EditKind represents which part of a post an edit request replaces
// ENUM(text,caption)
type EditKind string
