package ports

import "github.com/baditaflorin/go_text_normalization/internal/core/domain"

// Tagger classifies a single written token into a semiotic class.
type Tagger interface {
	// Tag returns the tagged token, or false when no grammar applies.
	Tag(token string) (domain.Token, bool)
}

// Verbalizer renders a tagged token in spoken form.
type Verbalizer interface {
	Verbalize(token domain.Token) (string, error)
}
