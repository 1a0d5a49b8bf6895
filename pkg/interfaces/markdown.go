package interfaces

// MarkdownParser renders post bodies into HTML.
type MarkdownParser interface {
	Parse(markdown []byte) ([]byte, error)
	ParseWithOptions(markdown []byte, opts ParseOptions) ([]byte, error)
}

// ParseOptions selects goldmark extensions and renderer behaviour. Names in
// Extensions are case insensitive; unknown names are ignored.
type ParseOptions struct {
	Extensions []string
	HardWraps  bool
	// SafeMode drops raw HTML from the output.
	SafeMode bool
}

// Heading is one entry of a post's table of contents.
type Heading struct {
	Level int    `json:"level"`
	Text  string `json:"text"`
	ID    string `json:"id"`
}
