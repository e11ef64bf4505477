package llm

// Kind identifies the inference backend a handle talks to.
type Kind string

const (
	Ollama Kind = "ollama"
	OpenAI Kind = "openai"
)

var defaultBaseURLs = map[Kind]string{
	Ollama: "http://localhost:11434",
	OpenAI: "https://api.openai.com",
}

// Kinds returns the known provider kinds in a stable order.
func Kinds() []Kind {
	return []Kind{Ollama, OpenAI}
}

// Valid reports whether k is a known provider kind.
func (k Kind) Valid() bool {
	_, ok := defaultBaseURLs[k]
	return ok
}

// DefaultBaseURL returns the endpoint used when a config leaves base_url
// empty. Unknown kinds return "".
func (k Kind) DefaultBaseURL() string {
	return defaultBaseURLs[k]
}

// String returns the underlying string value of the kind.
func (k Kind) String() string {
	return string(k)
}
