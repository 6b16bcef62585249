package lint

// Diagnostic describes a single problem found in a file.
// Line and Character are 1-based.
type Diagnostic struct {
	Line      int    `json:"line"`
	Character int    `json:"character"`
	Reason    string `json:"reason"`
	Evidence  string `json:"evidence,omitempty"`
}

// Verdict is the outcome of linting one file.
type Verdict struct {
	OK     bool         `json:"ok"`
	Errors []Diagnostic `json:"errors"`
}

// Options carries lint settings. Callers forward them untouched; only the
// Linter implementation gives them meaning.
type Options struct {
	Flags   map[string]bool `yaml:"flags"`
	Indent  int             `yaml:"indent"`
	MaxErr  int             `yaml:"maxerr"`
	MaxLen  int             `yaml:"maxlen"`
	Predef  []string        `yaml:"predef"`
	Edition string          `yaml:"edition"`
}

// Enabled reports whether the named boolean flag is set.
func (o Options) Enabled(flag string) bool {
	return o.Flags[flag]
}

// Linter describes the behaviour required from a lint engine.
type Linter interface {
	Lint(text string, opts Options) (Verdict, error)
	Edition() string
}
