package lint

import (
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"
)

// DefaultEdition names the rule set implemented by the built-in engine.
const DefaultEdition = "2026-10-01"

const defaultMaxErr = 50

// knownFlags are the boolean options understood by the CLI. Only a handful
// change the built-in rules; the rest are forwarded for engines that use them.
var knownFlags = []string{
	"ass", "bitwise", "browser", "closure", "continue",
	"debug", "devel", "eqeq", "evil", "forin", "newcap",
	"node", "nomen", "passfail", "plusplus", "properties",
	"regexp", "rhino", "unparam", "sloppy", "stupid", "sub",
	"todo", "vars", "white",
}

// deprecatedFlags are still accepted on the command line but have no effect.
var deprecatedFlags = []string{"anon", "es5", "on", "undef", "windows"}

// DeprecatedFlags returns the sorted names of accepted but ignored options.
func DeprecatedFlags() []string {
	out := make([]string, len(deprecatedFlags))
	copy(out, deprecatedFlags)
	sort.Strings(out)
	return out
}

// KnownFlags returns the sorted names of the boolean lint options.
func KnownFlags() []string {
	out := make([]string, len(knownFlags))
	copy(out, knownFlags)
	sort.Strings(out)
	return out
}

type ruleLinter struct{}

// New creates the built-in rule-based Linter.
func New() Linter {
	return &ruleLinter{}
}

func (l *ruleLinter) Edition() string {
	return DefaultEdition
}

func (l *ruleLinter) Lint(text string, opts Options) (Verdict, error) {
	if opts.Edition != "" && opts.Edition != DefaultEdition {
		return Verdict{}, fmt.Errorf("%w: %q", ErrUnknownEdition, opts.Edition)
	}
	if opts.MaxErr < 0 || opts.MaxLen < 0 || opts.Indent < 0 {
		return Verdict{}, ErrNegativeLimit
	}

	src := newSource(text)
	diags := src.unclosed
	for i, line := range src.lines {
		diags = append(diags, checkLine(src, i, line, opts)...)
	}
	diags = append(diags, checkBrackets(src)...)

	sort.SliceStable(diags, func(i, j int) bool {
		if diags[i].Line != diags[j].Line {
			return diags[i].Line < diags[j].Line
		}
		return diags[i].Character < diags[j].Character
	})

	diags = truncate(diags, opts)
	if diags == nil {
		diags = []Diagnostic{}
	}

	return Verdict{OK: len(diags) == 0, Errors: diags}, nil
}

func truncate(diags []Diagnostic, opts Options) []Diagnostic {
	if len(diags) == 0 {
		return diags
	}
	if opts.Enabled("passfail") {
		return diags[:1]
	}

	limit := opts.MaxErr
	if limit == 0 {
		limit = defaultMaxErr
	}
	if len(diags) <= limit {
		return diags
	}

	last := diags[limit-1]
	out := make([]Diagnostic, 0, limit+1)
	out = append(out, diags[:limit]...)
	return append(out, Diagnostic{
		Line:      last.Line,
		Character: last.Character,
		Reason:    "Too many errors.",
	})
}

func checkLine(src *source, idx int, line string, opts Options) []Diagnostic {
	var diags []Diagnostic
	lineNo := idx + 1
	report := func(col int, reason string) {
		diags = append(diags, Diagnostic{Line: lineNo, Character: col, Reason: reason, Evidence: line})
	}

	if opts.MaxLen > 0 && utf8.RuneCountInString(line) > opts.MaxLen {
		report(opts.MaxLen+1, "Line too long.")
	}

	if !opts.Enabled("white") {
		trimmed := strings.TrimRight(line, " \t")
		if len(trimmed) < len(line) {
			report(len(trimmed)+1, "Unexpected trailing space.")
		}

		indent := line[:len(line)-len(strings.TrimLeft(line, " \t"))]
		switch {
		case strings.Contains(indent, " ") && strings.Contains(indent, "\t"):
			report(1, "Mixed spaces and tabs.")
		case opts.Indent > 0 && trimmed != "" && !strings.Contains(indent, "\t") && len(indent)%opts.Indent != 0:
			report(len(indent)+1, fmt.Sprintf("Expected indentation multiple of %d, saw %d.", opts.Indent, len(indent)))
		}
	}

	code, comment := src.split(idx)

	if !opts.Enabled("todo") {
		if i := strings.Index(comment, "TODO"); i >= 0 {
			report(i+1, "Unexpected TODO comment.")
		}
	}

	if !opts.Enabled("evil") {
		for off := 0; ; {
			i := strings.Index(code[off:], "eval(")
			if i < 0 {
				break
			}
			pos := off + i
			if pos == 0 || !isIdentByte(code[pos-1]) {
				report(pos+1, "eval is evil.")
			}
			off = pos + len("eval(")
		}
	}

	if !opts.Enabled("eqeq") {
		for i := 0; i+1 < len(code); i++ {
			c := code[i]
			if (c != '=' && c != '!') || code[i+1] != '=' {
				continue
			}
			if i+2 < len(code) && code[i+2] == '=' {
				i += 2
				continue
			}
			if c == '=' && i > 0 && strings.IndexByte("=<>!", code[i-1]) >= 0 {
				continue
			}
			if c == '!' {
				report(i+1, "Expected '!==' and instead saw '!='.")
			} else {
				report(i+1, "Expected '===' and instead saw '=='.")
			}
			i++
		}
	}

	return diags
}

var closers = map[byte]byte{'(': ')', '[': ']', '{': '}'}

func checkBrackets(src *source) []Diagnostic {
	type open struct {
		ch  byte
		off int
	}

	var (
		diags []Diagnostic
		stack []open
	)
	for off := 0; off < len(src.text); off++ {
		if src.regions[off] != regionCode {
			continue
		}
		ch := src.text[off]
		switch ch {
		case '(', '[', '{':
			stack = append(stack, open{ch: ch, off: off})
		case ')', ']', '}':
			if len(stack) == 0 {
				diags = append(diags, src.diagnostic(off, fmt.Sprintf("Unexpected '%c'.", ch)))
				continue
			}
			top := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if want := closers[top.ch]; want != ch {
				diags = append(diags, src.diagnostic(off, fmt.Sprintf("Expected '%c' and instead saw '%c'.", want, ch)))
			}
		}
	}
	for _, o := range stack {
		diags = append(diags, src.diagnostic(o.off, fmt.Sprintf("Unmatched '%c'.", o.ch)))
	}
	return diags
}

func isIdentByte(b byte) bool {
	return b == '_' || b == '$' || b == '.' ||
		('a' <= b && b <= 'z') || ('A' <= b && b <= 'Z') || ('0' <= b && b <= '9')
}
