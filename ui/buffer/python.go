package buffer

import (
	"regexp"
	"strings"
)

// Python is the built-in Python 3 rule set. Rule order matters and is part of
// the highlighting contract: later rules overwrite earlier ones wherever two
// rules match the same character, so an identifier-before-paren match on a
// def line loses to the function-name rule registered after it.
var Python = &Language{
	Name:               "Python",
	Filetypes:          []string{".py"},
	TripleQuoteStrings: true,
	Rules: []Rule{
		{
			Pattern: regexp.MustCompile(`\b(and|as|assert|break|class|continue|def|` +
				`del|elif|else|except|False|finally|for|from|global|if|import|in|is|` +
				`lambda|None|nonlocal|not|or|pass|raise|return|True|try|while|with|yield)\b`),
			Syntax: Keyword,
		},
		{
			Pattern: regexp.MustCompile(`\b(abs|all|any|ascii|bin|bool|bytearray|` +
				`bytes|callable|chr|classmethod|compile|complex|delattr|dict|dir|` +
				`divmod|enumerate|eval|exec|filter|float|format|frozenset|getattr|` +
				`globals|hasattr|hash|help|hex|id|input|int|isinstance|issubclass|` +
				`iter|len|list|locals|map|max|memoryview|min|next|object|oct|open|` +
				`ord|pow|print|property|range|repr|reversed|round|set|setattr|slice|` +
				`sorted|staticmethod|str|sum|super|tuple|type|vars|zip)\b`),
			Syntax: Builtin,
		},
		{Pattern: regexp.MustCompile(`\bself\b`), Syntax: SelfParam},
		{Pattern: regexp.MustCompile(`".*?"`), Syntax: String},
		{Pattern: regexp.MustCompile(`'.*?'`), Syntax: String},
		{Pattern: regexp.MustCompile(`#[^\n]*`), Syntax: Comment},
		{Pattern: regexp.MustCompile(`\b[0-9]+\.?[0-9]*\b`), Syntax: Number},
		// The last three all paint identifiers; the capture group stands in
		// for lookbehind and lookahead.
		{Pattern: regexp.MustCompile(`\b([A-Za-z0-9_]+)\(`), Group: 1, Syntax: CallName},
		{Pattern: regexp.MustCompile(`\bclass\s+([A-Za-z0-9_]+)`), Group: 1, Syntax: ClassName},
		{Pattern: regexp.MustCompile(`\bdef\s+([A-Za-z0-9_]+)`), Group: 1, Syntax: FunctionName},
	},
}

// PlainText applies no styling at all.
var PlainText = &Language{Name: "Plain Text"}

// LanguageForFile picks a language by file extension. Unsaved buffers (empty
// path) are assumed to be Python, matching the editor's purpose.
func LanguageForFile(path string) *Language {
	if path == "" {
		return Python
	}
	for _, ft := range Python.Filetypes {
		if strings.HasSuffix(path, ft) {
			return Python
		}
	}
	return PlainText
}
