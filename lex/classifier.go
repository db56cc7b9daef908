package lex

// IsVariableStart reports whether r can begin a variable, function, or
// typename: '_' or an ASCII letter.
func IsVariableStart(r byte) bool {
	return r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

// IsVariableContinue reports whether r can continue a variable, function,
// or typename once started.
func IsVariableContinue(r byte) bool {
	return IsVariableStart(r) || IsDigit(r)
}

// IsDigit reports whether r is an ASCII decimal digit.
func IsDigit(r byte) bool { return r >= '0' && r <= '9' }

// IsWhitespace reports whether r is skipped between tokens: SP, TAB, LF,
// FF, CR, NBSP, LS, PS.
func IsWhitespace(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\f', '\r', ' ', ' ', ' ':
		return true
	}
	return false
}

// isWhitespaceByte reports whether b is one of the single-byte members
// of the whitespace set (SP, TAB, LF, FF, CR). matchWordOperator uses it
// to test the one byte after "and"/"or", so a word operator followed by
// a multi-byte space (NBSP, LS, PS) is not recognized as an operator.
func isWhitespaceByte(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\f', '\r':
		return true
	}
	return false
}
