package lexer

// keywords maps reserved words to their token kinds. It is derived from the
// token table so a keyword's spelling lives in exactly one place.
var keywords = func() map[string]TokenID {
	m := make(map[string]TokenID, WHILE-ALIGN+1)
	for id := ALIGN; id <= WHILE; id++ {
		m[id.Symbol()] = id
	}
	return m
}()

// LookupKeyword returns the reserved token kind for text, matched exactly
// and case-sensitively.
func LookupKeyword(text []byte) (TokenID, bool) {
	id, ok := keywords[string(text)]
	return id, ok
}
