package pdf

import "strconv"

// token is a single lexical item from a content stream. Only numbers and
// operator keywords matter to the drawing scanner; strings, names, arrays and
// dictionaries are consumed and dropped.
type token struct {
	text     string
	number   float64
	isNumber bool
}

type tokenizer struct {
	data []byte
	pos  int
}

func newTokenizer(data []byte) *tokenizer {
	return &tokenizer{data: data}
}

func isWhitespace(b byte) bool {
	switch b {
	case 0, '\t', '\n', '\f', '\r', ' ':
		return true
	}
	return false
}

func isDelimiter(b byte) bool {
	switch b {
	case '(', ')', '<', '>', '[', ']', '{', '}', '/', '%':
		return true
	}
	return false
}

// next returns the next meaningful token, or ok=false at end of stream.
func (t *tokenizer) next() (token, bool) {
	for t.pos < len(t.data) {
		b := t.data[t.pos]

		switch {
		case isWhitespace(b):
			t.pos++
		case b == '%':
			t.skipComment()
		case b == '(':
			t.skipString()
		case b == '<':
			t.skipAngle()
		case b == '/':
			t.skipName()
		case b == '[' || b == ']' || b == '{' || b == '}' || b == '>' || b == ')':
			t.pos++
		case b == '+' || b == '-' || b == '.' || (b >= '0' && b <= '9'):
			return t.readNumber(), true
		default:
			return t.readKeyword(), true
		}
	}
	return token{}, false
}

func (t *tokenizer) skipComment() {
	for t.pos < len(t.data) && t.data[t.pos] != '\n' && t.data[t.pos] != '\r' {
		t.pos++
	}
}

func (t *tokenizer) skipString() {
	depth := 0
	for t.pos < len(t.data) {
		switch t.data[t.pos] {
		case '\\':
			t.pos++ // skip escaped byte
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				t.pos++
				return
			}
		}
		t.pos++
	}
}

// skipAngle consumes a hex string <...> or a dictionary <<...>>.
func (t *tokenizer) skipAngle() {
	if t.pos+1 < len(t.data) && t.data[t.pos+1] == '<' {
		// Dictionary: skip to the matching >>.
		depth := 0
		for t.pos+1 < len(t.data) {
			if t.data[t.pos] == '<' && t.data[t.pos+1] == '<' {
				depth++
				t.pos += 2
				continue
			}
			if t.data[t.pos] == '>' && t.data[t.pos+1] == '>' {
				depth--
				t.pos += 2
				if depth == 0 {
					return
				}
				continue
			}
			t.pos++
		}
		t.pos = len(t.data)
		return
	}
	for t.pos < len(t.data) && t.data[t.pos] != '>' {
		t.pos++
	}
	if t.pos < len(t.data) {
		t.pos++
	}
}

func (t *tokenizer) skipName() {
	t.pos++
	for t.pos < len(t.data) && !isWhitespace(t.data[t.pos]) && !isDelimiter(t.data[t.pos]) {
		t.pos++
	}
}

func (t *tokenizer) readNumber() token {
	start := t.pos
	for t.pos < len(t.data) && !isWhitespace(t.data[t.pos]) && !isDelimiter(t.data[t.pos]) {
		t.pos++
	}
	text := string(t.data[start:t.pos])
	n, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return token{text: text}
	}
	return token{text: text, number: n, isNumber: true}
}

func (t *tokenizer) readKeyword() token {
	start := t.pos
	for t.pos < len(t.data) && !isWhitespace(t.data[t.pos]) && !isDelimiter(t.data[t.pos]) {
		t.pos++
	}
	return token{text: string(t.data[start:t.pos])}
}

// skipInlineImage consumes everything from a BI operator through the closing
// EI, including the binary payload after ID.
func (t *tokenizer) skipInlineImage() {
	for t.pos+1 < len(t.data) {
		if t.data[t.pos] == 'E' && t.data[t.pos+1] == 'I' {
			before := t.pos == 0 || isWhitespace(t.data[t.pos-1])
			after := t.pos+2 >= len(t.data) || isWhitespace(t.data[t.pos+2]) || isDelimiter(t.data[t.pos+2])
			if before && after {
				t.pos += 2
				return
			}
		}
		t.pos++
	}
	t.pos = len(t.data)
}
