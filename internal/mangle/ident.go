package mangle

// operatorChars translates each operator character into its mangled
// letter. The table is one-to-one; every character outside it in an
// operator name is a front-end bug.
var operatorChars = map[byte]byte{
	'&': 'a', // and
	'/': 'd', // divide
	'=': 'e', // equal
	'>': 'g', // greater
	'<': 'l', // less
	'*': 'm', // multiply
	'!': 'n', // negate
	'|': 'o', // or
	'+': 'p', // plus
	'%': 'r', // remainder
	'-': 's', // subtract
	'^': 'x', // xor
	'~': 't', // tilde
	'.': 'z', // period
}

// mangleIdentifier writes an identifier token.
//
// Plain identifiers encode as
//
//	<count> <identifier-char>+
//
// where individual characters represent themselves. Operator
// identifiers encode as
//
//	'op' <count> <operator-char>+
//
// with every character translated through operatorChars.
func (m *Mangler) mangleIdentifier(name string, operator bool) {
	if name == "" {
		panic("mangle: mangling an empty identifier")
	}
	if !operator {
		m.emitInt(len(name))
		m.emit(name)
		return
	}
	m.emit("op")
	m.emitInt(len(name))
	for i := 0; i < len(name); i++ {
		ch, ok := operatorChars[name[i]]
		if !ok {
			panic("mangle: bad operator character " + string(name[i]))
		}
		m.emitByte(ch)
	}
}
