package decl

import "sylph/internal/types"

// Param is one generic parameter: its archetype type and the protocols
// the parameter is required to conform to.
type Param struct {
	Name      string
	Archetype types.TypeID
	Conforms  []DeclID
}

// ParamList is an ordered generic parameter list. Outer chains lists
// of enclosing generic scopes; the chain length defines an archetype's
// depth, the position within one list its index.
type ParamList struct {
	Outer  ParamListID
	Params []Param
}
