package decl

// DeclID identifies a declaration in the table arena.
type DeclID uint32

const (
	// NoDeclID marks the absence of a declaration reference.
	NoDeclID DeclID = 0
)

// IsValid reports whether the ID refers to an allocated declaration.
func (id DeclID) IsValid() bool { return id != NoDeclID }

// ContextID identifies a declaration context in the table arena.
type ContextID uint32

const (
	// NoContextID marks the absence of a context reference.
	NoContextID ContextID = 0
)

// IsValid reports whether the ID refers to an allocated context.
func (id ContextID) IsValid() bool { return id != NoContextID }

// ParamListID identifies a generic parameter list in the table arena.
type ParamListID uint32

const (
	// NoParamListID marks the absence of a generic parameter list.
	NoParamListID ParamListID = 0
)

// IsValid reports whether the ID refers to an allocated list.
func (id ParamListID) IsValid() bool { return id != NoParamListID }
