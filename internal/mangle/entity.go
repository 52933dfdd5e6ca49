package mangle

import "sylph/internal/decl"

// Mangle produces the symbol for one link entity. It consumes the
// Mangler: the substitution table and archetype bindings built up
// while encoding belong to this request alone, and a second call on
// the same instance panics.
func (m *Mangler) Mangle(ent LinkEntity) string {
	if m.used {
		panic("mangle: Mangler reused across requests")
	}
	m.used = true

	// Almost everything below gets the common prefix:
	//   <mangled-name> ::= '_T' <global>

	switch ent.Kind {
	case EntityAnonymousFunction:
		m.emit("closure")

	//   <global> ::= 'w' <value-witness-kind> <type>
	case EntityValueWitness:
		m.emit(SchemePrefix + "w")
		m.emit(ent.Witness.Code())
		m.mangleType(ent.Type, ExplosionMinimal, 0, 0)

	//   <global> ::= 'WV' <type>
	case EntityValueWitnessTable:
		m.emit(SchemePrefix + "WV")
		m.mangleType(ent.Type, ExplosionMinimal, 0, 0)

	// Abstract type manglings just follow <type>.
	case EntityTypeMangling:
		m.mangleType(ent.Type, ExplosionMinimal, 0, 0)

	//   <global> ::= 'M' <directness> <type>       # type metadata
	//   <global> ::= 'MP' <directness> <type>      # metadata pattern
	case EntityTypeMetadata:
		m.emit(SchemePrefix + "M")
		if ent.Pattern {
			m.emitByte('P')
		}
		m.mangleDirectness(ent.Indirect)
		m.mangleType(ent.Type, ExplosionMinimal, 0, 0)

	//   <global> ::= 'Mm' <type>                   # metaclass stub
	case EntityMetaclassStub:
		m.emit(SchemePrefix + "Mm")
		m.mangleNominalType(ent.Decl, 0)

	//   <global> ::= 'Wo' <entity>
	case EntityWitnessTableOffset:
		m.emit(SchemePrefix + "Wo")
		m.mangleEntity(ent.Decl, ent.Explosion, ent.Uncurry)

	//   <global> ::= 'Wv' <directness> <entity>
	case EntityFieldOffset:
		m.emit(SchemePrefix + "Wv")
		m.mangleDirectness(ent.Indirect)
		m.mangleEntity(ent.Decl, ExplosionMinimal, 0)

	//   <global> ::= 'Tb' <type>
	case EntityBridgeToBlock:
		m.emit(SchemePrefix + "Tb")
		m.mangleType(ent.Type, ExplosionMinimal, 0, 0)

	//   <entity> ::= <context> 'D'                 # deallocating dtor
	//   <entity> ::= <context> 'd'                 # destroying dtor
	case EntityDestructor:
		m.emit(SchemePrefix)
		m.mangleLocalMarker(ent)
		m.mangleNominalType(ent.Decl, 0)
		switch ent.Destructor {
		case DestructorDeallocating:
			m.emitByte('D')
		case DestructorDestroying:
			m.emitByte('d')
		default:
			panic("mangle: bad destructor kind")
		}

	//   <entity> ::= <context> 'C' <type>          # allocating ctor
	//   <entity> ::= <context> 'c' <type>          # initializing ctor
	case EntityConstructor:
		m.emit(SchemePrefix)
		m.mangleLocalMarker(ent)
		m.mangleContextOf(ent.Decl, 0)
		switch ent.Constructor {
		case ConstructorAllocating:
			m.emitByte('C')
		case ConstructorInitializing:
			m.emitByte('c')
		default:
			panic("mangle: bad constructor kind")
		}
		m.mangleDeclType(ent.Decl, ent.Explosion, ent.Uncurry, 0)

	//   <entity> ::= <declaration>
	case EntityFunction, EntityOther:
		// Two sanctioned bypasses: an explicit external name override
		// and declarations imported through the foreign interface
		// keep their original name verbatim.
		d := m.decl(ent.Decl)
		if ent.Kind == EntityFunction && d.AsmName != "" {
			m.emit(d.AsmName)
			break
		}
		if d.Foreign {
			m.emit(d.Name)
			break
		}
		m.emit(SchemePrefix)
		m.mangleLocalMarker(ent)
		m.mangleEntity(ent.Decl, ent.Explosion, ent.Uncurry)

	//   <entity> ::= <declaration> 'g'             # getter
	case EntityGetter:
		m.emit(SchemePrefix)
		m.mangleLocalMarker(ent)
		m.mangleEntity(ent.Decl, ent.Explosion, ent.Uncurry)
		m.emitByte('g')

	//   <entity> ::= <declaration> 's'             # setter
	case EntitySetter:
		m.emit(SchemePrefix)
		m.mangleLocalMarker(ent)
		m.mangleEntity(ent.Decl, ent.Explosion, ent.Uncurry)
		m.emitByte('s')

	// Foreign runtime class references use the runtime's fixed
	// naming convention, not a sylph mangling.
	case EntityForeignClass:
		m.emit("OBJC_CLASS_$_")
		m.emit(m.decl(ent.Decl).Name)

	case EntityForeignMetaclass:
		m.emit("OBJC_METACLASS_$_")
		m.emit(m.decl(ent.Decl).Name)

	default:
		panic("mangle: bad entity kind " + ent.Kind.String())
	}

	return m.buf.String()
}

// mangleEntity writes an identifiable declaration: its name followed
// by its declared type. The type is mangled on every kind of
// declaration, even storage, because all of them can be overloaded.
func (m *Mangler) mangleEntity(id decl.DeclID, explosion ExplosionKind, uncurry int) {
	m.mangleDeclName(id, false, 0)
	m.mangleDeclType(id, explosion, uncurry, 0)
}

// mangleLocalMarker writes the extra marker letter for entities with
// local linkage.
func (m *Mangler) mangleLocalMarker(ent LinkEntity) {
	if ent.Local {
		m.emitByte('L')
	}
}

// mangleDirectness writes the one-letter direct/indirect flag.
func (m *Mangler) mangleDirectness(indirect bool) {
	if indirect {
		m.emitByte('i')
	} else {
		m.emitByte('d')
	}
}
