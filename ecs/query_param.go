package ecs

import (
	"reflect"
	"strings"
	"unsafe"

	"github.com/rotisserie/eris"
)

// With filters a query to entities holding C without fetching it.
type With[C any] struct{}

// Without filters a query to entities not holding C.
type Without[C any] struct{}

type filterField interface {
	filterTerm() (reflect.Type, bool)
}

func (With[C]) filterTerm() (reflect.Type, bool)    { return reflect.TypeFor[C](), true }
func (Without[C]) filterTerm() (reflect.Type, bool) { return reflect.TypeFor[C](), false }

var filterFieldType = reflect.TypeFor[filterField]()

// fetchTerm is one pointer field of a query struct.
type fetchTerm struct {
	component ComponentId
	typ       reflect.Type
	offset    uintptr
	optional  bool
	exclusive bool
	sparse    bool
}

// queryPattern is the compiled form of a query struct type.
type queryPattern struct {
	typ   reflect.Type
	terms []fetchTerm

	// dense presence requirements, checked once per archetype
	required ComponentSet
	excluded ComponentSet

	// sparse presence requirements, checked per entity
	sparseRequired []ComponentId
	sparseExcluded []ComponentId

	shared    ComponentSet
	exclusive ComponentSet

	// sparseOnly is set when every component the query touches is sparse
	sparseOnly bool
}

// compilePattern turns a struct type into a query pattern. Pointer fields fetch
// components: shared by default, exclusive with `ecs:"mut"`, and nil when
// absent with `ecs:"optional"`. With[C] and Without[C] fields filter without
// fetching. Referenced component types not yet registered are registered dense.
func compilePattern(registry *Components, t reflect.Type) (*queryPattern, error) {
	if t.Kind() != reflect.Struct {
		return nil, eris.Wrapf(ErrInvalidQuery, "query type %s is not a struct", t)
	}

	p := &queryPattern{
		typ:        t,
		required:   NewComponentSet(),
		excluded:   NewComponentSet(),
		shared:     NewComponentSet(),
		exclusive:  NewComponentSet(),
		sparseOnly: true,
	}
	touched := 0

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)

		if field.Type.Implements(filterFieldType) {
			componentType, include := reflect.Zero(field.Type).Interface().(filterField).filterTerm()
			id, sparse, err := registerQueryComponent(registry, componentType)
			if err != nil {
				return nil, eris.Wrapf(err, "query %s field %s", t, field.Name)
			}
			touched++
			p.sparseOnly = p.sparseOnly && sparse
			switch {
			case include && sparse:
				p.sparseRequired = append(p.sparseRequired, id)
			case include:
				p.required.Insert(id)
			case sparse:
				p.sparseExcluded = append(p.sparseExcluded, id)
			default:
				p.excluded.Insert(id)
			}
			continue
		}

		if field.Type.Kind() != reflect.Ptr {
			return nil, eris.Wrapf(ErrInvalidQuery, "query %s field %s must be a component pointer, With or Without", t, field.Name)
		}

		term := fetchTerm{
			typ:    field.Type.Elem(),
			offset: field.Offset,
		}
		if !field.Anonymous {
			if err := parseQueryTag(field.Tag.Get("ecs"), &term); err != nil {
				return nil, eris.Wrapf(err, "query %s field %s", t, field.Name)
			}
		}

		id, sparse, err := registerQueryComponent(registry, term.typ)
		if err != nil {
			return nil, eris.Wrapf(err, "query %s field %s", t, field.Name)
		}
		term.component = id
		term.sparse = sparse
		touched++
		p.sparseOnly = p.sparseOnly && sparse

		if term.exclusive {
			if p.exclusive.Contains(id) || p.shared.Contains(id) {
				return nil, eris.Wrapf(ErrConflictingAccess, "query %s accesses %s more than once with write access", t, term.typ)
			}
			p.exclusive.Insert(id)
		} else {
			if p.exclusive.Contains(id) {
				return nil, eris.Wrapf(ErrConflictingAccess, "query %s reads and writes %s", t, term.typ)
			}
			p.shared.Insert(id)
		}

		if !term.optional {
			if sparse {
				p.sparseRequired = append(p.sparseRequired, id)
			} else {
				p.required.Insert(id)
			}
		}
		p.terms = append(p.terms, term)
	}

	if touched == 0 {
		p.sparseOnly = false
	}
	return p, nil
}

func parseQueryTag(tag string, term *fetchTerm) error {
	if tag == "" {
		return nil
	}
	for _, option := range strings.Split(tag, ",") {
		switch strings.TrimSpace(option) {
		case "optional":
			term.optional = true
		case "mut":
			term.exclusive = true
		default:
			return eris.Wrapf(ErrInvalidQuery, "invalid ecs tag value %q (supported: mut, optional)", tag)
		}
	}
	return nil
}

func registerQueryComponent(registry *Components, t reflect.Type) (ComponentId, bool, error) {
	if id, ok := registry.IdOf(t); ok {
		return id, registry.Info(id).IsSparse(), nil
	}
	switch t.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Chan, reflect.Func, reflect.Interface:
		return 0, false, eris.Wrapf(ErrInvalidQuery, "%s cannot be a component", t)
	}
	return registry.registerType(t), false, nil
}

// matches reports whether rows of archetype can satisfy the dense part of the pattern.
func (p *queryPattern) matches(a *Archetype) bool {
	return a.signature.IsSuperset(p.required) && a.signature.IsDisjoint(p.excluded)
}

// hasSparseFilters reports whether matching also needs a per-entity check.
func (p *queryPattern) hasSparseFilters() bool {
	return len(p.sparseRequired) > 0 || len(p.sparseExcluded) > 0
}

// fill writes the component pointers of one row into the struct at dst.
// Returns false if a required sparse component is missing.
func (p *queryPattern) fill(dst unsafe.Pointer, m *archetypeMatch, sparse []sparseStorage, row int, e Entity) bool {
	for i := range p.terms {
		term := &p.terms[i]
		fieldPtr := unsafe.Pointer(uintptr(dst) + term.offset)

		var ptr unsafe.Pointer
		if term.sparse {
			if storage := sparse[i]; storage != nil {
				ptr = storage.pointer(e)
			}
		} else if col := m.columns[i]; col != nil {
			ptr = col.pointer(row)
		}

		if ptr == nil && !term.optional {
			return false
		}
		*(*unsafe.Pointer)(fieldPtr) = ptr
	}
	return true
}
