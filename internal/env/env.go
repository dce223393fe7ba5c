// Package env implements the Environment component: the typing context
// mapping value names to schemes, types to kinds, data constructors to
// schemes, labels to record types, class names to class info, and an
// instance index — all persistent, extend-by-copy structures. Grounded
// on the teacher's internal/types/env.go (TypeEnv parent-chain lookup)
// and internal/types/instances.go (InstanceEnv coherence checking), but
// restructured per spec §4.2 into a single environment carrying all
// five namespaces plus the instance index, since schemes here also
// track class predicates absent from the teacher's plain TypeEnv.
package env

import (
	"github.com/classc/classc/internal/errs"
	"github.com/classc/classc/internal/name"
	"github.com/classc/classc/internal/source"
	"github.com/classc/classc/internal/types"
)

// ClassInfo records a class's parameter, superclasses, and member
// signatures.
type ClassInfo struct {
	Name    name.TypeConName
	Param   name.TypeVarName
	Supers  []name.TypeConName
	Members map[string]types.Type // member label -> member type (mentions Param)
	IsConstructorClass bool
}

// InstanceInfo records one class instance's head constructor, fresh
// parameters, and context.
type InstanceInfo struct {
	Class   name.TypeConName
	Head    name.TypeConName
	Params  []name.TypeVarName
	Context []types.ClassPredicate
}

// Env is an immutable typing environment. Extension methods return a
// new Env; the receiver is never mutated. Maps are copy-on-write: only
// the namespace being extended is copied, the rest are shared.
type Env struct {
	values    map[string]*types.TyScheme
	typeKinds map[string]types.Kind
	typeDefs  map[string]any // type name -> *ast.TypeDef, stored as any to avoid an ast<->env import cycle
	dataCons  map[string]*types.TyScheme
	labels    map[string]name.TypeConName // label -> owning record/algebraic type
	classes   map[string]*ClassInfo
	instances map[string]*InstanceInfo // "Class::Head" -> info
}

// New returns an empty environment.
func New() *Env {
	return &Env{
		values:    map[string]*types.TyScheme{},
		typeKinds: map[string]types.Kind{},
		typeDefs:  map[string]any{},
		dataCons:  map[string]*types.TyScheme{},
		labels:    map[string]name.TypeConName{},
		classes:   map[string]*ClassInfo{},
		instances: map[string]*InstanceInfo{},
	}
}

func (e *Env) clone() *Env {
	return &Env{
		values:    e.values,
		typeKinds: e.typeKinds,
		typeDefs:  e.typeDefs,
		dataCons:  e.dataCons,
		labels:    e.labels,
		classes:   e.classes,
		instances: e.instances,
	}
}

// Lookup returns the scheme bound to name, or UnboundIdentifier.
func (e *Env) Lookup(n name.ValueName) (*types.TyScheme, *errs.Report) {
	if s, ok := e.values[n.String()]; ok {
		return s, nil
	}
	return nil, errs.Newf(errs.UnboundIdentifier, "environment", source.Undefined, "unbound identifier: %s", n)
}

// BindScheme returns a new environment extending name with a
// (possibly polymorphic, possibly constrained) scheme.
func (e *Env) BindScheme(n name.ValueName, qs []name.TypeVarName, preds []types.ClassPredicate, body types.Type) *Env {
	next := e.clone()
	values := make(map[string]*types.TyScheme, len(e.values)+1)
	for k, v := range e.values {
		values[k] = v
	}
	values[n.String()] = &types.TyScheme{Quantifiers: qs, Predicates: preds, Body: body}
	next.values = values
	return next
}

// BindSimple is BindScheme with empty quantifiers and predicates.
func (e *Env) BindSimple(n name.ValueName, t types.Type) *Env {
	return e.BindScheme(n, nil, nil, t)
}

// LookupTypeKind returns the kind of a bound type constructor.
func (e *Env) LookupTypeKind(n name.TypeConName) (types.Kind, *errs.Report) {
	if k, ok := e.typeKinds[n.String()]; ok {
		return k, nil
	}
	return nil, errs.Newf(errs.UnboundIdentifier, "environment", source.Undefined, "unbound type constructor: %s", n)
}

// BindType extends the environment with a type constructor's kind and
// (opaque) definition.
func (e *Env) BindType(n name.TypeConName, k types.Kind, def any) *Env {
	next := e.clone()
	kinds := make(map[string]types.Kind, len(e.typeKinds)+1)
	for kk, vv := range e.typeKinds {
		kinds[kk] = vv
	}
	kinds[n.String()] = k
	next.typeKinds = kinds

	defs := make(map[string]any, len(e.typeDefs)+1)
	for kk, vv := range e.typeDefs {
		defs[kk] = vv
	}
	defs[n.String()] = def
	next.typeDefs = defs
	return next
}

// LookupTypeDef returns the opaque type definition bound to n.
func (e *Env) LookupTypeDef(n name.TypeConName) (any, bool) {
	d, ok := e.typeDefs[n.String()]
	return d, ok
}

// BindDataConstructor extends the environment with a data constructor's
// scheme (its arrow type ending in the owning algebraic type).
func (e *Env) BindDataConstructor(n name.LabelName, s *types.TyScheme) *Env {
	next := e.clone()
	cons := make(map[string]*types.TyScheme, len(e.dataCons)+1)
	for k, v := range e.dataCons {
		cons[k] = v
	}
	cons[n.String()] = s
	next.dataCons = cons
	return next
}

// LookupDataConstructor returns the scheme of a data constructor.
func (e *Env) LookupDataConstructor(n name.LabelName) (*types.TyScheme, *errs.Report) {
	if s, ok := e.dataCons[n.String()]; ok {
		return s, nil
	}
	return nil, errs.Newf(errs.UnboundIdentifier, "environment", source.Undefined, "unbound data constructor: %s", n)
}

// BindLabel records that label belongs to the record/algebraic type
// owner.
func (e *Env) BindLabel(label name.LabelName, owner name.TypeConName) *Env {
	next := e.clone()
	labels := make(map[string]name.TypeConName, len(e.labels)+1)
	for k, v := range e.labels {
		labels[k] = v
	}
	labels[label.String()] = owner
	next.labels = labels
	return next
}

// LookupLabel returns the owning type of a record label, or
// UnboundLabel.
func (e *Env) LookupLabel(label name.LabelName) (name.TypeConName, *errs.Report) {
	if owner, ok := e.labels[label.String()]; ok {
		return owner, nil
	}
	return name.TypeConName{}, errs.Newf(errs.UnboundLabel, "environment", source.Undefined, "unbound label: %s", label)
}

// BindClass registers a class's info.
func (e *Env) BindClass(info *ClassInfo) *Env {
	next := e.clone()
	classes := make(map[string]*ClassInfo, len(e.classes)+1)
	for k, v := range e.classes {
		classes[k] = v
	}
	classes[info.Name.String()] = info
	next.classes = classes
	return next
}

// LookupClass returns a class's info, or UnboundClass.
func (e *Env) LookupClass(n name.TypeConName) (*ClassInfo, *errs.Report) {
	if c, ok := e.classes[n.String()]; ok {
		return c, nil
	}
	return nil, errs.Newf(errs.UnboundClass, "environment", source.Undefined, "unbound class: %s", n)
}

func instanceKey(class, head name.TypeConName) string {
	return class.String() + "::" + head.String()
}

// BindInstance extends the environment with a new instance, rejecting
// overlap with an existing instance of the same class and head
// constructor (spec §4.2 policy, ELB005 OverlappingInstances).
func (e *Env) BindInstance(info *InstanceInfo) (*Env, *errs.Report) {
	key := instanceKey(info.Class, info.Head)
	if _, exists := e.instances[key]; exists {
		return nil, errs.Newf(errs.OverlappingInstances, "environment", source.Undefined,
			"overlapping instance: %s %s already has an instance", info.Class, info.Head)
	}
	next := e.clone()
	instances := make(map[string]*InstanceInfo, len(e.instances)+1)
	for k, v := range e.instances {
		instances[k] = v
	}
	instances[key] = info
	next.instances = instances
	return next, nil
}

// LookupInstance returns the instance of class for head, if any.
func (e *Env) LookupInstance(class, head name.TypeConName) (*InstanceInfo, bool) {
	inst, ok := e.instances[instanceKey(class, head)]
	return inst, ok
}

// IsSuperclass reports whether k1 is a (reflexive-transitive) superclass
// of k2: k1 == k2, or k1 is a direct superclass of k2, or a superclass
// of a superclass of k2, and so on (spec §4.2, §9 "Cyclic graphs" — an
// on-demand walk over the class table rather than owning cyclic
// references).
func (e *Env) IsSuperclass(k1, k2 name.TypeConName) bool {
	if k1.Equal(k2) {
		return true
	}
	info, ok := e.classes[k2.String()]
	if !ok {
		return false
	}
	visited := map[string]bool{k2.String(): true}
	return e.superclassWalk(k1, info, visited)
}

func (e *Env) superclassWalk(target name.TypeConName, info *ClassInfo, visited map[string]bool) bool {
	for _, sup := range info.Supers {
		if sup.Equal(target) {
			return true
		}
		if visited[sup.String()] {
			continue
		}
		visited[sup.String()] = true
		if supInfo, ok := e.classes[sup.String()]; ok {
			if e.superclassWalk(target, supInfo, visited) {
				return true
			}
		}
	}
	return false
}
