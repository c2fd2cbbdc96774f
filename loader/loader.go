/*
 * Ember - The embeddable scripting language
 *
 * Copyright Flow Foundation
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *   http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package loader

import (
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/rs/zerolog"
	"golang.org/x/exp/slices"

	"github.com/onflow/ember/common/deps"
	"github.com/onflow/ember/sema"
	"github.com/onflow/ember/stdlib"
)

type Config struct {
	// Logger receives an event for each loaded module.
	// If nil, nothing is logged.
	Logger *zerolog.Logger
	// Imports are previously loaded modules,
	// whose types may be referenced by qualified name
	Imports []*Module
}

var nopLogger = zerolog.Nop()

func (c *Config) logger() *zerolog.Logger {
	if c.Logger == nil {
		return &nopLogger
	}
	return c.Logger
}

// Parse decodes a declaration file
func Parse(data []byte) (*ModuleDeclaration, error) {
	var declaration ModuleDeclaration
	if err := yaml.UnmarshalWithOptions(data, &declaration, yaml.Strict()); err != nil {
		return nil, &ParseError{Err: err}
	}
	return &declaration, nil
}

// Load parses a declaration file and builds and seals its types
// in the arena of the given built-in types
func Load(data []byte, farm *stdlib.Farm, config Config) (*Module, error) {
	declaration, err := Parse(data)
	if err != nil {
		return nil, err
	}
	return LoadDeclaration(declaration, farm, config)
}

// pendingType is a declared type between stubbing and sealing
type pendingType struct {
	declaration      *TypeDeclaration
	classBuilder     *sema.ClassTypeBuilder
	interfaceBuilder *sema.InterfaceTypeBuilder
	node             *deps.Node[*pendingType]
}

func (p *pendingType) String() string {
	return p.declaration.Name()
}

func (p *pendingType) stub() sema.NominalType {
	if p.classBuilder != nil {
		return p.classBuilder.Stub()
	}
	return p.interfaceBuilder.Stub()
}

type moduleLoader struct {
	module  *Module
	farm    *stdlib.Farm
	arena   *sema.Arena
	pending map[string]*pendingType
	order   []*pendingType
}

// LoadDeclaration builds and seals the types of a parsed declaration file.
//
// All types are stubbed first, so declarations may reference types declared later.
// Members are added and types are sealed supertypes first.
func LoadDeclaration(declaration *ModuleDeclaration, farm *stdlib.Farm, config Config) (*Module, error) {
	if declaration.Module == "" {
		return nil, newInvalidDeclarationError("missing module name")
	}

	l := &moduleLoader{
		module:  newModule(declaration.Module, farm, config.Imports),
		farm:    farm,
		arena:   farm.Arena(),
		pending: map[string]*pendingType{},
	}

	for i := range declaration.Types {
		if err := l.declare(&declaration.Types[i]); err != nil {
			return nil, l.wrapError(&declaration.Types[i], err)
		}
	}

	for _, pending := range l.order {
		if err := l.link(pending); err != nil {
			return nil, l.wrapError(pending.declaration, err)
		}
	}

	nodes := make([]*deps.Node[*pendingType], len(l.order))
	for i, pending := range l.order {
		nodes[i] = pending.node
	}

	solution, err := deps.SolveDependencies(nodes)
	if err != nil {
		return nil, l.wrapError(nil, err)
	}

	for _, node := range solution {
		pending := node.Value
		if err := l.complete(pending); err != nil {
			return nil, l.wrapError(pending.declaration, err)
		}
	}

	config.logger().Info().
		Str("module", l.module.name).
		Int("types", l.module.types.Len()).
		Msg("loaded module")

	return l.module, nil
}

func (l *moduleLoader) wrapError(declaration *TypeDeclaration, err error) error {
	typeName := ""
	if declaration != nil {
		typeName = declaration.Name()
	}
	return &DeclarationError{
		Module: l.module.name,
		Type:   typeName,
		Err:    err,
	}
}

// declare creates the stub of the declared type
func (l *moduleLoader) declare(declaration *TypeDeclaration) error {
	if (declaration.Class == "") == (declaration.Interface == "") {
		return newInvalidDeclarationError("a type declaration must declare either a class or an interface")
	}

	name := declaration.Name()

	if stdlib.IsBuiltinTypeName(name) {
		return &ReservedTypeNameError{Name: name}
	}

	if _, ok := l.pending[name]; ok {
		return &DuplicateTypeError{Name: name}
	}

	visibility := sema.VisibilityPublic
	if declaration.Visibility != "" {
		var err error
		visibility, err = sema.ParseVisibility(declaration.Visibility)
		if err != nil {
			return err
		}
	}

	properties := sema.TypePropertiesNone
	if declaration.Abstract {
		properties |= sema.TypePropertyAbstract
	}
	if declaration.Final {
		properties |= sema.TypePropertyFinal
	}
	if declaration.Attribute {
		properties |= sema.TypePropertyAttribute
	}
	if declaration.Inherited {
		properties |= sema.TypePropertyInheritedAnnotation
	}

	pending := &pendingType{
		declaration: declaration,
	}
	pending.node = deps.NewNode(pending, deps.NewOrderedNodeSet[*pendingType])

	if declaration.IsInterface() {
		if declaration.Parent != "" || len(declaration.Implements) > 0 {
			return newInvalidDeclarationError("interfaces extend other interfaces, they have no parent and implement nothing")
		}
		pending.interfaceBuilder = l.arena.NewInterfaceTypeBuilder(name, l.module.name, visibility, properties)
		pending.interfaceBuilder.SetScope(l.module)
		pending.interfaceBuilder.SetDocString(declaration.Doc)
	} else {
		if len(declaration.Extends) > 0 {
			return newInvalidDeclarationError("classes extend their parent, interfaces are implemented")
		}
		pending.classBuilder = l.arena.NewClassTypeBuilder(name, l.module.name, visibility, properties)
		pending.classBuilder.SetScope(l.module)
		pending.classBuilder.SetDocString(declaration.Doc)
	}

	l.pending[name] = pending
	l.order = append(l.order, pending)
	l.module.types.Set(name, pending.stub())

	return nil
}

// link sets the supertypes, extension classes and annotations of the declared type
func (l *moduleLoader) link(pending *pendingType) error {
	declaration := pending.declaration
	self := pending.stub()

	var dependencies []*deps.Node[*pendingType]
	addDependency := func(t sema.NominalType) {
		if dependency, ok := l.pending[t.Identifier()]; ok && dependency.stub() == t {
			dependencies = append(dependencies, dependency.node)
		}
	}

	var interfaceNames []string

	if pending.classBuilder != nil {
		parent := l.farm.Root()
		if declaration.Parent != "" {
			var err error
			parent, err = l.resolveClass(declaration.Parent, self)
			if err != nil {
				return err
			}
		}
		if err := pending.classBuilder.SetParent(parent); err != nil {
			return err
		}
		addDependency(parent)

		interfaceNames = declaration.Implements
	} else {
		interfaceNames = declaration.Extends
	}

	for _, interfaceName := range interfaceNames {
		interfaceType, err := l.resolveInterface(interfaceName, self)
		if err != nil {
			return err
		}

		if pending.classBuilder != nil {
			err = pending.classBuilder.AddInterface(interfaceType)
		} else {
			err = pending.interfaceBuilder.AddInterface(interfaceType)
		}
		if err != nil {
			return err
		}
		addDependency(interfaceType)
	}

	for _, extensionName := range declaration.Extensions {
		extensionClass, err := l.resolveClass(extensionName, self)
		if err != nil {
			return err
		}
		if pending.classBuilder != nil {
			pending.classBuilder.AddExtensionClass(extensionClass)
		} else {
			pending.interfaceBuilder.AddExtensionClass(extensionClass)
		}
	}

	for _, annotationDeclaration := range declaration.Annotations {
		annotation, err := l.resolveAnnotation(annotationDeclaration, self)
		if err != nil {
			return err
		}
		if pending.classBuilder != nil {
			pending.classBuilder.AddAnnotation(annotation)
		} else {
			pending.interfaceBuilder.AddAnnotation(annotation)
		}
	}

	pending.node.SetDependencies(dependencies...)

	return nil
}

func (l *moduleLoader) resolveAnnotation(
	declaration AnnotationDeclaration,
	self sema.NominalType,
) (*sema.Annotation, error) {
	annotationType, err := l.resolveClass(declaration.Type, self)
	if err != nil {
		return nil, err
	}

	attributeType := l.farm.MustLookup(stdlib.AttributeTypeName)
	if !annotationType.IsDerivedFrom(attributeType, false) {
		return nil, &InvalidAnnotationError{
			Name: declaration.Type,
		}
	}

	annotation := &sema.Annotation{
		Type: annotationType,
	}

	// arguments are kept in a deterministic order
	names := make([]string, 0, len(declaration.Arguments))
	for name := range declaration.Arguments { //nolint:maprange
		names = append(names, name)
	}
	slices.Sort(names)

	for _, name := range names {
		annotation.Arguments = append(
			annotation.Arguments,
			sema.AnnotationArgument{
				Name:  name,
				Value: declaration.Arguments[name],
			},
		)
	}

	return annotation, nil
}

// complete adds the members of the declared type and seals it
func (l *moduleLoader) complete(pending *pendingType) error {
	self := pending.stub()

	for _, memberDeclaration := range pending.declaration.Members {
		member, err := l.member(memberDeclaration, self)
		if err != nil {
			return err
		}

		if pending.classBuilder != nil {
			if member.Static {
				err = pending.classBuilder.AddStaticMember(member)
			} else {
				err = pending.classBuilder.AddInstanceMember(member)
			}
		} else {
			if member.Static {
				err = pending.interfaceBuilder.AddStaticMember(member)
			} else {
				err = pending.interfaceBuilder.AddInstanceMember(member)
			}
		}
		if err != nil {
			return err
		}
	}

	if pending.classBuilder != nil {
		pending.classBuilder.MarkParsed()
		return pending.classBuilder.Seal()
	}

	pending.interfaceBuilder.MarkParsed()
	return pending.interfaceBuilder.Seal()
}

func (l *moduleLoader) member(declaration MemberDeclaration, self sema.NominalType) (*sema.Member, error) {
	visibility := sema.VisibilityPublic
	if declaration.Visibility != "" {
		var err error
		visibility, err = sema.ParseVisibility(declaration.Visibility)
		if err != nil {
			return nil, err
		}
	}

	parameters, err := l.parameters(declaration.Params, self)
	if err != nil {
		return nil, err
	}

	switch declaration.Kind {
	case MemberKindKeywordField:
		fieldType, err := l.resolveType(declaration.Type, self)
		if err != nil {
			return nil, err
		}
		return sema.NewFieldMember(
			self,
			visibility,
			declaration.Static,
			declaration.Const,
			declaration.Name,
			fieldType,
			declaration.Doc,
		), nil

	case MemberKindKeywordMethod:
		returnType, err := l.resolveType(declaration.Returns, self)
		if err != nil {
			return nil, err
		}
		if declaration.Abstract {
			if declaration.Static {
				return nil, newInvalidDeclarationError("static method `%s` cannot be abstract", declaration.Name)
			}
			return sema.NewAbstractMethodMember(
				self,
				visibility,
				declaration.Name,
				parameters,
				returnType,
				declaration.Doc,
			), nil
		}
		return sema.NewMethodMember(
			self,
			visibility,
			declaration.Static,
			declaration.Name,
			parameters,
			returnType,
			declaration.Doc,
		), nil

	case MemberKindKeywordConstructor:
		forwardCall, err := l.forwardCall(declaration.Calls, self)
		if err != nil {
			return nil, err
		}
		return sema.NewConstructorMember(
			self,
			visibility,
			parameters,
			forwardCall,
			declaration.Doc,
		), nil

	case MemberKindKeywordInitializer:
		return sema.NewInitializerMember(
			self,
			visibility,
			parameters,
			declaration.Doc,
		), nil

	case MemberKindKeywordStaticConstructor:
		return sema.NewStaticConstructorMember(self), nil
	}

	return nil, newInvalidDeclarationError("invalid member kind: `%s`", declaration.Kind)
}

func (l *moduleLoader) parameters(declarations []ParameterDeclaration, self sema.NominalType) ([]*sema.Parameter, error) {
	if len(declarations) == 0 {
		return nil, nil
	}

	parameters := make([]*sema.Parameter, len(declarations))
	for i, declaration := range declarations {
		parameterType, err := l.resolveType(declaration.Type, self)
		if err != nil {
			return nil, err
		}
		parameters[i] = &sema.Parameter{
			Identifier: declaration.Name,
			Type:       parameterType,
		}
	}
	return parameters, nil
}

func (l *moduleLoader) forwardCall(declaration *ForwardCallDeclaration, self sema.NominalType) (*sema.ForwardCall, error) {
	if declaration == nil {
		return nil, nil
	}

	var target sema.ForwardCallTarget
	switch declaration.Target {
	case sema.ForwardCallThis.Keyword():
		target = sema.ForwardCallThis
	case sema.ForwardCallSuper.Keyword():
		target = sema.ForwardCallSuper
	default:
		return nil, newInvalidDeclarationError("invalid constructor call target: `%s`", declaration.Target)
	}

	arguments := make([]sema.Type, len(declaration.Arguments))
	for i, argument := range declaration.Arguments {
		argumentType, err := l.resolveType(argument, self)
		if err != nil {
			return nil, err
		}
		arguments[i] = argumentType
	}

	return &sema.ForwardCall{
		Target:    target,
		Arguments: arguments,
	}, nil
}

// resolveType resolves a type reference.
// An empty reference and `dynamic` are untyped, a `[]` suffix denotes an array type.
func (l *moduleLoader) resolveType(name string, self sema.NominalType) (sema.Type, error) {
	name = strings.TrimSpace(name)

	if name == "" || name == sema.UntypedName {
		return nil, nil
	}

	if elementName, ok := strings.CutSuffix(name, "[]"); ok {
		elementType, err := l.resolveType(elementName, self)
		if err != nil {
			return nil, err
		}
		if elementType == nil {
			elementType = l.farm.MustLookup(stdlib.DynamicTypeName)
		}
		return l.farm.ArrayOf(elementType), nil
	}

	if primitiveType, ok := sema.PrimitiveTypeByName(name); ok {
		return primitiveType, nil
	}

	return l.resolveNominalType(name, self)
}

func (l *moduleLoader) resolveNominalType(name string, self sema.NominalType) (sema.NominalType, error) {
	t, ok := l.module.LookupType(name)
	if !ok {
		return nil, &UnknownTypeError{Name: name}
	}

	if err := sema.CheckTypeVisibility(t, self); err != nil {
		return nil, err
	}

	return t, nil
}

func (l *moduleLoader) resolveClass(name string, self sema.NominalType) (*sema.ClassType, error) {
	t, err := l.resolveNominalType(name, self)
	if err != nil {
		return nil, err
	}

	classType, ok := t.(*sema.ClassType)
	if !ok {
		return nil, &UnexpectedTypeKindError{
			Name:     name,
			Expected: "a class",
		}
	}
	return classType, nil
}

func (l *moduleLoader) resolveInterface(name string, self sema.NominalType) (*sema.InterfaceType, error) {
	t, err := l.resolveNominalType(name, self)
	if err != nil {
		return nil, err
	}

	interfaceType, ok := t.(*sema.InterfaceType)
	if !ok {
		return nil, &UnexpectedTypeKindError{
			Name:     name,
			Expected: "an interface",
		}
	}
	return interfaceType, nil
}
