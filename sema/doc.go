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

package sema

import (
	"strings"

	"github.com/turbolent/prettier"

	"github.com/onflow/ember/common"
)

const staticKeywordDoc = prettier.Text("static")
const abstractKeywordDoc = prettier.Text("abstract")
const finalKeywordDoc = prettier.Text("final")
const constKeywordDoc = prettier.Text("const")
const varKeywordDoc = prettier.Text("var")
const funKeywordDoc = prettier.Text("fun")
const classKeywordDoc = prettier.Text("class")
const interfaceKeywordDoc = prettier.Text("interface")
const extendsKeywordDoc = prettier.Text("extends")
const implementsKeywordDoc = prettier.Text("implements")
const typeSeparatorDoc = prettier.Text(": ")
const blockStartDoc = prettier.Text("{")
const blockEndDoc = prettier.Text("}")
const emptyBlockDoc = prettier.Text("{}")

var listSeparatorDoc prettier.Doc = prettier.Concat{
	prettier.Text(","),
	prettier.Line{},
}

// typeDoc returns a reference to the given type, not its declaration
func typeDoc(t Type) prettier.Doc {
	return prettier.Text(typeQualifiedString(t))
}

func parametersDoc(parameters []*Parameter) prettier.Doc {
	if len(parameters) == 0 {
		return prettier.Text("()")
	}

	var doc prettier.Concat
	for i, parameter := range parameters {
		if i > 0 {
			doc = append(doc, listSeparatorDoc)
		}
		doc = append(doc, prettier.Text(parameter.Identifier))
		if parameter.Type != nil {
			doc = append(doc, typeSeparatorDoc, typeDoc(parameter.Type))
		}
	}

	return prettier.WrapParentheses(doc, prettier.SoftLine{})
}

func typeListDoc(types []Type) prettier.Doc {
	var doc prettier.Concat
	for i, t := range types {
		if i > 0 {
			doc = append(doc, listSeparatorDoc)
		}
		doc = append(doc, typeDoc(t))
	}
	return doc
}

// Doc returns the declaration of the member
func (m *Member) Doc() prettier.Doc {
	doc := prettier.Concat{
		prettier.Text(m.Visibility.Keyword()),
		prettier.Space,
	}

	if m.Static && m.Kind != common.MemberKindStaticConstructor {
		doc = append(doc, staticKeywordDoc, prettier.Space)
	}

	if m.Abstract {
		doc = append(doc, abstractKeywordDoc, prettier.Space)
	}

	switch m.Kind {
	case common.MemberKindField:
		if m.Const {
			doc = append(doc, constKeywordDoc)
		} else {
			doc = append(doc, varKeywordDoc)
		}
		doc = append(
			doc,
			prettier.Space,
			prettier.Text(m.Identifier),
			typeSeparatorDoc,
			typeDoc(m.DeclaredType),
		)

	case common.MemberKindMethod:
		doc = append(
			doc,
			funKeywordDoc,
			prettier.Space,
			prettier.Text(m.Identifier),
			parametersDoc(m.ExplicitParameters()),
		)
		if m.DeclaredType != nil {
			doc = append(doc, typeSeparatorDoc, typeDoc(m.DeclaredType))
		}

	default:
		doc = append(
			doc,
			prettier.Text(m.Identifier),
			parametersDoc(m.ExplicitParameters()),
		)
		if m.ForwardCall != nil {
			doc = append(
				doc,
				typeSeparatorDoc,
				prettier.Text(m.ForwardCall.Target.Keyword()),
				prettier.WrapParentheses(
					typeListDoc(m.ForwardCall.Arguments),
					prettier.SoftLine{},
				),
			)
		}
	}

	return prettier.Group{
		Doc: doc,
	}
}

func membersBlockDoc(members []*Member) prettier.Doc {
	if len(members) == 0 {
		return emptyBlockDoc
	}

	var body prettier.Concat
	for _, member := range members {
		body = append(body, prettier.HardLine{}, member.Doc())
	}

	return prettier.Concat{
		blockStartDoc,
		prettier.Indent{
			Doc: body,
		},
		prettier.HardLine{},
		blockEndDoc,
	}
}

func interfacesDoc(keyword prettier.Doc, interfaces []*InterfaceType) prettier.Doc {
	if len(interfaces) == 0 {
		return nil
	}

	types := make([]Type, len(interfaces))
	for i, interfaceType := range interfaces {
		types[i] = interfaceType
	}

	return prettier.Concat{
		prettier.Line{},
		keyword,
		prettier.Space,
		prettier.Indent{
			Doc: typeListDoc(types),
		},
	}
}

func declaredMembers(t NominalType) []*Member {
	var members []*Member
	for _, static := range []bool{true, false} {
		t.DeclaredMembers(static).Foreach(func(_ string, overloads []*Member) {
			members = append(members, overloads...)
		})
	}
	return members
}

func (t *ClassType) Doc() prettier.Doc {
	doc := prettier.Concat{
		prettier.Text(t.visibility.Keyword()),
		prettier.Space,
	}

	if t.IsAbstract() {
		doc = append(doc, abstractKeywordDoc, prettier.Space)
	}
	if t.IsFinal() {
		doc = append(doc, finalKeywordDoc, prettier.Space)
	}

	doc = append(
		doc,
		classKeywordDoc,
		prettier.Space,
		prettier.Text(t.identifier),
	)

	var header prettier.Concat
	if t.parent != nil {
		header = append(
			header,
			prettier.Line{},
			extendsKeywordDoc,
			prettier.Space,
			prettier.Text(t.parent.QualifiedString()),
		)
	}
	if implements := interfacesDoc(implementsKeywordDoc, t.interfaces); implements != nil {
		header = append(header, implements)
	}
	if len(header) > 0 {
		doc = append(
			doc,
			prettier.Group{
				Doc: prettier.Indent{
					Doc: header,
				},
			},
		)
	}

	var members []*Member
	if t.staticConstructor != nil {
		members = append(members, t.staticConstructor)
	}
	members = append(members, t.constructors...)
	members = append(members, t.initializers...)
	members = append(members, declaredMembers(t)...)

	return append(
		doc,
		prettier.Space,
		membersBlockDoc(members),
	)
}

func (t *InterfaceType) Doc() prettier.Doc {
	doc := prettier.Concat{
		prettier.Text(t.visibility.Keyword()),
		prettier.Space,
		interfaceKeywordDoc,
		prettier.Space,
		prettier.Text(t.identifier),
	}

	if extends := interfacesDoc(extendsKeywordDoc, t.interfaces); extends != nil {
		doc = append(
			doc,
			prettier.Group{
				Doc: prettier.Indent{
					Doc: extends,
				},
			},
		)
	}

	return append(
		doc,
		prettier.Space,
		membersBlockDoc(declaredMembers(t)),
	)
}

// FormatDoc renders the given document with the given maximum line width
func FormatDoc(doc prettier.Doc, maxLineWidth int) string {
	var builder strings.Builder
	prettier.Prettier(&builder, doc, maxLineWidth, "    ")
	return builder.String()
}
