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

// ModuleDeclaration is the root of a declaration file
type ModuleDeclaration struct {
	Module string            `yaml:"module"`
	Types  []TypeDeclaration `yaml:"types"`
}

// TypeDeclaration declares either a class or an interface
type TypeDeclaration struct {
	Class       string                  `yaml:"class"`
	Interface   string                  `yaml:"interface"`
	Visibility  string                  `yaml:"visibility"`
	Abstract    bool                    `yaml:"abstract"`
	Final       bool                    `yaml:"final"`
	Attribute   bool                    `yaml:"attribute"`
	Inherited   bool                    `yaml:"inherited"`
	Parent      string                  `yaml:"parent"`
	Implements  []string                `yaml:"implements"`
	Extends     []string                `yaml:"extends"`
	Extensions  []string                `yaml:"extensions"`
	Annotations []AnnotationDeclaration `yaml:"annotations"`
	Members     []MemberDeclaration     `yaml:"members"`
	Doc         string                  `yaml:"doc"`
}

func (d TypeDeclaration) Name() string {
	if d.Class != "" {
		return d.Class
	}
	return d.Interface
}

func (d TypeDeclaration) IsInterface() bool {
	return d.Interface != ""
}

type AnnotationDeclaration struct {
	Type      string            `yaml:"type"`
	Arguments map[string]string `yaml:"arguments"`
}

const (
	MemberKindKeywordField             = "field"
	MemberKindKeywordMethod            = "method"
	MemberKindKeywordConstructor       = "constructor"
	MemberKindKeywordInitializer       = "initializer"
	MemberKindKeywordStaticConstructor = "static_constructor"
)

type MemberDeclaration struct {
	Kind       string                  `yaml:"kind"`
	Name       string                  `yaml:"name"`
	Visibility string                  `yaml:"visibility"`
	Static     bool                    `yaml:"static"`
	Abstract   bool                    `yaml:"abstract"`
	Const      bool                    `yaml:"const"`
	Type       string                  `yaml:"type"`
	Returns    string                  `yaml:"returns"`
	Params     []ParameterDeclaration  `yaml:"params"`
	Calls      *ForwardCallDeclaration `yaml:"calls"`
	Doc        string                  `yaml:"doc"`
}

type ParameterDeclaration struct {
	Name string `yaml:"name"`
	Type string `yaml:"type"`
}

// ForwardCallDeclaration is the `this(...)` or `super(...)` call of a constructor
type ForwardCallDeclaration struct {
	Target    string   `yaml:"target"`
	Arguments []string `yaml:"arguments"`
}
