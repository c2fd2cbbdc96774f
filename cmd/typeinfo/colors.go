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

package main

import (
	"github.com/logrusorgru/aurora/v4"
)

type colorizer struct {
	aurora *aurora.Aurora
}

func newColorizer(colors bool) colorizer {
	return colorizer{
		aurora: aurora.New(aurora.WithColors(colors)),
	}
}

func (c colorizer) typeName(name string) string {
	return c.aurora.Colorize(name, aurora.CyanFg|aurora.BoldFm).String()
}

func (c colorizer) definingType(name string) string {
	return c.aurora.Colorize(name, aurora.YellowFg).String()
}

func (c colorizer) success(message string) string {
	return c.aurora.Colorize(message, aurora.GreenFg|aurora.BrightFg).String()
}

func (c colorizer) error(message string) string {
	return c.aurora.Colorize(message, aurora.RedFg|aurora.BrightFg|aurora.BoldFm).String()
}
