// Copyright 2026 go-tensorir Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package transform

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/pkg/errors"
	"github.com/samber/lo"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/ajroetker/go-tensorir/tir"
)

// Diagnostic is a non-fatal condition reported by a pass. The block kept
// compiling; the diagnostic explains what the pass declined to do.
type Diagnostic struct {
	Pass    string
	Block   string
	Message string
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("warning: [%s] block %q: %s", d.Pass, d.Block, d.Message)
}

// Func is the signature of a function-level pass.
type Func func(*tir.PrimFunc) (*tir.PrimFunc, []Diagnostic, error)

// Pass couples a stable registry name with the pass function.
type Pass struct {
	Name  string
	Apply Func
}

// DisplayName renders the snake_case registry name for human output,
// e.g. "inject_permuted_layout" -> "Inject Permuted Layout".
func (p Pass) DisplayName() string {
	words := strings.Split(p.Name, "_")
	return cases.Title(language.English).String(strings.Join(words, " "))
}

var registry = map[string]Pass{}

// Register adds a pass to the global registry. Registering two passes
// under the same name panics; names are package-level constants, so a
// collision is a programming error.
func Register(p Pass) {
	if _, dup := registry[p.Name]; dup {
		panic(fmt.Sprintf("transform: duplicate pass %q", p.Name))
	}
	registry[p.Name] = p
}

// Lookup returns the registered pass with the given name.
func Lookup(name string) (Pass, error) {
	p, ok := registry[name]
	if !ok {
		return Pass{}, errors.Errorf("transform: unknown pass %q (registered: %s)",
			name, strings.Join(Names(), ", "))
	}
	return p, nil
}

// Names returns the registered pass names in sorted order.
func Names() []string {
	names := lo.Keys(registry)
	sort.Strings(names)
	return names
}

// Sequential applies passes in order, writing diagnostics to w as they are
// produced. The first pass error aborts the pipeline.
func Sequential(fn *tir.PrimFunc, w io.Writer, names ...string) (*tir.PrimFunc, error) {
	for _, name := range names {
		pass, err := Lookup(name)
		if err != nil {
			return nil, err
		}
		next, diags, err := pass.Apply(fn)
		for _, d := range diags {
			fmt.Fprintln(w, d)
		}
		if err != nil {
			return nil, errors.Wrapf(err, "pass %q", name)
		}
		fn = next
	}
	return fn, nil
}
