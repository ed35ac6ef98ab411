// Package syntax implements Mollang syntax highlighting: a Registry of keyword
// categories, the Matcher compiled from it, and the highlight pass that turns
// text into styled spans.
package syntax

import (
	"fmt"
	"iter"
	"slices"

	"github.com/fivemoreminix/moledit/pkg/log"
)

// A Registry holds keyword categories in priority order together with the
// Matcher compiled from them. Every successful mutation recompiles before it
// returns, so Matcher never lags behind the categories. A failed mutation
// leaves both untouched.
//
// A Registry is not safe for concurrent use; the editor owns it on its event
// loop.
type Registry struct {
	categories []Category
	matcher    *Matcher
	dirty      bool
	listeners  []func(*Matcher)
}

// NewRegistry returns a Registry holding categories, in order.
func NewRegistry(categories ...Category) (*Registry, error) {
	r := &Registry{}
	next, err := prepare(categories)
	if err != nil {
		return nil, err
	}
	m, err := Compile(next)
	if err != nil {
		return nil, err
	}
	r.categories, r.matcher = next, m
	return r, nil
}

// NewDefaultRegistry returns a Registry holding the built-in categories.
func NewDefaultRegistry() *Registry {
	r, err := NewRegistry(DefaultCategories()...)
	if err != nil {
		panic(fmt.Sprintf("built-in keyword set does not compile: %v", err))
	}
	return r
}

// Matcher returns the matcher compiled from the current categories.
func (r *Registry) Matcher() *Matcher {
	return r.matcher
}

// Highlight is shorthand for r.Matcher().Highlight(text).
func (r *Registry) Highlight(text string) []Span {
	return r.matcher.Highlight(text)
}

// Len returns the number of categories.
func (r *Registry) Len() int {
	return len(r.categories)
}

// All yields copies of the categories in priority order.
func (r *Registry) All() iter.Seq[Category] {
	return func(yield func(Category) bool) {
		for _, c := range r.categories {
			if !yield(c.Clone()) {
				return
			}
		}
	}
}

// Categories returns copies of the categories in priority order.
func (r *Registry) Categories() []Category {
	return slices.Collect(r.All())
}

// Category returns a copy of the named category.
func (r *Registry) Category(name string) (Category, bool) {
	if i := r.index(name); i >= 0 {
		return r.categories[i].Clone(), true
	}
	return Category{}, false
}

// AddCategory appends a category at the lowest priority.
func (r *Registry) AddCategory(name string, patterns []string, style Style) error {
	if r.index(name) >= 0 {
		return fmt.Errorf("%w: %q", ErrDuplicateName, name)
	}
	next := r.cloneCategories()
	next = append(next, Category{Name: name, Patterns: slices.Clone(patterns), Style: style})
	return r.commit(next)
}

// An UpdateOption selects a field replaced by UpdateCategory.
type UpdateOption func(*Category)

// WithPatterns replaces a category's patterns.
func WithPatterns(patterns ...string) UpdateOption {
	patterns = slices.Clone(patterns)
	return func(c *Category) { c.Patterns = patterns }
}

// WithStyle replaces a category's style.
func WithStyle(style Style) UpdateOption {
	return func(c *Category) { c.Style = style }
}

// UpdateCategory replaces the fields selected by opts. The category keeps its
// position in the priority order.
func (r *Registry) UpdateCategory(name string, opts ...UpdateOption) error {
	i := r.index(name)
	if i < 0 {
		return fmt.Errorf("category %q: %w", name, ErrNotFound)
	}
	next := r.cloneCategories()
	for _, opt := range opts {
		opt(&next[i])
	}
	return r.commit(next)
}

// RemoveCategory deletes a category. Text it used to match is unstyled from
// the next highlight pass on.
func (r *Registry) RemoveCategory(name string) error {
	i := r.index(name)
	if i < 0 {
		return fmt.Errorf("category %q: %w", name, ErrNotFound)
	}
	next := r.cloneCategories()
	next = slices.Delete(next, i, i+1)
	return r.commit(next)
}

// AddKeyword appends pattern to an existing category.
func (r *Registry) AddKeyword(name, pattern string) error {
	i := r.index(name)
	if i < 0 {
		return fmt.Errorf("category %q: %w", name, ErrNotFound)
	}
	p, err := ParsePattern(pattern)
	if err != nil {
		return err
	}
	if slices.Contains(r.categories[i].Patterns, p.Source) {
		return fmt.Errorf("%w: %q in %q", ErrDuplicatePattern, pattern, name)
	}
	next := r.cloneCategories()
	next[i].Patterns = append(next[i].Patterns, p.Source)
	return r.commit(next)
}

// RemoveKeyword removes pattern from a category. The category stays, even if
// it has no patterns left.
func (r *Registry) RemoveKeyword(name, pattern string) error {
	i := r.index(name)
	if i < 0 {
		return fmt.Errorf("category %q: %w", name, ErrNotFound)
	}
	p, err := ParsePattern(pattern)
	if err != nil {
		return err
	}
	j := slices.Index(r.categories[i].Patterns, p.Source)
	if j < 0 {
		return fmt.Errorf("pattern %q in %q: %w", pattern, name, ErrNotFound)
	}
	next := r.cloneCategories()
	next[i].Patterns = slices.Delete(next[i].Patterns, j, j+1)
	return r.commit(next)
}

// Set replaces every category at once.
func (r *Registry) Set(categories []Category) error {
	return r.commit(categories)
}

// ResetToDefaults discards all categories and restores the built-in set.
func (r *Registry) ResetToDefaults() {
	if err := r.commit(DefaultCategories()); err != nil {
		panic(fmt.Sprintf("built-in keyword set does not compile: %v", err))
	}
}

// Dirty reports whether the registry changed since the last MarkClean.
func (r *Registry) Dirty() bool {
	return r.dirty
}

// MarkClean clears the dirty flag, typically after the registry was saved.
func (r *Registry) MarkClean() {
	r.dirty = false
}

// OnChange registers fn to be called with the new Matcher after every
// successful mutation.
func (r *Registry) OnChange(fn func(*Matcher)) {
	r.listeners = append(r.listeners, fn)
}

func (r *Registry) index(name string) int {
	return slices.IndexFunc(r.categories, func(c Category) bool { return c.Name == name })
}

func (r *Registry) cloneCategories() []Category {
	out := make([]Category, len(r.categories))
	for i, c := range r.categories {
		out[i] = c.Clone()
	}
	return out
}

// commit validates and compiles next, then publishes it.
func (r *Registry) commit(next []Category) error {
	next, err := prepare(next)
	if err != nil {
		return err
	}
	m, err := Compile(next)
	if err != nil {
		return err
	}

	r.categories, r.matcher = next, m
	r.dirty = true
	log.Debug(log.CatSyntax, "recompiled matcher", "categories", len(next), "patterns", m.Patterns())

	for _, fn := range r.listeners {
		fn(m)
	}
	return nil
}

func prepare(categories []Category) ([]Category, error) {
	out := make([]Category, 0, len(categories))
	seen := make(map[string]bool, len(categories))
	for _, c := range categories {
		if seen[c.Name] {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateName, c.Name)
		}
		seen[c.Name] = true

		n, err := c.normalized()
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, nil
}
