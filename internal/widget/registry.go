package widget

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// DefaultTag is the tag the built-in widget is registered under.
const DefaultTag = "my-element"

// Factory creates a widget for a tag.
type Factory func(opts ...Option) *Widget

var (
	// ErrInvalidTag is returned when a tag or its factory cannot be defined.
	// A valid tag starts with a lowercase letter, contains a hyphen and uses
	// only lowercase letters, digits, '-', '.' and '_'.
	ErrInvalidTag = errors.New("invalid tag name")
	// ErrTagDefined is returned when a tag is defined twice.
	ErrTagDefined = errors.New("tag already defined")
	// ErrUnknownTag is returned when creating an undefined tag.
	ErrUnknownTag = errors.New("unknown tag")
)

// registry maps tag names to factories.
var registry = map[string]Factory{}

func init() {
	if err := Define(DefaultTag, New); err != nil {
		panic(err)
	}
}

// Define registers factory under tag. Invalid tags and nil factories are
// rejected with ErrInvalidTag.
func Define(tag string, factory Factory) error {
	if !validTag(tag) {
		return fmt.Errorf("%w: %q", ErrInvalidTag, tag)
	}
	if factory == nil {
		return fmt.Errorf("%w: %q: nil factory", ErrInvalidTag, tag)
	}
	if _, ok := registry[tag]; ok {
		return fmt.Errorf("%w: %q", ErrTagDefined, tag)
	}
	registry[tag] = factory
	return nil
}

// IsDefined reports whether tag has a factory.
func IsDefined(tag string) bool {
	_, ok := registry[tag]
	return ok
}

// DefinedTags returns the registered tags in sorted order.
func DefinedTags() []string {
	tags := make([]string, 0, len(registry))
	for tag := range registry {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}

// Create instantiates the widget registered under tag.
func Create(tag string, opts ...Option) (*Widget, error) {
	factory, ok := registry[tag]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTag, tag)
	}
	opts = append([]Option{WithTag(tag)}, opts...)
	return factory(opts...), nil
}

func validTag(tag string) bool {
	if tag == "" || !strings.Contains(tag, "-") {
		return false
	}
	if tag[0] < 'a' || tag[0] > 'z' {
		return false
	}
	for i := 0; i < len(tag); i++ {
		c := tag[i]
		valid := (c >= 'a' && c <= 'z') ||
			(c >= '0' && c <= '9') ||
			c == '-' || c == '.' || c == '_'
		if !valid {
			return false
		}
	}
	return true
}
