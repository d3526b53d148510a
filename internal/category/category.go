// Package category manages the hierarchical note-category tree stored in
// categories.yaml: loading, mutation, and serialization. Rendering is the
// caller's concern.
package category

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

var (
	// ErrCategoriesNotFound indicates the categories file does not exist.
	ErrCategoriesNotFound = errors.New("categories file not found")

	// ErrCategoriesInvalid indicates the categories file failed schema
	// validation.
	ErrCategoriesInvalid = errors.New("invalid categories file")

	// ErrDuplicateCategory indicates an id that already exists in the tree.
	ErrDuplicateCategory = errors.New("duplicate category id")

	// ErrUnknownCategory indicates an id that does not exist in the tree.
	ErrUnknownCategory = errors.New("unknown category id")
)

// Category is one node of the category tree. Ids are unique across the
// whole tree, not just among siblings.
type Category struct {
	ID            string      `yaml:"id"`
	Name          string      `yaml:"name"`
	Description   string      `yaml:"description,omitempty"`
	Documents     []string    `yaml:"documents,omitempty"`
	Subcategories []*Category `yaml:"subcategories,omitempty"`
}

// Tree is a loaded category hierarchy with an id index.
type Tree struct {
	roots []*Category
	index map[string]*Category
}

type categoriesFile struct {
	Version    int         `yaml:"version"`
	Categories []*Category `yaml:"categories"`
}

// NewTree returns an empty category tree.
func NewTree() *Tree {
	return &Tree{index: make(map[string]*Category)}
}

// Load reads and validates the categories file at path.
func Load(path string) (*Tree, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrCategoriesNotFound, path)
		}

		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	tree, parseErr := Parse(data)
	if parseErr != nil {
		return nil, fmt.Errorf("%s: %w", path, parseErr)
	}

	return tree, nil
}

// Parse decodes and validates categories YAML.
func Parse(data []byte) (*Tree, error) {
	var file categoriesFile

	// Unknown keys are load errors.
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	decodeErr := dec.Decode(&file)
	if decodeErr != nil {
		return nil, fmt.Errorf("%w: %v", ErrCategoriesInvalid, decodeErr)
	}

	if file.Version != 1 {
		return nil, fmt.Errorf("%w: unsupported version %d", ErrCategoriesInvalid, file.Version)
	}

	tree := NewTree()
	tree.roots = file.Categories

	for _, root := range tree.roots {
		indexErr := tree.indexCategory(root)
		if indexErr != nil {
			return nil, indexErr
		}
	}

	return tree, nil
}

// indexCategory registers a subtree in the id index, validating as it
// walks.
func (t *Tree) indexCategory(c *Category) error {
	validateErr := validateID(c.ID)
	if validateErr != nil {
		return validateErr
	}

	if c.Name == "" {
		return fmt.Errorf("%w: category %q has no name", ErrCategoriesInvalid, c.ID)
	}

	if _, exists := t.index[c.ID]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicateCategory, c.ID)
	}

	t.index[c.ID] = c

	for _, sub := range c.Subcategories {
		subErr := t.indexCategory(sub)
		if subErr != nil {
			return subErr
		}
	}

	return nil
}

func validateID(id string) error {
	if id == "" {
		return fmt.Errorf("%w: empty category id", ErrCategoriesInvalid)
	}

	if strings.ContainsAny(id, " \t") {
		return fmt.Errorf("%w: category id %q contains whitespace", ErrCategoriesInvalid, id)
	}

	return nil
}

// Marshal serializes the tree back to categories YAML.
func (t *Tree) Marshal() ([]byte, error) {
	file := categoriesFile{Version: 1, Categories: t.roots}

	data, err := yaml.Marshal(file)
	if err != nil {
		return nil, fmt.Errorf("marshal categories: %w", err)
	}

	return data, nil
}

// Add inserts a new category under parentID. An empty parentID adds a
// top-level category.
func (t *Tree) Add(parentID, id, name, description string) error {
	validateErr := validateID(id)
	if validateErr != nil {
		return validateErr
	}

	if name == "" {
		return fmt.Errorf("%w: category %q has no name", ErrCategoriesInvalid, id)
	}

	if _, exists := t.index[id]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicateCategory, id)
	}

	c := &Category{ID: id, Name: name, Description: description}

	if parentID == "" {
		t.roots = append(t.roots, c)
	} else {
		parent, ok := t.index[parentID]
		if !ok {
			return fmt.Errorf("%w: %q", ErrUnknownCategory, parentID)
		}

		parent.Subcategories = append(parent.Subcategories, c)
	}

	t.index[id] = c

	return nil
}

// Assign records a document name under a category. Assigning the same
// document twice is a no-op.
func (t *Tree) Assign(id, document string) error {
	if document == "" {
		return fmt.Errorf("%w: empty document name", ErrCategoriesInvalid)
	}

	c, ok := t.index[id]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownCategory, id)
	}

	for _, existing := range c.Documents {
		if existing == document {
			return nil
		}
	}

	c.Documents = append(c.Documents, document)

	return nil
}

// Find returns the category with the given id.
func (t *Tree) Find(id string) (*Category, bool) {
	c, ok := t.index[id]

	return c, ok
}

// Len returns the number of categories in the tree.
func (t *Tree) Len() int {
	return len(t.index)
}

// Roots returns the top-level categories in file order.
func (t *Tree) Roots() []*Category {
	return t.roots
}

// Walk visits every category depth-first in file order.
func (t *Tree) Walk(visit func(c *Category, depth int)) {
	for _, root := range t.roots {
		walkCategory(root, 0, visit)
	}
}

func walkCategory(c *Category, depth int, visit func(c *Category, depth int)) {
	visit(c, depth)

	for _, sub := range c.Subcategories {
		walkCategory(sub, depth+1, visit)
	}
}
