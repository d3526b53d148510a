package category_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CodeAndRes/Brackets/internal/category"
)

const sampleCategories = `version: 1
categories:
  - id: dev
    name: Desarrollo
    description: Proyectos de software
    subcategories:
      - id: go
        name: Go
        documents:
          - "[2026][07]Week29.md"
  - id: personal
    name: Personal
`

func parseSample(t *testing.T) *category.Tree {
	t.Helper()

	tree, err := category.Parse([]byte(sampleCategories))
	require.NoError(t, err, "sample categories should parse")

	return tree
}

func Test_Load_Reads_Categories_File(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "categories.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleCategories), 0o644))

	tree, err := category.Load(path)
	require.NoError(t, err, "Load should succeed")
	assert.Equal(t, 3, tree.Len())
}

func Test_Load_Fails_When_File_Missing(t *testing.T) {
	t.Parallel()

	_, err := category.Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.ErrorIs(t, err, category.ErrCategoriesNotFound)
}

func Test_Parse_Indexes_Nested_Categories(t *testing.T) {
	t.Parallel()

	tree := parseSample(t)

	c, ok := tree.Find("go")
	require.True(t, ok, "nested id should be indexed")
	assert.Equal(t, "Go", c.Name)
	assert.Equal(t, []string{"[2026][07]Week29.md"}, c.Documents)

	_, ok = tree.Find("missing")
	assert.False(t, ok)
}

func Test_Parse_Fails_On_Invalid_Files(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		content string
		wantErr error
	}{
		{
			name:    "UnknownKey",
			content: "version: 1\ncategorias: []\n",
			wantErr: category.ErrCategoriesInvalid,
		},
		{
			name:    "UnsupportedVersion",
			content: "version: 3\ncategories: []\n",
			wantErr: category.ErrCategoriesInvalid,
		},
		{
			name:    "EmptyID",
			content: "version: 1\ncategories:\n  - id: \"\"\n    name: X\n",
			wantErr: category.ErrCategoriesInvalid,
		},
		{
			name:    "IDWithSpace",
			content: "version: 1\ncategories:\n  - id: \"a b\"\n    name: X\n",
			wantErr: category.ErrCategoriesInvalid,
		},
		{
			name:    "MissingName",
			content: "version: 1\ncategories:\n  - id: dev\n",
			wantErr: category.ErrCategoriesInvalid,
		},
		{
			name: "DuplicateID",
			content: "version: 1\ncategories:\n" +
				"  - id: dev\n    name: Uno\n" +
				"  - id: dev\n    name: Dos\n",
			wantErr: category.ErrDuplicateCategory,
		},
		{
			name: "DuplicateNestedID",
			content: "version: 1\ncategories:\n" +
				"  - id: dev\n    name: Uno\n    subcategories:\n" +
				"      - id: dev\n        name: Dos\n",
			wantErr: category.ErrDuplicateCategory,
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			_, err := category.Parse([]byte(testCase.content))
			require.ErrorIs(t, err, testCase.wantErr)
		})
	}
}

func Test_Add_Inserts_Categories(t *testing.T) {
	t.Parallel()

	tree := parseSample(t)

	require.NoError(t, tree.Add("", "salud", "Salud", ""))
	require.NoError(t, tree.Add("dev", "rust", "Rust", "otro lenguaje"))

	roots := tree.Roots()
	require.Len(t, roots, 3)
	assert.Equal(t, "salud", roots[2].ID, "new root goes last")

	c, ok := tree.Find("rust")
	require.True(t, ok)
	assert.Equal(t, "otro lenguaje", c.Description)

	dev, _ := tree.Find("dev")
	require.Len(t, dev.Subcategories, 2)
	assert.Equal(t, "rust", dev.Subcategories[1].ID, "new child goes last")
}

func Test_Add_Rejects_Bad_Input(t *testing.T) {
	t.Parallel()

	tree := parseSample(t)

	require.ErrorIs(t, tree.Add("", "dev", "Otra", ""), category.ErrDuplicateCategory)
	require.ErrorIs(t, tree.Add("missing", "x", "X", ""), category.ErrUnknownCategory)
	require.ErrorIs(t, tree.Add("", "", "X", ""), category.ErrCategoriesInvalid)
	require.ErrorIs(t, tree.Add("", "con espacio", "X", ""), category.ErrCategoriesInvalid)
	require.ErrorIs(t, tree.Add("", "x", "", ""), category.ErrCategoriesInvalid)
}

func Test_Assign_Records_Documents(t *testing.T) {
	t.Parallel()

	tree := parseSample(t)

	require.NoError(t, tree.Assign("personal", "[2026][08]Week33.md"))
	require.NoError(t, tree.Assign("personal", "[2026][08]Week33.md"), "reassignment is a no-op")

	c, _ := tree.Find("personal")
	assert.Equal(t, []string{"[2026][08]Week33.md"}, c.Documents)

	require.ErrorIs(t, tree.Assign("missing", "x.md"), category.ErrUnknownCategory)
	require.ErrorIs(t, tree.Assign("personal", ""), category.ErrCategoriesInvalid)
}

func Test_Marshal_RoundTrips(t *testing.T) {
	t.Parallel()

	tree := parseSample(t)
	require.NoError(t, tree.Add("go", "testing", "Testing", ""))

	data, err := tree.Marshal()
	require.NoError(t, err)

	reparsed, err := category.Parse(data)
	require.NoError(t, err, "marshaled output should parse back")

	assert.Equal(t, tree.Len(), reparsed.Len())

	c, ok := reparsed.Find("testing")
	require.True(t, ok, "added category should survive the round trip")
	assert.Equal(t, "Testing", c.Name)
}

func Test_Walk_Visits_DepthFirst(t *testing.T) {
	t.Parallel()

	tree := parseSample(t)

	var visited []string

	var depths []int

	tree.Walk(func(c *category.Category, depth int) {
		visited = append(visited, c.ID)
		depths = append(depths, depth)
	})

	assert.Equal(t, []string{"dev", "go", "personal"}, visited)
	assert.Equal(t, []int{0, 1, 0}, depths)
}
