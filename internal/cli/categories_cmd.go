package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/CodeAndRes/Brackets/internal/category"
	"github.com/CodeAndRes/Brackets/internal/journal"
	"github.com/CodeAndRes/Brackets/internal/vault"

	flag "github.com/spf13/pflag"
)

var (
	errUnknownAction    = errors.New("unknown action (add|assign)")
	errAddArgsRequired  = errors.New("add needs <id> and <name>")
	errAssignArgsNeeded = errors.New("assign needs <id> and <document>")
)

// CategoriesCmd returns the categories command.
func CategoriesCmd(cfg *journal.Config) *Command {
	fs := flag.NewFlagSet("categories", flag.ContinueOnError)
	fs.String("parent", "", "Parent category id for add (default: top level)")
	fs.String("description", "", "Description for add")

	return &Command{
		Flags: fs,
		Usage: "categories [add|assign] [args]",
		Short: "Show or edit the note category tree",
		Long: `Show the category tree from categories.yaml, or edit it:

  categories                           print the tree
  categories add <id> <name> [flags]   add a category
  categories assign <id> <document>    file a document under a category`,
		Exec: func(_ context.Context, o *IO, args []string) error {
			return execCategories(o, cfg, fs, args)
		},
	}
}

func execCategories(o *IO, cfg *journal.Config, fs *flag.FlagSet, args []string) error {
	if len(args) == 0 {
		return printCategoryTree(o, cfg)
	}

	switch args[0] {
	case "add":
		return execCategoriesAdd(o, cfg, fs, args[1:])
	case "assign":
		return execCategoriesAssign(o, cfg, args[1:])
	default:
		return fmt.Errorf("%w: %s", errUnknownAction, args[0])
	}
}

func printCategoryTree(o *IO, cfg *journal.Config) error {
	tree, loadErr := category.Load(cfg.CategoriesAbs)
	if loadErr != nil {
		return loadErr
	}

	tree.Walk(func(c *category.Category, depth int) {
		indent := strings.Repeat("  ", depth)

		o.Println(fmt.Sprintf("%s%s [%s]", indent, c.Name, c.ID))

		for _, doc := range c.Documents {
			o.Println(fmt.Sprintf("%s  - %s", indent, doc))
		}
	})

	return nil
}

func execCategoriesAdd(o *IO, cfg *journal.Config, fs *flag.FlagSet, args []string) error {
	if len(args) < 2 {
		return errAddArgsRequired
	}

	parent, _ := fs.GetString("parent")
	description, _ := fs.GetString("description")

	return mutateCategories(o, cfg, func(tree *category.Tree) error {
		return tree.Add(parent, args[0], strings.Join(args[1:], " "), description)
	})
}

func execCategoriesAssign(o *IO, cfg *journal.Config, args []string) error {
	if len(args) < 2 {
		return errAssignArgsNeeded
	}

	return mutateCategories(o, cfg, func(tree *category.Tree) error {
		return tree.Assign(args[0], args[1])
	})
}

// mutateCategories loads the tree, applies one change, and writes it
// back atomically under the vault lock.
func mutateCategories(o *IO, cfg *journal.Config, change func(*category.Tree) error) error {
	lock, lockErr := vault.LockVault(cfg.VaultAbs)
	if lockErr != nil {
		return lockErr
	}
	defer lock.Release()

	tree, loadErr := category.Load(cfg.CategoriesAbs)
	if loadErr != nil {
		return loadErr
	}

	changeErr := change(tree)
	if changeErr != nil {
		return changeErr
	}

	data, marshalErr := tree.Marshal()
	if marshalErr != nil {
		return marshalErr
	}

	writeErr := vault.WriteDoc(cfg.CategoriesAbs, string(data))
	if writeErr != nil {
		return writeErr
	}

	o.Println(cfg.CategoriesAbs)

	return nil
}
