package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"
	"text/tabwriter"

	"github.com/sitenotes/sitenotes/internal/domain"
	"github.com/sitenotes/sitenotes/internal/theme"
)

// CategoriesCmd manages categories
type CategoriesCmd struct {
	Add  CategoriesAddCmd  `cmd:"add" help:"Add a category"`
	List CategoriesListCmd `cmd:"list" aliases:"ls" help:"List categories" default:"1"`
	Rm   CategoriesRmCmd   `cmd:"rm" help:"Remove a category"`
}

// CategoriesListCmd lists categories
type CategoriesListCmd struct {
	Format string `help:"Output format: table or json" enum:"table,json" default:"table"`
}

// Run executes the list command
func (c *CategoriesListCmd) Run(cli *CLI) error {
	user, err := cli.User()
	if err != nil {
		return err
	}
	categories, err := cli.Container.CommentService.ListCategories(context.Background(), user)
	if err != nil {
		return fmt.Errorf("failed to list categories: %w", err)
	}

	if c.Format == "json" {
		return printJSON(os.Stdout, categories)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME")
	for _, cat := range categories {
		fmt.Fprintf(w, "%s\t%s\n", cat.ID, cat.Name)
	}
	w.Flush()
	fmt.Printf("\nTotal: %d categories\n", len(categories))
	return nil
}

// CategoriesAddCmd adds a category
type CategoriesAddCmd struct {
	Name string `arg:"" help:"Category name"`
}

// Run executes the add command
func (c *CategoriesAddCmd) Run(cli *CLI) error {
	user, err := cli.User()
	if err != nil {
		return err
	}
	ctx := context.Background()

	categories, err := cli.Container.CommentService.ListCategories(ctx, user)
	if err != nil {
		return err
	}
	saved, err := cli.Container.CommentService.SaveCategories(ctx, user, append(slices.Clone(categories), domain.Category{Name: c.Name}))
	if err != nil {
		return fmt.Errorf("failed to add category: %w", err)
	}
	fmt.Printf("Category %q added (%d total)\n", strings.TrimSpace(c.Name), len(saved))
	return nil
}

// CategoriesRmCmd removes a category
type CategoriesRmCmd struct {
	Name string `arg:"" help:"Category name or id"`
}

// Run executes the rm command
func (c *CategoriesRmCmd) Run(cli *CLI) error {
	user, err := cli.User()
	if err != nil {
		return err
	}
	ctx := context.Background()

	categories, err := cli.Container.CommentService.ListCategories(ctx, user)
	if err != nil {
		return err
	}
	remaining, found := withoutCategory(categories, c.Name)
	if !found {
		return fmt.Errorf("category %q: %w", c.Name, domain.ErrNotFound)
	}
	if _, err := cli.Container.CommentService.SaveCategories(ctx, user, remaining); err != nil {
		return fmt.Errorf("failed to remove category: %w", err)
	}
	fmt.Printf("Category %q removed\n", c.Name)
	return nil
}

// withoutCategory drops the category matching name or id, ignoring case
func withoutCategory(categories []domain.Category, name string) ([]domain.Category, bool) {
	name = strings.TrimSpace(name)
	out := make([]domain.Category, 0, len(categories))
	found := false
	for _, cat := range categories {
		if strings.EqualFold(cat.Name, name) || cat.ID == name {
			found = true
			continue
		}
		out = append(out, cat)
	}
	return out, found
}

// PrioritiesCmd manages priority levels
type PrioritiesCmd struct {
	Add  PrioritiesAddCmd  `cmd:"add" help:"Add a priority level"`
	List PrioritiesListCmd `cmd:"list" aliases:"ls" help:"List priority levels" default:"1"`
	Rm   PrioritiesRmCmd   `cmd:"rm" help:"Remove a priority level"`
}

// PrioritiesListCmd lists priority levels
type PrioritiesListCmd struct {
	Format string `help:"Output format: table or json" enum:"table,json" default:"table"`
}

// Run executes the list command
func (c *PrioritiesListCmd) Run(cli *CLI) error {
	user, err := cli.User()
	if err != nil {
		return err
	}
	priorities, err := cli.Container.CommentService.ListPriorities(context.Background(), user)
	if err != nil {
		return fmt.Errorf("failed to list priorities: %w", err)
	}

	if c.Format == "json" {
		return printJSON(os.Stdout, priorities)
	}
	printPrioritiesTable(os.Stdout, priorities)
	return nil
}

func printPrioritiesTable(out io.Writer, priorities []domain.Priority) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "KEY\tNAME\tCOLOR\t")
	for _, p := range priorities {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", p.Key, p.Name, p.Color, theme.PriorityStyle(p.Color).Render("●"))
	}
	w.Flush()
	fmt.Fprintf(out, "\nTotal: %d priorities\n", len(priorities))
}

// PrioritiesAddCmd adds a priority level
type PrioritiesAddCmd struct {
	Color string `help:"Hex color" default:"#6b7280"`
	Name  string `arg:"" help:"Priority name"`
}

// Run executes the add command
func (c *PrioritiesAddCmd) Run(cli *CLI) error {
	user, err := cli.User()
	if err != nil {
		return err
	}
	ctx := context.Background()

	priorities, err := cli.Container.CommentService.ListPriorities(ctx, user)
	if err != nil {
		return err
	}
	next := append(slices.Clone(priorities), domain.Priority{Color: c.Color, Name: c.Name})
	if _, err := cli.Container.CommentService.SavePriorities(ctx, user, next); err != nil {
		return fmt.Errorf("failed to add priority: %w", err)
	}
	fmt.Printf("Priority %q added with key %s\n", strings.TrimSpace(c.Name), domain.PriorityKey(c.Name))
	return nil
}

// PrioritiesRmCmd removes a priority level. Comments keep their stored key.
type PrioritiesRmCmd struct {
	Key string `arg:"" help:"Priority key or name"`
}

// Run executes the rm command
func (c *PrioritiesRmCmd) Run(cli *CLI) error {
	user, err := cli.User()
	if err != nil {
		return err
	}
	ctx := context.Background()

	priorities, err := cli.Container.CommentService.ListPriorities(ctx, user)
	if err != nil {
		return err
	}
	remaining, found := withoutPriority(priorities, c.Key)
	if !found {
		return fmt.Errorf("priority %q: %w", c.Key, domain.ErrNotFound)
	}
	if _, err := cli.Container.CommentService.SavePriorities(ctx, user, remaining); err != nil {
		return fmt.Errorf("failed to remove priority: %w", err)
	}
	fmt.Printf("Priority %q removed\n", c.Key)
	return nil
}

// withoutPriority drops the priority whose key matches key or the key derived from it
func withoutPriority(priorities []domain.Priority, key string) ([]domain.Priority, bool) {
	key = domain.PriorityKey(key)
	out := make([]domain.Priority, 0, len(priorities))
	found := false
	for _, p := range priorities {
		if p.Key == key {
			found = true
			continue
		}
		out = append(out, p)
	}
	return out, found
}
