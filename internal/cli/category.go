package cli

import (
	"fmt"

	"github.com/mholloway/cadence/internal/models"
)

type CategoryCmd struct {
	Add  CategoryAddCmd  `cmd:"" help:"Add a new category."`
	List CategoryListCmd `cmd:"" help:"List categories."`
	Edit CategoryEditCmd `cmd:"" help:"Edit a category."`
}

type CategoryAddCmd struct {
	Name        string `arg:"" help:"Category name."`
	Description string `help:"Category description."`
	Color       string `help:"Display color (hex or name)."`
	Icon        string `help:"Display icon."`
	SortOrder   int    `help:"Position in listings."`
}

func (c *CategoryAddCmd) Run(ctx *Context) error {
	category, err := ctx.Catalog.CreateCategory(models.RoutineCategory{
		Name:        c.Name,
		Description: c.Description,
		Color:       c.Color,
		Icon:        c.Icon,
		SortOrder:   c.SortOrder,
	})
	if err != nil {
		return err
	}

	fmt.Printf("Added category: %s (ID: %s)\n", category.Name, category.ID)
	return nil
}

type CategoryListCmd struct {
	All     bool `help:"Include inactive categories."`
	ShowIDs bool `help:"Show category IDs." name:"show-ids"`
}

func (c *CategoryListCmd) Run(ctx *Context) error {
	categories, err := ctx.Catalog.ListCategories(c.All)
	if err != nil {
		return fmt.Errorf("failed to get categories: %w", err)
	}
	if len(categories) == 0 {
		fmt.Println("No categories found")
		return nil
	}

	fmt.Println("Categories:")
	for _, category := range categories {
		idStr := ""
		if c.ShowIDs {
			idStr = fmt.Sprintf(" (ID: %s)", category.ID)
		}
		line := fmt.Sprintf("  %s%s", category.Name, idStr)
		if !category.Active {
			line += " [inactive]"
		}
		fmt.Println(line)
		if category.Description != "" {
			fmt.Printf("      %s\n", category.Description)
		}
	}

	return nil
}

type CategoryEditCmd struct {
	ID          string  `arg:"" help:"Category ID."`
	Name        *string `help:"New name."`
	Description *string `help:"New description."`
	Color       *string `help:"New color."`
	Icon        *string `help:"New icon."`
	SortOrder   *int    `help:"New position."`
	Active      *bool   `help:"Set active status."`
}

func (c *CategoryEditCmd) Run(ctx *Context) error {
	category, err := ctx.Catalog.GetCategory(c.ID)
	if err != nil {
		return fmt.Errorf("failed to find category: %w", err)
	}

	if c.Name != nil {
		category.Name = *c.Name
	}
	if c.Description != nil {
		category.Description = *c.Description
	}
	if c.Color != nil {
		category.Color = *c.Color
	}
	if c.Icon != nil {
		category.Icon = *c.Icon
	}
	if c.SortOrder != nil {
		category.SortOrder = *c.SortOrder
	}
	if c.Active != nil {
		category.Active = *c.Active
	}

	if _, err := ctx.Catalog.UpdateCategory(category); err != nil {
		return err
	}

	fmt.Printf("Updated category: %s\n", category.Name)
	return nil
}
