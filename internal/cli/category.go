package cli

import (
	"countdown/internal/deadline"
	"countdown/internal/logger"
)

type CategoryListCmd struct{}

func (c *CategoryListCmd) Run(ctx *Context) error {
	settings, err := ctx.Store.Load()
	if err != nil {
		return err
	}
	for _, name := range settings.ManagedCategories() {
		ctx.printf("%-20s %d\n", name, len(settings.DeadlinesIn(name)))
	}
	return nil
}

type CategoryDeleteCmd struct {
	Name string `arg:"" help:"Category to delete. It must be empty."`
}

func (c *CategoryDeleteCmd) Run(ctx *Context) error {
	err := ctx.mutate(func(s *deadline.Settings) error {
		return s.DeleteCategory(c.Name)
	})
	if err != nil {
		return err
	}
	logger.Info("category deleted", "category", c.Name)
	ctx.printf("Category %q deleted\n", c.Name)
	return nil
}
