package cli

import (
	"fmt"

	"countdown/internal/deadline"
	"countdown/internal/logger"
	"countdown/internal/ui"
)

type TuiCmd struct{}

func (c *TuiCmd) Run(ctx *Context) error {
	return ui.Run(ctx.Store, ctx.Cfg)
}

type ListCmd struct {
	IDs bool `help:"Print one line per deadline with its ID instead of the sidebar."`
}

func (c *ListCmd) Run(ctx *Context) error {
	settings, err := ctx.Store.Load()
	if err != nil {
		return err
	}
	if !c.IDs {
		ctx.printf("%s", ui.RenderSidebar(settings, ctx.now()))
		return nil
	}
	for _, d := range settings.Deadlines {
		ctx.printf("%s  %-24s %-12s %s\n", shortID(d.ID), d.Title, d.Category, d.DateTime)
	}
	return nil
}

type AddCmd struct {
	Title    string `arg:"" help:"Deadline title."`
	At       string `short:"t" help:"Due date and time (YYYY-MM-DDTHH:MM)." required:""`
	Category string `short:"c" help:"Category, created when new." default:""`
	Every    int    `short:"e" help:"Repeat every N days (1-30, 0 for none)." default:"0"`
}

func (c *AddCmd) Validate() error {
	if c.Every < 0 || c.Every > deadline.MaxInterval {
		return fmt.Errorf("--every must be between 0 and %d", deadline.MaxInterval)
	}
	return nil
}

func (c *AddCmd) Run(ctx *Context) error {
	d := deadline.Draft{Title: c.Title, DateTime: c.At, Category: c.Category}
	if c.Every > 0 {
		d.SetInterval(c.Every)
	}
	d.SetRecurring(c.Every > 0)

	var (
		added   deadline.Deadline
		created bool
	)
	err := ctx.mutate(func(s *deadline.Settings) error {
		var err error
		added, created, err = s.AddDeadline(d)
		return err
	})
	if err != nil {
		return err
	}
	logger.Info("deadline added", "id", added.ID, "title", added.Title, "category", added.Category)
	if created {
		ctx.printf("New category created: %s\n", added.Category)
	}
	ctx.printf("Deadline saved: %s (%s)\n", added.Title, shortID(added.ID))
	return nil
}

type DeleteCmd struct {
	Key string `arg:"" help:"Deadline ID, ID prefix or title."`
}

func (c *DeleteCmd) Run(ctx *Context) error {
	var removed deadline.Deadline
	err := ctx.mutate(func(s *deadline.Settings) error {
		d, err := s.Find(c.Key)
		if err != nil {
			return err
		}
		removed, err = s.DeleteDeadline(d.ID)
		return err
	})
	if err != nil {
		return err
	}
	logger.Info("deadline deleted", "id", removed.ID, "title", removed.Title)
	ctx.printf("Deadline removed: %s\n", removed.Title)
	return nil
}

type MoveCmd struct {
	Key      string `arg:"" help:"Deadline ID, ID prefix or title."`
	Category string `arg:"" help:"Existing category to move the deadline into."`
}

func (c *MoveCmd) Run(ctx *Context) error {
	var moved deadline.Deadline
	err := ctx.mutate(func(s *deadline.Settings) error {
		d, err := s.Find(c.Key)
		if err != nil {
			return err
		}
		moved, err = s.MoveDeadline(d.ID, c.Category)
		return err
	})
	if err != nil {
		return err
	}
	logger.Info("deadline moved", "id", moved.ID, "category", moved.Category)
	ctx.printf("Moved %s to %s\n", moved.Title, moved.Category)
	return nil
}
