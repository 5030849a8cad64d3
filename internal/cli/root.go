package cli

import (
	"fmt"
	"io"
	"time"

	"countdown/internal/config"
	"countdown/internal/deadline"
	"countdown/internal/storage"
)

type Context struct {
	Store *storage.Store
	Cfg   config.Config
	Out   io.Writer
	Now   func() time.Time
}

func (c *Context) now() time.Time {
	if c.Now == nil {
		return time.Now()
	}
	return c.Now()
}

func (c *Context) printf(format string, args ...interface{}) {
	fmt.Fprintf(c.Out, format, args...)
}

// mutate loads the settings, applies fn and saves the result when fn
// succeeds.
func (c *Context) mutate(fn func(*deadline.Settings) error) error {
	settings, err := c.Store.Load()
	if err != nil {
		return err
	}
	if err := fn(settings); err != nil {
		return err
	}
	return c.Store.Save(settings)
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
