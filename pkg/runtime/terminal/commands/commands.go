package commands

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/de-tools/cart-report/pkg/runtime/app"
)

const commandTimeout = 60 * time.Second

// Opener builds the application for a single command run.
type Opener func(ctx context.Context) (*app.App, error)

func commandContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	parent := cmd.Context()
	if parent == nil {
		parent = context.Background()
	}
	return context.WithTimeout(parent, commandTimeout)
}
