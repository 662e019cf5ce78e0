package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"CurrentCalc/internal/config"
)

type cartDeleteCmd struct{}

func (cartDeleteCmd) Name() string { return "cart-delete" }
func (cartDeleteCmd) Description() string {
	return "Удалить черновик целиком (вместе с устройствами)"
}
func (cartDeleteCmd) Usage() string { return "cart-delete [--yes]" }

func (cartDeleteCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("cart-delete", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	yes := fs.Bool("yes", false, "не спрашивать подтверждение")
	if err := fs.Parse(args); err != nil {
		return ErrUsage
	}
	if len(fs.Args()) != 0 {
		return ErrUsage
	}
	if err := requireAuth(cfg); err != nil {
		return err
	}
	if !confirm("Удалить черновик со всеми устройствами?", *yes) {
		fmt.Fprintln(Out, "• Отменено пользователем")
		return nil
	}
	svc := newCurrentService(cfg)
	if err := svc.Delete(ctx); err != nil {
		return err
	}
	printNotices(svc.Store())
	return nil
}

func init() { RegisterCmd(cartDeleteCmd{}) }
