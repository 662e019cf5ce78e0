package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strconv"

	"CurrentCalc/internal/config"
)

type cartRemoveCmd struct{}

func (cartRemoveCmd) Name() string { return "cart-remove" }
func (cartRemoveCmd) Description() string {
	return "Убрать устройство из черновика (необратимо)"
}
func (cartRemoveCmd) Usage() string { return "cart-remove <device-id> [--yes]" }

func (cartRemoveCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("cart-remove", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	yes := fs.Bool("yes", false, "не спрашивать подтверждение")
	if err := fs.Parse(args); err != nil {
		return ErrUsage
	}
	rest := fs.Args()
	if len(rest) != 1 {
		return ErrUsage
	}
	id, err := strconv.ParseUint(rest[0], 10, 64)
	if err != nil {
		return ErrUsage
	}
	if err := requireAuth(cfg); err != nil {
		return err
	}
	if !confirm(fmt.Sprintf("Убрать устройство %d из расчёта?", id), *yes) {
		fmt.Fprintln(Out, "• Отменено пользователем")
		return nil
	}
	svc := newCurrentService(cfg)
	if err := svc.RemoveDevice(ctx, uint(id)); err != nil {
		return err
	}
	printNotices(svc.Store())
	return nil
}

func init() { RegisterCmd(cartRemoveCmd{}) }
