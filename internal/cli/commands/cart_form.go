package commands

import (
	"context"
	"fmt"

	"CurrentCalc/internal/config"
)

type cartFormCmd struct{}

func (cartFormCmd) Name() string { return "cart-form" }
func (cartFormCmd) Description() string {
	return "Сформировать заявку из черновика"
}
func (cartFormCmd) Usage() string { return "cart-form" }

func (cartFormCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 0 {
		return ErrUsage
	}
	if err := requireAuth(cfg); err != nil {
		return err
	}
	svc := newCurrentService(cfg)
	formed, err := svc.Form(ctx)
	if err != nil {
		return err
	}
	printNotices(svc.Store())
	fmt.Fprintf(Out, "Заявка #%d отправлена на рассмотрение\n", formed.CurrentID)
	return nil
}

func init() { RegisterCmd(cartFormCmd{}) }
