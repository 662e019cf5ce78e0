package commands

import (
	"context"
	"fmt"

	"CurrentCalc/internal/config"
)

type cartCmd struct{}

func (cartCmd) Name() string { return "cart" }
func (cartCmd) Description() string {
	return "Показать черновик расчёта (корзину)"
}
func (cartCmd) Usage() string { return "cart" }

func (cartCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 0 {
		return ErrUsage
	}
	if err := requireAuth(cfg); err != nil {
		return err
	}
	svc := newCurrentService(cfg)
	cart, err := svc.LoadCart(ctx)
	if err != nil {
		return err
	}
	if cart == nil {
		fmt.Fprintln(Out, "Черновика нет. Добавьте устройство: cart-add <device-id>")
		return nil
	}
	printCalculation(cart)
	return nil
}

func init() { RegisterCmd(cartCmd{}) }
