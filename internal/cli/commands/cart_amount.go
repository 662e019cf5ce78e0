package commands

import (
	"context"
	"strconv"

	"CurrentCalc/internal/config"
)

type cartAmountCmd struct{}

func (cartAmountCmd) Name() string { return "cart-amount" }
func (cartAmountCmd) Description() string {
	return "Изменить количество устройства в черновике"
}
func (cartAmountCmd) Usage() string { return "cart-amount <device-id> <amount>" }

func (cartAmountCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 2 {
		return ErrUsage
	}
	id, err := strconv.ParseUint(args[0], 10, 64)
	if err != nil {
		return ErrUsage
	}
	amount, err := strconv.Atoi(args[1])
	if err != nil {
		return ErrUsage
	}
	if err := requireAuth(cfg); err != nil {
		return err
	}
	svc := newCurrentService(cfg)
	if err := svc.SaveAmount(ctx, uint(id), amount); err != nil {
		return err
	}
	printNotices(svc.Store())
	return nil
}

func init() { RegisterCmd(cartAmountCmd{}) }
