package commands

import (
	"context"
	"strconv"

	"CurrentCalc/internal/config"
)

type cartAddCmd struct{}

func (cartAddCmd) Name() string { return "cart-add" }
func (cartAddCmd) Description() string {
	return "Добавить устройство в черновик (создаёт черновик при необходимости)"
}
func (cartAddCmd) Usage() string { return "cart-add <device-id>" }

func (cartAddCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 1 {
		return ErrUsage
	}
	id, err := strconv.ParseUint(args[0], 10, 64)
	if err != nil {
		return ErrUsage
	}
	if err := requireAuth(cfg); err != nil {
		return err
	}
	svc := newCurrentService(cfg)
	if _, err := svc.AddDevice(ctx, uint(id)); err != nil {
		return err
	}
	printNotices(svc.Store())
	return nil
}

func init() { RegisterCmd(cartAddCmd{}) }
