package commands

import (
	"context"
	"strconv"

	"CurrentCalc/internal/config"
)

type cartVoltageCmd struct{}

func (cartVoltageCmd) Name() string { return "cart-voltage" }
func (cartVoltageCmd) Description() string {
	return "Задать напряжение бортовой сети черновика"
}
func (cartVoltageCmd) Usage() string { return "cart-voltage <volts>" }

func (cartVoltageCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 1 {
		return ErrUsage
	}
	v, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		return ErrUsage
	}
	if err := requireAuth(cfg); err != nil {
		return err
	}
	svc := newCurrentService(cfg)
	if err := svc.SaveVoltage(ctx, v); err != nil {
		return err
	}
	printNotices(svc.Store())
	return nil
}

func init() { RegisterCmd(cartVoltageCmd{}) }
