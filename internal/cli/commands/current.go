package commands

import (
	"context"
	"strconv"

	"CurrentCalc/internal/config"
)

type currentCmd struct{}

func (currentCmd) Name() string { return "current" }
func (currentCmd) Description() string {
	return "Показать заявку по номеру"
}
func (currentCmd) Usage() string { return "current <id>" }

func (currentCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
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
	c, err := svc.Detail(ctx, uint(id))
	if err != nil {
		return err
	}
	printCalculation(c)
	return nil
}

func init() { RegisterCmd(currentCmd{}) }
