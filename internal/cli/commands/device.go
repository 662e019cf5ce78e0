package commands

import (
	"context"
	"fmt"
	"strconv"

	"CurrentCalc/internal/config"
)

type deviceCmd struct{}

func (deviceCmd) Name() string { return "device" }
func (deviceCmd) Description() string {
	return "Показать карточку устройства"
}
func (deviceCmd) Usage() string { return "device <id>" }

func (deviceCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 1 {
		return ErrUsage
	}
	id, err := strconv.ParseUint(args[0], 10, 64)
	if err != nil {
		return ErrUsage
	}
	d, err := newAPIClient(cfg).GetDevice(ctx, uint(id))
	if err != nil {
		return err
	}
	fmt.Fprintf(Out, "Устройство #%d: %s\n", d.DeviceID, d.Name)
	fmt.Fprintf(Out, "Номинальная мощность: %g Вт\n", d.PowerNominal)
	if d.VoltageNominal > 0 {
		fmt.Fprintf(Out, "Номинальное напряжение: %g В\n", d.VoltageNominal)
	}
	if d.Description != "" {
		fmt.Fprintf(Out, "Описание: %s\n", d.Description)
	}
	if !d.InStock {
		fmt.Fprintln(Out, "Нет в наличии")
	}
	return nil
}

func init() { RegisterCmd(deviceCmd{}) }
