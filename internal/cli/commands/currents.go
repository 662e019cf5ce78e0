package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"CurrentCalc/internal/cli/api"
	climodel "CurrentCalc/internal/cli/model"
	"CurrentCalc/internal/config"
)

type currentsCmd struct{}

func (currentsCmd) Name() string { return "currents" }
func (currentsCmd) Description() string {
	return "Показать заявки (модератору — все)"
}
func (currentsCmd) Usage() string {
	return "currents [--from YYYY-MM-DD] [--to YYYY-MM-DD] [--status <status>]"
}

func (currentsCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("currents", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	from := fs.String("from", "", "дата формирования от (YYYY-MM-DD)")
	to := fs.String("to", "", "дата формирования до (YYYY-MM-DD)")
	status := fs.String("status", "", "фильтр по статусу")
	if err := fs.Parse(args); err != nil {
		return ErrUsage
	}
	if len(fs.Args()) != 0 {
		return ErrUsage
	}

	if err := requireAuth(cfg); err != nil {
		return err
	}
	svc := newCurrentService(cfg)
	list, err := svc.List(ctx, api.CurrentFilters{
		FromDate: *from,
		ToDate:   *to,
		Status:   climodel.NormalizeStatus(*status),
	})
	if err != nil {
		return err
	}
	if len(list) == 0 {
		fmt.Fprintln(Out, "Заявок нет")
		return nil
	}
	for _, c := range list {
		line := fmt.Sprintf("- #%d  %s  устройств: %d", c.CurrentID, climodel.StatusLabel(c.Status), c.DevicesCount)
		if c.CreatorLogin != "" {
			line += "  от " + c.CreatorLogin
		}
		if c.FormDate != "" {
			line += "  " + c.FormDate
		}
		fmt.Fprintln(Out, line)
	}
	fmt.Fprintf(Out, "Всего: %d\n", len(list))
	return nil
}

func init() { RegisterCmd(currentsCmd{}) }
