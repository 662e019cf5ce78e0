package commands

import (
	"context"
	"fmt"
	"strings"

	"CurrentCalc/internal/cli/bootstrap"
	"CurrentCalc/internal/cli/service"
	"CurrentCalc/internal/cli/store"
	"CurrentCalc/internal/config"
)

type devicesCmd struct{}

func (devicesCmd) Name() string { return "devices" }
func (devicesCmd) Description() string {
	return "Показать каталог устройств (с поиском по имени)"
}
func (devicesCmd) Usage() string { return "devices [query]" }

func (devicesCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	query := strings.Join(args, " ")

	// кеш опционален: до первого входа поиск работает только через сервер
	var cache service.DeviceCache
	if c, done, err := bootstrap.OpenDeviceCache(cfg); err == nil {
		defer done()
		cache = c
	}

	svc := service.NewDeviceSearchService(newAPIClient(cfg), cache, store.New())
	devices, fromCache, err := svc.Search(ctx, query)
	if err != nil {
		return err
	}
	if fromCache {
		fmt.Fprintln(Out, "• Сервер недоступен или ничего не нашёл — показан локальный каталог")
	}
	if len(devices) == 0 {
		fmt.Fprintln(Out, "Ничего не найдено")
		return nil
	}
	for _, d := range devices {
		stock := ""
		if !d.InStock {
			stock = "  (нет в наличии)"
		}
		fmt.Fprintf(Out, "- [%d] %s  %g Вт%s\n", d.DeviceID, d.Name, d.PowerNominal, stock)
	}
	fmt.Fprintf(Out, "Всего: %d\n", len(devices))
	return nil
}

func init() { RegisterCmd(devicesCmd{}) }
