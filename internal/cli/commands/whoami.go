package commands

import (
	"context"
	"fmt"

	"CurrentCalc/internal/config"
)

type whoamiCmd struct{}

func (whoamiCmd) Name() string { return "whoami" }
func (whoamiCmd) Description() string {
	return "Показать профиль текущего пользователя"
}
func (whoamiCmd) Usage() string { return "whoami" }

func (whoamiCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 0 {
		return ErrUsage
	}
	svc := newAuthService(cfg)
	u, err := svc.Profile(ctx)
	if err != nil {
		return err
	}
	role := "пользователь"
	if u.IsModerator {
		role = "модератор"
	}
	fmt.Fprintf(Out, "Логин: %s\nРоль: %s\n", u.Login, role)
	return nil
}

func init() { RegisterCmd(whoamiCmd{}) }
