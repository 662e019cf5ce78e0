package commands

import (
	"context"
	"fmt"

	"CurrentCalc/internal/config"
)

type passwdCmd struct{}

func (passwdCmd) Name() string { return "passwd" }
func (passwdCmd) Description() string {
	return "Сменить пароль текущего пользователя"
}
func (passwdCmd) Usage() string { return "passwd <new-password>" }

func (passwdCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 1 {
		return ErrUsage
	}
	svc := newAuthService(cfg)
	if err := svc.UpdatePassword(ctx, args[0]); err != nil {
		return err
	}
	fmt.Fprintln(Out, "Пароль обновлён")
	return nil
}

func init() { RegisterCmd(passwdCmd{}) }
