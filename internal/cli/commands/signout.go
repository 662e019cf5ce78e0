package commands

import (
	"context"
	"fmt"

	"CurrentCalc/internal/config"
)

type signoutCmd struct{}

func (signoutCmd) Name() string { return "signout" }
func (signoutCmd) Description() string {
	return "Выйти: отозвать токен и очистить локальное состояние"
}
func (signoutCmd) Usage() string { return "signout" }

func (signoutCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 0 {
		return ErrUsage
	}
	svc := newAuthService(cfg)
	if err := svc.SignOut(ctx); err != nil {
		// локально токен уже стёрт; сервер мог быть недоступен
		fmt.Fprintf(Out, "Выход выполнен локально (сервер: %v)\n", err)
		return nil
	}
	fmt.Fprintln(Out, "Выход выполнен")
	return nil
}

func init() { RegisterCmd(signoutCmd{}) }
