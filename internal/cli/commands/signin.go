package commands

import (
	"context"
	"fmt"

	"CurrentCalc/internal/config"
)

type signinCmd struct{}

func (signinCmd) Name() string { return "signin" }
func (signinCmd) Description() string {
	return "Войти и сохранить bearer-токен"
}
func (signinCmd) Usage() string { return "signin <login> <password>" }

func (signinCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 2 {
		return ErrUsage
	}
	svc := newAuthService(cfg)
	if err := svc.SignIn(ctx, args[0], args[1]); err != nil {
		return err
	}
	fmt.Fprintf(Out, "Вход выполнен: %s\n", args[0])
	return nil
}

func init() { RegisterCmd(signinCmd{}) }
