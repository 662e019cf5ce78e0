package commands

import (
	"context"
	"fmt"

	"CurrentCalc/internal/config"
)

type signupCmd struct{}

func (signupCmd) Name() string { return "signup" }
func (signupCmd) Description() string {
	return "Зарегистрировать нового пользователя и войти"
}
func (signupCmd) Usage() string { return "signup <login> <password>" }

func (signupCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 2 {
		return ErrUsage
	}
	svc := newAuthService(cfg)
	if err := svc.SignUp(ctx, args[0], args[1]); err != nil {
		return err
	}
	if err := svc.SignIn(ctx, args[0], args[1]); err != nil {
		return fmt.Errorf("регистрация прошла, но вход не удался: %w", err)
	}
	fmt.Fprintf(Out, "Пользователь %s зарегистрирован\n", args[0])
	return nil
}

func init() { RegisterCmd(signupCmd{}) }
