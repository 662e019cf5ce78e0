package commands

import (
	"bufio"
	"fmt"
	"strings"

	"CurrentCalc/internal/cli/api"
	climodel "CurrentCalc/internal/cli/model"
	fsrepo "CurrentCalc/internal/cli/repo/fs"
	"CurrentCalc/internal/cli/service"
	"CurrentCalc/internal/cli/store"
	"CurrentCalc/internal/config"
)

// tokenStore собирает файловое хранилище токена с учётом -token-file.
func tokenStore(cfg *config.Config) fsrepo.AuthFSStore {
	return fsrepo.AuthFSStore{TokenFile: cfg.TokenFile}
}

// newAPIClient собирает API-клиент с файловым хранилищем токена.
func newAPIClient(cfg *config.Config) *api.Client {
	return api.New(cfg.ServerURL, tokenStore(cfg))
}

// newCurrentService собирает сервис заявок со свежим стором.
func newCurrentService(cfg *config.Config) *service.CurrentService {
	return service.NewCurrentService(newAPIClient(cfg), store.New())
}

// newAuthService собирает сервис авторизации.
func newAuthService(cfg *config.Config) *service.AuthService {
	fs := tokenStore(cfg)
	return service.NewAuthService(newAPIClient(cfg), fs, fs, store.New())
}

// requireAuth проверяет наличие сохранённой сессии до любого сетевого вызова:
// команды расчёта без входа завершаются подсказкой, а не 401 от сервера.
func requireAuth(cfg *config.Config) error {
	if _, err := tokenStore(cfg).Load(); err != nil {
		return service.ErrNotAuthenticated
	}
	return nil
}

// confirm спрашивает подтверждение у пользователя. yes=true пропускает вопрос
// (флаг --yes для скриптов).
func confirm(prompt string, yes bool) bool {
	if yes {
		return true
	}
	reader := bufio.NewReader(In)
	fmt.Fprintf(Out, "%s [y/N]: ", prompt)
	line, _ := reader.ReadString('\n')
	answer := strings.TrimSpace(strings.ToLower(line))
	return answer == "y" || answer == "yes"
}

// printCalculation печатает заявку: шапка, строки устройств, итоговый ток.
func printCalculation(c *climodel.CurrentCalculation) {
	fmt.Fprintf(Out, "Заявка #%d  статус: %s\n", c.CurrentID, climodel.StatusLabel(c.Status))
	if c.CreatorLogin != "" {
		fmt.Fprintf(Out, "Создатель: %s\n", c.CreatorLogin)
	}
	fmt.Fprintf(Out, "Напряжение бортовой сети: %g В\n", c.VoltageBord)
	if c.FormDate != "" {
		fmt.Fprintf(Out, "Сформирована: %s\n", c.FormDate)
	}
	if c.FinishDate != "" {
		fmt.Fprintf(Out, "Завершена: %s\n", c.FinishDate)
	}
	if len(c.Devices) == 0 {
		fmt.Fprintln(Out, "Устройств нет")
		return
	}
	for _, cd := range c.Devices {
		line := fmt.Sprintf("- [%d] %s  x%d", cd.DeviceID, cd.DeviceName, cd.Amount)
		if cd.Amperage != nil {
			line += fmt.Sprintf("  %.2f А", *cd.Amperage)
		}
		fmt.Fprintln(Out, line)
	}
	fmt.Fprintf(Out, "Итого: %.2f А\n", c.Total())
}

// printNotices выводит накопленные уведомления стора.
func printNotices(st *store.Store) {
	for _, n := range st.Notices() {
		mark := "•"
		switch n.Kind {
		case "success":
			mark = "✓"
		case "error":
			mark = "×"
		}
		fmt.Fprintf(Out, "%s %s\n", mark, n.Text)
	}
}
