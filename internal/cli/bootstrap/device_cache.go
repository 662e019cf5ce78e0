package bootstrap

import (
	"fmt"

	fsrepo "CurrentCalc/internal/cli/repo/fs"
	reposqlite "CurrentCalc/internal/cli/repo/sqlite"
	"CurrentCalc/internal/config"
)

// OpenDeviceCache открывает локальный кеш каталога для текущего пользователя,
// выполняет миграции и возвращает (cache, cleanup, error).
// cleanup необходимо вызвать после окончания работы, чтобы закрыть соединение с БД.
func OpenDeviceCache(cfg *config.Config) (*reposqlite.DeviceCache, func() error, error) {
	login, err := (fsrepo.AuthFSStore{}).LoadLogin()
	if err != nil {
		return nil, nil, fmt.Errorf("нет активного пользователя: выполните signin/signup: %w", err)
	}
	c, _, err := reposqlite.OpenForUser(login, cfg.ClientDBPath)
	if err != nil {
		return nil, nil, fmt.Errorf("open user db: %w", err)
	}
	if err := c.Migrate(); err != nil {
		_ = c.Close()
		return nil, nil, fmt.Errorf("migrate user db: %w", err)
	}
	cleanup := func() error { return c.Close() }
	return c, cleanup, nil
}
