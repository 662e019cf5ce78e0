package sqlite

import (
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	climodel "CurrentCalc/internal/cli/model"

	_ "modernc.org/sqlite"
)

// DeviceCache — локальный SQLite-кеш каталога для offline-fallback поиска
// плюс история поисковых запросов. Файл сегрегирован по логину пользователя.
type DeviceCache struct {
	db *sql.DB
}

// OpenForUser открывает (и при необходимости создаёт) файл кеша для логина.
// base — базовый каталог кешей (флаг -client-db / переменная CLIENT_DB_PATH);
// пустое значение — <user config dir>/CurrentCalc/users.
func OpenForUser(login, base string) (*DeviceCache, string, error) {
	if login == "" {
		return nil, "", errors.New("empty login for device cache")
	}
	if base == "" {
		cfgDir, err := os.UserConfigDir()
		if err != nil {
			return nil, "", err
		}
		base = filepath.Join(cfgDir, "CurrentCalc", "users")
	}
	dir := filepath.Join(base, login)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, "", err
	}
	dbPath := filepath.Join(dir, "cache.sqlite")
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, "", err
	}
	c := &DeviceCache{db: db}
	return c, dbPath, nil
}

// Close закрывает соединение с БД.
func (c *DeviceCache) Close() error {
	if c == nil || c.db == nil {
		return nil
	}
	return c.db.Close()
}

// Migrate создаёт требуемые таблицы.
func (c *DeviceCache) Migrate() error {
	const ddl = `
CREATE TABLE IF NOT EXISTS devices (
  device_id INTEGER PRIMARY KEY,
  name TEXT NOT NULL,
  power_nominal REAL NOT NULL,
  voltage_nominal REAL NOT NULL DEFAULT 0,
  description TEXT NOT NULL DEFAULT '',
  image TEXT NOT NULL DEFAULT '',
  in_stock INTEGER NOT NULL DEFAULT 1,
  cached_at INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_devices_name ON devices(name);
CREATE TABLE IF NOT EXISTS search_history (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  query TEXT NOT NULL UNIQUE,
  created_at INTEGER NOT NULL
);
`
	_, err := c.db.Exec(ddl)
	return err
}

// ReplaceDevices перезаписывает кеш свежей выдачей каталога.
func (c *DeviceCache) ReplaceDevices(devices []climodel.Device) error {
	tx, err := c.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM devices`); err != nil {
		return err
	}
	now := time.Now().Unix()
	for _, d := range devices {
		_, err := tx.Exec(
			`INSERT INTO devices(device_id, name, power_nominal, voltage_nominal, description, image, in_stock, cached_at)
			 VALUES(?, ?, ?, ?, ?, ?, ?, ?)`,
			d.DeviceID, d.Name, d.PowerNominal, d.VoltageNominal, d.Description, d.Image, boolToInt(d.InStock), now,
		)
		if err != nil {
			return err
		}
	}
	return tx.Commit()
}

// FilterDevices возвращает закешированные устройства, чьё имя содержит
// query как подстроку без учёта регистра. Пустой query — весь кеш.
func (c *DeviceCache) FilterDevices(query string) ([]climodel.Device, error) {
	rows, err := c.db.Query(`SELECT device_id, name, power_nominal, voltage_nominal, description, image, in_stock FROM devices ORDER BY device_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	q := strings.ToLower(query)
	var res []climodel.Device
	for rows.Next() {
		var d climodel.Device
		var inStock int
		if err := rows.Scan(&d.DeviceID, &d.Name, &d.PowerNominal, &d.VoltageNominal, &d.Description, &d.Image, &inStock); err != nil {
			return nil, err
		}
		d.InStock = inStock != 0
		if q == "" || strings.Contains(strings.ToLower(d.Name), q) {
			res = append(res, d)
		}
	}
	return res, rows.Err()
}

// AddSearchQuery добавляет запрос в историю (дубликаты игнорируются).
func (c *DeviceCache) AddSearchQuery(query string) error {
	if query == "" {
		return nil
	}
	_, err := c.db.Exec(
		`INSERT INTO search_history(query, created_at) VALUES(?, ?) ON CONFLICT(query) DO NOTHING`,
		query, time.Now().Unix(),
	)
	return err
}

// SearchHistory возвращает сохранённые запросы, новые первыми.
func (c *DeviceCache) SearchHistory() ([]string, error) {
	rows, err := c.db.Query(`SELECT query FROM search_history ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var res []string
	for rows.Next() {
		var q string
		if err := rows.Scan(&q); err != nil {
			return nil, err
		}
		res = append(res, q)
	}
	return res, rows.Err()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
