package service

import (
	"context"
	"strings"

	"CurrentCalc/internal/cli/api"
	climodel "CurrentCalc/internal/cli/model"
	"CurrentCalc/internal/cli/store"
)

// DeviceCache — локальный каталог для offline-fallback поиска.
type DeviceCache interface {
	ReplaceDevices([]climodel.Device) error
	FilterDevices(query string) ([]climodel.Device, error)
	AddSearchQuery(query string) error
}

// DeviceSearchService — поиск по каталогу с деградацией на локальный кеш:
// доступность важнее консистентности, пользователь не должен получить
// жёсткую ошибку из-за пустого или недоступного бэкенда.
type DeviceSearchService struct {
	api   *api.Client
	cache DeviceCache
	store *store.Store
}

// NewDeviceSearchService создаёт сервис поиска. cache может быть nil —
// тогда fallback недоступен и ошибки сети всплывают наверх.
func NewDeviceSearchService(apiClient *api.Client, cache DeviceCache, st *store.Store) *DeviceSearchService {
	return &DeviceSearchService{api: apiClient, cache: cache, store: st}
}

// Search ищет устройства по подстроке имени. Порядок: (a) удалённый запрос;
// (b) непустая выдача сервера используется как есть и обновляет кеш;
// (c) пустая или провалившаяся выдача — фильтрация локального кеша тем же
// правилом подстроки. fromCache=true означает, что результат локальный.
func (s *DeviceSearchService) Search(ctx context.Context, query string) (devices []climodel.Device, fromCache bool, err error) {
	s.store.SetDevicesLoading(true)
	defer s.store.SetDevicesLoading(false)

	if s.cache != nil && strings.TrimSpace(query) != "" {
		_ = s.cache.AddSearchQuery(query)
	}

	remote, rerr := s.api.ListDevices(ctx, query)
	if rerr == nil && len(remote) > 0 {
		s.store.SetDevices(remote)
		if s.cache != nil && query == "" {
			// полная выдача каталога освежает локальный fallback
			_ = s.cache.ReplaceDevices(remote)
		}
		return remote, false, nil
	}

	if s.cache == nil {
		if rerr != nil {
			return nil, false, rerr
		}
		s.store.SetDevices(nil)
		return nil, false, nil
	}

	local, cerr := s.cache.FilterDevices(query)
	if cerr != nil {
		if rerr != nil {
			return nil, false, rerr
		}
		return nil, false, cerr
	}
	s.store.SetDevices(local)
	return local, true, nil
}

// FilterByName — правило подстроки без учёта регистра; пустой запрос
// возвращает список целиком.
func FilterByName(devices []climodel.Device, query string) []climodel.Device {
	if query == "" {
		return devices
	}
	q := strings.ToLower(query)
	var res []climodel.Device
	for _, d := range devices {
		if strings.Contains(strings.ToLower(d.Name), q) {
			res = append(res, d)
		}
	}
	return res
}
