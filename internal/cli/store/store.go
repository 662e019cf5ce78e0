package store

import (
	"sync"
	"time"

	climodel "CurrentCalc/internal/cli/model"
)

// NoticeTTL — время жизни всплывающего уведомления.
const NoticeTTL = 3 * time.Second

// Notice — транзиентное уведомление (успех/ошибка операции).
type Notice struct {
	Kind string // "success" | "error"
	Text string
	At   time.Time
}

// Row — состояние редактируемой строки черновика: подтверждённое сервером
// количество, локальный буфер правок и флаг сохранения. seq растёт при каждом
// запуске сохранения; ответ с устаревшим seq отбрасывается, чтобы гонка двух
// быстрых правок не откатила подтверждённое значение назад.
type Row struct {
	DeviceID  uint
	Confirmed int
	Pending   int
	Saving    bool
	seq       uint64
}

// Dirty сообщает, отличается ли буфер от подтверждённого значения.
func (r *Row) Dirty() bool {
	return r != nil && r.Pending != r.Confirmed
}

// Store — единственный владелец клиентской проекции корзины, просматриваемой
// заявки и каталога. Все мутации идут через методы под мьютексом.
type Store struct {
	mu sync.Mutex

	cart   *climodel.CurrentCalculation
	detail *climodel.CurrentCalculation

	devices        []climodel.Device
	devicesLoading bool

	rows map[uint]*Row

	cartLoading   bool
	voltageSaving bool

	notices []Notice
	now     func() time.Time
}

// New создаёт пустой стор.
func New() *Store {
	return &Store{
		rows: make(map[uint]*Row),
		now:  time.Now,
	}
}

// --- Каталог -----------------------------------------------------------------

// SetDevicesLoading выставляет флаг загрузки каталога.
func (s *Store) SetDevicesLoading(v bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.devicesLoading = v
}

// DevicesLoading читает флаг загрузки каталога.
func (s *Store) DevicesLoading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.devicesLoading
}

// SetDevices публикует список устройств.
func (s *Store) SetDevices(devices []climodel.Device) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.devices = devices
}

// Devices возвращает копию списка устройств.
func (s *Store) Devices() []climodel.Device {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]climodel.Device, len(s.devices))
	copy(out, s.devices)
	return out
}

// --- Корзина и детали --------------------------------------------------------

// SetCartLoading выставляет флаг загрузки корзины.
func (s *Store) SetCartLoading(v bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cartLoading = v
}

// CartLoading читает флаг загрузки корзины.
func (s *Store) CartLoading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cartLoading
}

// SetCart принимает авторитетный ответ сервера. Строки пересобираются по
// серверному списку; несохранённый буфер и seq живой строки сохраняются,
// чтобы перезагрузка корзины не стёрла правку, которую пользователь ещё
// не отправил.
func (s *Store) SetCart(cart *climodel.CurrentCalculation) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart = cart

	fresh := make(map[uint]*Row)
	if cart != nil {
		for _, cd := range cart.Devices {
			row := &Row{
				DeviceID:  cd.DeviceID,
				Confirmed: cd.Amount,
				Pending:   cd.Amount,
			}
			if old, ok := s.rows[cd.DeviceID]; ok {
				row.seq = old.seq
				row.Saving = old.Saving
				if old.Dirty() || old.Saving {
					row.Pending = old.Pending
				}
			}
			fresh[cd.DeviceID] = row
		}
	}
	s.rows = fresh
}

// cloneCalculation копирует заявку вместе со списком строк, чтобы снимок
// не делил слайс с внутренним состоянием стора.
func cloneCalculation(c *climodel.CurrentCalculation) *climodel.CurrentCalculation {
	if c == nil {
		return nil
	}
	out := *c
	out.Devices = make([]climodel.CurrentDevice, len(c.Devices))
	copy(out.Devices, c.Devices)
	return &out
}

// Cart возвращает снимок текущей проекции корзины (может быть nil).
// Последующие мутации стора снимок не затрагивают.
func (s *Store) Cart() *climodel.CurrentCalculation {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneCalculation(s.cart)
}

// SetDetail публикует просматриваемую заявку.
func (s *Store) SetDetail(c *climodel.CurrentCalculation) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.detail = c
}

// Detail возвращает снимок просматриваемой заявки (может быть nil).
func (s *Store) Detail() *climodel.CurrentCalculation {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneCalculation(s.detail)
}

// ClearCalculation сбрасывает корзину, детали и строки (signout, удаление).
func (s *Store) ClearCalculation() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart = nil
	s.detail = nil
	s.rows = make(map[uint]*Row)
}

// --- Строки ------------------------------------------------------------------

// Row возвращает снимок строки по устройству (ok=false, если строки нет).
func (s *Store) Row(deviceID uint) (Row, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.rows[deviceID]
	if !ok {
		return Row{}, false
	}
	return *r, true
}

// SetPendingAmount меняет локальный буфер количества, не трогая
// подтверждённое значение.
func (s *Store) SetPendingAmount(deviceID uint, amount int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.rows[deviceID]
	if !ok {
		return false
	}
	r.Pending = amount
	return true
}

// BeginAmountSave стартует сохранение строки: помечает её in-flight и выдаёт
// номер запроса. Возврат ok=false — строки нет или буфер совпадает с
// подтверждённым значением (сохранять нечего).
func (s *Store) BeginAmountSave(deviceID uint) (seq uint64, amount int, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, exists := s.rows[deviceID]
	if !exists || r.Pending == r.Confirmed {
		return 0, 0, false
	}
	r.seq++
	r.Saving = true
	return r.seq, r.Pending, true
}

// FinishAmountSave завершает сохранение. Ответ с seq, отличным от последнего
// выданного, устарел (его обогнал более новый запрос) и отбрасывается целиком.
// При успехе подтверждённое значение догоняет сохранённое; при ошибке буфер
// остаётся как есть — пользователь может повторить.
func (s *Store) FinishAmountSave(deviceID uint, seq uint64, saved int, failed bool) (applied bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.rows[deviceID]
	if !ok || seq != r.seq {
		return false
	}
	r.Saving = false
	if failed {
		return false
	}
	r.Confirmed = saved
	return true
}

// RemoveDeviceOptimistic убирает строку из проекции корзины до прихода
// авторитетной перезагрузки.
func (s *Store) RemoveDeviceOptimistic(deviceID uint) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.rows, deviceID)
	if s.cart == nil {
		return
	}
	kept := s.cart.Devices[:0]
	for _, cd := range s.cart.Devices {
		if cd.DeviceID != deviceID {
			kept = append(kept, cd)
		}
	}
	s.cart.Devices = kept
	s.cart.DevicesCount = len(kept)
}

// --- Напряжение --------------------------------------------------------------

// SetVoltageSaving выставляет флаг сохранения напряжения бортовой сети.
func (s *Store) SetVoltageSaving(v bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.voltageSaving = v
}

// VoltageSaving читает флаг сохранения напряжения.
func (s *Store) VoltageSaving() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.voltageSaving
}

// --- Уведомления -------------------------------------------------------------

// Notify добавляет транзиентное уведомление.
func (s *Store) Notify(kind, text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notices = append(s.notices, Notice{Kind: kind, Text: text, At: s.now()})
}

// Notices возвращает ещё не истёкшие уведомления и выкидывает истёкшие.
func (s *Store) Notices() []Notice {
	s.mu.Lock()
	defer s.mu.Unlock()
	cutoff := s.now().Add(-NoticeTTL)
	alive := s.notices[:0]
	for _, n := range s.notices {
		if n.At.After(cutoff) {
			alive = append(alive, n)
		}
	}
	s.notices = alive
	out := make([]Notice, len(alive))
	copy(out, alive)
	return out
}
