package service

import (
	"CurrentCalc/internal/model"
	"CurrentCalc/internal/repo"
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"

	_ "modernc.org/sqlite"
)

// newTestService поднимает сервис заявок поверх временной SQLite-базы.
func newTestService(t *testing.T) (*CurrentService, repo.DeviceRepository) {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.sqlite")
	db, err := gorm.Open(gormsqlite.Dialector{DriverName: "sqlite", DSN: dbPath}, &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&model.User{},
		&model.Device{},
		&model.CurrentCalculation{},
		&model.CurrentDevice{},
	))
	currents := repo.NewCurrentRepository(db)
	devices := repo.NewDeviceRepository(db)
	return NewCurrentService(currents, devices, zap.NewNop().Sugar()), devices
}

func seedDevice(t *testing.T, devices repo.DeviceRepository, name string, power float64) *model.Device {
	t.Helper()
	d, err := devices.CreateDevice(context.Background(), &model.Device{
		Name:            name,
		PowerNominal:    power,
		VoltageNominal:  12,
		CoeffReserve:    1,
		CoeffEfficiency: 1,
		InStock:         true,
	})
	require.NoError(t, err)
	return d
}

func TestLineAmperage(t *testing.T) {
	d := &model.Device{PowerNominal: 60, VoltageNominal: 12, CoeffReserve: 1.5, CoeffEfficiency: 0.8}

	t.Run("formula with coefficients", func(t *testing.T) {
		// 2 * 60 * 1.5 / (12 * 0.8)
		assert.InDelta(t, 18.75, LineAmperage(d, 2, 12), 1e-9)
	})

	t.Run("non-positive board voltage falls back to nominal", func(t *testing.T) {
		assert.InDelta(t, LineAmperage(d, 1, 12), LineAmperage(d, 1, 0), 1e-9)
	})

	t.Run("no usable voltage gives zero", func(t *testing.T) {
		bad := &model.Device{PowerNominal: 60}
		assert.Zero(t, LineAmperage(bad, 1, 0))
	})

	t.Run("nil device and bad amount give zero", func(t *testing.T) {
		assert.Zero(t, LineAmperage(nil, 1, 12))
		assert.Zero(t, LineAmperage(d, 0, 12))
	})
}

func TestCurrentService_DraftLifecycle(t *testing.T) {
	ctx := context.Background()
	svc, devices := newTestService(t)
	d := seedDevice(t, devices, "Фара LED", 60)
	user := "user-1"

	t.Run("no draft yet", func(t *testing.T) {
		_, err := svc.GetCart(ctx, user)
		assert.ErrorIs(t, err, ErrNoDraft)
	})

	t.Run("add creates draft with defaults", func(t *testing.T) {
		cart, err := svc.AddDevice(ctx, user, d.ID)
		require.NoError(t, err)
		assert.Equal(t, model.StatusDraft, cart.Status)
		assert.Equal(t, float64(DefaultVoltageBord), cart.VoltageBord)
		require.Len(t, cart.Devices, 1)
		assert.Equal(t, 1, cart.Devices[0].Amount)
		assert.InDelta(t, 5.0, cart.Devices[0].Amperage, 1e-9) // 60 Вт / 12 В
	})

	t.Run("second add of same device conflicts", func(t *testing.T) {
		_, err := svc.AddDevice(ctx, user, d.ID)
		assert.ErrorIs(t, err, ErrAlreadyAdded)
	})

	cart, err := svc.GetCart(ctx, user)
	require.NoError(t, err)

	t.Run("amount below one rejected", func(t *testing.T) {
		_, err := svc.UpdateAmount(ctx, user, cart.ID, d.ID, 0)
		assert.ErrorIs(t, err, ErrBadAmount)
	})

	t.Run("amount update recomputes line amperage", func(t *testing.T) {
		cd, err := svc.UpdateAmount(ctx, user, cart.ID, d.ID, 2)
		require.NoError(t, err)
		assert.Equal(t, 2, cd.Amount)
		assert.InDelta(t, 10.0, cd.Amperage, 1e-9)
	})

	t.Run("voltage out of range rejected", func(t *testing.T) {
		_, err := svc.EditVoltage(ctx, user, cart.ID, 0)
		assert.ErrorIs(t, err, ErrBadVoltage)
		_, err = svc.EditVoltage(ctx, user, cart.ID, MaxVoltageBord+1)
		assert.ErrorIs(t, err, ErrBadVoltage)
	})

	t.Run("voltage edit recomputes all lines", func(t *testing.T) {
		updated, err := svc.EditVoltage(ctx, user, cart.ID, 24)
		require.NoError(t, err)
		assert.Equal(t, 24.0, updated.VoltageBord)
		require.Len(t, updated.Devices, 1)
		assert.InDelta(t, 5.0, updated.Devices[0].Amperage, 1e-9) // 2 * 60 / 24
	})

	t.Run("form of empty draft rejected", func(t *testing.T) {
		_, err := svc.RemoveDevice(ctx, user, cart.ID, d.ID)
		require.NoError(t, err)
		_, err = svc.Form(ctx, user, cart.ID)
		assert.ErrorIs(t, err, ErrEmptyCalculation)
	})

	t.Run("form stamps date and freezes draft", func(t *testing.T) {
		_, err := svc.AddDevice(ctx, user, d.ID)
		require.NoError(t, err)
		formed, err := svc.Form(ctx, user, cart.ID)
		require.NoError(t, err)
		assert.Equal(t, model.StatusFormed, formed.Status)
		require.NotNil(t, formed.FormDate)

		_, err = svc.UpdateAmount(ctx, user, cart.ID, d.ID, 3)
		assert.ErrorIs(t, err, ErrNotDraft)
		_, err = svc.EditVoltage(ctx, user, cart.ID, 12)
		assert.ErrorIs(t, err, ErrNotDraft)
		err = svc.Delete(ctx, user, cart.ID)
		assert.ErrorIs(t, err, ErrNotDraft)
	})

	t.Run("moderator finishes formed calculation", func(t *testing.T) {
		_, err := svc.Finish(ctx, "moder-1", cart.ID, "approved")
		assert.ErrorIs(t, err, ErrBadStatus)

		done, err := svc.Finish(ctx, "moder-1", cart.ID, "finished") // алиас completed
		require.NoError(t, err)
		assert.Equal(t, model.StatusCompleted, done.Status)
		require.NotNil(t, done.FinishDate)
		require.NotNil(t, done.ModeratorID)
		assert.Equal(t, "moder-1", *done.ModeratorID)

		// повторное завершение невозможно
		_, err = svc.Finish(ctx, "moder-1", cart.ID, model.StatusRejected)
		assert.ErrorIs(t, err, ErrNotDraft)
	})
}

func TestCurrentService_DeleteDraftWithDevices(t *testing.T) {
	ctx := context.Background()
	svc, devices := newTestService(t)
	d := seedDevice(t, devices, "Компрессор", 120)
	user := "user-2"

	cart, err := svc.AddDevice(ctx, user, d.ID)
	require.NoError(t, err)
	require.Len(t, cart.Devices, 1)

	// удаление черновика допустимо и при наличии устройств
	require.NoError(t, svc.Delete(ctx, user, cart.ID))
	_, err = svc.GetCart(ctx, user)
	assert.ErrorIs(t, err, ErrNoDraft)
}

func TestCurrentService_OwnershipGuards(t *testing.T) {
	ctx := context.Background()
	svc, devices := newTestService(t)
	d := seedDevice(t, devices, "Обогрев сидений", 90)

	cart, err := svc.AddDevice(ctx, "owner", d.ID)
	require.NoError(t, err)

	_, err = svc.UpdateAmount(ctx, "intruder", cart.ID, d.ID, 2)
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = svc.GetDetail(ctx, "intruder", false, cart.ID)
	assert.ErrorIs(t, err, ErrForbidden)

	// модератор видит чужую заявку
	_, err = svc.GetDetail(ctx, "intruder", true, cart.ID)
	assert.NoError(t, err)
}

func TestCurrentService_ListVisibility(t *testing.T) {
	ctx := context.Background()
	svc, devices := newTestService(t)
	d := seedDevice(t, devices, "Магнитола", 30)

	cart, err := svc.AddDevice(ctx, "creator", d.ID)
	require.NoError(t, err)

	// черновик в списке заявок не показывается
	list, err := svc.List(ctx, "creator", false, repo.CurrentFilters{})
	require.NoError(t, err)
	assert.Empty(t, list)

	_, err = svc.Form(ctx, "creator", cart.ID)
	require.NoError(t, err)

	list, err = svc.List(ctx, "creator", false, repo.CurrentFilters{})
	require.NoError(t, err)
	require.Len(t, list, 1)

	// чужой пользователь без прав модератора заявку не видит
	list, err = svc.List(ctx, "someone-else", false, repo.CurrentFilters{})
	require.NoError(t, err)
	assert.Empty(t, list)

	// модератор видит всё
	list, err = svc.List(ctx, "someone-else", true, repo.CurrentFilters{})
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestTotalAmperage(t *testing.T) {
	assert.Zero(t, TotalAmperage(nil))
	assert.Zero(t, TotalAmperage(&model.CurrentCalculation{}))

	c := &model.CurrentCalculation{Devices: []model.CurrentDevice{
		{Amperage: 1.5},
		{Amperage: 2.25},
	}}
	assert.InDelta(t, 3.75, TotalAmperage(c), 1e-9)
}
