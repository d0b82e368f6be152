package fees_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Liquidacion-api/internal/application/dto"
	"github.com/jhoicas/Liquidacion-api/internal/application/fees"
	"github.com/jhoicas/Liquidacion-api/internal/domain"
	"github.com/jhoicas/Liquidacion-api/internal/domain/entity"
	"github.com/jhoicas/Liquidacion-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakeFeeRepo struct {
	months map[entity.YearMonth]*entity.MonthlyFeeSettings
}

func newFakeFeeRepo() *fakeFeeRepo {
	return &fakeFeeRepo{months: make(map[entity.YearMonth]*entity.MonthlyFeeSettings)}
}

func (f *fakeFeeRepo) GetMonth(year, month int) (*entity.MonthlyFeeSettings, error) {
	return f.months[entity.YearMonth{Year: year, Month: month}], nil
}

func (f *fakeFeeRepo) SaveMonth(settings *entity.MonthlyFeeSettings) error {
	key := entity.YearMonth{Year: settings.Year, Month: settings.Month}
	if existing := f.months[key]; existing != nil {
		settings.Overrides = existing.Overrides
	}
	f.months[key] = settings
	return nil
}

func (f *fakeFeeRepo) AddOverride(year, month int, o *entity.FeeOverride) error {
	key := entity.YearMonth{Year: year, Month: month}
	settings := f.months[key]
	if settings == nil {
		return domain.ErrNotFound
	}
	settings.Overrides = append(settings.Overrides, *o)
	return nil
}

func (f *fakeFeeRepo) DeleteOverride(id string) error {
	for _, settings := range f.months {
		for i, o := range settings.Overrides {
			if o.ID == id {
				settings.Overrides = append(settings.Overrides[:i], settings.Overrides[i+1:]...)
				return nil
			}
		}
	}
	return domain.ErrNotFound
}

type fakeChannelRepo struct {
	channels []*entity.Channel
}

func newFakeChannelRepo() *fakeChannelRepo {
	master := entity.MasterChannels()
	f := &fakeChannelRepo{}
	for i := range master {
		f.channels = append(f.channels, &master[i])
	}
	return f
}

func (f *fakeChannelRepo) ListChannels() ([]*entity.Channel, error) { return f.channels, nil }

func (f *fakeChannelRepo) CreateChannel(ch *entity.Channel) error {
	for _, existing := range f.channels {
		if existing.Code == ch.Code {
			return domain.ErrDuplicate
		}
	}
	f.channels = append(f.channels, ch)
	return nil
}

func (f *fakeChannelRepo) ListCategories() ([]*entity.Category, error) {
	return []*entity.Category{{Code: "GROUP", Name: "Grupos"}, {Code: "WALK_IN", Name: "Taquilla"}}, nil
}

func newFeesUseCase(t *testing.T) (*fees.UseCase, *fakeFeeRepo, *fakeChannelRepo) {
	t.Helper()
	feeRepo := newFakeFeeRepo()
	channelRepo := newFakeChannelRepo()
	log := logger.New(logger.Config{Env: "production", Level: "error"})
	return fees.NewUseCase(feeRepo, channelRepo, log), feeRepo, channelRepo
}

// ──────────────────────────────────────────────────────────────────────────────
// Configuración mensual
// ──────────────────────────────────────────────────────────────────────────────

func TestGetOrCreateMonth_CreaDesdeMaestro(t *testing.T) {
	uc, feeRepo, _ := newFeesUseCase(t)

	settings, err := uc.GetOrCreateMonth(2025, 3)
	require.NoError(t, err)

	require.Len(t, settings.Channels, 5, "todos los canales del maestro")
	for _, ch := range settings.Channels {
		assert.Equal(t, entity.FeeSourceMaster, ch.Source, "recién creado, todo viene del maestro")
	}
	rate, ok := settings.ChannelDefault(entity.ChannelNaver)
	require.True(t, ok)
	assert.True(t, rate.Equal(decimal.NewFromInt(10)))

	require.NotNil(t, feeRepo.months[entity.YearMonth{Year: 2025, Month: 3}], "el mes creado se persiste")
}

func TestGetOrCreateMonth_NoRecreaExistente(t *testing.T) {
	uc, _, _ := newFeesUseCase(t)

	_, err := uc.UpdateMonth(2025, 3, dto.UpdateMonthlyFeesRequest{
		Channels: []dto.ChannelFeeUpdate{{ChannelCode: entity.ChannelNaver, FeeRate: decimal.NewFromInt(8)}},
	})
	require.NoError(t, err)

	settings, err := uc.GetOrCreateMonth(2025, 3)
	require.NoError(t, err)
	rate, _ := settings.ChannelDefault(entity.ChannelNaver)
	assert.True(t, rate.Equal(decimal.NewFromInt(8)), "el ajuste manual sobrevive al GetOrCreate")
}

func TestUpdateMonth_MarcaManual(t *testing.T) {
	uc, _, _ := newFeesUseCase(t)

	resp, err := uc.UpdateMonth(2025, 3, dto.UpdateMonthlyFeesRequest{
		Channels: []dto.ChannelFeeUpdate{{ChannelCode: entity.ChannelNaver, FeeRate: decimal.NewFromInt(7)}},
	})
	require.NoError(t, err)

	for _, ch := range resp.Channels {
		if ch.ChannelCode == entity.ChannelNaver {
			assert.True(t, ch.FeeRate.Equal(decimal.NewFromInt(7)))
			assert.Equal(t, entity.FeeSourceManual, ch.Source)
		} else {
			assert.Equal(t, entity.FeeSourceMaster, ch.Source, "los demás canales no se tocan")
		}
	}
}

func TestUpdateMonth_Validaciones(t *testing.T) {
	uc, _, _ := newFeesUseCase(t)

	_, err := uc.UpdateMonth(2025, 3, dto.UpdateMonthlyFeesRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.UpdateMonth(2025, 3, dto.UpdateMonthlyFeesRequest{
		Channels: []dto.ChannelFeeUpdate{{ChannelCode: entity.ChannelNaver, FeeRate: decimal.NewFromInt(101)}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "tarifa mayor a 100")
}

// ──────────────────────────────────────────────────────────────────────────────
// Overrides
// ──────────────────────────────────────────────────────────────────────────────

func TestAddOverride_PersisteConID(t *testing.T) {
	uc, _, _ := newFeesUseCase(t)

	override, err := uc.AddOverride(2025, 3, dto.AddFeeOverrideRequest{
		ChannelCode: entity.ChannelNaver,
		StartDate:   "2025-03-10",
		EndDate:     "2025-03-15",
		FeeRate:     decimal.NewFromInt(5),
		Reason:      "promoción de temporada",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, override.ID)

	resp, err := uc.GetMonth(2025, 3)
	require.NoError(t, err)
	require.Len(t, resp.Overrides, 1)
	assert.Equal(t, "2025-03-10", resp.Overrides[0].StartDate)
}

func TestAddOverride_Validaciones(t *testing.T) {
	uc, _, _ := newFeesUseCase(t)

	cases := []struct {
		name string
		in   dto.AddFeeOverrideRequest
		want error
	}{
		{
			name: "fecha fuera del mes",
			in:   dto.AddFeeOverrideRequest{ChannelCode: "NAVER", StartDate: "2025-04-01", EndDate: "2025-04-02", FeeRate: decimal.NewFromInt(5)},
			want: domain.ErrInvalidPeriod,
		},
		{
			name: "inicio después del fin",
			in:   dto.AddFeeOverrideRequest{ChannelCode: "NAVER", StartDate: "2025-03-15", EndDate: "2025-03-10", FeeRate: decimal.NewFromInt(5)},
			want: domain.ErrInvalidInput,
		},
		{
			name: "fecha no ISO",
			in:   dto.AddFeeOverrideRequest{ChannelCode: "NAVER", StartDate: "10-03-2025", EndDate: "2025-03-15", FeeRate: decimal.NewFromInt(5)},
			want: domain.ErrInvalidInput,
		},
		{
			name: "tarifa negativa",
			in:   dto.AddFeeOverrideRequest{ChannelCode: "NAVER", StartDate: "2025-03-10", EndDate: "2025-03-15", FeeRate: decimal.NewFromInt(-1)},
			want: domain.ErrInvalidInput,
		},
		{
			name: "sin canal",
			in:   dto.AddFeeOverrideRequest{StartDate: "2025-03-10", EndDate: "2025-03-15", FeeRate: decimal.NewFromInt(5)},
			want: domain.ErrInvalidInput,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := uc.AddOverride(2025, 3, tc.in)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestDeleteOverride(t *testing.T) {
	uc, _, _ := newFeesUseCase(t)

	override, err := uc.AddOverride(2025, 3, dto.AddFeeOverrideRequest{
		ChannelCode: entity.ChannelNaver,
		StartDate:   "2025-03-10",
		EndDate:     "2025-03-15",
		FeeRate:     decimal.NewFromInt(5),
	})
	require.NoError(t, err)

	require.NoError(t, uc.DeleteOverride(override.ID))
	assert.ErrorIs(t, uc.DeleteOverride(override.ID), domain.ErrNotFound, "borrar dos veces")
	assert.ErrorIs(t, uc.DeleteOverride(""), domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Maestro de canales y categorías
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateChannel(t *testing.T) {
	uc, _, _ := newFeesUseCase(t)

	created, err := uc.CreateChannel(dto.CreateChannelRequest{
		Code:           "KAKAO",
		Name:           "Kakao",
		DefaultFeeRate: decimal.NewFromInt(9),
	})
	require.NoError(t, err)
	assert.Equal(t, "KAKAO", created.Code)

	_, err = uc.CreateChannel(dto.CreateChannelRequest{
		Code:           "KAKAO",
		Name:           "Kakao otra vez",
		DefaultFeeRate: decimal.NewFromInt(9),
	})
	assert.ErrorIs(t, err, domain.ErrDuplicate, "el código de canal es único")

	channels, err := uc.ListChannels()
	require.NoError(t, err)
	assert.Len(t, channels, 6, "maestro + canal personalizado")
}

func TestListCategories(t *testing.T) {
	uc, _, _ := newFeesUseCase(t)

	categories, err := uc.ListCategories()
	require.NoError(t, err)
	require.Len(t, categories, 2)
	assert.Equal(t, "GROUP", categories[0].Code)
}
