package settlement_test

import (
	"context"
	"fmt"
	"sort"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Liquidacion-api/internal/application/dto"
	appsettlement "github.com/jhoicas/Liquidacion-api/internal/application/settlement"
	"github.com/jhoicas/Liquidacion-api/internal/domain"
	"github.com/jhoicas/Liquidacion-api/internal/domain/entity"
	engine "github.com/jhoicas/Liquidacion-api/internal/domain/settlement"
	"github.com/jhoicas/Liquidacion-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakeSalesRepo struct {
	records map[entity.YearMonth][]*entity.DailySaleRecord
}

func newFakeSalesRepo() *fakeSalesRepo {
	return &fakeSalesRepo{records: make(map[entity.YearMonth][]*entity.DailySaleRecord)}
}

func (f *fakeSalesRepo) ListMonth(year, month int) ([]*entity.DailySaleRecord, error) {
	return f.records[entity.YearMonth{Year: year, Month: month}], nil
}

func (f *fakeSalesRepo) ReplaceMonth(year, month int, records []*entity.DailySaleRecord) error {
	f.records[entity.YearMonth{Year: year, Month: month}] = records
	return nil
}

func (f *fakeSalesRepo) GetTotals(int, int) (*entity.MonthlyTotals, error) { return nil, nil }
func (f *fakeSalesRepo) SaveTotals(int, int, *entity.MonthlyTotals) error  { return nil }

func (f *fakeSalesRepo) ListMonthsWithData() ([]entity.YearMonth, error) {
	var out []entity.YearMonth
	for ym, recs := range f.records {
		if len(recs) > 0 {
			out = append(out, ym)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Year != out[j].Year {
			return out[i].Year < out[j].Year
		}
		return out[i].Month < out[j].Month
	})
	return out, nil
}

type fakeChannelRepo struct{}

func (fakeChannelRepo) ListChannels() ([]*entity.Channel, error) {
	master := entity.MasterChannels()
	out := make([]*entity.Channel, 0, len(master))
	for i := range master {
		out = append(out, &master[i])
	}
	return out, nil
}

func (fakeChannelRepo) CreateChannel(*entity.Channel) error         { return nil }
func (fakeChannelRepo) ListCategories() ([]*entity.Category, error) { return nil, nil }

func newSettlementUseCase(t *testing.T) (*appsettlement.UseCase, *fakeSalesRepo) {
	t.Helper()
	repo := newFakeSalesRepo()
	log := logger.New(logger.Config{Env: "production", Level: "error"})
	uc := appsettlement.NewUseCase(repo, fakeChannelRepo{}, engine.DefaultCascadeConfig(), log)
	return uc, repo
}

func seedMonth(repo *fakeSalesRepo, year, month int, naverPerDay, groupPerDay int64, days int) {
	ym := entity.YearMonth{Year: year, Month: month}
	var records []*entity.DailySaleRecord
	for d := 1; d <= days; d++ {
		records = append(records, &entity.DailySaleRecord{
			Date: fmt.Sprintf("%04d-%02d-%02d", year, month, d),
			ChannelSales: []entity.ChannelSale{{
				ChannelCode: entity.ChannelNaver,
				Count:       naverPerDay,
				FeeRate:     decimal.NewFromInt(10),
			}},
			CategorySales: []entity.CategorySale{{CategoryCode: "GROUP", Count: groupPerDay}},
			Source:        entity.RecordSourceUpload,
		})
	}
	repo.records[ym] = records
}

// ──────────────────────────────────────────────────────────────────────────────
// CalculateMonth
// ──────────────────────────────────────────────────────────────────────────────

func TestCalculateMonth_LiquidaDesdeFilasDiarias(t *testing.T) {
	uc, repo := newSettlementUseCase(t)
	seedMonth(repo, 2025, 3, 10, 5, 3) // 30 online + 15 offline

	res, err := uc.CalculateMonth(context.Background(), 2025, 3)
	require.NoError(t, err)

	assert.Equal(t, int64(45), res.TotalCount)
	assert.Equal(t, int64(30), res.OnlineCount)
	assert.Equal(t, int64(15), res.OfflineCount)
	assert.Equal(t, "2025-03-01", res.PeriodStart)
	assert.Equal(t, "2025-03-31", res.PeriodEnd)

	// Los 30 online se agrupan en una sola entrada NAVER al 10%
	require.Len(t, res.ChannelBreakdown, 1)
	assert.Equal(t, int64(30), res.ChannelBreakdown[0].Count)
	assert.Equal(t, int64(90_000), res.ChannelBreakdown[0].Revenue)
	assert.Equal(t, int64(9_000), res.ChannelBreakdown[0].Fee)

	require.Len(t, res.Settlements, 4, "siempre liquidan las cuatro partes")
}

func TestCalculateMonth_AgrupaPorParCanalTarifa(t *testing.T) {
	uc, repo := newSettlementUseCase(t)
	ym := entity.YearMonth{Year: 2025, Month: 3}
	repo.records[ym] = []*entity.DailySaleRecord{
		{
			Date: "2025-03-01",
			ChannelSales: []entity.ChannelSale{
				{ChannelCode: entity.ChannelNaver, Count: 10, FeeRate: decimal.NewFromInt(10)},
			},
		},
		{
			Date: "2025-03-15",
			ChannelSales: []entity.ChannelSale{
				// Override vigente esos días: misma NAVER, otra tarifa capturada
				{ChannelCode: entity.ChannelNaver, Count: 20, FeeRate: decimal.NewFromInt(5)},
			},
		},
	}

	res, err := uc.CalculateMonth(context.Background(), 2025, 3)
	require.NoError(t, err)

	require.Len(t, res.ChannelBreakdown, 2,
		"una tarifa que varió dentro del mes produce una entrada por par (canal, tarifa)")
	assert.True(t, res.ChannelBreakdown[0].FeeRate.Equal(decimal.NewFromInt(10)))
	assert.True(t, res.ChannelBreakdown[1].FeeRate.Equal(decimal.NewFromInt(5)))
	assert.Equal(t, int64(30), res.OnlineCount)
}

func TestCalculateMonth_SinDatos(t *testing.T) {
	uc, _ := newSettlementUseCase(t)

	_, err := uc.CalculateMonth(context.Background(), 2025, 3)
	assert.ErrorIs(t, err, domain.ErrNoSalesData)

	_, err = uc.CalculateMonth(context.Background(), 2025, 0)
	assert.ErrorIs(t, err, domain.ErrInvalidPeriod)
}

func TestCalculateMonth_CacheEInvalidacion(t *testing.T) {
	uc, repo := newSettlementUseCase(t)
	ctx := context.Background()
	seedMonth(repo, 2025, 3, 10, 0, 1)

	first, err := uc.CalculateMonth(ctx, 2025, 3)
	require.NoError(t, err)
	assert.Equal(t, int64(10), first.TotalCount)

	// Cambian los datos sin invalidar: se sirve el resultado cacheado
	seedMonth(repo, 2025, 3, 99, 0, 1)
	cached, err := uc.CalculateMonth(ctx, 2025, 3)
	require.NoError(t, err)
	assert.Equal(t, int64(10), cached.TotalCount, "sin invalidar, el cache responde")

	uc.InvalidateMonth(2025, 3)
	fresh, err := uc.CalculateMonth(ctx, 2025, 3)
	require.NoError(t, err)
	assert.Equal(t, int64(99), fresh.TotalCount, "tras invalidar se recalcula del repo")
}

// ──────────────────────────────────────────────────────────────────────────────
// CalculateDirect
// ──────────────────────────────────────────────────────────────────────────────

func TestCalculateDirect_CanalAusenteEnConfigVaSinComision(t *testing.T) {
	uc, _ := newSettlementUseCase(t)

	res, err := uc.CalculateDirect(dto.CalculateSettlementRequest{
		Sales: dto.SalesInput{
			OnlineSales: []dto.OnlineSaleInput{
				{ChannelCode: entity.ChannelNaver, Count: 100},
				{ChannelCode: "DESCONOCIDO", Count: 50},
			},
		},
		Config: &dto.SettlementConfigInput{
			BasePrice:       3000,
			ChannelFeeRates: map[string]decimal.Decimal{entity.ChannelNaver: decimal.NewFromInt(10)},
			Company: dto.CompanyConfig{
				MazePaymentPerPerson:   1000,
				CulturePaymentFromSkp:  500,
				CulturePaymentFromMaze: 500,
				PlatformFeeToSkp:       200,
				AgencyFeeRate:          decimal.NewFromInt(20),
			},
		},
	})
	require.NoError(t, err)

	require.Len(t, res.ChannelBreakdown, 2)
	for _, b := range res.ChannelBreakdown {
		if b.ChannelCode == "DESCONOCIDO" {
			assert.True(t, b.FeeRate.IsZero(), "canal sin entrada en channelFeeRates liquida con tarifa 0")
			assert.Zero(t, b.Fee)
		}
	}
}

func TestCalculateDirect_SinConfigUsaMaestro(t *testing.T) {
	uc, _ := newSettlementUseCase(t)

	res, err := uc.CalculateDirect(dto.CalculateSettlementRequest{
		Sales: dto.SalesInput{
			OnlineSales:  []dto.OnlineSaleInput{{ChannelCode: entity.ChannelNaver, Count: 459}},
			OfflineCount: 0,
		},
	})
	require.NoError(t, err)

	require.Len(t, res.ChannelBreakdown, 1)
	assert.True(t, res.ChannelBreakdown[0].FeeRate.Equal(decimal.NewFromInt(10)))
	assert.Equal(t, int64(1_377_000), res.ChannelBreakdown[0].Revenue)
	assert.Equal(t, int64(137_700), res.ChannelBreakdown[0].Fee)
}

func TestCalculateDirect_Validaciones(t *testing.T) {
	uc, _ := newSettlementUseCase(t)

	_, err := uc.CalculateDirect(dto.CalculateSettlementRequest{
		Sales: dto.SalesInput{OfflineCount: -1},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.CalculateDirect(dto.CalculateSettlementRequest{
		Config: &dto.SettlementConfigInput{BasePrice: 0},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "config explícita sin precio base")
}

// ──────────────────────────────────────────────────────────────────────────────
// Rollups
// ──────────────────────────────────────────────────────────────────────────────

func TestRollupYear_SoloMesesDelAnio(t *testing.T) {
	uc, repo := newSettlementUseCase(t)
	seedMonth(repo, 2024, 12, 10, 0, 1)
	seedMonth(repo, 2025, 1, 10, 0, 2)
	seedMonth(repo, 2025, 2, 10, 0, 3)

	view, err := uc.RollupYear(context.Background(), 2025)
	require.NoError(t, err)

	assert.Equal(t, 2, view.MonthCount)
	assert.Equal(t, "2025", view.Period)
	assert.Equal(t, int64(50), view.TotalVisitors)
	require.Len(t, view.PartyTotals, 4)
}

func TestRollupAll_TodosLosMeses(t *testing.T) {
	uc, repo := newSettlementUseCase(t)
	seedMonth(repo, 2024, 12, 10, 0, 1)
	seedMonth(repo, 2025, 1, 10, 0, 2)

	view, err := uc.RollupAll(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, view.MonthCount)
	assert.Equal(t, int64(30), view.TotalVisitors)
	assert.Equal(t, 2024, view.MonthlyBreakdown[0].Year, "desglose en orden cronológico")
}
