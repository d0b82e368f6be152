package sales

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Liquidacion-api/internal/application/dto"
	"github.com/jhoicas/Liquidacion-api/internal/domain"
	"github.com/jhoicas/Liquidacion-api/internal/domain/aggregation"
	"github.com/jhoicas/Liquidacion-api/internal/domain/entity"
	"github.com/jhoicas/Liquidacion-api/internal/domain/repository"
	"github.com/jhoicas/Liquidacion-api/internal/domain/settlement"
	"github.com/jhoicas/Liquidacion-api/pkg/logger"
)

// UseCase orquesta la ingesta de planillas, la lectura del mes y la
// distribución de totales mensuales hacia los días.
type UseCase struct {
	txRunner    SalesTxRunner
	salesRepo   repository.SalesRepository
	fees        FeeResolver
	aggregator  *aggregation.DailyAggregator
	invalidator SettlementInvalidator
	locks       monthLocks
	log         *logger.Logger
}

// NewUseCase construye el caso de uso de ventas.
func NewUseCase(
	txRunner SalesTxRunner,
	salesRepo repository.SalesRepository,
	fees FeeResolver,
	aggregator *aggregation.DailyAggregator,
	invalidator SettlementInvalidator,
	log *logger.Logger,
) *UseCase {
	return &UseCase{
		txRunner:    txRunner,
		salesRepo:   salesRepo,
		fees:        fees,
		aggregator:  aggregator,
		invalidator: invalidator,
		log:         log.Component("sales"),
	}
}

// Upload ingesta una planilla normalizada del mes. Si el mes ya tiene
// datos, la carga nueva se fusiona: por fecha gana la fila nueva y los
// totales reportados (snapshot "mes a la fecha") reemplazan a los
// anteriores clave por clave. Un mes se carga a la vez (lock por mes);
// una discrepancia de totales no aborta la carga, se devuelve como señal.
func (uc *UseCase) Upload(ctx context.Context, year, month int, in dto.UploadSalesRequest) (*dto.UploadSalesResponse, error) {
	ym, err := validPeriod(year, month)
	if err != nil {
		return nil, err
	}
	if len(in.Records) == 0 {
		return nil, domain.ErrInvalidInput
	}

	unlock := uc.locks.Lock(ym.String())
	defer unlock()

	settings, err := uc.fees.GetOrCreateMonth(year, month)
	if err != nil {
		return nil, err
	}
	registry, err := uc.fees.Registry()
	if err != nil {
		return nil, err
	}

	incoming, err := buildRecords(ym, in.Records, settings, registry)
	if err != nil {
		return nil, err
	}

	existing, err := uc.salesRepo.ListMonth(year, month)
	if err != nil {
		return nil, err
	}
	existingTotals, err := uc.salesRepo.GetTotals(year, month)
	if err != nil {
		return nil, err
	}

	merged := aggregation.MergeDailyRecords(existing, incoming)
	totals := aggregation.MergeMonthlyTotals(existingTotals, reportedTotals(in.ReportedTotals))
	agg := uc.aggregator.Accumulate(ym, merged, totals)

	err = uc.txRunner.RunSales(ctx, func(salesRepo repository.SalesRepository) error {
		if err := salesRepo.ReplaceMonth(year, month, merged); err != nil {
			return err
		}
		if totals != nil {
			return salesRepo.SaveTotals(year, month, totals)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.invalidator.InvalidateMonth(year, month)

	resp := &dto.UploadSalesResponse{
		Year:         year,
		Month:        month,
		DayCount:     len(merged),
		TotalCount:   agg.Summary.TotalCount,
		OnlineCount:  agg.Summary.OnlineCount,
		OfflineCount: agg.Summary.OfflineCount,
	}
	if agg.Mismatch != nil {
		resp.HasMismatch = true
		resp.RowTotal = agg.Mismatch.RowTotal
		resp.ReportedTotal = agg.Mismatch.ReportedTotal
		uc.log.Warn().
			Str("month", ym.String()).
			Int64("rowTotal", agg.Mismatch.RowTotal).
			Int64("reportedTotal", agg.Mismatch.ReportedTotal).
			Msg("totales reportados no cuadran con la suma de filas")
	}
	uc.log.Info().
		Str("month", ym.String()).
		Int("days", len(merged)).
		Int64("visitors", agg.Summary.TotalCount).
		Msg("planilla de ventas ingresada")
	return resp, nil
}

// GetMonth devuelve los registros del mes con su agregado derivado.
func (uc *UseCase) GetMonth(year, month int) (*dto.MonthSalesResponse, error) {
	ym, err := validPeriod(year, month)
	if err != nil {
		return nil, err
	}
	records, err := uc.salesRepo.ListMonth(year, month)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, domain.ErrNoSalesData
	}
	totals, err := uc.salesRepo.GetTotals(year, month)
	if err != nil {
		return nil, err
	}
	agg := uc.aggregator.Accumulate(ym, records, totals)
	return dto.NewMonthSalesResponse(agg, records), nil
}

// Distribute reparte totales mensuales por código entre los días del mes,
// proporcional al peso de visitantes de cada día (el último día absorbe el
// resto de redondeo). Reescribe los conteos diarios de los códigos
// objetivo y actualiza los totales reportados para que el mes cierre sin
// discrepancia; los registros tocados quedan marcados como manuales.
func (uc *UseCase) Distribute(ctx context.Context, year, month int, in dto.DistributeRequest) (*dto.DistributeResponse, error) {
	ym, err := validPeriod(year, month)
	if err != nil {
		return nil, err
	}
	if len(in.Targets) == 0 {
		return nil, domain.ErrInvalidInput
	}
	for _, target := range in.Targets {
		if target < 0 {
			return nil, domain.ErrInvalidInput
		}
	}

	unlock := uc.locks.Lock(ym.String())
	defer unlock()

	records, err := uc.salesRepo.ListMonth(year, month)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, domain.ErrNoSalesData
	}
	registry, err := uc.fees.Registry()
	if err != nil {
		return nil, err
	}
	settings, err := uc.fees.GetOrCreateMonth(year, month)
	if err != nil {
		return nil, err
	}

	allocations := aggregation.DistributeTargets(in.Targets, dayWeights(records))
	applyAllocations(records, allocations, settings, registry)

	totals, err := uc.salesRepo.GetTotals(year, month)
	if err != nil {
		return nil, err
	}
	totals = retargetTotals(totals, in.Targets, registry)

	err = uc.txRunner.RunSales(ctx, func(salesRepo repository.SalesRepository) error {
		if err := salesRepo.ReplaceMonth(year, month, records); err != nil {
			return err
		}
		if totals != nil {
			return salesRepo.SaveTotals(year, month, totals)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.invalidator.InvalidateMonth(year, month)

	resp := &dto.DistributeResponse{
		Year:        year,
		Month:       month,
		Allocations: make(map[string][]dto.DayAllocationDTO, len(allocations)),
	}
	for code, allocs := range allocations {
		out := make([]dto.DayAllocationDTO, 0, len(allocs))
		for _, a := range allocs {
			out = append(out, dto.DayAllocationDTO{Date: a.Date, Count: a.Count})
		}
		resp.Allocations[code] = out
	}
	uc.log.Info().
		Str("month", ym.String()).
		Int("codes", len(allocations)).
		Msg("totales mensuales distribuidos a días")
	return resp, nil
}

// validPeriod valida (año, mes) y devuelve la clave del período.
func validPeriod(year, month int) (entity.YearMonth, error) {
	if year < 2000 || year > 2100 || month < 1 || month > 12 {
		return entity.YearMonth{}, domain.ErrInvalidPeriod
	}
	return entity.YearMonth{Year: year, Month: month}, nil
}

// buildRecords mapea las filas del DTO a entidades, validando fechas y
// conteos y capturando la tarifa de comisión de cada venta online.
func buildRecords(ym entity.YearMonth, rows []dto.DailyRecordDTO, settings *entity.MonthlyFeeSettings, registry *entity.ChannelRegistry) ([]*entity.DailySaleRecord, error) {
	now := time.Now().UTC()
	seen := make(map[string]bool, len(rows))
	out := make([]*entity.DailySaleRecord, 0, len(rows))
	for _, row := range rows {
		if _, err := time.Parse("2006-01-02", row.Date); err != nil {
			return nil, domain.ErrInvalidInput
		}
		if !ym.ContainsDate(row.Date) {
			return nil, domain.ErrInvalidPeriod
		}
		if seen[row.Date] {
			return nil, domain.ErrDuplicate
		}
		seen[row.Date] = true

		rec := &entity.DailySaleRecord{
			ID:        uuid.New().String(),
			Date:      row.Date,
			Source:    entity.RecordSourceUpload,
			CreatedAt: now,
			UpdatedAt: now,
		}
		for _, cs := range row.ChannelSales {
			if cs.ChannelCode == "" || cs.Count < 0 {
				return nil, domain.ErrInvalidInput
			}
			rate := settlement.ResolveFeeRate(cs.ChannelCode, row.Date, settings, registry)
			if cs.FeeRate != nil {
				rate = *cs.FeeRate
			}
			rec.ChannelSales = append(rec.ChannelSales, entity.ChannelSale{
				ChannelCode: cs.ChannelCode,
				Count:       cs.Count,
				FeeRate:     rate,
			})
		}
		for _, cs := range row.CategorySales {
			if cs.CategoryCode == "" || cs.Count < 0 {
				return nil, domain.ErrInvalidInput
			}
			rec.CategorySales = append(rec.CategorySales, entity.CategorySale{
				CategoryCode: cs.CategoryCode,
				Count:        cs.Count,
			})
		}
		out = append(out, rec)
	}
	return out, nil
}

// reportedTotals mapea los totales de la carga, o nil si no vinieron.
func reportedTotals(in *dto.ReportedTotalsDTO) *entity.MonthlyTotals {
	if in == nil {
		return nil
	}
	return &entity.MonthlyTotals{
		ChannelTotals:  in.ChannelTotals,
		CategoryTotals: in.CategoryTotals,
	}
}

// dayWeights pesos proporcionales al total de visitantes de cada día. Si
// el mes entero está en cero, todos los días pesan igual.
func dayWeights(records []*entity.DailySaleRecord) []aggregation.DayWeight {
	var total int64
	for _, r := range records {
		total += r.TotalCount()
	}
	weights := make([]aggregation.DayWeight, 0, len(records))
	for _, r := range records {
		var ratio decimal.Decimal
		if total > 0 {
			ratio = decimal.NewFromInt(r.TotalCount()).Div(decimal.NewFromInt(total))
		} else {
			ratio = decimal.NewFromInt(1).Div(decimal.NewFromInt(int64(len(records))))
		}
		weights = append(weights, aggregation.DayWeight{Date: r.Date, Ratio: ratio})
	}
	return weights
}

// applyAllocations reescribe los conteos diarios de cada código objetivo
// con su asignación. Un código del maestro de canales se aplica como venta
// online (con tarifa resuelta por fecha); cualquier otro, como categoría.
func applyAllocations(records []*entity.DailySaleRecord, allocations map[string][]aggregation.DayAllocation, settings *entity.MonthlyFeeSettings, registry *entity.ChannelRegistry) {
	now := time.Now().UTC()
	byDate := make(map[string]*entity.DailySaleRecord, len(records))
	for _, r := range records {
		byDate[r.Date] = r
	}
	for code, allocs := range allocations {
		_, isChannel := registry.Get(code)
		for _, a := range allocs {
			rec, ok := byDate[a.Date]
			if !ok {
				continue
			}
			rec.Source = entity.RecordSourceManual
			rec.UpdatedAt = now
			if isChannel {
				setChannelCount(rec, code, a.Count, settlement.ResolveFeeRate(code, a.Date, settings, registry))
			} else {
				setCategoryCount(rec, code, a.Count)
			}
		}
	}
}

func setChannelCount(rec *entity.DailySaleRecord, code string, count int64, rate decimal.Decimal) {
	for i := range rec.ChannelSales {
		if rec.ChannelSales[i].ChannelCode == code {
			rec.ChannelSales[i].Count = count
			return
		}
	}
	rec.ChannelSales = append(rec.ChannelSales, entity.ChannelSale{
		ChannelCode: code,
		Count:       count,
		FeeRate:     rate,
	})
}

func setCategoryCount(rec *entity.DailySaleRecord, code string, count int64) {
	for i := range rec.CategorySales {
		if rec.CategorySales[i].CategoryCode == code {
			rec.CategorySales[i].Count = count
			return
		}
	}
	rec.CategorySales = append(rec.CategorySales, entity.CategorySale{
		CategoryCode: code,
		Count:        count,
	})
}

// retargetTotals deja los totales reportados de los códigos distribuidos
// en el valor objetivo, para que el mes cierre sin discrepancia. Si el mes
// nunca tuvo fila de totales no se inventa una: las filas reescritas ya
// suman el objetivo.
func retargetTotals(totals *entity.MonthlyTotals, targets map[string]int64, registry *entity.ChannelRegistry) *entity.MonthlyTotals {
	if totals == nil {
		return nil
	}
	totals = totals.Clone()
	if totals.ChannelTotals == nil {
		totals.ChannelTotals = make(map[string]int64)
	}
	if totals.CategoryTotals == nil {
		totals.CategoryTotals = make(map[string]int64)
	}
	for code, target := range targets {
		if _, isChannel := registry.Get(code); isChannel {
			totals.ChannelTotals[code] = target
		} else {
			totals.CategoryTotals[code] = target
		}
	}
	return totals
}
