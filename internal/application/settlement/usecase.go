package settlement

import (
	"context"
	"sort"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/singleflight"

	"github.com/jhoicas/Liquidacion-api/internal/application/dto"
	"github.com/jhoicas/Liquidacion-api/internal/domain"
	"github.com/jhoicas/Liquidacion-api/internal/domain/aggregation"
	"github.com/jhoicas/Liquidacion-api/internal/domain/entity"
	"github.com/jhoicas/Liquidacion-api/internal/domain/repository"
	engine "github.com/jhoicas/Liquidacion-api/internal/domain/settlement"
	"github.com/jhoicas/Liquidacion-api/pkg/logger"
)

// TTL del cache de liquidaciones derivadas. Una liquidación mensual es
// recomputable siempre; el cache solo amortigua lecturas repetidas del
// dashboard y se invalida al cambiar los datos del mes.
const (
	cacheTTL     = 10 * time.Minute
	cacheCleanup = 30 * time.Minute
)

// UseCase calcula liquidaciones: directas (con los datos del request),
// mensuales (desde los registros persistidos) y rollups acumulados.
type UseCase struct {
	salesRepo   repository.SalesRepository
	channelRepo repository.ChannelRepository
	cfg         engine.CascadeConfig
	cache       *cache.Cache
	group       singleflight.Group
	log         *logger.Logger
}

// NewUseCase construye el caso de uso con la configuración de cascada.
func NewUseCase(
	salesRepo repository.SalesRepository,
	channelRepo repository.ChannelRepository,
	cfg engine.CascadeConfig,
	log *logger.Logger,
) *UseCase {
	return &UseCase{
		salesRepo:   salesRepo,
		channelRepo: channelRepo,
		cfg:         cfg,
		cache:       cache.New(cacheTTL, cacheCleanup),
		log:         log.Component("settlement"),
	}
}

// CalculateDirect ejecuta la cascada con los conteos del request, sin
// tocar los datos persistidos. Sin config en el request se usan las
// unidades configuradas del servicio y las tarifas del maestro; con
// config, un canal ausente en channelFeeRates se liquida con tarifa 0.
func (uc *UseCase) CalculateDirect(in dto.CalculateSettlementRequest) (*entity.SettlementResult, error) {
	if in.Sales.OfflineCount < 0 {
		return nil, domain.ErrInvalidInput
	}
	cfg := uc.cfg
	if in.Config != nil {
		if in.Config.BasePrice <= 0 {
			return nil, domain.ErrInvalidInput
		}
		cfg = engine.CascadeConfig{
			BasePrice:              in.Config.BasePrice,
			MazePaymentPerPerson:   in.Config.Company.MazePaymentPerPerson,
			CulturePaymentFromSkp:  in.Config.Company.CulturePaymentFromSkp,
			CulturePaymentFromMaze: in.Config.Company.CulturePaymentFromMaze,
			PlatformFeeToSkp:       in.Config.Company.PlatformFeeToSkp,
			AgencyFeeRate:          in.Config.Company.AgencyFeeRate,
		}
	}

	registry, err := uc.registry()
	if err != nil {
		return nil, err
	}
	online := make([]engine.OnlineChannelSale, 0, len(in.Sales.OnlineSales))
	for _, s := range in.Sales.OnlineSales {
		if s.ChannelCode == "" || s.Count < 0 {
			return nil, domain.ErrInvalidInput
		}
		var rate decimal.Decimal
		if in.Config != nil {
			rate = in.Config.ChannelFeeRates[s.ChannelCode] // ausente: tarifa 0
		} else {
			rate = registry.DefaultFeeRate(s.ChannelCode)
		}
		name := s.ChannelName
		if name == "" {
			name = registry.Name(s.ChannelCode)
		}
		online = append(online, engine.OnlineChannelSale{
			ChannelCode: s.ChannelCode,
			ChannelName: name,
			Count:       s.Count,
			FeeRate:     rate,
		})
	}
	return engine.Calculate(online, in.Sales.OfflineCount, cfg, in.PeriodStart, in.PeriodEnd), nil
}

// CalculateMonth liquida un mes desde sus registros diarios persistidos.
// El resultado se cachea hasta que el mes cambie; cálculos concurrentes
// del mismo mes se colapsan en uno (singleflight).
func (uc *UseCase) CalculateMonth(ctx context.Context, year, month int) (*entity.SettlementResult, error) {
	ym, err := validPeriod(year, month)
	if err != nil {
		return nil, err
	}
	key := ym.String()
	if v, ok := uc.cache.Get(key); ok {
		return v.(*entity.SettlementResult), nil
	}
	v, err, _ := uc.group.Do(key, func() (any, error) {
		res, err := uc.computeMonth(ym)
		if err != nil {
			return nil, err
		}
		uc.cache.Set(key, res, cache.DefaultExpiration)
		uc.log.Debug().Str("month", key).Msg("liquidación mensual calculada")
		return res, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*entity.SettlementResult), nil
}

// InvalidateMonth descarta la liquidación cacheada de un mes.
func (uc *UseCase) InvalidateMonth(year, month int) {
	uc.cache.Delete(entity.YearMonth{Year: year, Month: month}.String())
}

// RollupYear liquidación acumulada de todos los meses con datos del año.
func (uc *UseCase) RollupYear(ctx context.Context, year int) (*entity.CumulativeView, error) {
	if year < 2000 || year > 2100 {
		return nil, domain.ErrInvalidPeriod
	}
	months, err := uc.monthlySettlements(ctx, func(ym entity.YearMonth) bool { return ym.Year == year })
	if err != nil {
		return nil, err
	}
	return aggregation.RollupYear(year, months), nil
}

// RollupAll liquidación acumulada histórica (todos los meses con datos).
func (uc *UseCase) RollupAll(ctx context.Context) (*entity.CumulativeView, error) {
	months, err := uc.monthlySettlements(ctx, func(entity.YearMonth) bool { return true })
	if err != nil {
		return nil, err
	}
	return aggregation.RollupAll(months), nil
}

// computeMonth agrupa las ventas del mes por par (canal, tarifa capturada)
// y ejecuta la cascada. La liquidación siempre sale de la suma de filas
// diarias; los totales reportados solo gobiernan la vista agregada.
func (uc *UseCase) computeMonth(ym entity.YearMonth) (*entity.SettlementResult, error) {
	records, err := uc.salesRepo.ListMonth(ym.Year, ym.Month)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, domain.ErrNoSalesData
	}
	registry, err := uc.registry()
	if err != nil {
		return nil, err
	}

	type channelKey struct {
		code string
		rate string
	}
	counts := make(map[channelKey]int64)
	rates := make(map[channelKey]decimal.Decimal)
	var offline int64
	for _, r := range records {
		for _, s := range r.ChannelSales {
			k := channelKey{code: s.ChannelCode, rate: s.FeeRate.String()}
			counts[k] += s.Count
			rates[k] = s.FeeRate
		}
		offline += r.OfflineCount()
	}

	keys := make([]channelKey, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].code != keys[j].code {
			return keys[i].code < keys[j].code
		}
		return keys[i].rate < keys[j].rate
	})

	online := make([]engine.OnlineChannelSale, 0, len(keys))
	for _, k := range keys {
		online = append(online, engine.OnlineChannelSale{
			ChannelCode: k.code,
			ChannelName: registry.Name(k.code),
			Count:       counts[k],
			FeeRate:     rates[k],
		})
	}
	return engine.Calculate(online, offline, uc.cfg, ym.FirstDay(), ym.LastDay()), nil
}

// monthlySettlements liquida (vía cache) los meses con datos que pasan el filtro.
func (uc *UseCase) monthlySettlements(ctx context.Context, include func(entity.YearMonth) bool) ([]entity.MonthlySettlement, error) {
	yms, err := uc.salesRepo.ListMonthsWithData()
	if err != nil {
		return nil, err
	}
	var out []entity.MonthlySettlement
	for _, ym := range yms {
		if !include(ym) {
			continue
		}
		res, err := uc.CalculateMonth(ctx, ym.Year, ym.Month)
		if err != nil {
			return nil, err
		}
		out = append(out, entity.MonthlySettlement{Year: ym.Year, Month: ym.Month, Result: res})
	}
	return out, nil
}

func (uc *UseCase) registry() (*entity.ChannelRegistry, error) {
	channels, err := uc.channelRepo.ListChannels()
	if err != nil {
		return nil, err
	}
	list := make([]entity.Channel, 0, len(channels))
	for _, ch := range channels {
		list = append(list, *ch)
	}
	return entity.NewChannelRegistry(list), nil
}

func validPeriod(year, month int) (entity.YearMonth, error) {
	if year < 2000 || year > 2100 || month < 1 || month > 12 {
		return entity.YearMonth{}, domain.ErrInvalidPeriod
	}
	return entity.YearMonth{Year: year, Month: month}, nil
}
