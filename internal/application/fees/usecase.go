package fees

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Liquidacion-api/internal/application/dto"
	"github.com/jhoicas/Liquidacion-api/internal/domain"
	"github.com/jhoicas/Liquidacion-api/internal/domain/entity"
	"github.com/jhoicas/Liquidacion-api/internal/domain/repository"
	"github.com/jhoicas/Liquidacion-api/pkg/logger"
)

// UseCase administra el maestro de canales y la configuración mensual de
// tarifas de comisión (defaults por canal + ventanas de override).
type UseCase struct {
	feeRepo     repository.FeeSettingsRepository
	channelRepo repository.ChannelRepository
	log         *logger.Logger
}

// NewUseCase construye el caso de uso de tarifas.
func NewUseCase(feeRepo repository.FeeSettingsRepository, channelRepo repository.ChannelRepository, log *logger.Logger) *UseCase {
	return &UseCase{feeRepo: feeRepo, channelRepo: channelRepo, log: log.Component("fees")}
}

// GetOrCreateMonth devuelve la configuración del mes; si no existe la crea
// con los defaults del maestro de canales (source = master) y la persiste.
func (uc *UseCase) GetOrCreateMonth(year, month int) (*entity.MonthlyFeeSettings, error) {
	if err := validPeriod(year, month); err != nil {
		return nil, err
	}
	settings, err := uc.feeRepo.GetMonth(year, month)
	if err != nil {
		return nil, err
	}
	if settings != nil {
		return settings, nil
	}

	registry, err := uc.Registry()
	if err != nil {
		return nil, err
	}
	settings = entity.NewMonthlyFeeSettingsFromMaster(year, month, registry.List())
	if err := uc.feeRepo.SaveMonth(settings); err != nil {
		return nil, err
	}
	uc.log.Info().Int("year", year).Int("month", month).Msg("configuración mensual de tarifas creada desde el maestro")
	return settings, nil
}

// GetMonth configuración del mes lista para la API.
func (uc *UseCase) GetMonth(year, month int) (*dto.MonthlyFeeSettingsResponse, error) {
	settings, err := uc.GetOrCreateMonth(year, month)
	if err != nil {
		return nil, err
	}
	registry, err := uc.Registry()
	if err != nil {
		return nil, err
	}
	return dto.NewMonthlyFeeSettingsResponse(settings, registry), nil
}

// UpdateMonth reemplaza las tarifas por defecto de los canales indicados
// para ese mes (source = manual). No toca los overrides ni las tarifas ya
// capturadas en registros diarios previos.
func (uc *UseCase) UpdateMonth(year, month int, in dto.UpdateMonthlyFeesRequest) (*dto.MonthlyFeeSettingsResponse, error) {
	if len(in.Channels) == 0 {
		return nil, domain.ErrInvalidInput
	}
	settings, err := uc.GetOrCreateMonth(year, month)
	if err != nil {
		return nil, err
	}
	for _, ch := range in.Channels {
		if ch.ChannelCode == "" || !validRate(ch.FeeRate) {
			return nil, domain.ErrInvalidInput
		}
		updated := false
		for i := range settings.Channels {
			if settings.Channels[i].ChannelCode == ch.ChannelCode {
				settings.Channels[i].FeeRate = ch.FeeRate
				settings.Channels[i].Source = entity.FeeSourceManual
				updated = true
				break
			}
		}
		if !updated {
			settings.Channels = append(settings.Channels, entity.ChannelMonthlyFee{
				ChannelCode: ch.ChannelCode,
				FeeRate:     ch.FeeRate,
				Source:      entity.FeeSourceManual,
			})
		}
	}
	if err := uc.feeRepo.SaveMonth(settings); err != nil {
		return nil, err
	}
	registry, err := uc.Registry()
	if err != nil {
		return nil, err
	}
	uc.log.Info().Int("year", year).Int("month", month).Int("channels", len(in.Channels)).Msg("tarifas mensuales actualizadas")
	return dto.NewMonthlyFeeSettingsResponse(settings, registry), nil
}

// AddOverride agrega una ventana de tarifa especial dentro del mes. La
// ventana es inclusiva en ambos extremos y debe caer completa en el mes;
// ventanas solapadas se permiten y resuelven por orden de creación.
func (uc *UseCase) AddOverride(year, month int, in dto.AddFeeOverrideRequest) (*dto.FeeOverrideDTO, error) {
	if err := validPeriod(year, month); err != nil {
		return nil, err
	}
	if in.ChannelCode == "" || !validRate(in.FeeRate) {
		return nil, domain.ErrInvalidInput
	}
	ym := entity.YearMonth{Year: year, Month: month}
	for _, d := range []string{in.StartDate, in.EndDate} {
		if _, err := time.Parse("2006-01-02", d); err != nil {
			return nil, domain.ErrInvalidInput
		}
		if !ym.ContainsDate(d) {
			return nil, domain.ErrInvalidPeriod
		}
	}
	if in.StartDate > in.EndDate {
		return nil, domain.ErrInvalidInput
	}
	// El mes debe existir antes de colgarle overrides
	if _, err := uc.GetOrCreateMonth(year, month); err != nil {
		return nil, err
	}

	override := &entity.FeeOverride{
		ID:          uuid.New().String(),
		ChannelCode: in.ChannelCode,
		StartDate:   in.StartDate,
		EndDate:     in.EndDate,
		FeeRate:     in.FeeRate,
		Reason:      in.Reason,
		CreatedAt:   time.Now().UTC(),
	}
	if err := uc.feeRepo.AddOverride(year, month, override); err != nil {
		return nil, err
	}
	uc.log.Info().
		Str("channel", in.ChannelCode).
		Str("from", in.StartDate).
		Str("to", in.EndDate).
		Msg("override de tarifa agregado")
	return &dto.FeeOverrideDTO{
		ID:          override.ID,
		ChannelCode: override.ChannelCode,
		StartDate:   override.StartDate,
		EndDate:     override.EndDate,
		FeeRate:     override.FeeRate,
		Reason:      override.Reason,
	}, nil
}

// DeleteOverride elimina una ventana de override por ID.
func (uc *UseCase) DeleteOverride(id string) error {
	if id == "" {
		return domain.ErrInvalidInput
	}
	return uc.feeRepo.DeleteOverride(id)
}

// Registry maestro de canales vigente (fijos + personalizados).
func (uc *UseCase) Registry() (*entity.ChannelRegistry, error) {
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

// ListChannels canales del maestro ordenados por código.
func (uc *UseCase) ListChannels() ([]dto.ChannelDTO, error) {
	registry, err := uc.Registry()
	if err != nil {
		return nil, err
	}
	channels := registry.List()
	out := make([]dto.ChannelDTO, 0, len(channels))
	for _, ch := range channels {
		out = append(out, dto.ChannelDTO{
			Code:           ch.Code,
			Name:           ch.Name,
			DefaultFeeRate: ch.DefaultFeeRate,
			IsOnline:       true,
		})
	}
	return out, nil
}

// CreateChannel registra un canal personalizado.
func (uc *UseCase) CreateChannel(in dto.CreateChannelRequest) (*dto.ChannelDTO, error) {
	if in.Code == "" || in.Name == "" || !validRate(in.DefaultFeeRate) {
		return nil, domain.ErrInvalidInput
	}
	ch := &entity.Channel{
		Code:           in.Code,
		Name:           in.Name,
		DefaultFeeRate: in.DefaultFeeRate,
		Custom:         true,
		CreatedAt:      time.Now().UTC(),
	}
	if err := uc.channelRepo.CreateChannel(ch); err != nil {
		return nil, err
	}
	uc.log.Info().Str("code", ch.Code).Msg("canal personalizado creado")
	return &dto.ChannelDTO{
		Code:           ch.Code,
		Name:           ch.Name,
		DefaultFeeRate: ch.DefaultFeeRate,
		IsOnline:       true,
	}, nil
}

// ListCategories categorías de venta offline.
func (uc *UseCase) ListCategories() ([]dto.CategoryDTO, error) {
	categories, err := uc.channelRepo.ListCategories()
	if err != nil {
		return nil, err
	}
	out := make([]dto.CategoryDTO, 0, len(categories))
	for _, c := range categories {
		out = append(out, dto.CategoryDTO{Code: c.Code, Name: c.Name})
	}
	return out, nil
}

func validPeriod(year, month int) error {
	if year < 2000 || year > 2100 || month < 1 || month > 12 {
		return domain.ErrInvalidPeriod
	}
	return nil
}

// validRate porcentaje entre 0 y 100 inclusive.
func validRate(rate decimal.Decimal) bool {
	return !rate.IsNegative() && rate.LessThanOrEqual(decimal.NewFromInt(100))
}
