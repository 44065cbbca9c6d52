package service

import (
	"context"
	"fmt"
	"strings"

	"creator-ledger/core/errors"
	"creator-ledger/core/logger"
	"creator-ledger/core/policy"
	"creator-ledger/core/utils"
	"creator-ledger/modules/availability/dto"
	"creator-ledger/modules/availability/entity"
	"creator-ledger/modules/availability/repository"

	"github.com/shopspring/decimal"
)

type AvailabilityServiceInterface interface {
	SubmitSchedule(ctx context.Context, creatorID string, req *dto.SubmitScheduleRequest) (*dto.SubmitScheduleResponse, *errors.AppError)
	GetSessions(ctx context.Context, creatorID string) (*dto.SessionsResponse, *errors.AppError)
	SaveSettings(ctx context.Context, creatorID string, req *dto.SessionSettingsRequest) (*entity.SessionSettings, *errors.AppError)
	GetSettings(ctx context.Context, creatorID string) (*entity.SessionSettings, *errors.AppError)
}

type AvailabilityService struct {
	repo   repository.AvailabilityRepositoryInterface
	policy policy.Policy
}

func NewAvailabilityService(repo repository.AvailabilityRepositoryInterface, p policy.Policy) *AvailabilityService {
	return &AvailabilityService{repo: repo, policy: p}
}

// DraftFromRequest regenerates every block server-side at cadence and only keeps the
// client's active/inactive choices. Blocks sent without slots are fully active.
func DraftFromRequest(req *dto.SubmitScheduleRequest, cadence int) (Draft, error) {
	d := NewDraft(cadence)
	for _, day := range req.Days {
		wd, err := entity.ParseWeekday(day.Weekday)
		if err != nil {
			return d, errors.NewAppError(errors.ErrInvalidInput, err.Error(), err)
		}
		for _, b := range day.Blocks {
			start := b.Start
			if start != "" {
				m, err := ParseGridClock(start, cadence)
				if err != nil {
					return d, errors.NewAppError(errors.ErrInvalidInput, err.Error(), err)
				}
				start = FormatClock(m)
			}
			var id string
			d, id = d.AddBlock(wd, start, b.DurationMinutes)
			if len(b.Slots) == 0 {
				continue
			}
			inactive := make(map[string]bool, len(b.Slots))
			for _, s := range b.Slots {
				if m, err := ParseClock(s.Start); err == nil && !s.Active {
					inactive[FormatClock(m)] = true
				}
			}
			i, j, _ := d.locate(wd, id)
			for k := range d.Days[i].Blocks[j].Slots {
				if inactive[d.Days[i].Blocks[j].Slots[k].Start] {
					d.Days[i].Blocks[j].Slots[k].Active = false
				}
			}
		}
	}
	return d, nil
}

func (s *AvailabilityService) SubmitSchedule(ctx context.Context, creatorID string, req *dto.SubmitScheduleRequest) (*dto.SubmitScheduleResponse, *errors.AppError) {
	creatorID = strings.TrimSpace(creatorID)
	if creatorID == "" {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "creator id is required", nil)
	}

	draft, err := DraftFromRequest(req, s.policy.SlotCadenceMinutes)
	if err != nil {
		return nil, toAppError(err)
	}
	entries, err := draft.Submit(creatorID)
	if err != nil {
		return nil, toAppError(err)
	}
	if len(entries) == 0 {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "schedule needs at least one active slot", nil)
	}

	if err := s.repo.ReplaceSchedule(ctx, creatorID, entries); err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to save schedule", err)
	}

	logger.Info("AvailabilityService:SubmitSchedule:Success", "creator_id", creatorID, "entries", len(entries))
	return &dto.SubmitScheduleResponse{CreatorID: creatorID, Entries: len(entries)}, nil
}

func (s *AvailabilityService) GetSessions(ctx context.Context, creatorID string) (*dto.SessionsResponse, *errors.AppError) {
	entries, err := s.repo.GetSchedule(ctx, creatorID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to load schedule", err)
	}
	settings, err := s.repo.GetSettings(ctx, creatorID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to load session settings", err)
	}

	resp := &dto.SessionsResponse{
		CreatorID:       creatorID,
		SlotMinutes:     s.policy.SlotCadenceMinutes,
		PricePerSession: map[string]string{},
		ByDay:           []dto.DayAvailability{},
	}
	if settings != nil {
		resp.CreatorAddr = settings.CreatorAddr
		for _, kind := range []entity.SessionKind{entity.KindVoice, entity.KindVideo} {
			resp.PricePerSession[string(kind)] = settings.SessionPrice(kind, resp.SlotMinutes).StringFixed(2)
		}
	}

	for _, day := range FromEntries(entries, s.policy.SlotCadenceMinutes).Preview() {
		da := dto.DayAvailability{Weekday: day.Weekday}
		for _, b := range day.Blocks {
			starts := make([]string, 0, len(b.Slots))
			for _, sl := range b.Slots {
				if sl.Active {
					starts = append(starts, sl.Start)
				}
			}
			da.Blocks = append(da.Blocks, dto.BlockAvailability{Start: b.Start, DurationMinutes: b.DurationMinutes, Slots: starts})
		}
		resp.ByDay = append(resp.ByDay, da)
	}
	return resp, nil
}

func (s *AvailabilityService) SaveSettings(ctx context.Context, creatorID string, req *dto.SessionSettingsRequest) (*entity.SessionSettings, *errors.AppError) {
	if !utils.IsWalletAddress(req.CreatorAddr) {
		return nil, errors.NewAppError(errors.ErrInvalidCreatorAddress, "creator address must be 40 hex characters", nil)
	}

	if req.SlotMinutes != 0 && req.SlotMinutes != s.policy.SlotCadenceMinutes {
		return nil, errors.NewAppError(errors.ErrInvalidInput,
			fmt.Sprintf("slot_minutes must be %d", s.policy.SlotCadenceMinutes), nil)
	}

	settings := &entity.SessionSettings{
		CreatorID:   creatorID,
		CreatorAddr: utils.NormalizeAddress(req.CreatorAddr),
		SlotMinutes: s.policy.SlotCadenceMinutes,
	}

	var err error
	if settings.VoicePriceUSD, err = parseOptionalPrice(req.VoicePriceUSD); err != nil {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "voice_price_usd is not a valid amount", err)
	}
	if settings.VideoPriceUSD, err = parseOptionalPrice(req.VideoPriceUSD); err != nil {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "video_price_usd is not a valid amount", err)
	}
	if req.RatePerMinuteUSD != "" {
		rate, err := decimal.NewFromString(req.RatePerMinuteUSD)
		if err != nil || rate.IsNegative() {
			return nil, errors.NewAppError(errors.ErrInvalidInput, "rate_per_minute_usd is not a valid amount", err)
		}
		settings.RatePerMinuteUSD = rate
	}

	if err := s.repo.UpsertSettings(ctx, settings); err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to save session settings", err)
	}
	return settings, nil
}

func (s *AvailabilityService) GetSettings(ctx context.Context, creatorID string) (*entity.SessionSettings, *errors.AppError) {
	settings, err := s.repo.GetSettings(ctx, creatorID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to load session settings", err)
	}
	if settings == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "creator has no session settings", nil)
	}
	return settings, nil
}

func parseOptionalPrice(raw *string) (decimal.NullDecimal, error) {
	if raw == nil || strings.TrimSpace(*raw) == "" {
		return decimal.NullDecimal{}, nil
	}
	d, err := decimal.NewFromString(strings.TrimSpace(*raw))
	if err != nil {
		return decimal.NullDecimal{}, err
	}
	if d.IsNegative() {
		return decimal.NullDecimal{}, errors.New("negative price")
	}
	return decimal.NewNullDecimal(d.Round(2)), nil
}

func toAppError(err error) *errors.AppError {
	var appErr *errors.AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return errors.NewAppError(errors.ErrInternalServer, err.Error(), err)
}
