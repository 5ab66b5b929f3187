package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Sneethan/gntle-habits/internal/clock"
	"github.com/Sneethan/gntle-habits/internal/model"
	"github.com/Sneethan/gntle-habits/internal/repository"
)

// External enrichment providers. All are best-effort: a failure degrades to a
// placeholder line, never fails the briefing.
type WeatherProvider interface {
	Current(ctx context.Context, location string) (string, error)
}

type TransitProvider interface {
	NextDepartures(ctx context.Context, originCoords, destCoords string) (string, error)
}

type SuggestionProvider interface {
	Suggest(ctx context.Context, prompt string) (string, error)
}

type BriefingService struct {
	repo       repository.BriefingRepository
	countdowns repository.CountdownRepository
	habits     *HabitService
	weather    WeatherProvider
	transit    TransitProvider
	llm        SuggestionProvider
	clk        *clock.Clock
	tone       string
}

func NewBriefingService(
	repo repository.BriefingRepository,
	countdowns repository.CountdownRepository,
	habits *HabitService,
	weather WeatherProvider,
	transit TransitProvider,
	llm SuggestionProvider,
	clk *clock.Clock,
	tone string,
) *BriefingService {
	return &BriefingService{
		repo:       repo,
		countdowns: countdowns,
		habits:     habits,
		weather:    weather,
		transit:    transit,
		llm:        llm,
		clk:        clk,
		tone:       tone,
	}
}

func (s *BriefingService) OptIn(userID, greetingTime string, location *string) error {
	_, err := clock.ParseHHMM(greetingTime)
	if err != nil {
		return inputErrorf("Please use HH:MM format for time (e.g., 07:00, 08:30).")
	}
	optedIn := true
	return s.repo.Upsert(userID, &optedIn, location, &greetingTime, nil, nil, s.now())
}

func (s *BriefingService) OptOut(userID string) error {
	optedIn := false
	return s.repo.Upsert(userID, &optedIn, nil, nil, nil, nil, s.now())
}

func (s *BriefingService) SetLocation(userID, location string) error {
	if location == "" {
		return inputErrorf("Location cannot be empty.")
	}
	return s.repo.Upsert(userID, nil, &location, nil, nil, nil, s.now())
}

func (s *BriefingService) SetTime(userID, greetingTime string) error {
	_, err := clock.ParseHHMM(greetingTime)
	if err != nil {
		return inputErrorf("Please use HH:MM format for time (e.g., 07:00, 08:30).")
	}
	return s.repo.Upsert(userID, nil, nil, &greetingTime, nil, nil, s.now())
}

// SetBusStop stores "name, geocoded display::lat,lon" for the origin or
// destination of the user's transit leg.
func (s *BriefingService) SetBusStop(userID, nickname, geocoded string, isOrigin bool) error {
	display, coords, ok := model.BusStop(&geocoded)
	if !ok {
		return inputErrorf("Could not find coordinates for that address. Please try a more specific address.")
	}
	stored := fmt.Sprintf("%s, %s%s%s", nickname, display, model.BusStopSeparator, coords)
	if isOrigin {
		return s.repo.Upsert(userID, nil, nil, nil, &stored, nil, s.now())
	}
	return s.repo.Upsert(userID, nil, nil, nil, nil, &stored, s.now())
}

func (s *BriefingService) Prefs(userID string) (*model.MorningBriefingPrefs, error) {
	return s.repo.Prefs(userID)
}

func (s *BriefingService) DueAt(hhmm string) ([]*model.MorningBriefingPrefs, error) {
	return s.repo.DueAt(hhmm)
}

func (s *BriefingService) AddCountdown(userID, eventName, eventDate string, includeInBriefing bool) (*model.EventCountdown, error) {
	if eventName == "" {
		return nil, inputErrorf("Event name cannot be empty.")
	}
	_, err := time.Parse(dateLayout, eventDate)
	if err != nil {
		return nil, inputErrorf("Please use YYYY-MM-DD format for date (e.g., 2025-12-31).")
	}

	event := &model.EventCountdown{
		UserID:            userID,
		EventName:         eventName,
		EventDate:         eventDate,
		IncludeInBriefing: includeInBriefing,
		CreatedAt:         s.clk.ToUTC(time.Now()).Truncate(time.Second),
	}

	err = s.countdowns.Create(event)
	if err != nil {
		return nil, err
	}
	return event, nil
}

func (s *BriefingService) Countdowns(userID string) ([]*model.EventCountdown, error) {
	return s.countdowns.ForUser(userID)
}

func (s *BriefingService) RemoveCountdown(userID, eventName string) error {
	return s.countdowns.Delete(userID, eventName)
}

// DaysUntil returns the local-calendar distance to a stored event date.
func (s *BriefingService) DaysUntil(eventDate string, now time.Time) (int, error) {
	target, err := time.ParseInLocation(dateLayout, eventDate, s.clk.Location())
	if err != nil {
		return 0, err
	}
	return s.clk.DaysBetween(now, target), nil
}

// Compose builds the morning briefing text for one user. Every external block
// degrades independently.
func (s *BriefingService) Compose(ctx context.Context, userID string, now time.Time) (string, error) {
	prefs, err := s.repo.Prefs(userID)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "☀️ Good morning! Here's your briefing for %s.\n", s.clk.ToLocal(now).Format("Monday, January 2"))

	if prefs.Location != nil && *prefs.Location != "" {
		weather, err := s.weather.Current(ctx, *prefs.Location)
		if err != nil {
			slog.Warn("weather lookup failed", "user_id", userID, "error", err)
			weather = "Weather information is unavailable right now."
		}
		fmt.Fprintf(&b, "\n🌤️ **Weather** (%s)\n%s\n", *prefs.Location, weather)
	}

	originName, originCoords, originOK := model.BusStop(prefs.BusOrigin)
	destName, destCoords, destOK := model.BusStop(prefs.BusDestination)
	if originOK && destOK {
		departures, err := s.transit.NextDepartures(ctx, originCoords, destCoords)
		if err != nil {
			slog.Warn("transit lookup failed", "user_id", userID, "error", err)
			departures = "Transit information is unavailable right now."
		}
		fmt.Fprintf(&b, "\n🚌 **Buses** (%s → %s)\n%s\n", originName, destName, departures)
	}

	events, err := s.countdowns.ForBriefing(userID)
	if err != nil {
		return "", err
	}
	if len(events) > 0 {
		b.WriteString("\n📅 **Countdowns**\n")
		for _, event := range events {
			days, err := s.DaysUntil(event.EventDate, now)
			if err != nil {
				continue
			}
			switch {
			case days < 0:
				fmt.Fprintf(&b, "• %s was %d days ago\n", event.EventName, -days)
			case days == 0:
				fmt.Fprintf(&b, "• %s is TODAY! 🎉\n", event.EventName)
			case days == 1:
				fmt.Fprintf(&b, "• %s is TOMORROW!\n", event.EventName)
			default:
				fmt.Fprintf(&b, "• %s in %d days\n", event.EventName, days)
			}
		}
	}

	pending, err := s.habits.PendingNudges(userID, now)
	if err != nil {
		return "", err
	}
	if len(pending) > 0 {
		b.WriteString("\n📝 **Habits still open today**\n")
		for _, entry := range pending {
			if entry.Streak > 0 {
				fmt.Fprintf(&b, "• %s (streak: %d)\n", entry.HabitName, entry.Streak)
			} else {
				fmt.Fprintf(&b, "• %s\n", entry.HabitName)
			}
		}
	}

	suggestion, err := s.llm.Suggest(ctx, s.suggestionPrompt(prefs))
	if err != nil {
		slog.Warn("suggestion lookup failed", "user_id", userID, "error", err)
		suggestion = "Have a wonderful day!"
	}
	fmt.Fprintf(&b, "\n💡 %s\n", suggestion)

	return b.String(), nil
}

func (s *BriefingService) suggestionPrompt(prefs *model.MorningBriefingPrefs) string {
	location := "an unknown location"
	if prefs.Location != nil && *prefs.Location != "" {
		location = *prefs.Location
	}
	return fmt.Sprintf(
		"Write one short %s morning motivation line, with a practical clothing hint for someone in %s. Max 25 words.",
		s.tone, location,
	)
}

func (s *BriefingService) now() time.Time {
	return s.clk.ToUTC(time.Now()).Truncate(time.Second)
}
