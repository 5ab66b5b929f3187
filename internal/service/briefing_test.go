package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sneethan/gntle-habits/internal/clock"
	"github.com/Sneethan/gntle-habits/internal/config"
	"github.com/Sneethan/gntle-habits/internal/repository"
)

type fakeWeather struct {
	out string
	err error
}

func (f fakeWeather) Current(ctx context.Context, location string) (string, error) {
	return f.out, f.err
}

type fakeTransit struct {
	out string
	err error
}

func (f fakeTransit) NextDepartures(ctx context.Context, originCoords, destCoords string) (string, error) {
	return f.out, f.err
}

type fakeSuggestion struct{ out string }

func (f fakeSuggestion) Suggest(ctx context.Context, prompt string) (string, error) {
	return f.out, nil
}

func newBriefingService(t *testing.T, weather WeatherProvider, transit TransitProvider) *BriefingService {
	t.Helper()

	database := newTestDB(t)
	clk := clock.NewFixed(time.UTC)
	habits := NewHabitService(
		repository.NewHabitRepository(database),
		repository.NewParticipantRepository(database),
		repository.NewProgressRepository(database),
		clk,
	)
	return NewBriefingService(
		repository.NewBriefingRepository(database),
		repository.NewCountdownRepository(database),
		habits,
		weather, transit, fakeSuggestion{out: "Layer up, it's chilly."},
		clk, config.ToneGentle,
	)
}

func TestBriefingOptInValidatesTime(t *testing.T) {
	svc := newBriefingService(t, fakeWeather{}, fakeTransit{})

	err := svc.OptIn("user1", "7am", nil)
	assert.True(t, IsInputError(err))

	require.NoError(t, svc.OptIn("user1", "07:30", nil))
	prefs, err := svc.Prefs("user1")
	require.NoError(t, err)
	assert.True(t, prefs.OptedIn)
	assert.Equal(t, "07:30", prefs.GreetingTime)
}

func TestBriefingSetLocationDoesNotOptIn(t *testing.T) {
	svc := newBriefingService(t, fakeWeather{}, fakeTransit{})

	require.NoError(t, svc.SetLocation("user1", "Hobart"))

	prefs, err := svc.Prefs("user1")
	require.NoError(t, err)
	assert.False(t, prefs.OptedIn)
	require.NotNil(t, prefs.Location)
	assert.Equal(t, "Hobart", *prefs.Location)
}

func TestBriefingDueAtFiltersOptedOut(t *testing.T) {
	svc := newBriefingService(t, fakeWeather{}, fakeTransit{})

	require.NoError(t, svc.OptIn("user1", "07:00", nil))
	require.NoError(t, svc.OptIn("user2", "07:00", nil))
	require.NoError(t, svc.OptOut("user2"))
	require.NoError(t, svc.OptIn("user3", "08:00", nil))

	due, err := svc.DueAt("07:00")
	require.NoError(t, err)
	require.Len(t, due, 1)
	assert.Equal(t, "user1", due[0].UserID)
}

func TestBriefingComposeDegradesGracefully(t *testing.T) {
	svc := newBriefingService(t,
		fakeWeather{err: errors.New("open-meteo is down")},
		fakeTransit{},
	)

	location := "Hobart"
	require.NoError(t, svc.OptIn("user1", "07:00", &location))

	now := time.Date(2026, 3, 2, 7, 0, 0, 0, time.UTC)
	text, err := svc.Compose(context.Background(), "user1", now)
	require.NoError(t, err)

	assert.Contains(t, text, "Good morning")
	assert.Contains(t, text, "Weather information is unavailable")
	assert.Contains(t, text, "Layer up")
	// No bus stops configured: no transit block at all.
	assert.NotContains(t, text, "Buses")
}

func TestBriefingComposeCountdowns(t *testing.T) {
	svc := newBriefingService(t, fakeWeather{out: "Sunny, 20°C"}, fakeTransit{})
	require.NoError(t, svc.OptIn("user1", "07:00", nil))

	_, err := svc.AddCountdown("user1", "Birthday", "2026-03-02", true)
	require.NoError(t, err)
	_, err = svc.AddCountdown("user1", "Holiday", "2026-03-12", true)
	require.NoError(t, err)
	_, err = svc.AddCountdown("user1", "Hidden", "2026-03-20", false)
	require.NoError(t, err)

	now := time.Date(2026, 3, 2, 7, 0, 0, 0, time.UTC)
	text, err := svc.Compose(context.Background(), "user1", now)
	require.NoError(t, err)

	assert.Contains(t, text, "Birthday is TODAY!")
	assert.Contains(t, text, "Holiday in 10 days")
	assert.NotContains(t, text, "Hidden")
}

func TestBriefingSetBusStopRequiresCoordinates(t *testing.T) {
	svc := newBriefingService(t, fakeWeather{}, fakeTransit{})

	err := svc.SetBusStop("user1", "home", "no coordinates here", true)
	assert.True(t, IsInputError(err))

	require.NoError(t, svc.SetBusStop("user1", "home", "12 Example St::-42.88,147.33", true))
	prefs, err := svc.Prefs("user1")
	require.NoError(t, err)
	require.NotNil(t, prefs.BusOrigin)
	assert.Equal(t, "home, 12 Example St::-42.88,147.33", *prefs.BusOrigin)
}

func TestBriefingPrefsNotFound(t *testing.T) {
	svc := newBriefingService(t, fakeWeather{}, fakeTransit{})

	_, err := svc.Prefs("nobody")
	assert.ErrorIs(t, err, repository.ErrPrefsNotFound)
}
