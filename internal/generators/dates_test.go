package generators

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kyc-co/synthforms/internal/models"
)

func TestBirthdate_WithinAgeBounds(t *testing.T) {
	g := newTestGenerator(t, 101)
	today := g.Today()

	for _, bounds := range [][2]int{{18, 50}, {0, 1}, {30, 30}, {65, 90}} {
		minAge, maxAge := bounds[0], bounds[1]
		for i := 0; i < 300; i++ {
			b, err := g.Birthdate(minAge, maxAge)
			require.NoError(t, err)
			assert.False(t, b.Before(today.AddYMD(-maxAge, 0, 0).Time), "%s older than %d", b, maxAge)
			assert.False(t, b.After(today.AddYMD(-minAge, 0, 0).Time), "%s younger than %d", b, minAge)
		}
	}
}

func TestBirthdate_InvalidRange(t *testing.T) {
	g := newTestGenerator(t, 103)

	_, err := g.Birthdate(50, 18)
	assert.True(t, errors.Is(err, models.ErrInvalidAgeRange))

	_, err = g.Birthdate(-1, 18)
	assert.True(t, errors.Is(err, models.ErrInvalidAgeRange))

	_, err = g.Birthdate(0, MaxAge+1)
	assert.True(t, errors.Is(err, models.ErrInvalidAgeRange))
}

func TestBirthdate_WideRangeReachesBothEnds(t *testing.T) {
	g := newTestGenerator(t, 104)
	today := g.Today()

	youngest, oldest := MaxAge*366, 0
	for i := 0; i < 2000; i++ {
		b, err := g.Birthdate(0, MaxAge)
		require.NoError(t, err)
		days := b.DaysUntil(today)
		youngest = min(youngest, days)
		oldest = max(oldest, days)
	}

	assert.Less(t, youngest/365, 5, "no birthdate in the last five years")
	assert.Greater(t, oldest/365, MaxAge-5, "no birthdate near the oldest bound")
}

func TestDefaultBirthdate_AgeRange(t *testing.T) {
	g := newTestGenerator(t, 105)
	minAge, maxAge := g.AgeRange()
	assert.Equal(t, DefaultMinAge, minAge)
	assert.Equal(t, DefaultMaxAge, maxAge)

	narrow := newTestGenerator(t, 105, WithAgeRange(25, 26))
	today := narrow.Today()
	for i := 0; i < 100; i++ {
		b := narrow.DefaultBirthdate()
		assert.False(t, b.Before(today.AddYMD(-26, 0, 0).Time))
		assert.False(t, b.After(today.AddYMD(-25, 0, 0).Time))
	}

	for _, bounds := range [][2]int{{40, 30}, {0, 10}, {17, 40}, {18, MaxAge + 1}} {
		ignored := newTestGenerator(t, 105, WithAgeRange(bounds[0], bounds[1]))
		minAge, maxAge = ignored.AgeRange()
		assert.Equal(t, DefaultMinAge, minAge, "range %v", bounds)
		assert.Equal(t, DefaultMaxAge, maxAge, "range %v", bounds)
	}
}

func TestIDExpeditionDate_Bounds(t *testing.T) {
	g := newTestGenerator(t, 107)

	for i := 0; i < 500; i++ {
		b := g.DefaultBirthdate()
		exp := g.IDExpeditionDate(b)
		eighteen := b.AddYMD(18, 0, 0)

		assert.False(t, exp.Before(eighteen.Time))
		assert.False(t, exp.After(eighteen.AddYMD(0, 0, 60).Time))
	}
}

func TestContractStartDate_NotInFuture(t *testing.T) {
	g := newTestGenerator(t, 109)
	today := g.Today()

	for i := 0; i < 500; i++ {
		b := g.DefaultBirthdate()
		start := g.ContractStartDate(b)

		assert.False(t, start.After(today.Time), "start %s after today", start)
		assert.False(t, start.Before(b.Time), "start %s before birthdate %s", start, b)
	}
}

func TestContractStartDate_YoungPersonFallsBackToRecentPast(t *testing.T) {
	g := newTestGenerator(t, 113)
	today := g.Today()
	b := today.AddYMD(-18, 0, 0)

	for i := 0; i < 100; i++ {
		start := g.ContractStartDate(b)
		assert.False(t, start.After(today.Time))
		assert.False(t, start.Before(today.AddYMD(0, -6, -30).Time))
	}
}

func TestContractStartDate_NeverBeforeBirthdate(t *testing.T) {
	g := newTestGenerator(t, 117)
	today := g.Today()

	for _, b := range []models.Date{today.AddYMD(0, -2, 0), today.AddYMD(-3, 0, 0), today.AddYMD(-17, -11, 0)} {
		for i := 0; i < 100; i++ {
			start := g.ContractStartDate(b)
			assert.False(t, start.Before(b.Time), "start %s before birthdate %s", start, b)
			assert.False(t, start.After(today.Time), "start %s after today", start)
		}
	}
}

func TestContractEndDate_Span(t *testing.T) {
	g := newTestGenerator(t, 127)

	for i := 0; i < 500; i++ {
		start := g.ContractStartDate(g.DefaultBirthdate())
		end := g.ContractEndDate(start)

		assert.False(t, end.Before(start.Time), "end %s before start %s", end, start)
		assert.False(t, end.After(start.AddYMD(8, 12, 30).Time), "end %s beyond bound", end)
	}
}

func TestFormDate_Bounds(t *testing.T) {
	g := newTestGenerator(t, 131)
	today := g.Today()

	for i := 0; i < 200; i++ {
		d := g.FormDate()
		days := d.DaysUntil(today)
		assert.GreaterOrEqual(t, days, 1)
		assert.LessOrEqual(t, days, 60)
	}
}
