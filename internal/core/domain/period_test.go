package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vitalis-hms/clinic_ledger_app/internal/apperrors"
	"github.com/vitalis-hms/clinic_ledger_app/internal/core/domain"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func mustPeriod(t *testing.T, start, end time.Time) domain.Period {
	t.Helper()
	p, err := domain.NewPeriod(start, end)
	require.NoError(t, err)
	return p
}

func TestNewPeriod(t *testing.T) {
	start := date(2026, time.March, 1)
	end := date(2026, time.March, 31)

	p, err := domain.NewPeriod(start, end)
	require.NoError(t, err)
	assert.True(t, p.Start().Equal(start))
	assert.True(t, p.End().Equal(end))
}

func TestNewPeriod_Invalid(t *testing.T) {
	_, err := domain.NewPeriod(time.Time{}, date(2026, time.March, 31))
	assert.ErrorIs(t, err, apperrors.ErrInvalidPeriod)

	_, err = domain.NewPeriod(date(2026, time.April, 1), date(2026, time.March, 1))
	assert.ErrorIs(t, err, apperrors.ErrInvalidPeriod)
}

func TestNewPeriod_SingleInstant(t *testing.T) {
	d := date(2026, time.March, 15)
	p, err := domain.NewPeriod(d, d)
	require.NoError(t, err)
	assert.True(t, p.Contains(d))
	assert.Equal(t, 0, p.DurationInDays())
}

func TestCurrentMonth(t *testing.T) {
	now := time.Date(2026, time.February, 14, 15, 30, 0, 0, time.UTC)
	p := domain.CurrentMonth(now)

	assert.True(t, p.Start().Equal(date(2026, time.February, 1)))
	assert.True(t, p.Contains(now))
	assert.True(t, p.Contains(time.Date(2026, time.February, 28, 23, 59, 59, 0, time.UTC)))
	assert.False(t, p.Contains(date(2026, time.March, 1)))
}

func TestPreviousMonth_AcrossYearBoundary(t *testing.T) {
	now := date(2026, time.January, 10)
	p := domain.PreviousMonth(now)

	assert.True(t, p.Start().Equal(date(2025, time.December, 1)))
	assert.True(t, p.Contains(date(2025, time.December, 31)))
	assert.False(t, p.Contains(date(2026, time.January, 1)))
}

func TestCurrentYear(t *testing.T) {
	now := date(2026, time.June, 15)
	p := domain.CurrentYear(now)

	assert.True(t, p.Start().Equal(date(2026, time.January, 1)))
	assert.True(t, p.Contains(date(2026, time.December, 31)))
	assert.False(t, p.Contains(date(2027, time.January, 1)))
}

func TestPeriod_Contains_BoundsInclusive(t *testing.T) {
	p := mustPeriod(t, date(2026, time.March, 1), date(2026, time.March, 31))

	assert.True(t, p.Contains(date(2026, time.March, 1)))
	assert.True(t, p.Contains(date(2026, time.March, 31)))
	assert.False(t, p.Contains(date(2026, time.February, 28)))
	assert.False(t, p.Contains(date(2026, time.April, 1)))
}

func TestPeriod_Overlaps(t *testing.T) {
	march := mustPeriod(t, date(2026, time.March, 1), date(2026, time.March, 31))
	april := mustPeriod(t, date(2026, time.April, 1), date(2026, time.April, 30))
	midMarchToMidApril := mustPeriod(t, date(2026, time.March, 15), date(2026, time.April, 15))
	touching := mustPeriod(t, date(2026, time.March, 31), date(2026, time.April, 5))

	assert.False(t, march.Overlaps(april))
	assert.True(t, march.Overlaps(midMarchToMidApril))
	assert.True(t, midMarchToMidApril.Overlaps(march))
	// Shared boundary instant counts as overlap for closed intervals
	assert.True(t, march.Overlaps(touching))
}

func TestPeriod_DurationInDays(t *testing.T) {
	p := mustPeriod(t, date(2026, time.March, 1), date(2026, time.March, 31))
	assert.Equal(t, 30, p.DurationInDays())
}

func TestPeriod_Equals(t *testing.T) {
	a := mustPeriod(t, date(2026, time.March, 1), date(2026, time.March, 31))
	b := mustPeriod(t, date(2026, time.March, 1), date(2026, time.March, 31))
	c := mustPeriod(t, date(2026, time.March, 2), date(2026, time.March, 31))

	assert.True(t, a.Equals(b))
	assert.False(t, a.Equals(c))
}
