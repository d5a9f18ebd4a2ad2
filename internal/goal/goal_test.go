package goal_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/wealthwise/internal/calendar"
	"github.com/MrJamesThe3rd/wealthwise/internal/goal"
)

func newGoal(target, current int64) goal.Goal {
	return goal.Goal{
		ID:       "g1",
		Name:     "New iPhone",
		Target:   decimal.NewFromInt(target),
		Current:  decimal.NewFromInt(current),
		Deadline: calendar.NewDate(2024, time.March, 1),
		Icon:     "📱",
	}
}

func TestGoal_Progress(t *testing.T) {
	tests := []struct {
		name    string
		goal    goal.Goal
		want    int64
		wantHit bool
	}{
		{"Partial", newGoal(1200, 450), 38, false},
		{"Exact", newGoal(1000, 1000), 100, true},
		{"OverfundedClamps", newGoal(1000, 1500), 100, true},
		{"Empty", newGoal(1000, 0), 0, false},
		{"ZeroTarget", newGoal(0, 0), 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.goal.Progress())
			assert.Equal(t, tt.wantHit, tt.goal.Completed())
		})
	}
}

func TestGoal_Contribute(t *testing.T) {
	t.Run("Adds", func(t *testing.T) {
		got, err := newGoal(1200, 450).Contribute(decimal.NewFromInt(100))
		require.NoError(t, err)
		assert.True(t, got.Current.Equal(decimal.NewFromInt(550)))
	})

	t.Run("ClampsAtTarget", func(t *testing.T) {
		got, err := newGoal(1200, 1100).Contribute(decimal.NewFromInt(500))
		require.NoError(t, err)
		assert.True(t, got.Current.Equal(decimal.NewFromInt(1200)))
		assert.True(t, got.Completed())
	})

	t.Run("RejectsNonPositive", func(t *testing.T) {
		g := newGoal(1200, 450)

		got, err := g.Contribute(decimal.Zero)
		assert.ErrorIs(t, err, goal.ErrInvalid)
		assert.Equal(t, g, got)

		_, err = g.Contribute(decimal.NewFromInt(-5))
		assert.ErrorIs(t, err, goal.ErrInvalid)
	})
}

func TestGoal_RemainingAndDaysLeft(t *testing.T) {
	g := newGoal(1200, 450)

	assert.True(t, g.Remaining().Equal(decimal.NewFromInt(750)))
	assert.True(t, newGoal(100, 150).Remaining().IsZero())

	assert.Equal(t, 10, g.DaysLeft(calendar.NewDate(2024, time.February, 20)))
	assert.Equal(t, -1, g.DaysLeft(calendar.NewDate(2024, time.March, 2)))
}

func TestParams_Validate(t *testing.T) {
	deadline := calendar.NewDate(2026, time.December, 31)

	tests := []struct {
		name    string
		params  goal.Params
		wantErr bool
	}{
		{"Valid", goal.Params{Name: "House", Target: decimal.NewFromInt(50000), Deadline: deadline}, false},
		{"MissingName", goal.Params{Target: decimal.NewFromInt(50000), Deadline: deadline}, true},
		{"ZeroTarget", goal.Params{Name: "House", Deadline: deadline}, true},
		{"NegativeCurrent", goal.Params{Name: "House", Target: decimal.NewFromInt(10), Current: decimal.NewFromInt(-1), Deadline: deadline}, true},
		{"CurrentAboveTarget", goal.Params{Name: "House", Target: decimal.NewFromInt(10), Current: decimal.NewFromInt(11), Deadline: deadline}, true},
		{"MissingDeadline", goal.Params{Name: "House", Target: decimal.NewFromInt(10)}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.params.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, goal.ErrInvalid)
				return
			}

			assert.NoError(t, err)
		})
	}
}

func TestParams_New_DefaultsIcon(t *testing.T) {
	g := goal.Params{Name: " Car ", Target: decimal.NewFromInt(100), Deadline: calendar.NewDate(2025, time.June, 30)}.New("id-1")

	assert.Equal(t, "id-1", g.ID)
	assert.Equal(t, "Car", g.Name)
	assert.Equal(t, goal.DefaultIcon, g.Icon)
}
