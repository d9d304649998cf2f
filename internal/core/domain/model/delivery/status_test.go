package delivery_test

import (
	"testing"

	"lastmile/internal/core/domain/model/delivery"
	"lastmile/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStatus(t *testing.T) {
	for _, s := range delivery.AllStatuses() {
		parsed, err := delivery.ParseStatus(s.String())
		require.NoError(t, err)
		assert.Equal(t, s, parsed)
	}

	parsed, err := delivery.ParseStatus(" in_transit ")
	require.NoError(t, err)
	assert.Equal(t, delivery.InTransit, parsed)

	_, err = delivery.ParseStatus("LOST")
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)

	_, err = delivery.ParseStatus("UNKNOWN")
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestStatus_TransitionTo(t *testing.T) {
	tests := []struct {
		from    delivery.Status
		to      delivery.Status
		allowed bool
	}{
		{delivery.Pending, delivery.Cancelled, true},
		{delivery.Pending, delivery.InTransit, false},
		{delivery.Pending, delivery.Delivered, false},
		{delivery.Assigned, delivery.PickingUp, true},
		{delivery.Assigned, delivery.InTransit, true},
		{delivery.PickingUp, delivery.InTransit, true},
		{delivery.InTransit, delivery.Delivered, true},
		{delivery.InTransit, delivery.Pending, false},
		{delivery.Hidden, delivery.Delivered, true},
		{delivery.Hidden, delivery.Cancelled, true},
		{delivery.Problem, delivery.Pending, true},
		{delivery.Problem, delivery.InTransit, true},
		{delivery.Delivered, delivery.Pending, false},
		{delivery.Delivered, delivery.Problem, false},
		{delivery.Cancelled, delivery.Pending, false},
	}

	for _, tt := range tests {
		t.Run(tt.from.String()+"->"+tt.to.String(), func(t *testing.T) {
			got, err := tt.from.TransitionTo(tt.to)

			if tt.allowed {
				require.NoError(t, err)
				assert.Equal(t, tt.to, got)
				return
			}
			require.ErrorIs(t, err, errs.ErrInvalidState)
			assert.Equal(t, delivery.Unknown, got)
		})
	}
}

func TestStatus_TransitionTo_SameStatusIsNoop(t *testing.T) {
	for _, s := range delivery.AllStatuses() {
		got, err := s.TransitionTo(s)
		require.NoError(t, err)
		assert.Equal(t, s, got)
	}
}

func TestStatus_TransitionTo_DedicatedTargets(t *testing.T) {
	_, err := delivery.Pending.TransitionTo(delivery.Assigned)
	require.ErrorIs(t, err, errs.ErrInvalidState)
	assert.Contains(t, err.Error(), delivery.ErrStatusRequiresDedicatedOperation.Error())

	_, err = delivery.InTransit.TransitionTo(delivery.Hidden)
	require.ErrorIs(t, err, errs.ErrInvalidState)

	_, err = delivery.InTransit.TransitionTo(delivery.Unknown)
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestStatus_Assign(t *testing.T) {
	for _, s := range []delivery.Status{delivery.Pending, delivery.Assigned, delivery.Problem} {
		got, err := s.Assign(false)
		require.NoError(t, err, s.String())
		assert.Equal(t, delivery.Assigned, got)
	}

	for _, s := range []delivery.Status{delivery.PickingUp, delivery.InTransit} {
		_, err := s.Assign(false)
		require.ErrorIs(t, err, errs.ErrInvalidState, s.String())
		assert.Contains(t, err.Error(), delivery.ErrReassignmentNotConfirmed.Error())

		got, err := s.Assign(true)
		require.NoError(t, err)
		assert.Equal(t, delivery.Assigned, got)
	}

	for _, s := range []delivery.Status{delivery.Hidden, delivery.Delivered, delivery.Cancelled} {
		_, err := s.Assign(true)
		require.ErrorIs(t, err, errs.ErrInvalidState, s.String())
	}
}

func TestStatus_CancelAndProblemFromEveryNonTerminalState(t *testing.T) {
	for _, s := range delivery.AllStatuses() {
		if s.IsTerminal() {
			continue
		}
		for _, target := range []delivery.Status{delivery.Cancelled, delivery.Problem} {
			if s == target {
				continue
			}
			got, err := s.TransitionTo(target)
			require.NoError(t, err, "%s -> %s", s, target)
			assert.Equal(t, target, got)
		}
	}
}

func TestStatus_Hide(t *testing.T) {
	for _, s := range delivery.AllStatuses() {
		got, err := s.Hide()
		if s == delivery.Assigned || s == delivery.InTransit {
			require.NoError(t, err)
			assert.Equal(t, delivery.Hidden, got)
			continue
		}
		require.ErrorIs(t, err, errs.ErrInvalidState, s.String())
	}
}

func TestStatus_Classification(t *testing.T) {
	assert.True(t, delivery.Delivered.IsTerminal())
	assert.True(t, delivery.Cancelled.IsTerminal())
	assert.False(t, delivery.Problem.IsTerminal())

	assert.True(t, delivery.Problem.IsActive())
	assert.False(t, delivery.Hidden.IsActive())

	for _, s := range delivery.AllStatuses() {
		if s.IsTerminal() {
			for _, target := range delivery.AllStatuses() {
				assert.False(t, s.CanTransitionTo(target), "%s -> %s", s, target)
			}
		}
	}
}
