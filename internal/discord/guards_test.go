package discord

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/osse101/CreadorsBot_Go/internal/domain"
)

func TestRequireControlChannel(t *testing.T) {
	cc := resolvedControl()

	assert.NoError(t, RequireControlChannel(newInteraction(CommandTwitch, testChannelID, false), cc))
	assert.ErrorIs(t, RequireControlChannel(newInteraction(CommandTwitch, otherChannel, false), cc), domain.ErrWrongChannel)

	err := RequireControlChannel(newInteraction(CommandTwitch, testChannelID, false), &ControlContext{})
	assert.ErrorIs(t, err, domain.ErrWrongChannel)
	assert.ErrorIs(t, err, domain.ErrChannelUnresolved)

	assert.ErrorIs(t, RequireControlChannel(newInteraction(CommandTwitch, testChannelID, false), nil), domain.ErrChannelUnresolved)
}

func TestRequireAdministrator(t *testing.T) {
	assert.NoError(t, RequireAdministrator(newInteraction(CommandClearDB, testChannelID, true), nil))
	assert.ErrorIs(t, RequireAdministrator(newInteraction(CommandClearDB, testChannelID, false), nil), domain.ErrPermissionDenied)

	dm := newInteraction(CommandClearDB, testChannelID, true)
	dm.Member = nil
	assert.ErrorIs(t, RequireAdministrator(dm, nil), domain.ErrPermissionDenied)
}

func TestRejectionReason(t *testing.T) {
	cc := &ControlContext{}
	err := RequireControlChannel(newInteraction(CommandTwitch, testChannelID, false), cc)
	assert.Equal(t, ReasonChannelUnresolved, rejectionReason(err))
	assert.Equal(t, ReasonWrongChannel, rejectionReason(domain.ErrWrongChannel))
	assert.Equal(t, ReasonPermissionDenied, rejectionReason(domain.ErrPermissionDenied))
}
