package input

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-room/common"
	"github.com/Carmen-Shannon/oxy-room/engine/movement"
	"github.com/stretchr/testify/assert"
)

func TestMovementKeysMapsWASDAndArrows(t *testing.T) {
	k := NewKeyState()
	k.Press(common.KeyW)
	k.Press(common.KeyLeft)
	assert.Equal(t, movement.Keys{Forward: true, Left: true}, k.MovementKeys())

	k.Release(common.KeyW)
	k.Press(common.KeyDown)
	k.Press(common.KeyD)
	assert.Equal(t, movement.Keys{Back: true, Left: true, Right: true}, k.MovementKeys())

	k.Clear()
	assert.False(t, k.MovementKeys().Any())
	assert.False(t, k.Held(common.KeyD))
}

func TestClickClassification(t *testing.T) {
	assert.True(t, Click{Button: common.MouseButtonLeft}.Primary())
	assert.False(t, Click{Button: common.MouseButtonRight}.Primary())

	assert.True(t, Click{Origin: OriginCanvas}.ReachesViewport())
	assert.True(t, Click{Origin: OriginLockOverlay}.ReachesViewport())
	assert.False(t, Click{Origin: OriginControl}.ReachesViewport())
	assert.Equal(t, "lock_overlay", OriginLockOverlay.String())
}
