package platform

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPortFromNameIsStable(t *testing.T) {
	port := portFromName("Pomodoro")
	assert.Equal(t, port, portFromName("Pomodoro"))
	assert.GreaterOrEqual(t, port, 20000)
	assert.LessOrEqual(t, port, 39999)
}

func TestSingleInstance(t *testing.T) {
	name := fmt.Sprintf("pomodoro-test-%d", time.Now().UnixNano())
	guard, err := AcquireSingleInstance(name)
	require.NoError(t, err)
	defer guard.Release()
	assert.Equal(t, addressFor(name), guard.Address())

	_, err = AcquireSingleInstance(name)
	assert.ErrorIs(t, err, ErrAlreadyRunning)

	activated := make(chan struct{}, 1)
	go guard.Serve(func() { activated <- struct{}{} })

	require.NoError(t, Activate(name))
	select {
	case <-activated:
	case <-time.After(2 * time.Second):
		t.Fatal("running instance was not activated")
	}

	require.NoError(t, guard.Release())
	require.NoError(t, guard.Release())
	assert.Error(t, Activate(name))
}
