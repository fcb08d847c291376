package session

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"grocery-voice-ledger/command"
	"grocery-voice-ledger/extractor"
	"grocery-voice-ledger/lexicon"
	"grocery-voice-ledger/normalizer"
)

func newTestMachine(t *testing.T, wakeDistance int) Interface {
	t.Helper()

	lex := lexicon.Default()

	ex, err := extractor.New(&extractor.Config{Lexicon: lex})
	require.NoError(t, err)

	cl, err := command.New(&command.Config{Extractor: ex})
	require.NoError(t, err)

	m, err := New(&Config{Classifier: cl, Lexicon: lex, WakeMaxDistance: wakeDistance})
	require.NoError(t, err)

	return m
}

func step(t *testing.T, m Interface, st State, line string) (command.Command, State, error) {
	t.Helper()

	return m.Step(st, normalizer.Normalize(line))
}

func TestNew(t *testing.T) {
	_, err := New(nil)
	assert.Error(t, err)

	_, err = New(&Config{Lexicon: lexicon.Default()})
	assert.Error(t, err)
}

func TestAsleep(t *testing.T) {
	m := newTestMachine(t, 0)

	t.Run("wake phrase activates the session", func(t *testing.T) {
		for _, line := range []string{"hello device", "hey device please", "ok wake up now", "start listening"} {
			cmd, next, err := step(t, m, Start(), line)
			require.NoError(t, err)
			assert.Equal(t, command.KindWake, cmd.Kind, line)
			assert.Equal(t, Active(), next, line)
		}
	})

	t.Run("ledger commands are ignored while asleep", func(t *testing.T) {
		for _, line := range []string{"2 kilo aloo", "delete all", "update last to 3 kilo aloo", "milk", "random chatter"} {
			cmd, next, err := step(t, m, Start(), line)
			require.NoError(t, err)
			assert.Equal(t, command.KindNone, cmd.Kind, line)
			assert.False(t, cmd.Mutates(), line)
			assert.Equal(t, Start(), next, line)
		}
	})

	t.Run("exit is honored while asleep", func(t *testing.T) {
		cmd, next, err := step(t, m, Start(), "goodbye")
		require.NoError(t, err)
		assert.Equal(t, command.KindExit, cmd.Kind)
		assert.True(t, next.Terminated())
	})

	t.Run("near miss does not wake without tolerance", func(t *testing.T) {
		cmd, next, err := step(t, m, Start(), "hello devise")
		require.NoError(t, err)
		assert.Equal(t, command.KindNone, cmd.Kind)
		assert.Equal(t, Start(), next)
	})
}

func TestFuzzyWake(t *testing.T) {
	m := newTestMachine(t, 1)

	cmd, next, err := step(t, m, Start(), "um hello devise")
	require.NoError(t, err)
	assert.Equal(t, command.KindWake, cmd.Kind)
	assert.Equal(t, Active(), next)

	cmd, _, err = step(t, m, Start(), "hello there")
	require.NoError(t, err)
	assert.Equal(t, command.KindNone, cmd.Kind)
}

func TestActive(t *testing.T) {
	m := newTestMachine(t, 0)

	t.Run("commands keep the session active", func(t *testing.T) {
		cmd, next, err := step(t, m, Active(), "2 kilo aloo")
		require.NoError(t, err)
		assert.Equal(t, command.KindAddItem, cmd.Kind)
		assert.Equal(t, Active(), next)
	})

	t.Run("wake phrases are not commands once active", func(t *testing.T) {
		cmd, next, err := step(t, m, Active(), "hello device")
		require.Error(t, err)
		assert.True(t, errors.Is(err, command.ErrUnrecognized))
		assert.Equal(t, command.KindAddItem, cmd.Kind)
		assert.Equal(t, Active(), next)
	})

	t.Run("exit takes priority over every command", func(t *testing.T) {
		cmd, next, err := step(t, m, Active(), "delete all and exit")
		require.NoError(t, err)
		assert.Equal(t, command.KindExit, cmd.Kind)
		assert.True(t, next.Terminated())
	})

	t.Run("classification errors leave the session active", func(t *testing.T) {
		_, next, err := step(t, m, Active(), "delete")
		require.Error(t, err)
		assert.Equal(t, Active(), next)
	})
}

func TestInteractiveUpdate(t *testing.T) {
	m := newTestMachine(t, 0)

	cmd, next, err := step(t, m, Active(), "update aachar")
	require.NoError(t, err)
	assert.Equal(t, command.KindUpdateNamedInteractive, cmd.Kind)
	assert.Equal(t, AwaitingUpdate("aachar"), next)
	assert.Equal(t, "awaiting_update(aachar)", next.String())

	t.Run("parsed answer updates the pending target", func(t *testing.T) {
		cmd, after, err := step(t, m, next, "two kilo achar")
		require.NoError(t, err)
		assert.Equal(t, command.Command{
			Kind:   command.KindUpdateNamedTo,
			Target: "aachar",
			Entry:  extractor.Entry{Quantity: 2, Unit: "kg", Item: "achar", Path: extractor.PathNumberFirst},
		}, cmd)
		assert.Equal(t, Active(), after)
	})

	t.Run("failed answer still clears the pending update", func(t *testing.T) {
		_, after, err := step(t, m, next, "no idea")
		require.Error(t, err)
		assert.True(t, errors.Is(err, command.ErrExtractionFailed))
		assert.Equal(t, Active(), after)
	})

	t.Run("answer is not classified as a command", func(t *testing.T) {
		cmd, after, err := step(t, m, next, "delete last")
		require.Error(t, err)
		assert.NotEqual(t, command.KindDeleteLast, cmd.Kind)
		assert.Equal(t, Active(), after)
	})

	t.Run("empty answer keeps waiting", func(t *testing.T) {
		cmd, after, err := step(t, m, next, "")
		require.NoError(t, err)
		assert.Equal(t, command.KindNone, cmd.Kind)
		assert.Equal(t, next, after)
	})

	t.Run("exit ends the session while waiting", func(t *testing.T) {
		cmd, after, err := step(t, m, next, "exit")
		require.NoError(t, err)
		assert.Equal(t, command.KindExit, cmd.Kind)
		assert.True(t, after.Terminated())
	})
}

func TestTerminated(t *testing.T) {
	m := newTestMachine(t, 0)

	cmd, next, err := step(t, m, State{Phase: PhaseTerminated}, "hello device")
	require.NoError(t, err)
	assert.Equal(t, command.KindNone, cmd.Kind)
	assert.True(t, next.Terminated())
}
