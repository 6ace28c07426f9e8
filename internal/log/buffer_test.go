package log

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func lines(entries []Entry) []string {
	if entries == nil {
		return nil
	}
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Line
	}
	return out
}

func add(buf *RingBuffer, values ...string) {
	for _, v := range values {
		buf.Add(Entry{Level: LevelInfo, Line: v})
	}
}

func TestNewRingBuffer_ValidCapacity(t *testing.T) {
	buf := NewRingBuffer(5)
	require.NotNil(t, buf)
	require.Equal(t, 5, buf.capacity)
	require.Equal(t, 0, buf.Len())
}

func TestNewRingBuffer_NonPositiveCapacity(t *testing.T) {
	for _, c := range []int{0, -5} {
		buf := NewRingBuffer(c)
		require.Equal(t, 1, buf.capacity, "capacity %d should normalize to 1", c)
	}
}

func TestRingBuffer_BasicAddGet(t *testing.T) {
	buf := NewRingBuffer(5)
	add(buf, "a", "b")

	require.Equal(t, []string{"a", "b"}, lines(buf.GetLast(2)))
}

func TestRingBuffer_Wraparound(t *testing.T) {
	buf := NewRingBuffer(3)
	add(buf, "a", "b", "c", "d") // "d" overwrites "a"

	require.Equal(t, []string{"b", "c", "d"}, lines(buf.GetLast(3)))
}

func TestRingBuffer_MultipleWraparounds(t *testing.T) {
	buf := NewRingBuffer(2)
	add(buf, "a", "b", "c", "d", "e")

	require.Equal(t, []string{"d", "e"}, lines(buf.GetLast(2)))
}

func TestRingBuffer_GetLast_PartialBuffer(t *testing.T) {
	buf := NewRingBuffer(10)
	add(buf, "a", "b")

	require.Equal(t, []string{"a", "b"}, lines(buf.GetLast(5)))
}

func TestRingBuffer_GetLast_Subset(t *testing.T) {
	buf := NewRingBuffer(5)
	add(buf, "a", "b", "c", "d", "e")

	require.Equal(t, []string{"d", "e"}, lines(buf.GetLast(2)))
}

func TestRingBuffer_GetLast_EmptyAndZero(t *testing.T) {
	buf := NewRingBuffer(5)
	require.Nil(t, buf.GetLast(3))

	add(buf, "a")
	require.Nil(t, buf.GetLast(0))
	require.Nil(t, buf.GetLast(-1))
}

func TestRingBuffer_KeepsLevel(t *testing.T) {
	buf := NewRingBuffer(2)
	buf.Add(Entry{Level: LevelWarn, Line: "w"})

	got := buf.GetLast(1)
	require.Len(t, got, 1)
	require.Equal(t, LevelWarn, got[0].Level)
}

func TestRingBuffer_ClearThenAdd(t *testing.T) {
	buf := NewRingBuffer(3)
	add(buf, "a", "b")
	buf.Clear()
	require.Nil(t, buf.GetLast(3))
	require.Equal(t, 0, buf.Len())

	add(buf, "x", "y")
	require.Equal(t, []string{"x", "y"}, lines(buf.GetLast(2)))
}

func TestRingBuffer_SingleCapacity(t *testing.T) {
	buf := NewRingBuffer(1)
	add(buf, "a", "b", "c")

	require.Equal(t, []string{"c"}, lines(buf.GetLast(1)))
}

func TestRingBuffer_Concurrent(t *testing.T) {
	buf := NewRingBuffer(100)
	var wg sync.WaitGroup

	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 10; j++ {
				add(buf, "entry")
			}
		}()
	}
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 10; j++ {
				_ = buf.GetLast(10)
			}
		}()
	}
	wg.Wait()

	require.Len(t, buf.GetLast(100), 100)
}
