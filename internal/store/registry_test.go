package store

import (
	"fmt"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fyrsmithlabs/flowmock/internal/model"
)

func TestRegistryInstance(t *testing.T) {
	r := NewRegistry()

	t.Run("first reference creates the store", func(t *testing.T) {
		st := r.Instance("suite-a")
		require.NotNil(t, st)
		assert.Equal(t, "suite-a", st.InstanceID())
		assert.Equal(t, 1, r.Len())
	})

	t.Run("same id returns the same store", func(t *testing.T) {
		st := r.Instance("suite-a")
		st.PutDAG(model.DAG{DAGID: "etl"})

		again := r.Instance("suite-a")
		assert.Same(t, st, again)
		_, ok := again.GetDAG("etl")
		assert.True(t, ok)
	})

	t.Run("different ids never share state", func(t *testing.T) {
		other := r.Instance("suite-b")
		_, ok := other.GetDAG("etl")
		assert.False(t, ok)
	})
}

func TestRegistryLookup(t *testing.T) {
	r := NewRegistry()

	_, ok := r.Lookup("cold")
	assert.False(t, ok)
	assert.Equal(t, 0, r.Len(), "lookup must not create")

	r.Instance("warm")
	st, ok := r.Lookup("warm")
	require.True(t, ok)
	assert.Equal(t, "warm", st.InstanceID())
}

func TestRegistryEntry(t *testing.T) {
	r := NewRegistry()
	r.Instance("suite-a")

	e, ok := r.Entry("suite-a")
	require.True(t, ok)
	assert.Equal(t, "suite-a", e.ID)
	assert.False(t, e.CreatedAt.IsZero())

	_, err := uuid.Parse(e.UUID)
	assert.NoError(t, err)

	_, ok = r.Entry("absent")
	assert.False(t, ok)
}

func TestRegistryStop(t *testing.T) {
	r := NewRegistry()
	st := r.Instance("suite-a")
	st.PutDAG(model.DAG{DAGID: "etl"})

	require.True(t, r.Stop("suite-a"))
	assert.False(t, r.Stop("suite-a"))

	// A later reference starts cold.
	fresh := r.Instance("suite-a")
	assert.NotSame(t, st, fresh)
	_, ok := fresh.GetDAG("etl")
	assert.False(t, ok)
}

func TestRegistryList(t *testing.T) {
	r := NewRegistry()
	r.Instance("zeta")
	r.Instance("alpha")
	r.Instance("mid")

	assert.Equal(t, []string{"alpha", "mid", "zeta"}, r.List())
}

func TestRegistryConcurrentInstance(t *testing.T) {
	r := NewRegistry()

	var wg sync.WaitGroup
	stores := make([]*InstanceStore, 50)
	for i := range stores {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			stores[i] = r.Instance("shared")
		}(i)
	}
	wg.Wait()

	for i := 1; i < len(stores); i++ {
		require.Same(t, stores[0], stores[i], fmt.Sprintf("goroutine %d got a different store", i))
	}
	assert.Equal(t, 1, r.Len())
}
