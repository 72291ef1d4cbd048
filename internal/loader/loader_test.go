package loader

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	"newsadmin/internal/apperr"
	"newsadmin/internal/models"

	"github.com/stretchr/testify/require"
)

// fakeSource запоминает каждый групповой запрос.
type fakeSource struct {
	mu    sync.Mutex
	calls [][]int
	data  map[int]*models.NewsPost
	err   error
}

func (f *fakeSource) GetByIDs(_ context.Context, ids []int) (map[int]*models.NewsPost, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	cp := append([]int(nil), ids...)
	f.calls = append(f.calls, cp)
	if f.err != nil {
		return nil, f.err
	}

	out := make(map[int]*models.NewsPost)
	for _, id := range ids {
		if p, ok := f.data[id]; ok {
			out[id] = p
		}
	}
	return out, nil
}

func newSource() *fakeSource {
	return &fakeSource{data: map[int]*models.NewsPost{
		1: {ID: 1, Title: "one", Type: models.NewsPostType},
		2: {ID: 2, Title: "two", Type: models.NewsPostType},
		3: {ID: 3, Title: "three", Type: models.NewsPostType},
	}}
}

func TestLoadByID_CoalescesConcurrentCalls(t *testing.T) {
	src := newSource()
	l := NewLoaders(src, Options{Wait: 100 * time.Millisecond, MaxBatch: 100})

	requested := []int{1, 2, 1, 2, 1}
	got := make([]*models.NewsPost, len(requested))
	errs := make([]error, len(requested))

	start := make(chan struct{})
	var wg sync.WaitGroup
	for i, id := range requested {
		wg.Add(1)
		go func(i, id int) {
			defer wg.Done()
			<-start
			got[i], errs[i] = l.LoadByID(context.Background(), id)()
		}(i, id)
	}
	close(start)
	wg.Wait()

	require.Len(t, src.calls, 1, "ожидался ровно один групповой запрос")
	ids := src.calls[0]
	sort.Ints(ids)
	require.Equal(t, []int{1, 2}, ids)

	for i, id := range requested {
		require.NoError(t, errs[i])
		require.Equal(t, id, got[i].ID)
	}
}

func TestLoadByID_MissingID(t *testing.T) {
	src := newSource()
	l := NewLoaders(src, Options{Wait: time.Millisecond})

	t1 := l.LoadByID(context.Background(), 3)
	t2 := l.LoadByID(context.Background(), 404)

	p, err := t1()
	require.NoError(t, err)
	require.Equal(t, "three", p.Title)

	_, err = t2()
	require.ErrorIs(t, err, apperr.ErrNotFound)
	require.Len(t, src.calls, 1)
}

func TestLoadByID_SourceErrorReachesEveryCaller(t *testing.T) {
	src := newSource()
	src.err = errors.New("db down")
	l := NewLoaders(src, Options{Wait: time.Millisecond})

	t1 := l.LoadByID(context.Background(), 1)
	t2 := l.LoadByID(context.Background(), 2)

	_, err1 := t1()
	_, err2 := t2()
	require.ErrorContains(t, err1, "db down")
	require.ErrorContains(t, err2, "db down")
}

func TestLoaders_ArePerCycle(t *testing.T) {
	src := newSource()

	for i := 0; i < 2; i++ {
		l := NewLoaders(src, Options{Wait: time.Millisecond})
		_, err := l.LoadByID(context.Background(), 1)()
		require.NoError(t, err)
	}

	require.Len(t, src.calls, 2, "новый цикл запроса не должен видеть кэш предыдущего")
}

func TestIntoFor(t *testing.T) {
	require.Nil(t, For(context.Background()))

	l := NewLoaders(newSource(), Options{})
	ctx := Into(context.Background(), l)
	require.Same(t, l, For(ctx))
}
