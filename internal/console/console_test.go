package console

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"newsadmin/internal/apperr"
	"newsadmin/internal/models"

	"github.com/stretchr/testify/require"
)

const goodToken = "good"

// memAPI — сервер в памяти: новости от новых к старым, удаление только с goodToken.
type memAPI struct {
	mu        sync.Mutex
	posts     []*models.NewsPost
	offsets   []int
	deletes   int
	listErr   error
	overCount int
}

func newMemAPI(n int) *memAPI {
	api := &memAPI{}
	base := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	for id := n; id >= 1; id-- {
		ts := base.Add(time.Duration(id) * time.Minute)
		api.posts = append(api.posts, &models.NewsPost{
			ID: id, Title: fmt.Sprintf("post %d", id), Description: "desc",
			CreatedAt: ts, UpdatedAt: ts, Type: models.NewsPostType,
		})
	}
	return api
}

func (m *memAPI) ListNewsPosts(_ context.Context, limit, offset int) (*models.Page, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.offsets = append(m.offsets, offset)
	if m.listErr != nil {
		return nil, m.listErr
	}

	rows := []*models.NewsPost{}
	for i := offset; i < len(m.posts) && i < offset+limit; i++ {
		rows = append(rows, m.posts[i])
	}
	count := len(m.posts)
	if m.overCount > 0 {
		count = m.overCount
	}
	return &models.Page{Rows: rows, Count: count, Offset: offset, Limit: limit}, nil
}

func (m *memAPI) DeleteNewsPost(_ context.Context, credential string, id int) (json.RawMessage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.deletes++
	if credential != goodToken {
		return nil, apperr.ErrAuth
	}
	for i, p := range m.posts {
		if p.ID == id {
			m.posts = append(m.posts[:i], m.posts[i+1:]...)
			return json.RawMessage(fmt.Sprintf(`{"id":%d,"deleted":true}`, id)), nil
		}
	}
	return nil, apperr.ErrNotFound
}

func (m *memAPI) listCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.offsets)
}

func (m *memAPI) lastOffset() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.offsets[len(m.offsets)-1]
}

type harness struct {
	api     *memAPI
	store   *Store
	view    *View
	notes   []string
	titles  []string
	restore int
}

func newHarness(t *testing.T, api *memAPI, credential string) *harness {
	t.Helper()
	h := &harness{api: api, store: NewStore()}
	actions := NewActions(api, h.store, time.Second)
	caps := NewCapabilities(actions,
		func(msg string) { h.notes = append(h.notes, msg) },
		func(title string) func() {
			h.titles = append(h.titles, title)
			return func() { h.restore++ }
		},
	)
	h.view = NewView(caps, h.store, credential)
	return h
}

func TestFetchPage_Offset(t *testing.T) {
	api := newMemAPI(45)
	h := newHarness(t, api, goodToken)
	actions := NewActions(api, h.store, 0)

	for page := 1; page <= 5; page++ {
		require.NoError(t, actions.FetchPage(context.Background(), page))
		require.Equal(t, (page-1)*PageLimit, api.lastOffset())
		require.Equal(t, (page-1)*PageLimit, h.store.Snapshot().Page.Offset)
	}
}

func TestFetchPage_RejectsNonPositivePage(t *testing.T) {
	api := newMemAPI(3)
	h := newHarness(t, api, goodToken)

	err := NewActions(api, h.store, 0).FetchPage(context.Background(), 0)
	require.ErrorIs(t, err, apperr.ErrValidation)
	require.Zero(t, api.listCalls())
}

func TestFetchPage_FailureKeepsPreviousPage(t *testing.T) {
	api := newMemAPI(12)
	h := newHarness(t, api, goodToken)
	ctx := context.Background()

	require.NoError(t, h.view.Mount(ctx))
	before := h.store.Snapshot()
	require.Equal(t, StatusLoaded, before.Status)

	api.listErr = errors.New("сеть недоступна")
	require.Error(t, h.view.MovePage(ctx, 2))

	after := h.store.Snapshot()
	require.Equal(t, StatusError, after.Status)
	require.Same(t, before.Page, after.Page)
	require.Equal(t, 2, after.CurrentPage)

	var buf bytes.Buffer
	Render(&buf, after)
	require.Contains(t, buf.String(), NoContent)
	require.Contains(t, buf.String(), "сеть недоступна")
}

func TestFetchPage_TimeoutEndsLoading(t *testing.T) {
	store := NewStore()
	api := &blockingAPI{}
	actions := NewActions(api, store, 20*time.Millisecond)

	err := actions.FetchPage(context.Background(), 1)
	require.ErrorIs(t, err, context.DeadlineExceeded)
	require.Equal(t, StatusError, store.Snapshot().Status)
}

type blockingAPI struct{}

func (blockingAPI) ListNewsPosts(ctx context.Context, _, _ int) (*models.Page, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

func (blockingAPI) DeleteNewsPost(ctx context.Context, _ string, _ int) (json.RawMessage, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

// gatedAPI держит ответ для offset 0, пока не закроют release.
type gatedAPI struct {
	entered chan struct{}
	release chan struct{}
}

func (g *gatedAPI) ListNewsPosts(_ context.Context, limit, offset int) (*models.Page, error) {
	if offset == 0 {
		close(g.entered)
		<-g.release
	}
	return &models.Page{
		Rows:   []*models.NewsPost{{ID: offset + 1, Title: "t", Description: "d", Type: models.NewsPostType}},
		Count:  30,
		Offset: offset,
		Limit:  limit,
	}, nil
}

func (g *gatedAPI) DeleteNewsPost(context.Context, string, int) (json.RawMessage, error) {
	return nil, nil
}

func TestFetchPage_StaleResponseDiscarded(t *testing.T) {
	store := NewStore()
	api := &gatedAPI{entered: make(chan struct{}), release: make(chan struct{})}
	actions := NewActions(api, store, time.Second)
	ctx := context.Background()

	done := make(chan error, 1)
	go func() { done <- actions.FetchPage(ctx, 1) }()
	<-api.entered

	require.NoError(t, actions.FetchPage(ctx, 2))
	require.Equal(t, 10, store.Snapshot().Page.Offset)

	close(api.release)
	require.NoError(t, <-done)

	st := store.Snapshot()
	require.Equal(t, StatusLoaded, st.Status)
	require.Equal(t, 10, st.Page.Offset, "поздний ответ страницы 1 не должен затирать страницу 2")
}

func TestDeleteRecord_BlankCredential(t *testing.T) {
	api := newMemAPI(3)
	actions := NewActions(api, NewStore(), 0)

	var gotErr error
	actions.DeleteRecord(context.Background(), "  ", 1,
		func(json.RawMessage) { t.Fatal("onSuccess не должен вызываться") },
		func(err error) { gotErr = err },
	)

	require.ErrorIs(t, gotErr, apperr.ErrAuth)
	require.Zero(t, api.deletes, "запрос не должен уходить")
}

func TestDeleteRecord_PassesPayloadAndDoesNotRefetch(t *testing.T) {
	api := newMemAPI(3)
	actions := NewActions(api, NewStore(), 0)

	var payload json.RawMessage
	actions.DeleteRecord(context.Background(), goodToken, 2,
		func(p json.RawMessage) { payload = p },
		func(err error) { t.Fatalf("onFailure: %v", err) },
	)

	require.JSONEq(t, `{"id":2,"deleted":true}`, string(payload))
	require.Zero(t, api.listCalls())
}

func TestView_MountSetsTitleAndUnmountRestores(t *testing.T) {
	h := newHarness(t, newMemAPI(5), goodToken)

	require.NoError(t, h.view.Mount(context.Background()))
	require.Equal(t, []string{Title}, h.titles)
	require.Equal(t, 1, h.store.Snapshot().CurrentPage)
	require.Equal(t, 0, h.api.lastOffset())

	h.view.Unmount()
	h.view.Unmount()
	require.Equal(t, 1, h.restore)
}

func TestView_RemoveRefetchesCurrentPage(t *testing.T) {
	h := newHarness(t, newMemAPI(25), goodToken)
	ctx := context.Background()

	require.NoError(t, h.view.Mount(ctx))
	require.NoError(t, h.view.MovePage(ctx, 2))
	calls := h.api.listCalls()

	require.NoError(t, h.view.Remove(ctx, 12))
	require.Equal(t, []string{MsgDeleteSuccess}, h.notes)
	require.Equal(t, calls+1, h.api.listCalls())
	require.Equal(t, 10, h.api.lastOffset(), "перезагружается страница 2, не первая")
	require.Equal(t, 24, h.store.Snapshot().Page.Count)
}

func TestView_RemoveLastRowOfPageRendersNoContent(t *testing.T) {
	h := newHarness(t, newMemAPI(21), goodToken)
	ctx := context.Background()

	require.NoError(t, h.view.Mount(ctx))
	require.NoError(t, h.view.MovePage(ctx, 3))
	st := h.store.Snapshot()
	require.Len(t, st.Page.Rows, 1)
	only := st.Page.Rows[0].ID

	require.NoError(t, h.view.Remove(ctx, only))

	st = h.store.Snapshot()
	require.Equal(t, StatusLoaded, st.Status)
	require.Empty(t, st.Page.Rows)
	require.Equal(t, 20, st.Page.Count)
	require.Equal(t, 20, st.Page.Offset)

	var buf bytes.Buffer
	require.NotPanics(t, func() { Render(&buf, st) })
	out := buf.String()
	require.Contains(t, out, NoContent)
	require.Contains(t, out, "Updated Date")
	require.Contains(t, out, "« 1 2 [3] »")
}

func TestView_RemoveMissingLeavesPage(t *testing.T) {
	h := newHarness(t, newMemAPI(5), goodToken)
	ctx := context.Background()

	require.NoError(t, h.view.Mount(ctx))
	before := h.store.Snapshot()
	calls := h.api.listCalls()

	require.NoError(t, h.view.Remove(ctx, 999))

	require.Equal(t, []string{MsgDeleteFailed}, h.notes)
	require.Equal(t, calls, h.api.listCalls())
	require.Same(t, before.Page, h.store.Snapshot().Page)
}

func TestView_RemoveWithBadCredentialTakesFailurePath(t *testing.T) {
	for _, cred := range []string{"", "forged"} {
		h := newHarness(t, newMemAPI(5), cred)
		ctx := context.Background()
		require.NoError(t, h.view.Mount(ctx))

		require.NoError(t, h.view.Remove(ctx, 3))
		require.Equal(t, []string{MsgDeleteFailed}, h.notes, "credential %q", cred)
		require.Len(t, h.store.Snapshot().Page.Rows, 5)
	}
}

func TestPagination(t *testing.T) {
	p := NewPagination(0, 23, 10)
	require.Equal(t, 1, p.Current)
	require.Equal(t, 3, p.Total)
	require.False(t, p.HasPrev())
	require.True(t, p.HasNext())
	require.Equal(t, "« [1] 2 3 »", p.String())

	require.Equal(t, "« 1 [2] 3 »", NewPagination(10, 23, 10).String())
	require.Equal(t, "« [1] »", NewPagination(0, 0, 10).String())
	require.Equal(t, "« 1 … 4 5 [6] 7 8 … 20 »", NewPagination(50, 200, 10).String())
	require.Equal(t, "« 1 … 18 19 [20] »", NewPagination(190, 200, 10).String())
	require.Equal(t, "« 1 … 10 11 [12] »", NewPagination(110, 105, 10).String())
}

func TestPagination_HugeCountStaysShort(t *testing.T) {
	p := NewPagination(0, 2_000_000_000, 10)
	require.Equal(t, 200_000_000, p.Total)
	require.Len(t, visiblePages(p.Current, p.Total), 4)
	require.Equal(t, "« [1] 2 3 … 200000000 »", p.String())
}

func TestRender_FirstPageWithFiveRows(t *testing.T) {
	api := newMemAPI(5)
	api.overCount = 23
	h := newHarness(t, api, goodToken)
	require.NoError(t, h.view.Mount(context.Background()))

	var buf bytes.Buffer
	Render(&buf, h.view.State())
	out := buf.String()

	for _, col := range []string{"Title", "Description", "Updated Date", "Action"} {
		require.Contains(t, out, col)
	}
	require.Contains(t, out, NewRoute)
	require.Contains(t, out, EditRoute(5))
	require.Contains(t, out, "del 5")
	require.Contains(t, out, "« [1] 2 3 »")
	require.NotContains(t, out, NoContent)
}

func TestStore_SubscribeAndFence(t *testing.T) {
	s := NewStore()
	var seen []Status
	unsubscribe := s.Subscribe(func(st State) { seen = append(seen, st.Status) })

	first := s.BeginFetch()
	second := s.BeginFetch()
	require.False(t, s.ResolveFetch(first, &models.Page{}))
	require.False(t, s.FailFetch(first, errors.New("x")))
	require.True(t, s.ResolveFetch(second, &models.Page{}))
	require.NotNil(t, s.Snapshot().Page.Rows)

	unsubscribe()
	s.BeginFetch()
	require.Equal(t, []Status{StatusLoading, StatusLoading, StatusLoaded}, seen)
}

func TestREPL_NextAfterFailedMoveStartsFromShownPage(t *testing.T) {
	h := newHarness(t, newMemAPI(23), goodToken)
	ctx := context.Background()
	var out bytes.Buffer
	r := NewREPL(h.view, h.store, strings.NewReader(""), &out)

	require.NoError(t, h.view.Mount(ctx))

	h.api.listErr = errors.New("сеть недоступна")
	require.Error(t, h.view.MovePage(ctx, 2))
	require.Equal(t, "« [1] 2 3 »", paginationFor(h.store.Snapshot()).String())
	h.api.listErr = nil

	_, err := r.exec(ctx, []string{"n"})
	require.NoError(t, err)
	require.Equal(t, 10, h.api.lastOffset(), "после ошибки n ведёт на страницу 2, а не 3")

	h.api.listErr = errors.New("сеть недоступна")
	require.Error(t, h.view.MovePage(ctx, 3))
	h.api.listErr = nil

	_, err = r.exec(ctx, []string{"p"})
	require.NoError(t, err)
	require.Equal(t, 0, h.api.lastOffset(), "p отступает от показанной страницы 2")

	calls := h.api.listCalls()
	_, err = r.exec(ctx, []string{"p"})
	require.NoError(t, err)
	require.Equal(t, calls, h.api.listCalls())
	require.Contains(t, out.String(), "это первая страница")
}

func TestREPL_Commands(t *testing.T) {
	h := newHarness(t, newMemAPI(23), goodToken)
	in := strings.NewReader("n\ng 3\nn\nd 1\nfoo\ng x\nq\n")
	var out bytes.Buffer

	require.NoError(t, NewREPL(h.view, h.store, in, &out).Run(context.Background()))

	s := out.String()
	require.Contains(t, s, "« [1] 2 3 »")
	require.Contains(t, s, "« 1 [2] 3 »")
	require.Contains(t, s, "« 1 2 [3] »")
	require.Contains(t, s, "это последняя страница")
	require.Contains(t, s, "неизвестная команда")
	require.Contains(t, s, "не положительное число")
	require.Equal(t, []string{MsgDeleteSuccess}, h.notes)
	require.Equal(t, 1, h.restore)
}
