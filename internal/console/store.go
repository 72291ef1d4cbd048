// Package console — терминальная админка новостей: состояние списка, действия,
// постраничное представление и REPL поверх него.
package console

import (
	"sync"

	"newsadmin/internal/models"
)

// PageLimit — фиксированный размер страницы админки.
const PageLimit = 10

type Status int

const (
	StatusLoading Status = iota
	StatusLoaded
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusLoading:
		return "loading"
	case StatusLoaded:
		return "loaded"
	case StatusError:
		return "error"
	default:
		return "unknown"
	}
}

// State — снимок состояния списка. Page при ошибке остаётся от последней удачной загрузки.
type State struct {
	Status      Status
	Page        *models.Page
	Err         error
	CurrentPage int
}

// Store владеет состоянием списка. Каждая загрузка получает номер,
// ответ с номером меньше последнего выданного отбрасывается.
type Store struct {
	mu     sync.Mutex
	state  State
	seq    uint64
	nextID int
	subs   map[int]func(State)
}

func NewStore() *Store {
	return &Store{
		state: State{
			Status:      StatusLoading,
			Page:        &models.Page{Rows: []*models.NewsPost{}, Limit: PageLimit},
			CurrentPage: 1,
		},
		subs: make(map[int]func(State)),
	}
}

// Snapshot возвращает копию состояния.
func (s *Store) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Subscribe вызывает fn на каждый переход состояния. Возвращает отписку.
func (s *Store) Subscribe(fn func(State)) func() {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

// SetCurrentPage запоминает страницу, на которой стоит пользователь.
func (s *Store) SetCurrentPage(page int) {
	s.mu.Lock()
	s.state.CurrentPage = page
	s.mu.Unlock()
}

// BeginFetch переводит список в Loading и выдаёт номер загрузки.
func (s *Store) BeginFetch() uint64 {
	s.mu.Lock()
	s.seq++
	seq := s.seq
	s.state.Status = StatusLoading
	s.state.Err = nil
	snap := s.state
	s.mu.Unlock()

	s.publish(snap)
	return seq
}

// ResolveFetch целиком заменяет Page. false — ответ устарел и отброшен.
func (s *Store) ResolveFetch(seq uint64, page *models.Page) bool {
	s.mu.Lock()
	if seq < s.seq {
		s.mu.Unlock()
		return false
	}
	if page.Rows == nil {
		page.Rows = []*models.NewsPost{}
	}
	s.state.Status = StatusLoaded
	s.state.Page = page
	s.state.Err = nil
	snap := s.state
	s.mu.Unlock()

	s.publish(snap)
	return true
}

// FailFetch переводит список в Error, не трогая Page. false — ответ устарел.
func (s *Store) FailFetch(seq uint64, err error) bool {
	s.mu.Lock()
	if seq < s.seq {
		s.mu.Unlock()
		return false
	}
	s.state.Status = StatusError
	s.state.Err = err
	snap := s.state
	s.mu.Unlock()

	s.publish(snap)
	return true
}

func (s *Store) publish(st State) {
	s.mu.Lock()
	subs := make([]func(State), 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	s.mu.Unlock()

	for _, fn := range subs {
		fn(st)
	}
}
