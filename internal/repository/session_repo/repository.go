package session_repo

import (
	"context"
	"log"
	"sync"
	"time"

	"gradescope_proxy/internal/apperr"
	"gradescope_proxy/internal/model"
	"gradescope_proxy/internal/repository"
	"gradescope_proxy/internal/upstream"
	"gradescope_proxy/pkg/token"
)

const (
	// DefaultIdleTimeout - через сколько неактивная сессия удаляется
	DefaultIdleTimeout = 30 * time.Minute
	// DefaultSweepInterval - периодичность очистки
	DefaultSweepInterval = 60 * time.Second
)

// Реестр сессий в памяти процесса. Все операции под одним мьютексом.
type repo struct {
	mtx         sync.Mutex
	entries     map[string]*model.SessionEntry
	idleTimeout time.Duration
	nowFunc     func() time.Time
	newToken    func() string
}

func NewSessionRepository(idleTimeout time.Duration) repository.SessionRepository {
	return newRepo(idleTimeout, time.Now, token.NewSessionToken)
}

func newRepo(idleTimeout time.Duration, now func() time.Time, newToken func() string) *repo {
	if idleTimeout <= 0 {
		idleTimeout = DefaultIdleTimeout
	}
	return &repo{
		entries:     make(map[string]*model.SessionEntry),
		idleTimeout: idleTimeout,
		nowFunc:     now,
		newToken:    newToken,
	}
}

// Create - сохраняет сессию под новым токеном и возвращает токен.
// Токен генерируется заново, пока не окажется свободным.
func (r *repo) Create(session *upstream.Session, ownerEmail string) (string, error) {
	if session == nil {
		return "", apperr.New(apperr.KindInternal, "nil upstream session")
	}

	r.mtx.Lock()
	defer r.mtx.Unlock()

	tok := r.newToken()
	for {
		if _, taken := r.entries[tok]; !taken && tok != "" {
			break
		}
		tok = r.newToken()
	}

	now := r.nowFunc()
	r.entries[tok] = &model.SessionEntry{
		Token:      tok,
		OwnerEmail: ownerEmail,
		Upstream:   session,
		CreatedAt:  now,
		LastActive: now,
	}
	return tok, nil
}

// Get - возвращает запись и продлевает её (скользящее окно).
// Запись, простоявшая дольше порога, считается истёкшей даже до очистки.
func (r *repo) Get(tok string) (model.SessionEntry, error) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	entry, ok := r.entries[tok]
	if !ok {
		return model.SessionEntry{}, apperr.New(apperr.KindInvalidSession, "invalid or expired session")
	}

	now := r.nowFunc()
	if r.expired(entry, now) {
		r.removeLocked(tok, entry)
		return model.SessionEntry{}, apperr.New(apperr.KindInvalidSession, "invalid or expired session")
	}

	entry.LastActive = now
	return *entry, nil
}

// Revoke - удаляет запись и закрывает upstream сессию. Идемпотентна.
func (r *repo) Revoke(tok string) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	if entry, ok := r.entries[tok]; ok {
		r.removeLocked(tok, entry)
	}
}

// Sweep - удаляет все записи, неактивные дольше порога. Возвращает их количество.
func (r *repo) Sweep() int {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	now := r.nowFunc()
	count := 0
	for tok, entry := range r.entries {
		if r.expired(entry, now) {
			r.removeLocked(tok, entry)
			count++
		}
	}
	return count
}

// Run запускает периодическую очистку до отмены ctx.
func (r *repo) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = DefaultSweepInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := r.Sweep(); n > 0 {
				log.Printf("[sessions] swept %d idle sessions, %d active", n, r.Count())
			}
		}
	}
}

func (r *repo) Count() int {
	r.mtx.Lock()
	defer r.mtx.Unlock()
	return len(r.entries)
}

func (r *repo) expired(entry *model.SessionEntry, now time.Time) bool {
	return now.Sub(entry.LastActive) > r.idleTimeout
}

// removeLocked удаляет запись и закрывает сессию вместе с ней. Вызывать под mtx.
func (r *repo) removeLocked(tok string, entry *model.SessionEntry) {
	delete(r.entries, tok)
	entry.Upstream.Close()
}
