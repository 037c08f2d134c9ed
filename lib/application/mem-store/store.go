// Package memstore keeps applications in process memory. The row lock of the
// SQL store is replaced by a keyed mutex on the (candidate, job) pair.
package memstore

import (
	"context"
	"fmt"
	applicationstore "recruit-backend/lib/application/store"
	"recruit-backend/lib/utils/lock"
	"recruit-backend/models"
	applicationapimodels "recruit-backend/models/api/application"
	dbmodels "recruit-backend/models/db"
	"sort"
	"sync"
	"time"

	"github.com/pkg/errors"
)

const defaultLockWait = 5 * time.Second

type Store struct {
	mu           sync.RWMutex
	lastID       int64
	applications map[int64]dbmodels.Application
	answers      map[int64][]dbmodels.AnswerRecord
	candidates   map[int64]dbmodels.Candidate
	jobs         map[int64]dbmodels.Job
	locks        lock.Keyed
	LockWait     time.Duration
}

func New() *Store {
	return &Store{
		applications: map[int64]dbmodels.Application{},
		answers:      map[int64][]dbmodels.AnswerRecord{},
		candidates:   map[int64]dbmodels.Candidate{},
		jobs:         map[int64]dbmodels.Job{},
		LockWait:     defaultLockWait,
	}
}

// Provider returns the autocommit handle of the store.
func (s *Store) Provider() applicationstore.Provider {
	return &handle{s: s}
}

func (s *Store) AddCandidate(rec dbmodels.Candidate) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.candidates[rec.ID] = rec
}

func (s *Store) AddJob(rec dbmodels.Job) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobs[rec.ID] = rec
}

// Applications returns committed rows of the pair, used to check invariants.
func (s *Store) Applications(candidateID, jobID int64) []dbmodels.Application {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := []dbmodels.Application{}
	for _, rec := range s.applications {
		if rec.CandidateID == candidateID && rec.JobID == jobID {
			result = append(result, rec)
		}
	}
	return result
}

func (s *Store) Answers(applicationID int64) []dbmodels.AnswerRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]dbmodels.AnswerRecord{}, s.answers[applicationID]...)
}

func (s *Store) nextID() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastID++
	return s.lastID
}

func pairKey(candidateID, jobID int64) string {
	return fmt.Sprintf("application:%d:%d", candidateID, jobID)
}

type txState struct {
	apps            map[int64]dbmodels.Application
	answers         map[int64][]dbmodels.AnswerRecord
	answersReplaced map[int64]bool
	held            map[string]func()
}

type handle struct {
	s  *Store
	tx *txState
}

func (h *handle) WithTx(ctx context.Context, fn func(tx applicationstore.Provider) error) error {
	if h.tx != nil {
		return fn(h)
	}
	txHandle := &handle{
		s: h.s,
		tx: &txState{
			apps:            map[int64]dbmodels.Application{},
			answers:         map[int64][]dbmodels.AnswerRecord{},
			answersReplaced: map[int64]bool{},
			held:            map[string]func(){},
		},
	}
	defer txHandle.release()
	if err := fn(txHandle); err != nil {
		return err
	}
	return txHandle.commit()
}

func (h *handle) release() {
	for key, unlock := range h.tx.held {
		unlock()
		delete(h.tx.held, key)
	}
}

func (h *handle) commit() error {
	h.s.mu.Lock()
	defer h.s.mu.Unlock()
	for id, rec := range h.tx.apps {
		for otherID, other := range h.s.applications {
			if otherID != id && other.CandidateID == rec.CandidateID && other.JobID == rec.JobID {
				return applicationstore.ErrDuplicate
			}
		}
	}
	for id, rec := range h.tx.apps {
		h.s.applications[id] = rec
	}
	for id, answers := range h.tx.answers {
		if h.tx.answersReplaced[id] {
			h.s.answers[id] = answers
		} else {
			h.s.answers[id] = append(h.s.answers[id], answers...)
		}
	}
	for id := range h.tx.answersReplaced {
		if _, ok := h.tx.answers[id]; !ok {
			delete(h.s.answers, id)
		}
	}
	return nil
}

func (h *handle) lockPair(ctx context.Context, candidateID, jobID int64) error {
	if h.tx == nil {
		return nil
	}
	key := pairKey(candidateID, jobID)
	if _, ok := h.tx.held[key]; ok {
		return nil
	}
	unlock, err := h.s.locks.Lock(ctx, key, h.s.LockWait)
	if err != nil {
		return errors.Wrap(err, "failed to lock application")
	}
	h.tx.held[key] = unlock
	return nil
}

func (h *handle) find(match func(rec dbmodels.Application) bool) *dbmodels.Application {
	if h.tx != nil {
		for _, rec := range h.tx.apps {
			if match(rec) {
				found := rec
				return &found
			}
		}
	}
	h.s.mu.RLock()
	defer h.s.mu.RUnlock()
	for _, rec := range h.s.applications {
		if match(rec) {
			found := rec
			return &found
		}
	}
	return nil
}

func (h *handle) GetForUpdate(ctx context.Context, candidateID, jobID int64) (*dbmodels.Application, error) {
	if err := h.lockPair(ctx, candidateID, jobID); err != nil {
		return nil, err
	}
	return h.find(func(rec dbmodels.Application) bool {
		return rec.CandidateID == candidateID && rec.JobID == jobID
	}), nil
}

func (h *handle) GetByIDForUpdate(ctx context.Context, id int64) (*dbmodels.Application, error) {
	rec := h.find(func(rec dbmodels.Application) bool { return rec.ID == id })
	if rec == nil {
		return nil, nil
	}
	return h.GetForUpdate(ctx, rec.CandidateID, rec.JobID)
}

func (h *handle) Create(ctx context.Context, rec *dbmodels.Application) error {
	existing := h.find(func(other dbmodels.Application) bool {
		return other.CandidateID == rec.CandidateID && other.JobID == rec.JobID
	})
	if existing != nil {
		return applicationstore.ErrDuplicate
	}
	now := time.Now()
	rec.ID = h.s.nextID()
	rec.CreatedAt = now
	rec.UpdatedAt = now
	row := *rec
	row.Candidate, row.Job, row.Answers = nil, nil, nil
	return h.save(row)
}

func (h *handle) save(rec dbmodels.Application) error {
	if h.tx != nil {
		h.tx.apps[rec.ID] = rec
		return nil
	}
	h.s.mu.Lock()
	defer h.s.mu.Unlock()
	h.s.applications[rec.ID] = rec
	return nil
}

func (h *handle) modify(id int64, fn func(rec *dbmodels.Application)) error {
	rec := h.find(func(rec dbmodels.Application) bool { return rec.ID == id })
	if rec == nil {
		return errors.New("application not found")
	}
	fn(rec)
	rec.UpdatedAt = time.Now()
	return h.save(*rec)
}

func (h *handle) Reactivate(ctx context.Context, id int64, data applicationstore.ReactivateData) error {
	return h.modify(id, func(rec *dbmodels.Application) {
		rec.Status = models.ApplicationStatusApplied
		rec.AppliedAt = data.AppliedAt
		if data.ResumeURL != nil {
			rec.ResumeURL = data.ResumeURL
		}
		if data.CoverLetter != nil {
			rec.CoverLetter = data.CoverLetter
		}
		if data.Notes != nil {
			rec.Notes = data.Notes
		}
	})
}

func (h *handle) SetStatus(ctx context.Context, id int64, status models.ApplicationStatus) error {
	return h.modify(id, func(rec *dbmodels.Application) {
		rec.Status = status
	})
}

func (h *handle) DeleteAnswers(ctx context.Context, applicationID int64) error {
	if h.tx != nil {
		h.tx.answersReplaced[applicationID] = true
		delete(h.tx.answers, applicationID)
		return nil
	}
	h.s.mu.Lock()
	defer h.s.mu.Unlock()
	delete(h.s.answers, applicationID)
	return nil
}

func (h *handle) CreateAnswers(ctx context.Context, answers []dbmodels.AnswerRecord) error {
	for k := range answers {
		answers[k].ID = h.s.nextID()
		answers[k].CreatedAt = time.Now()
		answers[k].UpdatedAt = answers[k].CreatedAt
		appID := answers[k].ApplicationID
		if h.tx != nil {
			h.tx.answers[appID] = append(h.tx.answers[appID], answers[k])
			continue
		}
		h.s.mu.Lock()
		h.s.answers[appID] = append(h.s.answers[appID], answers[k])
		h.s.mu.Unlock()
	}
	return nil
}

func (h *handle) GetByID(ctx context.Context, id int64) (*dbmodels.Application, error) {
	rec := h.find(func(rec dbmodels.Application) bool { return rec.ID == id })
	if rec == nil {
		return nil, nil
	}
	h.s.fill(rec)
	return rec, nil
}

func (h *handle) List(ctx context.Context, filter applicationapimodels.ApplicationFilter) ([]dbmodels.Application, error) {
	h.s.mu.RLock()
	list := make([]dbmodels.Application, 0, len(h.s.applications))
	for _, rec := range h.s.applications {
		if filter.JobID > 0 && rec.JobID != filter.JobID {
			continue
		}
		if filter.CandidateID > 0 && rec.CandidateID != filter.CandidateID {
			continue
		}
		list = append(list, rec)
	}
	h.s.mu.RUnlock()
	sort.Slice(list, func(a, b int) bool {
		if !list[a].AppliedAt.Equal(list[b].AppliedAt) {
			return list[a].AppliedAt.After(list[b].AppliedAt)
		}
		return list[a].ID > list[b].ID
	})
	for k := range list {
		h.s.fill(&list[k])
	}
	return list, nil
}

func (s *Store) fill(rec *dbmodels.Application) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if candidate, ok := s.candidates[rec.CandidateID]; ok {
		rec.Candidate = &candidate
	}
	if job, ok := s.jobs[rec.JobID]; ok {
		rec.Job = &job
	}
	rec.Answers = append([]dbmodels.AnswerRecord{}, s.answers[rec.ID]...)
}
