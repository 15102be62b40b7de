package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"taskpulse/internal/core/domain"
	"taskpulse/internal/core/ports"
)

// fakeStore is an in-memory implementation of every repository port plus
// the transaction manager. Invariant scenarios need stateful sequences
// of starts and stops, which a call-by-call mock cannot express.
type fakeStore struct {
	mu          sync.Mutex
	tasks       map[uint64]domain.Task
	subtasks    map[uint64]domain.Subtask
	assignments map[uint64]domain.Assignment
	entries     map[uint64]domain.TimeLogEntry
	reviews     map[uint64]domain.Review
	roles       map[uint64]map[uint64]domain.Role // taskID -> userID -> role
	nextID      uint64
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		tasks:       map[uint64]domain.Task{},
		subtasks:    map[uint64]domain.Subtask{},
		assignments: map[uint64]domain.Assignment{},
		entries:     map[uint64]domain.TimeLogEntry{},
		reviews:     map[uint64]domain.Review{},
		roles:       map[uint64]map[uint64]domain.Role{},
	}
}

var (
	_ ports.TxManager            = (*fakeStore)(nil)
	_ ports.TaskRepository       = (*fakeStore)(nil)
	_ ports.SubtaskRepository    = (*fakeStore)(nil)
	_ ports.AssignmentRepository = (*fakeStore)(nil)
	_ ports.TimeLogRepository    = (*fakeStore)(nil)
	_ ports.ReviewRepository     = (*fakeStore)(nil)
	_ ports.MembershipRepository = (*fakeStore)(nil)
)

func (s *fakeStore) id() uint64 {
	s.nextID++
	return s.nextID
}

// Seed helpers.

func (s *fakeStore) addTask(status domain.TaskStatus) domain.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	task := domain.Task{ID: s.id(), BoardID: 1, Title: "task", Status: status}
	s.tasks[task.ID] = task
	return task
}

func (s *fakeStore) addSubtask(taskID uint64, status domain.SubtaskStatus) domain.Subtask {
	s.mu.Lock()
	defer s.mu.Unlock()
	subtask := domain.Subtask{ID: s.id(), TaskID: taskID, Title: "subtask", Status: status}
	s.subtasks[subtask.ID] = subtask
	return subtask
}

func (s *fakeStore) addAssignment(taskID, userID uint64) domain.Assignment {
	s.mu.Lock()
	defer s.mu.Unlock()
	assignment := domain.Assignment{ID: s.id(), TaskID: taskID, UserID: userID, Status: domain.AssignmentStatusAssigned}
	s.assignments[assignment.ID] = assignment
	return assignment
}

func (s *fakeStore) grantRole(userID, taskID uint64, role domain.Role) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.roles[taskID] == nil {
		s.roles[taskID] = map[uint64]domain.Role{}
	}
	s.roles[taskID][userID] = role
}

func (s *fakeStore) task(id uint64) domain.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tasks[id]
}

func (s *fakeStore) subtask(id uint64) domain.Subtask {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.subtasks[id]
}

func (s *fakeStore) assignment(taskID, userID uint64) domain.Assignment {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range s.assignments {
		if a.TaskID == taskID && a.UserID == userID {
			return a
		}
	}
	return domain.Assignment{}
}

func (s *fakeStore) entry(id uint64) domain.TimeLogEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.entries[id]
}

func (s *fakeStore) sortedEntries() []domain.TimeLogEntry {
	entries := make([]domain.TimeLogEntry, 0, len(s.entries))
	for _, e := range s.entries {
		entries = append(entries, e)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].ID < entries[j].ID })
	return entries
}

// TxManager.

func (s *fakeStore) RunInTx(_ context.Context, fn func(ctx context.Context) error) error {
	return fn(context.Background())
}

// TaskRepository.

func (s *fakeStore) GetTask(_ context.Context, id uint64) (domain.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	task, ok := s.tasks[id]
	if !ok {
		return domain.Task{}, domain.ErrTaskNotFound
	}
	return task, nil
}

func (s *fakeStore) GetTaskForUpdate(ctx context.Context, id uint64) (domain.Task, error) {
	return s.GetTask(ctx, id)
}

func (s *fakeStore) ListTasks(_ context.Context) ([]domain.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	tasks := make([]domain.Task, 0, len(s.tasks))
	for _, task := range s.tasks {
		tasks = append(tasks, task)
	}
	sort.Slice(tasks, func(i, j int) bool { return tasks[i].ID < tasks[j].ID })
	return tasks, nil
}

func (s *fakeStore) UpdateTaskStatus(_ context.Context, id uint64, status domain.TaskStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	task, ok := s.tasks[id]
	if !ok {
		return domain.ErrTaskNotFound
	}
	task.Status = status
	s.tasks[id] = task
	return nil
}

func (s *fakeStore) UpdateTaskActualHours(_ context.Context, id uint64, hours float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	task, ok := s.tasks[id]
	if !ok {
		return domain.ErrTaskNotFound
	}
	task.ActualHours = hours
	s.tasks[id] = task
	return nil
}

// SubtaskRepository.

func (s *fakeStore) GetSubtask(_ context.Context, id uint64) (domain.Subtask, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	subtask, ok := s.subtasks[id]
	if !ok {
		return domain.Subtask{}, domain.ErrSubtaskNotFound
	}
	return subtask, nil
}

func (s *fakeStore) ListSubtasks(_ context.Context, taskID uint64) ([]domain.Subtask, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	subtasks := make([]domain.Subtask, 0)
	for _, subtask := range s.subtasks {
		if subtask.TaskID == taskID {
			subtasks = append(subtasks, subtask)
		}
	}
	sort.Slice(subtasks, func(i, j int) bool { return subtasks[i].ID < subtasks[j].ID })
	return subtasks, nil
}

func (s *fakeStore) CountSubtasks(_ context.Context, taskID uint64) (int, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	total, done := 0, 0
	for _, subtask := range s.subtasks {
		if subtask.TaskID != taskID {
			continue
		}
		total++
		if subtask.Status == domain.SubtaskStatusDone {
			done++
		}
	}
	return total, done, nil
}

func (s *fakeStore) UpdateSubtaskStatus(_ context.Context, id uint64, status domain.SubtaskStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	subtask, ok := s.subtasks[id]
	if !ok {
		return domain.ErrSubtaskNotFound
	}
	subtask.Status = status
	s.subtasks[id] = subtask
	return nil
}

func (s *fakeStore) UpdateSubtaskActualHours(_ context.Context, id uint64, hours float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	subtask, ok := s.subtasks[id]
	if !ok {
		return domain.ErrSubtaskNotFound
	}
	subtask.ActualHours = hours
	s.subtasks[id] = subtask
	return nil
}

// AssignmentRepository.

func (s *fakeStore) GetAssignmentForUpdate(_ context.Context, taskID, userID uint64) (*domain.Assignment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, assignment := range s.assignments {
		if assignment.TaskID == taskID && assignment.UserID == userID {
			value := assignment
			return &value, nil
		}
	}
	return nil, nil
}

func (s *fakeStore) ListAssignments(_ context.Context, taskID uint64) ([]domain.Assignment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	assignments := make([]domain.Assignment, 0)
	for _, assignment := range s.assignments {
		if assignment.TaskID == taskID {
			assignments = append(assignments, assignment)
		}
	}
	sort.Slice(assignments, func(i, j int) bool { return assignments[i].ID < assignments[j].ID })
	return assignments, nil
}

func (s *fakeStore) MarkAssignmentStarted(_ context.Context, id uint64, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	assignment := s.assignments[id]
	if assignment.StartedAt == nil {
		assignment.StartedAt = &at
		assignment.Status = domain.AssignmentStatusInProgress
		s.assignments[id] = assignment
	}
	return nil
}

func (s *fakeStore) CompleteAssignment(_ context.Context, id uint64, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	assignment := s.assignments[id]
	assignment.Status = domain.AssignmentStatusCompleted
	assignment.CompletedAt = &at
	s.assignments[id] = assignment
	return nil
}

func (s *fakeStore) CompleteOpenAssignments(_ context.Context, taskID uint64, at time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	completed := 0
	for id, assignment := range s.assignments {
		if assignment.TaskID == taskID && assignment.Status != domain.AssignmentStatusCompleted {
			assignment.Status = domain.AssignmentStatusCompleted
			assignment.CompletedAt = &at
			s.assignments[id] = assignment
			completed++
		}
	}
	return completed, nil
}

// TimeLogRepository.

func (s *fakeStore) InsertEntry(_ context.Context, entry domain.TimeLogEntry) (domain.TimeLogEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry.ID = s.id()
	s.entries[entry.ID] = entry
	return entry, nil
}

func (s *fakeStore) GetEntryForUpdate(_ context.Context, id uint64) (domain.TimeLogEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.entries[id]
	if !ok {
		return domain.TimeLogEntry{}, domain.ErrEntryNotFound
	}
	return entry, nil
}

func (s *fakeStore) FindOpenEntry(_ context.Context, userID, taskID uint64, subtaskID *uint64) (*domain.TimeLogEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, entry := range s.sortedEntries() {
		if !entry.Open() || entry.UserID != userID || entry.TaskID != taskID {
			continue
		}
		if (entry.SubtaskID == nil) != (subtaskID == nil) {
			continue
		}
		if subtaskID != nil && *entry.SubtaskID != *subtaskID {
			continue
		}
		value := entry
		return &value, nil
	}
	return nil, nil
}

func (s *fakeStore) FindOpenTaskEntry(_ context.Context, userID uint64) (*domain.TimeLogEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, entry := range s.sortedEntries() {
		if entry.Open() && entry.TaskLevel() && entry.UserID == userID {
			value := entry
			return &value, nil
		}
	}
	return nil, nil
}

func (s *fakeStore) ListOpenSubtaskEntries(_ context.Context, userID, taskID uint64) ([]domain.TimeLogEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	open := make([]domain.TimeLogEntry, 0)
	for _, entry := range s.sortedEntries() {
		if entry.Open() && entry.SubtaskID != nil && entry.UserID == userID && entry.TaskID == taskID {
			open = append(open, entry)
		}
	}
	return open, nil
}

func (s *fakeStore) SealEntry(_ context.Context, id uint64, endedAt time.Time, durationMinutes int, note *string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.entries[id]
	if !ok || !entry.Open() {
		return domain.ErrSessionAlreadyStopped
	}
	entry.EndedAt = &endedAt
	entry.DurationMinutes = durationMinutes
	if note != nil {
		entry.Note = note
	}
	s.entries[id] = entry
	return nil
}

func (s *fakeStore) ListOpenEntriesByUser(_ context.Context, userID uint64) ([]domain.TimeLogEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	open := make([]domain.TimeLogEntry, 0)
	for _, entry := range s.sortedEntries() {
		if entry.Open() && entry.UserID == userID {
			open = append(open, entry)
		}
	}
	return open, nil
}

func (s *fakeStore) SumSealedByTask(_ context.Context, taskID uint64) (domain.HoursSummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	summary := domain.HoursSummary{}
	for _, entry := range s.entries {
		if entry.TaskID == taskID && !entry.Open() {
			summary.TotalMinutes += entry.DurationMinutes
			summary.SessionCount++
		}
	}
	return summary, nil
}

func (s *fakeStore) SumSealedBySubtask(_ context.Context, subtaskID uint64) (domain.HoursSummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	summary := domain.HoursSummary{}
	for _, entry := range s.entries {
		if entry.SubtaskID != nil && *entry.SubtaskID == subtaskID && !entry.Open() {
			summary.TotalMinutes += entry.DurationMinutes
			summary.SessionCount++
		}
	}
	return summary, nil
}

// ReviewRepository.

func (s *fakeStore) InsertReview(_ context.Context, review domain.Review) (domain.Review, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	review.ID = s.id()
	s.reviews[review.ID] = review
	return review, nil
}

func (s *fakeStore) ListReviews(_ context.Context, taskID uint64) ([]domain.Review, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	reviews := make([]domain.Review, 0)
	for _, review := range s.reviews {
		if review.TaskID == taskID {
			reviews = append(reviews, review)
		}
	}
	sort.Slice(reviews, func(i, j int) bool { return reviews[i].ID < reviews[j].ID })
	return reviews, nil
}

// MembershipRepository.

func (s *fakeStore) RoleForTask(_ context.Context, userID, taskID uint64) (domain.Role, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.roles[taskID][userID], nil
}
