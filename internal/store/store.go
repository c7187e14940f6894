package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/cedarcrest/ccis-admin-api/internal/models"
)

// Store owns the canonical in-memory collections and mirrors every accepted
// mutation to the durable backend as a whole-snapshot write. All mutation
// methods complete their in-memory update synchronously under the lock;
// persistence is deferred to a single flush worker and is best-effort.
type Store struct {
	mu        sync.RWMutex
	students  []models.Student
	teachers  []models.Teacher
	events    []models.SchoolEvent
	logs      []models.NotificationLog
	templates []models.CommunicationTemplate
	settings  models.ReportSettings
	logo      string

	syncingUntil time.Time

	backend      Backend
	logger       *zap.Logger
	statusWindow time.Duration
	now          func() time.Time
	onSave       func(err error)

	flushCh   chan struct{}
	done      chan struct{}
	stopped   chan struct{}
	closeOnce sync.Once
}

// Option customises store construction.
type Option func(*Store)

// WithLogger sets the store logger.
func WithLogger(l *zap.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithStatusWindow sets how long Syncing stays true after a change.
func WithStatusWindow(d time.Duration) Option {
	return func(s *Store) {
		if d > 0 {
			s.statusWindow = d
		}
	}
}

// WithClock injects the time source.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// WithSaveObserver registers a callback invoked after every snapshot save
// attempt with its outcome.
func WithSaveObserver(fn func(err error)) Option {
	return func(s *Store) {
		s.onSave = fn
	}
}

// New loads each durable key from the backend, falling back to the built-in
// seed value when a key is absent or unparseable, and starts the flush
// worker.
func New(ctx context.Context, backend Backend, opts ...Option) (*Store, error) {
	if backend == nil {
		return nil, fmt.Errorf("store requires a backend")
	}

	s := &Store{
		backend:      backend,
		logger:       zap.NewNop(),
		statusWindow: 800 * time.Millisecond,
		now:          time.Now,
		flushCh:      make(chan struct{}, 1),
		done:         make(chan struct{}),
		stopped:      make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.students = loadCollection(ctx, s, KeyStudents, seedStudents())
	s.teachers = loadCollection(ctx, s, KeyTeachers, seedTeachers())
	s.events = loadCollection(ctx, s, KeyEvents, seedEvents())
	s.logs = loadCollection(ctx, s, KeyLogs, []models.NotificationLog{})
	s.templates = loadCollection(ctx, s, KeyTemplates, seedTemplates())
	s.settings = loadRecord(ctx, s, KeyReportSettings, seedSettings())

	if raw, ok, err := backend.Load(ctx, KeySchoolLogo); err == nil && ok {
		s.logo = string(raw)
	} else if err != nil {
		s.logger.Warn("load failed, using default", zap.String("key", KeySchoolLogo), zap.Error(err))
	}

	go s.run()

	return s, nil
}

func loadCollection[T any](ctx context.Context, s *Store, key string, seed []T) []T {
	raw, ok, err := s.backend.Load(ctx, key)
	if err != nil {
		s.logger.Warn("load failed, using seed", zap.String("key", key), zap.Error(err))
		return seed
	}
	if !ok {
		return seed
	}
	var out []T
	if err := json.Unmarshal(raw, &out); err != nil {
		s.logger.Warn("unparseable snapshot, using seed", zap.String("key", key), zap.Error(err))
		return seed
	}
	if out == nil {
		out = []T{}
	}
	return out
}

func loadRecord[T any](ctx context.Context, s *Store, key string, seed T) T {
	raw, ok, err := s.backend.Load(ctx, key)
	if err != nil {
		s.logger.Warn("load failed, using seed", zap.String("key", key), zap.Error(err))
		return seed
	}
	if !ok {
		return seed
	}
	var out T
	if err := json.Unmarshal(raw, &out); err != nil {
		s.logger.Warn("unparseable snapshot, using seed", zap.String("key", key), zap.Error(err))
		return seed
	}
	return out
}

// Close stops the flush worker after one final synchronous flush.
func (s *Store) Close() {
	s.closeOnce.Do(func() {
		close(s.done)
		<-s.stopped
	})
}

// Syncing reports whether a change was accepted within the status window.
// It is a user-feedback signal only and carries no durability guarantee.
func (s *Store) Syncing() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.now().Before(s.syncingUntil)
}

// Flush serialises all collections and writes them to the backend as one
// snapshot. Mutations schedule this asynchronously; Close and tests call it
// directly.
func (s *Store) Flush(ctx context.Context) error {
	snapshot, err := s.Snapshot()
	if err != nil {
		return err
	}
	return s.backend.Save(ctx, snapshot)
}

// Snapshot returns the serialized form of every collection keyed by its
// durable storage key.
func (s *Store) Snapshot() (map[string][]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snapshot := make(map[string][]byte, 7)
	for key, value := range map[string]interface{}{
		KeyStudents:       s.students,
		KeyTeachers:       s.teachers,
		KeyEvents:         s.events,
		KeyLogs:           s.logs,
		KeyTemplates:      s.templates,
		KeyReportSettings: s.settings,
	} {
		raw, err := json.Marshal(value)
		if err != nil {
			return nil, fmt.Errorf("marshal %s: %w", key, err)
		}
		snapshot[key] = raw
	}
	snapshot[KeySchoolLogo] = []byte(s.logo)
	return snapshot, nil
}

func (s *Store) run() {
	defer close(s.stopped)
	for {
		select {
		case <-s.done:
			s.saveOnce()
			return
		case <-s.flushCh:
			s.saveOnce()
		}
	}
}

func (s *Store) saveOnce() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	err := s.Flush(ctx)
	if err != nil {
		// Best-effort persistence: in-memory state stays authoritative.
		s.logger.Warn("snapshot save failed", zap.Error(err))
	}
	if s.onSave != nil {
		s.onSave(err)
	}
}

// markDirty must be called with the write lock held.
func (s *Store) markDirty() {
	s.syncingUntil = s.now().Add(s.statusWindow)
	select {
	case s.flushCh <- struct{}{}:
	default:
	}
}

// ---- Student mutations ----

// AddStudent prepends a student. The caller supplies a unique id.
func (s *Store) AddStudent(student models.Student) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.students = append([]models.Student{student.Clone()}, s.students...)
	s.markDirty()
}

// UpdateStudent replaces the student with the matching id. No-op when the
// id is absent; the return value reports whether a replacement happened.
func (s *Store) UpdateStudent(student models.Student) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.students {
		if s.students[i].ID == student.ID {
			s.students[i] = student.Clone()
			s.markDirty()
			return true
		}
	}
	return false
}

// DeleteStudent removes the matching student. No-op when the id is absent.
func (s *Store) DeleteStudent(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.students[:0]
	removed := false
	for _, student := range s.students {
		if student.ID == id {
			removed = true
			continue
		}
		kept = append(kept, student)
	}
	s.students = kept
	if removed {
		s.markDirty()
	}
}

// BulkDeleteStudents removes every matching id; absent ids are ignored.
func (s *Store) BulkDeleteStudents(ids []string) {
	set := toSet(ids)
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.students[:0]
	removed := false
	for _, student := range s.students {
		if _, ok := set[student.ID]; ok {
			removed = true
			continue
		}
		kept = append(kept, student)
	}
	s.students = kept
	if removed {
		s.markDirty()
	}
}

// SetStudentAttendance upserts the status for the given date on one
// student. The same (student, date) pair only ever holds the last value.
func (s *Store) SetStudentAttendance(id, date string, status models.AttendanceStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.setStudentAttendanceLocked(id, date, status) {
		s.markDirty()
	}
}

// BulkSetStudentAttendance applies the same date/status to every id.
func (s *Store) BulkSetStudentAttendance(ids []string, date string, status models.AttendanceStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()
	changed := false
	for _, id := range ids {
		if s.setStudentAttendanceLocked(id, date, status) {
			changed = true
		}
	}
	if changed {
		s.markDirty()
	}
}

func (s *Store) setStudentAttendanceLocked(id, date string, status models.AttendanceStatus) bool {
	for i := range s.students {
		if s.students[i].ID != id {
			continue
		}
		updated := s.students[i].Clone()
		updated.Attendance[date] = status
		s.students[i] = updated
		return true
	}
	return false
}

// UpsertGrade replaces the score of the (subject, term) grade when present,
// otherwise appends a new grade with MaxScore defaulting to 100.
func (s *Store) UpsertGrade(studentID, subject string, term int, score float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.students {
		if s.students[i].ID != studentID {
			continue
		}
		updated := s.students[i].Clone()
		found := false
		for j := range updated.Grades {
			if updated.Grades[j].Subject == subject && updated.Grades[j].Term == term {
				updated.Grades[j].Score = score
				found = true
				break
			}
		}
		if !found {
			updated.Grades = append(updated.Grades, models.Grade{
				Subject:  subject,
				Score:    score,
				MaxScore: 100,
				Term:     term,
			})
		}
		s.students[i] = updated
		s.markDirty()
		return
	}
}

// ---- Teacher mutations ----

// AddTeacher prepends a teacher. The caller supplies a unique id.
func (s *Store) AddTeacher(teacher models.Teacher) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.teachers = append([]models.Teacher{teacher.Clone()}, s.teachers...)
	s.markDirty()
}

// UpdateTeacher replaces the teacher with the matching id.
func (s *Store) UpdateTeacher(teacher models.Teacher) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.teachers {
		if s.teachers[i].ID == teacher.ID {
			s.teachers[i] = teacher.Clone()
			s.markDirty()
			return true
		}
	}
	return false
}

// DeleteTeacher removes the matching teacher. No-op when the id is absent.
func (s *Store) DeleteTeacher(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.teachers[:0]
	removed := false
	for _, teacher := range s.teachers {
		if teacher.ID == id {
			removed = true
			continue
		}
		kept = append(kept, teacher)
	}
	s.teachers = kept
	if removed {
		s.markDirty()
	}
}

// BulkDeleteTeachers removes every matching id; absent ids are ignored.
func (s *Store) BulkDeleteTeachers(ids []string) {
	set := toSet(ids)
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.teachers[:0]
	removed := false
	for _, teacher := range s.teachers {
		if _, ok := set[teacher.ID]; ok {
			removed = true
			continue
		}
		kept = append(kept, teacher)
	}
	s.teachers = kept
	if removed {
		s.markDirty()
	}
}

// SetTeacherAttendance upserts the status for the given date on one teacher.
func (s *Store) SetTeacherAttendance(id, date string, status models.AttendanceStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.teachers {
		if s.teachers[i].ID != id {
			continue
		}
		updated := s.teachers[i].Clone()
		updated.Attendance[date] = status
		s.teachers[i] = updated
		s.markDirty()
		return
	}
}

// ---- Event mutations ----

// AddEvent appends a calendar event.
func (s *Store) AddEvent(event models.SchoolEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
	s.markDirty()
}

// UpdateEvent replaces the event with the matching id.
func (s *Store) UpdateEvent(event models.SchoolEvent) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.events {
		if s.events[i].ID == event.ID {
			s.events[i] = event
			s.markDirty()
			return true
		}
	}
	return false
}

// DeleteEvent removes the matching event. No-op when the id is absent.
func (s *Store) DeleteEvent(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.events[:0]
	removed := false
	for _, event := range s.events {
		if event.ID == id {
			removed = true
			continue
		}
		kept = append(kept, event)
	}
	s.events = kept
	if removed {
		s.markDirty()
	}
}

// ---- Logs, templates, settings ----

// AppendNotificationLog prepends a log entry. The log is append-only and
// never deduplicated.
func (s *Store) AppendNotificationLog(entry models.NotificationLog) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.logs = append([]models.NotificationLog{entry}, s.logs...)
	s.markDirty()
}

// ReplaceTemplates swaps the whole template collection.
func (s *Store) ReplaceTemplates(templates []models.CommunicationTemplate) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.templates = make([]models.CommunicationTemplate, len(templates))
	copy(s.templates, templates)
	s.markDirty()
}

// SetReportSettings replaces the single report settings record.
func (s *Store) SetReportSettings(settings models.ReportSettings) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings = settings
	s.markDirty()
}

// SetSchoolLogo replaces the stored logo reference.
func (s *Store) SetSchoolLogo(logo string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.logo = logo
	s.markDirty()
}

// ---- Read accessors (deep copies; projections recompute from these) ----

// Students returns a deep copy of the student collection.
func (s *Store) Students() []models.Student {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Student, len(s.students))
	for i, student := range s.students {
		out[i] = student.Clone()
	}
	return out
}

// StudentByID returns a deep copy of one student.
func (s *Store) StudentByID(id string) (models.Student, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, student := range s.students {
		if student.ID == id {
			return student.Clone(), true
		}
	}
	return models.Student{}, false
}

// Teachers returns a deep copy of the teacher collection.
func (s *Store) Teachers() []models.Teacher {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Teacher, len(s.teachers))
	for i, teacher := range s.teachers {
		out[i] = teacher.Clone()
	}
	return out
}

// TeacherByID returns a deep copy of one teacher.
func (s *Store) TeacherByID(id string) (models.Teacher, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, teacher := range s.teachers {
		if teacher.ID == id {
			return teacher.Clone(), true
		}
	}
	return models.Teacher{}, false
}

// Events returns a copy of the event collection.
func (s *Store) Events() []models.SchoolEvent {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.SchoolEvent, len(s.events))
	copy(out, s.events)
	return out
}

// EventByID returns one event.
func (s *Store) EventByID(id string) (models.SchoolEvent, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, event := range s.events {
		if event.ID == id {
			return event, true
		}
	}
	return models.SchoolEvent{}, false
}

// NotificationLogs returns a copy of the log collection, newest first.
func (s *Store) NotificationLogs() []models.NotificationLog {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.NotificationLog, len(s.logs))
	copy(out, s.logs)
	return out
}

// Templates returns a copy of the template collection.
func (s *Store) Templates() []models.CommunicationTemplate {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.CommunicationTemplate, len(s.templates))
	copy(out, s.templates)
	return out
}

// ReportSettings returns the current settings record.
func (s *Store) ReportSettings() models.ReportSettings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings
}

// SchoolLogo returns the stored logo reference.
func (s *Store) SchoolLogo() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.logo
}

func toSet(ids []string) map[string]struct{} {
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}
