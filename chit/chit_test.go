package chit

import (
	"sort"
	"sync"
	"time"

	"project/models"
)

// In-memory stand-ins for the GORM-backed stores so the engine tests run
// without a database.

type memLedger struct {
	mu      sync.Mutex
	lastID  uint
	records []models.InstallmentRecord
}

func (l *memLedger) CreateIfAbsent(rec *models.InstallmentRecord) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	for i := range l.records {
		r := &l.records[i]
		if r.UserID == rec.UserID && r.SchemeID == rec.SchemeID && r.MonthIndex == rec.MonthIndex {
			return ErrDuplicateInstallment
		}
	}
	l.lastID++
	rec.ID = l.lastID
	l.records = append(l.records, *rec)
	return nil
}

func (l *memLedger) CountPaid(userID, schemeID uint) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	n := 0
	for i := range l.records {
		r := &l.records[i]
		if r.UserID == userID && r.SchemeID == schemeID && r.Status == models.InstallmentPaid {
			n++
		}
	}
	return n, nil
}

func (l *memLedger) ListByUser(userID uint) ([]models.InstallmentRecord, error) {
	return l.filter(func(r *models.InstallmentRecord) bool { return r.UserID == userID }), nil
}

func (l *memLedger) ListByScheme(schemeID uint) ([]models.InstallmentRecord, error) {
	return l.filter(func(r *models.InstallmentRecord) bool { return r.SchemeID == schemeID }), nil
}

func (l *memLedger) ListForPair(userID, schemeID uint) ([]models.InstallmentRecord, error) {
	return l.filter(func(r *models.InstallmentRecord) bool {
		return r.UserID == userID && r.SchemeID == schemeID
	}), nil
}

func (l *memLedger) ActiveEnrollments() ([]models.InstallmentRecord, error) {
	return l.filter(func(r *models.InstallmentRecord) bool {
		return r.MonthIndex == 0 && r.Status == models.InstallmentPaid
	}), nil
}

func (l *memLedger) MarkPaid(id uint, when time.Time) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	for i := range l.records {
		if l.records[i].ID == id {
			l.records[i].Status = models.InstallmentPaid
			when := when
			l.records[i].PaymentDate = &when
			return nil
		}
	}
	return nil
}

func (l *memLedger) Delete(id uint) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	for i := range l.records {
		if l.records[i].ID == id {
			l.records = append(l.records[:i], l.records[i+1:]...)
			return nil
		}
	}
	return nil
}

func (l *memLedger) filter(keep func(*models.InstallmentRecord) bool) []models.InstallmentRecord {
	l.mu.Lock()
	defer l.mu.Unlock()
	var out []models.InstallmentRecord
	for i := range l.records {
		if keep(&l.records[i]) {
			out = append(out, l.records[i])
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].UserID != out[j].UserID {
			return out[i].UserID < out[j].UserID
		}
		if out[i].SchemeID != out[j].SchemeID {
			return out[i].SchemeID < out[j].SchemeID
		}
		return out[i].MonthIndex < out[j].MonthIndex
	})
	return out
}

type memSchemes struct {
	schemes map[uint]models.Scheme
}

func (s *memSchemes) Scheme(id uint) (*models.Scheme, error) {
	scheme, ok := s.schemes[id]
	if !ok {
		return nil, ErrSchemeNotFound
	}
	return &scheme, nil
}

type sentNote struct {
	userID     uint
	role       string
	title      string
	category   string
	schemeID   uint
	monthIndex int
	reminder   bool
}

// memNotifier records deliveries and doubles as the reminder log, the same
// pairing the database-backed store provides.
type memNotifier struct {
	mu    sync.Mutex
	notes []sentNote
}

func (n *memNotifier) Notify(userID uint, title, message, category string, payload map[string]interface{}) {
	n.record(sentNote{userID: userID, role: "user", title: title, category: category}, payload)
}

func (n *memNotifier) NotifyAll(role, title, message, category string, payload map[string]interface{}) {
	n.record(sentNote{role: role, title: title, category: category}, payload)
}

func (n *memNotifier) record(note sentNote, payload map[string]interface{}) {
	if v, ok := payload["scheme_id"].(uint); ok {
		note.schemeID = v
	}
	if v, ok := payload["month_index"].(int); ok {
		note.monthIndex = v
	}
	if v, ok := payload["reminder"].(bool); ok {
		note.reminder = v
	}
	n.mu.Lock()
	n.notes = append(n.notes, note)
	n.mu.Unlock()
}

func (n *memNotifier) HasChitNotification(userID, schemeID uint, monthIndex int) (bool, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	for _, note := range n.notes {
		if note.reminder && note.role == "user" && note.userID == userID &&
			note.category == models.NotificationChit &&
			note.schemeID == schemeID && note.monthIndex == monthIndex {
			return true, nil
		}
	}
	return false, nil
}

func (n *memNotifier) countTitled(title string) int {
	n.mu.Lock()
	defer n.mu.Unlock()
	c := 0
	for _, note := range n.notes {
		if note.title == title {
			c++
		}
	}
	return c
}

type fixture struct {
	ledger   *memLedger
	schemes  *memSchemes
	notifier *memNotifier
	engine   *Engine
	clock    time.Time
}

func newFixture(schemes ...models.Scheme) *fixture {
	f := &fixture{
		ledger:   &memLedger{},
		schemes:  &memSchemes{schemes: make(map[uint]models.Scheme)},
		notifier: &memNotifier{},
		clock:    time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC),
	}
	for _, s := range schemes {
		f.schemes.schemes[s.ID] = s
	}
	f.engine = NewEngine(f.ledger, f.schemes, f.notifier)
	f.engine.now = func() time.Time { return f.clock }
	return f
}

func (f *fixture) advance(d time.Duration) {
	f.clock = f.clock.Add(d)
}

func (f *fixture) state(userID, schemeID uint, duration int) EnrollmentState {
	records, _ := f.ledger.ListForPair(userID, schemeID)
	return DeriveState(records, duration)
}

func testScheme(id uint, installment float64, duration int) models.Scheme {
	return models.Scheme{
		ID:                id,
		Name:              "Arisan Emas",
		TotalAmount:       installment * float64(duration),
		InstallmentAmount: installment,
		DurationMonths:    duration,
		Status:            models.SchemeActive,
	}
}
