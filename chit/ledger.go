package chit

import (
	"errors"
	"time"

	mysqldriver "github.com/go-sql-driver/mysql"
	"gorm.io/gorm"

	"project/models"
)

// Ledger is the installment store. The engine only ever appends rows and
// flips the month-0 row to Paid; everything else (state, progress, due dates)
// is derived by reading.
type Ledger interface {
	// CreateIfAbsent inserts rec and returns ErrDuplicateInstallment when a row
	// for the same (user, scheme, month) already exists. The check and the
	// insert are a single statement so concurrent writers cannot both win.
	CreateIfAbsent(rec *models.InstallmentRecord) error
	CountPaid(userID, schemeID uint) (int, error)
	ListByUser(userID uint) ([]models.InstallmentRecord, error)
	ListByScheme(schemeID uint) ([]models.InstallmentRecord, error)
	ListForPair(userID, schemeID uint) ([]models.InstallmentRecord, error)
	// ActiveEnrollments returns every Paid month-0 row across all schemes.
	ActiveEnrollments() ([]models.InstallmentRecord, error)
	MarkPaid(id uint, when time.Time) error
	Delete(id uint) error
}

// SchemeStore resolves scheme definitions for the engine.
type SchemeStore interface {
	// Scheme returns the scheme regardless of status, or ErrSchemeNotFound.
	Scheme(id uint) (*models.Scheme, error)
}

// Notifier delivers in-app notifications. Delivery is best effort: the engine
// never fails a ledger write because a notification could not be stored.
type Notifier interface {
	Notify(userID uint, title, message, category string, payload map[string]interface{})
	NotifyAll(role, title, message, category string, payload map[string]interface{})
}

// ReminderLog answers whether a chit reminder for a given cycle was already
// delivered, keyed on (user, scheme, month index).
type ReminderLog interface {
	HasChitNotification(userID, schemeID uint, monthIndex int) (bool, error)
}

type gormLedger struct {
	db *gorm.DB
}

func NewLedger(db *gorm.DB) Ledger {
	return &gormLedger{db: db}
}

func (l *gormLedger) CreateIfAbsent(rec *models.InstallmentRecord) error {
	if err := l.db.Create(rec).Error; err != nil {
		if isDuplicateEntry(err) {
			return ErrDuplicateInstallment
		}
		return err
	}
	return nil
}

// isDuplicateEntry matches the unique index violation that MySQL reports as
// error 1062.
func isDuplicateEntry(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var myErr *mysqldriver.MySQLError
	return errors.As(err, &myErr) && myErr.Number == 1062
}

func (l *gormLedger) CountPaid(userID, schemeID uint) (int, error) {
	var n int64
	err := l.db.Model(&models.InstallmentRecord{}).
		Where("user_id = ? AND scheme_id = ? AND status = ?", userID, schemeID, models.InstallmentPaid).
		Count(&n).Error
	return int(n), err
}

func (l *gormLedger) ListByUser(userID uint) ([]models.InstallmentRecord, error) {
	var records []models.InstallmentRecord
	err := l.db.Preload("Scheme").
		Where("user_id = ?", userID).
		Order("scheme_id ASC, month_index ASC").
		Find(&records).Error
	return records, err
}

func (l *gormLedger) ListByScheme(schemeID uint) ([]models.InstallmentRecord, error) {
	var records []models.InstallmentRecord
	err := l.db.Where("scheme_id = ?", schemeID).
		Order("user_id ASC, month_index ASC").
		Find(&records).Error
	return records, err
}

func (l *gormLedger) ListForPair(userID, schemeID uint) ([]models.InstallmentRecord, error) {
	var records []models.InstallmentRecord
	err := l.db.Where("user_id = ? AND scheme_id = ?", userID, schemeID).
		Order("month_index ASC").
		Find(&records).Error
	return records, err
}

func (l *gormLedger) ActiveEnrollments() ([]models.InstallmentRecord, error) {
	var records []models.InstallmentRecord
	err := l.db.Where("month_index = 0 AND status = ?", models.InstallmentPaid).
		Order("user_id ASC, scheme_id ASC").
		Find(&records).Error
	return records, err
}

func (l *gormLedger) MarkPaid(id uint, when time.Time) error {
	return l.db.Model(&models.InstallmentRecord{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":       models.InstallmentPaid,
			"payment_date": when,
		}).Error
}

func (l *gormLedger) Delete(id uint) error {
	return l.db.Delete(&models.InstallmentRecord{}, id).Error
}

type gormSchemes struct {
	db *gorm.DB
}

func NewSchemeStore(db *gorm.DB) SchemeStore {
	return &gormSchemes{db: db}
}

func (s *gormSchemes) Scheme(id uint) (*models.Scheme, error) {
	var scheme models.Scheme
	if err := s.db.First(&scheme, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSchemeNotFound
		}
		return nil, err
	}
	return &scheme, nil
}
