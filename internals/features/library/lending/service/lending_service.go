package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	bookModel "github.com/TilakCSE/Smart-Library-System/internals/features/library/books/model"
	lendingModel "github.com/TilakCSE/Smart-Library-System/internals/features/library/lending/model"
	userModel "github.com/TilakCSE/Smart-Library-System/internals/features/users/user/model"
)

// Stable domain errors, mapped to HTTP codes at the controller edge.
var (
	ErrUserNotFound      = errors.New("user not found")
	ErrCopyNotFound      = errors.New("book copy not found")
	ErrCopyUnavailable   = errors.New("book is already issued or lost")
	ErrNoActiveLoan      = errors.New("no active loan for this copy")
	ErrInvalidLoanPeriod = errors.New("loan period must be a positive number of days")
)

const DefaultLoanDays = 14

// LendingService owns the copy-availability state machine: it is the only
// writer of BookCopy.status and Transaction rows.
type LendingService struct {
	DB  *gorm.DB
	Now func() time.Time
}

func NewLendingService(db *gorm.DB) *LendingService {
	return &LendingService{
		DB:  db,
		Now: func() time.Time { return time.Now().UTC() },
	}
}

func (s *LendingService) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

// Issue lends the copy with the given RFID tag to the user with the given
// email for `days` days. The status check and the status write happen as one
// conditional UPDATE inside one transaction, so two concurrent calls for the
// same copy cannot both succeed.
func (s *LendingService) Issue(ctx context.Context, userEmail, rfidTag string, days int) (lendingModel.TransactionModel, error) {
	var loan lendingModel.TransactionModel

	if days <= 0 {
		return loan, ErrInvalidLoanPeriod
	}
	rfidTag = strings.TrimSpace(rfidTag)
	if rfidTag == "" {
		return loan, ErrCopyNotFound
	}

	var user userModel.UserModel
	if err := s.DB.WithContext(ctx).
		Where("LOWER(email) = ?", strings.ToLower(strings.TrimSpace(userEmail))).
		First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return loan, ErrUserNotFound
		}
		return loan, err
	}

	var copyRow bookModel.BookCopyModel
	if err := s.DB.WithContext(ctx).
		Where("rfid_tag = ?", rfidTag).
		First(&copyRow).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return loan, ErrCopyNotFound
		}
		return loan, err
	}

	issuedAt := s.now()
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Guard + transition in one statement; RowsAffected==0 means another
		// caller won the copy (or it is lost).
		res := tx.Model(&bookModel.BookCopyModel{}).
			Where("id = ? AND status = ?", copyRow.ID, bookModel.CopyStatusAvailable).
			Update("status", bookModel.CopyStatusIssued)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrCopyUnavailable
		}

		loan = lendingModel.TransactionModel{
			UserID:    user.ID,
			CopyID:    copyRow.ID,
			IssueDate: issuedAt,
			DueDate:   issuedAt.AddDate(0, 0, days),
			Status:    lendingModel.LoanStatusActive,
		}
		if err := tx.Create(&loan).Error; err != nil {
			// The partial unique index on active loans is the backstop.
			msg := strings.ToLower(err.Error())
			if strings.Contains(msg, "duplicate") || strings.Contains(msg, "unique") {
				return ErrCopyUnavailable
			}
			return err
		}
		return nil
	})
	if err != nil {
		return lendingModel.TransactionModel{}, err
	}
	return loan, nil
}

// Return completes the active loan for the copy with the given RFID tag and
// frees the copy, atomically. A second call for the same copy yields
// ErrNoActiveLoan.
func (s *LendingService) Return(ctx context.Context, rfidTag string) (lendingModel.TransactionModel, error) {
	var loan lendingModel.TransactionModel

	rfidTag = strings.TrimSpace(rfidTag)
	if rfidTag == "" {
		return loan, ErrCopyNotFound
	}

	var copyRow bookModel.BookCopyModel
	if err := s.DB.WithContext(ctx).
		Where("rfid_tag = ?", rfidTag).
		First(&copyRow).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return loan, ErrCopyNotFound
		}
		return loan, err
	}

	returnedAt := s.now()
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("copy_id = ? AND status = ?", copyRow.ID, lendingModel.LoanStatusActive).
			First(&loan).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNoActiveLoan
			}
			return err
		}

		res := tx.Model(&lendingModel.TransactionModel{}).
			Where("id = ? AND status = ?", loan.ID, lendingModel.LoanStatusActive).
			Updates(map[string]any{
				"status":      lendingModel.LoanStatusCompleted,
				"return_date": returnedAt,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNoActiveLoan
		}

		res = tx.Model(&bookModel.BookCopyModel{}).
			Where("id = ? AND status = ?", copyRow.ID, bookModel.CopyStatusIssued).
			Update("status", bookModel.CopyStatusAvailable)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			// active loan but the copy is not issued: corrupt ledger state
			return fmt.Errorf("copy %s has an active loan but status is not issued", copyRow.ID)
		}

		loan.Status = lendingModel.LoanStatusCompleted
		loan.ReturnDate = &returnedAt
		return nil
	})
	if err != nil {
		return lendingModel.TransactionModel{}, err
	}
	return loan, nil
}

// MarkLost forces a copy to lost and closes its active loan, if any. Both
// writes happen in one transaction so no active loan can ever reference a
// lost copy. Calling it on an already-lost copy is a no-op.
func (s *LendingService) MarkLost(ctx context.Context, copyID uuid.UUID) (bookModel.BookCopyModel, error) {
	var copyRow bookModel.BookCopyModel
	if err := s.DB.WithContext(ctx).Where("id = ?", copyID).First(&copyRow).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return copyRow, ErrCopyNotFound
		}
		return copyRow, err
	}

	closedAt := s.now()
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&bookModel.BookCopyModel{}).
			Where("id = ?", copyID).
			Update("status", bookModel.CopyStatusLost).Error; err != nil {
			return err
		}
		return tx.Model(&lendingModel.TransactionModel{}).
			Where("copy_id = ? AND status = ?", copyID, lendingModel.LoanStatusActive).
			Updates(map[string]any{
				"status":      lendingModel.LoanStatusCompleted,
				"return_date": closedAt,
			}).Error
	})
	if err != nil {
		return bookModel.BookCopyModel{}, err
	}

	copyRow.Status = bookModel.CopyStatusLost
	return copyRow, nil
}

// ListByUser returns a user's loans, newest first.
func (s *LendingService) ListByUser(ctx context.Context, userID uuid.UUID, offset, limit int) ([]lendingModel.TransactionModel, int64, error) {
	var rows []lendingModel.TransactionModel
	var total int64

	q := s.DB.WithContext(ctx).Model(&lendingModel.TransactionModel{}).Where("user_id = ?", userID)
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := q.Order("issue_date DESC").Offset(offset).Limit(limit).Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}
