package repositories

import (
	"errors"
	"net/http"

	"github.com/hollowave/hollowave-backend/internal/apperrors"
	"github.com/hollowave/hollowave-backend/internal/models"
	"github.com/hollowave/hollowave-backend/internal/policy"
	"gorm.io/gorm"
)

// ConnectionRepository defines the interface for connection data operations
type ConnectionRepository interface {
	RequestConnection(requesterID, targetID uint) (*models.Connection, error)
	RespondConnection(responderID, connectionID uint, accept bool) (*models.Connection, error)
	GetConnectionByID(id uint) (*models.Connection, error)
	GetConnectionForPair(a, b uint) (*models.Connection, error)
	GetAcceptedConnections(userID uint) ([]models.UserCompact, error)
}

// PostgresConnectionRepository implements ConnectionRepository for the relational store
type PostgresConnectionRepository struct {
	db *gorm.DB
}

// NewPostgresConnectionRepository creates a new PostgresConnectionRepository
func NewPostgresConnectionRepository(db *gorm.DB) *PostgresConnectionRepository {
	return &PostgresConnectionRepository{db: db}
}

// RequestConnection creates a PENDING row for the unordered pair. The
// existence check for both orderings and the insert share one transaction,
// and the PairKey unique index is the backstop: two concurrent requests from
// either side resolve to exactly one row, the loser getting a conflict.
func (r *PostgresConnectionRepository) RequestConnection(requesterID, targetID uint) (*models.Connection, error) {
	if requesterID == targetID {
		return nil, &apperrors.AppError{
			StatusCode: http.StatusBadRequest,
			Reason:     apperrors.ReasonSelfConnection,
			Message:    "cannot connect with yourself",
		}
	}
	conn := &models.Connection{
		RequesterID: requesterID,
		TargetID:    targetID,
		PairKey:     models.PairKeyFor(requesterID, targetID),
		Status:      models.ConnectionPending,
	}
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var existing models.Connection
		err := tx.Where("(requester_id = ? AND target_id = ?) OR (requester_id = ? AND target_id = ?)",
			requesterID, targetID, targetID, requesterID).
			First(&existing).Error
		if err == nil {
			return apperrors.Conflict(apperrors.ReasonDuplicateConnection, "a connection already exists between these users")
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		if err := tx.Create(conn).Error; err != nil {
			if isDuplicateErr(err) {
				return apperrors.Conflict(apperrors.ReasonDuplicateConnection, "a connection already exists between these users")
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return conn, nil
}

// RespondConnection transitions a PENDING row to ACCEPTED or REJECTED. Only
// the target of the request may respond; both terminal states stay terminal.
func (r *PostgresConnectionRepository) RespondConnection(responderID, connectionID uint, accept bool) (*models.Connection, error) {
	var conn models.Connection
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&conn, connectionID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NotFound("connection request not found")
			}
			return err
		}
		if err := policy.CanRespondConnection(responderID, &conn); err != nil {
			return err
		}
		if accept {
			conn.Status = models.ConnectionAccepted
		} else {
			conn.Status = models.ConnectionRejected
		}
		return tx.Model(&conn).Update("status", conn.Status).Error
	})
	if err != nil {
		return nil, err
	}
	return &conn, nil
}

func (r *PostgresConnectionRepository) GetConnectionByID(id uint) (*models.Connection, error) {
	var conn models.Connection
	if err := r.db.First(&conn, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("connection not found")
		}
		return nil, err
	}
	return &conn, nil
}

// GetConnectionForPair finds the row for an unordered pair, nil if none.
func (r *PostgresConnectionRepository) GetConnectionForPair(a, b uint) (*models.Connection, error) {
	var conn models.Connection
	err := r.db.Where("pair_key = ?", models.PairKeyFor(a, b)).First(&conn).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &conn, nil
}

// GetAcceptedConnections lists the far side of every ACCEPTED row.
func (r *PostgresConnectionRepository) GetAcceptedConnections(userID uint) ([]models.UserCompact, error) {
	var conns []models.Connection
	if err := r.db.Where("(requester_id = ? OR target_id = ?) AND status = ?",
		userID, userID, models.ConnectionAccepted).
		Order("id DESC").
		Find(&conns).Error; err != nil {
		return nil, err
	}
	contacts := make([]models.UserCompact, 0, len(conns))
	for _, conn := range conns {
		otherID := conn.RequesterID
		if otherID == userID {
			otherID = conn.TargetID
		}
		var user models.User
		if err := r.db.First(&user, otherID).Error; err != nil {
			continue
		}
		contacts = append(contacts, user.ToCompact())
	}
	return contacts, nil
}
