package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/SscSPs/claims_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/claims_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/claims_ledger/internal/models"
	"github.com/SscSPs/claims_ledger/internal/utils/mapping"
)

// EnrollmentRepository stores enrollments.
type EnrollmentRepository struct {
	db querier
}

var _ portsrepo.EnrollmentTxRepository = (*EnrollmentRepository)(nil)

const enrollmentColumns = `enrollment_id, owner_id, sub_group_key, actor_id, policy_id, enrolled_at,
	coverage_start, status, payment_current, premium_entry_id, cancelled_at,
	created_at, created_by, last_updated_at, last_updated_by`

func scanEnrollment(row rowScanner) (domain.Enrollment, error) {
	var m models.Enrollment
	err := row.Scan(
		&m.EnrollmentID,
		&m.OwnerID,
		&m.SubGroupKey,
		&m.ActorID,
		&m.PolicyID,
		timeValue{&m.EnrolledAt},
		timeValue{&m.CoverageStart},
		&m.Status,
		&m.PaymentCurrent,
		&m.PremiumEntryID,
		nullTimeValue{&m.CancelledAt},
		timeValue{&m.CreatedAt},
		&m.CreatedBy,
		timeValue{&m.LastUpdatedAt},
		&m.LastUpdatedBy,
	)
	if err != nil {
		return domain.Enrollment{}, err
	}
	return mapping.ToDomainEnrollment(m), nil
}

func (r *EnrollmentRepository) SaveEnrollment(ctx context.Context, enrollment domain.Enrollment) error {
	m := mapping.ToModelEnrollment(enrollment)
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO enrollments (`+enrollmentColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		m.EnrollmentID, m.OwnerID, m.SubGroupKey, m.ActorID, m.PolicyID, formatTime(m.EnrolledAt),
		formatTime(m.CoverageStart), m.Status, m.PaymentCurrent, m.PremiumEntryID, formatNullTime(m.CancelledAt),
		formatTime(m.CreatedAt), m.CreatedBy, formatTime(m.LastUpdatedAt), m.LastUpdatedBy,
	)
	return translateError(err, fmt.Sprintf("save enrollment %s", m.EnrollmentID))
}

func (r *EnrollmentRepository) FindEnrollmentByID(ctx context.Context, scope domain.TenantScope, enrollmentID string) (*domain.Enrollment, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+enrollmentColumns+` FROM enrollments
		WHERE enrollment_id = ? AND owner_id = ? AND sub_group_key = ?`,
		enrollmentID, scope.OwnerID, scope.SubGroupKey)
	enrollment, err := scanEnrollment(row)
	if err != nil {
		return nil, translateError(err, fmt.Sprintf("enrollment %s", enrollmentID))
	}
	return &enrollment, nil
}

func (r *EnrollmentRepository) FindEnrollmentByIDForUpdate(ctx context.Context, scope domain.TenantScope, enrollmentID string) (*domain.Enrollment, error) {
	return r.FindEnrollmentByID(ctx, scope, enrollmentID)
}

func (r *EnrollmentRepository) FindEnrollmentForActor(ctx context.Context, scope domain.TenantScope, actorID, policyID string) (*domain.Enrollment, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+enrollmentColumns+` FROM enrollments
		WHERE owner_id = ? AND sub_group_key = ? AND actor_id = ? AND policy_id = ?
		ORDER BY CASE WHEN status = 'active' THEN 0 ELSE 1 END, enrolled_at DESC
		LIMIT 1`,
		scope.OwnerID, scope.SubGroupKey, actorID, policyID)
	enrollment, err := scanEnrollment(row)
	if err != nil {
		return nil, translateError(err, fmt.Sprintf("enrollment of %s in policy %s", actorID, policyID))
	}
	return &enrollment, nil
}

func (r *EnrollmentRepository) ListEnrollments(ctx context.Context, scope domain.TenantScope, actorID string) ([]domain.Enrollment, error) {
	query := `SELECT ` + enrollmentColumns + ` FROM enrollments WHERE owner_id = ? AND sub_group_key = ?`
	args := []any{scope.OwnerID, scope.SubGroupKey}
	if actorID != "" {
		query += ` AND actor_id = ?`
		args = append(args, actorID)
	}
	query += ` ORDER BY enrolled_at DESC, enrollment_id`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, translateError(err, "list enrollments")
	}
	defer rows.Close()

	enrollments := []domain.Enrollment{}
	for rows.Next() {
		enrollment, err := scanEnrollment(rows)
		if err != nil {
			return nil, translateError(err, "scan enrollment")
		}
		enrollments = append(enrollments, enrollment)
	}
	return enrollments, translateError(rows.Err(), "list enrollments")
}

func (r *EnrollmentRepository) UpdateEnrollmentStatus(ctx context.Context, scope domain.TenantScope, enrollmentID string, status domain.EnrollmentStatus, cancelledAt *time.Time, updatedBy string, updatedAt time.Time) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE enrollments SET status = ?, cancelled_at = ?, last_updated_at = ?, last_updated_by = ?
		WHERE enrollment_id = ? AND owner_id = ? AND sub_group_key = ?`,
		string(status), formatNullTime(cancelledAt), formatTime(updatedAt), updatedBy,
		enrollmentID, scope.OwnerID, scope.SubGroupKey)
	if err != nil {
		return translateError(err, fmt.Sprintf("update enrollment %s", enrollmentID))
	}
	return requireOneRow(res, fmt.Sprintf("enrollment %s", enrollmentID))
}

func (r *EnrollmentRepository) UpdatePaymentStatus(ctx context.Context, scope domain.TenantScope, enrollmentID string, paymentCurrent bool, updatedBy string, updatedAt time.Time) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE enrollments SET payment_current = ?, last_updated_at = ?, last_updated_by = ?
		WHERE enrollment_id = ? AND owner_id = ? AND sub_group_key = ?`,
		paymentCurrent, formatTime(updatedAt), updatedBy,
		enrollmentID, scope.OwnerID, scope.SubGroupKey)
	if err != nil {
		return translateError(err, fmt.Sprintf("update enrollment %s", enrollmentID))
	}
	return requireOneRow(res, fmt.Sprintf("enrollment %s", enrollmentID))
}
