package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/SscSPs/claims_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/claims_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/claims_ledger/internal/models"
	"github.com/SscSPs/claims_ledger/internal/utils/mapping"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxEnrollmentRepository struct {
	db querier
}

func newPgxEnrollmentRepository(pool *pgxpool.Pool) *PgxEnrollmentRepository {
	return &PgxEnrollmentRepository{db: pool}
}

var _ portsrepo.EnrollmentTxRepository = (*PgxEnrollmentRepository)(nil)

const enrollmentColumns = `enrollment_id, owner_id, sub_group_key, actor_id, policy_id, enrolled_at,
	coverage_start, status, payment_current, premium_entry_id, cancelled_at,
	created_at, created_by, last_updated_at, last_updated_by`

func scanEnrollment(row rowScanner) (domain.Enrollment, error) {
	var m models.Enrollment
	if err := row.Scan(
		&m.EnrollmentID, &m.OwnerID, &m.SubGroupKey, &m.ActorID, &m.PolicyID, &m.EnrolledAt,
		&m.CoverageStart, &m.Status, &m.PaymentCurrent, &m.PremiumEntryID, &m.CancelledAt,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	); err != nil {
		return domain.Enrollment{}, err
	}
	return mapping.ToDomainEnrollment(m), nil
}

func (r *PgxEnrollmentRepository) SaveEnrollment(ctx context.Context, enrollment domain.Enrollment) error {
	m := mapping.ToModelEnrollment(enrollment)
	_, err := r.db.Exec(ctx, `
		INSERT INTO enrollments (`+enrollmentColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`,
		m.EnrollmentID, m.OwnerID, m.SubGroupKey, m.ActorID, m.PolicyID, m.EnrolledAt,
		m.CoverageStart, m.Status, m.PaymentCurrent, m.PremiumEntryID, m.CancelledAt,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	return translateError(err, fmt.Sprintf("save enrollment %s", m.EnrollmentID))
}

func (r *PgxEnrollmentRepository) findEnrollment(ctx context.Context, scope domain.TenantScope, enrollmentID string, lock bool) (*domain.Enrollment, error) {
	query := `SELECT ` + enrollmentColumns + ` FROM enrollments
		WHERE enrollment_id = $1 AND owner_id = $2 AND sub_group_key = $3`
	if lock {
		query += ` FOR UPDATE`
	}
	enrollment, err := scanEnrollment(r.db.QueryRow(ctx, query, enrollmentID, scope.OwnerID, scope.SubGroupKey))
	if err != nil {
		return nil, translateError(err, fmt.Sprintf("enrollment %s", enrollmentID))
	}
	return &enrollment, nil
}

func (r *PgxEnrollmentRepository) FindEnrollmentByID(ctx context.Context, scope domain.TenantScope, enrollmentID string) (*domain.Enrollment, error) {
	return r.findEnrollment(ctx, scope, enrollmentID, false)
}

func (r *PgxEnrollmentRepository) FindEnrollmentByIDForUpdate(ctx context.Context, scope domain.TenantScope, enrollmentID string) (*domain.Enrollment, error) {
	return r.findEnrollment(ctx, scope, enrollmentID, true)
}

func (r *PgxEnrollmentRepository) FindEnrollmentForActor(ctx context.Context, scope domain.TenantScope, actorID, policyID string) (*domain.Enrollment, error) {
	row := r.db.QueryRow(ctx, `
		SELECT `+enrollmentColumns+` FROM enrollments
		WHERE owner_id = $1 AND sub_group_key = $2 AND actor_id = $3 AND policy_id = $4
		ORDER BY (status = 'active') DESC, enrolled_at DESC
		LIMIT 1`,
		scope.OwnerID, scope.SubGroupKey, actorID, policyID)
	enrollment, err := scanEnrollment(row)
	if err != nil {
		return nil, translateError(err, fmt.Sprintf("enrollment of %s in policy %s", actorID, policyID))
	}
	return &enrollment, nil
}

func (r *PgxEnrollmentRepository) ListEnrollments(ctx context.Context, scope domain.TenantScope, actorID string) ([]domain.Enrollment, error) {
	args := &argList{}
	query := `SELECT ` + enrollmentColumns + ` FROM enrollments WHERE owner_id = ` + args.add(scope.OwnerID) +
		` AND sub_group_key = ` + args.add(scope.SubGroupKey)
	if actorID != "" {
		query += ` AND actor_id = ` + args.add(actorID)
	}
	query += ` ORDER BY enrolled_at DESC, enrollment_id`

	rows, err := r.db.Query(ctx, query, args.values...)
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

func (r *PgxEnrollmentRepository) UpdateEnrollmentStatus(ctx context.Context, scope domain.TenantScope, enrollmentID string, status domain.EnrollmentStatus, cancelledAt *time.Time, updatedBy string, updatedAt time.Time) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE enrollments SET status = $1, cancelled_at = $2, last_updated_at = $3, last_updated_by = $4
		WHERE enrollment_id = $5 AND owner_id = $6 AND sub_group_key = $7`,
		string(status), cancelledAt, updatedAt, updatedBy, enrollmentID, scope.OwnerID, scope.SubGroupKey)
	if err != nil {
		return translateError(err, fmt.Sprintf("update enrollment %s", enrollmentID))
	}
	return requireOneRow(tag, fmt.Sprintf("enrollment %s", enrollmentID))
}

func (r *PgxEnrollmentRepository) UpdatePaymentStatus(ctx context.Context, scope domain.TenantScope, enrollmentID string, paymentCurrent bool, updatedBy string, updatedAt time.Time) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE enrollments SET payment_current = $1, last_updated_at = $2, last_updated_by = $3
		WHERE enrollment_id = $4 AND owner_id = $5 AND sub_group_key = $6`,
		paymentCurrent, updatedAt, updatedBy, enrollmentID, scope.OwnerID, scope.SubGroupKey)
	if err != nil {
		return translateError(err, fmt.Sprintf("update enrollment %s", enrollmentID))
	}
	return requireOneRow(tag, fmt.Sprintf("enrollment %s", enrollmentID))
}
