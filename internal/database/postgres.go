package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"chat-backend/internal/database/migrations"
	"chat-backend/internal/errs"
	"chat-backend/internal/models"
	"chat-backend/pkg/logger"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgInvalidText         = "22P02"
)

type PostgresDB struct {
	pool *pgxpool.Pool
}

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

func NewPostgresDB(ctx context.Context, databaseURL string) (*PostgresDB, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	db := &PostgresDB{pool: pool}
	if err := db.RunMigrations(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("migration error: %w", err)
	}

	logger.Info("Connected to database successfully")
	return db, nil
}

// RunMigrations applies the embedded goose migrations through the pool.
func (db *PostgresDB) RunMigrations(ctx context.Context) error {
	sqlDB := stdlib.OpenDBFromPool(db.pool)
	defer sqlDB.Close()

	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("pgx"); err != nil {
		return err
	}
	return gooseUpContext(ctx, sqlDB, ".")
}

func (db *PostgresDB) Close() error {
	db.pool.Close()
	return nil
}

func (db *PostgresDB) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	query := `SELECT id, email, first_name, last_name, is_verified, created_at FROM users WHERE id = $1`

	user := &models.User{}
	err := db.pool.QueryRow(ctx, query, id).Scan(
		&user.ID, &user.Email, &user.FirstName, &user.LastName, &user.IsVerified, &user.CreatedAt,
	)
	if err != nil {
		return nil, translate("get user", err)
	}
	return user, nil
}

func (db *PostgresDB) GetGroupByID(ctx context.Context, id string) (*models.Group, error) {
	query := `SELECT id, name, created_at, updated_at FROM groups WHERE id = $1`

	group := &models.Group{}
	err := db.pool.QueryRow(ctx, query, id).Scan(&group.ID, &group.Name, &group.CreatedAt, &group.UpdatedAt)
	if err != nil {
		return nil, translate("get group", err)
	}
	return group, nil
}

func (db *PostgresDB) CreateGroup(ctx context.Context, name, creatorID string) (*models.Group, error) {
	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return nil, translate("create group", err)
	}
	defer tx.Rollback(ctx)

	group := &models.Group{}
	err = tx.QueryRow(ctx,
		`INSERT INTO groups (name) VALUES ($1) RETURNING id, name, created_at, updated_at`, name,
	).Scan(&group.ID, &group.Name, &group.CreatedAt, &group.UpdatedAt)
	if err != nil {
		return nil, translate("create group", err)
	}

	if _, err := tx.Exec(ctx,
		`INSERT INTO group_memberships (user_id, group_id) VALUES ($1, $2)`, creatorID, group.ID,
	); err != nil {
		return nil, translate("create group membership", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, translate("create group", err)
	}
	return group, nil
}

func (db *PostgresDB) ListUserGroups(ctx context.Context, userID string) ([]*models.GroupSummary, error) {
	query := `
		SELECT g.id, g.name, g.created_at, g.updated_at, m.joined_at,
		       (SELECT COUNT(*) FROM group_memberships c WHERE c.group_id = g.id)
		FROM group_memberships m
		JOIN groups g ON g.id = m.group_id
		WHERE m.user_id = $1
		ORDER BY m.joined_at DESC`

	rows, err := db.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, translate("list groups", err)
	}
	defer rows.Close()

	var groups []*models.GroupSummary
	for rows.Next() {
		g := &models.GroupSummary{}
		if err := rows.Scan(&g.ID, &g.Name, &g.CreatedAt, &g.UpdatedAt, &g.JoinedAt, &g.MemberCount); err != nil {
			return nil, translate("list groups", err)
		}
		groups = append(groups, g)
	}
	if err := rows.Err(); err != nil {
		return nil, translate("list groups", err)
	}
	return groups, nil
}

func (db *PostgresDB) GetMembership(ctx context.Context, userID, groupID string) (*models.Membership, error) {
	query := `SELECT user_id, group_id, joined_at FROM group_memberships WHERE user_id = $1 AND group_id = $2`

	m := &models.Membership{}
	if err := db.pool.QueryRow(ctx, query, userID, groupID).Scan(&m.UserID, &m.GroupID, &m.JoinedAt); err != nil {
		return nil, translate("get membership", err)
	}
	return m, nil
}

func (db *PostgresDB) CreateMembership(ctx context.Context, userID, groupID string) (*models.Membership, error) {
	query := `
		INSERT INTO group_memberships (user_id, group_id) VALUES ($1, $2)
		RETURNING user_id, group_id, joined_at`

	m := &models.Membership{}
	if err := db.pool.QueryRow(ctx, query, userID, groupID).Scan(&m.UserID, &m.GroupID, &m.JoinedAt); err != nil {
		return nil, translate("create membership", err)
	}
	return m, nil
}

func (db *PostgresDB) DeleteMembership(ctx context.Context, userID, groupID string) error {
	tag, err := db.pool.Exec(ctx, `DELETE FROM group_memberships WHERE user_id = $1 AND group_id = $2`, userID, groupID)
	if err != nil {
		return translate("delete membership", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("delete membership: %w", errs.ErrNotFound)
	}
	return nil
}

func (db *PostgresDB) ListGroupMembers(ctx context.Context, groupID string) ([]*models.Member, error) {
	query := `
		SELECT u.id, u.email, u.first_name, u.last_name, m.joined_at
		FROM group_memberships m
		JOIN users u ON u.id = m.user_id
		WHERE m.group_id = $1
		ORDER BY m.joined_at`

	rows, err := db.pool.Query(ctx, query, groupID)
	if err != nil {
		return nil, translate("list members", err)
	}
	defer rows.Close()

	var members []*models.Member
	for rows.Next() {
		member := &models.Member{}
		if err := rows.Scan(&member.ID, &member.Email, &member.FirstName, &member.LastName, &member.JoinedAt); err != nil {
			return nil, translate("list members", err)
		}
		members = append(members, member)
	}
	if err := rows.Err(); err != nil {
		return nil, translate("list members", err)
	}
	return members, nil
}

func (db *PostgresDB) CreateDirectMessage(ctx context.Context, senderID, receiverID, content string) (*models.DirectMessage, error) {
	query := `
		INSERT INTO direct_messages (content, sender_id, receiver_id) VALUES ($1, $2, $3)
		RETURNING id, content, sender_id, receiver_id, created_at`

	msg := &models.DirectMessage{}
	err := db.pool.QueryRow(ctx, query, content, senderID, receiverID).Scan(
		&msg.ID, &msg.Content, &msg.SenderID, &msg.ReceiverID, &msg.CreatedAt,
	)
	if err != nil {
		return nil, translate("create direct message", err)
	}
	return msg, nil
}

func (db *PostgresDB) CreateGroupMessage(ctx context.Context, userID, groupID, content string) (*models.GroupMessage, error) {
	query := `
		INSERT INTO group_messages (content, user_id, group_id) VALUES ($1, $2, $3)
		RETURNING id, content, user_id, group_id, created_at`

	msg := &models.GroupMessage{}
	err := db.pool.QueryRow(ctx, query, content, userID, groupID).Scan(
		&msg.ID, &msg.Content, &msg.UserID, &msg.GroupID, &msg.CreatedAt,
	)
	if err != nil {
		return nil, translate("create group message", err)
	}
	return msg, nil
}

// translate maps driver errors onto the errs kinds.
func translate(op string, err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%s: %w", op, errs.ErrNotFound)
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return fmt.Errorf("%s: %w", op, errs.ErrAlreadyExists)
		case pgForeignKeyViolation, pgInvalidText:
			// a dangling reference or a malformed uuid can never match a row
			return fmt.Errorf("%s: %w", op, errs.ErrNotFound)
		}
	}
	return fmt.Errorf("%s: %w: %w", op, errs.ErrStorage, err)
}
