package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/settleup/internal/models"
	"github.com/mmynk/settleup/internal/storage"
)

// CreateGroup persists a new group and its members in one transaction.
func (s *Store) CreateGroup(ctx context.Context, group *models.Group) error {
	// Generate ID if not set
	if group.ID == "" {
		group.ID = uuid.New().String()
	}
	if group.CreatedAt == 0 {
		group.CreatedAt = time.Now().Unix()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		s.rebind("INSERT INTO groups (id, name, created_at) VALUES (?, ?, ?)"),
		group.ID, group.Name, group.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert group: %w", err)
	}

	for i := range group.Members {
		if err := s.addMember(ctx, tx, group.ID, &group.Members[i]); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// AddGroupMember links a member to an existing group, creating the member
// first when it has no ID.
func (s *Store) AddGroupMember(ctx context.Context, groupID string, member *models.Member) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := s.groupExists(ctx, tx, groupID); err != nil {
		return err
	}
	if err := s.addMember(ctx, tx, groupID, member); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

func (s *Store) addMember(ctx context.Context, q queryer, groupID string, member *models.Member) error {
	if member.ID == "" {
		member.ID = uuid.New().String()
		if member.CreatedAt == 0 {
			member.CreatedAt = time.Now().Unix()
		}
		_, err := q.ExecContext(ctx,
			s.rebind("INSERT INTO members (id, name, created_at) VALUES (?, ?, ?)"),
			member.ID, member.Name, member.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to insert member: %w", err)
		}
	} else {
		existing, err := s.getMember(ctx, q, member.ID)
		if err != nil {
			return err
		}
		*member = *existing
	}

	_, err := q.ExecContext(ctx,
		s.rebind("INSERT INTO group_members (group_id, member_id) VALUES (?, ?) ON CONFLICT DO NOTHING"),
		groupID, member.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to insert group member: %w", err)
	}

	return nil
}

func (s *Store) getMember(ctx context.Context, q queryer, memberID string) (*models.Member, error) {
	m := &models.Member{}
	err := q.QueryRowContext(ctx,
		s.rebind("SELECT id, name, created_at FROM members WHERE id = ?"),
		memberID,
	).Scan(&m.ID, &m.Name, &m.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("member %w: %s", storage.ErrNotFound, memberID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get member: %w", err)
	}
	return m, nil
}

func (s *Store) groupExists(ctx context.Context, q queryer, groupID string) error {
	var exists int
	err := q.QueryRowContext(ctx, s.rebind("SELECT 1 FROM groups WHERE id = ?"), groupID).Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("group %w: %s", storage.ErrNotFound, groupID)
	}
	if err != nil {
		return fmt.Errorf("failed to check group existence: %w", err)
	}
	return nil
}

// GetGroup retrieves a group by ID, including its members.
func (s *Store) GetGroup(ctx context.Context, groupID string) (*models.Group, error) {
	return s.getGroup(ctx, s.db, groupID)
}

func (s *Store) getGroup(ctx context.Context, q queryer, groupID string) (*models.Group, error) {
	group := &models.Group{}
	err := q.QueryRowContext(ctx,
		s.rebind("SELECT id, name, created_at FROM groups WHERE id = ?"),
		groupID,
	).Scan(&group.ID, &group.Name, &group.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("group %w: %s", storage.ErrNotFound, groupID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get group: %w", err)
	}

	if err := s.loadMembers(ctx, q, []*models.Group{group}); err != nil {
		return nil, err
	}
	return group, nil
}

// ListGroups retrieves all groups, newest first.
func (s *Store) ListGroups(ctx context.Context) ([]*models.Group, error) {
	return s.listGroups(ctx,
		"SELECT id, name, created_at FROM groups ORDER BY created_at DESC, id",
	)
}

// ListGroupsByMember retrieves every group the member belongs to, oldest first.
func (s *Store) ListGroupsByMember(ctx context.Context, memberID string) ([]*models.Group, error) {
	return s.listGroups(ctx,
		`SELECT g.id, g.name, g.created_at
		 FROM groups g JOIN group_members gm ON gm.group_id = g.id
		 WHERE gm.member_id = ?
		 ORDER BY g.created_at, g.id`,
		memberID,
	)
}

func (s *Store) listGroups(ctx context.Context, query string, args ...any) ([]*models.Group, error) {
	rows, err := s.db.QueryContext(ctx, s.rebind(query), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list groups: %w", err)
	}
	defer rows.Close()

	var groups []*models.Group
	for rows.Next() {
		group := &models.Group{}
		if err := rows.Scan(&group.ID, &group.Name, &group.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan group: %w", err)
		}
		groups = append(groups, group)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate groups: %w", err)
	}
	rows.Close()

	if err := s.loadMembers(ctx, s.db, groups); err != nil {
		return nil, err
	}
	return groups, nil
}

// loadMembers fills in Members for each group, ordered by name.
func (s *Store) loadMembers(ctx context.Context, q queryer, groups []*models.Group) error {
	for _, group := range groups {
		rows, err := q.QueryContext(ctx,
			s.rebind(`SELECT m.id, m.name, m.created_at
			 FROM members m JOIN group_members gm ON gm.member_id = m.id
			 WHERE gm.group_id = ?
			 ORDER BY m.name, m.id`),
			group.ID,
		)
		if err != nil {
			return fmt.Errorf("failed to get group members: %w", err)
		}

		for rows.Next() {
			var m models.Member
			if err := rows.Scan(&m.ID, &m.Name, &m.CreatedAt); err != nil {
				rows.Close()
				return fmt.Errorf("failed to scan group member: %w", err)
			}
			group.Members = append(group.Members, m)
		}
		rows.Close()
		if err := rows.Err(); err != nil {
			return fmt.Errorf("failed to iterate group members: %w", err)
		}
	}
	return nil
}
