package database

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"chat-backend/internal/errs"
	"chat-backend/internal/models"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
)

// Key layout:
//
//	user:{id}                          -> models.User
//	group:{id}                         -> models.Group
//	member:{group}:{user}              -> models.Membership
//	usergroup:{user}:{group}           -> empty, reverse index for ListUserGroups
//	dm:{sender}:{receiver}:{ts}:{id}   -> models.DirectMessage
//	gmsg:{group}:{ts}:{id}             -> models.GroupMessage
//
// ts is the creation time in nanoseconds, zero padded to 19 digits so that a
// prefix scan returns messages in chronological order.
const conflictRetries = 3

type BadgerDB struct {
	db  *badger.DB
	now func() time.Time
}

// NewBadgerDB opens a store at path. An empty path opens an in-memory store.
func NewBadgerDB(path string) (*BadgerDB, error) {
	opts := badger.DefaultOptions(path).WithLoggingLevel(badger.ERROR)
	if path == "" {
		opts = opts.WithInMemory(true)
	}
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger: %w", err)
	}
	return &BadgerDB{db: db, now: func() time.Time { return time.Now().UTC() }}, nil
}

func (b *BadgerDB) Close() error {
	return b.db.Close()
}

// PutUser stores or replaces a user record.
func (b *BadgerDB) PutUser(_ context.Context, user *models.User) error {
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = b.now()
	}
	return b.update("put user", func(txn *badger.Txn) error {
		return setJSON(txn, userKey(user.ID), user)
	})
}

func (b *BadgerDB) GetUserByID(_ context.Context, id string) (*models.User, error) {
	user := &models.User{}
	if err := b.view("get user", func(txn *badger.Txn) error {
		return getJSON(txn, userKey(id), user)
	}); err != nil {
		return nil, err
	}
	return user, nil
}

func (b *BadgerDB) GetGroupByID(_ context.Context, id string) (*models.Group, error) {
	group := &models.Group{}
	if err := b.view("get group", func(txn *badger.Txn) error {
		return getJSON(txn, groupKey(id), group)
	}); err != nil {
		return nil, err
	}
	return group, nil
}

func (b *BadgerDB) CreateGroup(_ context.Context, name, creatorID string) (*models.Group, error) {
	now := b.now()
	group := &models.Group{ID: uuid.NewString(), Name: name, CreatedAt: now, UpdatedAt: now}

	err := b.update("create group", func(txn *badger.Txn) error {
		if err := exists(txn, userKey(creatorID)); err != nil {
			return err
		}
		if err := setJSON(txn, groupKey(group.ID), group); err != nil {
			return err
		}
		return putMembership(txn, &models.Membership{UserID: creatorID, GroupID: group.ID, JoinedAt: now})
	})
	if err != nil {
		return nil, err
	}
	return group, nil
}

func (b *BadgerDB) ListUserGroups(_ context.Context, userID string) ([]*models.GroupSummary, error) {
	var groups []*models.GroupSummary
	err := b.view("list groups", func(txn *badger.Txn) error {
		prefix := []byte("usergroup:" + userID + ":")
		it := txn.NewIterator(badger.IteratorOptions{Prefix: prefix})
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			groupID := string(it.Item().Key()[len(prefix):])

			summary := &models.GroupSummary{}
			if err := getJSON(txn, groupKey(groupID), &summary.Group); err != nil {
				return err
			}
			m := &models.Membership{}
			if err := getJSON(txn, memberKey(groupID, userID), m); err != nil {
				return err
			}
			summary.JoinedAt = m.JoinedAt
			summary.MemberCount = countPrefix(txn, []byte("member:"+groupID+":"))
			groups = append(groups, summary)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(groups, func(i, j int) bool { return groups[i].JoinedAt.After(groups[j].JoinedAt) })
	return groups, nil
}

func (b *BadgerDB) GetMembership(_ context.Context, userID, groupID string) (*models.Membership, error) {
	m := &models.Membership{}
	if err := b.view("get membership", func(txn *badger.Txn) error {
		return getJSON(txn, memberKey(groupID, userID), m)
	}); err != nil {
		return nil, err
	}
	return m, nil
}

func (b *BadgerDB) CreateMembership(_ context.Context, userID, groupID string) (*models.Membership, error) {
	m := &models.Membership{UserID: userID, GroupID: groupID, JoinedAt: b.now()}
	err := b.update("create membership", func(txn *badger.Txn) error {
		if err := exists(txn, userKey(userID)); err != nil {
			return err
		}
		if err := exists(txn, groupKey(groupID)); err != nil {
			return err
		}
		if err := exists(txn, memberKey(groupID, userID)); err == nil {
			return errs.ErrAlreadyExists
		} else if !errors.Is(err, errs.ErrNotFound) {
			return err
		}
		return putMembership(txn, m)
	})
	if err != nil {
		return nil, err
	}
	return m, nil
}

func (b *BadgerDB) DeleteMembership(_ context.Context, userID, groupID string) error {
	return b.update("delete membership", func(txn *badger.Txn) error {
		if err := exists(txn, memberKey(groupID, userID)); err != nil {
			return err
		}
		if err := txn.Delete(memberKey(groupID, userID)); err != nil {
			return err
		}
		return txn.Delete(userGroupKey(userID, groupID))
	})
}

func (b *BadgerDB) ListGroupMembers(_ context.Context, groupID string) ([]*models.Member, error) {
	var members []*models.Member
	err := b.view("list members", func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.IteratorOptions{Prefix: []byte("member:" + groupID + ":")})
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			m := &models.Membership{}
			if err := it.Item().Value(func(val []byte) error { return json.Unmarshal(val, m) }); err != nil {
				return err
			}
			user := &models.User{}
			if err := getJSON(txn, userKey(m.UserID), user); err != nil {
				return err
			}
			members = append(members, &models.Member{
				ID:        user.ID,
				Email:     user.Email,
				FirstName: user.FirstName,
				LastName:  user.LastName,
				JoinedAt:  m.JoinedAt,
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(members, func(i, j int) bool { return members[i].JoinedAt.Before(members[j].JoinedAt) })
	return members, nil
}

func (b *BadgerDB) CreateDirectMessage(_ context.Context, senderID, receiverID, content string) (*models.DirectMessage, error) {
	msg := &models.DirectMessage{
		ID:         uuid.NewString(),
		Content:    content,
		SenderID:   senderID,
		ReceiverID: receiverID,
		CreatedAt:  b.now(),
	}
	key := []byte(fmt.Sprintf("dm:%s:%s:%019d:%s", senderID, receiverID, msg.CreatedAt.UnixNano(), msg.ID))
	err := b.update("create direct message", func(txn *badger.Txn) error {
		if err := exists(txn, userKey(receiverID)); err != nil {
			return err
		}
		return setJSON(txn, key, msg)
	})
	if err != nil {
		return nil, err
	}
	return msg, nil
}

func (b *BadgerDB) CreateGroupMessage(_ context.Context, userID, groupID, content string) (*models.GroupMessage, error) {
	msg := &models.GroupMessage{
		ID:        uuid.NewString(),
		Content:   content,
		UserID:    userID,
		GroupID:   groupID,
		CreatedAt: b.now(),
	}
	key := []byte(fmt.Sprintf("gmsg:%s:%019d:%s", groupID, msg.CreatedAt.UnixNano(), msg.ID))
	err := b.update("create group message", func(txn *badger.Txn) error {
		if err := exists(txn, groupKey(groupID)); err != nil {
			return err
		}
		return setJSON(txn, key, msg)
	})
	if err != nil {
		return nil, err
	}
	return msg, nil
}

// GroupMessages returns the stored messages of a group, oldest first.
func (b *BadgerDB) GroupMessages(_ context.Context, groupID string) ([]*models.GroupMessage, error) {
	var msgs []*models.GroupMessage
	err := b.view("list group messages", func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.IteratorOptions{Prefix: []byte("gmsg:" + groupID + ":")})
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			msg := &models.GroupMessage{}
			if err := it.Item().Value(func(val []byte) error { return json.Unmarshal(val, msg) }); err != nil {
				return err
			}
			msgs = append(msgs, msg)
		}
		return nil
	})
	return msgs, err
}

// DirectMessages returns the messages sent from senderID to receiverID, oldest first.
func (b *BadgerDB) DirectMessages(_ context.Context, senderID, receiverID string) ([]*models.DirectMessage, error) {
	var msgs []*models.DirectMessage
	err := b.view("list direct messages", func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.IteratorOptions{Prefix: []byte("dm:" + senderID + ":" + receiverID + ":")})
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			msg := &models.DirectMessage{}
			if err := it.Item().Value(func(val []byte) error { return json.Unmarshal(val, msg) }); err != nil {
				return err
			}
			msgs = append(msgs, msg)
		}
		return nil
	})
	return msgs, err
}

func (b *BadgerDB) view(op string, fn func(txn *badger.Txn) error) error {
	return wrapBadger(op, b.db.View(fn))
}

// update retries on transaction conflicts so that the losing writer observes
// the winner's state instead of failing.
func (b *BadgerDB) update(op string, fn func(txn *badger.Txn) error) error {
	var err error
	for i := 0; i < conflictRetries; i++ {
		err = b.db.Update(fn)
		if !errors.Is(err, badger.ErrConflict) {
			break
		}
	}
	return wrapBadger(op, err)
}

func wrapBadger(op string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, badger.ErrKeyNotFound), errors.Is(err, errs.ErrNotFound):
		return fmt.Errorf("%s: %w", op, errs.ErrNotFound)
	case errors.Is(err, errs.ErrAlreadyExists):
		return fmt.Errorf("%s: %w", op, errs.ErrAlreadyExists)
	default:
		return fmt.Errorf("%s: %w: %w", op, errs.ErrStorage, err)
	}
}

func putMembership(txn *badger.Txn, m *models.Membership) error {
	if err := setJSON(txn, memberKey(m.GroupID, m.UserID), m); err != nil {
		return err
	}
	return txn.Set(userGroupKey(m.UserID, m.GroupID), nil)
}

func exists(txn *badger.Txn, key []byte) error {
	if _, err := txn.Get(key); err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return errs.ErrNotFound
		}
		return err
	}
	return nil
}

func countPrefix(txn *badger.Txn, prefix []byte) int {
	opts := badger.IteratorOptions{Prefix: prefix}
	it := txn.NewIterator(opts)
	defer it.Close()

	n := 0
	for it.Rewind(); it.Valid(); it.Next() {
		n++
	}
	return n
}

func getJSON(txn *badger.Txn, key []byte, v any) error {
	item, err := txn.Get(key)
	if err != nil {
		return err
	}
	return item.Value(func(val []byte) error {
		return json.Unmarshal(val, v)
	})
}

func setJSON(txn *badger.Txn, key []byte, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal failed: %w", err)
	}
	return txn.Set(key, data)
}

func userKey(id string) []byte  { return []byte("user:" + id) }
func groupKey(id string) []byte { return []byte("group:" + id) }
func memberKey(groupID, userID string) []byte {
	return []byte("member:" + groupID + ":" + userID)
}
func userGroupKey(userID, groupID string) []byte {
	return []byte("usergroup:" + userID + ":" + groupID)
}
