package service

import (
	"context"
	"errors"
	"sort"
	"time"

	"chat-journal-be/internal/entity"
	"chat-journal-be/internal/repository/contract"
	"chat-journal-be/internal/repository/specification"
	"chat-journal-be/internal/repository/unitofwork"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// memStore is the backing state the fake repositories read and write.
// Timestamps come from a monotonic sequence so ordering assertions are
// deterministic regardless of wall-clock resolution.
type memStore struct {
	users    map[uuid.UUID]entity.User
	chats    map[uuid.UUID]entity.Chat
	messages map[uuid.UUID]entity.ChatMessage

	seq  int
	base time.Time

	failMessageCreate bool
}

func newMemStore() *memStore {
	return &memStore{
		users:    make(map[uuid.UUID]entity.User),
		chats:    make(map[uuid.UUID]entity.Chat),
		messages: make(map[uuid.UUID]entity.ChatMessage),
		base:     time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (st *memStore) now() time.Time {
	st.seq++
	return st.base.Add(time.Duration(st.seq) * time.Second)
}

func (st *memStore) snapshot() *memStore {
	copied := newMemStore()
	copied.seq = st.seq
	copied.failMessageCreate = st.failMessageCreate
	for k, v := range st.users {
		copied.users[k] = v
	}
	for k, v := range st.chats {
		copied.chats[k] = v
	}
	for k, v := range st.messages {
		copied.messages[k] = v
	}
	return copied
}

func (st *memStore) restore(snap *memStore) {
	st.users = snap.users
	st.chats = snap.chats
	st.messages = snap.messages
	st.seq = snap.seq
}

// query collects the filter state a specification list expresses.
type query struct {
	byID     *uuid.UUID
	byEmail  *string
	ownedBy  *uuid.UUID
	byChatID *uuid.UUID
	orderBy  *specification.OrderBy
	limit    int
	offset   int
}

func parseSpecs(specs []specification.Specification) query {
	q := query{limit: -1}
	for _, sp := range specs {
		switch s := sp.(type) {
		case specification.ByID:
			id := s.ID
			q.byID = &id
		case specification.ByEmail:
			email := s.Email
			q.byEmail = &email
		case specification.OwnedBy:
			id := s.UserID
			q.ownedBy = &id
		case specification.ByChatID:
			id := s.ChatID
			q.byChatID = &id
		case specification.OrderBy:
			order := s
			q.orderBy = &order
		case specification.Pagination:
			q.limit = s.Limit
			q.offset = s.Offset
		case specification.Limit:
			q.limit = s.N
		}
	}
	return q
}

func (q query) page(n int) (int, int) {
	start := q.offset
	if start > n {
		start = n
	}
	end := n
	if q.limit >= 0 && start+q.limit < end {
		end = start + q.limit
	}
	return start, end
}

// fakeFactory satisfies unitofwork.RepositoryFactory over a memStore.
type fakeFactory struct {
	store *memStore
}

func newFakeFactory(store *memStore) *fakeFactory {
	return &fakeFactory{store: store}
}

func (f *fakeFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return &fakeUnitOfWork{store: f.store}
}

type fakeUnitOfWork struct {
	store *memStore
	snap  *memStore
}

func (u *fakeUnitOfWork) Begin(ctx context.Context) error {
	if u.snap != nil {
		return errors.New("transaction already started")
	}
	u.snap = u.store.snapshot()
	return nil
}

func (u *fakeUnitOfWork) Commit() error {
	if u.snap == nil {
		return errors.New("no transaction to commit")
	}
	u.snap = nil
	return nil
}

func (u *fakeUnitOfWork) Rollback() error {
	if u.snap == nil {
		return errors.New("no transaction to rollback")
	}
	u.store.restore(u.snap)
	u.snap = nil
	return nil
}

func (u *fakeUnitOfWork) UserRepository() contract.UserRepository {
	return &fakeUserRepository{store: u.store}
}

func (u *fakeUnitOfWork) ChatRepository() contract.ChatRepository {
	return &fakeChatRepository{store: u.store}
}

func (u *fakeUnitOfWork) ChatMessageRepository() contract.ChatMessageRepository {
	return &fakeChatMessageRepository{store: u.store}
}

type fakeUserRepository struct {
	store *memStore
}

func (r *fakeUserRepository) Create(ctx context.Context, user *entity.User) error {
	for _, existing := range r.store.users {
		if existing.Email == user.Email {
			return gorm.ErrDuplicatedKey
		}
	}
	now := r.store.now()
	user.CreatedAt = now
	user.UpdatedAt = now
	r.store.users[user.Id] = *user
	return nil
}

func (r *fakeUserRepository) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.User, error) {
	q := parseSpecs(specs)
	for _, user := range r.store.users {
		if q.byID != nil && user.Id != *q.byID {
			continue
		}
		if q.byEmail != nil && user.Email != *q.byEmail {
			continue
		}
		u := user
		return &u, nil
	}
	return nil, nil
}

func (r *fakeUserRepository) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	q := parseSpecs(specs)
	var n int64
	for _, user := range r.store.users {
		if q.byEmail != nil && user.Email != *q.byEmail {
			continue
		}
		n++
	}
	return n, nil
}

type fakeChatRepository struct {
	store *memStore
}

func (r *fakeChatRepository) Create(ctx context.Context, chat *entity.Chat) error {
	now := r.store.now()
	chat.CreatedAt = now
	chat.UpdatedAt = now
	r.store.chats[chat.Id] = *chat
	return nil
}

func (r *fakeChatRepository) Update(ctx context.Context, chat *entity.Chat) error {
	if _, ok := r.store.chats[chat.Id]; !ok {
		return nil
	}
	chat.UpdatedAt = r.store.now()
	r.store.chats[chat.Id] = *chat
	return nil
}

func (r *fakeChatRepository) Touch(ctx context.Context, id uuid.UUID) error {
	chat, ok := r.store.chats[id]
	if !ok {
		return nil
	}
	chat.UpdatedAt = r.store.now()
	r.store.chats[id] = chat
	return nil
}

func (r *fakeChatRepository) Delete(ctx context.Context, id uuid.UUID) error {
	delete(r.store.chats, id)
	// Schema-level ON DELETE CASCADE takes the messages with the chat.
	for msgID, msg := range r.store.messages {
		if msg.ChatId == id {
			delete(r.store.messages, msgID)
		}
	}
	return nil
}

func (r *fakeChatRepository) matching(q query) []entity.Chat {
	var out []entity.Chat
	for _, chat := range r.store.chats {
		if q.byID != nil && chat.Id != *q.byID {
			continue
		}
		if q.ownedBy != nil && chat.UserId != *q.ownedBy {
			continue
		}
		out = append(out, chat)
	}
	if q.orderBy != nil {
		sort.Slice(out, func(i, j int) bool {
			var less bool
			switch q.orderBy.Field {
			case "created_at":
				less = out[i].CreatedAt.Before(out[j].CreatedAt)
			default:
				less = out[i].UpdatedAt.Before(out[j].UpdatedAt)
			}
			if q.orderBy.Desc {
				return !less
			}
			return less
		})
	}
	return out
}

func (r *fakeChatRepository) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Chat, error) {
	out := r.matching(parseSpecs(specs))
	if len(out) == 0 {
		return nil, nil
	}
	c := out[0]
	return &c, nil
}

func (r *fakeChatRepository) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Chat, error) {
	q := parseSpecs(specs)
	out := r.matching(q)
	start, end := q.page(len(out))

	result := make([]*entity.Chat, 0, end-start)
	for i := start; i < end; i++ {
		c := out[i]
		result = append(result, &c)
	}
	return result, nil
}

func (r *fakeChatRepository) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	return int64(len(r.matching(parseSpecs(specs)))), nil
}

type fakeChatMessageRepository struct {
	store *memStore
}

func (r *fakeChatMessageRepository) Create(ctx context.Context, message *entity.ChatMessage) error {
	if r.store.failMessageCreate {
		return errors.New("insert failed")
	}
	message.CreatedAt = r.store.now()
	r.store.messages[message.Id] = *message
	return nil
}

func (r *fakeChatMessageRepository) matching(q query) []entity.ChatMessage {
	var out []entity.ChatMessage
	for _, msg := range r.store.messages {
		if q.byID != nil && msg.Id != *q.byID {
			continue
		}
		if q.byChatID != nil && msg.ChatId != *q.byChatID {
			continue
		}
		out = append(out, msg)
	}
	if q.orderBy != nil {
		sort.Slice(out, func(i, j int) bool {
			less := out[i].CreatedAt.Before(out[j].CreatedAt)
			if q.orderBy.Desc {
				return !less
			}
			return less
		})
	}
	return out
}

func (r *fakeChatMessageRepository) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ChatMessage, error) {
	out := r.matching(parseSpecs(specs))
	if len(out) == 0 {
		return nil, nil
	}
	m := out[0]
	return &m, nil
}

func (r *fakeChatMessageRepository) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ChatMessage, error) {
	q := parseSpecs(specs)
	out := r.matching(q)
	start, end := q.page(len(out))

	result := make([]*entity.ChatMessage, 0, end-start)
	for i := start; i < end; i++ {
		m := out[i]
		result = append(result, &m)
	}
	return result, nil
}

func (r *fakeChatMessageRepository) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	return int64(len(r.matching(parseSpecs(specs)))), nil
}

func (r *fakeChatMessageRepository) CountForOwner(ctx context.Context, userID uuid.UUID) (int64, error) {
	var n int64
	for _, msg := range r.store.messages {
		chat, ok := r.store.chats[msg.ChatId]
		if !ok || chat.UserId != userID {
			continue
		}
		n++
	}
	return n, nil
}
