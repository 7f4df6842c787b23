package service

import (
	"context"
	"sort"
	"time"

	"github.com/clickstar/taskbot/internal/domain"
)

// In-memory stand-ins for the repository layer, honoring the same
// conditional-write contracts as the SQL implementations.

type fakeUserStore struct {
	users map[int64]*domain.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[int64]*domain.User)}
}

func (f *fakeUserStore) Get(_ context.Context, id int64) (*domain.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUserStore) Create(_ context.Context, id int64, username, firstName string) (bool, error) {
	if _, ok := f.users[id]; ok {
		return false, nil
	}
	f.users[id] = &domain.User{
		TelegramID: id,
		Username:   username,
		FirstName:  firstName,
		CreatedAt:  time.Now(),
	}
	return true, nil
}

func (f *fakeUserStore) UpdateInfo(_ context.Context, id int64, username, firstName string) error {
	if u, ok := f.users[id]; ok {
		u.Username = username
		u.FirstName = firstName
	}
	return nil
}

func (f *fakeUserStore) AddPoints(_ context.Context, id int64, amount int64) (int64, error) {
	u, ok := f.users[id]
	if !ok {
		return 0, domain.ErrUserNotFound
	}
	u.Points += amount
	return u.Points, nil
}

func (f *fakeUserStore) DebitPoints(_ context.Context, id int64, amount int64) (int64, error) {
	u, ok := f.users[id]
	if !ok {
		return 0, domain.ErrUserNotFound
	}
	if u.Points < amount {
		return u.Points, domain.ErrInsufficientBalance
	}
	u.Points -= amount
	return u.Points, nil
}

func (f *fakeUserStore) AddReferral(_ context.Context, id int64, by int64) (int64, error) {
	u, ok := f.users[id]
	if !ok {
		return 0, domain.ErrUserNotFound
	}
	u.Referrals += by
	return u.Referrals, nil
}

func (f *fakeUserStore) SetReferredBy(_ context.Context, id, referrerID int64) (bool, error) {
	u, ok := f.users[id]
	if !ok || u.ReferredBy != nil {
		return false, nil
	}
	ref := referrerID
	u.ReferredBy = &ref
	return true, nil
}

func (f *fakeUserStore) Top(_ context.Context, limit int) ([]domain.User, error) {
	all := make([]domain.User, 0, len(f.users))
	for _, u := range f.users {
		all = append(all, *u)
	}
	sort.SliceStable(all, func(i, j int) bool {
		if all[i].Referrals != all[j].Referrals {
			return all[i].Referrals > all[j].Referrals
		}
		return all[i].Points > all[j].Points
	})
	if len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}

func (f *fakeUserStore) Stats(_ context.Context) (domain.Stats, error) {
	var s domain.Stats
	for _, u := range f.users {
		s.Users++
		s.TotalPoints += u.Points
	}
	return s, nil
}

type fakeTaskStore struct {
	order []string
	tasks map[string]*domain.Task
}

func newFakeTaskStore() *fakeTaskStore {
	return &fakeTaskStore{tasks: make(map[string]*domain.Task)}
}

func (f *fakeTaskStore) Get(_ context.Context, id string) (*domain.Task, error) {
	t, ok := f.tasks[id]
	if !ok {
		return nil, domain.ErrTaskNotFound
	}
	cp := *t
	return &cp, nil
}

func (f *fakeTaskStore) ListAvailable(_ context.Context, filter domain.TaskType) ([]domain.Task, error) {
	var out []domain.Task
	for _, id := range f.order {
		t := f.tasks[id]
		if !t.Available {
			continue
		}
		if filter != "" && t.Type != filter {
			continue
		}
		out = append(out, *t)
	}
	return out, nil
}

func (f *fakeTaskStore) Upsert(_ context.Context, t *domain.Task) error {
	if _, ok := f.tasks[t.ID]; !ok {
		f.order = append(f.order, t.ID)
	}
	cp := *t
	f.tasks[t.ID] = &cp
	return nil
}

func (f *fakeTaskStore) Delete(_ context.Context, id string) error {
	if _, ok := f.tasks[id]; !ok {
		return domain.ErrTaskNotFound
	}
	delete(f.tasks, id)
	for i, ordered := range f.order {
		if ordered == id {
			f.order = append(f.order[:i], f.order[i+1:]...)
			break
		}
	}
	return nil
}

func (f *fakeTaskStore) SetAvailable(_ context.Context, id string, available bool) error {
	t, ok := f.tasks[id]
	if !ok {
		return domain.ErrTaskNotFound
	}
	t.Available = available
	return nil
}

func (f *fakeTaskStore) Count(_ context.Context) (int64, error) {
	return int64(len(f.tasks)), nil
}

type completionKey struct {
	userID int64
	taskID string
}

type fakeCompletionStore struct {
	completions map[completionKey]*domain.Completion
}

func newFakeCompletionStore() *fakeCompletionStore {
	return &fakeCompletionStore{completions: make(map[completionKey]*domain.Completion)}
}

func (f *fakeCompletionStore) Has(_ context.Context, userID int64, taskID string) (bool, error) {
	_, ok := f.completions[completionKey{userID, taskID}]
	return ok, nil
}

func (f *fakeCompletionStore) Insert(_ context.Context, c *domain.Completion) (bool, error) {
	key := completionKey{c.UserID, c.TaskID}
	if _, ok := f.completions[key]; ok {
		return false, nil
	}
	cp := *c
	f.completions[key] = &cp
	return true, nil
}

type fakeAdStore struct {
	drafts    map[int64]*domain.PendingAd
	published []domain.PublishedAd
}

func newFakeAdStore() *fakeAdStore {
	return &fakeAdStore{drafts: make(map[int64]*domain.PendingAd)}
}

func (f *fakeAdStore) SaveDraft(_ context.Context, d *domain.PendingAd) error {
	cp := *d
	f.drafts[d.UserID] = &cp
	return nil
}

func (f *fakeAdStore) GetDraft(_ context.Context, userID int64) (*domain.PendingAd, error) {
	d, ok := f.drafts[userID]
	if !ok {
		return nil, domain.ErrNoPendingAd
	}
	cp := *d
	return &cp, nil
}

func (f *fakeAdStore) DeleteDraft(_ context.Context, userID int64) error {
	delete(f.drafts, userID)
	return nil
}

func (f *fakeAdStore) Publish(_ context.Context, ad *domain.PublishedAd) error {
	f.published = append(f.published, *ad)
	return nil
}

type fakeVerifier struct {
	member bool
	err    error
	calls  int
}

func (f *fakeVerifier) IsMember(_ context.Context, _ string, _ int64) (bool, error) {
	f.calls++
	return f.member, f.err
}

type sentNote struct {
	chatID int64
	text   string
}

type fakeNotifier struct {
	sent []sentNote
	err  error
}

func (f *fakeNotifier) Notify(_ context.Context, chatID int64, text string) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, sentNote{chatID: chatID, text: text})
	return nil
}
