package services

import (
	"context"
	"sync"

	"shramsiddhi/internal/models"
	"shramsiddhi/internal/repository"
)

type fakeUserRepo struct {
	mu     sync.Mutex
	users  map[string]*models.User
	nextID uint
	err    error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*models.User{}}
}

func (r *fakeUserRepo) Create(_ context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	if _, ok := r.users[user.Email]; ok {
		return repository.ErrDuplicateKey
	}
	r.nextID++
	user.ID = r.nextID
	r.users[user.Email] = user
	return nil
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	user, ok := r.users[email]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return user, nil
}

func (r *fakeUserRepo) CountByRole(_ context.Context, role string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, u := range r.users {
		if u.Role == role {
			n++
		}
	}
	return n, r.err
}

type fakeWorkerRepo struct {
	created []*models.Worker
	err     error
}

func (r *fakeWorkerRepo) Create(_ context.Context, w *models.Worker) error {
	if r.err != nil {
		return r.err
	}
	w.ID = uint(len(r.created) + 1)
	r.created = append(r.created, w)
	return nil
}

func (r *fakeWorkerRepo) GetAll(context.Context) ([]models.Worker, error) {
	out := make([]models.Worker, 0, len(r.created))
	for _, w := range r.created {
		out = append(out, *w)
	}
	return out, r.err
}

func (r *fakeWorkerRepo) GetByID(_ context.Context, id uint) (*models.Worker, error) {
	if id == 0 || int(id) > len(r.created) {
		return nil, repository.ErrNotFound
	}
	return r.created[id-1], nil
}

func (r *fakeWorkerRepo) UpdateStatus(_ context.Context, id uint, status models.WorkerStatus) error {
	w, err := r.GetByID(context.Background(), id)
	if err != nil {
		return err
	}
	w.Status = string(status)
	return nil
}

func (r *fakeWorkerRepo) UpdateVerification(_ context.Context, id uint, verified bool) error {
	w, err := r.GetByID(context.Background(), id)
	if err != nil {
		return err
	}
	w.Verified = verified
	return nil
}

func (r *fakeWorkerRepo) Statistics(context.Context) (*models.WorkerStatistics, error) {
	return &models.WorkerStatistics{Total: int64(len(r.created))}, r.err
}
