package mocks

import (
	"context"
	"slices"
	"sync"
	"sync/atomic"

	"videogames-be/internal/entities"
	"videogames-be/internal/repository"
)

// table is an id-ordered in-memory row store. Rows are kept by value so
// callers never share memory with the store.
type table[E any] struct {
	mu     sync.Mutex
	rows   map[int64]E
	nextID int64
}

func (t *table[E]) insert(e E) int64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.rows == nil {
		t.rows = make(map[int64]E)
	}
	t.nextID++
	t.rows[t.nextID] = e
	return t.nextID
}

func (t *table[E]) get(id int64) (E, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	e, ok := t.rows[id]
	return e, ok
}

func (t *table[E]) put(id int64, e E) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.rows[id]; !ok {
		return false
	}
	t.rows[id] = e
	return true
}

func (t *table[E]) remove(id int64) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.rows[id]; !ok {
		return false
	}
	delete(t.rows, id)
	return true
}

func (t *table[E]) page(limit, offset int) []E {
	t.mu.Lock()
	defer t.mu.Unlock()
	ids := make([]int64, 0, len(t.rows))
	for id := range t.rows {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	out := []E{}
	for i := offset; i < len(ids) && len(out) < limit; i++ {
		out = append(out, t.rows[ids[i]])
	}
	return out
}

func (t *table[E]) find(match func(E) bool) (E, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, e := range t.rows {
		if match(e) {
			return e, true
		}
	}
	var zero E
	return zero, false
}

// CategoryRepository is an in-memory repository.CategoryRepository.
type CategoryRepository struct {
	rows      table[entities.Category]
	listCalls atomic.Int64
	// Err, when set, is returned by every call.
	Err error
	// InUse reports whether a category is still referenced; Delete then
	// fails with repository.ErrForeignKey.
	InUse func(id int64) bool
}

func NewCategoryRepository() *CategoryRepository {
	return &CategoryRepository{}
}

// ListCalls returns how many times List reached the store.
func (r *CategoryRepository) ListCalls() int {
	return int(r.listCalls.Load())
}

func (r *CategoryRepository) List(_ context.Context, limit, offset int) ([]*entities.Category, error) {
	r.listCalls.Add(1)
	if r.Err != nil {
		return nil, r.Err
	}
	rows := r.rows.page(limit, offset)
	out := make([]*entities.Category, len(rows))
	for i := range rows {
		out[i] = &rows[i]
	}
	return out, nil
}

func (r *CategoryRepository) FindByID(_ context.Context, id int64) (*entities.Category, error) {
	if r.Err != nil {
		return nil, r.Err
	}
	c, ok := r.rows.get(id)
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &c, nil
}

func (r *CategoryRepository) Create(_ context.Context, category *entities.Category) error {
	if r.Err != nil {
		return r.Err
	}
	category.ID = r.rows.insert(*category)
	r.rows.put(category.ID, *category)
	return nil
}

func (r *CategoryRepository) Update(_ context.Context, category *entities.Category) error {
	if r.Err != nil {
		return r.Err
	}
	if !r.rows.put(category.ID, *category) {
		return repository.ErrNotFound
	}
	return nil
}

func (r *CategoryRepository) Delete(_ context.Context, id int64) error {
	if r.Err != nil {
		return r.Err
	}
	if r.InUse != nil && r.InUse(id) {
		return repository.ErrForeignKey
	}
	if !r.rows.remove(id) {
		return repository.ErrNotFound
	}
	return nil
}

// EditorRepository is an in-memory repository.EditorRepository.
type EditorRepository struct {
	rows      table[entities.Editor]
	listCalls atomic.Int64
	Err       error
	InUse     func(id int64) bool
}

func NewEditorRepository() *EditorRepository {
	return &EditorRepository{}
}

func (r *EditorRepository) ListCalls() int {
	return int(r.listCalls.Load())
}

func (r *EditorRepository) List(_ context.Context, limit, offset int) ([]*entities.Editor, error) {
	r.listCalls.Add(1)
	if r.Err != nil {
		return nil, r.Err
	}
	rows := r.rows.page(limit, offset)
	out := make([]*entities.Editor, len(rows))
	for i := range rows {
		out[i] = &rows[i]
	}
	return out, nil
}

func (r *EditorRepository) FindByID(_ context.Context, id int64) (*entities.Editor, error) {
	if r.Err != nil {
		return nil, r.Err
	}
	e, ok := r.rows.get(id)
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &e, nil
}

func (r *EditorRepository) Create(_ context.Context, editor *entities.Editor) error {
	if r.Err != nil {
		return r.Err
	}
	editor.ID = r.rows.insert(*editor)
	r.rows.put(editor.ID, *editor)
	return nil
}

func (r *EditorRepository) Update(_ context.Context, editor *entities.Editor) error {
	if r.Err != nil {
		return r.Err
	}
	if !r.rows.put(editor.ID, *editor) {
		return repository.ErrNotFound
	}
	return nil
}

func (r *EditorRepository) Delete(_ context.Context, id int64) error {
	if r.Err != nil {
		return r.Err
	}
	if r.InUse != nil && r.InUse(id) {
		return repository.ErrForeignKey
	}
	if !r.rows.remove(id) {
		return repository.ErrNotFound
	}
	return nil
}

// VideoGameRepository is an in-memory repository.VideoGameRepository. Games
// keep the category and editor they were saved with unless Categories or
// Editors is set, in which case reads join the current rows like the SQL
// repository does.
type VideoGameRepository struct {
	rows      table[entities.VideoGame]
	listCalls atomic.Int64
	Err       error

	Categories *CategoryRepository
	Editors    *EditorRepository
}

func NewVideoGameRepository() *VideoGameRepository {
	return &VideoGameRepository{}
}

func (r *VideoGameRepository) ListCalls() int {
	return int(r.listCalls.Load())
}

func cloneGame(g entities.VideoGame) *entities.VideoGame {
	if g.Category != nil {
		c := *g.Category
		g.Category = &c
	}
	if g.Editor != nil {
		e := *g.Editor
		g.Editor = &e
	}
	return &g
}

func (r *VideoGameRepository) resolve(g entities.VideoGame) *entities.VideoGame {
	out := cloneGame(g)
	if out.Category != nil && r.Categories != nil {
		if c, ok := r.Categories.rows.get(out.Category.ID); ok {
			out.Category = &c
		}
	}
	if out.Editor != nil && r.Editors != nil {
		if e, ok := r.Editors.rows.get(out.Editor.ID); ok {
			out.Editor = &e
		}
	}
	return out
}

func (r *VideoGameRepository) List(_ context.Context, limit, offset int) ([]*entities.VideoGame, error) {
	r.listCalls.Add(1)
	if r.Err != nil {
		return nil, r.Err
	}
	rows := r.rows.page(limit, offset)
	out := make([]*entities.VideoGame, len(rows))
	for i, g := range rows {
		out[i] = r.resolve(g)
	}
	return out, nil
}

func (r *VideoGameRepository) FindByID(_ context.Context, id int64) (*entities.VideoGame, error) {
	if r.Err != nil {
		return nil, r.Err
	}
	g, ok := r.rows.get(id)
	if !ok {
		return nil, repository.ErrNotFound
	}
	return r.resolve(g), nil
}

func (r *VideoGameRepository) Create(_ context.Context, game *entities.VideoGame) error {
	if r.Err != nil {
		return r.Err
	}
	game.ID = r.rows.insert(*cloneGame(*game))
	r.rows.put(game.ID, *cloneGame(*game))
	return nil
}

func (r *VideoGameRepository) Update(_ context.Context, game *entities.VideoGame) error {
	if r.Err != nil {
		return r.Err
	}
	if !r.rows.put(game.ID, *cloneGame(*game)) {
		return repository.ErrNotFound
	}
	return nil
}

func (r *VideoGameRepository) Delete(_ context.Context, id int64) error {
	if r.Err != nil {
		return r.Err
	}
	if !r.rows.remove(id) {
		return repository.ErrNotFound
	}
	return nil
}

// UsesCategory reports whether any stored game references the category.
func (r *VideoGameRepository) UsesCategory(id int64) bool {
	_, ok := r.rows.find(func(g entities.VideoGame) bool {
		return g.Category != nil && g.Category.ID == id
	})
	return ok
}

// UsesEditor reports whether any stored game references the editor.
func (r *VideoGameRepository) UsesEditor(id int64) bool {
	_, ok := r.rows.find(func(g entities.VideoGame) bool {
		return g.Editor != nil && g.Editor.ID == id
	})
	return ok
}

// UserRepository is an in-memory repository.UserRepository with a unique
// email constraint.
type UserRepository struct {
	rows table[entities.User]
	Err  error
}

func NewUserRepository() *UserRepository {
	return &UserRepository{}
}

func cloneUser(u entities.User) *entities.User {
	u.Roles = slices.Clone(u.Roles)
	return &u
}

func (r *UserRepository) List(_ context.Context, limit, offset int) ([]*entities.User, error) {
	if r.Err != nil {
		return nil, r.Err
	}
	rows := r.rows.page(limit, offset)
	out := make([]*entities.User, len(rows))
	for i, u := range rows {
		out[i] = cloneUser(u)
	}
	return out, nil
}

func (r *UserRepository) FindByID(_ context.Context, id int64) (*entities.User, error) {
	if r.Err != nil {
		return nil, r.Err
	}
	u, ok := r.rows.get(id)
	if !ok {
		return nil, repository.ErrNotFound
	}
	return cloneUser(u), nil
}

func (r *UserRepository) FindByEmail(_ context.Context, email string) (*entities.User, error) {
	if r.Err != nil {
		return nil, r.Err
	}
	u, ok := r.rows.find(func(u entities.User) bool { return u.Email == email })
	if !ok {
		return nil, repository.ErrNotFound
	}
	return cloneUser(u), nil
}

func (r *UserRepository) emailTaken(email string, id int64) bool {
	_, ok := r.rows.find(func(u entities.User) bool { return u.Email == email && u.ID != id })
	return ok
}

func (r *UserRepository) Create(_ context.Context, user *entities.User) error {
	if r.Err != nil {
		return r.Err
	}
	if r.emailTaken(user.Email, 0) {
		return repository.ErrDuplicate
	}
	user.ID = r.rows.insert(*cloneUser(*user))
	r.rows.put(user.ID, *cloneUser(*user))
	return nil
}

func (r *UserRepository) Update(_ context.Context, user *entities.User) error {
	if r.Err != nil {
		return r.Err
	}
	if r.emailTaken(user.Email, user.ID) {
		return repository.ErrDuplicate
	}
	if !r.rows.put(user.ID, *cloneUser(*user)) {
		return repository.ErrNotFound
	}
	return nil
}

func (r *UserRepository) Delete(_ context.Context, id int64) error {
	if r.Err != nil {
		return r.Err
	}
	if !r.rows.remove(id) {
		return repository.ErrNotFound
	}
	return nil
}

var (
	_ repository.CategoryRepository  = (*CategoryRepository)(nil)
	_ repository.EditorRepository    = (*EditorRepository)(nil)
	_ repository.VideoGameRepository = (*VideoGameRepository)(nil)
	_ repository.UserRepository      = (*UserRepository)(nil)
)
