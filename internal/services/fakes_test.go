package services

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/eneca-dev/enecawork-backend/internal/infrastructure/bd/bdtest"
	"github.com/eneca-dev/enecawork-backend/pkg/constants"
	"github.com/eneca-dev/enecawork-backend/pkg/supabase"
)

// fakeProvider - Auth API в памяти: email -> пароль и id.
type fakeProvider struct {
	mu       sync.Mutex
	users    map[string]fakeAccount
	tokens   map[string]string // access-токен -> email
	calls    map[string]int
	failWith error
}

type fakeAccount struct {
	id       string
	password string
	metadata map[string]interface{}
}

func newFakeProvider() *fakeProvider {
	return &fakeProvider{
		users:  make(map[string]fakeAccount),
		tokens: make(map[string]string),
		calls:  make(map[string]int),
	}
}

func (p *fakeProvider) addUser(email, password string) uuid.UUID {
	id := uuid.New()
	p.users[email] = fakeAccount{id: id.String(), password: password}
	return id
}

func (p *fakeProvider) issue(email string) string {
	token := "token-" + uuid.NewString()
	p.tokens[token] = email
	return token
}

func (p *fakeProvider) hit(name string) error {
	p.calls[name]++
	return p.failWith
}

func (p *fakeProvider) SignUp(ctx context.Context, req supabase.SignUpRequest) (*supabase.User, *supabase.Session, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.hit("SignUp"); err != nil {
		return nil, nil, err
	}
	if _, ok := p.users[req.Email]; ok {
		return nil, nil, &supabase.Error{StatusCode: 422, Code: "user_already_exists", Message: "User already registered"}
	}
	id := uuid.NewString()
	p.users[req.Email] = fakeAccount{id: id, password: req.Password, metadata: req.Data}
	return &supabase.User{ID: id, Email: req.Email, UserMetadata: req.Data}, nil, nil
}

func (p *fakeProvider) SignInWithPassword(ctx context.Context, email, password string) (*supabase.Session, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.hit("SignInWithPassword"); err != nil {
		return nil, err
	}
	acc, ok := p.users[email]
	if !ok || acc.password != password {
		return nil, &supabase.Error{StatusCode: 400, Code: "invalid_credentials", Message: "Invalid login credentials"}
	}
	return &supabase.Session{
		AccessToken:  p.issue(email),
		RefreshToken: "refresh-" + email,
		User:         &supabase.User{ID: acc.id, Email: email},
	}, nil
}

func (p *fakeProvider) userByToken(token string) (*supabase.User, error) {
	email, ok := p.tokens[token]
	if !ok {
		return nil, &supabase.Error{StatusCode: 401, Code: "bad_jwt", Message: "invalid JWT"}
	}
	return &supabase.User{ID: p.users[email].id, Email: email}, nil
}

func (p *fakeProvider) GetUser(ctx context.Context, accessToken string) (*supabase.User, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.hit("GetUser"); err != nil {
		return nil, err
	}
	return p.userByToken(accessToken)
}

func (p *fakeProvider) SetSession(ctx context.Context, accessToken, refreshToken string) (*supabase.Session, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.hit("SetSession"); err != nil {
		return nil, err
	}
	user, err := p.userByToken(accessToken)
	if err != nil {
		return nil, err
	}
	return &supabase.Session{AccessToken: accessToken, RefreshToken: refreshToken, User: user}, nil
}

func (p *fakeProvider) RefreshSession(ctx context.Context, refreshToken string) (*supabase.Session, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.hit("RefreshSession"); err != nil {
		return nil, err
	}
	for email := range p.users {
		if "refresh-"+email == refreshToken {
			return &supabase.Session{AccessToken: p.issue(email), RefreshToken: refreshToken}, nil
		}
	}
	return nil, &supabase.Error{StatusCode: 400, Code: "refresh_token_not_found", Message: "Invalid Refresh Token"}
}

func (p *fakeProvider) UpdateUser(ctx context.Context, accessToken string, attrs supabase.UserAttributes) (*supabase.User, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.hit("UpdateUser"); err != nil {
		return nil, err
	}
	user, err := p.userByToken(accessToken)
	if err != nil {
		return nil, err
	}
	acc := p.users[user.Email]
	acc.password = attrs.Password
	p.users[user.Email] = acc
	return user, nil
}

func (p *fakeProvider) ResetPasswordForEmail(ctx context.Context, email, redirectTo string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.hit("ResetPasswordForEmail")
}

func (p *fakeProvider) SignOut(ctx context.Context, accessToken string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.hit("SignOut"); err != nil {
		return err
	}
	if _, err := p.userByToken(accessToken); err != nil {
		return err
	}
	delete(p.tokens, accessToken)
	return nil
}

// fakeCache повторяет семантику SETNX.
type fakeCache struct {
	mu   sync.Mutex
	keys map[string]struct{}
	err  error
}

func newFakeCache() *fakeCache { return &fakeCache{keys: make(map[string]struct{})} }

func (c *fakeCache) SetNX(ctx context.Context, key string, value interface{}, ttl time.Duration) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err != nil {
		return false, c.err
	}
	if _, ok := c.keys[key]; ok {
		return false, nil
	}
	c.keys[key] = struct{}{}
	return true, nil
}

func (c *fakeCache) Del(ctx context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, k := range keys {
		delete(c.keys, k)
	}
	return nil
}

// newStore - схема ключей как в миграциях.
func newStore() *bdtest.Store {
	return bdtest.New(
		bdtest.ForeignKey{Table: constants.TableAssignments, Column: "project_id", RefTable: constants.TableProjects, RefColumn: "id"},
		bdtest.ForeignKey{Table: constants.TableAssignments, Column: "from_section_id", RefTable: constants.TableSections, RefColumn: "id"},
		bdtest.ForeignKey{Table: constants.TableAssignments, Column: "to_section_id", RefTable: constants.TableSections, RefColumn: "id"},
	).Unique(constants.TableUsers, "email")
}
