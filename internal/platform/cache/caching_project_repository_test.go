package cache

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"projects_backend/internal/feature/projects/domain/entity"
)

// mockProjectRepository はテスト用のProjectRepositoryモック実装です。
type mockProjectRepository struct {
	listFn   func(ctx context.Context) ([]entity.Project, error)
	createFn func(ctx context.Context, p *entity.Project) error
}

// List はモックのList関数を呼び出します。
func (m *mockProjectRepository) List(ctx context.Context) ([]entity.Project, error) {
	if m.listFn != nil {
		return m.listFn(ctx)
	}
	return nil, nil
}

// Create はモックのCreate関数を呼び出します。
func (m *mockProjectRepository) Create(ctx context.Context, p *entity.Project) error {
	if m.createFn != nil {
		return m.createFn(ctx, p)
	}
	return nil
}

func sampleProjects() []entity.Project {
	at := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	return []entity.Project{
		{ID: "b1", Title: "Second", CreatedAt: at, UpdatedAt: at},
		{ID: "a1", Title: "First", Description: "d", UserID: "u1", CreatedAt: at, UpdatedAt: at},
	}
}

// TestNewCachingProjectRepository_Defaults はデフォルト値（TTLとnamespace）が正しく設定されることを検証します。
func TestNewCachingProjectRepository_Defaults(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name              string
		ttl               time.Duration
		namespace         string
		expectedTTL       time.Duration
		expectedNamespace string
	}{
		{name: "default values when zero/empty", expectedTTL: 5 * time.Minute, expectedNamespace: "projects"},
		{name: "negative ttl uses default", ttl: -time.Minute, expectedTTL: 5 * time.Minute, expectedNamespace: "projects"},
		{name: "custom values preserved", ttl: 10 * time.Minute, namespace: "custom", expectedTTL: 10 * time.Minute, expectedNamespace: "custom"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			repo := NewCachingProjectRepository(nil, tt.ttl, &mockProjectRepository{}, tt.namespace)

			assert.Equal(t, tt.expectedTTL, repo.ttl)
			assert.Equal(t, tt.expectedNamespace, repo.namespace)
		})
	}
}

// TestCachingProjectRepository_List_NilRedis はRedisがnilの場合にキャッシュをバイパスすることを検証します。
func TestCachingProjectRepository_List_NilRedis(t *testing.T) {
	t.Parallel()

	inner := &mockProjectRepository{listFn: func(ctx context.Context) ([]entity.Project, error) {
		return sampleProjects(), nil
	}}

	repo := NewCachingProjectRepository(nil, 0, inner, "")
	got, err := repo.List(context.Background())

	require.NoError(t, err)
	assert.Equal(t, sampleProjects(), got)
}

// TestCachingProjectRepository_List_CacheHit はキャッシュヒット時に内部リポジトリを呼ばないことを検証します。
func TestCachingProjectRepository_List_CacheHit(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	cachedJSON, _ := json.Marshal(sampleProjects())
	mock.ExpectGet("projects:gen").SetVal("3")
	mock.ExpectGet("projects:all:3").SetVal(string(cachedJSON))

	innerCalled := false
	inner := &mockProjectRepository{listFn: func(ctx context.Context) ([]entity.Project, error) {
		innerCalled = true
		return nil, nil
	}}

	repo := NewCachingProjectRepository(rdb, 5*time.Minute, inner, "projects")
	got, err := repo.List(context.Background())

	require.NoError(t, err)
	assert.False(t, innerCalled, "inner repository should not be called on cache hit")
	assert.Equal(t, sampleProjects(), got, "cached list must keep shape and order")
	assert.NoError(t, mock.ExpectationsWereMet())
}

// TestCachingProjectRepository_List_CacheMiss はキャッシュミス時にDBから取得してキャッシュに保存することを検証します。
func TestCachingProjectRepository_List_CacheMiss(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	expectedJSON, _ := json.Marshal(sampleProjects())
	mock.ExpectGet("projects:gen").RedisNil()
	mock.ExpectGet("projects:all:0").RedisNil()
	mock.ExpectSet("projects:all:0", expectedJSON, 5*time.Minute).SetVal("OK")

	inner := &mockProjectRepository{listFn: func(ctx context.Context) ([]entity.Project, error) {
		return sampleProjects(), nil
	}}

	repo := NewCachingProjectRepository(rdb, 5*time.Minute, inner, "projects")
	got, err := repo.List(context.Background())

	require.NoError(t, err)
	assert.Equal(t, sampleProjects(), got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// TestCachingProjectRepository_List_RedisDown はRedis障害時もDBの結果を返すことを検証します。
func TestCachingProjectRepository_List_RedisDown(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	mock.ExpectGet("projects:gen").SetErr(errors.New("connection refused"))

	inner := &mockProjectRepository{listFn: func(ctx context.Context) ([]entity.Project, error) {
		return sampleProjects(), nil
	}}

	repo := NewCachingProjectRepository(rdb, 5*time.Minute, inner, "projects")
	got, err := repo.List(context.Background())

	require.NoError(t, err)
	assert.Equal(t, sampleProjects(), got)
}

// TestCachingProjectRepository_List_InnerError は内部リポジトリのエラーが伝播し、キャッシュされないことを検証します。
func TestCachingProjectRepository_List_InnerError(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	expectedErr := errors.New("database error")
	mock.ExpectGet("projects:gen").RedisNil()
	mock.ExpectGet("projects:all:0").RedisNil()

	inner := &mockProjectRepository{listFn: func(ctx context.Context) ([]entity.Project, error) {
		return nil, expectedErr
	}}

	repo := NewCachingProjectRepository(rdb, 5*time.Minute, inner, "projects")
	_, err := repo.List(context.Background())

	assert.ErrorIs(t, err, expectedErr)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// TestCachingProjectRepository_List_CorruptedCache は破損したキャッシュを削除し、DBにフォールバックすることを検証します。
func TestCachingProjectRepository_List_CorruptedCache(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	expectedJSON, _ := json.Marshal(sampleProjects())
	mock.ExpectGet("projects:gen").SetVal("1")
	mock.ExpectGet("projects:all:1").SetVal("invalid json")
	mock.ExpectDel("projects:all:1").SetVal(1)
	mock.ExpectSet("projects:all:1", expectedJSON, 5*time.Minute).SetVal("OK")

	inner := &mockProjectRepository{listFn: func(ctx context.Context) ([]entity.Project, error) {
		return sampleProjects(), nil
	}}

	repo := NewCachingProjectRepository(rdb, 5*time.Minute, inner, "projects")
	got, err := repo.List(context.Background())

	require.NoError(t, err)
	assert.Len(t, got, 2)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// TestCachingProjectRepository_Create_Invalidates は作成後に一覧の世代が進むことを検証します。
func TestCachingProjectRepository_Create_Invalidates(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	mock.ExpectIncr("projects:gen").SetVal(1)

	inner := &mockProjectRepository{createFn: func(ctx context.Context, p *entity.Project) error {
		p.ID = "new"
		return nil
	}}

	repo := NewCachingProjectRepository(rdb, 5*time.Minute, inner, "projects")
	p := &entity.Project{Title: "Robot"}
	err := repo.Create(context.Background(), p)

	require.NoError(t, err)
	assert.Equal(t, "new", p.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// TestCachingProjectRepository_Create_InnerError は作成失敗時にキャッシュを触らないことを検証します。
func TestCachingProjectRepository_Create_InnerError(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	expectedErr := errors.New("insert error")
	inner := &mockProjectRepository{createFn: func(ctx context.Context, p *entity.Project) error {
		return expectedErr
	}}

	repo := NewCachingProjectRepository(rdb, 5*time.Minute, inner, "projects")
	err := repo.Create(context.Background(), &entity.Project{})

	assert.ErrorIs(t, err, expectedErr)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// TestCachingProjectRepository_Create_NilRedis はRedisがnilの場合に内部リポジトリのみを呼び出すことを検証します。
func TestCachingProjectRepository_Create_NilRedis(t *testing.T) {
	t.Parallel()

	innerCalled := false
	inner := &mockProjectRepository{createFn: func(ctx context.Context, p *entity.Project) error {
		innerCalled = true
		return nil
	}}

	repo := NewCachingProjectRepository(nil, 5*time.Minute, inner, "projects")

	require.NoError(t, repo.Create(context.Background(), &entity.Project{}))
	assert.True(t, innerCalled)
}

// TestCachingProjectRepository_Miniredis は実際のRedisプロトコルで読み込み・無効化の流れを検証します。
func TestCachingProjectRepository_Miniredis(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	var stored []entity.Project
	listCalls := 0
	inner := &mockProjectRepository{
		listFn: func(ctx context.Context) ([]entity.Project, error) {
			listCalls++
			return append([]entity.Project(nil), stored...), nil
		},
		createFn: func(ctx context.Context, p *entity.Project) error {
			p.ID = "p" + string(rune('0'+len(stored)))
			stored = append(stored, *p)
			return nil
		},
	}
	repo := NewCachingProjectRepository(rdb, time.Minute, inner, "projects")
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &entity.Project{Title: "one"}))

	first, err := repo.List(ctx)
	require.NoError(t, err)
	second, err := repo.List(ctx)
	require.NoError(t, err)

	assert.Equal(t, 1, listCalls, "second List should be served from cache")
	assert.Equal(t, first, second)
	assert.True(t, mr.Exists("projects:all:1"))
	assert.Equal(t, time.Minute, mr.TTL("projects:all:1"))

	require.NoError(t, repo.Create(ctx, &entity.Project{Title: "two"}))
	gen, err := mr.Get("projects:gen")
	require.NoError(t, err)
	assert.Equal(t, "2", gen, "create should advance the list generation")

	third, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, listCalls)
	require.Len(t, third, 2)
	assert.Equal(t, "two", third[1].Title)
}

// TestCachingProjectRepository_ListRacingCreate は作成前に取得したスナップショットが作成後の一覧として返らないことを検証します。
func TestCachingProjectRepository_ListRacingCreate(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	var stored []entity.Project
	var repo *CachingProjectRepository
	raced := false
	inner := &mockProjectRepository{
		listFn: func(ctx context.Context) ([]entity.Project, error) {
			snapshot := append([]entity.Project(nil), stored...)
			if !raced {
				// A Create completes after this List has read the store but before it caches.
				raced = true
				require.NoError(t, repo.Create(ctx, &entity.Project{Title: "late"}))
			}
			return snapshot, nil
		},
		createFn: func(ctx context.Context, p *entity.Project) error {
			p.ID = "p" + string(rune('0'+len(stored)))
			stored = append(stored, *p)
			return nil
		},
	}
	repo = NewCachingProjectRepository(rdb, time.Minute, inner, "projects")
	ctx := context.Background()

	stale, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, stale)

	got, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1, "list after a completed create must include it")
	assert.Equal(t, "late", got[0].Title)
}

// TestCachingProjectRepository_Create_IncrFailure はRedis障害時も作成が成功することを検証します。
func TestCachingProjectRepository_Create_IncrFailure(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	mock.ExpectIncr("projects:gen").SetErr(errors.New("connection refused"))

	repo := NewCachingProjectRepository(rdb, 5*time.Minute, &mockProjectRepository{}, "projects")

	assert.NoError(t, repo.Create(context.Background(), &entity.Project{}))
	assert.NoError(t, mock.ExpectationsWereMet())
}

// TestSafe はsafe関数がRedisキーで問題となる文字を正しくエスケープすることを検証します。
func TestSafe(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input    string
		expected string
	}{
		{"projects", "projects"},
		{"team a", "team_a"},
		{"key:value", "key_value"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, safe(tt.input))
		})
	}
}
