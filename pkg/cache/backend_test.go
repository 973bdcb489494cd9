package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"
)

func TestMongoEntry(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	e := newMongoEntry("k", []byte("v"), time.Hour, now)
	if e.ExpiresAt == nil || !e.ExpiresAt.Equal(now.Add(time.Hour)) {
		t.Fatalf("ExpiresAt = %v, want %v", e.ExpiresAt, now.Add(time.Hour))
	}
	if e.expired(now) {
		t.Error("entry should not be expired before its ttl")
	}
	if !e.expired(now.Add(2 * time.Hour)) {
		t.Error("entry should be expired after its ttl")
	}

	forever := newMongoEntry("k", []byte("v"), 0, now)
	if forever.ExpiresAt != nil || forever.expired(now.Add(1000*time.Hour)) {
		t.Error("entry without ttl should never expire")
	}
}

func TestMongoEntryBSON(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	in := newMongoEntry("snapshot:abc", []byte(`{"nodes":[]}`), time.Minute, now)

	raw, err := bson.Marshal(in)
	if err != nil {
		t.Fatalf("bson.Marshal error: %v", err)
	}

	var doc bson.M
	if err := bson.Unmarshal(raw, &doc); err != nil {
		t.Fatalf("bson.Unmarshal error: %v", err)
	}
	if doc["_id"] != "snapshot:abc" {
		t.Errorf("_id = %v, want snapshot:abc", doc["_id"])
	}
	if _, ok := doc["expires_at"]; !ok {
		t.Error("expires_at missing from document")
	}

	var out mongoEntry
	if err := bson.Unmarshal(raw, &out); err != nil {
		t.Fatal(err)
	}
	if out.Key != in.Key || string(out.Data) != string(in.Data) || !out.ExpiresAt.Equal(*in.ExpiresAt) {
		t.Errorf("round trip = %+v, want %+v", out, in)
	}

	noTTL, err := bson.Marshal(newMongoEntry("k", nil, 0, now))
	if err != nil {
		t.Fatal(err)
	}
	var plain bson.M
	if err := bson.Unmarshal(noTTL, &plain); err != nil {
		t.Fatal(err)
	}
	if _, ok := plain["expires_at"]; ok {
		t.Error("expires_at should be omitted without ttl")
	}
}

func TestNewRedisCacheUnreachable(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	_, err := NewRedisCache(ctx, RedisOptions{Addr: "127.0.0.1:1", DialTimeout: 50 * time.Millisecond})
	if err == nil {
		t.Fatal("NewRedisCache should fail for an unreachable server")
	}
}

func TestOpen(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		opts    Options
		want    any
		wantErr bool
	}{
		{"default is file", Options{Dir: t.TempDir()}, &FileCache{}, false},
		{"file", Options{Backend: BackendFile, Dir: t.TempDir()}, &FileCache{}, false},
		{"none", Options{Backend: BackendNone}, &NullCache{}, false},
		{"file without dir", Options{Backend: BackendFile}, nil, true},
		{"redis without addr", Options{Backend: BackendRedis}, nil, true},
		{"mongo without uri", Options{Backend: BackendMongo}, nil, true},
		{"unknown", Options{Backend: "memcached"}, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := Open(ctx, tt.opts)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Open() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				return
			}
			defer c.Close()
			switch tt.want.(type) {
			case *FileCache:
				if _, ok := c.(*FileCache); !ok {
					t.Errorf("Open() = %T, want *FileCache", c)
				}
			case *NullCache:
				if _, ok := c.(*NullCache); !ok {
					t.Errorf("Open() = %T, want *NullCache", c)
				}
			}
		})
	}
}

func TestRedisUnavailableIsRetryable(t *testing.T) {
	err := Retryable(ErrUnavailable)
	if !errors.Is(err, ErrUnavailable) || !IsRetryable(err) {
		t.Error("wrapped ErrUnavailable should be retryable and match errors.Is")
	}
}
