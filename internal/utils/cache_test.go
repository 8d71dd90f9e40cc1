package utils

import (
	"errors"
	"testing"
	"time"
)

func TestCacheSetGetExpiry(t *testing.T) {
	c := GetCache()

	c.Set("test:key", "value", 50*time.Millisecond)
	if got := c.Get("test:key"); got != "value" {
		t.Errorf("Get = %v, want value", got)
	}

	time.Sleep(60 * time.Millisecond)
	if got := c.Get("test:key"); got != nil {
		t.Errorf("expired key should return nil, got %v", got)
	}
}

func TestCacheDelete(t *testing.T) {
	c := GetCache()
	c.Set("test:delete", 42, time.Minute)
	c.Delete("test:delete")
	if got := c.Get("test:delete"); got != nil {
		t.Errorf("deleted key should return nil, got %v", got)
	}
}

func TestGetOrCompute(t *testing.T) {
	c := GetCache()

	calls := 0
	producer := func() (interface{}, error) {
		calls++
		return calls, nil
	}

	// TTL 内只计算一次
	v1, err := c.GetOrCompute("test:compute", 50*time.Millisecond, producer)
	if err != nil {
		t.Fatalf("GetOrCompute: %v", err)
	}
	v2, _ := c.GetOrCompute("test:compute", 50*time.Millisecond, producer)
	if v1 != 1 || v2 != 1 || calls != 1 {
		t.Errorf("expected single computation, got v1=%v v2=%v calls=%d", v1, v2, calls)
	}

	// 过期后重新计算
	time.Sleep(60 * time.Millisecond)
	v3, _ := c.GetOrCompute("test:compute", 50*time.Millisecond, producer)
	if v3 != 2 || calls != 2 {
		t.Errorf("expected recomputation after expiry, got v3=%v calls=%d", v3, calls)
	}
}

func TestGetOrComputeError(t *testing.T) {
	c := GetCache()

	wantErr := errors.New("boom")
	_, err := c.GetOrCompute("test:error", time.Minute, func() (interface{}, error) {
		return nil, wantErr
	})
	if !errors.Is(err, wantErr) {
		t.Errorf("err = %v, want %v", err, wantErr)
	}
	// 失败结果不缓存
	if got := c.Get("test:error"); got != nil {
		t.Errorf("failed computation must not be cached, got %v", got)
	}
}
